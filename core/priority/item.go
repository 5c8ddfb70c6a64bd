package priority

// Item couples an item identifier with its parsed priority list and the
// free-form metadata carried by the source row (boss, content phase, ...).
// Items live only as long as the importer that built them; nothing in this
// package persists them.
type Item struct {
	ID       int
	List     *List
	Metadata map[string]string
}
