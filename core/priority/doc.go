// Package priority implements the loot priority list parser and resolver.
//
// A priority list ranks role tuples (see core/wow) by how much they want a
// given item. The ranking has five tiers, from most to least desirable:
// best in slot, almost best in slot, average, slight upgrade and useless.
// Within a tier, roles are further ordered into sublevels; roles sharing a
// sublevel are tied.
//
// # Input format
//
// Lists are built from a flat row of spreadsheet cells. Cells either name a
// role (already resolved to a RoleTuple by the importer) or carry one of
// three separators:
//
//	">>"  closes the current tier and opens the next one
//	">"   closes the current sublevel within the tier
//	"~"   continuation, the next role joins the current sublevel
//
// Blank cells are skipped. The useless tier is implicit: any role absent
// from the list resolves to it. A role may appear at most once across the
// whole list; repeats are a construction error, never a silent overwrite.
//
// # Resolution
//
// A built List answers tier lookups and pairwise comparisons. Compare
// returns a positive value when the first role ranks strictly higher,
// which makes the separators observable: "a > b" orders a before b while
// "a ~ b" makes them equivalent.
//
// Lists are immutable after construction and safe for concurrent use.
package priority
