package item

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"guild-ledger/core/priority"
	"guild-ledger/core/wow"
)

// Sheet is one already-tokenized worksheet from the planning document.
// Rows[0] must be the header row.
type Sheet struct {
	Name string
	Rows [][]string
}

// priorityColumnOffset is the first column carrying priority cells on an
// item sheet. Columns before it hold the item metadata.
const priorityColumnOffset = 6

// CellError reports one broken cell of an imported sheet. Rows and
// columns are zero-based sheet coordinates.
type CellError struct {
	Sheet string
	Row   int
	Col   int
	Err   error
}

func (e *CellError) Error() string {
	return fmt.Sprintf("sheet %s cell (%d, %d): %v", e.Sheet, e.Row, e.Col, e.Err)
}

func (e *CellError) Unwrap() error {
	return e.Err
}

// ImportedItem is one successfully parsed sheet row.
type ImportedItem struct {
	ID       int
	Name     string
	Boss     string
	MaxCount int
	// Cells are the raw priority cells, kept for persistence.
	Cells []string
	List  *priority.List
}

// ParseRoleMap reads the role-config sheet mapping sheet labels to role
// tuples. Expected headers are class, role, spec and name. Rows whose
// class or role does not parse are skipped, matching how operators park
// half-filled rows on the sheet.
func ParseRoleMap(rows [][]string) (map[string]wow.RoleTuple, error) {
	if len(rows) == 0 {
		return nil, errors.New("role sheet is empty")
	}
	columns, err := headerIndex(rows[0], "class", "role", "spec", "name")
	if err != nil {
		return nil, err
	}

	roles := make(map[string]wow.RoleTuple)
	for _, row := range rows[1:] {
		class, err := wow.ParseClass(cell(row, columns["class"]))
		if err != nil {
			continue
		}
		role, err := wow.ParseRole(cell(row, columns["role"]))
		if err != nil {
			continue
		}
		spec := wow.SpecNone
		if raw := cell(row, columns["spec"]); strings.TrimSpace(raw) != "" {
			spec, err = wow.ParseSpec(raw)
			if err != nil {
				continue
			}
		}
		name := strings.TrimSpace(cell(row, columns["name"]))
		if name == "" {
			continue
		}
		roles[name] = wow.RoleTuple{Class: class, Role: role, Spec: spec}
	}
	return roles, nil
}

// ParseSheet reads one item sheet. A broken row does not abort the
// sheet; its error is collected and the remaining rows still parse.
func ParseSheet(sheet Sheet, roles map[string]wow.RoleTuple) (map[int]ImportedItem, []*CellError) {
	if len(sheet.Rows) == 0 {
		return nil, nil
	}
	columns, err := headerIndex(sheet.Rows[0], "id", "name", "boss")
	if err != nil {
		return nil, []*CellError{{Sheet: sheet.Name, Row: 0, Col: 0, Err: err}}
	}

	items := make(map[int]ImportedItem)
	var cellErrors []*CellError
	for i, row := range sheet.Rows[1:] {
		rowIndex := i + 1

		rawID := strings.TrimSpace(cell(row, columns["id"]))
		if rawID == "" {
			continue
		}
		itemID, err := strconv.Atoi(rawID)
		if err != nil {
			cellErrors = append(cellErrors, &CellError{
				Sheet: sheet.Name, Row: rowIndex, Col: columns["id"],
				Err: fmt.Errorf("item id %q is not a number", rawID),
			})
			continue
		}

		var cells []string
		if len(row) > priorityColumnOffset {
			cells = row[priorityColumnOffset:]
		}
		tokens := make([]priority.Token, len(cells))
		for c, raw := range cells {
			raw = strings.TrimSpace(raw)
			if role, ok := roles[raw]; ok {
				tokens[c] = priority.RoleToken(role)
			} else {
				tokens[c] = priority.TextToken(raw)
			}
		}

		list, err := priority.Parse(tokens)
		if err != nil {
			cellErrors = append(cellErrors, &CellError{
				Sheet: sheet.Name, Row: rowIndex, Col: priorityColumnOffset + errorPos(err),
				Err: err,
			})
			continue
		}

		items[itemID] = ImportedItem{
			ID:       itemID,
			Name:     strings.TrimSpace(cell(row, columns["name"])),
			Boss:     cell(row, columns["boss"]),
			MaxCount: optionalCount(row, sheet.Rows[0]),
			Cells:    cells,
			List:     list,
		}
	}
	return items, cellErrors
}

// ParseSheets reads every item sheet and merges the results. An item
// appearing on two sheets is reported against the later sheet.
func ParseSheets(sheets []Sheet, roles map[string]wow.RoleTuple) (map[int]ImportedItem, []*CellError) {
	merged := make(map[int]ImportedItem)
	var cellErrors []*CellError
	for _, sheet := range sheets {
		items, errs := ParseSheet(sheet, roles)
		cellErrors = append(cellErrors, errs...)
		for id, item := range items {
			if _, dup := merged[id]; dup {
				cellErrors = append(cellErrors, &CellError{
					Sheet: sheet.Name, Row: 0, Col: 0,
					Err: fmt.Errorf("item %d appears on more than one sheet", id),
				})
				continue
			}
			merged[id] = item
		}
	}
	return merged, cellErrors
}

func headerIndex(header []string, names ...string) (map[string]int, error) {
	columns := make(map[string]int, len(names))
	for _, name := range names {
		found := -1
		for i, h := range header {
			if strings.EqualFold(strings.TrimSpace(h), name) {
				found = i
				break
			}
		}
		if found < 0 {
			return nil, fmt.Errorf("missing header %q", name)
		}
		columns[name] = found
	}
	return columns, nil
}

func cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col]
}

// optionalCount reads the maxcount column when the sheet carries one.
func optionalCount(row, header []string) int {
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(h), "maxcount") {
			n, err := strconv.Atoi(strings.TrimSpace(cell(row, i)))
			if err != nil || n < 0 {
				return 0
			}
			return n
		}
	}
	return 0
}

func errorPos(err error) int {
	var sep *priority.UnknownSeparatorError
	if errors.As(err, &sep) {
		return sep.Pos
	}
	var dup *priority.DuplicateRoleError
	if errors.As(err, &dup) {
		return dup.Pos
	}
	return 0
}
