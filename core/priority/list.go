package priority

import (
	"fmt"
	"strings"

	"guild-ledger/core/wow"
)

// Tier is one of the five desirability buckets. Smaller values rank higher.
type Tier int

const (
	TierBestInSlot Tier = iota
	TierAlmostBestInSlot
	TierAverage
	TierSlightUpgrade
	TierUseless
)

// explicitTiers is the number of tiers that can be populated from input.
// TierUseless is implicit and never holds roles.
const explicitTiers = 4

var tierNames = map[Tier]string{
	TierBestInSlot:       "Best in slot",
	TierAlmostBestInSlot: "Almost best in slot",
	TierAverage:          "Average",
	TierSlightUpgrade:    "Slight upgrade",
	TierUseless:          "Useless",
}

// String returns the human readable tier name.
func (t Tier) String() string {
	if name, ok := tierNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Tier(%d)", int(t))
}

// Tiers lists all tiers in rank order, most desirable first.
func Tiers() []Tier {
	return []Tier{TierBestInSlot, TierAlmostBestInSlot, TierAverage, TierSlightUpgrade, TierUseless}
}

// Separator cells recognized by the parser.
const (
	SepTier   = ">>"
	SepBetter = ">"
	SepEqual  = "~"
)

// Token is one cell of a priority row. A role cell carries a resolved
// RoleTuple; every other cell is raw text (separator or blank).
type Token struct {
	Role *wow.RoleTuple
	Text string
}

// RoleToken builds a role cell.
func RoleToken(r wow.RoleTuple) Token {
	return Token{Role: &r}
}

// TextToken builds a separator or blank cell.
func TextToken(s string) Token {
	return Token{Text: s}
}

// List is an immutable tiered ranking of role tuples.
// The zero value is not usable; build lists with Parse.
type List struct {
	// tiers[t] holds the ordered sublevels of explicit tier t.
	// Each sublevel is the set of roles tied at that position.
	tiers [explicitTiers][][]wow.RoleTuple
	// position caches where each role sits, for lookups and comparisons.
	position map[wow.RoleTuple]placement
}

type placement struct {
	tier     Tier
	sublevel int
}

// Parse builds a List from a flat row of cells in a single left-to-right
// pass. It fails with *UnknownSeparatorError or *DuplicateRoleError, both
// carrying the offending cell index.
func Parse(tokens []Token) (*List, error) {
	list := &List{position: make(map[wow.RoleTuple]placement)}
	for t := 0; t < explicitTiers; t++ {
		list.tiers[t] = [][]wow.RoleTuple{nil}
	}

	tier := 0
	for pos, tok := range tokens {
		if tier >= explicitTiers {
			// Cells after the fourth tier separator belong to the
			// implicit useless tier and carry no ordering.
			break
		}
		if tok.Role != nil {
			role := *tok.Role
			if _, seen := list.position[role]; seen {
				return nil, &DuplicateRoleError{Pos: pos, Role: role}
			}
			last := len(list.tiers[tier]) - 1
			list.tiers[tier][last] = append(list.tiers[tier][last], role)
			list.position[role] = placement{tier: Tier(tier), sublevel: last}
			continue
		}
		switch strings.TrimSpace(tok.Text) {
		case "":
			// Blank cells are allowed anywhere and mean nothing.
		case SepTier:
			tier++
		case SepBetter:
			list.tiers[tier] = append(list.tiers[tier], nil)
		case SepEqual:
			// Continuation, the next role stays in the current sublevel.
		default:
			return nil, &UnknownSeparatorError{Pos: pos, Text: tok.Text}
		}
	}
	return list, nil
}

// TierOf returns the tier a role sits in, TierUseless when absent.
func (l *List) TierOf(role wow.RoleTuple) Tier {
	if p, ok := l.position[role]; ok {
		return p.tier
	}
	return TierUseless
}

// TierHasRoles reports whether the tier holds at least one role.
// The implicit useless tier never does.
func (l *List) TierHasRoles(t Tier) bool {
	if t < 0 || t >= explicitTiers {
		return false
	}
	for _, sublevel := range l.tiers[t] {
		if len(sublevel) > 0 {
			return true
		}
	}
	return false
}

// HasRoles reports whether any tier holds a role.
func (l *List) HasRoles() bool {
	return len(l.position) > 0
}

// Sublevels returns the non-empty sublevels of a tier in rank order, for
// rendering. The returned slices must not be modified.
func (l *List) Sublevels(t Tier) [][]wow.RoleTuple {
	if t < 0 || t >= explicitTiers {
		return nil
	}
	out := make([][]wow.RoleTuple, 0, len(l.tiers[t]))
	for _, sublevel := range l.tiers[t] {
		if len(sublevel) > 0 {
			out = append(out, sublevel)
		}
	}
	return out
}

// Compare orders two roles. The result is positive when a ranks strictly
// higher than b, negative when b ranks higher, zero when they are tied
// (same sublevel, or both absent). Antisymmetric by construction.
func (l *List) Compare(a, b wow.RoleTuple) int {
	ta, tb := l.TierOf(a), l.TierOf(b)
	if ta != tb {
		return int(tb) - int(ta)
	}
	if ta == TierUseless {
		return 0
	}
	return l.position[b].sublevel - l.position[a].sublevel
}

// IsBetter reports whether a ranks strictly higher than b.
func (l *List) IsBetter(a, b wow.RoleTuple) bool {
	return l.Compare(a, b) > 0
}

// IsEquivalent reports whether a and b are tied.
func (l *List) IsEquivalent(a, b wow.RoleTuple) bool {
	return l.Compare(a, b) == 0
}
