package item

import (
	"strings"

	"guild-ledger/core/priority"
	"guild-ledger/core/wow"
)

// RenderPriorities formats an item's priority list per tier. Roles are
// rendered through the guild's sheet labels; sublevels read left to
// right, best first, with "=" joining equivalent roles.
func RenderPriorities(list *priority.List, labels map[wow.RoleTuple]string) map[priority.Tier]string {
	if list == nil || !list.HasRoles() {
		return nil
	}

	rendered := make(map[priority.Tier]string)
	for _, tier := range priority.Tiers() {
		if !list.TierHasRoles(tier) {
			continue
		}
		var levels []string
		for _, sublevel := range list.Sublevels(tier) {
			if len(sublevel) == 0 {
				continue
			}
			names := make([]string, 0, len(sublevel))
			for _, role := range sublevel {
				if label, ok := labels[role]; ok {
					names = append(names, label)
				} else {
					names = append(names, role.String())
				}
			}
			levels = append(levels, strings.Join(names, " = "))
		}
		if len(levels) > 0 {
			rendered[tier] = strings.Join(levels, " > ")
		}
	}
	return rendered
}

// InvertRoleMap flips the label lookup for rendering.
func InvertRoleMap(roles map[string]wow.RoleTuple) map[wow.RoleTuple]string {
	labels := make(map[wow.RoleTuple]string, len(roles))
	for label, role := range roles {
		labels[role] = label
	}
	return labels
}
