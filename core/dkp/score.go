package dkp

import (
	"time"

	"guild-ledger/core/priority"
	"guild-ledger/core/wow"
)

// AttendanceRecord is the scoring view of one attendance ledger entry.
type AttendanceRecord struct {
	CharacterID int
	RaidID      int
	When        time.Time
	Cancelled   bool
	// GuildEvent marks a guild-organized event rather than a scheduled raid.
	GuildEvent bool
	// Eligible opts the record into DKP scoring. Cleared by a reset.
	Eligible bool
}

// LootRecord is the scoring view of one loot ledger entry.
type LootRecord struct {
	CharacterID int
	ItemID      int
	When        time.Time
	// InDKP opts the record into DKP scoring. Cleared by a reset.
	InDKP bool
}

// Policy supplies the point values for the replay. Both methods must be
// pure; the replay loop owns all filtering and aggregation.
type Policy interface {
	// RaidPoints returns the points granted for one eligible attendance.
	RaidPoints(a AttendanceRecord) int
	// LootPoints returns the (negative) points charged for one counted
	// loot, given the tier the looter's role resolves to on the item.
	LootPoints(l LootRecord, tier priority.Tier) int
}

// DefaultPolicy is the reference point schedule.
type DefaultPolicy struct{}

// RaidPoints grants +5 for a raid and +3 for a guild-organized event.
func (DefaultPolicy) RaidPoints(a AttendanceRecord) int {
	if a.GuildEvent {
		return 3
	}
	return 5
}

var defaultLootPoints = map[priority.Tier]int{
	priority.TierBestInSlot:       -5,
	priority.TierAlmostBestInSlot: -4,
	priority.TierAverage:          -2,
	priority.TierSlightUpgrade:    -1,
}

// LootPoints charges by tier; useless and untracked resolve to zero.
func (DefaultPolicy) LootPoints(l LootRecord, tier priority.Tier) int {
	if !l.InDKP {
		return 0
	}
	return defaultLootPoints[tier]
}

// Score replays both ledgers for one character and returns its balance.
// Attendance records not flagged eligible and loots not flagged in-DKP are
// skipped, as are loots for items absent from the priority table (an
// untracked item is incomplete configuration, not an error). A nil policy
// falls back to DefaultPolicy. Record order does not affect the result.
func Score(role wow.RoleTuple, attendances []AttendanceRecord, loots []LootRecord, priorities map[int]*priority.Item, policy Policy) int {
	if policy == nil {
		policy = DefaultPolicy{}
	}

	score := 0
	for _, a := range attendances {
		if !a.Eligible {
			continue
		}
		score += policy.RaidPoints(a)
	}
	for _, l := range loots {
		if !l.InDKP {
			continue
		}
		item, ok := priorities[l.ItemID]
		if !ok || item.List == nil {
			continue
		}
		score += policy.LootPoints(l, item.List.TierOf(role))
	}
	return score
}
