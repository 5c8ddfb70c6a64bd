// Package dkp derives loot-priority point balances from the attendance and
// loot ledgers.
//
// A balance is never stored: it is recomputed on demand by replaying both
// append-only ledgers through the item priority lists, so editing a
// priority list retroactively corrects every historical score. Records
// opt in to scoring through their eligibility flags; a DKP reset clears
// the flags and keeps the records for audit.
//
// Point values are a replaceable Policy so alternate schedules can be
// tested independently of the replay loop. DefaultPolicy carries the
// reference values: +5 per raid, +3 per guild-organized event, and loot
// penalties of -5/-4/-2/-1 from best-in-slot down to slight upgrade.
package dkp
