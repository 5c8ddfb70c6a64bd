// Package dkp exposes the guild's point standings. Scores are replayed
// from the attendance and loot ledgers on every request; nothing here
// stores a running balance.
package dkp
