// Package item manages the loot catalogue, the loot ledger and the
// per-item priority lists imported from the guild's planning sheet.
package item
