// Package export writes CSV snapshots of the DKP standings and the
// attendance report to object storage, for the guild's spreadsheet
// tooling to pick up.
package export
