// Package character implements the guild character roster feature.
//
// Characters belong to a Discord user within a guild and carry the
// (class, role, spec) identity every other feature compares against:
// loot priorities, DKP scoring and roster reconciliation all resolve
// characters through the RoleTuple built here.
//
// # Components
//
//   - Service: character CRUD with class/role/spec validation.
//   - Commands: the `char add|list|remove|main` chat commands.
//   - Feature: registers the commands with the application loader.
package character
