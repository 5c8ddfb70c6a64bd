// Package wow defines the game vocabulary shared across the application.
//
// It provides the Class, Role and Spec enumerations and the RoleTuple
// comparison key built from them. A RoleTuple identifies "who can want an
// item": the priority resolver, the DKP scoring engine and the roster
// matcher all compare characters through this key rather than through
// database records.
//
// # RoleTuple
//
// RoleTuple is a plain comparable struct and is safe to use as a map key.
// The Spec component is optional; SpecNone marks a character without a
// specific dual spec.
//
// # Parsing
//
// ParseClass, ParseRole and ParseSpec accept the canonical enum names
// (case-insensitive) as typed by users in chat commands.
package wow
