// Package roster reconciles external raid signups with the guild's
// character records.
//
// Signup feeds carry free-text spec labels ("Fire", "Protection", ...)
// rather than typed identities. A fixed canonicalization table maps each
// label to a (class, role, spec) tuple; the matcher then scores every
// character owned by the signing user against that tuple and picks the
// best one. Signups that match no character, or whose label is unknown,
// are reported as unmatched so an operator can resolve them by hand
// instead of being silently dropped.
//
// # Match extent
//
// The graded similarity between a canonical tuple and a character:
//
//	0    different class (not a candidate)
//	1    class matches, role differs
//	2    class and role match, specs differ, canonical spec is specific
//	2.5  class and role match, neither side names a specific spec
//	3    class, role and spec all match
//
// Ties at the maximal extent prefer the character flagged as the user's
// main, then the first candidate in input order.
package roster
