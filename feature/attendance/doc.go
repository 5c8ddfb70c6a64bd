// Package attendance tracks raid participation per reset window.
//
// A raid has a reset anchor and period; one character may claim at most
// one attendance per raid, size and window. Records feed the DKP score
// and the attendance report.
package attendance
