// Package roster imports signup feeds from the raid-helper service and
// reconciles them against the guild's registered characters. Matched
// signups turn into attendance records; unmatched ones are surfaced for
// manual assignment instead of being dropped.
package roster
