// Package resets computes recurring raid reset windows.
//
// A raid resets on a fixed period (in days) anchored to the start of its
// first ever reset. The window containing a timestamp is derived from the
// anchor and the period every time it is needed; windows are never stored.
//
// Windows are half-open intervals [Start, End): a timestamp equal to End
// belongs to the next window. All functions are pure and safe for
// concurrent use.
package resets
