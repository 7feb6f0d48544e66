package exclude

import (
	"strings"
)

// matchSegments evaluates a compiled pattern against path segments.
// "**" consumes zero or more whole segments; every other pattern segment
// must match exactly one path segment.
func matchSegments(pattern, segs []string) bool {
	if len(pattern) == 0 {
		return len(segs) == 0
	}
	if pattern[0] == "**" {
		for i := 0; i <= len(segs); i++ {
			if matchSegments(pattern[1:], segs[i:]) {
				return true
			}
		}
		return false
	}
	if len(segs) == 0 {
		return false
	}
	if !matchSegment(pattern[0], segs[0]) {
		return false
	}
	return matchSegments(pattern[1:], segs[1:])
}

// matchSegment matches a single pattern segment against a single path
// segment. "*" matches any run of characters within the segment; literal
// characters compare case-insensitively for compatibility with
// case-insensitive source filesystems.
func matchSegment(pattern, seg string) bool {
	p := strings.ToLower(pattern)
	s := strings.ToLower(seg)

	// Iterative wildcard match with single-star backtracking
	var pi, si int
	starPi, starSi := -1, 0
	for si < len(s) {
		switch {
		case pi < len(p) && p[pi] == '*':
			starPi, starSi = pi, si
			pi++
		case pi < len(p) && p[pi] == s[si]:
			pi++
			si++
		case starPi >= 0:
			starSi++
			si = starSi
			pi = starPi + 1
		default:
			return false
		}
	}
	for pi < len(p) && p[pi] == '*' {
		pi++
	}
	return pi == len(p)
}
