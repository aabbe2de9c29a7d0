package veranda

import "strings"

// Field paths are segments joined by '.' plus bracketed collection indices:
// "user.addresses[0].city" splits into "user", "addresses", "[0]", "city".
// An index segment keeps its brackets so it can never collide with a named
// property. Lookup folds segments to lower case; stored keys keep the
// casing they were first written with.

// nextSegment returns the leading segment of path and the remainder.
func nextSegment(path string) (seg, rest string) {
	for i := 0; i < len(path); i++ {
		switch path[i] {
		case '.':
			return path[:i], path[i+1:]
		case '[':
			if i > 0 {
				// named segment ends where the index starts
				return path[:i], path[i:]
			}
			for j := 1; j < len(path); j++ {
				if path[j] == ']' {
					return path[:j+1], strings.TrimPrefix(path[j+1:], ".")
				}
			}
			// unterminated index; treat the rest as one segment
			return path, ""
		}
	}
	return path, ""
}

// foldSegment is the case-insensitive lookup form of a segment.
func foldSegment(seg string) string { return strings.ToLower(seg) }

// joinKey appends a segment to a parent key, inserting a dot only between
// named segments.
func joinKey(parent, seg string) string {
	if parent == "" {
		return seg
	}
	if strings.HasPrefix(seg, "[") {
		return parent + seg
	}
	return parent + "." + seg
}
