package ledcmd

import "bytes"

// Index returns the position of the first byte where needle occurs
// in haystack, or -1 if it doesn't occur. The needle must not be empty.
func Index(haystack, needle []byte) int {
	return bytes.Index(haystack, needle)
}
