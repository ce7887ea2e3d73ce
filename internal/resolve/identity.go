package resolve

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// IDLength is the width of a canonical identifier in hex characters.
const IDLength = 24

// Identify derives the canonical identifier of an object from its kind and path.
func Identify(isa, path string) string {
	sum := sha256.Sum256([]byte(isa + "://" + path))
	return strings.ToUpper(hex.EncodeToString(sum[:IDLength/2]))
}

// displaySegment wraps a display name so it never equals a filesystem segment.
func displaySegment(name string) string {
	return "<" + name + ">"
}

// join appends one segment to a canonical path. Segments are NFC-normalised so
// names differing only in Unicode composition resolve to the same path.
func join(parent, segment string) string {
	segment = norm.NFC.String(segment)
	if strings.HasSuffix(parent, "/") {
		return parent + segment
	}
	return parent + "/" + segment
}

// lastSegment returns the final '/'-separated element of a canonical path.
func lastSegment(path string) string {
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		return path[i+1:]
	}
	return path
}
