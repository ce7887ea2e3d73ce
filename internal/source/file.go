package source

import (
	"crypto/sha256"
	"os"
	"strings"
)

// New builds a File from bytes already in memory.
func New(path string, content []byte, flags FileFlags) *File {
	if hasBOM(content) {
		flags |= FileHadBOM
	}
	if hasCRLF(content) {
		flags |= FileHasCRLF
	}
	return &File{
		Path:    path,
		Content: content,
		Lines:   SplitLines(content),
		Hash:    sha256.Sum256(content),
		Flags:   flags,
	}
}

// Load reads a file from disk.
func Load(path string) (*File, error) {
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return New(path, content, 0), nil
}

// Virtual wraps in-memory content, e.g. test fixtures.
func Virtual(name string, content []byte) *File {
	return New(name, content, FileVirtual)
}

// SplitLines splits content on '\n'. A trailing newline yields a final empty
// element so that JoinLines(SplitLines(b)) == b for every input.
func SplitLines(content []byte) []string {
	return strings.Split(string(content), "\n")
}

// JoinLines is the inverse of SplitLines.
func JoinLines(lines []string) []byte {
	return []byte(strings.Join(lines, "\n"))
}

// TrimEOL strips a trailing '\r' left by CRLF line endings.
func TrimEOL(line string) string {
	return strings.TrimSuffix(line, "\r")
}
