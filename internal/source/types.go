package source

// FileFlags encodes metadata about a project file.
type FileFlags uint8 // метаданные

const (
	// FileVirtual indicates the file was created from memory (test, stdin).
	FileVirtual FileFlags = 1 << iota
	FileHadBOM
	FileHasCRLF
)

// Digest is a fixed 256-bit content hash.
type Digest [32]byte

// File captures the raw bytes of a project file and its line view.
//
// Content is never normalised: Lines splits on '\n' only, so a CRLF file keeps
// its '\r' at the end of each line and Join reproduces the exact input.
type File struct {
	Path    string
	Content []byte
	Lines   []string
	Hash    Digest
	Flags   FileFlags
}
