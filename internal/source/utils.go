package source

import "bytes"

func hasBOM(content []byte) bool {
	return len(content) >= 3 && content[0] == 0xEF && content[1] == 0xBB && content[2] == 0xBF
}

func hasCRLF(content []byte) bool {
	return bytes.Contains(content, []byte("\r\n"))
}
