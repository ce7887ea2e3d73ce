package diag

import "fmt"

type Code uint16

const (
	// UnknownCode marks errors that did not originate in this module.
	UnknownCode Code = 0

	// Вызов и окружение
	UsageError Code = 1000
	IOError    Code = 1100

	// Конвертация plist -> документ
	ConversionError   Code = 2000
	ConversionTimeout Code = 2001

	// Граф объектов
	MalformedDocument   Code = 3000
	IdentifierCollision Code = 3100
	IncompleteGraph     Code = 3101

	// Текстовая структура
	StructureError Code = 4000
)

var codeNames = map[Code]string{
	UnknownCode:         "unknown",
	UsageError:          "usage",
	IOError:             "io",
	ConversionError:     "conversion",
	ConversionTimeout:   "conversion-timeout",
	MalformedDocument:   "malformed-document",
	IdentifierCollision: "identifier-collision",
	IncompleteGraph:     "incomplete-graph",
	StructureError:      "structure",
}

// String returns the stable kebab-case name of the code.
func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("code-%d", uint16(c))
}

// ID returns the numeric form used in machine-readable output, e.g. "E3000".
func (c Code) ID() string {
	return fmt.Sprintf("E%04d", uint16(c))
}
