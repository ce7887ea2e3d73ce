package resolve_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"pbxfmt/internal/model"
	"pbxfmt/internal/resolve"
)

// sampleDoc returns a fresh two-target project: App depends on Core.
func sampleDoc() map[string]any {
	return map[string]any{
		"archiveVersion": "1",
		"objectVersion":  "56",
		"rootObject":     "P",
		"objects": map[string]any{
			"P": map[string]any{
				"isa":                    "PBXProject",
				"mainGroup":              "G0",
				"targets":                []any{"T1", "T2"},
				"buildConfigurationList": "CLP",
			},
			"G0": map[string]any{"isa": "PBXGroup", "children": []any{"GS", "GP"}},
			"GS": map[string]any{"isa": "PBXGroup", "path": "Sources", "children": []any{"FB", "FA"}},
			"FA": map[string]any{"isa": "PBXFileReference", "path": "a.swift"},
			"FB": map[string]any{"isa": "PBXFileReference", "path": "b.swift"},
			"GP": map[string]any{"isa": "PBXGroup", "name": "Products", "children": []any{"FP"}},
			"FP": map[string]any{"isa": "PBXFileReference", "path": "App.app"},

			"T1": map[string]any{
				"isa":                    "PBXNativeTarget",
				"name":                   "App",
				"buildConfigurationList": "CL1",
				"buildPhases":            []any{"SP1"},
				"dependencies":           []any{"D1"},
				"buildRules":             []any{},
			},
			"CL1": map[string]any{"isa": "XCConfigurationList", "buildConfigurations": []any{"BC1"}},
			"BC1": map[string]any{"isa": "XCBuildConfiguration", "name": "Debug"},
			"SP1": map[string]any{"isa": "PBXSourcesBuildPhase", "files": []any{"BF1", "BF2"}},
			"BF1": map[string]any{"isa": "PBXBuildFile", "fileRef": "FA"},
			"BF2": map[string]any{"isa": "PBXBuildFile", "fileRef": "FB"},
			"D1":  map[string]any{"isa": "PBXTargetDependency", "target": "T2", "targetProxy": "PX1"},
			"PX1": map[string]any{
				"isa":                  "PBXContainerItemProxy",
				"containerPortal":      "P",
				"proxyType":            "1",
				"remoteGlobalIDString": "T2",
				"remoteInfo":           "Core",
			},

			"T2": map[string]any{
				"isa":                    "PBXNativeTarget",
				"name":                   "Core",
				"buildConfigurationList": "CL2",
				"buildPhases":            []any{"SP2"},
			},
			"CL2": map[string]any{"isa": "XCConfigurationList", "buildConfigurations": []any{"BC2"}},
			"BC2": map[string]any{"isa": "XCBuildConfiguration", "name": "Debug"},
			"SP2": map[string]any{"isa": "PBXSourcesBuildPhase", "files": []any{}},

			"CLP": map[string]any{"isa": "XCConfigurationList", "buildConfigurations": []any{"BCP"}},
			"BCP": map[string]any{"isa": "XCBuildConfiguration", "name": "Debug"},
		},
	}
}

func objects(doc map[string]any) map[string]any {
	return doc["objects"].(map[string]any)
}

func object(doc map[string]any, id string) map[string]any {
	return objects(doc)[id].(map[string]any)
}

func resolveDoc(t *testing.T, doc map[string]any) (*resolve.Result, error) {
	t.Helper()
	table, err := model.Load(doc)
	require.NoError(t, err)
	return resolve.Resolve(table)
}

// renameIDs rewrites every identifier occurrence in doc (object keys and string
// values) through subs, producing the document a canonicalised file would convert to.
func renameIDs(v any, subs map[string]string) any {
	switch x := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, val := range x {
			if nk, ok := subs[k]; ok {
				k = nk
			}
			out[k] = renameIDs(val, subs)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, val := range x {
			out[i] = renameIDs(val, subs)
		}
		return out
	case string:
		if n, ok := subs[x]; ok {
			return n
		}
		return x
	default:
		return v
	}
}
