// Package model turns a converted project document into a typed object table.
package model

import (
	"sort"

	"pbxfmt/internal/diag"
)

// Table is the immutable object table of one project document.
type Table struct {
	Root    string
	Objects map[string]*Object
}

// Get returns the object with the given identifier.
func (t *Table) Get(id string) (*Object, bool) {
	o, ok := t.Objects[id]
	return o, ok
}

// IDs returns every object identifier in ascending order.
func (t *Table) IDs() []string {
	ids := make([]string, 0, len(t.Objects))
	for id := range t.Objects {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Load extracts "objects" and "rootObject" from a document produced by the
// plist conversion step. Nothing beyond shape is interpreted: kinds are
// classified, but unknown kinds are kept and left to the walker.
func Load(doc any) (*Table, error) {
	top, ok := doc.(map[string]any)
	if !ok {
		return nil, diag.New(diag.MalformedDocument, "document is not a dictionary")
	}
	root, ok := top["rootObject"].(string)
	if !ok || root == "" {
		return nil, diag.New(diag.MalformedDocument, `missing or invalid "rootObject"`)
	}
	rawObjects, ok := top["objects"].(map[string]any)
	if !ok {
		return nil, diag.New(diag.MalformedDocument, `missing or invalid "objects"`)
	}

	ids := make([]string, 0, len(rawObjects))
	for id := range rawObjects {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	objects := make(map[string]*Object, len(rawObjects))
	for _, id := range ids {
		fields, ok := rawObjects[id].(map[string]any)
		if !ok {
			return nil, diag.Errorf(diag.MalformedDocument, "object %s is not a dictionary", id)
		}
		isa, ok := fields["isa"].(string)
		if !ok {
			return nil, diag.Errorf(diag.MalformedDocument, `object %s: missing or invalid "isa"`, id)
		}
		objects[id] = &Object{ID: id, Isa: isa, Kind: KindOf(isa), Fields: fields}
	}

	rootObj, ok := objects[root]
	if !ok {
		return nil, diag.Errorf(diag.MalformedDocument, "rootObject %s is not in objects", root)
	}
	if rootObj.Kind != KindProject {
		return nil, diag.Errorf(diag.MalformedDocument, "rootObject %s is a %s, not a PBXProject", root, rootObj.Isa)
	}
	return &Table{Root: root, Objects: objects}, nil
}
