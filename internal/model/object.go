package model

import (
	"pbxfmt/internal/diag"
)

// Object is one entry of the document's "objects" dictionary.
type Object struct {
	ID     string
	Isa    string
	Kind   Kind
	Fields map[string]any
}

// String returns a string-valued field.
func (o *Object) String(field string) (string, bool) {
	s, ok := o.Fields[field].(string)
	return s, ok
}

// RequireString is String with a MalformedDocument error when the field is absent or mistyped.
func (o *Object) RequireString(field string) (string, error) {
	s, ok := o.String(field)
	if !ok {
		return "", o.missing(field, "string")
	}
	return s, nil
}

// IDs returns a list-of-identifiers field. An absent field yields (nil, false, nil);
// a present field of the wrong shape is a MalformedDocument.
func (o *Object) IDs(field string) ([]string, bool, error) {
	raw, present := o.Fields[field]
	if !present {
		return nil, false, nil
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, true, o.missing(field, "array")
	}
	out := make([]string, 0, len(list))
	for i, item := range list {
		s, ok := item.(string)
		if !ok {
			return nil, true, diag.Errorf(diag.MalformedDocument, "object %s (%s): %s[%d] is not an identifier", o.ID, o.Isa, field, i)
		}
		out = append(out, s)
	}
	return out, true, nil
}

// RequireIDs is IDs with a MalformedDocument error when the field is absent.
func (o *Object) RequireIDs(field string) ([]string, error) {
	ids, present, err := o.IDs(field)
	if err != nil {
		return nil, err
	}
	if !present {
		return nil, o.missing(field, "array")
	}
	return ids, nil
}

// Maps returns a list-of-dictionaries field, e.g. PBXProject.projectReferences.
func (o *Object) Maps(field string) ([]map[string]any, error) {
	raw, present := o.Fields[field]
	if !present {
		return nil, nil
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, o.missing(field, "array")
	}
	out := make([]map[string]any, 0, len(list))
	for i, item := range list {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, diag.Errorf(diag.MalformedDocument, "object %s (%s): %s[%d] is not a dictionary", o.ID, o.Isa, field, i)
		}
		out = append(out, m)
	}
	return out, nil
}

func (o *Object) missing(field, shape string) error {
	return diag.Errorf(diag.MalformedDocument, "object %s (%s): missing or invalid %s field %q", o.ID, o.Isa, shape, field)
}
