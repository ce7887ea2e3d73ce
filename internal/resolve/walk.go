package resolve

import (
	"pbxfmt/internal/diag"
	"pbxfmt/internal/model"
)

// deferral records a target dependency whose path is copied from its proxy
// once the first pass is complete.
type deferral struct {
	dependency string
	proxy      string
}

type walker struct {
	table    *model.Table
	visited  map[string]bool
	paths    map[string]string
	deferred []deferral
}

// Resolve walks the table from its root and returns the path and identity tables.
func Resolve(table *model.Table) (*Result, error) {
	w := &walker{
		table:   table,
		visited: make(map[string]bool, len(table.Objects)),
		paths:   make(map[string]string, len(table.Objects)),
	}
	if err := w.visit(table.Root, "/"); err != nil {
		return nil, err
	}
	if err := w.settleDeferred(); err != nil {
		return nil, err
	}

	res := &Result{
		Paths:         make(map[string]Entry, len(w.paths)),
		Substitutions: make(map[string]string),
	}
	for id, path := range w.paths {
		obj := table.Objects[id]
		canonical := Identify(obj.Isa, path)
		res.Paths[id] = Entry{Isa: obj.Isa, Path: path, ID: canonical}
		if canonical != id {
			res.Substitutions[id] = canonical
		}
	}
	if err := Verify(table, res); err != nil {
		return nil, err
	}
	return res, nil
}

func (w *walker) visit(id, parent string) error {
	obj, ok := w.table.Get(id)
	if !ok {
		return diag.Errorf(diag.MalformedDocument, "reference to unknown object %s", id)
	}
	if w.visited[id] {
		return diag.Errorf(diag.MalformedDocument, "object %s (%s) is reachable from more than one parent", id, obj.Isa)
	}
	w.visited[id] = true

	switch obj.Kind {
	case model.KindProject:
		return w.visitProject(obj, parent)
	case model.KindGroup, model.KindVariantGroup, model.KindVersionGroup:
		path, err := namedPath(obj, parent, true)
		if err != nil {
			return err
		}
		w.paths[id] = path
		return w.visitList(obj, "children", path, true)
	case model.KindFileReference:
		path, err := namedPath(obj, parent, false)
		if err != nil {
			return err
		}
		w.paths[id] = path
		return nil
	case model.KindReferenceProxy:
		path, err := namedPath(obj, parent, false)
		if err != nil {
			return err
		}
		w.paths[id] = path
		if remote, ok := obj.String("remoteRef"); ok {
			return w.visit(remote, path)
		}
		return nil
	case model.KindConfigurationList:
		w.paths[id] = parent
		return w.visitList(obj, "buildConfigurations", parent, true)
	case model.KindBuildConfiguration:
		name, err := obj.RequireString("name")
		if err != nil {
			return err
		}
		w.paths[id] = join(parent, name)
		return nil
	case model.KindNativeTarget, model.KindAggregateTarget, model.KindLegacyTarget:
		return w.visitTarget(obj, parent)
	case model.KindBuildPhase:
		path, err := namedPath(obj, parent, true)
		if err != nil {
			return err
		}
		w.paths[id] = path
		return w.visitList(obj, "files", path, true)
	case model.KindBuildFile:
		return w.visitBuildFile(obj, parent)
	case model.KindTargetDependency:
		proxy, err := obj.RequireString("targetProxy")
		if err != nil {
			return err
		}
		w.deferred = append(w.deferred, deferral{dependency: id, proxy: proxy})
		return w.visit(proxy, parent)
	case model.KindContainerItemProxy:
		info, err := obj.RequireString("remoteInfo")
		if err != nil {
			return err
		}
		w.paths[id] = join(parent, info)
		return nil
	case model.KindBuildRule:
		seg, ok := firstString(obj, "name", "filePatterns", "fileType")
		if !ok {
			return diag.Errorf(diag.MalformedDocument, "object %s (%s): has none of name, filePatterns, fileType", id, obj.Isa)
		}
		w.paths[id] = join(parent, displaySegment(seg))
		return nil
	case model.KindPackageReference:
		seg, ok := firstString(obj, "repositoryURL", "relativePath")
		if !ok {
			return diag.Errorf(diag.MalformedDocument, "object %s (%s): has neither repositoryURL nor relativePath", id, obj.Isa)
		}
		w.paths[id] = join(parent, displaySegment(seg))
		return nil
	case model.KindPackageProduct:
		name, err := obj.RequireString("productName")
		if err != nil {
			return err
		}
		w.paths[id] = join(parent, displaySegment(name))
		return nil
	case model.KindUnknown:
		return diag.Errorf(diag.MalformedDocument, "object %s: unsupported object kind %q", id, obj.Isa)
	default:
		return diag.Errorf(diag.MalformedDocument, "object %s: unhandled kind %s", id, obj.Kind)
	}
}

func (w *walker) visitProject(obj *model.Object, parent string) error {
	w.paths[obj.ID] = parent

	mainGroup, err := obj.RequireString("mainGroup")
	if err != nil {
		return err
	}
	if err := w.visit(mainGroup, parent); err != nil {
		return err
	}

	// Product groups of referenced subprojects hang off the subproject's file
	// reference, which lives in mainGroup and is resolved by now.
	refs, err := obj.Maps("projectReferences")
	if err != nil {
		return err
	}
	for i, ref := range refs {
		projectRef, ok1 := ref["ProjectRef"].(string)
		productGroup, ok2 := ref["ProductGroup"].(string)
		if !ok1 || !ok2 {
			return diag.Errorf(diag.MalformedDocument, "object %s: projectReferences[%d] needs ProjectRef and ProductGroup", obj.ID, i)
		}
		refPath, ok := w.paths[projectRef]
		if !ok {
			return diag.Errorf(diag.MalformedDocument, "object %s: ProjectRef %s is not reachable from mainGroup", obj.ID, projectRef)
		}
		if err := w.visit(productGroup, refPath); err != nil {
			return err
		}
	}

	if err := w.visitList(obj, "targets", parent, true); err != nil {
		return err
	}
	configList, err := obj.RequireString("buildConfigurationList")
	if err != nil {
		return err
	}
	if err := w.visit(configList, parent); err != nil {
		return err
	}
	return w.visitList(obj, "packageReferences", parent, false)
}

func (w *walker) visitTarget(obj *model.Object, parent string) error {
	name, err := obj.RequireString("name")
	if err != nil {
		return err
	}
	path := join(parent, name)
	w.paths[obj.ID] = path

	configList, err := obj.RequireString("buildConfigurationList")
	if err != nil {
		return err
	}
	if err := w.visit(configList, path); err != nil {
		return err
	}
	// Package products come before build phases: build files may point at them.
	if err := w.visitList(obj, "packageProductDependencies", path, false); err != nil {
		return err
	}
	if err := w.visitList(obj, "buildPhases", path, true); err != nil {
		return err
	}
	if err := w.visitList(obj, "dependencies", path, false); err != nil {
		return err
	}
	return w.visitList(obj, "buildRules", path, false)
}

func (w *walker) visitBuildFile(obj *model.Object, parent string) error {
	ref, ok := firstString(obj, "fileRef", "productRef")
	if !ok {
		return diag.Errorf(diag.MalformedDocument, "object %s (%s): has neither fileRef nor productRef", obj.ID, obj.Isa)
	}
	refPath, ok := w.paths[ref]
	if !ok {
		return diag.Errorf(diag.MalformedDocument, "object %s (%s): referenced object %s is not resolved before its build phase", obj.ID, obj.Isa, ref)
	}
	w.paths[obj.ID] = join(parent, lastSegment(refPath))
	return nil
}

func (w *walker) visitList(obj *model.Object, field, parent string, required bool) error {
	var (
		ids []string
		err error
	)
	if required {
		ids, err = obj.RequireIDs(field)
	} else {
		ids, _, err = obj.IDs(field)
	}
	if err != nil {
		return err
	}
	for _, child := range ids {
		if err := w.visit(child, parent); err != nil {
			return err
		}
	}
	return nil
}

// settleDeferred gives each target dependency the path of its proxy.
func (w *walker) settleDeferred() error {
	for _, d := range w.deferred {
		path, ok := w.paths[d.proxy]
		if !ok {
			return diag.Errorf(diag.IncompleteGraph, "target dependency %s: proxy %s has no path", d.dependency, d.proxy)
		}
		w.paths[d.dependency] = path
	}
	w.deferred = nil
	return nil
}

// namedPath applies the name-or-path rule shared by groups, file references and
// build phases. When neither field is set, inherit decides between the parent's
// path and a MalformedDocument error.
func namedPath(obj *model.Object, parent string, inherit bool) (string, error) {
	if name, ok := obj.String("name"); ok && name != "" {
		return join(parent, displaySegment(name)), nil
	}
	if p, ok := obj.String("path"); ok && p != "" {
		return join(parent, p), nil
	}
	if inherit {
		return parent, nil
	}
	return "", diag.Errorf(diag.MalformedDocument, "object %s (%s): has neither name nor path", obj.ID, obj.Isa)
}

func firstString(obj *model.Object, fields ...string) (string, bool) {
	for _, f := range fields {
		if s, ok := obj.String(f); ok && s != "" {
			return s, true
		}
	}
	return "", false
}
