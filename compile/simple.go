package compile

import (
	"encoding/xml"

	"arvoren.net/strongxml/internal/dependency"
	"arvoren.net/strongxml/model"
	"arvoren.net/strongxml/xsd"
)

// compileSimpleTypes compiles named simple types in dependency order, so
// a type's base, item and member types are compiled before the types
// referring to them no matter how the schema orders its declarations.
func (c *compiler) compileSimpleTypes() error {
	var graph dependency.Graph
	for _, st := range c.schema.SimpleTypes {
		name := c.qualify(st.Name)
		if _, ok := c.simpleDecls[name]; ok {
			return &model.DuplicateError{Name: st.Name}
		}
		c.simpleDecls[name] = st
		graph.Add(st.Name, c.simpleDeps(st)...)
	}
	// complex type names are recorded up front so reference errors can
	// tell "missing" apart from "not a simple type"
	for _, ct := range c.schema.ComplexTypes {
		c.classDecls[c.qualify(ct.Name)] = true
	}

	var err error
	graph.Flatten(func(name string) {
		if err != nil {
			return
		}
		st, ok := c.simpleDecls[c.qualify(name)]
		if !ok {
			// a dependency that is no simple type; resolution at the
			// use site reports it
			return
		}
		var pt model.PropertyType
		if pt, err = c.compileSimpleType(st, st.Name); err != nil {
			return
		}
		c.simples[c.qualify(name)] = pt
		if e, isEnum := pt.(*model.Enum); isEnum && e.Name == st.Name {
			err = c.m.Add(e)
		}
		c.cfg.debugf("compiled simple type %s", st.Name)
	})
	return err
}

// simpleDeps lists the names of simple types in the target namespace
// that st must be compiled after.
func (c *compiler) simpleDeps(st *xsd.SimpleType) []string {
	var deps []string
	add := func(ref xml.Name) {
		ref = c.normalize(ref)
		if ref.Space == c.schema.TargetNS && ref.Local != "" {
			deps = append(deps, ref.Local)
		}
	}
	if st.Restriction != nil {
		add(st.Restriction.Base)
	}
	if st.List != nil {
		add(st.List.ItemType)
		if st.List.Item != nil && st.List.Item.Restriction != nil {
			add(st.List.Item.Restriction.Base)
		}
	}
	if len(st.Union) > 0 {
		add(st.Union[0])
	}
	return deps
}

// compileSimpleType maps one simple type declaration to its value space.
// Enumeration restrictions become enums named after the declaration (or,
// for inline declarations, after the name the caller chose); everything
// else maps through to a previously compiled value space.
func (c *compiler) compileSimpleType(st *xsd.SimpleType, name string) (model.PropertyType, error) {
	where := name
	if where == "" {
		where = "anonymous simple type"
	}
	derivations := 0
	if st.Restriction != nil {
		derivations++
	}
	if st.List != nil {
		derivations++
	}
	if len(st.Union) > 0 {
		derivations++
	}
	if derivations > 1 {
		return nil, &xsd.UnsupportedError{Construct: "simple type with multiple derivations", In: where}
	}
	switch {
	case st.Restriction != nil:
		return c.compileRestriction(st, name, where)
	case st.List != nil:
		return c.compileList(st.List, name, where)
	case len(st.Union) > 0:
		if len(st.Union) > 1 {
			c.cfg.debugf("union %s: keeping first member %s, dropping %d others",
				where, st.Union[0].Local, len(st.Union)-1)
		}
		return c.resolveSimpleRef(st.Union[0], where)
	}
	return nil, &xsd.UnsupportedError{Construct: "simple type without a derivation", In: where}
}

func (c *compiler) compileRestriction(st *xsd.SimpleType, name, where string) (model.PropertyType, error) {
	r := st.Restriction
	if len(r.Enums) > 0 && r.Pattern != "" {
		return nil, &xsd.UnsupportedError{Construct: "restriction with both enumeration and pattern facets", In: where}
	}
	if len(r.Enums) > 0 {
		e := &model.Enum{Name: name, Doc: st.Doc}
		for _, v := range r.Enums {
			e.Add(v.Value, v.Doc)
		}
		return e, nil
	}
	// pattern restrictions and bare restrictions take their base's value
	// space; the pattern itself is never enforced
	if r.Base == (xml.Name{}) {
		return nil, &xsd.UnsupportedError{Construct: "restriction without a base", In: where}
	}
	return c.resolveSimpleRef(r.Base, where)
}

func (c *compiler) compileList(l *xsd.List, name, where string) (model.PropertyType, error) {
	var item model.PropertyType
	var err error
	if l.Item != nil {
		item, err = c.compileSimpleType(l.Item, name)
	} else {
		item, err = c.resolveSimpleRef(l.ItemType, where)
	}
	if err != nil {
		return nil, err
	}
	e, ok := item.(*model.Enum)
	if !ok {
		return nil, &xsd.UnsupportedError{Construct: "list of non-enumeration items", In: where}
	}
	if len(e.Values) > 63 {
		return nil, &xsd.UnsupportedError{Construct: "flag set with more than 63 values", In: where}
	}
	e.SetFlags()
	return e, nil
}

// resolveSimpleRef resolves a reference in simple type or attribute
// position to its value space.
func (c *compiler) resolveSimpleRef(ref xml.Name, where string) (model.PropertyType, error) {
	ref = c.normalize(ref)
	if ref.Space == xsd.SchemaNS {
		if kind, ok := builtinKinds[ref.Local]; ok {
			return kind, nil
		}
		return nil, &xsd.UnsupportedError{Construct: "built-in type xs:" + ref.Local, In: where}
	}
	if ref.Space != c.schema.TargetNS {
		return nil, &xsd.UnsupportedError{Construct: "reference to foreign namespace " + ref.Space, In: where}
	}
	if pt, ok := c.simples[ref]; ok {
		return pt, nil
	}
	if _, ok := c.simpleDecls[ref]; ok {
		return nil, &xsd.UnsupportedError{Construct: "circular simple type reference", In: where}
	}
	if c.classDecls[ref] {
		return nil, &xsd.UnsupportedError{Construct: "complex type " + ref.Local + " in simple type position", In: where}
	}
	return nil, &UnresolvedTypeError{Name: ref}
}
