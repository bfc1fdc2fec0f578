package compile

import (
	"encoding/xml"

	"arvoren.net/strongxml/model"
	"arvoren.net/strongxml/xsd"
)

// registerClasses creates an empty class for every complex type and
// top-level element before anything resolves, so references work no
// matter how the schema orders its declarations. An element referencing
// a named type registers as an alias of that type's class instead.
func (c *compiler) registerClasses() error {
	for _, ct := range c.schema.ComplexTypes {
		name := c.qualify(ct.Name)
		if _, ok := c.simpleDecls[name]; ok {
			return &model.DuplicateError{Name: ct.Name}
		}
		cls := &model.Class{Name: ct.Name, Doc: ct.Doc, Capabilities: model.SchemaElement}
		if err := c.m.Add(cls); err != nil {
			return err
		}
		c.classes[name] = cls
	}
	for _, el := range c.schema.Elements {
		if el.Type != (xml.Name{}) {
			cls, err := c.classRef(el.Type, el.Name)
			if err != nil {
				return err
			}
			if err := c.m.AddAlias(el.Name, cls); err != nil {
				return err
			}
			c.elements[el.Name] = cls
			c.cfg.debugf("element %s aliases %s", el.Name, cls.Name)
			continue
		}
		cls := &model.Class{Name: el.Name, Doc: el.Doc, Capabilities: model.SchemaElement}
		if err := c.m.Add(cls); err != nil {
			return err
		}
		c.elements[el.Name] = cls
	}
	return nil
}

func (c *compiler) fillClasses() error {
	for _, ct := range c.schema.ComplexTypes {
		if err := c.fillClass(c.classes[c.qualify(ct.Name)], ct); err != nil {
			return err
		}
	}
	for _, el := range c.schema.Elements {
		if el.Inline == nil {
			continue
		}
		if err := c.fillClass(c.elements[el.Name], el.Inline); err != nil {
			return err
		}
	}
	return nil
}

// fillClass completes a registered class from its type declaration:
// properties from attributes, a text content property for simple
// content, a child collection from the particle, and the capabilities
// the resulting shape earns.
func (c *compiler) fillClass(cls *model.Class, ct *xsd.ComplexType) error {
	if cls.Doc == "" {
		cls.Doc = ct.Doc
	}
	if ct.SimpleBase != (xml.Name{}) && (ct.Base != (xml.Name{}) || ct.Particle != nil) {
		return &xsd.UnsupportedError{Construct: "simple and complex content in one type", In: cls.Name}
	}
	if err := c.mapAttributes(cls, ct.Attrs, make(map[xml.Name]bool)); err != nil {
		return err
	}
	if ct.SimpleBase != (xml.Name{}) {
		pt, err := c.resolveSimpleRef(ct.SimpleBase, cls.Name)
		if err != nil {
			return err
		}
		if cls.Property("Content") != nil {
			return &model.DuplicateError{Name: cls.Name + ".Content"}
		}
		cls.Properties = append(cls.Properties, &model.Property{
			Name: "Content",
			Type: pt,
			Text: true,
		})
	}
	if ct.Base != (xml.Name{}) {
		base, err := c.classRef(ct.Base, cls.Name)
		if err != nil {
			return err
		}
		cls.Base = base
	}
	if ct.Particle != nil {
		col, err := c.compileParticle(ct.Particle, cls.Name)
		if err != nil {
			return err
		}
		cls.Children = col
	}
	if len(cls.Properties) > 0 {
		cls.Capabilities |= model.SettableAttributes
	}
	if cls.Children != nil {
		cls.Capabilities |= model.ParentOfChildren | model.ChildFactory
	}
	c.cfg.debugf("compiled class %s (%s)", cls.Name, cls.Capabilities)
	return nil
}

// mapAttributes turns attribute declarations into properties, expanding
// attribute-group references in place through the group table. The seen
// set tracks groups on the current expansion path; revisiting one means
// the schema's groups form a cycle, which cannot expand to a finite
// attribute list.
func (c *compiler) mapAttributes(cls *model.Class, terms []xsd.AttrTerm, seen map[xml.Name]bool) error {
	for _, term := range terms {
		if term.GroupRef != (xml.Name{}) {
			ref := c.normalize(term.GroupRef)
			g, ok := c.groups[ref]
			if !ok {
				return &UnresolvedTypeError{Name: ref}
			}
			if seen[ref] {
				return &xsd.UnsupportedError{Construct: "attribute group cycle through " + ref.Local, In: cls.Name}
			}
			seen[ref] = true
			if err := c.mapAttributes(cls, g.Attrs, seen); err != nil {
				return err
			}
			delete(seen, ref)
			continue
		}
		if err := c.mapAttribute(cls, term.Attribute); err != nil {
			return err
		}
	}
	return nil
}

func (c *compiler) mapAttribute(cls *model.Class, attr *xsd.Attribute) error {
	if cls.Property(attr.Name) != nil {
		return &model.DuplicateError{Name: cls.Name + "." + attr.Name}
	}
	var pt model.PropertyType = model.String
	switch {
	case attr.Type != (xml.Name{}):
		resolved, err := c.resolveSimpleRef(attr.Type, cls.Name+"."+attr.Name)
		if err != nil {
			return err
		}
		pt = resolved
	case attr.Inline != nil:
		resolved, err := c.compileSimpleType(attr.Inline, attr.Name+"Type")
		if err != nil {
			return err
		}
		pt = resolved
		// a new anonymous enum is scoped to the class; lists over named
		// enums resolve to the shared declaration and stay top-level
		if e, ok := resolved.(*model.Enum); ok && e.Name == attr.Name+"Type" {
			cls.Enums = append(cls.Enums, e)
		}
	}
	cls.Properties = append(cls.Properties, &model.Property{
		Name:     attr.Name,
		Doc:      attr.Doc,
		Type:     pt,
		Required: attr.Required,
	})
	return nil
}

func (c *compiler) compileParticle(p *xsd.Particle, where string) (*model.ElementCollection, error) {
	col := &model.ElementCollection{Kind: model.Sequence}
	if p.Kind == xsd.Choice {
		col.Kind = model.Choice
	}
	for _, term := range p.Terms {
		switch {
		case term.Element != nil:
			item, err := c.compileChild(term.Element, where)
			if err != nil {
				return nil, err
			}
			col.Items = append(col.Items, item)
		case term.Group != nil:
			nested, err := c.compileParticle(term.Group, where)
			if err != nil {
				return nil, err
			}
			col.Items = append(col.Items, &model.GroupItem{Collection: nested})
		case term.Any:
			col.Items = append(col.Items, &model.WildcardItem{})
		}
	}
	return col, nil
}

// compileChild maps one element term to a collection item. Terms may
// reference a top-level element, reference a named type, or declare an
// anonymous type that becomes a class named after the element.
func (c *compiler) compileChild(le *xsd.LocalElement, where string) (model.Item, error) {
	switch {
	case le.Ref != (xml.Name{}):
		ref := c.normalize(le.Ref)
		if ref.Space != c.schema.TargetNS {
			return nil, &xsd.UnsupportedError{Construct: "reference to foreign namespace " + ref.Space, In: where}
		}
		cls, ok := c.elements[ref.Local]
		if !ok {
			return nil, &UnresolvedTypeError{Name: ref}
		}
		return &model.ChildItem{Name: ref.Local, Class: cls}, nil
	case le.Inline != nil:
		cls, err := c.inlineClass(le.Name, le.Doc, le.Inline)
		if err != nil {
			return nil, err
		}
		return &model.ChildItem{Name: le.Name, Class: cls}, nil
	case le.Type != (xml.Name{}):
		cls, err := c.classRef(le.Type, where+"/"+le.Name)
		if err != nil {
			return nil, err
		}
		return &model.ChildItem{Name: le.Name, Class: cls}, nil
	}
	return nil, &xsd.UnsupportedError{Construct: "local element " + le.Name + " without a type", In: where}
}

// inlineClass compiles the anonymous type of a locally declared element
// into a class named after the element itself.
func (c *compiler) inlineClass(name, doc string, ct *xsd.ComplexType) (*model.Class, error) {
	cls := &model.Class{Name: name, Doc: doc, Capabilities: model.SchemaElement}
	if err := c.m.Add(cls); err != nil {
		return nil, err
	}
	return cls, c.fillClass(cls, ct)
}

// classRef resolves a type reference in complex type position to its
// class.
func (c *compiler) classRef(ref xml.Name, where string) (*model.Class, error) {
	ref = c.normalize(ref)
	if ref.Space == xsd.SchemaNS {
		return nil, &xsd.UnsupportedError{Construct: "built-in type xs:" + ref.Local + " in complex type position", In: where}
	}
	if ref.Space != c.schema.TargetNS {
		return nil, &xsd.UnsupportedError{Construct: "reference to foreign namespace " + ref.Space, In: where}
	}
	if cls, ok := c.classes[ref]; ok {
		return cls, nil
	}
	if _, ok := c.simpleDecls[ref]; ok {
		return nil, &xsd.UnsupportedError{Construct: "simple type " + ref.Local + " in complex type position", In: where}
	}
	return nil, &UnresolvedTypeError{Name: ref}
}
