package xmlobj

import (
	"fmt"

	"arvoren.net/strongxml/model"
)

// An Instance is one document element shaped by a compiled class. It
// satisfies all four contracts; operations its class does not grant fail
// with *CapabilityError.
type Instance struct {
	class    *model.Class
	name     string
	parent   SchemaElement
	values   map[string]interface{}
	children []SchemaElement
	reg      *Registry
}

// NewInstance returns an empty instance of class that writes itself as
// name. An empty name means the class's own name. The registry resolves
// wildcard children; nil is fine for classes without wildcards.
func NewInstance(class *model.Class, name string, reg *Registry) *Instance {
	if name == "" {
		name = class.Name
	}
	return &Instance{
		class:  class,
		name:   name,
		reg:    reg,
		values: make(map[string]interface{}),
	}
}

// Class returns the class shaping the instance.
func (inst *Instance) Class() *model.Class { return inst.class }

// ElementName returns the element name the instance was created under,
// which for instances created through an alias is the alias.
func (inst *Instance) ElementName() string { return inst.name }

func (inst *Instance) Parent() SchemaElement     { return inst.parent }
func (inst *Instance) SetParent(p SchemaElement) { inst.parent = p }

// SetAttribute converts a document value and stores it under its
// property. Names the class does not declare are dropped without error.
// Element text content arrives here under the name Content.
func (inst *Instance) SetAttribute(name, value string) error {
	if !inst.class.Capabilities.Has(model.SettableAttributes) {
		return &CapabilityError{Class: inst.class.Name, Op: "SetAttribute", Need: model.SettableAttributes}
	}
	p := inst.class.Property(name)
	if p == nil {
		return nil
	}
	v, err := parseValue(p, value)
	if err != nil {
		return err
	}
	inst.values[p.Name] = v
	return nil
}

// Attr returns a stored value in document form and whether it was set.
func (inst *Instance) Attr(name string) (string, bool) {
	p := inst.class.Property(name)
	if p == nil {
		return "", false
	}
	v, ok := inst.values[p.Name]
	if !ok {
		return "", false
	}
	return formatValue(p, v), true
}

// Value returns a stored typed value: string, bool, int64 or time.Time.
// Enumeration values are the int64 numbering of their enum.
func (inst *Instance) Value(name string) (interface{}, bool) {
	v, ok := inst.values[name]
	return v, ok
}

// Children returns the child list in the order children were added.
func (inst *Instance) Children() []SchemaElement {
	return inst.children
}

// ChildrenNamed returns the children that write themselves as name.
func (inst *Instance) ChildrenNamed(name string) []SchemaElement {
	var named []SchemaElement
	for _, child := range inst.children {
		if n, ok := child.(NamedElement); ok && n.ElementName() == name {
			named = append(named, child)
		}
	}
	return named
}

// AddChild appends child to the child list and adopts it. The child's
// name is not checked against the collection; documents read through
// Read only reach AddChild with names the collection or registry
// resolved.
func (inst *Instance) AddChild(child SchemaElement) error {
	if !inst.class.Capabilities.Has(model.ParentOfChildren) {
		return &CapabilityError{Class: inst.class.Name, Op: "AddChild", Need: model.ParentOfChildren}
	}
	child.SetParent(inst)
	inst.children = append(inst.children, child)
	return nil
}

// RemoveChild removes child from the child list and orphans it.
func (inst *Instance) RemoveChild(child SchemaElement) error {
	if !inst.class.Capabilities.Has(model.ParentOfChildren) {
		return &CapabilityError{Class: inst.class.Name, Op: "RemoveChild", Need: model.ParentOfChildren}
	}
	for i, have := range inst.children {
		if have == child {
			inst.children = append(inst.children[:i], inst.children[i+1:]...)
			child.SetParent(nil)
			return nil
		}
	}
	return fmt.Errorf("xmlobj: %s has no such child to remove", inst.class.Name)
}

// CreateChild constructs the child element called name, adds it and
// returns it. A name in the class's collection constructs that entry's
// class; when the collection holds a wildcard, any registered name is
// admitted.
func (inst *Instance) CreateChild(name string) (SchemaElement, error) {
	if !inst.class.Capabilities.Has(model.ChildFactory) || inst.class.Children == nil {
		return nil, &CapabilityError{Class: inst.class.Name, Op: "CreateChild", Need: model.ChildFactory}
	}
	var child SchemaElement
	if cls := inst.class.Children.ClassFor(name); cls != nil {
		child = NewInstance(cls, name, inst.reg)
	} else if inst.class.Children.HasWildcard() && inst.reg != nil {
		wild, err := inst.reg.New(name)
		if err != nil {
			return nil, &UnknownChildError{Parent: inst.class.Name, Name: name}
		}
		child = wild
	} else {
		return nil, &UnknownChildError{Parent: inst.class.Name, Name: name}
	}
	if err := inst.AddChild(child); err != nil {
		return nil, err
	}
	return child, nil
}

// OutputXML writes the element with its set attributes in property
// declaration order, its text content, and its children in the order
// they were added.
func (inst *Instance) OutputXML(w *Writer) error {
	if err := w.StartElement(inst.name); err != nil {
		return err
	}
	for _, p := range inst.class.Properties {
		if p.Text {
			continue
		}
		if v, ok := inst.values[p.Name]; ok {
			if err := w.Attribute(p.Name, formatValue(p, v)); err != nil {
				return err
			}
		}
	}
	if content := inst.class.ContentProperty(); content != nil {
		if v, ok := inst.values[content.Name]; ok {
			if err := w.Text(formatValue(content, v)); err != nil {
				return err
			}
		}
	}
	for _, child := range inst.children {
		if err := child.OutputXML(w); err != nil {
			return err
		}
	}
	return w.EndElement(inst.name)
}
