// Package model describes compiled schemas as classes and enumerations.
//
// A Model is the output of the compile package and the input of the
// xmlobj runtime and the classgen renderer. It holds one definition per
// schema type or element, keyed by name: classes describe element shapes
// (attribute-backed properties, text content, child element collections)
// and enumerations describe restricted string values. The model is plain
// data; nothing in it refers back to schema syntax.
package model // import "arvoren.net/strongxml/model"

import (
	"fmt"
	"strings"
)

// A Definition is a named model entry: a *Class or an *Enum.
type Definition interface {
	isDef()
}

func (*Class) isDef() {}
func (*Enum) isDef() {}

// DefName returns the name a definition is registered under.
func DefName(d Definition) string {
	switch d := d.(type) {
	case *Class:
		return d.Name
	case *Enum:
		return d.Name
	}
	return ""
}

// DefDoc returns a definition's documentation text.
func DefDoc(d Definition) string {
	switch d := d.(type) {
	case *Class:
		return d.Doc
	case *Enum:
		return d.Doc
	}
	return ""
}

// A DuplicateError reports a name registered twice in one model.
type DuplicateError struct {
	Name string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("model: %s defined twice", e.Name)
}

// A Model is the set of definitions compiled from one schema document,
// in declaration order.
type Model struct {
	// TargetNS is the schema's target namespace.
	TargetNS string
	// Doc holds the schema's top-level documentation.
	Doc string

	defs    map[string]Definition
	names   []string
	aliases map[string]*Class
	aliased []string
}

// New returns an empty model for the given target namespace.
func New(targetNS string) *Model {
	return &Model{
		TargetNS: targetNS,
		defs:     make(map[string]Definition),
		aliases:  make(map[string]*Class),
	}
}

// Add registers a definition under its name. Registering a name twice,
// whether as a definition or an alias, fails with *DuplicateError.
func (m *Model) Add(d Definition) error {
	name := DefName(d)
	if _, ok := m.defs[name]; ok {
		return &DuplicateError{Name: name}
	}
	if _, ok := m.aliases[name]; ok {
		return &DuplicateError{Name: name}
	}
	m.defs[name] = d
	m.names = append(m.names, name)
	return nil
}

// AddAlias registers an element name that maps to an existing class.
// Documents may use the alias wherever the class's own name is accepted.
func (m *Model) AddAlias(name string, c *Class) error {
	if _, ok := m.defs[name]; ok {
		return &DuplicateError{Name: name}
	}
	if _, ok := m.aliases[name]; ok {
		return &DuplicateError{Name: name}
	}
	m.aliases[name] = c
	m.aliased = append(m.aliased, name)
	return nil
}

// Def returns the definition registered under name, or nil.
func (m *Model) Def(name string) Definition {
	return m.defs[name]
}

// Defs returns all definitions in registration order.
func (m *Model) Defs() []Definition {
	defs := make([]Definition, len(m.names))
	for i, name := range m.names {
		defs[i] = m.defs[name]
	}
	return defs
}

// Aliases returns all alias names in registration order.
func (m *Model) Aliases() []string {
	return append([]string(nil), m.aliased...)
}

// AliasTarget returns the class an alias maps to, or nil.
func (m *Model) AliasTarget(name string) *Class {
	return m.aliases[name]
}

// ClassFor resolves an element name to its class, through either a
// definition or an alias. It returns nil for enumerations and unknown
// names.
func (m *Model) ClassFor(name string) *Class {
	if c, ok := m.defs[name].(*Class); ok {
		return c
	}
	return m.aliases[name]
}

// Capability flags name the runtime contracts a class's instances
// satisfy. Every instance is a schema element; the other contracts are
// granted only when the class shape calls for them.
type Capability uint8

const (
	// SchemaElement instances track their parent and write themselves
	// as XML.
	SchemaElement Capability = 1 << iota
	// SettableAttributes instances accept attribute values by name.
	SettableAttributes
	// ParentOfChildren instances hold an ordered child list.
	ParentOfChildren
	// ChildFactory instances construct their own children by element
	// name.
	ChildFactory
)

// Has reports whether all flags in want are set.
func (c Capability) Has(want Capability) bool {
	return c&want == want
}

// Names returns the set capability names in canonical order.
func (c Capability) Names() []string {
	var names []string
	if c.Has(SchemaElement) {
		names = append(names, "SchemaElement")
	}
	if c.Has(SettableAttributes) {
		names = append(names, "SettableAttributes")
	}
	if c.Has(ParentOfChildren) {
		names = append(names, "ParentOfChildren")
	}
	if c.Has(ChildFactory) {
		names = append(names, "ChildFactory")
	}
	return names
}

func (c Capability) String() string {
	if c == 0 {
		return "none"
	}
	return strings.Join(c.Names(), "|")
}

// A Class describes the instances of one element shape: its settable
// properties, its child element collection, and the capabilities its
// instances expose.
type Class struct {
	Name string
	Doc  string

	// Base names the class this one extends. Inherited members are not
	// merged in; the reference is informational.
	Base *Class

	Capabilities Capability

	// Properties lists attribute-backed properties in declaration
	// order, plus the text content property for classes with character
	// data content.
	Properties []*Property

	// Children is the element collection of classes with structured
	// content, nil otherwise.
	Children *ElementCollection

	// Enums holds enumerations declared inline by this class's
	// attributes. They are scoped to the class and not registered in
	// the model's definition table.
	Enums []*Enum
}

// Property returns the class's property with the given name, or nil.
func (c *Class) Property(name string) *Property {
	for _, p := range c.Properties {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// ContentProperty returns the property fed by element character data,
// or nil when the class has none.
func (c *Class) ContentProperty() *Property {
	for _, p := range c.Properties {
		if p.Text {
			return p
		}
	}
	return nil
}

// A Property is one settable value of a class.
type Property struct {
	Name string
	Doc  string

	// Type is the property's value space: a Primitive or an *Enum.
	Type PropertyType

	// Required marks attributes the schema declares use="required".
	// The runtime does not enforce it.
	Required bool

	// Text marks the property fed by element character data rather
	// than an attribute.
	Text bool
}

// A PropertyType is the value space of a property: a Primitive or an
// *Enum.
type PropertyType interface {
	isPropertyType()
}

func (Primitive) isPropertyType() {}
func (*Enum) isPropertyType() {}

// A Primitive is a built-in scalar value space.
type Primitive int

const (
	String Primitive = iota
	Bool
	Int
	Long
	Timestamp
)

func (p Primitive) String() string {
	switch p {
	case String:
		return "string"
	case Bool:
		return "bool"
	case Int:
		return "int"
	case Long:
		return "long"
	case Timestamp:
		return "timestamp"
	}
	return fmt.Sprintf("primitive(%d)", int(p))
}

// CollectionKind distinguishes the two child collection modes.
type CollectionKind int

const (
	Sequence CollectionKind = iota
	Choice
)

func (k CollectionKind) String() string {
	if k == Choice {
		return "choice"
	}
	return "sequence"
}

// An ElementCollection describes the legal children of a class as a tree
// of sequences and choices mirroring the schema's content model.
type ElementCollection struct {
	Kind  CollectionKind
	Items []Item
}

// An Item is one slot of an element collection: a *ChildItem, a
// *GroupItem, or a *WildcardItem.
type Item interface {
	isItem()
}

func (*ChildItem) isItem() {}
func (*GroupItem) isItem() {}
func (*WildcardItem) isItem() {}

// A ChildItem names a child element and the class its instances take.
type ChildItem struct {
	Name  string
	Class *Class
}

// A GroupItem nests a collection inside its parent collection.
type GroupItem struct {
	Collection *ElementCollection
}

// A WildcardItem admits any element the model can construct.
type WildcardItem struct{}

// ClassFor resolves a child element name against the collection,
// searching items in declaration order and descending into nested
// collections. The first match wins. It returns nil when no named item
// matches; wildcard slots never match by name.
func (c *ElementCollection) ClassFor(name string) *Class {
	for _, item := range c.Items {
		switch item := item.(type) {
		case *ChildItem:
			if item.Name == name {
				return item.Class
			}
		case *GroupItem:
			if cls := item.Collection.ClassFor(name); cls != nil {
				return cls
			}
		}
	}
	return nil
}

// HasWildcard reports whether the collection, at any depth, admits
// arbitrary elements.
func (c *ElementCollection) HasWildcard() bool {
	for _, item := range c.Items {
		switch item := item.(type) {
		case *WildcardItem:
			return true
		case *GroupItem:
			if item.Collection.HasWildcard() {
				return true
			}
		}
	}
	return false
}
