// Package xmlobj reads and writes XML documents as object trees.
//
// Objects satisfy small capability contracts instead of one wide
// interface. Every object is a SchemaElement: it knows its parent and can
// write itself as XML. Objects with settable values are AttributeSetters,
// objects with ordered children are ParentOfChildren, and objects that
// construct their own children by element name are ChildFactories.
//
// The package provides one generic implementation, Instance, whose shape
// and capabilities come from a compiled model.Class. Instance satisfies
// all four contracts; operations a class does not grant fail with
// *CapabilityError. Code generated by the classgen package satisfies the
// same contracts with concrete structs.
//
// Read builds object trees from documents: the root element is
// constructed through a Registry, and descendants are created by their
// parents. Marshal writes a tree back out. Element names match exactly
// and namespaces are not compared; a compiled model describes a single
// namespace.
package xmlobj // import "arvoren.net/strongxml/xmlobj"

import (
	"fmt"

	"arvoren.net/strongxml/model"
)

// A SchemaElement is one element of a document: it tracks the element
// containing it and writes itself, attributes and descendants included,
// to a Writer.
type SchemaElement interface {
	Parent() SchemaElement
	SetParent(SchemaElement)
	OutputXML(w *Writer) error
}

// An AttributeSetter accepts attribute values in document form. Setting
// a name the receiver does not declare is not an error; the value is
// dropped. A value that cannot convert to the declared primitive type is
// an error, except for enumeration values, which store their sentinel
// instead.
type AttributeSetter interface {
	SetAttribute(name, value string) error
}

// A NamedElement reports the element name an object writes itself as.
// An object created under an alias keeps the alias name.
type NamedElement interface {
	ElementName() string
}

// A ParentOfChildren holds an ordered list of child elements. AddChild
// adopts the child, setting its parent; RemoveChild orphans it again.
type ParentOfChildren interface {
	Children() []SchemaElement
	ChildrenNamed(name string) []SchemaElement
	AddChild(child SchemaElement) error
	RemoveChild(child SchemaElement) error
}

// A ChildFactory constructs child elements by name and adopts them. A
// name outside the receiver's collection fails with *UnknownChildError.
type ChildFactory interface {
	CreateChild(name string) (SchemaElement, error)
}

// An UnknownChildError reports an element name that nothing in the
// receiving collection or registry admits.
type UnknownChildError struct {
	// Parent is the rejecting class, empty when the root lookup failed.
	Parent string
	Name   string
}

func (e *UnknownChildError) Error() string {
	if e.Parent == "" {
		return fmt.Sprintf("xmlobj: no class registered for element %s", e.Name)
	}
	return fmt.Sprintf("xmlobj: %s admits no child element %s", e.Parent, e.Name)
}

// A CapabilityError reports an operation the class of the receiving
// instance does not grant. A document that steers the reader into one is
// structurally wrong for its schema.
type CapabilityError struct {
	Class string
	Op    string
	Need  model.Capability
}

func (e *CapabilityError) Error() string {
	return fmt.Sprintf("xmlobj: %s does not support %s (needs %s)", e.Class, e.Op, e.Need)
}
