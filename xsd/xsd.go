// Package xsd parses declarations from XML Schema documents.
//
// The xsd package implements a parser for the restricted schema subset this
// project compiles: global simple types, complex types, elements and
// attribute groups. Unlike a general-purpose schema processor it does not
// dereference attribute groups or flatten nested particles; both are kept
// exactly as declared, in declaration order, because the compile package
// needs the original structure to synthesize classes and element
// collections from it.
//
// Constructs outside the subset (imports, includes, element groups,
// xs:all, xs:anyAttribute, mixed content) fail the parse with an
// *UnsupportedError. Facets that only matter for document validation
// (lengths, bounds, whiteSpace, digits) are ignored, as this project never
// validates documents.
package xsd // import "arvoren.net/strongxml/xsd"

import (
	"encoding/xml"
	"fmt"
)

// SchemaNS is the XML Schema namespace. All schema declarations live in
// this namespace; built-in primitive type references resolve into it.
const SchemaNS = "http://www.w3.org/2001/XMLSchema"

// An UnsupportedError reports a schema construct outside the supported
// subset. It is fatal: no partial declarations are returned alongside it.
type UnsupportedError struct {
	// Construct names the offending construct, e.g. "xs:anyAttribute".
	Construct string
	// In locates the construct, usually the enclosing declaration's name.
	In string
}

func (e *UnsupportedError) Error() string {
	if e.In == "" {
		return fmt.Sprintf("xsd: unsupported construct %s", e.Construct)
	}
	return fmt.Sprintf("xsd: unsupported construct %s in %s", e.Construct, e.In)
}

// A Schema holds the declarations of one schema document, each list in
// declaration order.
type Schema struct {
	// TargetNS is the target namespace all declarations belong to.
	TargetNS string
	// Doc holds top-level annotation text.
	Doc string

	SimpleTypes  []*SimpleType
	ComplexTypes []*ComplexType
	Elements     []*Element
	AttrGroups   []*AttrGroup
}

// A SimpleType is a named (or, for list item types, anonymous) simple type
// declaration. Exactly one of Restriction, List and Union is set; the
// compile package rejects declarations where that does not hold.
type SimpleType struct {
	Name string
	Doc  string

	Restriction *Restriction
	List        *List
	// Union holds the memberTypes references of a union declaration.
	// Only the first member is ever used.
	Union []xml.Name
}

// A Restriction narrows a base type with facets. Only enumeration and
// pattern facets are recorded; a declaration carrying both is outside the
// subset and rejected during compilation.
type Restriction struct {
	Base    xml.Name
	Enums   []Enum
	Pattern string
}

// An Enum is one enumeration facet: a legal value and its documentation.
type Enum struct {
	Value string
	Doc   string
}

// A List declares a whitespace-separated list type. The item type is
// either a reference (ItemType) or a nested anonymous simple type (Item).
type List struct {
	ItemType xml.Name
	Item     *SimpleType
}

// A ComplexType describes an element shape: attributes plus either nested
// character data (simple content) or structured children (a particle).
type ComplexType struct {
	// Name is empty for inline types; the compile package names those
	// after the element that declares them.
	Name string
	Doc  string

	// Attrs lists attribute declarations and attribute-group references
	// in declaration order.
	Attrs []AttrTerm
	// Particle is the content model, nil when the type has none.
	Particle *Particle
	// SimpleBase is the extension base of a simpleContent declaration;
	// when set, the type's content is character data of that type.
	SimpleBase xml.Name
	// Base is the extension base of a complexContent declaration. It is
	// recorded as a supertype reference and not otherwise expanded.
	Base xml.Name
}

// An AttrTerm is one entry in an attribute list: a direct attribute
// declaration, or a reference to an attribute group.
type AttrTerm struct {
	Attribute *Attribute // nil for group references
	GroupRef  xml.Name   // zero for direct attributes
}

// An Attribute declares a single attribute. An attribute carries either a
// named type reference or an inline simple type; with neither, its values
// are plain strings.
type Attribute struct {
	Name     string
	Doc      string
	Type     xml.Name
	Inline   *SimpleType
	Required bool
}

// An AttrGroup is a named, reusable set of attribute declarations. Groups
// may reference further groups.
type AttrGroup struct {
	Name  string
	Doc   string
	Attrs []AttrTerm
}

// ParticleKind distinguishes the two collection modes of a content model.
type ParticleKind int

const (
	Sequence ParticleKind = iota
	Choice
)

func (k ParticleKind) String() string {
	if k == Choice {
		return "choice"
	}
	return "sequence"
}

// A Particle is one sequence or choice node of a content model. Terms
// appear in document order and may nest arbitrarily.
type Particle struct {
	Kind  ParticleKind
	Terms []Term
}

// A Term is one slot of a particle: a child element, a nested particle,
// or a wildcard. Exactly one field is set.
type Term struct {
	Element *LocalElement
	Group   *Particle
	Any     bool
}

// A LocalElement is an element term inside a particle. A reference to a
// top-level element sets Ref; a local declaration sets Name plus a type
// reference or an inline complex type.
type LocalElement struct {
	Name   string
	Doc    string
	Ref    xml.Name
	Type   xml.Name
	Inline *ComplexType
}

// A top-level Element declaration. The element either references a named
// type or declares an anonymous inline one; with neither, the element is a
// bare marker carrying no attributes or content.
type Element struct {
	Name   string
	Doc    string
	Type   xml.Name
	Inline *ComplexType
}
