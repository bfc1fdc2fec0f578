// Package xmldoc reads an XML document into a tree of elements.
//
// The xmldoc package is deliberately small: it keeps element names,
// attributes, character data and in-scope namespace prefixes, and nothing
// else. It exists so that the xsd and xmlobj packages can walk documents in
// document order and resolve namespace-prefixed strings (QNames) found in
// attribute values, which the encoding/xml package does not do on its own.
package xmldoc // import "arvoren.net/strongxml/xmldoc"

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/net/html/charset"
)

const maxDepth = 3000

var errTooDeep = errors.New("xmldoc: document nested too deeply")

// An Element is a single element of an XML document. The Text field holds
// the character data written directly inside the element, with surrounding
// white space removed. Attributes appear in document order and include any
// xmlns declarations.
type Element struct {
	Name     xml.Name
	Attrs    []xml.Attr
	Text     string
	Children []*Element

	// Namespace prefixes visible at this element, least specific first.
	// Space holds the canonical namespace, Local the prefix ("" for the
	// default namespace).
	scope []xml.Name
}

// Parse reads an XML document with a single root element and returns the
// root. Documents in encodings other than UTF-8 are converted using the
// encoding named in the XML declaration.
func Parse(data []byte) (*Element, error) {
	d := xml.NewDecoder(bytes.NewReader(data))
	d.CharsetReader = charset.NewReaderLabel

	for {
		tok, err := d.Token()
		if err != nil {
			return nil, fmt.Errorf("xmldoc: no root element: %v", err)
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		root := &Element{
			Name:  start.Name,
			Attrs: copyAttrs(start.Attr),
			scope: pushScope(nil, start.Attr),
		}
		if err := root.parse(d, 0); err != nil {
			return nil, err
		}
		return root, nil
	}
}

func (el *Element) parse(d *xml.Decoder, depth int) error {
	if depth > maxDepth {
		return errTooDeep
	}
	var text strings.Builder
	for {
		tok, err := d.Token()
		if err != nil {
			return fmt.Errorf("xmldoc: inside <%s>: %v", el.Name.Local, err)
		}
		switch tok := tok.(type) {
		case xml.StartElement:
			child := &Element{
				Name:  tok.Name,
				Attrs: copyAttrs(tok.Attr),
				scope: pushScope(el.scope, tok.Attr),
			}
			if err := child.parse(d, depth+1); err != nil {
				return err
			}
			el.Children = append(el.Children, child)
		case xml.CharData:
			text.Write(tok)
		case xml.EndElement:
			el.Text = strings.TrimSpace(text.String())
			return nil
		}
	}
}

func copyAttrs(attr []xml.Attr) []xml.Attr {
	if len(attr) == 0 {
		return nil
	}
	out := make([]xml.Attr, len(attr))
	copy(out, attr)
	return out
}

// pushScope extends a parent scope with the xmlns declarations of one start
// tag. The parent's backing array is never shared with the result, so
// sibling elements cannot clobber each other's prefixes.
func pushScope(parent []xml.Name, attr []xml.Attr) []xml.Name {
	scope := parent[:len(parent):len(parent)]
	for _, a := range attr {
		switch {
		case a.Name.Space == "xmlns":
			scope = append(scope, xml.Name{Space: a.Value, Local: a.Name.Local})
		case a.Name.Local == "xmlns":
			scope = append(scope, xml.Name{Space: a.Value})
		}
	}
	return scope
}

// Attr returns the value of the first attribute with the given namespace
// and local name. If space is empty, the namespace is ignored when
// matching. Attr returns "" when no attribute matches.
func (el *Element) Attr(space, local string) string {
	for _, a := range el.Attrs {
		if a.Name.Local != local {
			continue
		}
		if space == "" || space == a.Name.Space {
			return a.Value
		}
	}
	return ""
}

// Resolve translates a namespace-prefixed string such as "xs:string" into
// an xml.Name with the canonical namespace in its Space field, using the
// prefixes in scope at this element. A string without a prefix resolves
// against the default namespace. An unknown prefix is returned verbatim in
// the Space field.
func (el *Element) Resolve(qname string) xml.Name {
	var prefix, local string
	if i := strings.Index(qname, ":"); i >= 0 {
		prefix, local = qname[:i], qname[i+1:]
	} else {
		local = qname
	}
	for i := len(el.scope) - 1; i >= 0; i-- {
		if el.scope[i].Local == prefix {
			return xml.Name{Space: el.scope[i].Space, Local: local}
		}
	}
	return xml.Name{Space: prefix, Local: local}
}

// ResolveDefault is like Resolve, but strings without a prefix resolve to
// defaultns rather than the default namespace in scope.
func (el *Element) ResolveDefault(qname, defaultns string) xml.Name {
	if defaultns == "" || strings.Contains(qname, ":") {
		return el.Resolve(qname)
	}
	return xml.Name{Space: defaultns, Local: qname}
}

// Find returns the first direct child with the given namespace and local
// name, or nil. If space is empty, any namespace matches.
func (el *Element) Find(space, local string) *Element {
	for _, c := range el.Children {
		if c.Name.Local != local {
			continue
		}
		if space == "" || space == c.Name.Space {
			return c
		}
	}
	return nil
}
