package xmlobj

import (
	"encoding/xml"
	"errors"

	"arvoren.net/strongxml/model"
	"arvoren.net/strongxml/xmldoc"
)

// Read parses an XML document and builds its object tree. The root
// element is constructed through the registry; descendants are created
// by their parents. Element attributes and text content arrive through
// SetAttribute, text under the name Content.
//
// Objects that construct their own children (ChildFactory) are asked
// first; when an object has no factory or its factory declines the
// name, the child is constructed from the registry and added instead.
// Documents whose shape exceeds what an object grants fail with
// *CapabilityError; element names neither a factory nor the registry
// admits fail with *UnknownChildError. No partial tree is returned.
func Read(data []byte, reg *Registry) (SchemaElement, error) {
	root, err := xmldoc.Parse(data)
	if err != nil {
		return nil, err
	}
	return ReadElement(root, reg)
}

// ReadElement is like Read, for documents already parsed into element
// trees.
func ReadElement(root *xmldoc.Element, reg *Registry) (SchemaElement, error) {
	obj, err := reg.New(root.Name.Local)
	if err != nil {
		return nil, err
	}
	if err := fill(obj, root, reg); err != nil {
		return nil, err
	}
	return obj, nil
}

func fill(obj SchemaElement, el *xmldoc.Element, reg *Registry) error {
	if err := setValues(obj, el); err != nil {
		return err
	}
	for _, child := range el.Children {
		childObj, err := makeChild(obj, el.Name.Local, child.Name.Local, reg)
		if err != nil {
			return err
		}
		if err := fill(childObj, child, reg); err != nil {
			return err
		}
	}
	return nil
}

// setValues feeds an element's attributes and text content to obj.
// Namespace declarations are not document values and are skipped.
func setValues(obj SchemaElement, el *xmldoc.Element) error {
	var attrs []xml.Attr
	for _, a := range el.Attrs {
		if a.Name.Space == "xmlns" || a.Name.Local == "xmlns" {
			continue
		}
		attrs = append(attrs, a)
	}
	if len(attrs) == 0 && el.Text == "" {
		return nil
	}
	setter, ok := obj.(AttributeSetter)
	if !ok {
		return &CapabilityError{Class: el.Name.Local, Op: "SetAttribute", Need: model.SettableAttributes}
	}
	for _, a := range attrs {
		if err := setter.SetAttribute(a.Name.Local, a.Value); err != nil {
			return err
		}
	}
	if el.Text != "" {
		return setter.SetAttribute("Content", el.Text)
	}
	return nil
}

// makeChild creates the child element called name on obj, preferring the
// object's own factory. An object without a factory, and a factory that
// declines the name, both fall through to the registry; any other
// factory error fails the read. When both tiers miss, the factory's own
// error wins, since it names the rejecting class.
func makeChild(obj SchemaElement, parentName, name string, reg *Registry) (SchemaElement, error) {
	var declined error
	if factory, ok := obj.(ChildFactory); ok {
		child, err := factory.CreateChild(name)
		if err == nil {
			return child, nil
		}
		var unknown *UnknownChildError
		var missing *CapabilityError
		if !errors.As(err, &unknown) && !errors.As(err, &missing) {
			return nil, err
		}
		declined = err
	}
	parent, ok := obj.(ParentOfChildren)
	if !ok {
		return nil, &CapabilityError{Class: parentName, Op: "AddChild", Need: model.ParentOfChildren}
	}
	child, err := reg.New(name)
	if err != nil {
		if declined != nil {
			return nil, declined
		}
		return nil, err
	}
	if err := parent.AddChild(child); err != nil {
		return nil, err
	}
	return child, nil
}
