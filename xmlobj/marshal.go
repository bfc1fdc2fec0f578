package xmlobj

import "bytes"

// Marshal writes an object tree as an XML document. Elements write
// themselves unqualified: names come out exactly as the objects report
// them, with no namespace declarations or prefixes.
func Marshal(obj SchemaElement) ([]byte, error) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	if err := obj.OutputXML(w); err != nil {
		return nil, err
	}
	if err := w.Flush(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
