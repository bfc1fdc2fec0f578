package xmldoc

import "encoding/xml"

// Equal reports whether two element trees are structurally equal: same
// names, same attribute values (in any order, xmlns declarations excluded),
// same trimmed character data, and the same children in the same order.
// Namespace prefixes do not participate in the comparison; only canonical
// names do.
func Equal(a, b *Element) bool {
	return equal(a, b, 0)
}

func equal(a, b *Element, depth int) bool {
	if depth > maxDepth {
		return false
	}
	if a == nil || b == nil {
		return a == b
	}
	if a.Name != b.Name || a.Text != b.Text {
		return false
	}
	if !equalAttrs(a.Attrs, b.Attrs) {
		return false
	}
	if len(a.Children) != len(b.Children) {
		return false
	}
	for i := range a.Children {
		if !equal(a.Children[i], b.Children[i], depth+1) {
			return false
		}
	}
	return true
}

func equalAttrs(a, b []xml.Attr) bool {
	am := attrMap(a)
	bm := attrMap(b)
	if len(am) != len(bm) {
		return false
	}
	for k, v := range am {
		if w, ok := bm[k]; !ok || v != w {
			return false
		}
	}
	return true
}

func attrMap(attrs []xml.Attr) map[xml.Name]string {
	m := make(map[xml.Name]string, len(attrs))
	for _, a := range attrs {
		if a.Name.Space == "xmlns" || a.Name.Local == "xmlns" {
			continue
		}
		m[a.Name] = a.Value
	}
	return m
}
