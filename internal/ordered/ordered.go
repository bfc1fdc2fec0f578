// Package ordered provides ordered, deterministic traversal of maps.
package ordered

import (
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Keys returns the keys of m in sorted order.
func Keys[M ~map[K]V, K constraints.Ordered, V any](m M) []K {
	keys := maps.Keys(m)
	slices.Sort(keys)
	return keys
}

// Range calls fn on every entry of m, in sorted key order.
func Range[M ~map[K]V, K constraints.Ordered, V any](m M, fn func(K, V)) {
	for _, k := range Keys(m) {
		fn(k, m[k])
	}
}
