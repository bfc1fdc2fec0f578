package ordered

import (
	"reflect"
	"testing"
)

func TestKeys(t *testing.T) {
	m := map[string]int{"web": 2, "api": 1, "db": 3}
	want := []string{"api", "db", "web"}
	if got := Keys(m); !reflect.DeepEqual(got, want) {
		t.Errorf("Keys = %v, wanted %v", got, want)
	}
	if got := Keys(map[int]string{}); len(got) != 0 {
		t.Errorf("Keys of empty map = %v", got)
	}
}

func TestRange(t *testing.T) {
	m := map[int]string{3: "three", 1: "one", 2: "two"}
	var keys []int
	var vals []string
	Range(m, func(k int, v string) {
		keys = append(keys, k)
		vals = append(vals, v)
	})
	if want := []int{1, 2, 3}; !reflect.DeepEqual(keys, want) {
		t.Errorf("Range visited keys %v, wanted %v", keys, want)
	}
	if want := []string{"one", "two", "three"}; !reflect.DeepEqual(vals, want) {
		t.Errorf("Range visited values %v, wanted %v", vals, want)
	}
}
