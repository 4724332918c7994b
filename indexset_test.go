package hexmesh

import (
	"reflect"
	"testing"
)

func TestIndexSet(t *testing.T) {
	var is indexSet
	if is.has(3) || is.len() != 0 || is.slice() != nil {
		t.Fatal("zero value is not empty")
	}
	for _, i := range []int{5, 3, 9, 3} {
		is.add(i)
	}
	if is.add(9) {
		t.Error("add reported a present index as new")
	}
	if got := is.slice(); !reflect.DeepEqual(got, []int{3, 5, 9}) {
		t.Errorf("got %v. want [3 5 9]", got)
	}
	is.clear()
	if is.len() != 0 || is.has(5) {
		t.Errorf("got %v after clear", is.slice())
	}
}
