package agent

import (
	"encoding/json"
	"testing"
)

func TestResultsPreserveInsertionOrder(t *testing.T) {
	r := NewResults()
	r.Set("b", 1)
	r.Set("a", 2)
	r.Set("c", 3)
	keys := r.Keys()
	want := []string{"b", "a", "c"}
	for i, k := range want {
		if keys[i] != k {
			t.Fatalf("key %d: expected %q, got %q", i, k, keys[i])
		}
	}
}

func TestResultsLastWriteWinsKeepsPosition(t *testing.T) {
	r := NewResults()
	r.Set("a", "first")
	r.Set("b", "other")
	r.Set("a", "second")
	if r.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", r.Len())
	}
	if r.Keys()[0] != "a" {
		t.Fatalf("overwrite moved key position: %v", r.Keys())
	}
	v, _ := r.Get("a")
	if v != "second" {
		t.Fatalf("expected overwritten value, got %v", v)
	}
}

func TestResultsMarshalJSONOrdered(t *testing.T) {
	r := NewResults()
	r.Set("z_first", 1)
	r.Set("a_second", 2)
	out, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"z_first":1,"a_second":2}`
	if string(out) != want {
		t.Fatalf("expected %s, got %s", want, out)
	}
}
