package config

import (
	"errors"
	"slices"
	"strings"
	"testing"
)

func TestParseDocument(t *testing.T) {
	t.Run("keeps file order", func(t *testing.T) {
		doc, err := ParseDocument([]byte("zeta: 1\nalpha: 2\nmid: 3\n"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if want := []string{"zeta", "alpha", "mid"}; !slices.Equal(doc.Keys(), want) {
			t.Fatalf("expected %v, got %v", want, doc.Keys())
		}
	})

	t.Run("empty input", func(t *testing.T) {
		for _, input := range []string{"", "# only a comment\n"} {
			doc, err := ParseDocument([]byte(input))
			if err != nil {
				t.Fatalf("unexpected error for %q: %v", input, err)
			}
			if doc.Len() != 0 {
				t.Fatalf("expected empty document for %q, got %v", input, doc.Keys())
			}
		}
	})

	t.Run("resolves aliases", func(t *testing.T) {
		doc, err := ParseDocument([]byte("features: &f [a, b]\nnumerical_vars: *f\n"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		node, ok := doc.Lookup("numerical_vars")
		if !ok || len(node.Content) != 2 {
			t.Fatalf("expected alias to resolve to a two item sequence, got %+v", node)
		}
	})

	invalid := []struct {
		name  string
		input string
		want  string
	}{
		{name: "syntax", input: "key: [unclosed\n", want: "parse YAML"},
		{name: "sequence at top level", input: "- a\n- b\n", want: "top level must be a mapping, got sequence"},
		{name: "scalar at top level", input: "just text\n", want: "top level must be a mapping"},
		{name: "duplicate key", input: "target: a\ntarget: b\n", want: `duplicate key "target"`},
		{name: "complex key", input: "? [a, b]\n: value\n", want: "mapping keys must be scalars"},
		{name: "second document", input: "target: a\n---\ntarget: b\n", want: "multiple documents are not supported"},
	}
	for _, tc := range invalid {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseDocument([]byte(tc.input))
			if !errors.Is(err, ErrParse) {
				t.Fatalf("expected ErrParse, got %v", err)
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error containing %q, got %q", tc.want, err.Error())
			}
		})
	}
}

func TestDocumentSetAndDelete(t *testing.T) {
	doc := NewDocument()
	for _, key := range []string{"a", "b", "c"} {
		if err := doc.Set(key, key); err != nil {
			t.Fatalf("Set returned error: %v", err)
		}
	}

	if err := doc.Set("a", "replaced"); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	if want := []string{"a", "b", "c"}; !slices.Equal(doc.Keys(), want) {
		t.Fatalf("expected overwrite to keep position, got %v", doc.Keys())
	}
	if node, _ := doc.Lookup("a"); node.Value != "replaced" {
		t.Fatalf("expected replaced value, got %q", node.Value)
	}

	doc.Delete("b")
	doc.Delete("missing")
	if want := []string{"a", "c"}; !slices.Equal(doc.Keys(), want) {
		t.Fatalf("expected %v after delete, got %v", want, doc.Keys())
	}
	if _, ok := doc.Lookup("b"); ok {
		t.Fatalf("expected b to be removed")
	}

	keys := doc.Keys()
	keys[0] = "mutated"
	if doc.Keys()[0] != "a" {
		t.Fatalf("expected Keys to return a copy")
	}
}

func TestZeroValueDocument(t *testing.T) {
	var doc Document
	if err := doc.Set("target", "churn"); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	node, ok := doc.Lookup("target")
	if !ok || node.Value != "churn" {
		t.Fatalf("expected target=churn, got %+v", node)
	}
	if !slices.Equal(doc.Keys(), []string{"target"}) {
		t.Fatalf("unexpected keys %v", doc.Keys())
	}
}

func TestParseDocumentLeadingMarker(t *testing.T) {
	doc, err := ParseDocument([]byte("---\ntarget: churn\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Len() != 1 {
		t.Fatalf("expected one key, got %v", doc.Keys())
	}
}

func TestNilDocument(t *testing.T) {
	var doc *Document
	if doc.Len() != 0 || doc.Keys() != nil {
		t.Fatalf("expected nil document to be empty")
	}
	if _, ok := doc.Lookup("target"); ok {
		t.Fatalf("expected lookup on nil document to miss")
	}
}
