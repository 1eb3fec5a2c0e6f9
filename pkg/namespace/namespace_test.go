package namespace

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func ExampleLookup() {
	for _, name := range []string{"official", "NAMED", " Mojang ", "yarn"} {
		ns, ok := Lookup(name)
		fmt.Println(ns, ok)
	}
	// output:
	// official true
	// named true
	// mojang true
	// unknown false
}

func TestLookup(t *testing.T) {
	for name, tc := range map[string]struct {
		in     string
		want   Namespace
		wantOk bool
	}{
		"degenerate":         {want: Unknown},
		"official":           {in: "official", want: Official, wantOk: true},
		"intermediary":       {in: "intermediary", want: Intermediary, wantOk: true},
		"srg":                {in: "srg", want: Srg, wantOk: true},
		"mojang":             {in: "mojang", want: Mojang, wantOk: true},
		"named":              {in: "named", want: Named, wantOk: true},
		"uppercase":          {in: "INTERMEDIARY", want: Intermediary, wantOk: true},
		"mixed case":         {in: "Srg", want: Srg, wantOk: true},
		"unknown is not err": {in: "hashed", want: Unknown},
		"unknown literal":    {in: "unknown", want: Unknown},
	} {
		t.Run(name, func(t *testing.T) {
			got, ok := Lookup(tc.in)
			if ok != tc.wantOk {
				t.Errorf("ok: want %t, got %t", tc.wantOk, ok)
			}
			if got != tc.want {
				t.Errorf("namespace: want %v, got %v", tc.want, got)
			}
		})
	}
}

func TestStringRoundTrip(t *testing.T) {
	for _, ns := range All() {
		got, ok := Lookup(ns.String())
		if !ok || got != ns {
			t.Errorf("Lookup(%q): want %v, got %v (%t)", ns.String(), ns, got, ok)
		}
	}
}

func TestAll(t *testing.T) {
	want := []Namespace{Official, Intermediary, Srg, Mojang, Named}
	if diff := cmp.Diff(want, All()); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestInvalidString(t *testing.T) {
	if got := Namespace(42).String(); got != "Namespace(42)" {
		t.Errorf("got %q", got)
	}
	if Namespace(42).Valid() || Unknown.Valid() {
		t.Error("expected invalid")
	}
}

func TestTextMarshaling(t *testing.T) {
	type doc struct {
		From Namespace            `json:"from"`
		Seen map[Namespace]string `json:"seen"`
	}
	want := doc{From: Mojang, Seen: map[Namespace]string{Named: "x", Official: "a"}}

	data, err := json.Marshal(want)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(`{"from":"mojang","seen":{"named":"x","official":"a"}}`, string(data)); diff != "" {
		t.Errorf("marshal (-want +got):\n%s", diff)
	}

	var got doc
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("unmarshal (-want +got):\n%s", diff)
	}

	if err := json.Unmarshal([]byte(`{"from":"hashed"}`), &got); err == nil {
		t.Error("expected error for unknown namespace")
	}
	if _, err := Unknown.MarshalText(); err == nil {
		t.Error("expected error marshaling Unknown")
	}
}

func TestSet(t *testing.T) {
	s := NewSet(Named, Official, Unknown)
	if !s.Has(Named) || !s.Has(Official) {
		t.Errorf("missing members: %v", s)
	}
	if s.Has(Srg) || s.Has(Unknown) {
		t.Errorf("unexpected members: %v", s)
	}
	if s.Len() != 2 {
		t.Errorf("len: want 2, got %d", s.Len())
	}
	if diff := cmp.Diff([]Namespace{Official, Named}, s.Slice()); diff != "" {
		t.Errorf("slice (-want +got):\n%s", diff)
	}
	u := s.Union(NewSet(Srg))
	if got := u.String(); got != "{official,srg,named}" {
		t.Errorf("union: got %s", got)
	}
	var empty Set
	if empty.Len() != 0 || empty.String() != "{}" {
		t.Errorf("empty set: %v", empty)
	}
}
