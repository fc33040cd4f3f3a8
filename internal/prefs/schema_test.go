package prefs

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRegisterNamespaceIsIdempotent(t *testing.T) {
	s := NewSchema()
	if err := s.RegisterNamespace(Namespace{Name: "general", Title: "General"}); err != nil {
		t.Fatalf("RegisterNamespace failed: %v", err)
	}
	if err := s.RegisterPreference(Namespace{Name: "general"}, Preference{Name: "ar_confirm", Type: TypeBoolean, Default: true}); err != nil {
		t.Fatalf("RegisterPreference failed: %v", err)
	}
	if err := s.RegisterNamespace(Namespace{Name: "general", Title: "Other"}); err != nil {
		t.Fatalf("second RegisterNamespace failed: %v", err)
	}

	if n := len(s.Namespaces()); n != 1 {
		t.Fatalf("expected 1 namespace, got %d", n)
	}
	ns, _ := s.Namespace("general")
	if ns.Title != "General" {
		t.Errorf("expected first registration to win, got title '%s'", ns.Title)
	}
	if n := len(s.Preferences("general")); n != 1 {
		t.Errorf("expected re-registration to keep preferences, got %d", n)
	}
}

func TestRegisterNamespaceRequiresName(t *testing.T) {
	if err := NewSchema().RegisterNamespace(Namespace{}); err == nil {
		t.Fatal("expected error for empty namespace name")
	}
}

func TestRegisterPreferenceUnknownNamespace(t *testing.T) {
	s := NewSchema()
	err := s.RegisterPreference(Namespace{Name: "dnsdb"}, Preference{Name: "page_size", Type: TypeNumber, Default: 50})
	if !errors.Is(err, ErrUnknownNamespace) {
		t.Fatalf("expected ErrUnknownNamespace, got %v", err)
	}
}

func TestRegisterPreferenceLastWriteWins(t *testing.T) {
	s := NewSchema()
	ns := Namespace{Name: "whois"}
	_ = s.RegisterNamespace(ns)
	_ = s.RegisterPreference(ns, Preference{Name: "fang", Type: TypeBoolean, Default: true})
	_ = s.RegisterPreference(ns, Preference{Name: "page_size", Type: TypeNumber, Default: 50})
	if err := s.RegisterPreference(ns, Preference{Name: "fang", Type: TypeBoolean, Default: false, Title: "Fang"}); err != nil {
		t.Fatalf("RegisterPreference failed: %v", err)
	}

	p, err := s.Lookup("whois", "fang")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if p.Default != false || p.Title != "Fang" {
		t.Errorf("expected last declaration to win, got %+v", p)
	}

	var order []string
	for _, p := range s.Preferences("whois") {
		order = append(order, p.Name)
	}
	if diff := cmp.Diff([]string{"fang", "page_size"}, order); diff != "" {
		t.Errorf("declaration order mismatch (-want +got):\n%s", diff)
	}
}

func TestRegisterPreferenceChecksDefault(t *testing.T) {
	s := NewSchema()
	ns := Namespace{Name: "whois"}
	_ = s.RegisterNamespace(ns)

	if err := s.RegisterPreference(ns, Preference{Name: "fang", Type: TypeBoolean, Default: "true"}); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("expected ErrTypeMismatch for bad default, got %v", err)
	}
	if err := s.RegisterPreference(ns, Preference{Name: "x", Type: "color"}); err == nil {
		t.Error("expected error for unknown type")
	}
	if err := s.RegisterPreference(ns, Preference{Name: "unset", Type: TypeString}); err != nil {
		t.Errorf("expected nil default to be allowed, got %v", err)
	}
}

func TestDefaultsAndVisible(t *testing.T) {
	s := NewSchema()
	ns := Namespace{Name: "whois"}
	_ = s.RegisterNamespace(ns)
	_ = s.RegisterPreferences(ns, []Preference{
		{Name: "fang", Type: TypeBoolean, Default: true},
		{Name: "page_size", Type: TypeNumber, Default: 50},
		{Name: "cursor", Type: TypeObject, Default: map[string]any{"page": 1}, Internal: true},
	})

	want := map[string]map[string]any{
		"whois": {"fang": true, "page_size": float64(50), "cursor": map[string]any{"page": float64(1)}},
	}
	defaults := s.Defaults()
	if diff := cmp.Diff(want, defaults); diff != "" {
		t.Errorf("defaults mismatch (-want +got):\n%s", diff)
	}
	defaults["whois"]["cursor"].(map[string]any)["page"] = 9
	if again := s.Defaults(); again["whois"]["cursor"].(map[string]any)["page"] != float64(1) {
		t.Error("Defaults must deep-copy values")
	}

	visible := s.Visible("whois")
	if len(visible) != 2 {
		t.Fatalf("expected 2 visible preferences, got %d", len(visible))
	}
	for _, p := range visible {
		if p.Internal {
			t.Errorf("internal preference %s leaked into Visible", p.Name)
		}
	}
}

func TestLookupErrors(t *testing.T) {
	s := NewSchema()
	_ = s.RegisterNamespace(Namespace{Name: "whois"})
	if _, err := s.Lookup("dnsdb", "x"); !errors.Is(err, ErrUnregisteredNamespace) {
		t.Errorf("expected ErrUnregisteredNamespace, got %v", err)
	}
	if _, err := s.Lookup("whois", "x"); !errors.Is(err, ErrUnregisteredPreference) {
		t.Errorf("expected ErrUnregisteredPreference, got %v", err)
	}
}

type (
	flag  bool
	label string
)

func TestTypeCheck(t *testing.T) {
	tests := []struct {
		typ   Type
		value any
		ok    bool
	}{
		{TypeBoolean, true, true},
		{TypeBoolean, "true", false},
		{TypeNumber, 3, true},
		{TypeNumber, int64(3), true},
		{TypeNumber, 2.5, true},
		{TypeNumber, "3", false},
		{TypeString, "x", true},
		{TypeString, []byte("x"), false},
		{TypeBoolean, flag(true), true},
		{TypeString, label("x"), true},
		{TypeObject, map[string]any{}, true},
		{TypeObject, map[string]int{"a": 1}, true},
		{TypeObject, map[int]string{}, false},
		{TypeArray, []any{1}, true},
		{TypeArray, []string{"a"}, true},
		{TypeArray, "a", false},
		{TypeAny, nil, true},
		{TypeAny, struct{}{}, true},
	}
	for _, tt := range tests {
		err := tt.typ.check(tt.value)
		if tt.ok && err != nil {
			t.Errorf("%s.check(%#v): unexpected error %v", tt.typ, tt.value, err)
		}
		if !tt.ok && !errors.Is(err, ErrTypeMismatch) {
			t.Errorf("%s.check(%#v): expected ErrTypeMismatch, got %v", tt.typ, tt.value, err)
		}
	}
}

func TestTypeCoerce(t *testing.T) {
	tests := []struct {
		typ   Type
		value any
		want  any
		ok    bool
	}{
		{TypeBoolean, flag(false), false, true},
		{TypeString, label("dn"), "dn", true},
		{TypeNumber, int64(7), float64(7), true},
		{TypeArray, []string{"a"}, []any{"a"}, true},
		{TypeArray, []byte{1, 2}, nil, false},
		{TypeArray, []any(nil), nil, false},
		{TypeObject, map[string]any(nil), nil, false},
		{TypeAny, []byte{1, 2}, "AQI=", true},
	}
	for _, tt := range tests {
		got, err := tt.typ.coerce(tt.value)
		if !tt.ok {
			if !errors.Is(err, ErrTypeMismatch) {
				t.Errorf("%s.coerce(%#v): expected ErrTypeMismatch, got %v", tt.typ, tt.value, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s.coerce(%#v): unexpected error %v", tt.typ, tt.value, err)
			continue
		}
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("%s.coerce(%#v) mismatch (-want +got):\n%s", tt.typ, tt.value, diff)
		}
	}
}

func TestSealRejectsDeclarations(t *testing.T) {
	s := NewSchema()
	if err := s.RegisterNamespace(whoisNS); err != nil {
		t.Fatalf("RegisterNamespace failed: %v", err)
	}
	s.Seal()
	s.Seal()
	if !s.Sealed() {
		t.Fatal("expected schema to be sealed")
	}
	if err := s.RegisterNamespace(Namespace{Name: "dnsdb"}); !errors.Is(err, ErrSchemaSealed) {
		t.Errorf("RegisterNamespace: expected ErrSchemaSealed, got %v", err)
	}
	err := s.RegisterPreference(whoisNS, Preference{Name: "fang", Type: TypeBoolean, Default: true})
	if !errors.Is(err, ErrSchemaSealed) {
		t.Errorf("RegisterPreference: expected ErrSchemaSealed, got %v", err)
	}
	if _, err := s.Lookup("whois", "fang"); !errors.Is(err, ErrUnregisteredPreference) {
		t.Errorf("expected fang to stay undeclared, got %v", err)
	}
}
