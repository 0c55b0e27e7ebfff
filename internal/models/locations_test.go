package models

import "testing"

func TestLocationLookupIsDeterministic(t *testing.T) {
	for _, l := range Locations() {
		got, ok := LocationByCode(l.Code)
		if !ok {
			t.Fatalf("catalogue entry %q not found by its own code", l.Code)
		}
		if got != l {
			t.Errorf("lookup for %q returned %+v, want %+v", l.Code, got, l)
		}
		if ResidencyFor(l.Code) != l.DataResidency {
			t.Errorf("residency for %q = %q, want %q", l.Code, ResidencyFor(l.Code), l.DataResidency)
		}
	}
}

func TestResidencyFallbackForUnknownCode(t *testing.T) {
	if got := ResidencyFor("neptunecentral"); got != FallbackDataResidency {
		t.Errorf("unknown code residency = %q, want %q", got, FallbackDataResidency)
	}
	if _, ok := LocationByCode("neptunecentral"); ok {
		t.Error("unknown code should not resolve in the catalogue")
	}
}

func TestDefaultLocationIsInCatalogue(t *testing.T) {
	if _, ok := LocationByCode(DefaultLocationCode); !ok {
		t.Fatalf("default location %q missing from catalogue", DefaultLocationCode)
	}
}

func TestParseEnvironment(t *testing.T) {
	for _, s := range []string{"dev", "staging", "prod"} {
		if _, err := ParseEnvironment(s); err != nil {
			t.Errorf("ParseEnvironment(%q) returned error: %v", s, err)
		}
	}
	if _, err := ParseEnvironment("qa"); err == nil {
		t.Error("expected error for unknown environment")
	}
}
