package utils

import (
	"testing"
	"time"
)

func TestResourceGroupNameIsIdempotent(t *testing.T) {
	first := ResourceGroupName("dev")
	second := ResourceGroupName("dev")
	if first != second {
		t.Fatalf("derived names differ: %q vs %q", first, second)
	}
	if first != "rg-acssoln-dev" {
		t.Errorf("ResourceGroupName(dev) = %q, want rg-acssoln-dev", first)
	}
}

func TestOwnedGroupName(t *testing.T) {
	cases := map[string]bool{
		"rg-acssoln-dev":      true,
		"rg-acssoln-prod":     true,
		"custom-acssoln-test": true,
		"rg-other-dev":        false,
		"":                    false,
	}
	for name, want := range cases {
		if got := OwnedGroupName(name); got != want {
			t.Errorf("OwnedGroupName(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestDeploymentNameEmbedsTimestamp(t *testing.T) {
	at := time.Date(2026, 8, 25, 14, 30, 5, 0, time.UTC)
	if got := DeploymentName(at); got != "acs-deploy-20260825-143005" {
		t.Errorf("DeploymentName = %q", got)
	}
}

func TestArtifactPaths(t *testing.T) {
	if got := TemplatePath("infra"); got != "infra/main.bicep" {
		t.Errorf("TemplatePath = %q", got)
	}
	if got := ParametersPath("infra", "staging"); got != "infra/main.staging.bicepparam" {
		t.Errorf("ParametersPath = %q", got)
	}
}
