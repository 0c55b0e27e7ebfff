package deploy

import "testing"

func TestParseDiagnosticsReadsSeverityField(t *testing.T) {
	output := `/work/infra/main.bicep(4,11) : Warning no-unused-params: Parameter "tags" is declared but never used.
/work/infra/main.bicep(12,3) : Error BCP057: The name "emailSvc" does not exist in the current context.
/work/infra/main.bicep(20,7) : Info use-recent-api-versions: Consider a newer API version.`

	diags := ParseDiagnostics(output)
	if len(diags) != 3 {
		t.Fatalf("parsed %d diagnostics, want 3", len(diags))
	}
	if diags[0].Severity != "Warning" || diags[1].Severity != "Error" || diags[2].Severity != "Info" {
		t.Errorf("severities = %q %q %q", diags[0].Severity, diags[1].Severity, diags[2].Severity)
	}
	if !HasErrors(diags) {
		t.Error("expected error-severity finding to be detected")
	}
}

// A resource name containing the word "Error" must not classify the line.
func TestParseDiagnosticsIgnoresErrorSubstringInMessage(t *testing.T) {
	output := `/work/infra/main.bicep(9,5) : Warning no-hardcoded-env-urls: Found reference to "ErrorHandlerQueue".`
	diags := ParseDiagnostics(output)
	if len(diags) != 1 {
		t.Fatalf("parsed %d diagnostics, want 1", len(diags))
	}
	if HasErrors(diags) {
		t.Error("warning mentioning 'Error' in its message was classified as fatal")
	}
}

func TestParseDiagnosticsSkipsUnrelatedLines(t *testing.T) {
	output := "Build succeeded.\nWARNING: upgrade available\n"
	if diags := ParseDiagnostics(output); len(diags) != 0 {
		t.Errorf("expected no diagnostics, got %+v", diags)
	}
}
