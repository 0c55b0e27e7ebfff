package deploy

import (
	"bufio"
	"strings"
)

// Diagnostic is one finding from the template linter.
type Diagnostic struct {
	Location string // file(line,col)
	Severity string // Error, Warning, Info
	Message  string
}

// Fatal reports whether the finding must halt the pipeline.
func (d Diagnostic) Fatal() bool {
	return d.Severity == "Error"
}

// ParseDiagnostics extracts linter findings from raw tool output. Lines look
// like:
//
//	/work/infra/main.bicep(12,7) : Warning no-unused-params: Parameter "x" ...
//
// Severity is read from the dedicated field after the location separator.
// Matching on that field, not on substrings anywhere in the line, keeps a
// resource name that happens to contain "Error" from being classified as
// fatal.
func ParseDiagnostics(output string) []Diagnostic {
	var diags []Diagnostic
	sc := bufio.NewScanner(strings.NewReader(output))
	for sc.Scan() {
		line := sc.Text()
		sep := strings.Index(line, ") : ")
		if sep < 0 {
			continue
		}
		location := strings.TrimSpace(line[:sep+1])
		rest := line[sep+len(") : "):]
		severity, message, _ := strings.Cut(rest, " ")
		switch severity {
		case "Error", "Warning", "Info":
			diags = append(diags, Diagnostic{Location: location, Severity: severity, Message: message})
		}
	}
	return diags
}

// HasErrors reports whether any finding is error severity.
func HasErrors(diags []Diagnostic) bool {
	for _, d := range diags {
		if d.Fatal() {
			return true
		}
	}
	return false
}
