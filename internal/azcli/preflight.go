package azcli

import (
	"fmt"
	"io"

	"github.com/blang/semver/v4"
	"github.com/fatih/color"

	"github.com/StormyDevil/azure-communication-services-solution/internal/models"
)

// MinCLIVersion is the oldest Azure CLI the pipelines are known to work with.
const MinCLIVersion = "2.50.0"

const installAdvice = "Install the Azure CLI: https://learn.microsoft.com/cli/azure/install-azure-cli"

// EnsurePrerequisites runs the shared preflight of both pipelines: the base
// tool must be callable and recent enough (fatal otherwise), the Bicep
// extension and the login session self-heal instead of failing.
func EnsurePrerequisites(p Platform, out io.Writer) error {
	ver, err := p.Version()
	if err != nil {
		return &models.EnvironmentError{Tool: "Azure CLI", Advice: installAdvice, Cause: err}
	}
	fmt.Fprintf(out, "🔧 Found Azure CLI %s\n", ver)

	if v, perr := semver.ParseTolerant(ver); perr != nil {
		fmt.Fprintln(out, color.YellowString("⚠️  Could not parse CLI version %q; continuing", ver))
	} else if min := semver.MustParse(MinCLIVersion); v.LT(min) {
		return &models.EnvironmentError{
			Tool:   "Azure CLI",
			Advice: fmt.Sprintf("Version %s is older than the required %s. Run 'az upgrade'.", ver, MinCLIVersion),
			Cause:  fmt.Errorf("version %s below minimum %s", ver, MinCLIVersion),
		}
	}

	if err := p.EnsureBicep(); err != nil {
		// Non-fatal here: template validation will halt the pipeline with
		// the compiler's own diagnostic if Bicep is genuinely unusable.
		fmt.Fprintln(out, color.YellowString("⚠️  Bicep extension install failed: %v", err))
	}

	account, err := p.ActiveAccount()
	if err != nil {
		fmt.Fprintln(out, "🔑 No active session; starting interactive login...")
		if err := p.Login(); err != nil {
			return &models.EnvironmentError{Tool: "Azure CLI login", Cause: err}
		}
		if account, err = p.ActiveAccount(); err != nil {
			return &models.EnvironmentError{Tool: "Azure CLI login", Cause: err}
		}
	}
	fmt.Fprintf(out, "👤 Signed in as %s\n", account)
	return nil
}
