// Package deploy drives the forward deployment pipeline: prerequisite checks,
// template validation, resource-group reconciliation, change preview, the
// confirmation gate, execution and output extraction. The pipeline is a
// strictly sequential state machine; every cloud touchpoint goes through the
// azcli.Platform interface.
package deploy

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"

	"github.com/StormyDevil/azure-communication-services-solution/internal/azcli"
	"github.com/StormyDevil/azure-communication-services-solution/internal/models"
	"github.com/StormyDevil/azure-communication-services-solution/internal/prompts"
	"github.com/StormyDevil/azure-communication-services-solution/internal/utils"
)

// Options are the raw CLI inputs of one deployment run, before resolution.
type Options struct {
	Environment   models.Environment
	Location      string // empty triggers interactive selection
	ResourceGroup string // empty takes the environment default
	WhatIfOnly    bool
}

// Pipeline executes one deployment run. Zero shared state across runs: a
// fresh Pipeline is built per invocation.
type Pipeline struct {
	Platform azcli.Platform
	Prompter prompts.Prompter
	Out      io.Writer
	Root     string // template root directory
	Now      func() time.Time
}

// New wires a pipeline with the defaults used by the CLI entrypoint.
func New(platform azcli.Platform, prompter prompts.Prompter, out io.Writer) *Pipeline {
	return &Pipeline{
		Platform: platform,
		Prompter: prompter,
		Out:      out,
		Root:     utils.DefaultTemplateRoot,
		Now:      time.Now,
	}
}

// Run walks the stage sequence. It returns nil on success (including a
// completed what-if-only run), models.ErrCancelled when the operator declines
// the confirmation gate, and a typed fatal error otherwise. Nothing is
// retried; rerunning the command is the only retry path.
func (p *Pipeline) Run(opts Options) error {
	if err := azcli.EnsurePrerequisites(p.Platform, p.Out); err != nil {
		return err
	}

	dc := p.resolveContext(opts)
	p.printContext(dc)

	if err := p.validateTemplate(dc); err != nil {
		return err
	}
	if err := p.reconcileResourceGroup(dc); err != nil {
		return err
	}
	p.previewChanges(dc)

	if dc.WhatIfOnly {
		fmt.Fprintln(p.Out, "\n🔎 What-if complete; no changes were applied.")
		return nil
	}
	if !p.Prompter.Confirm("Proceed with deployment?", false) {
		fmt.Fprintln(p.Out, "🚫 Deployment cancelled; nothing was applied.")
		return models.ErrCancelled
	}

	outcome, err := p.execute(dc)
	if err != nil {
		return err
	}
	p.printOutcome(dc, outcome)
	return nil
}

// resolveContext builds the immutable DeploymentContext. Resolution completes
// fully, defaulting included, before any billable action is attempted.
func (p *Pipeline) resolveContext(opts Options) models.DeploymentContext {
	loc := prompts.Resolve(p.Prompter, p.Out, prompts.LocationChoices(), opts.Location, models.DefaultLocationCode)
	if _, known := models.LocationByCode(loc); !known {
		fmt.Fprintln(p.Out, color.YellowString(
			"⚠️  No data residency on record for %q; defaulting to %s", loc, models.FallbackDataResidency))
	}

	group := opts.ResourceGroup
	if group == "" {
		group = utils.ResourceGroupName(string(opts.Environment))
	}

	return models.DeploymentContext{
		Environment:    opts.Environment,
		Location:       loc,
		DataResidency:  models.ResidencyFor(loc),
		ResourceGroup:  group,
		TemplatePath:   utils.TemplatePath(p.Root),
		ParametersPath: utils.ParametersPath(p.Root, string(opts.Environment)),
		DeploymentName: utils.DeploymentName(p.Now()),
		WhatIfOnly:     opts.WhatIfOnly,
	}
}

func (p *Pipeline) printContext(dc models.DeploymentContext) {
	fmt.Fprintln(p.Out, "\n"+strings.Repeat("=", 60))
	fmt.Fprintf(p.Out, "🚀 DEPLOYMENT: %s\n", dc.DeploymentName)
	fmt.Fprintln(p.Out, strings.Repeat("=", 60))
	fmt.Fprintf(p.Out, "   Environment:    %s\n", dc.Environment)
	fmt.Fprintf(p.Out, "   Location:       %s\n", dc.Location)
	fmt.Fprintf(p.Out, "   Data residency: %s\n", dc.DataResidency)
	fmt.Fprintf(p.Out, "   Resource group: %s\n", dc.ResourceGroup)
	fmt.Fprintf(p.Out, "   Template:       %s\n", dc.TemplatePath)
	fmt.Fprintf(p.Out, "   Parameters:     %s\n", dc.ParametersPath)
	if dc.WhatIfOnly {
		fmt.Fprintln(p.Out, color.CyanString("   Mode:           what-if (no changes will be applied)"))
	}
}

// validateTemplate compiles then lints. A broken template halts the pipeline
// before any cloud side effect; lint warnings pass through, error-severity
// findings are fatal.
func (p *Pipeline) validateTemplate(dc models.DeploymentContext) error {
	fmt.Fprintln(p.Out, "\n📐 Validating template...")
	if err := p.Platform.BuildTemplate(dc.TemplatePath); err != nil {
		return &models.ValidationError{TemplatePath: dc.TemplatePath, Cause: err}
	}

	out, err := p.Platform.LintTemplate(dc.TemplatePath)
	if err != nil {
		fmt.Fprintln(p.Out, color.YellowString("⚠️  Linter unavailable: %v", err))
		return nil
	}
	diags := ParseDiagnostics(out)
	if HasErrors(diags) {
		return &models.ValidationError{
			TemplatePath: dc.TemplatePath,
			Diagnostics:  strings.TrimSpace(out),
			Cause:        fmt.Errorf("lint reported error-severity findings"),
		}
	}
	for _, d := range diags {
		fmt.Fprintln(p.Out, color.YellowString("⚠️  %s %s %s", d.Location, d.Severity, d.Message))
	}
	fmt.Fprintln(p.Out, "✅ Template is valid")
	return nil
}

// reconcileResourceGroup creates the target group when missing, tagged with
// ownership metadata. In what-if mode creation is reported, not performed.
func (p *Pipeline) reconcileResourceGroup(dc models.DeploymentContext) error {
	exists, err := p.Platform.GroupExists(dc.ResourceGroup)
	if err != nil {
		return &models.ExecutionError{Operation: "group exists", Cause: err}
	}
	if exists {
		fmt.Fprintf(p.Out, "📦 Resource group %s exists\n", dc.ResourceGroup)
		return nil
	}
	if dc.WhatIfOnly {
		fmt.Fprintf(p.Out, "📦 Resource group %s would be created (skipped in what-if mode)\n", dc.ResourceGroup)
		return nil
	}
	fmt.Fprintf(p.Out, "📦 Creating resource group %s in %s...\n", dc.ResourceGroup, dc.Location)
	tags := map[string]string{
		"environment": string(dc.Environment),
		"project":     utils.ProjectMarker,
		"managedBy":   "acsctl",
	}
	if err := p.Platform.CreateGroup(dc.ResourceGroup, dc.Location, tags); err != nil {
		return &models.ExecutionError{Operation: "group create", Cause: err}
	}
	return nil
}

// previewChanges runs the what-if operation and displays the parsed counts.
// The stage is informational and never halts the pipeline; blocking is the
// operator's call at the confirmation gate.
func (p *Pipeline) previewChanges(dc models.DeploymentContext) {
	fmt.Fprintln(p.Out, "\n🔍 Previewing changes...")
	report, err := p.Platform.WhatIf(dc)
	if err != nil {
		fmt.Fprintln(p.Out, color.YellowString("⚠️  Preview unavailable: %v", err))
		return
	}
	cs := ParseChangeSet(report)
	fmt.Fprintf(p.Out, "   ➕ %d to create   ✏️  %d to modify   ➖ %d to delete\n", cs.Create, cs.Modify, cs.Delete)
	if cs.Total() == 0 {
		fmt.Fprintln(p.Out, "   No changes detected")
	}
}

// execute applies the template. A non-zero platform exit is fatal and its
// diagnostic text is surfaced verbatim.
func (p *Pipeline) execute(dc models.DeploymentContext) (*models.DeploymentOutcome, error) {
	fmt.Fprintf(p.Out, "\n🏗️  Applying deployment %s...\n", dc.DeploymentName)
	start := p.Now()
	outcome, err := p.Platform.Deploy(dc)
	if err != nil && outcome == nil {
		return nil, &models.ExecutionError{Operation: "deployment create", Cause: err}
	}
	if err != nil {
		// Deployment applied but the result shape was unexpected; outputs
		// will show as not available.
		fmt.Fprintln(p.Out, color.YellowString("⚠️  Could not parse deployment result: %v", err))
	}
	elapsed := strings.TrimSpace(humanize.RelTime(start, time.Now(), "", ""))
	fmt.Fprintf(p.Out, "%s (took %s)\n", color.GreenString("✅ Deployment succeeded"), elapsed)
	return outcome, nil
}

const notAvailable = "(not available)"

func (p *Pipeline) printOutcome(dc models.DeploymentContext, outcome *models.DeploymentOutcome) {
	fmt.Fprintln(p.Out, "\n"+strings.Repeat("=", 60))
	fmt.Fprintf(p.Out, "📊 DEPLOYMENT OUTPUTS: %s\n", dc.ResourceGroup)
	fmt.Fprintln(p.Out, strings.Repeat("=", 60))
	for _, name := range models.OutputNames {
		value, ok := outcome.Output(name)
		if !ok {
			value = notAvailable
		}
		fmt.Fprintf(p.Out, "   %-30s %s\n", name, value)
	}

	fmt.Fprintln(p.Out, "\n🔐 Secrets (values stored in Key Vault, never printed):")
	fmt.Fprintf(p.Out, "   %s\n", models.SecretConnectionString)
	fmt.Fprintf(p.Out, "   %s\n", models.SecretEndpoint)
	if uri, ok := outcome.Output("keyVaultUri"); ok {
		fmt.Fprintf(p.Out, "\n💡 Sample apps read them via:\n   export KEY_VAULT_URL=%s\n", uri)
	}
}
