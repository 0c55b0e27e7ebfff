// Package teardown drives the reverse pipeline: resource-group discovery,
// target resolution, the confirmation gate and batched asynchronous deletion.
// Deletion is fire-and-forget at the platform level; this pipeline's
// responsibility ends at successfully requesting it.
package teardown

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/juju/ansiterm"

	"github.com/StormyDevil/azure-communication-services-solution/internal/azcli"
	"github.com/StormyDevil/azure-communication-services-solution/internal/models"
	"github.com/StormyDevil/azure-communication-services-solution/internal/prompts"
	"github.com/StormyDevil/azure-communication-services-solution/internal/utils"
)

// ConfirmPhrase must be typed exactly, case-sensitively, to proceed without
// the force flag.
const ConfirmPhrase = "delete"

// Options are the raw CLI inputs of one teardown run.
type Options struct {
	Environment   string // optional; derives the default group name
	ResourceGroup string // explicit target, wins over everything
	All           bool   // target every discovered group
	Force         bool   // skip the typed confirmation
	DryRun        bool   // report targets, delete nothing
}

// Status tags one target's result. Queued means the platform accepted the
// delete request and continues in the background.
type Status string

const (
	StatusQueued   Status = "queued"
	StatusNotFound Status = "not-found"
	StatusFailed   Status = "failed"
)

// TargetResult is the outcome for a single resource group.
type TargetResult struct {
	Name   string
	Status Status
	Reason string // set when Status is StatusFailed
}

// Summary tallies a teardown run. A zero Summary with a nil error means
// there was nothing to do.
type Summary struct {
	Results []TargetResult
}

func (s *Summary) count(st Status) int {
	n := 0
	for _, r := range s.Results {
		if r.Status == st {
			n++
		}
	}
	return n
}

// Queued returns how many delete requests the platform accepted.
func (s *Summary) Queued() int { return s.count(StatusQueued) }

// NotFound returns how many targets had already vanished.
func (s *Summary) NotFound() int { return s.count(StatusNotFound) }

// Failed returns how many delete requests errored.
func (s *Summary) Failed() int { return s.count(StatusFailed) }

// Pipeline executes one teardown run.
type Pipeline struct {
	Platform azcli.Platform
	Prompter prompts.Prompter
	Out      io.Writer
}

// New wires a pipeline with the defaults used by the CLI entrypoint.
func New(platform azcli.Platform, prompter prompts.Prompter, out io.Writer) *Pipeline {
	return &Pipeline{Platform: platform, Prompter: prompter, Out: out}
}

// Run walks the stage sequence. It returns the summary on completion (empty
// when nothing was discovered or in dry-run mode), models.ErrCancelled when
// the operator backs out, and a typed fatal error when discovery itself
// fails. One target's failure never aborts the batch.
func (p *Pipeline) Run(opts Options) (*Summary, error) {
	if err := azcli.EnsurePrerequisites(p.Platform, p.Out); err != nil {
		return nil, err
	}

	groups, err := p.discover()
	if err != nil {
		return nil, err
	}
	if len(groups) == 0 {
		fmt.Fprintln(p.Out, "✨ No project resource groups found; nothing to tear down.")
		return &Summary{}, nil
	}

	targets, err := p.resolveTargets(opts, groups)
	if err != nil {
		return nil, err
	}
	if len(targets) == 0 {
		fmt.Fprintln(p.Out, "✨ No deletable resource groups; nothing to tear down.")
		return &Summary{}, nil
	}

	if opts.DryRun {
		fmt.Fprintf(p.Out, "\n🔎 Dry run: %d group(s) would be deleted:\n", len(targets))
		for _, t := range targets {
			fmt.Fprintf(p.Out, "   - %s\n", t)
		}
		fmt.Fprintln(p.Out, "No deletions were requested.")
		return &Summary{}, nil
	}

	if !opts.Force {
		fmt.Fprintf(p.Out, "\n⚠️  About to request deletion of %d resource group(s):\n", len(targets))
		for _, t := range targets {
			fmt.Fprintf(p.Out, "   - %s\n", t)
		}
		typed := p.Prompter.Input(fmt.Sprintf("Type '%s' to confirm:", ConfirmPhrase))
		if typed != ConfirmPhrase {
			fmt.Fprintln(p.Out, "🚫 Teardown cancelled; nothing was deleted.")
			return nil, models.ErrCancelled
		}
	}

	summary := p.deleteBatch(targets)
	p.printSummary(summary)
	return summary, nil
}

// discover lists the project's resource groups and renders them.
func (p *Pipeline) discover() ([]models.ResourceGroup, error) {
	groups, err := p.Platform.ListGroups()
	if err != nil {
		return nil, &models.ExecutionError{Operation: "group list", Cause: err}
	}
	if len(groups) == 0 {
		return nil, nil
	}

	fmt.Fprintf(p.Out, "\n🔍 Found %d project resource group(s):\n\n", len(groups))
	w := ansiterm.NewTabWriter(p.Out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "  \tNAME\tLOCATION\tSTATE")
	for i, g := range groups {
		state := g.ProvisioningState
		if g.Deleting() {
			state = state + " (skipped)"
		}
		fmt.Fprintf(w, "  %d\t%s\t%s\t%s\n", i+1, g.Name, g.Location, state)
	}
	w.Flush()
	return groups, nil
}

// resolveTargets applies the precedence rule, first match wins: explicit
// name > environment-derived name > all discovered > interactive selection.
// Groups the platform is already deleting are excluded from the discovered
// set before "all" or interactive selection.
func (p *Pipeline) resolveTargets(opts Options, groups []models.ResourceGroup) ([]string, error) {
	if opts.ResourceGroup != "" {
		return []string{opts.ResourceGroup}, nil
	}
	if opts.Environment != "" {
		return []string{utils.ResourceGroupName(opts.Environment)}, nil
	}

	var deletable []string
	for _, g := range groups {
		if !g.Deleting() {
			deletable = append(deletable, g.Name)
		}
	}
	if opts.All || len(deletable) == 0 {
		return deletable, nil
	}
	return p.selectTargets(deletable)
}

// selectTargets mirrors the interactive selector contract with a multi-group
// "all" outcome. Anything other than a valid number or 'a' quits without
// deleting — the safe default for a destructive menu.
func (p *Pipeline) selectTargets(deletable []string) ([]string, error) {
	raw := strings.TrimSpace(p.Prompter.Input(
		fmt.Sprintf("Select a group [1-%d], 'a' for all, 'q' to quit:", len(deletable))))
	switch raw {
	case "a", "A":
		return deletable, nil
	case "q", "Q", "":
		return nil, models.ErrCancelled
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 || n > len(deletable) {
		return nil, models.ErrCancelled
	}
	return []string{deletable[n-1]}, nil
}

// deleteBatch issues one non-blocking delete request per target,
// sequentially. Each target is re-checked first; a group can vanish between
// discovery and deletion. Failures are recorded and the batch continues.
func (p *Pipeline) deleteBatch(targets []string) *Summary {
	fmt.Fprintln(p.Out)
	summary := &Summary{}
	for _, name := range targets {
		exists, err := p.Platform.GroupExists(name)
		if err != nil {
			fmt.Fprintln(p.Out, color.RedString("❌ %s: existence check failed: %v", name, err))
			summary.Results = append(summary.Results, TargetResult{Name: name, Status: StatusFailed, Reason: err.Error()})
			continue
		}
		if !exists {
			fmt.Fprintf(p.Out, "⏭️  %s: already gone\n", name)
			summary.Results = append(summary.Results, TargetResult{Name: name, Status: StatusNotFound})
			continue
		}
		if err := p.Platform.DeleteGroup(name); err != nil {
			fmt.Fprintln(p.Out, color.RedString("❌ %s: delete request failed: %v", name, err))
			summary.Results = append(summary.Results, TargetResult{Name: name, Status: StatusFailed, Reason: err.Error()})
			continue
		}
		fmt.Fprintf(p.Out, "🗑️  %s: deletion queued\n", name)
		summary.Results = append(summary.Results, TargetResult{Name: name, Status: StatusQueued})
	}
	return summary
}

func (p *Pipeline) printSummary(s *Summary) {
	fmt.Fprintln(p.Out, "\n"+strings.Repeat("=", 60))
	fmt.Fprintf(p.Out, "📊 TEARDOWN SUMMARY: %d queued, %d not found, %d failed\n",
		s.Queued(), s.NotFound(), s.Failed())
	fmt.Fprintln(p.Out, strings.Repeat("=", 60))
	if s.Queued() > 0 {
		fmt.Fprintln(p.Out, "ℹ️  Deletion continues in the background; groups may take several minutes to disappear.")
	}
	if s.Failed() > 0 {
		fmt.Fprintln(p.Out, color.RedString("⚠️  Some delete requests failed; rerun the command to retry them."))
	}
}
