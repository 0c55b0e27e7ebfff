package teardown

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/StormyDevil/azure-communication-services-solution/internal/models"
)

type scriptedPrompter struct {
	inputs   []string
	confirms []bool
}

func (s *scriptedPrompter) Input(string) string {
	if len(s.inputs) == 0 {
		return ""
	}
	v := s.inputs[0]
	s.inputs = s.inputs[1:]
	return v
}

func (s *scriptedPrompter) Confirm(_ string, def bool) bool {
	if len(s.confirms) == 0 {
		return def
	}
	v := s.confirms[0]
	s.confirms = s.confirms[1:]
	return v
}

// fakePlatform scripts discovery and per-group deletion behavior and records
// every call.
type fakePlatform struct {
	calls []string

	groups    []models.ResourceGroup
	listErr   error
	missing   map[string]bool  // groups that vanished after discovery
	deleteErr map[string]error // per-group delete failures
}

func (f *fakePlatform) record(call string) { f.calls = append(f.calls, call) }

func (f *fakePlatform) count(prefix string) int {
	n := 0
	for _, c := range f.calls {
		if strings.HasPrefix(c, prefix) {
			n++
		}
	}
	return n
}

func (f *fakePlatform) Version() (string, error)       { f.record("version"); return "2.61.0", nil }
func (f *fakePlatform) EnsureBicep() error             { f.record("bicep install"); return nil }
func (f *fakePlatform) ActiveAccount() (string, error) { f.record("account show"); return "dev@example.com", nil }
func (f *fakePlatform) Login() error                   { f.record("login"); return nil }
func (f *fakePlatform) BuildTemplate(string) error     { f.record("bicep build"); return nil }
func (f *fakePlatform) LintTemplate(string) (string, error) {
	f.record("bicep lint")
	return "", nil
}
func (f *fakePlatform) GroupExists(name string) (bool, error) {
	f.record("group exists:" + name)
	return !f.missing[name], nil
}
func (f *fakePlatform) CreateGroup(name, location string, tags map[string]string) error {
	f.record("group create:" + name)
	return nil
}
func (f *fakePlatform) DeleteGroup(name string) error {
	f.record("group delete:" + name)
	if err, ok := f.deleteErr[name]; ok {
		return err
	}
	return nil
}
func (f *fakePlatform) ListGroups() ([]models.ResourceGroup, error) {
	f.record("group list")
	return f.groups, f.listErr
}
func (f *fakePlatform) WhatIf(models.DeploymentContext) (string, error) {
	f.record("what-if")
	return "", nil
}
func (f *fakePlatform) Deploy(models.DeploymentContext) (*models.DeploymentOutcome, error) {
	f.record("deployment create")
	return nil, nil
}

func group(name string) models.ResourceGroup {
	return models.ResourceGroup{Name: name, Location: "eastus", ProvisioningState: "Succeeded"}
}

func newTestPipeline(f *fakePlatform, p *scriptedPrompter) (*Pipeline, *bytes.Buffer) {
	var out bytes.Buffer
	return New(f, p, &out), &out
}

func TestEmptyDiscoveryIsNothingToDo(t *testing.T) {
	fake := &fakePlatform{}
	pipe, out := newTestPipeline(fake, &scriptedPrompter{})

	summary, err := pipe.Run(Options{All: true, Force: true})

	require.NoError(t, err)
	require.NotNil(t, summary)
	assert.Empty(t, summary.Results)
	assert.Equal(t, 0, models.ExitCode(err))
	assert.Zero(t, fake.count("group delete"), "no delete may be issued when nothing was discovered")
	assert.Contains(t, out.String(), "nothing to tear down")
}

func TestBatchContinuesPastFailedTarget(t *testing.T) {
	fake := &fakePlatform{
		groups: []models.ResourceGroup{
			group("rg-acssoln-dev"),
			group("rg-acssoln-staging"),
			group("rg-acssoln-prod"),
		},
		deleteErr: map[string]error{
			"rg-acssoln-staging": errors.New("DeleteFailed: lock in place"),
		},
	}
	pipe, _ := newTestPipeline(fake, &scriptedPrompter{})

	summary, err := pipe.Run(Options{All: true, Force: true})

	require.NoError(t, err)
	assert.Equal(t, 1, fake.count("group delete:rg-acssoln-prod"), "batch aborted instead of continuing")
	assert.Equal(t, 2, summary.Queued())
	assert.Equal(t, 1, summary.Failed())
	assert.Equal(t, 0, summary.NotFound())
	require.Len(t, summary.Results, 3)
	assert.Equal(t, StatusFailed, summary.Results[1].Status)
	assert.Contains(t, summary.Results[1].Reason, "lock in place")
}

func TestVanishedGroupRecordedAsNotFound(t *testing.T) {
	fake := &fakePlatform{
		groups:  []models.ResourceGroup{group("rg-acssoln-dev")},
		missing: map[string]bool{"rg-acssoln-dev": true},
	}
	pipe, _ := newTestPipeline(fake, &scriptedPrompter{})

	summary, err := pipe.Run(Options{All: true, Force: true})

	require.NoError(t, err)
	assert.Equal(t, 1, summary.NotFound())
	assert.Zero(t, fake.count("group delete"))
}

func TestWrongPhraseCancelsWithZeroDeletions(t *testing.T) {
	fake := &fakePlatform{groups: []models.ResourceGroup{group("rg-acssoln-dev")}}
	for _, typed := range []string{"", "DELETE", "Delete", "yes", "delete "} {
		pipe, _ := newTestPipeline(fake, &scriptedPrompter{inputs: []string{typed}})
		_, err := pipe.Run(Options{All: true})
		require.ErrorIs(t, err, models.ErrCancelled, "phrase %q", typed)
	}
	assert.Zero(t, fake.count("group delete"))
}

func TestExactPhraseConfirms(t *testing.T) {
	fake := &fakePlatform{groups: []models.ResourceGroup{group("rg-acssoln-dev")}}
	pipe, _ := newTestPipeline(fake, &scriptedPrompter{inputs: []string{ConfirmPhrase}})

	summary, err := pipe.Run(Options{All: true})

	require.NoError(t, err)
	assert.Equal(t, 1, summary.Queued())
}

func TestDryRunDeletesNothing(t *testing.T) {
	fake := &fakePlatform{groups: []models.ResourceGroup{group("rg-acssoln-dev"), group("rg-acssoln-prod")}}
	pipe, out := newTestPipeline(fake, &scriptedPrompter{})

	summary, err := pipe.Run(Options{All: true, DryRun: true})

	require.NoError(t, err)
	assert.Empty(t, summary.Results)
	assert.Zero(t, fake.count("group delete"))
	assert.Contains(t, out.String(), "Dry run")
	assert.Contains(t, out.String(), "rg-acssoln-prod")
}

func TestExplicitGroupWinsOverEverything(t *testing.T) {
	fake := &fakePlatform{groups: []models.ResourceGroup{group("rg-acssoln-dev"), group("rg-acssoln-prod")}}
	pipe, _ := newTestPipeline(fake, &scriptedPrompter{})

	summary, err := pipe.Run(Options{
		ResourceGroup: "rg-acssoln-prod",
		Environment:   "dev",
		All:           true,
		Force:         true,
	})

	require.NoError(t, err)
	require.Len(t, summary.Results, 1)
	assert.Equal(t, "rg-acssoln-prod", summary.Results[0].Name)
}

func TestEnvironmentDerivedTarget(t *testing.T) {
	fake := &fakePlatform{groups: []models.ResourceGroup{group("rg-acssoln-dev"), group("rg-acssoln-prod")}}
	pipe, _ := newTestPipeline(fake, &scriptedPrompter{})

	summary, err := pipe.Run(Options{Environment: "staging", Force: true})

	require.NoError(t, err)
	require.Len(t, summary.Results, 1)
	assert.Equal(t, "rg-acssoln-staging", summary.Results[0].Name)
}

func TestInteractiveSingleSelection(t *testing.T) {
	fake := &fakePlatform{groups: []models.ResourceGroup{group("rg-acssoln-dev"), group("rg-acssoln-prod")}}
	pipe, _ := newTestPipeline(fake, &scriptedPrompter{inputs: []string{"2", ConfirmPhrase}})

	summary, err := pipe.Run(Options{})

	require.NoError(t, err)
	require.Len(t, summary.Results, 1)
	assert.Equal(t, "rg-acssoln-prod", summary.Results[0].Name)
}

func TestInteractiveAllAndQuit(t *testing.T) {
	groups := []models.ResourceGroup{group("rg-acssoln-dev"), group("rg-acssoln-prod")}

	fake := &fakePlatform{groups: groups}
	pipe, _ := newTestPipeline(fake, &scriptedPrompter{inputs: []string{"a", ConfirmPhrase}})
	summary, err := pipe.Run(Options{})
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Queued())

	fake = &fakePlatform{groups: groups}
	pipe, _ = newTestPipeline(fake, &scriptedPrompter{inputs: []string{"q"}})
	_, err = pipe.Run(Options{})
	require.ErrorIs(t, err, models.ErrCancelled)
	assert.Zero(t, fake.count("group delete"))
}

func TestGroupsAlreadyDeletingAreSkipped(t *testing.T) {
	fake := &fakePlatform{groups: []models.ResourceGroup{
		group("rg-acssoln-dev"),
		{Name: "rg-acssoln-old", Location: "eastus", ProvisioningState: "Deleting"},
	}}
	pipe, out := newTestPipeline(fake, &scriptedPrompter{})

	summary, err := pipe.Run(Options{All: true, Force: true})

	require.NoError(t, err)
	require.Len(t, summary.Results, 1)
	assert.Equal(t, "rg-acssoln-dev", summary.Results[0].Name)
	assert.Contains(t, out.String(), "skipped")
}
