package azcli

import (
	"github.com/StormyDevil/azure-communication-services-solution/internal/models"
)

// Platform is the command surface both pipelines depend on, one method per
// command family. The production implementation shells out to the Azure CLI;
// tests substitute a scripted fake.
type Platform interface {
	// Version returns the installed CLI version string, or an error when the
	// base tool is not callable at all.
	Version() (string, error)

	// EnsureBicep installs the template compiler extension. Installing over
	// an existing install is a no-op on the platform side.
	EnsureBicep() error

	// ActiveAccount returns the signed-in account name, or an error when no
	// session is active.
	ActiveAccount() (string, error)

	// Login starts an interactive login.
	Login() error

	// BuildTemplate compiles the template. On failure the returned error
	// text carries the compiler diagnostics verbatim.
	BuildTemplate(path string) error

	// LintTemplate lints the template and returns the raw diagnostic output
	// regardless of severity; the caller classifies it.
	LintTemplate(path string) (string, error)

	GroupExists(name string) (bool, error)
	CreateGroup(name, location string, tags map[string]string) error

	// DeleteGroup requests asynchronous deletion; a nil error means the
	// request was accepted, not that deletion finished.
	DeleteGroup(name string) error

	// ListGroups returns the resource groups owned by this project.
	ListGroups() ([]models.ResourceGroup, error)

	// WhatIf runs the preview operation and returns its textual report.
	WhatIf(dc models.DeploymentContext) (string, error)

	// Deploy runs the apply operation and extracts the named outputs.
	Deploy(dc models.DeploymentContext) (*models.DeploymentOutcome, error)
}
