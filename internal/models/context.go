package models

// DeploymentContext is the fully resolved input of a single deployment run.
// It is built once, after location selection and name defaulting, and never
// mutated afterwards; no cloud call happens against a partially built context.
type DeploymentContext struct {
	Environment    Environment
	Location       string
	DataResidency  string
	ResourceGroup  string
	TemplatePath   string
	ParametersPath string
	DeploymentName string
	WhatIfOnly     bool
}

// ChangeSet holds the operation counts parsed from a what-if report. The
// counts are informational; they never gate execution.
type ChangeSet struct {
	Create int
	Modify int
	Delete int
}

// Total returns the number of operations the preview reported.
func (c ChangeSet) Total() int {
	return c.Create + c.Modify + c.Delete
}

// OutputNames is the fixed set of named outputs a successful deployment is
// expected to expose, in display order. An output absent from the platform
// result is shown as not available rather than failing the run.
var OutputNames = []string{
	"communicationServiceName",
	"communicationServiceEndpoint",
	"emailServiceName",
	"senderDomain",
	"keyVaultName",
	"keyVaultUri",
}

// Key Vault secret names written by the template. The pipeline reports where
// the secrets live, never their values.
const (
	SecretConnectionString = "acs-connection-string"
	SecretEndpoint         = "acs-endpoint"
)

// DeploymentOutcome is the result of a successful execution stage.
type DeploymentOutcome struct {
	Succeeded bool
	Outputs   map[string]string
}

// Output returns the named output value and whether the platform reported it.
func (o *DeploymentOutcome) Output(name string) (string, bool) {
	v, ok := o.Outputs[name]
	return v, ok
}
