package azcli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/StormyDevil/azure-communication-services-solution/internal/models"
	"github.com/StormyDevil/azure-communication-services-solution/internal/utils"
)

// Client is the production Platform implementation over the Azure CLI.
type Client struct {
	runner *Runner
}

// New returns a Client backed by the az binary on PATH.
func New() *Client {
	return &Client{runner: NewRunner()}
}

func (c *Client) Version() (string, error) {
	var payload struct {
		AzureCLI string `json:"azure-cli"`
	}
	res, err := c.runner.RunJSON(&payload, "", "version")
	if err != nil {
		return "", err
	}
	if !res.OK() {
		return "", fmt.Errorf("az version exited %d: %s", res.ExitCode, res.Combined())
	}
	return payload.AzureCLI, nil
}

func (c *Client) EnsureBicep() error {
	res, err := c.runner.Run("Installing Bicep extension...", "bicep", "install")
	if err != nil {
		return err
	}
	if !res.OK() {
		return fmt.Errorf("az bicep install exited %d: %s", res.ExitCode, res.Combined())
	}
	return nil
}

func (c *Client) ActiveAccount() (string, error) {
	var payload struct {
		Name string `json:"name"`
		User struct {
			Name string `json:"name"`
		} `json:"user"`
	}
	res, err := c.runner.RunJSON(&payload, "", "account", "show")
	if err != nil {
		return "", err
	}
	if !res.OK() {
		return "", fmt.Errorf("no active session: %s", strings.TrimSpace(res.Combined()))
	}
	if payload.User.Name != "" {
		return fmt.Sprintf("%s (%s)", payload.User.Name, payload.Name), nil
	}
	return payload.Name, nil
}

func (c *Client) Login() error {
	code, err := c.runner.RunInteractive("login")
	if err != nil {
		return err
	}
	if code != 0 {
		return fmt.Errorf("az login exited %d", code)
	}
	return nil
}

func (c *Client) BuildTemplate(path string) error {
	res, err := c.runner.Run("Compiling template...", "bicep", "build", "-f", path)
	if err != nil {
		return err
	}
	if !res.OK() {
		return fmt.Errorf("%s", strings.TrimSpace(res.Combined()))
	}
	return nil
}

func (c *Client) LintTemplate(path string) (string, error) {
	res, err := c.runner.Run("Linting template...", "bicep", "lint", "-f", path)
	if err != nil {
		return "", err
	}
	// Lint writes diagnostics to stderr and exits zero unless the tool
	// itself broke; either way the caller gets the raw text.
	return res.Combined(), nil
}

func (c *Client) GroupExists(name string) (bool, error) {
	res, err := c.runner.Run("", "group", "exists", "-n", name)
	if err != nil {
		return false, err
	}
	if !res.OK() {
		return false, fmt.Errorf("az group exists exited %d: %s", res.ExitCode, res.Combined())
	}
	return strings.TrimSpace(res.Stdout) == "true", nil
}

func (c *Client) CreateGroup(name, location string, tags map[string]string) error {
	args := []string{"group", "create", "-n", name, "-l", location}
	if len(tags) > 0 {
		args = append(args, "--tags")
		args = append(args, formatTags(tags)...)
	}
	res, err := c.runner.Run("Creating resource group...", args...)
	if err != nil {
		return err
	}
	if !res.OK() {
		return fmt.Errorf("%s", strings.TrimSpace(res.Combined()))
	}
	return nil
}

func (c *Client) DeleteGroup(name string) error {
	res, err := c.runner.Run("", "group", "delete", "-n", name, "--yes", "--no-wait")
	if err != nil {
		return err
	}
	if !res.OK() {
		return fmt.Errorf("%s", strings.TrimSpace(res.Combined()))
	}
	return nil
}

func (c *Client) ListGroups() ([]models.ResourceGroup, error) {
	query := fmt.Sprintf(
		"[?starts_with(name, 'rg-%s') || contains(name, '%s')].{name:name, location:location, provisioningState:properties.provisioningState}",
		utils.ProjectMarker, utils.ProjectMarker)
	var groups []models.ResourceGroup
	res, err := c.runner.RunJSON(&groups, "Discovering resource groups...", "group", "list", "--query", query)
	if err != nil {
		return nil, err
	}
	if !res.OK() {
		return nil, fmt.Errorf("az group list exited %d: %s", res.ExitCode, res.Combined())
	}
	return groups, nil
}

func (c *Client) WhatIf(dc models.DeploymentContext) (string, error) {
	args := append([]string{"deployment", "group", "what-if"}, deploymentArgs(dc)...)
	res, err := c.runner.Run("Previewing changes...", args...)
	if err != nil {
		return "", err
	}
	if !res.OK() {
		return res.Combined(), fmt.Errorf("%s", strings.TrimSpace(res.Combined()))
	}
	return res.Stdout, nil
}

func (c *Client) Deploy(dc models.DeploymentContext) (*models.DeploymentOutcome, error) {
	var payload struct {
		Properties struct {
			Outputs map[string]struct {
				Value interface{} `json:"value"`
			} `json:"outputs"`
		} `json:"properties"`
	}
	args := append([]string{"deployment", "group", "create", "-n", dc.DeploymentName}, deploymentArgs(dc)...)
	res, err := c.runner.RunJSON(&payload, "Deploying...", args...)
	if err != nil && !res.OK() {
		return nil, err
	}
	if !res.OK() {
		return nil, fmt.Errorf("%s", strings.TrimSpace(res.Combined()))
	}
	if err != nil {
		// Deployment succeeded but the result shape was unexpected; report
		// the parse failure, the caller treats outputs as unavailable.
		return &models.DeploymentOutcome{Succeeded: true, Outputs: map[string]string{}}, err
	}

	outcome := &models.DeploymentOutcome{Succeeded: true, Outputs: map[string]string{}}
	for name, out := range payload.Properties.Outputs {
		if s, ok := out.Value.(string); ok {
			outcome.Outputs[name] = s
		}
	}
	return outcome, nil
}

// deploymentArgs builds the shared what-if/create argument list. The inline
// location and dataLocation parameters come last so they win over
// file-sourced values.
func deploymentArgs(dc models.DeploymentContext) []string {
	return []string{
		"-g", dc.ResourceGroup,
		"-f", dc.TemplatePath,
		"-p", "@" + dc.ParametersPath,
		"-p", "location=" + dc.Location,
		"-p", "dataLocation=" + dc.DataResidency,
	}
}

func formatTags(tags map[string]string) []string {
	keys := make([]string, 0, len(tags))
	for k := range tags {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]string, 0, len(tags))
	for _, k := range keys {
		out = append(out, k+"="+tags[k])
	}
	return out
}
