package models

import "fmt"

// Environment is the deployment environment tag. The set is fixed; parameter
// files and resource-group names are derived from it.
type Environment string

const (
	EnvDev     Environment = "dev"
	EnvStaging Environment = "staging"
	EnvProd    Environment = "prod"
)

// DefaultEnvironment is used when no environment flag is supplied.
const DefaultEnvironment = EnvDev

// ParseEnvironment validates an environment tag.
func ParseEnvironment(s string) (Environment, error) {
	switch Environment(s) {
	case EnvDev, EnvStaging, EnvProd:
		return Environment(s), nil
	}
	return "", fmt.Errorf("unknown environment %q (expected dev, staging or prod)", s)
}

// ResourceGroup describes one resource group returned by discovery.
type ResourceGroup struct {
	Name              string `json:"name"`
	Location          string `json:"location"`
	ProvisioningState string `json:"provisioningState"`
}

// Deleting reports whether the platform is already tearing the group down.
func (g ResourceGroup) Deleting() bool {
	return g.ProvisioningState == "Deleting"
}
