package utils

import (
	"strings"
	"time"
)

// ProjectMarker tags every resource group this tool owns; discovery matches
// on it during teardown.
const ProjectMarker = "acssoln"

const groupPrefix = "rg-" + ProjectMarker

// ResourceGroupName derives the default resource-group name for an
// environment. Deterministic: the same environment always yields the same
// name.
func ResourceGroupName(environment string) string {
	return groupPrefix + "-" + environment
}

// OwnedGroupName reports whether a resource-group name belongs to this
// project, by prefix convention or embedded marker.
func OwnedGroupName(name string) bool {
	return strings.HasPrefix(name, groupPrefix) || strings.Contains(name, ProjectMarker)
}

// DeploymentName generates the per-execution deployment identifier. The
// timestamp component keeps reruns from colliding on the platform side.
func DeploymentName(now time.Time) string {
	return "acs-deploy-" + now.Format("20060102-150405")
}
