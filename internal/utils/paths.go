package utils

import "path/filepath"

// DefaultTemplateRoot is where the Bicep artifacts live relative to the
// working directory.
const DefaultTemplateRoot = "infra"

const templateBaseName = "main"

// TemplatePath returns the template artifact path under root.
func TemplatePath(root string) string {
	return filepath.Join(root, templateBaseName+".bicep")
}

// ParametersPath returns the per-environment parameter artifact path.
func ParametersPath(root, environment string) string {
	return filepath.Join(root, templateBaseName+"."+environment+".bicepparam")
}
