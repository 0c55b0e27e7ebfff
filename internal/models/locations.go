package models

// Location is one entry of the static region catalogue. The catalogue is
// advisory: it drives the interactive menu and data-residency defaulting, and
// an identifier outside it is still accepted and passed through unchanged.
type Location struct {
	Code          string // canonical region code, e.g. "eastus"
	DisplayName   string
	DataResidency string // ACS data location, a compliance attribute
	Geography     string // menu grouping
}

// DefaultLocationCode is used when interactive selection receives invalid
// input. FallbackDataResidency covers region codes outside the catalogue.
const (
	DefaultLocationCode   = "eastus"
	FallbackDataResidency = "United States"
)

// locationCatalogue is loaded once and never mutated.
var locationCatalogue = []Location{
	{"eastus", "East US", "United States", "Americas"},
	{"eastus2", "East US 2", "United States", "Americas"},
	{"centralus", "Central US", "United States", "Americas"},
	{"westus", "West US", "United States", "Americas"},
	{"westus2", "West US 2", "United States", "Americas"},
	{"canadacentral", "Canada Central", "Canada", "Americas"},
	{"brazilsouth", "Brazil South", "Brazil", "Americas"},
	{"northeurope", "North Europe", "Europe", "Europe"},
	{"westeurope", "West Europe", "Europe", "Europe"},
	{"switzerlandnorth", "Switzerland North", "Switzerland", "Europe"},
	{"uksouth", "UK South", "United Kingdom", "Europe"},
	{"ukwest", "UK West", "United Kingdom", "Europe"},
	{"australiaeast", "Australia East", "Australia", "Asia Pacific"},
	{"southeastasia", "Southeast Asia", "Asia Pacific", "Asia Pacific"},
	{"eastasia", "East Asia", "Asia Pacific", "Asia Pacific"},
	{"japaneast", "Japan East", "Japan", "Asia Pacific"},
	{"koreacentral", "Korea Central", "Korea", "Asia Pacific"},
	{"centralindia", "Central India", "India", "Asia Pacific"},
	{"uaenorth", "UAE North", "UAE", "Middle East & Africa"},
	{"southafricanorth", "South Africa North", "Africa", "Middle East & Africa"},
}

// Locations returns the catalogue in its stable declaration order.
func Locations() []Location {
	out := make([]Location, len(locationCatalogue))
	copy(out, locationCatalogue)
	return out
}

// LocationByCode looks up a region code in the catalogue.
func LocationByCode(code string) (Location, bool) {
	for _, l := range locationCatalogue {
		if l.Code == code {
			return l, true
		}
	}
	return Location{}, false
}

// ResidencyFor returns the ACS data location for a region code, falling back
// for codes outside the catalogue.
func ResidencyFor(code string) string {
	if l, ok := LocationByCode(code); ok {
		return l.DataResidency
	}
	return FallbackDataResidency
}
