// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package azureutil contains stateless helpers for working with Azure
// resource metadata.
package azureutil

import "fmt"

// locationDisplayNames maps an Azure location name to the display name shown
// in the portal. Locations missing from the map render as their raw name.
var locationDisplayNames = map[string]string{
	"australiaeast":      "Australia East",
	"australiasoutheast": "Australia Southeast",
	"brazilsouth":        "Brazil South",
	"canadacentral":      "Canada Central",
	"canadaeast":         "Canada East",
	"centralindia":       "Central India",
	"centralus":          "Central US",
	"eastasia":           "East Asia",
	"eastus":             "East US",
	"eastus2":            "East US 2",
	"francecentral":      "France Central",
	"germanywestcentral": "Germany West Central",
	"israelcentral":      "Israel Central",
	"italynorth":         "Italy North",
	"japaneast":          "Japan East",
	"japanwest":          "Japan West",
	"koreacentral":       "Korea Central",
	"mexicocentral":      "Mexico Central",
	"northcentralus":     "North Central US",
	"northeurope":        "North Europe",
	"norwayeast":         "Norway East",
	"polandcentral":      "Poland Central",
	"qatarcentral":       "Qatar Central",
	"southafricanorth":   "South Africa North",
	"southcentralus":     "South Central US",
	"southeastasia":      "Southeast Asia",
	"southindia":         "South India",
	"spaincentral":       "Spain Central",
	"swedencentral":      "Sweden Central",
	"switzerlandnorth":   "Switzerland North",
	"switzerlandwest":    "Switzerland West",
	"uaenorth":           "UAE North",
	"uksouth":            "UK South",
	"ukwest":             "UK West",
	"westcentralus":      "West Central US",
	"westeurope":         "West Europe",
	"westindia":          "West India",
	"westus":             "West US",
	"westus2":            "West US 2",
	"westus3":            "West US 3",
}

// LocationDisplayName returns the portal display name for an Azure location
// name, e.g. "East US 2" for "eastus2". Unrecognized locations are returned
// unchanged.
func LocationDisplayName(location string) string {
	if displayName, ok := locationDisplayNames[location]; ok {
		return displayName
	}

	return location
}

// FormatLocation renders a location as "<display name> (<name>)", or just the
// raw name when no display name is known.
func FormatLocation(location string) string {
	displayName := LocationDisplayName(location)
	if displayName == location {
		return location
	}

	return fmt.Sprintf("%s (%s)", displayName, location)
}
