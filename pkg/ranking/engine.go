// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package ranking orders regions with available model capacity by how well
// they fit a deployment: capacity target first, then quota headroom, then
// affinity to regions that already host AI projects.
package ranking

import (
	"sort"
	"strings"

	"github.com/azure/foundry-capacity/pkg/azapi"
)

// Options control which capacity entries participate in ranking.
type Options struct {
	// SKUName selects the deployment SKU to rank, e.g. GlobalStandard.
	// Entries for other SKUs are ignored.
	SKUName string

	// MinCapacity is the desired available capacity in thousands of tokens
	// per minute. Regions below it still rank, behind those that meet it.
	MinCapacity int32
}

// RankedRegion is one region's consolidated capacity, quota and project
// affinity. A slice of these is already in ranked order.
type RankedRegion struct {
	Region        string   `json:"region"`
	AvailableTPM  int32    `json:"availableTpm"`
	MeetsTarget   bool     `json:"meetsTarget"`
	ProjectCount  int      `json:"projectCount"`
	SampleProject string   `json:"sampleProject"`
	Quota         Headroom `json:"quotaAvailable"`
	QuotaOK       bool     `json:"quotaOk"`
}

// Rank fuses capacity, quota and project inventory into one descending order:
// regions meeting the capacity target first, then regions whose quota is
// positive or unknown, then regions with more existing projects, then raw
// capacity. The sort is stable, so regions that tie on all four keys keep
// their capacity-listing order.
//
// Only capacity entries matching options.SKUName with available capacity
// above zero participate; a region absent from quotas, or mapped to nil,
// ranks with unknown headroom. Rank never mutates its inputs.
func Rank(
	capacities []azapi.ModelCapacity,
	quotas map[string]*azapi.ModelQuota,
	projects []azapi.AIProject,
	options Options,
) []RankedRegion {
	regions := []string{}
	maxCapacity := map[string]int32{}

	for _, capacity := range capacities {
		if !eligible(capacity, options.SKUName) {
			continue
		}

		if _, has := maxCapacity[capacity.Location]; !has {
			regions = append(regions, capacity.Location)
		}

		if capacity.AvailableCapacity > maxCapacity[capacity.Location] {
			maxCapacity[capacity.Location] = capacity.AvailableCapacity
		}
	}

	type projectStats struct {
		count  int
		sample string
	}

	statsByRegion := map[string]projectStats{}
	for _, project := range projects {
		key := normalizeRegion(project.Location)
		stats := statsByRegion[key]
		stats.count++
		if stats.sample == "" {
			stats.sample = project.Name
		}
		statsByRegion[key] = stats
	}

	ranked := make([]RankedRegion, 0, len(regions))
	for _, region := range regions {
		quota := UnknownHeadroom()
		if entry, has := quotas[region]; has && entry != nil {
			quota = KnownHeadroom(entry.Available())
		}

		stats := statsByRegion[normalizeRegion(region)]
		sample := stats.sample
		if sample == "" {
			sample = "(none)"
		}

		ranked = append(ranked, RankedRegion{
			Region:        region,
			AvailableTPM:  maxCapacity[region],
			MeetsTarget:   maxCapacity[region] >= options.MinCapacity,
			ProjectCount:  stats.count,
			SampleProject: sample,
			Quota:         quota,
			QuotaOK:       quota.OK(),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i].sortKey(), ranked[j].sortKey()
		for k := range a {
			if a[k] != b[k] {
				return a[k] > b[k]
			}
		}

		return false
	})

	return ranked
}

// Regions returns the distinct regions offering available capacity for the
// given SKU, in first-seen order. Per-region quota lookups are scoped to this
// set so the number of calls stays bounded by the number of viable regions.
func Regions(capacities []azapi.ModelCapacity, skuName string) []string {
	regions := []string{}
	seen := map[string]bool{}

	for _, capacity := range capacities {
		if !eligible(capacity, skuName) || seen[capacity.Location] {
			continue
		}

		seen[capacity.Location] = true
		regions = append(regions, capacity.Location)
	}

	return regions
}

func eligible(capacity azapi.ModelCapacity, skuName string) bool {
	return strings.EqualFold(capacity.SKUName, skuName) && capacity.AvailableCapacity > 0
}

// sortKey flattens the ranking keys into one tuple compared lexicographically
// descending: target met, quota permitting, project count, available capacity.
func (r RankedRegion) sortKey() [4]int64 {
	key := [4]int64{0, 0, int64(r.ProjectCount), int64(r.AvailableTPM)}
	if r.MeetsTarget {
		key[0] = 1
	}
	if r.QuotaOK {
		key[1] = 1
	}

	return key
}

// normalizeRegion folds a location to its short ARM form so that project
// inventory entries carrying display names ("East US 2") still match
// capacity regions ("eastus2").
func normalizeRegion(location string) string {
	return strings.ToLower(strings.ReplaceAll(location, " ", ""))
}
