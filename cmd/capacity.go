// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/azure/foundry-capacity/internal"
	"github.com/azure/foundry-capacity/pkg/azapi"
	"github.com/azure/foundry-capacity/pkg/azureutil"
	"github.com/azure/foundry-capacity/pkg/output"
	"github.com/azure/foundry-capacity/pkg/ranking"
	"github.com/azure/foundry-capacity/pkg/spin"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// defaultCatalogRegion scopes version discovery when --region is not passed.
// The model catalog requires a location and eastus carries the broadest one.
const defaultCatalogRegion = "eastus"

type capacityFlags struct {
	modelName    string
	modelVersion string
	region       string
	skuName      string
	subscription string
	global       *internal.GlobalCommandOptions
}

func (f *capacityFlags) Bind(local *pflag.FlagSet, global *internal.GlobalCommandOptions) {
	local.StringVarP(&f.modelName, "model", "m", "", "Name of the model to look up, e.g. gpt-4o-mini (required).")
	local.StringVar(
		&f.modelVersion,
		"version",
		"",
		"Version of the model. When omitted, the deployable versions are listed instead.")
	local.StringVarP(
		&f.region,
		"region",
		"r",
		"",
		"Restrict the lookup to one region. In version discovery the catalog of "+defaultCatalogRegion+" is used.")
	local.StringVar(&f.skuName, "sku", defaultSKUName, "Deployment SKU whose capacity is listed.")
	local.StringVarP(
		&f.subscription,
		"subscription",
		"s",
		"",
		"Azure subscription id. Defaults to AZURE_SUBSCRIPTION_ID or the only visible subscription.")
	f.global = global
}

func newCapacityCmd(global *internal.GlobalCommandOptions) *cobra.Command {
	flags := &capacityFlags{}

	cmd := &cobra.Command{
		Use:   "query-capacity",
		Short: "Show available capacity and quota for a model, or list its deployable versions.",
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter, err := output.GetFormatter(cmd)
			if err != nil {
				return err
			}

			azure, err := newAzureClient()
			if err != nil {
				return err
			}

			action := &capacityAction{
				flags:     *flags,
				azure:     azure,
				formatter: formatter,
				writer:    cmd.OutOrStdout(),
				console:   cmd.ErrOrStderr(),
			}

			return action.Run(cmd.Context())
		},
	}

	output.AddOutputParam(cmd, []output.Format{output.JsonFormat, output.TableFormat}, output.TableFormat)
	flags.Bind(cmd.Flags(), global)
	_ = cmd.MarkFlagRequired("model")

	return cmd
}

type capacityAction struct {
	flags     capacityFlags
	azure     *azapi.AzureClient
	formatter output.Formatter
	writer    io.Writer
	console   io.Writer
}

func (a *capacityAction) Run(ctx context.Context) error {
	subscription, err := resolveSubscription(ctx, a.azure, a.flags.subscription)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.console, output.WithGrayFormat(
		"Subscription: %s (%s)", subscription.Name, subscription.Id))

	if a.flags.modelVersion == "" {
		return a.runVersionDiscovery(ctx, subscription.Id)
	}

	return a.runCapacityLookup(ctx, subscription.Id)
}

// modelVersionList is the version-discovery payload: the deployable versions
// of one model according to one region's catalog.
type modelVersionList struct {
	Model    string          `json:"model"`
	Region   string          `json:"region"`
	Versions []azapi.AIModel `json:"versions"`
}

func (a *capacityAction) runVersionDiscovery(ctx context.Context, subscriptionId string) error {
	region := a.flags.region
	if region == "" {
		region = defaultCatalogRegion
	}

	var versions []azapi.AIModel
	err := spin.New(fmt.Sprintf("Listing versions of %s in %s", a.flags.modelName, region)).Run(func() error {
		var err error
		versions, err = a.azure.ListModelVersions(ctx, subscriptionId, region, a.flags.modelName)
		return err
	})
	if err != nil {
		if azapi.IsAuthFailure(err) {
			log.Printf("credential failure: %v", err)
			return azapi.ErrNotLoggedIn
		}

		fmt.Fprintln(a.console, output.WithWarningFormat("Warning: listing model versions failed: %v", err))
		versions = nil
	}

	if len(versions) == 0 {
		fmt.Fprintln(a.console, output.WithWarningFormat(
			"No deployable versions of %s found in %s.", a.flags.modelName, region))
	}

	if a.formatter.Kind() == output.JsonFormat {
		if versions == nil {
			versions = []azapi.AIModel{}
		}

		return a.formatter.Format(modelVersionList{
			Model:    a.flags.modelName,
			Region:   region,
			Versions: versions,
		}, a.writer, nil)
	}

	if len(versions) == 0 {
		return nil
	}

	type versionRow struct {
		Version   string
		Format    string
		Kind      string
		Default   string
		Lifecycle string
	}

	rows := make([]versionRow, 0, len(versions))
	for _, version := range versions {
		isDefault := ""
		if version.IsDefaultVersion {
			isDefault = "✓"
		}

		rows = append(rows, versionRow{
			Version:   version.Version,
			Format:    version.Format,
			Kind:      version.Kind,
			Default:   isDefault,
			Lifecycle: version.LifecycleStatus,
		})
	}

	return a.formatter.Format(rows, a.writer, output.TableFormatterOptions{
		Columns: []output.Column{
			{Heading: "VERSION", ValueTemplate: "{{.Version}}"},
			{Heading: "FORMAT", ValueTemplate: "{{.Format}}"},
			{Heading: "KIND", ValueTemplate: "{{.Kind}}"},
			{Heading: "DEFAULT", ValueTemplate: "{{.Default}}"},
			{Heading: "LIFECYCLE", ValueTemplate: "{{.Lifecycle}}"},
		},
	})
}

// regionCapacity pairs one region's capacity entry with its quota headroom.
type regionCapacity struct {
	Region       string           `json:"region"`
	SKUName      string           `json:"skuName"`
	AvailableTPM int32            `json:"availableTpm"`
	Quota        ranking.Headroom `json:"quotaAvailable"`
}

func (a *capacityAction) runCapacityLookup(ctx context.Context, subscriptionId string) error {
	query := azapi.ModelCapacityQuery{
		ModelFormat:  azapi.ModelFormatOpenAI,
		ModelName:    a.flags.modelName,
		ModelVersion: a.flags.modelVersion,
		Location:     a.flags.region,
	}

	var capacities []azapi.ModelCapacity
	err := spin.New(fmt.Sprintf("Querying %s capacity", a.flags.modelName)).Run(func() error {
		var err error
		capacities, err = a.azure.ListModelCapacities(ctx, subscriptionId, query)
		return err
	})
	if err != nil {
		if azapi.IsAuthFailure(err) {
			log.Printf("credential failure: %v", err)
			return azapi.ErrNotLoggedIn
		}

		fmt.Fprintln(a.console, output.WithWarningFormat("Warning: capacity query failed: %v", err))
		capacities = nil
	}

	regions := ranking.Regions(capacities, a.flags.skuName)
	if len(regions) == 0 {
		fmt.Fprintln(a.console, output.WithWarningFormat(
			"No %s capacity found for %s version %s.",
			a.flags.skuName, a.flags.modelName, a.flags.modelVersion))

		if a.formatter.Kind() == output.JsonFormat {
			return a.formatter.Format([]regionCapacity{}, a.writer, nil)
		}

		return nil
	}

	var quotas map[string]*azapi.ModelQuota
	_ = spin.New(fmt.Sprintf("Checking quota in %d region(s)", len(regions))).Run(func() error {
		quotas = a.azure.GetModelQuotas(
			ctx, subscriptionId, regions, a.flags.skuName, azapi.ModelFormatOpenAI, a.flags.modelName)
		return nil
	})

	entries := make([]regionCapacity, 0, len(capacities))
	for _, capacity := range capacities {
		if !strings.EqualFold(capacity.SKUName, a.flags.skuName) {
			continue
		}

		quota := ranking.UnknownHeadroom()
		if entry, has := quotas[capacity.Location]; has && entry != nil {
			quota = ranking.KnownHeadroom(entry.Available())
		}

		entries = append(entries, regionCapacity{
			Region:       capacity.Location,
			SKUName:      capacity.SKUName,
			AvailableTPM: capacity.AvailableCapacity,
			Quota:        quota,
		})
	}

	if a.formatter.Kind() == output.JsonFormat {
		return a.formatter.Format(entries, a.writer, nil)
	}

	type capacityRow struct {
		Region       string
		SKU          string
		AvailableTPM string
		Quota        string
	}

	rows := make([]capacityRow, 0, len(entries))
	for _, entry := range entries {
		quota := entry.Quota.String()
		if _, known := entry.Quota.Value(); !known {
			quota = output.WithGrayFormat(quota)
		}

		rows = append(rows, capacityRow{
			Region:       azureutil.FormatLocation(entry.Region),
			SKU:          entry.SKUName,
			AvailableTPM: strconv.FormatInt(int64(entry.AvailableTPM), 10),
			Quota:        quota,
		})
	}

	return a.formatter.Format(rows, a.writer, output.TableFormatterOptions{
		Columns: []output.Column{
			{Heading: "REGION", ValueTemplate: "{{.Region}}"},
			{Heading: "SKU", ValueTemplate: "{{.SKU}}"},
			{Heading: "AVAILABLE TPM", ValueTemplate: "{{.AvailableTPM}}"},
			{Heading: "QUOTA", ValueTemplate: "{{.Quota}}"},
		},
	})
}
