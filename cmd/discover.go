// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"strconv"

	"github.com/azure/foundry-capacity/internal"
	"github.com/azure/foundry-capacity/pkg/azapi"
	"github.com/azure/foundry-capacity/pkg/azureutil"
	"github.com/azure/foundry-capacity/pkg/output"
	"github.com/azure/foundry-capacity/pkg/ranking"
	"github.com/azure/foundry-capacity/pkg/spin"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type discoverFlags struct {
	modelName    string
	modelVersion string
	minCapacity  int32
	skuName      string
	subscription string
	global       *internal.GlobalCommandOptions
}

func (f *discoverFlags) Bind(local *pflag.FlagSet, global *internal.GlobalCommandOptions) {
	local.StringVarP(&f.modelName, "model", "m", "", "Name of the model to place, e.g. gpt-4o-mini (required).")
	local.StringVar(&f.modelVersion, "version", "", "Version of the model, e.g. 2024-07-18 (required).")
	local.Int32Var(
		&f.minCapacity,
		"min-capacity",
		0,
		"Available capacity, in thousands of tokens per minute, a region must offer to meet the target.")
	local.StringVar(&f.skuName, "sku", defaultSKUName, "Deployment SKU whose capacity is ranked.")
	local.StringVarP(
		&f.subscription,
		"subscription",
		"s",
		"",
		"Azure subscription id. Defaults to AZURE_SUBSCRIPTION_ID or the only visible subscription.")
	f.global = global
}

func newDiscoverCmd(global *internal.GlobalCommandOptions) *cobra.Command {
	flags := &discoverFlags{}

	cmd := &cobra.Command{
		Use:     "discover-and-rank",
		Aliases: []string{"discover"},
		Short:   "Rank regions by available capacity, quota headroom and project affinity.",
		Long: "Queries every region's available capacity for a model version, checks quota headroom and " +
			"existing AI projects in the regions that can host it, and prints them best candidate first.",
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter, err := output.GetFormatter(cmd)
			if err != nil {
				return err
			}

			azure, err := newAzureClient()
			if err != nil {
				return err
			}

			action := &discoverAction{
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
	_ = cmd.MarkFlagRequired("version")

	return cmd
}

type discoverAction struct {
	flags     discoverFlags
	azure     *azapi.AzureClient
	formatter output.Formatter
	writer    io.Writer
	console   io.Writer
}

func (a *discoverAction) Run(ctx context.Context) error {
	subscription, err := resolveSubscription(ctx, a.azure, a.flags.subscription)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.console, output.WithGrayFormat(
		"Subscription: %s (%s)", subscription.Name, subscription.Id))

	query := azapi.ModelCapacityQuery{
		ModelFormat:  azapi.ModelFormatOpenAI,
		ModelName:    a.flags.modelName,
		ModelVersion: a.flags.modelVersion,
	}

	var capacities []azapi.ModelCapacity
	err = spin.New(fmt.Sprintf("Scanning regions for %s capacity", a.flags.modelName)).Run(func() error {
		var err error
		capacities, err = a.azure.ListModelCapacities(ctx, subscription.Id, query)
		return err
	})
	if err != nil {
		if azapi.IsAuthFailure(err) {
			log.Printf("credential failure: %v", err)
			return azapi.ErrNotLoggedIn
		}

		// A failed scan degrades to "no capacity found" rather than aborting.
		fmt.Fprintln(a.console, output.WithWarningFormat("Warning: capacity scan failed: %v", err))
		capacities = nil
	}

	regions := ranking.Regions(capacities, a.flags.skuName)
	if len(regions) == 0 {
		return a.renderNoCapacity()
	}

	var quotas map[string]*azapi.ModelQuota
	_ = spin.New(fmt.Sprintf("Checking quota in %d region(s)", len(regions))).Run(func() error {
		quotas = a.azure.GetModelQuotas(
			ctx, subscription.Id, regions, a.flags.skuName, azapi.ModelFormatOpenAI, a.flags.modelName)
		return nil
	})

	var projects []azapi.AIProject
	err = spin.New("Listing existing AI projects").Run(func() error {
		var err error
		projects, err = a.azure.ListAIProjects(ctx, subscription.Id)
		return err
	})
	if err != nil {
		// Project affinity is a tie-breaker; a failed inventory listing must
		// not block ranking.
		fmt.Fprintln(a.console, output.WithWarningFormat("Warning: listing AI projects failed: %v", err))
		projects = nil
	}

	ranked := ranking.Rank(capacities, quotas, projects, ranking.Options{
		SKUName:     a.flags.skuName,
		MinCapacity: a.flags.minCapacity,
	})

	if a.flags.minCapacity > 0 && !ranked[0].MeetsTarget {
		fmt.Fprintln(a.console, output.WithWarningFormat(
			"No region currently offers %d available capacity for %s; showing the best candidates.",
			a.flags.minCapacity, a.flags.modelName))
	}

	return a.render(ranked)
}

// renderNoCapacity reports the legitimate "no capacity anywhere" outcome. It
// is not an error: JSON consumers get an empty array and the process exits
// zero.
func (a *discoverAction) renderNoCapacity() error {
	fmt.Fprintln(a.console, output.WithWarningFormat(
		"No %s capacity found for %s version %s in any region.",
		a.flags.skuName, a.flags.modelName, a.flags.modelVersion))
	fmt.Fprintln(a.console, "Request a quota increase or try a different model or version.")

	if a.formatter.Kind() == output.JsonFormat {
		return a.formatter.Format([]ranking.RankedRegion{}, a.writer, nil)
	}

	return nil
}

type discoverRow struct {
	Rank          string
	Region        string
	AvailableTPM  string
	MeetsTarget   string
	Projects      string
	SampleProject string
	Quota         string
}

func (a *discoverAction) render(ranked []ranking.RankedRegion) error {
	if a.formatter.Kind() == output.JsonFormat {
		return a.formatter.Format(ranked, a.writer, nil)
	}

	rows := make([]discoverRow, 0, len(ranked))
	for i, region := range ranked {
		quota := region.Quota.String()
		if _, known := region.Quota.Value(); !known {
			quota = output.WithGrayFormat(quota)
		}

		rows = append(rows, discoverRow{
			Rank:          strconv.Itoa(i + 1),
			Region:        azureutil.FormatLocation(region.Region),
			AvailableTPM:  strconv.FormatInt(int64(region.AvailableTPM), 10),
			MeetsTarget:   targetMark(region.MeetsTarget),
			Projects:      strconv.Itoa(region.ProjectCount),
			SampleProject: region.SampleProject,
			Quota:         quota,
		})
	}

	return a.formatter.Format(rows, a.writer, output.TableFormatterOptions{
		Columns: []output.Column{
			{Heading: "RANK", ValueTemplate: "{{.Rank}}"},
			{Heading: "REGION", ValueTemplate: "{{.Region}}"},
			{Heading: "AVAILABLE TPM", ValueTemplate: "{{.AvailableTPM}}"},
			{Heading: "MEETS TARGET", ValueTemplate: "{{.MeetsTarget}}"},
			{Heading: "PROJECTS", ValueTemplate: "{{.Projects}}"},
			{Heading: "SAMPLE PROJECT", ValueTemplate: "{{.SampleProject}}"},
			{Heading: "QUOTA", ValueTemplate: "{{.Quota}}"},
		},
	})
}

func targetMark(meets bool) string {
	if meets {
		return "✓"
	}

	return "✗"
}
