// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package cmd implements the foundrycap command surface.
package cmd

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/azure/foundry-capacity/internal"
	"github.com/azure/foundry-capacity/pkg/auth"
	"github.com/azure/foundry-capacity/pkg/azapi"
	"github.com/azure/foundry-capacity/pkg/azsdk"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// subscriptionIdEnvVarName is consulted when --subscription is not passed.
const subscriptionIdEnvVarName = "AZURE_SUBSCRIPTION_ID"

// defaultSKUName is the deployment SKU commands operate on unless --sku
// overrides it.
const defaultSKUName = "GlobalStandard"

// NewRootCmd creates the root command with all subcommands attached.
func NewRootCmd() *cobra.Command {
	global := &internal.GlobalCommandOptions{}

	rootCmd := &cobra.Command{
		Use:           "foundrycap",
		Short:         "Find and rank Azure regions with deployable AI model capacity.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if global.NoColor ||
				(!isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd())) {
				color.NoColor = true
			}
		},
	}

	rootCmd.PersistentFlags().BoolVar(
		&global.EnableDebugLogging, "debug", false, "Enables debugging and diagnostics logging.")
	rootCmd.PersistentFlags().BoolVar(
		&global.NoColor, "no-color", false, "Disables color output.")

	rootCmd.AddCommand(newDiscoverCmd(global))
	rootCmd.AddCommand(newCapacityCmd(global))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// newAzureClient wires the ambient credential chain and the shared ARM client
// options into the client all subcommands use.
func newAzureClient() (*azapi.AzureClient, error) {
	credentialProvider, err := auth.NewAmbientCredentialProvider()
	if err != nil {
		return nil, err
	}

	armOptions := azsdk.NewClientOptionsBuilder().
		SetUserAgent(internal.MakeUserAgentString()).
		BuildArmClientOptions()

	return azapi.NewAzureClient(credentialProvider, armOptions), nil
}

// resolveSubscription picks the target subscription from the --subscription
// flag, the AZURE_SUBSCRIPTION_ID environment variable or the sole
// subscription the credential can see, in that order.
func resolveSubscription(
	ctx context.Context,
	azure *azapi.AzureClient,
	explicit string,
) (*azapi.Subscription, error) {
	subscriptionId := explicit
	if subscriptionId == "" {
		subscriptionId = os.Getenv(subscriptionIdEnvVarName)
	}

	subscription, err := azure.ResolveSubscription(ctx, subscriptionId)
	if err != nil {
		if azapi.IsAuthFailure(err) {
			log.Printf("credential failure: %v", err)
			return nil, azapi.ErrNotLoggedIn
		}
		if azapi.IsSubscriptionNotFound(err) {
			return nil, fmt.Errorf(
				"subscription %s was not found or is not accessible with the current credential", subscriptionId)
		}

		return nil, err
	}

	return subscription, nil
}
