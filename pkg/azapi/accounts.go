// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package azapi

import (
	"context"
	"fmt"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/cognitiveservices/armcognitiveservices"
	"github.com/azure/foundry-capacity/pkg/convert"
)

// Account kinds that host AI Foundry projects and OpenAI deployments.
var aiAccountKinds = []string{"AIServices", "OpenAI"}

// AIProject is a Cognitive Services account capable of hosting model
// deployments. Projects are used as a region-affinity signal when ranking.
type AIProject struct {
	Name     string `json:"name"`
	Location string `json:"location"`
	Kind     string `json:"kind"`
}

// ListAIProjects returns the subscription's AI accounts with their regions.
func (cli *AzureClient) ListAIProjects(ctx context.Context, subscriptionId string) ([]AIProject, error) {
	client, err := cli.createAccountsClient(ctx, subscriptionId)
	if err != nil {
		return nil, err
	}

	projects := []AIProject{}

	pager := client.NewListPager(nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing accounts: %w", err)
		}

		for _, account := range page.Value {
			if account == nil {
				continue
			}

			kind := convert.ToValueWithDefault(account.Kind, "")
			if !isAIAccountKind(kind) {
				continue
			}

			project := AIProject{
				Name:     convert.ToValueWithDefault(account.Name, ""),
				Location: convert.ToValueWithDefault(account.Location, ""),
				Kind:     kind,
			}

			if project.Name == "" || project.Location == "" {
				continue
			}

			projects = append(projects, project)
		}
	}

	return projects, nil
}

func isAIAccountKind(kind string) bool {
	for _, aiKind := range aiAccountKinds {
		if strings.EqualFold(kind, aiKind) {
			return true
		}
	}

	return false
}

func (cli *AzureClient) createAccountsClient(
	ctx context.Context, subscriptionId string) (*armcognitiveservices.AccountsClient, error) {
	credential, err := cli.credentialProvider.Credential(ctx)
	if err != nil {
		return nil, err
	}

	client, err := armcognitiveservices.NewAccountsClient(subscriptionId, credential, cli.armClientOptions)
	if err != nil {
		return nil, fmt.Errorf("creating Accounts client: %w", err)
	}

	return client, nil
}
