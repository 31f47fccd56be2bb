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

// AIModel is one deployable (version, format) combination a region offers for
// a model name.
type AIModel struct {
	Name             string `json:"name"`
	Format           string `json:"format"`
	Version          string `json:"version"`
	Kind             string `json:"kind"`
	IsDefaultVersion bool   `json:"isDefaultVersion"`
	LifecycleStatus  string `json:"lifecycleStatus"`
}

// ListModelVersions returns the versions of the named model deployable in the
// given region. Duplicate (format, version) pairs across account kinds
// collapse to the first seen.
func (cli *AzureClient) ListModelVersions(
	ctx context.Context,
	subscriptionId string,
	location string,
	modelName string,
) ([]AIModel, error) {
	client, err := cli.createModelsClient(ctx, subscriptionId)
	if err != nil {
		return nil, err
	}

	models := []AIModel{}
	seen := map[string]bool{}

	pager := client.NewListPager(location, nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing models in %s: %w", location, err)
		}

		for _, item := range page.Value {
			if item == nil || item.Model == nil {
				continue
			}

			model := item.Model
			if !strings.EqualFold(convert.ToValueWithDefault(model.Name, ""), modelName) {
				continue
			}

			version := convert.ToValueWithDefault(model.Version, "")
			format := convert.ToValueWithDefault(model.Format, "")
			key := format + "/" + version
			if version == "" || seen[key] {
				continue
			}
			seen[key] = true

			lifecycle := ""
			if model.LifecycleStatus != nil {
				lifecycle = string(*model.LifecycleStatus)
			}

			models = append(models, AIModel{
				Name:             convert.ToValueWithDefault(model.Name, modelName),
				Format:           format,
				Version:          version,
				Kind:             convert.ToValueWithDefault(item.Kind, ""),
				IsDefaultVersion: convert.ToValueWithDefault(model.IsDefaultVersion, false),
				LifecycleStatus:  lifecycle,
			})
		}
	}

	return models, nil
}

func (cli *AzureClient) createModelsClient(
	ctx context.Context, subscriptionId string) (*armcognitiveservices.ModelsClient, error) {
	credential, err := cli.credentialProvider.Credential(ctx)
	if err != nil {
		return nil, err
	}

	client, err := armcognitiveservices.NewModelsClient(subscriptionId, credential, cli.armClientOptions)
	if err != nil {
		return nil, fmt.Errorf("creating Models client: %w", err)
	}

	return client, nil
}
