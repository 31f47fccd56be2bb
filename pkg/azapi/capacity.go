// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package azapi

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/cognitiveservices/armcognitiveservices"
	"github.com/azure/foundry-capacity/pkg/convert"
)

// ModelFormatOpenAI is the model format (publisher) the capacity and usage
// APIs expose Azure OpenAI models under.
const ModelFormatOpenAI = "OpenAI"

// ModelCapacity is one region's deployable headroom for a model SKU, as
// reported by the capacity service. AvailableCapacity is in TPM units.
type ModelCapacity struct {
	Location          string `json:"location"`
	SKUName           string `json:"skuName"`
	AvailableCapacity int32  `json:"availableCapacity"`
}

// ModelCapacityQuery identifies the model whose capacity is being listed.
// Location is optional; when set, the query is scoped to that one region.
type ModelCapacityQuery struct {
	ModelFormat  string
	ModelName    string
	ModelVersion string
	Location     string
}

// ListModelCapacities returns every region reporting deployable capacity for
// the queried model, in service order. Records missing their identifying
// fields and entries with zero capacity are dropped.
func (cli *AzureClient) ListModelCapacities(
	ctx context.Context,
	subscriptionId string,
	query ModelCapacityQuery,
) ([]ModelCapacity, error) {
	capacities := []ModelCapacity{}

	if query.Location != "" {
		client, err := cli.createLocationBasedModelCapacitiesClient(ctx, subscriptionId)
		if err != nil {
			return nil, err
		}

		pager := client.NewListPager(query.Location, query.ModelFormat, query.ModelName, query.ModelVersion, nil)
		for pager.More() {
			page, err := pager.NextPage(ctx)
			if err != nil {
				return nil, fmt.Errorf("listing model capacities in %s: %w", query.Location, err)
			}

			capacities = append(capacities, readModelCapacityPage(page.Value)...)
		}

		return capacities, nil
	}

	client, err := cli.createModelCapacitiesClient(ctx, subscriptionId)
	if err != nil {
		return nil, err
	}

	pager := client.NewListPager(query.ModelFormat, query.ModelName, query.ModelVersion, nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing model capacities: %w", err)
		}

		capacities = append(capacities, readModelCapacityPage(page.Value)...)
	}

	return capacities, nil
}

func readModelCapacityPage(items []*armcognitiveservices.ModelCapacityListResultValueItem) []ModelCapacity {
	capacities := []ModelCapacity{}

	for _, item := range items {
		if item == nil || item.Properties == nil {
			continue
		}

		capacity := ModelCapacity{
			Location:          convert.ToValueWithDefault(item.Location, ""),
			SKUName:           convert.ToValueWithDefault(item.Properties.SKUName, ""),
			AvailableCapacity: int32(convert.ToValueWithDefault(item.Properties.AvailableCapacity, 0)),
		}

		if capacity.Location == "" || capacity.SKUName == "" || capacity.AvailableCapacity <= 0 {
			continue
		}

		capacities = append(capacities, capacity)
	}

	return capacities
}

func (cli *AzureClient) createModelCapacitiesClient(
	ctx context.Context, subscriptionId string) (*armcognitiveservices.ModelCapacitiesClient, error) {
	credential, err := cli.credentialProvider.Credential(ctx)
	if err != nil {
		return nil, err
	}

	client, err := armcognitiveservices.NewModelCapacitiesClient(subscriptionId, credential, cli.armClientOptions)
	if err != nil {
		return nil, fmt.Errorf("creating ModelCapacities client: %w", err)
	}

	return client, nil
}

func (cli *AzureClient) createLocationBasedModelCapacitiesClient(
	ctx context.Context, subscriptionId string) (*armcognitiveservices.LocationBasedModelCapacitiesClient, error) {
	credential, err := cli.credentialProvider.Credential(ctx)
	if err != nil {
		return nil, err
	}

	client, err := armcognitiveservices.NewLocationBasedModelCapacitiesClient(
		subscriptionId, credential, cli.armClientOptions)
	if err != nil {
		return nil, fmt.Errorf("creating LocationBasedModelCapacities client: %w", err)
	}

	return client, nil
}
