// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package azapi

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/cognitiveservices/armcognitiveservices"
	"github.com/azure/foundry-capacity/pkg/convert"
	"github.com/azure/foundry-capacity/test/mocks"
	"github.com/stretchr/testify/require"
)

func capacityItem(location string, skuName string, available float32) *armcognitiveservices.ModelCapacityListResultValueItem {
	return &armcognitiveservices.ModelCapacityListResultValueItem{
		Location: convert.RefOf(location),
		Properties: &armcognitiveservices.ModelSKUCapacityProperties{
			AvailableCapacity: convert.RefOf(available),
			SKUName:           convert.RefOf(skuName),
			Model: &armcognitiveservices.DeploymentModel{
				Format:  convert.RefOf("OpenAI"),
				Name:    convert.RefOf("gpt-4o-mini"),
				Version: convert.RefOf("2024-07-18"),
			},
		},
	}
}

func Test_ListModelCapacities(t *testing.T) {
	query := ModelCapacityQuery{
		ModelFormat:  "OpenAI",
		ModelName:    "gpt-4o-mini",
		ModelVersion: "2024-07-18",
	}

	t.Run("AllRegions", func(t *testing.T) {
		mockContext := mocks.NewMockContext(context.Background())
		client := NewAzureClient(mockContext.CredentialProvider, mockContext.ArmClientOptions)

		mockContext.HttpClient.When(func(request *http.Request) bool {
			return request.Method == http.MethodGet &&
				strings.HasSuffix(request.URL.Path, "/providers/Microsoft.CognitiveServices/modelCapacities")
		}).RespondFn(func(request *http.Request) (*http.Response, error) {
			response := armcognitiveservices.ModelCapacitiesClientListResponse{
				ModelCapacityListResult: armcognitiveservices.ModelCapacityListResult{
					Value: []*armcognitiveservices.ModelCapacityListResultValueItem{
						capacityItem("eastus2", "GlobalStandard", 120),
						capacityItem("westus3", "GlobalStandard", 90),
						// Zero capacity entries are filtered out.
						capacityItem("uksouth", "GlobalStandard", 0),
						// Records without properties are skipped.
						{Location: convert.RefOf("japaneast")},
					},
				},
			}

			return mocks.CreateHttpResponseWithBody(request, http.StatusOK, response)
		})

		capacities, err := client.ListModelCapacities(*mockContext.Context, "SUBSCRIPTION_ID", query)
		require.NoError(t, err)
		require.Len(t, capacities, 2)
		require.Equal(t, ModelCapacity{Location: "eastus2", SKUName: "GlobalStandard", AvailableCapacity: 120}, capacities[0])
		require.Equal(t, ModelCapacity{Location: "westus3", SKUName: "GlobalStandard", AvailableCapacity: 90}, capacities[1])
	})

	t.Run("SingleRegion", func(t *testing.T) {
		mockContext := mocks.NewMockContext(context.Background())
		client := NewAzureClient(mockContext.CredentialProvider, mockContext.ArmClientOptions)

		regionQuery := query
		regionQuery.Location = "eastus2"

		mockContext.HttpClient.When(func(request *http.Request) bool {
			return request.Method == http.MethodGet &&
				strings.Contains(request.URL.Path, "/locations/eastus2/modelCapacities")
		}).RespondFn(func(request *http.Request) (*http.Response, error) {
			response := armcognitiveservices.LocationBasedModelCapacitiesClientListResponse{
				ModelCapacityListResult: armcognitiveservices.ModelCapacityListResult{
					Value: []*armcognitiveservices.ModelCapacityListResultValueItem{
						capacityItem("eastus2", "GlobalStandard", 120),
						capacityItem("eastus2", "DataZoneStandard", 50),
					},
				},
			}

			return mocks.CreateHttpResponseWithBody(request, http.StatusOK, response)
		})

		capacities, err := client.ListModelCapacities(*mockContext.Context, "SUBSCRIPTION_ID", regionQuery)
		require.NoError(t, err)
		require.Len(t, capacities, 2)
		require.Equal(t, "DataZoneStandard", capacities[1].SKUName)
	})

	t.Run("FollowsNextLink", func(t *testing.T) {
		mockContext := mocks.NewMockContext(context.Background())
		client := NewAzureClient(mockContext.CredentialProvider, mockContext.ArmClientOptions)

		mockContext.HttpClient.When(func(request *http.Request) bool {
			return request.Method == http.MethodGet &&
				strings.HasSuffix(request.URL.Path, "/providers/Microsoft.CognitiveServices/modelCapacities")
		}).RespondFn(func(request *http.Request) (*http.Response, error) {
			response := armcognitiveservices.ModelCapacitiesClientListResponse{
				ModelCapacityListResult: armcognitiveservices.ModelCapacityListResult{
					Value: []*armcognitiveservices.ModelCapacityListResultValueItem{
						capacityItem("eastus2", "GlobalStandard", 120),
					},
					NextLink: convert.RefOf("https://management.azure.com/modelCapacitiesNextPage"),
				},
			}

			return mocks.CreateHttpResponseWithBody(request, http.StatusOK, response)
		})

		mockContext.HttpClient.When(func(request *http.Request) bool {
			return request.Method == http.MethodGet &&
				strings.HasSuffix(request.URL.Path, "/modelCapacitiesNextPage")
		}).RespondFn(func(request *http.Request) (*http.Response, error) {
			response := armcognitiveservices.ModelCapacitiesClientListResponse{
				ModelCapacityListResult: armcognitiveservices.ModelCapacityListResult{
					Value: []*armcognitiveservices.ModelCapacityListResultValueItem{
						capacityItem("westus3", "GlobalStandard", 90),
					},
				},
			}

			return mocks.CreateHttpResponseWithBody(request, http.StatusOK, response)
		})

		capacities, err := client.ListModelCapacities(*mockContext.Context, "SUBSCRIPTION_ID", query)
		require.NoError(t, err)
		require.Len(t, capacities, 2)
		require.Equal(t, "eastus2", capacities[0].Location)
		require.Equal(t, "westus3", capacities[1].Location)
	})

	t.Run("Empty", func(t *testing.T) {
		mockContext := mocks.NewMockContext(context.Background())
		client := NewAzureClient(mockContext.CredentialProvider, mockContext.ArmClientOptions)

		mockContext.HttpClient.When(func(request *http.Request) bool {
			return request.Method == http.MethodGet &&
				strings.HasSuffix(request.URL.Path, "/providers/Microsoft.CognitiveServices/modelCapacities")
		}).RespondFn(func(request *http.Request) (*http.Response, error) {
			response := armcognitiveservices.ModelCapacitiesClientListResponse{}

			return mocks.CreateHttpResponseWithBody(request, http.StatusOK, response)
		})

		capacities, err := client.ListModelCapacities(*mockContext.Context, "SUBSCRIPTION_ID", query)
		require.NoError(t, err)
		require.Empty(t, capacities)
	})

	t.Run("Error", func(t *testing.T) {
		mockContext := mocks.NewMockContext(context.Background())
		client := NewAzureClient(mockContext.CredentialProvider, mockContext.ArmClientOptions)

		mockContext.HttpClient.When(func(request *http.Request) bool {
			return request.Method == http.MethodGet &&
				strings.HasSuffix(request.URL.Path, "/providers/Microsoft.CognitiveServices/modelCapacities")
		}).RespondFn(func(request *http.Request) (*http.Response, error) {
			return mocks.CreateEmptyHttpResponse(request, http.StatusNotFound)
		})

		capacities, err := client.ListModelCapacities(*mockContext.Context, "SUBSCRIPTION_ID", query)
		require.Error(t, err)
		require.Nil(t, capacities)
	})
}
