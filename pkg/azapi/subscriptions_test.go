// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package azapi

import (
	"context"
	"net/http"
	"testing"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armsubscriptions"
	"github.com/azure/foundry-capacity/pkg/convert"
	"github.com/azure/foundry-capacity/test/mocks"
	"github.com/stretchr/testify/require"
)

func Test_GetSubscription(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		mockContext := mocks.NewMockContext(context.Background())
		client := NewAzureClient(mockContext.CredentialProvider, mockContext.ArmClientOptions)

		mockContext.HttpClient.When(func(request *http.Request) bool {
			return request.Method == http.MethodGet && request.URL.Path == "/subscriptions/SUBSCRIPTION_ID"
		}).RespondFn(func(request *http.Request) (*http.Response, error) {
			response := armsubscriptions.ClientGetResponse{
				Subscription: armsubscriptions.Subscription{
					SubscriptionID: convert.RefOf("SUBSCRIPTION_ID"),
					DisplayName:    convert.RefOf("AI Platform (prod)"),
					TenantID:       convert.RefOf("TENANT_ID"),
				},
			}

			return mocks.CreateHttpResponseWithBody(request, http.StatusOK, response)
		})

		subscription, err := client.GetSubscription(*mockContext.Context, "SUBSCRIPTION_ID")
		require.NoError(t, err)
		require.Equal(t, &Subscription{
			Id:       "SUBSCRIPTION_ID",
			Name:     "AI Platform (prod)",
			TenantId: "TENANT_ID",
		}, subscription)
	})

	t.Run("NotFound", func(t *testing.T) {
		mockContext := mocks.NewMockContext(context.Background())
		client := NewAzureClient(mockContext.CredentialProvider, mockContext.ArmClientOptions)

		mockContext.HttpClient.When(func(request *http.Request) bool {
			return request.Method == http.MethodGet && request.URL.Path == "/subscriptions/MISSING"
		}).RespondFn(func(request *http.Request) (*http.Response, error) {
			return mocks.CreateEmptyHttpResponse(request, http.StatusNotFound)
		})

		subscription, err := client.GetSubscription(*mockContext.Context, "MISSING")
		require.Error(t, err)
		require.Nil(t, subscription)
		require.True(t, IsSubscriptionNotFound(err))
	})
}

func Test_ResolveSubscription(t *testing.T) {
	registerList := func(mockContext *mocks.MockContext, subscriptions []*armsubscriptions.Subscription) {
		mockContext.HttpClient.When(func(request *http.Request) bool {
			return request.Method == http.MethodGet && request.URL.Path == "/subscriptions"
		}).RespondFn(func(request *http.Request) (*http.Response, error) {
			response := armsubscriptions.ClientListResponse{
				SubscriptionListResult: armsubscriptions.SubscriptionListResult{
					Value: subscriptions,
				},
			}

			return mocks.CreateHttpResponseWithBody(request, http.StatusOK, response)
		})
	}

	t.Run("Explicit", func(t *testing.T) {
		mockContext := mocks.NewMockContext(context.Background())
		client := NewAzureClient(mockContext.CredentialProvider, mockContext.ArmClientOptions)

		mockContext.HttpClient.When(func(request *http.Request) bool {
			return request.Method == http.MethodGet && request.URL.Path == "/subscriptions/SUBSCRIPTION_ID"
		}).RespondFn(func(request *http.Request) (*http.Response, error) {
			response := armsubscriptions.ClientGetResponse{
				Subscription: armsubscriptions.Subscription{
					SubscriptionID: convert.RefOf("SUBSCRIPTION_ID"),
					DisplayName:    convert.RefOf("AI Platform (prod)"),
					TenantID:       convert.RefOf("TENANT_ID"),
				},
			}

			return mocks.CreateHttpResponseWithBody(request, http.StatusOK, response)
		})

		subscription, err := client.ResolveSubscription(*mockContext.Context, "SUBSCRIPTION_ID")
		require.NoError(t, err)
		require.Equal(t, "SUBSCRIPTION_ID", subscription.Id)
	})

	t.Run("SoleSubscription", func(t *testing.T) {
		mockContext := mocks.NewMockContext(context.Background())
		client := NewAzureClient(mockContext.CredentialProvider, mockContext.ArmClientOptions)

		registerList(mockContext, []*armsubscriptions.Subscription{
			{
				SubscriptionID: convert.RefOf("SUBSCRIPTION_ID"),
				DisplayName:    convert.RefOf("AI Platform (prod)"),
				TenantID:       convert.RefOf("TENANT_ID"),
			},
		})

		subscription, err := client.ResolveSubscription(*mockContext.Context, "")
		require.NoError(t, err)
		require.Equal(t, "SUBSCRIPTION_ID", subscription.Id)
	})

	t.Run("NoSubscriptions", func(t *testing.T) {
		mockContext := mocks.NewMockContext(context.Background())
		client := NewAzureClient(mockContext.CredentialProvider, mockContext.ArmClientOptions)

		registerList(mockContext, []*armsubscriptions.Subscription{})

		subscription, err := client.ResolveSubscription(*mockContext.Context, "")
		require.Error(t, err)
		require.Nil(t, subscription)
	})

	t.Run("MultipleSubscriptions", func(t *testing.T) {
		mockContext := mocks.NewMockContext(context.Background())
		client := NewAzureClient(mockContext.CredentialProvider, mockContext.ArmClientOptions)

		registerList(mockContext, []*armsubscriptions.Subscription{
			{SubscriptionID: convert.RefOf("SUBSCRIPTION_ID"), DisplayName: convert.RefOf("AI Platform (prod)")},
			{SubscriptionID: convert.RefOf("SUBSCRIPTION_ID_2"), DisplayName: convert.RefOf("AI Platform (dev)")},
		})

		subscription, err := client.ResolveSubscription(*mockContext.Context, "")
		require.Error(t, err)
		require.Nil(t, subscription)
		require.Contains(t, err.Error(), "--subscription")
		require.Contains(t, err.Error(), "SUBSCRIPTION_ID_2")
	})
}

func Test_ListSubscriptions(t *testing.T) {
	mockContext := mocks.NewMockContext(context.Background())
	client := NewAzureClient(mockContext.CredentialProvider, mockContext.ArmClientOptions)

	mockContext.HttpClient.When(func(request *http.Request) bool {
		return request.Method == http.MethodGet && request.URL.Path == "/subscriptions"
	}).RespondFn(func(request *http.Request) (*http.Response, error) {
		response := armsubscriptions.ClientListResponse{
			SubscriptionListResult: armsubscriptions.SubscriptionListResult{
				Value: []*armsubscriptions.Subscription{
					{
						SubscriptionID: convert.RefOf("SUBSCRIPTION_ID"),
						DisplayName:    convert.RefOf("AI Platform (prod)"),
						TenantID:       convert.RefOf("TENANT_ID"),
					},
					{
						SubscriptionID: convert.RefOf("SUBSCRIPTION_ID_2"),
						DisplayName:    convert.RefOf("AI Platform (dev)"),
						TenantID:       convert.RefOf("TENANT_ID"),
					},
				},
			},
		}

		return mocks.CreateHttpResponseWithBody(request, http.StatusOK, response)
	})

	subscriptions, err := client.ListSubscriptions(*mockContext.Context)
	require.NoError(t, err)
	require.Len(t, subscriptions, 2)
	require.Equal(t, "SUBSCRIPTION_ID", subscriptions[0].Id)
	require.Equal(t, "AI Platform (dev)", subscriptions[1].Name)
}
