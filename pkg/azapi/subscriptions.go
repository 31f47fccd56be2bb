// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package azapi

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armsubscriptions"
	"github.com/azure/foundry-capacity/pkg/convert"
)

type Subscription struct {
	Id       string `json:"id"`
	Name     string `json:"name"`
	TenantId string `json:"tenantId"`
}

// GetSubscription returns the display details of one subscription, verifying
// that the current credential can access it.
func (cli *AzureClient) GetSubscription(ctx context.Context, subscriptionId string) (*Subscription, error) {
	client, err := cli.createSubscriptionsClient(ctx)
	if err != nil {
		return nil, err
	}

	response, err := client.Get(ctx, subscriptionId, nil)
	if err != nil {
		return nil, fmt.Errorf("getting subscription %s: %w", subscriptionId, err)
	}

	return &Subscription{
		Id:       convert.ToValueWithDefault(response.SubscriptionID, subscriptionId),
		Name:     convert.ToValueWithDefault(response.DisplayName, ""),
		TenantId: convert.ToValueWithDefault(response.TenantID, ""),
	}, nil
}

// ResolveSubscription picks the subscription a run operates against. An
// explicit id is validated with a point read; otherwise the credential must
// resolve to exactly one subscription.
func (cli *AzureClient) ResolveSubscription(ctx context.Context, subscriptionId string) (*Subscription, error) {
	if subscriptionId != "" {
		return cli.GetSubscription(ctx, subscriptionId)
	}

	subscriptions, err := cli.ListSubscriptions(ctx)
	if err != nil {
		return nil, err
	}

	switch len(subscriptions) {
	case 0:
		return nil, errors.New("no Azure subscriptions are visible to the current credential")
	case 1:
		return &subscriptions[0], nil
	default:
		candidates := make([]string, 0, len(subscriptions))
		for _, subscription := range subscriptions {
			candidates = append(candidates, fmt.Sprintf("  %s (%s)", subscription.Name, subscription.Id))
		}

		return nil, fmt.Errorf(
			"%d Azure subscriptions are visible to the current credential. "+
				"Pass --subscription or set AZURE_SUBSCRIPTION_ID to pick one:\n%s",
			len(subscriptions),
			strings.Join(candidates, "\n"))
	}
}

// ListSubscriptions returns all subscriptions visible to the current
// credential.
func (cli *AzureClient) ListSubscriptions(ctx context.Context) ([]Subscription, error) {
	client, err := cli.createSubscriptionsClient(ctx)
	if err != nil {
		return nil, err
	}

	subscriptions := []Subscription{}

	pager := client.NewListPager(nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing subscriptions: %w", err)
		}

		for _, subscription := range page.Value {
			if subscription == nil {
				continue
			}

			subscriptions = append(subscriptions, Subscription{
				Id:       convert.ToValueWithDefault(subscription.SubscriptionID, ""),
				Name:     convert.ToValueWithDefault(subscription.DisplayName, ""),
				TenantId: convert.ToValueWithDefault(subscription.TenantID, ""),
			})
		}
	}

	return subscriptions, nil
}

func (cli *AzureClient) createSubscriptionsClient(ctx context.Context) (*armsubscriptions.Client, error) {
	credential, err := cli.credentialProvider.Credential(ctx)
	if err != nil {
		return nil, err
	}

	client, err := armsubscriptions.NewClient(credential, cli.armClientOptions)
	if err != nil {
		return nil, fmt.Errorf("creating Subscriptions client: %w", err)
	}

	return client, nil
}
