// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package azapi

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/cognitiveservices/armcognitiveservices"
	"github.com/azure/foundry-capacity/pkg/convert"
	"github.com/sethvargo/go-retry"
	"golang.org/x/sync/errgroup"
)

// Quota lookups fan out across regions. The bounds below keep the fan-out
// polite and stop one unreachable region from stalling the whole run.
const (
	quotaMaxConcurrency = 8
	quotaRequestTimeout = 20 * time.Second
	quotaRetryLimit     = 2
	quotaRetryDelay     = 800 * time.Millisecond
	quotaRetryJitter    = 250 * time.Millisecond
)

// ModelQuota is one region's usage record for a model SKU. Zero headroom is a
// confirmed value; a missing record is represented as a nil *ModelQuota, never
// as zero.
type ModelQuota struct {
	Location     string `json:"location"`
	Name         string `json:"name"`
	Limit        int64  `json:"limit"`
	CurrentValue int64  `json:"currentValue"`
}

// Available returns the remaining quota headroom.
func (q *ModelQuota) Available() int64 {
	return q.Limit - q.CurrentValue
}

// GetModelQuota returns the usage record whose name matches
// "<format>.<sku>.<model>" (e.g. "OpenAI.GlobalStandard.gpt-4o-mini") in one
// region, or nil when the region exposes no such record. Throttled and
// server-side failures are retried a bounded number of times with jitter.
func (cli *AzureClient) GetModelQuota(
	ctx context.Context,
	subscriptionId string,
	location string,
	skuName string,
	modelFormat string,
	modelName string,
) (*ModelQuota, error) {
	client, err := cli.createUsagesClient(ctx, subscriptionId)
	if err != nil {
		return nil, err
	}

	usageName := fmt.Sprintf("%s.%s.%s", modelFormat, skuName, modelName)

	var quota *ModelQuota
	backoff := retry.WithMaxRetries(quotaRetryLimit,
		retry.WithJitter(quotaRetryJitter, retry.NewConstant(quotaRetryDelay)))

	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		quota = nil

		pager := client.NewListPager(location, nil)
		for pager.More() {
			page, err := pager.NextPage(ctx)
			if err != nil {
				if isRetriable(err) {
					return retry.RetryableError(err)
				}
				return err
			}

			for _, usage := range page.Value {
				if usage == nil || usage.Name == nil {
					continue
				}

				if !strings.EqualFold(convert.ToValueWithDefault(usage.Name.Value, ""), usageName) {
					continue
				}

				quota = &ModelQuota{
					Location:     location,
					Name:         convert.ToValueWithDefault(usage.Name.Value, usageName),
					Limit:        int64(convert.ToValueWithDefault(usage.Limit, 0)),
					CurrentValue: int64(convert.ToValueWithDefault(usage.CurrentValue, 0)),
				}
				return nil
			}
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing usages in %s: %w", location, err)
	}

	return quota, nil
}

// GetModelQuotas looks up quota headroom for each location concurrently. A
// location whose lookup fails maps to a nil entry, meaning its quota is
// unknown; the failure is logged and the run continues.
func (cli *AzureClient) GetModelQuotas(
	ctx context.Context,
	subscriptionId string,
	locations []string,
	skuName string,
	modelFormat string,
	modelName string,
) map[string]*ModelQuota {
	var mu sync.Mutex
	quotas := make(map[string]*ModelQuota, len(locations))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(quotaMaxConcurrency)

	for _, location := range locations {
		group.Go(func() error {
			callCtx, cancel := context.WithTimeout(groupCtx, quotaRequestTimeout)
			defer cancel()

			quota, err := cli.GetModelQuota(callCtx, subscriptionId, location, skuName, modelFormat, modelName)
			if err != nil {
				log.Printf("quota lookup failed for %s: %v", location, err)
				quota = nil
			}

			mu.Lock()
			quotas[location] = quota
			mu.Unlock()

			return nil
		})
	}

	// Workers never return errors; failed lookups degrade to unknown quota.
	_ = group.Wait()

	return quotas
}

func (cli *AzureClient) createUsagesClient(
	ctx context.Context, subscriptionId string) (*armcognitiveservices.UsagesClient, error) {
	credential, err := cli.credentialProvider.Credential(ctx)
	if err != nil {
		return nil, err
	}

	client, err := armcognitiveservices.NewUsagesClient(subscriptionId, credential, cli.armClientOptions)
	if err != nil {
		return nil, fmt.Errorf("creating Usages client: %w", err)
	}

	return client, nil
}
