// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package azapi wraps the Azure Resource Manager surface the CLI depends on:
// model capacity, model catalog, quota usage, Cognitive Services accounts and
// subscriptions.
package azapi

import (
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/arm"
	"github.com/azure/foundry-capacity/pkg/auth"
)

func NewAzureClient(
	credentialProvider auth.CredentialProvider,
	armClientOptions *arm.ClientOptions,
) *AzureClient {
	return &AzureClient{
		credentialProvider: credentialProvider,
		armClientOptions:   armClientOptions,
	}
}

type AzureClient struct {
	credentialProvider auth.CredentialProvider
	armClientOptions   *arm.ClientOptions
}
