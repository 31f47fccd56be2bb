// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package auth resolves the ambient Azure credential from locally
// authenticated developer tooling. The CLI never performs an interactive
// login itself; it relies on a session established by `azd auth login` or
// `az login`.
package auth

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
)

// CredentialProvider supplies the token credential used for ARM calls.
type CredentialProvider interface {
	Credential(ctx context.Context) (azcore.TokenCredential, error)
}

// AmbientCredentialProvider chains the Azure Developer CLI and Azure CLI
// credentials, preferring the Azure Developer CLI when both have a session.
type AmbientCredentialProvider struct {
	credential azcore.TokenCredential
}

func NewAmbientCredentialProvider() (*AmbientCredentialProvider, error) {
	azdCredential, err := azidentity.NewAzureDeveloperCLICredential(&azidentity.AzureDeveloperCLICredentialOptions{
		AdditionallyAllowedTenants: []string{"*"},
	})
	if err != nil {
		return nil, fmt.Errorf("creating azd credential: %w", err)
	}

	azCredential, err := azidentity.NewAzureCLICredential(&azidentity.AzureCLICredentialOptions{
		AdditionallyAllowedTenants: []string{"*"},
	})
	if err != nil {
		return nil, fmt.Errorf("creating az credential: %w", err)
	}

	chain, err := azidentity.NewChainedTokenCredential(
		[]azcore.TokenCredential{azdCredential, azCredential}, nil)
	if err != nil {
		return nil, fmt.Errorf("creating credential chain: %w", err)
	}

	return &AmbientCredentialProvider{credential: chain}, nil
}

func (p *AmbientCredentialProvider) Credential(ctx context.Context) (azcore.TokenCredential, error) {
	return p.credential, nil
}

var _ CredentialProvider = (*AmbientCredentialProvider)(nil)
