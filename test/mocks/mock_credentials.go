package mocks

import (
	"context"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"

	"github.com/azure/foundry-capacity/pkg/auth"
)

// MockCredentials satisfies azcore.TokenCredential with a static fake token
// so that SDK clients under test never reach a real authority.
type MockCredentials struct{}

func (c *MockCredentials) GetToken(ctx context.Context, options policy.TokenRequestOptions) (azcore.AccessToken, error) {
	return azcore.AccessToken{
		Token:     "fake-arm-token",
		ExpiresOn: time.Now().Add(10 * time.Minute),
	}, nil
}

// MockCredentialProvider hands out the mock credentials unconditionally.
type MockCredentialProvider struct {
	credential azcore.TokenCredential
}

func (p *MockCredentialProvider) Credential(ctx context.Context) (azcore.TokenCredential, error) {
	return p.credential, nil
}

var _ auth.CredentialProvider = (*MockCredentialProvider)(nil)
