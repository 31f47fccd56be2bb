package mocks

import (
	"context"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/arm"
	"github.com/azure/foundry-capacity/pkg/azsdk"
	"github.com/azure/foundry-capacity/test/mocks/mockhttp"
)

type MockContext struct {
	Context            *context.Context
	HttpClient         *mockhttp.MockHttpClient
	Credentials        *MockCredentials
	CredentialProvider *MockCredentialProvider
	ArmClientOptions   *arm.ClientOptions
}

// NewMockContext wires a mock transport into the same ARM client options the
// CLI builds at startup, so service tests exercise the real pipeline
// configuration.
func NewMockContext(ctx context.Context) *MockContext {
	httpClient := mockhttp.NewMockHttpUtil()
	credentials := &MockCredentials{}

	armClientOptions := azsdk.NewClientOptionsBuilder().
		WithTransport(httpClient).
		SetUserAgent("foundrycap-test").
		BuildArmClientOptions()

	return &MockContext{
		Context:            &ctx,
		HttpClient:         httpClient,
		Credentials:        credentials,
		CredentialProvider: &MockCredentialProvider{credential: credentials},
		ArmClientOptions:   armClientOptions,
	}
}
