// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package azsdk

import (
	"net/http"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
)

const userAgentHeaderName = "User-Agent"

// userAgentPolicy appends the CLI product identifier to the User-Agent header
// already populated by the azcore pipeline.
type userAgentPolicy struct {
	userAgent string
}

// NewUserAgentPolicy creates a new user agent policy with the specified user agent
func NewUserAgentPolicy(userAgent string) policy.Policy {
	return &userAgentPolicy{
		userAgent: userAgent,
	}
}

// Do sets the custom user agent on the underlying request
func (p *userAgentPolicy) Do(req *policy.Request) (*http.Response, error) {
	if strings.TrimSpace(p.userAgent) != "" {
		rawRequest := req.Raw()
		userAgent, ok := rawRequest.Header[userAgentHeaderName]
		if !ok {
			userAgent = []string{}
		}
		userAgent = append(userAgent, p.userAgent)
		rawRequest.Header.Set(userAgentHeaderName, strings.Join(userAgent, ","))
	}

	return req.Next()
}
