// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package azapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
)

var (
	ErrNotLoggedIn = errors.New(
		"no Azure credential available. Try running \"azd auth login\" or \"az login\" to fix")

	ErrSubscriptionNotFound = errors.New(
		"subscription was not found, or the current credential cannot access it")
)

// IsAuthFailure reports whether err means the caller has no usable credential,
// as opposed to a transient service failure. Auth failures abort a run;
// transient failures degrade it.
func IsAuthFailure(err error) bool {
	var authFailed *azidentity.AuthenticationFailedError
	if errors.As(err, &authFailed) {
		return true
	}

	var respErr *azcore.ResponseError
	if errors.As(err, &respErr) {
		return respErr.StatusCode == http.StatusUnauthorized || respErr.StatusCode == http.StatusForbidden
	}

	// A chained credential with no usable entry does not surface an exported
	// error type; detect it by the fixed prefix azidentity uses.
	return strings.Contains(err.Error(), "ChainedTokenCredential: failed to acquire a token")
}

// IsSubscriptionNotFound reports whether err indicates a missing or
// inaccessible subscription.
func IsSubscriptionNotFound(err error) bool {
	var respErr *azcore.ResponseError
	if !errors.As(err, &respErr) {
		return false
	}

	return respErr.StatusCode == http.StatusNotFound ||
		respErr.ErrorCode == "SubscriptionNotFound" ||
		respErr.ErrorCode == "InvalidSubscriptionId"
}

// isRetriable reports whether err is worth a bounded retry: throttling,
// server-side failures and transport errors qualify, other client errors do
// not.
func isRetriable(err error) bool {
	var respErr *azcore.ResponseError
	if errors.As(err, &respErr) {
		return respErr.StatusCode == http.StatusTooManyRequests ||
			respErr.StatusCode >= http.StatusInternalServerError
	}

	return !IsAuthFailure(err)
}
