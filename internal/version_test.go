// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package internal

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetVersionNumber(t *testing.T) {
	require.Equal(t, "0.0.0-dev.0", GetVersionNumber())

	orig := Version
	Version = "invalid"
	defer func() { Version = orig }()

	require.Equal(t, "unknown", GetVersionNumber())

	Version = ""
	require.Equal(t, "unknown", GetVersionNumber())
}

func TestGetVersionSpec(t *testing.T) {
	orig := Version
	Version = "1.2.3 (commit 8a49ae5ae9ab13beeade35f91ad4b4611c2f5574)"
	defer func() { Version = orig }()

	spec := GetVersionSpec()
	require.Equal(t, "1.2.3", spec.FoundryCapacity.Version)
	require.Equal(t, "8a49ae5ae9ab13beeade35f91ad4b4611c2f5574", spec.FoundryCapacity.Commit)

	Version = "invalid"
	spec = GetVersionSpec()
	require.Equal(t, "unknown", spec.FoundryCapacity.Version)
	require.Equal(t, "unknown", spec.FoundryCapacity.Commit)
}
