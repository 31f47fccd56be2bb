// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package internal

import (
	"fmt"
	"strings"

	"github.com/blang/semver/v4"
)

// Version is the version string printed out by the `version` command.
// It's updated at build time using ldflags, for example:
//
//	go build \
//	  -ldflags="-X 'github.com/azure/foundry-capacity/internal.Version=1.0.0 (commit de01b5b63e92bf35e140f32bcb20b6cb3b6fbda7)'"
var Version = "0.0.0-dev.0 (commit 0000000000000000000000000000000000000000)"

// VersionInfo is the structured form of Version.
type VersionInfo struct {
	Version semver.Version
	Commit  string
}

// tryParseVersionInfo parses a version string of the form
// `0.0.1-alpha.1 (commit 8a49ae5ae9ab13beeade35f91ad4b4611c2f5574)`.
func tryParseVersionInfo(version string) (*VersionInfo, error) {
	pieces := strings.Split(version, " ")
	if len(pieces) != 3 {
		return nil, fmt.Errorf("unexpected version format: %s", version)
	}

	parsed, err := semver.Parse(pieces[0])
	if err != nil {
		return nil, fmt.Errorf("parsing semver: %w", err)
	}

	commit := strings.TrimSuffix(pieces[2], ")")

	return &VersionInfo{
		Version: parsed,
		Commit:  commit,
	}, nil
}

// GetVersionNumber returns the semantic version of the CLI in
// `MAJOR.MINOR.PATCH[-PRERELEASE]` format, or "unknown" when Version does not
// parse.
func GetVersionNumber() string {
	info, err := tryParseVersionInfo(Version)
	if err != nil {
		return "unknown"
	}

	return info.Version.String()
}

type VersionSpec struct {
	FoundryCapacity CliVersionSpec `json:"foundryCapacity"`
}

type CliVersionSpec struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
}

// GetVersionSpec returns the version information rendered by `version -o json`.
func GetVersionSpec() VersionSpec {
	spec := VersionSpec{}
	spec.FoundryCapacity.Version = "unknown"
	spec.FoundryCapacity.Commit = "unknown"

	if info, err := tryParseVersionInfo(Version); err == nil {
		spec.FoundryCapacity.Version = info.Version.String()
		spec.FoundryCapacity.Commit = info.Commit
	}

	return spec
}
