package internal

import (
	"fmt"
	"os"
	"runtime"
	"strings"
)

const userSpecifiedAgentEnvironmentVariableName = "FOUNDRY_CAPACITY_USER_AGENT"
const githubActionsEnvironmentVariableName = "GITHUB_ACTIONS"

const cliProductIdentifierKey = "foundrycap"
const githubActionsProductIdentifierKey = "GhActions"

type UserAgent struct {
	// CLI product identifier. Formatted as `foundrycap/<version>`
	cliIdentifier string

	// (Optional) User specified identifier, set from `FOUNDRY_CAPACITY_USER_AGENT` environment variable
	userSpecifiedIdentifier string

	// (Optional) Identifier for GitHub Actions, if applicable
	githubActionsIdentifier string
}

func (userAgent *UserAgent) String() string {
	var sb strings.Builder
	sb.WriteString(userAgent.cliIdentifier)
	appendIdentifier(&sb, userAgent.userSpecifiedIdentifier)
	appendIdentifier(&sb, userAgent.githubActionsIdentifier)

	return sb.String()
}

func appendIdentifier(sb *strings.Builder, identifier string) {
	if identifier != "" {
		sb.WriteString(" " + identifier)
	}
}

func makeUserAgent() UserAgent {
	userAgent := UserAgent{}
	userAgent.cliIdentifier = getCliIdentifier()
	userAgent.userSpecifiedIdentifier = getUserSpecifiedIdentifier()
	userAgent.githubActionsIdentifier = getGithubActionsIdentifier()

	return userAgent
}

// MakeUserAgentString creates a user agent string that contains all necessary product identifiers, in increasing order:
// - The CLI version, formatted as `foundrycap/<version>`
// - The user specified identifier, set from `FOUNDRY_CAPACITY_USER_AGENT` environment variable
// - The identifier for GitHub Actions, if applicable
// Examples:
// - `foundrycap/1.0.0 (Go go1.24.0; linux/amd64)`
// - `foundrycap/1.0.0 (Go go1.24.0; linux/amd64) Custom-foo/1.0.0 GhActions`
func MakeUserAgentString() string {
	userAgent := makeUserAgent()

	return userAgent.String()
}

func getCliIdentifier() string {
	return fmt.Sprintf("%s/%s %s", cliProductIdentifierKey, GetVersionNumber(), getPlatformInfo())
}

func getPlatformInfo() string {
	return fmt.Sprintf("(Go %s; %s/%s)", runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

func getUserSpecifiedIdentifier() string {
	// like the Azure CLI (via it's `AZURE_HTTP_USER_AGENT` env variable) we allow for a user to append
	// information to the UserAgent by setting an environment variable.
	if devUserAgent := os.Getenv(userSpecifiedAgentEnvironmentVariableName); devUserAgent != "" {
		return devUserAgent
	}

	return ""
}

func getGithubActionsIdentifier() string {
	// `GITHUB_ACTIONS` must be set to 'true' if running in GitHub Actions,
	// see https://docs.github.com/en/actions/learn-github-actions/environment-variables#default-environment-variables
	if isRunningInGithubActions := os.Getenv(githubActionsEnvironmentVariableName); isRunningInGithubActions == "true" {
		return githubActionsProductIdentifierKey
	}

	return ""
}
