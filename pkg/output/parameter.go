// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package output

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"
)

const (
	outputFlagName               = "output"
	supportedFormatterAnnotation = "github.com/azure/foundry-capacity/pkg/output/supportedOutputFormatters"
)

// AddOutputParam registers the --output flag on cmd and records the formats
// the command supports so that GetFormatter can validate the value later.
func AddOutputParam(cmd *cobra.Command, supportedFormats []Format, defaultFormat Format) *cobra.Command {
	formatNames := make([]string, len(supportedFormats))
	for i, f := range supportedFormats {
		formatNames[i] = string(f)
	}

	description := fmt.Sprintf("Output format (supported formats are %s)", strings.Join(formatNames, ", "))
	cmd.Flags().StringP(outputFlagName, "o", string(defaultFormat), description)

	// SetAnnotation only fails for a flag that does not exist; it was registered above.
	_ = cmd.Flags().SetAnnotation(outputFlagName, supportedFormatterAnnotation, formatNames)

	return cmd
}

// GetFormatter resolves the formatter selected by the --output flag,
// rejecting values outside the set the command declared in AddOutputParam.
func GetFormatter(cmd *cobra.Command) (Formatter, error) {
	outputVal, err := cmd.Flags().GetString(outputFlagName)
	if err != nil {
		return nil, err
	}

	desiredFormatter := strings.ToLower(strings.TrimSpace(outputVal))

	flag := cmd.Flags().Lookup(outputFlagName)
	supportedFormatters, hasFormatters := flag.Annotations[supportedFormatterAnnotation]
	if hasFormatters && !slices.Contains(supportedFormatters, desiredFormatter) {
		return nil, fmt.Errorf(
			"unsupported format '%s' (supported formats are %s)",
			desiredFormatter,
			strings.Join(supportedFormatters, ", "))
	}

	return NewFormatter(desiredFormatter)
}
