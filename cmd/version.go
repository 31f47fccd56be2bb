// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package cmd

import (
	"fmt"

	"github.com/azure/foundry-capacity/internal"
	"github.com/azure/foundry-capacity/pkg/output"
	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version number of foundrycap.",
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter, err := output.GetFormatter(cmd)
			if err != nil {
				return err
			}

			switch formatter.Kind() {
			case output.NoneFormat:
				fmt.Fprintf(cmd.OutOrStdout(), "foundrycap version %s\n", internal.Version)
			case output.JsonFormat:
				if err := formatter.Format(internal.GetVersionSpec(), cmd.OutOrStdout(), nil); err != nil {
					return err
				}
			}

			return nil
		},
	}

	output.AddOutputParam(cmd, []output.Format{output.JsonFormat, output.NoneFormat}, output.NoneFormat)

	return cmd
}
