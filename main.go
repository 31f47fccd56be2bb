// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	azcorelog "github.com/Azure/azure-sdk-for-go/sdk/azcore/log"
	"github.com/azure/foundry-capacity/cmd"
	"github.com/azure/foundry-capacity/pkg/output"
	"github.com/mattn/go-colorable"
	"github.com/spf13/pflag"
)

func main() {
	ctx := context.Background()

	restoreColorMode := colorable.EnableColorsStdout(nil)
	defer restoreColorMode()

	log.SetFlags(log.LstdFlags | log.Lshortfile)

	if isDebugEnabled() {
		azcorelog.SetListener(func(event azcorelog.Event, msg string) {
			log.Printf("%s: %s\n", event, msg)
		})
	} else {
		log.SetOutput(io.Discard)
	}

	if err := cmd.NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, output.WithErrorFormat("ERROR: %v", err))
		os.Exit(1)
	}
}

// isDebugEnabled inspects the command line directly so that logging is wired
// up before cobra parses flags.
func isDebugEnabled() bool {
	debug := false
	help := false
	flags := pflag.NewFlagSet("", pflag.ContinueOnError)

	// The full command line contains flags this flag set does not define;
	// UnknownFlags keeps Parse going instead of failing on the first one.
	flags.ParseErrorsWhitelist.UnknownFlags = true
	flags.BoolVar(&debug, "debug", false, "")

	// pflag treats "help" as special and returns ErrHelp from Parse when
	// --help is on the command line and no help flag is defined. Define one
	// (and ignore it) so the real help flows through to cobra later.
	flags.BoolVarP(&help, "help", "h", false, "")

	if err := flags.Parse(os.Args[1:]); err != nil {
		log.Printf("could not parse flags: %v", err)
	}

	return debug
}
