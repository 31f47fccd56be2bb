// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package spin provides a terminal progress spinner for long-running
// operations.
package spin

import (
	"fmt"
	"io"
	"time"

	"github.com/mattn/go-colorable"
	"github.com/theckman/yacspin"
)

// writer is the sink for spinner frames. Progress output goes to stderr so
// that stdout stays reserved for command results.
var writer io.Writer = colorable.NewColorableStderr()

type Spinner struct {
	inner *yacspin.Spinner
}

// New creates a stopped spinner displaying the given title. yacspin detects
// non-terminal writers itself, so callers do not need to special-case
// redirected output.
func New(title string) *Spinner {
	config := yacspin.Config{
		Frequency:         100 * time.Millisecond,
		CharSet:           yacspin.CharSets[9],
		Suffix:            " ",
		Message:           title,
		StopCharacter:     "(✓)",
		StopColors:        []string{"fgGreen"},
		StopMessage:       title,
		StopFailCharacter: "(✗)",
		StopFailColors:    []string{"fgRed"},
		StopFailMessage:   title,
		Writer:            writer,
	}

	// The configuration is fixed apart from the title, so construction never
	// fails at runtime.
	inner, _ := yacspin.New(config)

	return &Spinner{inner: inner}
}

func (s *Spinner) Start() error {
	return s.inner.Start()
}

func (s *Spinner) Stop() error {
	return s.inner.Stop()
}

// Title replaces the message shown beside the animation, including the one
// used when the spinner stops.
func (s *Spinner) Title(title string) {
	s.inner.Message(title)
	s.inner.StopMessage(title)
	s.inner.StopFailMessage(title)
}

// Println writes a line of output without corrupting the animation frame.
func (s *Spinner) Println(message string) {
	_ = s.inner.Pause()
	fmt.Fprintln(writer, message)
	_ = s.inner.Unpause()
}

// Run starts the spinner, invokes runFn and stops the spinner once it
// returns, marking the stop as failed when runFn errs.
func (s *Spinner) Run(runFn func() error) error {
	if err := s.Start(); err != nil {
		return err
	}

	err := runFn()
	if err != nil {
		_ = s.inner.StopFail()
		return err
	}

	_ = s.Stop()
	return nil
}
