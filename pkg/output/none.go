// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package output

import (
	"io"
)

// NoneFormatter suppresses all structured output. Commands that print their
// own human-readable messages pair them with this formatter.
type NoneFormatter struct {
}

func (f *NoneFormatter) Kind() Format {
	return NoneFormat
}

func (f *NoneFormatter) Format(obj interface{}, writer io.Writer, opts interface{}) error {
	return nil
}

var _ Formatter = (*NoneFormatter)(nil)
