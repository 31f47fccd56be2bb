// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package output

import (
	"encoding/json"
	"io"
)

// JsonFormatter emits results as indented JSON, one document per call.
// It is the machine-readable counterpart to TableFormatter and is what
// scripts consume when the --output json flag is set.
type JsonFormatter struct {
}

func (f *JsonFormatter) Kind() Format {
	return JsonFormat
}

func (f *JsonFormatter) Format(obj interface{}, writer io.Writer, _ interface{}) error {
	enc := json.NewEncoder(writer)
	enc.SetIndent("", "  ")

	return enc.Encode(obj)
}

var _ Formatter = (*JsonFormatter)(nil)
