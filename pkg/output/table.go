// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package output

import (
	"errors"
	"io"
	"reflect"
	"strings"
	"text/tabwriter"
	"text/template"
)

type TableFormatter struct {
}

func (f *TableFormatter) Kind() Format {
	return TableFormat
}

// Format renders obj as a column-aligned table. The obj value can be a single
// struct or a slice of structs; each column's ValueTemplate is evaluated
// against one element per row.
func (f *TableFormatter) Format(obj interface{}, writer io.Writer, opts interface{}) error {
	options, ok := opts.(TableFormatterOptions)
	if !ok {
		return errors.New("TableFormatterOptions is required for TableFormatter")
	}

	if len(options.Columns) == 0 {
		return errors.New("no columns were defined, table format is not supported for this command")
	}

	rows, err := convertToSlice(obj)
	if err != nil {
		return err
	}

	header := strings.Builder{}
	rowTemplate := strings.Builder{}
	for i, column := range options.Columns {
		header.WriteString(column.Heading)
		rowTemplate.WriteString(column.ValueTemplate)

		if i < len(options.Columns)-1 {
			header.WriteString("\t")
			rowTemplate.WriteString("\t")
		}
	}

	tmpl, err := template.New("table").Parse(rowTemplate.String())
	if err != nil {
		return err
	}

	tabs := tabwriter.NewWriter(writer, 0, 0, 2, ' ', 0)

	_, err = tabs.Write([]byte(header.String() + "\n"))
	if err != nil {
		return err
	}

	for _, row := range rows {
		err = tmpl.Execute(tabs, row)
		if err != nil {
			return err
		}

		_, err = tabs.Write([]byte("\n"))
		if err != nil {
			return err
		}
	}

	return tabs.Flush()
}

func convertToSlice(obj interface{}) ([]interface{}, error) {
	value := reflect.ValueOf(obj)
	if value.Kind() == reflect.Pointer {
		value = value.Elem()
	}

	if value.Kind() != reflect.Slice {
		return []interface{}{obj}, nil
	}

	rows := make([]interface{}, value.Len())
	for i := 0; i < value.Len(); i++ {
		rows[i] = value.Index(i).Interface()
	}

	return rows, nil
}

type TableFormatterOptions struct {
	Columns []Column
}

type Column struct {
	Heading       string
	ValueTemplate string
}

var _ Formatter = (*TableFormatter)(nil)
