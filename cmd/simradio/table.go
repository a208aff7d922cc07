package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

// tableColumn describes one rendered column. MaxWidth wraps longer cells;
// zero leaves the column unbounded.
type tableColumn struct {
	Header   string
	Align    columnAlignment
	MaxWidth int
}

func renderTable(columns []tableColumn, rows [][]string) string {
	if len(columns) == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, len(columns))
	for i, col := range columns {
		header[i] = col.Header
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, len(columns))
		for i := range columns {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	configs := make([]table.ColumnConfig, 0, len(columns))
	for i, col := range columns {
		align := text.AlignLeft
		if col.Align == alignRight {
			align = text.AlignRight
		}
		cfg := table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		}
		if col.MaxWidth > 0 {
			cfg.WidthMax = col.MaxWidth
			cfg.WidthMaxEnforcer = text.WrapSoft
		}
		configs = append(configs, cfg)
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}
