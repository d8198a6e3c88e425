package view

import (
	"io"

	"github.com/olekukonko/tablewriter"
)

// Render writes rows as a text table, or as a markdown table when
// markdown is set.
func Render(w io.Writer, cols []Column, rows [][]string, markdown bool) {
	headers := make([]string, len(cols))
	for i, c := range cols {
		headers[i] = c.Title
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader(headers)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	if markdown {
		table.SetBorders(tablewriter.Border{Left: true, Top: false, Right: true, Bottom: false})
		table.SetCenterSeparator("|")
	} else {
		table.SetBorder(false)
		table.SetColumnSeparator("")
		table.SetHeaderLine(false)
		table.SetTablePadding("  ")
		table.SetNoWhiteSpace(true)
		table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
		table.SetAlignment(tablewriter.ALIGN_LEFT)
	}
	table.AppendBulk(rows)
	table.Render()
}
