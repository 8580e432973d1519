package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"librarian/internal/catalog"
)

// Error messages carry upload targets and HTTP bodies; cap the column so
// they wrap instead of blowing out the terminal.
const errorColumnWidth = 60

func newCatalogTable() table.Writer {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	return tw
}

// renderStatusTable lays out per-status record counts with a trailing
// total row.
func renderStatusTable(summary catalog.Summary) string {
	tw := newCatalogTable()
	tw.AppendHeader(table.Row{"Status", "Count"})
	for _, status := range catalog.AllStatuses() {
		tw.AppendRow(table.Row{string(status), summary.Counts[status]})
	}
	tw.AppendFooter(table.Row{"total", summary.Total})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight, AlignFooter: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}

// renderErrorTable lists failed records with their last error message.
func renderErrorTable(records []*catalog.FileRecord) string {
	tw := newCatalogTable()
	tw.AppendHeader(table.Row{"File", "Remote ID", "Error"})
	for _, record := range records {
		tw.AppendRow(table.Row{record.FileName, record.RemoteID, record.LastError})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, WidthMax: errorColumnWidth},
	})
	return tw.Render()
}
