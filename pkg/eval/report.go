package eval

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// RenderText formats the report for terminal output: confusion matrix,
// per-category precision/recall and the run summary.
func (r *Report) RenderText() string {
	var sb strings.Builder

	sb.WriteString("Confusion matrix (rows: true, columns: predicted)\n")
	sb.WriteString(r.renderConfusion())
	sb.WriteString("\n\nPer-category metrics\n")
	sb.WriteString(r.renderMetrics())
	sb.WriteString("\n\n")
	fmt.Fprintf(&sb, "Samples: %d  Skipped: %d  Accuracy: %.3f  Threshold: %.1f  Run: %s\n",
		r.SampleCount, r.Skipped, r.Accuracy, r.Threshold, r.RunID)

	return sb.String()
}

func (r *Report) renderConfusion() string {
	headers := make([]string, 0, len(r.LabelOrder)+1)
	headers = append(headers, "true \\ pred")
	for _, label := range r.LabelOrder {
		headers = append(headers, label.String())
	}

	rows := make([][]string, 0, len(r.LabelOrder))
	for i, label := range r.LabelOrder {
		row := make([]string, 0, len(r.LabelOrder)+1)
		row = append(row, label.String())
		for j := range r.LabelOrder {
			row = append(row, fmt.Sprintf("%d", r.Confusion[i][j]))
		}
		rows = append(rows, row)
	}

	return renderTable(headers, rows)
}

func (r *Report) renderMetrics() string {
	headers := []string{"category", "precision", "recall"}
	rows := make([][]string, 0, len(r.LabelOrder))
	for _, label := range r.LabelOrder {
		rows = append(rows, []string{
			label.String(),
			fmt.Sprintf("%.3f", r.Precision[label]),
			fmt.Sprintf("%.3f", r.Recall[label]),
		})
	}
	return renderTable(headers, rows)
}

// renderTable renders headers and rows with the first column left-aligned
// and the rest right-aligned.
func renderTable(headers []string, rows [][]string) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, len(row))
		for i, cell := range row {
			r[i] = cell
		}
		tw.AppendRow(r)
	}

	configs := make([]table.ColumnConfig, 0, len(headers))
	for i := range headers {
		align := text.AlignRight
		if i == 0 {
			align = text.AlignLeft
		}
		configs = append(configs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}
