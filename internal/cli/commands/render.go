// render.go - Exposure output formatting
package commands

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/kieroneil/ruler/pkg/expose"
	"github.com/kieroneil/ruler/pkg/rules"
)

// renderExposure writes the packs info and report in the requested format.
func renderExposure(w io.Writer, exp *expose.Exposure, format string) error {
	switch format {
	case "", "table":
		renderTables(w, exp, false)
		return nil
	case "md", "markdown":
		renderTables(w, exp, true)
		return nil
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(exp)
	case "csv":
		return renderCSV(w, exp.Report)
	default:
		return fmt.Errorf("unknown format %q (want table, json, csv or md)", format)
	}
}

func renderTables(w io.Writer, exp *expose.Exposure, markdown bool) {
	info := table.NewWriter()
	info.SetOutputMirror(w)
	info.SetStyle(table.StyleLight)
	info.AppendHeader(table.Row{"Pack", "Type", "OK", "Warning", "Error"})
	for _, pi := range exp.PacksInfo {
		info.AppendRow(table.Row{pi.Name, pi.Type.String(), pi.OK, pi.Warning, pi.Error})
	}
	if markdown {
		info.RenderMarkdown()
	} else {
		info.Render()
	}

	rep := table.NewWriter()
	rep.SetOutputMirror(w)
	rep.SetStyle(table.StyleLight)
	rep.AppendHeader(table.Row{"Pack", "Rule", "Var", "ID", "Verdict"})
	for _, row := range exp.Report {
		rep.AppendRow(table.Row{row.Pack, row.Rule, row.Var, row.ID, row.Verdict})
	}
	rep.AppendFooter(table.Row{"", "", "", "rows", len(exp.Report)})
	if markdown {
		rep.RenderMarkdown()
	} else {
		rep.Render()
	}
}

func renderCSV(w io.Writer, report []rules.ReportRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"pack", "rule", "var", "id", "verdict"}); err != nil {
		return err
	}
	for _, row := range report {
		record := []string{row.Pack, row.Rule, row.Var, row.ID, strconv.FormatBool(row.Verdict)}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
