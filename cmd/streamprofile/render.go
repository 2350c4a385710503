package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/chrissnell/streamprofile/internal/storage"
	"github.com/chrissnell/streamprofile/pkg/profile"
	"github.com/chrissnell/streamprofile/pkg/units"
)

type featureRow struct {
	Name         string   `json:"name"`
	Label        string   `json:"label"`
	Seq          int      `json:"seq"`
	StartRow     int      `json:"start_row"`
	EndRow       int      `json:"end_row"`
	StartStation float64  `json:"start_station"`
	EndStation   float64  `json:"end_station"`
	Length       float64  `json:"length"`
	MeanThalweg  float64  `json:"mean_thalweg"`
	ThalwegDrop  float64  `json:"thalweg_drop"`
	Unit         string   `json:"unit"`
	Color        string   `json:"color"`
	Rows         []rowOut `json:"rows,omitempty"`
}

// rowOut holds one record; missing cells are null in JSON
type rowOut map[string]*float64

func featureRows(p *profile.Profile, label profile.Morphology, withRecords bool) []featureRow {
	feats := p.AllFeatures()
	if label != "" {
		feats = p.Features(label)
	}

	rows := make([]featureRow, 0, len(feats))
	for _, f := range feats {
		s := f.Summary()
		rows = append(rows, featureRow{
			Name:         f.Name(),
			Label:        string(f.Label()),
			Seq:          f.Seq(),
			StartRow:     f.Run().Start,
			EndRow:       f.Run().End,
			StartStation: s.StartStation,
			EndStation:   s.EndStation,
			Length:       s.Length,
			MeanThalweg:  s.MeanThalweg,
			ThalwegDrop:  s.ThalwegDrop,
			Unit:         p.Units().LengthUnit,
			Color:        f.Label().Color(),
		})
		if withRecords {
			rows[len(rows)-1].Rows = recordsOf(f.Table())
		}
	}
	return rows
}

func renderFeatures(w io.Writer, format string, p *profile.Profile, label profile.Morphology) error {
	rows := featureRows(p, label, format == "json")

	switch format {
	case "json":
		return writeJSON(w, rows)
	case "csv":
		cw := csv.NewWriter(w)
		_ = cw.Write([]string{"name", "label", "seq", "start_row", "end_row", "start_station", "end_station", "length", "mean_thalweg", "thalweg_drop"})
		for _, r := range rows {
			_ = cw.Write([]string{r.Name, r.Label, strconv.Itoa(r.Seq), strconv.Itoa(r.StartRow), strconv.Itoa(r.EndRow),
				formatFloat(r.StartStation), formatFloat(r.EndStation), formatFloat(r.Length), formatFloat(r.MeanThalweg), formatFloat(r.ThalwegDrop)})
		}
		cw.Flush()
		return cw.Error()
	}

	unit := p.Units().LengthUnit
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.SetTitle(fmt.Sprintf("%s (%d shots, %s %s)", p, p.Len(), formatFloat(p.Length()), unit))
	t.AppendHeader(table.Row{"Feature", "Label", "Rows", "Start (" + unit + ")", "End (" + unit + ")", "Length (" + unit + ")", "Mean thalweg", "Drop"})
	for _, r := range rows {
		t.AppendRow(table.Row{r.Name, r.Label, fmt.Sprintf("%d-%d", r.StartRow, r.EndRow-1),
			formatFloat(r.StartStation), formatFloat(r.EndStation), formatFloat(r.Length), formatFloat(r.MeanThalweg), formatFloat(r.ThalwegDrop)})
	}
	t.Render()
	return nil
}

func renderTable(w io.Writer, format string, tbl *profile.Table) error {
	cols := tbl.Columns()

	switch format {
	case "json":
		return writeJSON(w, recordsOf(tbl))
	case "csv":
		cw := csv.NewWriter(w)
		_ = cw.Write(cols)
		for i := 0; i < tbl.Len(); i++ {
			record := make([]string, len(cols))
			for j, name := range cols {
				record[j] = formatFloat(tbl.Value(name, i))
			}
			_ = cw.Write(record)
		}
		cw.Flush()
		return cw.Error()
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	header := make(table.Row, len(cols))
	for i, name := range cols {
		header[i] = name
	}
	t.AppendHeader(header)
	for i := 0; i < tbl.Len(); i++ {
		row := make(table.Row, len(cols))
		for j, name := range cols {
			row[j] = formatFloat(tbl.Value(name, i))
		}
		t.AppendRow(row)
	}
	t.Render()
	return nil
}

func renderSummaries(w io.Writer, format string, summaries []storage.ProfileSummary) error {
	switch format {
	case "json":
		return writeJSON(w, summaries)
	case "csv":
		cw := csv.NewWriter(w)
		_ = cw.Write([]string{"id", "name", "metric", "shots", "length", "features", "created_at"})
		for _, s := range summaries {
			_ = cw.Write([]string{s.ID, s.Name, strconv.FormatBool(s.Metric), strconv.Itoa(s.Shots),
				formatFloat(s.Length), strconv.Itoa(s.Features), s.CreatedAt.Format(time.RFC3339)})
		}
		cw.Flush()
		return cw.Error()
	}

	if len(summaries) == 0 {
		_, _ = fmt.Fprintln(w, "(no saved profiles)")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"ID", "Name", "Units", "Shots", "Length", "Features", "Saved"})
	for _, s := range summaries {
		t.AppendRow(table.Row{s.ID, s.Name, units.For(s.Metric).System(), s.Shots, formatFloat(s.Length), s.Features, s.CreatedAt.Local().Format("2006-01-02 15:04")})
	}
	t.Render()
	return nil
}

func recordsOf(tbl *profile.Table) []rowOut {
	records := make([]rowOut, tbl.Len())
	for i := range records {
		rec := make(rowOut)
		for name, v := range tbl.Row(i) {
			if profile.IsMissing(v) {
				rec[name] = nil
				continue
			}
			v := v
			rec[name] = &v
		}
		records[i] = rec
	}
	return records
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func formatFloat(v float64) string {
	if profile.IsMissing(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
