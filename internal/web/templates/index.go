package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

const styles = `body{font-family:sans-serif;max-width:48rem;margin:2rem auto;padding:0 1rem}
label{display:inline-block;width:16rem}
.row{margin:.4rem 0}
.actions form{display:inline}
.banner{padding:.6rem;margin:1rem 0;border-radius:4px}
.banner-info{background:#e7f3fe;border:1px solid #90c2f5}
.banner-error{background:#fdecea;border:1px solid #f5a59b}
pre{background:#f6f6f6;padding:.8rem}`

// Index renders the research data form, the action buttons and whichever
// result section p carries.
func Index(p Page) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}

		h.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><title>Research Data Manager</title><style>`)
		h.raw(styles)
		h.raw(`</style></head><body><h1>Research Data Manager</h1>`)

		if p.Message != nil {
			h.rawf(`<div class="%s" role="alert">`, bannerClass(p.Message.Kind))
			h.text(p.Message.Text)
			h.raw(`</div>`)
		}

		renderForm(h, p.Form)
		renderActions(h)

		h.raw(`<p class="status">`)
		h.rawf("%d entries in memory", p.EntryCount)
		if p.Location != "" {
			h.raw(`, saving to `)
			h.text(p.Location)
		}
		h.raw(`</p>`)

		if len(p.Entries) > 0 {
			renderEntries(h, p.Entries)
		}
		if len(p.Analysis) > 0 {
			renderAnalysis(h, p.Analysis)
		}

		h.raw(`</body></html>`)
		return h.err
	})
}

func renderForm(h *htmlWriter, f FormValues) {
	fields := []struct {
		id, label, value string
	}{
		{"name", "Experiment Name:", f.Name},
		{"date", "Date (YYYY-MM-DD):", f.Date},
		{"researcher", "Researcher Name:", f.Researcher},
		{"data_points", "Data Points (comma-separated):", f.DataPoints},
	}

	h.raw(`<form method="post" action="/entries" id="entry-form">`)
	for _, fld := range fields {
		h.rawf(`<div class="row"><label for="%s">%s</label>`, fld.id, fld.label)
		h.rawf(`<input type="text" id="%s" name="%s" value="`, fld.id, fld.id)
		h.text(fld.value)
		h.raw(`"></div>`)
	}
	h.raw(`<button type="submit">Add Entry</button></form>`)
}

func renderActions(h *htmlWriter) {
	h.raw(`<div class="actions">`)
	h.raw(`<form method="get" action="/entries"><button type="submit">View Entries</button></form> `)
	h.raw(`<form method="get" action="/analysis"><button type="submit">Analyze Data</button></form> `)
	h.raw(`<form method="post" action="/save"><button type="submit">Save Entries</button></form>`)
	h.raw(`</div>`)
}

func renderEntries(h *htmlWriter, entries []EntryRow) {
	h.raw(`<section id="entries"><h2>View Entries</h2><pre>`)
	for _, e := range entries {
		h.rawf("Entry %d:\n", e.Index)
		h.raw("  Experiment Name: ")
		h.text(e.Name)
		h.raw("\n  Date: ")
		h.text(e.Date)
		h.raw("\n  Researcher: ")
		h.text(e.Researcher)
		h.raw("\n  Data Points: ")
		h.text(e.DataPoints)
		h.raw("\n\n")
	}
	h.raw(`</pre></section>`)
}

func renderAnalysis(h *htmlWriter, rows []AnalysisRow) {
	h.raw(`<section id="analysis"><h2>Analyze Data</h2><pre>`)
	for _, r := range rows {
		h.raw("Experiment: ")
		h.text(r.Experiment)
		h.raw("\n")
		if r.Error != "" {
			h.raw("  Error: ")
			h.text(r.Error)
			h.raw("\n\n")
			continue
		}
		h.raw("  Average: ")
		h.text(r.Average)
		h.raw("\n  Standard Deviation: ")
		h.text(r.StdDev)
		h.raw("\n  Median: ")
		h.text(r.Median)
		h.raw("\n\n")
	}
	h.raw(`</pre></section>`)
}
