package output

import (
	"fmt"
	"html"
	"html/template"
	"io"

	"github.com/atanasgiliev/hiatus-detector/internal/annotate"
	"github.com/atanasgiliev/hiatus-detector/internal/report"
)

const pageTemplate = `<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: serif; padding: 1rem; }
pre.source { white-space: pre-wrap; font-size: 18px; line-height: 1.25; }
.hiatus-intra { background: rgba(255,50,50,0.35); }
.hiatus-inter { background: rgba(80,220,80,0.35); }
.hiatus-across { background: rgba(80,120,255,0.35); }
table { border-collapse: collapse; width: 100%; margin-top: 1rem; }
td, th { border: 1px solid #aaa; padding: 6px; }
td.ctx { white-space: pre-wrap; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
{{- if .Source}}
<p>Source: <code>{{.Source}}</code>{{if .Language}} ({{.Language}}){{end}}</p>
{{- end}}
<p><span class="hiatus-intra">Red = Word Internal (I)</span>; <span class="hiatus-inter">Green = Between Words (B)</span>; <span class="hiatus-across">Blue = Between Verses (V)</span>.</p>
<p>{{.Summary}}</p>

<h2>Annotated Text</h2>
<pre class="source">{{.Body}}</pre>

<h2>Occurrences</h2>
<table>
<tr><th>#</th><th>Type</th><th>Line</th><th>Vowel 1</th><th>Vowel 2</th><th>Offsets</th><th>Context</th></tr>
{{- range .Records}}
<tr id="occ-{{.Index}}"><td>{{.Index}}</td><td>{{.Kind}}</td><td>{{.Line}}</td><td>{{.Left}}</td><td>{{.Right}}</td><td>{{.Start}}-{{.End}}</td><td class="ctx">{{.Context}}</td></tr>
{{- end}}
</table>
</body>
</html>
`

var page = template.Must(template.New("page").Parse(pageTemplate))

type pageData struct {
	Title    string
	Source   string
	Language string
	Summary  string
	Body     template.HTML
	Records  []report.Record
}

var kindClass = map[string][2]string{
	"I": {"hiatus-intra", "intra-word hiatus"},
	"B": {"hiatus-inter", "interword hiatus"},
	"V": {"hiatus-across", "across-line hiatus"},
}

// WriteHTML renders doc as a standalone page. Source text is escaped;
// every marker of doc becomes a styled span carrying data-index.
func WriteHTML(w io.Writer, doc *annotate.Document, records []report.Record, opts Options) error {
	byIndex := make(map[int]report.Record, len(records))
	for _, r := range records {
		byIndex[r.Index] = r
	}
	body := doc.Render(html.EscapeString, func(seg annotate.Segment) string {
		if !seg.Open {
			return "</span>"
		}
		cls := kindClass[byIndex[seg.Occurrence].Kind]
		if cls[0] == "" {
			cls = kindClass["I"]
		}
		return fmt.Sprintf(`<span class="%s" data-index="%d" title="%s #%d">`, cls[0], seg.Occurrence, cls[1], seg.Occurrence)
	})

	data := pageData{
		Title:    opts.title(),
		Source:   opts.Source,
		Language: opts.Language,
		Summary:  report.Summarize(records).String(),
		Body:     template.HTML(body), // #nosec G203 -- source text is escaped above
		Records:  records,
	}
	return page.Execute(w, data)
}
