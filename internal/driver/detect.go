package driver

import (
	"context"
	"errors"
	"fmt"

	"github.com/atanasgiliev/hiatus-detector/internal/annotate"
	"github.com/atanasgiliev/hiatus-detector/internal/diag"
	"github.com/atanasgiliev/hiatus-detector/internal/lexer"
	"github.com/atanasgiliev/hiatus-detector/internal/observ"
	"github.com/atanasgiliev/hiatus-detector/internal/output"
	"github.com/atanasgiliev/hiatus-detector/internal/phon"
	"github.com/atanasgiliev/hiatus-detector/internal/report"
	"github.com/atanasgiliev/hiatus-detector/internal/rules"
	"github.com/atanasgiliev/hiatus-detector/internal/scan"
	"github.com/atanasgiliev/hiatus-detector/internal/source"
	"github.com/atanasgiliev/hiatus-detector/internal/token"
	"github.com/atanasgiliev/hiatus-detector/internal/trace"
)

// Result holds everything one detection run produced.
type Result struct {
	FileSet     *source.FileSet
	File        *source.File
	Table       *rules.Table
	Tokens      []token.Token
	Units       []phon.SoundUnit // nil when Occurrences came from the cache
	Occurrences []scan.Occurrence
	Annotated   *annotate.Document
	Records     []report.Record
	Bag         *diag.Bag
	Timer       *observ.Timer
	Cached      bool
}

// Summary counts the occurrences by kind.
func (r *Result) Summary() report.Summary {
	return report.Summarize(r.Records)
}

// Write stores the HTML and CSV artifacts. Failures come back as *output.SinkError
// and are also added to Bag, one error per artifact.
func (r *Result) Write(htmlPath, csvPath string, opts output.Options) error {
	if opts.Source == "" && r.File != nil {
		opts.Source = r.File.Path
	}
	if opts.Language == "" && r.Table != nil {
		opts.Language = r.Table.Name()
	}
	err := output.WriteFiles(r.Annotated, r.Records, htmlPath, csvPath, opts)
	if r.Bag != nil && r.File != nil {
		for _, se := range output.SinkErrors(err) {
			r.Bag.Add(diag.New(diag.SevError, diag.IOSinkError, source.Span{File: r.File.ID}, se.Error()))
		}
	}
	return err
}

// DetectText runs the whole pipeline over text. name labels the document.
// Text that is not valid UTF-8 yields *source.EncodingError and no result.
func DetectText(ctx context.Context, name, text string, table *rules.Table, opts Options) (*Result, error) {
	if err := source.CheckText(name, text); err != nil {
		return nil, err
	}
	fs := source.NewFileSet()
	id := fs.AddVirtual(name, text)
	return run(ctx, fs, fs.Get(id), table, opts)
}

// Detect loads path, decodes it and runs the pipeline.
// Undecodable input yields *source.EncodingError and no result.
func Detect(ctx context.Context, path string, table *rules.Table, opts Options) (*Result, error) {
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		var encErr *source.EncodingError
		if errors.As(err, &encErr) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return run(ctx, fs, fs.Get(id), table, opts)
}

func run(ctx context.Context, fs *source.FileSet, file *source.File, table *rules.Table, opts Options) (*Result, error) {
	if table == nil {
		return nil, &rules.ConfigurationError{Source: "<none>", Problems: []string{"no rule table"}}
	}
	if opts.MaxDiagnostics <= 0 {
		opts.MaxDiagnostics = DefaultOptions().MaxDiagnostics
	}
	bag := diag.NewBag(opts.MaxDiagnostics)
	reporter := diag.BagReporter{Bag: bag}
	timer := observ.NewTimer()
	tracer := trace.FromContext(ctx)
	root := trace.Begin(tracer, trace.ScopeDriver, "detect", trace.ParentFromContext(ctx))
	root.WithExtra("file", file.Path).WithExtra("rules", table.Name())

	res := &Result{FileSet: fs, File: file, Table: table, Bag: bag, Timer: timer}
	p := phases{ctx: ctx, tracer: tracer, parent: root.ID(), timer: timer}

	err := p.run("tokenize", func() string {
		res.Tokens = lexer.Tokenize(file, lexer.Options{Reporter: reporter, Punct: table.IsElisionMark})
		return fmt.Sprintf("%d tokens", len(res.Tokens))
	})

	var key CacheKey
	if err == nil && opts.Cache != nil {
		key = cacheKey(file, table, opts.Scan)
		if occs, ok := opts.Cache.Load(key, file.ID); ok {
			res.Occurrences = occs
			res.Cached = true
			trace.Point(tracer, trace.ScopePass, "cache", root.ID(), "hit", nil)
		}
	}

	if err == nil && !res.Cached {
		err = p.run("classify", func() string {
			res.Units = phon.NewClassifier(table, phon.Options{Reporter: reporter}).ClassifyAll(file, res.Tokens)
			return fmt.Sprintf("%d units", len(res.Units))
		})
	}
	if err == nil && !res.Cached {
		err = p.run("scan", func() string {
			sopts := opts.Scan
			sopts.Reporter = reporter
			res.Occurrences = scan.New(file, res.Tokens, table, sopts).Scan(res.Units)
			return fmt.Sprintf("%d occurrences", len(res.Occurrences))
		})
		if err == nil && opts.Cache != nil {
			if cerr := opts.Cache.Store(key, table.Name(), res.Occurrences); cerr != nil {
				diag.ReportWarning(reporter, diag.IOCacheError, source.Span{File: file.ID}, fmt.Sprintf("cache write failed: %v", cerr)).Emit()
			}
		}
	}
	if err == nil {
		if verr := scan.Verify(res.Occurrences); verr != nil {
			err = fmt.Errorf("internal error: %w", verr)
		}
	}
	if err == nil {
		for _, o := range res.Occurrences {
			trace.Point(tracer, trace.ScopeUnit, "occurrence", root.ID(), o.Kind.Tag(), map[string]string{
				"index": fmt.Sprint(o.Index),
				"pair":  o.Left.Text + "+" + o.Right.Text,
				"at":    fmt.Sprintf("%d-%d", o.Left.Span.Start, o.Right.Span.End),
			})
		}
		err = p.run("annotate", func() string {
			res.Annotated = annotate.Annotate(file.Text, res.Occurrences, opts.Marker)
			res.Records = report.Build(file, res.Occurrences)
			return ""
		})
	}

	if err != nil {
		root.End("error: " + err.Error())
		return nil, err
	}
	root.End(res.Summary().String())
	return res, nil
}

// phases wraps each pipeline step in a timer phase and a trace span and
// checks for cancellation before it starts.
type phases struct {
	ctx    context.Context
	tracer trace.Tracer
	parent uint64
	timer  *observ.Timer
}

func (p phases) run(name string, fn func() string) error {
	if err := p.ctx.Err(); err != nil {
		return err
	}
	span := trace.Begin(p.tracer, trace.ScopePass, name, p.parent)
	idx := p.timer.Begin(name)
	note := fn()
	p.timer.End(idx, note)
	span.End(note)
	return nil
}
