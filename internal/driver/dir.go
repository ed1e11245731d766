package driver

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/atanasgiliev/hiatus-detector/internal/diag"
	"github.com/atanasgiliev/hiatus-detector/internal/observ"
	"github.com/atanasgiliev/hiatus-detector/internal/progress"
	"github.com/atanasgiliev/hiatus-detector/internal/rules"
	"github.com/atanasgiliev/hiatus-detector/internal/source"
	"github.com/atanasgiliev/hiatus-detector/internal/trace"
)

// FileResult is the outcome for one document of a directory run.
type FileResult struct {
	Path    string // relative to the scanned directory
	Summary string
	Count   int
	HTML    string
	CSV     string
	FileSet *source.FileSet // for rendering Bag
	Bag     *diag.Bag
	Err     error
}

// DirResult aggregates a directory run.
type DirResult struct {
	Files []FileResult
	Timer *observ.Timer
}

// Failed returns how many files ended with an error.
func (r *DirResult) Failed() int {
	n := 0
	for _, f := range r.Files {
		if f.Err != nil {
			n++
		}
	}
	return n
}

// Total returns the number of occurrences across all files.
func (r *DirResult) Total() int {
	n := 0
	for _, f := range r.Files {
		n += f.Count
	}
	return n
}

// ListFiles returns the sorted text files under dir with one of exts.
func ListFiles(dir string, exts []string) ([]string, error) {
	if len(exts) == 0 {
		exts = []string{".txt"}
	}
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		for _, want := range exts {
			if ext == strings.ToLower(want) {
				files = append(files, path)
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// DetectDir processes every matching file under dir in parallel. Documents are
// independent, so a failing file is recorded in its FileResult and does not
// stop the others; only cancellation aborts the run.
func DetectDir(ctx context.Context, dir string, table *rules.Table, opts DirOptions) (*DirResult, error) {
	files, err := ListFiles(dir, opts.Extensions)
	if err != nil {
		return nil, err
	}
	return detectFiles(ctx, dir, files, table, opts)
}

func detectFiles(ctx context.Context, dir string, files []string, table *rules.Table, opts DirOptions) (*DirResult, error) {
	res := &DirResult{Files: make([]FileResult, len(files)), Timer: observ.NewTimer()}
	if len(files) == 0 {
		return res, nil
	}
	for i, path := range files {
		res.Files[i].Path = relPath(dir, path)
		progress.Emit(opts.Progress, progress.Event{File: res.Files[i].Path, Status: progress.StatusQueued})
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	tracer := trace.FromContext(ctx)
	root := trace.Begin(tracer, trace.ScopeDriver, "detect-dir", trace.ParentFromContext(ctx))
	root.WithExtra("files", fmt.Sprint(len(files))).WithExtra("jobs", fmt.Sprint(jobs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			span := trace.Begin(tracer, trace.ScopeFile, "file:"+res.Files[i].Path, root.ID())
			fctx := trace.WithParent(gctx, span)
			res.Files[i] = detectOne(fctx, res.Files[i].Path, path, table, opts, res.Timer)
			span.End(res.Files[i].Summary)
			return nil
		})
	}
	err := g.Wait()
	root.End(fmt.Sprintf("%d occurrences, %d failed", res.Total(), res.Failed()))
	if err != nil {
		return res, err
	}
	return res, nil
}

func detectOne(ctx context.Context, rel, path string, table *rules.Table, opts DirOptions, total *observ.Timer) FileResult {
	fr := FileResult{Path: rel}
	started := time.Now()
	emit := func(stage progress.Stage, status progress.Status) {
		progress.Emit(opts.Progress, progress.Event{
			File:        rel,
			Stage:       stage,
			Status:      status,
			Err:         fr.Err,
			Occurrences: fr.Count,
			Elapsed:     time.Since(started),
		})
	}

	emit(progress.StageLoad, progress.StatusWorking)
	r, err := Detect(ctx, path, table, opts.Options)
	if err != nil {
		fr.Err = err
		fr.FileSet, fr.Bag = loadFailure(rel, err, opts.MaxDiagnostics)
		emit(progress.StageLoad, progress.StatusError)
		return fr
	}
	total.Merge(r.Timer)
	fr.FileSet, fr.Bag = r.FileSet, r.Bag
	fr.Count = len(r.Records)
	fr.Summary = r.Summary().String()

	if opts.OutDir != "" {
		emit(progress.StageWrite, progress.StatusWorking)
		base := filepath.Join(opts.OutDir, strings.TrimSuffix(rel, filepath.Ext(rel)))
		fr.HTML, fr.CSV = base+".html", base+".csv"
		if err := ensureDir(filepath.Dir(base)); err != nil {
			fr.Err = err
		} else {
			fr.Err = r.Write(fr.HTML, fr.CSV, opts.Output)
		}
		if fr.Err != nil {
			emit(progress.StageWrite, progress.StatusError)
			return fr
		}
	}
	emit(progress.StageWrite, progress.StatusDone)
	return fr
}

// loadFailure turns a load or decode error into a diagnostic against an empty
// stand-in file, so directory runs can print it like any other finding.
// Other errors (cancellation) get no bag.
func loadFailure(rel string, err error, limit int) (*source.FileSet, *diag.Bag) {
	var (
		encErr  *source.EncodingError
		pathErr *fs.PathError
		code    diag.Code
	)
	switch {
	case errors.As(err, &encErr):
		code = diag.IOEncodingError
	case errors.As(err, &pathErr):
		code = diag.IOLoadFileError
	default:
		return nil, nil
	}
	if limit <= 0 {
		limit = DefaultOptions().MaxDiagnostics
	}
	fset := source.NewFileSet()
	id := fset.AddVirtual(rel, "")
	bag := diag.NewBag(limit)
	bag.Add(diag.New(diag.SevError, code, source.Span{File: id}, err.Error()))
	return fset, bag
}

func relPath(dir, path string) string {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}
