package output

import (
	"bufio"
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/atanasgiliev/hiatus-detector/internal/annotate"
	"github.com/atanasgiliev/hiatus-detector/internal/report"
)

// WriteFiles writes the HTML and CSV artifacts. An empty path skips that artifact.
// Each artifact is written to a temporary file next to its target and renamed
// into place, so a failed write never leaves a partial file. Failures are
// returned as *SinkError values joined with errors.Join.
func WriteFiles(doc *annotate.Document, records []report.Record, htmlPath, csvPath string, opts Options) error {
	var errs []error
	if htmlPath != "" {
		err := writeAtomic(htmlPath, func(w io.Writer) error {
			return WriteHTML(w, doc, records, opts)
		})
		if err != nil {
			errs = append(errs, &SinkError{Artifact: ArtifactHTML, Path: htmlPath, Err: err})
		}
	}
	if csvPath != "" {
		err := writeAtomic(csvPath, func(w io.Writer) error {
			return WriteCSV(w, records, opts)
		})
		if err != nil {
			errs = append(errs, &SinkError{Artifact: ArtifactCSV, Path: csvPath, Err: err})
		}
	}
	return errors.Join(errs...)
}

func writeAtomic(path string, render func(io.Writer) error) error {
	dir := filepath.Dir(path)
	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	committed := false
	defer func() {
		if committed {
			return
		}
		// закрытие и удаление временного файла при любой ошибке
		_ = f.Close()
		_ = os.Remove(tmp)
	}()

	bw := bufio.NewWriter(f)
	if err := render(bw); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return err
	}
	if err := f.Sync(); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp, 0o644); err != nil {
		return err
	}
	// Атомарная замена
	if err := os.Rename(tmp, path); err != nil {
		return err
	}
	committed = true
	return nil
}
