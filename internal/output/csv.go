package output

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/atanasgiliev/hiatus-detector/internal/report"
)

var (
	csvHeader         = []string{"index", "start", "end", "matched_text", "cross_word", "context"}
	csvExtendedHeader = []string{"kind", "line", "left", "right"}
)

// WriteCSV writes the header and one row per record. Quoting follows RFC 4180.
func WriteCSV(w io.Writer, records []report.Record, opts Options) error {
	cw := csv.NewWriter(w)
	cw.UseCRLF = opts.CRLF

	header := csvHeader
	if opts.Extended {
		header = append(append([]string(nil), csvHeader...), csvExtendedHeader...)
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	row := make([]string, 0, len(header))
	for _, r := range records {
		row = append(row[:0],
			strconv.Itoa(r.Index),
			strconv.FormatUint(uint64(r.Start), 10),
			strconv.FormatUint(uint64(r.End), 10),
			r.Matched,
			strconv.FormatBool(r.CrossWord),
			r.Context,
		)
		if opts.Extended {
			row = append(row, r.Kind, r.Line, r.Left, r.Right)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
