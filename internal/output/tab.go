// Package output provides tab-delimited export for assembled tables.
package output

import (
	"bufio"
	"io"
	"strings"

	"github.com/openomix/multiomics/internal/table"
)

// MissingValue is written for missing cells so exported files round-trip.
const MissingValue = "NA"

// WriteTable writes a table in tab-delimited format: a header line with the
// identifier column first, then one line per row in table order.
func WriteTable(w io.Writer, t *table.Table) error {
	bw := bufio.NewWriter(w)
	cols := t.Columns()

	header := append([]string{t.IndexName()}, cols...)
	if _, err := bw.WriteString(strings.Join(header, "\t") + "\n"); err != nil {
		return err
	}

	fields := make([]string, 0, len(header))
	for _, id := range t.Index() {
		fields = fields[:0]
		fields = append(fields, id)
		for _, c := range cols {
			v, _ := t.Value(id, c)
			if table.IsMissing(v) {
				v = MissingValue
			}
			fields = append(fields, v)
		}
		if _, err := bw.WriteString(strings.Join(fields, "\t") + "\n"); err != nil {
			return err
		}
	}

	return bw.Flush()
}
