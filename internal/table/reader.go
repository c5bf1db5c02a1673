package table

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"
)

// Options control how a delimited file is read into a Table.
type Options struct {
	// Sep is the field separator. Defaults to tab.
	Sep string
	// IndexColumn names the identifier column. Defaults to the first
	// header column.
	IndexColumn string
	// SkipRows skips that many annotation lines between the header and the
	// first data row (TCGA Biotab files carry two).
	SkipRows int
	// Transpose treats data rows as features and non-index header columns
	// as sample identifiers, producing a table keyed by sample with one
	// column per feature. This is the layout of TCGA-assembler matrices.
	Transpose bool
}

func (o Options) sep() string {
	if o.Sep == "" {
		return "\t"
	}
	return o.Sep
}

// ReadTable loads a delimited file into a Table. Files ending in .gz are
// decompressed transparently.
func ReadTable(path string, opts Options) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open table file: %w", err)
	}
	defer f.Close()

	var reader io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("open gzip reader: %w", err)
		}
		defer gz.Close()
		reader = gz
	}

	t, err := ParseTable(reader, opts)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return t, nil
}

// ParseTable reads delimited content into a Table.
func ParseTable(r io.Reader, opts Options) (*Table, error) {
	sep := opts.sep()

	scanner := bufio.NewScanner(r)
	// Expression matrices have one column per sample; lines run long.
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 16*1024*1024)

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read header: %w", err)
		}
		return nil, fmt.Errorf("empty table")
	}
	header := strings.Split(strings.TrimRight(scanner.Text(), "\r\n"), sep)
	if len(header) < 2 {
		return nil, fmt.Errorf("header has %d columns, need at least 2", len(header))
	}

	idxCol := 0
	if opts.IndexColumn != "" {
		idxCol = -1
		for i, col := range header {
			if col == opts.IndexColumn {
				idxCol = i
				break
			}
		}
		if idxCol < 0 {
			return nil, fmt.Errorf("missing index column %q", opts.IndexColumn)
		}
	}

	for i := 0; i < opts.SkipRows; i++ {
		if !scanner.Scan() {
			break
		}
	}

	if opts.Transpose {
		return parseTransposed(scanner, header, idxCol, sep)
	}
	return parseRowMajor(scanner, header, idxCol, sep)
}

// parseRowMajor reads files whose rows are already the keyed records
// (clinical tables, annotation tables).
func parseRowMajor(scanner *bufio.Scanner, header []string, idxCol int, sep string) (*Table, error) {
	t := New(header[idxCol])
	lineNum := 1
	for scanner.Scan() {
		lineNum++
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, sep)
		if len(fields) <= idxCol {
			return nil, fmt.Errorf("line %d: %d fields, index column is %d", lineNum, len(fields), idxCol+1)
		}
		id := strings.TrimSpace(fields[idxCol])
		if id == "" {
			continue
		}
		row := make(Row, len(header)-1)
		for i, col := range header {
			if i == idxCol {
				continue
			}
			v := ""
			if i < len(fields) {
				v = strings.TrimSpace(fields[i])
			}
			row[col] = v
		}
		t.Set(id, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading table: %w", err)
	}
	return t, nil
}

// parseTransposed reads feature-by-sample matrices, re-keying rows on the
// sample identifiers found in the header.
func parseTransposed(scanner *bufio.Scanner, header []string, idxCol int, sep string) (*Table, error) {
	samples := make([]string, 0, len(header)-1)
	colForField := make([]int, 0, len(header)-1)
	for i, col := range header {
		if i == idxCol {
			continue
		}
		samples = append(samples, strings.TrimSpace(col))
		colForField = append(colForField, i)
	}

	t := New("sample_barcode")
	for _, s := range samples {
		t.Set(s, Row{})
	}

	lineNum := 1
	for scanner.Scan() {
		lineNum++
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, sep)
		if len(fields) <= idxCol {
			return nil, fmt.Errorf("line %d: %d fields, index column is %d", lineNum, len(fields), idxCol+1)
		}
		feature := strings.TrimSpace(fields[idxCol])
		if feature == "" {
			continue
		}
		for j, s := range samples {
			v := ""
			if colForField[j] < len(fields) {
				v = strings.TrimSpace(fields[colForField[j]])
			}
			t.SetValue(s, feature, v)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading table: %w", err)
	}
	return t, nil
}
