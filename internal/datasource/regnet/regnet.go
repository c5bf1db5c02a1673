// Package regnet loads the RegNetwork gene regulatory network table.
package regnet

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// SourceFile is the standard file name under a RegNetwork directory.
const SourceFile = "human.source"

// Edge is one directed regulator → target relation, by gene symbol.
type Edge struct {
	Regulator string
	Target    string
}

// LoadNetwork reads a RegNetwork human.source file. The file has no header;
// columns are regulator symbol, regulator id, target symbol, target id.
func LoadNetwork(path string) ([]Edge, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open RegNetwork source: %w", err)
	}
	defer f.Close()

	var edges []Edge
	scanner := bufio.NewScanner(f)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if line == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < 3 {
			return nil, fmt.Errorf("RegNetwork line %d: %d fields, need at least 3", lineNum, len(fields))
		}
		regulator := strings.TrimSpace(fields[0])
		target := strings.TrimSpace(fields[2])
		if regulator == "" || target == "" {
			continue
		}
		edges = append(edges, Edge{Regulator: regulator, Target: target})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading RegNetwork source: %w", err)
	}
	return edges, nil
}
