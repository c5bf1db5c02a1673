// Package hprd loads the HPRD binary protein–protein interaction table.
package hprd

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// InteractionsFile is the standard file name under an HPRD_PPI directory.
const InteractionsFile = "BINARY_PROTEIN_PROTEIN_INTERACTIONS.txt"

// Interaction is one undirected protein–protein pair, by gene symbol.
type Interaction struct {
	SymbolA string
	SymbolB string
}

// LoadInteractions reads the HPRD binary interaction dump. The file has no
// header; columns are positional: symbol, HPRD id, RefSeq id for each of the
// two interactors, then experiment type and PubMed ids.
func LoadInteractions(path string) ([]Interaction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open HPRD interactions: %w", err)
	}
	defer f.Close()

	var out []Interaction
	scanner := bufio.NewScanner(f)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if line == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < 4 {
			return nil, fmt.Errorf("HPRD interactions line %d: %d fields, need at least 4", lineNum, len(fields))
		}
		a := strings.TrimSpace(fields[0])
		b := strings.TrimSpace(fields[3])
		if a == "" || b == "" || a == "-" || b == "-" {
			continue
		}
		out = append(out, Interaction{SymbolA: a, SymbolB: b})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading HPRD interactions: %w", err)
	}
	return out, nil
}
