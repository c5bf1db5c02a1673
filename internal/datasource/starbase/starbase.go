// Package starbase loads StarBase v2.0 miRNA–lncRNA interaction tables.
package starbase

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// InteractionsFile is the standard file name under a StarBase directory.
const InteractionsFile = "starBase_Human_Pan-Cancer_MiRNA-LncRNA_Interactions.txt"

// Interaction is one miRNA → lncRNA targeting relation.
type Interaction struct {
	MirName string
	LncName string
}

// LoadInteractions reads a StarBase pan-cancer miRNA–lncRNA table.
// The header must carry "name" (miRNA) and "geneName" (lncRNA) columns.
func LoadInteractions(path string) ([]Interaction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open StarBase interactions: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		return nil, fmt.Errorf("StarBase interactions: empty file")
	}
	header := strings.Split(scanner.Text(), "\t")

	mirIdx, lncIdx := -1, -1
	for i, col := range header {
		switch strings.TrimSpace(col) {
		case "name":
			mirIdx = i
		case "geneName":
			lncIdx = i
		}
	}
	if mirIdx < 0 {
		return nil, fmt.Errorf("StarBase interactions: missing 'name' column")
	}
	if lncIdx < 0 {
		return nil, fmt.Errorf("StarBase interactions: missing 'geneName' column")
	}

	var out []Interaction
	for scanner.Scan() {
		fields := strings.Split(scanner.Text(), "\t")
		if len(fields) <= mirIdx || len(fields) <= lncIdx {
			continue
		}
		mir := strings.TrimSpace(fields[mirIdx])
		lnc := strings.TrimSpace(fields[lncIdx])
		if mir == "" || lnc == "" {
			continue
		}
		out = append(out, Interaction{MirName: mir, LncName: lnc})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading StarBase interactions: %w", err)
	}
	return out, nil
}
