// Package hgnc loads HUGO Gene Nomenclature Committee gene-name tables.
package hgnc

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Standard file names under a HUGO_Gene_names directory.
const (
	ProteinCodingFile = "gene_with_protein_product.txt"
	LncRNAFile        = "RNA_long_non-coding.txt"
	MicroRNAFile      = "RNA_micro.txt"
)

// GeneName holds the HGNC record for one approved symbol.
type GeneName struct {
	Symbol        string
	Name          string
	EnsemblGeneID string
}

// Load reads an HGNC download keyed by approved symbol.
// The header must carry "symbol"; "name" and "ensembl_gene_id" are optional.
func Load(path string) (map[string]GeneName, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open HGNC table: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 4*1024*1024)

	if !scanner.Scan() {
		return nil, fmt.Errorf("HGNC table: empty file")
	}
	header := strings.Split(scanner.Text(), "\t")

	symbolIdx, nameIdx, ensemblIdx := -1, -1, -1
	for i, col := range header {
		switch strings.TrimSpace(col) {
		case "symbol":
			symbolIdx = i
		case "name":
			nameIdx = i
		case "ensembl_gene_id":
			ensemblIdx = i
		}
	}
	if symbolIdx < 0 {
		return nil, fmt.Errorf("HGNC table: missing 'symbol' column")
	}

	names := make(map[string]GeneName)
	for scanner.Scan() {
		fields := strings.Split(scanner.Text(), "\t")
		if len(fields) <= symbolIdx {
			continue
		}
		symbol := strings.TrimSpace(fields[symbolIdx])
		if symbol == "" {
			continue
		}
		gn := GeneName{Symbol: symbol}
		if nameIdx >= 0 && nameIdx < len(fields) {
			gn.Name = strings.TrimSpace(fields[nameIdx])
		}
		if ensemblIdx >= 0 && ensemblIdx < len(fields) {
			gn.EnsemblGeneID = strings.TrimSpace(fields[ensemblIdx])
		}
		names[symbol] = gn
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading HGNC table: %w", err)
	}
	return names, nil
}

// SymbolsByEnsembl inverts an HGNC table into an Ensembl gene ID → approved
// symbol map, dropping records without an Ensembl ID.
func SymbolsByEnsembl(names map[string]GeneName) map[string]string {
	out := make(map[string]string, len(names))
	for _, gn := range names {
		if gn.EnsemblGeneID != "" {
			out[gn.EnsemblGeneID] = gn.Symbol
		}
	}
	return out
}
