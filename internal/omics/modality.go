// Package omics provides per-modality stores for multi-omics cancer data.
// Each store loads one sample-indexed table from the fixed TCGA-assembler
// directory layout and optionally enriches it against external reference
// databases.
package omics

import (
	"errors"
	"fmt"
	"strings"
)

// Modality tags the omics data types the registry can carry.
type Modality string

const (
	GE  Modality = "GE"  // gene expression
	SNP Modality = "SNP" // somatic mutation, gene level
	CNV Modality = "CNV" // copy-number variation
	DNA Modality = "DNA" // DNA methylation
	MIR Modality = "MIR" // miRNA expression
	LNC Modality = "LNC" // lncRNA expression
	PRO Modality = "PRO" // protein expression (RPPA)
	WSI Modality = "WSI" // whole-slide images (no tabular data)
)

// ErrUnknownModality is returned for tags outside the closed modality set.
var ErrUnknownModality = errors.New("unknown modality")

// All returns every known modality tag in canonical order.
func All() []Modality {
	return []Modality{WSI, GE, SNP, CNV, DNA, MIR, LNC, PRO}
}

// Parse converts a string tag to a Modality.
func Parse(s string) (Modality, error) {
	m := Modality(strings.ToUpper(strings.TrimSpace(s)))
	switch m {
	case GE, SNP, CNV, DNA, MIR, LNC, PRO, WSI:
		return m, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownModality, s)
}

// ParseList converts a comma-separated tag list to modalities.
func ParseList(s string) ([]Modality, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var out []Modality
	for _, part := range strings.Split(s, ",") {
		m, err := Parse(part)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}
