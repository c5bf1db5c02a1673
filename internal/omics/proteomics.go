package omics

import (
	"fmt"

	"github.com/openomix/multiomics/internal/datasource/hprd"
	"github.com/openomix/multiomics/internal/interaction"
)

// ProteinRPPAFile is the RPPA matrix file name under protein_rppa/.
const ProteinRPPAFile = "protein_RPPA.txt"

// ProteinExpression holds the RPPA protein matrix plus an optional HPRD
// protein–protein interaction network.
type ProteinExpression struct {
	expressionStore
	ppi *interaction.Network
}

// NewProteinExpression loads protein_RPPA.txt.
func NewProteinExpression(cohort, dir string) (*ProteinExpression, error) {
	base, err := loadMatrix(PRO, cohort, dir, ProteinRPPAFile)
	if err != nil {
		return nil, err
	}
	return &ProteinExpression{expressionStore: base}, nil
}

// EnrichPPI builds a protein interaction network from an HPRD binary
// interaction file. HPRD pairs are undirected, so each yields two edges.
func (p *ProteinExpression) EnrichPPI(path string) error {
	interactions, err := hprd.LoadInteractions(path)
	if err != nil {
		return fmt.Errorf("PPI enrichment: %w", err)
	}
	net := interaction.NewNetwork()
	for _, it := range interactions {
		net.AddEdge(it.SymbolA, it.SymbolB, interaction.KindBinds)
		net.AddEdge(it.SymbolB, it.SymbolA, interaction.KindBinds)
	}
	p.ppi = net
	return nil
}

// Network returns the protein interaction network, or nil before enrichment.
func (p *ProteinExpression) Network() *interaction.Network {
	return p.ppi
}
