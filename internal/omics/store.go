package omics

import (
	"fmt"
	"path/filepath"

	"github.com/openomix/multiomics/internal/interaction"
	"github.com/openomix/multiomics/internal/table"
)

// Store is the common surface of every modality store: one table keyed by
// sample barcode, with feature identifiers (genes, miRNAs, probes) as
// columns.
type Store interface {
	Modality() Modality
	Data() *table.Table
	Features() []string
}

// NetworkProvider is implemented by stores whose enrichment joins build an
// interaction network.
type NetworkProvider interface {
	Network() *interaction.Network
}

// expressionStore is the shared base of the concrete modality stores.
type expressionStore struct {
	modality Modality
	cohort   string
	data     *table.Table
}

func (s *expressionStore) Modality() Modality {
	return s.modality
}

func (s *expressionStore) Data() *table.Table {
	return s.data
}

func (s *expressionStore) Features() []string {
	return s.data.Columns()
}

// loadMatrix reads a feature-by-sample matrix file and re-keys it by sample
// barcode. A failure here is fatal to the owning store's construction.
func loadMatrix(modality Modality, cohort, dir, file string) (expressionStore, error) {
	data, err := table.ReadTable(filepath.Join(dir, file), table.Options{Transpose: true})
	if err != nil {
		return expressionStore{}, fmt.Errorf("load %s matrix: %w", modality, err)
	}
	return expressionStore{modality: modality, cohort: cohort, data: data}, nil
}
