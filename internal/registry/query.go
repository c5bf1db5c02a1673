package registry

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/openomix/multiomics/internal/clinical"
	"github.com/openomix/multiomics/internal/interaction"
	"github.com/openomix/multiomics/internal/omics"
	"github.com/openomix/multiomics/internal/table"
)

// ErrNoModalities reports a query whose modality selection resolved to
// nothing. Silently returning an empty dataset would hide a caller mistake,
// so this fails loudly.
var ErrNoModalities = errors.New("no modalities specified")

// Query selects and filters an aligned multi-omics dataset.
//
// Every filter list follows the same convention: an empty list means no
// restriction, never "exclude everything".
type Query struct {
	// Modalities to assemble. Empty, or the single sentinel "all", means
	// every modality the registry was built with.
	Modalities []omics.Modality
	// TargetFields are the clinical columns kept in the target table.
	// Defaults to pathologic_stage. Rows missing any target field are
	// dropped and determine the final sample set.
	TargetFields []string

	PathologicStages     []string
	HistologicalSubtypes []string
	PredictedSubtypes    []string
	TumorNormal          []string

	// SampleIDs, when non-nil, bypasses cross-modality intersection
	// entirely and uses exactly these barcodes as the starting set.
	SampleIDs []string
}

// MatchSamples computes the order-preserving intersection of sample barcodes
// across the given modalities. The running order comes from the first
// modality's table; a single-modality request returns that modality's full
// barcode set unfiltered.
func (r *Registry) MatchSamples(mods []omics.Modality) ([]string, error) {
	tables, err := r.modalityTables(mods)
	if err != nil {
		return nil, err
	}

	matched := tables[0].Index()
	for _, t := range tables[1:] {
		matched = t.IntersectIDs(matched)
	}
	// Membership is settled; the order always comes from the first modality.
	return tables[0].IntersectIDs(matched), nil
}

// LoadData assembles the dataset for a query: intersect (or override) the
// sample set, filter it through the per-sample clinical table, project the
// target fields and drop incomplete rows, then slice every requested
// modality to the surviving barcodes. Every returned table shares one
// identical, ordered barcode index with the target table.
func (r *Registry) LoadData(q Query) (map[omics.Modality]*table.Table, *table.Table, error) {
	mods := q.Modalities
	if len(mods) == 1 && strings.EqualFold(string(mods[0]), "all") {
		mods = nil
	}
	if len(mods) == 0 {
		mods = r.order
	}
	if len(mods) == 0 {
		return nil, nil, ErrNoModalities
	}

	tables, err := r.modalityTables(mods)
	if err != nil {
		return nil, nil, err
	}

	matched := q.SampleIDs
	if matched == nil {
		matched, err = r.MatchSamples(mods)
		if err != nil {
			return nil, nil, err
		}
	}

	y := r.GetPatientsClinical(matched)
	y = y.FilterIn(clinical.FieldPathologicStage, q.PathologicStages)
	y = y.FilterIn(clinical.FieldHistologicSubtype, q.HistologicalSubtypes)
	y = y.FilterIn(clinical.FieldPredictedSubtype, q.PredictedSubtypes)
	y = y.FilterIn(clinical.FieldTumorNormal, q.TumorNormal)

	targets := q.TargetFields
	if len(targets) == 0 {
		targets = []string{clinical.FieldPathologicStage}
	}
	y = y.Select(targets).DropMissing()

	final := y.Index()
	out := make(map[omics.Modality]*table.Table, len(mods))
	for i, m := range mods {
		out[m] = tables[i].Reindex(final)
	}
	return out, y, nil
}

// modalityTables resolves modality tags to their tables, failing on an empty
// request or a tag the registry was not built with.
func (r *Registry) modalityTables(mods []omics.Modality) ([]*table.Table, error) {
	if len(mods) == 0 {
		return nil, ErrNoModalities
	}
	tables := make([]*table.Table, len(mods))
	for i, m := range mods {
		t, ok := r.data[string(m)]
		if !ok {
			return nil, fmt.Errorf("modality %s not loaded", m)
		}
		tables[i] = t
	}
	return tables, nil
}

// GetPatientsClinical returns the per-sample clinical records for the given
// barcodes, in that order. Barcodes without a record yield rows of missing
// values rather than an error.
func (r *Registry) GetPatientsClinical(sampleIDs []string) *table.Table {
	return r.data[KeySamples].Reindex(sampleIDs)
}

// AddSubtypesToPatientsClinical attaches a predicted_subtype column to the
// patient table from a patient barcode → subtype mapping, and mirrors it
// onto the per-sample table so queries can filter on it. Purely additive
// and idempotent for a fixed mapping.
func (r *Registry) AddSubtypesToPatientsClinical(mapping map[string]string) {
	r.clinical.AttachPredictedSubtypes(mapping)
}

// InteractionNetwork merges the interaction networks built by the requested
// modalities' enrichments. Empty mods means every loaded modality. Stores
// without a network contribute nothing.
func (r *Registry) InteractionNetwork(mods []omics.Modality) *interaction.Network {
	if len(mods) == 0 {
		mods = r.order
	}
	net := interaction.NewNetwork()
	for _, m := range mods {
		s, ok := r.stores[m]
		if !ok {
			continue
		}
		if np, ok := s.(omics.NetworkProvider); ok {
			net.Merge(np.Network())
		}
	}
	return net
}

// SizeInfo describes one registry table for diagnostics.
type SizeInfo struct {
	Name string
	Rows int
	Cols int
}

// SampleSizes reports the dimensions of every registry table: clinical
// tables first, then modalities in load order.
func (r *Registry) SampleSizes() []SizeInfo {
	keys := []string{KeyPatients, KeyDrugs, KeySamples}
	for _, m := range r.order {
		keys = append(keys, string(m))
	}
	out := make([]SizeInfo, 0, len(keys))
	for _, k := range keys {
		t := r.data[k]
		out = append(out, SizeInfo{Name: k, Rows: t.Len(), Cols: len(t.Columns())})
	}
	return out
}

// LogSampleSizes logs the dimensions of every registry table.
func (r *Registry) LogSampleSizes() {
	for _, s := range r.SampleSizes() {
		r.logger.Info("table loaded",
			zap.String("table", s.Name),
			zap.Int("rows", s.Rows),
			zap.Int("cols", s.Cols))
	}
}
