// Package registry assembles the per-modality stores and the clinical store
// into one queryable multi-omics dataset, aligned on sample barcodes.
package registry

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"github.com/openomix/multiomics/internal/clinical"
	"github.com/openomix/multiomics/internal/datasource/hgnc"
	"github.com/openomix/multiomics/internal/datasource/hprd"
	"github.com/openomix/multiomics/internal/datasource/regnet"
	"github.com/openomix/multiomics/internal/datasource/targetscan"
	"github.com/openomix/multiomics/internal/omics"
	"github.com/openomix/multiomics/internal/table"
)

// Keys of the non-modality tables the registry carries.
const (
	KeyPatients = "PATIENTS"
	KeyDrugs    = "DRUGS"
	KeySamples  = "SAMPLES"
)

// Modality subdirectories under the cohort data path.
var modalityDirs = map[omics.Modality]string{
	omics.GE:  "gene_exp",
	omics.SNP: "somatic",
	omics.CNV: "cnv",
	omics.DNA: "dna",
	omics.MIR: "mirna",
	omics.LNC: "lncrna",
	omics.PRO: "protein_rppa",
}

// External reference subdirectories under the external data path.
const (
	targetScanDir = "TargetScan"
	regNetworkDir = "RegNetwork"
	hugoNamesDir  = "HUGO_Gene_names"
	starBaseDir   = "StarBase v2.0"
	hprdDir       = "HPRD_PPI"
)

// Config carries the construction parameters for a registry.
type Config struct {
	// Cohort is the TCGA cancer cohort name, e.g. "LUAD".
	Cohort string
	// DataPath is the directory holding clinical/ and the modality
	// subdirectories.
	DataPath string
	// ExternalPath is the directory holding external reference databases
	// used by enrichment. Empty disables enrichment.
	ExternalPath string
	// Modalities selects which omics types to load. Empty means all.
	Modalities []omics.Modality
}

// Option configures a Registry during construction.
type Option func(*Registry)

// WithLogger sets the logger used for load and enrichment diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(r *Registry) {
		r.logger = l
	}
}

// Registry owns the loaded modality and clinical tables and answers
// cross-modality alignment queries. It is immutable after construction
// except for AddSubtypesToPatientsClinical.
type Registry struct {
	cfg      Config
	logger   *zap.Logger
	clinical *clinical.Store
	stores   map[omics.Modality]omics.Store
	order    []omics.Modality
	data     map[string]*table.Table
}

// New builds a registry: clinical and modality tables load concurrently,
// then enrichment joins run best-effort, then the per-sample clinical table
// is derived over the union of all modality sample barcodes. A primary load
// failure of any requested modality aborts construction.
func New(cfg Config, opts ...Option) (*Registry, error) {
	if cfg.DataPath == "" {
		return nil, errors.New("registry: data path is required")
	}
	if len(cfg.Modalities) == 0 {
		cfg.Modalities = omics.All()
	}

	r := &Registry{
		cfg:    cfg,
		logger: zap.NewNop(),
		stores: make(map[omics.Modality]omics.Store),
		data:   make(map[string]*table.Table),
	}
	for _, opt := range opts {
		opt(r)
	}

	if err := r.loadLeaves(); err != nil {
		return nil, err
	}
	r.enrich()

	samples := r.clinical.BuildClinicalSamples(r.allSampleBarcodes())

	r.data[KeyPatients] = r.clinical.Patients()
	r.data[KeyDrugs] = r.clinical.Drugs()
	r.data[KeySamples] = samples
	for _, m := range r.order {
		r.data[string(m)] = r.stores[m].Data()
	}

	r.LogSampleSizes()
	return r, nil
}

// loadLeaves loads the clinical store and every requested modality store
// concurrently and barriers before returning. The first error wins.
func (r *Registry) loadLeaves() error {
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	fail := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		mu.Unlock()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		clin, err := clinical.New(r.cfg.Cohort, filepath.Join(r.cfg.DataPath, "clinical"))
		if err != nil {
			fail(fmt.Errorf("clinical: %w", err))
			return
		}
		mu.Lock()
		r.clinical = clin
		mu.Unlock()
	}()

	loaded := make(map[omics.Modality]bool)
	for _, m := range r.cfg.Modalities {
		if m == omics.WSI {
			// Whole-slide images carry no sample-indexed table.
			r.logger.Debug("modality has no tabular data, skipped", zap.String("modality", string(m)))
			continue
		}
		if loaded[m] {
			continue
		}
		loaded[m] = true
		r.order = append(r.order, m)

		wg.Add(1)
		go func(m omics.Modality) {
			defer wg.Done()
			store, err := newStore(m, r.cfg.Cohort, r.cfg.DataPath)
			if err != nil {
				fail(fmt.Errorf("modality %s: %w", m, err))
				return
			}
			mu.Lock()
			r.stores[m] = store
			mu.Unlock()
		}(m)
	}

	wg.Wait()
	return firstErr
}

// newStore constructs the store for one modality from its fixed
// subdirectory under the cohort data path.
func newStore(m omics.Modality, cohort, dataPath string) (omics.Store, error) {
	dir := filepath.Join(dataPath, modalityDirs[m])
	switch m {
	case omics.GE:
		return omics.NewGeneExpression(cohort, dir)
	case omics.SNP:
		return omics.NewSomaticMutation(cohort, dir)
	case omics.CNV:
		return omics.NewCopyNumberVariation(cohort, dir)
	case omics.DNA:
		return omics.NewDNAMethylation(cohort, dir)
	case omics.MIR:
		return omics.NewMiRNAExpression(cohort, dir)
	case omics.LNC:
		return omics.NewLncRNAExpression(cohort, dir)
	case omics.PRO:
		return omics.NewProteinExpression(cohort, dir)
	}
	return nil, fmt.Errorf("%w: %q", omics.ErrUnknownModality, m)
}

// enrich runs every applicable enrichment join sequentially. Failures are
// logged and skipped; the base tables stay valid. MIR target enrichment
// consumes GE's feature list, which is why this runs after the load barrier.
func (r *Registry) enrich() {
	ext := r.cfg.ExternalPath
	if ext == "" {
		return
	}

	if ge, ok := r.stores[omics.GE].(*omics.GeneExpression); ok {
		path := filepath.Join(ext, targetScanDir, targetscan.GeneInfoFile)
		r.tryEnrich("gene info", path, func() error { return ge.EnrichGeneInfo(path) })

		path = filepath.Join(ext, regNetworkDir, regnet.SourceFile)
		r.tryEnrich("regulatory network", path, func() error { return ge.EnrichRegulatoryNetwork(path) })

		path = filepath.Join(ext, hugoNamesDir, hgnc.ProteinCodingFile)
		r.tryEnrich("gene names", path, func() error { return ge.EnrichHGNC(path) })
	}

	if mir, ok := r.stores[omics.MIR].(*omics.MiRNAExpression); ok {
		var geneSymbols []string
		if ge, ok := r.stores[omics.GE].(*omics.GeneExpression); ok {
			geneSymbols = ge.Features()
		}
		dir := filepath.Join(ext, targetScanDir)
		r.tryEnrich("miRNA targets", dir, func() error { return mir.EnrichTargetScan(dir, geneSymbols) })

		path := filepath.Join(ext, hugoNamesDir, hgnc.MicroRNAFile)
		r.tryEnrich("miRNA names", path, func() error { return mir.EnrichHGNC(path) })
	}

	if lnc, ok := r.stores[omics.LNC].(*omics.LncRNAExpression); ok {
		path := filepath.Join(ext, hugoNamesDir, hgnc.LncRNAFile)
		r.tryEnrich("lncRNA names", path, func() error { return lnc.EnrichHGNCNames(path) })

		dir := filepath.Join(ext, starBaseDir)
		r.tryEnrich("miRNA-lncRNA interactions", dir, func() error { return lnc.EnrichStarBase(dir) })
	}

	if pro, ok := r.stores[omics.PRO].(*omics.ProteinExpression); ok {
		path := filepath.Join(ext, hprdDir, hprd.InteractionsFile)
		r.tryEnrich("protein interactions", path, func() error { return pro.EnrichPPI(path) })
	}
}

// tryEnrich runs one best-effort enrichment, logging and continuing on
// failure.
func (r *Registry) tryEnrich(name, path string, fn func() error) {
	if err := fn(); err != nil {
		r.logger.Warn("enrichment skipped",
			zap.String("enrichment", name),
			zap.String("path", path),
			zap.Error(err))
	}
}

// allSampleBarcodes returns the union of sample barcodes across the loaded
// modalities, in modality order, first occurrence wins.
func (r *Registry) allSampleBarcodes() []string {
	var union []string
	seen := make(map[string]struct{})
	for _, m := range r.order {
		for _, id := range r.stores[m].Data().Index() {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			union = append(union, id)
		}
	}
	return union
}

// Cohort returns the cohort the registry was built for.
func (r *Registry) Cohort() string {
	return r.cfg.Cohort
}

// Modalities returns the loaded modalities in load order.
func (r *Registry) Modalities() []omics.Modality {
	out := make([]omics.Modality, len(r.order))
	copy(out, r.order)
	return out
}

// Store returns the store behind a modality tag.
func (r *Registry) Store(m omics.Modality) (omics.Store, bool) {
	s, ok := r.stores[m]
	return s, ok
}

// Clinical returns the clinical store.
func (r *Registry) Clinical() *clinical.Store {
	return r.clinical
}

// Table returns one of the registry's tables by key: a modality tag or one
// of PATIENTS, DRUGS, SAMPLES.
func (r *Registry) Table(key string) (*table.Table, bool) {
	t, ok := r.data[key]
	return t, ok
}
