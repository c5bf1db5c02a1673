package omics

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/openomix/multiomics/internal/datasource/hgnc"
	"github.com/openomix/multiomics/internal/datasource/regnet"
	"github.com/openomix/multiomics/internal/datasource/starbase"
	"github.com/openomix/multiomics/internal/datasource/targetscan"
	"github.com/openomix/multiomics/internal/interaction"
)

// Matrix file names under their modality directories.
const (
	GeneExpFile  = "geneExp.txt"
	MiRNAExpFile = "miRNAExp__RPM.txt"
	LncRNAFile   = "TCGA-rnaexpr.tsv"
)

// GeneExpression holds the gene-expression matrix plus optional TargetScan
// gene metadata, HGNC approved names and a RegNetwork regulatory network.
type GeneExpression struct {
	expressionStore
	geneInfo   map[string]targetscan.GeneInfo
	hgncNames  map[string]hgnc.GeneName
	regulatory *interaction.Network
}

// NewGeneExpression loads geneExp.txt from the given modality directory.
func NewGeneExpression(cohort, dir string) (*GeneExpression, error) {
	base, err := loadMatrix(GE, cohort, dir, GeneExpFile)
	if err != nil {
		return nil, err
	}
	return &GeneExpression{expressionStore: base}, nil
}

// EnrichGeneInfo joins gene symbols against a TargetScan Gene_info table.
// On failure the store keeps whatever metadata it had.
func (g *GeneExpression) EnrichGeneInfo(path string) error {
	info, err := targetscan.LoadGeneInfo(path)
	if err != nil {
		return fmt.Errorf("gene info enrichment: %w", err)
	}
	g.geneInfo = info
	return nil
}

// EnrichRegulatoryNetwork builds a regulator → target network from a
// RegNetwork source file.
func (g *GeneExpression) EnrichRegulatoryNetwork(path string) error {
	edges, err := regnet.LoadNetwork(path)
	if err != nil {
		return fmt.Errorf("regulatory network enrichment: %w", err)
	}
	net := interaction.NewNetwork()
	for _, e := range edges {
		net.AddEdge(e.Regulator, e.Target, interaction.KindRegulates)
	}
	g.regulatory = net
	return nil
}

// EnrichHGNC loads approved gene names from an HGNC protein-coding table.
func (g *GeneExpression) EnrichHGNC(path string) error {
	names, err := hgnc.Load(path)
	if err != nil {
		return fmt.Errorf("HGNC name enrichment: %w", err)
	}
	g.hgncNames = names
	return nil
}

// GeneInfo returns the TargetScan annotation for a gene symbol, when the
// gene-info enrichment has run.
func (g *GeneExpression) GeneInfo(symbol string) (targetscan.GeneInfo, bool) {
	gi, ok := g.geneInfo[symbol]
	return gi, ok
}

// ApprovedName returns the HGNC approved name of a gene symbol, when the
// HGNC enrichment has run.
func (g *GeneExpression) ApprovedName(symbol string) (string, bool) {
	gn, ok := g.hgncNames[symbol]
	if !ok || gn.Name == "" {
		return "", false
	}
	return gn.Name, true
}

// Network returns the regulatory network, or nil before enrichment.
func (g *GeneExpression) Network() *interaction.Network {
	return g.regulatory
}

// MiRNAExpression holds the miRNA expression matrix plus optional TargetScan
// family assignments, HGNC approved names and a miRNA → gene target network.
type MiRNAExpression struct {
	expressionStore
	families  map[string]string
	hgncNames map[string]hgnc.GeneName
	targets   *interaction.Network
}

// NewMiRNAExpression loads miRNAExp__RPM.txt from the given directory.
func NewMiRNAExpression(cohort, dir string) (*MiRNAExpression, error) {
	base, err := loadMatrix(MIR, cohort, dir, MiRNAExpFile)
	if err != nil {
		return nil, err
	}
	return &MiRNAExpression{expressionStore: base}, nil
}

// EnrichTargetScan loads miRNA family assignments and predicted targets from
// a TargetScan directory, keeping only edges from this store's miRNAs to the
// given gene symbols.
func (m *MiRNAExpression) EnrichTargetScan(dir string, geneSymbols []string) error {
	families, err := targetscan.LoadMirFamilyInfo(filepath.Join(dir, targetscan.MirFamilyInfoFile))
	if err != nil {
		return fmt.Errorf("targetscan enrichment: %w", err)
	}
	pairs, err := targetscan.LoadPredictedTargets(filepath.Join(dir, targetscan.PredictedTargetsFile))
	if err != nil {
		return fmt.Errorf("targetscan enrichment: %w", err)
	}

	// Group this store's miRNAs by family. MiRBase IDs and matrix feature
	// names differ in case, so match case-insensitively.
	mirsByFamily := make(map[string][]string)
	for _, mir := range m.Features() {
		key := strings.ToLower(mir)
		for id, family := range families {
			if strings.ToLower(id) == key {
				mirsByFamily[family] = append(mirsByFamily[family], mir)
			}
		}
	}

	geneSet := make(map[string]struct{}, len(geneSymbols))
	for _, g := range geneSymbols {
		geneSet[g] = struct{}{}
	}

	net := interaction.NewNetwork()
	for _, p := range pairs {
		if _, ok := geneSet[p.GeneSymbol]; !ok {
			continue
		}
		for _, mir := range mirsByFamily[p.MirFamily] {
			net.AddEdge(mir, p.GeneSymbol, interaction.KindTargets)
		}
	}

	m.families = families
	m.targets = net
	return nil
}

// EnrichHGNC loads approved miRNA gene names from an HGNC RNA_micro table.
func (m *MiRNAExpression) EnrichHGNC(path string) error {
	names, err := hgnc.Load(path)
	if err != nil {
		return fmt.Errorf("HGNC name enrichment: %w", err)
	}
	m.hgncNames = names
	return nil
}

// Family returns the TargetScan family of one of this store's miRNAs.
func (m *MiRNAExpression) Family(mir string) (string, bool) {
	f, ok := m.families[mir]
	return f, ok
}

// ApprovedName returns the HGNC approved name of a miRNA gene symbol, when
// the HGNC enrichment has run.
func (m *MiRNAExpression) ApprovedName(symbol string) (string, bool) {
	gn, ok := m.hgncNames[symbol]
	if !ok || gn.Name == "" {
		return "", false
	}
	return gn.Name, true
}

// Network returns the miRNA → gene target network, or nil before enrichment.
func (m *MiRNAExpression) Network() *interaction.Network {
	return m.targets
}

// LncRNAExpression holds the lncRNA expression matrix plus an optional
// miRNA → lncRNA interaction network from StarBase.
type LncRNAExpression struct {
	expressionStore
	interactions *interaction.Network
}

// NewLncRNAExpression loads TCGA-rnaexpr.tsv from the given directory.
func NewLncRNAExpression(cohort, dir string) (*LncRNAExpression, error) {
	base, err := loadMatrix(LNC, cohort, dir, LncRNAFile)
	if err != nil {
		return nil, err
	}
	return &LncRNAExpression{expressionStore: base}, nil
}

// EnrichHGNCNames re-keys Ensembl gene-id features to HGNC approved symbols
// using an HGNC lncRNA name table. Features without a mapping keep their id.
func (l *LncRNAExpression) EnrichHGNCNames(path string) error {
	names, err := hgnc.Load(path)
	if err != nil {
		return fmt.Errorf("HGNC name enrichment: %w", err)
	}
	byEnsembl := hgnc.SymbolsByEnsembl(names)

	mapping := make(map[string]string)
	for _, feature := range l.data.Columns() {
		id := stripEnsemblVersion(feature)
		if symbol, ok := byEnsembl[id]; ok {
			mapping[feature] = symbol
		}
	}
	l.data.RenameColumns(mapping)
	return nil
}

// EnrichStarBase builds a miRNA → lncRNA network from a StarBase directory.
func (l *LncRNAExpression) EnrichStarBase(dir string) error {
	interactions, err := starbase.LoadInteractions(filepath.Join(dir, starbase.InteractionsFile))
	if err != nil {
		return fmt.Errorf("starbase enrichment: %w", err)
	}
	net := interaction.NewNetwork()
	for _, it := range interactions {
		net.AddEdge(it.MirName, it.LncName, interaction.KindTargets)
	}
	l.interactions = net
	return nil
}

// Network returns the miRNA → lncRNA network, or nil before enrichment.
func (l *LncRNAExpression) Network() *interaction.Network {
	return l.interactions
}

// stripEnsemblVersion removes the trailing ".N" version from an Ensembl id.
func stripEnsemblVersion(id string) string {
	if !strings.HasPrefix(id, "ENSG") {
		return id
	}
	if i := strings.IndexByte(id, '.'); i >= 0 {
		return id[:i]
	}
	return id
}
