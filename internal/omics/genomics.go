package omics

// Matrix file names under their modality directories.
const (
	SomaticFile     = "somaticMutation_geneLevel.txt"
	MethylationFile = "methylation_450.txt"
	CopyNumberFile  = "copyNumber.txt"
)

// SomaticMutation holds the gene-level somatic mutation matrix.
type SomaticMutation struct {
	expressionStore
}

// NewSomaticMutation loads somaticMutation_geneLevel.txt.
func NewSomaticMutation(cohort, dir string) (*SomaticMutation, error) {
	base, err := loadMatrix(SNP, cohort, dir, SomaticFile)
	if err != nil {
		return nil, err
	}
	return &SomaticMutation{expressionStore: base}, nil
}

// DNAMethylation holds the methylation probe matrix.
type DNAMethylation struct {
	expressionStore
}

// NewDNAMethylation loads methylation_450.txt.
func NewDNAMethylation(cohort, dir string) (*DNAMethylation, error) {
	base, err := loadMatrix(DNA, cohort, dir, MethylationFile)
	if err != nil {
		return nil, err
	}
	return &DNAMethylation{expressionStore: base}, nil
}

// CopyNumberVariation holds the gene-level copy-number matrix.
type CopyNumberVariation struct {
	expressionStore
}

// NewCopyNumberVariation loads copyNumber.txt.
func NewCopyNumberVariation(cohort, dir string) (*CopyNumberVariation, error) {
	base, err := loadMatrix(CNV, cohort, dir, CopyNumberFile)
	if err != nil {
		return nil, err
	}
	return &CopyNumberVariation{expressionStore: base}, nil
}
