// Package clinical loads TCGA patient and drug records and derives the
// per-sample clinical table that queries filter on.
package clinical

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/openomix/multiomics/internal/table"
)

// Biotab file names under a clinical/ directory.
const (
	PatientFile = "nationwidechildrens.org_clinical_patient.txt"
	DrugFile    = "nationwidechildrens.org_clinical_drug.txt"
)

// Canonical clinical field names.
const (
	FieldPatientBarcode    = "bcr_patient_barcode"
	FieldPathologicStage   = "pathologic_stage"
	FieldHistologicSubtype = "histologic_subtype"
	FieldPredictedSubtype  = "predicted_subtype"
	FieldTumorNormal       = "tumor_normal"
)

// columnRenames maps raw TCGA Biotab headers to the canonical field names.
var columnRenames = map[string]string{
	"ajcc_pathologic_tumor_stage": FieldPathologicStage,
	"histological_type":           FieldHistologicSubtype,
	"histologic_diagnosis":        FieldHistologicSubtype,
}

// Store owns the patient and drug tables and, once built, the derived
// per-sample table.
type Store struct {
	cohort   string
	patients *table.Table
	drugs    *table.Table
	samples  *table.Table
}

// New loads the patient and drug Biotab files from a clinical directory.
// Both loads are fatal on failure. Biotab files carry two annotation rows
// between the header and the data, which are skipped.
func New(cohort, dir string) (*Store, error) {
	opts := table.Options{IndexColumn: FieldPatientBarcode, SkipRows: 2}

	patients, err := table.ReadTable(filepath.Join(dir, PatientFile), opts)
	if err != nil {
		return nil, fmt.Errorf("load patient table: %w", err)
	}
	patients.RenameColumns(columnRenames)

	drugs, err := table.ReadTable(filepath.Join(dir, DrugFile), opts)
	if err != nil {
		return nil, fmt.Errorf("load drug table: %w", err)
	}

	return &Store{cohort: cohort, patients: patients, drugs: drugs}, nil
}

// Patients returns the patient-level table, keyed by patient barcode.
func (s *Store) Patients() *table.Table {
	return s.patients
}

// Drugs returns the drug-level table, keyed by patient barcode.
func (s *Store) Drugs() *table.Table {
	return s.drugs
}

// Samples returns the derived per-sample table, or nil before
// BuildClinicalSamples has run.
func (s *Store) Samples() *table.Table {
	return s.samples
}

// PatientBarcode resolves the owning patient of a sample barcode. A TCGA
// sample barcode extends its patient barcode with a sample-type field:
// TCGA-02-0001-01 belongs to TCGA-02-0001.
func PatientBarcode(sampleBarcode string) (string, bool) {
	parts := strings.Split(sampleBarcode, "-")
	if len(parts) < 4 {
		return "", false
	}
	return strings.Join(parts[:3], "-"), true
}

// TumorNormal derives the tumor/normal status from the sample-type code of
// a sample barcode: 01–09 are tumors, 10–19 are normals. Anything else
// yields a missing value.
func TumorNormal(sampleBarcode string) string {
	parts := strings.Split(sampleBarcode, "-")
	if len(parts) < 4 || len(parts[3]) < 2 {
		return ""
	}
	code, err := strconv.Atoi(parts[3][:2])
	if err != nil {
		return ""
	}
	switch {
	case code >= 1 && code < 10:
		return "Tumor"
	case code >= 10 && code < 20:
		return "Normal"
	}
	return ""
}

// BuildClinicalSamples derives one clinical record per sample barcode by
// broadcasting the owning patient's fields onto the sample, plus the
// barcode-derived tumor_normal field. Samples whose patient cannot be
// resolved get a row of all-missing patient fields rather than being
// dropped. The result is kept on the store and returned.
func (s *Store) BuildClinicalSamples(sampleIDs []string) *table.Table {
	samples := table.New("bcr_sample_barcode")
	cols := s.patients.Columns()

	for _, id := range sampleIDs {
		row := make(table.Row, len(cols)+1)
		for _, c := range cols {
			row[c] = ""
		}
		if pid, ok := PatientBarcode(id); ok {
			if prow, found := s.patients.Row(pid); found {
				for _, c := range cols {
					row[c] = prow[c]
				}
			}
		}
		row[FieldTumorNormal] = TumorNormal(id)
		samples.Set(id, row)
	}

	s.samples = samples
	return samples
}

// AttachPredictedSubtypes adds (or replaces) the predicted_subtype column on
// the patient table, keyed by patient barcode, and mirrors it onto the
// derived sample table so subtype filters can see it. Patients absent from
// the mapping get a missing value. Never removes rows or columns.
func (s *Store) AttachPredictedSubtypes(mapping map[string]string) {
	s.patients.AddColumn(FieldPredictedSubtype, mapping)

	if s.samples == nil {
		return
	}
	perSample := make(map[string]string)
	for _, id := range s.samples.Index() {
		if pid, ok := PatientBarcode(id); ok {
			if v, found := mapping[pid]; found {
				perSample[id] = v
			}
		}
	}
	s.samples.AddColumn(FieldPredictedSubtype, perSample)
}
