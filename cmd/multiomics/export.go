package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/openomix/multiomics/internal/duckdb"
	"github.com/openomix/multiomics/internal/omics"
	"github.com/openomix/multiomics/internal/output"
	"github.com/openomix/multiomics/internal/registry"
	"github.com/openomix/multiomics/internal/table"
)

func newExportCmd() *cobra.Command {
	var (
		targetFields string
		stages       string
		histSubtypes string
		predSubtypes string
		tumorNormal  string
		sampleIDs    string
		outDir       string
		duckdbPath   string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Assemble an aligned dataset and export it",
		Long: "Runs the alignment query over the selected modalities and writes the " +
			"per-modality matrices plus the clinical target table, either as TSV files " +
			"or into a DuckDB database.",
		Example: `  multiomics export -o out/
  multiomics export --stages "Stage I,Stage II" -o out/
  multiomics export --duckdb dataset.duckdb`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if outDir == "" && duckdbPath == "" {
				return fmt.Errorf("need --out or --duckdb")
			}

			r, logger, err := buildRegistry()
			if err != nil {
				return err
			}
			defer logger.Sync()

			q := registry.Query{
				TargetFields:         splitList(targetFields),
				PathologicStages:     splitList(stages),
				HistologicalSubtypes: splitList(histSubtypes),
				PredictedSubtypes:    splitList(predSubtypes),
				TumorNormal:          splitList(tumorNormal),
				SampleIDs:            splitList(sampleIDs),
			}
			data, target, err := r.LoadData(q)
			if err != nil {
				return err
			}
			logger.Info("dataset assembled",
				zap.Int("samples", target.Len()),
				zap.Int("modalities", len(data)))

			if outDir != "" {
				if err := exportTSV(outDir, data, target); err != nil {
					return err
				}
			}
			if duckdbPath != "" {
				if err := exportDuckDB(duckdbPath, r.Cohort(), data, target); err != nil {
					return err
				}
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&targetFields, "target", "", "comma-separated clinical target fields (default: pathologic_stage)")
	flags.StringVar(&stages, "stages", "", "keep only samples with these pathologic stages")
	flags.StringVar(&histSubtypes, "histological-subtypes", "", "keep only these histological subtypes")
	flags.StringVar(&predSubtypes, "predicted-subtypes", "", "keep only these predicted subtypes")
	flags.StringVar(&tumorNormal, "tumor-normal", "", "keep only Tumor or Normal samples")
	flags.StringVar(&sampleIDs, "samples", "", "explicit sample barcodes, bypassing intersection")
	flags.StringVarP(&outDir, "out", "o", "", "output directory for TSV files")
	flags.StringVar(&duckdbPath, "duckdb", "", "DuckDB database file to export into")

	return cmd
}

// splitList parses a comma-separated flag value; empty means unrestricted.
func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func exportTSV(dir string, data map[omics.Modality]*table.Table, target *table.Table) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	for m, t := range data {
		if err := writeTSV(filepath.Join(dir, string(m)+".tsv"), t); err != nil {
			return err
		}
	}
	return writeTSV(filepath.Join(dir, "target.tsv"), target)
}

func writeTSV(path string, t *table.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	if err := output.WriteTable(f, t); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func exportDuckDB(path, cohort string, data map[omics.Modality]*table.Table, target *table.Table) error {
	store, err := duckdb.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()
	return store.WriteDataset(cohort, data, target)
}
