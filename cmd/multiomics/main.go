// Package main provides the multiomics command-line tool.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/openomix/multiomics/internal/omics"
	"github.com/openomix/multiomics/internal/registry"
)

// Version information (set at build time)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "multiomics",
		Short:   "Load, align and export multi-omics TCGA cohorts",
		Version: fmt.Sprintf("%s (%s) built %s", version, commit, date),
		Example: `  multiomics sizes --cohort LUAD --data ~/tcga/LUAD
  multiomics match --modalities GE,SNP --data ~/tcga/LUAD
  multiomics export --modalities GE,MIR --stages "Stage I" -o out/`,
		SilenceUsage: true,
	}

	flags := cmd.PersistentFlags()
	flags.String("data", "", "cohort data directory (clinical/ plus modality subdirectories)")
	flags.String("external", "", "external reference database directory (enables enrichment)")
	flags.String("cohort", "", "TCGA cohort name, e.g. LUAD")
	flags.String("modalities", "", "comma-separated modality tags (default: all)")
	flags.BoolP("verbose", "v", false, "verbose logging")

	viper.BindPFlag("data_path", flags.Lookup("data"))
	viper.BindPFlag("external_path", flags.Lookup("external"))
	viper.BindPFlag("cohort", flags.Lookup("cohort"))
	viper.BindPFlag("modalities", flags.Lookup("modalities"))
	viper.BindPFlag("verbose", flags.Lookup("verbose"))

	cobra.OnInitialize(initConfig)

	cmd.AddCommand(newSizesCmd())
	cmd.AddCommand(newMatchCmd())
	cmd.AddCommand(newExportCmd())
	cmd.AddCommand(newConfigCmd())

	return cmd
}

// initConfig reads ~/.multiomics.yaml and MULTIOMICS_* environment
// variables. A missing config file is fine.
func initConfig() {
	viper.SetConfigName(".multiomics")
	viper.SetConfigType("yaml")
	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(home)
	}
	viper.SetEnvPrefix("MULTIOMICS")
	viper.AutomaticEnv()
	_ = viper.ReadInConfig()
}

func buildLogger() (*zap.Logger, error) {
	if viper.GetBool("verbose") {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}

// buildRegistry constructs the registry from the resolved configuration.
func buildRegistry() (*registry.Registry, *zap.Logger, error) {
	logger, err := buildLogger()
	if err != nil {
		return nil, nil, fmt.Errorf("build logger: %w", err)
	}

	mods, err := omics.ParseList(viper.GetString("modalities"))
	if err != nil {
		return nil, nil, err
	}

	r, err := registry.New(registry.Config{
		Cohort:       viper.GetString("cohort"),
		DataPath:     viper.GetString("data_path"),
		ExternalPath: viper.GetString("external_path"),
		Modalities:   mods,
	}, registry.WithLogger(logger))
	if err != nil {
		return nil, nil, err
	}
	return r, logger, nil
}
