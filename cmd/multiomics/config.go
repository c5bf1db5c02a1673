package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/openomix/multiomics/internal/omics"
)

// settingDef validates one configuration value before it is stored, so a
// bad modality tag or verbose flag is rejected at `config set` time instead
// of surfacing when the registry loads.
type settingDef struct {
	usage    string
	validate func(string) (any, error)
}

// settings is the closed set of keys the loader reads. Every other key is
// rejected by get and set.
var settings = map[string]settingDef{
	"data_path":     {"cohort data directory", asString},
	"external_path": {"external reference database directory", asString},
	"cohort":        {"TCGA cohort name, e.g. LUAD", asString},
	"modalities":    {"comma-separated modality tags", asModalities},
	"verbose":       {"verbose logging", asBool},
}

func asString(v string) (any, error) {
	return strings.TrimSpace(v), nil
}

// asModalities validates the tag list and canonicalizes it to the upper-case
// form the loader uses.
func asModalities(v string) (any, error) {
	mods, err := omics.ParseList(v)
	if err != nil {
		return nil, err
	}
	tags := make([]string, len(mods))
	for i, m := range mods {
		tags[i] = string(m)
	}
	return strings.Join(tags, ","), nil
}

func asBool(v string) (any, error) {
	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil, fmt.Errorf("want true or false, got %q", v)
	}
	return b, nil
}

func settingKeys() []string {
	keys := make([]string, 0, len(settings))
	for k := range settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func settingsHelp() string {
	var b strings.Builder
	for _, k := range settingKeys() {
		fmt.Fprintf(&b, "  %-14s %s\n", k, settings[k].usage)
	}
	return b.String()
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage multiomics configuration",
		Long: "Show, get, or set the settings the loader reads. " +
			"Stored in ~/.multiomics.yaml.\n\n" + settingsHelp(),
		Example: `  multiomics config                            # show effective settings
  multiomics config set data_path ~/tcga/LUAD
  multiomics config set modalities ge,mir      # validated and canonicalized
  multiomics config get cohort`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigShow(cmd)
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Validate and persist a configuration value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigSet(cmd, args[0], args[1])
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "get <key>",
		Short: "Print one configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigGet(cmd, args[0])
		},
	})

	return cmd
}

// runConfigShow renders the configuration the registry would be built with,
// after flag, environment and file resolution.
func runConfigShow(cmd *cobra.Command) error {
	mods, err := omics.ParseList(viper.GetString("modalities"))
	if err != nil {
		return fmt.Errorf("stored modalities are invalid: %w", err)
	}
	if len(mods) == 0 {
		mods = omics.All()
	}

	effective := map[string]any{
		"cohort":        viper.GetString("cohort"),
		"data_path":     viper.GetString("data_path"),
		"external_path": viper.GetString("external_path"),
		"modalities":    mods,
		"verbose":       viper.GetBool("verbose"),
	}
	out, err := yaml.Marshal(effective)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	fmt.Fprint(cmd.OutOrStdout(), string(out))
	return nil
}

func runConfigSet(cmd *cobra.Command, key, value string) error {
	def, ok := settings[key]
	if !ok {
		return fmt.Errorf("unknown key %q (known: %s)", key, strings.Join(settingKeys(), ", "))
	}
	v, err := def.validate(value)
	if err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	viper.Set(key, v)

	cfgFile := viper.ConfigFileUsed()
	if cfgFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home directory: %w", err)
		}
		cfgFile = filepath.Join(home, ".multiomics.yaml")
	}
	if err := viper.WriteConfigAs(cfgFile); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s = %v (%s)\n", key, v, cfgFile)
	return nil
}

func runConfigGet(cmd *cobra.Command, key string) error {
	if _, ok := settings[key]; !ok {
		return fmt.Errorf("unknown key %q (known: %s)", key, strings.Join(settingKeys(), ", "))
	}
	val := viper.Get(key)
	if val == nil || val == "" {
		return fmt.Errorf("key %q is not set", key)
	}
	fmt.Fprintln(cmd.OutOrStdout(), val)
	return nil
}
