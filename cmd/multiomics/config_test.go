package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCmd() (*cobra.Command, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	cmd := &cobra.Command{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	return cmd, buf
}

func TestConfigSetRejectsUnknownKey(t *testing.T) {
	t.Cleanup(viper.Reset)
	cmd, _ := newTestCmd()

	err := runConfigSet(cmd, "datapath", "/tmp/x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown key")
	assert.Contains(t, err.Error(), "data_path", "error names the known keys")
}

func TestConfigSetValidatesModalities(t *testing.T) {
	t.Cleanup(viper.Reset)
	t.Setenv("HOME", t.TempDir())
	cmd, out := newTestCmd()

	err := runConfigSet(cmd, "modalities", "GE,bogus")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid value for modalities")

	require.NoError(t, runConfigSet(cmd, "modalities", "ge, mir"))
	assert.Equal(t, "GE,MIR", viper.GetString("modalities"), "tags are canonicalized")
	assert.Contains(t, out.String(), "GE,MIR")
}

func TestConfigSetRejectsBadBool(t *testing.T) {
	t.Cleanup(viper.Reset)
	cmd, _ := newTestCmd()

	err := runConfigSet(cmd, "verbose", "maybe")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "true or false")
}

func TestConfigSetWritesConfigFile(t *testing.T) {
	t.Cleanup(viper.Reset)
	home := t.TempDir()
	t.Setenv("HOME", home)
	cmd, _ := newTestCmd()

	require.NoError(t, runConfigSet(cmd, "cohort", "LUAD"))
	assert.FileExists(t, filepath.Join(home, ".multiomics.yaml"))
}

func TestConfigGetRejectsUnknownKey(t *testing.T) {
	t.Cleanup(viper.Reset)
	cmd, _ := newTestCmd()

	err := runConfigGet(cmd, "bogus")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown key")
}

func TestConfigGetUnsetKey(t *testing.T) {
	t.Cleanup(viper.Reset)
	cmd, _ := newTestCmd()

	err := runConfigGet(cmd, "cohort")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not set")
}

func TestConfigShowRendersEffectiveSettings(t *testing.T) {
	t.Cleanup(viper.Reset)
	viper.Set("cohort", "LUAD")
	viper.Set("modalities", "GE,MIR")
	cmd, out := newTestCmd()

	require.NoError(t, runConfigShow(cmd))
	got := out.String()
	assert.Contains(t, got, "cohort: LUAD")
	assert.Contains(t, got, "- GE")
	assert.Contains(t, got, "- MIR")
}

func TestConfigShowDefaultsToAllModalities(t *testing.T) {
	t.Cleanup(viper.Reset)
	cmd, out := newTestCmd()

	require.NoError(t, runConfigShow(cmd))
	for _, tag := range []string{"GE", "SNP", "CNV", "DNA", "MIR", "LNC", "PRO"} {
		assert.True(t, strings.Contains(out.String(), "- "+tag), "missing %s", tag)
	}
}
