package targetscan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadGeneInfo(t *testing.T) {
	path := writeFile(t, GeneInfoFile,
		"Transcript ID\tGene ID\tGene symbol\tGene description\tSpecies ID\n"+
			"ENST00000311936\tENSG00000133703\tKRAS\tKRAS proto-oncogene\t9606\n"+
			"ENST00000269305\tENSG00000141510\tTP53\ttumor protein p53\t9606\n")

	info, err := LoadGeneInfo(path)
	require.NoError(t, err)
	require.Len(t, info, 2)
	assert.Equal(t, "KRAS proto-oncogene", info["KRAS"].Description)
	assert.Equal(t, "ENST00000269305", info["TP53"].TranscriptID)
}

func TestLoadGeneInfoMissingColumn(t *testing.T) {
	path := writeFile(t, GeneInfoFile, "Transcript ID\tGene ID\nENST1\tENSG1\n")
	_, err := LoadGeneInfo(path)
	assert.Error(t, err)
}

func TestLoadGeneInfoMissingFile(t *testing.T) {
	_, err := LoadGeneInfo(filepath.Join(t.TempDir(), GeneInfoFile))
	assert.Error(t, err)
}

func TestLoadMirFamilyInfo(t *testing.T) {
	path := writeFile(t, MirFamilyInfoFile,
		"miR family\tSeed+m8\tSpecies ID\tMiRBase ID\tMature sequence\n"+
			"miR-21-5p\tAGCUUAU\t9606\thsa-miR-21-5p\tUAGCUUAUCAGACUGAUGUUGA\n")

	families, err := LoadMirFamilyInfo(path)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"hsa-miR-21-5p": "miR-21-5p"}, families)
}

func TestLoadPredictedTargets(t *testing.T) {
	path := writeFile(t, PredictedTargetsFile,
		"miR Family\tGene ID\tGene Symbol\tTranscript ID\tSpecies ID\n"+
			"miR-21-5p\tENSG00000171862\tPTEN\tENST00000371953\t9606\n"+
			"miR-21-5p\tENSG00000150593\tPDCD4\tENST00000280154\t9606\n")

	pairs, err := LoadPredictedTargets(path)
	require.NoError(t, err)
	assert.Equal(t, []TargetPair{
		{MirFamily: "miR-21-5p", GeneSymbol: "PTEN"},
		{MirFamily: "miR-21-5p", GeneSymbol: "PDCD4"},
	}, pairs)
}
