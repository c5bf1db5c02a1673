package registry

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openomix/multiomics/internal/clinical"
	"github.com/openomix/multiomics/internal/omics"
)

// writeExternal lays out the external reference tree every enrichment
// consumes: TargetScan, RegNetwork, HUGO names, StarBase and HPRD.
func writeExternal(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	writeFile(t, filepath.Join(root, "TargetScan"), "Gene_info.txt",
		"Transcript ID\tGene ID\tGene symbol\tGene description\tSpecies ID\n"+
			"ENST00000311936\tENSG00000133703\tKRAS\tKRAS proto-oncogene\t9606\n")
	writeFile(t, filepath.Join(root, "TargetScan"), "miR_Family_Info.txt",
		"miR family\tSeed+m8\tSpecies ID\tMiRBase ID\n"+
			"miR-21-5p\tAGCUUAU\t9606\thsa-miR-21-5p\n")
	writeFile(t, filepath.Join(root, "TargetScan"), "Predicted_Targets_Info.default_predictions.txt",
		"miR Family\tGene ID\tGene Symbol\n"+
			"miR-21-5p\tENSG00000133703\tKRAS\n")
	writeFile(t, filepath.Join(root, "RegNetwork"), "human.source",
		"TP53\t7157\tKRAS\t3845\n")
	writeFile(t, filepath.Join(root, "HUGO_Gene_names"), "RNA_long_non-coding.txt",
		"hgnc_id\tsymbol\tname\tensembl_gene_id\n"+
			"HGNC:33963\tHOTAIR\tHOX transcript antisense RNA\tENSG00000228630\n")
	writeFile(t, filepath.Join(root, "HUGO_Gene_names"), "gene_with_protein_product.txt",
		"hgnc_id\tsymbol\tname\tensembl_gene_id\n"+
			"HGNC:6407\tKRAS\tKRAS proto-oncogene, GTPase\tENSG00000133703\n")
	writeFile(t, filepath.Join(root, "HUGO_Gene_names"), "RNA_micro.txt",
		"hgnc_id\tsymbol\tname\tensembl_gene_id\n"+
			"HGNC:31586\tMIR21\tmicroRNA 21\tENSG00000284190\n")
	writeFile(t, filepath.Join(root, "StarBase v2.0"),
		"starBase_Human_Pan-Cancer_MiRNA-LncRNA_Interactions.txt",
		"name\tgeneName\nhsa-miR-21-5p\tHOTAIR\n")
	writeFile(t, filepath.Join(root, "HPRD_PPI"), "BINARY_PROTEIN_PROTEIN_INTERACTIONS.txt",
		"EGFR\t00594\tNP_005219\tGRB2\t00618\tNP_002077\tin vivo\t1322798\n")

	return root
}

func TestNewRunsEnrichments(t *testing.T) {
	root := writeCohort(t)
	writeFile(t, filepath.Join(root, "lncrna"), omics.LncRNAFile,
		"Gene_ID\tTCGA-02-0001-01\nENSG00000228630.5\t1.1\n")
	writeFile(t, filepath.Join(root, "protein_rppa"), omics.ProteinRPPAFile,
		"Protein\tTCGA-02-0001-01\nEGFR\t0.8\n")

	r, err := New(Config{
		Cohort:       "LUAD",
		DataPath:     root,
		ExternalPath: writeExternal(t),
		Modalities:   []omics.Modality{omics.GE, omics.MIR, omics.LNC, omics.PRO},
	})
	require.NoError(t, err)

	ge, _ := r.Store(omics.GE)
	gi, ok := ge.(*omics.GeneExpression).GeneInfo("KRAS")
	require.True(t, ok)
	assert.Equal(t, "KRAS proto-oncogene", gi.Description)

	name, ok := ge.(*omics.GeneExpression).ApprovedName("KRAS")
	require.True(t, ok)
	assert.Equal(t, "KRAS proto-oncogene, GTPase", name, "gene names from HGNC")

	mir, _ := r.Store(omics.MIR)
	name, ok = mir.(*omics.MiRNAExpression).ApprovedName("MIR21")
	require.True(t, ok)
	assert.Equal(t, "microRNA 21", name, "miRNA names from HGNC")

	lnc, _ := r.Store(omics.LNC)
	assert.Contains(t, lnc.Features(), "HOTAIR", "lncRNA features re-keyed to HGNC symbols")

	net := r.InteractionNetwork(nil)
	assert.True(t, net.HasEdge("TP53", "KRAS"), "regulatory edge from RegNetwork")
	assert.True(t, net.HasEdge("hsa-miR-21-5p", "KRAS"), "target edge from TargetScan")
	assert.True(t, net.HasEdge("hsa-miR-21-5p", "HOTAIR"), "edge from StarBase")
	assert.True(t, net.HasEdge("EGFR", "GRB2"), "edge from HPRD")
}

func TestInteractionNetworkSubset(t *testing.T) {
	root := writeCohort(t)
	r, err := New(Config{
		Cohort:       "LUAD",
		DataPath:     root,
		ExternalPath: writeExternal(t),
		Modalities:   []omics.Modality{omics.GE, omics.MIR},
	})
	require.NoError(t, err)

	net := r.InteractionNetwork([]omics.Modality{omics.MIR})
	assert.True(t, net.HasEdge("hsa-miR-21-5p", "KRAS"))
	assert.False(t, net.HasEdge("TP53", "KRAS"), "GE edges excluded when not requested")
}

// writeStagedCohort lays out ten GE samples across seven patients: four
// samples belong to Stage I patients, and one of those four is missing a
// second clinical field, so a complete-case query over both fields keeps
// exactly three rows.
func writeStagedCohort(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	patients := "bcr_patient_barcode\tajcc_pathologic_tumor_stage\thistological_type\n" +
		"bcr_patient_barcode\tajcc_pathologic_tumor_stage\thistological_type\n" +
		"CDE_ID:1\tCDE_ID:2\tCDE_ID:3\n" +
		"TCGA-05-0001\tStage I\tAdenocarcinoma\n" +
		"TCGA-05-0002\tStage I\t[Not Available]\n" +
		"TCGA-05-0003\tStage II\tAdenocarcinoma\n" +
		"TCGA-05-0004\tStage II\tSquamous Cell\n" +
		"TCGA-05-0005\tStage III\tAdenocarcinoma\n" +
		"TCGA-05-0006\tStage IV\tSquamous Cell\n" +
		"TCGA-05-0007\tStage I\tSquamous Cell\n"
	writeFile(t, filepath.Join(root, "clinical"), clinical.PatientFile, patients)
	writeFile(t, filepath.Join(root, "clinical"), clinical.DrugFile,
		"bcr_patient_barcode\tpharmaceutical_therapy_drug_name\n"+
			"bcr_patient_barcode\tpharmaceutical_therapy_drug_name\n"+
			"CDE_ID:1\tCDE_ID:5\n"+
			"TCGA-05-0001\tCisplatin\n")

	// Ten samples, four of them from Stage I patients (0001, 0002, 0007).
	samples := []string{
		"TCGA-05-0001-01", "TCGA-05-0001-02",
		"TCGA-05-0002-01", "TCGA-05-0007-01",
		"TCGA-05-0003-01", "TCGA-05-0003-02",
		"TCGA-05-0004-01", "TCGA-05-0005-01",
		"TCGA-05-0005-02", "TCGA-05-0006-01",
	}
	header := "GeneSymbol"
	values := "KRAS"
	for i, s := range samples {
		header += "\t" + s
		values += fmt.Sprintf("\t%d.0", i)
	}
	writeFile(t, filepath.Join(root, "gene_exp"), omics.GeneExpFile, header+"\n"+values+"\n")

	return root
}

func TestLoadDataStageFilterWithCompleteCaseTargets(t *testing.T) {
	r, err := New(Config{
		Cohort:     "LUAD",
		DataPath:   writeStagedCohort(t),
		Modalities: []omics.Modality{omics.GE},
	})
	require.NoError(t, err)

	single, errSingle := r.MatchSamples([]omics.Modality{omics.GE})
	require.NoError(t, errSingle)
	assert.Len(t, single, 10)

	data, target, err := r.LoadData(Query{
		Modalities:       []omics.Modality{omics.GE},
		TargetFields:     []string{clinical.FieldPathologicStage, clinical.FieldHistologicSubtype},
		PathologicStages: []string{"Stage I"},
	})
	require.NoError(t, err)

	// Four samples pass the stage filter; TCGA-05-0002-01 is missing the
	// histologic subtype, leaving exactly three complete rows.
	assert.Equal(t,
		[]string{"TCGA-05-0001-01", "TCGA-05-0001-02", "TCGA-05-0007-01"},
		target.Index())
	assert.Equal(t, target.Index(), data[omics.GE].Index())
}
