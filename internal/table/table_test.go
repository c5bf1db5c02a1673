package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSampleTable(t *testing.T, ids []string) *Table {
	t.Helper()
	tbl := New("sample_barcode")
	for _, id := range ids {
		tbl.Set(id, Row{"value": "1"})
	}
	return tbl
}

func TestIsMissing(t *testing.T) {
	tests := []struct {
		value   string
		missing bool
	}{
		{"", true},
		{"NA", true},
		{"[Not Available]", true},
		{"[Not Applicable]", true},
		{"Stage I", false},
		{"0", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.missing, IsMissing(tt.value), "IsMissing(%q)", tt.value)
	}
}

func TestSetMergesRepeatedIDs(t *testing.T) {
	tbl := New("id")
	tbl.Set("A", Row{"x": "1"})
	tbl.Set("B", Row{"x": "2"})
	tbl.Set("A", Row{"y": "3"})

	assert.Equal(t, []string{"A", "B"}, tbl.Index(), "repeated id keeps its position")
	v, ok := tbl.Value("A", "x")
	require.True(t, ok)
	assert.Equal(t, "1", v)
	v, _ = tbl.Value("A", "y")
	assert.Equal(t, "3", v)
}

func TestIntersectIDsPreservesReceiverOrder(t *testing.T) {
	ge := newSampleTable(t, []string{"A", "B", "C"})
	snp := newSampleTable(t, []string{"D", "C", "B"})

	assert.Equal(t, []string{"B", "C"}, ge.IntersectIDs(snp.Index()))
	assert.Equal(t, []string{"C", "B"}, snp.IntersectIDs(ge.Index()))

	tbl := newSampleTable(t, []string{"A", "B", "C", "D"})
	assert.Equal(t, []string{"B", "D"}, tbl.IntersectIDs([]string{"D", "B", "Z"}))
}

func TestReindexFillsMissingRows(t *testing.T) {
	tbl := New("sample_barcode")
	tbl.Set("A", Row{"stage": "Stage I", "gender": "FEMALE"})
	tbl.Set("B", Row{"stage": "Stage II", "gender": "MALE"})

	out := tbl.Reindex([]string{"B", "Z", "A"})

	require.Equal(t, []string{"B", "Z", "A"}, out.Index())
	v, ok := out.Value("Z", "stage")
	require.True(t, ok, "absent sample still gets a row")
	assert.True(t, IsMissing(v))
	v, _ = out.Value("B", "stage")
	assert.Equal(t, "Stage II", v)
}

func TestFilterIn(t *testing.T) {
	tbl := New("sample_barcode")
	tbl.Set("A", Row{"stage": "Stage I"})
	tbl.Set("B", Row{"stage": "Stage II"})
	tbl.Set("C", Row{"stage": "Stage I"})

	tests := []struct {
		name   string
		values []string
		want   []string
	}{
		{"empty list is a no-op", nil, []string{"A", "B", "C"}},
		{"single stage", []string{"Stage I"}, []string{"A", "C"}},
		{"multiple stages", []string{"Stage I", "Stage II"}, []string{"A", "B", "C"}},
		{"no match yields empty table", []string{"Stage IV"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tbl.FilterIn("stage", tt.values)
			assert.Equal(t, tt.want, lenientIndex(got))
		})
	}
}

// lenientIndex returns nil instead of an empty slice for empty tables.
func lenientIndex(t *Table) []string {
	if t.Len() == 0 {
		return nil
	}
	return t.Index()
}

func TestSelectSkipsUnknownColumns(t *testing.T) {
	tbl := New("sample_barcode")
	tbl.Set("A", Row{"stage": "Stage I", "gender": "FEMALE"})

	out := tbl.Select([]string{"stage", "predicted_subtype"})

	assert.Equal(t, []string{"stage"}, out.Columns())
	assert.Equal(t, []string{"A"}, out.Index())
}

func TestDropMissing(t *testing.T) {
	tbl := New("sample_barcode")
	tbl.Set("A", Row{"stage": "Stage I"})
	tbl.Set("B", Row{"stage": "[Not Available]"})
	tbl.Set("C", Row{"stage": "Stage II"})

	out := tbl.DropMissing()
	assert.Equal(t, []string{"A", "C"}, out.Index())
}

func TestAddColumnIsAdditiveAndIdempotent(t *testing.T) {
	tbl := New("patient_barcode")
	tbl.Set("P1", Row{"gender": "FEMALE"})
	tbl.Set("P2", Row{"gender": "MALE"})

	subtypes := map[string]string{"P1": "Luminal A"}
	tbl.AddColumn("predicted_subtype", subtypes)
	tbl.AddColumn("predicted_subtype", subtypes)

	assert.Equal(t, 2, tbl.Len(), "row count unchanged")
	assert.Equal(t, []string{"gender", "predicted_subtype"}, tbl.Columns())
	v, _ := tbl.Value("P1", "predicted_subtype")
	assert.Equal(t, "Luminal A", v)
	v, _ = tbl.Value("P2", "predicted_subtype")
	assert.True(t, IsMissing(v), "unmapped patient gets a missing value")
	v, _ = tbl.Value("P1", "gender")
	assert.Equal(t, "FEMALE", v, "existing columns untouched")
}

func TestRenameColumns(t *testing.T) {
	tbl := New("patient_barcode")
	tbl.Set("P1", Row{"ajcc_pathologic_tumor_stage": "Stage I"})

	tbl.RenameColumns(map[string]string{
		"ajcc_pathologic_tumor_stage": "pathologic_stage",
		"no_such_column":              "other",
	})

	assert.Equal(t, []string{"pathologic_stage"}, tbl.Columns())
	v, _ := tbl.Value("P1", "pathologic_stage")
	assert.Equal(t, "Stage I", v)
}
