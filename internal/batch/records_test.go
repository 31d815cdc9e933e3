// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package batch

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/kinematics-engine/internal/ingest"
	"github.com/pdiddy/kinematics-engine/pkg/types"
)

const sample = `Name,RA,Dec,pmRA,pmDec,RV,Distance
TW Hya,165.46627797,-34.70473119,-66.19,-13.90,13.40,53.7
Other,10,20,1,2,3,40
`

func TestLoad(t *testing.T) {
	rows, err := Load(strings.NewReader(sample), Auto)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, types.NamedObservableSet{
		Name: "TW Hya",
		ObservableSet: types.ObservableSet{
			RA: 165.46627797, Dec: -34.70473119,
			PMRA: -66.19, PMDec: -13.90,
			RV: 13.40, Dist: 53.7,
		},
	}, rows[0])
	assert.Equal(t, "Other", rows[1].Name)
	assert.Equal(t, 40.0, rows[1].Dist)
}

func TestRecords_HeaderSynonymsAndExtraColumns(t *testing.T) {
	input := "id\tspt\tra\tdec\tpmra\tpmdec\trv\tdist\nstar1\tM2\t1\t2\t3\t4\t5\t6\n"
	rows, err := Load(strings.NewReader(input), Tab)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "star1", rows[0].Name)
	assert.Equal(t, 6.0, rows[0].Dist)
}

func TestRecords_ColumnOrderIrrelevant(t *testing.T) {
	input := "dist rv pmdec pmra dec ra name\n6 5 4 3 2 1 star\n"
	rows, err := Load(strings.NewReader(input), Whitespace)
	require.NoError(t, err)
	assert.Equal(t, types.ObservableSet{RA: 1, Dec: 2, PMRA: 3, PMDec: 4, RV: 5, Dist: 6}, rows[0].ObservableSet)
}

func TestRecords_MissingIdentifier(t *testing.T) {
	_, err := Load(strings.NewReader("ra,dec,pmra,pmdec,rv,dist\n1,2,3,4,5,6\n"), Comma)
	var schema *SchemaError
	require.ErrorAs(t, err, &schema)
	assert.Equal(t, MissingIdentifier, schema.Problem)
}

func TestRecords_MissingColumnsListsAll(t *testing.T) {
	_, err := Load(strings.NewReader("name,ra,dec,pmra\nA,1,2,3\n"), Comma)
	var schema *SchemaError
	require.ErrorAs(t, err, &schema)
	assert.Equal(t, MissingColumns, schema.Problem)
	assert.Equal(t, []types.Field{types.FieldPMDec, types.FieldRV, types.FieldDist}, schema.Columns)
	assert.Contains(t, err.Error(), "pmdec, rv, dist")
}

func TestRecords_EmptyName(t *testing.T) {
	_, err := Load(strings.NewReader("name,ra,dec,pmra,pmdec,rv,dist\nA,1,2,3,4,5,6\n ,1,2,3,4,5,6\n"), Comma)
	var schema *SchemaError
	require.ErrorAs(t, err, &schema)
	assert.Equal(t, EmptyName, schema.Problem)
	assert.Equal(t, 2, schema.Row)
}

func TestRecords_BadCell(t *testing.T) {
	_, err := Load(strings.NewReader("name,ra,dec,pmra,pmdec,rv,dist\nA,1,2,3,4,5,6\nB,1,2,abc,4,5,6\n"), Comma)

	var rowErr *RowError
	require.ErrorAs(t, err, &rowErr)
	assert.Equal(t, 2, rowErr.Row)
	assert.Equal(t, "B", rowErr.Name)

	var parseErr *ingest.NumericParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, types.FieldPMRA, parseErr.Field)
	assert.Equal(t, "abc", parseErr.Raw)
}

func TestRecords_BlankCell(t *testing.T) {
	_, err := Load(strings.NewReader("name,ra,dec,pmra,pmdec,rv,dist\nA,1,2,3,4,,6\n"), Comma)

	var missing *ingest.MissingFieldError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, types.FieldRV, missing.Field)
}

func TestRecords_HeaderOnly(t *testing.T) {
	rows, err := Load(strings.NewReader("name,ra,dec,pmra,pmdec,rv,dist\n"), Comma)
	require.NoError(t, err)
	assert.Empty(t, rows)
}
