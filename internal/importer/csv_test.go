package importer_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwhitfield/spendlog/internal/importer"
)

func TestCSVParser_CommaDelimited(t *testing.T) {
	input := strings.Join([]string{
		"date,amount,category,description",
		"2025-03-10,12.50,Food,Lunch",
		"2025-03-11,7.00,,Bus ticket",
		"",
	}, "\n")

	parser := importer.NewCSVParser()
	params, err := parser.Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, params, 2)

	assert.Equal(t, int64(1250), params[0].Amount)
	assert.Equal(t, "Food", params[0].Category)
	assert.Equal(t, "Lunch", params[0].Description)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), params[0].Date)

	assert.Equal(t, int64(700), params[1].Amount)
	assert.Empty(t, params[1].Category)
}

func TestCSVParser_SemicolonEuropeanAmounts(t *testing.T) {
	input := strings.Join([]string{
		"Date;Amount;Category;Description",
		"10/03/2025;1.234,56;Bills;Rent",
		"11/03/2025;-7,50;Food;Coffee",
	}, "\n")

	parser := importer.NewCSVParser()
	params, err := parser.Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, params, 2)

	assert.Equal(t, int64(123456), params[0].Amount)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), params[0].Date)

	// Negative bank amounts import as their magnitude.
	assert.Equal(t, int64(750), params[1].Amount)
}

func TestCSVParser_PreambleBeforeHeader(t *testing.T) {
	input := strings.Join([]string{
		"Exported 2025-03-12",
		"",
		"date,amount,description",
		"2025-03-10,5.00,Snack",
	}, "\n")

	parser := importer.NewCSVParser()
	params, err := parser.Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, params, 1)
	assert.Equal(t, int64(500), params[0].Amount)
}

func TestCSVParser_UnusableRows(t *testing.T) {
	input := strings.Join([]string{
		"date,amount,category",
		"2025-03-10,0.00,Food",   // zero amount, dropped
		"2025-03-10,n/a,Food",    // unparseable amount, dropped
		"garbage-date,9.99,Food", // bad date imports as undated
		"2025-03-11,,Food",       // blank amount, dropped
	}, "\n")

	parser := importer.NewCSVParser()
	params, err := parser.Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, params, 1)
	assert.Equal(t, int64(999), params[0].Amount)
	assert.True(t, params[0].Date.IsZero())
}

func TestCSVParser_NoHeader(t *testing.T) {
	parser := importer.NewCSVParser()
	_, err := parser.Parse(strings.NewReader("just,some,cells\n1,2,3\n"))
	assert.Error(t, err)
}

func TestService_UnknownFormat(t *testing.T) {
	svc := importer.NewService()
	_, err := svc.Import(importer.Format("xlsx"), strings.NewReader(""))
	assert.Error(t, err)
}

func TestService_CSV(t *testing.T) {
	svc := importer.NewService()
	params, err := svc.Import(importer.FormatCSV, strings.NewReader("date,amount\n2025-03-10,1.00\n"))
	require.NoError(t, err)
	assert.Len(t, params, 1)
}
