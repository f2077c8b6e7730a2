package main

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"preschool-finder/config"
	"preschool-finder/models"
	"preschool-finder/services"
	"preschool-finder/storage"
	"preschool-finder/utils"
)

func testApp() *app {
	return &app{cfg: &config.Config{MaxRetries: 1}, logger: utils.NewNopLogger()}
}

func TestProviderSelection(t *testing.T) {
	a := testApp()
	cleaner := services.NewCleaner(a.logger)
	ctx := context.Background()

	tests := []struct {
		source string
		path   string
		want   string
	}{
		{config.SourceBuiltin, "", "builtin"},
		{config.SourceJSON, "data.json", "json:data.json"},
		{config.SourceYAML, "data.yaml", "yaml:data.yaml"},
		{config.SourceCSV, "data.csv", "csv:data.csv"},
	}

	for _, tt := range tests {
		p, closeFn, err := a.provider(ctx, tt.source, tt.path, cleaner)
		require.NoError(t, err, tt.source)
		assert.Equal(t, tt.want, p.Name())
		closeFn()
	}
}

func TestProviderSelectionErrors(t *testing.T) {
	a := testApp()
	cleaner := services.NewCleaner(a.logger)

	_, _, err := a.provider(context.Background(), config.SourceJSON, "", cleaner)
	assert.Error(t, err, "file sources need a path")

	_, _, err = a.provider(context.Background(), "mongo", "", cleaner)
	assert.ErrorContains(t, err, "unknown data source")
}

func TestPrintResultsText(t *testing.T) {
	records := storage.Builtin()
	dist := 1.1
	results := []models.QueryResult{
		{FacilityRecord: records[4], Distance: &dist, MatchReasons: []string{"California State Preschool Program"}, IsFavorite: true},
	}

	var buf bytes.Buffer
	require.NoError(t, printResults(&buf, "text", results))

	out := buf.String()
	assert.Contains(t, out, "Mission Community State Preschool")
	assert.Contains(t, out, "San Francisco 94110")
	assert.Contains(t, out, "1.1 mi away")
	assert.Contains(t, out, "- California State Preschool Program")
}

func TestPrintPageJSON(t *testing.T) {
	page := models.Page[models.QueryResult]{
		Items:      []models.QueryResult{{FacilityRecord: storage.Builtin()[0]}},
		TotalCount: 1,
		Page:       1,
		TotalPages: 1,
	}

	var buf bytes.Buffer
	require.NoError(t, printPage(&buf, "json", page))

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.EqualValues(t, 1, got["totalCount"])
	items := got["items"].([]any)
	assert.Equal(t, "preschool-1", items[0].(map[string]any)["id"])
}

func TestPrintEmptyList(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printResults(&buf, "text", []models.QueryResult{}))
	assert.True(t, strings.Contains(buf.String(), "No preschools found"))
}
