package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"preschool-finder/models"
)

// Dataset is the export envelope written by the integration job:
// {"metadata": {...}, "preschools": [...]}.
type Dataset struct {
	Metadata   DatasetMetadata          `json:"metadata" yaml:"metadata"`
	Preschools []*models.FacilityRecord `json:"preschools" yaml:"preschools"`
}

// DatasetMetadata describes where and when a dataset was produced.
type DatasetMetadata struct {
	GeneratedDate string `json:"generated_date" yaml:"generated_date"`
	Source        string `json:"source" yaml:"source"`
	Count         int    `json:"count" yaml:"count"`
}

// FileProvider loads records from a JSON or YAML dataset file. Both the
// envelope form and a bare list of records are accepted.
type FileProvider struct {
	path   string
	format string
}

// NewFileProvider creates a provider for path. format is "json" or "yaml".
func NewFileProvider(path, format string) *FileProvider {
	return &FileProvider{path: path, format: format}
}

func (p *FileProvider) Name() string {
	return p.format + ":" + p.path
}

func (p *FileProvider) LoadAll(_ context.Context) ([]*models.FacilityRecord, error) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		return nil, fmt.Errorf("dataset: read %q: %w", p.path, err)
	}

	switch p.format {
	case "json":
		return decodeJSON(data)
	case "yaml":
		return decodeYAML(data)
	}
	return nil, fmt.Errorf("dataset: unsupported format %q", p.format)
}

func decodeJSON(data []byte) ([]*models.FacilityRecord, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var records []*models.FacilityRecord
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return nil, fmt.Errorf("dataset: decode json list: %w", err)
		}
		return records, nil
	}

	var ds Dataset
	if err := json.Unmarshal(trimmed, &ds); err != nil {
		return nil, fmt.Errorf("dataset: decode json: %w", err)
	}
	return ds.Preschools, nil
}

func decodeYAML(data []byte) ([]*models.FacilityRecord, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("dataset: parse yaml: %w", err)
	}
	if len(root.Content) == 0 {
		return nil, nil
	}

	doc := root.Content[0]
	if doc.Kind == yaml.SequenceNode {
		var records []*models.FacilityRecord
		if err := doc.Decode(&records); err != nil {
			return nil, fmt.Errorf("dataset: decode yaml list: %w", err)
		}
		return records, nil
	}

	var ds Dataset
	if err := doc.Decode(&ds); err != nil {
		return nil, fmt.Errorf("dataset: decode yaml: %w", err)
	}
	return ds.Preschools, nil
}
