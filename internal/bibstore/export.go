// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package bibstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/citematch/pkg/types"
)

// ExportYAML writes a document's records to dir/index/<docID>.yaml and
// returns the path.
func (s *Store) ExportYAML(ctx context.Context, docID string) (string, error) {
	bib, err := s.bibliography(ctx, docID)
	if err != nil {
		return "", err
	}
	data, err := yaml.Marshal(bib)
	if err != nil {
		return "", fmt.Errorf("marshaling YAML: %w", err)
	}
	path := filepath.Join(s.dir, indexDir, docID+".yaml")
	return path, os.WriteFile(path, data, 0o644)
}

// ExportJSON writes a document's records to dir/index/<docID>.json and
// returns the path.
func (s *Store) ExportJSON(ctx context.Context, docID string) (string, error) {
	bib, err := s.bibliography(ctx, docID)
	if err != nil {
		return "", err
	}
	data, err := json.MarshalIndent(bib, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling JSON: %w", err)
	}
	path := filepath.Join(s.dir, indexDir, docID+".json")
	return path, os.WriteFile(path, data, 0o644)
}

func (s *Store) bibliography(ctx context.Context, docID string) (*types.BibliographyFile, error) {
	if err := ValidateDocumentID(docID); err != nil {
		return nil, err
	}
	records, err := s.Records(ctx, docID)
	if err != nil {
		return nil, fmt.Errorf("querying for export: %w", err)
	}
	return &types.BibliographyFile{Document: docID, Records: records}, nil
}
