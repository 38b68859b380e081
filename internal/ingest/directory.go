// Package ingest locates uploadable documents on disk for batch processing.
package ingest

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"invoicedesk/constants"
)

// ListPDFs walks root and returns every PDF beneath it, skipping hidden files
// and directories. Results are sorted for a stable processing order.
func ListPDFs(root string) ([]string, error) {
	if strings.TrimSpace(root) == "" {
		return nil, errors.New("root path is required")
	}

	var out []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if isHidden(path) && path != root {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if constants.NormalizeExt(filepath.Ext(path)) != "pdf" {
			return nil
		}
		out = append(out, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk: %w", err)
	}
	sort.Strings(out)
	return out, nil
}

func isHidden(path string) bool {
	return strings.HasPrefix(filepath.Base(path), ".")
}
