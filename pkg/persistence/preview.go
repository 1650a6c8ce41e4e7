package persistence

import (
	"os"
	"path/filepath"

	"infinite-life/pkg/core"
)

// SavePreview is the metadata of a board save without its cells.
type SavePreview struct {
	Header
	Generation uint64    `json:"generation"`
	BoardArea  core.Area `json:"board_area"`
}

// Filename re-derives the name the save was written under.
func (p SavePreview) Filename() string { return Filename(p.Header) }

// BlueprintPreview is the metadata of a blueprint without its cells.
type BlueprintPreview struct {
	Header
	XSize uint32 `json:"x_size"`
	YSize uint32 `json:"y_size"`
}

// Filename re-derives the name the blueprint was written under.
func (p BlueprintPreview) Filename() string { return Filename(p.Header) }

// PreviewResult is the outcome for one file of a directory scan.
type PreviewResult[T any] struct {
	Preview T
	Path    string
	Err     error
}

// LoadSavePreviews scans dir for board saves.
func LoadSavePreviews(dir string) ([]PreviewResult[SavePreview], error) {
	return loadPreviews[SavePreview](dir, savePreviewFields)
}

// LoadBlueprintPreviews scans dir for blueprints.
func LoadBlueprintPreviews(dir string) ([]PreviewResult[BlueprintPreview], error) {
	return loadPreviews[BlueprintPreview](dir, blueprintPreviewFields)
}

// loadPreviews decodes every regular file in dir that carries the required
// keys. Only an unreadable directory fails the scan; per-file problems land
// in the results.
func loadPreviews[T any](dir string, required []string) ([]PreviewResult[T], error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	results := make([]PreviewResult[T], 0, len(entries))
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		info, err := entry.Info()
		if err != nil {
			results = append(results, PreviewResult[T]{Path: path, Err: &ParseError{Path: path, Kind: ErrUnreadable, Err: err}})
			continue
		}
		if !info.Mode().IsRegular() {
			continue
		}
		var preview T
		if err := decodeFile(path, &preview, required); err != nil {
			results = append(results, PreviewResult[T]{Path: path, Err: err})
			continue
		}
		results = append(results, PreviewResult[T]{Preview: preview, Path: path})
	}
	return results, nil
}
