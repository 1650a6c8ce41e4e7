package persistence

import "os"

// DeleteResult is the outcome of removing one file.
type DeleteResult struct {
	Path string
	Err  error
}

// Delete removes each path and reports every outcome. A failure does not stop
// the remaining deletions.
func Delete(paths []string) []DeleteResult {
	results := make([]DeleteResult, len(paths))
	for i, path := range paths {
		results[i] = DeleteResult{Path: path, Err: os.Remove(path)}
	}
	return results
}
