// Package storage offloads save files to the background io pool.
package storage

import (
	"infinite-life/internal/iopool"
	"infinite-life/pkg/persistence"
	"infinite-life/pkg/sim"
)

// Store reads and writes saves and blueprints in two directories.
type Store struct {
	pool         *iopool.Pool
	SaveDir      string
	BlueprintDir string
}

// New returns a Store running its file work on pool.
func New(pool *iopool.Pool, saveDir, blueprintDir string) *Store {
	return &Store{pool: pool, SaveDir: saveDir, BlueprintDir: blueprintDir}
}

// SaveBoard writes the board built by b into SaveDir.
func (s *Store) SaveBoard(b *persistence.Builder) *iopool.Future[string] {
	dir := s.SaveDir
	return iopool.Run(s.pool, func() (string, error) { return b.Save(dir) })
}

// SaveBlueprint writes the blueprint built by b into BlueprintDir.
func (s *Store) SaveBlueprint(b *persistence.Builder) *iopool.Future[string] {
	dir := s.BlueprintDir
	return iopool.Run(s.pool, func() (string, error) { return b.Save(dir) })
}

// LoadBoard reads a board save.
func (s *Store) LoadBoard(path string) *iopool.Future[sim.SimulationSave] {
	return iopool.Run(s.pool, func() (sim.SimulationSave, error) { return persistence.LoadBoard(path) })
}

// LoadBlueprint reads a blueprint.
func (s *Store) LoadBlueprint(path string) *iopool.Future[sim.SimulationBlueprint] {
	return iopool.Run(s.pool, func() (sim.SimulationBlueprint, error) { return persistence.LoadBlueprint(path) })
}

// SavePreviews scans SaveDir.
func (s *Store) SavePreviews() *iopool.Future[[]persistence.PreviewResult[persistence.SavePreview]] {
	dir := s.SaveDir
	return iopool.Run(s.pool, func() ([]persistence.PreviewResult[persistence.SavePreview], error) {
		return persistence.LoadSavePreviews(dir)
	})
}

// BlueprintPreviews scans BlueprintDir.
func (s *Store) BlueprintPreviews() *iopool.Future[[]persistence.PreviewResult[persistence.BlueprintPreview]] {
	dir := s.BlueprintDir
	return iopool.Run(s.pool, func() ([]persistence.PreviewResult[persistence.BlueprintPreview], error) {
		return persistence.LoadBlueprintPreviews(dir)
	})
}

// Delete removes the given files.
func (s *Store) Delete(paths []string) *iopool.Future[[]persistence.DeleteResult] {
	paths = append([]string(nil), paths...)
	return iopool.Run(s.pool, func() ([]persistence.DeleteResult, error) {
		return persistence.Delete(paths), nil
	})
}
