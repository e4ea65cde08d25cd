package ports

import "go.trai.ch/tdbuild/internal/core/domain"

// RecordStore defines the interface for persisting generation records.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type RecordStore interface {
	// Get retrieves the record for a task name.
	// Returns nil, nil if not found.
	Get(taskName string) (*domain.GenerationRecord, error)

	// Put stores the record.
	Put(record domain.GenerationRecord) error
}
