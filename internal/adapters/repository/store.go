// Package repository holds the shared skill catalog.
//
// The catalog is built once by ingestion and then lives for the whole
// session. Records are never removed; only their SP cost and penalty toggle
// change after ingestion.
package repository

import (
	"context"

	"github.com/okian/skillbudget/internal/domain/model"
)

// Store provides read/write access to the catalog.
type Store interface {
	// NextGroupID returns a fresh, monotonically increasing group id.
	NextGroupID() int64
	// Append stores records in order, assigning their Index.
	Append(ctx context.Context, skills ...model.Skill) []int

	// Snapshot returns a copy of every record in catalog order.
	Snapshot(ctx context.Context) []model.Skill
	// Get returns the record at index. Returns ErrNotFound if out of range.
	Get(ctx context.Context, index int) (model.Skill, error)
	// FindByName resolves a record by name and, optionally, variant.
	FindByName(ctx context.Context, name string, variant model.Variant) (model.Skill, error)
	// Suggest returns catalog names close to name.
	Suggest(ctx context.Context, name string) []string
	// Count returns the number of records.
	Count(ctx context.Context) int

	// SetCost updates the SP cost of a purchasable record.
	SetCost(ctx context.Context, index, cost int) (model.Skill, error)
	// SetEnabled toggles a penalty record.
	SetEnabled(ctx context.Context, index int, enabled bool) (model.Skill, error)
	// ResetSkills clears every cost and toggle.
	ResetSkills(ctx context.Context)
}
