package store

import (
	"time"

	"github.com/flavono123/shaper/internal/projection"
)

// Record describes one exported rendering of a schema.
type Record struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Format    projection.Format `json:"format"`
	File      string            `json:"file"`
	Fields    int               `json:"fields"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}
