package repository

import (
	"context"
	"time"

	"svgapi/internal/model"
)

// AssetRepository defines data access for SVG assets using SQL queries only.
// No business logic here — strictly persistence operations.
type AssetRepository interface {
	// Create inserts a new asset row.
	// The caller provides the required fields (ID, timestamps, derived size);
	// the stored record is returned as the database sees it.
	Create(ctx context.Context, asset *model.SVGAsset) (*model.SVGAsset, error)

	// FindByID returns an asset by its ID.
	FindByID(ctx context.Context, id string) (*model.SVGAsset, error)

	// FindAll returns every stored asset in store-default order.
	FindAll(ctx context.Context) ([]model.SVGAsset, error)

	// Update applies the set fields to an existing row and returns the
	// updated record. Absent rows surface as sql.ErrNoRows.
	Update(ctx context.Context, id string, fields UpdateFields) (*model.SVGAsset, error)

	// Delete removes an asset by ID. Absent rows surface as sql.ErrNoRows
	// so the caller can report them.
	Delete(ctx context.Context, id string) error

	// Search returns assets whose name or description contains the query
	// as a case-insensitive substring.
	Search(ctx context.Context, query string) ([]model.SVGAsset, error)
}

// UpdateFields carries a partial update: nil pointers leave the column
// untouched. UpdatedAt is always written.
type UpdateFields struct {
	Name        *string
	Description *string
	Content     *string
	FileSize    *int64
	UpdatedAt   time.Time
}
