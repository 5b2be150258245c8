package postgres

import (
	"context"
	"database/sql"
	"strings"

	"svgapi/internal/model"
	"svgapi/internal/repository"
)

// AssetPostgres is a PostgreSQL implementation of repository.AssetRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type AssetPostgres struct {
	db *sql.DB
}

// NewAssetPostgres creates a new AssetPostgres repository.
func NewAssetPostgres(db *sql.DB) *AssetPostgres {
	return &AssetPostgres{db: db}
}

var _ repository.AssetRepository = (*AssetPostgres)(nil)

const assetColumns = `id, name, description, content, file_size, original_name, created_at, updated_at`

func scanAsset(row interface{ Scan(...any) error }) (*model.SVGAsset, error) {
	var a model.SVGAsset
	if err := row.Scan(
		&a.ID,
		&a.Name,
		&a.Description,
		&a.Content,
		&a.FileSize,
		&a.OriginalName,
		&a.CreatedAt,
		&a.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &a, nil
}

// Create inserts a new asset row and returns the stored record.
func (r *AssetPostgres) Create(ctx context.Context, asset *model.SVGAsset) (*model.SVGAsset, error) {
	const q = `
		INSERT INTO svg_assets (id, name, description, content, file_size, original_name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + assetColumns
	row := r.db.QueryRowContext(ctx, q,
		asset.ID,
		asset.Name,
		asset.Description,
		asset.Content,
		asset.FileSize,
		asset.OriginalName,
		asset.CreatedAt,
		asset.UpdatedAt,
	)
	return scanAsset(row)
}

// FindByID fetches a single asset by its ID.
func (r *AssetPostgres) FindByID(ctx context.Context, id string) (*model.SVGAsset, error) {
	const q = `SELECT ` + assetColumns + ` FROM svg_assets WHERE id = $1`
	return scanAsset(r.db.QueryRowContext(ctx, q, id))
}

// FindAll returns every asset ordered by creation time.
func (r *AssetPostgres) FindAll(ctx context.Context) ([]model.SVGAsset, error) {
	const q = `SELECT ` + assetColumns + ` FROM svg_assets ORDER BY created_at DESC, id DESC`
	return r.queryAssets(ctx, q)
}

// Update applies the provided partial fields via COALESCE so unset columns
// keep their value, refreshes updated_at, and returns the new row.
// sql.ErrNoRows surfaces when the id does not exist.
func (r *AssetPostgres) Update(ctx context.Context, id string, fields repository.UpdateFields) (*model.SVGAsset, error) {
	const q = `
		UPDATE svg_assets
		SET name        = COALESCE($2, name),
		    description = COALESCE($3, description),
		    content     = COALESCE($4, content),
		    file_size   = COALESCE($5, file_size),
		    updated_at  = $6
		WHERE id = $1
		RETURNING ` + assetColumns
	row := r.db.QueryRowContext(ctx, q,
		id,
		fields.Name,
		fields.Description,
		fields.Content,
		fields.FileSize,
		fields.UpdatedAt,
	)
	return scanAsset(row)
}

// Delete removes an asset by ID. Missing rows are reported as sql.ErrNoRows.
func (r *AssetPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM svg_assets WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Search matches the query as a case-insensitive substring of name or
// description. LIKE metacharacters in the query are escaped so they match
// literally.
func (r *AssetPostgres) Search(ctx context.Context, query string) ([]model.SVGAsset, error) {
	const q = `
		SELECT ` + assetColumns + `
		FROM svg_assets
		WHERE name ILIKE '%' || $1 || '%' ESCAPE '\'
		   OR description ILIKE '%' || $1 || '%' ESCAPE '\'
		ORDER BY created_at DESC, id DESC
	`
	return r.queryAssets(ctx, q, escapeLike(query))
}

func (r *AssetPostgres) queryAssets(ctx context.Context, q string, args ...any) ([]model.SVGAsset, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.SVGAsset, 0)
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
