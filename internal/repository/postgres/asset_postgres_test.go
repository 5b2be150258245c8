package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"svgapi/internal/model"
	"svgapi/internal/repository"
)

func sampleAsset(id string, now time.Time) *model.SVGAsset {
	return &model.SVGAsset{
		ID:           id,
		Name:         "My Icon",
		Description:  "A beautiful icon",
		Content:      "<svg/>",
		FileSize:     6,
		OriginalName: "icon.svg",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

var assetCols = []string{"id", "name", "description", "content", "file_size", "original_name", "created_at", "updated_at"}

func sampleRow(id, name, description string, now time.Time) *sqlmock.Rows {
	return sqlmock.NewRows(assetCols).
		AddRow(id, name, description, "<svg/>", 6, "icon.svg", now, now)
}

func newRepo(t *testing.T) (*AssetPostgres, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewAssetPostgres(db), mock
}

func TestAssetPostgres_Create(t *testing.T) {
	repo, mock := newRepo(t)
	ctx := context.Background()
	now := time.Now().UTC()

	asset := sampleAsset("test-uuid", now)

	mock.ExpectQuery("INSERT INTO svg_assets").
		WithArgs(asset.ID, asset.Name, asset.Description, asset.Content, asset.FileSize, asset.OriginalName, asset.CreatedAt, asset.UpdatedAt).
		WillReturnRows(sampleRow(asset.ID, asset.Name, asset.Description, now))

	result, err := repo.Create(ctx, asset)

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, asset.ID, result.ID)
	assert.Equal(t, int64(6), result.FileSize)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssetPostgres_FindByID(t *testing.T) {
	repo, mock := newRepo(t)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM svg_assets WHERE id = ?").
			WithArgs("test-id").
			WillReturnRows(sampleRow("test-id", "My Icon", "A beautiful icon", time.Now()))

		asset, err := repo.FindByID(ctx, "test-id")

		assert.NoError(t, err)
		assert.NotNil(t, asset)
		assert.Equal(t, "test-id", asset.ID)
		assert.Equal(t, "<svg/>", asset.Content)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM svg_assets WHERE id = ?").
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		asset, err := repo.FindByID(ctx, "missing")

		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, asset)
	})
}

func TestAssetPostgres_FindAll(t *testing.T) {
	repo, mock := newRepo(t)
	ctx := context.Background()
	now := time.Now()

	rows := sqlmock.NewRows(assetCols).
		AddRow("id-1", "one", "first", "<svg/>", 6, "one.svg", now, now).
		AddRow("id-2", "two", "second", "<svg/>", 6, "two.svg", now, now)

	mock.ExpectQuery("SELECT (.+) FROM svg_assets ORDER BY created_at DESC").
		WillReturnRows(rows)

	items, err := repo.FindAll(ctx)

	assert.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Equal(t, "id-1", items[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssetPostgres_Update(t *testing.T) {
	repo, mock := newRepo(t)
	ctx := context.Background()
	now := time.Now().UTC()

	t.Run("partial update", func(t *testing.T) {
		name := "Renamed"
		fields := repository.UpdateFields{Name: &name, UpdatedAt: now}

		mock.ExpectQuery("UPDATE svg_assets").
			WithArgs("test-id", "Renamed", nil, nil, nil, now).
			WillReturnRows(sampleRow("test-id", "Renamed", "A beautiful icon", now))

		asset, err := repo.Update(ctx, "test-id", fields)

		assert.NoError(t, err)
		assert.Equal(t, "Renamed", asset.Name)
	})

	t.Run("missing row", func(t *testing.T) {
		mock.ExpectQuery("UPDATE svg_assets").
			WillReturnError(sql.ErrNoRows)

		asset, err := repo.Update(ctx, "missing", repository.UpdateFields{UpdatedAt: now})

		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, asset)
	})
}

func TestAssetPostgres_Delete(t *testing.T) {
	repo, mock := newRepo(t)
	ctx := context.Background()

	t.Run("deleted", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM svg_assets WHERE id = ?").
			WithArgs("test-id").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Delete(ctx, "test-id"))
	})

	t.Run("missing row surfaces no-rows", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM svg_assets WHERE id = ?").
			WithArgs("missing").
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Delete(ctx, "missing"), sql.ErrNoRows)
	})

	t.Run("exec error", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM svg_assets WHERE id = ?").
			WithArgs("boom").
			WillReturnError(errors.New("exec fail"))

		assert.Error(t, repo.Delete(ctx, "boom"))
	})
}

func TestAssetPostgres_Search(t *testing.T) {
	repo, mock := newRepo(t)
	ctx := context.Background()
	now := time.Now()

	t.Run("matches", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM svg_assets").
			WithArgs("icon").
			WillReturnRows(sampleRow("test-id", "My Icon", "A beautiful icon", now))

		items, err := repo.Search(ctx, "icon")

		assert.NoError(t, err)
		assert.Len(t, items, 1)
	})

	t.Run("no matches is empty slice", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM svg_assets").
			WithArgs("nothing").
			WillReturnRows(sqlmock.NewRows(assetCols))

		items, err := repo.Search(ctx, "nothing")

		assert.NoError(t, err)
		assert.NotNil(t, items)
		assert.Empty(t, items)
	})

	t.Run("like metacharacters are escaped", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM svg_assets").
			WithArgs(`100\%`).
			WillReturnRows(sqlmock.NewRows(assetCols))

		_, err := repo.Search(ctx, "100%")

		assert.NoError(t, err)
	})
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `plain`, escapeLike("plain"))
	assert.Equal(t, `\%\_\\`, escapeLike(`%_\`))
}
