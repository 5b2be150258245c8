package service

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/google/uuid"

	"svgapi/internal/model"
	"svgapi/internal/repository"
	"svgapi/internal/storage"
	"svgapi/internal/validator"
)

var (
	ErrInvalidID     = errors.New("asset id is malformed")
	ErrNotFound      = errors.New("svg asset not found")
	ErrNameRequired  = errors.New("name is required")
	ErrQueryRequired = errors.New("search query is required")
	ErrNoFields      = errors.New("no updatable fields provided")
	ErrReaderNil     = errors.New("reader is nil")
)

// downloadExpiry bounds how long a presigned archive URL stays valid.
const downloadExpiry = 15 * time.Minute

// CreateInput carries a validated-upload request: the form fields plus the
// multipart file as received at the boundary.
type CreateInput struct {
	Name        string
	Description string
	FileName    string
	ContentType string
	Size        int64
	File        io.Reader
}

// UpdateInput is a partial update; nil fields are left untouched.
// A non-nil Content replaces the stored markup and is re-validated.
type UpdateInput struct {
	Name        *string
	Description *string
	Content     *string
}

// AssetService defines the use cases for handling SVG assets.
type AssetService interface {
	// Create validates the upload, archives the markup to object storage,
	// and persists the record. Storage is rolled back if the record save fails.
	Create(ctx context.Context, in CreateInput) (*model.SVGAsset, error)

	// Get returns a single asset by its ID.
	Get(ctx context.Context, id string) (*model.SVGAsset, error)

	// List returns all stored assets.
	List(ctx context.Context) ([]model.SVGAsset, error)

	// Update applies a partial update; updatedAt is always refreshed.
	Update(ctx context.Context, id string, in UpdateInput) (*model.SVGAsset, error)

	// Delete removes an asset from both the archive and the store.
	Delete(ctx context.Context, id string) error

	// Search returns assets whose name or description contains the query,
	// case-insensitively. An empty result is not an error.
	Search(ctx context.Context, query string) ([]model.SVGAsset, error)

	// DownloadURL returns a presigned URL for the archived markup.
	DownloadURL(ctx context.Context, id string) (string, error)
}

// assetService is a concrete implementation of AssetService.
type assetService struct {
	store    storage.Storage
	repo     repository.AssetRepository
	validate validator.Upload
}

// NewAssetService constructs a new AssetService.
func NewAssetService(store storage.Storage, repo repository.AssetRepository, v validator.Upload) AssetService {
	return &assetService{store: store, repo: repo, validate: v}
}

// objectKey addresses an asset's archived markup in the bucket.
func objectKey(id string) string {
	return "svgs/" + id + ".svg"
}

func (s *assetService) Create(ctx context.Context, in CreateInput) (*model.SVGAsset, error) {
	if in.Name == "" {
		return nil, ErrNameRequired
	}
	if in.File == nil {
		return nil, ErrReaderNil
	}
	if err := s.validate.ValidateFile(in.FileName, in.ContentType, in.Size); err != nil {
		return nil, err
	}

	// Buffer the markup; the declared size is not trusted, so the read is
	// capped one byte past the ceiling to catch oversized bodies.
	content, err := io.ReadAll(io.LimitReader(in.File, s.validate.MaxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if err := s.validate.ValidateContent(content); err != nil {
		return nil, err
	}

	id := uuid.New().String()
	now := time.Now().UTC()

	// Archive the markup before touching the store.
	_, err = s.store.Put(ctx, objectKey(id), bytes.NewReader(content), storage.PutOptions{
		Size:        int64(len(content)),
		ContentType: "image/svg+xml",
		Metadata: map[string]string{
			"original-filename": in.FileName,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("archive svg: %w", err)
	}

	asset := &model.SVGAsset{
		ID:           id,
		Name:         in.Name,
		Description:  in.Description,
		Content:      string(content),
		FileSize:     int64(len(content)),
		OriginalName: in.FileName,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	stored, err := s.repo.Create(ctx, asset)
	if err != nil {
		// Rollback: delete the archived object
		if delErr := s.store.Delete(ctx, objectKey(id)); delErr != nil {
			return nil, fmt.Errorf("record save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("record save failed: %w", err)
	}
	return stored, nil
}

func (s *assetService) Get(ctx context.Context, id string) (*model.SVGAsset, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	asset, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return asset, nil
}

func (s *assetService) List(ctx context.Context) ([]model.SVGAsset, error) {
	return s.repo.FindAll(ctx)
}

func (s *assetService) Update(ctx context.Context, id string, in UpdateInput) (*model.SVGAsset, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	if in.Name == nil && in.Description == nil && in.Content == nil {
		return nil, ErrNoFields
	}
	if in.Name != nil && *in.Name == "" {
		return nil, ErrNameRequired
	}

	fields := repository.UpdateFields{
		Name:        in.Name,
		Description: in.Description,
		UpdatedAt:   time.Now().UTC(),
	}
	if in.Content != nil {
		content := []byte(*in.Content)
		if err := s.validate.ValidateContent(content); err != nil {
			return nil, err
		}
		size := int64(len(content))
		fields.Content = in.Content
		fields.FileSize = &size
	}

	updated, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	// Refresh the archive copy with the replaced markup. The database row
	// is the source of truth, so a failed mirror refresh is logged and the
	// update still succeeds; the next content write overwrites the stale
	// object.
	if in.Content != nil {
		_, err = s.store.Put(ctx, objectKey(id), bytes.NewReader([]byte(*in.Content)), storage.PutOptions{
			Size:        int64(len(*in.Content)),
			ContentType: "image/svg+xml",
			Metadata: map[string]string{
				"original-filename": updated.OriginalName,
			},
		})
		if err != nil {
			logArchiveStale(id, err)
		}
	}
	return updated, nil
}

// logArchiveStale emits one JSON warn line when the bucket mirror could not
// be refreshed after a committed content update.
func logArchiveStale(id string, err error) {
	entry := map[string]any{
		"ts":       time.Now().UTC().Format(time.RFC3339Nano),
		"level":    "warn",
		"msg":      "archive_refresh_failed",
		"asset_id": id,
		"error":    err.Error(),
	}
	if b, mErr := json.Marshal(entry); mErr == nil {
		log.SetFlags(0)
		log.Println(string(b))
	}
}

func (s *assetService) Delete(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	// Confirm the record exists before touching the archive.
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	// Delete the archive copy first; if this fails, keep the record to avoid
	// losing the only reference to the object.
	if err := s.store.Delete(ctx, objectKey(id)); err != nil {
		return fmt.Errorf("delete archive: %w", err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *assetService) Search(ctx context.Context, query string) ([]model.SVGAsset, error) {
	if query == "" {
		return nil, ErrQueryRequired
	}
	return s.repo.Search(ctx, query)
}

func (s *assetService) DownloadURL(ctx context.Context, id string) (string, error) {
	if err := checkID(id); err != nil {
		return "", err
	}
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}
	return s.store.PresignGet(ctx, objectKey(id), downloadExpiry)
}

func checkID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrInvalidID
	}
	return nil
}
