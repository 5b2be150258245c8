package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"svgapi/internal/service"
)

// HealthChecker is the slice of the store adapter the health probe needs.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// HealthCheck reports whether the backing database is reachable.
func HealthCheck(store HealthChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := store.Ping(ctx); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"success":  false,
				"database": "disconnected",
				"error":    "database unreachable",
			})
		}
		return c.JSON(fiber.Map{
			"success":  true,
			"database": "connected",
		})
	}
}

// LivenessProbe is a bare liveness check with no dependencies.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

// ListAssets returns every stored SVG asset.
func ListAssets(svc service.AssetService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := svc.List(c.UserContext())
		if err != nil {
			return respondServiceError(c, err)
		}
		return writeData(c, fiber.StatusOK, items)
	}
}

// CreateAsset accepts a multipart upload (fields: name, description, file)
// and persists a new SVG asset.
func CreateAsset(svc service.AssetService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		form, err := c.MultipartForm()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_FORM", "multipart form is required")
		}
		// Both text fields must be present; description may be empty.
		if len(form.Value["name"]) == 0 {
			return writeError(c, fiber.StatusBadRequest, "NAME_REQUIRED", "name is required")
		}
		if len(form.Value["description"]) == 0 {
			return writeError(c, fiber.StatusBadRequest, "DESCRIPTION_REQUIRED", "description field is required")
		}

		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}
		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		ct := fh.Header.Get("Content-Type")
		if ct == "" {
			ct = "application/octet-stream"
		}

		asset, err := svc.Create(c.UserContext(), service.CreateInput{
			Name:        c.FormValue("name"),
			Description: c.FormValue("description"),
			FileName:    fh.Filename,
			ContentType: ct,
			Size:        fh.Size,
			File:        f,
		})
		if err != nil {
			return respondServiceError(c, err)
		}
		return writeData(c, fiber.StatusCreated, asset)
	}
}

// GetAsset returns one SVG asset by id.
func GetAsset(svc service.AssetService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		asset, err := svc.Get(c.UserContext(), c.Params("id"))
		if err != nil {
			return respondServiceError(c, err)
		}
		return writeData(c, fiber.StatusOK, asset)
	}
}

// updateRequest is the JSON body for partial updates. Absent fields are
// left untouched; a present content field replaces the stored markup.
type updateRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Content     *string `json:"content"`
}

// UpdateAsset applies a partial update to an SVG asset.
func UpdateAsset(svc service.AssetService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req updateRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid JSON body")
		}
		asset, err := svc.Update(c.UserContext(), c.Params("id"), service.UpdateInput{
			Name:        req.Name,
			Description: req.Description,
			Content:     req.Content,
		})
		if err != nil {
			return respondServiceError(c, err)
		}
		return writeData(c, fiber.StatusOK, asset)
	}
}

// DeleteAsset removes an SVG asset by id.
func DeleteAsset(svc service.AssetService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.Delete(c.UserContext(), c.Params("id")); err != nil {
			return respondServiceError(c, err)
		}
		return c.JSON(fiber.Map{"success": true})
	}
}

// SearchAssets returns assets whose name or description contains the query.
func SearchAssets(svc service.AssetService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := svc.Search(c.UserContext(), c.Query("q"))
		if err != nil {
			return respondServiceError(c, err)
		}
		return writeData(c, fiber.StatusOK, items)
	}
}

// DownloadAsset returns a presigned URL for the archived markup.
func DownloadAsset(svc service.AssetService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		url, err := svc.DownloadURL(c.UserContext(), c.Params("id"))
		if err != nil {
			return respondServiceError(c, err)
		}
		return writeData(c, fiber.StatusOK, fiber.Map{"url": url})
	}
}
