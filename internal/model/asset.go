package model

import "time"

// SVGAsset represents one stored SVG document.
// This is a pure domain model with no database-specific dependencies or tags.
// It can be used across layers (HTTP, service, storage) without coupling to persistence.
//
// Content holds the raw SVG markup exactly as uploaded; it is never parsed
// or sanitized beyond the type/size gate, so consumers rendering it in a
// browser context carry that risk themselves.
type SVGAsset struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Content      string    `json:"content"`
	FileSize     int64     `json:"fileSize"`
	OriginalName string    `json:"originalName"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
