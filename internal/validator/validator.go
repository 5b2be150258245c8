// Package validator gates every upload before it reaches the asset store.
// Validation is limited to declared type and size: the SVG markup itself is
// passed through verbatim and never parsed or sanitized.
package validator

import (
	"errors"
	"mime"
	"path/filepath"
	"strings"
)

var (
	ErrInvalidFileType = errors.New("file is not recognized as SVG")
	ErrFileTooLarge    = errors.New("file exceeds the maximum allowed size")
	ErrEmptyContent    = errors.New("file content is empty")
)

// svgMIMETypes are the declared content types accepted as SVG images.
var svgMIMETypes = map[string]struct{}{
	"image/svg+xml": {},
	"image/svg":     {},
}

// Upload is a pure validator for incoming SVG files. It has no side effects
// and holds only the configured size ceiling in bytes.
type Upload struct {
	MaxBytes int64
}

// New returns an Upload validator with the given size ceiling.
func New(maxBytes int64) Upload {
	return Upload{MaxBytes: maxBytes}
}

// ValidateFile checks an upload candidate described by its declared MIME
// type, client filename, and byte size.
//
// The file is accepted when the MIME type is an SVG image type OR the
// filename carries a .svg extension; the extension fallback guards against
// clients that misdeclare the content type. Size is checked against the
// configured ceiling.
func (u Upload) ValidateFile(filename, contentType string, size int64) error {
	if !isSVGMIME(contentType) && !strings.EqualFold(filepath.Ext(filename), ".svg") {
		return ErrInvalidFileType
	}
	if size > u.MaxBytes {
		return ErrFileTooLarge
	}
	return nil
}

// ValidateContent re-checks raw SVG markup when it replaces the content of
// an existing record: it must be non-empty and within the size ceiling.
func (u Upload) ValidateContent(content []byte) error {
	if len(content) == 0 {
		return ErrEmptyContent
	}
	if int64(len(content)) > u.MaxBytes {
		return ErrFileTooLarge
	}
	return nil
}

// isSVGMIME reports whether the declared content type names an SVG image,
// ignoring any media type parameters (e.g. "; charset=utf-8").
func isSVGMIME(contentType string) bool {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mt = strings.ToLower(strings.TrimSpace(contentType))
	}
	_, ok := svgMIMETypes[mt]
	return ok
}
