package validator

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

const testMaxBytes = 5 << 20

func TestValidateFile(t *testing.T) {
	v := New(testMaxBytes)

	tests := []struct {
		name        string
		filename    string
		contentType string
		size        int64
		wantErr     error
	}{
		{
			name:        "svg mime type",
			filename:    "logo.bin",
			contentType: "image/svg+xml",
			size:        100,
		},
		{
			name:        "svg mime type with charset parameter",
			filename:    "logo.bin",
			contentType: "image/svg+xml; charset=utf-8",
			size:        100,
		},
		{
			name:        "misdeclared mime but .svg extension",
			filename:    "logo.svg",
			contentType: "application/octet-stream",
			size:        100,
		},
		{
			name:        "uppercase extension",
			filename:    "LOGO.SVG",
			contentType: "text/plain",
			size:        100,
		},
		{
			name:        "neither svg mime nor svg extension",
			filename:    "photo.png",
			contentType: "image/png",
			size:        100,
			wantErr:     ErrInvalidFileType,
		},
		{
			name:        "empty type and filename",
			filename:    "",
			contentType: "",
			size:        100,
			wantErr:     ErrInvalidFileType,
		},
		{
			name:        "too large regardless of declared type",
			filename:    "big.svg",
			contentType: "image/svg+xml",
			size:        testMaxBytes + 1,
			wantErr:     ErrFileTooLarge,
		},
		{
			name:        "exactly at the ceiling",
			filename:    "edge.svg",
			contentType: "image/svg+xml",
			size:        testMaxBytes,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateFile(tt.filename, tt.contentType, tt.size)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateFileTypeCheckedBeforeSize(t *testing.T) {
	v := New(testMaxBytes)

	// An oversized non-SVG file reports the type error, not the size error.
	err := v.ValidateFile("photo.png", "image/png", testMaxBytes+1)
	assert.ErrorIs(t, err, ErrInvalidFileType)
}

func TestValidateContent(t *testing.T) {
	v := New(16)

	assert.NoError(t, v.ValidateContent([]byte("<svg/>")))
	assert.ErrorIs(t, v.ValidateContent(nil), ErrEmptyContent)
	assert.ErrorIs(t, v.ValidateContent([]byte{}), ErrEmptyContent)
	assert.ErrorIs(t, v.ValidateContent(bytes.Repeat([]byte("x"), 17)), ErrFileTooLarge)
}
