//go:build !ocr

// Package ocr extracts text from screenshots.
//
// This is the stub used when the "ocr" build tag is not set: creating a
// client fails with ErrOCRNotEnabled. Rebuild with the tag to enable
// recognition (requires Tesseract installed):
//
//	go build -tags ocr
//
// Cached OCR results and pre-extracted text still work in stub builds.
package ocr

import (
	"errors"

	"github.com/dtnitsch/screensift/models"
)

// ErrOCRNotEnabled is returned when OCR support was not compiled in.
var ErrOCRNotEnabled = errors.New("OCR support not enabled; rebuild with -tags ocr")

// Client is the stub OCR client. It cannot be constructed.
type Client struct{}

// NewClient always fails in stub builds.
func NewClient(language string) (*Client, error) {
	return nil, ErrOCRNotEnabled
}

// Close is a no-op on the stub.
func (c *Client) Close() error {
	return nil
}

// Recognize always fails in stub builds.
func (c *Client) Recognize(imageData []byte) (models.OcrResult, error) {
	return models.OcrResult{}, ErrOCRNotEnabled
}
