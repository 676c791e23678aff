//go:build ocr

// Package ocr extracts text from screenshots.
//
// This implementation wraps the Tesseract engine via gosseract and requires
// Tesseract to be installed on the system. On macOS:
//
//	brew install tesseract
//
// On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr
//
// Builds without the "ocr" tag get a stub that returns ErrOCRNotEnabled;
// cached results and the --text path still work there.
package ocr

import (
	"fmt"

	"github.com/otiai10/gosseract/v2"

	"github.com/dtnitsch/screensift/models"
)

// Client wraps a Tesseract session. Close it when done to release resources.
type Client struct {
	client *gosseract.Client
}

// NewClient creates an OCR client for the given language ("eng", "eng+deu", ...).
func NewClient(language string) (*Client, error) {
	client := gosseract.NewClient()
	if language != "" {
		if err := client.SetLanguage(language); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("failed to set OCR language %q: %w", language, err)
		}
	}
	return &Client{client: client}, nil
}

// Close releases the Tesseract session.
func (c *Client) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// Recognize runs OCR on image data (PNG, JPEG, TIFF, ...) and returns the
// normalized result.
func (c *Client) Recognize(imageData []byte) (models.OcrResult, error) {
	if err := c.client.SetImageFromBytes(imageData); err != nil {
		return models.OcrResult{}, fmt.Errorf("failed to set image: %w", err)
	}

	text, err := c.client.Text()
	if err != nil {
		return models.OcrResult{}, fmt.Errorf("OCR failed: %w", err)
	}

	return models.OcrResultFromText(text), nil
}
