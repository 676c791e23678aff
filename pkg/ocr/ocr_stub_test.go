//go:build !ocr

package ocr

import (
	"errors"
	"testing"
)

func TestNewClientStub(t *testing.T) {
	client, err := NewClient("eng")
	if !errors.Is(err, ErrOCRNotEnabled) {
		t.Errorf("NewClient() error = %v, want ErrOCRNotEnabled", err)
	}
	if client != nil {
		t.Errorf("NewClient() = %v, want nil client", client)
	}
}

func TestStubRecognize(t *testing.T) {
	var client Client
	if _, err := client.Recognize([]byte("bytes")); !errors.Is(err, ErrOCRNotEnabled) {
		t.Errorf("Recognize() error = %v, want ErrOCRNotEnabled", err)
	}
	if err := client.Close(); err != nil {
		t.Errorf("Close() error = %v, want nil", err)
	}
}
