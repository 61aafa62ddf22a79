package recognition

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"sync"

	"github.com/otiai10/gosseract/v2"
)

const plateAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Engine extracts text from a preprocessed plate image
type Engine interface {
	ImageToText(img image.Image) (string, error)
	Close() error
}

// TesseractEngine runs OCR through a tesseract client constrained to a
// single-word assumption and the plate alphabet. The client is not safe for
// concurrent use, so calls are serialized.
type TesseractEngine struct {
	mu     sync.Mutex
	client *gosseract.Client
}

func NewTesseractEngine() (*TesseractEngine, error) {
	client := gosseract.NewClient()

	if err := client.SetPageSegMode(gosseract.PSM_SINGLE_WORD); err != nil {
		client.Close()
		return nil, fmt.Errorf("set page segmentation mode: %w", err)
	}
	if err := client.SetWhitelist(plateAlphabet); err != nil {
		client.Close()
		return nil, fmt.Errorf("set character whitelist: %w", err)
	}

	return &TesseractEngine{client: client}, nil
}

func (e *TesseractEngine) ImageToText(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("encode image for OCR: %w", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.client.SetImageFromBytes(buf.Bytes()); err != nil {
		return "", fmt.Errorf("set OCR image: %w", err)
	}

	text, err := e.client.Text()
	if err != nil {
		return "", fmt.Errorf("run OCR: %w", err)
	}
	return text, nil
}

func (e *TesseractEngine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.client.Close()
}
