package recognition

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"easypark/internal/shared/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubEngine struct {
	text  string
	err   error
	delay time.Duration
	calls int
}

func (s *stubEngine) ImageToText(img image.Image) (string, error) {
	s.calls++
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	return s.text, s.err
}

func (s *stubEngine) Close() error { return nil }

func testConfig() config.RecognitionConfig {
	return config.RecognitionConfig{
		Timeout:       2 * time.Second,
		MaxConcurrent: 2,
		Threshold:     150,
	}
}

// plateImageBytes renders a small valid PNG with a bright band on a dark
// background, enough for the pipeline to produce a mask
func plateImageBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 24, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 24; x++ {
			if y >= 2 && y <= 5 {
				img.Set(x, y, color.White)
			} else {
				img.Set(x, y, color.Black)
			}
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestRecognizeCleansEngineOutput(t *testing.T) {
	engine := &stubEngine{text: " mh12-ab 1234\n"}
	r := NewRecognizer(engine, testConfig())

	res := r.Recognize(context.Background(), plateImageBytes(t))
	assert.Equal(t, "MH12AB1234", res.Plate)
	assert.False(t, res.Degraded)
	assert.Equal(t, 1, engine.calls)
}

func TestRecognizeUndecodableImage(t *testing.T) {
	engine := &stubEngine{text: "SHOULD NOT MATTER"}
	r := NewRecognizer(engine, testConfig())

	res := r.Recognize(context.Background(), []byte("definitely not an image"))
	assert.Equal(t, PlateUnknown, res.Plate)
	assert.True(t, res.Degraded)
	assert.Equal(t, 0, engine.calls, "OCR must not run when decoding fails")
}

func TestRecognizeEngineError(t *testing.T) {
	engine := &stubEngine{err: errors.New("tesseract exploded")}
	r := NewRecognizer(engine, testConfig())

	res := r.Recognize(context.Background(), plateImageBytes(t))
	assert.Equal(t, PlateUnknown, res.Plate)
	assert.True(t, res.Degraded)
}

func TestRecognizeEmptyTextFallsBack(t *testing.T) {
	engine := &stubEngine{text: " --- \n"}
	r := NewRecognizer(engine, testConfig())

	res := r.Recognize(context.Background(), plateImageBytes(t))
	assert.Equal(t, PlateUnknown, res.Plate)
	assert.True(t, res.Degraded)
}

func TestRecognizeTimesOut(t *testing.T) {
	engine := &stubEngine{text: "KA01AB1234", delay: 500 * time.Millisecond}
	cfg := testConfig()
	cfg.Timeout = 50 * time.Millisecond
	r := NewRecognizer(engine, cfg)

	start := time.Now()
	res := r.Recognize(context.Background(), plateImageBytes(t))
	assert.Less(t, time.Since(start), 400*time.Millisecond)
	assert.Equal(t, PlateUnknown, res.Plate)
	assert.True(t, res.Degraded)
}

func TestNormalizePlate(t *testing.T) {
	cases := map[string]string{
		"KA-01 AB 1234": "KA01AB1234",
		"mh12cd0001":    "MH12CD0001",
		"  \n\t":        "",
		"!!??":          "",
		"DL8CAF5030":    "DL8CAF5030",
	}
	for input, want := range cases {
		assert.Equal(t, want, NormalizePlate(input), "input %q", input)
	}
}

func TestPreprocessProducesBinaryMask(t *testing.T) {
	mask, err := Preprocess(plateImageBytes(t), 150)
	require.NoError(t, err)

	gray, ok := mask.(*image.Gray)
	require.True(t, ok)

	// doubled in both dimensions by the upscale stage
	assert.Equal(t, 48, gray.Bounds().Dx())
	assert.Equal(t, 16, gray.Bounds().Dy())

	for _, p := range gray.Pix {
		assert.True(t, p == 0 || p == 255, "mask must be strictly black/white, got %d", p)
	}
}
