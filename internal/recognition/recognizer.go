package recognition

import (
	"context"
	"log/slog"
	"time"

	"easypark/internal/shared/config"
	"easypark/pkg/logger"

	"golang.org/x/sync/semaphore"
)

// Recognizer turns a raw plate image into a best-effort plate string. It
// never fails: any stage error, an undecodable image, an OCR failure or a
// timeout all degrade to the PlateUnknown sentinel so that recognition can
// never block slot allocation.
type Recognizer struct {
	engine    Engine
	sem       *semaphore.Weighted
	timeout   time.Duration
	threshold uint8
	logger    *logger.Logger
}

func NewRecognizer(engine Engine, cfg config.RecognitionConfig) *Recognizer {
	maxConcurrent := cfg.MaxConcurrent
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}

	return &Recognizer{
		engine:    engine,
		sem:       semaphore.NewWeighted(maxConcurrent),
		timeout:   cfg.Timeout,
		threshold: cfg.Threshold,
		logger:    logger.GetDefault(),
	}
}

// Recognize runs the image-to-text pipeline under a hard timeout. The OCR
// step is CPU-bound, so a semaphore caps how many recognitions run at once;
// entries that cannot start or finish in time fall back to the sentinel.
func (r *Recognizer) Recognize(ctx context.Context, imageBytes []byte) Result {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	if err := r.sem.Acquire(ctx, 1); err != nil {
		r.logger.Warn("recognition queue full, degrading to sentinel", slog.Any("error", err))
		return Unknown("")
	}

	results := make(chan Result, 1)
	go func() {
		defer r.sem.Release(1)
		results <- r.recognizeOnce(imageBytes)
	}()

	select {
	case res := <-results:
		return res
	case <-ctx.Done():
		r.logger.Warn("recognition timed out, degrading to sentinel",
			slog.Duration("timeout", r.timeout))
		return Unknown("")
	}
}

func (r *Recognizer) recognizeOnce(imageBytes []byte) Result {
	mask, err := Preprocess(imageBytes, r.threshold)
	if err != nil {
		r.logger.Warn("plate preprocessing failed", slog.Any("error", err))
		return Unknown("")
	}

	raw, err := r.engine.ImageToText(mask)
	if err != nil {
		r.logger.Warn("plate OCR failed", slog.Any("error", err))
		return Unknown("")
	}

	plate := NormalizePlate(raw)
	if plate == "" {
		return Unknown(raw)
	}

	return Result{RawText: raw, Plate: plate}
}
