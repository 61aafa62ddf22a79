package recognition

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"math"

	// raster formats accepted at the gate camera boundary
	_ "image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"
)

const (
	upscaleFactor = 2

	// bilateral filter parameters tuned for printed plate characters
	bilateralDiameter   = 11
	bilateralSigmaColor = 17.0
	bilateralSigmaSpace = 17.0
)

// Preprocess turns raw image bytes into a black/white mask suitable for a
// small-target OCR model: decode, 2x upscale, grayscale, edge-preserving
// smoothing, global threshold.
func Preprocess(imageBytes []byte, threshold uint8) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(imageBytes))
	if err != nil {
		return nil, fmt.Errorf("decode plate image: %w", err)
	}

	// upscale to increase apparent character size
	bounds := img.Bounds()
	resized := imaging.Resize(img, bounds.Dx()*upscaleFactor, bounds.Dy()*upscaleFactor, imaging.CatmullRom)

	gray := toGray(imaging.Grayscale(resized))
	smoothed := bilateralFilter(gray, bilateralDiameter, bilateralSigmaColor, bilateralSigmaSpace)

	return binarize(smoothed, threshold), nil
}

func toGray(img image.Image) *image.Gray {
	if g, ok := img.(*image.Gray); ok {
		return g
	}
	bounds := img.Bounds()
	gray := image.NewGray(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			gray.Set(x, y, img.At(x, y))
		}
	}
	return gray
}

// bilateralFilter smooths background noise while preserving character edges:
// each pixel becomes a weighted mean of its neighborhood where weights fall
// off with both spatial distance and intensity difference.
func bilateralFilter(src *image.Gray, diameter int, sigmaColor, sigmaSpace float64) *image.Gray {
	bounds := src.Bounds()
	dst := image.NewGray(bounds)
	radius := diameter / 2

	// spatial weights depend only on the offset, precompute once
	spatial := make([][]float64, diameter)
	for dy := -radius; dy <= radius; dy++ {
		row := make([]float64, diameter)
		for dx := -radius; dx <= radius; dx++ {
			dist2 := float64(dx*dx + dy*dy)
			row[dx+radius] = math.Exp(-dist2 / (2 * sigmaSpace * sigmaSpace))
		}
		spatial[dy+radius] = row
	}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			center := float64(src.GrayAt(x, y).Y)

			var sum, norm float64
			for dy := -radius; dy <= radius; dy++ {
				ny := y + dy
				if ny < bounds.Min.Y || ny >= bounds.Max.Y {
					continue
				}
				for dx := -radius; dx <= radius; dx++ {
					nx := x + dx
					if nx < bounds.Min.X || nx >= bounds.Max.X {
						continue
					}

					neighbor := float64(src.GrayAt(nx, ny).Y)
					diff := neighbor - center
					weight := spatial[dy+radius][dx+radius] *
						math.Exp(-(diff*diff)/(2*sigmaColor*sigmaColor))

					sum += neighbor * weight
					norm += weight
				}
			}

			dst.SetGray(x, y, color.Gray{Y: uint8(math.Round(sum / norm))})
		}
	}
	return dst
}

// binarize applies a fixed global intensity threshold producing a black/white
// mask tuned for printed alphanumeric characters
func binarize(src *image.Gray, threshold uint8) *image.Gray {
	bounds := src.Bounds()
	dst := image.NewGray(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if src.GrayAt(x, y).Y > threshold {
				dst.Pix[dst.PixOffset(x, y)] = 255
			} else {
				dst.Pix[dst.PixOffset(x, y)] = 0
			}
		}
	}
	return dst
}
