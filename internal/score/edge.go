package score

// #region imports
import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os"
)

// #endregion

// #region analysis

// Analysis holds the raw CV metrics extracted from one image. Edge density
// tracks visible structure (rails, frames), blue ratio tracks installed panel
// surface, brightness and contrast qualify the capture itself.
type Analysis struct {
	Width       int
	Height      int
	Brightness  float64 // mean luminance, 0-255
	Contrast    float64 // luminance standard deviation
	EdgeDensity float64 // fraction of pixels on a Sobel edge
	BlueRatio   float64 // fraction of blue-dominant pixels
}

// #endregion

// #region edge-producer

// EdgeProducer scores images with a classical CV heuristic: Sobel edge
// density plus blue-surface ratio, no model call. Scores land in [0, 1] and
// rise with construction maturity, so they are comparable to embedding
// similarity against completed-plant references.
type EdgeProducer struct {
	config EdgeConfig
}

// EdgeConfig holds tuning knobs for the heuristic.
type EdgeConfig struct {
	GradientThreshold float64 // Sobel magnitude above this marks an edge pixel
	EdgeSaturation    float64 // edge density at which the structure term maxes out
	BlueSaturation    float64 // blue ratio at which the panel term maxes out
}

// DefaultEdgeConfig returns thresholds tuned on the reference day folders.
func DefaultEdgeConfig() EdgeConfig {
	return EdgeConfig{
		GradientThreshold: 120,
		EdgeSaturation:    0.15,
		BlueSaturation:    0.20,
	}
}

// NewEdgeProducer creates an EdgeProducer.
func NewEdgeProducer(config EdgeConfig) *EdgeProducer {
	return &EdgeProducer{config: config}
}

// #endregion

// #region produce

// Produce decodes the image and combines the CV metrics into a single score.
func (p *EdgeProducer) Produce(ctx context.Context, img Ref) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	a, err := p.Analyze(img.Path)
	if err != nil {
		return 0, err
	}
	return p.CombinedScore(a), nil
}

// CombinedScore folds the metrics into [0, 1]. Structure carries the most
// weight, panel surface next, capture brightness least.
func (p *EdgeProducer) CombinedScore(a Analysis) float64 {
	structure := clamp(a.EdgeDensity / p.config.EdgeSaturation)
	panels := clamp(a.BlueRatio / p.config.BlueSaturation)
	light := clamp(a.Brightness / 255)
	return clamp(0.45*structure + 0.40*panels + 0.15*light)
}

// #endregion

// #region analyze

// Analyze decodes the image at path and extracts the CV metrics.
func (p *EdgeProducer) Analyze(path string) (Analysis, error) {
	f, err := os.Open(path)
	if err != nil {
		return Analysis{}, fmt.Errorf("open image %s: %w", path, err)
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return Analysis{}, fmt.Errorf("decode image %s: %w", path, err)
	}

	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w < 3 || h < 3 {
		return Analysis{}, fmt.Errorf("image %s too small to analyze (%dx%d)", path, w, h)
	}

	gray := make([]float64, w*h)
	blueCount := 0
	var lumSum float64

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, _ := src.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			rf := float64(r >> 8)
			gf := float64(g >> 8)
			bf := float64(b >> 8)

			lum := 0.299*rf + 0.587*gf + 0.114*bf
			gray[y*w+x] = lum
			lumSum += lum

			if bf > 60 && bf > rf*1.15 && bf > gf*1.05 {
				blueCount++
			}
		}
	}

	total := float64(w * h)
	brightness := lumSum / total

	var varSum float64
	for _, lum := range gray {
		d := lum - brightness
		varSum += d * d
	}
	contrast := math.Sqrt(varSum / total)

	edges := sobelEdgeCount(gray, w, h, p.config.GradientThreshold)

	return Analysis{
		Width:       w,
		Height:      h,
		Brightness:  brightness,
		Contrast:    contrast,
		EdgeDensity: float64(edges) / total,
		BlueRatio:   float64(blueCount) / total,
	}, nil
}

// #endregion

// #region sobel

// sobelEdgeCount counts pixels whose Sobel gradient magnitude exceeds the
// threshold. Border pixels are skipped.
func sobelEdgeCount(gray []float64, w, h int, threshold float64) int {
	edges := 0
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			gx := -gray[(y-1)*w+x-1] + gray[(y-1)*w+x+1] +
				-2*gray[y*w+x-1] + 2*gray[y*w+x+1] +
				-gray[(y+1)*w+x-1] + gray[(y+1)*w+x+1]
			gy := -gray[(y-1)*w+x-1] - 2*gray[(y-1)*w+x] - gray[(y-1)*w+x+1] +
				gray[(y+1)*w+x-1] + 2*gray[(y+1)*w+x] + gray[(y+1)*w+x+1]
			if math.Hypot(gx, gy) > threshold {
				edges++
			}
		}
	}
	return edges
}

// #endregion

// #region helpers

// clamp restricts v to [0, 1].
func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// #endregion
