package preprocess

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/disintegration/imaging"

	apperrors "github.com/anime-shed/kyc-verifier-go/internal/errors"
)

// Working width range for recognition. Document photos narrower than
// minWidth lose glyph detail; wider than maxWidth just cost OCR time.
const (
	minWidth = 500
	maxWidth = 2000
)

// denoiseStrength mirrors the fixed h parameter of the fastNlMeans filter
// the pipeline was tuned with.
const denoiseStrength = 10.0

// Normalizer turns a decoded document photo into a binarized single-channel
// image sized for recognition. Each invocation owns its buffers; nothing is
// shared across requests.
type Normalizer struct{}

func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// Normalize applies, in order: width clamp into [500,2000] (cubic up-scale,
// area-averaging down-scale), luminance conversion, non-local-means style
// denoising, and global Otsu binarization. The adaptive-threshold variant is
// still computed for parity with the tuning runs but only the Otsu image is
// returned; adaptive output never fed recognition.
func (n *Normalizer) Normalize(img image.Image) (*image.Gray, error) {
	if img == nil {
		return nil, apperrors.NewDecodeError("no image to normalize", nil)
	}
	bounds := img.Bounds()
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return nil, apperrors.NewDecodeError("image has zero-size bounds", nil)
	}

	width := bounds.Dx()
	if width < minWidth {
		img = imaging.Resize(img, minWidth, 0, imaging.CatmullRom)
	} else if width > maxWidth {
		img = imaging.Resize(img, maxWidth, 0, imaging.Box)
	}

	gray := toGray(img)
	denoised := denoise(gray, denoiseStrength)

	adaptive := adaptiveThreshold(denoised, 11, 2)
	_ = morphClose(adaptive, 1) // discarded: only the Otsu image feeds recognition

	return binarize(denoised, otsuThreshold(denoised)), nil
}

// toGray converts any decoded image to 8-bit luminance.
func toGray(img image.Image) *image.Gray {
	bounds := img.Bounds()
	gray := image.NewGray(bounds)
	draw.Draw(gray, bounds, img, bounds.Min, draw.Src)
	return gray
}

// denoise is a small-window non-local-means filter: each pixel becomes a
// weighted average over a 5x5 search window, weighting neighbours by 3x3
// patch similarity with strength h.
func denoise(gray *image.Gray, h float64) *image.Gray {
	bounds := gray.Bounds()
	out := image.NewGray(bounds)
	h2 := h * h

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			var sum, weightSum float64
			for dy := -2; dy <= 2; dy++ {
				for dx := -2; dx <= 2; dx++ {
					nx, ny := x+dx, y+dy
					if nx < bounds.Min.X || nx >= bounds.Max.X || ny < bounds.Min.Y || ny >= bounds.Max.Y {
						continue
					}
					dist := patchDistance(gray, x, y, nx, ny)
					w := math.Exp(-dist / h2)
					sum += w * float64(gray.GrayAt(nx, ny).Y)
					weightSum += w
				}
			}
			out.SetGray(x, y, color.Gray{Y: clampU8(sum / weightSum)})
		}
	}
	return out
}

func clampU8(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}

// patchDistance is the mean squared difference between the 3x3 patches
// centered at (x1,y1) and (x2,y2).
func patchDistance(gray *image.Gray, x1, y1, x2, y2 int) float64 {
	bounds := gray.Bounds()
	var dist float64
	var count int
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			ax, ay := x1+dx, y1+dy
			bx, by := x2+dx, y2+dy
			if ax < bounds.Min.X || ax >= bounds.Max.X || ay < bounds.Min.Y || ay >= bounds.Max.Y ||
				bx < bounds.Min.X || bx >= bounds.Max.X || by < bounds.Min.Y || by >= bounds.Max.Y {
				continue
			}
			d := float64(gray.GrayAt(ax, ay).Y) - float64(gray.GrayAt(bx, by).Y)
			dist += d * d
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return dist / float64(count)
}

// otsuThreshold picks the global threshold maximizing between-class variance.
func otsuThreshold(gray *image.Gray) uint8 {
	bounds := gray.Bounds()
	var histogram [256]int
	total := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			histogram[gray.GrayAt(x, y).Y]++
			total++
		}
	}

	var sum float64
	for i, count := range histogram {
		sum += float64(i) * float64(count)
	}

	var sumBackground, weightBackground float64
	var maxVariance float64
	var threshold uint8

	for i := 0; i < 256; i++ {
		weightBackground += float64(histogram[i])
		if weightBackground == 0 {
			continue
		}
		weightForeground := float64(total) - weightBackground
		if weightForeground == 0 {
			break
		}
		sumBackground += float64(i) * float64(histogram[i])

		meanBackground := sumBackground / weightBackground
		meanForeground := (sum - sumBackground) / weightForeground
		diff := meanBackground - meanForeground
		variance := weightBackground * weightForeground * diff * diff
		if variance > maxVariance {
			maxVariance = variance
			threshold = uint8(i)
		}
	}
	return threshold
}

// binarize maps pixels above the threshold to white and the rest to black.
func binarize(gray *image.Gray, threshold uint8) *image.Gray {
	bounds := gray.Bounds()
	out := image.NewGray(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if gray.GrayAt(x, y).Y > threshold {
				out.SetGray(x, y, color.Gray{Y: 255})
			} else {
				out.SetGray(x, y, color.Gray{Y: 0})
			}
		}
	}
	return out
}

// adaptiveThreshold binarizes against a gaussian-weighted local mean over a
// blockSize window, offset by c.
func adaptiveThreshold(gray *image.Gray, blockSize int, c float64) *image.Gray {
	bounds := gray.Bounds()
	out := image.NewGray(bounds)
	radius := blockSize / 2
	sigma := 0.3*(float64(blockSize-1)*0.5-1) + 0.8

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			var sum, weightSum float64
			for dy := -radius; dy <= radius; dy++ {
				for dx := -radius; dx <= radius; dx++ {
					nx, ny := x+dx, y+dy
					if nx < bounds.Min.X || nx >= bounds.Max.X || ny < bounds.Min.Y || ny >= bounds.Max.Y {
						continue
					}
					w := math.Exp(-float64(dx*dx+dy*dy) / (2 * sigma * sigma))
					sum += w * float64(gray.GrayAt(nx, ny).Y)
					weightSum += w
				}
			}
			if float64(gray.GrayAt(x, y).Y) > sum/weightSum-c {
				out.SetGray(x, y, color.Gray{Y: 255})
			} else {
				out.SetGray(x, y, color.Gray{Y: 0})
			}
		}
	}
	return out
}

// morphClose performs dilation followed by erosion with a square kernel.
// kernelSize 1 leaves the image unchanged.
func morphClose(gray *image.Gray, kernelSize int) *image.Gray {
	if kernelSize <= 1 {
		return gray
	}
	return erode(dilate(gray, kernelSize), kernelSize)
}

func dilate(gray *image.Gray, kernelSize int) *image.Gray {
	return morphApply(gray, kernelSize, func(current, neighbour uint8) bool { return neighbour > current })
}

func erode(gray *image.Gray, kernelSize int) *image.Gray {
	return morphApply(gray, kernelSize, func(current, neighbour uint8) bool { return neighbour < current })
}

func morphApply(gray *image.Gray, kernelSize int, pick func(current, neighbour uint8) bool) *image.Gray {
	bounds := gray.Bounds()
	out := image.NewGray(bounds)
	radius := kernelSize / 2
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			value := gray.GrayAt(x, y).Y
			for dy := -radius; dy <= radius; dy++ {
				for dx := -radius; dx <= radius; dx++ {
					nx, ny := x+dx, y+dy
					if nx < bounds.Min.X || nx >= bounds.Max.X || ny < bounds.Min.Y || ny >= bounds.Max.Y {
						continue
					}
					if v := gray.GrayAt(nx, ny).Y; pick(value, v) {
						value = v
					}
				}
			}
			out.SetGray(x, y, color.Gray{Y: value})
		}
	}
	return out
}
