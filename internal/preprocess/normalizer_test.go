package preprocess

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	apperrors "github.com/anime-shed/kyc-verifier-go/internal/errors"
)

// twoToneImage builds a width x height image split into a dark and a bright
// half, giving the binarizer a clean separation to work with.
func twoToneImage(width, height int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if x < width/2 {
				img.Set(x, y, color.RGBA{30, 30, 30, 255})
			} else {
				img.Set(x, y, color.RGBA{220, 220, 220, 255})
			}
		}
	}
	return img
}

func TestNormalize_NilImage(t *testing.T) {
	_, err := NewNormalizer().Normalize(nil)
	if err == nil {
		t.Fatal("Expected error for nil image")
	}
	if !apperrors.IsType(err, apperrors.ErrorTypeDecode) {
		t.Errorf("Expected decode error, got %v", err)
	}
}

func TestNormalize_ZeroSizeImage(t *testing.T) {
	_, err := NewNormalizer().Normalize(image.NewGray(image.Rect(0, 0, 0, 0)))
	if err == nil {
		t.Fatal("Expected error for zero-size image")
	}
	if !apperrors.IsType(err, apperrors.ErrorTypeDecode) {
		t.Errorf("Expected decode error, got %v", err)
	}
}

func TestNormalize_UpscalesNarrowImages(t *testing.T) {
	out, err := NewNormalizer().Normalize(twoToneImage(100, 40))
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}

	if got := out.Bounds().Dx(); got != 500 {
		t.Errorf("Expected width 500 after upscale, got %d", got)
	}
	// Aspect ratio is preserved.
	if got := out.Bounds().Dy(); got != 200 {
		t.Errorf("Expected height 200 after upscale, got %d", got)
	}
}

func TestNormalize_DownscalesWideImages(t *testing.T) {
	out, err := NewNormalizer().Normalize(twoToneImage(2400, 24))
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}

	if got := out.Bounds().Dx(); got != 2000 {
		t.Errorf("Expected width 2000 after downscale, got %d", got)
	}
	if got := out.Bounds().Dy(); got != 20 {
		t.Errorf("Expected height 20 after downscale, got %d", got)
	}
}

func TestNormalize_KeepsInRangeWidth(t *testing.T) {
	out, err := NewNormalizer().Normalize(twoToneImage(800, 20))
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if got := out.Bounds().Dx(); got != 800 {
		t.Errorf("Expected in-range width to be untouched, got %d", got)
	}
}

func TestNormalize_OutputIsBinary(t *testing.T) {
	out, err := NewNormalizer().Normalize(twoToneImage(600, 30))
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}

	bounds := out.Bounds()
	sawBlack, sawWhite := false, false
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			switch out.GrayAt(x, y).Y {
			case 0:
				sawBlack = true
			case 255:
				sawWhite = true
			default:
				t.Fatalf("Expected binary output, found pixel value %d at (%d,%d)",
					out.GrayAt(x, y).Y, x, y)
			}
		}
	}
	if !sawBlack || !sawWhite {
		t.Error("Expected a two-tone image to binarize into both classes")
	}
}

func TestOtsuThreshold_SeparatesTwoClasses(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 100, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 100; x++ {
			if x < 50 {
				gray.SetGray(x, y, color.Gray{Y: 30})
			} else {
				gray.SetGray(x, y, color.Gray{Y: 220})
			}
		}
	}

	threshold := otsuThreshold(gray)
	if threshold < 30 || threshold >= 220 {
		t.Errorf("Expected threshold between the two classes, got %d", threshold)
	}
}

func TestEncodePNG_RoundTrips(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 8, 8))
	gray.SetGray(3, 3, color.Gray{Y: 255})

	data, err := EncodePNG(gray)
	if err != nil {
		t.Fatalf("EncodePNG failed: %v", err)
	}

	decoded, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Expected valid PNG bytes: %v", err)
	}
	if decoded.Bounds() != gray.Bounds() {
		t.Errorf("Expected bounds %v, got %v", gray.Bounds(), decoded.Bounds())
	}
}
