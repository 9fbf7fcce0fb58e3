package filters

import (
	"bytes"
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"
)

// Names lists every filter Apply recognizes.
var Names = []string{"vintage", "contrast", "grayscale", "sepia", "vignette"}

// Supported reports whether name is a known filter.
func Supported(name string) bool {
	for _, n := range Names {
		if n == name {
			return true
		}
	}
	return false
}

// Apply runs the named filter over the image bytes and returns the result
// encoded as JPEG. It is a pure function: identical input bytes and filter
// name always produce identical output.
//
// An unrecognized filter name is a documented no-op: the input bytes are
// returned untouched, with no decode/re-encode round trip.
func Apply(src []byte, filterType string) ([]byte, error) {
	if !Supported(filterType) {
		return src, nil
	}

	img, err := imaging.Decode(bytes.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	out := imaging.Clone(img)

	switch filterType {
	case "grayscale":
		out = imaging.Grayscale(out)
	case "contrast":
		out = imaging.AdjustContrast(out, 15)
	case "sepia":
		Sepia(out)
	case "vintage":
		Sepia(out)
		out = imaging.AdjustBrightness(out, -10)
		out = imaging.AdjustContrast(out, -10)
	case "vignette":
		Vignette(out)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, out, imaging.JPEG, imaging.JPEGQuality(90)); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}

// Sepia applies the classic sepia tone matrix in place. Alpha is untouched.
func Sepia(img *image.NRGBA) {
	for i := 0; i < len(img.Pix); i += 4 {
		r := float64(img.Pix[i])
		g := float64(img.Pix[i+1])
		b := float64(img.Pix[i+2])

		img.Pix[i] = clamp(0.393*r + 0.769*g + 0.189*b)
		img.Pix[i+1] = clamp(0.349*r + 0.686*g + 0.168*b)
		img.Pix[i+2] = clamp(0.272*r + 0.534*g + 0.131*b)
	}
}

// Vignette darkens pixels radially in place: each pixel's RGB channels are
// scaled by 1 - distanceToCenter/maxDistance, where maxDistance is the
// distance from the center to a corner. Alpha is untouched, so corner
// pixels go fully dark while the center stays as-is.
func Vignette(img *image.NRGBA) {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	centerX := float64(width) / 2
	centerY := float64(height) / 2
	maxDistance := math.Sqrt(centerX*centerX + centerY*centerY)
	if maxDistance == 0 {
		return
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			dx := centerX - float64(x)
			dy := centerY - float64(y)
			scale := 1 - math.Sqrt(dx*dx+dy*dy)/maxDistance

			i := y*img.Stride + x*4
			img.Pix[i] = clamp(float64(img.Pix[i]) * scale)
			img.Pix[i+1] = clamp(float64(img.Pix[i+1]) * scale)
			img.Pix[i+2] = clamp(float64(img.Pix[i+2]) * scale)
		}
	}
}

func clamp(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
