package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
)

// Diff is the outcome of comparing two rendered images.
type Diff struct {
	DifferentPixels int
	TotalPixels     int
	MaxDifference   int // largest 8-bit channel delta seen
	// Mask marks differing pixels in red over a grey copy of the actual
	// image. Only filled when requested.
	Mask *image.RGBA
}

// Match reports whether no pixel differed beyond the tolerance.
func (d Diff) Match() bool {
	return d.DifferentPixels == 0
}

// Compare checks actual against expected pixel by pixel. A pixel differs
// when any channel moves by more than tolerance. Images of different sizes
// are an error.
func Compare(actual, expected image.Image, tolerance int, withMask bool) (Diff, error) {
	bounds := actual.Bounds()
	if bounds != expected.Bounds() {
		return Diff{}, fmt.Errorf("image bounds differ: actual=%v, expected=%v", bounds, expected.Bounds())
	}

	d := Diff{TotalPixels: bounds.Dx() * bounds.Dy()}
	if withMask {
		d.Mask = image.NewRGBA(bounds)
	}
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			a := color.NRGBAModel.Convert(actual.At(x, y)).(color.NRGBA)
			e := color.NRGBAModel.Convert(expected.At(x, y)).(color.NRGBA)
			delta := max(
				channelDelta(a.R, e.R),
				channelDelta(a.G, e.G),
				channelDelta(a.B, e.B),
				channelDelta(a.A, e.A),
			)
			d.MaxDifference = max(d.MaxDifference, delta)

			differs := delta > tolerance
			if differs {
				d.DifferentPixels++
			}
			if d.Mask != nil {
				if differs {
					d.Mask.Set(x, y, color.RGBA{R: 255, A: 255})
				} else {
					gray := color.GrayModel.Convert(a).(color.Gray).Y
					d.Mask.Set(x, y, color.RGBA{R: gray, G: gray, B: gray, A: 255})
				}
			}
		}
	}
	return d, nil
}

// CompareFile compares img against the PNG stored at path.
func CompareFile(img image.Image, path string, tolerance int, withMask bool) (Diff, error) {
	f, err := os.Open(path)
	if err != nil {
		return Diff{}, fmt.Errorf("failed to open reference image: %w", err)
	}
	defer f.Close()

	expected, err := png.Decode(f)
	if err != nil {
		return Diff{}, fmt.Errorf("failed to decode reference image: %w", err)
	}
	return Compare(img, expected, tolerance, withMask)
}

func channelDelta(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}
