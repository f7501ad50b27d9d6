package main

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
)

const (
	plotMargin    = 12
	plotBarWidth  = 4
	plotBarHeight = 240
)

// writeHistogram renders the binned attribute differences as a bar chart
// PNG. Bars share a linear vertical scale against the tallest bin.
func writeHistogram(path string, counts []float64) error {
	w := 2*plotMargin + plotBarWidth*len(counts)
	h := 2*plotMargin + plotBarHeight
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}

	maxCount := 0.0
	for _, c := range counts {
		if c > maxCount {
			maxCount = c
		}
	}
	if maxCount == 0 {
		maxCount = 1
	}

	bar := color.RGBA{R: 0x2b, G: 0x5d, B: 0xa8, A: 0xff}
	axis := color.RGBA{R: 0x40, G: 0x40, B: 0x40, A: 0xff}
	baseline := plotMargin + plotBarHeight
	for i, c := range counts {
		barH := int(float64(plotBarHeight) * c / maxCount)
		x0 := plotMargin + i*plotBarWidth
		for x := x0; x < x0+plotBarWidth-1; x++ {
			for y := baseline - barH; y < baseline; y++ {
				img.Set(x, y, bar)
			}
		}
	}
	for x := plotMargin; x < w-plotMargin; x++ {
		img.Set(x, baseline, axis)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create histogram %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode histogram: %w", err)
	}
	return f.Close()
}
