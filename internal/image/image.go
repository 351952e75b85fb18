package image

import (
	"fmt"
	goimage "image"
	"image/color"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
)

const (
	// UpscaleFactor is applied to both dimensions before thresholding.
	UpscaleFactor = 3
	// Threshold is the greyscale intensity a pixel must exceed to stay white.
	Threshold = 240
)

type ImageProcessor struct {
	tempDir string
}

// NewImageProcessor returns a processor that writes page files under tempDir.
// An empty tempDir uses the system default.
func NewImageProcessor(tempDir string) *ImageProcessor {
	return &ImageProcessor{tempDir: tempDir}
}

// Preprocess greyscales, upscales 3x with bicubic interpolation and binarizes.
func (ip *ImageProcessor) Preprocess(img goimage.Image) *goimage.NRGBA {
	bounds := img.Bounds()
	gray := imaging.Grayscale(img)
	big := imaging.Resize(gray, bounds.Dx()*UpscaleFactor, bounds.Dy()*UpscaleFactor, imaging.CatmullRom)
	return Binarize(big)
}

// Binarize maps every pixel with luminance above Threshold to white and the rest to black.
func Binarize(img goimage.Image) *goimage.NRGBA {
	return imaging.AdjustFunc(img, func(c color.NRGBA) color.NRGBA {
		y := color.GrayModel.Convert(color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255}).(color.Gray).Y
		if y > Threshold {
			return color.NRGBA{R: 255, G: 255, B: 255, A: c.A}
		}
		return color.NRGBA{A: c.A}
	})
}

// IsBinary reports whether every pixel is pure black or pure white.
func IsBinary(img goimage.Image) bool {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			g := color.GrayModel.Convert(img.At(x, y)).(color.Gray).Y
			if g != 0 && g != 255 {
				return false
			}
		}
	}
	return true
}

// SavePage writes a page raster as PNG and returns the file path.
func (ip *ImageProcessor) SavePage(img goimage.Image, page int) (string, error) {
	f, err := os.CreateTemp(ip.tempDir, fmt.Sprintf("page_%03d_*.png", page))
	if err != nil {
		return "", fmt.Errorf("creating page file: %w", err)
	}
	path := f.Name()
	f.Close()

	if err := imaging.Save(img, path); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("saving page %d image: %w", page, err)
	}
	return filepath.Clean(path), nil
}

func (ip *ImageProcessor) Cleanup(filePath string) error {
	return os.Remove(filePath)
}
