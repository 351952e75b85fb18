package image

import (
	goimage "image"
	"image/color"
	"os"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gradient builds a w x h image whose red channel ramps left to right.
func gradient(w, h int) *goimage.NRGBA {
	img := goimage.NewNRGBA(goimage.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := uint8(x * 255 / (w - 1))
			img.SetNRGBA(x, y, color.NRGBA{R: v, G: 255 - v/2, B: v / 3, A: 255})
		}
	}
	return img
}

func TestBinarize_Threshold(t *testing.T) {
	// Arrange
	img := goimage.NewGray(goimage.Rect(0, 0, 3, 1))
	img.SetGray(0, 0, color.Gray{Y: 240})
	img.SetGray(1, 0, color.Gray{Y: 241})
	img.SetGray(2, 0, color.Gray{Y: 10})

	// Act
	out := Binarize(img)

	// Assert
	assert.Equal(t, color.NRGBA{A: 255}, out.NRGBAAt(0, 0), "240 is not above the threshold")
	assert.Equal(t, color.NRGBA{R: 255, G: 255, B: 255, A: 255}, out.NRGBAAt(1, 0))
	assert.Equal(t, color.NRGBA{A: 255}, out.NRGBAAt(2, 0))
}

func TestBinarize_Idempotent(t *testing.T) {
	once := Binarize(imaging.Grayscale(gradient(64, 8)))
	twice := Binarize(imaging.Grayscale(once))

	assert.Equal(t, once.Pix, twice.Pix)
}

func TestPreprocess_UpscalesAndBinarizes(t *testing.T) {
	// Arrange
	ip := NewImageProcessor("")
	src := gradient(40, 10)

	// Act
	out := ip.Preprocess(src)

	// Assert
	assert.Equal(t, 40*UpscaleFactor, out.Bounds().Dx())
	assert.Equal(t, 10*UpscaleFactor, out.Bounds().Dy())
	assert.True(t, IsBinary(out))
}

func TestPreprocess_StableOnBinarizedInput(t *testing.T) {
	ip := NewImageProcessor("")
	first := ip.Preprocess(gradient(32, 4))

	again := Binarize(imaging.Grayscale(first))

	assert.Equal(t, first.Pix, again.Pix)
}

func TestSavePageAndCleanup(t *testing.T) {
	// Arrange
	ip := NewImageProcessor(t.TempDir())

	// Act
	path, err := ip.SavePage(gradient(8, 8), 7)
	require.NoError(t, err)

	// Assert
	decoded, err := imaging.Open(path)
	require.NoError(t, err)
	assert.Equal(t, 8, decoded.Bounds().Dx())

	require.NoError(t, ip.Cleanup(path))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestSavePage_InvalidDir(t *testing.T) {
	ip := NewImageProcessor("/nonexistent/dir/for/pages")

	_, err := ip.SavePage(gradient(2, 2), 1)

	assert.Error(t, err)
}
