// Package pdf renders PDF documents into page images using MuPDF via go-fitz.
package pdf

import (
	"bytes"
	"fmt"
	"image"
	"os"
	"strings"

	"github.com/gen2brain/go-fitz"

	"pdf2text/internal/data"
)

// DefaultDPI matches the resolution pages were historically rendered at.
const DefaultDPI = 200

// Page is one rendered page. Number is 1-based.
type Page struct {
	Number int
	Image  image.Image
}

// Rasterizer opens PDF documents and renders their pages in order.
type Rasterizer struct {
	dpi float64
}

func NewRasterizer(dpi int) *Rasterizer {
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	return &Rasterizer{dpi: float64(dpi)}
}

// pdfMagic must appear in the first headerWindow bytes of a PDF file.
const (
	pdfMagic     = "%PDF-"
	headerWindow = 1024
)

// validate checks that path points at a readable file. The file name is
// not inspected; Open decides from the content whether it is a PDF.
func validate(path string) error {
	if strings.TrimSpace(path) == "" {
		return data.NewError(data.MissingRequiredPath, "source file path is empty", nil)
	}
	info, err := os.Stat(path)
	if err != nil {
		return data.NewError(data.DocumentReadFailure, fmt.Sprintf("cannot access %s", path), err)
	}
	if info.IsDir() {
		return data.NewError(data.DocumentReadFailure, fmt.Sprintf("%s is a directory", path), nil)
	}
	return nil
}

// Document is an open PDF. Close must be called when done.
type Document struct {
	doc  *fitz.Document
	path string
	dpi  float64
}

// Open validates and opens the PDF at path.
func (r *Rasterizer) Open(path string) (*Document, error) {
	if err := validate(path); err != nil {
		return nil, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, data.NewError(data.DocumentReadFailure, fmt.Sprintf("reading %s", path), err)
	}
	if !bytes.Contains(b[:min(len(b), headerWindow)], []byte(pdfMagic)) {
		return nil, data.NewError(data.DocumentReadFailure, fmt.Sprintf("%s is not a PDF document", path), nil)
	}
	doc, err := fitz.NewFromMemory(b)
	if err != nil {
		return nil, data.NewError(data.DocumentReadFailure, fmt.Sprintf("opening %s", path), err)
	}
	if doc.NumPage() == 0 {
		doc.Close()
		return nil, data.NewError(data.DocumentReadFailure, fmt.Sprintf("%s has no pages", path), nil)
	}
	return &Document{doc: doc, path: path, dpi: r.dpi}, nil
}

func (d *Document) NumPage() int {
	return d.doc.NumPage()
}

// Render rasterizes the 1-based page number.
func (d *Document) Render(number int) (Page, error) {
	img, err := d.doc.ImageDPI(number-1, d.dpi)
	if err != nil {
		return Page{}, data.NewError(data.DocumentReadFailure, fmt.Sprintf("rendering page %d of %s", number, d.path), err)
	}
	return Page{Number: number, Image: img}, nil
}

func (d *Document) Close() error {
	return d.doc.Close()
}
