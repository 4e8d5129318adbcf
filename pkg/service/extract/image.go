package extract

import (
	"bytes"
	"context"
	"image"
	"image/draw"
	"image/png"

	// Register decoders for the supported image formats
	_ "image/jpeg"

	"github.com/m-mizutani/goerr/v2"
	"github.com/otiai10/gosseract/v2"

	"github.com/swasthya-lab/swasthya/pkg/domain/types"
)

// OCREngine recognizes text in an image. Recognition is best-effort and
// may return empty text for unreadable images.
type OCREngine interface {
	Recognize(ctx context.Context, img []byte) (string, error)
}

// TesseractOCR runs optical character recognition with Tesseract
type TesseractOCR struct{}

// NewTesseractOCR creates the default OCR engine
func NewTesseractOCR() *TesseractOCR {
	return &TesseractOCR{}
}

// Recognize extracts text from the given image bytes
func (t *TesseractOCR) Recognize(ctx context.Context, img []byte) (string, error) {
	client := gosseract.NewClient()
	defer client.Close() //nolint:errcheck // client teardown only

	if err := client.SetImageFromBytes(img); err != nil {
		return "", goerr.Wrap(err, "failed to load image into OCR engine")
	}

	text, err := client.Text()
	if err != nil {
		return "", goerr.Wrap(err, "OCR recognition failed")
	}

	return text, nil
}

// extractImageText normalizes the image to a 3-channel representation and
// runs it through the OCR engine.
func (s *Service) extractImageText(ctx context.Context, data []byte) (string, error) {
	normalized, err := normalizeToRGB(data)
	if err != nil {
		return "", err
	}

	return s.ocr.Recognize(ctx, normalized)
}

// normalizeToRGB decodes the image and re-encodes it as PNG drawn onto an
// opaque RGBA canvas, stripping palettes and alpha so the OCR engine sees
// a uniform color representation.
func normalizeToRGB(data []byte) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to decode image",
			goerr.T(types.TagCorruptDocument))
	}

	bounds := src.Bounds()
	canvas := image.NewRGBA(bounds)
	draw.Draw(canvas, bounds, image.White, image.Point{}, draw.Src)
	draw.Draw(canvas, bounds, src, bounds.Min, draw.Over)

	var buf bytes.Buffer
	if err := png.Encode(&buf, canvas); err != nil {
		return nil, goerr.Wrap(err, "failed to encode normalized image")
	}

	return buf.Bytes(), nil
}
