package extract

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/m-mizutani/goerr/v2"

	"github.com/swasthya-lab/swasthya/pkg/domain/interfaces"
	"github.com/swasthya-lab/swasthya/pkg/domain/types"
)

// Service normalizes uploaded documents into text. One dispatch table
// serves every upload flow; the modality is picked from the filename
// suffix.
type Service struct {
	ocr OCREngine
}

// Option is a functional option for Service configuration
type Option func(*Service)

// WithOCR replaces the OCR engine (tests use a stub)
func WithOCR(ocr OCREngine) Option {
	return func(s *Service) {
		s.ocr = ocr
	}
}

// New creates an extraction service. The default OCR engine is Tesseract.
func New(opts ...Option) *Service {
	s := &Service{
		ocr: NewTesseractOCR(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ interfaces.Extractor = &Service{}

// modalityForSuffix maps a lowercased filename suffix to its modality
var modalityForSuffix = map[string]types.Modality{
	".pdf":  types.ModalityPDF,
	".png":  types.ModalityImage,
	".jpg":  types.ModalityImage,
	".jpeg": types.ModalityImage,
}

// Extract turns document bytes into text. Whitespace-only extractions are
// rejected here so that nothing downstream ever persists an empty record.
func (s *Service) Extract(ctx context.Context, filename string, data []byte) (*interfaces.Extraction, error) {
	suffix := strings.ToLower(filepath.Ext(filename))
	modality, ok := modalityForSuffix[suffix]
	if !ok {
		return nil, goerr.New("unsupported file format",
			goerr.T(types.TagUnsupportedFormat),
			goerr.V("filename", filename),
			goerr.V("suffix", suffix))
	}

	var text string
	var err error
	switch modality {
	case types.ModalityPDF:
		text, err = extractPDFText(data)
	case types.ModalityImage:
		text, err = s.extractImageText(ctx, data)
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to extract text",
			goerr.V("filename", filename),
			goerr.V("modality", modality))
	}

	if strings.TrimSpace(text) == "" {
		return nil, goerr.New("no readable text found in document",
			goerr.T(types.TagEmptyExtraction),
			goerr.V("filename", filename),
			goerr.V("modality", modality))
	}

	return &interfaces.Extraction{
		Text:     text,
		Modality: modality,
	}, nil
}
