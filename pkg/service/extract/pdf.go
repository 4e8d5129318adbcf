package extract

import (
	"bytes"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/m-mizutani/goerr/v2"

	"github.com/swasthya-lab/swasthya/pkg/domain/types"
)

// extractPDFText concatenates the plain text of all pages in page order,
// with no separator. Pages without extractable text contribute nothing.
func extractPDFText(data []byte) (text string, err error) {
	// The pdf library panics on some malformed files instead of
	// returning an error.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = goerr.New("invalid or corrupted PDF file",
				goerr.T(types.TagCorruptDocument),
				goerr.V("panic", r))
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", goerr.Wrap(err, "invalid or corrupted PDF file",
			goerr.T(types.TagCorruptDocument))
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		pageText, err := page.GetPlainText(nil)
		if err != nil {
			// Skip unreadable pages, matching the per-page best-effort
			// behavior of the extraction contract
			continue
		}
		sb.WriteString(pageText)
	}

	return sb.String(), nil
}
