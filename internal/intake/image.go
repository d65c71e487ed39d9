package intake

import (
	"context"
	"fmt"
	"strings"

	"github.com/Eshwarvijay007/nomadly/internal/intake/ocr"
)

// ImageExtractor runs OCR over a raster image. A fresh engine process is
// spawned per call and terminates when the call returns, on success and
// failure alike.
type ImageExtractor struct {
	runner ocr.Runner
	binary string
	lang   string
}

// NewImageExtractor creates an image extractor backed by the given runner.
// Empty binary/lang fall back to "tesseract" and "eng".
func NewImageExtractor(runner ocr.Runner, binary, lang string) *ImageExtractor {
	if runner == nil {
		runner = ocr.ExecRunner{}
	}
	if binary == "" {
		binary = "tesseract"
	}
	if lang == "" {
		lang = "eng"
	}
	return &ImageExtractor{runner: runner, binary: binary, lang: lang}
}

// SourceType identifies the extractor's output tag.
func (e *ImageExtractor) SourceType() SourceType { return SourceImage }

// Extract recognizes text over the whole image and converts it into a
// one-column table. The raw recognized text is retained verbatim on the
// table since downstream text mining benefits from the unsegmented string.
func (e *ImageExtractor) Extract(ctx context.Context, file SourceFile) (*TabularContent, error) {
	args := []string{"stdin", "stdout", "-l", e.lang}

	stdout, stderr, err := e.runner.Run(ctx, file.Data, e.binary, args...)
	if err != nil {
		msg := strings.TrimSpace(string(stderr))
		if msg == "" {
			msg = err.Error()
		}
		return nil, fmt.Errorf("OCR failed: %s", msg)
	}

	text := string(stdout)
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("No readable text found in image")
	}

	table := textToTable(text, SourceImage)
	table.OCRText = text
	return table, nil
}
