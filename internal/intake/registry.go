package intake

import (
	"context"

	"github.com/Eshwarvijay007/nomadly/internal/intake/ocr"
)

// Extractor turns raw file bytes into tabular content for one source type.
// Extractors fail by returning an error, never by returning partial content.
type Extractor interface {
	SourceType() SourceType
	Extract(ctx context.Context, file SourceFile) (*TabularContent, error)
}

// Registry maps normalized file extensions to extractors. The mapping is
// fixed at construction time; format logic lives with each extractor rather
// than in scattered conditionals.
type Registry struct {
	byExtension map[string]Extractor
}

// RegistryConfig carries the knobs the extractors need.
type RegistryConfig struct {
	OCRRunner ocr.Runner
	OCRBinary string
	OCRLang   string
}

// NewRegistry builds the registry covering every configured format.
func NewRegistry(cfg RegistryConfig) *Registry {
	csvEx := NewCSVExtractor()
	sheetEx := NewSpreadsheetExtractor()
	jsonEx := NewJSONExtractor()
	pdfEx := NewPDFExtractor()
	imageEx := NewImageExtractor(cfg.OCRRunner, cfg.OCRBinary, cfg.OCRLang)
	textEx := NewTextExtractor()

	return &Registry{
		byExtension: map[string]Extractor{
			"csv":  csvEx,
			"xlsx": sheetEx,
			"xls":  sheetEx,
			"json": jsonEx,
			"pdf":  pdfEx,
			"png":  imageEx,
			"jpg":  imageEx,
			"jpeg": imageEx,
			"txt":  textEx,
		},
	}
}

// ForExtension returns the extractor registered for a normalized extension.
func (r *Registry) ForExtension(ext string) (Extractor, bool) {
	e, ok := r.byExtension[NormalizeExt(ext)]
	return e, ok
}

// Extensions returns the registered extensions, for diagnostics.
func (r *Registry) Extensions() []string {
	exts := make([]string, 0, len(r.byExtension))
	for ext := range r.byExtension {
		exts = append(exts, ext)
	}
	return exts
}
