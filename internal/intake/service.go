// Package intake normalizes heterogeneous upload formats into a single
// tabular shape for downstream metadata inference.
package intake

import (
	"context"
	"fmt"
	"strings"
)

// Service orchestrates validation, extractor dispatch and result assembly.
// Parse never returns an error or panics across its boundary; every failure
// path is converted into a tagged ParseOutcome.
type Service struct {
	validator *Validator
	registry  *Registry
}

// ServiceConfig configures a parse service.
type ServiceConfig struct {
	MaxFileSize int64
	Formats     []FormatDescriptor
	Registry    RegistryConfig
}

// NewService creates a parse service with the given configuration.
func NewService(cfg ServiceConfig) *Service {
	return &Service{
		validator: NewValidator(cfg.MaxFileSize, cfg.Formats),
		registry:  NewRegistry(cfg.Registry),
	}
}

// Validator exposes the service's validator for pre-flight checks.
func (s *Service) Validator() *Validator {
	return s.validator
}

// Parse validates the file, dispatches it to the extractor matching its
// extension, and wraps the extracted content with file-level metadata.
func (s *Service) Parse(ctx context.Context, file SourceFile) (outcome ParseOutcome) {
	defer func() {
		if r := recover(); r != nil {
			outcome = ParseOutcome{Failure: &ParseFailure{
				Code:    ErrCodeParse,
				Message: fmt.Sprintf("Unknown parsing error: %v", r),
			}}
		}
	}()

	validation := s.validator.Validate(file)
	if !validation.Valid {
		return ParseOutcome{Failure: &ParseFailure{
			Code:    ErrCodeValidation,
			Message: strings.Join(validation.Errors, "; "),
			Details: validation.Errors,
		}}
	}

	extractor, ok := s.registry.ForExtension(file.Extension())
	if !ok {
		// A file can pass validation on MIME type or predicate alone, so an
		// unregistered extension is still reachable here.
		return ParseOutcome{Failure: &ParseFailure{
			Code:    ErrCodeParse,
			Message: fmt.Sprintf("No extractor registered for extension %q", file.Extension()),
		}}
	}

	content, err := extractor.Extract(ctx, file)
	if err != nil {
		msg := err.Error()
		if msg == "" {
			msg = "Unknown parsing error"
		}
		return ParseOutcome{Failure: &ParseFailure{
			Code:    ErrCodeParse,
			Message: msg,
		}}
	}

	// File metadata is read directly off the input, never inferred from
	// extracted content.
	return ParseOutcome{Content: &ContentEnvelope{
		Raw: content,
		Metadata: FileMetadata{
			Name:         file.Name,
			Size:         file.Size,
			MIMEType:     file.MIMEType,
			LastModified: file.LastModified,
		},
	}}
}
