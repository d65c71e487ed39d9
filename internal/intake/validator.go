package intake

import (
	"fmt"
)

// Validator checks candidate files against the configured size and format
// constraints before any parsing is attempted.
type Validator struct {
	maxFileSize int64
	formats     []FormatDescriptor
}

// NewValidator creates a new validator with the specified constraints.
func NewValidator(maxFileSize int64, formats []FormatDescriptor) *Validator {
	if maxFileSize <= 0 {
		maxFileSize = DefaultMaxFileSize
	}
	if len(formats) == 0 {
		formats = DefaultFormats()
	}
	return &Validator{
		maxFileSize: maxFileSize,
		formats:     formats,
	}
}

// Validate runs every applicable check and accumulates all failures into a
// single outcome. It is a pure function of the file and the configured
// format list; no check short-circuits the others.
func (v *Validator) Validate(file SourceFile) ValidationOutcome {
	outcome := ValidationOutcome{Valid: true}

	if file.Size > v.maxFileSize {
		outcome.Valid = false
		outcome.Errors = append(outcome.Errors,
			fmt.Sprintf("File size %s exceeds the maximum allowed size of %s",
				humanSizeMB(file.Size), humanSizeMB(v.maxFileSize)))
	}

	if file.Size == 0 {
		outcome.Valid = false
		outcome.Errors = append(outcome.Errors, "File is empty")
	}

	if !v.formatAccepted(file) {
		outcome.Valid = false
		outcome.Errors = append(outcome.Errors,
			fmt.Sprintf("File format not supported. Accepted formats: %s",
				extensionList(v.formats)))
	}

	return outcome
}

// formatAccepted reports whether any configured descriptor accepts the file.
// A descriptor accepts on extension match, MIME type match, or a custom
// predicate returning true; any one is sufficient.
func (v *Validator) formatAccepted(file SourceFile) bool {
	ext := file.Extension()
	for _, f := range v.formats {
		if ext != "" && f.Extension == ext {
			return true
		}
		if f.MIMEType != "" && f.MIMEType == file.MIMEType {
			return true
		}
		if f.Accept != nil && f.Accept(file) {
			return true
		}
	}
	return false
}

// MaxFileSize returns the configured file size limit in bytes.
func (v *Validator) MaxFileSize() int64 {
	return v.maxFileSize
}
