package intake

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultMaxFileSize limits uploads to 10 MiB.
const DefaultMaxFileSize = 10 * 1024 * 1024

// DefaultFormats returns the configured set of acceptable input kinds.
// The order is the order extensions are listed in validation messages.
func DefaultFormats() []FormatDescriptor {
	return []FormatDescriptor{
		{Extension: "csv", MIMEType: "text/csv"},
		{Extension: "xlsx", MIMEType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"},
		{Extension: "xls", MIMEType: "application/vnd.ms-excel"},
		{Extension: "json", MIMEType: "application/json"},
		{Extension: "pdf", MIMEType: "application/pdf"},
		{Extension: "png", MIMEType: "image/png"},
		{Extension: "jpg", MIMEType: "image/jpeg"},
		{Extension: "jpeg", MIMEType: "image/jpeg"},
		{Extension: "txt", MIMEType: "text/plain"},
	}
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// extensionList renders the configured extensions for user-facing messages.
func extensionList(formats []FormatDescriptor) string {
	exts := make([]string, 0, len(formats))
	for _, f := range formats {
		exts = append(exts, f.Extension)
	}
	return strings.Join(exts, ", ")
}

// humanSizeMB formats a byte count in megabytes with two decimal places.
func humanSizeMB(size int64) string {
	return fmt.Sprintf("%.2f MB", float64(size)/(1024*1024))
}

// mimeByExtension maps normalized extensions to MIME types for files loaded
// from disk, where no browser-supplied type exists.
func mimeByExtension(ext string) string {
	for _, f := range DefaultFormats() {
		if f.Extension == ext {
			return f.MIMEType
		}
	}
	return "application/octet-stream"
}

// LoadSourceFile reads a file from disk into a SourceFile. Used by the CLI
// and MCP entry points; the upload layer constructs SourceFiles directly.
func LoadSourceFile(path string) (SourceFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return SourceFile{}, fmt.Errorf("cannot access file: %w", err)
	}
	if info.IsDir() {
		return SourceFile{}, fmt.Errorf("path is a directory, not a file: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return SourceFile{}, fmt.Errorf("cannot read file: %w", err)
	}

	name := filepath.Base(path)
	return SourceFile{
		Name:         name,
		MIMEType:     mimeByExtension(NormalizeExt(filepath.Ext(name))),
		Size:         info.Size(),
		LastModified: info.ModTime(),
		Data:         data,
	}, nil
}
