package upload

import (
	"bytes"
	"fmt"
	"strings"
)

// pngSignature is the 8-byte magic number every PNG file starts with.
var pngSignature = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}

// File is one uploaded image as received from the multipart form.
type File struct {
	Name        string
	Size        int64
	ContentType string
	Data        []byte
}

// Limits bounds an upload batch. Zero values fall back to the package
// defaults.
type Limits struct {
	MinFiles     int
	MaxFiles     int
	MaxFileBytes int64
}

func (l Limits) withDefaults() Limits {
	if l.MinFiles == 0 {
		l.MinFiles = DefaultMinFiles
	}
	if l.MaxFiles == 0 {
		l.MaxFiles = DefaultMaxFiles
	}
	if l.MaxFileBytes == 0 {
		l.MaxFileBytes = DefaultFileMaxBytes
	}
	return l
}

// IsPNG reports whether data starts with the PNG signature.
func IsPNG(data []byte) bool {
	return len(data) >= len(pngSignature) && bytes.Equal(data[:len(pngSignature)], pngSignature)
}

// ValidateFiles checks every uploaded file against the batch limits and
// verifies the file set is in bijection with the manifest's declared
// file names: no orphan files, no missing files. Per-file checks:
//   - file count within [MinFiles, MaxFiles]
//   - no duplicate names, no empty or illegal names
//   - size at most MaxFileBytes
//   - declared content type image/png AND leading PNG signature;
//     either failing rejects the file
//
// All defects are accumulated into a single *ValidationError.
func ValidateFiles(files []File, records []Record, limits Limits) error {
	limits = limits.withDefaults()
	verr := &ValidationError{}

	if len(files) < limits.MinFiles || len(files) > limits.MaxFiles {
		verr.add("files", "", fmt.Sprintf("file count %d outside allowed range [%d, %d]", len(files), limits.MinFiles, limits.MaxFiles))
	}

	seen := make(map[string]bool, len(files))
	for _, f := range files {
		if f.Name == "" {
			verr.add("files", "", "file name must not be empty")
			continue
		}
		if strings.ContainsAny(f.Name, illegalNameChars) {
			verr.add("files", f.Name, fmt.Sprintf("file name contains illegal characters (%s)", illegalNameChars))
		}
		if seen[f.Name] {
			verr.add("files", f.Name, "duplicate file name")
		}
		seen[f.Name] = true

		if f.Size > limits.MaxFileBytes {
			verr.add("files", f.Name, fmt.Sprintf("file exceeds size limit: %d bytes > %d bytes", f.Size, limits.MaxFileBytes))
		}
		if f.ContentType != "image/png" || !IsPNG(f.Data) {
			verr.add("files", f.Name, "not a valid PNG file")
		}
	}

	// Bijection against the manifest: every declared name must have a
	// file and every file must have a record.
	declared := make(map[string]bool, len(records))
	for _, rec := range records {
		declared[rec.FileName] = true
		if !seen[rec.FileName] {
			verr.add("record", rec.FileName, "declared in manifest but no matching file uploaded")
		}
	}
	for _, f := range files {
		if f.Name != "" && !declared[f.Name] {
			verr.add("files", f.Name, "uploaded but not declared in manifest")
		}
	}

	return verr.orNil()
}
