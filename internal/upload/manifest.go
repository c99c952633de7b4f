// Package upload validates sticker upload batches: the JSON manifest
// describing the batch and the uploaded file set it must match.
package upload

import (
	"encoding/json/v2"
	"fmt"
	"strings"
)

// Default limits for upload batches.
const (
	DefaultManifestMaxBytes = 10 << 10 // 10 KiB
	DefaultFileMaxBytes     = 1 << 20  // 1 MiB
	DefaultMinFiles         = 16
	DefaultMaxFiles         = 60
)

// illegalNameChars are rejected anywhere in a declared or uploaded
// file name. The set matches characters forbidden by common filesystems.
const illegalNameChars = `<>:"/\|?*`

// Record is one manifest entry: a file name and the tags to attach to
// the sticker ingested from that file.
type Record struct {
	FileName string   `json:"file_name"`
	Tags     []string `json:"tags,omitempty"`
}

// ParseManifest parses and validates a manifest blob.
// The manifest must be a non-empty JSON array of objects, each with a
// non-empty legal file_name and an optional tags array of strings.
// Records are returned in manifest order. All record-level defects are
// accumulated into a single *ValidationError.
func ParseManifest(data []byte, maxBytes int64) ([]Record, error) {
	verr := &ValidationError{}

	if int64(len(data)) > maxBytes {
		verr.add("record", "", fmt.Sprintf("manifest exceeds size limit: %d bytes > %d bytes", len(data), maxBytes))
		return nil, verr
	}

	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		verr.add("record", "", "manifest is not valid JSON")
		return nil, verr
	}

	entries, ok := raw.([]any)
	if !ok {
		verr.add("record", "", "manifest must be a JSON array of objects")
		return nil, verr
	}
	if len(entries) == 0 {
		verr.add("record", "", "manifest must not be empty")
		return nil, verr
	}

	records := make([]Record, 0, len(entries))
	for i, entry := range entries {
		obj, ok := entry.(map[string]any)
		if !ok {
			verr.add("record", "", fmt.Sprintf("entry %d: must be an object", i))
			continue
		}

		rec := Record{}

		name, ok := obj["file_name"].(string)
		if !ok || name == "" {
			verr.add("record", "", fmt.Sprintf("entry %d: file_name must be a non-empty string", i))
		} else if strings.ContainsAny(name, illegalNameChars) {
			verr.add("record", name, fmt.Sprintf("file_name contains illegal characters (%s)", illegalNameChars))
		} else {
			rec.FileName = name
		}

		if rawTags, present := obj["tags"]; present {
			tags, ok := rawTags.([]any)
			if !ok {
				verr.add("record", rec.FileName, fmt.Sprintf("entry %d: tags must be an array of strings", i))
			} else {
				for _, t := range tags {
					tag, ok := t.(string)
					if !ok {
						verr.add("record", rec.FileName, fmt.Sprintf("entry %d: tags must contain only strings", i))
						break
					}
					rec.Tags = append(rec.Tags, tag)
				}
			}
		}

		records = append(records, rec)
	}

	if err := verr.orNil(); err != nil {
		return nil, err
	}
	return records, nil
}
