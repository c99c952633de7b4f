package upload

import "strings"

// Violation is a single field-scoped validation defect.
type Violation struct {
	Field    string `json:"field"`
	FileName string `json:"file_name,omitempty"`
	Message  string `json:"message"`
}

// String renders the violation as "field - file: message" or
// "field: message" when no file is involved.
func (v Violation) String() string {
	if v.FileName != "" {
		return v.Field + " - " + v.FileName + ": " + v.Message
	}
	return v.Field + ": " + v.Message
}

// ValidationError carries every defect found in an upload batch.
// All problems are accumulated and reported together so a caller sees
// the full list in one response instead of fixing them one at a time.
type ValidationError struct {
	Violations []Violation
}

// Error joins all violations with newlines.
func (e *ValidationError) Error() string {
	lines := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		lines[i] = v.String()
	}
	return strings.Join(lines, "\n")
}

// add appends a violation.
func (e *ValidationError) add(field, fileName, message string) {
	e.Violations = append(e.Violations, Violation{Field: field, FileName: fileName, Message: message})
}

// orNil returns the error, or nil when no violations were recorded.
func (e *ValidationError) orNil() error {
	if len(e.Violations) == 0 {
		return nil
	}
	return e
}
