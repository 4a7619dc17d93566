package domain

import (
	"fmt"
	"path/filepath"
	"strings"
)

// DocType names one of the two downloadable documents.
type DocType string

const (
	DocResume DocType = "resume"
	DocCV     DocType = "cv"
)

// DocTypes lists the document slots in display order.
var DocTypes = []DocType{DocResume, DocCV}

// ParseDocType validates a user-supplied document type.
func ParseDocType(s string) (DocType, error) {
	switch t := DocType(strings.ToLower(strings.TrimSpace(s))); t {
	case DocResume, DocCV:
		return t, nil
	default:
		return "", fmt.Errorf("document type must be %q or %q, got %q", DocResume, DocCV, s)
	}
}

// ResumeFiles reports which documents are currently uploaded.
// A nil field means the slot is empty.
type ResumeFiles struct {
	Resume *string `json:"resume"`
	CV     *string `json:"cv"`
}

// Has returns true if a document of type t is uploaded.
func (f ResumeFiles) Has(t DocType) bool {
	switch t {
	case DocResume:
		return f.Resume != nil
	case DocCV:
		return f.CV != nil
	}
	return false
}

// UploadResult is the backend's acknowledgement of a document upload.
type UploadResult struct {
	Message  string  `json:"message"`
	Filename string  `json:"filename"`
	Type     DocType `json:"type"`
}

// ValidatePDFName rejects anything the backend would refuse as non-PDF.
func ValidatePDFName(name string) error {
	if !strings.HasSuffix(name, ".pdf") {
		return fmt.Errorf("only PDF files are allowed: %s", filepath.Base(name))
	}
	return nil
}
