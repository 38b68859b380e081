package extract

import (
	"context"
	"fmt"

	"invoicedesk/internal/entity"
)

// Extractor is the document-understanding collaborator: given a file, return
// entities or fail. Implementations must not partially succeed — on error the
// entity list is discarded and the caller records the failure.
type Extractor interface {
	Extract(ctx context.Context, path string) (Result, error)
}

// Result is the ordered entity list for one document.
type Result struct {
	Entities []entity.RawEntity
}

// ExtractionError reports an upstream extraction failure: service
// unreachable, unauthenticated, or a document it could not read. The pipeline
// persists the message on an empty record instead of losing the upload.
type ExtractionError struct {
	Message string
	Cause   error
}

func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("extraction failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("extraction failed: %s", e.Message)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}
