package constants

// Invoice record statuses (store these exact strings in DB).
const (
	StatusPendingReview    = "Pending Review"    // created, awaiting reviewer
	StatusReviewed         = "Reviewed"          // reviewer signed off
	StatusExported         = "Exported"          // exported or posted downstream
	StatusExtractionFailed = "Extraction Failed" // upstream service failed; fields empty
)
