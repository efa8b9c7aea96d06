package domain

// UploadedFile is one image part of an inbound multipart request, fully read
// into memory before any network I/O starts.
type UploadedFile struct {
	OriginalName string
	ContentType  string
	Size         int64
	Data         []byte
}

// UploadRequest is the request-scoped input to case study generation. Nothing
// in it outlives the HTTP exchange that produced it.
type UploadRequest struct {
	Files          []UploadedFile
	ThoughtProcess string
	ResultAchieved string
}

// CaseStudyResult is the sole success response body. ImageURLs preserves the
// upload order of the request's files.
type CaseStudyResult struct {
	ImageURLs     []string `json:"imageUrls"`
	CaseStudyText string   `json:"caseStudyText"`
}

// ErrorResult is the sole failure response body on every error path.
type ErrorResult struct {
	Error string `json:"error"`
}
