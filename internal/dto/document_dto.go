package dto

type IndexDocumentRequest struct {
	Title    string                 `json:"title" validate:"required,max=500"`
	Content  string                 `json:"content" validate:"required"`
	Metadata map[string]interface{} `json:"metadata"`
}

type IndexDocumentResponse struct {
	Source string `json:"source"`
	Queued bool   `json:"queued"`
}

// PublishIndexDocumentMessage is the queue payload for one document.
type PublishIndexDocumentMessage struct {
	Source   string                 `json:"source"`
	Content  string                 `json:"content"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}
