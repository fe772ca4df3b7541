package dto

type BidResponse struct {
	ID            string `json:"id"`
	ProjectID     string `json:"project_id"`
	Contractor    string `json:"contractor"`
	FileName      string `json:"file_name"`
	FileSize      int64  `json:"file_size"`
	ContentType   string `json:"content_type"`
	TotalCost     string `json:"total_cost,omitempty"`
	TextLength    int    `json:"text_length"`
	ExtractedText string `json:"extracted_text,omitempty"`
	CreatedAt     string `json:"created_at"`
}
