package dto

import (
	"bytes"
	"encoding/json"
)

// PreprocessDocument carries content as raw JSON so that non-string values can be
// reported as missing instead of failing the whole request.
type PreprocessDocument struct {
	Name    string          `json:"name" validate:"required"`
	Content json.RawMessage `json:"content" swaggertype:"string"`
}

// Text returns the content when it is a JSON string, nil otherwise.
func (d PreprocessDocument) Text() *string {
	raw := bytes.TrimSpace(d.Content)
	if len(raw) == 0 || raw[0] != '"' {
		return nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil
	}
	return &s
}

// PreprocessBudget leaves unset fields at their defaults.
type PreprocessBudget struct {
	MaxContentLength      *int  `json:"maxContentLength,omitempty" validate:"omitempty,min=1"`
	RemoveBoilerplate     *bool `json:"removeBoilerplate,omitempty"`
	ExtractKeyInfo        *bool `json:"extractKeyInfo,omitempty"`
	SummarizeLongSections *bool `json:"summarizeLongSections,omitempty"`
	KeepLegal             *bool `json:"keepLegal,omitempty"`
}

type PreprocessRequest struct {
	Documents []PreprocessDocument `json:"documents" validate:"required,dive"`
	Budget    *PreprocessBudget    `json:"budget,omitempty"`
}
