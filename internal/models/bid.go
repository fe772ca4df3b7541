package models

import (
	"time"

	"github.com/google/uuid"
)

type Bid struct {
	ID            uuid.UUID `db:"id"`
	ProjectID     uuid.UUID `db:"project_id"`
	Contractor    string    `db:"contractor"`
	FileName      string    `db:"file_name"`
	FileSize      int64     `db:"file_size"`
	FilePath      string    `db:"file_path"`
	ContentType   string    `db:"content_type"`
	ExtractedText string    `db:"extracted_text"`
	// TotalCost is the total project cost line exactly as written in the bid, empty if none was found.
	TotalCost string    `db:"total_cost"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
