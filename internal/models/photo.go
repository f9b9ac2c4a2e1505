package models

import "time"

// Photo is the metadata row of an uploaded image. The bytes live in blob
// storage under Filename.
type Photo struct {
	ID               int64     `json:"id" db:"id"`
	Filename         string    `json:"filename" db:"filename"`
	OriginalFilename string    `json:"original_filename" db:"original_filename"`
	Description      string    `json:"description" db:"description"`
	UserID           int64     `json:"-" db:"user_id"`
	UploadedAt       time.Time `json:"uploaded_at" db:"uploaded_at"`
}
