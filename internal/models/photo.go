package models

import "time"

// Photo is the metadata record for a blob held in object storage.
// StorageKey must reference a live object for the lifetime of the record:
// the blob is uploaded before the record is written, and deleted before
// the record is removed.
type Photo struct {
	ID          int       `json:"id"`
	UserID      int       `json:"user_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	StorageKey  string    `json:"storage_key"`
	SourceURL   string    `json:"source_url"`
	CreatedAt   time.Time `json:"created_at"`
}

// PhotoView is a Photo enriched with a short-lived presigned URL.
// SignedURL is null when signing failed for that photo; the photo itself
// is still returned.
type PhotoView struct {
	Photo
	SignedURL *string `json:"signedUrl"`
}
