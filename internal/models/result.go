package models

// InsertResult reports the affected-row count of an INSERT and the generated id.
// ID is only meaningful when Inserted > 0.
type InsertResult struct {
	Inserted int64 `json:"inserted"`
	ID       int64 `json:"id"`
}

// UpdateResult reports rows matched by an UPDATE. Zero means not found or no-op.
type UpdateResult struct {
	Updated int64 `json:"updated"`
}

// DeleteResult reports rows removed by a DELETE.
type DeleteResult struct {
	Deleted int64 `json:"deleted"`
}
