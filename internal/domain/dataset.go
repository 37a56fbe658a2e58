package domain

import (
	"time"

	"github.com/google/uuid"
)

// Dataset is the persisted record of one uploaded spreadsheet/CSV file:
// its parsed rows plus metadata. StoredName addresses the binary file in
// the content directory and is never exposed to clients.
type Dataset struct {
	ID           uuid.UUID `db:"id"            json:"id"`
	Name         string    `db:"name"          json:"name"`
	OriginalName string    `db:"original_name" json:"originalName"`
	StoredName   string    `db:"stored_name"   json:"-"`
	OwnerID      uuid.UUID `db:"owner_id"      json:"owner"`
	Rows         []Row     `db:"rows"          json:"rows"`
	Columns      []string  `db:"columns"       json:"columns"`
	RowCount     int       `db:"row_count"     json:"rowCount"`
	Status       Status    `db:"status"        json:"status"`
	CreatedAt    time.Time `db:"created_at"    json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at"    json:"updatedAt"`
}
