package repository

import (
	"time"

	"github.com/drivenpass/drivenpass-go/internal/model"
)

var noteSchema = Schema[*model.Note]{
	Table:     "notes",
	KeyColumn: "title",
	Columns:   []string{"title", "text", "user_id"},
	Values: func(n *model.Note) []any {
		return []any{n.Title, n.Text, n.UserID}
	},
	Scan: func(row scanner) (*model.Note, error) {
		n := &model.Note{}
		err := row.Scan(&n.ID, &n.Title, &n.Text, &n.UserID, &n.CreatedAt)
		return n, err
	},
	Stamp: func(n *model.Note, id int64, createdAt time.Time) {
		n.ID, n.CreatedAt = id, createdAt
	},
}

// NewNoteRepository creates a repository for secure notes.
func NewNoteRepository(db DBTX) *SecretRepository[*model.Note] {
	return NewSecretRepository(db, noteSchema)
}
