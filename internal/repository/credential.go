package repository

import (
	"time"

	"github.com/drivenpass/drivenpass-go/internal/model"
)

var credentialSchema = Schema[*model.Credential]{
	Table:     "credentials",
	KeyColumn: "label",
	Columns:   []string{"label", "link", "username", "password", "user_id"},
	Values: func(c *model.Credential) []any {
		return []any{c.Label, c.Link, c.Username, c.Password, c.UserID}
	},
	Scan: func(row scanner) (*model.Credential, error) {
		c := &model.Credential{}
		err := row.Scan(&c.ID, &c.Label, &c.Link, &c.Username, &c.Password, &c.UserID, &c.CreatedAt)
		return c, err
	},
	Stamp: func(c *model.Credential, id int64, createdAt time.Time) {
		c.ID, c.CreatedAt = id, createdAt
	},
}

// NewCredentialRepository creates a repository for stored logins.
func NewCredentialRepository(db DBTX) *SecretRepository[*model.Credential] {
	return NewSecretRepository(db, credentialSchema)
}
