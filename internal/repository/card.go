package repository

import (
	"time"

	"github.com/drivenpass/drivenpass-go/internal/model"
)

var cardSchema = Schema[*model.Card]{
	Table:     "cards",
	KeyColumn: "label",
	Columns: []string{
		"label", "card_owner", "card_number", "expiration_date",
		"cvc", "password", "is_virtual", "card_type", "user_id",
	},
	Values: func(c *model.Card) []any {
		return []any{
			c.Label, c.CardOwner, c.CardNumber, c.ExpirationDate,
			c.CVC, c.Password, c.Virtual, string(c.CardType), c.UserID,
		}
	},
	Scan: func(row scanner) (*model.Card, error) {
		c := &model.Card{}
		err := row.Scan(
			&c.ID, &c.Label, &c.CardOwner, &c.CardNumber, &c.ExpirationDate,
			&c.CVC, &c.Password, &c.Virtual, &c.CardType, &c.UserID, &c.CreatedAt,
		)
		return c, err
	},
	Stamp: func(c *model.Card, id int64, createdAt time.Time) {
		c.ID, c.CreatedAt = id, createdAt
	},
}

// NewCardRepository creates a repository for payment cards.
func NewCardRepository(db DBTX) *SecretRepository[*model.Card] {
	return NewSecretRepository(db, cardSchema)
}
