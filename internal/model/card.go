package model

import "time"

// CardType is the kind of operations a card supports.
type CardType string

const (
	CardCredit CardType = "CREDIT"
	CardDebit  CardType = "DEBIT"
	CardHybrid CardType = "HYBRID"
)

func (t CardType) Valid() bool {
	switch t {
	case CardCredit, CardDebit, CardHybrid:
		return true
	}
	return false
}

// ExpirationLayout is the YYYY-MM-DD format of Card.ExpirationDate.
const ExpirationLayout = "2006-01-02"

// Card is a stored payment card. CVC and Password hold encrypted envelopes at rest.
type Card struct {
	ID             int64     `json:"id"`
	Label          string    `json:"label"`
	CardOwner      string    `json:"cardOwner"`
	CardNumber     string    `json:"cardNumber"`
	ExpirationDate string    `json:"expirationDate"`
	CVC            string    `json:"cvc"`
	Password       string    `json:"password"`
	Virtual        bool      `json:"virtual"`
	CardType       CardType  `json:"cardType"`
	UserID         int64     `json:"userId"`
	CreatedAt      time.Time `json:"createdAt"`
}

func (c *Card) NaturalKey() string { return c.Label }
func (c *Card) OwnerID() int64 { return c.UserID }
func (c *Card) SetOwnerID(id int64) { c.UserID = id }
func (c *Card) SealedFields() []*string { return []*string{&c.CVC, &c.Password} }

// CreateCardRequest is the body of POST /cards. Virtual is a pointer so a
// missing field can be told apart from false.
type CreateCardRequest struct {
	Label          string   `json:"label"`
	CardOwner      string   `json:"cardOwner"`
	CardNumber     string   `json:"cardNumber"`
	ExpirationDate string   `json:"expirationDate"`
	CVC            string   `json:"cvc"`
	Password       string   `json:"password"`
	Virtual        *bool    `json:"virtual"`
	CardType       CardType `json:"cardType"`
}

func (r CreateCardRequest) Validate() error {
	if err := name("label", r.Label); err != nil {
		return err
	}
	if err := name("cardOwner", r.CardOwner); err != nil {
		return err
	}
	if err := digits("cardNumber", r.CardNumber, 16); err != nil {
		return err
	}
	if err := validDate("expirationDate", r.ExpirationDate); err != nil {
		return err
	}
	if err := digits("cvc", r.CVC, 3); err != nil {
		return err
	}
	if err := digits("password", r.Password, 0); err != nil {
		return err
	}
	if r.Virtual == nil {
		return &ValidationError{Field: "virtual", Message: "is required"}
	}
	if !r.CardType.Valid() {
		return &ValidationError{Field: "cardType", Message: "must be one of CREDIT, DEBIT, HYBRID"}
	}
	return nil
}

func (r CreateCardRequest) Record() *Card {
	card := &Card{
		Label:          r.Label,
		CardOwner:      r.CardOwner,
		CardNumber:     r.CardNumber,
		ExpirationDate: r.ExpirationDate,
		CVC:            r.CVC,
		Password:       r.Password,
		CardType:       r.CardType,
	}
	if r.Virtual != nil {
		card.Virtual = *r.Virtual
	}
	return card
}

func validDate(field, value string) error {
	if err := required(field, value); err != nil {
		return err
	}
	if _, err := time.Parse(ExpirationLayout, value); err != nil {
		return &ValidationError{Field: field, Message: "must follow the YYYY-MM-DD format"}
	}
	return nil
}
