package model

import (
	"net/url"
	"time"
)

// Credential is a stored login for an external site. Password holds an
// encrypted envelope at rest.
type Credential struct {
	ID        int64     `json:"id"`
	Label     string    `json:"label"`
	Link      string    `json:"link"`
	Username  string    `json:"username"`
	Password  string    `json:"password"`
	UserID    int64     `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

func (c *Credential) NaturalKey() string { return c.Label }
func (c *Credential) OwnerID() int64 { return c.UserID }
func (c *Credential) SetOwnerID(id int64) { c.UserID = id }
func (c *Credential) SealedFields() []*string { return []*string{&c.Password} }

// CreateCredentialRequest is the body of POST /credentials.
type CreateCredentialRequest struct {
	Label    string `json:"label"`
	Link     string `json:"link"`
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r CreateCredentialRequest) Validate() error {
	if err := name("label", r.Label); err != nil {
		return err
	}
	if err := validURL("link", r.Link); err != nil {
		return err
	}
	if err := name("username", r.Username); err != nil {
		return err
	}
	return required("password", r.Password)
}

func (r CreateCredentialRequest) Record() *Credential {
	return &Credential{
		Label:    r.Label,
		Link:     r.Link,
		Username: r.Username,
		Password: r.Password,
	}
}

func validURL(field, value string) error {
	if err := required(field, value); err != nil {
		return err
	}
	u, err := url.Parse(value)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return &ValidationError{Field: field, Message: "must be a valid URL"}
	}
	return nil
}
