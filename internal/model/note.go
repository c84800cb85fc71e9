package model

import "time"

// Note is a free-text secure note. Notes carry no encrypted fields.
type Note struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Text      string    `json:"text"`
	UserID    int64     `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

func (n *Note) NaturalKey() string { return n.Title }
func (n *Note) OwnerID() int64 { return n.UserID }
func (n *Note) SetOwnerID(id int64) { n.UserID = id }
func (n *Note) SealedFields() []*string { return nil }

// CreateNoteRequest is the body of POST /notes.
type CreateNoteRequest struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

func (r CreateNoteRequest) Validate() error {
	if err := name("title", r.Title); err != nil {
		return err
	}
	return required("text", r.Text)
}

func (r CreateNoteRequest) Record() *Note {
	return &Note{Title: r.Title, Text: r.Text}
}
