package model

// Secret is a record kind held in a user's vault. Implemented by *Credential,
// *Card and *Note.
type Secret interface {
	// NaturalKey is the per-owner unique name of the record (label or title).
	NaturalKey() string
	OwnerID() int64
	SetOwnerID(id int64)
	// SealedFields points at the fields stored as encrypted envelopes.
	SealedFields() []*string
}
