package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/drivenpass/drivenpass-go/internal/metrics"
	"github.com/drivenpass/drivenpass-go/internal/model"
	"github.com/drivenpass/drivenpass-go/internal/repository"
)

// Store is the persistence collaborator for one secret kind.
type Store[S model.Secret] interface {
	Create(ctx context.Context, s S) error
	GetByID(ctx context.Context, id int64) (S, error)
	GetByNaturalKey(ctx context.Context, ownerID int64, key string) (S, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]S, error)
	DeleteByID(ctx context.Context, id int64) error
	DeleteAllByOwner(ctx context.Context, ownerID int64) (int64, error)
}

// Cipher seals and opens single field values.
type Cipher interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(envelope string) (string, error)
}

// VaultService enforces ownership and per-owner name uniqueness for one
// secret kind, and encrypts the kind's sealed fields at rest.
type VaultService[S model.Secret] struct {
	kind   string
	store  Store[S]
	cipher Cipher
}

// NewVaultService creates a VaultService for the named kind.
func NewVaultService[S model.Secret](kind string, store Store[S], cipher Cipher) *VaultService[S] {
	return &VaultService[S]{kind: kind, store: store, cipher: cipher}
}

// Kind returns the secret kind name used in logs and metrics.
func (v *VaultService[S]) Kind() string {
	return v.kind
}

// Create stores s for ownerID. The returned record keeps its sealed fields
// as envelopes.
func (v *VaultService[S]) Create(ctx context.Context, s S, ownerID int64) (_ S, err error) {
	defer v.observe("create", &err)

	var zero S
	_, err = v.store.GetByNaturalKey(ctx, ownerID, s.NaturalKey())
	switch {
	case err == nil:
		return zero, ErrConflict
	case !errors.Is(err, repository.ErrNotFound):
		return zero, err
	}

	for _, field := range s.SealedFields() {
		envelope, err := v.cipher.Encrypt(*field)
		if err != nil {
			return zero, fmt.Errorf("seal %s field: %w", v.kind, err)
		}
		*field = envelope
	}
	s.SetOwnerID(ownerID)

	if err = v.store.Create(ctx, s); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return zero, ErrConflict
		}
		return zero, err
	}

	slog.InfoContext(ctx, "secret created", "kind", v.kind, "user_id", ownerID)
	return s, nil
}

// ListAll returns every record of ownerID with sealed fields decrypted. An
// owner without records gets an empty slice.
func (v *VaultService[S]) ListAll(ctx context.Context, ownerID int64) (_ []S, err error) {
	defer v.observe("list", &err)

	items, err := v.store.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	for _, s := range items {
		if err = v.open(s); err != nil {
			return nil, err
		}
	}
	if items == nil {
		items = []S{}
	}
	return items, nil
}

// FindOne returns the record with id, decrypted, if ownerID owns it.
func (v *VaultService[S]) FindOne(ctx context.Context, id, ownerID int64) (_ S, err error) {
	defer v.observe("get", &err)

	var zero S
	s, err := v.owned(ctx, id, ownerID)
	if err != nil {
		return zero, err
	}
	if err = v.open(s); err != nil {
		return zero, err
	}
	return s, nil
}

// Remove deletes the record with id if ownerID owns it.
func (v *VaultService[S]) Remove(ctx context.Context, id, ownerID int64) (err error) {
	defer v.observe("delete", &err)

	if _, err = v.owned(ctx, id, ownerID); err != nil {
		return err
	}
	if err = v.store.DeleteByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	slog.InfoContext(ctx, "secret deleted", "kind", v.kind, "id", id, "user_id", ownerID)
	return nil
}

// RemoveAllForOwner deletes every record of ownerID and reports the count.
// It joins a transaction carried by ctx.
func (v *VaultService[S]) RemoveAllForOwner(ctx context.Context, ownerID int64) (int64, error) {
	n, err := v.store.DeleteAllByOwner(ctx, ownerID)
	if err != nil {
		return 0, fmt.Errorf("remove %s records: %w", v.kind, err)
	}
	return n, nil
}

func (v *VaultService[S]) owned(ctx context.Context, id, ownerID int64) (S, error) {
	var zero S
	s, err := v.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return zero, ErrNotFound
		}
		return zero, err
	}
	if s.OwnerID() != ownerID {
		return zero, ErrForbidden
	}
	return s, nil
}

func (v *VaultService[S]) open(s S) error {
	for _, field := range s.SealedFields() {
		plaintext, err := v.cipher.Decrypt(*field)
		if err != nil {
			return fmt.Errorf("open %s field: %w", v.kind, err)
		}
		*field = plaintext
	}
	return nil
}

func (v *VaultService[S]) observe(op string, errp *error) {
	metrics.VaultOperationsTotal.WithLabelValues(v.kind, op, outcome(*errp)).Inc()
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrConflict):
		return "conflict"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrForbidden):
		return "forbidden"
	case errors.Is(err, ErrInvalidCredentials):
		return "unauthorized"
	default:
		return "error"
	}
}
