package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/drivenpass/drivenpass-go/internal/metrics"
	"github.com/drivenpass/drivenpass-go/internal/repository"
)

// PasswordVerifier checks a plaintext password against a stored hash.
type PasswordVerifier interface {
	VerifyPassword(plaintext, storedHash string) bool
}

// OwnerPurger removes every record of one kind held by an owner.
type OwnerPurger interface {
	Kind() string
	RemoveAllForOwner(ctx context.Context, ownerID int64) (int64, error)
}

// TxRunner runs fn as one all-or-nothing unit.
type TxRunner interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ErasureCoordinator irreversibly deletes an account and everything in its
// vault after the owner re-proves their password.
type ErasureCoordinator struct {
	users    UserStore
	verifier PasswordVerifier
	tx       TxRunner
	vaults   []OwnerPurger
}

// NewErasureCoordinator creates a new ErasureCoordinator over vaults.
func NewErasureCoordinator(users UserStore, verifier PasswordVerifier, tx TxRunner, vaults ...OwnerPurger) *ErasureCoordinator {
	return &ErasureCoordinator{users: users, verifier: verifier, tx: tx, vaults: vaults}
}

// EraseAccount deletes every secret of ownerID and then the user itself in a
// single transaction. A wrong password yields ErrInvalidCredentials and
// deletes nothing.
func (c *ErasureCoordinator) EraseAccount(ctx context.Context, ownerID int64, password string) (err error) {
	defer func() {
		metrics.AccountErasuresTotal.WithLabelValues(outcome(err)).Inc()
	}()

	user, err := c.users.GetByID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrInvalidCredentials
		}
		return err
	}
	if !c.verifier.VerifyPassword(password, user.PasswordHash) {
		slog.WarnContext(ctx, "erasure rejected: password mismatch", "user_id", ownerID)
		return ErrInvalidCredentials
	}

	removed := make(map[string]int64, len(c.vaults))
	err = c.tx.WithinTx(ctx, func(ctx context.Context) error {
		for _, vault := range c.vaults {
			n, err := vault.RemoveAllForOwner(ctx, ownerID)
			if err != nil {
				return err
			}
			removed[vault.Kind()] = n
		}
		if err := c.users.Delete(ctx, ownerID); err != nil {
			return fmt.Errorf("delete user: %w", err)
		}
		return nil
	})
	if err != nil {
		slog.ErrorContext(ctx, "account erasure rolled back", "user_id", ownerID, "error", err)
		return err
	}

	slog.InfoContext(ctx, "account erased", "user_id", ownerID, "removed", removed)
	return nil
}
