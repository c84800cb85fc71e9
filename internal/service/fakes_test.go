package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/drivenpass/drivenpass-go/internal/crypto"
	"github.com/drivenpass/drivenpass-go/internal/model"
	"github.com/drivenpass/drivenpass-go/internal/repository"
)

var testHashParams = crypto.HashParams{Memory: 8 * 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32}

func fastHash(password string) (string, error) {
	return crypto.HashPasswordWith(password, testHashParams)
}

// memStore is an in-memory Store that enforces per-owner key uniqueness and
// hands out copies so callers never alias stored rows.
type memStore[S model.Secret] struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]S
	clone  func(S) S
	idOf   func(S) int64
	stamp  func(S, int64)

	failPurge error
}

func newMemStore[S model.Secret](clone func(S) S, idOf func(S) int64, stamp func(S, int64)) *memStore[S] {
	return &memStore[S]{rows: map[int64]S{}, clone: clone, idOf: idOf, stamp: stamp}
}

func newCredentialStore() *memStore[*model.Credential] {
	return newMemStore(
		func(c *model.Credential) *model.Credential { cp := *c; return &cp },
		func(c *model.Credential) int64 { return c.ID },
		func(c *model.Credential, id int64) { c.ID, c.CreatedAt = id, time.Now().UTC() },
	)
}

func newCardStore() *memStore[*model.Card] {
	return newMemStore(
		func(c *model.Card) *model.Card { cp := *c; return &cp },
		func(c *model.Card) int64 { return c.ID },
		func(c *model.Card, id int64) { c.ID, c.CreatedAt = id, time.Now().UTC() },
	)
}

func newNoteStore() *memStore[*model.Note] {
	return newMemStore(
		func(n *model.Note) *model.Note { cp := *n; return &cp },
		func(n *model.Note) int64 { return n.ID },
		func(n *model.Note, id int64) { n.ID, n.CreatedAt = id, time.Now().UTC() },
	)
}

func (m *memStore[S]) Create(_ context.Context, s S) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, row := range m.rows {
		if row.OwnerID() == s.OwnerID() && row.NaturalKey() == s.NaturalKey() {
			return repository.ErrDuplicate
		}
	}
	m.nextID++
	m.stamp(s, m.nextID)
	m.rows[m.nextID] = m.clone(s)
	return nil
}

func (m *memStore[S]) GetByID(_ context.Context, id int64) (S, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.rows[id]
	if !ok {
		var zero S
		return zero, repository.ErrNotFound
	}
	return m.clone(row), nil
}

func (m *memStore[S]) GetByNaturalKey(_ context.Context, ownerID int64, key string) (S, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, row := range m.rows {
		if row.OwnerID() == ownerID && row.NaturalKey() == key {
			return m.clone(row), nil
		}
	}
	var zero S
	return zero, repository.ErrNotFound
}

func (m *memStore[S]) ListByOwner(_ context.Context, ownerID int64) ([]S, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var items []S
	for _, row := range m.rows {
		if row.OwnerID() == ownerID {
			items = append(items, m.clone(row))
		}
	}
	sort.Slice(items, func(i, j int) bool { return m.idOf(items[i]) < m.idOf(items[j]) })
	return items, nil
}

func (m *memStore[S]) DeleteByID(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.rows, id)
	return nil
}

func (m *memStore[S]) DeleteAllByOwner(_ context.Context, ownerID int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failPurge != nil {
		return 0, m.failPurge
	}
	var n int64
	for id, row := range m.rows {
		if row.OwnerID() == ownerID {
			delete(m.rows, id)
			n++
		}
	}
	return n, nil
}

// raw returns the stored row without decrypting it.
func (m *memStore[S]) raw(id int64) S {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rows[id]
}

func (m *memStore[S]) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows)
}

func (m *memStore[S]) snapshot() func() {
	m.mu.Lock()
	defer m.mu.Unlock()
	saved := make(map[int64]S, len(m.rows))
	for id, row := range m.rows {
		saved[id] = m.clone(row)
	}
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.rows = saved
	}
}

type memUsers struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]model.User

	failDelete error
}

func newMemUsers() *memUsers {
	return &memUsers{rows: map[int64]model.User{}}
}

func (m *memUsers) Create(_ context.Context, user *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.rows {
		if u.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}
	m.nextID++
	user.ID = m.nextID
	user.CreatedAt = time.Now().UTC()
	m.rows[user.ID] = *user
	return nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.rows {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (m *memUsers) GetByID(_ context.Context, id int64) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.rows[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return &u, nil
}

func (m *memUsers) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failDelete != nil {
		return m.failDelete
	}
	if _, ok := m.rows[id]; !ok {
		return repository.ErrUserNotFound
	}
	delete(m.rows, id)
	return nil
}

func (m *memUsers) snapshot() func() {
	m.mu.Lock()
	defer m.mu.Unlock()
	saved := make(map[int64]model.User, len(m.rows))
	for id, u := range m.rows {
		saved[id] = u
	}
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.rows = saved
	}
}

type snapshotter interface {
	snapshot() func()
}

// memTx restores every participating store when fn fails.
type memTx struct {
	stores []snapshotter
}

func (t *memTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	restores := make([]func(), 0, len(t.stores))
	for _, s := range t.stores {
		restores = append(restores, s.snapshot())
	}
	if err := fn(ctx); err != nil {
		for _, restore := range restores {
			restore()
		}
		return err
	}
	return nil
}

// vaultFixture wires the three vaults, the identity stores and a real codec.
type vaultFixture struct {
	users       *memUsers
	credStore   *memStore[*model.Credential]
	cardStore   *memStore[*model.Card]
	noteStore   *memStore[*model.Note]
	credentials *VaultService[*model.Credential]
	cards       *VaultService[*model.Card]
	notes       *VaultService[*model.Note]
	gate        *IdentityGate
	tokens      *crypto.TokenService
	auth        *AuthService
	eraser      *ErasureCoordinator
}

func newVaultFixture(codec *crypto.Codec) *vaultFixture {
	f := &vaultFixture{
		users:     newMemUsers(),
		credStore: newCredentialStore(),
		cardStore: newCardStore(),
		noteStore: newNoteStore(),
		tokens:    crypto.NewTokenService("test-jwt-secret", 7*24*time.Hour, nil),
	}
	f.credentials = NewVaultService[*model.Credential]("credential", f.credStore, codec)
	f.cards = NewVaultService[*model.Card]("card", f.cardStore, codec)
	f.notes = NewVaultService[*model.Note]("note", f.noteStore, codec)
	f.gate = NewIdentityGate(f.tokens, f.users)
	f.auth = NewAuthService(f.users, f.tokens, f.gate)
	f.auth.hash = fastHash
	tx := &memTx{stores: []snapshotter{f.users, f.credStore, f.cardStore, f.noteStore}}
	f.eraser = NewErasureCoordinator(f.users, f.gate, tx, f.credentials, f.cards, f.notes)
	return f
}

// signUp registers email with password and returns the new user id.
func (f *vaultFixture) signUp(email, password string) int64 {
	hash, err := fastHash(password)
	if err != nil {
		panic(err)
	}
	u := &model.User{Email: email, PasswordHash: hash}
	if err := f.users.Create(context.Background(), u); err != nil {
		panic(err)
	}
	return u.ID
}
