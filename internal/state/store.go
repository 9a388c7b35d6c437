// Package state is the single owner of every persisted collection.
//
// The datasets are loaded once when the store opens and kept in memory indexed by id. Each
// mutation replaces rows by id, writes the affected dataset back to the key-value store and only
// then becomes visible. Readers always get copies.
package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/metadia/internal/calendar"
	"github.com/MrJamesThe3rd/metadia/internal/card"
	"github.com/MrJamesThe3rd/metadia/internal/dataset"
	"github.com/MrJamesThe3rd/metadia/internal/goal"
	"github.com/MrJamesThe3rd/metadia/internal/matching"
	"github.com/MrJamesThe3rd/metadia/internal/obligation"
	"github.com/MrJamesThe3rd/metadia/internal/settings"
	"github.com/MrJamesThe3rd/metadia/internal/transaction"
)

// Dataset names, the keys of the key-value store.
const (
	DatasetTransactions = "transactions"
	DatasetObligations  = "fixedExpenses"
	DatasetCards        = "creditCards"
	DatasetSettings     = "goalSettings"
	DatasetMappings     = "descriptionMappings"
)

// KV is a string store keyed by dataset name. Get returns dataset.ErrNotFound for a name that
// was never written.
type KV interface {
	Get(ctx context.Context, name string) (string, error)
	Put(ctx context.Context, name, payload string) error
}

type Store struct {
	mu  sync.RWMutex
	kv  KV
	now func() time.Time

	transactions table[*transaction.Transaction]
	obligations  table[*obligation.Obligation]
	cards        table[*card.CreditCard]
	settings     goal.Settings
	mappings     []matching.Mapping
}

type Option func(*Store)

// WithClock replaces time.Now for created/updated stamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// Open loads every dataset from kv. Missing datasets start empty; settings start at their
// defaults.
func Open(ctx context.Context, kv KV, opts ...Option) (*Store, error) {
	s := &Store{kv: kv, now: time.Now, settings: goal.DefaultSettings()}
	for _, opt := range opts {
		opt(s)
	}

	var (
		txs         []*transaction.Transaction
		obligations []*obligation.Obligation
		cards       []*card.CreditCard
	)

	loads := []struct {
		name string
		dst  any
	}{
		{DatasetTransactions, &txs},
		{DatasetObligations, &obligations},
		{DatasetCards, &cards},
		{DatasetSettings, &s.settings},
		{DatasetMappings, &s.mappings},
	}

	for _, l := range loads {
		if err := s.load(ctx, l.name, l.dst); err != nil {
			return nil, err
		}
	}

	s.transactions = newTable(txs, func(tx *transaction.Transaction) uuid.UUID { return tx.ID })
	s.obligations = newTable(obligations, func(o *obligation.Obligation) uuid.UUID { return o.ID })
	s.cards = newTable(cards, func(c *card.CreditCard) uuid.UUID { return c.ID })

	return s, nil
}

func (s *Store) load(ctx context.Context, name string, dst any) error {
	payload, err := s.kv.Get(ctx, name)
	if err != nil {
		if errors.Is(err, dataset.ErrNotFound) {
			return nil
		}

		return fmt.Errorf("loading %s: %w", name, err)
	}

	if err := json.Unmarshal([]byte(payload), dst); err != nil {
		return fmt.Errorf("decoding %s: %w", name, err)
	}

	return nil
}

func (s *Store) save(ctx context.Context, name string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", name, err)
	}

	if err := s.kv.Put(ctx, name, string(payload)); err != nil {
		return fmt.Errorf("saving %s: %w", name, err)
	}

	return nil
}

// Snapshot is a consistent copy of every collection, taken under one read lock.
type Snapshot struct {
	Transactions []*transaction.Transaction
	Obligations  []*obligation.Obligation
	Cards        []*card.CreditCard
	Settings     goal.Settings
}

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Snapshot{
		Transactions: cloneAll(s.transactions.list(), cloneTransaction),
		Obligations:  cloneAll(s.obligations.list(), (*obligation.Obligation).Clone),
		Cards:        cloneAll(s.cards.list(), cloneCard),
		Settings:     s.settings.Clone(),
	}
}

func cloneAll[T any](items []T, clone func(T) T) []T {
	out := make([]T, len(items))
	for i, it := range items {
		out[i] = clone(it)
	}

	return out
}

func cloneTransaction(tx *transaction.Transaction) *transaction.Transaction {
	c := *tx
	if tx.UpdatedAt != nil {
		c.UpdatedAt = new(*tx.UpdatedAt)
	}

	return &c
}

func cloneCard(c *card.CreditCard) *card.CreditCard {
	cc := *c
	return &cc
}

// Transactions

func (s *Store) CreateTransaction(ctx context.Context, tx *transaction.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stampNew(tx)

	next := s.transactions.with(tx.ID, cloneTransaction(tx))
	if err := s.save(ctx, DatasetTransactions, next.list()); err != nil {
		return err
	}

	s.transactions = next

	return nil
}

func (s *Store) stampNew(tx *transaction.Transaction) {
	if tx.ID == uuid.Nil {
		tx.ID = uuid.New()
	}

	tx.CreatedAt = s.now()
	tx.UpdatedAt = nil
}

func (s *Store) GetTransaction(_ context.Context, id uuid.UUID) (*transaction.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tx, ok := s.transactions.get(id)
	if !ok {
		return nil, transaction.ErrNotFound
	}

	return cloneTransaction(tx), nil
}

// ListTransactions returns the matching transactions oldest first.
func (s *Store) ListTransactions(_ context.Context, filter transaction.ListFilter) ([]*transaction.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*transaction.Transaction

	for _, tx := range s.transactions.list() {
		if filter.Match(tx) {
			out = append(out, cloneTransaction(tx))
		}
	}

	slices.SortStableFunc(out, func(a, b *transaction.Transaction) int {
		return a.Date.Compare(b.Date)
	})

	return out, nil
}

func (s *Store) UpdateTransaction(ctx context.Context, tx *transaction.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.transactions.get(tx.ID)
	if !ok {
		return transaction.ErrNotFound
	}

	tx.CreatedAt = cur.CreatedAt
	tx.UpdatedAt = new(s.now())

	next := s.transactions.with(tx.ID, cloneTransaction(tx))
	if err := s.save(ctx, DatasetTransactions, next.list()); err != nil {
		return err
	}

	s.transactions = next

	return nil
}

func (s *Store) DeleteTransaction(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.transactions.get(id); !ok {
		return transaction.ErrNotFound
	}

	next := s.transactions.without(id)
	if err := s.save(ctx, DatasetTransactions, next.list()); err != nil {
		return err
	}

	s.transactions = next

	return nil
}

// BeginImport holds the write lock until the returned ImportTx is committed or rolled back, so
// duplicate detection and the insert see the same data.
func (s *Store) BeginImport(_ context.Context, minDate, maxDate time.Time) (transaction.ImportTx, error) {
	s.mu.Lock()

	return &importTx{
		s:       s,
		minDate: calendar.DateOf(minDate),
		maxDate: calendar.DateOf(maxDate),
	}, nil
}

type importTx struct {
	s       *Store
	minDate calendar.Date
	maxDate calendar.Date
	next    *table[*transaction.Transaction]
	done    bool
}

func (itx *importTx) FindDuplicates(_ context.Context, params []transaction.CreateParams) ([]*transaction.Transaction, error) {
	var candidates []*transaction.Transaction

	for _, tx := range itx.s.transactions.list() {
		if tx.Day().Between(itx.minDate, itx.maxDate) {
			candidates = append(candidates, cloneTransaction(tx))
		}
	}

	return transaction.FindDuplicates(candidates, params), nil
}

func (itx *importTx) CreateTransactions(_ context.Context, txs []*transaction.Transaction) error {
	next := itx.s.transactions
	if itx.next != nil {
		next = *itx.next
	}

	for _, tx := range txs {
		itx.s.stampNew(tx)
		next = next.with(tx.ID, cloneTransaction(tx))
	}

	itx.next = &next

	return nil
}

func (itx *importTx) Commit() error {
	if itx.done {
		return errors.New("import already finished")
	}

	defer itx.finish()

	if itx.next == nil {
		return nil
	}

	if err := itx.s.save(context.Background(), DatasetTransactions, itx.next.list()); err != nil {
		return err
	}

	itx.s.transactions = *itx.next

	return nil
}

func (itx *importTx) Rollback() error {
	if !itx.done {
		itx.finish()
	}

	return nil
}

func (itx *importTx) finish() {
	itx.done = true
	itx.s.mu.Unlock()
}

// Obligations

func (s *Store) CreateObligation(ctx context.Context, o *obligation.Obligation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}

	return s.putObligation(ctx, o)
}

// putObligation refuses a card id that is not stored, so obligations never point at a missing card.
func (s *Store) putObligation(ctx context.Context, o *obligation.Obligation) error {
	if o.CardID != nil {
		if _, ok := s.cards.get(*o.CardID); !ok {
			return fmt.Errorf("obligation %s: %w: %s", o.ID, card.ErrNotFound, *o.CardID)
		}
	}

	next := s.obligations.with(o.ID, o.Clone())
	if err := s.save(ctx, DatasetObligations, next.list()); err != nil {
		return err
	}

	s.obligations = next

	return nil
}

func (s *Store) GetObligation(_ context.Context, id uuid.UUID) (*obligation.Obligation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.obligations.get(id)
	if !ok {
		return nil, obligation.ErrNotFound
	}

	return o.Clone(), nil
}

func (s *Store) ListObligations(_ context.Context) ([]*obligation.Obligation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return cloneAll(s.obligations.list(), (*obligation.Obligation).Clone), nil
}

func (s *Store) UpdateObligation(ctx context.Context, o *obligation.Obligation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.obligations.get(o.ID); !ok {
		return obligation.ErrNotFound
	}

	return s.putObligation(ctx, o)
}

func (s *Store) DeleteObligation(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.obligations.get(id); !ok {
		return obligation.ErrNotFound
	}

	next := s.obligations.without(id)
	if err := s.save(ctx, DatasetObligations, next.list()); err != nil {
		return err
	}

	s.obligations = next

	return nil
}

// Cards

func (s *Store) CreateCard(ctx context.Context, c *card.CreditCard) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}

	return s.putCard(ctx, c)
}

func (s *Store) putCard(ctx context.Context, c *card.CreditCard) error {
	next := s.cards.with(c.ID, cloneCard(c))
	if err := s.save(ctx, DatasetCards, next.list()); err != nil {
		return err
	}

	s.cards = next

	return nil
}

func (s *Store) GetCard(_ context.Context, id uuid.UUID) (*card.CreditCard, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.cards.get(id)
	if !ok {
		return nil, card.ErrNotFound
	}

	return cloneCard(c), nil
}

func (s *Store) ListCards(_ context.Context) ([]*card.CreditCard, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return cloneAll(s.cards.list(), cloneCard), nil
}

func (s *Store) UpdateCard(ctx context.Context, c *card.CreditCard) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.cards.get(c.ID); !ok {
		return card.ErrNotFound
	}

	return s.putCard(ctx, c)
}

// DeleteCard detaches the card from its obligations first, so a failure part way leaves
// obligations without a card rather than pointing at a missing one.
func (s *Store) DeleteCard(ctx context.Context, id uuid.UUID) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.cards.get(id); !ok {
		return 0, card.ErrNotFound
	}

	obligations := s.obligations
	detached := 0

	for _, o := range s.obligations.list() {
		if o.CardID != nil && *o.CardID == id {
			obligations = obligations.with(o.ID, obligation.WithoutCard(o))
			detached++
		}
	}

	if detached > 0 {
		if err := s.save(ctx, DatasetObligations, obligations.list()); err != nil {
			return 0, err
		}

		s.obligations = obligations
	}

	cards := s.cards.without(id)
	if err := s.save(ctx, DatasetCards, cards.list()); err != nil {
		return detached, err
	}

	s.cards = cards

	return detached, nil
}

// Settings

func (s *Store) GetSettings(_ context.Context) (goal.Settings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.settings.Clone(), nil
}

func (s *Store) SaveSettings(ctx context.Context, gs goal.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := gs.Clone()
	if err := s.save(ctx, DatasetSettings, c); err != nil {
		return err
	}

	s.settings = c

	return nil
}

// Description mappings

func (s *Store) ListMappings(_ context.Context) ([]matching.Mapping, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.mappings), nil
}

func (s *Store) CreateMapping(ctx context.Context, m matching.Mapping) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := append(slices.Clone(s.mappings), m)

	if err := s.save(ctx, DatasetMappings, next); err != nil {
		return err
	}

	s.mappings = next

	return nil
}

var (
	_ transaction.Repository = (*Store)(nil)
	_ obligation.Repository  = (*Store)(nil)
	_ card.Repository        = (*Store)(nil)
	_ matching.Repository    = (*Store)(nil)
	_ settings.Repository    = (*Store)(nil)
)
