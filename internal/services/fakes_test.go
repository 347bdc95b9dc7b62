package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"billtrack/internal/core"
)

// memStore is an in-memory TransactionStore and NotificationStateStore used
// by the service tests.
type memStore struct {
	mu      sync.Mutex
	nextID  int
	txs     map[string]core.Transaction
	order   []string
	tiers   map[string]core.AlertTier
	addErr  error
	addErrN int // fail Add only after N successful adds when addErr is set
	adds    int
}

func newMemStore() *memStore {
	return &memStore{
		txs:   make(map[string]core.Transaction),
		tiers: make(map[string]core.AlertTier),
	}
}

func (m *memStore) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]core.Transaction, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.txs[id])
	}
	return out, nil
}

func (m *memStore) GetTransaction(ctx context.Context, id string) (core.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.txs[id]
	if !ok {
		return core.Transaction{}, core.ErrNotFound
	}
	return t, nil
}

func (m *memStore) AddTransaction(ctx context.Context, n core.NewTransaction) (core.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.addErr != nil && m.adds >= m.addErrN {
		return core.Transaction{}, m.addErr
	}
	m.adds++
	m.nextID++
	t := core.Transaction{
		ID:           fmt.Sprintf("tx-%d", m.nextID),
		Description:  n.Description,
		Amount:       n.Amount,
		Category:     n.Category,
		AccountType:  n.AccountType,
		Status:       n.Status,
		DueDate:      core.DayStart(n.DueDate),
		Installments: n.Installments,
		CreatedAt:    time.Now(),
	}
	if !n.PaymentDate.IsZero() {
		t.PaymentDate = core.DayStart(n.PaymentDate)
	}
	m.txs[t.ID] = t
	m.order = append(m.order, t.ID)
	return t, nil
}

func (m *memStore) UpdateTransaction(ctx context.Context, id string, p core.TransactionPatch) (core.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.txs[id]
	if !ok {
		return core.Transaction{}, core.ErrNotFound
	}
	t = p.Apply(t)
	m.txs[id] = t
	return t, nil
}

func (m *memStore) DeleteTransaction(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.txs[id]; !ok {
		return core.ErrNotFound
	}
	delete(m.txs, id)
	for i, v := range m.order {
		if v == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

func (m *memStore) LoadNotificationTiers(ctx context.Context) (map[string]core.AlertTier, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]core.AlertTier, len(m.tiers))
	for k, v := range m.tiers {
		out[k] = v
	}
	return out, nil
}

func (m *memStore) SetNotificationTier(ctx context.Context, transactionID string, tier core.AlertTier) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tiers[transactionID] = tier
	return nil
}

func (m *memStore) ClearNotificationStatus(ctx context.Context, transactionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tiers, transactionID)
	return nil
}

// captureChannel records every emitted alert.
type captureChannel struct {
	mu     sync.Mutex
	alerts []core.Alert
}

func (c *captureChannel) Emit(ctx context.Context, a core.Alert) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.alerts = append(c.alerts, a)
	return nil
}

func (c *captureChannel) emitted() []core.Alert {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]core.Alert, len(c.alerts))
	copy(out, c.alerts)
	return out
}
