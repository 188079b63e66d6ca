package service

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/bistro/internal/models"
)

type recordedEvent struct {
	Topic string
	Key   string
	Event map[string]any
}

type memPublisher struct {
	mu     sync.Mutex
	events []recordedEvent
	err    error
}

func (p *memPublisher) PublishEvent(_ context.Context, topic, key string, event any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	m, _ := event.(map[string]any)
	p.events = append(p.events, recordedEvent{Topic: topic, Key: key, Event: m})
	return p.err
}

func (p *memPublisher) last() recordedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.events[len(p.events)-1]
}

type memPayments struct {
	mu       sync.Mutex
	payments []models.Payment
	err      error
}

func (m *memPayments) InsertPayment(_ context.Context, p *models.Payment) error {
	if m.err != nil {
		return m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	p.ID = uuid.NewString()
	m.payments = append(m.payments, *p)
	return nil
}

func (m *memPayments) ListPayments(_ context.Context, email string) ([]models.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Payment
	for _, p := range m.payments {
		if p.Email == email {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memPayments) GetPayment(_ context.Context, id string) (*models.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.payments {
		if p.ID == id {
			cp := p
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

type memCart struct {
	mu      sync.Mutex
	entries map[string]models.CartEntry
	calls   int
	err     error
}

func newMemCart(entries ...models.CartEntry) *memCart {
	c := &memCart{entries: map[string]models.CartEntry{}}
	for _, e := range entries {
		c.entries[e.ID] = e
	}
	return c
}

func (c *memCart) AddCartEntry(_ context.Context, e *models.CartEntry) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	e.ID = uuid.NewString()
	c.entries[e.ID] = *e
	return nil
}

func (c *memCart) ListCart(_ context.Context, email string) ([]models.CartEntry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []models.CartEntry
	for _, e := range c.entries {
		if e.Email == email {
			out = append(out, e)
		}
	}
	return out, nil
}

func (c *memCart) GetCartEntry(_ context.Context, id string) (*models.CartEntry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &e, nil
}

func (c *memCart) RemoveCartEntry(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(c.entries, id)
	return nil
}

func (c *memCart) RemoveCartEntries(_ context.Context, ids []string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	if c.err != nil {
		return 0, c.err
	}
	var n int64
	for _, id := range ids {
		if _, ok := c.entries[id]; ok {
			delete(c.entries, id)
			n++
		}
	}
	return n, nil
}

type memMenu struct {
	items map[string]models.MenuItem
}

func (m *memMenu) GetMenuItem(_ context.Context, id string) (*models.MenuItem, error) {
	it, ok := m.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &it, nil
}

var errStore = errors.New("store unavailable")
