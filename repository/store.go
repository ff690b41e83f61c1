// repository/store.go
package repository

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/fadhlanhapp/dinetab-backend/models"
	"github.com/fadhlanhapp/dinetab-backend/utils"

	"github.com/google/uuid"
)

// StoreEvent describes a change to a collection. Subscribers should
// re-fetch the record rather than trust the payload as the sole source
// of truth; delivery is at-least-once.
type StoreEvent struct {
	Type string      `json:"type"` // "create" | "update"
	Data interface{} `json:"data"`
}

// UnsubscribeFunc removes a previously registered subscriber.
type UnsubscribeFunc func()

// Collection is an in-memory record set shared by every surface (POS
// terminal, kitchen display). All mutation goes through Create and
// Update; Update runs the caller's mutator under the write lock so
// concurrent partial updates to the same record merge instead of
// overwriting each other.
type Collection[T any] struct {
	mu      sync.RWMutex
	records map[string]*T
	order   []string
	getID   func(*T) string
	setID   func(*T, string)
	onWrite func(*T) // optional write-through persistence

	subMu   sync.Mutex
	subs    map[int]func(StoreEvent)
	nextSub int
}

// NewCollection creates an empty collection with the given id accessors.
func NewCollection[T any](getID func(*T) string, setID func(*T, string)) *Collection[T] {
	return &Collection[T]{
		records: make(map[string]*T),
		getID:   getID,
		setID:   setID,
		subs:    make(map[int]func(StoreEvent)),
	}
}

// clone deep-copies a record so callers can never alias stored state.
func clone[T any](rec *T) *T {
	b, _ := json.Marshal(rec)
	out := new(T)
	_ = json.Unmarshal(b, out)
	return out
}

// Create stores a new record, assigning an id if one is not set.
func (c *Collection[T]) Create(rec *T) *T {
	stored := clone(rec)
	c.mu.Lock()
	if c.getID(stored) == "" {
		c.setID(stored, uuid.NewString())
	}
	id := c.getID(stored)
	c.records[id] = stored
	c.order = append(c.order, id)
	c.mu.Unlock()

	if c.onWrite != nil {
		c.onWrite(clone(stored))
	}
	c.publish(StoreEvent{Type: "create", Data: clone(stored)})
	return clone(stored)
}

// Restore inserts a previously persisted record as-is. The stored id is
// kept, no event fires and the write-through hook is skipped, so
// rehydrating on startup never echoes records back to the database.
func (c *Collection[T]) Restore(rec *T) {
	stored := clone(rec)
	c.mu.Lock()
	id := c.getID(stored)
	if _, ok := c.records[id]; !ok {
		c.order = append(c.order, id)
	}
	c.records[id] = stored
	c.mu.Unlock()
}

// Get returns the record with the given id, or nil if not found.
func (c *Collection[T]) Get(id string) *T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	rec, ok := c.records[id]
	if !ok {
		return nil
	}
	return clone(rec)
}

// List returns every record in insertion order.
func (c *Collection[T]) List() []*T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*T, 0, len(c.order))
	for _, id := range c.order {
		if rec, ok := c.records[id]; ok {
			out = append(out, clone(rec))
		}
	}
	return out
}

// Filter returns records whose fields exactly match every criterion.
// A slice criterion means "field value is in this set". Field names are
// the record's json names.
func (c *Collection[T]) Filter(criteria map[string]interface{}) []*T {
	all := c.List()
	out := make([]*T, 0)
	for _, rec := range all {
		if matches(rec, criteria) {
			out = append(out, rec)
		}
	}
	return out
}

func matches[T any](rec *T, criteria map[string]interface{}) bool {
	b, _ := json.Marshal(rec)
	var fields map[string]interface{}
	_ = json.Unmarshal(b, &fields)

	for key, want := range criteria {
		got := fields[key]
		switch w := want.(type) {
		case []string:
			if !containsValue(got, toAnySlice(w)) {
				return false
			}
		case []interface{}:
			if !containsValue(got, w) {
				return false
			}
		default:
			if !jsonEqual(got, want) {
				return false
			}
		}
	}
	return true
}

func toAnySlice(in []string) []interface{} {
	out := make([]interface{}, len(in))
	for i, v := range in {
		out[i] = v
	}
	return out
}

func containsValue(got interface{}, set []interface{}) bool {
	for _, v := range set {
		if jsonEqual(got, v) {
			return true
		}
	}
	return false
}

// jsonEqual compares a stored json value with a caller-supplied one,
// normalizing numeric types through json encoding.
func jsonEqual(a, b interface{}) bool {
	ab, _ := json.Marshal(a)
	bb, _ := json.Marshal(b)
	return string(ab) == string(bb)
}

// Update applies the mutator to the stored record under the write lock
// and returns the updated copy, or (nil, nil) if the id is unknown. The
// mutator works on a copy; if it returns an error the stored record is
// left untouched and no event fires. Mutators must only touch the
// fields they mean to change.
func (c *Collection[T]) Update(id string, apply func(*T) error) (*T, error) {
	c.mu.Lock()
	rec, ok := c.records[id]
	if !ok {
		c.mu.Unlock()
		return nil, nil
	}
	work := clone(rec)
	if err := apply(work); err != nil {
		c.mu.Unlock()
		return nil, err
	}
	c.records[id] = work
	updated := clone(work)
	c.mu.Unlock()

	if c.onWrite != nil {
		c.onWrite(clone(updated))
	}
	c.publish(StoreEvent{Type: "update", Data: clone(updated)})
	return updated, nil
}

// Subscribe registers a callback fired after every create and update.
func (c *Collection[T]) Subscribe(fn func(StoreEvent)) UnsubscribeFunc {
	c.subMu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	c.subMu.Unlock()

	return func() {
		c.subMu.Lock()
		delete(c.subs, id)
		c.subMu.Unlock()
	}
}

func (c *Collection[T]) publish(event StoreEvent) {
	c.subMu.Lock()
	fns := make([]func(StoreEvent), 0, len(c.subs))
	for _, fn := range c.subs {
		fns = append(fns, fn)
	}
	c.subMu.Unlock()

	for _, fn := range fns {
		fn(event)
	}
}

// Store aggregates the entity collections every surface shares.
type Store struct {
	Orders       *Collection[models.Order]
	Transactions *Collection[models.Transaction]
	Shifts       *Collection[models.Shift]
	Tables       *Collection[models.Table]
	GiftCards    *Collection[models.GiftCard]
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	s := &Store{
		Orders: NewCollection(
			func(o *models.Order) string { return o.ID },
			func(o *models.Order, id string) { o.ID = id },
		),
		Transactions: NewCollection(
			func(t *models.Transaction) string { return t.ID },
			func(t *models.Transaction, id string) { t.ID = id },
		),
		Shifts: NewCollection(
			func(s *models.Shift) string { return s.ID },
			func(s *models.Shift, id string) { s.ID = id },
		),
		Tables: NewCollection(
			func(t *models.Table) string { return t.ID },
			func(t *models.Table, id string) { t.ID = id },
		),
		GiftCards: NewCollection(
			func(g *models.GiftCard) string { return g.ID },
			func(g *models.GiftCard, id string) { g.ID = id },
		),
	}
	return s
}

// CreateOrder stamps creation time and the initial revision.
func (s *Store) CreateOrder(order *models.Order) *models.Order {
	order.CreatedAt = time.Now()
	order.Revision = 1
	return s.Orders.Create(order)
}

// UpdateOrder applies a read-modify-write mutation and bumps the
// order's revision counter. A mutation error aborts the write.
func (s *Store) UpdateOrder(id string, apply func(*models.Order) error) (*models.Order, error) {
	updated, err := s.Orders.Update(id, func(o *models.Order) error {
		if err := apply(o); err != nil {
			return err
		}
		o.Revision++
		return nil
	})
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, utils.NewNotFoundError("Order")
	}
	return updated, nil
}

// UpdateOrderChecked rejects the write if the caller's revision is
// stale, so a surface that read the order earlier cannot clobber a
// concurrent write from another surface.
func (s *Store) UpdateOrderChecked(id string, revision int64, apply func(*models.Order) error) (*models.Order, error) {
	return s.UpdateOrder(id, func(o *models.Order) error {
		if o.Revision != revision {
			return utils.NewConflictError("order was modified by another surface, re-fetch and retry")
		}
		return apply(o)
	})
}

// CreateTransaction stamps creation time.
func (s *Store) CreateTransaction(tx *models.Transaction) *models.Transaction {
	tx.CreatedAt = time.Now()
	return s.Transactions.Create(tx)
}

// AttachPersistence wires write-through persistence for the durable
// collections. Best effort: the in-memory store stays authoritative.
func (s *Store) AttachPersistence(orders *OrderRepository, txs *TransactionRepository, shifts *ShiftRepository) {
	s.Orders.onWrite = func(o *models.Order) { _ = orders.Save(o) }
	s.Transactions.onWrite = func(t *models.Transaction) { _ = txs.Save(t) }
	s.Shifts.onWrite = func(sh *models.Shift) { _ = shifts.Save(sh) }
}

// LoadPersisted rehydrates the collections from saved snapshots so
// state survives a restart. Orders and shifts come back whole;
// transactions are reloaded per shift so the tender ledger lines up
// with its shift.
func (s *Store) LoadPersisted(orders *OrderRepository, txs *TransactionRepository, shifts *ShiftRepository) error {
	savedOrders, err := orders.LoadAll()
	if err != nil {
		return err
	}
	savedShifts, err := shifts.LoadAll()
	if err != nil {
		return err
	}
	var savedTxs []*models.Transaction
	for _, shift := range savedShifts {
		shiftTxs, err := txs.LoadByShift(shift.ID)
		if err != nil {
			return err
		}
		savedTxs = append(savedTxs, shiftTxs...)
	}
	s.Restore(savedOrders, savedTxs, savedShifts)
	return nil
}

// Restore loads snapshots into the collections without firing events
// or write-through hooks.
func (s *Store) Restore(orders []*models.Order, txs []*models.Transaction, shifts []*models.Shift) {
	for _, o := range orders {
		s.Orders.Restore(o)
	}
	for _, t := range txs {
		s.Transactions.Restore(t)
	}
	for _, sh := range shifts {
		s.Shifts.Restore(sh)
	}
}
