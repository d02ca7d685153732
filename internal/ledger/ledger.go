// Package ledger implements the two-pool stock ledger: item balances, sales,
// transfers between pools and the per-date event log.
//
// A Ledger is not safe for concurrent use. Every mutation validates its
// input and computes the complete new state before writing anything, so a
// rejected call never leaves partial changes behind.
package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Config tunes ledger behaviour.
type Config struct {
	// AllowBarToMRP enables transfers in the reverse direction.
	AllowBarToMRP bool
	// Location decides the calendar date of "today". Defaults to time.Local.
	Location *time.Location
	// Now is the clock. Defaults to time.Now.
	Now func() time.Time
}

type Ledger struct {
	store *Store
	cfg   Config
}

// New wraps store. A nil store starts an empty ledger.
func New(store *Store, cfg Config) *Ledger {
	if store == nil {
		store = NewStore()
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Ledger{store: store, cfg: cfg}
}

// Today is the current calendar date in the configured location.
func (l *Ledger) Today() string {
	return l.cfg.Now().In(l.cfg.Location).Format(DateLayout)
}

func (l *Ledger) resolveDate(date string) (string, error) {
	if date == "" {
		return l.Today(), nil
	}
	return ParseDate(date)
}

func (l *Ledger) table(pool Pool) (*itemTable, error) {
	t, ok := l.store.pools[pool]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPool, pool)
	}
	return t, nil
}

func (l *Ledger) find(pool Pool, name string) (*itemTable, Item, error) {
	t, err := l.table(pool)
	if err != nil {
		return nil, Item{}, err
	}
	it, ok := t.get(strings.TrimSpace(name))
	if !ok {
		return nil, Item{}, fmt.Errorf("%w: %s %q", ErrNotFound, pool, name)
	}
	return t, it, nil
}

// Items lists a pool in insertion order.
func (l *Ledger) Items(pool Pool) ([]Item, error) {
	t, err := l.table(pool)
	if err != nil {
		return nil, err
	}
	return t.list(), nil
}

// Item returns a copy of one item.
func (l *Ledger) Item(pool Pool, name string) (Item, error) {
	_, it, err := l.find(pool, name)
	return it, err
}

// Closing returns opening + inward - sold - transferredOut for an item.
func (l *Ledger) Closing(pool Pool, name string) (int, error) {
	_, it, err := l.find(pool, name)
	if err != nil {
		return 0, err
	}
	return it.Closing(), nil
}

// EnsureItem creates the item from defaults when the pool does not have it
// yet. An existing item is returned untouched.
func (l *Ledger) EnsureItem(pool Pool, name string, defaults Item) (Item, error) {
	t, err := l.table(pool)
	if err != nil {
		return Item{}, err
	}
	name = strings.TrimSpace(name)
	if it, ok := t.get(name); ok {
		return it, nil
	}
	defaults.Name = name
	if err := defaults.Validate(); err != nil {
		return Item{}, err
	}
	t.put(defaults)
	return defaults, nil
}

// AdjustField sets opening, unitPrice or inward. Negative input is clamped
// to zero and counts are truncated to whole units; a count above MaxUnits
// fails with ErrInvalidQuantity. Lowering opening or inward below what has
// already left the pool fails with ErrInsufficientStock.
func (l *Ledger) AdjustField(pool Pool, name string, field Field, value decimal.Decimal) (Item, error) {
	t, it, err := l.find(pool, name)
	if err != nil {
		return Item{}, err
	}
	if value.IsNegative() {
		value = decimal.Zero
	}
	if field != FieldUnitPrice && value.GreaterThan(decimal.NewFromInt(MaxUnits)) {
		return Item{}, fmt.Errorf("%w: %s exceeds %d", ErrInvalidQuantity, value, MaxUnits)
	}
	switch field {
	case FieldOpening:
		it.Opening = int(value.IntPart())
	case FieldInward:
		it.Inward = int(value.IntPart())
	case FieldUnitPrice:
		it.UnitPrice = value
	default:
		return Item{}, fmt.Errorf("%w: %q", ErrInvalidField, field)
	}
	if err := it.Validate(); err != nil {
		return Item{}, err
	}
	t.put(it)
	return it, nil
}

// Sale is the input of RecordSale.
type Sale struct {
	Pool        Pool
	ProductName string
	Quantity    int
	// PriceOverride replaces the item's current unit price when set.
	PriceOverride *decimal.Decimal
	// Date defaults to today.
	Date string
}

// RecordSale sells quantity units from the item's available balance and
// appends the sale to the day's log.
func (l *Ledger) RecordSale(s Sale) (SaleEvent, error) {
	if s.Quantity <= 0 {
		return SaleEvent{}, fmt.Errorf("%w: got %d", ErrInvalidQuantity, s.Quantity)
	}
	if s.PriceOverride != nil {
		if err := checkPrice(*s.PriceOverride); err != nil {
			return SaleEvent{}, err
		}
	}
	date, err := l.resolveDate(s.Date)
	if err != nil {
		return SaleEvent{}, err
	}
	t, it, err := l.find(s.Pool, s.ProductName)
	if err != nil {
		return SaleEvent{}, err
	}
	if closing := it.Closing(); closing < s.Quantity {
		return SaleEvent{}, fmt.Errorf("%w: %s %q has %d, requested %d",
			ErrInsufficientStock, s.Pool, it.Name, closing, s.Quantity)
	}

	price := it.UnitPrice
	if s.PriceOverride != nil {
		price = *s.PriceOverride
	}
	event, err := NewSaleEvent(s.Pool, it.Name, s.Quantity, price, false)
	if err != nil {
		return SaleEvent{}, err
	}

	it.Sold += s.Quantity
	t.put(it)
	l.store.sales[date] = append(l.store.sales[date], event)
	return event, nil
}

// Transfer moves quantity units of a product from one pool to the other.
// The source's transferredOut grows, the destination's opening grows and a
// single transfer event is logged against the source pool. The destination
// price is seeded from the source only while it has no price of its own.
func (l *Ledger) Transfer(from, to Pool, name string, quantity int, date string) (SaleEvent, error) {
	if quantity <= 0 {
		return SaleEvent{}, fmt.Errorf("%w: got %d", ErrInvalidQuantity, quantity)
	}
	if !from.Valid() {
		return SaleEvent{}, fmt.Errorf("%w: %q", ErrInvalidPool, from)
	}
	if !to.Valid() {
		return SaleEvent{}, fmt.Errorf("%w: %q", ErrInvalidPool, to)
	}
	if from == to {
		return SaleEvent{}, ErrSamePool
	}
	if from == PoolBar && !l.cfg.AllowBarToMRP {
		return SaleEvent{}, ErrTransferDirection
	}
	date, err := l.resolveDate(date)
	if err != nil {
		return SaleEvent{}, err
	}
	srcTable, src, err := l.find(from, name)
	if err != nil {
		return SaleEvent{}, err
	}
	if closing := src.Closing(); closing < quantity {
		return SaleEvent{}, fmt.Errorf("%w: %s %q has %d, requested %d",
			ErrInsufficientStock, from, src.Name, closing, quantity)
	}

	// Compute every change before applying any of them.
	dstTable := l.store.pools[to]
	dst, exists := dstTable.get(src.Name)
	if !exists {
		dst = Item{Name: src.Name}
	}
	dst.Opening += quantity
	if dst.UnitPrice.IsZero() {
		dst.UnitPrice = src.UnitPrice
	}
	src.TransferredOut += quantity

	event, err := NewSaleEvent(from, src.Name, quantity, src.UnitPrice, true)
	if err != nil {
		return SaleEvent{}, err
	}
	if err := src.Validate(); err != nil {
		return SaleEvent{}, err
	}
	if err := dst.Validate(); err != nil {
		return SaleEvent{}, err
	}

	srcTable.put(src)
	dstTable.put(dst)
	l.store.sales[date] = append(l.store.sales[date], event)
	return event, nil
}

// Days returns every date with a log, newest first.
func (l *Ledger) Days() []string {
	return l.store.Dates()
}

// Day returns a copy of one date's events. An unknown date is an empty day.
func (l *Ledger) Day(date string) ([]SaleEvent, error) {
	date, err := ParseDate(date)
	if err != nil {
		return nil, err
	}
	return append([]SaleEvent{}, l.store.sales[date]...), nil
}

// Sales returns a copy of the whole event log.
func (l *Ledger) Sales() map[string][]SaleEvent {
	return l.store.Snapshot().SalesByDate
}

// ReplaceDay swaps a date's whole event list. Item counters are left alone:
// day edits correct the log, not the stock. Events without an ID get one.
// Event IDs must be unique across the whole log.
func (l *Ledger) ReplaceDay(date string, events []SaleEvent) ([]SaleEvent, error) {
	date, err := ParseDate(date)
	if err != nil {
		return nil, err
	}
	seen := make(map[uuid.UUID]bool, len(events))
	next := make([]SaleEvent, 0, len(events))
	for i, e := range events {
		e.ProductName = strings.TrimSpace(e.ProductName)
		if err := e.Validate(); err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		if e.ID == uuid.Nil {
			e.ID = uuid.New()
		}
		if seen[e.ID] {
			return nil, fmt.Errorf("entry %d: %w: %s", i, ErrDuplicateEntry, e.ID)
		}
		if other, ok := l.store.dateOf(e.ID); ok && other != date {
			return nil, fmt.Errorf("entry %d: %w: %s is logged on %s", i, ErrDuplicateEntry, e.ID, other)
		}
		seen[e.ID] = true
		next = append(next, e)
	}
	l.store.sales[date] = next
	return append([]SaleEvent{}, next...), nil
}

// AddEntry appends a manually entered event to a date's log.
func (l *Ledger) AddEntry(date string, e SaleEvent) (SaleEvent, error) {
	date, err := ParseDate(date)
	if err != nil {
		return SaleEvent{}, err
	}
	e.ProductName = strings.TrimSpace(e.ProductName)
	if err := e.Validate(); err != nil {
		return SaleEvent{}, err
	}
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if other, ok := l.store.dateOf(e.ID); ok {
		return SaleEvent{}, fmt.Errorf("%w: %s is logged on %s", ErrDuplicateEntry, e.ID, other)
	}
	l.store.sales[date] = append(l.store.sales[date], e)
	return e, nil
}

// RemoveEntry deletes a single event from a date's log.
func (l *Ledger) RemoveEntry(date string, id uuid.UUID) error {
	date, err := ParseDate(date)
	if err != nil {
		return err
	}
	events := l.store.sales[date]
	for i, e := range events {
		if e.ID != id {
			continue
		}
		next := make([]SaleEvent, 0, len(events)-1)
		next = append(next, events[:i]...)
		next = append(next, events[i+1:]...)
		l.store.sales[date] = next
		return nil
	}
	return fmt.Errorf("%w: entry %s on %s", ErrNotFound, id, date)
}

// DeleteDay drops a date's log entirely.
func (l *Ledger) DeleteDay(date string) error {
	date, err := ParseDate(date)
	if err != nil {
		return err
	}
	if _, ok := l.store.sales[date]; !ok {
		return fmt.Errorf("%w: no log for %s", ErrNotFound, date)
	}
	delete(l.store.sales, date)
	return nil
}

// Snapshot returns a deep copy of the ledger state.
func (l *Ledger) Snapshot() Snapshot {
	return l.store.Snapshot()
}

// Restore replaces the whole state with snap.
func (l *Ledger) Restore(snap Snapshot) error {
	store, err := NewStoreFromSnapshot(snap)
	if err != nil {
		return err
	}
	l.store = store
	return nil
}

// Reset seeds both pools with the given product names at price zero with
// zeroed counters and clears the event log.
func (l *Ledger) Reset(names []string) error {
	store := NewStore()
	for _, pool := range Pools {
		for _, name := range names {
			it, err := NewItem(name, decimal.Zero)
			if err != nil {
				return err
			}
			if _, dup := store.pools[pool].get(it.Name); dup {
				continue
			}
			store.pools[pool].put(it)
		}
	}
	l.store = store
	return nil
}
