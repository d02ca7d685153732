package ledger

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
)

// Store holds the item tables of both pools and the per-date event log.
// It has no locking of its own; the owner serialises access.
type Store struct {
	pools map[Pool]*itemTable
	sales map[string][]SaleEvent
}

// itemTable keeps items in insertion order so listings are stable.
type itemTable struct {
	order []string
	items map[string]Item
}

func newItemTable() *itemTable {
	return &itemTable{items: make(map[string]Item)}
}

func (t *itemTable) get(name string) (Item, bool) {
	it, ok := t.items[name]
	return it, ok
}

func (t *itemTable) put(it Item) {
	if _, ok := t.items[it.Name]; !ok {
		t.order = append(t.order, it.Name)
	}
	t.items[it.Name] = it
}

func (t *itemTable) list() []Item {
	out := make([]Item, 0, len(t.order))
	for _, name := range t.order {
		out = append(out, t.items[name])
	}
	return out
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		pools: map[Pool]*itemTable{
			PoolMRP: newItemTable(),
			PoolBar: newItemTable(),
		},
		sales: make(map[string][]SaleEvent),
	}
}

// NewStoreFromSnapshot rebuilds a store from a persisted snapshot. Every item
// and event is validated; a broken snapshot is rejected as a whole. Events
// without an ID are given one; an ID used twice fails with ErrDuplicateEntry.
func NewStoreFromSnapshot(snap Snapshot) (*Store, error) {
	s := NewStore()
	seen := make(map[uuid.UUID]string)
	for _, pool := range Pools {
		t := s.pools[pool]
		for _, it := range snap.Items.of(pool) {
			if err := it.Validate(); err != nil {
				return nil, fmt.Errorf("%s item %q: %w", pool, it.Name, err)
			}
			if _, dup := t.get(it.Name); dup {
				return nil, fmt.Errorf("%w: %s %q", ErrDuplicateItem, pool, it.Name)
			}
			t.put(it)
		}
	}
	for date, events := range snap.SalesByDate {
		if _, err := ParseDate(date); err != nil {
			return nil, err
		}
		day := make([]SaleEvent, 0, len(events))
		for _, e := range events {
			if err := e.Validate(); err != nil {
				return nil, fmt.Errorf("event on %s: %w", date, err)
			}
			if e.ID == uuid.Nil {
				e.ID = uuid.New()
			}
			if other, dup := seen[e.ID]; dup {
				return nil, fmt.Errorf("%w: %s on %s and %s", ErrDuplicateEntry, e.ID, other, date)
			}
			seen[e.ID] = date
			day = append(day, e)
		}
		s.sales[date] = day
	}
	return s, nil
}

// PoolItems is the item listing of both pools.
type PoolItems struct {
	MRP []Item `json:"mrp"`
	Bar []Item `json:"bar"`
}

func (p PoolItems) of(pool Pool) []Item {
	if pool == PoolBar {
		return p.Bar
	}
	return p.MRP
}

// Snapshot is the full ledger state handed to persistence.
type Snapshot struct {
	Items       PoolItems              `json:"items"`
	SalesByDate map[string][]SaleEvent `json:"salesByDate"`
}

// dateOf finds the date an event ID is logged on.
func (s *Store) dateOf(id uuid.UUID) (string, bool) {
	for date, events := range s.sales {
		for _, e := range events {
			if e.ID == id {
				return date, true
			}
		}
	}
	return "", false
}

// Snapshot returns a deep copy of the store.
func (s *Store) Snapshot() Snapshot {
	snap := Snapshot{
		Items: PoolItems{
			MRP: s.pools[PoolMRP].list(),
			Bar: s.pools[PoolBar].list(),
		},
		SalesByDate: make(map[string][]SaleEvent, len(s.sales)),
	}
	for date, events := range s.sales {
		snap.SalesByDate[date] = append([]SaleEvent{}, events...)
	}
	return snap
}

// Dates returns the dates that have a log, newest first.
func (s *Store) Dates() []string {
	dates := make([]string, 0, len(s.sales))
	for d := range s.sales {
		dates = append(dates, d)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))
	return dates
}

// Equal compares two snapshots by value. Decimal prices are compared
// numerically, so "20" and "20.00" are the same price.
func (s Snapshot) Equal(o Snapshot) bool {
	for _, pool := range Pools {
		a, b := s.Items.of(pool), o.Items.of(pool)
		if len(a) != len(b) {
			return false
		}
		for i := range a {
			if !a[i].equal(b[i]) {
				return false
			}
		}
	}
	if len(s.SalesByDate) != len(o.SalesByDate) {
		return false
	}
	for date, a := range s.SalesByDate {
		b, ok := o.SalesByDate[date]
		if !ok || len(a) != len(b) {
			return false
		}
		for i := range a {
			if !a[i].equal(b[i]) {
				return false
			}
		}
	}
	return true
}
