package service

import (
	"sync"

	"go-shop-ledger/internal/ledger"
	"go-shop-ledger/internal/metrics"
	"go-shop-ledger/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Notifier receives a payload after every committed mutation.
type Notifier interface {
	Publish(payload any)
}

type LedgerService interface {
	Items(pool string) ([]ledger.Item, error)
	EnsureItem(pool string, req EnsureItemRequest) (ledger.Item, error)
	AdjustField(pool, name string, req AdjustFieldRequest) (ledger.Item, error)
	RecordSale(req SaleRequest) (ledger.SaleEvent, error)
	Transfer(req TransferRequest) (ledger.SaleEvent, error)

	Days() []string
	Day(date string) ([]ledger.SaleEvent, error)
	ReplaceDay(date string, entries []EntryRequest) ([]ledger.SaleEvent, error)
	AddEntry(date string, entry EntryRequest) (ledger.SaleEvent, error)
	RemoveEntry(date string, id uuid.UUID) error
	DeleteDay(date string) error

	Summary(date string) (ledger.DailySummary, error)
	Sales() map[string][]ledger.SaleEvent
	Snapshot() ledger.Snapshot
	Restore(snap ledger.Snapshot) error
	Reset() error
	Today() string

	// WithBillsLocked runs fn while no other bill closure or Reset can
	// touch the bill closures.
	WithBillsLocked(fn func() error) error
}

type LedgerServiceConfig struct {
	RevenuePolicy ledger.RevenuePolicy
	DefaultItems  []string
}

type ledgerService struct {
	// billsMu is always taken before mu.
	billsMu     sync.Mutex
	mu          sync.RWMutex
	ledger      *ledger.Ledger
	ledgerRepo  repository.LedgerRepository
	summaryRepo repository.SummaryRepository
	billRepo    repository.BillRepository
	notifier    Notifier
	metrics     *metrics.Metrics
	log         *zap.Logger
	cfg         LedgerServiceConfig
}

// NewLedgerService serialises access to l. Writes are applied in memory
// first and then saved; the notifier may be nil.
func NewLedgerService(
	l *ledger.Ledger,
	lRepo repository.LedgerRepository,
	sRepo repository.SummaryRepository,
	bRepo repository.BillRepository,
	notifier Notifier,
	m *metrics.Metrics,
	log *zap.Logger,
	cfg LedgerServiceConfig,
) LedgerService {
	s := &ledgerService{
		ledger:      l,
		ledgerRepo:  lRepo,
		summaryRepo: sRepo,
		billRepo:    bRepo,
		notifier:    notifier,
		metrics:     m,
		log:         log.Named("ledger"),
		cfg:         cfg,
	}
	s.updateClosingGauge()
	return s
}

func (s *ledgerService) Today() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ledger.Today()
}

func (s *ledgerService) Items(pool string) ([]ledger.Item, error) {
	p, err := ledger.ParsePool(pool)
	if err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ledger.Items(p)
}

func (s *ledgerService) EnsureItem(pool string, req EnsureItemRequest) (ledger.Item, error) {
	if err := validate(req); err != nil {
		return ledger.Item{}, s.rejected("ensure_item", err, zap.String("pool", pool), zap.String("product", req.Name))
	}
	p, err := ledger.ParsePool(pool)
	if err != nil {
		return ledger.Item{}, s.rejected("ensure_item", err, zap.String("pool", pool))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	it, err := s.ledger.EnsureItem(p, req.Name, ledger.Item{Opening: req.Opening, UnitPrice: req.UnitPrice})
	if err != nil {
		return ledger.Item{}, s.rejected("ensure_item", err, zap.String("pool", pool), zap.String("product", req.Name))
	}
	syncErr := s.save("ensure_item", []ledger.Pool{p}, nil)
	s.broadcast(map[string]interface{}{
		"type":   "ledger_update",
		"action": "item_ensured",
		"pool":   p,
		"item":   it,
	})
	return it, syncErr
}

func (s *ledgerService) AdjustField(pool, name string, req AdjustFieldRequest) (ledger.Item, error) {
	if err := validate(req); err != nil {
		return ledger.Item{}, s.rejected("adjust_field", err, zap.String("pool", pool), zap.String("product", name))
	}
	p, err := ledger.ParsePool(pool)
	if err != nil {
		return ledger.Item{}, s.rejected("adjust_field", err, zap.String("pool", pool))
	}
	field, err := ledger.ParseField(req.Field)
	if err != nil {
		return ledger.Item{}, s.rejected("adjust_field", err, zap.String("pool", pool), zap.String("product", name))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	it, err := s.ledger.AdjustField(p, name, field, req.Value)
	if err != nil {
		return ledger.Item{}, s.rejected("adjust_field", err,
			zap.String("pool", pool), zap.String("product", name), zap.String("field", req.Field))
	}
	syncErr := s.save("adjust_field", []ledger.Pool{p}, nil)
	s.broadcast(map[string]interface{}{
		"type":   "ledger_update",
		"action": "item_adjusted",
		"pool":   p,
		"field":  field,
		"item":   it,
	})
	return it, syncErr
}

func (s *ledgerService) RecordSale(req SaleRequest) (ledger.SaleEvent, error) {
	fields := []zap.Field{
		zap.String("pool", req.Pool),
		zap.String("product", req.ProductName),
		zap.Int("quantity", req.Quantity),
		zap.String("date", req.Date),
	}
	if err := validate(req); err != nil {
		return ledger.SaleEvent{}, s.rejected("sale", err, fields...)
	}
	p, err := ledger.ParsePool(req.Pool)
	if err != nil {
		return ledger.SaleEvent{}, s.rejected("sale", err, fields...)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	date := s.dateOrToday(req.Date)
	event, err := s.ledger.RecordSale(ledger.Sale{
		Pool:          p,
		ProductName:   req.ProductName,
		Quantity:      req.Quantity,
		PriceOverride: req.UnitPrice,
		Date:          date,
	})
	if err != nil {
		return ledger.SaleEvent{}, s.rejected("sale", err, fields...)
	}
	s.metrics.Sales.WithLabelValues(string(p)).Inc()
	s.metrics.UnitsSold.WithLabelValues(string(p)).Add(float64(event.Quantity))

	syncErr := s.save("sale", []ledger.Pool{p}, []string{date})
	item, _ := s.ledger.Item(p, event.ProductName)
	s.broadcast(map[string]interface{}{
		"type":   "ledger_update",
		"action": "sale_recorded",
		"date":   date,
		"event":  event,
		"item":   item,
	})
	return event, syncErr
}

func (s *ledgerService) Transfer(req TransferRequest) (ledger.SaleEvent, error) {
	if req.From == "" {
		req.From = string(ledger.PoolMRP)
	}
	if req.To == "" {
		req.To = string(ledger.PoolBar)
	}
	fields := []zap.Field{
		zap.String("from", req.From),
		zap.String("to", req.To),
		zap.String("product", req.ProductName),
		zap.Int("quantity", req.Quantity),
		zap.String("date", req.Date),
	}
	if err := validate(req); err != nil {
		return ledger.SaleEvent{}, s.rejected("transfer", err, fields...)
	}
	from, err := ledger.ParsePool(req.From)
	if err != nil {
		return ledger.SaleEvent{}, s.rejected("transfer", err, fields...)
	}
	to, err := ledger.ParsePool(req.To)
	if err != nil {
		return ledger.SaleEvent{}, s.rejected("transfer", err, fields...)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	date := s.dateOrToday(req.Date)
	event, err := s.ledger.Transfer(from, to, req.ProductName, req.Quantity, date)
	if err != nil {
		return ledger.SaleEvent{}, s.rejected("transfer", err, fields...)
	}
	s.metrics.Transfers.WithLabelValues(string(from), string(to)).Inc()

	syncErr := s.save("transfer", []ledger.Pool{from, to}, []string{date})
	source, _ := s.ledger.Item(from, event.ProductName)
	dest, _ := s.ledger.Item(to, event.ProductName)
	s.broadcast(map[string]interface{}{
		"type":   "ledger_update",
		"action": "transfer_executed",
		"date":   date,
		"event":  event,
		"from":   map[string]interface{}{"pool": from, "item": source},
		"to":     map[string]interface{}{"pool": to, "item": dest},
	})
	return event, syncErr
}

func (s *ledgerService) Days() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ledger.Days()
}

func (s *ledgerService) Day(date string) ([]ledger.SaleEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ledger.Day(date)
}

func (s *ledgerService) ReplaceDay(date string, entries []EntryRequest) ([]ledger.SaleEvent, error) {
	events := make([]ledger.SaleEvent, 0, len(entries))
	for _, entry := range entries {
		if err := validate(entry); err != nil {
			return nil, s.rejected("replace_day", err, zap.String("date", date))
		}
		e, err := entry.event()
		if err != nil {
			return nil, s.rejected("replace_day", err, zap.String("date", date))
		}
		events = append(events, e)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	saved, err := s.ledger.ReplaceDay(date, events)
	if err != nil {
		return nil, s.rejected("replace_day", err, zap.String("date", date))
	}
	syncErr := s.save("replace_day", nil, []string{date})
	s.broadcastDay("day_replaced", date)
	return saved, syncErr
}

func (s *ledgerService) AddEntry(date string, entry EntryRequest) (ledger.SaleEvent, error) {
	if err := validate(entry); err != nil {
		return ledger.SaleEvent{}, s.rejected("add_entry", err, zap.String("date", date))
	}
	e, err := entry.event()
	if err != nil {
		return ledger.SaleEvent{}, s.rejected("add_entry", err, zap.String("date", date))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	saved, err := s.ledger.AddEntry(date, e)
	if err != nil {
		return ledger.SaleEvent{}, s.rejected("add_entry", err, zap.String("date", date), zap.String("product", e.ProductName))
	}
	syncErr := s.save("add_entry", nil, []string{date})
	s.broadcastDay("entry_added", date)
	return saved, syncErr
}

func (s *ledgerService) RemoveEntry(date string, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ledger.RemoveEntry(date, id); err != nil {
		return s.rejected("remove_entry", err, zap.String("date", date), zap.Stringer("entry", id))
	}
	syncErr := s.save("remove_entry", nil, []string{date})
	s.broadcastDay("entry_removed", date)
	return syncErr
}

func (s *ledgerService) DeleteDay(date string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ledger.DeleteDay(date); err != nil {
		return s.rejected("delete_day", err, zap.String("date", date))
	}
	syncErr := s.save("delete_day", nil, []string{date})
	s.broadcast(map[string]interface{}{
		"type":   "ledger_update",
		"action": "day_deleted",
		"date":   date,
	})
	return syncErr
}

func (s *ledgerService) Summary(date string) (ledger.DailySummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	events, err := s.ledger.Day(date)
	if err != nil {
		return ledger.DailySummary{}, err
	}
	return ledger.SummarizeWithPolicy(events, s.cfg.RevenuePolicy), nil
}

func (s *ledgerService) Sales() map[string][]ledger.SaleEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ledger.Sales()
}

func (s *ledgerService) Snapshot() ledger.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ledger.Snapshot()
}

func (s *ledgerService) Restore(snap ledger.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ledger.Restore(snap); err != nil {
		return s.rejected("restore", err)
	}
	syncErr := s.replaceStored("restore")
	s.broadcast(map[string]interface{}{"type": "ledger_update", "action": "restored"})
	return syncErr
}

// Reset re-seeds both pools with the default product list and clears every
// stored day, projection and bill closure.
func (s *ledgerService) Reset() error {
	s.billsMu.Lock()
	defer s.billsMu.Unlock()
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ledger.Reset(s.cfg.DefaultItems); err != nil {
		return s.rejected("reset", err)
	}
	syncErr := s.replaceStored("reset")
	if syncErr == nil {
		if err := s.billRepo.DeleteAll(); err != nil {
			syncErr = s.syncFailed("reset", err)
		}
	}
	s.log.Info("ledger reset", zap.Int("items", len(s.cfg.DefaultItems)))
	s.broadcast(map[string]interface{}{"type": "ledger_update", "action": "reset"})
	return syncErr
}

func (s *ledgerService) WithBillsLocked(fn func() error) error {
	s.billsMu.Lock()
	defer s.billsMu.Unlock()
	return fn()
}

func (s *ledgerService) dateOrToday(date string) string {
	if date == "" {
		return s.ledger.Today()
	}
	return date
}

// save writes the given pools and days, then refreshes the units projection
// of those days. Callers hold the write lock.
func (s *ledgerService) save(op string, pools []ledger.Pool, dates []string) error {
	defer s.updateClosingGauge()

	change := repository.Change{
		Pools: map[ledger.Pool][]ledger.Item{},
		Days:  map[string][]ledger.SaleEvent{},
	}
	for _, p := range pools {
		items, err := s.ledger.Items(p)
		if err != nil {
			return s.syncFailed(op, err)
		}
		change.Pools[p] = items
	}
	for _, d := range dates {
		events, err := s.ledger.Day(d)
		if err != nil {
			return s.syncFailed(op, err)
		}
		change.Days[d] = events
	}
	if err := s.ledgerRepo.Apply(change); err != nil {
		return s.syncFailed(op, err, zap.Strings("dates", dates))
	}

	for d, events := range change.Days {
		var err error
		if len(events) == 0 {
			err = s.summaryRepo.DeleteDaily(d)
		} else {
			err = s.summaryRepo.SaveDaily(d, ledger.Project(ledger.SummarizeWithPolicy(events, s.cfg.RevenuePolicy)))
		}
		if err != nil {
			return s.syncFailed(op, err, zap.String("date", d))
		}
	}
	return nil
}

// replaceStored overwrites the stored ledger and projection with the current
// in-memory state.
func (s *ledgerService) replaceStored(op string) error {
	defer s.updateClosingGauge()

	snap := s.ledger.Snapshot()
	if err := s.ledgerRepo.ReplaceAll(snap); err != nil {
		return s.syncFailed(op, err)
	}
	if err := s.summaryRepo.DeleteAll(); err != nil {
		return s.syncFailed(op, err)
	}
	for date, events := range snap.SalesByDate {
		units := ledger.Project(ledger.SummarizeWithPolicy(events, s.cfg.RevenuePolicy))
		if err := s.summaryRepo.SaveDaily(date, units); err != nil {
			return s.syncFailed(op, err, zap.String("date", date))
		}
	}
	return nil
}

func (s *ledgerService) rejected(op string, err error, fields ...zap.Field) error {
	s.metrics.Rejected.WithLabelValues(op, reason(err)).Inc()
	s.log.Warn(op+" rejected", append(fields, zap.Error(err))...)
	return err
}

func (s *ledgerService) syncFailed(op string, err error, fields ...zap.Field) error {
	s.metrics.SyncFailures.Inc()
	s.log.Error(op+" not persisted", append(fields, zap.Error(err))...)
	return &SyncError{Op: op, Err: err}
}

func (s *ledgerService) updateClosingGauge() {
	for _, p := range ledger.Pools {
		items, err := s.ledger.Items(p)
		if err != nil {
			continue
		}
		total := 0
		for _, it := range items {
			total += it.Closing()
		}
		s.metrics.LedgerClosings.WithLabelValues(string(p)).Set(float64(total))
	}
}

func (s *ledgerService) broadcastDay(action, date string) {
	events, _ := s.ledger.Day(date)
	s.broadcast(map[string]interface{}{
		"type":   "ledger_update",
		"action": action,
		"date":   date,
		"events": events,
	})
}

func (s *ledgerService) broadcast(payload map[string]interface{}) {
	if s.notifier == nil {
		return
	}
	s.notifier.Publish(payload)
}
