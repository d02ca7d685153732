package service

import (
	"errors"
	"sync"
	"testing"
	"time"

	"go-shop-ledger/internal/ledger"
	"go-shop-ledger/internal/metrics"
	"go-shop-ledger/internal/model"
	"go-shop-ledger/internal/report"
	"go-shop-ledger/internal/repository"

	"go.uber.org/zap"
)

var errDBDown = errors.New("db down")

type fakeLedgerRepo struct {
	snap    ledger.Snapshot
	applied []repository.Change
	fail    bool
}

func (r *fakeLedgerRepo) Load() (ledger.Snapshot, error) { return r.snap, nil }

func (r *fakeLedgerRepo) Apply(change repository.Change) error {
	if r.fail {
		return errDBDown
	}
	r.applied = append(r.applied, change)
	return nil
}

func (r *fakeLedgerRepo) ReplaceAll(snap ledger.Snapshot) error {
	if r.fail {
		return errDBDown
	}
	r.snap = snap
	return nil
}

type fakeSummaryRepo struct {
	days map[string]map[string]ledger.Units
}

func newFakeSummaryRepo() *fakeSummaryRepo {
	return &fakeSummaryRepo{days: map[string]map[string]ledger.Units{}}
}

func (r *fakeSummaryRepo) SaveDaily(date string, units map[string]ledger.Units) error {
	r.days[date] = units
	return nil
}

func (r *fakeSummaryRepo) FindByDate(date string) (map[string]ledger.Units, error) {
	return r.days[date], nil
}

func (r *fakeSummaryRepo) FindAll() (map[string]map[string]ledger.Units, error) {
	return r.days, nil
}

func (r *fakeSummaryRepo) DeleteDaily(date string) error {
	delete(r.days, date)
	return nil
}

func (r *fakeSummaryRepo) DeleteAll() error {
	r.days = map[string]map[string]ledger.Units{}
	return nil
}

type fakeBillRepo struct {
	bills map[string]*model.BillClosure
	fail  bool
}

func newFakeBillRepo() *fakeBillRepo {
	return &fakeBillRepo{bills: map[string]*model.BillClosure{}}
}

func (r *fakeBillRepo) Create(bill *model.BillClosure) error {
	if r.fail {
		return errDBDown
	}
	r.bills[bill.Date] = bill
	return nil
}

func (r *fakeBillRepo) FindByDate(date string) (*model.BillClosure, error) {
	return r.bills[date], nil
}

func (r *fakeBillRepo) Delete(date string) error {
	delete(r.bills, date)
	return nil
}

func (r *fakeBillRepo) DeleteAll() error {
	r.bills = map[string]*model.BillClosure{}
	return nil
}

type fakeNotifier struct {
	mu       sync.Mutex
	payloads []map[string]interface{}
}

func (n *fakeNotifier) Publish(payload any) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if m, ok := payload.(map[string]interface{}); ok {
		n.payloads = append(n.payloads, m)
	}
}

func (n *fakeNotifier) actions() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []string
	for _, p := range n.payloads {
		out = append(out, p["action"].(string))
	}
	return out
}

type fakeMailer struct {
	sent []report.Message
	err  error
	// started and release, when set, hold Send until release is closed.
	started chan struct{}
	release chan struct{}
}

func (m *fakeMailer) Send(msg report.Message) error {
	if m.started != nil {
		close(m.started)
		<-m.release
	}
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

func (m *fakeMailer) Recipient() string { return "owner@example.com" }

type fixture struct {
	svc      LedgerService
	ledger   *ledger.Ledger
	repo     *fakeLedgerRepo
	summary  *fakeSummaryRepo
	bills    *fakeBillRepo
	notifier *fakeNotifier
	metrics  *metrics.Metrics
}

const testDay = "2024-03-15"

func newFixture(t *testing.T, policy ledger.RevenuePolicy) *fixture {
	t.Helper()
	clock := func() time.Time { return time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC) }
	l := ledger.New(nil, ledger.Config{Location: time.UTC, Now: clock})
	f := &fixture{
		ledger:   l,
		repo:     &fakeLedgerRepo{},
		summary:  newFakeSummaryRepo(),
		bills:    newFakeBillRepo(),
		notifier: &fakeNotifier{},
		metrics:  metrics.New(false),
	}
	f.svc = NewLedgerService(l, f.repo, f.summary, f.bills, f.notifier, f.metrics, zap.NewNop(), LedgerServiceConfig{
		RevenuePolicy: policy,
		DefaultItems:  []string{"Soda", "Cola"},
	})
	return f
}
