package ledger

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDay = "2024-03-15"

func newTestLedger(t *testing.T, cfg Config) *Ledger {
	t.Helper()
	cfg.Location = time.UTC
	cfg.Now = func() time.Time { return time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC) }
	return New(nil, cfg)
}

func seedSoda(t *testing.T, l *Ledger) {
	t.Helper()
	_, err := l.EnsureItem(PoolMRP, "Soda", Item{UnitPrice: decimal.NewFromInt(20)})
	require.NoError(t, err)
	_, err = l.AdjustField(PoolMRP, "Soda", FieldOpening, decimal.NewFromInt(10))
	require.NoError(t, err)
}

func price(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func TestRecordSale_AppendsEventAndIncrementsSold(t *testing.T) {
	l := newTestLedger(t, Config{})
	seedSoda(t, l)

	ev, err := l.RecordSale(Sale{Pool: PoolMRP, ProductName: "Soda", Quantity: 3, PriceOverride: price(20)})
	require.NoError(t, err)

	it, err := l.Item(PoolMRP, "Soda")
	require.NoError(t, err)
	assert.Equal(t, 3, it.Sold)
	assert.Equal(t, 7, it.Closing())

	day, err := l.Day(testDay)
	require.NoError(t, err)
	require.Len(t, day, 1)
	assert.Equal(t, ev, day[0])
	assert.Equal(t, "Soda", ev.ProductName)
	assert.Equal(t, 3, ev.Quantity)
	assert.True(t, decimal.NewFromInt(20).Equal(ev.UnitPrice))
	assert.Equal(t, PoolMRP, ev.Pool)
	assert.False(t, ev.IsTransfer)
	assert.NotEqual(t, uuid.Nil, ev.ID)
}

func TestRecordSale_UsesItemPriceWithoutOverride(t *testing.T) {
	l := newTestLedger(t, Config{})
	seedSoda(t, l)

	ev, err := l.RecordSale(Sale{Pool: PoolMRP, ProductName: "Soda", Quantity: 1})
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(20).Equal(ev.UnitPrice))

	// A later price change must not touch the recorded event.
	_, err = l.AdjustField(PoolMRP, "Soda", FieldUnitPrice, decimal.NewFromInt(25))
	require.NoError(t, err)
	day, _ := l.Day(testDay)
	assert.True(t, decimal.NewFromInt(20).Equal(day[0].UnitPrice))
}

func TestRecordSale_InsufficientStockLeavesStateUntouched(t *testing.T) {
	l := newTestLedger(t, Config{})
	seedSoda(t, l)
	_, err := l.RecordSale(Sale{Pool: PoolMRP, ProductName: "Soda", Quantity: 3, PriceOverride: price(20)})
	require.NoError(t, err)
	before := l.Snapshot()

	_, err = l.RecordSale(Sale{Pool: PoolMRP, ProductName: "Soda", Quantity: 8})
	assert.ErrorIs(t, err, ErrInsufficientStock)

	it, _ := l.Item(PoolMRP, "Soda")
	assert.Equal(t, 3, it.Sold)
	assert.True(t, before.Equal(l.Snapshot()))
}

func TestRecordSale_RejectsBadInput(t *testing.T) {
	l := newTestLedger(t, Config{})
	seedSoda(t, l)
	before := l.Snapshot()
	neg := decimal.NewFromInt(-1)
	fractional := decimal.RequireFromString("19.555")
	huge := decimal.RequireFromString("123456789012.5")

	cases := []struct {
		name string
		sale Sale
		want error
	}{
		{"zero quantity", Sale{Pool: PoolMRP, ProductName: "Soda", Quantity: 0}, ErrInvalidQuantity},
		{"negative quantity", Sale{Pool: PoolMRP, ProductName: "Soda", Quantity: -2}, ErrInvalidQuantity},
		{"negative price", Sale{Pool: PoolMRP, ProductName: "Soda", Quantity: 1, PriceOverride: &neg}, ErrInvalidPrice},
		{"three decimal price", Sale{Pool: PoolMRP, ProductName: "Soda", Quantity: 1, PriceOverride: &fractional}, ErrInvalidPrice},
		{"oversized price", Sale{Pool: PoolMRP, ProductName: "Soda", Quantity: 1, PriceOverride: &huge}, ErrInvalidPrice},
		{"unknown item", Sale{Pool: PoolMRP, ProductName: "Cola", Quantity: 1}, ErrNotFound},
		{"unknown pool", Sale{Pool: "Cellar", ProductName: "Soda", Quantity: 1}, ErrInvalidPool},
		{"bad date", Sale{Pool: PoolMRP, ProductName: "Soda", Quantity: 1, Date: "15/03/2024"}, ErrInvalidDate},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := l.RecordSale(tc.sale)
			assert.ErrorIs(t, err, tc.want)
			assert.True(t, before.Equal(l.Snapshot()))
		})
	}
}

func TestRecordSale_ExplicitDate(t *testing.T) {
	l := newTestLedger(t, Config{})
	seedSoda(t, l)

	_, err := l.RecordSale(Sale{Pool: PoolMRP, ProductName: "Soda", Quantity: 2, Date: "2024-03-01"})
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-03-01"}, l.Days())
}

func TestTransfer_MovesStockToBar(t *testing.T) {
	l := newTestLedger(t, Config{})
	seedSoda(t, l)
	_, err := l.RecordSale(Sale{Pool: PoolMRP, ProductName: "Soda", Quantity: 3})
	require.NoError(t, err)

	ev, err := l.Transfer(PoolMRP, PoolBar, "Soda", 4, "")
	require.NoError(t, err)

	mrp, _ := l.Item(PoolMRP, "Soda")
	assert.Equal(t, 4, mrp.TransferredOut)
	assert.Equal(t, 3, mrp.Closing())

	bar, err := l.Item(PoolBar, "Soda")
	require.NoError(t, err)
	assert.Equal(t, 4, bar.Opening)
	assert.True(t, decimal.NewFromInt(20).Equal(bar.UnitPrice))
	assert.Equal(t, 0, bar.Sold)

	assert.True(t, ev.IsTransfer)
	assert.Equal(t, PoolMRP, ev.Pool)
	assert.Equal(t, 4, ev.Quantity)
	day, _ := l.Day(testDay)
	assert.Len(t, day, 2)
}

func TestTransfer_ConservesQuantity(t *testing.T) {
	l := newTestLedger(t, Config{})
	seedSoda(t, l)
	_, err := l.EnsureItem(PoolBar, "Soda", Item{UnitPrice: decimal.NewFromInt(35), Inward: 2, Sold: 1})
	require.NoError(t, err)

	mrpBefore, _ := l.Item(PoolMRP, "Soda")
	barBefore, _ := l.Item(PoolBar, "Soda")

	_, err = l.Transfer(PoolMRP, PoolBar, "Soda", 5, "")
	require.NoError(t, err)

	mrpAfter, _ := l.Item(PoolMRP, "Soda")
	barAfter, _ := l.Item(PoolBar, "Soda")
	assert.Equal(t, mrpBefore.Closing()-5, mrpAfter.Closing())
	assert.Equal(t, barBefore.Opening+5, barAfter.Opening)

	// Only opening changes on the destination; its price was already set.
	barAfter.Opening = barBefore.Opening
	assert.Equal(t, barBefore, barAfter)
}

func TestTransfer_PriceIsSticky(t *testing.T) {
	l := newTestLedger(t, Config{})
	seedSoda(t, l)

	_, err := l.Transfer(PoolMRP, PoolBar, "Soda", 1, "")
	require.NoError(t, err)
	_, err = l.AdjustField(PoolBar, "Soda", FieldUnitPrice, decimal.NewFromInt(30))
	require.NoError(t, err)
	_, err = l.AdjustField(PoolMRP, "Soda", FieldUnitPrice, decimal.NewFromInt(22))
	require.NoError(t, err)

	_, err = l.Transfer(PoolMRP, PoolBar, "Soda", 1, "")
	require.NoError(t, err)
	bar, _ := l.Item(PoolBar, "Soda")
	assert.True(t, decimal.NewFromInt(30).Equal(bar.UnitPrice))
	assert.Equal(t, 2, bar.Opening)
}

func TestTransfer_Rejections(t *testing.T) {
	l := newTestLedger(t, Config{})
	seedSoda(t, l)
	_, err := l.EnsureItem(PoolBar, "Soda", Item{Opening: 5})
	require.NoError(t, err)
	before := l.Snapshot()

	cases := []struct {
		name     string
		from, to Pool
		product  string
		qty      int
		want     error
	}{
		{"too many", PoolMRP, PoolBar, "Soda", 11, ErrInsufficientStock},
		{"zero", PoolMRP, PoolBar, "Soda", 0, ErrInvalidQuantity},
		{"same pool", PoolMRP, PoolMRP, "Soda", 1, ErrSamePool},
		{"reverse disabled", PoolBar, PoolMRP, "Soda", 1, ErrTransferDirection},
		{"missing source", PoolMRP, PoolBar, "Cola", 1, ErrNotFound},
		{"bad pool", PoolMRP, "Cellar", "Soda", 1, ErrInvalidPool},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := l.Transfer(tc.from, tc.to, tc.product, tc.qty, "")
			assert.ErrorIs(t, err, tc.want)
			assert.True(t, before.Equal(l.Snapshot()))
		})
	}
}

func TestTransfer_BarToMRPWhenEnabled(t *testing.T) {
	l := newTestLedger(t, Config{AllowBarToMRP: true})
	_, err := l.EnsureItem(PoolBar, "Cola", Item{Opening: 6, UnitPrice: decimal.NewFromInt(15)})
	require.NoError(t, err)

	ev, err := l.Transfer(PoolBar, PoolMRP, "Cola", 2, "")
	require.NoError(t, err)
	assert.Equal(t, PoolBar, ev.Pool)

	bar, _ := l.Item(PoolBar, "Cola")
	assert.Equal(t, 2, bar.TransferredOut)
	assert.Equal(t, 4, bar.Closing())
	mrp, err := l.Item(PoolMRP, "Cola")
	require.NoError(t, err)
	assert.Equal(t, 2, mrp.Opening)
	assert.True(t, decimal.NewFromInt(15).Equal(mrp.UnitPrice))
}

func TestAdjustField(t *testing.T) {
	l := newTestLedger(t, Config{})
	seedSoda(t, l)

	it, err := l.AdjustField(PoolMRP, "Soda", FieldInward, decimal.NewFromInt(-4))
	require.NoError(t, err)
	assert.Equal(t, 0, it.Inward, "negative input clamps to zero")

	it, err = l.AdjustField(PoolMRP, "Soda", FieldInward, decimal.RequireFromString("6.9"))
	require.NoError(t, err)
	assert.Equal(t, 6, it.Inward)
	assert.Equal(t, 16, it.Closing())

	it, err = l.AdjustField(PoolMRP, "Soda", FieldUnitPrice, decimal.RequireFromString("19.50"))
	require.NoError(t, err)
	assert.Equal(t, "19.5", it.UnitPrice.String())

	_, err = l.AdjustField(PoolMRP, "Soda", "sold", decimal.NewFromInt(1))
	assert.ErrorIs(t, err, ErrInvalidField)

	_, err = l.AdjustField(PoolBar, "Soda", FieldOpening, decimal.NewFromInt(1))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAdjustField_CannotDriveClosingNegative(t *testing.T) {
	l := newTestLedger(t, Config{})
	seedSoda(t, l)
	_, err := l.RecordSale(Sale{Pool: PoolMRP, ProductName: "Soda", Quantity: 8})
	require.NoError(t, err)

	_, err = l.AdjustField(PoolMRP, "Soda", FieldOpening, decimal.NewFromInt(5))
	assert.ErrorIs(t, err, ErrInsufficientStock)
	it, _ := l.Item(PoolMRP, "Soda")
	assert.Equal(t, 10, it.Opening)
}

func TestAdjustField_RejectsUnstorablePrices(t *testing.T) {
	l := newTestLedger(t, Config{})
	seedSoda(t, l)

	for _, v := range []string{"19.555", "123456789012.5", "10000000000"} {
		_, err := l.AdjustField(PoolMRP, "Soda", FieldUnitPrice, decimal.RequireFromString(v))
		assert.ErrorIs(t, err, ErrInvalidPrice, v)
	}
	it, _ := l.Item(PoolMRP, "Soda")
	assert.True(t, it.UnitPrice.Equal(decimal.NewFromInt(20)))

	it, err := l.AdjustField(PoolMRP, "Soda", FieldUnitPrice, decimal.RequireFromString("9999999999.99"))
	require.NoError(t, err)
	assert.Equal(t, "9999999999.99", it.UnitPrice.String())

	_, err = l.AddEntry(testDay, SaleEvent{ProductName: "Soda", Quantity: 1, UnitPrice: decimal.RequireFromString("0.001"), Pool: PoolMRP})
	assert.ErrorIs(t, err, ErrInvalidPrice)
	assert.Empty(t, l.Days())
}

func TestAdjustField_RejectsOversizedCounts(t *testing.T) {
	l := newTestLedger(t, Config{})
	seedSoda(t, l)

	for _, field := range []Field{FieldOpening, FieldInward} {
		_, err := l.AdjustField(PoolMRP, "Soda", field, decimal.RequireFromString("1e30"))
		assert.ErrorIs(t, err, ErrInvalidQuantity, field)
		_, err = l.AdjustField(PoolMRP, "Soda", field, decimal.NewFromInt(MaxUnits+1))
		assert.ErrorIs(t, err, ErrInvalidQuantity, field)
	}
	it, _ := l.Item(PoolMRP, "Soda")
	assert.Equal(t, 10, it.Opening)
	assert.Equal(t, 0, it.Inward)

	it, err := l.AdjustField(PoolMRP, "Soda", FieldInward, decimal.NewFromInt(MaxUnits))
	require.NoError(t, err)
	assert.Equal(t, MaxUnits, it.Inward)
}

func TestEnsureItem_IsIdempotent(t *testing.T) {
	l := newTestLedger(t, Config{})
	first, err := l.EnsureItem(PoolBar, "Chips", Item{UnitPrice: decimal.NewFromInt(10)})
	require.NoError(t, err)
	second, err := l.EnsureItem(PoolBar, "Chips", Item{UnitPrice: decimal.NewFromInt(99), Opening: 4})
	require.NoError(t, err)
	assert.Equal(t, first, second)

	items, _ := l.Items(PoolBar)
	assert.Len(t, items, 1)

	_, err = l.EnsureItem(PoolBar, "  ", Item{})
	assert.ErrorIs(t, err, ErrInvalidName)
}

func TestClosing_NotFound(t *testing.T) {
	l := newTestLedger(t, Config{})
	_, err := l.Closing(PoolMRP, "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClosingNeverNegativeAcrossOperations(t *testing.T) {
	l := newTestLedger(t, Config{AllowBarToMRP: true})
	seedSoda(t, l)
	ops := []func() error{
		func() error {
			_, err := l.RecordSale(Sale{Pool: PoolMRP, ProductName: "Soda", Quantity: 4})
			return err
		},
		func() error { _, err := l.Transfer(PoolMRP, PoolBar, "Soda", 5, ""); return err },
		func() error {
			_, err := l.RecordSale(Sale{Pool: PoolMRP, ProductName: "Soda", Quantity: 2})
			return err
		},
		func() error { _, err := l.Transfer(PoolBar, PoolMRP, "Soda", 3, ""); return err },
		func() error {
			_, err := l.RecordSale(Sale{Pool: PoolBar, ProductName: "Soda", Quantity: 3})
			return err
		},
		func() error {
			_, err := l.AdjustField(PoolMRP, "Soda", FieldOpening, decimal.Zero)
			return err
		},
	}
	for _, op := range ops {
		_ = op()
		for _, pool := range Pools {
			items, _ := l.Items(pool)
			for _, it := range items {
				assert.GreaterOrEqual(t, it.Closing(), 0, "%s %s", pool, it.Name)
			}
		}
	}
}

func TestDayEdits(t *testing.T) {
	l := newTestLedger(t, Config{})
	seedSoda(t, l)
	sold, err := l.RecordSale(Sale{Pool: PoolMRP, ProductName: "Soda", Quantity: 2})
	require.NoError(t, err)

	added, err := l.AddEntry(testDay, SaleEvent{ProductName: "Cola", Quantity: 1, UnitPrice: decimal.NewFromInt(15), Pool: PoolBar})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, added.ID)

	_, err = l.AddEntry(testDay, SaleEvent{ProductName: "Cola", Quantity: 0, Pool: PoolBar})
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	require.NoError(t, l.RemoveEntry(testDay, sold.ID))
	day, _ := l.Day(testDay)
	require.Len(t, day, 1)
	assert.Equal(t, added.ID, day[0].ID)
	assert.ErrorIs(t, l.RemoveEntry(testDay, sold.ID), ErrNotFound)

	// Log edits do not touch stock counters.
	it, _ := l.Item(PoolMRP, "Soda")
	assert.Equal(t, 2, it.Sold)

	replaced, err := l.ReplaceDay(testDay, []SaleEvent{
		{ProductName: "Soda", Quantity: 5, UnitPrice: decimal.NewFromInt(20), Pool: PoolMRP},
	})
	require.NoError(t, err)
	require.Len(t, replaced, 1)
	assert.NotEqual(t, uuid.Nil, replaced[0].ID)

	before := l.Snapshot()
	_, err = l.ReplaceDay(testDay, []SaleEvent{
		{ProductName: "Soda", Quantity: 1, Pool: PoolMRP},
		{ProductName: "Soda", Quantity: 1, Pool: "nowhere"},
	})
	assert.ErrorIs(t, err, ErrInvalidPool)
	assert.True(t, before.Equal(l.Snapshot()))

	require.NoError(t, l.DeleteDay(testDay))
	assert.Empty(t, l.Days())
	assert.ErrorIs(t, l.DeleteDay(testDay), ErrNotFound)
}

func TestDayEdits_RejectDuplicateEntryIDs(t *testing.T) {
	l := newTestLedger(t, Config{})
	seedSoda(t, l)
	sold, err := l.RecordSale(Sale{Pool: PoolMRP, ProductName: "Soda", Quantity: 2})
	require.NoError(t, err)
	before := l.Snapshot()

	twice := ev("Soda", 1, 20, PoolMRP, false)
	twice.ID = uuid.New()
	_, err = l.ReplaceDay(testDay, []SaleEvent{twice, twice})
	assert.ErrorIs(t, err, ErrDuplicateEntry)

	reused := ev("Soda", 1, 20, PoolMRP, false)
	reused.ID = sold.ID
	_, err = l.ReplaceDay("2024-03-14", []SaleEvent{reused})
	assert.ErrorIs(t, err, ErrDuplicateEntry)

	_, err = l.AddEntry(testDay, reused)
	assert.ErrorIs(t, err, ErrDuplicateEntry)
	_, err = l.AddEntry("2024-03-14", reused)
	assert.ErrorIs(t, err, ErrDuplicateEntry)
	assert.True(t, before.Equal(l.Snapshot()))

	// Keeping an ID on its own date is a plain rewrite.
	reused.Quantity = 3
	day, err := l.ReplaceDay(testDay, []SaleEvent{reused})
	require.NoError(t, err)
	assert.Equal(t, sold.ID, day[0].ID)
}

func TestDays_NewestFirst(t *testing.T) {
	l := newTestLedger(t, Config{})
	for _, d := range []string{"2024-01-02", "2024-03-01", "2023-12-31"} {
		_, err := l.AddEntry(d, SaleEvent{ProductName: "Soda", Quantity: 1, Pool: PoolMRP})
		require.NoError(t, err)
	}
	assert.Equal(t, []string{"2024-03-01", "2024-01-02", "2023-12-31"}, l.Days())
}

func TestReset(t *testing.T) {
	l := newTestLedger(t, Config{})
	seedSoda(t, l)
	_, err := l.RecordSale(Sale{Pool: PoolMRP, ProductName: "Soda", Quantity: 2})
	require.NoError(t, err)

	require.NoError(t, l.Reset([]string{"2 Litre Water", "chips", "chips"}))

	snap := l.Snapshot()
	assert.Empty(t, snap.SalesByDate)
	for _, pool := range Pools {
		items, _ := l.Items(pool)
		require.Len(t, items, 2)
		assert.Equal(t, "2 Litre Water", items[0].Name)
		assert.Equal(t, 0, items[0].Opening)
		assert.True(t, items[0].UnitPrice.IsZero())
	}
}

func TestSnapshot_JSONRoundTrip(t *testing.T) {
	l := newTestLedger(t, Config{})
	seedSoda(t, l)
	_, err := l.AdjustField(PoolMRP, "Soda", FieldUnitPrice, decimal.RequireFromString("20.75"))
	require.NoError(t, err)
	_, err = l.RecordSale(Sale{Pool: PoolMRP, ProductName: "Soda", Quantity: 3})
	require.NoError(t, err)
	_, err = l.Transfer(PoolMRP, PoolBar, "Soda", 2, "2024-03-14")
	require.NoError(t, err)

	snap := l.Snapshot()
	raw, err := json.Marshal(snap)
	require.NoError(t, err)

	var decoded Snapshot
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.True(t, snap.Equal(decoded))

	restored := newTestLedger(t, Config{})
	require.NoError(t, restored.Restore(decoded))
	assert.True(t, snap.Equal(restored.Snapshot()))
}

func TestSnapshot_IsACopy(t *testing.T) {
	l := newTestLedger(t, Config{})
	seedSoda(t, l)
	_, err := l.RecordSale(Sale{Pool: PoolMRP, ProductName: "Soda", Quantity: 1})
	require.NoError(t, err)

	snap := l.Snapshot()
	snap.Items.MRP[0].Sold = 99
	snap.SalesByDate[testDay][0].Quantity = 99

	it, _ := l.Item(PoolMRP, "Soda")
	assert.Equal(t, 1, it.Sold)
	day, _ := l.Day(testDay)
	assert.Equal(t, 1, day[0].Quantity)
}

func TestRestore_AssignsMissingEventIDs(t *testing.T) {
	l := newTestLedger(t, Config{})
	require.NoError(t, l.Restore(Snapshot{SalesByDate: map[string][]SaleEvent{
		testDay: {ev("Soda", 1, 20, PoolMRP, false)},
	}}))

	day, err := l.Day(testDay)
	require.NoError(t, err)
	require.Len(t, day, 1)
	assert.NotEqual(t, uuid.Nil, day[0].ID)
	require.NoError(t, l.RemoveEntry(testDay, day[0].ID))
}

func TestRestore_RejectsBrokenSnapshot(t *testing.T) {
	l := newTestLedger(t, Config{})
	err := l.Restore(Snapshot{Items: PoolItems{MRP: []Item{{Name: "Soda", Opening: 1, Sold: 2}}}})
	assert.ErrorIs(t, err, ErrInsufficientStock)

	err = l.Restore(Snapshot{Items: PoolItems{Bar: []Item{{Name: "Soda"}, {Name: "Soda"}}}})
	assert.ErrorIs(t, err, ErrDuplicateItem)

	err = l.Restore(Snapshot{SalesByDate: map[string][]SaleEvent{"yesterday": nil}})
	assert.ErrorIs(t, err, ErrInvalidDate)

	dup := ev("Soda", 1, 20, PoolMRP, false)
	dup.ID = uuid.New()
	err = l.Restore(Snapshot{SalesByDate: map[string][]SaleEvent{
		testDay:      {dup},
		"2024-03-14": {dup},
	}})
	assert.ErrorIs(t, err, ErrDuplicateEntry)

	err = l.Restore(Snapshot{SalesByDate: map[string][]SaleEvent{testDay: {dup, dup}}})
	assert.ErrorIs(t, err, ErrDuplicateEntry)
}

func TestParsePool(t *testing.T) {
	p, err := ParsePool("mrp")
	require.NoError(t, err)
	assert.Equal(t, PoolMRP, p)
	p, err = ParsePool(" BAR ")
	require.NoError(t, err)
	assert.Equal(t, PoolBar, p)
	_, err = ParsePool("cellar")
	assert.ErrorIs(t, err, ErrInvalidPool)
}

func TestParseDate(t *testing.T) {
	_, err := ParseDate("2024-03-15")
	assert.NoError(t, err)
	for _, bad := range []string{"2024-3-15", "2024-02-30", "", "15-03-2024"} {
		_, err := ParseDate(bad)
		assert.ErrorIs(t, err, ErrInvalidDate, bad)
	}
}
