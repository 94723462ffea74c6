// =============================================================================
// Purchase Order Generator - Record Generator and Dataset Builder
// =============================================================================
//
// This module synthesizes purchase order records with randomized values.
//
// RECORD GENERATION:
//   1. Draw 1-5 line items (item, quantity 1-100, unit price 0-1000, category)
//   2. Aggregate quantity and totals across the line items
//   3. Draw every enumerated field uniformly from the catalog
//   4. Derive tax (10%) and grand total (110%) from the total amount
//
// MONEY:
//   Amounts are decimal.Decimal values rounded half away from zero to two
//   places, so sums and derived totals are exact.
//
// RANDOMNESS:
//   The generator owns a *rand.Rand supplied by the caller. Seed it for
//   reproducible output; tests rely on this.
//
// =============================================================================

package generator

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ginjaninja78/po-data-generator/internal/catalog"
)

// ErrInvalidCount is returned when a dataset of zero or fewer records is requested.
var ErrInvalidCount = errors.New("record count must be greater than zero")

// Generation ranges.
const (
	minLineItems    = 1
	maxLineItems    = 5
	minQuantity     = 1
	maxQuantity     = 100
	minDeliveryDays = 5
	maxDeliveryDays = 30
	minPOSequence   = 10000
	maxPOSequence   = 99999
)

// MoneyPlaces is the number of decimal places kept for every amount.
const MoneyPlaces = 2

var (
	maxUnitPrice = decimal.NewFromInt(1000)
	taxRate      = decimal.RequireFromString("0.10")
	grandRate    = decimal.RequireFromString("1.10")
)

// =============================================================================
// GENERATOR
// =============================================================================

// Generator produces purchase order records.
// A Generator is not safe for concurrent use; its random source is unsynchronized.
type Generator struct {
	rand *rand.Rand
	now  func() time.Time
}

// Option configures a Generator.
type Option func(*Generator)

// WithClock overrides the clock used for PO numbers and dates.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		g.now = now
	}
}

// New creates a Generator drawing from r.
func New(r *rand.Rand, opts ...Option) *Generator {
	g := &Generator{
		rand: r,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// NewSeeded creates a Generator with a PCG source built from seed.
func NewSeeded(seed uint64, opts ...Option) *Generator {
	return New(rand.New(rand.NewPCG(seed, seed)), opts...)
}

// =============================================================================
// RECORD GENERATION
// =============================================================================

// NewLineItem draws one line item.
func (g *Generator) NewLineItem() LineItem {
	quantity := g.between(minQuantity, maxQuantity)
	unitPrice := decimal.NewFromFloat(g.rand.Float64()).Mul(maxUnitPrice).Round(MoneyPlaces)

	return LineItem{
		Name:       pick(g.rand, catalog.Items),
		Quantity:   quantity,
		UnitPrice:  unitPrice,
		TotalPrice: unitPrice.Mul(decimal.NewFromInt(int64(quantity))).Round(MoneyPlaces),
		Category:   pick(g.rand, catalog.Categories),
	}
}

// NewRecord produces one fully populated purchase order.
func (g *Generator) NewRecord() PurchaseOrder {
	count := g.between(minLineItems, maxLineItems)
	items := make([]LineItem, 0, count)
	for i := 0; i < count; i++ {
		items = append(items, g.NewLineItem())
	}
	return g.recordFrom(items)
}

// recordFrom aggregates items into a purchase order and draws the remaining
// fields. items must not be empty.
func (g *Generator) recordFrom(items []LineItem) PurchaseOrder {
	today := g.today()
	delivery := today.AddDate(0, 0, g.between(minDeliveryDays, maxDeliveryDays))

	descriptions := make([]string, len(items))
	quantity := 0
	total := decimal.Zero
	for i, item := range items {
		descriptions[i] = fmt.Sprintf("%dx %s", item.Quantity, item.Name)
		quantity += item.Quantity
		total = total.Add(item.TotalPrice)
	}
	total = total.Round(MoneyPlaces)

	return PurchaseOrder{
		PONumber:         g.poNumber(today),
		Vendor:           pick(g.rand, catalog.Vendors),
		PODate:           today,
		DeliveryDate:     delivery,
		ExpectedDelivery: delivery,
		ItemDescription:  strings.Join(descriptions, "; "),
		Quantity:         quantity,
		UnitPrice:        items[0].UnitPrice,
		TotalAmount:      total,
		Currency:         pick(g.rand, catalog.Currencies),
		PaymentTerms:     pick(g.rand, catalog.PaymentTerms),
		Department:       pick(g.rand, catalog.Departments),
		Location:         pick(g.rand, catalog.Locations),
		ApprovalStatus:   pick(g.rand, catalog.ApprovalStatuses),
		Priority:         pick(g.rand, catalog.Priorities),
		Notes:            pick(g.rand, catalog.Notes),
		TaxAmount:        Tax(total),
		GrandTotal:       GrandTotal(total),
		CreatedBy:        pick(g.rand, catalog.Creators),
		AssignedTo:       pick(g.rand, catalog.Assignees),
		Items:            items,
	}
}

// poNumber formats "PO-<year>-<5 digits>".
func (g *Generator) poNumber(today time.Time) string {
	return fmt.Sprintf("PO-%d-%d", today.Year(), g.between(minPOSequence, maxPOSequence))
}

// today returns the current UTC date at midnight.
func (g *Generator) today() time.Time {
	now := g.now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// between returns a uniform integer in [lo, hi].
func (g *Generator) between(lo, hi int) int {
	return lo + g.rand.IntN(hi-lo+1)
}

// =============================================================================
// DATASET BUILDER
// =============================================================================

// Progress receives one Add call per generated record.
// *progressbar.ProgressBar satisfies it.
type Progress interface {
	Add(num int) error
}

// Build generates exactly n records in generation order.
//
// PARAMETERS:
//   - n: The number of records. Must be greater than zero.
//   - progress: Optional sink notified after each record. May be nil.
//
// RETURNS:
//   - The records.
//   - ErrInvalidCount if n <= 0.
func (g *Generator) Build(n int, progress Progress) ([]PurchaseOrder, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCount, n)
	}

	records := make([]PurchaseOrder, 0, n)
	for i := 0; i < n; i++ {
		records = append(records, g.NewRecord())
		if progress != nil {
			// A rendering failure does not affect the dataset.
			_ = progress.Add(1)
		}
	}

	return records, nil
}

// =============================================================================
// HELPERS
// =============================================================================

// Tax returns 10% of total, rounded to two places.
func Tax(total decimal.Decimal) decimal.Decimal {
	return total.Mul(taxRate).Round(MoneyPlaces)
}

// GrandTotal returns 110% of total, rounded to two places.
func GrandTotal(total decimal.Decimal) decimal.Decimal {
	return total.Mul(grandRate).Round(MoneyPlaces)
}

func pick(r *rand.Rand, values []string) string {
	return values[r.IntN(len(values))]
}
