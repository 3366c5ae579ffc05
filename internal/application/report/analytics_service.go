package report

import (
	"context"
	"sort"
	"time"

	"github.com/dukkan/backoffice/internal/domain/catalog"
	"github.com/dukkan/backoffice/internal/domain/trade"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// AdSpendProvider supplies the advertising spend attributed to a date range.
// The end bound is exclusive, matching the order range queries. The figure is
// an opaque external input; it is never computed locally.
type AdSpendProvider interface {
	Spend(ctx context.Context, start, end time.Time) (decimal.Decimal, error)
}

// AnalyticsService aggregates orders, purchases and ad spend into the
// financial metrics shown on the dashboard
type AnalyticsService struct {
	orderRepo   trade.OrderRepository
	productRepo catalog.ProductRepository
	adSpend     AdSpendProvider
	logger      *zap.Logger
}

// NewAnalyticsService creates a new AnalyticsService
func NewAnalyticsService(
	orderRepo trade.OrderRepository,
	productRepo catalog.ProductRepository,
	adSpend AdSpendProvider,
	logger *zap.Logger,
) *AnalyticsService {
	return &AnalyticsService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		adSpend:     adSpend,
		logger:      logger,
	}
}

// ReportQuery selects the aggregation window and an optional product subset.
// Dates are inclusive day bounds, interpreted as UTC midnight-to-midnight.
type ReportQuery struct {
	StartDate time.Time
	EndDate   time.Time
	Products  []string
}

// Metrics is the shared metric block of the overall report and each
// per-product breakdown. Ratio fields are nil when their denominator is
// zero; a division by zero must never surface as NaN or an error.
type Metrics struct {
	GrossTurnover   float64  `json:"gross_turnover"`
	NetTurnover     float64  `json:"net_turnover"`
	NetCost         float64  `json:"net_cost"`
	ShippingTotal   float64  `json:"shipping_total"`
	ReturnCostTotal float64  `json:"return_cost_total"`
	AdSpend         float64  `json:"ad_spend"`
	NetProfit       float64  `json:"net_profit"`
	NetMargin       *float64 `json:"net_margin"`
	CAC             *float64 `json:"cac"`
	NetCAC          *float64 `json:"net_cac"`
	TotalOrders     int      `json:"total_orders"`
	ConfirmedOrders int      `json:"confirmed_orders"`
	ReturnedOrders  int      `json:"returned_orders"`
}

// ProductStats is the per-product breakdown, emitted for every catalog
// product in scope even when it had no orders in range
type ProductStats struct {
	Metrics
	Product        string `json:"product"`
	ConfirmedUnits int    `json:"confirmed_units"`
	Stock          int    `json:"stock"`
	// StockRunwayDays estimates how many days current stock lasts at the
	// range's confirmed sales velocity; nil when nothing was sold in range
	StockRunwayDays *int `json:"stock_runway_days"`
}

// Report is the full aggregation result
type Report struct {
	Metrics
	StartDate time.Time      `json:"start_date"`
	EndDate   time.Time      `json:"end_date"`
	Days      int            `json:"days"`
	Products  []ProductStats `json:"products"`
}

// metricAccumulator collects decimal sums before the float conversion at the
// report boundary
type metricAccumulator struct {
	gross       decimal.Decimal
	net         decimal.Decimal
	cost        decimal.Decimal
	shipping    decimal.Decimal
	returnCosts decimal.Decimal
	total       int
	confirmed   int
	returned    int
	units       int
}

func (a *metricAccumulator) add(order *trade.Order, unitCost decimal.Decimal) {
	a.total++
	a.gross = a.gross.Add(order.TotalPrice)

	switch {
	case order.IsConfirmed():
		a.confirmed++
		a.units += order.PackageCount
		a.net = a.net.Add(order.TotalPrice)
		a.shipping = a.shipping.Add(order.ShippingCost)
		a.cost = a.cost.Add(unitCost.Mul(decimal.NewFromInt(int64(order.PackageCount))))
	case order.IsReturned():
		a.returned++
		if order.ReturnCost != nil {
			a.returnCosts = a.returnCosts.Add(*order.ReturnCost)
		}
	}
}

func (a *metricAccumulator) metrics(adSpend decimal.Decimal) Metrics {
	profit := a.net.Sub(a.cost).Sub(a.shipping).Sub(a.returnCosts).Sub(adSpend)

	m := Metrics{
		GrossTurnover:   a.gross.InexactFloat64(),
		NetTurnover:     a.net.InexactFloat64(),
		NetCost:         a.cost.InexactFloat64(),
		ShippingTotal:   a.shipping.InexactFloat64(),
		ReturnCostTotal: a.returnCosts.InexactFloat64(),
		AdSpend:         adSpend.InexactFloat64(),
		NetProfit:       profit.InexactFloat64(),
		TotalOrders:     a.total,
		ConfirmedOrders: a.confirmed,
		ReturnedOrders:  a.returned,
	}

	if !a.net.IsZero() {
		margin := profit.Div(a.net).InexactFloat64()
		m.NetMargin = &margin
	}
	if a.confirmed > 0 {
		confirmed := decimal.NewFromInt(int64(a.confirmed))
		cac := adSpend.Div(confirmed).InexactFloat64()
		m.CAC = &cac
		// net CAC keeps the blended denominator but attributes the full
		// acquisition cost including shipping subsidies
		netCAC := adSpend.Add(a.shipping).Div(confirmed).InexactFloat64()
		m.NetCAC = &netCAC
	}
	return m
}

// Aggregate computes the report for the given window
func (s *AnalyticsService) Aggregate(ctx context.Context, q ReportQuery) (*Report, error) {
	start := q.StartDate.UTC().Truncate(24 * time.Hour)
	end := q.EndDate.UTC().Truncate(24 * time.Hour).Add(24 * time.Hour)
	days := int(end.Sub(start).Hours() / 24)
	if days < 1 {
		days = 1
	}

	orders, err := s.orderRepo.FindInRange(ctx, start, end)
	if err != nil {
		return nil, err
	}

	// the full catalog, unpaginated: every product in scope gets a stats row
	// and contributes its unit cost to order costing
	products, err := s.productRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	nameFilter := buildNameFilter(q.Products)
	costByName := make(map[string]decimal.Decimal, len(products))
	for i := range products {
		costByName[products[i].NameKey] = products[i].UnitCost
	}

	spend := decimal.Zero
	if s.adSpend != nil {
		spend, err = s.adSpend.Spend(ctx, start, end)
		if err != nil {
			// the report still renders without the external figure
			s.logger.Warn("ad spend fetch failed, reporting zero spend", zap.Error(err))
			spend = decimal.Zero
		}
	}

	overall := &metricAccumulator{}
	perProduct := make(map[string]*metricAccumulator)

	for i := range orders {
		order := &orders[i]
		key := catalog.NormalizeName(order.ProductName)
		if nameFilter != nil && !nameFilter[key] {
			continue
		}

		unitCost := costByName[key]
		overall.add(order, unitCost)

		acc, ok := perProduct[key]
		if !ok {
			acc = &metricAccumulator{}
			perProduct[key] = acc
		}
		acc.add(order, unitCost)
	}

	report := &Report{
		Metrics:   overall.metrics(spend),
		StartDate: start,
		EndDate:   q.EndDate.UTC().Truncate(24 * time.Hour),
		Days:      days,
		Products:  make([]ProductStats, 0, len(products)),
	}

	// every catalog product in scope gets a row, zero-filled when idle, so
	// the dashboard can surface SKUs that stopped selling
	for i := range products {
		product := &products[i]
		if nameFilter != nil && !nameFilter[product.NameKey] {
			continue
		}

		acc := perProduct[product.NameKey]
		if acc == nil {
			acc = &metricAccumulator{}
		} else {
			delete(perProduct, product.NameKey)
		}

		// ad spend is a blended external figure with no per-product
		// breakdown, so product rows carry zero spend and nil CAC
		report.Products = append(report.Products, ProductStats{
			Metrics:         acc.metrics(decimal.Zero),
			Product:         product.Name,
			ConfirmedUnits:  acc.units,
			Stock:           product.Stock,
			StockRunwayDays: stockRunway(product.Stock, acc.units, days),
		})
	}

	// orders referencing names absent from the catalog still show up so the
	// figures reconcile with the overall block
	extras := make([]string, 0, len(perProduct))
	for key := range perProduct {
		extras = append(extras, key)
	}
	sort.Strings(extras)
	for _, key := range extras {
		acc := perProduct[key]
		report.Products = append(report.Products, ProductStats{
			Metrics:         acc.metrics(decimal.Zero),
			Product:         key,
			ConfirmedUnits:  acc.units,
			StockRunwayDays: stockRunway(0, acc.units, days),
		})
	}

	return report, nil
}

// stockRunway reports stock / (units/days) in whole days, nil when nothing
// was sold in range. Oversold products floor at zero days.
func stockRunway(stock, confirmedUnits, days int) *int {
	if confirmedUnits == 0 || days == 0 {
		return nil
	}
	runway := stock * days / confirmedUnits
	if runway < 0 {
		runway = 0
	}
	return &runway
}

func buildNameFilter(names []string) map[string]bool {
	if len(names) == 0 {
		return nil
	}
	filter := make(map[string]bool, len(names))
	for _, name := range names {
		filter[catalog.NormalizeName(name)] = true
	}
	return filter
}
