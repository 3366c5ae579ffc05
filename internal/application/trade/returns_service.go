package trade

import (
	"context"
	"errors"

	"github.com/dukkan/backoffice/internal/domain/shared"
	"github.com/dukkan/backoffice/internal/domain/trade"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ReturnsService reconciles carrier return reports against stored orders
type ReturnsService struct {
	orderRepo trade.OrderRepository
	logger    *zap.Logger
}

// NewReturnsService creates a new ReturnsService
func NewReturnsService(orderRepo trade.OrderRepository, logger *zap.Logger) *ReturnsService {
	return &ReturnsService{
		orderRepo: orderRepo,
		logger:    logger,
	}
}

// ReturnRecord is one row of a returns batch. Cost, when set, is the final
// return cost; otherwise it is derived as Charged - Refunded.
type ReturnRecord struct {
	Phone    string
	Cost     *float64
	Charged  float64
	Refunded float64
}

func (r ReturnRecord) cost() decimal.Decimal {
	if r.Cost != nil {
		return decimal.NewFromFloat(*r.Cost)
	}
	return decimal.NewFromFloat(r.Charged).Sub(decimal.NewFromFloat(r.Refunded))
}

// BatchResult tallies a processed returns batch
type BatchResult struct {
	Processed int `json:"processed"`
	NotFound  int `json:"not_found"`
}

// ErrNoPlausiblePhones indicates a batch where no row carries enough digits
// to match anything; processing it would only produce a useless all-not-found
// tally, so it is rejected before any write.
var ErrNoPlausiblePhones = shared.NewDomainError("NO_PLAUSIBLE_PHONES", "No record in the batch carries a matchable phone number")

// ProcessBatch matches each record to an order by the trailing 10 digits of
// the phone, marks matches returned with their computed cost, and tallies
// misses. Per-record misses never abort the batch.
func (s *ReturnsService) ProcessBatch(ctx context.Context, records []ReturnRecord) (*BatchResult, error) {
	plausible := false
	for _, record := range records {
		if trade.PhoneSuffix(record.Phone) != "" {
			plausible = true
			break
		}
	}
	if !plausible {
		return nil, ErrNoPlausiblePhones
	}

	result := &BatchResult{}
	for _, record := range records {
		suffix := trade.PhoneSuffix(record.Phone)
		if suffix == "" {
			result.NotFound++
			continue
		}

		order, err := s.orderRepo.FindActiveByPhoneSuffix(ctx, suffix)
		if err != nil {
			if !errors.Is(err, shared.ErrNotFound) {
				s.logger.Warn("return record lookup failed",
					zap.String("phone_suffix", suffix),
					zap.Error(err))
			}
			result.NotFound++
			continue
		}

		order.MarkReturned(record.cost())
		if err := s.orderRepo.Save(ctx, order); err != nil {
			s.logger.Warn("return record save failed",
				zap.String("order_id", order.ID.String()),
				zap.Error(err))
			result.NotFound++
			continue
		}
		result.Processed++
	}

	return result, nil
}
