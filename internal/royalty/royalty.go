package royalty

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/remixrite/remix-ledger/internal/domain"
)

// Strategy splits a remix fee among the remix's parent clips
//
//go:generate mockgen -source=royalty.go -destination=../mocks/royalty.go -package=mocks -mock_names=Strategy=MockRoyaltyStrategy
type Strategy interface {
	// Split returns one share per parent; the amounts sum to totalFee exactly
	Split(parents []domain.Clip, totalFee decimal.Decimal) ([]domain.Share, error)
}

// EqualSplit gives every parent the same amount at currency precision.
// The last share absorbs the rounding remainder.
type EqualSplit struct {
	// Places is the number of decimal places of the currency
	Places int32
}

// NewEqualSplit creates an equal split at the default currency precision
func NewEqualSplit() Strategy {
	return EqualSplit{Places: domain.DEFAULT_CURRENCY_DECIMAL}
}

func (s EqualSplit) Split(parents []domain.Clip, totalFee decimal.Decimal) ([]domain.Share, error) {
	if len(parents) == 0 {
		return nil, &domain.ValidationError{Field: "parents", Message: "at least one parent is required", Err: domain.ErrInvalidFee}
	}
	if !totalFee.IsPositive() {
		return nil, &domain.ValidationError{Field: "fee", Message: fmt.Sprintf("fee must be positive, got %s", totalFee), Err: domain.ErrInvalidFee}
	}
	if !totalFee.Equal(totalFee.Truncate(s.Places)) {
		return nil, &domain.ValidationError{Field: "fee", Message: fmt.Sprintf("fee %s has more than %d decimal places", totalFee, s.Places), Err: domain.ErrInvalidFee}
	}

	n := decimal.NewFromInt(int64(len(parents)))
	each := totalFee.Div(n).RoundFloor(s.Places)
	if !each.IsPositive() {
		return nil, &domain.ValidationError{Field: "fee", Message: fmt.Sprintf("fee %s is too small to split among %d parents", totalFee, len(parents)), Err: domain.ErrInvalidFee}
	}

	shares := make([]domain.Share, len(parents))
	allocated := decimal.Zero
	for i, clip := range parents {
		amount := each
		if i == len(parents)-1 {
			amount = totalFee.Sub(allocated)
		}
		allocated = allocated.Add(amount)

		shares[i] = domain.Share{
			ClipID:       clip.ID,
			OwnerAddress: clip.OwnerAddress,
			Amount:       amount,
		}
	}

	return shares, nil
}

// Total sums the share amounts
func Total(shares []domain.Share) decimal.Decimal {
	total := decimal.Zero
	for _, s := range shares {
		total = total.Add(s.Amount)
	}
	return total
}

// ParseFee parses a configured fee. The fee must give every parent of the
// largest allowed remix at least one currency unit.
func ParseFee(fee string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(fee)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse fee %q: %w", fee, err)
	}
	if !d.IsPositive() {
		return decimal.Zero, fmt.Errorf("fee must be positive, got %s: %w", fee, domain.ErrInvalidFee)
	}
	if !d.Equal(d.Truncate(domain.DEFAULT_CURRENCY_DECIMAL)) {
		return decimal.Zero, fmt.Errorf("fee %s has more than %d decimal places: %w", fee, domain.DEFAULT_CURRENCY_DECIMAL, domain.ErrInvalidFee)
	}
	if d.LessThan(MinFee(domain.MAX_CLIPS_PER_REMIX)) {
		return decimal.Zero, fmt.Errorf("fee %s is below %s needed for %d parents: %w",
			fee, MinFee(domain.MAX_CLIPS_PER_REMIX), domain.MAX_CLIPS_PER_REMIX, domain.ErrInvalidFee)
	}
	return d, nil
}

// MinFee is the smallest fee that gives each of n parents a positive share
func MinFee(n int) decimal.Decimal {
	return decimal.New(int64(n), -domain.DEFAULT_CURRENCY_DECIMAL)
}
