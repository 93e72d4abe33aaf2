package sim

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidStopLoss     = errors.New("invalid stop loss")
	ErrInvalidPositionSize = errors.New("invalid position size")
	ErrInsufficientFunds   = errors.New("insufficient funds")
	ErrInsufficientMargin  = errors.New("insufficient margin")
	ErrPositionOpen        = errors.New("position already open")
	ErrInvalidSide         = errors.New("invalid side")
	ErrInvalidBalance      = errors.New("initial balance must be positive")
)

// OpenError describes a rejected open request. The ledger is unchanged
// when one is returned.
type OpenError struct {
	Side     Side
	Price    decimal.Decimal
	StopLoss decimal.Decimal
	Balance  decimal.Decimal
	Quantity int64 // sized quantity at the point of rejection
	Err      error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("open %s at %s (stop %s, qty %d, balance %s): %v",
		e.Side, e.Price, e.StopLoss, e.Quantity, e.Balance, e.Err)
}

func (e *OpenError) Unwrap() error { return e.Err }
