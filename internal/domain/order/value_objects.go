package order

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const MaxInstructionsLength = 500

var (
	ErrPickupInPast         = errors.New("pickup time cannot be in the past")
	ErrInstructionsTooLong  = errors.New("special instructions are too long")
	ErrInvalidQuantity      = errors.New("item quantity must be positive")
	ErrInvalidPaymentRef    = errors.New("payment reference is required")
	ErrPaymentAlreadyRecord = errors.New("payment already recorded")
)

// Pickup is either as soon as possible or an explicit time.
type Pickup struct {
	asap bool
	at   time.Time
}

func ASAP() Pickup {
	return Pickup{asap: true}
}

func PickupAt(at, now time.Time) (Pickup, error) {
	if at.Before(now) {
		return Pickup{}, ErrPickupInPast
	}
	return Pickup{at: at}, nil
}

// ReconstructPickup restores a persisted pickup; nil means ASAP.
func ReconstructPickup(at *time.Time) Pickup {
	if at == nil {
		return ASAP()
	}
	return Pickup{at: *at}
}

func (p Pickup) IsASAP() bool { return p.asap }

// Time is nil for ASAP pickups.
func (p Pickup) Time() *time.Time {
	if p.asap {
		return nil
	}
	t := p.at
	return &t
}

type Instructions struct {
	value string
}

func NewInstructions(s string) (Instructions, error) {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) > MaxInstructionsLength {
		return Instructions{}, ErrInstructionsTooLong
	}
	return Instructions{value: s}, nil
}

func (i Instructions) String() string {
	return i.value
}

// Item is a line as it was priced at checkout.
type Item struct {
	ProductID   uuid.UUID       `json:"product_id"`
	Name        string          `json:"name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Discount    decimal.Decimal `json:"discount"`
	AppliedDeal *string         `json:"applied_deal,omitempty"`
}
