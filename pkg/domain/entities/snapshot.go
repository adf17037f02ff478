package entities

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// LifecycleState represents the business state of an event ("stato evento")
type LifecycleState int

const (
	LifecycleUnknown LifecycleState = iota
	Draft
	Confirmed
	Cancelled
	Invoiced
)

// String method for LifecycleState enum
func (s LifecycleState) String() string {
	switch s {
	case Draft:
		return "draft"
	case Confirmed:
		return "confirmed"
	case Cancelled:
		return "cancelled"
	case Invoiced:
		return "invoiced"
	default:
		return ""
	}
}

// ParseLifecycleState maps a raw state string to a LifecycleState. Both the
// English identifiers and the Italian values stored by the legacy backend
// ("bozza", "confermato", ...) are accepted.
func ParseLifecycleState(raw string) LifecycleState {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "draft", "bozza":
		return Draft
	case "confirmed", "confermato":
		return Confirmed
	case "cancelled", "annullato":
		return Cancelled
	case "invoiced", "fatturato":
		return Invoiced
	default:
		return LifecycleUnknown
	}
}

// OfferState represents the quote sub-state of an event ("stato offerta")
type OfferState int

const (
	OfferUnknown OfferState = iota
	OfferToDo
	OfferSent
	OfferCancelled
)

// String method for OfferState enum
func (s OfferState) String() string {
	switch s {
	case OfferToDo:
		return "to_do"
	case OfferSent:
		return "sent"
	case OfferCancelled:
		return "cancelled"
	default:
		return ""
	}
}

// ParseOfferState maps a raw offer state string to an OfferState.
func ParseOfferState(raw string) OfferState {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "to_do", "da_eseguire":
		return OfferToDo
	case "sent", "inviato":
		return OfferSent
	case "cancelled", "annullato":
		return OfferCancelled
	default:
		return OfferUnknown
	}
}

// PayState represents a payment sub-state (deposit or balance)
type PayState int

const (
	PayUnknown PayState = iota
	PayNone
	PayToSend
	PaySent
	PayPaid
)

// String method for PayState enum
func (s PayState) String() string {
	switch s {
	case PayNone:
		return "none"
	case PayToSend:
		return "to_send"
	case PaySent:
		return "sent"
	case PayPaid:
		return "paid"
	default:
		return ""
	}
}

// ParsePayState maps a raw payment state string to a PayState.
func ParsePayState(raw string) PayState {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "none":
		return PayNone
	case "to_send":
		return PayToSend
	case "sent":
		return PaySent
	case "paid":
		return PayPaid
	default:
		return PayUnknown
	}
}

// LineItem represents one rented article at one price point within a Snapshot.
// Quantity semantics depend on the kind flags: pieces for plain materials,
// hours for labor, kilometers for transport.
type LineItem struct {
	ItemID      int64
	Name        string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	Category    string
	Subcategory string
	IsLabor     bool
	IsTransport bool
}

// DisplayName returns the line's label, substituting an identifier-based
// placeholder when the source payload carried no name.
func (l LineItem) DisplayName() string {
	if l.Name != "" {
		return l.Name
	}
	return fmt.Sprintf("#%d", l.ItemID)
}

// Amount returns quantity times unit price.
func (l LineItem) Amount() decimal.Decimal {
	return l.Quantity.Mul(l.UnitPrice)
}

// Snapshot is an immutable point-in-time record of an event's business state.
// CreatedAt may be a normalization-time fallback when the source record
// carried no parseable timestamp; it must not be treated as authoritative
// ordering in that case.
type Snapshot struct {
	Ref            int64
	CreatedAt      time.Time
	Location       *int
	LifecycleState LifecycleState
	OfferState     OfferState
	DepositState   PayState
	BalanceState   PayState
	Lines          []LineItem
}

// Total returns the sum of quantity*unitPrice over all lines.
func (s *Snapshot) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range s.Lines {
		total = total.Add(l.Amount())
	}
	return total
}

// TotalQuantity returns the sum of all line quantities.
func (s *Snapshot) TotalQuantity() decimal.Decimal {
	total := decimal.Zero
	for _, l := range s.Lines {
		total = total.Add(l.Quantity)
	}
	return total
}
