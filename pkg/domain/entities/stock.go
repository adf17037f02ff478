package entities

// StockLevel represents the availability bucket for a material on a day
type StockLevel int

const (
	StockOK StockLevel = iota
	StockLow
	StockExhausted
)

// String method for StockLevel enum
func (l StockLevel) String() string {
	switch l {
	case StockOK:
		return "ok"
	case StockLow:
		return "low"
	case StockExhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// StockThresholds configures the boundary between "ok" and "low".
type StockThresholds struct {
	// LowAbs marks stock as low when at most this many units remain.
	LowAbs int64
	// LowRatio marks stock as low when remaining/total is at or below this fraction.
	LowRatio float64
}

// DefaultStockThresholds returns the thresholds used by the warehouse views.
func DefaultStockThresholds() StockThresholds {
	return StockThresholds{LowAbs: 3, LowRatio: 0.20}
}

// ClassifyStock buckets an availability result: exhausted when nothing
// remains (or the total stock itself is zero), low near the thresholds,
// ok otherwise.
func ClassifyStock(total, available int64, t StockThresholds) StockLevel {
	if available <= 0 || total <= 0 {
		return StockExhausted
	}
	if available <= t.LowAbs {
		return StockLow
	}
	if float64(available)/float64(total) <= t.LowRatio {
		return StockLow
	}
	return StockOK
}
