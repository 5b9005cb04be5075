package checkout

import (
	"fmt"
	"sync/atomic"
	"time"
)

// OrderNumberGenerator issues human-readable order numbers. The atomic
// sequence keeps numbers unique even when two confirmations land in the
// same second.
type OrderNumberGenerator struct {
	seq atomic.Int64
	now func() time.Time
}

func NewOrderNumberGenerator() *OrderNumberGenerator {
	return &OrderNumberGenerator{now: time.Now}
}

func (g *OrderNumberGenerator) Next(cartID int64) string {
	ts := g.now().UTC().Format("20060102150405")
	return fmt.Sprintf("POS-%s-%d-%d", ts, g.seq.Add(1), cartID)
}
