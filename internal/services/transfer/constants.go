package transfer

import (
	"time"

	"github.com/shopspring/decimal"
)

// DuplicateWindow is the lookback used to reject probable accidental
// resubmits of an identical transfer.
const DuplicateWindow = 30 * time.Second

// Fixed amount policy. Hardcoded, not configurable per currency.
var (
	MinAmount = decimal.NewFromInt(1)
	MaxAmount = decimal.NewFromInt(10000)
)

// Money is stored with two decimal places.
const MaxDecimalPlaces = 2
