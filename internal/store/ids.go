package store

import (
	"fmt"
	"strconv"
	"strings"

	"gorm.io/gorm"
)

// Externally visible id prefixes (PRJ001, MIL002, ...).
const (
	PrefixProject   = "PRJ"
	PrefixBid       = "BID"
	PrefixMilestone = "MIL"
	PrefixEscrow    = "ESC"
	PrefixInvoice   = "INV"
	PrefixDispute   = "DSP"
)

// nextID allocates the next sequential id for a table. It must run
// inside the same transaction as the insert that consumes it, otherwise
// two callers could be handed the same number.
func nextID(db *gorm.DB, model any, column, prefix string) (string, error) {
	var last string
	err := db.Model(model).
		Select(column).
		Order(fmt.Sprintf("LENGTH(%s) DESC, %s DESC", column, column)).
		Limit(1).
		Scan(&last).Error
	if err != nil {
		return "", err
	}

	next := 1
	if strings.HasPrefix(last, prefix) {
		if n, err := strconv.Atoi(last[len(prefix):]); err == nil {
			next = n + 1
		}
	}
	return fmt.Sprintf("%s%03d", prefix, next), nil
}
