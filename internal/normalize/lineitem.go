package normalize

import (
	"regexp"
	"strconv"
	"strings"

	"invoicedesk/internal/entity"
)

// lineItemPattern expects the loose layout the invoice processor emits for a
// row: integer quantity, description, then unit amount and line total, each
// optionally dollar-prefixed. The line total is matched to enforce the row
// shape but not kept.
var lineItemPattern = regexp.MustCompile(`^\s*(\d+)\s+(.+?)\s+\$?(\d+(?:\.\d+)?)\s+\$?(\d+(?:\.\d+)?)\s*$`)

// ParseLineItem parses one free-text row like "2 Widget A $10.00 $20.00" into
// a structured line item. Rows that don't fit the pattern return nil, not an
// error; the normalizer drops them. No negative numbers, currencies or
// multi-line descriptions — the upstream invoice model never emits those here.
func ParseLineItem(text, accountCode string) *entity.LineItem {
	m := lineItemPattern.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	qty, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return nil
	}
	unit, err := strconv.ParseFloat(m[3], 64)
	if err != nil {
		return nil
	}
	return &entity.LineItem{
		Description: strings.TrimSpace(m[2]),
		Quantity:    qty,
		UnitAmount:  unit,
		AccountCode: accountCode,
	}
}
