// Package codec converts expense records to and from the single string blob
// they are persisted as.
//
// A record is its five fields joined by "|" in the order
// id|amount|category|description|date, and a collection is its records joined
// by ";;;". Fields are not escaped: a field containing either separator does
// not survive a round trip.
package codec

import (
	"errors"
	"fmt"
	"strings"

	"gastos/internal/core"
)

const (
	FieldSeparator  = "|"
	RecordSeparator = ";;;"

	fieldCount = 5
)

var (
	ErrFieldCount = errors.New("wrong number of fields")
	ErrAmount     = errors.New("amount is not a number")
)

// Result is the outcome of decoding a blob. Dropped counts fragments that
// could not be parsed and were left out of Records.
type Result struct {
	Records []core.Expense
	Dropped int
}

// EncodeRecord serializes a single record.
func EncodeRecord(e core.Expense) string {
	return strings.Join([]string{
		e.ID,
		e.Amount.String(),
		e.Category,
		e.Description,
		e.Date,
	}, FieldSeparator)
}

// DecodeRecord parses a single serialized record.
func DecodeRecord(s string) (core.Expense, error) {
	parts := strings.Split(s, FieldSeparator)
	if len(parts) != fieldCount {
		return core.Expense{}, fmt.Errorf("%w: got %d, want %d", ErrFieldCount, len(parts), fieldCount)
	}
	amount, err := core.ParseStoredAmount(parts[1])
	if err != nil {
		return core.Expense{}, fmt.Errorf("%w: %q", ErrAmount, parts[1])
	}
	return core.Expense{
		ID:          parts[0],
		Amount:      amount,
		Category:    parts[2],
		Description: parts[3],
		Date:        parts[4],
	}, nil
}

// Encode serializes the full collection in order.
func Encode(records []core.Expense) string {
	encoded := make([]string, len(records))
	for i, e := range records {
		encoded[i] = EncodeRecord(e)
	}
	return strings.Join(encoded, RecordSeparator)
}

// Decode parses a blob on a best-effort basis. Malformed fragments are
// dropped and counted; decoding itself never fails.
func Decode(blob string) Result {
	var res Result
	for _, fragment := range strings.Split(blob, RecordSeparator) {
		e, err := DecodeRecord(fragment)
		if err != nil {
			res.Dropped++
			continue
		}
		res.Records = append(res.Records, e)
	}
	return res
}
