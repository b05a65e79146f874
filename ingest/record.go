// Package ingest parses payment records and feeds them into a
// trustgraph.Network. It owns all input validation: only well-formed user
// pairs ever reach the graph core.
//
// Records follow the PayMo CSV layout, five comma-separated fields per
// line with a header line first:
//
//	time, id1, id2, amount, message
//	2016-11-02 09:49:29, 52575, 1120, 25.32, Spam
//
// The message is the final field and may itself contain commas, so a line
// is split into at most five pieces. Timestamp, amount and message carry
// no meaning here and are passed through as opaque strings.
package ingest

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/paymolabs/trustgraph/model"
)

// ErrMalformedRecord is returned when a payment line cannot be parsed.
// Errors from ParseRecord satisfy errors.Is(err, ErrMalformedRecord).
var ErrMalformedRecord = errors.New("malformed payment record")

// Payment is one parsed payment record.
type Payment struct {
	Time    string // opaque timestamp
	From    model.UserID
	To      model.UserID
	Amount  string // opaque; no monetary reasoning happens downstream
	Message string
}

// Pair returns the user pair of the payment.
func (p Payment) Pair() model.Pair {
	return model.Pair{A: p.From, B: p.To}
}

// ParseRecord parses a single payment line. Numeric identifiers become
// numeric UserIDs; anything else non-empty is kept as a string UserID.
func ParseRecord(line string) (Payment, error) {
	fields := strings.SplitN(line, ",", 5)
	if len(fields) < 3 {
		return Payment{}, fmt.Errorf("%w: want at least 3 fields, got %d", ErrMalformedRecord, len(fields))
	}

	from, err := parseUserID(fields[1])
	if err != nil {
		return Payment{}, fmt.Errorf("%w: id1: %v", ErrMalformedRecord, err)
	}
	to, err := parseUserID(fields[2])
	if err != nil {
		return Payment{}, fmt.Errorf("%w: id2: %v", ErrMalformedRecord, err)
	}

	p := Payment{
		Time: strings.TrimSpace(fields[0]),
		From: from,
		To:   to,
	}
	if len(fields) > 3 {
		p.Amount = strings.TrimSpace(fields[3])
	}
	if len(fields) > 4 {
		p.Message = strings.TrimSpace(fields[4])
	}

	return p, nil
}

func parseUserID(field string) (model.UserID, error) {
	s := strings.TrimSpace(field)
	if s == "" {
		return model.UserID{}, errors.New("empty user identifier")
	}

	if v, err := strconv.ParseUint(s, 10, 64); err == nil {
		return model.UID(v), nil
	}

	return model.UserString(s), nil
}
