package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paymolabs/trustgraph/model"
)

func TestParseRecord(t *testing.T) {
	p, err := ParseRecord("2016-11-02 09:49:29, 52575, 1120, 25.32, Spam")
	require.NoError(t, err)

	assert.Equal(t, "2016-11-02 09:49:29", p.Time)
	assert.Equal(t, model.UID(52575), p.From)
	assert.Equal(t, model.UID(1120), p.To)
	assert.Equal(t, "25.32", p.Amount)
	assert.Equal(t, "Spam", p.Message)
}

func TestParseRecord_MessageWithCommas(t *testing.T) {
	p, err := ParseRecord("2016-11-02 09:49:29, 1, 2, 3.12, Thanks, for, the beers")
	require.NoError(t, err)

	assert.Equal(t, "Thanks, for, the beers", p.Message)
}

func TestParseRecord_StringIdentifiers(t *testing.T) {
	p, err := ParseRecord("2016-11-02 09:49:29, alice, bob, 1.00, hi")
	require.NoError(t, err)

	assert.Equal(t, model.UserString("alice"), p.From)
	assert.Equal(t, model.UserString("bob"), p.To)
}

func TestParseRecord_Malformed(t *testing.T) {
	tests := []string{
		"",
		"2016-11-02 09:49:29",
		"2016-11-02 09:49:29, 52575",
		"2016-11-02 09:49:29, , 1120, 25.32, no payer",
		"2016-11-02 09:49:29, 52575, , 25.32, no payee",
	}

	for _, line := range tests {
		_, err := ParseRecord(line)
		assert.ErrorIs(t, err, ErrMalformedRecord, "line %q", line)
	}
}

func TestParseRecord_MissingTrailingFields(t *testing.T) {
	p, err := ParseRecord("2016-11-02 09:49:29, 1, 2")
	require.NoError(t, err)

	assert.Equal(t, model.UID(1), p.From)
	assert.Equal(t, model.UID(2), p.To)
	assert.Empty(t, p.Amount)
	assert.Empty(t, p.Message)
}

func TestPayment_Pair(t *testing.T) {
	p := Payment{From: model.UID(1), To: model.UID(2)}
	assert.Equal(t, model.Pair{A: model.UID(1), B: model.UID(2)}, p.Pair())
}
