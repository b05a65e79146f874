package ingest

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paymolabs/trustgraph/model"
)

const sampleBatch = `time, id1, id2, amount, message
2016-11-02 09:49:29, 52575, 1120, 25.32, Spam

2016-11-02 09:49:29, 1120, 570, 3.19, Beers
`

func TestReader_Next(t *testing.T) {
	r := NewReader(strings.NewReader(sampleBatch))

	p, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, model.UID(52575), p.From)
	assert.Equal(t, model.UID(1120), p.To)

	p, err = r.Next()
	require.NoError(t, err)
	assert.Equal(t, model.UID(1120), p.From)
	assert.Equal(t, model.UID(570), p.To)

	_, err = r.Next()
	assert.Equal(t, io.EOF, err)
}

func TestReader_MalformedLineNumber(t *testing.T) {
	input := "time, id1, id2, amount, message\n2016-11-02 09:49:29, 1, 2, 1.00, ok\nbroken\n"

	r := NewReader(strings.NewReader(input))

	_, err := r.Next()
	require.NoError(t, err)

	_, err = r.Next()
	require.ErrorIs(t, err, ErrMalformedRecord)

	var recErr *RecordError
	require.ErrorAs(t, err, &recErr)
	assert.Equal(t, 3, recErr.Line)
}

func TestReader_All(t *testing.T) {
	r := NewReader(strings.NewReader(sampleBatch))

	var got []model.Pair
	for p, err := range r.All() {
		require.NoError(t, err)
		got = append(got, p.Pair())
	}

	want := []model.Pair{
		{A: model.UID(52575), B: model.UID(1120)},
		{A: model.UID(1120), B: model.UID(570)},
	}
	assert.Equal(t, want, got)
}

func TestReader_EmptyInput(t *testing.T) {
	r := NewReader(strings.NewReader(""))

	_, err := r.Next()
	assert.Equal(t, io.EOF, err)
}
