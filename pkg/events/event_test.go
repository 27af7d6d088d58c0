package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	raw, err := Encode(NewReindexRequested(ReasonWatcher, []string{"docs/ia.md"}))
	require.NoError(t, err)

	e, err := Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, CorpusReindexRequested, e.EventType())
	assert.Equal(t, ReasonWatcher, Reason(e))
	assert.Equal(t, []interface{}{"docs/ia.md"}, e.Payload()["paths"])
	assert.False(t, e.Timestamp().IsZero())
}

func TestDecode_Invalid(t *testing.T) {
	_, err := Decode([]byte(`{"data":{}}`))
	assert.ErrorContains(t, err, "missing type")

	_, err = Decode([]byte(`nope`))
	assert.Error(t, err)
}
