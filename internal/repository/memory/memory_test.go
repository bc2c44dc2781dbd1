package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetUnknownKeyReturnsNil(t *testing.T) {
	st := NewStore()

	value, err := st.Get(context.Background(), "missing")

	require.NoError(t, err)
	assert.Nil(t, value)
}

func TestSetGetRoundtrip(t *testing.T) {
	st := NewStore()
	ctx := context.Background()

	require.NoError(t, st.Set(ctx, "key", []byte(`{"a":1}`)))

	value, err := st.Get(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"a":1}`), value)
}

func TestStoredValuesAreIsolated(t *testing.T) {
	st := NewStore()
	ctx := context.Background()

	original := []byte("abc")
	require.NoError(t, st.Set(ctx, "key", original))
	original[0] = 'z'

	value, err := st.Get(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), value)

	value[0] = 'z'
	again, err := st.Get(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), again)
}
