package plugins

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeSet_Register(t *testing.T) {
	s := NewTypeSet()

	slot, err := s.Register("decoder", nil)
	require.NoError(t, err)
	assert.Equal(t, 0, slot)

	slot, err = s.Register("filter", nil)
	require.NoError(t, err)
	assert.Equal(t, 1, slot)

	types := s.Types()
	require.Len(t, types, 2)
	assert.Equal(t, "decoder", types[0].Name)
	assert.Equal(t, "filter", types[1].Name)
	assert.Equal(t, 0, types[0].Slot)
	assert.Equal(t, 1, types[1].Slot)
}

func TestTypeSet_LimitOf32(t *testing.T) {
	s := NewTypeSet()

	for i := 0; i < MaxCapabilityTypes; i++ {
		slot, err := s.Register(fmt.Sprintf("type-%d", i), nil)
		require.NoError(t, err)
		assert.Equal(t, i, slot)
	}

	// The 33rd and every later registration must fail without disturbing
	// the installed types.
	_, err := s.Register("one-too-many", nil)
	require.ErrorIs(t, err, ErrTooManyCapabilityTypes)
	assert.Contains(t, err.Error(), "one-too-many")

	_, err = s.Register("two-too-many", nil)
	require.ErrorIs(t, err, ErrTooManyCapabilityTypes)

	types := s.Types()
	require.Len(t, types, MaxCapabilityTypes)
	for i, ct := range types {
		assert.Equal(t, fmt.Sprintf("type-%d", i), ct.Name)
		assert.Equal(t, i, ct.Slot)
	}
}

func TestTypeSet_Classify(t *testing.T) {
	s := NewTypeSet()

	_, err := s.Register("decoder", SymbolPredicate("RegisterDecoders"))
	require.NoError(t, err)
	_, err = s.Register("codec", SymbolPredicate("RegisterCodecs"))
	require.NoError(t, err)
	_, err = s.Register("tap", SymbolPredicate("RegisterTaps"))
	require.NoError(t, err)

	// Matches slots 0 and 2 but not 1.
	m := &fakeModule{symbols: map[string]any{
		"RegisterDecoders": func() {},
		"RegisterTaps":     func() {},
	}}

	assert.Equal(t, uint32(0b101), s.classify(m))
}

func TestTypeSet_Render(t *testing.T) {
	s := NewTypeSet()

	for _, name := range []string{"decoder", "codec", "tap"} {
		_, err := s.Register(name, nil)
		require.NoError(t, err)
	}

	assert.Equal(t, "", s.render(0))
	assert.Equal(t, "decoder", s.render(0b001))
	assert.Equal(t, "decoder, tap", s.render(0b101))
	assert.Equal(t, "decoder, codec, tap", s.render(0b111))
	assert.Equal(t, "codec", s.render(0b010))
}

func TestTypeSet_ClassifyNilPredicate(t *testing.T) {
	s := NewTypeSet()

	_, err := s.Register("broken", nil)
	require.NoError(t, err)

	m := &fakeModule{symbols: map[string]any{}}
	assert.Equal(t, uint32(0), s.classify(m))
}
