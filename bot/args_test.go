package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArgsSingle(t *testing.T) {
	a := NewArgs("  one two   three ")
	assert.Equal(t, 3, a.Len())
	assert.Equal(t, "one two   three", a.Raw())

	first, err := a.Single()
	require.NoError(t, err)
	assert.Equal(t, "one", first)
	assert.Equal(t, "two   three", a.Rest())
	assert.Equal(t, 2, a.Len())

	second, _ := a.Single()
	third, _ := a.Single()
	assert.Equal(t, "two", second)
	assert.Equal(t, "three", third)
	assert.True(t, a.Empty())

	_, err = a.Single()
	assert.ErrorIs(t, err, ErrNoArgs)
}

func TestArgsSingleQuoted(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		want     string
		wantRest string
	}{
		{"quoted", `"Shalltear Bloodfallen" rest`, "Shalltear Bloodfallen", "rest"},
		{"unquoted", `Entoma rest`, "Entoma", "rest"},
		{"unterminated", `"Yuri Alpha`, "Yuri Alpha", ""},
		{"empty quotes", `"" rest`, "", "rest"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewArgs(tt.in)
			got, err := a.SingleQuoted()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantRest, a.Rest())
		})
	}

	_, err := NewArgs("").SingleQuoted()
	assert.ErrorIs(t, err, ErrNoArgs)
}

func TestArgsSingleUint(t *testing.T) {
	a := NewArgs("30 -1 abc")
	n, err := a.SingleUint()
	require.NoError(t, err)
	assert.Equal(t, uint64(30), n)

	_, err = a.SingleUint()
	assert.Error(t, err)
	_, err = a.SingleUint()
	assert.Error(t, err)
	_, err = a.SingleUint()
	assert.ErrorIs(t, err, ErrNoArgs)
}
