package hashid

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	c := MustNew("test-secret")

	for _, id := range []string{"1", "42", "65f1a2b3c4d5e6f708192a3b", "", "ăîșțâ"} {
		token := c.Encode(id)
		if id == "" {
			// an empty id still encrypts to one padding block
			assert.NotEmpty(t, token)
			continue
		}
		got, err := c.Decode(token)
		require.NoError(t, err)
		assert.Equal(t, id, got)
	}
}

func TestEncodeIsDeterministicAndURLSafe(t *testing.T) {
	c := MustNew("test-secret")

	a := c.Encode("123456")
	b := c.Encode("123456")
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c.Encode("123457"))
	assert.False(t, strings.ContainsAny(a, "+/="))
}

func TestDecodeRejectsBadTokens(t *testing.T) {
	c := MustNew("test-secret")
	other := MustNew("another-secret")

	cases := map[string]string{
		"empty":          "",
		"bad alphabet":   "!!!***",
		"short block":    "AAAA",
		"foreign secret": other.Encode("1"),
	}

	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := c.Decode(token)
			assert.ErrorIs(t, err, ErrInvalid)

			id, ok := c.DecodeSafe(token)
			assert.False(t, ok)
			assert.Empty(t, id)
		})
	}
}

func TestUintHelpers(t *testing.T) {
	c := MustNew("test-secret")

	id, err := c.DecodeUint(c.EncodeUint(77))
	require.NoError(t, err)
	assert.Equal(t, uint(77), id)

	_, err = c.DecodeUint(c.Encode("not-a-number"))
	assert.ErrorIs(t, err, ErrInvalid)

	ids, err := c.DecodeUints([]string{c.EncodeUint(1), c.EncodeUint(2)})
	require.NoError(t, err)
	assert.Equal(t, []uint{1, 2}, ids)

	_, err = c.DecodeUints([]string{c.EncodeUint(1), "garbage"})
	assert.Error(t, err)

	assert.Equal(t, []uint{3}, c.DecodeUintsLenient([]string{"garbage", c.EncodeUint(3)}))
}

func TestNewRequiresSecret(t *testing.T) {
	_, err := New("")
	assert.Error(t, err)
}
