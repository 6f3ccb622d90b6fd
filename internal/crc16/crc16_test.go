package crc16_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"groundrelay/internal/crc16"
)

func TestCalculate_KnownVector(t *testing.T) {
	// spec.md E1
	got, err := crc16.CalculateAll([]byte{0x01, 0x02, 0x03, 0x04})
	require.NoError(t, err)
	assert.Equal(t, uint16(0x89C3), got)
}

func TestCalculate_InvalidArgument(t *testing.T) {
	_, err := crc16.Calculate(nil, 0, 0)
	assert.ErrorIs(t, err, crc16.ErrInvalidArgument)

	_, err = crc16.Calculate([]byte{1, 2, 3}, 2, 5)
	assert.ErrorIs(t, err, crc16.ErrInvalidArgument)

	_, err = crc16.Calculate([]byte{1, 2, 3}, -1, 1)
	assert.ErrorIs(t, err, crc16.ErrInvalidArgument)
}

func TestAppendVerifyRoundTrip(t *testing.T) {
	cases := [][]byte{
		{},
		{0x00},
		{0x01, 0x02, 0x03, 0x04},
		make([]byte, 1113),
	}
	for _, d := range cases {
		out, err := crc16.Append(d)
		require.NoError(t, err)
		ok, err := crc16.VerifyAppended(out)
		require.NoError(t, err)
		assert.True(t, ok)
	}
}

func TestVerifyAppended_BitFlipBreaksCheck(t *testing.T) {
	d := []byte{0xDE, 0xAD, 0xBE, 0xEF, 0x01, 0x02, 0x03}
	out, err := crc16.Append(d)
	require.NoError(t, err)

	for i := range out {
		for bit := 0; bit < 8; bit++ {
			mutated := make([]byte, len(out))
			copy(mutated, out)
			mutated[i] ^= 1 << bit
			ok, err := crc16.VerifyAppended(mutated)
			require.NoError(t, err)
			assert.False(t, ok, "byte %d bit %d should break the check", i, bit)
		}
	}
}

func TestVerifyAppended_TooShort(t *testing.T) {
	_, err := crc16.VerifyAppended([]byte{0x01})
	assert.ErrorIs(t, err, crc16.ErrTooShort)
}

func TestVerifyAppended_NilInput(t *testing.T) {
	_, err := crc16.VerifyAppended(nil)
	assert.ErrorIs(t, err, crc16.ErrInvalidArgument)
}
