package cltu_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"groundrelay/internal/cltu"
)

func feedAll(t *testing.T, r *cltu.Receiver, data []byte) [][]byte {
	t.Helper()
	var got [][]byte
	for _, b := range data {
		out, err := r.Feed(b)
		require.NoError(t, err)
		if out != nil {
			got = append(got, out)
		}
	}
	return got
}

func TestReceiver_SingleCLTU(t *testing.T) {
	full, err := cltu.Encode([]byte{0x01, 0x02, 0x03})
	require.NoError(t, err)

	r := cltu.NewReceiver(0)
	got := feedAll(t, r, full)
	require.Len(t, got, 1)
	assert.Equal(t, full, got[0])
}

func TestReceiver_NoisePrefixThenCLTU(t *testing.T) {
	full, err := cltu.Encode([]byte{0xAA})
	require.NoError(t, err)

	r := cltu.NewReceiver(0)
	noisy := append([]byte{0x00, 0xEB, 0xEB, 0x00}, full...)
	got := feedAll(t, r, noisy)
	require.Len(t, got, 1)
	assert.Equal(t, full, got[0])
}

func TestReceiver_BackToBackCLTUs(t *testing.T) {
	a, _ := cltu.Encode([]byte{0x01})
	b, _ := cltu.Encode([]byte{0x02, 0x03})

	var stream []byte
	stream = append(stream, a...)
	stream = append(stream, b...)

	r := cltu.NewReceiver(0)
	got := feedAll(t, r, stream)
	require.Len(t, got, 2)
	assert.Equal(t, a, got[0])
	assert.Equal(t, b, got[1])
}

func TestReceiver_OverflowReportsTailNotFound(t *testing.T) {
	r := cltu.NewReceiver(8)
	var err error
	err = feedUntilErr(t, r, cltu.StartMarker0)
	require.NoError(t, err)
	err = feedUntilErr(t, r, cltu.StartMarker1)
	require.NoError(t, err)

	var lastErr error
	for i := 0; i < 20 && lastErr == nil; i++ {
		_, lastErr = r.Feed(0x01)
	}
	assert.ErrorIs(t, lastErr, cltu.ErrTailNotFound)
}

func feedUntilErr(t *testing.T, r *cltu.Receiver, b byte) error {
	t.Helper()
	_, err := r.Feed(b)
	return err
}
