package cdstime_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"groundrelay/internal/cdstime"
)

func TestEncodeShort_EpochIsZero(t *testing.T) {
	buf, err := cdstime.EncodeShort(cdstime.Epoch)
	require.NoError(t, err)
	assert.Equal(t, [cdstime.ShortLen]byte{0, 0, 0, 0, 0, 0}, buf)
}

func TestEncodeDecodeShort_RoundTrip(t *testing.T) {
	cases := []time.Time{
		cdstime.Epoch,
		cdstime.Epoch.Add(24 * time.Hour),
		time.Date(2026, time.July, 31, 12, 34, 56, 0, time.UTC),
		cdstime.Epoch.AddDate(0, 0, 65535),
	}
	for _, want := range cases {
		buf, err := cdstime.EncodeShort(want)
		require.NoError(t, err)
		got := cdstime.DecodeShort(buf)
		assert.True(t, want.Equal(got), "want %v got %v", want, got)
	}
}

func TestEncodeLong_MicrosecondSuffix(t *testing.T) {
	ts := time.Date(2026, time.July, 31, 0, 0, 0, 123_456_000, time.UTC)
	buf, err := cdstime.EncodeLong(ts)
	require.NoError(t, err)

	// upper 10 bits of the trailing word carry microseconds, low 6 spare
	suffix := uint16(buf[6])<<8 | uint16(buf[7])
	assert.Equal(t, uint16(0), suffix&0x3F)
	assert.Equal(t, uint16(456), suffix>>6)

	got := cdstime.DecodeLong(buf)
	assert.Equal(t, 456, got.Nanosecond()/1000)
}

func TestEncodeShort_OutOfRange(t *testing.T) {
	_, err := cdstime.EncodeShort(cdstime.Epoch.Add(-time.Hour))
	assert.ErrorIs(t, err, cdstime.ErrOutOfRange)

	_, err = cdstime.EncodeShort(cdstime.Epoch.AddDate(0, 0, 65536))
	assert.ErrorIs(t, err, cdstime.ErrOutOfRange)
}
