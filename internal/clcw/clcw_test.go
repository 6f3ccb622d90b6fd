package clcw_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"groundrelay/internal/clcw"
)

func TestEncode_E3(t *testing.T) {
	word, err := clcw.Encode(5, 42)
	require.NoError(t, err)
	assert.Equal(t, uint32(0x0014002A), word)
	assert.Equal(t, [4]byte{0x00, 0x14, 0x00, 0x2A}, clcw.Bytes(word))
}

func TestBuilderIdempotence(t *testing.T) {
	for vcid := 0; vcid <= 63; vcid += 7 {
		for report := 0; report <= 255; report += 17 {
			built, err := clcw.NewBuilder().
				SetVirtualChannelID(vcid).
				SetReportValue(report).
				Build()
			require.NoError(t, err)

			encoded, err := clcw.Encode(vcid, report)
			require.NoError(t, err)
			assert.Equal(t, encoded, built)
		}
	}
}

func TestBuilder_AllFields(t *testing.T) {
	word, err := clcw.NewBuilder().
		SetStatus(7).
		SetCOPInEffect(3).
		SetVirtualChannelID(63).
		SetNoRFAvailable(true).
		SetNoBitLock(true).
		SetLockout(true).
		SetWait(true).
		SetRetransmit(true).
		SetFARMBCounter(3).
		SetReportValue(255).
		Build()
	require.NoError(t, err)
	// type/version bits and the two spare fields stay 0; every other bit set.
	assert.Equal(t, uint32(0x1FFCFEFF), word)
}

func TestBuilder_RangeErrors(t *testing.T) {
	_, err := clcw.NewBuilder().SetVirtualChannelID(64).Build()
	var rangeErr *clcw.RangeError
	require.ErrorAs(t, err, &rangeErr)
	assert.Equal(t, "vcid", rangeErr.Field)

	_, err = clcw.NewBuilder().SetReportValue(256).Build()
	require.Error(t, err)

	_, err = clcw.NewBuilder().SetStatus(-1).Build()
	require.Error(t, err)

	_, err = clcw.NewBuilder().SetFARMBCounter(4).Build()
	require.Error(t, err)
}
