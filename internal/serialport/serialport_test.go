package serialport

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpen_RejectsUnsupportedBaud(t *testing.T) {
	_, err := Open("/dev/null", 1234)
	require.Error(t, err)
}
