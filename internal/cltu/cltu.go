// Package cltu implements the Command Link Transmission Unit framing used
// on the uplink: a 2-byte start marker, a sequence of 8-byte BCH-protected
// code blocks, and a 7-byte tail marker.
package cltu

import (
	"bytes"
	"errors"
	"fmt"

	"groundrelay/internal/bch"
)

const (
	// StartMarker0 and StartMarker1 precede the first code block of every CLTU.
	StartMarker0 = 0xEB
	StartMarker1 = 0x90
	// TailByte repeated seven times terminates every CLTU.
	TailByte = 0xC5
	tailLen  = 7
	// FillByte right-pads a short final data chunk before BCH encoding.
	FillByte = 0x55

	blockLen = bch.BlockDataLen + 1 // 7 data bytes + 1 parity byte
)

var (
	ErrInvalidArgument = errors.New("cltu: invalid argument")
	ErrInvalidStart    = errors.New("cltu: missing start marker")
	ErrTailNotFound    = errors.New("cltu: tail marker not found")
)

// Encode frames data into a CLTU: start marker, ceil(len(data)/7) code
// blocks (the last right-padded with FillByte), tail marker. Empty data
// still yields one code block made entirely of FillByte.
func Encode(data []byte) ([]byte, error) {
	if data == nil {
		return nil, ErrInvalidArgument
	}
	nblocks := (len(data) + bch.BlockDataLen - 1) / bch.BlockDataLen
	if nblocks == 0 {
		nblocks = 1
	}
	out := make([]byte, 0, 2+nblocks*blockLen+tailLen)
	out = append(out, StartMarker0, StartMarker1)

	chunk := make([]byte, bch.BlockDataLen)
	for i := 0; i < nblocks; i++ {
		start := i * bch.BlockDataLen
		end := start + bch.BlockDataLen
		if end > len(data) {
			end = len(data)
		}
		n := copy(chunk, data[start:end])
		for j := n; j < bch.BlockDataLen; j++ {
			chunk[j] = FillByte
		}
		parity := bch.CalculateParity(chunk)
		out = append(out, chunk...)
		out = append(out, parity)
	}
	for i := 0; i < tailLen; i++ {
		out = append(out, TailByte)
	}
	return out, nil
}

// Decode parses a CLTU back into its carried command bytes, verifying BCH
// parity on every code block. Only the last code block's data contribution
// stops at the first fill byte encountered; earlier blocks contribute all
// 7 data bytes unconditionally, since only the last block is ever padded.
func Decode(cltu []byte) ([]byte, error) {
	if cltu == nil {
		return nil, ErrInvalidArgument
	}
	if len(cltu) < 2 || cltu[0] != StartMarker0 || cltu[1] != StartMarker1 {
		return nil, ErrInvalidStart
	}

	tailStart := bytes.Index(cltu[2:], bytes.Repeat([]byte{TailByte}, tailLen))
	if tailStart < 0 {
		return nil, ErrTailNotFound
	}
	tailStart += 2

	nblocks := (tailStart - 2) / blockLen
	lastBlock := 2 + (nblocks-1)*blockLen

	var out []byte
	pos := 2
	for pos+blockLen <= tailStart {
		block := cltu[pos : pos+blockLen]
		if err := bch.Verify(block, pos); err != nil {
			return nil, err
		}
		if pos < lastBlock {
			// Only the final code block is ever fill-padded; earlier
			// blocks carry 7 real data bytes unconditionally.
			out = append(out, block[:bch.BlockDataLen]...)
		} else {
			for _, b := range block[:bch.BlockDataLen] {
				if b == FillByte {
					break
				}
				out = append(out, b)
			}
		}
		pos += blockLen
	}
	return out, nil
}

// Length returns the exact byte length Encode would produce for the given
// data length, per the CLTU length law: 2 + 8*ceil(n/7) + 7 for n >= 1,
// and 17 (one fill-only code block) for n == 0.
func Length(n int) int {
	nblocks := (n + bch.BlockDataLen - 1) / bch.BlockDataLen
	if nblocks == 0 {
		nblocks = 1
	}
	return 2 + nblocks*blockLen + tailLen
}

// String renders a CLTU as a short length-only diagnostic for logging.
func String(cltu []byte) string {
	return fmt.Sprintf("CLTU[%d bytes]", len(cltu))
}
