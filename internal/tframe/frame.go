// Package tframe builds and parses CCSDS TM/TC Transfer Frames: a 6-byte
// primary header, a data field, and a 2-byte FECF (CRC-16-CCITT) trailer.
// Bit-field packing follows the explicit position+length idiom used
// throughout the teacher codec's RTCM bitstream helpers (GetBitU/SetBitU),
// specialised here to the fixed 16-bit primary-header word.
package tframe

import (
	"errors"
	"fmt"

	"groundrelay/internal/crc16"
)

const (
	// HeaderLen is the fixed primary-header size for both TM and TC frames
	// in this system (the TC frame reuses the TM-shaped 6-byte header for
	// AOS compatibility, per spec.md §3).
	HeaderLen = 6
	// FECFLen is the CRC-16 trailer size.
	FECFLen = 2
	// MinFrameSize is the smallest frame this builder accepts: header +
	// FECF + at least one data byte.
	MinFrameSize = HeaderLen + FECFLen + 1

	// DefaultTMFrameSize is the default TM transfer frame length.
	DefaultTMFrameSize = 1115

	// commandFrameStatus is the data-field-status word this system's TC
	// builder always writes, a local bug-compatible convention rather than
	// a CCSDS requirement (spec.md §9 Open Questions).
	commandFrameStatus = 0x8000

	maxVersion = 3
	maxSCID    = 1023
	maxVCID    = 7
)

var (
	ErrTooShort         = errors.New("tframe: buffer shorter than header")
	ErrInvalidArgument  = errors.New("tframe: invalid argument")
	ErrRangeError       = errors.New("tframe: builder input out of range")
	ErrFECFMismatch     = errors.New("tframe: frame error control field mismatch")
	ErrInvalidFrameKind = errors.New("tframe: unknown frame kind")
)

// Kind distinguishes a TM frame (caller-supplied data-field status) from a
// TC frame (fixed 0x8000 data-field status).
type Kind int

const (
	KindTM Kind = iota
	KindTC
)

// Header is the parsed primary header of a Transfer Frame.
type Header struct {
	Version                int
	SpacecraftID           int
	VCID                   int
	OCFPresent             bool
	MCFrameCount           int
	VCFrameCount           int
	DataFieldStatus        uint16
	SecondaryHeaderPresent bool
	SyncFlag               bool
}

// OCFLen is the size of the Operational Control Field carrying a CLCW.
const OCFLen = 4

// BuildOptions configures Build.
type BuildOptions struct {
	Kind            Kind
	SpacecraftID    int // 0-1023
	VCID            int // 0-7
	FrameCount      int // 16-bit, high byte = MC count, low byte = VC count
	OCFPresent      bool
	OCF             [OCFLen]byte // CLCW word; only used when OCFPresent
	DataFieldStatus uint16       // TM only; ignored (fixed 0x8000) for TC
	Data            []byte
	FrameSize       int // total frame length, >= MinFrameSize
}

// Build lays out a complete Transfer Frame: primary header, data
// right-padded with 0x00 to fill the data field (with the last OCFLen
// bytes of the data field reserved for the OCF/CLCW when OCFPresent is
// set, per spec.md §3), and a CRC-16 FECF over everything preceding it.
func Build(opt BuildOptions) ([]byte, error) {
	if opt.SpacecraftID < 0 || opt.SpacecraftID > maxSCID {
		return nil, ErrRangeError
	}
	if opt.VCID < 0 || opt.VCID > maxVCID {
		return nil, ErrRangeError
	}
	if opt.FrameCount < 0 || opt.FrameCount > 0xFFFF {
		return nil, ErrRangeError
	}
	if opt.FrameSize < MinFrameSize {
		return nil, ErrRangeError
	}
	dataFieldLen := opt.FrameSize - HeaderLen - FECFLen
	if opt.OCFPresent {
		dataFieldLen -= OCFLen
	}
	if dataFieldLen < 0 || len(opt.Data) > dataFieldLen {
		return nil, ErrRangeError
	}

	frame := make([]byte, opt.FrameSize)

	var word1 uint16
	word1 |= uint16(0&0x3) << 14
	word1 |= uint16(opt.SpacecraftID&0x3FF) << 4
	word1 |= uint16(opt.VCID&0x7) << 1
	if opt.OCFPresent {
		word1 |= 1
	}
	frame[0] = byte(word1 >> 8)
	frame[1] = byte(word1)

	frame[2] = byte(opt.FrameCount >> 8) // master channel frame count
	frame[3] = byte(opt.FrameCount)      // virtual channel frame count

	status := opt.DataFieldStatus
	if opt.Kind == KindTC {
		status = commandFrameStatus
	}
	frame[4] = byte(status >> 8)
	frame[5] = byte(status)

	copy(frame[HeaderLen:], opt.Data)
	// remaining data-field bytes are already zero from make()
	if opt.OCFPresent {
		copy(frame[opt.FrameSize-FECFLen-OCFLen:opt.FrameSize-FECFLen], opt.OCF[:])
	}

	crc, err := crc16.CalculateAll(frame[:opt.FrameSize-FECFLen])
	if err != nil {
		return nil, err
	}
	frame[opt.FrameSize-2] = byte(crc >> 8)
	frame[opt.FrameSize-1] = byte(crc)

	return frame, nil
}

// ParseHeader reads the 6-byte primary header of frame into a Header.
func ParseHeader(frame []byte) (Header, error) {
	if frame == nil {
		return Header{}, ErrInvalidArgument
	}
	if len(frame) < HeaderLen {
		return Header{}, ErrTooShort
	}
	word1 := uint16(frame[0])<<8 | uint16(frame[1])
	status := uint16(frame[4])<<8 | uint16(frame[5])

	h := Header{
		Version:                int(word1>>14) & 0x3,
		SpacecraftID:            int(word1>>4) & 0x3FF,
		VCID:                    int(word1>>1) & 0x7,
		OCFPresent:              word1&0x1 != 0,
		MCFrameCount:            int(frame[2]),
		VCFrameCount:            int(frame[3]),
		DataFieldStatus:         status,
		SecondaryHeaderPresent:  status&0x8000 != 0,
		SyncFlag:                status&0x4000 != 0,
	}
	return h, nil
}

// ExtractSpacecraftID is a fast-path accessor matching spec.md E4: SCID =
// (word1 >> 4) & 0x3FF where word1 is the big-endian first two header
// bytes.
func ExtractSpacecraftID(frame []byte) (int, error) {
	if frame == nil {
		return 0, ErrInvalidArgument
	}
	if len(frame) < 2 {
		return 0, ErrTooShort
	}
	word1 := uint16(frame[0])<<8 | uint16(frame[1])
	return int(word1>>4) & 0x3FF, nil
}

// ExtractVCID is the fast-path VCID accessor (word1 bits 1-3).
func ExtractVCID(frame []byte) (int, error) {
	if frame == nil {
		return 0, ErrInvalidArgument
	}
	if len(frame) < 2 {
		return 0, ErrTooShort
	}
	word1 := uint16(frame[0])<<8 | uint16(frame[1])
	return int(word1>>1) & 0x7, nil
}

// ExtractFrameCount returns the combined 16-bit frame count from bytes 2-3.
func ExtractFrameCount(frame []byte) (int, error) {
	if frame == nil {
		return 0, ErrInvalidArgument
	}
	if len(frame) < 4 {
		return 0, ErrTooShort
	}
	return int(frame[2])<<8 | int(frame[3]), nil
}

// ExtractOCF returns the 4-byte Operational Control Field, which this
// system places immediately before the FECF when the header's OCF flag is
// set.
func ExtractOCF(frame []byte) ([OCFLen]byte, error) {
	var ocf [OCFLen]byte
	if frame == nil {
		return ocf, ErrInvalidArgument
	}
	if len(frame) < HeaderLen+OCFLen+FECFLen {
		return ocf, ErrTooShort
	}
	copy(ocf[:], frame[len(frame)-FECFLen-OCFLen:len(frame)-FECFLen])
	return ocf, nil
}

// VerifyFECF recomputes the CRC-16 FECF over frame[:len-2] and compares it
// to the stored trailer.
func VerifyFECF(frame []byte) error {
	if frame == nil {
		return ErrInvalidArgument
	}
	if len(frame) < MinFrameSize {
		return ErrTooShort
	}
	ok, err := crc16.VerifyAppended(frame)
	if err != nil {
		return err
	}
	if !ok {
		return ErrFECFMismatch
	}
	return nil
}

// IsValidFrame reports whether frame's header parses and its fields are
// within CCSDS range: version <= 3, SCID <= 1023, VCID <= 7.
func IsValidFrame(frame []byte) bool {
	h, err := ParseHeader(frame)
	if err != nil {
		return false
	}
	return h.Version <= maxVersion && h.SpacecraftID <= maxSCID && h.VCID <= maxVCID
}

func (h Header) String() string {
	return fmt.Sprintf("tframe(v=%d scid=%d vcid=%d mc=%d vc=%d ocf=%v)",
		h.Version, h.SpacecraftID, h.VCID, h.MCFrameCount, h.VCFrameCount, h.OCFPresent)
}
