// Package clcw packs the 32-bit Communications Link Control Word carried
// in a TM Transfer Frame's Operational Control Field, per spec.md §3.
// Field layout (MSB = bit 0):
//
//	0      Type            (fixed 0, Type-1)
//	1-2    Version         (fixed 0)
//	3-5    Status
//	6-7    COP in effect
//	8-13   Virtual Channel ID
//	14-15  spare
//	16     No RF Available
//	17     No Bit Lock
//	18     Lockout
//	19     Wait
//	20     Retransmit
//	21-22  FARM-B counter
//	23     spare
//	24-31  Report Value
package clcw

import "fmt"

// RangeError reports a field value outside its declared bit width.
type RangeError struct {
	Field string
	Value int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("clcw: field %s value %d out of range", e.Field, e.Value)
}

// Encode builds a CLCW with every field at its zero default except the
// virtual channel ID and report value, matching spec.md E3.
func Encode(vcid, reportValue int) (uint32, error) {
	return NewBuilder().SetVirtualChannelID(vcid).SetReportValue(reportValue).Build()
}

// Builder exposes every CLCW field with range-checked setters, composing
// the final word by bit-shifting each field in Build, in the spirit of the
// teacher codec's config-struct/builder pattern (spec.md §9).
type Builder struct {
	status            int
	copInEffect       int
	vcid              int
	noRFAvailable     bool
	noBitLock         bool
	lockout           bool
	wait              bool
	retransmit        bool
	farmBCounter      int
	reportValue       int
	err               error
}

// NewBuilder returns a Builder with every field at its spec.md default.
func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) fail(field string, value int) *Builder {
	if b.err == nil {
		b.err = &RangeError{Field: field, Value: value}
	}
	return b
}

// SetStatus sets the 3-bit Status field (0-7).
func (b *Builder) SetStatus(v int) *Builder {
	if v < 0 || v > 7 {
		return b.fail("status", v)
	}
	b.status = v
	return b
}

// SetCOPInEffect sets the 2-bit COP in effect field (0-3).
func (b *Builder) SetCOPInEffect(v int) *Builder {
	if v < 0 || v > 3 {
		return b.fail("cop_in_effect", v)
	}
	b.copInEffect = v
	return b
}

// SetVirtualChannelID sets the 6-bit VCID field (0-63).
func (b *Builder) SetVirtualChannelID(v int) *Builder {
	if v < 0 || v > 63 {
		return b.fail("vcid", v)
	}
	b.vcid = v
	return b
}

// SetNoRFAvailable sets the No RF Available flag.
func (b *Builder) SetNoRFAvailable(v bool) *Builder { b.noRFAvailable = v; return b }

// SetNoBitLock sets the No Bit Lock flag.
func (b *Builder) SetNoBitLock(v bool) *Builder { b.noBitLock = v; return b }

// SetLockout sets the Lockout flag.
func (b *Builder) SetLockout(v bool) *Builder { b.lockout = v; return b }

// SetWait sets the Wait flag.
func (b *Builder) SetWait(v bool) *Builder { b.wait = v; return b }

// SetRetransmit sets the Retransmit flag.
func (b *Builder) SetRetransmit(v bool) *Builder { b.retransmit = v; return b }

// SetFARMBCounter sets the 2-bit FARM-B counter (0-3).
func (b *Builder) SetFARMBCounter(v int) *Builder {
	if v < 0 || v > 3 {
		return b.fail("farm_b_counter", v)
	}
	b.farmBCounter = v
	return b
}

// SetReportValue sets the 8-bit Report Value field (0-255).
func (b *Builder) SetReportValue(v int) *Builder {
	if v < 0 || v > 255 {
		return b.fail("report_value", v)
	}
	b.reportValue = v
	return b
}

// Build composes the final 32-bit CLCW word, or returns the first
// range error recorded by a setter.
func (b *Builder) Build() (uint32, error) {
	if b.err != nil {
		return 0, b.err
	}
	var w uint32
	// bit 0: type (always Type-1, 0); bits 1-2: version (always 0)
	w |= uint32(b.status&0x7) << 26
	w |= uint32(b.copInEffect&0x3) << 24
	w |= uint32(b.vcid&0x3F) << 18
	if b.noRFAvailable {
		w |= 1 << 15
	}
	if b.noBitLock {
		w |= 1 << 14
	}
	if b.lockout {
		w |= 1 << 13
	}
	if b.wait {
		w |= 1 << 12
	}
	if b.retransmit {
		w |= 1 << 11
	}
	w |= uint32(b.farmBCounter&0x3) << 9
	w |= uint32(b.reportValue & 0xFF)
	return w, nil
}

// Bytes packs word into its 4-byte big-endian wire representation.
func Bytes(word uint32) [4]byte {
	return [4]byte{
		byte(word >> 24),
		byte(word >> 16),
		byte(word >> 8),
		byte(word),
	}
}
