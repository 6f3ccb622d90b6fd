// Package cdstime encodes the CCSDS Day Segmented time code used to
// timestamp telemetry: a 2-byte day count plus a 4-byte millisecond-of-day
// count since the epoch 1958-01-01 00:00:00, with an optional 2-byte
// microsecond suffix.
//
// The CCSDS epoch is defined in TAI; this package follows the teacher
// codec's convention of doing plain UTC calendar-date arithmetic (see
// src/common.go's Utc2GpsT/Time2GpsT family, which likewise works in UTC
// throughout) and so carries the same small, documented systematic offset
// rather than applying a TAI-UTC leap-second correction. This is
// intentional bug-compatibility, not an oversight (spec.md §9 Open
// Questions).
package cdstime

import (
	"errors"
	"time"
)

// Epoch is the CCSDS/CDS reference epoch, 1958-01-01 00:00:00 UTC.
var Epoch = time.Date(1958, time.January, 1, 0, 0, 0, 0, time.UTC)

const (
	// ShortLen is the size of a CDS time code without the microsecond
	// suffix: 2-byte day + 4-byte ms-of-day.
	ShortLen = 6
	// LongLen adds the 2-byte microsecond suffix.
	LongLen = 8

	maxDays      = 65535
	msPerDay     = 86_400_000
	maxMsOfDay   = msPerDay - 1
	maxMicros    = 999
)

// ErrOutOfRange is returned when the timestamp is before the epoch or more
// than 65535 days after it.
var ErrOutOfRange = errors.New("cdstime: timestamp out of range")

// EncodeShort packs t into the 6-byte CDS form: big-endian days-since-epoch
// (2 bytes) followed by big-endian milliseconds-of-day (4 bytes).
func EncodeShort(t time.Time) ([ShortLen]byte, error) {
	var out [ShortLen]byte
	days, msOfDay, err := split(t)
	if err != nil {
		return out, err
	}
	out[0] = byte(days >> 8)
	out[1] = byte(days)
	out[2] = byte(msOfDay >> 24)
	out[3] = byte(msOfDay >> 16)
	out[4] = byte(msOfDay >> 8)
	out[5] = byte(msOfDay)
	return out, nil
}

// EncodeLong packs t into the 8-byte CDS form, appending the
// microsecond-within-millisecond value (0-999) in the upper 10 bits of the
// trailing 2-byte field; the 6 low bits are spare and always 0.
func EncodeLong(t time.Time) ([LongLen]byte, error) {
	var out [LongLen]byte
	short, err := EncodeShort(t)
	if err != nil {
		return out, err
	}
	copy(out[:ShortLen], short[:])

	micros := (t.Nanosecond() / 1000) % 1000
	if micros < 0 {
		micros = 0
	}
	suffix := uint16(micros) << 6
	out[6] = byte(suffix >> 8)
	out[7] = byte(suffix)
	return out, nil
}

func split(t time.Time) (days, msOfDay int, err error) {
	utc := t.UTC()
	if utc.Before(Epoch) {
		return 0, 0, ErrOutOfRange
	}
	days = int(utc.Sub(Epoch) / (24 * time.Hour))
	if days > maxDays {
		return 0, 0, ErrOutOfRange
	}
	dayStart := Epoch.AddDate(0, 0, days)
	msOfDay = int(utc.Sub(dayStart).Milliseconds())
	if msOfDay < 0 {
		msOfDay = 0
	}
	if msOfDay > maxMsOfDay {
		msOfDay = maxMsOfDay
	}
	return days, msOfDay, nil
}

// DecodeShort reconstructs the UTC time a 6-byte CDS code represents
// (microsecond precision is lost).
func DecodeShort(buf [ShortLen]byte) time.Time {
	days := int(buf[0])<<8 | int(buf[1])
	msOfDay := int(buf[2])<<24 | int(buf[3])<<16 | int(buf[4])<<8 | int(buf[5])
	return Epoch.AddDate(0, 0, days).Add(time.Duration(msOfDay) * time.Millisecond)
}

// DecodeLong reconstructs the UTC time an 8-byte CDS code represents,
// including the microsecond suffix.
func DecodeLong(buf [LongLen]byte) time.Time {
	var short [ShortLen]byte
	copy(short[:], buf[:ShortLen])
	base := DecodeShort(short)

	suffix := uint16(buf[6])<<8 | uint16(buf[7])
	micros := suffix >> 6
	if micros > maxMicros {
		micros = maxMicros
	}
	return base.Add(time.Duration(micros) * time.Microsecond)
}
