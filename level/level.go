// SPDX-License-Identifier: EPL-2.0

// Package level holds the tagged decibel value reported by every meter.
//
// A Value is either a finite number of decibels or Unavailable. Meters never
// report -Inf or NaN: silence, a gated-out signal or a failed computation all
// collapse to Unavailable, so a reader can always tell a real measurement from
// a missing one.
package level

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/ik5/audmeter/utils"
)

// Value is a measurement in dB (LUFS, LU or dBFS depending on the meter).
// The zero Value is Unavailable.
type Value struct {
	db float64
	ok bool
}

// Unavailable marks a metric that could not produce a finite value.
var Unavailable = Value{}

// NotAvailable is how Unavailable is rendered as text.
const NotAvailable = "N/A"

// Of wraps db, mapping NaN and infinities to Unavailable.
func Of(db float64) Value {
	if !utils.IsFinite(db) {
		return Unavailable
	}
	return Value{db: db, ok: true}
}

// FromAmplitude converts a linear peak or RMS amplitude to dBFS.
// Non-positive amplitudes are Unavailable.
func FromAmplitude(a float64) Value {
	if !(a > 0) {
		return Unavailable
	}
	return Of(utils.AmplitudeToDB(a))
}

// DB returns the value and whether it is available.
func (v Value) DB() (float64, bool) { return v.db, v.ok }

func (v Value) Available() bool { return v.ok }

// Above reports whether v is available and strictly greater than db.
func (v Value) Above(db float64) bool { return v.ok && v.db > db }

// Max returns the larger of two values; an available value beats Unavailable.
func Max(a, b Value) Value {
	switch {
	case !a.ok:
		return b
	case !b.ok:
		return a
	case b.db > a.db:
		return b
	default:
		return a
	}
}

// String renders the signed value with one fractional digit, or "N/A".
func (v Value) String() string {
	if !v.ok {
		return NotAvailable
	}
	s := strconv.FormatFloat(v.db, 'f', 1, 64)
	if s == "-0.0" {
		return "0.0"
	}
	return s
}

// MarshalJSON encodes an available value as a number with one fractional
// digit and Unavailable as null.
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.ok {
		return []byte("null"), nil
	}
	return []byte(v.String()), nil
}

func (v *Value) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*v = Unavailable
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*v = Of(f)

	return nil
}
