package respecth

import (
	"encoding/json"
	"strconv"
)

// Scalar is a tagged Text-or-Number value. ReSpecTh documents carry numeric
// measurements and free text in the same element slots, so every scalar field
// of a record records which of the two it holds. A Scalar is immutable after
// construction.
type Scalar struct {
	num     float64
	text    string
	numeric bool
}

// Number constructs a numeric Scalar.
func Number(v float64) Scalar {
	return Scalar{num: v, numeric: true}
}

// Text constructs a textual Scalar.
func Text(s string) Scalar {
	return Scalar{text: s}
}

// Coerce parses s as a floating-point literal and returns a numeric Scalar on
// success, otherwise a textual Scalar holding s unchanged. This is the single
// coercion rule used for property values and data-point cells; a failed parse
// is a silent degradation, never an error.
func Coerce(s string) Scalar {
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return Number(v)
	}
	return Text(s)
}

// IsNumber reports whether the Scalar holds a numeric value.
func (s Scalar) IsNumber() bool {
	return s.numeric
}

// Float returns the numeric value and true, or (0, false) for textual Scalars.
func (s Scalar) Float() (float64, bool) {
	if !s.numeric {
		return 0, false
	}
	return s.num, true
}

// String renders the value: numbers via strconv.FormatFloat with the shortest
// round-trippable representation, text verbatim.
func (s Scalar) String() string {
	if s.numeric {
		return strconv.FormatFloat(s.num, 'g', -1, 64)
	}
	return s.text
}

// MarshalJSON encodes numeric Scalars as JSON numbers and textual ones as
// JSON strings, so cached records stay compact and readable.
func (s Scalar) MarshalJSON() ([]byte, error) {
	if s.numeric {
		return json.Marshal(s.num)
	}
	return json.Marshal(s.text)
}

// UnmarshalJSON restores the Text|Number tag from the JSON token type.
func (s *Scalar) UnmarshalJSON(data []byte) error {
	var v float64
	if err := json.Unmarshal(data, &v); err == nil {
		*s = Number(v)
		return nil
	}
	var t string
	if err := json.Unmarshal(data, &t); err != nil {
		return err
	}
	*s = Text(t)
	return nil
}
