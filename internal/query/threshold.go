package query

import (
	"errors"
	"fmt"
)

// ErrInvalidThreshold is returned by Threshold.Validate.
var ErrInvalidThreshold = errors.New("invalid threshold")

type thresholdOp int

const (
	opAbove thresholdOp = iota + 1
	opAtLeast
	opBelow
	opBetween
)

// Threshold is a comparison applied to a count.
type Threshold struct {
	op     thresholdOp
	lo, hi int64
}

// Above matches counts strictly greater than n.
func Above(n int64) Threshold { return Threshold{op: opAbove, lo: n} }

// AtLeast matches counts greater than or equal to n.
func AtLeast(n int64) Threshold { return Threshold{op: opAtLeast, lo: n} }

// Below matches counts strictly less than n.
func Below(n int64) Threshold { return Threshold{op: opBelow, hi: n} }

// Between matches counts strictly between lo and hi.
func Between(lo, hi int64) Threshold { return Threshold{op: opBetween, lo: lo, hi: hi} }

func (t Threshold) Validate() error {
	switch t.op {
	case opAbove, opAtLeast:
		if t.lo < 0 {
			return fmt.Errorf("%w: negative bound %d", ErrInvalidThreshold, t.lo)
		}
	case opBelow:
		if t.hi < 0 {
			return fmt.Errorf("%w: negative bound %d", ErrInvalidThreshold, t.hi)
		}
	case opBetween:
		if t.lo < 0 || t.hi < 0 {
			return fmt.Errorf("%w: negative bound", ErrInvalidThreshold)
		}
		if t.lo > t.hi {
			return fmt.Errorf("%w: range %d..%d is inverted", ErrInvalidThreshold, t.lo, t.hi)
		}
	default:
		return fmt.Errorf("%w: no comparison set", ErrInvalidThreshold)
	}
	return nil
}

// Match applies the threshold in Go.
func (t Threshold) Match(n int64) bool {
	switch t.op {
	case opAbove:
		return n > t.lo
	case opAtLeast:
		return n >= t.lo
	case opBelow:
		return n < t.hi
	case opBetween:
		return n > t.lo && n < t.hi
	}
	return false
}

// Cond renders the threshold against a SQL expression, typically an
// aggregate for a HAVING clause.
func (t Threshold) Cond(expr string) Cond {
	switch t.op {
	case opAbove:
		return C(expr+" > ?", t.lo)
	case opAtLeast:
		return C(expr+" >= ?", t.lo)
	case opBelow:
		return C(expr+" < ?", t.hi)
	case opBetween:
		return C(expr+" > ? AND "+expr+" < ?", t.lo, t.hi)
	}
	return C("1 = 1")
}

func (t Threshold) String() string {
	switch t.op {
	case opAbove:
		return fmt.Sprintf("> %d", t.lo)
	case opAtLeast:
		return fmt.Sprintf(">= %d", t.lo)
	case opBelow:
		return fmt.Sprintf("< %d", t.hi)
	case opBetween:
		return fmt.Sprintf("in (%d, %d)", t.lo, t.hi)
	}
	return "any"
}
