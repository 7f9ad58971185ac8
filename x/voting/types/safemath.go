package types

import (
	"math"
	"math/bits"
)

// SafeAdd returns a+b or ErrArithmeticOverflow.
func SafeAdd(a, b uint64) (uint64, error) {
	sum, carry := bits.Add64(a, b, 0)
	if carry != 0 {
		return 0, ErrArithmeticOverflow
	}
	return sum, nil
}

// SafeSub returns a-b or ErrArithmeticUnderflow.
func SafeSub(a, b uint64) (uint64, error) {
	diff, borrow := bits.Sub64(a, b, 0)
	if borrow != 0 {
		return 0, ErrArithmeticUnderflow
	}
	return diff, nil
}

// SafeMul returns a*b or ErrArithmeticOverflow.
func SafeMul(a, b uint64) (uint64, error) {
	hi, lo := bits.Mul64(a, b)
	if hi != 0 {
		return 0, ErrArithmeticOverflow
	}
	return lo, nil
}

// SafeAddTime adds a duration in seconds to a unix timestamp.
func SafeAddTime(ts, seconds int64) (int64, error) {
	if seconds > 0 && ts > math.MaxInt64-seconds {
		return 0, ErrArithmeticOverflow
	}
	if seconds < 0 && ts < math.MinInt64-seconds {
		return 0, ErrArithmeticUnderflow
	}
	return ts + seconds, nil
}
