package eval

import "math"

// AddInt32Checked returns (a+b, ok). ok is false on signed overflow.
func AddInt32Checked(a, b int32) (int32, bool) {
	if (b > 0 && a > math.MaxInt32-b) || (b < 0 && a < math.MinInt32-b) {
		return 0, false
	}
	return a + b, true
}
