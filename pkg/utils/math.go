package utils

// FloorDivMod returns the quotient rounded toward negative infinity and the
// matching non-negative remainder, so that a == q*b + r and 0 <= r < b for b > 0.
func FloorDivMod(a, b int64) (q, r int64) {
	q = a / b
	r = a % b
	if r != 0 && (r < 0) != (b < 0) {
		q--
		r += b
	}
	return q, r
}
