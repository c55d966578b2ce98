package common

// Sign returns -1, 0 or 1 according to the sign of v.
func Sign(v float64) float64 {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}

// Half halves an integer size the way pixel sizes are halved everywhere in
// the engine: truncating toward zero.
func Half(size int) float64 {
	return float64(size / 2)
}
