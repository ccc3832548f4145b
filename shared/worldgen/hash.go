package worldgen

// hash32 mixes a 32-bit input into a well distributed 32-bit output
// (Murmur finalizer style avalanche). Stable across platforms and releases.
func hash32(x uint32) uint32 {
	x ^= x >> 16
	x *= 0x7feb352d
	x ^= x >> 15
	x *= 0x846ca68b
	x ^= x >> 16
	return x
}

// unit maps a 64-bit seed to a uniform value in [0, 1).
func unit(seed int64) float64 {
	s := uint64(seed)
	h := hash32(uint32(s) ^ hash32(uint32(s>>32)^0x9e3779b1))
	return float64(h) / (1 << 32)
}

// intn maps seed to an integer in [0, n).
func intn(seed int64, n int) int {
	return int(unit(seed) * float64(n))
}
