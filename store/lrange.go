package store

// Window resolves LRANGE start/stop against a list of length n and returns
// the half-open [lo, hi) slice bounds. Out of range windows yield lo == hi.
func Window(n int, start, stop int64) (lo, hi int) {
	size := int64(n)
	if start < 0 {
		start += size
	}
	if stop < 0 {
		stop += size
	}
	if start < 0 {
		start = 0
	}
	if stop >= size {
		stop = size - 1
	}
	if start > stop || start >= size {
		return 0, 0
	}
	return int(start), int(stop) + 1
}
