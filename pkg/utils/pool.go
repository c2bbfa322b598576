package utils

// PoolSize bounds a worker pool for n items: never zero-sized, never above
// the ceiling. The ceiling keeps a suddenly-large item list from overwhelming
// the upstream
func PoolSize(n, ceiling int) int {
	if n < 1 {
		n = 1
	}
	if n > ceiling {
		return ceiling
	}
	return n
}
