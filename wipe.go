package scell

import "runtime"

// Wipe overwrites b with zeros. KeepAlive pins the slice so the stores
// survive optimization even when b is about to go out of scope.
func Wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
	runtime.KeepAlive(b)
}
