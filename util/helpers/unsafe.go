package helpers

import "unsafe"

// Sizeof reports the size in bytes of T's values.
func Sizeof[T any]() uintptr {
	var v T
	return unsafe.Sizeof(v)
}

// Alignof reports the required alignment of T's values.
func Alignof[T any]() uintptr {
	var v T
	return unsafe.Alignof(v)
}
