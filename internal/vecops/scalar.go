//go:build !amd64

// Scalar fallback for architectures without an accelerated path.

package vecops

func addI16(dst, src []int16) { AddI16Scalar(dst, src) }
func subI16(dst, src []int16) { SubI16Scalar(dst, src) }
func dotI8(a, b []int8) int32 { return DotI8Scalar(a, b) }
