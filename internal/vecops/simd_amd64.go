//go:build amd64

// Accelerated path for amd64: a 4-wide unrolled loop gated on AVX2 being
// reported present at runtime. Falls back to the scalar loop otherwise.
// There is no hand-written assembly here — the unroll is what the
// compiler can already vectorize well on AVX2-capable cores, and the
// feature gate exists so the same binary runs correctly (just slower) on
// older hardware.

package vecops

import "golang.org/x/sys/cpu"

var hasAVX2 = cpu.X86.HasAVX2

func addI16(dst, src []int16) {
	if !hasAVX2 {
		AddI16Scalar(dst, src)
		return
	}
	n := len(dst)
	i := 0
	for ; i+4 <= n; i += 4 {
		dst[i] += src[i]
		dst[i+1] += src[i+1]
		dst[i+2] += src[i+2]
		dst[i+3] += src[i+3]
	}
	for ; i < n; i++ {
		dst[i] += src[i]
	}
}

func subI16(dst, src []int16) {
	if !hasAVX2 {
		SubI16Scalar(dst, src)
		return
	}
	n := len(dst)
	i := 0
	for ; i+4 <= n; i += 4 {
		dst[i] -= src[i]
		dst[i+1] -= src[i+1]
		dst[i+2] -= src[i+2]
		dst[i+3] -= src[i+3]
	}
	for ; i < n; i++ {
		dst[i] -= src[i]
	}
}

func dotI8(a, b []int8) int32 {
	if !hasAVX2 {
		return DotI8Scalar(a, b)
	}
	var sum int32
	n := len(a)
	i := 0
	for ; i+4 <= n; i += 4 {
		sum += int32(a[i])*int32(b[i]) +
			int32(a[i+1])*int32(b[i+1]) +
			int32(a[i+2])*int32(b[i+2]) +
			int32(a[i+3])*int32(b[i+3])
	}
	for ; i < n; i++ {
		sum += int32(a[i]) * int32(b[i])
	}
	return sum
}
