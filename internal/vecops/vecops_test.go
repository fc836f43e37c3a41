package vecops

import "testing"

func TestAddI16MatchesScalar(t *testing.T) {
	dst := make([]int16, 37)
	ref := make([]int16, 37)
	src := make([]int16, 37)
	for i := range src {
		src[i] = int16(i*7 - 50)
		dst[i] = int16(i)
		ref[i] = int16(i)
	}

	AddI16(dst, src)
	AddI16Scalar(ref, src)

	for i := range dst {
		if dst[i] != ref[i] {
			t.Fatalf("index %d: got %d, want %d", i, dst[i], ref[i])
		}
	}
}

func TestSubI16MatchesScalar(t *testing.T) {
	dst := make([]int16, 37)
	ref := make([]int16, 37)
	src := make([]int16, 37)
	for i := range src {
		src[i] = int16(i*3 - 20)
		dst[i] = int16(i * 2)
		ref[i] = int16(i * 2)
	}

	SubI16(dst, src)
	SubI16Scalar(ref, src)

	for i := range dst {
		if dst[i] != ref[i] {
			t.Fatalf("index %d: got %d, want %d", i, dst[i], ref[i])
		}
	}
}

func TestDotI8MatchesScalar(t *testing.T) {
	for _, n := range []int{0, 1, 3, 4, 5, 8, 31, 32, 256} {
		a := make([]int8, n)
		b := make([]int8, n)
		for i := 0; i < n; i++ {
			a[i] = int8(i*5 - 64)
			b[i] = int8(-i * 3)
		}
		got := DotI8(a, b)
		want := DotI8Scalar(a, b)
		if got != want {
			t.Fatalf("n=%d: got %d, want %d", n, got, want)
		}
	}
}
