package quadrature

import (
	"math"
	"testing"
)

func BenchmarkSimpson_128(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _, _ = Approximate(math.Sin, 0, math.Pi, 128, Simpson)
	}
}

func BenchmarkReference(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = Reference(math.Sin, 0, math.Pi)
	}
}
