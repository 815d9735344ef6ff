package gram_test

import (
	"testing"

	"github.com/katalvlaran/oavi/gram"
)

// BenchmarkAppend_NoInverse streams 100 columns of height 500 into G only.
func BenchmarkAppend_NoInverse(b *testing.B) {
	cols := randomColumns(500, 100, 1)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s, _ := gram.New(500)
		for _, c := range cols {
			_, _ = s.Append(c)
		}
	}
}

// BenchmarkAppend_FullInverse adds the O(m²) Schur update per column.
func BenchmarkAppend_FullInverse(b *testing.B) {
	cols := randomColumns(500, 100, 1)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s, _ := gram.New(500, gram.WithInverse(gram.InverseFull))
		for _, c := range cols {
			_, _ = s.Append(c)
		}
	}
}
