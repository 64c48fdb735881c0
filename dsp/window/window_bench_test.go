package window

import (
	"strconv"
	"testing"
)

func BenchmarkGenerate(b *testing.B) {
	for _, n := range []int{256, 1024, 4096} {
		for _, typ := range []Type{Hanning, Blackman} {
			b.Run(typ.String()+"/"+strconv.Itoa(n), func(b *testing.B) {
				b.ReportAllocs()
				for i := 0; i < b.N; i++ {
					_ = Generate(typ, n)
				}
			})
		}
	}
}
