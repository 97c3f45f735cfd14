package atomkit

import "testing"

func BenchmarkLoad(b *testing.B) {
	a := New[Uint64, Uint64](42)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = a.Load(SeqCst)
	}
}

func BenchmarkStore(b *testing.B) {
	a := New[Uint64, Uint64](0)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		a.Store(Uint64(i), SeqCst)
	}
}

func BenchmarkFetchAdd(b *testing.B) {
	a := New[Uint64, Uint64](0)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		FetchAdd(a, 1, Relaxed)
	}
}

func BenchmarkFetchAddSubWord(b *testing.B) {
	a := New[Uint8, Uint8](0)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		FetchAdd(a, 1, Relaxed)
	}
}

func BenchmarkCompareExchange(b *testing.B) {
	a := New[Uint64, Uint64](0)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		a.CompareExchange(Uint64(i), Uint64(i+1), SeqCst, SeqCst)
	}
}

func BenchmarkFetchUpdate(b *testing.B) {
	a := New[Uint64, Uint64](0)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		a.FetchUpdate(SeqCst, SeqCst, func(v Uint64) (Uint64, bool) {
			return v + 1, true
		})
	}
}

func BenchmarkFloatSwapParallel(b *testing.B) {
	a := New[Float64, Uint64](0)
	b.ReportAllocs()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			a.Swap(3.14, Relaxed)
		}
	})
}

func BenchmarkLoadParallel(b *testing.B) {
	a := New[Uint64, Uint64](42)
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			_ = a.Load(Acquire)
		}
	})
}
