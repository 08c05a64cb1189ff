package future

import "testing"

// BenchmarkSetValueGetHost measures settling a promise and retrieving it
// from a plain host goroutine, the path that never touches a scheduler.
func BenchmarkSetValueGetHost(b *testing.B) {
	for i := 0; i < b.N; i++ {
		p := NewPromise[int]()
		f, err := p.GetFuture()
		if err != nil {
			b.Fatal(err)
		}
		if err := p.SetValue(i); err != nil {
			b.Fatal(err)
		}
		if _, err := f.GetHost(); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkSharedFutureFanoutGet measures SharedFuture.Get across several
// already-ready consumers, the common post-settle fanout read.
func BenchmarkSharedFutureFanoutGet(b *testing.B) {
	p := NewPromise[int]()
	f, err := p.GetFuture()
	if err != nil {
		b.Fatal(err)
	}
	if err := p.SetValue(7); err != nil {
		b.Fatal(err)
	}
	sf := f.Share()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := sf.GetHost(); err != nil {
			b.Fatal(err)
		}
	}
}
