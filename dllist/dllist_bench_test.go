package dllist

import "testing"

func BenchmarkPushBackPopFront(b *testing.B) {
	a := NewArena[int](1, false)
	l, err := NewList(a, 0)
	if err != nil {
		b.Fatal(err)
	}
	h, err := a.Alloc(42)
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = l.PushBack(h)
		_, _ = l.PopFront()
	}
}

func BenchmarkMoveTo(b *testing.B) {
	a := NewArena[int](1, false)
	l1, err := NewList(a, 0)
	if err != nil {
		b.Fatal(err)
	}
	l2, err := NewList(a, 0)
	if err != nil {
		b.Fatal(err)
	}
	h, err := a.Alloc(42)
	if err != nil {
		b.Fatal(err)
	}
	if err := l1.PushBack(h); err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if i&1 == 0 {
			_ = l1.MoveTo(l2, h)
		} else {
			_ = l2.MoveTo(l1, h)
		}
	}
}
