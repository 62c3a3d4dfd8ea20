package a

type List struct {
	next *List // want `field 'next' may be nil`
}

func (l *List) Reset() {
	l.next = nil
}

type Setter interface {
	Set(v *T) // want `parameter 'v' of Setter.Set, parameter 'v' of A.Set and parameter 'v' of B.Set share nil values`
}

type A struct{}

func (A) Set(v *T) { _ = v }

type B struct{}

func (*B) Set(v *T) { _ = v }

func set(s Setter) {
	s.Set(nil)
}
