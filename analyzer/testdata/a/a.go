package a

type T struct{}

func control() {
	var c *T // want `variable 'c' may be nil and can become optional \(no:grp\)`
	c = nil
	_ = c
}

func chain() {
	var b *T // want `variable 'b' and variable 'a' share nil values and can become optional together \(no:grp\)`
	b = nil
	a := b
	_ = a
}

func find(name string) *T { // want `result 0 of find, parameter 'p' of use and variable 'item' share nil values`
	if name == "" {
		return nil
	}

	return &T{}
}

func use(p *T) { _ = p }

func lookup() {
	item := find("x")
	use(item)
}

func suppressed() {
	var s *T //nolint:nilopt
	s = nil
	_ = s
}

func fail() error {
	return nil
}
