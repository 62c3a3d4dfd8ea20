package noimplicit

type Node struct {
	next *Node // want `category not eligible: 'next' \(implicit field\) \(no:cat\)`
	name string
}

var current *Node // want `category not eligible: 'current' \(implicit variable\) \(no:cat\)`

type Stack struct {
	top *Node // want `field 'top' may be nil and can become optional \(no:grp\)`
}

func (s *Stack) Clear() {
	s.top = nil
}
