package implicit

type Node struct {
	next *Node // want `field 'next' may be nil`
	name string
}

var current *Node // want `variable 'current' may be nil`

func (n *Node) Name() string {
	return n.name
}
