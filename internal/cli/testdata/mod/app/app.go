package app

import "example.com/mod/store"

func Find() *store.Item {
	item := store.Lookup("x")

	return item
}

func Convert() {
	x := (*store.Item)(nil)
	_ = x
}
