package store

type Item struct{ Name string }

// Lookup returns the named item, or nil.
func Lookup(name string) *Item {
	if name == "" {
		return nil
	}

	return &Item{Name: name}
}
