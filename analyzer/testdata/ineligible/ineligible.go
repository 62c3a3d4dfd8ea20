package ineligible

func set(p *int) { _ = p } // want `category not eligible: 'p'`

func call() {
	set(nil)
}
