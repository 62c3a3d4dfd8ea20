package a

func convert() {
	x := (*T)(nil) // want `nil value is converted \(conversion to \(\*T\)\) \(no:cnv\)`
	_ = x
}

func literal() {
	f := func() *T {
		return nil // want `unsupported nil context \(returned from a function literal\) \(no:ctx\)`
	}
	_ = f
}

func callback(cb *T) { _ = cb }

var handler = callback // want `unsupported nil context: 'cb' \(function used as a value\)`

func register() {
	callback(nil)
}
