package sim

import "errors"

// ErrUndefinedTHD indicates the THD denominator (the fundamental's solved
// output magnitude) is exactly zero while harmonics are present. Signaled
// explicitly instead of returning NaN.
var ErrUndefinedTHD = errors.New("sim: THD undefined, fundamental output is zero")
