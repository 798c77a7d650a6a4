package use_cases

import "github.com/stretchr/testify/mock"

// ret liefert args.Get(i) als T; ein untypisiertes nil ergibt den Nullwert.
func ret[T any](args mock.Arguments, i int) T {
	var zero T
	v := args.Get(i)
	if v == nil {
		return zero
	}
	return v.(T)
}
