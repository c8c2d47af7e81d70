package frontend

import "github.com/cottand/ilecheck/frontend/ilerr"

// Options configure how a compilation unit is checked.
type Options struct {
	// KeepGoing makes checking carry on after the first erroneous declaration,
	// to report as many errors as possible.
	KeepGoing bool
}

func (o Options) policy() ilerr.Policy {
	if o.KeepGoing {
		return ilerr.CollectAll
	}
	return ilerr.FailFast
}
