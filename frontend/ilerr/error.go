package ilerr

import (
	"cmp"
	"fmt"
	"log/slog"
	"slices"
	"sort"

	"github.com/xtgo/set"
)

type Errors struct {
	errs []IleError
}

func (r *Errors) With(err ...IleError) *Errors {
	if r == nil {
		return &Errors{errs: err}
	}
	for _, err := range err {
		r.errs = append(r.errs, err)
	}
	return r
}

func (r *Errors) Merge(err *Errors) *Errors {
	if r == nil {
		return err
	}
	if err == nil {
		return r
	}
	if len(err.errs) == 0 {
		return r
	}
	return r.With(err.errs...)
}

func (r *Errors) Errors() []IleError {
	if r == nil {
		return nil
	}
	return r.errs
}

func (r *Errors) HasError() bool {
	if r == nil {
		return false
	}
	return len(r.errs) > 0
}

// Sorted returns the errors ordered by source position, without duplicates.
func (r *Errors) Sorted() *Errors {
	if !r.HasError() {
		return r
	}
	errs := byPosition(slices.Clone(r.errs))
	sort.Stable(errs)
	return &Errors{errs: errs[:set.Uniq(errs)]}
}

func (r *Errors) LogValue() slog.Value {
	var vals []slog.Attr
	for i, v := range r.Errors() {
		vals = append(vals, slog.Attr{
			Key: fmt.Sprint("e", i),
			Value: slog.GroupValue(
				slog.Attr{
					Key:   "msg",
					Value: slog.StringValue(FormatWithCode(v)),
				},
			),
		})
	}
	return slog.GroupValue(vals...)
}

type byPosition []IleError

func (b byPosition) Len() int      { return len(b) }
func (b byPosition) Swap(i, j int) { b[i], b[j] = b[j], b[i] }
func (b byPosition) Less(i, j int) bool {
	return cmp.Or(
		cmp.Compare(b[i].Pos(), b[j].Pos()),
		cmp.Compare(b[i].End(), b[j].End()),
		cmp.Compare(b[i].Code(), b[j].Code()),
		cmp.Compare(b[i].Error(), b[j].Error()),
	) < 0
}

// Policy decides whether reporting an error stops the reporter.
type Policy uint8

const (
	// CollectAll keeps going after errors, so that one run reports as many as possible
	CollectAll Policy = iota
	// FailFast stops at the first error
	FailFast
)

func (p Policy) String() string {
	switch p {
	case CollectAll:
		return "collect-all"
	case FailFast:
		return "fail-fast"
	default:
		return "invalid"
	}
}

// Collector accumulates errors according to a Policy.
type Collector struct {
	policy Policy
	errs   *Errors
}

func NewCollector(policy Policy) *Collector {
	return &Collector{policy: policy}
}

// Report records err, and returns whether the caller should stop.
func (c *Collector) Report(err IleError) (stop bool) {
	c.errs = c.errs.With(err)
	return c.policy == FailFast
}

// Stopped holds once a FailFast collector received an error.
func (c *Collector) Stopped() bool {
	return c.policy == FailFast && c.errs.HasError()
}

func (c *Collector) Policy() Policy { return c.policy }

// Errors returns what was reported so far, or nil if nothing was.
func (c *Collector) Errors() *Errors { return c.errs }
