// SPDX-License-Identifier: MIT

// Package matrix: functional options for Dense construction.
//
// Only one policy knob exists: whether +Inf ("no arc") may be stored.
// Travel-time matrices need it; cost and load matrices do not.
package matrix

// DefaultAllowInf keeps matrices finite unless a caller opts in.
const DefaultAllowInf = false

// Option configures a Dense at construction time.
type Option func(*options)

type options struct {
	allowInf bool
}

// WithAllowInf permits +Inf entries (the "no arc" marker). NaN and −Inf stay rejected.
func WithAllowInf() Option {
	return func(o *options) { o.allowInf = true }
}

// gatherOptions applies user options over the documented defaults.
func gatherOptions(user ...Option) options {
	o := options{allowInf: DefaultAllowInf}
	for _, opt := range user {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}
