// Package sanitize wraps the HTML sanitization policy applied to all
// user-authored content before it is stored.
package sanitize

import "github.com/microcosm-cc/bluemonday"

// Cleaner sanitizes HTML fragments. Cleaning is idempotent: cleaning already
// clean HTML returns it unchanged.
type Cleaner struct {
	policy *bluemonday.Policy
}

// NewCleaner returns a Cleaner with the user-generated-content policy:
// common formatting and link tags survive, scripts and event handlers do
// not.
func NewCleaner() *Cleaner {
	return &Cleaner{policy: bluemonday.UGCPolicy()}
}

// Clean sanitizes one HTML fragment.
func (c *Cleaner) Clean(html string) string {
	return c.policy.Sanitize(html)
}
