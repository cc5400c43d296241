// Package binding reconciles collected references against the catalog's
// identifier set.
package binding

import (
	"github.com/leapstack-labs/bindcheck/internal/catalog"
	"github.com/leapstack-labs/bindcheck/internal/scan"
)

// Verdict is the outcome of reconciling references against the catalog.
type Verdict struct {
	Checked  int              // references examined
	Failures []scan.Reference // references whose identifier is unknown
}

// OK reports whether every reference resolved.
func (v *Verdict) OK() bool {
	return len(v.Failures) == 0
}

// Vacuous reports whether there was nothing to check.
func (v *Verdict) Vacuous() bool {
	return v.Checked == 0
}

// Reconcile checks each reference for membership in the valid set.
//
// It performs no I/O and does not mutate its inputs. Failures preserve the
// input order, and every occurrence of a repeated unknown identifier is
// reported separately. An empty reference list yields a vacuous success;
// an empty catalog fails every reference.
func Reconcile(refs []scan.Reference, valid *catalog.IDSet) *Verdict {
	v := &Verdict{Checked: len(refs)}
	for _, ref := range refs {
		if !valid.Contains(ref.ID) {
			v.Failures = append(v.Failures, ref)
		}
	}
	return v
}
