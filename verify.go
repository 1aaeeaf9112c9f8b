// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stbmatch

import (
	"fmt"

	"go.uber.org/multierr"
	"k8s.io/apimachinery/pkg/util/sets"
)

// Verify checks a result against the applicants and slots it was computed
// from and reports every violation found:
//   - a slot holds more applicants than its capacity,
//   - an applicant sits in a slot it excludes,
//   - an unknown applicant or slot shows up,
//   - an applicant is both placed and not placable,
//   - an applicant is placed twice into the same slot,
//   - an applicant is missing, unless no slot has any capacity in multi mode,
//   - in single mode, an applicant is placed more than once.
func Verify(applicants []Applicant, slots []Slot, result Result, multi bool) error {
	var errs error

	known := make(map[string]Applicant, len(applicants))
	for _, a := range applicants {
		known[a.Name] = a
	}
	capacity := make(map[string]int, len(slots))
	total := 0
	for _, s := range slots {
		capacity[s.Name] = s.Capacity
		total += s.Capacity
	}

	seen := make(map[string]int, len(applicants))

	for _, name := range result.Slots() {
		held := result.Placed[name]
		c, ok := capacity[name]
		if !ok {
			errs = multierr.Append(errs, fmt.Errorf("unknown slot %q", name))
		} else if len(held) > c {
			errs = multierr.Append(errs, fmt.Errorf("slot %q holds %d applicants, capacity %d", name, len(held), c))
		}

		inSlot := sets.New[string]()
		for _, a := range held {
			orig, ok := known[a.Name]
			if !ok {
				errs = multierr.Append(errs, fmt.Errorf("unknown applicant %q in slot %q", a.Name, name))
				continue
			}
			if inSlot.Has(a.Name) {
				errs = multierr.Append(errs, fmt.Errorf("applicant %q placed twice in slot %q", a.Name, name))
			}
			inSlot.Insert(a.Name)
			for _, ex := range orig.Exclude {
				if ex.Name == name {
					errs = multierr.Append(errs, fmt.Errorf("applicant %q placed in excluded slot %q", a.Name, name))
				}
			}
			seen[a.Name]++
		}
	}

	unplaced := sets.New[string]()
	for _, a := range result.NotPlacable {
		if _, ok := known[a.Name]; !ok {
			errs = multierr.Append(errs, fmt.Errorf("unknown applicant %q not placable", a.Name))
			continue
		}
		if unplaced.Has(a.Name) {
			errs = multierr.Append(errs, fmt.Errorf("applicant %q not placable twice", a.Name))
		}
		unplaced.Insert(a.Name)
		if seen[a.Name] > 0 {
			errs = multierr.Append(errs, fmt.Errorf("applicant %q both placed and not placable", a.Name))
		}
	}

	// multi mode skips every round when there is nothing to hand out
	if multi && total == 0 {
		return errs
	}

	for _, a := range applicants {
		switch {
		case seen[a.Name] == 0 && !unplaced.Has(a.Name):
			errs = multierr.Append(errs, fmt.Errorf("applicant %q missing from result", a.Name))
		case !multi && seen[a.Name] > 1:
			errs = multierr.Append(errs, fmt.Errorf("applicant %q placed %d times", a.Name, seen[a.Name]))
		}
	}

	return errs
}
