// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package roster

import (
	"fmt"

	"go.uber.org/multierr"
	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/someonegg/stbmatch"
)

// Validate reports every problem that would break the matcher's
// preconditions: missing or duplicate names, negative capacities and
// references to unknown slots.
func (inst *Instance) Validate() error {
	var errs error

	slots := sets.New[string]()
	for i, s := range inst.Slots {
		if s == nil {
			errs = multierr.Append(errs, fmt.Errorf("slot #%d is empty", i))
			continue
		}
		switch {
		case s.Name == "":
			errs = multierr.Append(errs, fmt.Errorf("slot #%d has no name", i))
		case slots.Has(s.Name):
			errs = multierr.Append(errs, fmt.Errorf("slot %q is repeated", s.Name))
		default:
			slots.Insert(s.Name)
		}
		if s.Capacity < 0 {
			errs = multierr.Append(errs, fmt.Errorf("slot %q has negative capacity %d", s.Name, s.Capacity))
		}
	}

	applicants := sets.New[string]()
	for i, a := range inst.Applicants {
		if a == nil {
			errs = multierr.Append(errs, fmt.Errorf("applicant #%d is empty", i))
			continue
		}
		switch {
		case a.Name == "":
			errs = multierr.Append(errs, fmt.Errorf("applicant #%d has no name", i))
		case applicants.Has(a.Name):
			errs = multierr.Append(errs, fmt.Errorf("applicant %q is repeated", a.Name))
		default:
			applicants.Insert(a.Name)
		}

		prefs := sets.New[string]()
		for _, p := range a.Preferences {
			if !slots.Has(p) {
				errs = multierr.Append(errs, fmt.Errorf("applicant %q prefers unknown slot %q", a.Name, p))
			}
			if prefs.Has(p) {
				errs = multierr.Append(errs, fmt.Errorf("applicant %q prefers slot %q twice", a.Name, p))
			}
			prefs.Insert(p)
		}
		for _, e := range a.Exclude {
			if !slots.Has(e) {
				errs = multierr.Append(errs, fmt.Errorf("applicant %q excludes unknown slot %q", a.Name, e))
			}
		}
	}

	return errs
}

// Resolve turns the records into matcher values. The instance must be valid.
func (inst *Instance) Resolve() ([]stbmatch.Applicant, []stbmatch.Slot) {
	slots := make([]stbmatch.Slot, len(inst.Slots))
	byName := make(map[string]stbmatch.Slot, len(inst.Slots))
	for i, s := range inst.Slots {
		slots[i] = stbmatch.NewSlot(s.Name, s.Capacity)
		byName[s.Name] = slots[i]
	}

	lookup := func(names []string) []stbmatch.Slot {
		if len(names) == 0 {
			return nil
		}
		out := make([]stbmatch.Slot, len(names))
		for i, name := range names {
			out[i] = byName[name]
		}
		return out
	}

	applicants := make([]stbmatch.Applicant, len(inst.Applicants))
	for i, a := range inst.Applicants {
		applicants[i] = stbmatch.NewApplicant(a.Name, lookup(a.Preferences), lookup(a.Exclude))
	}

	return applicants, slots
}

// SampleInstance is a small instance with three activities and five
// applicants.
func SampleInstance() *Instance {
	return &Instance{
		Slots: []*Slot{
			{Name: "Cooking", Capacity: 3},
			{Name: "Reading", Capacity: 2},
			{Name: "Walking", Capacity: 1},
		},
		Applicants: []*Applicant{
			{Name: "Bert", Preferences: []string{"Cooking", "Reading", "Walking"}},
			{Name: "Suze", Preferences: []string{"Walking", "Cooking"}},
			{Name: "Kate", Preferences: []string{"Walking", "Reading"}},
			{Name: "Harry", Preferences: []string{"Walking"}, Exclude: []string{"Cooking"}},
			{Name: "Lisa"},
		},
	}
}
