// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package stbmatch places applicants into capacity bounded slots with the
// deferred acceptance algorithm and a single random tie break (DA-STB).
//
// Names are the identity of slots and applicants. They must be unique
// within one call, capacities must not be negative and every preference
// must name a slot of the slot list; none of this is checked here.
package stbmatch

import "sort"

type Slot struct {
	Name     string
	Capacity int
}

func NewSlot(name string, capacity int) Slot {
	return Slot{Name: name, Capacity: capacity}
}

func (s Slot) Equal(o Slot) bool {
	return s.Name == o.Name
}

type Applicant struct {
	Name        string
	Preferences []Slot // most preferred first
	Exclude     []Slot
}

func NewApplicant(name string, preferences, exclude []Slot) Applicant {
	return Applicant{
		Name:        name,
		Preferences: preferences,
		Exclude:     exclude,
	}
}

func (a Applicant) Equal(o Applicant) bool {
	return a.Name == o.Name
}

// SortApplicants orders applicants by name. Placement never depends on it.
func SortApplicants(applicants []Applicant) {
	sort.Slice(applicants, func(i, j int) bool {
		return applicants[i].Name < applicants[j].Name
	})
}

// Result holds the caller's own Applicant records, as passed in. The copies
// the matcher consumes preferences from, and the exclusions it adds between
// multi rounds, are never returned.
type Result struct {
	Placed      map[string][]Applicant // slot name
	NotPlacable []Applicant
}

func (r Result) PlacedCount() int {
	n := 0
	for _, as := range r.Placed {
		n += len(as)
	}
	return n
}

// Slots returns the names of the slots holding applicants, sorted.
func (r Result) Slots() []string {
	names := make([]string, 0, len(r.Placed))
	for name := range r.Placed {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Rand is the randomness the matcher consumes: one shuffle for the tie
// break, then one draw per residual assignment. *rand.Rand of math/rand/v2
// satisfies it.
type Rand interface {
	Shuffle(n int, swap func(i, j int))
	IntN(n int) int
}

// Recorder observes a matcher run. All methods are called synchronously.
type Recorder interface {
	// RecordPass is called after each placement and truncation pass.
	RecordPass(unplaced, evicted int)
	// RecordResidual is called once the residual random assignment is done.
	RecordResidual(placed, unplaced int)
	// RecordRound is called after each multi-category round.
	RecordRound(round, placed int)
}
