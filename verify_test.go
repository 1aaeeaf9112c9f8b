// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stbmatch

import (
	"testing"

	"go.uber.org/multierr"
)

func TestVerify(t *testing.T) {
	applicants, slots := makeData(1, 2, 1)
	bert, suze, kate, harry, lisa := applicants[0], applicants[1], applicants[2], applicants[3], applicants[4]

	valid := func() Result {
		return Result{
			Placed: map[string][]Applicant{
				"Cooking": {bert},
				"Reading": {kate, harry},
				"Walking": {suze},
			},
			NotPlacable: []Applicant{lisa},
		}
	}

	t.Run("Valid", func(t *testing.T) {
		if err := Verify(applicants, slots, valid(), false); err != nil {
			t.Errorf("Expected no error, got %v", err)
		}
	})

	cases := []struct {
		name   string
		mutate func(r *Result)
		multi  bool
		errs   int
	}{
		{
			name:   "OverCapacity",
			mutate: func(r *Result) { r.Placed["Cooking"] = append(r.Placed["Cooking"], lisa); r.NotPlacable = nil },
			errs:   1,
		},
		{
			name:   "Excluded",
			mutate: func(r *Result) { r.Placed["Cooking"] = []Applicant{harry}; r.Placed["Reading"] = []Applicant{kate, bert} },
			errs:   1,
		},
		{
			name:   "Missing",
			mutate: func(r *Result) { r.NotPlacable = nil },
			errs:   1,
		},
		{
			name:   "PlacedAndNotPlacable",
			mutate: func(r *Result) { r.NotPlacable = append(r.NotPlacable, bert) },
			errs:   1,
		},
		{
			name:   "Rearranged",
			mutate: func(r *Result) { r.Placed["Walking"] = []Applicant{bert}; delete(r.Placed, "Cooking"); r.Placed["Cooking"] = []Applicant{suze} },
			errs:   0,
		},
		{
			name: "PlacedTwiceSingleMode",
			mutate: func(r *Result) {
				r.Placed["Walking"] = []Applicant{bert}
				delete(r.Placed, "Cooking")
				r.Placed["Cooking"] = []Applicant{bert}
			},
			errs: 2, // Bert twice, Suze missing
		},
		{
			name:   "TwiceInSameSlot",
			mutate: func(r *Result) { r.Placed["Reading"] = []Applicant{kate, kate} },
			multi:  true,
			errs:   1,
		},
		{
			name:   "MissingMultiMode",
			mutate: func(r *Result) { r.NotPlacable = nil },
			multi:  true,
			errs:   1,
		},
		{
			name:   "EmptiedMultiMode",
			mutate: func(r *Result) { r.Placed = map[string][]Applicant{}; r.NotPlacable = nil },
			multi:  true,
			errs:   5,
		},
		{
			name:   "PlacedTwiceMultiMode",
			mutate: func(r *Result) { r.Placed["Walking"] = []Applicant{bert}; r.NotPlacable = append(r.NotPlacable, suze) },
			multi:  true,
			errs:   0,
		},
		{
			name:   "UnknownSlot",
			mutate: func(r *Result) { r.Placed["Dancing"] = []Applicant{lisa}; r.NotPlacable = nil },
			errs:   1,
		},
		{
			name:   "UnknownApplicant",
			mutate: func(r *Result) { r.NotPlacable = append(r.NotPlacable, NewApplicant("Ghost", nil, nil)) },
			errs:   1,
		},
	}

	t.Run("NoCapacityMultiMode", func(t *testing.T) {
		applicants, slots := makeData(0, 0, 0)
		if err := Verify(applicants, slots, Result{}, true); err != nil {
			t.Errorf("Expected no error, got %v", err)
		}
		if err := Verify(applicants, slots, Result{}, false); len(multierr.Errors(err)) != 5 {
			t.Errorf("Expected 5 errors, got %v", err)
		}
	})

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r := valid()
			c.mutate(&r)
			err := Verify(applicants, slots, r, c.multi)
			if got := len(multierr.Errors(err)); got != c.errs {
				t.Errorf("Expected %d errors, got %d: %v", c.errs, got, err)
			}
		})
	}
}
