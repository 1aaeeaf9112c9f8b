// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package roster uses stbmatch to place applicants described in files.
package roster

import (
	"github.com/go-logr/logr"

	"github.com/someonegg/stbmatch"
)

type Slot struct {
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
}

type Applicant struct {
	Name        string   `json:"name"`
	Preferences []string `json:"preferences,omitempty"` // slot names, most preferred first
	Exclude     []string `json:"exclude,omitempty"`     // slot names
}

type Instance struct {
	Slots      []*Slot      `json:"slots"`
	Applicants []*Applicant `json:"applicants"`
}

type Matcher struct {
	// When set, an applicant may hold several slots.
	Multi bool `json:"multi"`

	// When nil, a fresh seed is drawn and reported.
	Seed *uint64 `json:"seed"`

	Logger   logr.Logger       `json:"-"`
	Recorder stbmatch.Recorder `json:"-"` // can be nil

	seed uint64
}

type Placement struct {
	Slot       string   `json:"slot"`
	Capacity   int      `json:"capacity"`
	Applicants []string `json:"applicants"`
}

type Report struct {
	RunID       string       `json:"run_id"`
	Seed        uint64       `json:"seed"`
	Multi       bool         `json:"multi"`
	Placed      []*Placement `json:"placed"`
	NotPlacable []string     `json:"not_placable"`
	Summary     Summary      `json:"summary"`
}

type Summary struct {
	ApplicantsCount int `json:"applicants"`
	SlotsCount      int `json:"slots"`
	Capacity        int `json:"capacity"`
	Placements      int `json:"placements"`
	NotPlacable     int `json:"not_placable"`
	CapacityRemains int `json:"capacity_remains"`
}
