// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package roster

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/someonegg/stbmatch"
)

func (m *Matcher) init() {
	if m.Seed == nil {
		m.seed = stbmatch.NewSeed()
	} else {
		m.seed = *m.Seed
	}
}

// Match validates the instance, places its applicants and reports the
// outcome together with the seed that decided the tie break.
func (m *Matcher) Match(inst *Instance) (*Report, error) {
	m.init()

	if err := inst.Validate(); err != nil {
		return nil, fmt.Errorf("invalid instance: %w", err)
	}
	applicants, slots := inst.Resolve()

	runID := uuid.NewString()
	logger := m.Logger.WithValues("run", runID)
	logger.V(1).Info("matching", "applicants", len(applicants), "slots", len(slots),
		"seed", m.seed, "multi", m.Multi)

	matcher := stbmatch.Matcher{
		Rand:     stbmatch.NewRand(m.seed),
		Logger:   logger,
		Recorder: m.Recorder,
	}

	var result stbmatch.Result
	if m.Multi {
		result = matcher.MatchMulti(applicants, slots)
	} else {
		result = matcher.MatchSingle(applicants, slots)
	}

	if err := stbmatch.Verify(applicants, slots, result, m.Multi); err != nil {
		return nil, fmt.Errorf("inconsistent result: %w", err)
	}

	report := genReport(slots, result)
	report.RunID = runID
	report.Seed = m.seed
	report.Multi = m.Multi
	report.Summary.ApplicantsCount = len(applicants)

	logger.Info("matched", "placements", report.Summary.Placements,
		"notPlacable", report.Summary.NotPlacable, "capacityRemains", report.Summary.CapacityRemains)

	return report, nil
}

func genReport(slots []stbmatch.Slot, result stbmatch.Result) *Report {
	report := &Report{
		Placed:      make([]*Placement, len(slots)),
		NotPlacable: make([]string, len(result.NotPlacable)),
	}

	summ := &report.Summary
	summ.SlotsCount = len(slots)

	for i, slot := range slots {
		held := result.Placed[slot.Name]
		p := &Placement{
			Slot:       slot.Name,
			Capacity:   slot.Capacity,
			Applicants: make([]string, len(held)),
		}
		for j, a := range held {
			p.Applicants[j] = a.Name
		}
		report.Placed[i] = p

		summ.Capacity += slot.Capacity
		summ.Placements += len(held)
	}

	for i, a := range result.NotPlacable {
		report.NotPlacable[i] = a.Name
	}

	summ.NotPlacable = len(report.NotPlacable)
	summ.CapacityRemains = summ.Capacity - summ.Placements

	return report
}

// VerifyReport checks a report against the instance it claims to come from.
// multi is the mode the caller expects, a report made in the other mode fails.
func VerifyReport(inst *Instance, report *Report, multi bool) error {
	if err := inst.Validate(); err != nil {
		return fmt.Errorf("invalid instance: %w", err)
	}
	if report.Multi != multi {
		return fmt.Errorf("report multi mode is %v, expected %v", report.Multi, multi)
	}
	applicants, slots := inst.Resolve()

	byName := make(map[string]stbmatch.Applicant, len(applicants))
	for _, a := range applicants {
		byName[a.Name] = a
	}
	lookup := func(name string) stbmatch.Applicant {
		if a, ok := byName[name]; ok {
			return a
		}
		return stbmatch.NewApplicant(name, nil, nil)
	}

	result := stbmatch.Result{
		Placed: make(map[string][]stbmatch.Applicant, len(report.Placed)),
	}
	for _, p := range report.Placed {
		if p == nil || len(p.Applicants) == 0 {
			continue
		}
		for _, name := range p.Applicants {
			result.Placed[p.Slot] = append(result.Placed[p.Slot], lookup(name))
		}
	}
	for _, name := range report.NotPlacable {
		result.NotPlacable = append(result.NotPlacable, lookup(name))
	}

	return stbmatch.Verify(applicants, slots, result, multi)
}
