// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stbmatch

import (
	"math"
	"sort"

	"github.com/go-logr/logr"
	"k8s.io/apimachinery/pkg/util/sets"
)

// Matcher runs deferred acceptance with a single tie break.
// It is not safe for concurrent use, Rand is consumed sequentially.
type Matcher struct {
	Rand     Rand
	Logger   logr.Logger
	Recorder Recorder // can be nil
}

// MatchSingle places every applicant into at most one slot.
func MatchSingle(applicants []Applicant, slots []Slot, rng Rand) Result {
	m := Matcher{Rand: rng}
	return m.MatchSingle(applicants, slots)
}

// MatchMulti lets an applicant hold several slots, see Matcher.MatchMulti.
func MatchMulti(applicants []Applicant, slots []Slot, rng Rand) Result {
	m := Matcher{Rand: rng}
	return m.MatchMulti(applicants, slots)
}

// priorityApplicant is an applicant decorated with its tie break rank.
// Lower rank wins.
type priorityApplicant struct {
	orig    Applicant
	prefs   []Slot // owned, consumed from the front
	exclude sets.Set[string]
	rank    int
}

func (pa *priorityApplicant) popPreference() (Slot, bool) {
	if len(pa.prefs) == 0 {
		return Slot{}, false
	}
	s := pa.prefs[0]
	pa.prefs = pa.prefs[1:]
	return s, true
}

func (pa *priorityApplicant) excludes(s Slot) bool {
	return pa.exclude.Has(s.Name)
}

// placementTable holds the tentative placements by slot name.
type placementTable map[string][]*priorityApplicant

func sortByRank(pas []*priorityApplicant) {
	sort.SliceStable(pas, func(i, j int) bool {
		return pas[i].rank < pas[j].rank
	})
}

// drawOrder is the single tie break: a uniform permutation of the applicants
// fixes every rank for the rest of the run.
func drawOrder(applicants []Applicant, rng Rand) []*priorityApplicant {
	pas := make([]*priorityApplicant, len(applicants))
	for i := range applicants {
		a := applicants[i]
		pa := &priorityApplicant{
			orig:    a,
			prefs:   append([]Slot(nil), a.Preferences...),
			exclude: sets.New[string](),
		}
		for _, s := range a.Exclude {
			pa.exclude.Insert(s.Name)
		}
		pas[i] = pa
	}

	rng.Shuffle(len(pas), func(i, j int) {
		pas[i], pas[j] = pas[j], pas[i]
	})
	for i, pa := range pas {
		pa.rank = i
	}
	return pas
}

// placeApplicants proposes every unplaced applicant to its next preference.
// An exhausted or excluded preference makes the applicant not placable, an
// excluded preference is consumed and never retried.
func placeApplicants(unplaced []*priorityApplicant, placed placementTable, notPlacable []*priorityApplicant) []*priorityApplicant {
	for _, pa := range unplaced {
		slot, ok := pa.popPreference()
		if !ok || pa.excludes(slot) {
			notPlacable = append(notPlacable, pa)
			continue
		}
		placed[slot.Name] = append(placed[slot.Name], pa)
	}
	return notPlacable
}

// truncateSlots keeps the best ranked applicants of every overfull slot and
// returns the evicted ones.
func truncateSlots(placed placementTable, slots []Slot) []*priorityApplicant {
	var evicted []*priorityApplicant

	for _, slot := range slots {
		held, ok := placed[slot.Name]
		if !ok || len(held) <= slot.Capacity {
			continue
		}
		sortByRank(held)
		evicted = append(evicted, held[slot.Capacity:]...)
		placed[slot.Name] = held[:slot.Capacity:slot.Capacity]
	}

	return evicted
}

// assignRandom gives applicants that ran out of preferences a random open,
// non excluded slot, best ranked applicants first.
func (m *Matcher) assignRandom(notPlacable []*priorityApplicant, placed placementTable, slots []Slot) []*priorityApplicant {
	sortByRank(notPlacable)

	var rest []*priorityApplicant
	open := make([]Slot, 0, len(slots))

	for _, pa := range notPlacable {
		open = open[:0]
		for _, slot := range slots {
			if len(placed[slot.Name]) < slot.Capacity && !pa.excludes(slot) {
				open = append(open, slot)
			}
		}
		if len(open) == 0 {
			rest = append(rest, pa)
			continue
		}

		slot := open[m.Rand.IntN(len(open))]
		placed[slot.Name] = append(placed[slot.Name], pa)
		m.Logger.V(2).Info("residual assignment", "applicant", pa.orig.Name, "rank", pa.rank,
			"slot", slot.Name, "candidates", len(open))
	}

	return rest
}

func newResult(placed placementTable, notPlacable []*priorityApplicant) Result {
	r := Result{
		Placed:      make(map[string][]Applicant, len(placed)),
		NotPlacable: make([]Applicant, 0, len(notPlacable)),
	}
	for name, pas := range placed {
		if len(pas) == 0 {
			continue
		}
		as := make([]Applicant, len(pas))
		for i, pa := range pas {
			as[i] = pa.orig
		}
		r.Placed[name] = as
	}
	for _, pa := range notPlacable {
		r.NotPlacable = append(r.NotPlacable, pa.orig)
	}
	return r
}

// MatchSingle runs deferred acceptance until every applicant holds a slot
// or has used up its preferences, then fills leftover capacity at random.
func (m *Matcher) MatchSingle(applicants []Applicant, slots []Slot) Result {
	unplaced := drawOrder(applicants, m.Rand)
	placed := make(placementTable, len(slots))
	var notPlacable []*priorityApplicant

	for pass := 0; len(unplaced) > 0; pass++ {
		proposing := len(unplaced)
		notPlacable = placeApplicants(unplaced, placed, notPlacable)
		unplaced = truncateSlots(placed, slots)

		m.Logger.V(1).Info("deferred acceptance pass", "pass", pass,
			"proposing", proposing, "evicted", len(unplaced), "notPlacable", len(notPlacable))
		if lv := m.Logger.V(2); lv.Enabled() {
			for _, pa := range unplaced {
				lv.Info("evicted", "applicant", pa.orig.Name, "rank", pa.rank, "remaining", len(pa.prefs))
			}
		}
		if m.Recorder != nil {
			m.Recorder.RecordPass(proposing, len(unplaced))
		}
	}

	exhausted := len(notPlacable)
	notPlacable = m.assignRandom(notPlacable, placed, slots)

	m.Logger.V(1).Info("residual assignment done",
		"placed", exhausted-len(notPlacable), "notPlacable", len(notPlacable))
	if m.Recorder != nil {
		m.Recorder.RecordResidual(exhausted-len(notPlacable), len(notPlacable))
	}

	return newResult(placed, notPlacable)
}

// MatchMulti repeats MatchSingle in rounds so that an applicant can hold
// more than one slot. After each round the placed applicants exclude the
// slots they got and the slots lose the capacity they handed out. Rounds stop
// when no capacity is left or a round places nobody.
//
// Only the first round decides NotPlacable: later rounds only serve
// applicants that already hold a slot.
func (m *Matcher) MatchMulti(applicants []Applicant, slots []Slot) Result {
	result := Result{
		Placed: make(map[string][]Applicant, len(slots)),
	}

	slots = append([]Slot(nil), slots...)
	working := make([]Applicant, len(applicants))
	index := make(map[string]int, len(applicants))
	for i, a := range applicants {
		working[i] = a
		working[i].Exclude = append([]Slot(nil), a.Exclude...)
		index[a.Name] = i
	}

	available := capacityOf(slots)
	previous := math.MaxInt

	for round := 0; available > 0 && previous > available; round++ {
		r := m.MatchSingle(working, slots)

		placed := 0
		for i := range slots {
			slot := &slots[i]
			as, ok := r.Placed[slot.Name]
			if !ok {
				continue
			}
			slot.Capacity -= len(as)
			placed += len(as)

			for _, a := range as {
				j := index[a.Name]
				working[j].Exclude = append(working[j].Exclude, *slot)
				result.Placed[slot.Name] = append(result.Placed[slot.Name], applicants[j])
			}
		}

		if round == 0 {
			result.NotPlacable = make([]Applicant, len(r.NotPlacable))
			for i, a := range r.NotPlacable {
				result.NotPlacable[i] = applicants[index[a.Name]]
			}
		}

		previous, available = available, capacityOf(slots)

		m.Logger.V(1).Info("multi category round", "round", round, "placed", placed, "available", available)
		if m.Recorder != nil {
			m.Recorder.RecordRound(round, placed)
		}
	}

	if result.NotPlacable == nil {
		result.NotPlacable = []Applicant{}
	}
	return result
}

func capacityOf(slots []Slot) int {
	n := 0
	for _, s := range slots {
		n += s.Capacity
	}
	return n
}
