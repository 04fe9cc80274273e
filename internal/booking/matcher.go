package booking

import (
    "sort"

    "github.com/cempakacafe/reservation/internal/model"
)

// EligibleTables selects and ranks the tables that can seat a
// reservation. A table is a candidate when its capacity covers the
// party, its location matches the preference and it is currently
// available. The reservation's own assigned table (currentTableID) is
// always kept in the result even when its status is no longer
// available, so re-confirmation flows can show the existing selection.
//
// Candidates are ordered ascending by capacity to favour efficient
// seating: the smallest sufficient table comes first. The sort is
// stable, so tables of equal capacity keep their input order. An empty
// result is a valid outcome, not an error; callers render a "no tables
// available" state.
func EligibleTables(tables []model.Table, guestCount int, location model.LocationType, currentTableID *uint64) []model.Table {
    out := make([]model.Table, 0, len(tables))
    for _, t := range tables {
        if t.Capacity < guestCount || t.LocationType != location {
            continue
        }
        if t.Status != model.TableAvailable && (currentTableID == nil || t.ID != *currentTableID) {
            continue
        }
        out = append(out, t)
    }
    sort.SliceStable(out, func(i, j int) bool { return out[i].Capacity < out[j].Capacity })
    return out
}

// ExcludeTables drops every table whose ID appears in the excluded set.
// Confirmation flows use it to remove tables already holding a
// confirmed booking for the requested slot, so auto-assignment falls
// through to the next candidate instead of colliding.
func ExcludeTables(tables []model.Table, excluded map[uint64]bool) []model.Table {
    if len(excluded) == 0 {
        return tables
    }
    out := make([]model.Table, 0, len(tables))
    for _, t := range tables {
        if excluded[t.ID] {
            continue
        }
        out = append(out, t)
    }
    return out
}

// FirstEligible returns the best candidate for automatic assignment or
// ErrNoCandidateTable when none exists.
func FirstEligible(tables []model.Table, guestCount int, location model.LocationType, currentTableID *uint64) (*model.Table, error) {
    cands := EligibleTables(tables, guestCount, location, currentTableID)
    if len(cands) == 0 {
        return nil, ErrNoCandidateTable
    }
    t := cands[0]
    return &t, nil
}
