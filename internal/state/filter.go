package state

import (
	"strings"
	"time"

	"avisportal/models"
)

func matchEnum(filter, value string) bool {
	return filter == "" || filter == models.FilterAll || filter == value
}

// Apply filters entries against the criteria. The output preserves the input
// order; nothing is re-sorted. Predicates run in a fixed order and
// short-circuit: departement, statut, priorite, date lower bound, date upper
// bound, then free-text search.
func Apply(entries []models.Avis, crit models.FilterCriteria) []models.Avis {
	var from, to time.Time
	var hasFrom, hasTo bool

	if crit.DateFrom != "" {
		if t, err := time.ParseInLocation(dateLayout, crit.DateFrom, time.Local); err == nil {
			from = t
			hasFrom = true
		}
	}
	if crit.DateTo != "" {
		if t, err := time.ParseInLocation(dateLayout, crit.DateTo, time.Local); err == nil {
			// inclusive up to end of day
			to = t.Add(23*time.Hour + 59*time.Minute + 59*time.Second + 999*time.Millisecond)
			hasTo = true
		}
	}

	search := strings.ToLower(strings.TrimSpace(crit.Search))

	out := []models.Avis{}
	for _, a := range entries {
		if !matchEnum(crit.Departement, a.Departement) {
			continue
		}
		if !matchEnum(crit.Statut, a.Statut) {
			continue
		}
		if !matchEnum(crit.Priorite, a.Priorite) {
			continue
		}
		if hasFrom && a.CreatedAt.Before(from) {
			continue
		}
		if hasTo && a.CreatedAt.After(to) {
			continue
		}
		if search != "" && !strings.Contains(haystack(a), search) {
			continue
		}
		out = append(out, a)
	}
	return out
}

// haystack joins the searchable fields with single spaces, skipping absent
// ones, lowercased for case-insensitive matching.
func haystack(a models.Avis) string {
	fields := []string{a.Nom, a.Prenom, a.Departement, a.TypeAvis, a.Priorite, a.Statut, a.Message}
	if a.AssigneA != nil {
		fields = append(fields, *a.AssigneA)
	}

	present := fields[:0]
	for _, f := range fields {
		if f != "" {
			present = append(present, f)
		}
	}
	return strings.ToLower(strings.Join(present, " "))
}
