package state

import "avisportal/models"

// NoDepartment is reported when there are no entries to aggregate.
const NoDepartment = "-"

type Metrics struct {
	Total                int    `json:"total"`
	Urgent               int    `json:"urgent"`
	Open                 int    `json:"open"`
	MostActiveDepartment string `json:"mostActiveDepartment"`
}

// ComputeMetrics aggregates over the full entry list. An entry whose type is
// "Urgent" and whose priority is "Urgente" counts once toward Urgent. Ties on
// the most active department go to the department seen first, because the
// running maximum only moves on strictly greater counts.
func ComputeMetrics(entries []models.Avis) Metrics {
	m := Metrics{MostActiveDepartment: NoDepartment}
	m.Total = len(entries)

	counts := map[string]int{}
	for _, a := range entries {
		if a.TypeAvis == "Urgent" || a.Priorite == "Urgente" {
			m.Urgent++
		}
		if a.Statut != "Resolu" {
			m.Open++
		}
		counts[a.Departement]++
	}

	max := 0
	for _, a := range entries {
		if c := counts[a.Departement]; c > max {
			max = c
			m.MostActiveDepartment = a.Departement
		}
	}
	return m
}
