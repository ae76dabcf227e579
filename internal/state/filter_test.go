package state_test

import (
	"testing"
	"time"

	"avisportal/internal/state"
	"avisportal/models"

	"github.com/stretchr/testify/require"
)

func avisAt(id int, created time.Time) models.Avis {
	return models.Avis{
		ID:          id,
		Nom:         "Dupont",
		Prenom:      "Marie",
		Departement: "Caisse",
		TypeAvis:    "Probleme",
		Priorite:    "Moyenne",
		Statut:      "Nouveau",
		Message:     "La caisse 3 est en panne",
		CreatedAt:   created,
	}
}

func TestApplyEmptyCriteriaReturnsAllInOrder(t *testing.T) {
	now := time.Now()
	entries := []models.Avis{avisAt(3, now), avisAt(1, now), avisAt(2, now)}

	out := state.Apply(entries, models.FilterCriteria{})

	require.Equal(t, entries, out)
}

func TestApplyAllCriteriaAtFilterAll(t *testing.T) {
	now := time.Now()
	entries := []models.Avis{avisAt(1, now), avisAt(2, now)}

	crit := models.FilterCriteria{
		Departement: models.FilterAll,
		Statut:      models.FilterAll,
		Priorite:    models.FilterAll,
	}

	require.Equal(t, entries, state.Apply(entries, crit))
}

func TestApplyPreservesRelativeOrder(t *testing.T) {
	now := time.Now()
	a := avisAt(1, now)
	b := avisAt(2, now)
	b.Departement = "Epicerie"
	c := avisAt(3, now)

	out := state.Apply([]models.Avis{a, b, c}, models.FilterCriteria{Departement: "Caisse"})

	require.Len(t, out, 2)
	require.Equal(t, 1, out[0].ID)
	require.Equal(t, 3, out[1].ID)
}

func TestApplyEnumFilters(t *testing.T) {
	now := time.Now()
	a := avisAt(1, now)
	b := avisAt(2, now)
	b.Statut = "Resolu"
	b.Priorite = "Haute"

	entries := []models.Avis{a, b}

	require.Len(t, state.Apply(entries, models.FilterCriteria{Statut: "Resolu"}), 1)
	require.Len(t, state.Apply(entries, models.FilterCriteria{Priorite: "Haute"}), 1)
	require.Len(t, state.Apply(entries, models.FilterCriteria{Priorite: "Urgente"}), 0)
}

func TestApplyDateUpperBoundIsInclusiveEndOfDay(t *testing.T) {
	included := avisAt(1, time.Date(2024, 1, 5, 23, 59, 59, 998_000_000, time.Local))
	excluded := avisAt(2, time.Date(2024, 1, 6, 0, 0, 0, 0, time.Local))

	out := state.Apply([]models.Avis{included, excluded}, models.FilterCriteria{DateTo: "2024-01-05"})

	require.Len(t, out, 1)
	require.Equal(t, 1, out[0].ID)
}

func TestApplyDateLowerBoundIsInclusive(t *testing.T) {
	onBound := avisAt(1, time.Date(2024, 1, 5, 0, 0, 0, 0, time.Local))
	before := avisAt(2, time.Date(2024, 1, 4, 23, 59, 59, 0, time.Local))

	out := state.Apply([]models.Avis{onBound, before}, models.FilterCriteria{DateFrom: "2024-01-05"})

	require.Len(t, out, 1)
	require.Equal(t, 1, out[0].ID)
}

func TestApplySearchIsCaseInsensitive(t *testing.T) {
	a := avisAt(1, time.Now())
	a.TypeAvis = "Urgent"

	out := state.Apply([]models.Avis{a}, models.FilterCriteria{Search: "urgent"})

	require.Len(t, out, 1)
}

func TestApplySearchCoversAssigneeWhenPresent(t *testing.T) {
	assignee := "Karim"
	a := avisAt(1, time.Now())
	a.AssigneA = &assignee
	b := avisAt(2, time.Now())

	out := state.Apply([]models.Avis{a, b}, models.FilterCriteria{Search: "karim"})

	require.Len(t, out, 1)
	require.Equal(t, 1, out[0].ID)
}

func TestApplySearchNoMatch(t *testing.T) {
	out := state.Apply([]models.Avis{avisAt(1, time.Now())}, models.FilterCriteria{Search: "introuvable"})
	require.Empty(t, out)
}
