package state_test

import (
	"testing"
	"time"

	"avisportal/internal/state"
	"avisportal/models"

	"github.com/stretchr/testify/require"
)

func testEntry(id int) models.Avis {
	return models.Avis{
		ID:          id,
		Nom:         "Martin",
		Prenom:      "Luc",
		Departement: "Boulangerie",
		TypeAvis:    "Suggestion",
		Priorite:    "Moyenne",
		Statut:      "Nouveau",
		Message:     "Plus de pain complet le matin",
		CreatedAt:   time.Date(2024, 3, 1, 9, 0, 0, 0, time.Local),
	}
}

func TestIngestSeedsOneDraftPerEntry(t *testing.T) {
	s := state.New()
	assignee := "Sophie"
	due := time.Date(2024, 4, 1, 0, 0, 0, 0, time.Local)

	a := testEntry(1)
	a.AssigneA = &assignee
	a.DateLimite = &due

	s.Ingest([]models.Avis{a, testEntry(2)})

	require.Equal(t, 2, s.DraftCount())

	d, ok := s.Draft(1)
	require.True(t, ok)
	require.Equal(t, "Nouveau", d.Statut)
	require.Equal(t, "Moyenne", d.Priorite)
	require.Equal(t, "Sophie", d.AssigneA)
	require.Equal(t, "2024-04-01", d.DateLimite)

	d2, ok := s.Draft(2)
	require.True(t, ok)
	require.Empty(t, d2.AssigneA)
	require.Empty(t, d2.DateLimite)
}

func TestIngestDiscardsUnsavedDraftsForVanishedEntries(t *testing.T) {
	s := state.New()
	s.Ingest([]models.Avis{testEntry(1), testEntry(2)})
	require.NoError(t, s.UpdateDraftField(2, state.FieldStatut, "En cours"))

	s.Ingest([]models.Avis{testEntry(1)})

	require.Equal(t, 1, s.DraftCount())
	_, ok := s.Draft(2)
	require.False(t, ok)
}

func TestIngestResetsEditedDraftToServerValues(t *testing.T) {
	s := state.New()
	s.Ingest([]models.Avis{testEntry(1)})
	require.NoError(t, s.UpdateDraftField(1, state.FieldStatut, "Resolu"))

	s.Ingest([]models.Avis{testEntry(1)})

	d, _ := s.Draft(1)
	require.Equal(t, "Nouveau", d.Statut)
}

func TestIngestEmptyClearsDraftsAndComments(t *testing.T) {
	s := state.New()
	s.Ingest([]models.Avis{testEntry(1)})
	s.IngestComments(map[int][]models.Commentaire{
		1: {{ID: 10, AvisID: 1, AuteurEmail: "dir@local", Contenu: "vu"}},
	})

	s.Ingest([]models.Avis{})

	require.Empty(t, s.Entries())
	require.Equal(t, 0, s.DraftCount())
	require.Equal(t, 0, s.CommentCount())
}

func TestUpdateDraftFieldDoesNotTouchEntry(t *testing.T) {
	s := state.New()
	s.Ingest([]models.Avis{testEntry(1)})

	require.NoError(t, s.UpdateDraftField(1, state.FieldPriorite, "Haute"))

	entry, ok := s.Entry(1)
	require.True(t, ok)
	require.Equal(t, "Moyenne", entry.Priorite)

	d, _ := s.Draft(1)
	require.Equal(t, "Haute", d.Priorite)
}

func TestUpdateDraftFieldUnknownFieldOrEntry(t *testing.T) {
	s := state.New()
	s.Ingest([]models.Avis{testEntry(1)})

	require.Error(t, s.UpdateDraftField(1, "message", "interdit"))
	require.Error(t, s.UpdateDraftField(99, state.FieldStatut, "Resolu"))
}

func TestReconcileAfterSaveTouchesOnlyMutableFields(t *testing.T) {
	s := state.New()
	original := testEntry(1)
	s.Ingest([]models.Avis{original})

	assignee := "Karim"
	due := time.Date(2024, 5, 15, 0, 0, 0, 0, time.Local)
	s.ReconcileAfterSave(1, models.AvisUpdate{
		Statut:     "En cours",
		Priorite:   "Haute",
		AssigneA:   &assignee,
		DateLimite: &due,
	})

	got, ok := s.Entry(1)
	require.True(t, ok)
	require.Equal(t, "En cours", got.Statut)
	require.Equal(t, "Haute", got.Priorite)
	require.Equal(t, &assignee, got.AssigneA)
	require.Equal(t, &due, got.DateLimite)

	// everything else stays as loaded
	require.Equal(t, original.ID, got.ID)
	require.Equal(t, original.Nom, got.Nom)
	require.Equal(t, original.Prenom, got.Prenom)
	require.Equal(t, original.IsAnonyme, got.IsAnonyme)
	require.Equal(t, original.Message, got.Message)
	require.Equal(t, original.CreatedAt, got.CreatedAt)
}

func TestReconcileAfterSaveVanishedEntryIsNoOp(t *testing.T) {
	s := state.New()
	s.Ingest([]models.Avis{testEntry(1)})

	s.ReconcileAfterSave(42, models.AvisUpdate{Statut: "Resolu", Priorite: "Basse"})

	require.Len(t, s.Entries(), 1)
}

func TestRemoveEntryCascadesComments(t *testing.T) {
	s := state.New()
	s.Ingest([]models.Avis{testEntry(1), testEntry(2)})
	s.IngestComments(map[int][]models.Commentaire{
		1: {{ID: 10, AvisID: 1, AuteurEmail: "dir@local", Contenu: "a suivre"}},
		2: {{ID: 11, AvisID: 2, AuteurEmail: "dir@local", Contenu: "ok"}},
	})

	s.RemoveEntry(1)

	require.Len(t, s.Entries(), 1)
	require.Empty(t, s.Comments(1))
	require.Len(t, s.Comments(2), 1)
	_, ok := s.Draft(1)
	require.False(t, ok)
}

func TestPrependCommentNewestFirst(t *testing.T) {
	s := state.New()
	s.Ingest([]models.Avis{testEntry(1)})
	s.IngestComments(map[int][]models.Commentaire{
		1: {{ID: 10, AvisID: 1, Contenu: "ancien"}},
	})

	s.PrependComment(models.Commentaire{ID: 11, AvisID: 1, Contenu: "nouveau"})

	comments := s.Comments(1)
	require.Len(t, comments, 2)
	require.Equal(t, 11, comments[0].ID)
	require.Equal(t, 10, comments[1].ID)
}

func TestPrependCommentVanishedEntryIsNoOp(t *testing.T) {
	s := state.New()
	s.Ingest([]models.Avis{testEntry(1)})

	s.PrependComment(models.Commentaire{ID: 11, AvisID: 99, Contenu: "perdu"})

	require.Equal(t, 0, s.CommentCount())
}

func TestClearWipesEverything(t *testing.T) {
	s := state.New()
	s.Ingest([]models.Avis{testEntry(1)})
	s.IngestComments(map[int][]models.Commentaire{1: {{ID: 10, AvisID: 1}}})

	s.Clear()

	require.Empty(t, s.Entries())
	require.Equal(t, 0, s.DraftCount())
	require.Equal(t, 0, s.CommentCount())
}

func TestDraftLazilySeededFromEntry(t *testing.T) {
	s := state.New()
	s.Ingest([]models.Avis{testEntry(1)})
	s.Ingest([]models.Avis{testEntry(1), testEntry(2)})

	// both entries got drafts on re-ingest; editing one not touched before works
	require.NoError(t, s.UpdateDraftField(2, state.FieldAssigneA, "Nadia"))

	d, ok := s.Draft(2)
	require.True(t, ok)
	require.Equal(t, "Nadia", d.AssigneA)
}
