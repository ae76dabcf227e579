// Package repo translates portal intents into storage calls. It is the single
// place where raw storage failures are classified into displayable errors;
// callers never see a bare driver error.
package repo

import (
	"context"
	"strings"

	"avisportal/internal/state"
	"avisportal/models"
)

// Store is the slice of db.Storage the adapter needs.
type Store interface {
	ListAvis(ctx context.Context) ([]models.Avis, error)
	ListCommentairesByAvis(ctx context.Context, avisIDs []int) ([]models.Commentaire, error)
	CreateAvis(ctx context.Context, a *models.Avis) error
	UpdateAvis(ctx context.Context, id int, upd models.AvisUpdate) error
	DeleteAvis(ctx context.Context, id int) error
	CreateCommentaire(ctx context.Context, c *models.Commentaire) error
}

// Submission is an employee's raw form input.
type Submission struct {
	Nom         string `json:"nom"`
	Prenom      string `json:"prenom"`
	Departement string `json:"departement"`
	TypeAvis    string `json:"typeAvis"`
	Priorite    string `json:"priorite"`
	Message     string `json:"message"`
	IsAnonyme   bool   `json:"isAnonyme"`
}

type Repository struct {
	store    Store
	inflight *inflightSet
}

func New(store Store) *Repository {
	return &Repository{store: store, inflight: newInflightSet()}
}

// Busy reports whether an operation for this entry is still in flight. The
// caller checks it before permitting another save/delete/comment for the same
// entry.
func (r *Repository) Busy(id int) bool {
	return r.inflight.busy(id)
}

// ListEntries fetches all entries, newest first.
func (r *Repository) ListEntries(ctx context.Context) ([]models.Avis, error) {
	avis, err := r.store.ListAvis(ctx)
	if err != nil {
		return nil, Classify(err, "cannot load the entries")
	}
	return avis, nil
}

// ListComments fetches all comments for the given entry ids, grouped by entry
// and newest first within each group. An empty id set returns an empty map
// without issuing a request.
func (r *Repository) ListComments(ctx context.Context, avisIDs []int) (map[int][]models.Commentaire, error) {
	grouped := map[int][]models.Commentaire{}
	if len(avisIDs) == 0 {
		return grouped, nil
	}

	comments, err := r.store.ListCommentairesByAvis(ctx, avisIDs)
	if err != nil {
		return nil, Classify(err, "cannot load the comments")
	}

	// rows arrive newest first; appending keeps that order per entry
	for _, c := range comments {
		grouped[c.AvisID] = append(grouped[c.AvisID], c)
	}
	return grouped, nil
}

// CreateEntry validates the submission, applies the anonymity sentinels and
// inserts the entry with status "Nouveau".
func (r *Repository) CreateEntry(ctx context.Context, sub Submission) (*models.Avis, error) {
	a := models.Avis{
		Nom:         strings.TrimSpace(sub.Nom),
		Prenom:      strings.TrimSpace(sub.Prenom),
		Departement: sub.Departement,
		TypeAvis:    sub.TypeAvis,
		Priorite:    sub.Priorite,
		Statut:      "Nouveau",
		IsAnonyme:   sub.IsAnonyme,
		Message:     strings.TrimSpace(sub.Message),
	}

	if a.IsAnonyme {
		a.Nom = models.AnonymousNom
		a.Prenom = models.AnonymousPrenom
	}

	if err := validateSubmission(&a); err != nil {
		return nil, err
	}

	if err := r.store.CreateAvis(ctx, &a); err != nil {
		return nil, Classify(err, "cannot submit the entry")
	}
	return &a, nil
}

func validateSubmission(a *models.Avis) error {
	if a.Nom == "" || a.Prenom == "" {
		return Validation("name and first name are required unless anonymous")
	}
	if !models.IsValidDepartement(a.Departement) {
		return Validation("invalid or missing departement")
	}
	if !models.IsValidTypeAvis(a.TypeAvis) {
		return Validation("invalid or missing type of entry")
	}
	if !models.IsValidPriorite(a.Priorite) {
		return Validation("invalid or missing priorite")
	}
	if a.Message == "" {
		return Validation("message is required")
	}
	return nil
}

// UpdateEntry normalizes a draft and writes the four mutable fields. A blank
// assignee becomes absent (nil), never an empty string, so a cleared field is
// distinguishable downstream. Returns the normalized update for local
// reconciliation.
func (r *Repository) UpdateEntry(ctx context.Context, id int, d state.Draft) (models.AvisUpdate, error) {
	var upd models.AvisUpdate

	if !models.IsValidStatut(d.Statut) {
		return upd, Validation("invalid statut")
	}
	if !models.IsValidPriorite(d.Priorite) {
		return upd, Validation("invalid priorite")
	}

	upd.Statut = d.Statut
	upd.Priorite = d.Priorite

	if assignee := strings.TrimSpace(d.AssigneA); assignee != "" {
		upd.AssigneA = &assignee
	}

	due, err := state.ParseDateLimite(d.DateLimite)
	if err != nil {
		return upd, Validation("invalid date limite, expected YYYY-MM-DD")
	}
	upd.DateLimite = due

	if !r.inflight.begin(id) {
		return upd, Validation("a save for this entry is already in flight")
	}
	defer r.inflight.end(id)

	if err := r.store.UpdateAvis(ctx, id, upd); err != nil {
		return upd, Classify(err, "cannot update this entry")
	}
	return upd, nil
}

// DeleteEntry removes the entry. The caller purges the dependent comments
// from local state on success; no server-side cascade is assumed.
func (r *Repository) DeleteEntry(ctx context.Context, id int) error {
	if !r.inflight.begin(id) {
		return Validation("an operation for this entry is already in flight")
	}
	defer r.inflight.end(id)

	if err := r.store.DeleteAvis(ctx, id); err != nil {
		return Classify(err, "cannot delete this entry")
	}
	return nil
}

// CreateComment persists an internal annotation and returns it with its
// server-assigned id and timestamp. Blank text is rejected locally.
func (r *Repository) CreateComment(ctx context.Context, avisID int, authorEmail, text string) (*models.Commentaire, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, Validation("comment text is empty")
	}

	if !r.inflight.begin(avisID) {
		return nil, Validation("an operation for this entry is already in flight")
	}
	defer r.inflight.end(avisID)

	c := models.Commentaire{
		AvisID:      avisID,
		AuteurEmail: authorEmail,
		Contenu:     text,
	}
	if err := r.store.CreateCommentaire(ctx, &c); err != nil {
		return nil, Classify(err, "cannot add the comment")
	}
	return &c, nil
}
