// Package state owns the director's in-memory working set: the canonical
// list of entries, one edit draft per entry and the comment grouping.
// Filtering and metrics are pure functions over a snapshot of the list.
package state

import (
	"fmt"
	"sync"
	"time"

	"avisportal/models"
)

// Draft field names accepted by UpdateDraftField
const (
	FieldStatut     = "statut"
	FieldPriorite   = "priorite"
	FieldAssigneA   = "assigne_a"
	FieldDateLimite = "date_limite"
)

const dateLayout = "2006-01-02"

// Draft is an unsaved edit of one entry's mutable fields. Blank AssigneA or
// DateLimite means cleared/unset.
type Draft struct {
	Statut     string `json:"statut"`
	Priorite   string `json:"priorite"`
	AssigneA   string `json:"assigneA"`
	DateLimite string `json:"dateLimite"`
}

func draftFor(a models.Avis) Draft {
	d := Draft{Statut: a.Statut, Priorite: a.Priorite}
	if a.AssigneA != nil {
		d.AssigneA = *a.AssigneA
	}
	if a.DateLimite != nil {
		d.DateLimite = a.DateLimite.Format(dateLayout)
	}
	return d
}

type DirectorState struct {
	mu       sync.Mutex
	entries  []models.Avis
	drafts   map[int]Draft
	comments map[int][]models.Commentaire
}

func New() *DirectorState {
	return &DirectorState{
		drafts:   map[int]Draft{},
		comments: map[int][]models.Commentaire{},
	}
}

// Ingest replaces the canonical list and rebuilds the draft shadow so every
// entry has exactly one draft seeded from its server values. Drafts and
// comments for entries no longer present are dropped.
func (s *DirectorState) Ingest(entries []models.Avis) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = append([]models.Avis(nil), entries...)
	s.drafts = make(map[int]Draft, len(entries))
	for _, a := range entries {
		s.drafts[a.ID] = draftFor(a)
	}

	kept := make(map[int][]models.Commentaire, len(entries))
	for _, a := range entries {
		if cs, ok := s.comments[a.ID]; ok {
			kept[a.ID] = cs
		}
	}
	s.comments = kept
}

// IngestComments replaces the comment grouping.
func (s *DirectorState) IngestComments(grouped map[int][]models.Commentaire) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.comments = make(map[int][]models.Commentaire, len(grouped))
	for id, cs := range grouped {
		s.comments[id] = append([]models.Commentaire(nil), cs...)
	}
}

// Entries returns a copy of the canonical list in its server order.
func (s *DirectorState) Entries() []models.Avis {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Avis(nil), s.entries...)
}

func (s *DirectorState) Entry(id int) (models.Avis, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.entries {
		if a.ID == id {
			return a, true
		}
	}
	return models.Avis{}, false
}

// Draft returns the current draft for an entry, lazily seeding it from the
// entry's server values when it has not been touched yet.
func (s *DirectorState) Draft(id int) (Draft, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draftLocked(id)
}

func (s *DirectorState) draftLocked(id int) (Draft, bool) {
	if d, ok := s.drafts[id]; ok {
		return d, true
	}
	for _, a := range s.entries {
		if a.ID == id {
			d := draftFor(a)
			s.drafts[id] = d
			return d, true
		}
	}
	return Draft{}, false
}

// UpdateDraftField mutates one field of one entry's draft. The canonical
// entry is untouched.
func (s *DirectorState) UpdateDraftField(id int, field, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.draftLocked(id)
	if !ok {
		return fmt.Errorf("no entry with id %d", id)
	}

	switch field {
	case FieldStatut:
		d.Statut = value
	case FieldPriorite:
		d.Priorite = value
	case FieldAssigneA:
		d.AssigneA = value
	case FieldDateLimite:
		d.DateLimite = value
	default:
		return fmt.Errorf("unknown draft field %q", field)
	}

	s.drafts[id] = d
	return nil
}

// ReconcileAfterSave patches only the four mutable fields of the canonical
// entry after a successful save. The draft already equals the saved values by
// construction and is left alone. A vanished entry is a no-op: completions of
// stale requests are tolerated, not applied.
func (s *DirectorState) ReconcileAfterSave(id int, upd models.AvisUpdate) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.entries {
		if s.entries[i].ID == id {
			s.entries[i].Statut = upd.Statut
			s.entries[i].Priorite = upd.Priorite
			s.entries[i].AssigneA = upd.AssigneA
			s.entries[i].DateLimite = upd.DateLimite
			return
		}
	}
}

// RemoveEntry drops the entry, its draft and all of its comments. The comment
// cascade is deliberate local bookkeeping; the server-side cascade is not
// assumed.
func (s *DirectorState) RemoveEntry(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.entries[:0]
	for _, a := range s.entries {
		if a.ID != id {
			kept = append(kept, a)
		}
	}
	s.entries = kept
	delete(s.drafts, id)
	delete(s.comments, id)
}

// PrependComment inserts a persisted comment newest-first. No-op when the
// parent entry has vanished.
func (s *DirectorState) PrependComment(c models.Commentaire) {
	s.mu.Lock()
	defer s.mu.Unlock()

	found := false
	for _, a := range s.entries {
		if a.ID == c.AvisID {
			found = true
			break
		}
	}
	if !found {
		return
	}
	s.comments[c.AvisID] = append([]models.Commentaire{c}, s.comments[c.AvisID]...)
}

// Comments returns the newest-first comments of one entry.
func (s *DirectorState) Comments(id int) []models.Commentaire {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Commentaire(nil), s.comments[id]...)
}

// Clear wipes everything. Wired to sign-out so no director data dangles.
func (s *DirectorState) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = nil
	s.drafts = map[int]Draft{}
	s.comments = map[int][]models.Commentaire{}
}

// DraftCount reports the size of the draft shadow.
func (s *DirectorState) DraftCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.drafts)
}

// CommentCount reports how many entries currently hold comments.
func (s *DirectorState) CommentCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.comments)
}

// ParseDateLimite converts a draft date string to the pointer form stored on
// the entry. Blank means unset.
func ParseDateLimite(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(dateLayout, value, time.Local)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
