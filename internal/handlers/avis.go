package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"avisportal/internal/repo"
	"avisportal/internal/state"
	"avisportal/models"

	"github.com/go-chi/chi/v5"
)

// SubmitAvisHandler handles POST /api/avis/new, the employee submission.
func (h *Handler) SubmitAvisHandler(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1048576)

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	var sub repo.Submission
	if err := json.Unmarshal(body, &sub); err != nil {
		http.Error(w, "Invalid JSON format", http.StatusBadRequest)
		return
	}

	avis, err := h.Repo.CreateEntry(r.Context(), sub)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, avis)
}

func criteriaFromQuery(r *http.Request) models.FilterCriteria {
	q := r.URL.Query()
	return models.FilterCriteria{
		Departement: q.Get("departement"),
		Statut:      q.Get("statut"),
		Priorite:    q.Get("priorite"),
		Search:      q.Get("q"),
		DateFrom:    q.Get("date_from"),
		DateTo:      q.Get("date_to"),
	}
}

// GetAvisHandler refreshes the working set from storage and answers with the
// filtered view, the comment grouping and the metrics over the full list.
func (h *Handler) GetAvisHandler(w http.ResponseWriter, r *http.Request) {
	entries, err := h.Repo.ListEntries(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	h.State.Ingest(entries)

	ids := make([]int, 0, len(entries))
	for _, a := range entries {
		ids = append(ids, a.ID)
	}
	grouped, err := h.Repo.ListComments(r.Context(), ids)
	if err != nil {
		writeError(w, err)
		return
	}
	h.State.IngestComments(grouped)

	filtered := state.Apply(h.State.Entries(), criteriaFromQuery(r))

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"avis":         filtered,
		"commentaires": grouped,
		"metrics":      state.ComputeMetrics(h.State.Entries()),
	})
}

// GetMetricsHandler aggregates over the in-memory list without a refetch.
func (h *Handler) GetMetricsHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, state.ComputeMetrics(h.State.Entries()))
}

// saveAvisRequest carries partial draft edits; absent fields keep the draft's
// current value.
type saveAvisRequest struct {
	Statut     *string `json:"statut"`
	Priorite   *string `json:"priorite"`
	AssigneA   *string `json:"assigneA"`
	DateLimite *string `json:"dateLimite"`
}

// SaveAvisHandler handles PUT /api/avis/{avisId}: applies the edits to the
// draft, pushes the draft to storage and reconciles the canonical entry.
func (h *Handler) SaveAvisHandler(w http.ResponseWriter, r *http.Request) {
	avisID, err := strconv.Atoi(chi.URLParam(r, "avisId"))
	if err != nil || avisID <= 0 {
		http.Error(w, "Invalid avisId", http.StatusBadRequest)
		return
	}

	if h.Repo.Busy(avisID) {
		writeError(w, repo.Validation("a save for this entry is already in flight"))
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	var input saveAvisRequest
	if err := json.Unmarshal(body, &input); err != nil {
		http.Error(w, "Invalid JSON format", http.StatusBadRequest)
		return
	}

	edits := map[string]*string{
		state.FieldStatut:     input.Statut,
		state.FieldPriorite:   input.Priorite,
		state.FieldAssigneA:   input.AssigneA,
		state.FieldDateLimite: input.DateLimite,
	}
	for field, value := range edits {
		if value == nil {
			continue
		}
		if err := h.State.UpdateDraftField(avisID, field, *value); err != nil {
			http.Error(w, "Entry not found", http.StatusNotFound)
			return
		}
	}

	draft, ok := h.State.Draft(avisID)
	if !ok {
		http.Error(w, "Entry not found", http.StatusNotFound)
		return
	}

	upd, err := h.Repo.UpdateEntry(r.Context(), avisID, draft)
	if err != nil {
		writeError(w, err)
		return
	}
	h.State.ReconcileAfterSave(avisID, upd)

	if entry, ok := h.State.Entry(avisID); ok {
		writeJSON(w, http.StatusOK, entry)
		return
	}
	writeJSON(w, http.StatusOK, upd)
}

// DeleteAvisHandler handles DELETE /api/avis/{avisId}. The interactive
// confirmation happens upstream; on success the local comments are purged
// with the entry.
func (h *Handler) DeleteAvisHandler(w http.ResponseWriter, r *http.Request) {
	avisID, err := strconv.Atoi(chi.URLParam(r, "avisId"))
	if err != nil || avisID <= 0 {
		http.Error(w, "Invalid avisId", http.StatusBadRequest)
		return
	}

	if h.Repo.Busy(avisID) {
		writeError(w, repo.Validation("an operation for this entry is already in flight"))
		return
	}

	if err := h.Repo.DeleteEntry(r.Context(), avisID); err != nil {
		writeError(w, err)
		return
	}
	h.State.RemoveEntry(avisID)

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
