package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/dukerupert/listmate/internal/auth"
	"github.com/dukerupert/listmate/internal/email"
	"github.com/dukerupert/listmate/internal/service"
	"github.com/dukerupert/listmate/internal/view"
)

type ListHandler struct {
	lists  *service.ListService
	mailer *email.Client
	logger *slog.Logger
}

func NewListHandler(ls *service.ListService, mailer *email.Client, logger *slog.Logger) *ListHandler {
	return &ListHandler{lists: ls, mailer: mailer, logger: logger}
}

type createListRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type listPatchRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

type addParticipantRequest struct {
	Email string `json:"email"`
}

type removeParticipantRequest struct {
	UserID int64 `json:"user_id"`
}

func (h *ListHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createListRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	list, err := h.lists.Create(auth.UserID(r.Context()), req.Name, req.Description)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, view.NewListSummary(*list))
}

func (h *ListHandler) List(w http.ResponseWriter, r *http.Request) {
	lists, err := h.lists.ListForUser(auth.UserID(r.Context()))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, view.NewListSummaries(lists))
}

func (h *ListHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	detail, err := h.lists.Get(id, auth.UserID(r.Context()))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, view.NewList(*detail))
}

func (h *ListHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req listPatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	list, err := h.lists.Update(id, auth.UserID(r.Context()), service.ListPatch{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, view.NewListSummary(*list))
}

func (h *ListHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := h.lists.Remove(id, auth.UserID(r.Context())); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ListHandler) AddParticipant(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req addParticipantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.Email == "" {
		writeError(w, http.StatusBadRequest, "email is required")
		return
	}

	detail, err := h.lists.AddParticipant(id, auth.UserID(r.Context()), req.Email)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	// Notify the invitee out of band; the request does not wait on Postmark.
	if h.mailer != nil && h.mailer.Configured() {
		identity, _ := auth.FromContext(r.Context())
		toEmail, listName := req.Email, detail.List.Name
		go func() {
			if err := h.mailer.SendListInvite(toEmail, identity.Name, listName); err != nil {
				h.logger.Warn("invite email failed", "email", toEmail, "error", err)
			}
		}()
	}

	writeJSON(w, http.StatusOK, view.NewList(*detail))
}

func (h *ListHandler) RemoveParticipant(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req removeParticipantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	detail, err := h.lists.RemoveParticipant(id, auth.UserID(r.Context()), req.UserID)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, view.NewList(*detail))
}

func (h *ListHandler) GetParticipants(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	participants, err := h.lists.GetParticipants(id, auth.UserID(r.Context()))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, view.NewEmbeddedUsers(participants))
}
