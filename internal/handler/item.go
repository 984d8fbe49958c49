package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/dukerupert/listmate/internal/auth"
	"github.com/dukerupert/listmate/internal/service"
	"github.com/dukerupert/listmate/internal/view"
)

type ItemHandler struct {
	items  *service.ItemService
	logger *slog.Logger
}

func NewItemHandler(is *service.ItemService, logger *slog.Logger) *ItemHandler {
	return &ItemHandler{items: is, logger: logger}
}

type createItemRequest struct {
	Name     string `json:"name"`
	Quantity *int   `json:"quantity"`
}

type itemPatchRequest struct {
	Name     *string `json:"name"`
	Quantity *int    `json:"quantity"`
}

func itemIDs(r *http.Request) (listID, itemID int64, err error) {
	listID, err = parseIDParam(r, "list_id")
	if err != nil {
		return 0, 0, err
	}
	itemID, err = parseIDParam(r, "item_id")
	if err != nil {
		return 0, 0, err
	}
	return listID, itemID, nil
}

func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	listID, err := parseIDParam(r, "list_id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid list_id")
		return
	}

	var req createItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	item, err := h.items.Create(listID, auth.UserID(r.Context()), req.Name, req.Quantity)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, view.NewItem(service.ItemDetail{Item: *item}))
}

func (h *ItemHandler) Claim(w http.ResponseWriter, r *http.Request) {
	listID, itemID, err := itemIDs(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	detail, err := h.items.Claim(listID, itemID, auth.UserID(r.Context()))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, view.NewItem(*detail))
}

func (h *ItemHandler) Release(w http.ResponseWriter, r *http.Request) {
	listID, itemID, err := itemIDs(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	detail, err := h.items.Release(listID, itemID, auth.UserID(r.Context()))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, view.NewItem(*detail))
}

func (h *ItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	listID, itemID, err := itemIDs(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req itemPatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	detail, err := h.items.Edit(listID, itemID, auth.UserID(r.Context()), service.ItemPatch{
		Name:     req.Name,
		Quantity: req.Quantity,
	})
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, view.NewItem(*detail))
}

func (h *ItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	listID, itemID, err := itemIDs(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := h.items.Delete(listID, itemID, auth.UserID(r.Context())); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
