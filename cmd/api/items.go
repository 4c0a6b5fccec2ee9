package main

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/samia-cardapio/cardapio-api/internal/domain"
	"github.com/samia-cardapio/cardapio-api/internal/service"
)

type UpdateItemFlagRequest struct {
	Flag   domain.ItemFlag `json:"flag" validate:"required,oneof=available visible accepts_extras allow_half"`
	Value  *bool           `json:"value" validate:"required"`
	Reason string          `json:"reason"`
	UserID string          `json:"user_id,omitempty"`
}

// updateItemFlagHandler godoc
//
//	@Summary		Update an item flag
//	@Description	Queue a change of one overlay flag of a menu item
//	@Tags			items
//	@Accept			json
//	@Produce		json
//	@Param			item_id	path		string					true	"Item ID"
//	@Param			request	body		UpdateItemFlagRequest	true	"Flag update request"
//	@Success		202		{object}	map[string]interface{}
//	@Failure		400		{object}	map[string]string
//	@Failure		500		{object}	map[string]string
//	@Router			/items/{item_id}/flags [patch]
func (app *application) updateItemFlagHandler(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "item_id")
	if !service.ValidItemID(itemID) {
		app.badRequestResponse(w, r, service.ErrInvalidItemID)
		return
	}

	var req UpdateItemFlagRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	// use default user_id if not provided
	userID := req.UserID
	if userID == "" {
		userID = "admin"
	}

	err := app.itemService.UpdateFlag(r.Context(), itemID, req.Flag, *req.Value, req.Reason, userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidItemID), errors.Is(err, service.ErrUnknownFlag):
			app.badRequestResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	response := map[string]interface{}{
		"success": true,
		"message": "Flag update queued",
	}

	if err := app.jsonRespone(w, http.StatusAccepted, response); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getItemAuditHandler godoc
//
//	@Summary		Item flag history
//	@Description	Latest flag changes of a menu item, newest first
//	@Tags			items
//	@Produce		json
//	@Param			item_id	path		string	true	"Item ID"
//	@Param			limit	query		int		false	"Maximum number of records"
//	@Success		200		{array}		domain.ItemFlagAudit
//	@Failure		400		{object}	map[string]string
//	@Failure		500		{object}	map[string]string
//	@Router			/items/{item_id}/audit [get]
func (app *application) getItemAuditHandler(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "item_id")
	if !service.ValidItemID(itemID) {
		app.badRequestResponse(w, r, service.ErrInvalidItemID)
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			app.badRequestResponse(w, r, errors.New("limit must be a positive integer"))
			return
		}
		limit = n
	}

	audits, err := app.itemService.GetAudit(r.Context(), itemID, limit)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, audits); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getOverlayHandler godoc
//
//	@Summary		Get an overlay document
//	@Description	Current item id to flag mapping of one overlay
//	@Tags			items
//	@Produce		json
//	@Param			key	path		string	true	"Overlay key"	Enums(item_status, item_visibility, item_extras_status, pizza_half_status)
//	@Success		200	{object}	map[string]bool
//	@Failure		404	{object}	map[string]string
//	@Failure		500	{object}	map[string]string
//	@Router			/overlays/{key} [get]
func (app *application) getOverlayHandler(w http.ResponseWriter, r *http.Request) {
	key := domain.OverlayKey(chi.URLParam(r, "key"))

	flags, err := app.itemService.GetOverlay(r.Context(), key)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnknownOverlay):
			app.notFoundError(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, flags); err != nil {
		app.internalServerError(w, r, err)
	}
}
