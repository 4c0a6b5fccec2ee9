package main

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/samia-cardapio/cardapio-api/internal/domain"
	"github.com/samia-cardapio/cardapio-api/internal/service"
)

type CreateOrderResponse struct {
	Success     bool    `json:"success"`
	WhatsAppURL string  `json:"whatsappUrl"`
	PDVSaved    bool    `json:"pdvSaved"`
	PDVError    *string `json:"pdvError"`
}

// createOrderHandler godoc
//
//	@Summary		Submit an order
//	@Description	Store the order and return the WhatsApp link that sends it to the store
//	@Tags			orders
//	@Accept			json
//	@Produce		json
//	@Param			request	body		domain.OrderRequest	true	"Order"
//	@Success		200		{object}	CreateOrderResponse
//	@Failure		400		{object}	map[string]string
//	@Failure		500		{object}	map[string]string
//	@Router			/orders [post]
func (app *application) createOrderHandler(w http.ResponseWriter, r *http.Request) {
	var req domain.OrderRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, fmt.Errorf("%w: %v", service.ErrInvalidOrder, err))
		return
	}

	result, err := app.orderService.Submit(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidOrder):
			app.badRequestResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	response := CreateOrderResponse{
		Success:     true,
		WhatsAppURL: result.WhatsAppURL,
		PDVSaved:    result.Persist.Saved,
	}
	if result.Persist.Err != nil {
		msg := result.Persist.Err.Error()
		response.PDVError = &msg
	}

	if err := writeJson(w, http.StatusOK, response); err != nil {
		app.internalServerError(w, r, err)
	}
}
