package main

import (
	"net/http"
)

const menuCacheControl = "s-maxage=5, stale-while-revalidate"

// getMenuHandler godoc
//
//	@Summary		Get menu
//	@Description	Assemble the menu from the sheets and the item overlays
//	@Tags			menu
//	@Produce		json
//	@Success		200	{object}	domain.Menu
//	@Failure		500	{object}	map[string]string
//	@Router			/menu [get]
func (app *application) getMenuHandler(w http.ResponseWriter, r *http.Request) {
	menu, err := app.menuService.GetMenu(r.Context())
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := writeJson(w, http.StatusOK, menu); err != nil {
		app.internalServerError(w, r, err)
	}
}
