package main

import (
	"net/http"
	"time"
)

type HealthResponse struct {
	Status    string            `json:"status"`
	Version   string            `json:"version"`
	Timestamp time.Time         `json:"timestamp"`
	Services  map[string]string `json:"services"`
}

// healthCheckHandler godoc
//
//	@Summary		Healthcheck
//	@Description	Store reachability and the configured backends
//	@Tags			ops
//	@Produce		json
//	@Success		200	{object}	HealthResponse
//	@Failure		503	{object}	HealthResponse
//	@Router			/health [get]
func (app *application) healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	status := http.StatusOK
	response := HealthResponse{
		Status:    "healthy",
		Version:   version,
		Timestamp: time.Now(),
		Services: map[string]string{
			"database": app.config.store.kind,
			"queue":    app.config.broker.kind,
			"source":   app.config.source.kind,
			"offline":  "disabled",
		},
	}

	if err := app.store.ping(r.Context()); err != nil {
		app.logger.Warnw("store ping failed", "store", app.config.store.kind, "error", err)
		response.Services["database"] = "error"
		response.Status = "unhealthy"
		status = http.StatusServiceUnavailable
	}

	if app.offline != nil {
		response.Services["offline"] = app.offline.Name()
	}

	if err := writeJson(w, status, response); err != nil {
		app.internalServerError(w, r, err)
	}
}
