package handlers

import (
	"net/http"

	"github.com/cloo-solutions/deepsearch/internal/api"
)

type HealthResponse struct {
	Status string `json:"status"`
}

func Health(w http.ResponseWriter, r *http.Request) {
	api.JSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}
