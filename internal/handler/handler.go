package handler

import (
	"encoding/json"
	"net/http"

	"github.com/recipebox-dev/recipebox/internal/config"
	"github.com/recipebox-dev/recipebox/internal/logger"
	"github.com/recipebox-dev/recipebox/internal/service"
)

// Pinger reports persistence-layer connectivity for the health check.
type Pinger interface {
	Ping() error
}

type Handler struct {
	auth        service.AuthService
	tags        service.AttributeService
	ingredients service.AttributeService
	recipes     service.RecipeService
	cfg         *config.Config
	db          Pinger
}

func New(auth service.AuthService, tags, ingredients service.AttributeService, recipes service.RecipeService, cfg *config.Config, db Pinger) *Handler {
	return &Handler{auth, tags, ingredients, recipes, cfg, db}
}

func writeJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Error("failed to encode response", "error", err)
	}
}
