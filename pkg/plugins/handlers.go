package plugins

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
)

// Handlers provides HTTP handlers for the plugin inventory
type Handlers struct {
	catalog *Catalog
}

// NewHandlers creates new plugin inventory handlers
func NewHandlers(catalog *Catalog) *Handlers {
	return &Handlers{catalog: catalog}
}

// RegisterRoutes registers plugin inventory routes
func (h *Handlers) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/plugins", h.listPlugins).Methods("GET")
	router.HandleFunc("/plugins/capabilities", h.listCapabilities).Methods("GET")
}

// listPlugins handles GET /plugins
func (h *Handlers) listPlugins(w http.ResponseWriter, r *http.Request) {
	descriptions := h.catalog.Descriptions()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"plugins": descriptions,
		"count":   len(descriptions),
	})
}

// listCapabilities handles GET /plugins/capabilities
func (h *Handlers) listCapabilities(w http.ResponseWriter, r *http.Request) {
	types := h.catalog.Types()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"capabilities": types,
		"count":        len(types),
	})
}
