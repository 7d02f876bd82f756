package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPlayerRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /api/v1/player", handler.ListPlayers)
	mux.HandleFunc("GET /api/v1/player/{playerID}", handler.GetPlayer)
	mux.HandleFunc("POST /api/v1/player", handler.CreatePlayer)
	mux.HandleFunc("PUT /api/v1/player", handler.UpdatePlayer)
	mux.HandleFunc("DELETE /api/v1/player/{playerID}", handler.DeletePlayer)
}
