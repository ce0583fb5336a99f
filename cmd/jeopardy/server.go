package main

import (
	"net/http"

	"github.com/rs/cors"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/sc2ctl/jeopardy/internal/boardstore"
	"github.com/sc2ctl/jeopardy/internal/config"
	"github.com/sc2ctl/jeopardy/internal/game"
	"github.com/sc2ctl/jeopardy/internal/gateway"
)

func setupServer(cfg config.Config, store *boardstore.Store, engine *game.Engine, manager *gateway.Manager) *http.Server {
	mux := http.NewServeMux()

	// Setup CORS middleware
	c := cors.New(cors.Options{
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
		},
		AllowedOrigins: []string{"*"},
		AllowedHeaders: []string{"*"},
	})

	wsHandler := gateway.NewHandler(manager, engine)
	mux.HandleFunc("/ws", wsHandler.ServeWS)

	boardHandler := boardstore.NewHandler(store, engine)
	boardHandler.RegisterRoutes(mux)

	setupHealthCheck(mux)

	handler := c.Handler(mux)

	return &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: h2c.NewHandler(handler, &http2.Server{}),
	}
}

func setupHealthCheck(mux *http.ServeMux) {
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
}
