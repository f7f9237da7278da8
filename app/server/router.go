package server

import (
	"log/slog"
	"net/http"

	"github.com/veo1/health-scanner/app/catalog"
	"github.com/veo1/health-scanner/app/meta"
	"github.com/veo1/health-scanner/app/middleware"
	"github.com/veo1/health-scanner/config"
)

// Store is everything the HTTP surface needs from the product store.
type Store interface {
	catalog.ProductStore
	meta.ProductCounter
}

// NewRouter registers the API routes behind the middleware chain:
// RequestID, Logger, Recovery, CORS.
func NewRouter(store Store, cors config.CORSConfig, logger *slog.Logger) http.Handler {
	catHandler := catalog.NewCatalogHandler(store)
	metaHandler := meta.NewMetaHandler(store)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api", metaHandler.HandleInfo)
	mux.HandleFunc("GET /api/product/{barcode}", catHandler.HandleGetProduct)
	mux.HandleFunc("POST /api/product", catHandler.HandleCreate)

	return middleware.Chain(mux,
		middleware.RequestID,
		middleware.Logger(logger),
		middleware.Recovery(logger),
		middleware.CORS(cors),
	)
}
