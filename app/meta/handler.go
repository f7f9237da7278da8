package meta

import (
	"context"
	"net/http"

	"github.com/veo1/health-scanner/app/httpx"
)

const (
	ServiceName = "Health Scanner API"
	Version     = "1.0"
)

var Endpoints = []string{
	"GET /api",
	"GET /api/product/{barcode}",
	"POST /api/product",
}

type InfoResponse struct {
	Status    string   `json:"status"`
	Service   string   `json:"service"`
	Version   string   `json:"version"`
	Endpoints []string `json:"endpoints"`
	Products  int64    `json:"products"`
}

type ProductCounter interface {
	Count(ctx context.Context) (int64, error)
}

type MetaHandler struct {
	repo ProductCounter
}

func NewMetaHandler(r ProductCounter) *MetaHandler {
	return &MetaHandler{repo: r}
}

// HandleInfo describes the service and doubles as a store liveness probe.
func (h *MetaHandler) HandleInfo(w http.ResponseWriter, r *http.Request) {
	n, err := h.repo.Count(r.Context())
	if err != nil {
		httpx.JSONError(w, http.StatusServiceUnavailable, "Product store unavailable.", err.Error())
		return
	}

	httpx.JSON(w, http.StatusOK, InfoResponse{
		Status:    "OK",
		Service:   ServiceName,
		Version:   Version,
		Endpoints: Endpoints,
		Products:  n,
	})
}
