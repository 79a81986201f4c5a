package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/forestrie/go-certassets/assets"
)

// AssetSource is satisfied by *assets.Service
type AssetSource interface {
	CertifiedAsset(path string) (assets.Record, bool, error)
}

type Handler struct {
	log     logger.Logger
	source  AssetSource
	metrics *Metrics
}

func NewHandler(log logger.Logger, source AssetSource, metrics *Metrics) *Handler {
	return &Handler{log: log, source: source, metrics: metrics}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		h.fail(w, http.StatusMethodNotAllowed)
		return
	}

	rec, ok, err := h.source.CertifiedAsset(r.URL.Path)
	if err != nil {
		if errors.Is(err, assets.ErrNotInitialized) || errors.Is(err, assets.ErrNoCertificate) {
			h.fail(w, http.StatusServiceUnavailable)
			return
		}
		h.log.Infof("asset %s: %v", r.URL.Path, err)
		h.fail(w, http.StatusInternalServerError)
		return
	}
	if !ok {
		h.fail(w, http.StatusNotFound)
		return
	}

	for _, hdr := range rec.Headers {
		w.Header().Add(hdr.Name, hdr.Value)
	}
	w.Header().Set("Content-Length", strconv.Itoa(len(rec.Body)))
	w.WriteHeader(http.StatusOK)
	h.metrics.RequestsTotal.WithLabelValues(strconv.Itoa(http.StatusOK)).Inc()

	if r.Method == http.MethodHead {
		return
	}
	n, err := w.Write(rec.Body)
	h.metrics.BytesServedTotal.Add(float64(n))
	if err != nil {
		h.log.Debugf("writing %s: %v", r.URL.Path, err)
	}
}

func (h *Handler) fail(w http.ResponseWriter, status int) {
	h.metrics.RequestsTotal.WithLabelValues(strconv.Itoa(status)).Inc()
	http.Error(w, http.StatusText(status), status)
}
