package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MikeSquared-Agency/Validator/internal/hermes"
	"github.com/MikeSquared-Agency/Validator/internal/store"
)

type CalibrationsHandler struct {
	store  store.Store
	hermes hermes.Client
	logger *slog.Logger
}

func NewCalibrationsHandler(s store.Store, h hermes.Client, logger *slog.Logger) *CalibrationsHandler {
	return &CalibrationsHandler{store: s, hermes: h, logger: logger}
}

type PutCalibrationRequest struct {
	BiasCorrection *float64 `json:"bias_correction"`
	Note           string   `json:"note,omitempty"`
}

func (h *CalibrationsHandler) List(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.store.ListCalibrations(r.Context())
	if err != nil {
		h.logger.Error("list calibrations", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list calibrations")
		return
	}
	if profiles == nil {
		profiles = []*store.CalibrationProfile{}
	}
	writeJSON(w, http.StatusOK, profiles)
}

func (h *CalibrationsHandler) Get(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	p, err := h.store.GetCalibration(r.Context(), name)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "calibration profile not found")
		return
	}
	if err != nil {
		h.logger.Error("get calibration", "name", name, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get calibration")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *CalibrationsHandler) Put(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	var req PutCalibrationRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes)).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.BiasCorrection == nil {
		writeError(w, http.StatusBadRequest, "bias_correction required")
		return
	}

	p := &store.CalibrationProfile{Name: name, BiasCorrection: *req.BiasCorrection, Note: req.Note}
	if err := p.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.store.UpsertCalibration(r.Context(), p); err != nil {
		h.logger.Error("upsert calibration", "name", name, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save calibration")
		return
	}

	if h.hermes != nil {
		evt := hermes.CalibrationUpdatedEvent{
			Name:           p.Name,
			BiasCorrection: p.BiasCorrection,
			Note:           p.Note,
			UpdatedBy:      r.Header.Get(ClientIDHeader),
			Timestamp:      time.Now().UTC(),
		}
		if err := h.hermes.Publish(hermes.SubjectCalibrationUpdated(p.Name), evt); err != nil {
			h.logger.Warn("failed to publish calibration event", "name", p.Name, "error", err)
		}
	}

	writeJSON(w, http.StatusOK, p)
}
