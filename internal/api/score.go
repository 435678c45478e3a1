package api

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/Validator/internal/config"
	"github.com/MikeSquared-Agency/Validator/internal/envelope"
	"github.com/MikeSquared-Agency/Validator/internal/hermes"
	"github.com/MikeSquared-Agency/Validator/internal/scoring"
	"github.com/MikeSquared-Agency/Validator/internal/store"
)

const maxRequestBytes = 1 << 20

// Where the bias correction for a request came from.
const (
	BiasSourceQuery          = "query"
	BiasSourceProfile        = "profile"
	BiasSourceDefaultProfile = "default_profile"
	BiasSourceDefault        = "default"
)

type ScoreHandler struct {
	store  store.Store
	hermes hermes.Client
	scorer *scoring.Scorer
	cfg    config.ScoringConfig
	logger *slog.Logger
}

func NewScoreHandler(s store.Store, h hermes.Client, scorer *scoring.Scorer, cfg config.ScoringConfig, logger *slog.Logger) *ScoreHandler {
	return &ScoreHandler{store: s, hermes: h, scorer: scorer, cfg: cfg, logger: logger}
}

type ScoreResponse struct {
	ScoreID    string                `json:"score_id"`
	Shape      envelope.Shape        `json:"shape"`
	BiasSource string                `json:"bias_source"`
	Result     scoring.ScoringResult `json:"result"`
}

// requestError carries the HTTP status for a rejected score request.
type requestError struct {
	status int
	msg    string
}

func (e *requestError) Error() string { return e.msg }

func (h *ScoreHandler) Score(w http.ResponseWriter, r *http.Request) {
	env, source, err := h.prepare(w, r)
	if err != nil {
		h.fail(w, err)
		return
	}

	result := h.scorer.Score(env.Input)
	scoreID := uuid.New().String()

	if h.hermes != nil {
		evt := hermes.ScoreComputedEvent{
			ScoreID:            scoreID,
			OverallScore:       result.OverallScore,
			Verdict:            string(result.Verdict),
			RawWeightedAverage: result.Metadata.RawWeightedAverage,
			BiasCorrection:     result.Metadata.BiasCorrection,
			BiasSource:         source,
			Shape:              string(env.Shape),
			Timestamp:          time.Now().UTC(),
		}
		if err := h.hermes.Publish(hermes.SubjectScoreComputed(scoreID), evt); err != nil {
			h.logger.Warn("failed to publish score event", "score_id", scoreID, "error", err)
		}
	}

	writeJSON(w, http.StatusOK, ScoreResponse{
		ScoreID:    scoreID,
		Shape:      env.Shape,
		BiasSource: source,
		Result:     result,
	})
}

func (h *ScoreHandler) Summary(w http.ResponseWriter, r *http.Request) {
	env, _, err := h.prepare(w, r)
	if err != nil {
		h.fail(w, err)
		return
	}

	var buf bytes.Buffer
	if err := scoring.WriteSummary(&buf, h.scorer.Score(env.Input)); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to render summary")
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

func (h *ScoreHandler) Dimensions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"dimensions":   scoring.Dimensions(),
		"total_weight": scoring.TotalWeight(),
	})
}

// prepare parses the envelope and fills in the bias correction.
func (h *ScoreHandler) prepare(w http.ResponseWriter, r *http.Request) (envelope.Envelope, string, error) {
	bias, source, err := h.resolveBias(r)
	if err != nil {
		return envelope.Envelope{}, "", err
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return envelope.Envelope{}, "", &requestError{http.StatusRequestEntityTooLarge, "request body too large"}
		}
		return envelope.Envelope{}, "", &requestError{http.StatusBadRequest, "failed to read request body"}
	}

	env, err := envelope.Parse(body)
	if err != nil {
		return envelope.Envelope{}, "", &requestError{http.StatusBadRequest, "invalid envelope: " + err.Error()}
	}
	env.Input.BiasCorrection = bias
	return env, source, nil
}

// resolveBias applies: explicit query bias, then named profile, then the
// configured default profile, then the configured default bias.
func (h *ScoreHandler) resolveBias(r *http.Request) (float64, string, error) {
	q := r.URL.Query()

	if v := q.Get("bias_correction"); v != "" {
		bias, err := strconv.ParseFloat(v, 64)
		if err != nil || math.IsNaN(bias) || math.IsInf(bias, 0) {
			return 0, "", &requestError{http.StatusBadRequest, "bias_correction must be a finite number"}
		}
		return bias, BiasSourceQuery, nil
	}

	if name := q.Get("profile"); name != "" {
		p, err := h.store.GetCalibration(r.Context(), name)
		if errors.Is(err, store.ErrNotFound) {
			return 0, "", &requestError{http.StatusNotFound, "calibration profile not found"}
		}
		if err != nil {
			return 0, "", err
		}
		return p.BiasCorrection, BiasSourceProfile, nil
	}

	if name := h.cfg.DefaultProfile; name != "" {
		p, err := h.store.GetCalibration(r.Context(), name)
		switch {
		case err == nil:
			return p.BiasCorrection, BiasSourceDefaultProfile, nil
		case errors.Is(err, store.ErrNotFound):
			h.logger.Warn("default calibration profile missing, using default bias", "profile", name)
		default:
			return 0, "", err
		}
	}

	return h.cfg.BiasCorrection, BiasSourceDefault, nil
}

func (h *ScoreHandler) fail(w http.ResponseWriter, err error) {
	var re *requestError
	if errors.As(err, &re) {
		writeError(w, re.status, re.msg)
		return
	}
	h.logger.Error("score request failed", "error", err)
	writeError(w, http.StatusInternalServerError, "internal error")
}
