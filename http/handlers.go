package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"crimepredict/predictor"
)

// Version reported by the root and health endpoints.
const Version = "1.0.0"

// Handler serves the prediction API. It only reads shared immutable state,
// so a single instance handles all requests concurrently.
type Handler struct {
	service *predictor.Service
	logger  *zap.Logger
}

func NewHandler(service *predictor.Service, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{service: service, logger: logger}
}

// Register wires all routes into the mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", h.handleRoot)
	mux.HandleFunc("GET /health", h.handleHealth)
	mux.HandleFunc("GET /bairros", h.handleBairros)
	mux.HandleFunc("GET /predict", h.handlePredict)
}

func (h *Handler) handleRoot(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, map[string]interface{}{
		"message": "Crime Type Prediction API",
		"version": Version,
		"endpoints": map[string]string{
			"predict": "/predict?data=YYYY-MM-DD&bairro=NomeDoBairro",
			"health":  "/health",
			"bairros": "/bairros",
		},
	})
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	if !h.service.ModelLoaded() {
		status = "degraded"
	}
	respondJSON(w, map[string]interface{}{
		"status":       status,
		"model_loaded": h.service.ModelLoaded(),
		"model_name":   h.service.ModelName(),
	})
}

func (h *Handler) handleBairros(w http.ResponseWriter, r *http.Request) {
	names := h.service.Neighborhoods()
	respondJSON(w, map[string]interface{}{
		"bairros_disponiveis": names,
		"total":               len(names),
	})
}

func (h *Handler) handlePredict(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("data")
	bairro := r.URL.Query().Get("bairro")

	if date == "" {
		respondError(w, http.StatusBadRequest, "parâmetro 'data' é obrigatório (YYYY-MM-DD)")
		return
	}
	if bairro == "" {
		respondError(w, http.StatusBadRequest, "parâmetro 'bairro' é obrigatório")
		return
	}

	prediction, err := h.service.Predict(r.Context(), date, bairro)
	if err != nil {
		var input *predictor.InputError
		switch {
		case errors.As(err, &input):
			respondError(w, http.StatusBadRequest, input.Reason)
		case errors.Is(err, predictor.ErrModelNotLoaded):
			respondError(w, http.StatusServiceUnavailable,
				"modelo não disponível, verifique o registro de modelos")
		default:
			h.logger.Error("prediction failed",
				zap.String("request_id", GetRequestID(r.Context())),
				zap.Error(err))
			respondError(w, http.StatusInternalServerError, "erro ao fazer previsão")
		}
		return
	}

	respondJSON(w, prediction)
}

func respondJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
