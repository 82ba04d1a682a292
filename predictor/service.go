package predictor

import (
	"context"
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"

	"crimepredict/geo"
	"crimepredict/ml"
)

// ErrModelNotLoaded is returned when prediction is requested before a model
// artifact could be obtained. It maps to 503 at the HTTP boundary.
var ErrModelNotLoaded = errors.New("modelo não disponível")

// Prediction is the successful outcome of one request.
type Prediction struct {
	TipoCrimePrevisto  string   `json:"tipo_crime_previsto"`
	Probabilidade      float64  `json:"probabilidade"`
	Data               string   `json:"data"`
	Bairro             string   `json:"bairro"`
	FeaturesUtilizadas Features `json:"features_utilizadas"`
}

// Service composes feature extraction, inference and label decoding over a
// shared read-only model handle. All methods are safe for concurrent use.
type Service struct {
	model     ml.Classifier
	modelName string
	mapping   *geo.Mapping
	labels    *ml.Labels
	logger    *zap.Logger
}

// NewService wires the service. model may be nil when no artifact could be
// loaded; the service then answers health checks but refuses predictions.
func NewService(model ml.Classifier, modelName string, mapping *geo.Mapping, labels *ml.Labels, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		model:     model,
		modelName: modelName,
		mapping:   mapping,
		labels:    labels,
		logger:    logger,
	}
}

// Predict runs the full pipeline for one request.
func (s *Service) Predict(ctx context.Context, dateStr, bairro string) (*Prediction, error) {
	features, err := BuildFeatures(dateStr, bairro, s.mapping)
	if err != nil {
		return nil, err
	}

	if s.model == nil {
		return nil, ErrModelNotLoaded
	}

	class, proba, err := s.model.Predict(features.Vector())
	if err != nil {
		s.logger.Error("inference failed",
			zap.String("bairro", bairro),
			zap.String("data", dateStr),
			zap.Error(err))
		return nil, fmt.Errorf("erro ao fazer previsão: %w", err)
	}

	label := s.labels.Decode(class)
	s.logger.Debug("prediction served",
		zap.String("bairro", bairro),
		zap.String("data", dateStr),
		zap.Int("class", class),
		zap.String("label", label),
		zap.Float64("probability", proba))

	return &Prediction{
		TipoCrimePrevisto:  label,
		Probabilidade:      roundPercent(proba),
		Data:               dateStr,
		Bairro:             bairro,
		FeaturesUtilizadas: features,
	}, nil
}

// Neighborhoods lists the names accepted by Predict.
func (s *Service) Neighborhoods() []string {
	return s.mapping.Names()
}

// ModelLoaded reports whether an artifact is available for inference.
func (s *Service) ModelLoaded() bool {
	return s.model != nil
}

// ModelName returns the configured model identity for health reporting.
func (s *Service) ModelName() string {
	return s.modelName
}

func roundPercent(p float64) float64 {
	return math.Round(p*100*100) / 100
}
