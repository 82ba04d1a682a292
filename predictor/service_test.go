package predictor

import (
	"context"
	"errors"
	"testing"

	"crimepredict/geo"
	"crimepredict/ml"
)

type fakeModel struct {
	class    int
	proba    float64
	err      error
	features []float64
}

func (f *fakeModel) Predict(features []float64) (int, float64, error) {
	f.features = features
	return f.class, f.proba, f.err
}

func (f *fakeModel) NumFeatures() int { return NumFeatures }

func newTestService(model ml.Classifier) *Service {
	return NewService(model, "crime_classification_rf",
		geo.NewMapping(geo.DefaultNeighborhoods), ml.NewLabels(ml.DefaultCrimeTypes), nil)
}

func TestServicePredict(t *testing.T) {
	model := &fakeModel{class: 4, proba: 0.7312}
	service := newTestService(model)

	prediction, err := service.Predict(context.Background(), "2024-12-10", "Boa Viagem")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if prediction.TipoCrimePrevisto != "Homicidio/Tentativa" {
		t.Fatalf("unexpected label: %q", prediction.TipoCrimePrevisto)
	}
	if prediction.Probabilidade != 73.12 {
		t.Fatalf("expected probability 73.12, got %f", prediction.Probabilidade)
	}
	if prediction.Data != "2024-12-10" || prediction.Bairro != "Boa Viagem" {
		t.Fatalf("inputs not echoed: %+v", prediction)
	}
	if prediction.FeaturesUtilizadas.NeighborhoodEncoded != 0 {
		t.Fatalf("unexpected encoding: %+v", prediction.FeaturesUtilizadas)
	}
	if len(model.features) != NumFeatures {
		t.Fatalf("model received %d features", len(model.features))
	}
}

func TestServicePredictProbabilityRounding(t *testing.T) {
	service := newTestService(&fakeModel{class: 1, proba: 0.666666})

	prediction, err := service.Predict(context.Background(), "2024-12-10", "Piedade")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if prediction.Probabilidade != 66.67 {
		t.Fatalf("expected 66.67, got %f", prediction.Probabilidade)
	}
}

func TestServicePredictUnknownClassIndex(t *testing.T) {
	service := newTestService(&fakeModel{class: 99, proba: 0.5})

	prediction, err := service.Predict(context.Background(), "2024-12-10", "Prado")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if prediction.TipoCrimePrevisto != "Desconhecido (99)" {
		t.Fatalf("expected unknown fallback, got %q", prediction.TipoCrimePrevisto)
	}
}

func TestServicePredictModelNotLoaded(t *testing.T) {
	service := newTestService(nil)

	_, err := service.Predict(context.Background(), "2024-12-10", "Boa Viagem")
	if !errors.Is(err, ErrModelNotLoaded) {
		t.Fatalf("expected ErrModelNotLoaded, got %v", err)
	}
	if service.ModelLoaded() {
		t.Fatal("expected ModelLoaded to be false")
	}
}

func TestServicePredictInputErrorsBeforeModelCheck(t *testing.T) {
	// Bad input on an unloaded service must surface as a client error, not 503.
	service := newTestService(nil)

	_, err := service.Predict(context.Background(), "2024/13/40", "Boa Viagem")
	var input *InputError
	if !errors.As(err, &input) {
		t.Fatalf("expected InputError, got %v", err)
	}
}

func TestServicePredictInferenceFailure(t *testing.T) {
	service := newTestService(&fakeModel{err: errors.New("feature index out of range")})

	_, err := service.Predict(context.Background(), "2024-12-10", "Boa Viagem")
	if err == nil {
		t.Fatal("expected inference error")
	}
	var input *InputError
	if errors.As(err, &input) {
		t.Fatal("inference failure must not be a client error")
	}
}
