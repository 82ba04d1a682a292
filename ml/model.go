package ml

// Classifier is the inference capability of a trained model artifact.
// Predict returns the most probable class index and its probability in [0, 1].
type Classifier interface {
	Predict(features []float64) (int, float64, error)
	NumFeatures() int
}
