// Package predictor turns (date, bairro) requests into feature vectors and
// orchestrates model inference.
package predictor

import (
	"fmt"
	"time"

	"crimepredict/geo"
)

const dateLayout = "2006-01-02"

// InputError marks a client-side problem with the request inputs.
type InputError struct {
	Reason string
	Err    error
}

func (e *InputError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Reason, e.Err)
	}
	return e.Reason
}

func (e *InputError) Unwrap() error { return e.Err }

// Features is the ordered vector consumed by the classifier. JSON names match
// the columns the model was trained on.
type Features struct {
	NeighborhoodEncoded int `json:"neighborhood_encoded"`
	DiaSemana           int `json:"dia_semana"`
	DiaMes              int `json:"dia_mes"`
	Mes                 int `json:"mes"`
	DiaAno              int `json:"dia_ano"`
	Week                int `json:"week"`
}

// Vector returns the features in training column order.
func (f Features) Vector() []float64 {
	return []float64{
		float64(f.NeighborhoodEncoded),
		float64(f.DiaSemana),
		float64(f.DiaMes),
		float64(f.Mes),
		float64(f.DiaAno),
		float64(f.Week),
	}
}

// NumFeatures is the trained feature vector length.
const NumFeatures = 6

// BuildFeatures derives the feature vector from a YYYY-MM-DD date string and
// a neighborhood name. Malformed dates and unknown neighborhoods come back as
// *InputError.
func BuildFeatures(dateStr, bairro string, mapping *geo.Mapping) (Features, error) {
	date, err := time.Parse(dateLayout, dateStr)
	if err != nil {
		return Features{}, &InputError{
			Reason: fmt.Sprintf("data '%s' inválida, use o formato YYYY-MM-DD", dateStr),
			Err:    err,
		}
	}

	code, err := mapping.Code(bairro)
	if err != nil {
		return Features{}, &InputError{Reason: err.Error(), Err: err}
	}

	_, week := date.ISOWeek()
	return Features{
		NeighborhoodEncoded: code,
		// Weekday with Monday=0, matching the training encoding.
		DiaSemana: (int(date.Weekday()) + 6) % 7,
		DiaMes:    date.Day(),
		Mes:       int(date.Month()),
		DiaAno:    date.YearDay(),
		Week:      week,
	}, nil
}
