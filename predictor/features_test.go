package predictor

import (
	"errors"
	"testing"

	"crimepredict/geo"
)

func TestBuildFeatures(t *testing.T) {
	mapping := geo.NewMapping(geo.DefaultNeighborhoods)

	features, err := BuildFeatures("2024-12-10", "Boa Viagem", mapping)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 2024-12-10 is a Tuesday in a leap year, ISO week 50.
	want := Features{
		NeighborhoodEncoded: 0,
		DiaSemana:           1,
		DiaMes:              10,
		Mes:                 12,
		DiaAno:              345,
		Week:                50,
	}
	if features != want {
		t.Fatalf("expected %+v, got %+v", want, features)
	}
}

func TestBuildFeaturesWeekdayBoundaries(t *testing.T) {
	mapping := geo.NewMapping(geo.DefaultNeighborhoods)

	// 2024-12-09 is a Monday, 2024-12-15 a Sunday.
	monday, err := BuildFeatures("2024-12-09", "Prado", mapping)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if monday.DiaSemana != 0 {
		t.Fatalf("expected Monday=0, got %d", monday.DiaSemana)
	}

	sunday, err := BuildFeatures("2024-12-15", "Prado", mapping)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sunday.DiaSemana != 6 {
		t.Fatalf("expected Sunday=6, got %d", sunday.DiaSemana)
	}
	if sunday.NeighborhoodEncoded != 4 {
		t.Fatalf("expected Prado code 4, got %d", sunday.NeighborhoodEncoded)
	}
}

func TestBuildFeaturesInvalidDate(t *testing.T) {
	mapping := geo.NewMapping(geo.DefaultNeighborhoods)

	for _, date := range []string{"2024/13/40", "10-12-2024", "2024-02-30", "not a date", ""} {
		_, err := BuildFeatures(date, "Boa Viagem", mapping)
		if err == nil {
			t.Fatalf("expected error for date %q", date)
		}
		var input *InputError
		if !errors.As(err, &input) {
			t.Fatalf("expected InputError for date %q, got %T", date, err)
		}
	}
}

func TestBuildFeaturesUnknownNeighborhood(t *testing.T) {
	mapping := geo.NewMapping(geo.DefaultNeighborhoods)

	_, err := BuildFeatures("2024-12-10", "Nowhere", mapping)
	if err == nil {
		t.Fatal("expected error for unknown neighborhood")
	}
	var input *InputError
	if !errors.As(err, &input) {
		t.Fatalf("expected InputError, got %T", err)
	}
	var unknown *geo.UnknownError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected wrapped UnknownError, got %v", err)
	}
}

func TestFeaturesVectorOrder(t *testing.T) {
	f := Features{
		NeighborhoodEncoded: 3,
		DiaSemana:           1,
		DiaMes:              10,
		Mes:                 12,
		DiaAno:              345,
		Week:                50,
	}
	vector := f.Vector()
	want := []float64{3, 1, 10, 12, 345, 50}
	if len(vector) != NumFeatures {
		t.Fatalf("expected %d features, got %d", NumFeatures, len(vector))
	}
	for i := range want {
		if vector[i] != want[i] {
			t.Fatalf("position %d: expected %f, got %f", i, want[i], vector[i])
		}
	}
}
