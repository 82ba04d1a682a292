package ml

import "testing"

func TestLabelsDecode(t *testing.T) {
	labels := NewLabels(DefaultCrimeTypes)

	if got := labels.Decode(1); got != "Briga" {
		t.Fatalf("expected Briga, got %q", got)
	}
	if got := labels.Decode(7); got != "Tiros a esmo" {
		t.Fatalf("expected Tiros a esmo, got %q", got)
	}
}

func TestLabelsDecodeUnknownIndex(t *testing.T) {
	labels := NewLabels(DefaultCrimeTypes)

	if got := labels.Decode(42); got != "Desconhecido (42)" {
		t.Fatalf("expected unknown fallback, got %q", got)
	}
}
