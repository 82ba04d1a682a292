package ml

import "fmt"

// DefaultCrimeTypes is the inverse of the label encoding the classifier was
// trained with.
var DefaultCrimeTypes = map[int]string{
	0: "Ataque a civis",
	1: "Briga",
	2: "Disparo Acidental",
	3: "Disputa",
	4: "Homicidio/Tentativa",
	5: "Sequestro/Cárcere Privado",
	6: "Tentativa/Roubo",
	7: "Tiros a esmo",
}

// Labels decodes model class indexes into crime-type names.
type Labels struct {
	byIndex map[int]string
}

func NewLabels(byIndex map[int]string) *Labels {
	copied := make(map[int]string, len(byIndex))
	for idx, name := range byIndex {
		copied[idx] = name
	}
	return &Labels{byIndex: copied}
}

// Decode returns the label for a class index. An index absent from the
// mapping decodes to an explicit unknown label rather than failing; it means
// the mapping and the model disagree on cardinality.
func (l *Labels) Decode(index int) string {
	if name, ok := l.byIndex[index]; ok {
		return name
	}
	return fmt.Sprintf("Desconhecido (%d)", index)
}

// Len returns the number of known labels.
func (l *Labels) Len() int {
	return len(l.byIndex)
}
