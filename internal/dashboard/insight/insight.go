// Package insight derives summary statistics from sample results.
package insight

import "github.com/shandysiswandi/godna/internal/dashboard/entity"

// NoSpecies is returned by MostAbundantSpecies for an empty input.
const NoSpecies = "N/A"

// SpeciesCount is one bar of the abundance chart.
type SpeciesCount struct {
	Species string
	Count   int
}

// Summary backs the key insight card.
type Summary struct {
	Total        int
	Confirmed    int
	Review       int
	MostAbundant string
}

// CountByStatus counts results whose status equals status.
func CountByStatus(results []entity.SampleResult, status entity.SampleStatus) int {
	n := 0
	for _, r := range results {
		if r.Status == status {
			n++
		}
	}
	return n
}

// SpeciesAbundance counts results per species, in order of first occurrence.
func SpeciesAbundance(results []entity.SampleResult) []SpeciesCount {
	index := make(map[string]int, len(results))
	counts := make([]SpeciesCount, 0, len(results))

	for _, r := range results {
		i, ok := index[r.Species]
		if !ok {
			i = len(counts)
			index[r.Species] = i
			counts = append(counts, SpeciesCount{Species: r.Species})
		}
		counts[i].Count++
	}

	return counts
}

// MostAbundantSpecies returns the species with the most results. Among ties
// the species seen first wins. An empty input yields NoSpecies.
func MostAbundantSpecies(results []entity.SampleResult) string {
	best := SpeciesCount{Species: NoSpecies}
	for _, c := range SpeciesAbundance(results) {
		if c.Count > best.Count {
			best = c
		}
	}
	return best.Species
}

// Summarize computes the figures shown on the key insight card.
func Summarize(results []entity.SampleResult) Summary {
	return Summary{
		Total:        len(results),
		Confirmed:    CountByStatus(results, entity.SampleStatusConfirmed),
		Review:       CountByStatus(results, entity.SampleStatusReview),
		MostAbundant: MostAbundantSpecies(results),
	}
}
