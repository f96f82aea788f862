package entity

type TaxonomyRow struct {
	Name  string
	Value int
}

type PhyloRow struct {
	Group string
	Value int
}

type BiodiversityRow struct {
	Location string
	Metric   int
}

// SampleResult is one analyzed DNA sample. Confidence is within [0,1].
type SampleResult struct {
	SampleID       string
	Species        string
	Confidence     float64
	Location       string
	GeneticMarkers string
	Status         SampleStatus
	Date           string // ISO date, 2006-01-02
}

// GeoSite is a sampling location shown on the map.
type GeoSite struct {
	Lat     float64
	Lng     float64
	Name    string
	Species int
}

type Species struct {
	ID          int
	Name        string
	Class       string
	Description string
	ImageURL    string
}

type FAQItem struct {
	Question string
	Answer   string
}
