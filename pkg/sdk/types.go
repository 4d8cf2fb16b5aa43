package sdk

// ExternalHit is one external catalog result, in provider order.
type ExternalHit struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	ID     string `json:"id,omitempty"`
	Source string `json:"source"`
}

// LocalMatch is one fuzzy-match result, ordered by descending score.
type LocalMatch struct {
	Record map[string]string `json:"record"`
	Score  int               `json:"score"`
	Rank   int               `json:"rank"`
}

// HealthReport is the service health response.
type HealthReport struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}
