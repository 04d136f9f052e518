package regulation

// Regulation is one article of a regulatory framework held in the search index.
type Regulation struct {
	Title      string `json:"title"`
	Article    string `json:"article"`
	Text       string `json:"text"`
	Regulation string `json:"regulation"`
}

// EnforcementCase is a published enforcement action used as precedent.
type EnforcementCase struct {
	Company   string   `json:"company"`
	Violation string   `json:"violation"`
	Fine      float64  `json:"fine"`
	Articles  []string `json:"articles"`
	Year      int      `json:"year"`
	Lessons   []string `json:"lessons"`
}
