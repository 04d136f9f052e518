package weaviate

import "github.com/weaviate/weaviate/entities/models"

const (
	RegulationClass = "Regulation"
	CaseClass       = "EnforcementCase"
)

// Keyword search only: both classes carry no vectorizer and rely on the
// inverted (BM25) index.

func regulationSchema() *models.Class {
	return &models.Class{
		Class:       RegulationClass,
		Description: "Regulatory framework articles",
		Vectorizer:  "none",
		Properties: []*models.Property{
			{Name: "title", DataType: []string{"text"}, Description: "Article title"},
			{Name: "article", DataType: []string{"text"}, Description: "Article reference, e.g. Art. 67"},
			{Name: "text", DataType: []string{"text"}, Description: "Full article text"},
			{Name: "regulation", DataType: []string{"text"}, Description: "Framework tag, e.g. MICA or GDPR", Tokenization: "field"},
		},
	}
}

func caseSchema() *models.Class {
	return &models.Class{
		Class:       CaseClass,
		Description: "Enforcement actions used as precedent",
		Vectorizer:  "none",
		Properties: []*models.Property{
			{Name: "company", DataType: []string{"text"}, Description: "Sanctioned company"},
			{Name: "violation", DataType: []string{"text"}, Description: "What the company was sanctioned for"},
			{Name: "fine", DataType: []string{"number"}, Description: "Fine amount in EUR"},
			{Name: "articles", DataType: []string{"text[]"}, Description: "Violated articles"},
			{Name: "year", DataType: []string{"int"}, Description: "Decision year"},
			{Name: "lessons", DataType: []string{"text[]"}, Description: "Takeaways for practitioners"},
		},
	}
}
