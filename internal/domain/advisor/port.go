package advisor

import "context"

// ProjectBrief is the advisor input: a free-text project description plus
// optional classification hints and retrieved regulatory context.
type ProjectBrief struct {
	ProjectName   string `json:"project_name"`
	Description   string `json:"description"`
	BusinessModel string `json:"business_model,omitempty"`
	Jurisdiction  string `json:"jurisdiction,omitempty"`

	// RegulatoryContext is pre-retrieved search material injected into the
	// prompt; the advisor treats it as untrusted reference text.
	RegulatoryContext string `json:"-"`
}

// Client is the opaque LLM boundary. Implementations return the raw JSON
// text produced by the model; they never parse or post-process it.
type Client interface {
	AdviseProject(ctx context.Context, brief ProjectBrief) (string, error)
}
