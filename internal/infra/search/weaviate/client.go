package weaviate

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/weaviate/weaviate-go-client/v5/weaviate"
	"github.com/weaviate/weaviate-go-client/v5/weaviate/auth"
	"github.com/weaviate/weaviate-go-client/v5/weaviate/filters"
	"github.com/weaviate/weaviate-go-client/v5/weaviate/graphql"
	"github.com/weaviate/weaviate/entities/models"

	"github.com/bryanwahyu/chain-compliance/internal/domain/regulation"
)

// Index implements regulation.Index on a Weaviate instance using BM25
// keyword search.
type Index struct {
	client *weaviate.Client
}

// New connects to Weaviate. URL may carry an http/https prefix; an empty
// apiKey means anonymous access.
func New(url, apiKey string) (*Index, error) {
	cfg := weaviate.Config{
		Host:   url,
		Scheme: "http",
	}
	if strings.HasPrefix(url, "https://") {
		cfg.Scheme = "https"
		cfg.Host = strings.TrimPrefix(url, "https://")
	} else if strings.HasPrefix(url, "http://") {
		cfg.Host = strings.TrimPrefix(url, "http://")
	}
	if apiKey != "" {
		cfg.AuthConfig = auth.ApiKey{Value: apiKey}
	}

	client, err := weaviate.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("create weaviate client: %w", err)
	}
	return &Index{client: client}, nil
}

// EnsureSchema creates the Regulation and EnforcementCase classes when they
// do not exist yet. Existing classes are left untouched.
func (i *Index) EnsureSchema(ctx context.Context) error {
	for _, class := range []*models.Class{regulationSchema(), caseSchema()} {
		_, err := i.client.Schema().ClassGetter().WithClassName(class.Class).Do(ctx)
		if err == nil {
			continue
		}
		log.Printf("weaviate class %s not found, creating", class.Class)
		if err := i.client.Schema().ClassCreator().WithClass(class).Do(ctx); err != nil {
			return fmt.Errorf("create class %s: %w", class.Class, err)
		}
	}
	return nil
}

// Ready probes the instance; callers treat a failure as index-unavailable.
func (i *Index) Ready(ctx context.Context) error {
	ok, err := i.client.Misc().ReadyChecker().Do(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", regulation.ErrIndexUnavailable, err)
	}
	if !ok {
		return regulation.ErrIndexUnavailable
	}
	return nil
}

func (i *Index) AddRegulation(ctx context.Context, r regulation.Regulation) error {
	_, err := i.client.Data().Creator().
		WithClassName(RegulationClass).
		WithProperties(map[string]interface{}{
			"title":      r.Title,
			"article":    r.Article,
			"text":       r.Text,
			"regulation": r.Regulation,
		}).
		Do(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", regulation.ErrIndexUnavailable, err)
	}
	return nil
}

func (i *Index) AddCase(ctx context.Context, c regulation.EnforcementCase) error {
	_, err := i.client.Data().Creator().
		WithClassName(CaseClass).
		WithProperties(map[string]interface{}{
			"company":   c.Company,
			"violation": c.Violation,
			"fine":      c.Fine,
			"articles":  c.Articles,
			"year":      c.Year,
			"lessons":   c.Lessons,
		}).
		Do(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", regulation.ErrIndexUnavailable, err)
	}
	return nil
}

// SearchRegulations runs a BM25 query, optionally filtered to one framework
// tag. Results keep the store's ranking order.
func (i *Index) SearchRegulations(ctx context.Context, query, framework string, limit int) ([]regulation.Regulation, error) {
	fields := []graphql.Field{
		{Name: "title"},
		{Name: "article"},
		{Name: "text"},
		{Name: "regulation"},
	}

	builder := i.client.GraphQL().Get().
		WithClassName(RegulationClass).
		WithFields(fields...).
		WithBM25(i.client.GraphQL().Bm25ArgBuilder().WithQuery(query)).
		WithLimit(limit)

	if framework != "" {
		builder = builder.WithWhere(filters.Where().
			WithPath([]string{"regulation"}).
			WithOperator(filters.Equal).
			WithValueString(framework))
	}

	result, err := builder.Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", regulation.ErrIndexUnavailable, err)
	}
	if len(result.Errors) > 0 {
		return nil, fmt.Errorf("regulation search: %s", result.Errors[0].Message)
	}

	var out []regulation.Regulation
	for _, obj := range decodeObjects(result.Data, RegulationClass) {
		out = append(out, regulation.Regulation{
			Title:      getString(obj, "title"),
			Article:    getString(obj, "article"),
			Text:       getString(obj, "text"),
			Regulation: getString(obj, "regulation"),
		})
	}
	return out, nil
}

// SearchCases runs a BM25 query over enforcement cases.
func (i *Index) SearchCases(ctx context.Context, query string, limit int) ([]regulation.EnforcementCase, error) {
	fields := []graphql.Field{
		{Name: "company"},
		{Name: "violation"},
		{Name: "fine"},
		{Name: "articles"},
		{Name: "year"},
		{Name: "lessons"},
	}

	result, err := i.client.GraphQL().Get().
		WithClassName(CaseClass).
		WithFields(fields...).
		WithBM25(i.client.GraphQL().Bm25ArgBuilder().WithQuery(query)).
		WithLimit(limit).
		Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", regulation.ErrIndexUnavailable, err)
	}
	if len(result.Errors) > 0 {
		return nil, fmt.Errorf("case search: %s", result.Errors[0].Message)
	}

	var out []regulation.EnforcementCase
	for _, obj := range decodeObjects(result.Data, CaseClass) {
		out = append(out, regulation.EnforcementCase{
			Company:   getString(obj, "company"),
			Violation: getString(obj, "violation"),
			Fine:      getNumber(obj, "fine"),
			Articles:  getStrings(obj, "articles"),
			Year:      int(getNumber(obj, "year")),
			Lessons:   getStrings(obj, "lessons"),
		})
	}
	return out, nil
}
