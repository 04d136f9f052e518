package httpserver

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/bryanwahyu/chain-compliance/internal/application/analysis"
	"github.com/bryanwahyu/chain-compliance/internal/domain/advisor"
	"github.com/bryanwahyu/chain-compliance/internal/domain/contract"
	"github.com/bryanwahyu/chain-compliance/internal/domain/regulation"
	"github.com/bryanwahyu/chain-compliance/internal/domain/reports"
	"github.com/bryanwahyu/chain-compliance/internal/middleware"
)

type Router struct {
	svc *analysis.Service
}

func NewRouter(svc *analysis.Service, checkers map[string]middleware.HealthChecker) http.Handler {
	r := &Router{svc: svc}
	mux := chi.NewRouter()

	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	mux.Get("/health", middleware.HealthHandler(checkers))
	mux.Get("/ready", middleware.ReadinessHandler)
	mux.Get("/live", middleware.LivenessHandler)
	mux.Get("/metrics", middleware.MetricsHandler)

	mux.Route("/v1/{tenant}", func(rt chi.Router) {
		rt.Post("/analyze/contract", r.wrap(r.handleAnalyzeContract))
		rt.Post("/analyze/project", r.wrap(r.handleAnalyzeProject))
		rt.Post("/regulations/search", r.wrap(r.handleSearchRegulations))
		rt.Post("/cases/search", r.wrap(r.handleSearchCases))
		rt.Post("/regulations", r.wrap(r.handleAddRegulation))
		rt.Post("/cases", r.wrap(r.handleAddCase))
		rt.Get("/reports/latest", r.wrap(r.handleLatest))
		rt.Get("/reports/{id}", r.wrap(r.handleGet))
		rt.Get("/summary", r.wrap(r.handleSummary))
	})

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if err := h(w, req); err != nil {
			switch {
			case errors.Is(err, contract.ErrEmptySource):
				http.Error(w, err.Error(), http.StatusBadRequest)
			case errors.Is(err, sql.ErrNoRows):
				http.Error(w, "not found", http.StatusNotFound)
			case errors.Is(err, advisor.ErrQuotaExceeded):
				http.Error(w, "advisor quota exceeded", http.StatusTooManyRequests)
			case errors.Is(err, advisor.ErrNotConfigured):
				http.Error(w, "advisor not configured", http.StatusServiceUnavailable)
			case errors.Is(err, regulation.ErrIndexUnavailable):
				http.Error(w, "regulation index unavailable", http.StatusServiceUnavailable)
			default:
				http.Error(w, err.Error(), http.StatusInternalServerError)
			}
		}
	}
}

func writeJSON(w http.ResponseWriter, v any) error {
	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(v)
}

// POST /v1/{tenant}/analyze/contract
// Body: {"contract_name": "...", "contract_code": "...", "witness": "..."}
func (r *Router) handleAnalyzeContract(w http.ResponseWriter, req *http.Request) error {
	tenant := chi.URLParam(req, "tenant")
	if err := middleware.ValidateTenantID(tenant); err != nil {
		return err
	}

	var body struct {
		ContractName string `json:"contract_name"`
		ContractCode string `json:"contract_code"`
		Witness      string `json:"witness"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return fmt.Errorf("%w: invalid request body", contract.ErrEmptySource)
	}
	if err := middleware.ValidateContractSize(body.ContractCode); err != nil {
		return err
	}

	result, err := r.svc.AnalyzeContract(req.Context(), analysis.AnalyzeContractCommand{
		TenantID:     tenant,
		ContractName: body.ContractName,
		ContractCode: body.ContractCode,
		Witness:      body.Witness,
	})
	if err != nil {
		return err
	}
	return writeJSON(w, result)
}

// POST /v1/{tenant}/analyze/project
func (r *Router) handleAnalyzeProject(w http.ResponseWriter, req *http.Request) error {
	tenant := chi.URLParam(req, "tenant")
	if err := middleware.ValidateTenantID(tenant); err != nil {
		return err
	}

	var body struct {
		ProjectName   string `json:"project_name"`
		Description   string `json:"description"`
		BusinessModel string `json:"business_model"`
		Jurisdiction  string `json:"jurisdiction"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return err
	}
	if body.Description == "" && body.BusinessModel == "" {
		return fmt.Errorf("description or business_model is required")
	}

	out, err := r.svc.AnalyzeProject(req.Context(), analysis.AnalyzeProjectCommand{
		TenantID:      tenant,
		ProjectName:   body.ProjectName,
		Description:   body.Description,
		BusinessModel: body.BusinessModel,
		Jurisdiction:  body.Jurisdiction,
	})
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "application/json")
	_, werr := w.Write(out)
	return werr
}

// POST /v1/{tenant}/regulations/search
// Body: {"query": "...", "regulation": "MICA", "limit": 10}
func (r *Router) handleSearchRegulations(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		Query      string `json:"query"`
		Regulation string `json:"regulation"`
		Limit      int    `json:"limit"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return err
	}
	if err := middleware.ValidateQuery(body.Query); err != nil {
		return err
	}

	list, err := r.svc.SearchRegulations(req.Context(), body.Query, body.Regulation, body.Limit)
	if err != nil {
		return err
	}
	return writeJSON(w, list)
}

// POST /v1/{tenant}/cases/search
// Body: {"query": "...", "limit": 10}
func (r *Router) handleSearchCases(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		Query string `json:"query"`
		Limit int    `json:"limit"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return err
	}
	if err := middleware.ValidateQuery(body.Query); err != nil {
		return err
	}

	list, err := r.svc.SearchCases(req.Context(), body.Query, body.Limit)
	if err != nil {
		return err
	}
	return writeJSON(w, list)
}

// POST /v1/{tenant}/regulations
func (r *Router) handleAddRegulation(w http.ResponseWriter, req *http.Request) error {
	var body regulation.Regulation
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return err
	}
	if body.Text == "" {
		return fmt.Errorf("text is required")
	}

	if err := r.svc.AddRegulation(req.Context(), body); err != nil {
		return err
	}
	w.WriteHeader(http.StatusCreated)
	return writeJSON(w, map[string]string{"status": "created"})
}

// POST /v1/{tenant}/cases
func (r *Router) handleAddCase(w http.ResponseWriter, req *http.Request) error {
	var body regulation.EnforcementCase
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return err
	}
	if body.Company == "" {
		return fmt.Errorf("company is required")
	}

	if err := r.svc.AddCase(req.Context(), body); err != nil {
		return err
	}
	w.WriteHeader(http.StatusCreated)
	return writeJSON(w, map[string]string{"status": "created"})
}

// GET /v1/{tenant}/reports/latest?limit=20
func (r *Router) handleLatest(w http.ResponseWriter, req *http.Request) error {
	tenant := chi.URLParam(req, "tenant")
	limit, _ := strconv.Atoi(req.URL.Query().Get("limit"))

	list, err := r.svc.Latest(req.Context(), tenant, limit)
	if err != nil {
		return err
	}
	return writeJSON(w, list)
}

// GET /v1/{tenant}/reports/{id}
func (r *Router) handleGet(w http.ResponseWriter, req *http.Request) error {
	tenant := chi.URLParam(req, "tenant")
	id := chi.URLParam(req, "id")

	rec, err := r.svc.Get(req.Context(), tenant, reports.ReportID(id))
	if err != nil {
		return err
	}
	return writeJSON(w, rec)
}

// GET /v1/{tenant}/summary?days=7
func (r *Router) handleSummary(w http.ResponseWriter, req *http.Request) error {
	tenant := chi.URLParam(req, "tenant")
	days, _ := strconv.Atoi(req.URL.Query().Get("days"))

	summary, err := r.svc.Summary(req.Context(), tenant, middleware.ValidateDays(days))
	if err != nil {
		return err
	}
	return writeJSON(w, summary)
}
