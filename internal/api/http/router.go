package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/gorilla/mux"

	"club-finance-backend/internal/domain"
	"club-finance-backend/internal/security"
	"club-finance-backend/internal/service"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Services groups the business services exposed over HTTP.
type Services struct {
	Payroll service.PayrollService
	Ledger  service.LedgerService
	Assets  service.AssetService
	Roster  service.RosterService
}

type RouterOptions struct {
	RequestTimeout time.Duration
	AllowedOrigins []string
}

// NewRouter builds the API router. Every /api/v1 route requires a bearer
// token and the department role that owns the operation.
func NewRouter(svc Services, tm security.TokenManager, health Pinger, opts RouterOptions) http.Handler {
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 60 * time.Second
	}

	r := mux.NewRouter()
	r.Use(RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(opts.RequestTimeout))

	r.HandleFunc("/healthz", healthHandler(health)).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(NewAuthMiddleware(tm).Handler)

	payroll := NewPayrollHandler(svc.Payroll, svc.Roster)
	for _, pop := range []domain.Population{domain.PopulationAthlete, domain.PopulationStaff} {
		base := "/payroll/" + string(pop)
		api.HandleFunc(base+"/batches", authorize(domain.PayrollOperation(pop), payroll.CreateBatch(pop))).Methods(http.MethodPost)
		api.HandleFunc(base+"/eligible", authorize(domain.RosterListOperation(pop), payroll.ListEligible(pop))).Methods(http.MethodGet)
	}

	ledger := NewLedgerHandler(svc.Ledger)
	api.HandleFunc("/ledger/entries", authorize(domain.OpRecordManualEntry, ledger.RecordManual)).Methods(http.MethodPost)
	api.HandleFunc("/ledger/entries/pending", authorize(domain.OpSubmitEntry, ledger.Submit)).Methods(http.MethodPost)
	api.HandleFunc("/ledger/entries/pending", authorize(domain.OpListPendingEntries, ledger.ListPending)).Methods(http.MethodGet)
	api.HandleFunc("/ledger/entries/{id:[0-9]+}/approve", authorize(domain.OpApproveEntry, ledger.Approve)).Methods(http.MethodPost)
	api.HandleFunc("/ledger/entries/{id:[0-9]+}", authorize(domain.OpDiscardEntry, ledger.Discard)).Methods(http.MethodDelete)

	assets := NewAssetHandler(svc.Assets)
	api.HandleFunc("/assets", authorize(domain.OpRegisterAsset, assets.Register)).Methods(http.MethodPost)
	api.HandleFunc("/assets/{id:[0-9]+}/retire", authorize(domain.OpRetireAsset, assets.Retire)).Methods(http.MethodPost)

	roster := NewRosterHandler(svc.Roster)
	api.HandleFunc("/athletes", authorize(domain.OpAddAthlete, roster.AddAthlete)).Methods(http.MethodPost)
	api.HandleFunc("/athletes/{id:[0-9]+}", authorize(domain.OpEndAthleteContract, roster.EndAthleteContract)).Methods(http.MethodDelete)
	api.HandleFunc("/staff", authorize(domain.OpHireStaff, roster.HireStaff)).Methods(http.MethodPost)
	api.HandleFunc("/staff/{id:[0-9]+}", authorize(domain.OpDismissStaff, roster.DismissStaff)).Methods(http.MethodDelete)

	if len(opts.AllowedOrigins) == 0 {
		return r
	}
	// Preflight requests match no route, so CORS wraps the router itself.
	return cors.Handler(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", RequestIDHeader},
		ExposedHeaders: []string{RequestIDHeader},
		MaxAge:         86400,
	})(r)
}

func healthHandler(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := db.PingContext(ctx); err != nil {
				writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
				return
			}
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	}
}
