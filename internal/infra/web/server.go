package web

import (
	"net/http"
	"strings"

	"softcontrol-backoffice/internal/domain/model"
	"softcontrol-backoffice/internal/domain/ports/adapter"
	"softcontrol-backoffice/internal/usecase"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

type Server struct {
	authUC    usecase.AuthUseCase
	staffUC   usecase.StaffUseCase
	statsUC   usecase.StatsUseCase
	goalUC    usecase.GoalUseCase
	subUC     usecase.SubscriptionUseCase
	licenseUC usecase.LicenseUseCase
	reconUC   usecase.ReconcileUseCase
	identity  adapter.IdentityProvider
	auth      *AuthManager
	log       *zerolog.Logger
}

func NewServer(
	authUC usecase.AuthUseCase,
	staffUC usecase.StaffUseCase,
	statsUC usecase.StatsUseCase,
	goalUC usecase.GoalUseCase,
	subUC usecase.SubscriptionUseCase,
	licenseUC usecase.LicenseUseCase,
	reconUC usecase.ReconcileUseCase,
	identity adapter.IdentityProvider,
	auth *AuthManager,
	logger *zerolog.Logger,
) *Server {
	return &Server{
		authUC:    authUC,
		staffUC:   staffUC,
		statsUC:   statsUC,
		goalUC:    goalUC,
		subUC:     subUC,
		licenseUC: licenseUC,
		reconUC:   reconUC,
		identity:  identity,
		auth:      auth,
		log:       logger,
	}
}

// RegisterRoutes sets up the webhook endpoint and the admin API.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	// Payment provider callbacks are authenticated upstream, never by session.
	mux.Handle("/webhook/stripe", webhookHandler(s.reconUC, s.log))

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.Handle("/metrics", promhttp.Handler())

	mux.Handle("/api/v1/auth/login", loginHandler(s.identity, s.authUC, s.auth, s.log))
	mux.Handle("/api/v1/auth/logout", logoutHandler(s.identity, s.auth, s.log))

	staffRouter := s.sessionMiddleware(s.staffRouter())
	mux.Handle("/api/v1/staff", staffRouter)
	mux.Handle("/api/v1/staff/", staffRouter)

	mux.Handle("/api/v1/stats", s.sessionMiddleware(statsHandler(s.statsUC)))

	goalsRouter := s.sessionMiddleware(s.goalsRouter())
	mux.Handle("/api/v1/goals", goalsRouter)
	mux.Handle("/api/v1/goals/", goalsRouter)

	subsRouter := s.sessionMiddleware(s.subscriptionsRouter())
	mux.Handle("/api/v1/subscriptions", subsRouter)
	mux.Handle("/api/v1/subscriptions/", subsRouter)

	// Client installs activate with the key itself; no staff session.
	mux.Handle("/api/v1/licenses/activate", licenseActivateHandler(s.licenseUC))

	mux.Handle("/api/v1/licenses/", s.sessionMiddleware(s.licensesRouter()))
}

// sessionMiddleware requires a valid staff session token. The resolved
// role travels to the handlers through the claims; the use cases apply
// the role policy on every mutating call.
func (s *Server) sessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := s.auth.ParseFromRequest(r)
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		if !model.Role(claims.Role).Valid() {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r.WithContext(withClaims(r.Context(), claims)))
	})
}

func (s *Server) staffRouter() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := strings.TrimPrefix(r.URL.Path, "/api/v1/staff")
		path = strings.Trim(path, "/")

		if path == "" { // /api/v1/staff
			switch r.Method {
			case http.MethodGet:
				staffListHandler(s.staffUC)(w, r)
			case http.MethodPost:
				staffCreateHandler(s.staffUC)(w, r)
			default:
				http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			}
			return
		}

		// /api/v1/staff/{id} and /api/v1/staff/{id}/role|active
		parts := strings.Split(path, "/")
		switch {
		case len(parts) == 1 && r.Method == http.MethodDelete:
			staffDeleteHandler(s.staffUC, parts[0])(w, r)
		case len(parts) == 2 && parts[1] == "role" && r.Method == http.MethodPut:
			staffRoleHandler(s.staffUC, parts[0])(w, r)
		case len(parts) == 2 && parts[1] == "active" && r.Method == http.MethodPut:
			staffActiveHandler(s.staffUC, parts[0])(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})
}

func (s *Server) goalsRouter() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := strings.TrimPrefix(r.URL.Path, "/api/v1/goals")
		path = strings.Trim(path, "/")

		if path == "" { // /api/v1/goals
			switch r.Method {
			case http.MethodGet:
				goalsListHandler(s.goalUC)(w, r)
			case http.MethodPost:
				goalsCreateHandler(s.goalUC)(w, r)
			default:
				http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			}
			return
		}

		// /api/v1/goals/{id}
		switch r.Method {
		case http.MethodGet:
			goalsGetHandler(s.goalUC, path)(w, r)
		case http.MethodPut:
			goalsUpdateHandler(s.goalUC, path)(w, r)
		case http.MethodDelete:
			goalsDeleteHandler(s.goalUC, path)(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})
}

func (s *Server) subscriptionsRouter() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := strings.TrimPrefix(r.URL.Path, "/api/v1/subscriptions")
		path = strings.Trim(path, "/")

		if path == "" { // /api/v1/subscriptions
			switch r.Method {
			case http.MethodGet:
				subscriptionsListHandler(s.subUC)(w, r)
			case http.MethodPost:
				subscriptionCheckoutHandler(s.subUC)(w, r)
			default:
				http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			}
			return
		}

		// /api/v1/subscriptions/{id} and /api/v1/subscriptions/{id}/cancel
		parts := strings.Split(path, "/")
		switch {
		case len(parts) == 1 && r.Method == http.MethodGet:
			subscriptionGetHandler(s.subUC, parts[0])(w, r)
		case len(parts) == 2 && parts[1] == "cancel" && r.Method == http.MethodPost:
			subscriptionCancelHandler(s.subUC, parts[0])(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})
}

func (s *Server) licensesRouter() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := strings.TrimPrefix(r.URL.Path, "/api/v1/licenses/")
		path = strings.Trim(path, "/")

		// /api/v1/licenses/{id}/revoke
		parts := strings.Split(path, "/")
		if len(parts) == 2 && parts[1] == "revoke" && r.Method == http.MethodPost {
			if !claimsFrom(r.Context()).isAdmin() {
				http.Error(w, "Forbidden", http.StatusForbidden)
				return
			}
			licenseRevokeHandler(s.licenseUC, parts[0])(w, r)
			return
		}
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	})
}
