package web

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"softcontrol-backoffice/internal/domain"
	"softcontrol-backoffice/internal/domain/model"
	"softcontrol-backoffice/internal/domain/ports/adapter"
	"softcontrol-backoffice/internal/infra/logging"
	"softcontrol-backoffice/internal/infra/metrics"
	"softcontrol-backoffice/internal/usecase"

	"github.com/rs/zerolog"
)

type ctxKey string

const claimsKey ctxKey = "staff_claims"

func withClaims(ctx context.Context, c *StaffClaims) context.Context {
	return context.WithValue(ctx, claimsKey, c)
}

func claimsFrom(ctx context.Context) *StaffClaims {
	c, _ := ctx.Value(claimsKey).(*StaffClaims)
	return c
}

func (c *StaffClaims) isAdmin() bool {
	if c == nil {
		return false
	}
	role := model.Role(c.Role)
	return role == model.RoleAdmin || role == model.RoleSuperAdmin
}

func (c *StaffClaims) role() model.Role {
	if c == nil {
		return ""
	}
	return model.Role(c.Role)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// webhookHandler terminates payment provider callbacks. Only a malformed
// body is rejected; once the event parses the delivery is acknowledged no
// matter what the pipeline made of it, so the provider stops retrying.
func webhookHandler(reconUC usecase.ReconcileUseCase, logger *zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			writeJSON(w, http.StatusOK, map[string]string{
				"status":   "ok",
				"endpoint": "stripe-webhook",
			})
		case http.MethodPost:
			body, err := io.ReadAll(r.Body)
			if err != nil {
				http.Error(w, "Failed to read body", http.StatusBadRequest)
				return
			}
			ev, err := model.ParsePaymentEvent(body)
			if err != nil {
				metrics.IncWebhookRejected("invalid_json")
				writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
				return
			}

			ctx := logging.WithEventID(r.Context(), ev.ID)
			if err := reconUC.HandleEvent(ctx, ev); err != nil {
				l := logging.With(ctx, logger)
				l.Error().Err(err).Str("type", ev.Type).Msg("webhook event handling failed")
			}
			writeJSON(w, http.StatusOK, map[string]bool{"received": true})
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// loginHandler exchanges provider credentials for a staff session cookie.
// Customers authenticate fine against the provider but never get a session
// here; the back office is staff only.
func loginHandler(identity adapter.IdentityProvider, authUC usecase.AuthUseCase, auth *AuthManager, logger *zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		ctx := r.Context()

		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if req.Email == "" || req.Password == "" {
			http.Error(w, "Email and password are required", http.StatusBadRequest)
			return
		}

		session, err := identity.SignIn(ctx, req.Email, req.Password)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				http.Error(w, "Invalid credentials", http.StatusUnauthorized)
				return
			}
			http.Error(w, "Sign-in failed", http.StatusInternalServerError)
			return
		}

		user, err := authUC.Resolve(ctx, *session)
		if err != nil {
			http.Error(w, "Failed to resolve identity", http.StatusInternalServerError)
			return
		}
		if !user.IsStaff() {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}

		token, err := auth.Mint(w, user.Profile)
		if err != nil {
			l := logging.With(ctx, logger)
			l.Error().Err(err).Msg("failed to mint session token")
			http.Error(w, "Failed to start session", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, struct {
			Token    string `json:"token"`
			Role     string `json:"role"`
			FullName string `json:"full_name"`
		}{
			Token:    token,
			Role:     string(user.Profile.Role),
			FullName: user.Profile.FullName,
		})
	}
}

func logoutHandler(identity adapter.IdentityProvider, auth *AuthManager, logger *zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if claims, err := auth.ParseFromRequest(r); err == nil {
			// Provider-side revocation is best effort; the cookie dies
			// either way.
			if err := identity.SignOut(r.Context(), claims.Subject); err != nil {
				l := logging.With(r.Context(), logger)
				l.Warn().Err(err).Msg("provider sign-out failed")
			}
		}
		auth.Clear(w)
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	}
}

type staffCreateRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
}

func staffCreateHandler(staffUC usecase.StaffUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req staffCreateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		res, err := staffUC.CreateStaff(ctx, claimsFrom(ctx).role(), usecase.CreateStaffInput{
			Email:    req.Email,
			Password: req.Password,
			FullName: req.FullName,
			Phone:    req.Phone,
			Role:     model.Role(req.Role),
		})
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrEmailTaken):
				http.Error(w, "A staff account with this email already exists", http.StatusBadRequest)
			case errors.Is(err, domain.ErrWeakPassword):
				http.Error(w, "Password must be at least 6 characters", http.StatusBadRequest)
			case errors.Is(err, domain.ErrInvalidArgument):
				http.Error(w, "Email, password, full name and a valid role are required", http.StatusBadRequest)
			case errors.Is(err, domain.ErrPermissionDenied):
				http.Error(w, "Forbidden", http.StatusForbidden)
			default:
				http.Error(w, "Failed to create staff account", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusCreated, struct {
			UserID  string `json:"user_id"`
			Warning string `json:"warning,omitempty"`
		}{
			UserID:  res.UserID,
			Warning: res.Warning,
		})
	}
}

type staffResponse struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
	IsActive bool   `json:"is_active"`
}

func staffListHandler(staffUC usecase.StaffUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profiles, err := staffUC.List(r.Context())
		if err != nil {
			http.Error(w, "Failed to list staff", http.StatusInternalServerError)
			return
		}

		data := make([]staffResponse, 0, len(profiles))
		for _, p := range profiles {
			data = append(data, staffResponse{
				ID:       p.ID,
				FullName: p.FullName,
				Email:    p.Email,
				Phone:    p.Phone,
				Role:     string(p.Role),
				IsActive: p.IsActive,
			})
		}
		writeJSON(w, http.StatusOK, struct {
			Data []staffResponse `json:"data"`
		}{Data: data})
	}
}

func staffRoleHandler(staffUC usecase.StaffUseCase, id string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Role string `json:"role"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		err := staffUC.UpdateRole(r.Context(), claimsFrom(r.Context()).role(), id, model.Role(req.Role))
		writeStaffMutationResult(w, err)
	}
}

func staffActiveHandler(staffUC usecase.StaffUseCase, id string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Active bool `json:"active"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		err := staffUC.SetActive(r.Context(), claimsFrom(r.Context()).role(), id, req.Active)
		writeStaffMutationResult(w, err)
	}
}

func staffDeleteHandler(staffUC usecase.StaffUseCase, id string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := staffUC.DeleteStaff(r.Context(), claimsFrom(r.Context()).role(), id)
		writeStaffMutationResult(w, err)
	}
}

func writeStaffMutationResult(w http.ResponseWriter, err error) {
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	case errors.Is(err, domain.ErrNotFound):
		http.Error(w, "Staff account not found", http.StatusNotFound)
	case errors.Is(err, domain.ErrInvalidArgument):
		http.Error(w, "Invalid request", http.StatusBadRequest)
	case errors.Is(err, domain.ErrPermissionDenied):
		http.Error(w, "Forbidden", http.StatusForbidden)
	default:
		http.Error(w, "Failed to update staff account", http.StatusInternalServerError)
	}
}

// statsHandler serves the dashboard: headline aggregates plus the recent
// activity feeds in one response.
func statsHandler(statsUC usecase.StatsUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

		stats, err := statsUC.Dashboard(ctx)
		if err != nil {
			http.Error(w, "Failed to get dashboard stats", http.StatusInternalServerError)
			return
		}
		sales, err := statsUC.RecentSales(ctx, limit)
		if err != nil {
			http.Error(w, "Failed to get recent sales", http.StatusInternalServerError)
			return
		}
		customers, err := statsUC.RecentCustomers(ctx, limit)
		if err != nil {
			http.Error(w, "Failed to get recent customers", http.StatusInternalServerError)
			return
		}

		type saleResponse struct {
			ID         string    `json:"id"`
			CustomerID string    `json:"customer_id"`
			Amount     float64   `json:"amount"`
			Currency   string    `json:"currency"`
			Status     string    `json:"payment_status"`
			SaleDate   time.Time `json:"sale_date"`
		}
		type customerResponse struct {
			ID        string    `json:"id"`
			Email     string    `json:"email"`
			FullName  string    `json:"full_name"`
			Company   string    `json:"company_name"`
			CreatedAt time.Time `json:"created_at"`
		}

		recentSales := make([]saleResponse, 0, len(sales))
		for _, s := range sales {
			recentSales = append(recentSales, saleResponse{
				ID:         s.ID,
				CustomerID: s.CustomerID,
				Amount:     s.Amount,
				Currency:   s.Currency,
				Status:     string(s.PaymentStatus),
				SaleDate:   s.SaleDate,
			})
		}
		recentCustomers := make([]customerResponse, 0, len(customers))
		for _, c := range customers {
			recentCustomers = append(recentCustomers, customerResponse{
				ID:        c.ID,
				Email:     c.Email,
				FullName:  c.FullName,
				Company:   c.CompanyName,
				CreatedAt: c.CreatedAt,
			})
		}

		writeJSON(w, http.StatusOK, struct {
			Stats           *model.DashboardStats `json:"stats"`
			RecentSales     []saleResponse        `json:"recent_sales"`
			RecentCustomers []customerResponse    `json:"recent_customers"`
		}{
			Stats:           stats,
			RecentSales:     recentSales,
			RecentCustomers: recentCustomers,
		})
	}
}

type goalRequest struct {
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	GoalType      string    `json:"goal_type"`
	Unit          string    `json:"unit"`
	TargetValue   float64   `json:"target_value"`
	StartDate     time.Time `json:"start_date"`
	EndDate       time.Time `json:"end_date"`
	AutoCalculate bool      `json:"auto_calculate"`
	Priority      string    `json:"priority"`
	Status        string    `json:"status"`
}

type goalResponse struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	GoalType        string    `json:"goal_type"`
	Unit            string    `json:"unit"`
	TargetValue     float64   `json:"target_value"`
	CurrentValue    float64   `json:"current_value"`
	StartDate       time.Time `json:"start_date"`
	EndDate         time.Time `json:"end_date"`
	Status          string    `json:"status"`
	AutoCalculate   bool      `json:"auto_calculate"`
	Priority        string    `json:"priority"`
	ProgressPercent float64   `json:"progress_percent"`
	ProgressStatus  string    `json:"progress_status"`
}

func toGoalResponse(g *model.Goal) goalResponse {
	return goalResponse{
		ID:              g.ID,
		Title:           g.Title,
		Description:     g.Description,
		GoalType:        string(g.Type),
		Unit:            g.Unit,
		TargetValue:     g.TargetValue,
		CurrentValue:    g.CurrentValue,
		StartDate:       g.StartDate,
		EndDate:         g.EndDate,
		Status:          string(g.Status),
		AutoCalculate:   g.AutoCalculate,
		Priority:        g.Priority,
		ProgressPercent: g.ProgressPercent(),
		ProgressStatus:  g.ProgressStatus(time.Now()),
	}
}

func goalsListHandler(goalUC usecase.GoalUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		goals, err := goalUC.List(r.Context())
		if err != nil {
			http.Error(w, "Failed to list goals", http.StatusInternalServerError)
			return
		}
		data := make([]goalResponse, 0, len(goals))
		for _, g := range goals {
			data = append(data, toGoalResponse(g))
		}
		writeJSON(w, http.StatusOK, struct {
			Data []goalResponse `json:"data"`
		}{Data: data})
	}
}

func goalsCreateHandler(goalUC usecase.GoalUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req goalRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		goal, err := model.NewGoal(req.Title, model.GoalType(req.GoalType), req.TargetValue, req.StartDate, req.EndDate)
		if err != nil {
			http.Error(w, "Title, a positive target and a valid date range are required", http.StatusBadRequest)
			return
		}
		goal.Description = req.Description
		goal.Unit = req.Unit
		goal.AutoCalculate = req.AutoCalculate
		if req.Priority != "" {
			goal.Priority = req.Priority
		}
		if claims := claimsFrom(ctx); claims != nil {
			creator := claims.Subject
			goal.CreatedBy = &creator
		}

		if err := goalUC.Create(ctx, goal); err != nil {
			http.Error(w, "Failed to create goal", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusCreated, toGoalResponse(goal))
	}
}

func goalsGetHandler(goalUC usecase.GoalUseCase, id string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		goal, err := goalUC.Get(r.Context(), id)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				http.NotFound(w, r)
				return
			}
			http.Error(w, "Failed to get goal", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, toGoalResponse(goal))
	}
}

func goalsUpdateHandler(goalUC usecase.GoalUseCase, id string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		goal, err := goalUC.Get(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				http.NotFound(w, r)
				return
			}
			http.Error(w, "Failed to get goal", http.StatusInternalServerError)
			return
		}

		var req goalRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		goal.Title = req.Title
		goal.Description = req.Description
		goal.Type = model.GoalType(req.GoalType)
		goal.Unit = req.Unit
		goal.TargetValue = req.TargetValue
		goal.StartDate = req.StartDate
		goal.EndDate = req.EndDate
		goal.AutoCalculate = req.AutoCalculate
		if req.Priority != "" {
			goal.Priority = req.Priority
		}
		if req.Status != "" {
			goal.Status = model.GoalStatus(req.Status)
		}

		if err := goalUC.Update(ctx, goal); err != nil {
			if errors.Is(err, domain.ErrInvalidArgument) {
				http.Error(w, "Invalid goal", http.StatusBadRequest)
				return
			}
			http.Error(w, "Failed to update goal", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, toGoalResponse(goal))
	}
}

func goalsDeleteHandler(goalUC usecase.GoalUseCase, id string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := goalUC.Delete(r.Context(), id); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				http.NotFound(w, r)
				return
			}
			http.Error(w, "Failed to delete goal", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	}
}

type subscriptionResponse struct {
	ID            string     `json:"id"`
	CustomerID    string     `json:"customer_id"`
	ProductID     string     `json:"product_id"`
	Type          string     `json:"subscription_type"`
	Status        string     `json:"status"`
	PaymentStatus string     `json:"payment_status"`
	Amount        float64    `json:"amount"`
	Currency      string     `json:"currency"`
	StartDate     *time.Time `json:"start_date,omitempty"`
	EndDate       *time.Time `json:"end_date,omitempty"`
	TrialEndsAt   *time.Time `json:"trial_ends_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

func toSubscriptionResponse(s *model.Subscription) subscriptionResponse {
	return subscriptionResponse{
		ID:            s.ID,
		CustomerID:    s.CustomerID,
		ProductID:     s.ProductID,
		Type:          string(s.SubscriptionType),
		Status:        string(s.Status),
		PaymentStatus: string(s.PaymentStatus),
		Amount:        s.Amount,
		Currency:      s.Currency,
		StartDate:     s.StartDate,
		EndDate:       s.EndDate,
		TrialEndsAt:   s.TrialEndsAt,
		CreatedAt:     s.CreatedAt,
	}
}

// subscriptionsListHandler serves staff lookups: by customer, by trial
// state, or by upcoming expiry.
func subscriptionsListHandler(subUC usecase.SubscriptionUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		q := r.URL.Query()

		var (
			subs []*model.Subscription
			err  error
		)
		switch {
		case q.Get("customer_id") != "":
			subs, err = subUC.ListByCustomer(ctx, q.Get("customer_id"))
		case q.Get("trials") != "":
			subs, err = subUC.ListTrials(ctx, q.Get("trials") == "expired")
		case q.Get("expiring_days") != "":
			days, convErr := strconv.Atoi(q.Get("expiring_days"))
			if convErr != nil || days <= 0 {
				http.Error(w, "expiring_days must be a positive number", http.StatusBadRequest)
				return
			}
			subs, err = subUC.ListExpiring(ctx, time.Duration(days)*24*time.Hour)
		default:
			http.Error(w, "One of customer_id, trials or expiring_days is required", http.StatusBadRequest)
			return
		}
		if err != nil {
			http.Error(w, "Failed to list subscriptions", http.StatusInternalServerError)
			return
		}

		data := make([]subscriptionResponse, 0, len(subs))
		for _, sub := range subs {
			data = append(data, toSubscriptionResponse(sub))
		}
		writeJSON(w, http.StatusOK, struct {
			Data []subscriptionResponse `json:"data"`
		}{Data: data})
	}
}

func subscriptionCheckoutHandler(subUC usecase.SubscriptionUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			CustomerID string `json:"customer_id"`
			ProductID  string `json:"product_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		sub, lic, err := subUC.Checkout(r.Context(), req.CustomerID, req.ProductID)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrNotFound):
				http.Error(w, "Unknown product", http.StatusNotFound)
			case errors.Is(err, domain.ErrInvalidArgument):
				http.Error(w, "customer_id and an active product_id are required", http.StatusBadRequest)
			default:
				http.Error(w, "Failed to open subscription", http.StatusInternalServerError)
			}
			return
		}

		resp := struct {
			Subscription subscriptionResponse `json:"subscription"`
			LicenseKey   string               `json:"license_key,omitempty"`
		}{Subscription: toSubscriptionResponse(sub)}
		if lic != nil {
			resp.LicenseKey = lic.LicenseKey
		}
		writeJSON(w, http.StatusCreated, resp)
	}
}

func subscriptionGetHandler(subUC usecase.SubscriptionUseCase, id string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sub, err := subUC.Get(r.Context(), id)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				http.NotFound(w, r)
				return
			}
			http.Error(w, "Failed to get subscription", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, toSubscriptionResponse(sub))
	}
}

func subscriptionCancelHandler(subUC usecase.SubscriptionUseCase, id string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := subUC.Cancel(r.Context(), id); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				http.Error(w, "Subscription not found", http.StatusNotFound)
				return
			}
			http.Error(w, "Failed to cancel subscription", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	}
}

func licenseActivateHandler(licenseUC usecase.LicenseUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req struct {
			LicenseKey string `json:"license_key"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.LicenseKey == "" {
			http.Error(w, "A license key is required", http.StatusBadRequest)
			return
		}

		lic, err := licenseUC.ActivateKey(r.Context(), req.LicenseKey)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrNotFound):
				http.Error(w, "Unknown license key", http.StatusNotFound)
			case errors.Is(err, domain.ErrLicenseNotUsable):
				http.Error(w, "License is not active", http.StatusForbidden)
			case errors.Is(err, domain.ErrActivationExceeded):
				http.Error(w, "Activation limit reached", http.StatusForbidden)
			default:
				http.Error(w, "Failed to activate license", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, struct {
			LicenseKey         string `json:"license_key"`
			Status             string `json:"status"`
			CurrentActivations int    `json:"current_activations"`
			MaxActivations     int    `json:"max_activations"`
		}{
			LicenseKey:         lic.LicenseKey,
			Status:             string(lic.Status),
			CurrentActivations: lic.CurrentActivations,
			MaxActivations:     lic.MaxActivations,
		})
	}
}

func licenseRevokeHandler(licenseUC usecase.LicenseUseCase, id string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := licenseUC.Revoke(r.Context(), id); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				http.Error(w, "License not found", http.StatusNotFound)
				return
			}
			http.Error(w, "Failed to revoke license", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	}
}
