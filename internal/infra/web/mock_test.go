package web

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"softcontrol-backoffice/internal/domain"
	"softcontrol-backoffice/internal/domain/model"
	"softcontrol-backoffice/internal/domain/ports/adapter"
	"softcontrol-backoffice/internal/domain/ports/repository"

	"github.com/jackc/pgx/v4"
	"github.com/rs/zerolog"
)

func newTestLogger() *zerolog.Logger {
	l := zerolog.New(io.Discard)
	return &l
}

var errTest = errors.New("database error")

// --- Mock Repositories (Ports) ---

type mockCustomerRepo struct {
	repository.CustomerRepository // Embed interface for forward compatibility
	mu                            sync.Mutex
	customers                     []*model.Customer
	FindByEmailError              error
	ListError                     error
}

func (m *mockCustomerRepo) FindByEmail(ctx context.Context, tx repository.Tx, email string) (*model.Customer, error) {
	if m.FindByEmailError != nil {
		return nil, m.FindByEmailError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.customers {
		if c.Email == email {
			return c, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockCustomerRepo) List(ctx context.Context, tx repository.Tx, offset, limit int) ([]*model.Customer, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if offset >= len(m.customers) {
		return []*model.Customer{}, nil
	}
	end := offset + limit
	if end > len(m.customers) {
		end = len(m.customers)
	}
	return m.customers[offset:end], nil
}

func (m *mockCustomerRepo) FindByAuthUserID(ctx context.Context, tx repository.Tx, authUserID string) (*model.Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.customers {
		if c.AuthUserID != nil && *c.AuthUserID == authUserID {
			return c, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockCustomerRepo) Insert(ctx context.Context, tx repository.Tx, c *model.Customer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.customers = append(m.customers, c)
	return nil
}

func (m *mockCustomerRepo) Count(ctx context.Context, tx repository.Tx) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.customers), nil
}

func (m *mockCustomerRepo) CountCreatedSince(ctx context.Context, tx repository.Tx, since time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.customers {
		if !c.CreatedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

type mockSubscriptionRepo struct {
	repository.SubscriptionRepository // Embed interface
	mu                                sync.Mutex
	subs                              []*model.Subscription
	FailedCustomers                   []string
}

func (m *mockSubscriptionRepo) Save(ctx context.Context, tx repository.Tx, s *model.Subscription) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, existing := range m.subs {
		if existing.ID == s.ID {
			m.subs[i] = s
			return nil
		}
	}
	m.subs = append(m.subs, s)
	return nil
}

func (m *mockSubscriptionRepo) FindLatestPendingByCustomer(ctx context.Context, tx repository.Tx, customerID string) (*model.Subscription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var latest *model.Subscription
	for _, s := range m.subs {
		if s.CustomerID != customerID || s.Status != model.SubscriptionStatusPending {
			continue
		}
		if latest == nil || s.CreatedAt.After(latest.CreatedAt) {
			latest = s
		}
	}
	if latest == nil {
		return nil, domain.ErrNotFound
	}
	return latest, nil
}

func (m *mockSubscriptionRepo) MarkPendingPaymentFailed(ctx context.Context, tx repository.Tx, customerID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FailedCustomers = append(m.FailedCustomers, customerID)
	n := 0
	for _, s := range m.subs {
		if s.CustomerID == customerID && s.Status == model.SubscriptionStatusPending {
			s.PaymentStatus = model.PaymentStatusFailed
			n++
		}
	}
	return n, nil
}

func (m *mockSubscriptionRepo) CountByStatus(ctx context.Context, tx repository.Tx) (map[model.SubscriptionStatus]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	counts := make(map[model.SubscriptionStatus]int)
	for _, s := range m.subs {
		counts[s.Status]++
	}
	return counts, nil
}

type mockLicenseRepo struct {
	repository.LicenseRepository // Embed interface
	mu                           sync.Mutex
	licenses                     []*model.License
}

func (m *mockLicenseRepo) Save(ctx context.Context, tx repository.Tx, l *model.License) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, existing := range m.licenses {
		if existing.ID == l.ID {
			m.licenses[i] = l
			return nil
		}
	}
	m.licenses = append(m.licenses, l)
	return nil
}

func (m *mockLicenseRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.License, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, l := range m.licenses {
		if l.ID == id {
			return l, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockLicenseRepo) FindByKey(ctx context.Context, tx repository.Tx, key string) (*model.License, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, l := range m.licenses {
		if l.LicenseKey == key {
			return l, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockLicenseRepo) FindInactiveBySubscription(ctx context.Context, tx repository.Tx, subscriptionID string) (*model.License, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, l := range m.licenses {
		if l.SubscriptionID != nil && *l.SubscriptionID == subscriptionID && l.Status == model.LicenseStatusInactive {
			return l, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockLicenseRepo) CountActive(ctx context.Context, tx repository.Tx) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, l := range m.licenses {
		if l.Status == model.LicenseStatusActive {
			n++
		}
	}
	return n, nil
}

type mockSaleRepo struct {
	repository.SaleRepository // Embed interface
	mu                        sync.Mutex
	sales                     []*model.Sale
	SumRevenueError           error
}

func (m *mockSaleRepo) Insert(ctx context.Context, tx repository.Tx, s *model.Sale) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sales = append(m.sales, s)
	return nil
}

func (m *mockSaleRepo) Update(ctx context.Context, tx repository.Tx, s *model.Sale) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, existing := range m.sales {
		if existing.ID == s.ID {
			m.sales[i] = s
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *mockSaleRepo) FindPendingBySubscription(ctx context.Context, tx repository.Tx, subscriptionID string) (*model.Sale, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.sales {
		if s.SubscriptionID != nil && *s.SubscriptionID == subscriptionID && s.PaymentStatus == model.PaymentStatusPending {
			return s, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockSaleRepo) ListRecentPaid(ctx context.Context, tx repository.Tx, limit int) ([]*model.Sale, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var paid []*model.Sale
	for _, s := range m.sales {
		if s.PaymentStatus == model.PaymentStatusPaid {
			paid = append(paid, s)
		}
	}
	if len(paid) > limit {
		paid = paid[:limit]
	}
	return paid, nil
}

func (m *mockSaleRepo) SumRevenue(ctx context.Context, tx repository.Tx, status model.PaymentStatus, since time.Time) (float64, error) {
	if m.SumRevenueError != nil {
		return 0, m.SumRevenueError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var sum float64
	for _, s := range m.sales {
		if s.PaymentStatus == status && (since.IsZero() || !s.SaleDate.Before(since)) {
			sum += s.Amount
		}
	}
	return sum, nil
}

func (m *mockSaleRepo) CountSince(ctx context.Context, tx repository.Tx, status model.PaymentStatus, since time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, s := range m.sales {
		if s.PaymentStatus == status && (since.IsZero() || !s.SaleDate.Before(since)) {
			n++
		}
	}
	return n, nil
}

type mockProfileRepo struct {
	repository.ProfileRepository // Embed interface
	mu                           sync.Mutex
	profiles                     []*model.Profile
}

func (m *mockProfileRepo) FindByID(ctx context.Context, tx repository.Tx, subjectID string) (*model.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.profiles {
		if p.ID == subjectID {
			return p, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockProfileRepo) FindByEmail(ctx context.Context, tx repository.Tx, email string) (*model.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.profiles {
		if p.Email == email {
			return p, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockProfileRepo) Upsert(ctx context.Context, tx repository.Tx, p *model.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, existing := range m.profiles {
		if existing.ID == p.ID {
			m.profiles[i] = p
			return nil
		}
	}
	m.profiles = append(m.profiles, p)
	return nil
}

func (m *mockProfileRepo) List(ctx context.Context, tx repository.Tx) ([]*model.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*model.Profile{}, m.profiles...), nil
}

type mockGoalRepo struct {
	repository.GoalRepository // Embed interface
	mu                        sync.Mutex
	goals                     []*model.Goal
}

func (m *mockGoalRepo) Save(ctx context.Context, tx repository.Tx, g *model.Goal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, existing := range m.goals {
		if existing.ID == g.ID {
			m.goals[i] = g
			return nil
		}
	}
	m.goals = append(m.goals, g)
	return nil
}

func (m *mockGoalRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Goal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, g := range m.goals {
		if g.ID == id {
			return g, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockGoalRepo) List(ctx context.Context, tx repository.Tx) ([]*model.Goal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*model.Goal{}, m.goals...), nil
}

type mockProductRepo struct {
	repository.ProductRepository // Embed interface
	mu                           sync.Mutex
	products                     []*model.Product
}

func (m *mockProductRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.products {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, domain.ErrNotFound
}

type mockTxManager struct{}

func (m *mockTxManager) WithTx(ctx context.Context, opts pgx.TxOptions, fn func(ctx context.Context, tx repository.Tx) error) error {
	return fn(ctx, repository.NoTX)
}

// --- Mock Identity Provider ---

type mockIdentity struct {
	mu          sync.Mutex
	users       map[string]*adapter.IdentityUser // keyed by email
	SignInError error
}

func (m *mockIdentity) SignIn(ctx context.Context, email, password string) (*adapter.Session, error) {
	if m.SignInError != nil {
		return nil, m.SignInError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[email]; ok {
		return &adapter.Session{SubjectID: u.ID, Email: u.Email, Metadata: u.Metadata}, nil
	}
	return nil, domain.ErrNotFound
}

func (m *mockIdentity) SignOut(ctx context.Context, subjectID string) error { return nil }

func (m *mockIdentity) GetUser(ctx context.Context, subjectID string) (*adapter.IdentityUser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.ID == subjectID {
			return u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockIdentity) FindUserByEmail(ctx context.Context, email string) (*adapter.IdentityUser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[email]; ok {
		return u, nil
	}
	return nil, domain.ErrNotFound
}

func (m *mockIdentity) CreateUser(ctx context.Context, p adapter.CreateUserParams) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.users == nil {
		m.users = make(map[string]*adapter.IdentityUser)
	}
	u := &adapter.IdentityUser{ID: "idp-" + p.Email, Email: p.Email, Metadata: p.Metadata}
	m.users[p.Email] = u
	return u.ID, nil
}
