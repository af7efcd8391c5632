//go:build !integration

package usecase_test

import (
	"context"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/rs/zerolog"

	"softcontrol-backoffice/internal/domain"
	"softcontrol-backoffice/internal/domain/model"
	"softcontrol-backoffice/internal/domain/ports/adapter"
	"softcontrol-backoffice/internal/domain/ports/repository"
)

// =============================
// Repositories
// =============================

// ---- Mock ProfileRepository ----

type MockProfileRepo struct {
	mu    sync.RWMutex
	store map[string]*model.Profile

	FindByIDFunc    func(ctx context.Context, tx repository.Tx, subjectID string) (*model.Profile, error)
	FindByEmailFunc func(ctx context.Context, tx repository.Tx, email string) (*model.Profile, error)
	UpsertFunc      func(ctx context.Context, tx repository.Tx, p *model.Profile) error
}

var _ repository.ProfileRepository = (*MockProfileRepo)(nil)

func NewMockProfileRepo() *MockProfileRepo {
	return &MockProfileRepo{store: make(map[string]*model.Profile)}
}

func (m *MockProfileRepo) FindByID(ctx context.Context, tx repository.Tx, subjectID string) (*model.Profile, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, tx, subjectID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.store[subjectID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *MockProfileRepo) FindByEmail(ctx context.Context, tx repository.Tx, email string) (*model.Profile, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, tx, email)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.store {
		if p.Email == email {
			cp := *p
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *MockProfileRepo) Upsert(ctx context.Context, tx repository.Tx, p *model.Profile) error {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, tx, p)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *p
	m.store[p.ID] = &cp
	return nil
}

func (m *MockProfileRepo) List(ctx context.Context, tx repository.Tx) ([]*model.Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*model.Profile, 0, len(m.store))
	for _, p := range m.store {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (m *MockProfileRepo) Delete(ctx context.Context, tx repository.Tx, subjectID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.store, subjectID)
	return nil
}

// ---- Mock CustomerRepository ----

type MockCustomerRepo struct {
	mu    sync.RWMutex
	store map[string]*model.Customer

	FindByEmailFunc func(ctx context.Context, tx repository.Tx, email string) (*model.Customer, error)
	InsertFunc      func(ctx context.Context, tx repository.Tx, c *model.Customer) error
}

var _ repository.CustomerRepository = (*MockCustomerRepo)(nil)

func NewMockCustomerRepo() *MockCustomerRepo {
	return &MockCustomerRepo{store: make(map[string]*model.Customer)}
}

func (m *MockCustomerRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Customer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.store[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *MockCustomerRepo) FindByEmail(ctx context.Context, tx repository.Tx, email string) (*model.Customer, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, tx, email)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, c := range m.store {
		if c.Email == email {
			cp := *c
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *MockCustomerRepo) FindByAuthUserID(ctx context.Context, tx repository.Tx, authUserID string) (*model.Customer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, c := range m.store {
		if c.AuthUserID != nil && *c.AuthUserID == authUserID {
			cp := *c
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *MockCustomerRepo) Insert(ctx context.Context, tx repository.Tx, c *model.Customer) error {
	if m.InsertFunc != nil {
		return m.InsertFunc(ctx, tx, c)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *c
	m.store[c.ID] = &cp
	return nil
}

func (m *MockCustomerRepo) Update(ctx context.Context, tx repository.Tx, c *model.Customer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *c
	m.store[c.ID] = &cp
	return nil
}

func (m *MockCustomerRepo) List(ctx context.Context, tx repository.Tx, offset, limit int) ([]*model.Customer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*model.Customer, 0, len(m.store))
	for _, c := range m.store {
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (m *MockCustomerRepo) Count(ctx context.Context, tx repository.Tx) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.store), nil
}

func (m *MockCustomerRepo) CountCreatedSince(ctx context.Context, tx repository.Tx, since time.Time) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	cnt := 0
	for _, c := range m.store {
		if !c.CreatedAt.Before(since) {
			cnt++
		}
	}
	return cnt, nil
}

func (m *MockCustomerRepo) Delete(ctx context.Context, tx repository.Tx, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.store, id)
	return nil
}

// ---- Mock SubscriptionRepository ----

type MockSubscriptionRepo struct {
	mu    sync.RWMutex
	store map[string]*model.Subscription

	SaveFunc                        func(ctx context.Context, tx repository.Tx, s *model.Subscription) error
	FindLatestPendingByCustomerFunc func(ctx context.Context, tx repository.Tx, customerID string) (*model.Subscription, error)
}

var _ repository.SubscriptionRepository = (*MockSubscriptionRepo)(nil)

func NewMockSubscriptionRepo() *MockSubscriptionRepo {
	return &MockSubscriptionRepo{store: make(map[string]*model.Subscription)}
}

func (m *MockSubscriptionRepo) Save(ctx context.Context, tx repository.Tx, s *model.Subscription) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, tx, s)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *s
	m.store[s.ID] = &cp
	return nil
}

func (m *MockSubscriptionRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Subscription, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.store[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (m *MockSubscriptionRepo) FindLatestPendingByCustomer(ctx context.Context, tx repository.Tx, customerID string) (*model.Subscription, error) {
	if m.FindLatestPendingByCustomerFunc != nil {
		return m.FindLatestPendingByCustomerFunc(ctx, tx, customerID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var latest *model.Subscription
	for _, s := range m.store {
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
	cp := *latest
	return &cp, nil
}

func (m *MockSubscriptionRepo) MarkPendingPaymentFailed(ctx context.Context, tx repository.Tx, customerID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, s := range m.store {
		if s.CustomerID == customerID && s.Status == model.SubscriptionStatusPending {
			s.PaymentStatus = model.PaymentStatusFailed
			n++
		}
	}
	return n, nil
}

func (m *MockSubscriptionRepo) ListByCustomer(ctx context.Context, tx repository.Tx, customerID string) ([]*model.Subscription, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*model.Subscription
	for _, s := range m.store {
		if s.CustomerID == customerID {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *MockSubscriptionRepo) ListTrials(ctx context.Context, tx repository.Tx, now time.Time, expired bool) ([]*model.Subscription, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*model.Subscription
	for _, s := range m.store {
		if s.SubscriptionType != model.SubscriptionTypeTrial || s.TrialEndsAt == nil {
			continue
		}
		if s.IsTrialExpired(now) == expired {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *MockSubscriptionRepo) ListExpiring(ctx context.Context, tx repository.Tx, within time.Duration) ([]*model.Subscription, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	cut := time.Now().Add(within)
	var out []*model.Subscription
	for _, s := range m.store {
		if s.Status == model.SubscriptionStatusActive && s.EndDate != nil && s.EndDate.Before(cut) {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *MockSubscriptionRepo) CountByStatus(ctx context.Context, tx repository.Tx) (map[model.SubscriptionStatus]int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[model.SubscriptionStatus]int)
	for _, s := range m.store {
		out[s.Status]++
	}
	return out, nil
}

func (m *MockSubscriptionRepo) Delete(ctx context.Context, tx repository.Tx, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.store, id)
	return nil
}

// ---- Mock LicenseRepository ----

type MockLicenseRepo struct {
	mu    sync.RWMutex
	store map[string]*model.License

	SaveFunc func(ctx context.Context, tx repository.Tx, l *model.License) error
}

var _ repository.LicenseRepository = (*MockLicenseRepo)(nil)

func NewMockLicenseRepo() *MockLicenseRepo {
	return &MockLicenseRepo{store: make(map[string]*model.License)}
}

func (m *MockLicenseRepo) Save(ctx context.Context, tx repository.Tx, l *model.License) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, tx, l)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *l
	m.store[l.ID] = &cp
	return nil
}

func (m *MockLicenseRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.License, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	l, ok := m.store[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *l
	return &cp, nil
}

func (m *MockLicenseRepo) FindByKey(ctx context.Context, tx repository.Tx, licenseKey string) (*model.License, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, l := range m.store {
		if l.LicenseKey == licenseKey {
			cp := *l
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *MockLicenseRepo) FindInactiveBySubscription(ctx context.Context, tx repository.Tx, subscriptionID string) (*model.License, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, l := range m.store {
		if l.SubscriptionID != nil && *l.SubscriptionID == subscriptionID && l.Status == model.LicenseStatusInactive {
			cp := *l
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *MockLicenseRepo) ListByCustomer(ctx context.Context, tx repository.Tx, customerID string) ([]*model.License, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*model.License
	for _, l := range m.store {
		if l.CustomerID == customerID {
			cp := *l
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *MockLicenseRepo) CountActive(ctx context.Context, tx repository.Tx) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	cnt := 0
	for _, l := range m.store {
		if l.Status == model.LicenseStatusActive {
			cnt++
		}
	}
	return cnt, nil
}

func (m *MockLicenseRepo) Delete(ctx context.Context, tx repository.Tx, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.store, id)
	return nil
}

// ---- Mock SaleRepository ----

type MockSaleRepo struct {
	mu    sync.RWMutex
	store map[string]*model.Sale

	InsertFunc func(ctx context.Context, tx repository.Tx, s *model.Sale) error
	UpdateFunc func(ctx context.Context, tx repository.Tx, s *model.Sale) error
}

var _ repository.SaleRepository = (*MockSaleRepo)(nil)

func NewMockSaleRepo() *MockSaleRepo {
	return &MockSaleRepo{store: make(map[string]*model.Sale)}
}

func (m *MockSaleRepo) Insert(ctx context.Context, tx repository.Tx, s *model.Sale) error {
	if m.InsertFunc != nil {
		return m.InsertFunc(ctx, tx, s)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *s
	m.store[s.ID] = &cp
	return nil
}

func (m *MockSaleRepo) Update(ctx context.Context, tx repository.Tx, s *model.Sale) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, tx, s)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *s
	m.store[s.ID] = &cp
	return nil
}

func (m *MockSaleRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Sale, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.store[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (m *MockSaleRepo) FindPendingBySubscription(ctx context.Context, tx repository.Tx, subscriptionID string) (*model.Sale, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, s := range m.store {
		if s.SubscriptionID != nil && *s.SubscriptionID == subscriptionID && s.PaymentStatus == model.PaymentStatusPending {
			cp := *s
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *MockSaleRepo) ListBySubscription(ctx context.Context, tx repository.Tx, subscriptionID string) ([]*model.Sale, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*model.Sale
	for _, s := range m.store {
		if s.SubscriptionID != nil && *s.SubscriptionID == subscriptionID {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *MockSaleRepo) ListRecentPaid(ctx context.Context, tx repository.Tx, limit int) ([]*model.Sale, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*model.Sale
	for _, s := range m.store {
		if s.PaymentStatus == model.PaymentStatusPaid {
			cp := *s
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SaleDate.After(out[j].SaleDate) })
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (m *MockSaleRepo) SumRevenue(ctx context.Context, tx repository.Tx, status model.PaymentStatus, since time.Time) (float64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var sum float64
	for _, s := range m.store {
		if s.PaymentStatus == status && (since.IsZero() || !s.SaleDate.Before(since)) {
			sum += s.Amount
		}
	}
	return sum, nil
}

func (m *MockSaleRepo) CountSince(ctx context.Context, tx repository.Tx, status model.PaymentStatus, since time.Time) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	cnt := 0
	for _, s := range m.store {
		if s.PaymentStatus == status && (since.IsZero() || !s.SaleDate.Before(since)) {
			cnt++
		}
	}
	return cnt, nil
}

func (m *MockSaleRepo) Delete(ctx context.Context, tx repository.Tx, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.store, id)
	return nil
}

// ---- Mock ProductRepository ----

type MockProductRepo struct {
	mu    sync.RWMutex
	store map[string]*model.Product
}

var _ repository.ProductRepository = (*MockProductRepo)(nil)

func NewMockProductRepo() *MockProductRepo {
	return &MockProductRepo{store: make(map[string]*model.Product)}
}

func (m *MockProductRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.store[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *MockProductRepo) FindBySKU(ctx context.Context, tx repository.Tx, sku string) (*model.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.store {
		if p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *MockProductRepo) ListActive(ctx context.Context, tx repository.Tx) ([]*model.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*model.Product
	for _, p := range m.store {
		if p.IsActive {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *MockProductRepo) Save(ctx context.Context, tx repository.Tx, p *model.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *p
	m.store[p.ID] = &cp
	return nil
}

func (m *MockProductRepo) Delete(ctx context.Context, tx repository.Tx, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.store, id)
	return nil
}

// ---- Mock GoalRepository ----

type MockGoalRepo struct {
	mu    sync.RWMutex
	store map[string]*model.Goal

	SaveFunc func(ctx context.Context, tx repository.Tx, g *model.Goal) error
}

var _ repository.GoalRepository = (*MockGoalRepo)(nil)

func NewMockGoalRepo() *MockGoalRepo {
	return &MockGoalRepo{store: make(map[string]*model.Goal)}
}

func (m *MockGoalRepo) Save(ctx context.Context, tx repository.Tx, g *model.Goal) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, tx, g)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *g
	m.store[g.ID] = &cp
	return nil
}

func (m *MockGoalRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Goal, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	g, ok := m.store[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *g
	return &cp, nil
}

func (m *MockGoalRepo) List(ctx context.Context, tx repository.Tx) ([]*model.Goal, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*model.Goal, 0, len(m.store))
	for _, g := range m.store {
		cp := *g
		out = append(out, &cp)
	}
	return out, nil
}

func (m *MockGoalRepo) ListAutoCalculated(ctx context.Context, tx repository.Tx) ([]*model.Goal, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*model.Goal
	for _, g := range m.store {
		if g.AutoCalculate {
			cp := *g
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *MockGoalRepo) Delete(ctx context.Context, tx repository.Tx, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.store, id)
	return nil
}

// =============================
// Adapters and infra fakes
// =============================

// ---- Mock IdentityProvider ----

type MockIdentity struct {
	mu    sync.Mutex
	users map[string]*adapter.IdentityUser // by email

	CreateUserFunc      func(ctx context.Context, p adapter.CreateUserParams) (string, error)
	FindUserByEmailFunc func(ctx context.Context, email string) (*adapter.IdentityUser, error)
}

var _ adapter.IdentityProvider = (*MockIdentity)(nil)

func NewMockIdentity() *MockIdentity {
	return &MockIdentity{users: make(map[string]*adapter.IdentityUser)}
}

func (m *MockIdentity) SignIn(ctx context.Context, email, password string) (*adapter.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[email]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &adapter.Session{SubjectID: u.ID, Email: u.Email, Metadata: u.Metadata}, nil
}

func (m *MockIdentity) SignOut(ctx context.Context, subjectID string) error { return nil }

func (m *MockIdentity) GetUser(ctx context.Context, subjectID string) (*adapter.IdentityUser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.ID == subjectID {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *MockIdentity) FindUserByEmail(ctx context.Context, email string) (*adapter.IdentityUser, error) {
	if m.FindUserByEmailFunc != nil {
		return m.FindUserByEmailFunc(ctx, email)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[email]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *MockIdentity) CreateUser(ctx context.Context, p adapter.CreateUserParams) (string, error) {
	if m.CreateUserFunc != nil {
		return m.CreateUserFunc(ctx, p)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[p.Email]; ok {
		return "", domain.ErrAlreadyExists
	}
	id := "idp-" + p.Email
	m.users[p.Email] = &adapter.IdentityUser{ID: id, Email: p.Email, Metadata: p.Metadata}
	return id, nil
}

// ---- Mock EventLedger ----

type MockLedger struct {
	mu   sync.Mutex
	seen map[string]bool
	Err  error
}

var _ repository.EventLedger = (*MockLedger)(nil)

func NewMockLedger() *MockLedger {
	return &MockLedger{seen: make(map[string]bool)}
}

func (m *MockLedger) FirstSeen(ctx context.Context, eventID string, ttl time.Duration) (bool, error) {
	if m.Err != nil {
		return false, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.seen[eventID] {
		return false, nil
	}
	m.seen[eventID] = true
	return true, nil
}

// ---- Mock PaymentProcessor ----

type MockProcessor struct {
	Calls              int
	ProcessPaymentFunc func(ctx context.Context, customerEmail, customerName, productSKU, providerPaymentID string) error
}

var _ repository.PaymentProcessor = (*MockProcessor)(nil)

func (m *MockProcessor) ProcessPayment(ctx context.Context, customerEmail, customerName, productSKU, providerPaymentID string) error {
	m.Calls++
	if m.ProcessPaymentFunc != nil {
		return m.ProcessPaymentFunc(ctx, customerEmail, customerName, productSKU, providerPaymentID)
	}
	return nil
}

// ---- Mock StatsCache ----

type MockStatsCache struct {
	mu     sync.Mutex
	cached *model.DashboardStats
	Sets   int
}

var _ repository.StatsCache = (*MockStatsCache)(nil)

func (m *MockStatsCache) GetDashboard(ctx context.Context) (*model.DashboardStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cached == nil {
		return nil, domain.ErrNotFound
	}
	cp := *m.cached
	return &cp, nil
}

func (m *MockStatsCache) SetDashboard(ctx context.Context, stats *model.DashboardStats) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *stats
	m.cached = &cp
	m.Sets++
	return nil
}

// ---- Mock TransactionManager ----

type MockTxManager struct {
	WithTxFunc func(ctx context.Context, txOpt pgx.TxOptions, fn func(ctx context.Context, tx repository.Tx) error) error
}

var _ repository.TransactionManager = (*MockTxManager)(nil)

func NewMockTxManager() *MockTxManager {
	return &MockTxManager{}
}

// WithTx runs the function immediately without a real transaction unless a
// test installs its own WithTxFunc.
func (m *MockTxManager) WithTx(ctx context.Context, txOpt pgx.TxOptions, fn func(ctx context.Context, tx repository.Tx) error) error {
	if m.WithTxFunc != nil {
		return m.WithTxFunc(ctx, txOpt, fn)
	}
	return fn(ctx, repository.NoTX)
}

// newTestLogger creates a silent zerolog.Logger for use in tests.
func newTestLogger() *zerolog.Logger {
	logger := zerolog.New(io.Discard)
	return &logger
}
