package impl

import (
	"context"
	"io"
	"strings"
	"time"

	"orderdesk/internal/domain/entity"
	"orderdesk/internal/domain/repository"
	"orderdesk/internal/domain/service"

	"github.com/google/uuid"
)

// In-memory doubles for the repository and service ports. They keep just
// enough behavior for the business rules under test.

type fakeAccountRepo struct {
	accounts map[uuid.UUID]*entity.Account
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{accounts: make(map[uuid.UUID]*entity.Account)}
}

func (r *fakeAccountRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Account, error) {
	if account, ok := r.accounts[id]; ok {
		copied := *account

		return &copied, nil
	}

	return nil, repository.ErrAccountNotFound
}

func (r *fakeAccountRepo) FindByTenantID(_ context.Context, tenantID uuid.UUID) (*entity.Account, error) {
	for _, account := range r.accounts {
		if account.TenantID == tenantID {
			copied := *account

			return &copied, nil
		}
	}

	return nil, repository.ErrAccountNotFound
}

func (r *fakeAccountRepo) FindByLogin(_ context.Context, login string) (*entity.Account, error) {
	for _, account := range r.accounts {
		if account.DisplayName == login || account.Mobile == login {
			copied := *account

			return &copied, nil
		}
	}

	return nil, repository.ErrAccountNotFound
}

func (r *fakeAccountRepo) FindByMobile(_ context.Context, mobile string) (*entity.Account, error) {
	for _, account := range r.accounts {
		if account.Mobile == mobile {
			copied := *account

			return &copied, nil
		}
	}

	return nil, repository.ErrAccountNotFound
}

func (r *fakeAccountRepo) Create(_ context.Context, account *entity.Account) error {
	if account.ID == uuid.Nil {
		account.ID = uuid.New()
	}
	copied := *account
	r.accounts[account.ID] = &copied

	return nil
}

func (r *fakeAccountRepo) Update(_ context.Context, account *entity.Account) error {
	copied := *account
	r.accounts[account.ID] = &copied

	return nil
}

type fakeProviderRepo struct {
	providers map[uuid.UUID]*entity.Provider
}

func newFakeProviderRepo() *fakeProviderRepo {
	return &fakeProviderRepo{providers: make(map[uuid.UUID]*entity.Provider)}
}

func (r *fakeProviderRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Provider, error) {
	if provider, ok := r.providers[id]; ok {
		copied := *provider

		return &copied, nil
	}

	return nil, repository.ErrProviderNotFound
}

func (r *fakeProviderRepo) FindByTenantID(_ context.Context, tenantID uuid.UUID) (*entity.Provider, error) {
	for _, provider := range r.providers {
		if provider.TenantID == tenantID {
			copied := *provider

			return &copied, nil
		}
	}

	return nil, repository.ErrProviderNotFound
}

func (r *fakeProviderRepo) Create(_ context.Context, provider *entity.Provider) error {
	if provider.ID == uuid.Nil {
		provider.ID = uuid.New()
	}
	copied := *provider
	r.providers[provider.ID] = &copied

	return nil
}

func (r *fakeProviderRepo) Update(_ context.Context, provider *entity.Provider) error {
	copied := *provider
	r.providers[provider.ID] = &copied

	return nil
}

func (r *fakeProviderRepo) List(_ context.Context, _ repository.ProviderQuery) ([]*entity.Provider, int64, error) {
	items := make([]*entity.Provider, 0, len(r.providers))
	for _, provider := range r.providers {
		copied := *provider
		items = append(items, &copied)
	}

	return items, int64(len(items)), nil
}

func (r *fakeProviderRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.providers)), nil
}

type fakeCategoryRepo struct {
	categories map[uuid.UUID]*entity.Category
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{categories: make(map[uuid.UUID]*entity.Category)}
}

func (r *fakeCategoryRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Category, error) {
	if category, ok := r.categories[id]; ok {
		copied := *category

		return &copied, nil
	}

	return nil, repository.ErrCategoryNotFound
}

func (r *fakeCategoryRepo) Create(_ context.Context, category *entity.Category) error {
	if category.ID == uuid.Nil {
		category.ID = uuid.New()
	}
	copied := *category
	r.categories[category.ID] = &copied

	return nil
}

func (r *fakeCategoryRepo) Update(_ context.Context, category *entity.Category) error {
	if _, ok := r.categories[category.ID]; !ok {
		return repository.ErrCategoryNotFound
	}
	copied := *category
	r.categories[category.ID] = &copied

	return nil
}

func (r *fakeCategoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.categories[id]; !ok {
		return repository.ErrCategoryNotFound
	}
	delete(r.categories, id)

	return nil
}

func (r *fakeCategoryRepo) List(_ context.Context, _ repository.CategoryQuery) ([]*entity.Category, int64, error) {
	items, err := r.ListAll(context.Background())

	return items, int64(len(items)), err
}

func (r *fakeCategoryRepo) ListAll(_ context.Context) ([]*entity.Category, error) {
	items := make([]*entity.Category, 0, len(r.categories))
	for _, category := range r.categories {
		copied := *category
		items = append(items, &copied)
	}

	return items, nil
}

func (r *fakeCategoryRepo) NameExists(_ context.Context, name string, excludeID *uuid.UUID) (bool, error) {
	for _, category := range r.categories {
		if excludeID != nil && category.ID == *excludeID {
			continue
		}
		if strings.EqualFold(category.Name, name) {
			return true, nil
		}
	}

	return false, nil
}

type fakeProductRepo struct {
	products map[uuid.UUID]*entity.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[uuid.UUID]*entity.Product)}
}

func (r *fakeProductRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Product, error) {
	if product, ok := r.products[id]; ok {
		copied := *product

		return &copied, nil
	}

	return nil, repository.ErrProductNotFound
}

func (r *fakeProductRepo) Create(_ context.Context, product *entity.Product) error {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	copied := *product
	r.products[product.ID] = &copied

	return nil
}

func (r *fakeProductRepo) Update(_ context.Context, product *entity.Product) error {
	if _, ok := r.products[product.ID]; !ok {
		return repository.ErrProductNotFound
	}
	copied := *product
	r.products[product.ID] = &copied

	return nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.products[id]; !ok {
		return repository.ErrProductNotFound
	}
	delete(r.products, id)

	return nil
}

func (r *fakeProductRepo) List(_ context.Context, query repository.ProductQuery) ([]*entity.Product, int64, error) {
	items := make([]*entity.Product, 0, len(r.products))
	for _, product := range r.products {
		if query.IsActive != nil && product.IsActive != *query.IsActive {
			continue
		}
		copied := *product
		items = append(items, &copied)
	}

	return items, int64(len(items)), nil
}

func (r *fakeProductRepo) NameExistsInCategory(_ context.Context, categoryID uuid.UUID, name string, excludeID *uuid.UUID) (bool, error) {
	for _, product := range r.products {
		if product.CategoryID != categoryID {
			continue
		}
		if excludeID != nil && product.ID == *excludeID {
			continue
		}
		if strings.EqualFold(product.Name, name) {
			return true, nil
		}
	}

	return false, nil
}

func (r *fakeProductRepo) CountActive(_ context.Context) (int64, error) {
	var count int64
	for _, product := range r.products {
		if product.IsActive {
			count++
		}
	}

	return count, nil
}

func (r *fakeProductRepo) Stats(_ context.Context) (*repository.ProductStats, error) {
	active, _ := r.CountActive(context.Background())

	return &repository.ProductStats{
		Total:  int64(len(r.products)),
		Active: active,
	}, nil
}

type fakeOrderRepo struct {
	orders    map[uuid.UUID]*entity.Order
	sequences map[string]int
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{
		orders:    make(map[uuid.UUID]*entity.Order),
		sequences: make(map[string]int),
	}
}

func (r *fakeOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Order, error) {
	if order, ok := r.orders[id]; ok {
		copied := *order

		return &copied, nil
	}

	return nil, repository.ErrOrderNotFound
}

func (r *fakeOrderRepo) Create(_ context.Context, order *entity.Order) error {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	for _, item := range order.Items {
		if item.ID == uuid.Nil {
			item.ID = uuid.New()
		}
		item.OrderID = order.ID
	}
	copied := *order
	r.orders[order.ID] = &copied

	return nil
}

func (r *fakeOrderRepo) Update(_ context.Context, order *entity.Order) error {
	if _, ok := r.orders[order.ID]; !ok {
		return repository.ErrOrderNotFound
	}
	copied := *order
	r.orders[order.ID] = &copied

	return nil
}

func (r *fakeOrderRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.orders[id]; !ok {
		return repository.ErrOrderNotFound
	}
	delete(r.orders, id)

	return nil
}

func (r *fakeOrderRepo) List(_ context.Context, query repository.OrderQuery) ([]*entity.Order, int64, error) {
	items := make([]*entity.Order, 0, len(r.orders))
	for _, order := range r.orders {
		if query.ProviderID != nil && order.ProviderID != *query.ProviderID {
			continue
		}
		copied := *order
		items = append(items, &copied)
	}

	return items, int64(len(items)), nil
}

func (r *fakeOrderRepo) NextOrderSequence(_ context.Context, day string) (int, error) {
	r.sequences[day]++

	return r.sequences[day], nil
}

func (r *fakeOrderRepo) Stats(_ context.Context) (*repository.OrderStats, error) {
	stats := &repository.OrderStats{ByStatus: make(map[entity.OrderStatus]int64)}
	for _, order := range r.orders {
		stats.TotalOrders++
		stats.ByStatus[order.Status]++
		if order.Status == entity.OrderStatusCompleted {
			stats.TotalRevenue += order.FinalAmount
		}
	}

	return stats, nil
}

func (r *fakeOrderRepo) MonthlyBuckets(_ context.Context, _ time.Time) ([]repository.MonthlyBucket, error) {
	return nil, nil
}

func (r *fakeOrderRepo) Recent(_ context.Context, _ int) ([]*entity.Order, error) {
	return nil, nil
}

func (r *fakeOrderRepo) TopProducts(_ context.Context, _ int) ([]repository.ProductSales, error) {
	return nil, nil
}

type fakeNotificationRepo struct {
	notifications []*entity.Notification
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{}
}

func (r *fakeNotificationRepo) Create(_ context.Context, notification *entity.Notification) error {
	if notification.ID == uuid.Nil {
		notification.ID = uuid.New()
	}
	copied := *notification
	r.notifications = append(r.notifications, &copied)

	return nil
}

func (r *fakeNotificationRepo) ListByTenant(_ context.Context, tenantID uuid.UUID, query repository.NotificationQuery) ([]*entity.Notification, int64, error) {
	items := make([]*entity.Notification, 0)
	for _, notification := range r.notifications {
		if notification.TenantID != tenantID {
			continue
		}
		if query.UnreadOnly && notification.IsRead {
			continue
		}
		copied := *notification
		items = append(items, &copied)
	}

	return items, int64(len(items)), nil
}

func (r *fakeNotificationRepo) CountUnread(_ context.Context, tenantID uuid.UUID) (int64, error) {
	var count int64
	for _, notification := range r.notifications {
		if notification.TenantID == tenantID && !notification.IsRead {
			count++
		}
	}

	return count, nil
}

func (r *fakeNotificationRepo) MarkRead(_ context.Context, tenantID, id uuid.UUID) error {
	for _, notification := range r.notifications {
		if notification.ID == id && notification.TenantID == tenantID {
			notification.IsRead = true

			return nil
		}
	}

	return repository.ErrNotificationNotFound
}

func (r *fakeNotificationRepo) MarkAllRead(_ context.Context, tenantID uuid.UUID) error {
	for _, notification := range r.notifications {
		if notification.TenantID == tenantID {
			notification.IsRead = true
		}
	}

	return nil
}

type fakeRefreshTokenRepo struct {
	tokens map[string]*entity.RefreshToken
}

func newFakeRefreshTokenRepo() *fakeRefreshTokenRepo {
	return &fakeRefreshTokenRepo{tokens: make(map[string]*entity.RefreshToken)}
}

func (r *fakeRefreshTokenRepo) Create(_ context.Context, token *entity.RefreshToken) error {
	if token.ID == uuid.Nil {
		token.ID = uuid.New()
	}
	copied := *token
	r.tokens[token.TokenHash] = &copied

	return nil
}

func (r *fakeRefreshTokenRepo) FindByHash(_ context.Context, tokenHash string) (*entity.RefreshToken, error) {
	token, ok := r.tokens[tokenHash]
	if !ok {
		return nil, repository.ErrRefreshTokenNotFound
	}
	if token.ExpiresAt.Before(time.Now()) {
		delete(r.tokens, tokenHash)

		return nil, repository.ErrRefreshTokenExpired
	}
	copied := *token

	return &copied, nil
}

func (r *fakeRefreshTokenRepo) DeleteByHash(_ context.Context, tokenHash string) error {
	delete(r.tokens, tokenHash)

	return nil
}

func (r *fakeRefreshTokenRepo) DeleteByAccountID(_ context.Context, accountID uuid.UUID) error {
	for hash, token := range r.tokens {
		if token.AccountID == accountID {
			delete(r.tokens, hash)
		}
	}

	return nil
}

type fakePasswordResetRepo struct {
	resets map[string]*entity.PasswordReset
}

func newFakePasswordResetRepo() *fakePasswordResetRepo {
	return &fakePasswordResetRepo{resets: make(map[string]*entity.PasswordReset)}
}

func (r *fakePasswordResetRepo) Create(_ context.Context, reset *entity.PasswordReset) error {
	for hash, existing := range r.resets {
		if existing.AccountID == reset.AccountID {
			delete(r.resets, hash)
		}
	}
	if reset.ID == uuid.Nil {
		reset.ID = uuid.New()
	}
	copied := *reset
	r.resets[reset.TokenHash] = &copied

	return nil
}

func (r *fakePasswordResetRepo) FindByHash(_ context.Context, tokenHash string) (*entity.PasswordReset, error) {
	reset, ok := r.resets[tokenHash]
	if !ok || reset.ExpiresAt.Before(time.Now()) {
		return nil, repository.ErrPasswordResetNotFound
	}
	copied := *reset

	return &copied, nil
}

func (r *fakePasswordResetRepo) DeleteByAccountID(_ context.Context, accountID uuid.UUID) error {
	for hash, reset := range r.resets {
		if reset.AccountID == accountID {
			delete(r.resets, hash)
		}
	}

	return nil
}

// fakeRepoFactory hands out the same in-memory repositories inside and
// outside of "transactions".
type fakeRepoFactory struct {
	accountRepo       *fakeAccountRepo
	providerRepo      *fakeProviderRepo
	categoryRepo      *fakeCategoryRepo
	productRepo       *fakeProductRepo
	orderRepo         *fakeOrderRepo
	notificationRepo  *fakeNotificationRepo
	refreshTokenRepo  *fakeRefreshTokenRepo
	passwordResetRepo *fakePasswordResetRepo
}

func newFakeRepoFactory() *fakeRepoFactory {
	return &fakeRepoFactory{
		accountRepo:       newFakeAccountRepo(),
		providerRepo:      newFakeProviderRepo(),
		categoryRepo:      newFakeCategoryRepo(),
		productRepo:       newFakeProductRepo(),
		orderRepo:         newFakeOrderRepo(),
		notificationRepo:  newFakeNotificationRepo(),
		refreshTokenRepo:  newFakeRefreshTokenRepo(),
		passwordResetRepo: newFakePasswordResetRepo(),
	}
}

func (f *fakeRepoFactory) AccountRepo() repository.AccountRepository {
	return f.accountRepo
}

func (f *fakeRepoFactory) ProviderRepo() repository.ProviderRepository {
	return f.providerRepo
}

func (f *fakeRepoFactory) CategoryRepo() repository.CategoryRepository {
	return f.categoryRepo
}

func (f *fakeRepoFactory) ProductRepo() repository.ProductRepository {
	return f.productRepo
}

func (f *fakeRepoFactory) OrderRepo() repository.OrderRepository {
	return f.orderRepo
}

func (f *fakeRepoFactory) NotificationRepo() repository.NotificationRepository {
	return f.notificationRepo
}

func (f *fakeRepoFactory) RefreshTokenRepo() repository.RefreshTokenRepository {
	return f.refreshTokenRepo
}

func (f *fakeRepoFactory) PasswordResetRepo() repository.PasswordResetRepository {
	return f.passwordResetRepo
}

type fakeTxManager struct {
	factory    *fakeRepoFactory
	executions int
}

func (m *fakeTxManager) Execute(_ context.Context, fn func(repoFactory repository.RepositoryFactory) error) error {
	m.executions++

	return fn(m.factory)
}

const fakeHashPrefix = "hashed:"

// fakeHasher hashes by prefixing, so tests can assert on stored values.
type fakeHasher struct {
	strengthErr error
}

func (h *fakeHasher) Hash(password string) (string, error) {
	return fakeHashPrefix + password, nil
}

func (h *fakeHasher) Check(password, hash string) bool {
	return fakeHashPrefix+password == hash
}

func (h *fakeHasher) ValidatePasswordStrength(_ string) error {
	return h.strengthErr
}

// fakeTokenService issues predictable tokens and remembers the claims behind
// each refresh token it handed out.
type fakeTokenService struct {
	counter int
	claims  map[string]*service.TokenClaims
}

func newFakeTokenService() *fakeTokenService {
	return &fakeTokenService{claims: make(map[string]*service.TokenClaims)}
}

func (s *fakeTokenService) GenerateTokens(accountID, tenantID uuid.UUID, roles []string) (string, string, error) {
	s.counter++
	access := "access-" + accountID.String() + "-" + strings.Repeat("x", s.counter)
	refresh := "refresh-" + accountID.String() + "-" + strings.Repeat("x", s.counter)
	s.claims[refresh] = &service.TokenClaims{
		AccountID: accountID,
		TenantID:  tenantID,
		Roles:     roles,
		TokenType: "refresh",
	}

	return access, refresh, nil
}

func (s *fakeTokenService) ValidateAccessToken(_ string) (*service.TokenClaims, error) {
	return nil, nil
}

func (s *fakeTokenService) ValidateRefreshToken(tokenString string) (*service.TokenClaims, error) {
	if claims, ok := s.claims[tokenString]; ok {
		return claims, nil
	}

	return nil, repository.ErrRefreshTokenNotFound
}

func (s *fakeTokenService) HashToken(token string) string {
	return "hash:" + token
}

func (s *fakeTokenService) RefreshTokenDuration() time.Duration {
	return time.Hour
}

type sentMail struct {
	To       string
	ResetURL string
}

type fakeMailer struct {
	sent []sentMail
}

func (m *fakeMailer) SendPasswordReset(_ context.Context, to, _ string, resetURL string) error {
	m.sent = append(m.sent, sentMail{To: to, ResetURL: resetURL})

	return nil
}

type publishedEvent struct {
	TenantID uuid.UUID
	Event    *service.OrderCreatedEvent
}

type fakePublisher struct {
	published []publishedEvent
}

func (p *fakePublisher) PublishOrderCreated(_ context.Context, tenantID uuid.UUID, event *service.OrderCreatedEvent) {
	p.published = append(p.published, publishedEvent{TenantID: tenantID, Event: event})
}

type fakeImageStore struct {
	saved   []string
	deleted []string
}

func (s *fakeImageStore) Save(_ context.Context, origFilename, _ string, _ io.Reader) (string, error) {
	url := "/images/" + uuid.NewString() + "-" + origFilename
	s.saved = append(s.saved, url)

	return url, nil
}

func (s *fakeImageStore) Delete(_ context.Context, url string) error {
	s.deleted = append(s.deleted, url)

	return nil
}
