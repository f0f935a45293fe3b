package services_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/civicgift/donate-backend/internal/core/domain"
	"github.com/civicgift/donate-backend/internal/core/ports/clients"
	portsrepo "github.com/civicgift/donate-backend/internal/core/ports/repositories"
	portssvc "github.com/civicgift/donate-backend/internal/core/ports/services"
)

// --- Mock GiftRepository ---

type MockGiftRepository struct {
	mock.Mock
}

var _ portsrepo.GiftRepositoryFacade = (*MockGiftRepository)(nil)

func (m *MockGiftRepository) FindGiftByID(ctx context.Context, giftID int64) (*domain.Gift, error) {
	args := m.Called(ctx, giftID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Gift), args.Error(1)
}

func (m *MockGiftRepository) FindGiftBySearchableID(ctx context.Context, searchableID uuid.UUID) (*domain.Gift, error) {
	args := m.Called(ctx, searchableID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Gift), args.Error(1)
}

func (m *MockGiftRepository) FindGiftsByCustomerID(ctx context.Context, customerID string, methodNames []string) ([]domain.Gift, error) {
	args := m.Called(ctx, customerID, methodNames)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Gift), args.Error(1)
}

func (m *MockGiftRepository) FindGiftsBySubscriptionID(ctx context.Context, subscriptionID string) ([]domain.Gift, error) {
	args := m.Called(ctx, subscriptionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Gift), args.Error(1)
}

func (m *MockGiftRepository) FindGiftByReferenceNumber(ctx context.Context, referenceNumber string) (*domain.Gift, error) {
	args := m.Called(ctx, referenceNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Gift), args.Error(1)
}

func (m *MockGiftRepository) ListGifts(ctx context.Context, limit int, nextToken *string) ([]domain.GiftWithLatest, *string, error) {
	args := m.Called(ctx, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var token *string
	if args.Get(1) != nil {
		v := args.Get(1).(string)
		token = &v
	}
	return args.Get(0).([]domain.GiftWithLatest), token, args.Error(2)
}

func (m *MockGiftRepository) SaveGift(ctx context.Context, tx pgx.Tx, gift *domain.Gift) error {
	args := m.Called(ctx, tx, gift)
	return args.Error(0)
}

func (m *MockGiftRepository) UpdateGiftDonor(ctx context.Context, tx pgx.Tx, giftID int64, donor domain.DonorRef) error {
	args := m.Called(ctx, tx, giftID, donor)
	return args.Error(0)
}

func (m *MockGiftRepository) UpdateGiftGivenTo(ctx context.Context, tx pgx.Tx, giftID int64, givenTo domain.BeneficiaryAccount) error {
	args := m.Called(ctx, tx, giftID, givenTo)
	return args.Error(0)
}

func (m *MockGiftRepository) UpdateGiftSubscriptionID(ctx context.Context, tx pgx.Tx, giftID int64, subscriptionID *string) error {
	args := m.Called(ctx, tx, giftID, subscriptionID)
	return args.Error(0)
}

func (m *MockGiftRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	tx, _ := args.Get(0).(pgx.Tx)
	return tx, args.Error(1)
}

func (m *MockGiftRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockGiftRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// --- Mock TransactionRepository ---

type MockTransactionRepository struct {
	mock.Mock
}

var _ portsrepo.TransactionRepositoryFacade = (*MockTransactionRepository)(nil)

func (m *MockTransactionRepository) FindTransactionsByGiftID(ctx context.Context, giftID int64) ([]domain.Transaction, error) {
	args := m.Called(ctx, giftID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindLatestTransactionByGiftID(ctx context.Context, giftID int64) (*domain.Transaction, error) {
	args := m.Called(ctx, giftID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindTransactionByReference(ctx context.Context, giftID int64, kind domain.TransactionKind, status domain.TransactionStatus, referenceNumber string) (*domain.Transaction, error) {
	args := m.Called(ctx, giftID, kind, status, referenceNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ExistsByReference(ctx context.Context, referenceNumber string) (bool, error) {
	args := m.Called(ctx, referenceNumber)
	return args.Bool(0), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactions(ctx context.Context, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var token *string
	if args.Get(1) != nil {
		v := args.Get(1).(string)
		token = &v
	}
	return args.Get(0).([]domain.Transaction), token, args.Error(2)
}

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, tx pgx.Tx, txn *domain.Transaction) error {
	args := m.Called(ctx, tx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) UpdateReceiptSentAt(ctx context.Context, tx pgx.Tx, transactionID int64, sentAt time.Time) error {
	args := m.Called(ctx, tx, transactionID, sentAt)
	return args.Error(0)
}

func (m *MockTransactionRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	tx, _ := args.Get(0).(pgx.Tx)
	return tx, args.Error(1)
}

func (m *MockTransactionRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockTransactionRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// --- Mock DonorRepository ---

type MockDonorRepository struct {
	mock.Mock
}

var _ portsrepo.DonorRepositoryFacade = (*MockDonorRepository)(nil)

func (m *MockDonorRepository) FindQueuedDonorByID(ctx context.Context, id int64) (*domain.PendingDonor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PendingDonor), args.Error(1)
}

func (m *MockDonorRepository) FindQueuedDonorByGiftID(ctx context.Context, giftID int64) (*domain.PendingDonor, error) {
	args := m.Called(ctx, giftID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PendingDonor), args.Error(1)
}

func (m *MockDonorRepository) SaveQueuedDonor(ctx context.Context, tx pgx.Tx, donor *domain.PendingDonor) error {
	args := m.Called(ctx, tx, donor)
	return args.Error(0)
}

func (m *MockDonorRepository) DeleteQueuedDonor(ctx context.Context, tx pgx.Tx, id int64) error {
	args := m.Called(ctx, tx, id)
	return args.Error(0)
}

func (m *MockDonorRepository) FindCagedDonorByID(ctx context.Context, id int64) (*domain.PendingDonor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PendingDonor), args.Error(1)
}

func (m *MockDonorRepository) FindCagedDonorByGiftID(ctx context.Context, giftID int64) (*domain.PendingDonor, error) {
	args := m.Called(ctx, giftID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PendingDonor), args.Error(1)
}

func (m *MockDonorRepository) ListCagedDonors(ctx context.Context, limit int, nextToken *string) ([]domain.PendingDonor, *string, error) {
	args := m.Called(ctx, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var token *string
	if args.Get(1) != nil {
		v := args.Get(1).(string)
		token = &v
	}
	return args.Get(0).([]domain.PendingDonor), token, args.Error(2)
}

func (m *MockDonorRepository) SaveCagedDonor(ctx context.Context, tx pgx.Tx, donor *domain.PendingDonor) error {
	args := m.Called(ctx, tx, donor)
	return args.Error(0)
}

func (m *MockDonorRepository) IncrementTimesViewed(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockDonorRepository) DeleteCagedDonor(ctx context.Context, tx pgx.Tx, id int64) error {
	args := m.Called(ctx, tx, id)
	return args.Error(0)
}

func (m *MockDonorRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	tx, _ := args.Get(0).(pgx.Tx)
	return tx, args.Error(1)
}

func (m *MockDonorRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockDonorRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// --- Mock MethodUsedRepository ---

type MockMethodUsedRepository struct {
	mock.Mock
}

var _ portsrepo.MethodUsedRepositoryFacade = (*MockMethodUsedRepository)(nil)

func (m *MockMethodUsedRepository) FindMethodUsedByID(ctx context.Context, id int16) (*domain.MethodUsed, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MethodUsed), args.Error(1)
}

func (m *MockMethodUsedRepository) FindMethodUsedByName(ctx context.Context, name string) (*domain.MethodUsed, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MethodUsed), args.Error(1)
}

func (m *MockMethodUsedRepository) ListMethodsUsed(ctx context.Context) ([]domain.MethodUsed, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MethodUsed), args.Error(1)
}

// --- Mock CampaignRepository ---

type MockCampaignRepository struct {
	mock.Mock
}

var _ portsrepo.CampaignRepositoryFacade = (*MockCampaignRepository)(nil)

func (m *MockCampaignRepository) FindCampaignByID(ctx context.Context, campaignID int64) (*domain.Campaign, error) {
	args := m.Called(ctx, campaignID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Campaign), args.Error(1)
}

func (m *MockCampaignRepository) FindDefaultCampaign(ctx context.Context) (*domain.Campaign, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Campaign), args.Error(1)
}

func (m *MockCampaignRepository) ListCampaigns(ctx context.Context, activeOnly bool) ([]domain.Campaign, error) {
	args := m.Called(ctx, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Campaign), args.Error(1)
}

func (m *MockCampaignRepository) FindAmountsByCampaignID(ctx context.Context, campaignID int64) ([]domain.CampaignAmount, error) {
	args := m.Called(ctx, campaignID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CampaignAmount), args.Error(1)
}

func (m *MockCampaignRepository) SaveCampaign(ctx context.Context, campaign *domain.Campaign) error {
	args := m.Called(ctx, campaign)
	return args.Error(0)
}

func (m *MockCampaignRepository) UpdateCampaign(ctx context.Context, campaign domain.Campaign) error {
	args := m.Called(ctx, campaign)
	return args.Error(0)
}

func (m *MockCampaignRepository) ReplaceAmounts(ctx context.Context, campaignID int64, amounts []domain.CampaignAmount) error {
	args := m.Called(ctx, campaignID, amounts)
	return args.Error(0)
}

// --- Mock ThankYouRepository ---

type MockThankYouRepository struct {
	mock.Mock
}

var _ portsrepo.ThankYouRepositoryFacade = (*MockThankYouRepository)(nil)

func (m *MockThankYouRepository) ListThankYouMarkers(ctx context.Context) ([]domain.ThankYouMarker, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ThankYouMarker), args.Error(1)
}

func (m *MockThankYouRepository) FindThankYouMarkerByID(ctx context.Context, id int64) (*domain.ThankYouMarker, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ThankYouMarker), args.Error(1)
}

func (m *MockThankYouRepository) ExistsThankYouMarker(ctx context.Context, giftID int64) (bool, error) {
	args := m.Called(ctx, giftID)
	return args.Bool(0), args.Error(1)
}

func (m *MockThankYouRepository) SaveThankYouMarker(ctx context.Context, tx pgx.Tx, giftID int64) error {
	args := m.Called(ctx, tx, giftID)
	return args.Error(0)
}

func (m *MockThankYouRepository) DeleteThankYouMarker(ctx context.Context, tx pgx.Tx, id int64) error {
	args := m.Called(ctx, tx, id)
	return args.Error(0)
}

func (m *MockThankYouRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	tx, _ := args.Get(0).(pgx.Tx)
	return tx, args.Error(1)
}

func (m *MockThankYouRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockThankYouRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// --- Mock AgentService ---

type MockAgentService struct {
	mock.Mock
}

var _ portssvc.AgentSvcFacade = (*MockAgentService)(nil)

func (m *MockAgentService) ListAgents(ctx context.Context) ([]domain.Agent, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Agent), args.Error(1)
}

func (m *MockAgentService) ResolveStaffAgent(ctx context.Context, agentID int64) (*domain.Agent, error) {
	args := m.Called(ctx, agentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Agent), args.Error(1)
}

func (m *MockAgentService) ResolveAgentByName(ctx context.Context, name string) (*domain.Agent, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Agent), args.Error(1)
}

// --- Mock DonorMatchingSvc ---

type MockMatcher struct {
	mock.Mock
}

var _ portssvc.DonorMatchingSvc = (*MockMatcher)(nil)

func (m *MockMatcher) EnqueueMatch(ctx context.Context, giftID int64) error {
	args := m.Called(ctx, giftID)
	return args.Error(0)
}

func (m *MockMatcher) MatchQueuedDonor(ctx context.Context, queuedDonorID int64) error {
	args := m.Called(ctx, queuedDonorID)
	return args.Error(0)
}

// --- Mock Processor ---

type MockProcessor struct {
	mock.Mock
}

var _ clients.Processor = (*MockProcessor)(nil)

func (m *MockProcessor) GenerateClientToken(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockProcessor) CreateCustomer(ctx context.Context, input clients.CustomerInput) (string, error) {
	args := m.Called(ctx, input)
	return args.String(0), args.Error(1)
}

func (m *MockProcessor) CreateSale(ctx context.Context, input clients.SaleInput) (*clients.Sale, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*clients.Sale), args.Error(1)
}

func (m *MockProcessor) CreateSubscription(ctx context.Context, input clients.SubscriptionInput) (string, *clients.Sale, error) {
	args := m.Called(ctx, input)
	var sale *clients.Sale
	if args.Get(1) != nil {
		sale = args.Get(1).(*clients.Sale)
	}
	return args.String(0), sale, args.Error(2)
}

func (m *MockProcessor) UpdateSubscription(ctx context.Context, subscriptionID string, update clients.SubscriptionUpdate) error {
	args := m.Called(ctx, subscriptionID, update)
	return args.Error(0)
}

func (m *MockProcessor) FindSale(ctx context.Context, saleID string) (*clients.Sale, error) {
	args := m.Called(ctx, saleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*clients.Sale), args.Error(1)
}

func (m *MockProcessor) Refund(ctx context.Context, saleID string, amount decimal.Decimal) (*clients.Sale, error) {
	args := m.Called(ctx, saleID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*clients.Sale), args.Error(1)
}

func (m *MockProcessor) Void(ctx context.Context, saleID string) (*clients.Sale, error) {
	args := m.Called(ctx, saleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*clients.Sale), args.Error(1)
}

func (m *MockProcessor) SearchSales(ctx context.Context, statusField string, start, end time.Time) ([]clients.Sale, error) {
	args := m.Called(ctx, statusField, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]clients.Sale), args.Error(1)
}

func (m *MockProcessor) SearchDisputes(ctx context.Context, start, end time.Time) ([]clients.Dispute, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]clients.Dispute), args.Error(1)
}

func (m *MockProcessor) ParseWebhook(signature, payload string) (*clients.WebhookNotification, error) {
	args := m.Called(signature, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*clients.WebhookNotification), args.Error(1)
}

// --- Mock Notifier ---

type MockNotifier struct {
	mock.Mock
}

var _ clients.Notifier = (*MockNotifier)(nil)

func (m *MockNotifier) SendReceipt(ctx context.Context, receipt clients.ReceiptEmail) error {
	args := m.Called(ctx, receipt)
	return args.Error(0)
}

func (m *MockNotifier) SendAdminNotice(ctx context.Context, subject, body string) error {
	args := m.Called(ctx, subject, body)
	return args.Error(0)
}

func (m *MockNotifier) SendReportSummary(ctx context.Context, subject string, reportURLs map[string]string) error {
	args := m.Called(ctx, subject, reportURLs)
	return args.Error(0)
}

// --- Mock Blobstore ---

type MockBlobstore struct {
	mock.Mock
}

var _ clients.Blobstore = (*MockBlobstore)(nil)

func (m *MockBlobstore) Upload(ctx context.Context, key, contentType string, content []byte) (string, error) {
	args := m.Called(ctx, key, contentType, content)
	return args.String(0), args.Error(1)
}

// --- Mock UserDirectory ---

type MockDirectory struct {
	mock.Mock
}

var _ clients.UserDirectory = (*MockDirectory)(nil)

func (m *MockDirectory) FindUser(ctx context.Context, search clients.DirectorySearch) ([]domain.DirectoryUser, error) {
	args := m.Called(ctx, search)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DirectoryUser), args.Error(1)
}

func (m *MockDirectory) CreateUser(ctx context.Context, user domain.DirectoryUser) (*domain.DirectoryUser, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DirectoryUser), args.Error(1)
}

func (m *MockDirectory) UpdateUser(ctx context.Context, user domain.DirectoryUser) (*domain.DirectoryUser, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DirectoryUser), args.Error(1)
}

// --- Mock task enqueuer ---

type MockTaskEnqueuer struct {
	mock.Mock
}

func (m *MockTaskEnqueuer) EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	args := m.Called(ctx, task)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*asynq.TaskInfo), args.Error(1)
}

// --- Mock AgentRepository ---

type MockAgentRepository struct {
	mock.Mock
}

var _ portsrepo.AgentRepositoryFacade = (*MockAgentRepository)(nil)

func (m *MockAgentRepository) FindAgentByID(ctx context.Context, agentID int64) (*domain.Agent, error) {
	args := m.Called(ctx, agentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Agent), args.Error(1)
}

func (m *MockAgentRepository) FindAgentByName(ctx context.Context, name string) (*domain.Agent, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Agent), args.Error(1)
}

func (m *MockAgentRepository) FindAgentByUserID(ctx context.Context, userID int64) (*domain.Agent, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Agent), args.Error(1)
}

func (m *MockAgentRepository) FindAgentByEmail(ctx context.Context, email string) (*domain.Agent, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Agent), args.Error(1)
}

func (m *MockAgentRepository) ListAgents(ctx context.Context) ([]domain.Agent, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Agent), args.Error(1)
}

func (m *MockAgentRepository) SaveAgent(ctx context.Context, agent *domain.Agent) error {
	args := m.Called(ctx, agent)
	return args.Error(0)
}
