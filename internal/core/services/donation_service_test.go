package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/civicgift/donate-backend/internal/core/domain"
	"github.com/civicgift/donate-backend/internal/core/ports/clients"
	portssvc "github.com/civicgift/donate-backend/internal/core/ports/services"
	"github.com/civicgift/donate-backend/internal/core/services"
	"github.com/civicgift/donate-backend/internal/dto"
	"github.com/civicgift/donate-backend/internal/platform/config"
)

type DonationServiceTestSuite struct {
	suite.Suite
	mockGiftRepo     *MockGiftRepository
	mockTxnRepo      *MockTransactionRepository
	mockDonorRepo    *MockDonorRepository
	mockMethodRepo   *MockMethodUsedRepository
	mockCampaignRepo *MockCampaignRepository
	mockThankYouRepo *MockThankYouRepository
	mockAgentSvc     *MockAgentService
	mockMatcher      *MockMatcher
	mockProcessor    *MockProcessor
	mockNotifier     *MockNotifier
	service          portssvc.DonationSvcFacade

	staffAgent *domain.Agent
	apiAgent   *domain.Agent
	bankAgent  *domain.Agent
}

func (s *DonationServiceTestSuite) SetupTest() {
	s.mockGiftRepo = new(MockGiftRepository)
	s.mockTxnRepo = new(MockTransactionRepository)
	s.mockDonorRepo = new(MockDonorRepository)
	s.mockMethodRepo = new(MockMethodUsedRepository)
	s.mockCampaignRepo = new(MockCampaignRepository)
	s.mockThankYouRepo = new(MockThankYouRepository)
	s.mockAgentSvc = new(MockAgentService)
	s.mockMatcher = new(MockMatcher)
	s.mockProcessor = new(MockProcessor)
	s.mockNotifier = new(MockNotifier)

	cfg := &config.Config{
		MerchantAccounts:   map[string]string{"ACTION": "action_usd", "NERF": "nerf_usd"},
		SubscriptionPlanID: "monthly_gift",
		ThankYouThreshold:  decimal.NewFromInt(100),
	}
	ledger := services.NewLedgerService(s.mockTxnRepo)
	s.service = services.NewDonationService(
		cfg,
		s.mockGiftRepo,
		s.mockDonorRepo,
		s.mockMethodRepo,
		s.mockCampaignRepo,
		s.mockThankYouRepo,
		ledger,
		s.mockAgentSvc,
		s.mockMatcher,
		s.mockProcessor,
		s.mockNotifier,
	)

	s.staffAgent = &domain.Agent{ID: 3, Name: "Jamie Rivera", Type: domain.AgentStaff}
	s.apiAgent = &domain.Agent{ID: 10, Name: domain.AgentNameDonateAPI, Type: domain.AgentAutomated}
	s.bankAgent = &domain.Agent{ID: 4, Name: domain.AgentNameBank, Type: domain.AgentOrganization}

	// The deferred rollback after a successful commit is a no-op.
	s.mockGiftRepo.On("Rollback", mock.Anything, mock.Anything).Return(nil).Maybe()
}

func (s *DonationServiceTestSuite) webRequest() dto.CreateDonationRequest {
	return dto.CreateDonationRequest{
		Amount:             decimal.NewFromInt(50),
		GivenTo:            domain.AccountAction,
		PaymentMethodNonce: "nonce-from-hosted-fields",
		Donor: dto.DonorDetails{
			FirstName: "Pat",
			LastName:  "Okafor",
			Email:     "pat@example.org",
		},
		Billing: dto.BillingAddress{Zipcode: "68102"},
	}
}

func (s *DonationServiceTestSuite) TestCreateWebDonation_OneTime() {
	ctx := context.Background()
	req := s.webRequest()

	s.mockProcessor.On("CreateCustomer", ctx, mock.MatchedBy(func(in clients.CustomerInput) bool {
		return in.Email == "pat@example.org" && in.PaymentMethodNonce == req.PaymentMethodNonce
	})).Return("cust_1", nil).Once()
	s.mockProcessor.On("CreateSale", ctx, mock.MatchedBy(func(in clients.SaleInput) bool {
		return in.MerchantAccountID == "action_usd" && in.Amount.Equal(decimal.NewFromInt(50))
	})).Return(&clients.Sale{
		ID:                    "sale_1",
		Status:                clients.SaleStatusSubmittedForSettlement,
		Amount:                decimal.NewFromInt(50),
		PaymentInstrumentType: "credit_card",
	}, nil).Once()

	s.mockMethodRepo.On("FindMethodUsedByName", ctx, domain.MethodWebCreditCard).
		Return(&domain.MethodUsed{ID: 1, Name: domain.MethodWebCreditCard}, nil).Once()
	s.mockAgentSvc.On("ResolveAgentByName", ctx, domain.AgentNameDonateAPI).Return(s.apiAgent, nil).Once()
	s.mockCampaignRepo.On("FindDefaultCampaign", ctx).Return(&domain.Campaign{ID: 1, IsDefault: true}, nil).Once()

	s.mockGiftRepo.On("Begin", ctx).Return(nil, nil).Once()
	s.mockGiftRepo.On("SaveGift", ctx, nil, mock.MatchedBy(func(g *domain.Gift) bool {
		return g.Donor.Kind == domain.DonorQueued && g.CustomerID == "cust_1" && g.GivenTo == domain.AccountAction
	})).Run(func(args mock.Arguments) {
		args.Get(2).(*domain.Gift).ID = 42
	}).Return(nil).Once()
	s.mockDonorRepo.On("SaveQueuedDonor", ctx, nil, mock.MatchedBy(func(d *domain.PendingDonor) bool {
		return d.GiftID == 42 && d.EmailAddress == "pat@example.org"
	})).Return(nil).Once()
	s.mockTxnRepo.On("SaveTransaction", ctx, nil, mock.MatchedBy(func(txn *domain.Transaction) bool {
		return txn.Kind == domain.KindGift &&
			txn.Status == domain.StatusCompleted &&
			txn.ReferenceNumber == "sale_1" &&
			txn.GrossAmount.Equal(decimal.NewFromInt(50))
	})).Return(nil).Once()
	s.mockGiftRepo.On("Commit", ctx, nil).Return(nil).Once()

	s.mockMatcher.On("EnqueueMatch", ctx, int64(42)).Return(nil).Once()
	s.mockNotifier.On("SendReceipt", ctx, mock.AnythingOfType("clients.ReceiptEmail")).Return(nil).Once()

	resp, err := s.service.CreateWebDonation(ctx, req)

	s.Require().NoError(err)
	s.Equal("sale_1", resp.ReferenceNumber)
	s.Equal(string(domain.StatusCompleted), resp.Status)
	s.False(resp.Recurring)
	s.mockGiftRepo.AssertExpectations(s.T())
	s.mockTxnRepo.AssertExpectations(s.T())
	s.mockMatcher.AssertExpectations(s.T())
}

func (s *DonationServiceTestSuite) TestCreateWebDonation_SupportRejected() {
	ctx := context.Background()
	req := s.webRequest()
	req.GivenTo = domain.AccountSupport

	_, err := s.service.CreateWebDonation(ctx, req)

	s.ErrorIs(err, services.ErrUnsupportedBeneficiary)
	s.mockProcessor.AssertNotCalled(s.T(), "CreateCustomer", mock.Anything, mock.Anything)
}

func (s *DonationServiceTestSuite) TestCreateWebDonation_NoMerchantAccount() {
	ctx := context.Background()
	req := s.webRequest()
	req.GivenTo = domain.AccountGreen

	_, err := s.service.CreateWebDonation(ctx, req)

	s.ErrorIs(err, services.ErrNoMerchantAccount)
}

func (s *DonationServiceTestSuite) TestCreateWebDonation_RecurringWithoutFirstSale() {
	ctx := context.Background()
	req := s.webRequest()
	req.Recurring = true

	s.mockProcessor.On("CreateCustomer", ctx, mock.Anything).Return("cust_2", nil).Once()
	s.mockProcessor.On("CreateSubscription", ctx, mock.MatchedBy(func(in clients.SubscriptionInput) bool {
		return in.PlanID == "monthly_gift" && in.PaymentMethodToken == "cust_2"
	})).Return("sub_1", nil, nil).Once()

	s.mockMethodRepo.On("FindMethodUsedByName", ctx, domain.MethodWebCreditCard).
		Return(&domain.MethodUsed{ID: 1, Name: domain.MethodWebCreditCard}, nil).Once()
	s.mockAgentSvc.On("ResolveAgentByName", ctx, domain.AgentNameDonateAPI).Return(s.apiAgent, nil).Once()
	s.mockCampaignRepo.On("FindDefaultCampaign", ctx).Return(&domain.Campaign{ID: 1}, nil).Once()

	s.mockGiftRepo.On("Begin", ctx).Return(nil, nil).Once()
	s.mockGiftRepo.On("SaveGift", ctx, nil, mock.MatchedBy(func(g *domain.Gift) bool {
		return g.RecurringSubscriptionID != nil && *g.RecurringSubscriptionID == "sub_1"
	})).Run(func(args mock.Arguments) {
		args.Get(2).(*domain.Gift).ID = 43
	}).Return(nil).Once()
	s.mockDonorRepo.On("SaveQueuedDonor", ctx, nil, mock.Anything).Return(nil).Once()
	s.mockGiftRepo.On("Commit", ctx, nil).Return(nil).Once()

	s.mockMatcher.On("EnqueueMatch", ctx, int64(43)).Return(nil).Once()
	s.mockNotifier.On("SendReceipt", ctx, mock.Anything).Return(nil).Once()

	resp, err := s.service.CreateWebDonation(ctx, req)

	s.Require().NoError(err)
	// No sale charged yet, so the gift has no ledger entry and reports the
	// subscription as requested.
	s.Equal(string(domain.StatusRequested), resp.Status)
	s.Equal("sub_1", resp.ReferenceNumber)
	s.mockTxnRepo.AssertNotCalled(s.T(), "SaveTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (s *DonationServiceTestSuite) TestCreateAdminDonation_CheckWritesDeposit() {
	ctx := context.Background()
	instrumentDate := time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)
	req := dto.CreateAdminDonationRequest{
		MethodUsed:       domain.MethodCheck,
		Amount:           decimal.NewFromInt(200),
		GivenTo:          domain.AccountNERF,
		ReferenceNumber:  "check_55",
		DateOfMethodUsed: &instrumentDate,
		Donor: dto.DonorDetails{
			FirstName: "Lee",
			LastName:  "Moran",
			Email:     "lee@example.org",
		},
	}

	s.mockMethodRepo.On("FindMethodUsedByName", ctx, domain.MethodCheck).
		Return(&domain.MethodUsed{ID: 4, Name: domain.MethodCheck}, nil).Once()
	s.mockAgentSvc.On("ResolveStaffAgent", ctx, int64(3)).Return(s.staffAgent, nil).Once()
	s.mockAgentSvc.On("ResolveAgentByName", ctx, domain.AgentNameBank).Return(s.bankAgent, nil).Once()
	s.mockCampaignRepo.On("FindDefaultCampaign", ctx).Return(&domain.Campaign{ID: 1}, nil).Once()

	s.mockGiftRepo.On("Begin", ctx).Return(nil, nil).Once()
	s.mockGiftRepo.On("SaveGift", ctx, nil, mock.Anything).Run(func(args mock.Arguments) {
		args.Get(2).(*domain.Gift).ID = 44
	}).Return(nil).Once()
	s.mockDonorRepo.On("SaveQueuedDonor", ctx, nil, mock.Anything).Return(nil).Once()

	// The check itself, dated at the instrument.
	s.mockTxnRepo.On("SaveTransaction", ctx, nil, mock.MatchedBy(func(txn *domain.Transaction) bool {
		return txn.Kind == domain.KindGift &&
			txn.ReferenceNumber == "check_55" &&
			txn.Date.Equal(instrumentDate) &&
			txn.GrossAmount.Equal(decimal.NewFromInt(200))
	})).Return(nil).Once()
	// The same-day bank deposit leaves the total unchanged.
	s.mockTxnRepo.On("SaveTransaction", ctx, nil, mock.MatchedBy(func(txn *domain.Transaction) bool {
		return txn.Kind == domain.KindDepositToBank &&
			txn.EnactedByAgentID != nil && *txn.EnactedByAgentID == s.bankAgent.ID &&
			txn.GrossAmount.Equal(decimal.NewFromInt(200))
	})).Return(nil).Once()

	// 200 crosses the letter threshold.
	s.mockThankYouRepo.On("ExistsThankYouMarker", ctx, int64(44)).Return(false, nil).Once()
	s.mockThankYouRepo.On("SaveThankYouMarker", ctx, nil, int64(44)).Return(nil).Once()

	s.mockGiftRepo.On("Commit", ctx, nil).Return(nil).Once()
	s.mockMatcher.On("EnqueueMatch", ctx, int64(44)).Return(nil).Once()

	resp, err := s.service.CreateAdminDonation(ctx, req, 3)

	s.Require().NoError(err)
	s.Equal("check_55", resp.ReferenceNumber)
	s.mockTxnRepo.AssertExpectations(s.T())
	s.mockThankYouRepo.AssertExpectations(s.T())
}

func (s *DonationServiceTestSuite) TestRefundSale_ExceedsRunningTotal() {
	ctx := context.Background()

	s.mockProcessor.On("FindSale", ctx, "sale_5").Return(&clients.Sale{
		ID:     "sale_5",
		Status: clients.SaleStatusSettled,
		Amount: decimal.NewFromInt(100),
	}, nil).Once()
	s.mockGiftRepo.On("FindGiftByReferenceNumber", ctx, "sale_5").
		Return(&domain.Gift{ID: 5, SearchableID: uuid.New()}, nil).Once()
	// A previous partial refund left only 50 on the gift.
	s.mockTxnRepo.On("FindLatestTransactionByGiftID", ctx, int64(5)).
		Return(&domain.Transaction{GiftID: 5, GrossAmount: decimal.NewFromInt(50)}, nil).Once()

	_, err := s.service.RefundSale(ctx, dto.RefundRequest{
		ReferenceNumber: "sale_5",
		Amount:          decimal.NewFromInt(80),
	}, 3)

	s.ErrorIs(err, services.ErrRefundExceedsBalance)
	s.mockProcessor.AssertNotCalled(s.T(), "Refund", mock.Anything, mock.Anything, mock.Anything)
}

func (s *DonationServiceTestSuite) TestRefundSale_AppendsRefundEntry() {
	ctx := context.Background()
	gift := &domain.Gift{ID: 5, SearchableID: uuid.New()}

	s.mockProcessor.On("FindSale", ctx, "sale_5").Return(&clients.Sale{
		ID:     "sale_5",
		Status: clients.SaleStatusSettled,
		Amount: decimal.NewFromInt(100),
	}, nil).Once()
	s.mockGiftRepo.On("FindGiftByReferenceNumber", ctx, "sale_5").Return(gift, nil).Once()
	s.mockTxnRepo.On("FindLatestTransactionByGiftID", ctx, int64(5)).
		Return(&domain.Transaction{GiftID: 5, GrossAmount: decimal.NewFromInt(100)}, nil).Once()
	s.mockAgentSvc.On("ResolveStaffAgent", ctx, int64(3)).Return(s.staffAgent, nil).Once()
	s.mockProcessor.On("Refund", ctx, "sale_5", decimal.NewFromInt(40)).
		Return(&clients.Sale{ID: "refund_9", Type: "credit"}, nil).Once()

	s.mockGiftRepo.On("Begin", ctx).Return(nil, nil).Once()
	// The refund entry carries the processor's refund id so two partial
	// refunds of one sale never collide.
	s.mockTxnRepo.On("SaveTransaction", ctx, nil, mock.MatchedBy(func(txn *domain.Transaction) bool {
		return txn.Kind == domain.KindRefund &&
			txn.ReferenceNumber == "refund_9" &&
			txn.GrossAmount.Equal(decimal.NewFromInt(60))
	})).Return(nil).Once()
	s.mockGiftRepo.On("Commit", ctx, nil).Return(nil).Once()

	resp, err := s.service.RefundSale(ctx, dto.RefundRequest{
		ReferenceNumber: "sale_5",
		Amount:          decimal.NewFromInt(40),
	}, 3)

	s.Require().NoError(err)
	s.Equal("refund_9", resp.ReferenceNumber)
	s.True(decimal.NewFromInt(60).Equal(resp.GrossAmount))
}

func (s *DonationServiceTestSuite) TestVoidSale_SettledSaleRejected() {
	ctx := context.Background()

	s.mockProcessor.On("FindSale", ctx, "sale_7").Return(&clients.Sale{
		ID:     "sale_7",
		Status: clients.SaleStatusSettled,
	}, nil).Once()

	_, err := s.service.VoidSale(ctx, dto.VoidRequest{ReferenceNumber: "sale_7"}, 3)

	s.ErrorIs(err, services.ErrSaleNotVoidable)
	s.mockProcessor.AssertNotCalled(s.T(), "Void", mock.Anything, mock.Anything)
}

func (s *DonationServiceTestSuite) TestVoidSale_AuthorizedSaleRejected() {
	ctx := context.Background()

	// A sale that was only authorized has not been submitted yet; voiding
	// waits until it is in the settlement queue.
	s.mockProcessor.On("FindSale", ctx, "sale_7").Return(&clients.Sale{
		ID:     "sale_7",
		Status: clients.SaleStatusAuthorized,
	}, nil).Once()

	_, err := s.service.VoidSale(ctx, dto.VoidRequest{ReferenceNumber: "sale_7"}, 3)

	s.ErrorIs(err, services.ErrSaleNotVoidable)
	s.mockProcessor.AssertNotCalled(s.T(), "Void", mock.Anything, mock.Anything)
}

func (s *DonationServiceTestSuite) TestVoidSale_ReturnsTotalToPreSale() {
	ctx := context.Background()
	gift := &domain.Gift{ID: 6, SearchableID: uuid.New()}

	s.mockProcessor.On("FindSale", ctx, "sale_7").Return(&clients.Sale{
		ID:     "sale_7",
		Status: clients.SaleStatusSubmittedForSettlement,
		Amount: decimal.NewFromInt(75),
	}, nil).Once()
	s.mockGiftRepo.On("FindGiftByReferenceNumber", ctx, "sale_7").Return(gift, nil).Once()
	s.mockAgentSvc.On("ResolveStaffAgent", ctx, int64(3)).Return(s.staffAgent, nil).Once()
	s.mockProcessor.On("Void", ctx, "sale_7").Return(&clients.Sale{
		ID:     "sale_7",
		Status: clients.SaleStatusVoided,
		Amount: decimal.NewFromInt(75),
	}, nil).Once()

	s.mockGiftRepo.On("Begin", ctx).Return(nil, nil).Once()
	s.mockTxnRepo.On("FindLatestTransactionByGiftID", ctx, int64(6)).
		Return(&domain.Transaction{GiftID: 6, GrossAmount: decimal.NewFromInt(75)}, nil).Once()
	s.mockTxnRepo.On("SaveTransaction", ctx, nil, mock.MatchedBy(func(txn *domain.Transaction) bool {
		return txn.Kind == domain.KindVoid && txn.GrossAmount.IsZero()
	})).Return(nil).Once()
	s.mockGiftRepo.On("Commit", ctx, nil).Return(nil).Once()

	resp, err := s.service.VoidSale(ctx, dto.VoidRequest{ReferenceNumber: "sale_7"}, 3)

	s.Require().NoError(err)
	s.True(resp.GrossAmount.IsZero())
}

func (s *DonationServiceTestSuite) TestRecordBouncedCheck_RejectsNonCheckGift() {
	ctx := context.Background()
	gift := &domain.Gift{ID: 8, SearchableID: uuid.New(), MethodUsedID: 7}

	s.mockGiftRepo.On("FindGiftBySearchableID", ctx, gift.SearchableID).Return(gift, nil).Once()
	s.mockMethodRepo.On("FindMethodUsedByID", ctx, int16(7)).
		Return(&domain.MethodUsed{ID: 7, Name: domain.MethodCash}, nil).Once()

	_, err := s.service.RecordBouncedCheck(ctx, dto.BouncedCheckRequest{
		GiftID: gift.SearchableID.String(),
	}, 3)

	s.ErrorIs(err, services.ErrNotACheck)
}

func (s *DonationServiceTestSuite) TestRecordBouncedCheck_ReversesCheckAmount() {
	ctx := context.Background()
	gift := &domain.Gift{ID: 8, SearchableID: uuid.New(), MethodUsedID: 4}

	s.mockGiftRepo.On("FindGiftBySearchableID", ctx, gift.SearchableID).Return(gift, nil).Once()
	s.mockMethodRepo.On("FindMethodUsedByID", ctx, int16(4)).
		Return(&domain.MethodUsed{ID: 4, Name: domain.MethodCheck}, nil).Once()
	s.mockTxnRepo.On("FindTransactionsByGiftID", ctx, int64(8)).Return([]domain.Transaction{
		{GiftID: 8, Kind: domain.KindGift, Status: domain.StatusCompleted, ReferenceNumber: "check_1", GrossAmount: decimal.NewFromInt(500)},
		{GiftID: 8, Kind: domain.KindDepositToBank, Status: domain.StatusCompleted, ReferenceNumber: "check_1", GrossAmount: decimal.NewFromInt(500)},
	}, nil).Once()
	s.mockAgentSvc.On("ResolveStaffAgent", ctx, int64(3)).Return(s.staffAgent, nil).Once()

	s.mockGiftRepo.On("Begin", ctx).Return(nil, nil).Once()
	s.mockTxnRepo.On("FindLatestTransactionByGiftID", ctx, int64(8)).
		Return(&domain.Transaction{GiftID: 8, GrossAmount: decimal.NewFromInt(500)}, nil).Once()
	// Bounce subtracts the original check amount, zeroing the gift.
	s.mockTxnRepo.On("SaveTransaction", ctx, nil, mock.MatchedBy(func(txn *domain.Transaction) bool {
		return txn.Kind == domain.KindBounced &&
			txn.ReferenceNumber == "check_1" &&
			txn.GrossAmount.IsZero()
	})).Return(nil).Once()
	s.mockGiftRepo.On("Commit", ctx, nil).Return(nil).Once()

	resp, err := s.service.RecordBouncedCheck(ctx, dto.BouncedCheckRequest{
		GiftID: gift.SearchableID.String(),
		Notes:  "Returned NSF 2024-05-09",
	}, 3)

	s.Require().NoError(err)
	s.Equal(string(domain.KindBounced), resp.Kind)
	s.True(resp.GrossAmount.IsZero())
}

func (s *DonationServiceTestSuite) TestCorrectGift_ReallocatesAndKeepsTotal() {
	ctx := context.Background()
	subID := "sub_9"
	gift := &domain.Gift{ID: 9, SearchableID: uuid.New(), GivenTo: domain.AccountAction, RecurringSubscriptionID: &subID}
	newAmount := decimal.NewFromInt(25)

	s.mockGiftRepo.On("FindGiftBySearchableID", ctx, gift.SearchableID).Return(gift, nil).Once()
	s.mockAgentSvc.On("ResolveStaffAgent", ctx, int64(3)).Return(s.staffAgent, nil).Once()
	// The beneficiary change moves future billing cycles onto the new
	// merchant account along with the new amount.
	s.mockProcessor.On("UpdateSubscription", ctx, "sub_9", clients.SubscriptionUpdate{
		Amount:            &newAmount,
		PlanID:            "monthly_gift",
		MerchantAccountID: "nerf_usd",
	}).Return(nil).Once()
	s.mockTxnRepo.On("FindTransactionsByGiftID", ctx, int64(9)).Return([]domain.Transaction{
		{GiftID: 9, Kind: domain.KindGift, Status: domain.StatusCompleted, ReferenceNumber: "sale_20", GrossAmount: decimal.NewFromInt(20)},
	}, nil).Once()

	s.mockGiftRepo.On("Begin", ctx).Return(nil, nil).Once()
	s.mockGiftRepo.On("UpdateGiftGivenTo", ctx, nil, int64(9), domain.AccountNERF).Return(nil).Once()
	s.mockTxnRepo.On("FindLatestTransactionByGiftID", ctx, int64(9)).
		Return(&domain.Transaction{GiftID: 9, GrossAmount: decimal.NewFromInt(20)}, nil).Once()
	s.mockTxnRepo.On("SaveTransaction", ctx, nil, mock.MatchedBy(func(txn *domain.Transaction) bool {
		return txn.Kind == domain.KindCorrection &&
			txn.ReferenceNumber == "sale_20" &&
			txn.GrossAmount.Equal(decimal.NewFromInt(20))
	})).Return(nil).Once()
	s.mockGiftRepo.On("Commit", ctx, nil).Return(nil).Once()

	resp, err := s.service.CorrectGift(ctx, dto.CorrectionRequest{
		GiftID:    gift.SearchableID.String(),
		GivenTo:   domain.AccountNERF,
		NewAmount: &newAmount,
	}, 3)

	s.Require().NoError(err)
	s.Equal(string(domain.KindCorrection), resp.Kind)
	s.True(decimal.NewFromInt(20).Equal(resp.GrossAmount))
	s.mockProcessor.AssertExpectations(s.T())
}

func (s *DonationServiceTestSuite) TestCorrectGift_BeneficiaryChangeAloneMovesSubscription() {
	ctx := context.Background()
	subID := "sub_9"
	gift := &domain.Gift{ID: 9, SearchableID: uuid.New(), GivenTo: domain.AccountAction, RecurringSubscriptionID: &subID}

	s.mockGiftRepo.On("FindGiftBySearchableID", ctx, gift.SearchableID).Return(gift, nil).Once()
	s.mockAgentSvc.On("ResolveStaffAgent", ctx, int64(3)).Return(s.staffAgent, nil).Once()
	// Even with the amount untouched, reallocating a recurring gift must
	// move the subscription or future cycles keep settling into the old
	// beneficiary's merchant account.
	s.mockProcessor.On("UpdateSubscription", ctx, "sub_9", clients.SubscriptionUpdate{
		PlanID:            "monthly_gift",
		MerchantAccountID: "nerf_usd",
	}).Return(nil).Once()
	s.mockTxnRepo.On("FindTransactionsByGiftID", ctx, int64(9)).Return([]domain.Transaction{
		{GiftID: 9, Kind: domain.KindGift, Status: domain.StatusCompleted, ReferenceNumber: "sale_20", GrossAmount: decimal.NewFromInt(20)},
	}, nil).Once()

	s.mockGiftRepo.On("Begin", ctx).Return(nil, nil).Once()
	s.mockGiftRepo.On("UpdateGiftGivenTo", ctx, nil, int64(9), domain.AccountNERF).Return(nil).Once()
	s.mockTxnRepo.On("FindLatestTransactionByGiftID", ctx, int64(9)).
		Return(&domain.Transaction{GiftID: 9, GrossAmount: decimal.NewFromInt(20)}, nil).Once()
	s.mockTxnRepo.On("SaveTransaction", ctx, nil, mock.MatchedBy(func(txn *domain.Transaction) bool {
		return txn.Kind == domain.KindCorrection && txn.GrossAmount.Equal(decimal.NewFromInt(20))
	})).Return(nil).Once()
	s.mockGiftRepo.On("Commit", ctx, nil).Return(nil).Once()

	_, err := s.service.CorrectGift(ctx, dto.CorrectionRequest{
		GiftID:  gift.SearchableID.String(),
		GivenTo: domain.AccountNERF,
	}, 3)

	s.Require().NoError(err)
	s.mockProcessor.AssertExpectations(s.T())
}

func TestDonationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(DonationServiceTestSuite))
}
