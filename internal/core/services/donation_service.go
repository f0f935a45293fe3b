package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/civicgift/donate-backend/internal/apperrors"
	"github.com/civicgift/donate-backend/internal/core/domain"
	"github.com/civicgift/donate-backend/internal/core/ports/clients"
	portsrepo "github.com/civicgift/donate-backend/internal/core/ports/repositories"
	portssvc "github.com/civicgift/donate-backend/internal/core/ports/services"
	"github.com/civicgift/donate-backend/internal/dto"
	"github.com/civicgift/donate-backend/internal/middleware"
	"github.com/civicgift/donate-backend/internal/platform/config"
)

var (
	ErrUnsupportedBeneficiary = errors.New("beneficiary account cannot receive donations")
	ErrNoMerchantAccount      = errors.New("no merchant account configured for beneficiary")
	ErrMethodNotFound         = errors.New("unknown payment method")
	ErrSaleNotRefundable      = errors.New("sale has not settled and cannot be refunded")
	ErrSaleNotVoidable        = errors.New("sale has settled and can no longer be voided")
	ErrRefundExceedsBalance   = errors.New("refund amount exceeds the gift's running total")
	ErrNotACheck              = errors.New("gift was not paid by check")
	ErrEmptyHistory           = errors.New("gift has no transaction history")
)

// donationService drives the synchronous donation paths: web form
// submissions, staff-entered gifts and the admin refund, void, correction
// and bounced-check actions. Everything it writes goes through the ledger.
type donationService struct {
	cfg          *config.Config
	giftRepo     portsrepo.GiftRepositoryFacade
	donorRepo    portsrepo.DonorRepositoryFacade
	methodRepo   portsrepo.MethodUsedRepositoryFacade
	campaignRepo portsrepo.CampaignRepositoryFacade
	thankYouRepo portsrepo.ThankYouRepositoryFacade
	ledger       *LedgerService
	agentSvc     portssvc.AgentSvcFacade
	matcher      portssvc.DonorMatchingSvc
	processor    clients.Processor
	notifier     clients.Notifier
}

// NewDonationService creates a new DonationService.
func NewDonationService(
	cfg *config.Config,
	giftRepo portsrepo.GiftRepositoryFacade,
	donorRepo portsrepo.DonorRepositoryFacade,
	methodRepo portsrepo.MethodUsedRepositoryFacade,
	campaignRepo portsrepo.CampaignRepositoryFacade,
	thankYouRepo portsrepo.ThankYouRepositoryFacade,
	ledger *LedgerService,
	agentSvc portssvc.AgentSvcFacade,
	matcher portssvc.DonorMatchingSvc,
	processor clients.Processor,
	notifier clients.Notifier,
) portssvc.DonationSvcFacade {
	return &donationService{
		cfg:          cfg,
		giftRepo:     giftRepo,
		donorRepo:    donorRepo,
		methodRepo:   methodRepo,
		campaignRepo: campaignRepo,
		thankYouRepo: thankYouRepo,
		ledger:       ledger,
		agentSvc:     agentSvc,
		matcher:      matcher,
		processor:    processor,
		notifier:     notifier,
	}
}

var _ portssvc.DonationSvcFacade = (*donationService)(nil)

// GetClientToken returns a short-lived hosted-fields token.
func (s *donationService) GetClientToken(ctx context.Context) (string, error) {
	return s.processor.GenerateClientToken(ctx)
}

// CreateWebDonation processes a public donation form submission: vault the
// donor's payment method, charge the sale or start the subscription, then
// commit the gift, its first ledger entry and the queued donor row together.
func (s *donationService) CreateWebDonation(ctx context.Context, req dto.CreateDonationRequest) (*dto.DonationResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	merchantAccountID, err := s.merchantAccountFor(req.GivenTo)
	if err != nil {
		return nil, err
	}
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: donation amount must be positive", apperrors.ErrValidation)
	}

	customerID, err := s.processor.CreateCustomer(ctx, clients.CustomerInput{
		FirstName:          req.Donor.FirstName,
		LastName:           req.Donor.LastName,
		Email:              req.Donor.Email,
		Phone:              req.Donor.Phone,
		PaymentMethodNonce: req.PaymentMethodNonce,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to vault customer: %w", err)
	}

	var sale *clients.Sale
	var subscriptionID *string
	if req.Recurring {
		subID, firstSale, err := s.processor.CreateSubscription(ctx, clients.SubscriptionInput{
			PaymentMethodToken: customerID,
			PlanID:             s.cfg.SubscriptionPlanID,
			Amount:             req.Amount,
			MerchantAccountID:  merchantAccountID,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create subscription: %w", err)
		}
		subscriptionID = &subID
		sale = firstSale
	} else {
		sale, err = s.processor.CreateSale(ctx, clients.SaleInput{
			Amount:             req.Amount,
			CustomerID:         customerID,
			PaymentMethodNonce: req.PaymentMethodNonce,
			MerchantAccountID:  merchantAccountID,
			BillingPostalCode:  req.Billing.Zipcode,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create sale: %w", err)
		}
	}

	methodName := domain.MethodWebCreditCard
	if sale != nil && sale.PaymentInstrumentType == "paypal_account" {
		methodName = domain.MethodWebPayPal
	}
	method, err := s.methodRepo.FindMethodUsedByName(ctx, methodName)
	if err != nil {
		return nil, fmt.Errorf("failed to find payment method %s: %w", methodName, err)
	}
	agent, err := s.agentSvc.ResolveAgentByName(ctx, domain.AgentNameDonateAPI)
	if err != nil {
		return nil, err
	}

	gift := domain.Gift{
		SearchableID:            uuid.New(),
		Donor:                   domain.QueuedDonorRef(),
		CampaignID:              s.resolveCampaignID(ctx, req.CampaignID),
		CustomerID:              customerID,
		MethodUsedID:            method.ID,
		SourcedFromAgentID:      &agent.ID,
		GivenTo:                 req.GivenTo,
		RecurringSubscriptionID: subscriptionID,
	}

	referenceNumber := ""
	if sale != nil {
		referenceNumber = sale.ID
	} else if subscriptionID != nil {
		referenceNumber = *subscriptionID
	}

	tx, err := s.giftRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = s.giftRepo.Rollback(ctx, tx) }()

	if err := s.giftRepo.SaveGift(ctx, tx, &gift); err != nil {
		return nil, err
	}
	if err := s.donorRepo.SaveQueuedDonor(ctx, tx, pendingDonorFrom(gift, req.Donor, req.Billing)); err != nil {
		return nil, err
	}

	status := domain.StatusRequested
	if sale != nil {
		txn, err := s.ledger.AppendWithTotal(ctx, tx, TransactionInput{
			GiftID:          gift.ID,
			AgentID:         &agent.ID,
			Kind:            domain.KindGift,
			Status:          domain.StatusCompleted,
			ReferenceNumber: sale.ID,
			Amount:          sale.Amount,
		}, decimal.Zero)
		if err != nil {
			return nil, err
		}
		status = txn.Status
		if err := s.queueThankYou(ctx, tx, gift.ID, txn.GrossAmount); err != nil {
			return nil, err
		}
	}

	if err := s.giftRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit donation: %w", err)
	}

	// The donation is committed; matching and receipt delivery must never
	// unwind it.
	if err := s.matcher.EnqueueMatch(ctx, gift.ID); err != nil {
		logger.Error("Failed to enqueue donor matching", slog.Int64("gift_id", gift.ID), slog.String("error", err.Error()))
	}
	if err := s.notifier.SendReceipt(ctx, clients.ReceiptEmail{
		ToEmail:       req.Donor.Email,
		FirstName:     req.Donor.FirstName,
		LastName:      req.Donor.LastName,
		Amount:        req.Amount.StringFixed(2),
		TransactionID: referenceNumber,
		GiftUUID:      gift.SearchableID.String(),
		Recurring:     req.Recurring,
	}); err != nil {
		logger.Error("Failed to send donation receipt", slog.Int64("gift_id", gift.ID), slog.String("error", err.Error()))
	}

	logger.Info("Web donation created",
		slog.Int64("gift_id", gift.ID),
		slog.String("given_to", string(req.GivenTo)),
		slog.Bool("recurring", req.Recurring))

	return &dto.DonationResponse{
		GiftID:          gift.SearchableID.String(),
		ReferenceNumber: referenceNumber,
		Status:          string(status),
		Amount:          req.Amount,
		Recurring:       req.Recurring,
	}, nil
}

// CreateAdminDonation records a staff-entered donation. Card methods charge
// the processor; check-like methods record a Gift entry dated at the
// instrument plus an immediate bank deposit.
func (s *donationService) CreateAdminDonation(ctx context.Context, req dto.CreateAdminDonationRequest, agentUserID int64) (*dto.DonationResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	method, err := s.methodRepo.FindMethodUsedByName(ctx, req.MethodUsed)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrMethodNotFound, req.MethodUsed)
		}
		return nil, err
	}
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: donation amount must be positive", apperrors.ErrValidation)
	}

	agent, err := s.agentSvc.ResolveStaffAgent(ctx, agentUserID)
	if err != nil {
		return nil, err
	}

	customerID := ""
	referenceNumber := req.ReferenceNumber
	amount := req.Amount
	if method.IsProcessorBacked() {
		merchantAccountID, err := s.merchantAccountFor(req.GivenTo)
		if err != nil {
			return nil, err
		}
		if req.PaymentMethodNonce == "" {
			return nil, fmt.Errorf("%w: payment method nonce is required for %s", apperrors.ErrValidation, method.Name)
		}
		customerID, err = s.processor.CreateCustomer(ctx, clients.CustomerInput{
			FirstName:          req.Donor.FirstName,
			LastName:           req.Donor.LastName,
			Email:              req.Donor.Email,
			Phone:              req.Donor.Phone,
			PaymentMethodNonce: req.PaymentMethodNonce,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to vault customer: %w", err)
		}
		sale, err := s.processor.CreateSale(ctx, clients.SaleInput{
			Amount:             req.Amount,
			CustomerID:         customerID,
			PaymentMethodNonce: req.PaymentMethodNonce,
			MerchantAccountID:  merchantAccountID,
			BillingPostalCode:  req.Billing.Zipcode,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create sale: %w", err)
		}
		referenceNumber = sale.ID
		amount = sale.Amount
	} else {
		if !req.GivenTo.IsValid() {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, req.GivenTo)
		}
		if referenceNumber == "" {
			return nil, fmt.Errorf("%w: reference number is required for %s", apperrors.ErrValidation, method.Name)
		}
	}

	donor := domain.QueuedDonorRef()
	if req.UserID != nil {
		donor = domain.ResolvedDonor(*req.UserID)
	}

	gift := domain.Gift{
		SearchableID:       uuid.New(),
		Donor:              donor,
		CampaignID:         s.resolveCampaignID(ctx, req.CampaignID),
		CustomerID:         customerID,
		MethodUsedID:       method.ID,
		SourcedFromAgentID: &agent.ID,
		GivenTo:            req.GivenTo,
	}

	giftDate := time.Now().UTC()
	if req.DateOfMethodUsed != nil {
		giftDate = req.DateOfMethodUsed.UTC()
	}

	tx, err := s.giftRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = s.giftRepo.Rollback(ctx, tx) }()

	if err := s.giftRepo.SaveGift(ctx, tx, &gift); err != nil {
		return nil, err
	}
	if !donor.IsResolved() {
		if err := s.donorRepo.SaveQueuedDonor(ctx, tx, pendingDonorFrom(gift, req.Donor, req.Billing)); err != nil {
			return nil, err
		}
	}

	txn, err := s.ledger.AppendWithTotal(ctx, tx, TransactionInput{
		GiftID:          gift.ID,
		Date:            giftDate,
		AgentID:         &agent.ID,
		Kind:            domain.KindGift,
		Status:          domain.StatusCompleted,
		ReferenceNumber: referenceNumber,
		Amount:          amount,
	}, decimal.Zero)
	if err != nil {
		return nil, err
	}

	// Checks and money orders are deposited the day staff record them.
	if method.Name == domain.MethodCheck || method.Name == domain.MethodMoneyOrder {
		bankAgent, err := s.agentSvc.ResolveAgentByName(ctx, domain.AgentNameBank)
		if err != nil {
			return nil, err
		}
		if _, err := s.ledger.AppendWithTotal(ctx, tx, TransactionInput{
			GiftID:          gift.ID,
			AgentID:         &bankAgent.ID,
			Kind:            domain.KindDepositToBank,
			Status:          domain.StatusCompleted,
			ReferenceNumber: referenceNumber,
			Amount:          amount,
		}, txn.GrossAmount); err != nil {
			return nil, err
		}
	}

	if err := s.queueThankYou(ctx, tx, gift.ID, txn.GrossAmount); err != nil {
		return nil, err
	}
	if err := s.giftRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit donation: %w", err)
	}

	if !donor.IsResolved() {
		if err := s.matcher.EnqueueMatch(ctx, gift.ID); err != nil {
			logger.Error("Failed to enqueue donor matching", slog.Int64("gift_id", gift.ID), slog.String("error", err.Error()))
		}
	}

	logger.Info("Admin donation recorded",
		slog.Int64("gift_id", gift.ID),
		slog.String("method", method.Name),
		slog.Int64("agent_id", agent.ID))

	return &dto.DonationResponse{
		GiftID:          gift.SearchableID.String(),
		ReferenceNumber: referenceNumber,
		Status:          string(txn.Status),
		Amount:          amount,
	}, nil
}

// RefundSale refunds up to the gift's running total of a settled sale and
// appends the Refund entry, referenced by the processor's refund id.
func (s *donationService) RefundSale(ctx context.Context, req dto.RefundRequest, agentUserID int64) (*dto.ActionResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	sale, err := s.processor.FindSale(ctx, req.ReferenceNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to find sale %s: %w", req.ReferenceNumber, err)
	}
	switch sale.Status {
	case clients.SaleStatusSettling, clients.SaleStatusSettled:
	default:
		return nil, fmt.Errorf("%w: sale %s is %s", ErrSaleNotRefundable, sale.ID, sale.Status)
	}

	gift, err := s.giftRepo.FindGiftByReferenceNumber(ctx, req.ReferenceNumber)
	if err != nil {
		return nil, err
	}
	if gift == nil {
		return nil, fmt.Errorf("no gift holds sale %s: %w", req.ReferenceNumber, apperrors.ErrNotFound)
	}

	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: refund amount must be positive", apperrors.ErrValidation)
	}
	total, err := s.ledger.RunningTotal(ctx, gift.ID)
	if err != nil {
		return nil, err
	}
	if req.Amount.GreaterThan(total) {
		return nil, fmt.Errorf("%w: %s > %s", ErrRefundExceedsBalance, req.Amount, total)
	}

	agent, err := s.agentSvc.ResolveStaffAgent(ctx, agentUserID)
	if err != nil {
		return nil, err
	}
	refund, err := s.processor.Refund(ctx, sale.ID, req.Amount)
	if err != nil {
		return nil, fmt.Errorf("failed to refund sale %s: %w", sale.ID, err)
	}

	tx, err := s.giftRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = s.giftRepo.Rollback(ctx, tx) }()

	txn, err := s.ledger.AppendWithTotal(ctx, tx, TransactionInput{
		GiftID:          gift.ID,
		AgentID:         &agent.ID,
		Kind:            domain.KindRefund,
		Status:          domain.StatusCompleted,
		ReferenceNumber: refund.ID,
		Amount:          req.Amount,
	}, total)
	if err != nil {
		return nil, err
	}
	if err := s.giftRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit refund: %w", err)
	}

	logger.Info("Sale refunded",
		slog.Int64("gift_id", gift.ID),
		slog.String("sale_id", sale.ID),
		slog.String("refund_id", refund.ID),
		slog.String("amount", req.Amount.String()))

	return actionResponse(gift, txn), nil
}

// VoidSale cancels a sale that has not settled and appends the Void entry,
// returning the running total to its pre-sale value.
func (s *donationService) VoidSale(ctx context.Context, req dto.VoidRequest, agentUserID int64) (*dto.ActionResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	sale, err := s.processor.FindSale(ctx, req.ReferenceNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to find sale %s: %w", req.ReferenceNumber, err)
	}
	if sale.Status != clients.SaleStatusSubmittedForSettlement {
		return nil, fmt.Errorf("%w: sale %s is %s", ErrSaleNotVoidable, sale.ID, sale.Status)
	}

	gift, err := s.giftRepo.FindGiftByReferenceNumber(ctx, req.ReferenceNumber)
	if err != nil {
		return nil, err
	}
	if gift == nil {
		return nil, fmt.Errorf("no gift holds sale %s: %w", req.ReferenceNumber, apperrors.ErrNotFound)
	}

	agent, err := s.agentSvc.ResolveStaffAgent(ctx, agentUserID)
	if err != nil {
		return nil, err
	}
	voided, err := s.processor.Void(ctx, sale.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to void sale %s: %w", sale.ID, err)
	}

	tx, err := s.giftRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = s.giftRepo.Rollback(ctx, tx) }()

	txn, err := s.ledger.Append(ctx, tx, TransactionInput{
		GiftID:          gift.ID,
		AgentID:         &agent.ID,
		Kind:            domain.KindVoid,
		Status:          domain.StatusCompleted,
		ReferenceNumber: voided.ID,
		Amount:          voided.Amount,
	})
	if err != nil {
		return nil, err
	}
	if err := s.giftRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit void: %w", err)
	}

	logger.Info("Sale voided",
		slog.Int64("gift_id", gift.ID),
		slog.String("sale_id", sale.ID))

	return actionResponse(gift, txn), nil
}

// CorrectGift reallocates a gift to another beneficiary account and, for
// recurring gifts, pushes the amount and merchant account changes through
// to the processor subscription. The Correction entry leaves the running
// total untouched.
func (s *donationService) CorrectGift(ctx context.Context, req dto.CorrectionRequest, agentUserID int64) (*dto.ActionResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	searchableID, err := uuid.Parse(req.GiftID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid gift id", apperrors.ErrValidation)
	}
	if !req.GivenTo.IsValid() {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, req.GivenTo)
	}
	gift, err := s.giftRepo.FindGiftBySearchableID(ctx, searchableID)
	if err != nil {
		return nil, err
	}
	agent, err := s.agentSvc.ResolveStaffAgent(ctx, agentUserID)
	if err != nil {
		return nil, err
	}

	if gift.RecurringSubscriptionID != nil {
		update := clients.SubscriptionUpdate{Amount: req.NewAmount}
		if req.GivenTo != gift.GivenTo {
			// Future billing cycles must settle into the new beneficiary's
			// merchant account.
			merchantAccountID, err := s.merchantAccountFor(req.GivenTo)
			if err != nil {
				return nil, err
			}
			update.MerchantAccountID = merchantAccountID
			update.PlanID = s.cfg.SubscriptionPlanID
		}
		if update.Amount != nil || update.MerchantAccountID != "" {
			if err := s.processor.UpdateSubscription(ctx, *gift.RecurringSubscriptionID, update); err != nil {
				return nil, fmt.Errorf("failed to update subscription %s: %w", *gift.RecurringSubscriptionID, err)
			}
		}
	}

	history, err := s.ledger.History(ctx, gift.ID)
	if err != nil {
		return nil, err
	}
	// The Correction carries the reference of the most recent completed
	// Gift entry so the processor sale stays traceable from it.
	referenceNumber := ""
	amount := decimal.Zero
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Kind == domain.KindGift && history[i].Status == domain.StatusCompleted {
			referenceNumber = history[i].ReferenceNumber
			break
		}
	}
	if req.NewAmount != nil {
		amount = *req.NewAmount
	}

	tx, err := s.giftRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = s.giftRepo.Rollback(ctx, tx) }()

	if err := s.giftRepo.UpdateGiftGivenTo(ctx, tx, gift.ID, req.GivenTo); err != nil {
		return nil, err
	}
	txn, err := s.ledger.Append(ctx, tx, TransactionInput{
		GiftID:          gift.ID,
		AgentID:         &agent.ID,
		Kind:            domain.KindCorrection,
		Status:          domain.StatusCompleted,
		ReferenceNumber: referenceNumber,
		Amount:          amount,
	})
	if err != nil {
		return nil, err
	}
	if err := s.giftRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit correction: %w", err)
	}

	logger.Info("Gift corrected",
		slog.Int64("gift_id", gift.ID),
		slog.String("given_to", string(req.GivenTo)))

	return actionResponse(gift, txn), nil
}

// RecordBouncedCheck reverses a deposited check that failed to clear by
// subtracting the original check amount from the running total.
func (s *donationService) RecordBouncedCheck(ctx context.Context, req dto.BouncedCheckRequest, agentUserID int64) (*dto.ActionResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	searchableID, err := uuid.Parse(req.GiftID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid gift id", apperrors.ErrValidation)
	}
	gift, err := s.giftRepo.FindGiftBySearchableID(ctx, searchableID)
	if err != nil {
		return nil, err
	}
	method, err := s.methodRepo.FindMethodUsedByID(ctx, gift.MethodUsedID)
	if err != nil {
		return nil, err
	}
	if method.Name != domain.MethodCheck {
		return nil, fmt.Errorf("%w: gift %s was paid by %s", ErrNotACheck, gift.SearchableID, method.Name)
	}

	history, err := s.ledger.History(ctx, gift.ID)
	if err != nil {
		return nil, err
	}
	if len(history) == 0 {
		return nil, fmt.Errorf("%w: gift %s", ErrEmptyHistory, gift.SearchableID)
	}
	// The first entry is the check itself, so its gross is the check amount
	// and its reference the check number.
	first := history[0]

	agent, err := s.agentSvc.ResolveStaffAgent(ctx, agentUserID)
	if err != nil {
		return nil, err
	}

	tx, err := s.giftRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = s.giftRepo.Rollback(ctx, tx) }()

	txn, err := s.ledger.Append(ctx, tx, TransactionInput{
		GiftID:          gift.ID,
		AgentID:         &agent.ID,
		Kind:            domain.KindBounced,
		Status:          domain.StatusCompleted,
		ReferenceNumber: first.ReferenceNumber,
		Amount:          first.GrossAmount,
		Notes:           req.Notes,
	})
	if err != nil {
		return nil, err
	}
	if err := s.giftRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit bounced check: %w", err)
	}

	logger.Info("Bounced check recorded",
		slog.Int64("gift_id", gift.ID),
		slog.String("check_number", first.ReferenceNumber))

	return actionResponse(gift, txn), nil
}

// merchantAccountFor maps a beneficiary account onto its processor merchant
// account. SUPPORT never takes donations, and accounts without a configured
// merchant account cannot be charged online.
func (s *donationService) merchantAccountFor(givenTo domain.BeneficiaryAccount) (string, error) {
	if !givenTo.IsValid() {
		return "", fmt.Errorf("%w: %s", apperrors.ErrValidation, givenTo)
	}
	if givenTo == domain.AccountSupport {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedBeneficiary, givenTo)
	}
	merchantAccountID, ok := s.cfg.MerchantAccounts[string(givenTo)]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNoMerchantAccount, givenTo)
	}
	return merchantAccountID, nil
}

// resolveCampaignID validates the requested campaign, falling back to the
// default campaign when the request names none or an unknown one.
func (s *donationService) resolveCampaignID(ctx context.Context, requested *int64) *int64 {
	if requested != nil {
		if _, err := s.campaignRepo.FindCampaignByID(ctx, *requested); err == nil {
			return requested
		}
	}
	fallback, err := s.campaignRepo.FindDefaultCampaign(ctx)
	if err != nil {
		return nil
	}
	return &fallback.ID
}

// queueThankYou marks the gift for a thank-you letter once its running total
// reaches the configured threshold.
func (s *donationService) queueThankYou(ctx context.Context, tx pgx.Tx, giftID int64, gross decimal.Decimal) error {
	return ensureThankYouMarker(ctx, tx, s.thankYouRepo, giftID, gross, s.cfg.ThankYouThreshold)
}

func pendingDonorFrom(gift domain.Gift, donor dto.DonorDetails, billing dto.BillingAddress) *domain.PendingDonor {
	return &domain.PendingDonor{
		GiftID:           gift.ID,
		GiftSearchableID: gift.SearchableID,
		CampaignID:       gift.CampaignID,
		CustomerID:       gift.CustomerID,
		EmailAddress:     donor.Email,
		FirstName:        donor.FirstName,
		LastName:         donor.LastName,
		Address:          billing.Street,
		City:             billing.City,
		State:            billing.State,
		Zipcode:          billing.Zipcode,
		PhoneNumber:      donor.Phone,
	}
}

func actionResponse(gift *domain.Gift, txn *domain.Transaction) *dto.ActionResponse {
	return &dto.ActionResponse{
		GiftID:          gift.SearchableID.String(),
		Kind:            string(txn.Kind),
		Status:          string(txn.Status),
		ReferenceNumber: txn.ReferenceNumber,
		GrossAmount:     txn.GrossAmount,
	}
}
