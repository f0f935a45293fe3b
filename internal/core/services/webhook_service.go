package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/civicgift/donate-backend/internal/apperrors"
	"github.com/civicgift/donate-backend/internal/core/domain"
	"github.com/civicgift/donate-backend/internal/core/ports/clients"
	portsrepo "github.com/civicgift/donate-backend/internal/core/ports/repositories"
	portssvc "github.com/civicgift/donate-backend/internal/core/ports/services"
	"github.com/civicgift/donate-backend/internal/middleware"
	"github.com/civicgift/donate-backend/internal/platform/config"
)

var (
	ErrNoGiftForCustomer = errors.New("no gift found for vault customer")
	ErrNoCustomerOnSale  = errors.New("sale carries no vault customer")
)

// webhookService applies subscription billing webhooks to the ledger. Each
// billing cycle past the first becomes a new gift mirroring the one that
// started the subscription.
type webhookService struct {
	cfg          *config.Config
	giftRepo     portsrepo.GiftRepositoryFacade
	donorRepo    portsrepo.DonorRepositoryFacade
	thankYouRepo portsrepo.ThankYouRepositoryFacade
	ledger       *LedgerService
	agentSvc     portssvc.AgentSvcFacade
	processor    clients.Processor
}

// NewWebhookService creates a new WebhookService.
func NewWebhookService(
	cfg *config.Config,
	giftRepo portsrepo.GiftRepositoryFacade,
	donorRepo portsrepo.DonorRepositoryFacade,
	thankYouRepo portsrepo.ThankYouRepositoryFacade,
	ledger *LedgerService,
	agentSvc portssvc.AgentSvcFacade,
	processor clients.Processor,
) portssvc.WebhookSvcFacade {
	return &webhookService{
		cfg:          cfg,
		giftRepo:     giftRepo,
		donorRepo:    donorRepo,
		thankYouRepo: thankYouRepo,
		ledger:       ledger,
		agentSvc:     agentSvc,
		processor:    processor,
	}
}

var _ portssvc.WebhookSvcFacade = (*webhookService)(nil)

// HandleSubscriptionEvent verifies and applies one webhook delivery.
func (s *webhookService) HandleSubscriptionEvent(ctx context.Context, signature, payload string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	notification, err := s.processor.ParseWebhook(signature, payload)
	if err != nil {
		return err
	}

	status, managed := WebhookStatusFor(notification.Kind)
	if !managed {
		logger.Info("Ignoring unmanaged webhook kind", slog.String("kind", notification.Kind))
		return nil
	}

	// The first charge of a subscription is recorded synchronously when the
	// donation is created, so a history of one sale carries nothing new.
	sales := notification.Subscription.Transactions
	if len(sales) <= 1 {
		logger.Info("Subscription has no new billing cycle",
			slog.String("subscription_id", notification.Subscription.ID),
			slog.Int("sale_count", len(sales)))
		return nil
	}
	newest := sales[0]

	applied, err := s.ledger.transactionRepo.ExistsByReference(ctx, newest.ID)
	if err != nil {
		return err
	}
	if applied {
		logger.Info("Webhook sale already applied", slog.String("sale_id", newest.ID))
		return nil
	}

	sourceGift, err := s.findSourceGift(ctx, newest)
	if err != nil {
		return err
	}
	agent, err := s.agentSvc.ResolveAgentByName(ctx, domain.AgentNameProcessor)
	if err != nil {
		return err
	}

	subscriptionID := notification.Subscription.ID
	gift := domain.Gift{
		SearchableID:            uuid.New(),
		Donor:                   sourceGift.Donor,
		CampaignID:              sourceGift.CampaignID,
		CustomerID:              sourceGift.CustomerID,
		MethodUsedID:            sourceGift.MethodUsedID,
		SourcedFromAgentID:      &agent.ID,
		GivenTo:                 sourceGift.GivenTo,
		RecurringSubscriptionID: &subscriptionID,
	}

	tx, err := s.giftRepo.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = s.giftRepo.Rollback(ctx, tx) }()

	if err := s.giftRepo.SaveGift(ctx, tx, &gift); err != nil {
		return err
	}
	if err := duplicatePendingDonor(ctx, tx, s.donorRepo, sourceGift, &gift); err != nil {
		return err
	}

	txn, err := s.ledger.AppendWithTotal(ctx, tx, TransactionInput{
		GiftID:          gift.ID,
		Date:            newest.CreatedAt,
		AgentID:         &agent.ID,
		Kind:            domain.KindGift,
		Status:          status,
		ReferenceNumber: newest.ID,
		Amount:          newest.Amount,
	}, decimal.Zero)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			logger.Info("Webhook sale already applied", slog.String("sale_id", newest.ID))
			return nil
		}
		return err
	}

	if status == domain.StatusCompleted {
		if err := ensureThankYouMarker(ctx, tx, s.thankYouRepo, gift.ID, txn.GrossAmount, s.cfg.ThankYouThreshold); err != nil {
			return err
		}
	}

	if err := s.giftRepo.Commit(ctx, tx); err != nil {
		return fmt.Errorf("failed to commit webhook gift: %w", err)
	}

	logger.Info("Subscription billing applied",
		slog.String("kind", notification.Kind),
		slog.String("subscription_id", subscriptionID),
		slog.String("sale_id", newest.ID),
		slog.Int64("gift_id", gift.ID),
		slog.String("status", string(status)))
	return nil
}

// findSourceGift locates the gift that started the subscription via the
// sale's vault customer. The webhook payload does not always carry the
// customer, in which case the sale is re-fetched from the processor.
func (s *webhookService) findSourceGift(ctx context.Context, newest clients.Sale) (*domain.Gift, error) {
	customerID := newest.Customer.ID
	if customerID == "" {
		sale, err := s.processor.FindSale(ctx, newest.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to find sale %s: %w", newest.ID, err)
		}
		customerID = sale.Customer.ID
	}
	if customerID == "" {
		return nil, fmt.Errorf("%w: sale %s", ErrNoCustomerOnSale, newest.ID)
	}

	gifts, err := s.giftRepo.FindGiftsByCustomerID(ctx, customerID, domain.OnlineMethodNames())
	if err != nil {
		return nil, err
	}
	if len(gifts) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoGiftForCustomer, customerID)
	}
	return &gifts[0], nil
}

// duplicatePendingDonor copies the source gift's queued or caged donor row
// onto the new gift so the billing cycle stays attributable once matching
// resolves. Shared by the webhook and reconciliation paths.
func duplicatePendingDonor(ctx context.Context, tx pgx.Tx, donorRepo portsrepo.DonorRepositoryFacade, source *domain.Gift, gift *domain.Gift) error {
	if !source.Donor.IsPending() {
		return nil
	}
	pending, err := donorRepo.FindQueuedDonorByGiftID(ctx, source.ID)
	if err != nil {
		return err
	}
	if pending != nil {
		copy := *pending
		copy.ID = 0
		copy.GiftID = gift.ID
		copy.GiftSearchableID = gift.SearchableID
		return donorRepo.SaveQueuedDonor(ctx, tx, &copy)
	}
	if source.Donor.Kind != domain.DonorCaged {
		return nil
	}
	// No queued row; the source donor was caged for manual review. The new
	// cycle joins the same review queue.
	caged, err := donorRepo.FindCagedDonorByGiftID(ctx, source.ID)
	if err != nil || caged == nil {
		return err
	}
	copy := *caged
	copy.ID = 0
	copy.GiftID = gift.ID
	copy.GiftSearchableID = gift.SearchableID
	copy.TimesViewed = 0
	return donorRepo.SaveCagedDonor(ctx, tx, &copy)
}
