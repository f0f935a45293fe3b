package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/civicgift/donate-backend/internal/core/domain"
	"github.com/civicgift/donate-backend/internal/core/ports/clients"
	portsrepo "github.com/civicgift/donate-backend/internal/core/ports/repositories"
	portssvc "github.com/civicgift/donate-backend/internal/core/ports/services"
	"github.com/civicgift/donate-backend/internal/dto"
	"github.com/civicgift/donate-backend/internal/middleware"
	"github.com/civicgift/donate-backend/internal/platform/config"
)

// Sale status timestamps the sweep searches on. The first group may carry
// ledger activity; the second only ever feeds the failed report.
var (
	trackedStatusFields = []string{
		"authorized_at",
		"submitted_for_settlement_at",
		"settled_at",
		"voided_at",
	}
	failureStatusFields = []string{
		"processor_declined_at",
		"gateway_rejected_at",
		"failed_at",
		"authorization_expired_at",
	}
)

// Report names double as blobstore key prefixes and summary map keys.
const (
	reportPrioritySales    = "priority_sale"
	reportPriorityDisputes = "priority_dispute"
	reportFailedSales      = "failed"
	reportDisputes         = "dispute"
)

var (
	saleReportHeader = []string{
		"id", "status", "amount", "merchant_account_id",
		"subscription_id", "customer_id", "created_at",
	}
	disputeReportHeader = []string{
		"id", "kind", "status", "reason", "amount",
		"transaction_id", "received_date",
	}
)

// reconcileService sweeps the processor for sales and disputes the ledger
// has not recorded yet and replays their status histories. Anything it
// cannot attribute goes to a priority report instead of the ledger.
type reconcileService struct {
	cfg          *config.Config
	giftRepo     portsrepo.GiftRepositoryFacade
	donorRepo    portsrepo.DonorRepositoryFacade
	thankYouRepo portsrepo.ThankYouRepositoryFacade
	ledger       *LedgerService
	agentSvc     portssvc.AgentSvcFacade
	processor    clients.Processor
	notifier     clients.Notifier
	blobstore    clients.Blobstore
}

// NewReconcileService creates a new ReconcileService.
func NewReconcileService(
	cfg *config.Config,
	giftRepo portsrepo.GiftRepositoryFacade,
	donorRepo portsrepo.DonorRepositoryFacade,
	thankYouRepo portsrepo.ThankYouRepositoryFacade,
	ledger *LedgerService,
	agentSvc portssvc.AgentSvcFacade,
	processor clients.Processor,
	notifier clients.Notifier,
	blobstore clients.Blobstore,
) portssvc.ReconcileSvcFacade {
	return &reconcileService{
		cfg:          cfg,
		giftRepo:     giftRepo,
		donorRepo:    donorRepo,
		thankYouRepo: thankYouRepo,
		ledger:       ledger,
		agentSvc:     agentSvc,
		processor:    processor,
		notifier:     notifier,
		blobstore:    blobstore,
	}
}

var _ portssvc.ReconcileSvcFacade = (*reconcileService)(nil)

// Run sweeps the configured window back from now. Every write dedupes on
// the (gift, kind, status, reference) key, so a second run over the same
// window changes nothing.
func (s *reconcileService) Run(ctx context.Context, now time.Time) (*dto.ReconcileSummary, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	start := now.Add(-s.cfg.ReconcileWindow)

	summary := &dto.ReconcileSummary{ReportURLs: map[string]string{}}
	reports := map[string][][]string{}

	agent, err := s.agentSvc.ResolveAgentByName(ctx, domain.AgentNameProcessor)
	if err != nil {
		return nil, err
	}

	sales, err := s.collectSales(ctx, trackedStatusFields, start, now)
	if err != nil {
		return nil, err
	}
	summary.SalesExamined = len(sales)

	failed, err := s.collectSales(ctx, failureStatusFields, start, now)
	if err != nil {
		return nil, err
	}
	for _, sale := range failed {
		reports[reportFailedSales] = append(reports[reportFailedSales], saleReportRow(sale))
		summary.FailedSales++
	}

	for _, sale := range sales {
		if err := s.triageSale(ctx, agent.ID, sale, summary, reports); err != nil {
			logger.Error("Failed to reconcile sale",
				slog.String("sale_id", sale.ID),
				slog.String("error", err.Error()))
		}
	}

	disputes, err := s.processor.SearchDisputes(ctx, start, now)
	if err != nil {
		return nil, fmt.Errorf("failed to search disputes: %w", err)
	}
	summary.DisputesExamined = len(disputes)
	for _, dispute := range disputes {
		reports[reportDisputes] = append(reports[reportDisputes], disputeReportRow(dispute))
		if err := s.triageDispute(ctx, agent.ID, dispute, summary, reports); err != nil {
			logger.Error("Failed to reconcile dispute",
				slog.String("dispute_id", dispute.ID),
				slog.String("error", err.Error()))
		}
	}

	s.publishReports(ctx, now, reports, summary)

	logger.Info("Reconciliation run finished",
		slog.Int("sales_examined", summary.SalesExamined),
		slog.Int("transactions_written", summary.TransactionsWritten),
		slog.Int("gifts_created", summary.GiftsCreated),
		slog.Int("disputes_examined", summary.DisputesExamined),
		slog.Int("fines_assessed", summary.FinesAssessed))
	return summary, nil
}

// collectSales searches one window per status field and dedupes sales that
// hit more than one, preserving first-seen order.
func (s *reconcileService) collectSales(ctx context.Context, statusFields []string, start, end time.Time) ([]clients.Sale, error) {
	seen := map[string]struct{}{}
	var sales []clients.Sale
	for _, field := range statusFields {
		found, err := s.processor.SearchSales(ctx, field, start, end)
		if err != nil {
			return nil, fmt.Errorf("failed to search sales by %s: %w", field, err)
		}
		for _, sale := range found {
			if _, ok := seen[sale.ID]; ok {
				continue
			}
			seen[sale.ID] = struct{}{}
			sales = append(sales, sale)
		}
	}
	return sales, nil
}

// triageSale routes one sale to the gift that should own it: refunds
// through the refunded sale, recurring sales through their subscription,
// and the rest through their own reference. A recurring sale no gift has
// claimed yet is a billing cycle the webhook missed and gets its own gift
// mirroring the one that started the subscription. Anything else that
// cannot be attributed goes to the priority report untouched.
func (s *reconcileService) triageSale(ctx context.Context, agentID int64, sale clients.Sale, summary *dto.ReconcileSummary, reports map[string][][]string) error {
	switch {
	case sale.IsRefund():
		gift, err := s.giftRepo.FindGiftByReferenceNumber(ctx, sale.RefundedTransactionID)
		if err != nil {
			return err
		}
		if gift == nil {
			reports[reportPrioritySales] = append(reports[reportPrioritySales], saleReportRow(sale))
			summary.PrioritySales++
			return nil
		}
		return s.applySale(ctx, gift, agentID, sale, summary)

	case sale.SubscriptionID != "":
		gift, err := s.giftRepo.FindGiftByReferenceNumber(ctx, sale.ID)
		if err != nil {
			return err
		}
		if gift != nil {
			return s.applySale(ctx, gift, agentID, sale, summary)
		}
		prior, err := s.giftRepo.FindGiftsBySubscriptionID(ctx, sale.SubscriptionID)
		if err != nil {
			return err
		}
		if len(prior) == 0 || prior[0].Donor.Kind == domain.DonorUnknown {
			reports[reportPrioritySales] = append(reports[reportPrioritySales], saleReportRow(sale))
			summary.PrioritySales++
			return nil
		}
		return s.createCycleGift(ctx, agentID, &prior[0], sale, summary)

	default:
		gift, err := s.giftRepo.FindGiftByReferenceNumber(ctx, sale.ID)
		if err != nil {
			return err
		}
		if gift != nil {
			return s.applySale(ctx, gift, agentID, sale, summary)
		}
		reports[reportPrioritySales] = append(reports[reportPrioritySales], saleReportRow(sale))
		summary.PrioritySales++
		return nil
	}
}

// applySale replays one sale's status history onto an existing gift inside
// a single database transaction.
func (s *reconcileService) applySale(ctx context.Context, gift *domain.Gift, agentID int64, sale clients.Sale, summary *dto.ReconcileSummary) error {
	tx, err := s.giftRepo.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = s.giftRepo.Rollback(ctx, tx) }()

	written, err := s.replaySaleEvents(ctx, tx, gift.ID, agentID, sale)
	if err != nil {
		return err
	}
	if written == 0 {
		return nil
	}
	if err := s.giftRepo.Commit(ctx, tx); err != nil {
		return fmt.Errorf("failed to commit sale replay: %w", err)
	}
	summary.TransactionsWritten += written
	return nil
}

// createCycleGift records a subscription billing cycle the webhook never
// delivered. The new gift mirrors the donor, campaign and beneficiary of
// the gift that started the subscription, and the sale's history replays
// onto it.
func (s *reconcileService) createCycleGift(ctx context.Context, agentID int64, source *domain.Gift, sale clients.Sale, summary *dto.ReconcileSummary) error {
	subscriptionID := sale.SubscriptionID
	gift := domain.Gift{
		SearchableID:            uuid.New(),
		Donor:                   source.Donor,
		CampaignID:              source.CampaignID,
		CustomerID:              source.CustomerID,
		MethodUsedID:            source.MethodUsedID,
		SourcedFromAgentID:      &agentID,
		GivenTo:                 source.GivenTo,
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
	if err := duplicatePendingDonor(ctx, tx, s.donorRepo, source, &gift); err != nil {
		return err
	}
	written, err := s.replaySaleEvents(ctx, tx, gift.ID, agentID, sale)
	if err != nil {
		return err
	}
	if err := s.giftRepo.Commit(ctx, tx); err != nil {
		return fmt.Errorf("failed to commit billing cycle gift: %w", err)
	}
	summary.GiftsCreated++
	summary.TransactionsWritten += written
	return nil
}

// replaySaleEvents folds the sale's status history into the gift's ledger
// in timestamp order, skipping events already recorded. A disbursed sale
// contributes a synthetic bank deposit event at its disbursement date.
func (s *reconcileService) replaySaleEvents(ctx context.Context, tx pgx.Tx, giftID, agentID int64, sale clients.Sale) (int, error) {
	events := make([]clients.StatusEvent, len(sale.StatusHistory))
	copy(events, sale.StatusHistory)
	if sale.DisbursementDate != nil {
		events = append(events, clients.StatusEvent{
			Status:    "disbursed",
			Timestamp: *sale.DisbursementDate,
			Amount:    sale.Amount,
		})
	}
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Timestamp.Before(events[j].Timestamp)
	})

	total, err := s.ledger.RunningTotal(ctx, giftID)
	if err != nil {
		return 0, err
	}

	notes := "Automated creation"
	if sale.RefundedTransactionID != "" {
		notes = fmt.Sprintf("Automated creation: parent ID is %s.", sale.RefundedTransactionID)
	}

	// Several raw statuses collapse onto the same ledger pair, so the
	// history may yield one pair twice; only the earliest event counts.
	applied := map[string]struct{}{}
	written := 0
	for _, event := range events {
		kind, status, ok := SaleKindStatusFor(event.Status, sale.IsRefund())
		if !ok {
			continue
		}
		pair := string(kind) + "/" + string(status)
		if _, ok := applied[pair]; ok {
			continue
		}
		applied[pair] = struct{}{}
		existing, err := s.ledger.transactionRepo.FindTransactionByReference(ctx, giftID, kind, status, sale.ID)
		if err != nil {
			return written, err
		}
		if existing != nil {
			total = existing.GrossAmount
			continue
		}
		txn, err := s.ledger.AppendWithTotal(ctx, tx, TransactionInput{
			GiftID:          giftID,
			Date:            event.Timestamp,
			AgentID:         &agentID,
			Kind:            kind,
			Status:          status,
			ReferenceNumber: sale.ID,
			Amount:          sale.Amount,
			Fee:             sale.ServiceFee,
			Notes:           notes,
		}, total)
		if err != nil {
			return written, err
		}
		total = txn.GrossAmount
		written++
		if kind == domain.KindGift && status == domain.StatusCompleted {
			if err := ensureThankYouMarker(ctx, tx, s.thankYouRepo, giftID, txn.GrossAmount, s.cfg.ThankYouThreshold); err != nil {
				return written, err
			}
		}
	}
	return written, nil
}

// triageDispute attributes one dispute through its disputed sale and
// replays its status history, assessing the chargeback fine first.
func (s *reconcileService) triageDispute(ctx context.Context, agentID int64, dispute clients.Dispute, summary *dto.ReconcileSummary, reports map[string][][]string) error {
	gift, err := s.giftRepo.FindGiftByReferenceNumber(ctx, dispute.TransactionID)
	if err != nil {
		return err
	}
	if gift == nil {
		reports[reportPriorityDisputes] = append(reports[reportPriorityDisputes], disputeReportRow(dispute))
		summary.PriorityDisputes++
		return nil
	}

	tx, err := s.giftRepo.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = s.giftRepo.Rollback(ctx, tx) }()

	written, fined, err := s.replayDisputeEvents(ctx, tx, gift.ID, agentID, dispute)
	if err != nil {
		return err
	}
	if written == 0 && !fined {
		return nil
	}
	if err := s.giftRepo.Commit(ctx, tx); err != nil {
		return fmt.Errorf("failed to commit dispute replay: %w", err)
	}
	summary.TransactionsWritten += written
	if fined {
		summary.FinesAssessed++
	}
	return nil
}

// replayDisputeEvents folds the dispute history into the gift's ledger.
// The processor fines every chargeback regardless of outcome, and that
// fine never shows in the history, so it is synthesized here and dated at
// the open event.
func (s *reconcileService) replayDisputeEvents(ctx context.Context, tx pgx.Tx, giftID, agentID int64, dispute clients.Dispute) (int, bool, error) {
	total, err := s.ledger.RunningTotal(ctx, giftID)
	if err != nil {
		return 0, false, err
	}

	fined := false
	if dispute.Kind == clients.DisputeKindChargeback {
		existing, err := s.ledger.transactionRepo.FindTransactionByReference(ctx, giftID, domain.KindFine, domain.StatusCompleted, dispute.ID)
		if err != nil {
			return 0, false, err
		}
		if existing == nil {
			fineDate := time.Now().UTC()
			for _, event := range dispute.StatusHistory {
				if event.Status == "open" {
					fineDate = event.EffectiveDate
					break
				}
			}
			txn, err := s.ledger.AppendWithTotal(ctx, tx, TransactionInput{
				GiftID:          giftID,
				Date:            fineDate,
				AgentID:         &agentID,
				Kind:            domain.KindFine,
				Status:          domain.StatusCompleted,
				ReferenceNumber: dispute.ID,
				Amount:          decimal.Zero,
				Fee:             s.cfg.ChargebackFine,
				Notes:           "Automated creation of chargeback dispute fine",
			}, total)
			if err != nil {
				return 0, false, err
			}
			total = txn.GrossAmount
			fined = true
		}
	}

	events := make([]clients.DisputeStatusEvent, len(dispute.StatusHistory))
	copy(events, dispute.StatusHistory)
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].EffectiveDate.Before(events[j].EffectiveDate)
	})

	// Terminal raw statuses all collapse onto the lost pair; only the
	// earliest event per pair counts.
	applied := map[domain.TransactionStatus]struct{}{}
	written := 0
	for _, event := range events {
		status, ok := DisputeStatusFor(event.Status)
		if !ok {
			continue
		}
		if _, ok := applied[status]; ok {
			continue
		}
		applied[status] = struct{}{}
		existing, err := s.ledger.transactionRepo.FindTransactionByReference(ctx, giftID, domain.KindDispute, status, dispute.ID)
		if err != nil {
			return written, fined, err
		}
		if existing != nil {
			total = existing.GrossAmount
			continue
		}
		txn, err := s.ledger.AppendWithTotal(ctx, tx, TransactionInput{
			GiftID:          giftID,
			Date:            event.EffectiveDate,
			AgentID:         &agentID,
			Kind:            domain.KindDispute,
			Status:          status,
			ReferenceNumber: dispute.ID,
			Amount:          dispute.Amount,
			Notes:           "Automated creation",
		}, total)
		if err != nil {
			return written, fined, err
		}
		total = txn.GrossAmount
		written++
	}
	return written, fined, nil
}

// publishReports uploads every non-empty report and emails the summary.
// Upload failures degrade to log entries; the run's ledger writes are
// already committed.
func (s *reconcileService) publishReports(ctx context.Context, now time.Time, reports map[string][][]string, summary *dto.ReconcileSummary) {
	logger := middleware.GetLoggerFromCtx(ctx)

	headers := map[string][]string{
		reportPrioritySales:    saleReportHeader,
		reportFailedSales:      saleReportHeader,
		reportPriorityDisputes: disputeReportHeader,
		reportDisputes:         disputeReportHeader,
	}
	for _, name := range []string{reportPrioritySales, reportPriorityDisputes, reportFailedSales, reportDisputes} {
		rows := reports[name]
		if len(rows) == 0 {
			continue
		}
		content, err := csvBytes(headers[name], rows)
		if err != nil {
			logger.Error("Failed to encode report", slog.String("report", name), slog.String("error", err.Error()))
			continue
		}
		key := fmt.Sprintf("%s_report_%s.csv", name, now.UTC().Format("2006-01-02"))
		url, err := s.blobstore.Upload(ctx, key, "text/csv", content)
		if err != nil {
			logger.Error("Failed to upload report", slog.String("report", name), slog.String("error", err.Error()))
			continue
		}
		summary.ReportURLs[name] = url
	}

	if len(summary.ReportURLs) == 0 {
		return
	}
	subject := fmt.Sprintf("Reconciliation reports for %s", now.UTC().Format("2006-01-02"))
	if err := s.notifier.SendReportSummary(ctx, subject, summary.ReportURLs); err != nil {
		logger.Error("Failed to send report summary", slog.String("error", err.Error()))
	}
}

func saleReportRow(sale clients.Sale) []string {
	return []string{
		sale.ID,
		sale.Status,
		sale.Amount.StringFixed(2),
		sale.MerchantAccountID,
		sale.SubscriptionID,
		sale.Customer.ID,
		sale.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func disputeReportRow(dispute clients.Dispute) []string {
	return []string{
		dispute.ID,
		dispute.Kind,
		dispute.Status,
		dispute.Reason,
		dispute.Amount.StringFixed(2),
		dispute.TransactionID,
		dispute.ReceivedDate.UTC().Format(time.RFC3339),
	}
}

func csvBytes(header []string, rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return nil, err
	}
	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
