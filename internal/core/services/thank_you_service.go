package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/civicgift/donate-backend/internal/core/domain"
	portsrepo "github.com/civicgift/donate-backend/internal/core/ports/repositories"
	portssvc "github.com/civicgift/donate-backend/internal/core/ports/services"
	"github.com/civicgift/donate-backend/internal/dto"
	"github.com/civicgift/donate-backend/internal/middleware"
)

var ErrNoHistoryForLetter = errors.New("gift has no transactions to stamp")

// thankYouService serves the thank-you letter queue.
type thankYouService struct {
	thankYouRepo portsrepo.ThankYouRepositoryFacade
	giftRepo     portsrepo.GiftRepositoryFacade
	ledger       *LedgerService
	agentSvc     portssvc.AgentSvcFacade
}

// NewThankYouService creates a new ThankYouService.
func NewThankYouService(
	thankYouRepo portsrepo.ThankYouRepositoryFacade,
	giftRepo portsrepo.GiftRepositoryFacade,
	ledger *LedgerService,
	agentSvc portssvc.AgentSvcFacade,
) portssvc.ThankYouSvcFacade {
	return &thankYouService{
		thankYouRepo: thankYouRepo,
		giftRepo:     giftRepo,
		ledger:       ledger,
		agentSvc:     agentSvc,
	}
}

var _ portssvc.ThankYouSvcFacade = (*thankYouService)(nil)

// ListQueue retrieves gifts awaiting a letter.
func (s *thankYouService) ListQueue(ctx context.Context) (*dto.ListThankYouResponse, error) {
	markers, err := s.thankYouRepo.ListThankYouMarkers(ctx)
	if err != nil {
		return nil, err
	}
	resp := &dto.ListThankYouResponse{Items: make([]dto.ThankYouItemResponse, 0, len(markers))}
	for _, marker := range markers {
		gift, err := s.giftRepo.FindGiftByID(ctx, marker.GiftID)
		if err != nil {
			return nil, err
		}
		item := dto.ThankYouItemResponse{
			MarkerID: marker.ID,
			GiftID:   gift.SearchableID.String(),
			GivenTo:  string(gift.GivenTo),
		}
		latest, err := s.ledger.Latest(ctx, marker.GiftID)
		if err != nil {
			return nil, err
		}
		if latest != nil {
			item.GrossAmount = latest.GrossAmount
		}
		resp.Items = append(resp.Items, item)
	}
	return resp, nil
}

// MarkSent records that the letter went out: stamps the send time on the
// latest transaction, appends a note and removes the marker.
func (s *thankYouService) MarkSent(ctx context.Context, markerID int64, agentUserID int64) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	marker, err := s.thankYouRepo.FindThankYouMarkerByID(ctx, markerID)
	if err != nil {
		return err
	}
	latest, err := s.ledger.Latest(ctx, marker.GiftID)
	if err != nil {
		return err
	}
	if latest == nil {
		return fmt.Errorf("%w: gift %d", ErrNoHistoryForLetter, marker.GiftID)
	}
	agent, err := s.agentSvc.ResolveStaffAgent(ctx, agentUserID)
	if err != nil {
		return err
	}

	tx, err := s.thankYouRepo.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = s.thankYouRepo.Rollback(ctx, tx) }()

	now := time.Now().UTC()
	if err := s.ledger.transactionRepo.UpdateReceiptSentAt(ctx, tx, latest.ID, now); err != nil {
		return err
	}
	if _, err := s.ledger.AppendWithTotal(ctx, tx, TransactionInput{
		GiftID:          marker.GiftID,
		Date:            now,
		AgentID:         &agent.ID,
		Kind:            domain.KindNote,
		Status:          domain.StatusThankYouSent,
		ReferenceNumber: latest.ReferenceNumber,
		Notes:           "Thank you letter sent",
	}, latest.GrossAmount); err != nil {
		return err
	}
	if err := s.thankYouRepo.DeleteThankYouMarker(ctx, tx, marker.ID); err != nil {
		return err
	}
	if err := s.thankYouRepo.Commit(ctx, tx); err != nil {
		return fmt.Errorf("failed to commit thank you letter: %w", err)
	}

	logger.Info("Thank you letter recorded",
		slog.Int64("marker_id", markerID),
		slog.Int64("gift_id", marker.GiftID),
		slog.Int64("agent_id", agent.ID))
	return nil
}
