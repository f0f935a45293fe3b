package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/hibiken/asynq"

	"github.com/civicgift/donate-backend/internal/apperrors"
	"github.com/civicgift/donate-backend/internal/core/domain"
	"github.com/civicgift/donate-backend/internal/core/ports/clients"
	portsrepo "github.com/civicgift/donate-backend/internal/core/ports/repositories"
	portssvc "github.com/civicgift/donate-backend/internal/core/ports/services"
	"github.com/civicgift/donate-backend/internal/dto"
	"github.com/civicgift/donate-backend/internal/middleware"
)

// TaskDonorMatch is the queue task that matches one queued donor against
// the user directory.
const TaskDonorMatch = "donor:match"

// DonorMatchPayload is the task payload for TaskDonorMatch.
type DonorMatchPayload struct {
	QueuedDonorID int64 `json:"queuedDonorID"`
}

var (
	ErrNotQueued          = errors.New("gift has no queued donor")
	ErrResolveTargetUnset = errors.New("exactly one of userID or newUser must be set")
)

// taskEnqueuer is the slice of asynq.Client the service needs.
type taskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// donorService owns the donor matching pipeline: queued donors are matched
// against the user directory by the caging worker, and the ones that fail
// land in the caged queue for manual review.
type donorService struct {
	giftRepo  portsrepo.GiftRepositoryFacade
	donorRepo portsrepo.DonorRepositoryFacade
	directory clients.UserDirectory
	queue     taskEnqueuer
}

// NewDonorService creates a new DonorService.
func NewDonorService(
	giftRepo portsrepo.GiftRepositoryFacade,
	donorRepo portsrepo.DonorRepositoryFacade,
	directory clients.UserDirectory,
	queue taskEnqueuer,
) portssvc.DonorSvcFacade {
	return &donorService{
		giftRepo:  giftRepo,
		donorRepo: donorRepo,
		directory: directory,
		queue:     queue,
	}
}

var _ portssvc.DonorSvcFacade = (*donorService)(nil)

// EnqueueMatch schedules matching for the gift's queued donor.
func (s *donorService) EnqueueMatch(ctx context.Context, giftID int64) error {
	queued, err := s.donorRepo.FindQueuedDonorByGiftID(ctx, giftID)
	if err != nil {
		return err
	}
	if queued == nil {
		return fmt.Errorf("%w: gift %d", ErrNotQueued, giftID)
	}
	payload, err := json.Marshal(DonorMatchPayload{QueuedDonorID: queued.ID})
	if err != nil {
		return fmt.Errorf("failed to marshal match payload: %w", err)
	}
	if _, err := s.queue.EnqueueContext(ctx, asynq.NewTask(TaskDonorMatch, payload), asynq.MaxRetry(5)); err != nil {
		return fmt.Errorf("failed to enqueue donor match for gift %d: %w", giftID, err)
	}
	return nil
}

// MatchQueuedDonor resolves one queued donor. A single exact email plus
// last name match attributes the gift to that directory user; zero or
// several matches cage the donor for manual review.
func (s *donorService) MatchQueuedDonor(ctx context.Context, queuedDonorID int64) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	queued, err := s.donorRepo.FindQueuedDonorByID(ctx, queuedDonorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Already matched or caged by an earlier delivery of this task.
			return nil
		}
		return err
	}

	matches, err := s.directory.FindUser(ctx, clients.DirectorySearch{
		Email:    strings.ToLower(strings.TrimSpace(queued.EmailAddress)),
		LastName: strings.TrimSpace(queued.LastName),
	})
	if err != nil {
		return fmt.Errorf("failed to search user directory: %w", err)
	}

	tx, err := s.donorRepo.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = s.donorRepo.Rollback(ctx, tx) }()

	matched := len(matches) == 1
	if matched {
		if err := s.giftRepo.UpdateGiftDonor(ctx, tx, queued.GiftID, domain.ResolvedDonor(matches[0].ID)); err != nil {
			return err
		}
	} else {
		caged := *queued
		caged.ID = 0
		caged.TimesViewed = 0
		if err := s.donorRepo.SaveCagedDonor(ctx, tx, &caged); err != nil {
			return err
		}
		if err := s.giftRepo.UpdateGiftDonor(ctx, tx, queued.GiftID, domain.CagedDonorRef()); err != nil {
			return err
		}
	}
	if err := s.donorRepo.DeleteQueuedDonor(ctx, tx, queued.ID); err != nil {
		return err
	}
	if err := s.donorRepo.Commit(ctx, tx); err != nil {
		return fmt.Errorf("failed to commit donor match: %w", err)
	}

	if matched {
		// Refresh the directory record with the contact details the donor
		// just submitted. The match is already committed; a directory fault
		// only loses the refresh.
		updated := matches[0]
		updated.FirstName = queued.FirstName
		updated.LastName = queued.LastName
		updated.Address = queued.Address
		updated.City = queued.City
		updated.State = queued.State
		updated.Zip = queued.Zipcode
		updated.Phone = queued.PhoneNumber
		if _, err := s.directory.UpdateUser(ctx, updated); err != nil {
			logger.Error("Failed to refresh directory contact details",
				slog.Int64("user_id", updated.ID),
				slog.String("error", err.Error()))
		}
	}

	logger.Info("Queued donor processed",
		slog.Int64("queued_donor_id", queuedDonorID),
		slog.Int64("gift_id", queued.GiftID),
		slog.Int("directory_matches", len(matches)))
	return nil
}

// ListCagedDonors retrieves a page of the manual review queue.
func (s *donorService) ListCagedDonors(ctx context.Context, params dto.ListCagedDonorsParams) (*dto.ListCagedDonorsResponse, error) {
	limit := params.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	donors, nextToken, err := s.donorRepo.ListCagedDonors(ctx, limit, params.NextToken)
	if err != nil {
		return nil, err
	}
	resp := &dto.ListCagedDonorsResponse{
		Donors:    make([]dto.CagedDonorResponse, 0, len(donors)),
		NextToken: nextToken,
	}
	for i := range donors {
		resp.Donors = append(resp.Donors, dto.ToCagedDonorResponse(&donors[i]))
	}
	return resp, nil
}

// ViewCagedDonor retrieves one caged donor and bumps its review counter.
func (s *donorService) ViewCagedDonor(ctx context.Context, id int64) (*dto.CagedDonorResponse, error) {
	donor, err := s.donorRepo.FindCagedDonorByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.donorRepo.IncrementTimesViewed(ctx, id); err != nil {
		return nil, err
	}
	donor.TimesViewed++
	resp := dto.ToCagedDonorResponse(donor)
	return &resp, nil
}

// ResolveCagedDonor attaches a caged donor to a directory user, creating
// the user first when the request carries a new record, then rewrites the
// gift's donor reference and removes the caged row.
func (s *donorService) ResolveCagedDonor(ctx context.Context, id int64, req dto.ResolveCagedDonorRequest) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if (req.UserID == nil) == (req.NewUser == nil) {
		return fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrResolveTargetUnset)
	}

	caged, err := s.donorRepo.FindCagedDonorByID(ctx, id)
	if err != nil {
		return err
	}

	var userID int64
	if req.UserID != nil {
		matches, err := s.directory.FindUser(ctx, clients.DirectorySearch{UserID: *req.UserID})
		if err != nil {
			return fmt.Errorf("failed to look up user %d: %w", *req.UserID, err)
		}
		if len(matches) == 0 {
			return fmt.Errorf("directory user %d: %w", *req.UserID, apperrors.ErrNotFound)
		}
		userID = matches[0].ID
	} else {
		created, err := s.directory.CreateUser(ctx, *req.NewUser)
		if err != nil {
			return fmt.Errorf("failed to create directory user: %w", err)
		}
		userID = created.ID
	}

	tx, err := s.donorRepo.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = s.donorRepo.Rollback(ctx, tx) }()

	if err := s.giftRepo.UpdateGiftDonor(ctx, tx, caged.GiftID, domain.ResolvedDonor(userID)); err != nil {
		return err
	}
	if err := s.donorRepo.DeleteCagedDonor(ctx, tx, caged.ID); err != nil {
		return err
	}
	if err := s.donorRepo.Commit(ctx, tx); err != nil {
		return fmt.Errorf("failed to commit caged donor resolution: %w", err)
	}

	logger.Info("Caged donor resolved",
		slog.Int64("caged_donor_id", id),
		slog.Int64("gift_id", caged.GiftID),
		slog.Int64("user_id", userID))
	return nil
}
