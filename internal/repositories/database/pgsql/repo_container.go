package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/civicgift/donate-backend/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	giftRepo := newPgxGiftRepository(dbPool)
	transactionRepo := newPgxTransactionRepository(dbPool)
	donorRepo := newPgxDonorRepository(dbPool)
	agentRepo := newPgxAgentRepository(dbPool)
	methodUsedRepo := newPgxMethodUsedRepository(dbPool)
	campaignRepo := newPgxCampaignRepository(dbPool)
	thankYouRepo := newPgxThankYouRepository(dbPool)

	return portsrepo.RepositoryProvider{
		GiftRepo:        giftRepo,
		TransactionRepo: transactionRepo,
		DonorRepo:       donorRepo,
		AgentRepo:       agentRepo,
		MethodUsedRepo:  methodUsedRepo,
		CampaignRepo:    campaignRepo,
		ThankYouRepo:    thankYouRepo,
	}
}
