package services

import (
	"github.com/civicgift/donate-backend/internal/core/ports/clients"
	portsrepo "github.com/civicgift/donate-backend/internal/core/ports/repositories"
	portssvc "github.com/civicgift/donate-backend/internal/core/ports/services"
	"github.com/civicgift/donate-backend/internal/platform/config"
)

// ExternalClients bundles the outbound adapters the services depend on.
type ExternalClients struct {
	Processor clients.Processor
	Notifier  clients.Notifier
	Blobstore clients.Blobstore
	Directory clients.UserDirectory
	Queue     taskEnqueuer
}

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, ext ExternalClients) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// The ledger is shared by every service that writes transactions so the
	// running total always folds through one code path.
	ledger := NewLedgerService(repos.TransactionRepo)

	container.Agent = NewAgentService(repos.AgentRepo)
	container.Campaign = NewCampaignService(repos.CampaignRepo)
	container.Gift = NewGiftService(repos.GiftRepo, ledger)
	container.ThankYou = NewThankYouService(repos.ThankYouRepo, repos.GiftRepo, ledger, container.Agent)
	container.Donor = NewDonorService(repos.GiftRepo, repos.DonorRepo, ext.Directory, ext.Queue)

	container.Donation = NewDonationService(
		cfg,
		repos.GiftRepo,
		repos.DonorRepo,
		repos.MethodUsedRepo,
		repos.CampaignRepo,
		repos.ThankYouRepo,
		ledger,
		container.Agent,
		container.Donor,
		ext.Processor,
		ext.Notifier,
	)
	container.Webhook = NewWebhookService(
		cfg,
		repos.GiftRepo,
		repos.DonorRepo,
		repos.ThankYouRepo,
		ledger,
		container.Agent,
		ext.Processor,
	)
	container.Reconcile = NewReconcileService(
		cfg,
		repos.GiftRepo,
		repos.DonorRepo,
		repos.ThankYouRepo,
		ledger,
		container.Agent,
		ext.Processor,
		ext.Notifier,
		ext.Blobstore,
	)

	container.Auth = NewAuthService(repos.AgentRepo)
	container.Token = NewTokenService(cfg)
	container.GoogleOAuth = NewGoogleOAuthHandlerService(cfg)

	return container
}
