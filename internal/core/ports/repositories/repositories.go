package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	GiftRepo        GiftRepositoryFacade
	TransactionRepo TransactionRepositoryFacade
	DonorRepo       DonorRepositoryFacade
	AgentRepo       AgentRepositoryFacade
	MethodUsedRepo  MethodUsedRepositoryFacade
	CampaignRepo    CampaignRepositoryFacade
	ThankYouRepo    ThankYouRepositoryFacade
}
