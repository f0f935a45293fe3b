package services

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	Donation    DonationSvcFacade
	Webhook     WebhookSvcFacade
	Reconcile   ReconcileSvcFacade
	Donor       DonorSvcFacade
	Gift        GiftSvcFacade
	Campaign    CampaignSvcFacade
	Agent       AgentSvcFacade
	ThankYou    ThankYouSvcFacade
	Auth        AuthSvcFacade
	Token       TokenSvcFacade
	GoogleOAuth GoogleOAuthHandlerSvcFacade
}
