package http

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Persistence
	Books   BookStore
	Authors AuthorStore
	Pinger  Pinger

	// Authentication
	AuthService    Authenticator
	AuthMiddleware BearerAuthenticator

	// Audit trail; both may be nil
	Recorder    Recorder
	AuditEvents AuditReader

	// Sends Strict-Transport-Security on every response
	EnableHSTS bool

	// Application info
	Version string
}

// Recorder receives every audited event.
type Recorder interface {
	MutationRecorder
	AuthRecorder
}
