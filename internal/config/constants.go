package config

// Default paths for databases
const (
	// DefaultDatabasePath is the default path for the bookstore database
	DefaultDatabasePath = "./bookstore.db"

	// DefaultSessionDatabasePath is the default path for the UI host's session database
	DefaultSessionDatabasePath = "./bookstore-ui.db"
)

// Token defaults
const (
	DefaultJWTIssuer   = "BookStoreAPI"
	DefaultJWTAudience = "BookStoreAPIClient"
)
