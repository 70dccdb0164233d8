// Package auth provides authentication and authorization for the API.
//
// Clients log in with email and password and receive a signed HS256 JWT.
// Every other API call sends it as "Authorization: Bearer <token>".
// The token carries the user id (sub and uid), the email and the role
// names, so authorization checks never hit the database.
//
// # Configuration
//
//	AUTH_JWT_SECRET=<random>        # Generated at startup if empty
//	AUTH_JWT_ISSUER=BookStoreAPI
//	AUTH_JWT_AUDIENCE=BookStoreAPIClient
//	AUTH_TOKEN_LIFETIME=8h
//	AUTH_BCRYPT_COST=12
//	AUTH_MAX_LOGIN_ATTEMPTS=5       # Failed logins per IP+email before lockout
//	AUTH_RATE_LIMIT_WINDOW=15m
//	AUTH_LOCKOUT_DURATION=30m
//
// A generated secret invalidates all tokens on restart.
//
// # Usage
//
//	tokens := auth.NewTokenManager(secret, cfg.Auth.JWTIssuer, cfg.Auth.JWTAudience, cfg.Auth.TokenLifetime)
//	service := auth.NewService(usersRepo, tokens, limiter, cfg.Auth)
//	mw := auth.NewMiddleware(tokens)
//
//	api := router.Group("/api", mw.RequireAuth())
//	api.POST("/Books", auth.RequireRole(entities.RoleAdmin), handler)
//
// Extract the caller in handlers:
//
//	userID := auth.GetUserID(c)
package auth
