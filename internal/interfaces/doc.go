// Package interfaces documents the seams between the bookstore's layers.
//
// # Interface Categories
//
// ## API Side
//
//   - BookStore, AuthorStore: persistence used by controllers (internal/http/stores.go)
//   - Authenticator, BearerAuthenticator: login and the bearer guard (internal/http)
//   - Recorder, AuditReader: audit trail (internal/http/config.go, internal/http/stores.go)
//   - UserStore: accounts behind auth.Service (internal/auth/service.go)
//
// ## Background Work
//
//   - AuditEventCleaner: retention deletes (internal/tasks/cleanup_audit.go)
//   - AuditCleaner: what the cron schedule triggers (internal/scheduler)
//
// ## Client Side
//
//   - AuthClient, AuthorClient, BookClient: remote calls (internal/ui/services)
//   - LocalStorage: per-browser key/value store (internal/ui/storage)
//   - Notifier: login/logout signal (internal/ui/authstate)
//
// # Adding a New Resource
//
//  1. Add the entity in internal/entities and migrate it in database.Migrate.
//
//  2. Create a sub-package: internal/database/publishers/
//
//     type Repository struct { db *gorm.DB }
//
//     func NewRepository(db *gorm.DB) *Repository
//
//  3. Declare the store interface next to its controller and add a
//     compile-time check to checks.go:
//
//     var _ http.PublisherStore = (*publishers.Repository)(nil)
//
//  4. Add client methods in internal/apiclient and a service in
//     internal/ui/services returning Response envelopes.
//
// # Compile-Time Interface Checks
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// See checks.go.
package interfaces
