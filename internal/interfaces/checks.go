package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/bookstore/internal/apiclient"
	"github.com/mrlokans/bookstore/internal/audit"
	"github.com/mrlokans/bookstore/internal/auth"
	"github.com/mrlokans/bookstore/internal/database"
	"github.com/mrlokans/bookstore/internal/database/authors"
	"github.com/mrlokans/bookstore/internal/database/books"
	"github.com/mrlokans/bookstore/internal/database/users"
	"github.com/mrlokans/bookstore/internal/http"
	"github.com/mrlokans/bookstore/internal/scheduler"
	"github.com/mrlokans/bookstore/internal/tasks"
	"github.com/mrlokans/bookstore/internal/ui/authstate"
	"github.com/mrlokans/bookstore/internal/ui/services"
	"github.com/mrlokans/bookstore/internal/ui/storage"
)

// =============================================================================
// Data Access Layer
// =============================================================================

var _ http.BookStore = (*books.Repository)(nil)
var _ http.AuthorStore = (*authors.Repository)(nil)
var _ http.Pinger = (*database.Database)(nil)
var _ auth.UserStore = (*users.Repository)(nil)

// =============================================================================
// API Services
// =============================================================================

var _ http.Authenticator = (*auth.Service)(nil)
var _ http.BearerAuthenticator = (*auth.Middleware)(nil)
var _ auth.TokenValidator = (*auth.TokenManager)(nil)

// Audit trail
var _ http.Recorder = (*audit.Service)(nil)
var _ http.AuditReader = (*audit.Service)(nil)
var _ tasks.AuditEventCleaner = (*audit.Service)(nil)
var _ scheduler.AuditCleaner = (*tasks.Client)(nil)

// =============================================================================
// Client Side
// =============================================================================

var _ services.AuthClient = (*apiclient.Client)(nil)
var _ services.AuthorClient = (*apiclient.Client)(nil)
var _ services.BookClient = (*apiclient.Client)(nil)

var _ storage.LocalStorage = (*storage.MemoryStorage)(nil)
var _ storage.LocalStorage = (*storage.SessionStorage)(nil)
var _ authstate.Notifier = (*authstate.Provider)(nil)
