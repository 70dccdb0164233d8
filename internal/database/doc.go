// Package database provides the data access layer for the bookstore.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup (sqlite or postgres), migrations
//	├── seed.go          # Default roles, accounts and role assignments
//	├── authors/         # Author CRUD
//	├── books/           # Book CRUD with optimistic update
//	├── users/           # Accounts and role lookups
//	└── audit/           # Audit event storage and retention
//
// # Using Sub-packages
//
//	db, err := database.NewDatabase(cfg.Database, cfg.Auth.BcryptCost)
//
//	booksRepo := books.NewRepository(db.DB)
//	book, err := booksRepo.GetBookByID(ctx, 123)
//
// Every repository takes a context and runs its queries through
// gorm's WithContext, so request cancellation reaches the driver.
//
// # Errors
//
// The connection is opened with TranslateError enabled. Unique and foreign
// key violations therefore surface as gorm.ErrDuplicatedKey and
// gorm.ErrForeignKeyViolated, which the repositories wrap in their own
// sentinel errors.
package database
