package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrEmailAlreadyExists is returned when a create or update would leave
	// two accounts with the same e-mail address.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrUsernameAlreadyExists is returned when a create or update would
	// leave two accounts with the same username.
	ErrUsernameAlreadyExists = errors.New("username already exists")

	// ErrUserNotFound is returned when a lookup or update targets an account
	// that does not exist.
	ErrUserNotFound = errors.New("user was not found")

	// ErrEventNotFound is returned when a lookup, update or delete targets an
	// event that does not exist.
	ErrEventNotFound = errors.New("event was not found")

	// ErrTicketNotFound is returned when a lookup, update or delete targets a
	// ticket that does not exist.
	ErrTicketNotFound = errors.New("ticket was not found")

	// ErrImageStorageDisabled is returned by the image store when no bucket
	// is configured.
	ErrImageStorageDisabled = errors.New("image storage is not configured")

	// ErrUnknownDriver is returned by [NewStorages] for a driver other than
	// postgres or mongo.
	ErrUnknownDriver = errors.New("unknown storage driver")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a database operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to execute statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")

	// ErrDecodingDocument is returned when a MongoDB document cannot be
	// decoded into its model.
	ErrDecodingDocument = errors.New("failed to decode document")
)
