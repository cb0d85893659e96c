package recordstore

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mmynk/hourbook/internal/auth"
)

var (
	// ErrEmptyName is returned when a required name is blank.
	ErrEmptyName = errors.New("name cannot be empty")
	// ErrDuplicate is returned when adding a person who already exists.
	ErrDuplicate = errors.New("person already exists (name is case-insensitive)")
	// ErrNothingToAdd is returned when location, event and hours are all blank.
	ErrNothingToAdd = errors.New("no information to add, all fields are empty")
	// ErrImportNotFound is returned when the file to import does not exist.
	ErrImportNotFound = errors.New("import file not found")
	// ErrNoCredentials is returned by password operations when no provider is set.
	ErrNoCredentials = errors.New("no credentials provider configured")
	// ErrNoMirror is returned by SetupMirror when the store has no mirror.
	ErrNoMirror = errors.New("excel mirroring is not available")
	// ErrIO wraps failures to read or write files.
	ErrIO = errors.New("storage error")
)

// SchemaError reports an imported file that lacks required columns.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return "import file is missing required columns: " + strings.Join(e.Missing, ", ")
}

// ioError wraps err as an ErrIO failure while keeping err in the chain.
func ioError(action string, err error) error {
	return fmt.Errorf("%w: failed to %s: %w", ErrIO, action, err)
}

// isRejection reports whether err was caused by caller input rather than a
// failure of the store.
func isRejection(err error) bool {
	var schemaErr *SchemaError
	return errors.Is(err, ErrEmptyName) ||
		errors.Is(err, ErrDuplicate) ||
		errors.Is(err, ErrNothingToAdd) ||
		errors.Is(err, ErrImportNotFound) ||
		errors.Is(err, auth.ErrIncorrectPassword) ||
		errors.Is(err, auth.ErrWeakPassword) ||
		errors.As(err, &schemaErr)
}
