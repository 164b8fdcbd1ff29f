package resolution

// ResolutionError is a custom error type for resolution failures
type ResolutionError string

// Error implements the error interface
func (e ResolutionError) Error() string {
	return string(e)
}

const (
	// ErrMissingEntry means an action references a roster entry the match does not have
	ErrMissingEntry ResolutionError = "action references a missing roster entry"

	// ErrUnknownRole means a roster entry holds a role the catalog does not know
	ErrUnknownRole ResolutionError = "roster entry holds an unknown role"

	// ErrNilCatalog means no catalog was supplied
	ErrNilCatalog ResolutionError = "catalog cannot be nil"
)
