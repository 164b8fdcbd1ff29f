package catalog

// CatalogError is a custom error type for catalog errors
type CatalogError string

// Error implements the error interface
func (e CatalogError) Error() string {
	return string(e)
}

const (
	ErrEmptyCatalog    CatalogError = "catalog has no roles"
	ErrEmptyRoleID     CatalogError = "role id cannot be empty"
	ErrDuplicateRoleID CatalogError = "duplicate role id"
	ErrInvalidFaction  CatalogError = "invalid role faction"
	ErrInvalidAbility  CatalogError = "invalid role ability"
	ErrInvalidWeight   CatalogError = "role weight must be positive"
	ErrRoleNotFound    CatalogError = "role not found"
)
