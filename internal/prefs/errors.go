package prefs

import "errors"

var (
	// ErrUnknownNamespace is returned when a preference is declared in a
	// namespace that was never registered.
	ErrUnknownNamespace = errors.New("unknown preference namespace")
	// ErrUnregisteredNamespace is returned when reading or writing a
	// namespace that no module declared.
	ErrUnregisteredNamespace = errors.New("preference namespace was never registered")
	// ErrUnregisteredPreference is returned when reading or writing a
	// preference its namespace does not declare.
	ErrUnregisteredPreference = errors.New("preference was never registered")
	// ErrTypeMismatch is returned when a value disagrees with the declared type.
	ErrTypeMismatch = errors.New("preference type mismatch")
	// ErrSchemaSealed is returned by declarations made after Seal.
	ErrSchemaSealed = errors.New("preference schema is sealed")
	// ErrNotInitialized is returned by reads and writes made before Initialize.
	ErrNotInitialized = errors.New("preference store not initialized")
)
