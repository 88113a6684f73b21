package domain

import (
	"errors"
	"fmt"
)

// Error kinds shared by the local and remote backends.
// Match them with errors.Is; every typed error below unwraps to one of them.
var (
	ErrStorage         = errors.New("storage error")
	ErrTransport       = errors.New("transport error")
	ErrSerialization   = errors.New("serialization error")
	ErrSchema          = errors.New("schema error")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrUnauthorized    = errors.New("unauthorized")
)

// StorageError is a failure reported by the datastore: constraint violations,
// query errors, connection or I/O problems.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("storage: %s failed", e.Op)
	}
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error        { return e.Err }
func (e *StorageError) Is(target error) bool { return target == ErrStorage }

// TransportError is a remote call that failed below the application layer,
// or answered with an unexpected status.
type TransportError struct {
	Op         string
	StatusCode int // 0 when no response was received
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("transport: %s: unexpected status %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("transport: %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error        { return e.Err }
func (e *TransportError) Is(target error) bool { return target == ErrTransport }

// SerializationError is a request or response payload that could not be
// encoded or decoded.
type SerializationError struct {
	Op  string
	Err error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("serialization: %s: %v", e.Op, e.Err)
}

func (e *SerializationError) Unwrap() error        { return e.Err }
func (e *SerializationError) Is(target error) bool { return target == ErrSerialization }

// SchemaError means the stored schema version is unreadable or unknown.
// It is fatal: the store must not be used.
type SchemaError struct {
	Version string
	Err     error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema: database version %q: %v (the database may be corrupt)", e.Version, e.Err)
}

func (e *SchemaError) Unwrap() error        { return e.Err }
func (e *SchemaError) Is(target error) bool { return target == ErrSchema }

// NewStorageError wraps err as a StorageError unless it already carries a kind.
func NewStorageError(op string, err error) error {
	if err == nil {
		return nil
	}
	if Kind(err) != nil {
		return err
	}
	return &StorageError{Op: op, Err: err}
}

// InvalidArgument builds an ErrInvalidArgument with a message.
func InvalidArgument(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

// Kind returns the sentinel kind err belongs to, or nil if it has none.
func Kind(err error) error {
	for _, k := range []error{ErrSchema, ErrStorage, ErrSerialization, ErrTransport, ErrInvalidArgument, ErrUnauthorized} {
		if errors.Is(err, k) {
			return k
		}
	}
	return nil
}

func IsStorage(err error) bool       { return errors.Is(err, ErrStorage) }
func IsTransport(err error) bool     { return errors.Is(err, ErrTransport) }
func IsSerialization(err error) bool { return errors.Is(err, ErrSerialization) }
func IsSchema(err error) bool        { return errors.Is(err, ErrSchema) }
