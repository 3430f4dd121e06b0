package domain

import "errors"

var (
	ErrCargoNotFound  = errors.New("cargo not found")
	ErrClientNotFound = errors.New("client not found")

	// ErrSameClient rejects a cargo whose sender and receiver share one
	// national id.
	ErrSameClient = errors.New("sender and receiver can not be the same client")

	ErrShipmentNotFound = errors.New("there is no shipment with this id")

	// ErrUnknownContentType means a content line references a content type
	// that does not exist.
	ErrUnknownContentType = errors.New("invalid content type id provided")

	ErrEmptyContents = errors.New("cargo must contain at least one content")

	// ErrNationalIDTaken rejects a direct client registration whose national
	// id is already on file.
	ErrNationalIDTaken = errors.New("this national id is already exist")
)

// IsPreconditionError reports whether err is an intake precondition failure
// (mapped to 400 at the transport layer).
func IsPreconditionError(err error) bool {
	return errors.Is(err, ErrSameClient) ||
		errors.Is(err, ErrShipmentNotFound) ||
		errors.Is(err, ErrUnknownContentType) ||
		errors.Is(err, ErrEmptyContents) ||
		errors.Is(err, ErrNationalIDTaken)
}
