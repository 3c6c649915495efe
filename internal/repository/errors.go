package repository

import "errors"

var (
	// ErrIO marks a local snapshot that could not be read or written.
	ErrIO = errors.New("snapshot io error")

	// ErrRemote marks a failure of the record database or the object store.
	ErrRemote = errors.New("remote store error")

	// ErrPersist is returned by SaveDatabase when the snapshot could not be
	// written and the record database did not take every record either.
	ErrPersist = errors.New("persist failed")

	// ErrRemoteUnavailable is returned by remote-only operations when no
	// record database is configured.
	ErrRemoteUnavailable = errors.New("remote store not configured")
)
