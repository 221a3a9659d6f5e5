// Package errs provides the typed errors shared by the domain, application and
// adapter layers of the order service.
//
// Every error type follows the same shape: a sentinel (ErrObjectNotFound,
// ErrValueIsInvalid, ErrValueIsOutOfRange, ErrValueIsRequired), a struct carrying
// the offending parameter, constructors with and without a cause, and an Unwrap
// method returning the sentinel so callers can branch with errors.Is:
//
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    return commands.ErrOrderNotFound
//	}
package errs
