// Package bowlerr defines the error kinds surfaced to the user.
//
// Every kind embeds BaseError, so callers classify failures with errors.As
// and still reach the underlying cause through errors.Unwrap.
package bowlerr
