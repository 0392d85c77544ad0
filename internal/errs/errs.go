// Package errs defines the error types returned to API clients.
//
// Every failure a handler can produce (validation, not-found,
// precondition conflicts) is an *HTTPError carrying its own status,
// so the global error handler can write a consistent JSON body.
package errs
