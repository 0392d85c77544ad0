// Package handler is the first layer after the router.
//
// It binds requests, resolves route ids to records, runs the validation
// rules from the model package and calls the service layer. Every endpoint
// goes through the same generic pipeline in base.go.
package handler
