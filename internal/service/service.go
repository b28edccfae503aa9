// Package service contains the business logic.
//
// It sits between the handler and repository layers: it receives validated
// input from handlers, applies the catalog rules and calls the repositories.
package service
