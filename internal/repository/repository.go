// Package repository handles all interactions with the database.
//
// It contains the SQL queries and the methods that run them, keeping SQL
// out of the service layer.
package repository
