// Package repository handles all interactions with the database.
//
// It contains raw SQL queries and methods to fetch, persist,
// or update data, abstracting SQL logic away from the service layer.
//
// Row-not-found errors are wrapped with a "table:<name>:" marker so the
// sqlerr handler can name the missing entity in API responses.
package repository
