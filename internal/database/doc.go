// Package database owns the GORM connection and schema migration.
//
// Per-aggregate repositories live in the subpackages (users, publishers,
// admins, books, categories, subscriptions, bookmarks, history); handlers
// never touch *gorm.DB directly.
package database
