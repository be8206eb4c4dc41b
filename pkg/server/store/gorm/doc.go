// Package gorm provides GORM-based implementations of the store interfaces
// defined in the parent store package.
//
// The same implementations serve SQLite and PostgreSQL. Queries stick to the
// SQL both dialects share; anything dialect specific (date bucketing for
// stats) is done in Go after loading the rows.
package gorm
