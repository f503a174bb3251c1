package apiutil

import (
	"errors"
	"strings"

	"github.com/mattn/go-sqlite3"
)

// IsForeignKeyViolation reports whether err is a SQLite foreign key failure.
func IsForeignKeyViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	return sqliteErr.Code == sqlite3.ErrConstraint &&
		sqliteErr.ExtendedCode == sqlite3.ErrConstraintForeignKey
}

// IsUniqueViolation reports whether err is a SQLite unique constraint failure.
func IsUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	return sqliteErr.Code == sqlite3.ErrConstraint &&
		(sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike escapes LIKE wildcards so value matches literally. Queries
// pair it with ESCAPE '\'.
func EscapeLike(value string) string {
	return likeEscaper.Replace(value)
}
