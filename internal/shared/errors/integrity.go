package errors

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	pgKeyPattern        = regexp.MustCompile(`Key \((.*?)\)=\(`)
	sqliteColumnPattern = regexp.MustCompile(`(?:UNIQUE|NOT NULL) constraint failed: ([\w.]+)`)
	mysqlKeyPattern     = regexp.MustCompile(`Duplicate entry '.*' for key '([^']+)'`)
)

// FromDatabase converts a store constraint violation into an integrity AppError.
// It returns nil when err is not a constraint violation.
func FromDatabase(err error) *AppError {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// SQLSTATE class 23 is "integrity constraint violation".
		if !strings.HasPrefix(pgErr.Code, "23") {
			return nil
		}
		column := ""
		if m := pgKeyPattern.FindStringSubmatch(pgErr.Detail); m != nil {
			column = m[1]
		} else if pgErr.ColumnName != "" {
			column = pgErr.ColumnName
		}
		return integrityFor(column, pgErr.Message+" "+pgErr.Detail, err)
	}

	msg := err.Error()
	switch {
	case pgKeyPattern.MatchString(msg):
		return integrityFor(pgKeyPattern.FindStringSubmatch(msg)[1], msg, err)
	case strings.Contains(msg, "constraint failed"):
		column := ""
		if m := sqliteColumnPattern.FindStringSubmatch(msg); m != nil {
			column = trimTable(m[1])
		}
		return integrityFor(column, msg, err)
	case strings.Contains(msg, "Duplicate entry"):
		column := ""
		if m := mysqlKeyPattern.FindStringSubmatch(msg); m != nil {
			column = trimTable(m[1])
		}
		return integrityFor(column, msg, err)
	case errors.Is(err, gorm.ErrDuplicatedKey), errors.Is(err, gorm.ErrForeignKeyViolated):
		return integrityFor("", msg, err)
	}
	return nil
}

func integrityFor(column, msg string, cause error) *AppError {
	elements := map[string][]string{}
	if column != "" {
		elements[column] = []string{
			fmt.Sprintf("This %s already exists.", strings.ReplaceAll(column, "_", " ")),
		}
	} else {
		elements["database"] = []string{strings.TrimSpace(msg)}
	}
	return NewIntegrityError(strings.TrimSpace(msg), elements).WithCause(cause)
}

// trimTable turns "computers.host_name" into "host_name".
func trimTable(key string) string {
	if i := strings.LastIndex(key, "."); i >= 0 {
		return key[i+1:]
	}
	return key
}
