package quota

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// MySQL server error numbers this package reacts to. Everything else
// propagates unchanged.
const (
	mysqlErrDuplicateEntry   = 1062
	mysqlErrUnknownColumn    = 1054
	mysqlErrMissingProcedure = 1305
)

func mysqlErrNumber(err error) (uint16, bool) {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return me.Number, true
	}
	return 0, false
}

// isDuplicateEntryErr detects a unique-constraint violation: the row already
// exists, which callers must treat as idempotent success.
func isDuplicateEntryErr(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	if n, ok := mysqlErrNumber(err); ok {
		return n == mysqlErrDuplicateEntry
	}
	return strings.Contains(err.Error(), "Duplicate entry")
}

// isUnknownColumnErr detects that the current schema does not carry a column
// the statement references. The recorder uses this to fall back to the
// legacy record shape.
func isUnknownColumnErr(err error) bool {
	if err == nil {
		return false
	}
	if n, ok := mysqlErrNumber(err); ok {
		return n == mysqlErrUnknownColumn
	}
	return strings.Contains(err.Error(), "Unknown column")
}

// isSchemaCompatErr detects the narrow class of errors that mean the atomic
// consume procedure (or a column it needs, such as daily_reset_at) is not
// deployed in the current schema. Only these trigger the multi-step fallback.
func isSchemaCompatErr(err error) bool {
	if err == nil {
		return false
	}
	if n, ok := mysqlErrNumber(err); ok {
		return n == mysqlErrMissingProcedure || n == mysqlErrUnknownColumn
	}
	msg := err.Error()
	return strings.Contains(msg, "does not exist") || strings.Contains(msg, "Unknown column")
}
