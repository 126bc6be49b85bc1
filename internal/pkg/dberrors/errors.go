package dberrors

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	uniqueViolation = "23505"
	checkViolation  = "23514"
	fkViolation     = "23503"
)

// Constraint names declared in migrations/001_init.sql
const (
	UsersUsernameKey  = "users_username_key"
	GroupsSlugKey     = "groups_slug_key"
	FollowsUniqueEdge = "follows_user_author_key"
	FollowsNoSelf     = "follows_no_self_follow"
	PostsGroupFK      = "posts_group_id_fkey"
)

// IsDuplicateConstraintError checks if the error is a PostgreSQL unique violation error
// for a specific constraint.
func IsDuplicateConstraintError(err error, constraintName string) bool {
	return hasCode(err, uniqueViolation, constraintName)
}

// IsCheckConstraintError checks for a CHECK violation on the named constraint
func IsCheckConstraintError(err error, constraintName string) bool {
	return hasCode(err, checkViolation, constraintName)
}

// IsForeignKeyError checks for a foreign key violation on the named constraint
func IsForeignKeyError(err error, constraintName string) bool {
	return hasCode(err, fkViolation, constraintName)
}

func hasCode(err error, code, constraintName string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code && pgErr.ConstraintName == constraintName
}
