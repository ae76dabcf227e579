package repo_test

import (
	"errors"
	"net"
	"testing"

	"avisportal/internal/repo"

	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

func TestClassifyUndefinedTable(t *testing.T) {
	err := &pq.Error{Code: "42P01", Message: `relation "public.avis" does not exist`}

	classified := repo.Classify(err, "fallback")

	require.Equal(t, repo.CategoryMissingSchema, classified.Category)
	require.Contains(t, classified.Message, "avis")
}

func TestClassifyInsufficientPrivilege(t *testing.T) {
	err := &pq.Error{Code: "42501", Message: "permission denied for table avis"}

	classified := repo.Classify(err, "fallback")

	require.Equal(t, repo.CategoryAuthorizationPolicy, classified.Category)
}

func TestClassifyRowLevelSecurityMessage(t *testing.T) {
	err := &pq.Error{Code: "23514", Message: `new row violates row-level security policy for table "avis"`}

	classified := repo.Classify(err, "fallback")

	require.Equal(t, repo.CategoryAuthorizationPolicy, classified.Category)
}

func TestClassifyNetworkError(t *testing.T) {
	err := &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}

	classified := repo.Classify(err, "fallback")

	require.Equal(t, repo.CategoryNetworkUnreachable, classified.Category)
}

func TestClassifyUnknownErrorPassesRawMessage(t *testing.T) {
	classified := repo.Classify(errors.New("something odd"), "fallback")

	require.Equal(t, repo.CategoryUnclassified, classified.Category)
	require.Equal(t, "something odd", classified.Message)
}

func TestClassifyAlreadyClassifiedPassesThrough(t *testing.T) {
	original := repo.Validation("bad input")

	classified := repo.Classify(original, "fallback")

	require.Same(t, original, classified)
}

func TestClassifyKeepsCause(t *testing.T) {
	cause := &pq.Error{Code: "42P01", Message: "missing"}

	classified := repo.Classify(cause, "fallback")

	var pqErr *pq.Error
	require.ErrorAs(t, classified, &pqErr)
}
