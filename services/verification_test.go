package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/civic-pulse/api-go/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Three distinct verifiers push the report over the threshold: the
// report flips to verified and the author gets the bonus exactly once.
func TestVerifyReport_ThresholdFlipsOnce(t *testing.T) {
	db := setupTestDB(t)
	svc := NewVerificationService(db)

	author := seedUser(t, db, "author1", models.RoleUser)
	report := seedReport(t, db, author, models.StatusPending)

	var verifiers []*models.User
	for i := 0; i < 3; i++ {
		verifiers = append(verifiers, seedUser(t, db, fmt.Sprintf("verifier%d", i), models.RoleUser))
	}

	for i, verifier := range verifiers {
		require.NoError(t, svc.VerifyReport(context.Background(), report.ReportID, verifier.ID))

		saved := reloadReport(t, db, report.ID)
		assert.Equal(t, i+1, saved.VerificationCount)
		assert.Equal(t, i+1 >= models.VerificationThreshold, saved.IsVerified)
	}

	savedAuthor := reloadUser(t, db, author.ID)
	assert.Equal(t, AuthorThresholdReward, savedAuthor.ReputationPoints)
	assert.Equal(t, 1, savedAuthor.VerifiedReports)

	for _, verifier := range verifiers {
		saved := reloadUser(t, db, verifier.ID)
		assert.Equal(t, VerifierReward, saved.ReputationPoints)
	}
}

func TestVerifyReport_DuplicateVote(t *testing.T) {
	db := setupTestDB(t)
	svc := NewVerificationService(db)

	author := seedUser(t, db, "author1", models.RoleUser)
	verifier := seedUser(t, db, "verifier1", models.RoleUser)
	report := seedReport(t, db, author, models.StatusPending)

	require.NoError(t, svc.VerifyReport(context.Background(), report.ReportID, verifier.ID))

	err := svc.VerifyReport(context.Background(), report.ReportID, verifier.ID)
	assert.ErrorIs(t, err, ErrAlreadyVerified)

	saved := reloadReport(t, db, report.ID)
	assert.Equal(t, 1, saved.VerificationCount)

	savedVerifier := reloadUser(t, db, verifier.ID)
	assert.Equal(t, VerifierReward, savedVerifier.ReputationPoints, "duplicate vote must not double the reward")
}

// A fourth vote past the threshold raises the count but must not
// re-award the author's bonus.
func TestVerifyReport_NoDoubleAwardPastThreshold(t *testing.T) {
	db := setupTestDB(t)
	svc := NewVerificationService(db)

	author := seedUser(t, db, "author1", models.RoleUser)
	report := seedReport(t, db, author, models.StatusPending)

	for i := 0; i < 4; i++ {
		verifier := seedUser(t, db, fmt.Sprintf("verifier%d", i), models.RoleUser)
		require.NoError(t, svc.VerifyReport(context.Background(), report.ReportID, verifier.ID))
	}

	saved := reloadReport(t, db, report.ID)
	assert.Equal(t, 4, saved.VerificationCount)
	assert.True(t, saved.IsVerified)

	savedAuthor := reloadUser(t, db, author.ID)
	assert.Equal(t, AuthorThresholdReward, savedAuthor.ReputationPoints)
	assert.Equal(t, 1, savedAuthor.VerifiedReports)
}

func TestVerifyReport_AcceptsInternalID(t *testing.T) {
	db := setupTestDB(t)
	svc := NewVerificationService(db)

	author := seedUser(t, db, "author1", models.RoleUser)
	verifier := seedUser(t, db, "verifier1", models.RoleUser)
	report := seedReport(t, db, author, models.StatusPending)

	require.NoError(t, svc.VerifyReport(context.Background(), fmt.Sprintf("%d", report.ID), verifier.ID))

	saved := reloadReport(t, db, report.ID)
	assert.Equal(t, 1, saved.VerificationCount)
}

func TestVerifyReport_NotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := NewVerificationService(db)
	verifier := seedUser(t, db, "verifier1", models.RoleUser)

	err := svc.VerifyReport(context.Background(), "RPT-0000", verifier.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
