package jobs

import (
	"context"
	"time"

	"dojo-membership-backend/internal/logger"
)

// NotifyReapplicationWindows emails rejected applicants whose reapplication
// window opened within the last day, inviting them to apply again.
func (jr *JobRunner) NotifyReapplicationWindows() {
	jr.runWithRecovery("NotifyReapplicationWindows", func() {
		ctx := context.Background()

		now := time.Now().UTC()
		apps, err := jr.store.ApplicationRepository.ListReapplicationUnlocked(ctx, now.Add(-24*time.Hour), now)
		if err != nil {
			logger.Error("Failed to query unlocked reapplication windows", "error", err)
			return
		}

		count := 0
		for _, app := range apps {
			user, err := jr.store.UserRepository.GetByID(ctx, app.ApplicantUserID)
			if err != nil {
				logger.Error("Failed to load applicant for reapplication notice",
					"application_id", app.ID,
					"user_id", app.ApplicantUserID,
					"error", err)
				continue
			}

			if err := jr.services.Email.SendReapplicationWindowOpened(ctx, user.Email, user.Name); err != nil {
				logger.Error("Failed to send reapplication window notice",
					"application_id", app.ID,
					"email", user.Email,
					"error", err)
				continue
			}

			count++
			logger.Debug("Sent reapplication window notice",
				"application_id", app.ID,
				"user_id", user.ID)
		}

		logger.Info("Reapplication window notices sent", "count", count)
	})
}

// RemindStaleApplications counts applications that have been waiting on board
// votes longer than the configured threshold and nudges the board about them.
func (jr *JobRunner) RemindStaleApplications() {
	jr.runWithRecovery("RemindStaleApplications", func() {
		ctx := context.Background()

		query := `
			SELECT COUNT(*)
			FROM applications
			WHERE status IN ('SUBMITTED', 'UNDER_REVIEW')
			  AND created_on < $1
		`

		staleBefore := time.Now().UTC().AddDate(0, 0, -jr.config.Approval.StaleAfterDays)
		var pending int
		if err := jr.db.QueryRowContext(ctx, query, staleBefore).Scan(&pending); err != nil {
			logger.Error("Failed to count stale applications", "error", err)
			return
		}

		if pending == 0 {
			logger.Info("No stale applications to report")
			return
		}

		if err := jr.services.Email.SendPendingApplicationReminder(ctx, jr.config.Email.BoardEmail, pending); err != nil {
			logger.Error("Failed to send stale application reminder",
				"board_email", jr.config.Email.BoardEmail,
				"error", err)
			return
		}

		logger.Info("Stale application reminder sent", "pending", pending)
	})
}
