package workflow

import (
	"context"
	"errors"
	"fmt"

	"github.com/talenthub/backend/internal/models"
	"github.com/talenthub/backend/internal/recommend"
	"github.com/talenthub/backend/internal/repositories"
)

// Typed failures the HTTP surface maps to status codes.
var (
	ErrJobNotFound         = errors.New("job not found")
	ErrJobClosed           = errors.New("job is no longer accepting applications")
	ErrAlreadyApplied      = errors.New("already applied to this job")
	ErrApplicationNotFound = errors.New("job application not found")
	ErrInvalidStatus       = errors.New("invalid status value")
)

// Engine executes application-state transitions together with their
// notification side-effects. Every mutation that must not be observed
// without its notification runs inside a single transaction.
type Engine struct {
	jobs          repositories.JobRepository
	applications  repositories.ApplicationRepository
	notifications repositories.NotificationRepository
	txn           repositories.TxnRunner
}

// NewEngine creates a new workflow Engine
func NewEngine(
	jobs repositories.JobRepository,
	applications repositories.ApplicationRepository,
	notifications repositories.NotificationRepository,
	txn repositories.TxnRunner,
) *Engine {
	return &Engine{
		jobs:          jobs,
		applications:  applications,
		notifications: notifications,
		txn:           txn,
	}
}

// Apply creates a Pending application for the (seeker, job) pair and
// increments the job's applicant counter. The job must exist and be
// visible, and the seeker must not have applied before.
func (e *Engine) Apply(ctx context.Context, seeker *models.Seeker, jobID string) (*models.Application, error) {
	job, err := e.jobs.GetJobByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	if !job.Visible {
		return nil, ErrJobClosed
	}

	_, err = e.applications.GetBySeekerAndJob(ctx, seeker.ID, job.ID)
	if err == nil {
		return nil, ErrAlreadyApplied
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	application := &models.Application{
		SeekerID:   seeker.ID,
		FinderID:   job.FinderID,
		JobID:      job.ID,
		Status:     string(StatusPending),
		MatchScore: recommend.MatchScore(seeker.Skills, job.Category),
	}

	err = e.txn.WithTransaction(ctx, func(ctx context.Context) error {
		if err := e.applications.CreateApplication(ctx, application); err != nil {
			return err
		}
		return e.jobs.IncrementApplicantsCount(ctx, job.ID)
	})
	if err != nil {
		return nil, err
	}
	return application, nil
}

// ChangeStatus overwrites an application's status with any recognized
// value and notifies the application's seeker, naming the new status
// and the job title. The status write and the notification write commit
// together.
func (e *Engine) ChangeStatus(ctx context.Context, applicationID, rawStatus string) (*models.Application, error) {
	status, err := ParseStatus(rawStatus)
	if err != nil {
		return nil, ErrInvalidStatus
	}

	application, err := e.applications.GetApplicationByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}

	job, err := e.jobs.GetJobByID(ctx, application.JobID.Hex())
	if err != nil {
		return nil, err
	}

	seekerID := application.SeekerID
	notification := &models.Notification{
		SeekerID: &seekerID,
		Title:    fmt.Sprintf("Application %s", status),
		Message:  fmt.Sprintf("Your application for %q has been marked as %s.", job.Title, status),
		Type:     models.NotificationTypeApplication,
	}

	err = e.txn.WithTransaction(ctx, func(ctx context.Context) error {
		if err := e.applications.UpdateStatus(ctx, application.ID, string(status)); err != nil {
			return err
		}
		return e.notifications.CreateNotification(ctx, notification)
	})
	if err != nil {
		return nil, err
	}

	application.Status = string(status)
	return application, nil
}

// CloseJob forces every application referencing the job to Close with one
// bulk update, flips the job to its closed state, and batch-inserts one
// notification per affected application after the status updates. A job
// with no applications still closes; no notifications are produced.
func (e *Engine) CloseJob(ctx context.Context, jobID string) (int64, error) {
	job, err := e.jobs.GetJobByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return 0, ErrJobNotFound
		}
		return 0, err
	}

	applications, err := e.applications.ListByJob(ctx, job.ID)
	if err != nil {
		return 0, err
	}

	var closed int64
	err = e.txn.WithTransaction(ctx, func(ctx context.Context) error {
		closed, err = e.applications.CloseAllForJob(ctx, job.ID)
		if err != nil {
			return err
		}
		if err := e.jobs.CloseJob(ctx, job.ID); err != nil {
			return err
		}
		if len(applications) == 0 {
			return nil
		}

		notifications := make([]models.Notification, len(applications))
		for i, a := range applications {
			seekerID := a.SeekerID
			notifications[i] = models.Notification{
				SeekerID: &seekerID,
				Title:    "Job Closed",
				Message:  fmt.Sprintf("The job %q has been closed by the company.", job.Title),
				Type:     models.NotificationTypeJob,
			}
		}
		return e.notifications.CreateNotifications(ctx, notifications)
	})
	if err != nil {
		return 0, err
	}
	return closed, nil
}
