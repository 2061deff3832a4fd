package workflow

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/talenthub/backend/internal/models"
	"github.com/talenthub/backend/internal/repositories"
)

// MockJobRepository is a mock implementation of JobRepository.
type MockJobRepository struct {
	mock.Mock
}

func (m *MockJobRepository) CreateJob(ctx context.Context, job *models.Job) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

func (m *MockJobRepository) GetJobByID(ctx context.Context, id string) (*models.Job, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Job), args.Error(1)
}

func (m *MockJobRepository) ListJobsByFinder(ctx context.Context, finderID primitive.ObjectID) ([]models.Job, error) {
	args := m.Called(ctx, finderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Job), args.Error(1)
}

func (m *MockJobRepository) ListVisibleJobs(ctx context.Context, search, category string) ([]models.Job, error) {
	args := m.Called(ctx, search, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Job), args.Error(1)
}

func (m *MockJobRepository) ListVisibleJobsExcluding(ctx context.Context, excluded []primitive.ObjectID) ([]models.Job, error) {
	args := m.Called(ctx, excluded)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Job), args.Error(1)
}

func (m *MockJobRepository) IncrementApplicantsCount(ctx context.Context, jobID primitive.ObjectID) error {
	args := m.Called(ctx, jobID)
	return args.Error(0)
}

func (m *MockJobRepository) CloseJob(ctx context.Context, jobID primitive.ObjectID) error {
	args := m.Called(ctx, jobID)
	return args.Error(0)
}

// MockApplicationRepository is a mock implementation of ApplicationRepository.
type MockApplicationRepository struct {
	mock.Mock
}

func (m *MockApplicationRepository) CreateApplication(ctx context.Context, app *models.Application) error {
	args := m.Called(ctx, app)
	return args.Error(0)
}

func (m *MockApplicationRepository) GetApplicationByID(ctx context.Context, id string) (*models.Application, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Application), args.Error(1)
}

func (m *MockApplicationRepository) GetBySeekerAndJob(ctx context.Context, seekerID, jobID primitive.ObjectID) (*models.Application, error) {
	args := m.Called(ctx, seekerID, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Application), args.Error(1)
}

func (m *MockApplicationRepository) ListBySeeker(ctx context.Context, seekerID primitive.ObjectID) ([]models.Application, error) {
	args := m.Called(ctx, seekerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Application), args.Error(1)
}

func (m *MockApplicationRepository) ListByJob(ctx context.Context, jobID primitive.ObjectID) ([]models.Application, error) {
	args := m.Called(ctx, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Application), args.Error(1)
}

func (m *MockApplicationRepository) ListJobIDsBySeeker(ctx context.Context, seekerID primitive.ObjectID) ([]primitive.ObjectID, error) {
	args := m.Called(ctx, seekerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]primitive.ObjectID), args.Error(1)
}

func (m *MockApplicationRepository) ListByFinderAndStatuses(ctx context.Context, finderID primitive.ObjectID, statuses []string) ([]models.Application, error) {
	args := m.Called(ctx, finderID, statuses)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Application), args.Error(1)
}

func (m *MockApplicationRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockApplicationRepository) CloseAllForJob(ctx context.Context, jobID primitive.ObjectID) (int64, error) {
	args := m.Called(ctx, jobID)
	return args.Get(0).(int64), args.Error(1)
}

// MockNotificationRepository is a mock implementation of NotificationRepository.
type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) CreateNotification(ctx context.Context, n *models.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *MockNotificationRepository) CreateNotifications(ctx context.Context, ns []models.Notification) error {
	args := m.Called(ctx, ns)
	return args.Error(0)
}

func (m *MockNotificationRepository) ListByRecipient(ctx context.Context, kind models.AccountKind, accountID primitive.ObjectID) ([]models.Notification, error) {
	args := m.Called(ctx, kind, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Notification), args.Error(1)
}

func (m *MockNotificationRepository) CountUnread(ctx context.Context, kind models.AccountKind, accountID primitive.ObjectID) (int64, error) {
	args := m.Called(ctx, kind, accountID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationRepository) MarkAsRead(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockNotificationRepository) MarkAllAsRead(ctx context.Context, kind models.AccountKind, accountID primitive.ObjectID) error {
	args := m.Called(ctx, kind, accountID)
	return args.Error(0)
}

// passthroughTxnRunner runs the function directly, without a session.
type passthroughTxnRunner struct{}

func (passthroughTxnRunner) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func newTestEngine() (*Engine, *MockJobRepository, *MockApplicationRepository, *MockNotificationRepository) {
	jobs := new(MockJobRepository)
	apps := new(MockApplicationRepository)
	notes := new(MockNotificationRepository)
	return NewEngine(jobs, apps, notes, passthroughTxnRunner{}), jobs, apps, notes
}

func TestEngine_Apply(t *testing.T) {
	seekerID := primitive.NewObjectID()
	finderID := primitive.NewObjectID()
	jobID := primitive.NewObjectID()

	seeker := &models.Seeker{ID: seekerID, Skills: []string{"go", "sql"}}
	job := &models.Job{ID: jobID, FinderID: finderID, Title: "Backend Engineer", Category: "Go Services", Visible: true}

	t.Run("successful apply creates pending application and increments counter", func(t *testing.T) {
		engine, jobs, apps, _ := newTestEngine()
		jobs.On("GetJobByID", mock.Anything, jobID.Hex()).Return(job, nil)
		apps.On("GetBySeekerAndJob", mock.Anything, seekerID, jobID).Return(nil, repositories.ErrNotFound)
		apps.On("CreateApplication", mock.Anything, mock.AnythingOfType("*models.Application")).Return(nil)
		jobs.On("IncrementApplicantsCount", mock.Anything, jobID).Return(nil).Once()

		application, err := engine.Apply(context.Background(), seeker, jobID.Hex())

		assert.NoError(t, err)
		assert.NotNil(t, application)
		assert.Equal(t, string(StatusPending), application.Status)
		assert.Equal(t, seekerID, application.SeekerID)
		assert.Equal(t, finderID, application.FinderID)
		assert.Equal(t, 20, application.MatchScore) // "go" matches category, "sql" does not
		jobs.AssertExpectations(t)
		apps.AssertExpectations(t)
	})

	t.Run("duplicate apply fails with conflict and does not touch the counter", func(t *testing.T) {
		engine, jobs, apps, _ := newTestEngine()
		jobs.On("GetJobByID", mock.Anything, jobID.Hex()).Return(job, nil)
		apps.On("GetBySeekerAndJob", mock.Anything, seekerID, jobID).Return(&models.Application{}, nil)

		application, err := engine.Apply(context.Background(), seeker, jobID.Hex())

		assert.ErrorIs(t, err, ErrAlreadyApplied)
		assert.Nil(t, application)
		jobs.AssertNotCalled(t, "IncrementApplicantsCount", mock.Anything, mock.Anything)
		apps.AssertNotCalled(t, "CreateApplication", mock.Anything, mock.Anything)
	})

	t.Run("missing job fails with not found", func(t *testing.T) {
		engine, jobs, _, _ := newTestEngine()
		jobs.On("GetJobByID", mock.Anything, jobID.Hex()).Return(nil, repositories.ErrNotFound)

		_, err := engine.Apply(context.Background(), seeker, jobID.Hex())

		assert.ErrorIs(t, err, ErrJobNotFound)
	})

	t.Run("closed job rejects new applications", func(t *testing.T) {
		engine, jobs, apps, _ := newTestEngine()
		closedJob := &models.Job{ID: jobID, FinderID: finderID, Title: "Backend Engineer", Visible: false}
		jobs.On("GetJobByID", mock.Anything, jobID.Hex()).Return(closedJob, nil)

		_, err := engine.Apply(context.Background(), seeker, jobID.Hex())

		assert.ErrorIs(t, err, ErrJobClosed)
		apps.AssertNotCalled(t, "CreateApplication", mock.Anything, mock.Anything)
	})
}

func TestEngine_ChangeStatus(t *testing.T) {
	applicationID := primitive.NewObjectID()
	seekerID := primitive.NewObjectID()
	jobID := primitive.NewObjectID()

	application := &models.Application{ID: applicationID, SeekerID: seekerID, JobID: jobID, Status: string(StatusPending)}
	job := &models.Job{ID: jobID, Title: "Data Analyst"}

	t.Run("valid status updates and notifies the seeker exactly once", func(t *testing.T) {
		engine, jobs, apps, notes := newTestEngine()
		apps.On("GetApplicationByID", mock.Anything, applicationID.Hex()).Return(application, nil)
		jobs.On("GetJobByID", mock.Anything, jobID.Hex()).Return(job, nil)
		apps.On("UpdateStatus", mock.Anything, applicationID, "Shortlisted").Return(nil)
		notes.On("CreateNotification", mock.Anything, mock.MatchedBy(func(n *models.Notification) bool {
			return n.SeekerID != nil && *n.SeekerID == seekerID &&
				n.FinderID == nil &&
				n.Title == "Application Shortlisted" &&
				n.Type == models.NotificationTypeApplication
		})).Return(nil).Once()

		updated, err := engine.ChangeStatus(context.Background(), applicationID.Hex(), "Shortlisted")

		assert.NoError(t, err)
		assert.Equal(t, "Shortlisted", updated.Status)
		apps.AssertExpectations(t)
		notes.AssertExpectations(t)
	})

	t.Run("notification message names the job title and new status", func(t *testing.T) {
		engine, jobs, apps, notes := newTestEngine()
		apps.On("GetApplicationByID", mock.Anything, applicationID.Hex()).Return(application, nil)
		jobs.On("GetJobByID", mock.Anything, jobID.Hex()).Return(job, nil)
		apps.On("UpdateStatus", mock.Anything, applicationID, "Accepted").Return(nil)

		var captured *models.Notification
		notes.On("CreateNotification", mock.Anything, mock.AnythingOfType("*models.Notification")).
			Run(func(args mock.Arguments) { captured = args.Get(1).(*models.Notification) }).
			Return(nil)

		_, err := engine.ChangeStatus(context.Background(), applicationID.Hex(), "Accepted")

		assert.NoError(t, err)
		assert.Contains(t, captured.Message, "Data Analyst")
		assert.Contains(t, captured.Message, "Accepted")
	})

	t.Run("unrecognized status fails validation without creating a notification", func(t *testing.T) {
		engine, _, apps, notes := newTestEngine()

		_, err := engine.ChangeStatus(context.Background(), applicationID.Hex(), "Hired")

		assert.ErrorIs(t, err, ErrInvalidStatus)
		apps.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
		notes.AssertNotCalled(t, "CreateNotification", mock.Anything, mock.Anything)
	})

	t.Run("missing application fails with not found", func(t *testing.T) {
		engine, _, apps, notes := newTestEngine()
		apps.On("GetApplicationByID", mock.Anything, applicationID.Hex()).Return(nil, repositories.ErrNotFound)

		_, err := engine.ChangeStatus(context.Background(), applicationID.Hex(), "Rejected")

		assert.ErrorIs(t, err, ErrApplicationNotFound)
		notes.AssertNotCalled(t, "CreateNotification", mock.Anything, mock.Anything)
	})
}

func TestEngine_CloseJob(t *testing.T) {
	jobID := primitive.NewObjectID()
	job := &models.Job{ID: jobID, Title: "Platform Engineer", Visible: true}

	t.Run("job with no applications still closes, zero notifications", func(t *testing.T) {
		engine, jobs, apps, notes := newTestEngine()
		jobs.On("GetJobByID", mock.Anything, jobID.Hex()).Return(job, nil)
		apps.On("ListByJob", mock.Anything, jobID).Return([]models.Application{}, nil)
		apps.On("CloseAllForJob", mock.Anything, jobID).Return(int64(0), nil)
		jobs.On("CloseJob", mock.Anything, jobID).Return(nil)

		closed, err := engine.CloseJob(context.Background(), jobID.Hex())

		assert.NoError(t, err)
		assert.Equal(t, int64(0), closed)
		notes.AssertNotCalled(t, "CreateNotifications", mock.Anything, mock.Anything)
		jobs.AssertExpectations(t)
	})

	t.Run("job with N applications closes all and batch-notifies each seeker", func(t *testing.T) {
		engine, jobs, apps, notes := newTestEngine()
		applications := []models.Application{
			{ID: primitive.NewObjectID(), SeekerID: primitive.NewObjectID(), JobID: jobID},
			{ID: primitive.NewObjectID(), SeekerID: primitive.NewObjectID(), JobID: jobID},
			{ID: primitive.NewObjectID(), SeekerID: primitive.NewObjectID(), JobID: jobID},
		}
		jobs.On("GetJobByID", mock.Anything, jobID.Hex()).Return(job, nil)
		apps.On("ListByJob", mock.Anything, jobID).Return(applications, nil)
		apps.On("CloseAllForJob", mock.Anything, jobID).Return(int64(3), nil)
		jobs.On("CloseJob", mock.Anything, jobID).Return(nil)
		notes.On("CreateNotifications", mock.Anything, mock.MatchedBy(func(ns []models.Notification) bool {
			if len(ns) != 3 {
				return false
			}
			for i, n := range ns {
				if n.SeekerID == nil || *n.SeekerID != applications[i].SeekerID {
					return false
				}
				if n.Title != "Job Closed" || n.Type != models.NotificationTypeJob {
					return false
				}
			}
			return true
		})).Return(nil).Once()

		closed, err := engine.CloseJob(context.Background(), jobID.Hex())

		assert.NoError(t, err)
		assert.Equal(t, int64(3), closed)
		notes.AssertExpectations(t)
	})

	t.Run("missing job fails with not found", func(t *testing.T) {
		engine, jobs, apps, _ := newTestEngine()
		jobs.On("GetJobByID", mock.Anything, jobID.Hex()).Return(nil, repositories.ErrNotFound)

		_, err := engine.CloseJob(context.Background(), jobID.Hex())

		assert.ErrorIs(t, err, ErrJobNotFound)
		apps.AssertNotCalled(t, "CloseAllForJob", mock.Anything, mock.Anything)
	})
}
