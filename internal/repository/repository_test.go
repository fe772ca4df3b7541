package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"bid-leveler/internal/models"
	"bid-leveler/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mockPool.Close)
	return mockPool
}

func TestUserRepository(t *testing.T) {
	t.Run("Should create user", func(t *testing.T) {
		mockPool := newMock(t)
		repo := repository.NewUserRepository(mockPool, zaptest.NewLogger(t))
		now := time.Now()
		user := &models.User{ID: uuid.New(), Username: "alice", Email: "a@example.com", Password: "hash", CreatedAt: now, UpdatedAt: now}

		mockPool.ExpectExec("INSERT INTO users").
			WithArgs(user.ID, "alice", "a@example.com", "hash", now, now).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		require.NoError(t, repo.Create(context.Background(), user))
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("Should map unique violation to ErrDuplicate", func(t *testing.T) {
		mockPool := newMock(t)
		repo := repository.NewUserRepository(mockPool, zaptest.NewLogger(t))

		mockPool.ExpectExec("INSERT INTO users").
			WillReturnError(&pgconn.PgError{Code: "23505"})

		err := repo.Create(context.Background(), &models.User{ID: uuid.New()})
		assert.True(t, errors.Is(err, repository.ErrDuplicate))
	})

	t.Run("Should get user by email", func(t *testing.T) {
		mockPool := newMock(t)
		repo := repository.NewUserRepository(mockPool, zaptest.NewLogger(t))
		id := uuid.New()
		now := time.Now()

		rows := mockPool.NewRows([]string{"id", "username", "email", "password", "created_at", "updated_at"}).
			AddRow(id, "alice", "a@example.com", "hash", now, now)
		mockPool.ExpectQuery("SELECT (.+) FROM users WHERE email = \\$1").
			WithArgs("a@example.com").
			WillReturnRows(rows)

		user, err := repo.GetByEmail(context.Background(), "a@example.com")
		require.NoError(t, err)
		assert.Equal(t, id, user.ID)
		assert.Equal(t, "alice", user.Username)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("Should return ErrNotFound for unknown id", func(t *testing.T) {
		mockPool := newMock(t)
		repo := repository.NewUserRepository(mockPool, zaptest.NewLogger(t))
		id := uuid.New()

		mockPool.ExpectQuery("SELECT (.+) FROM users WHERE id = \\$1").
			WithArgs(id).
			WillReturnError(pgx.ErrNoRows)

		user, err := repo.GetByID(context.Background(), id)
		assert.Nil(t, user)
		assert.True(t, errors.Is(err, repository.ErrNotFound))
	})
}

func TestProjectRepository(t *testing.T) {
	columns := []string{"id", "owner_id", "name", "description", "location", "created_at", "updated_at"}

	t.Run("Should list projects of owner", func(t *testing.T) {
		mockPool := newMock(t)
		repo := repository.NewProjectRepository(mockPool, zaptest.NewLogger(t))
		owner := uuid.New()
		now := time.Now()

		rows := mockPool.NewRows(columns).
			AddRow(uuid.New(), owner, "School", "New wing", "Denver", now, now).
			AddRow(uuid.New(), owner, "Library", "", "Austin", now, now)
		mockPool.ExpectQuery("SELECT (.+) FROM projects WHERE owner_id = \\$1 ORDER BY created_at DESC LIMIT 10 OFFSET 0").
			WithArgs(owner).
			WillReturnRows(rows)

		projects, err := repo.ListByOwner(context.Background(), owner, 10, 0)
		require.NoError(t, err)
		require.Len(t, projects, 2)
		assert.Equal(t, "School", projects[0].Name)
		assert.Equal(t, "Austin", projects[1].Location)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("Should update project", func(t *testing.T) {
		mockPool := newMock(t)
		repo := repository.NewProjectRepository(mockPool, zaptest.NewLogger(t))
		p := &models.Project{ID: uuid.New(), Name: "School", UpdatedAt: time.Now()}

		mockPool.ExpectExec("UPDATE projects SET name = \\$1, description = \\$2, location = \\$3, updated_at = \\$4 WHERE id = \\$5").
			WithArgs("School", "", "", p.UpdatedAt, p.ID).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		require.NoError(t, repo.Update(context.Background(), p))
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("Should return ErrNotFound when nothing deleted", func(t *testing.T) {
		mockPool := newMock(t)
		repo := repository.NewProjectRepository(mockPool, zaptest.NewLogger(t))
		id := uuid.New()

		mockPool.ExpectExec("DELETE FROM projects WHERE id = \\$1").
			WithArgs(id).
			WillReturnResult(pgxmock.NewResult("DELETE", 0))

		err := repo.Delete(context.Background(), id)
		assert.True(t, errors.Is(err, repository.ErrNotFound))
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})
}

func TestBidRepository(t *testing.T) {
	t.Run("Should list bids of project", func(t *testing.T) {
		mockPool := newMock(t)
		repo := repository.NewBidRepository(mockPool, zaptest.NewLogger(t))
		projectID := uuid.New()
		now := time.Now()

		rows := mockPool.NewRows([]string{
			"id", "project_id", "contractor", "file_name", "file_size", "file_path",
			"content_type", "extracted_text", "total_cost", "created_at", "updated_at",
		}).AddRow(uuid.New(), projectID, "ACME", "acme.pdf", int64(2048), "uploads/x.pdf",
			"application/pdf", "text", "Total Project Cost: $1,000", now, now)
		mockPool.ExpectQuery("SELECT (.+) FROM bids WHERE project_id = \\$1 ORDER BY created_at ASC").
			WithArgs(projectID).
			WillReturnRows(rows)

		bids, err := repo.ListByProject(context.Background(), projectID)
		require.NoError(t, err)
		require.Len(t, bids, 1)
		assert.Equal(t, "ACME", bids[0].Contractor)
		assert.Equal(t, "Total Project Cost: $1,000", bids[0].TotalCost)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("Should create bid", func(t *testing.T) {
		mockPool := newMock(t)
		repo := repository.NewBidRepository(mockPool, zaptest.NewLogger(t))

		mockPool.ExpectExec("INSERT INTO bids").
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		require.NoError(t, repo.Create(context.Background(), &models.Bid{ID: uuid.New()}))
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})
}

func TestComparisonRepository_Latest(t *testing.T) {
	t.Run("Should return ErrNotFound without comparisons", func(t *testing.T) {
		mockPool := newMock(t)
		repo := repository.NewComparisonRepository(mockPool, zaptest.NewLogger(t))
		projectID := uuid.New()

		mockPool.ExpectQuery("SELECT (.+) FROM comparisons WHERE project_id = \\$1 ORDER BY created_at DESC LIMIT 1").
			WithArgs(projectID).
			WillReturnRows(mockPool.NewRows([]string{"id"}))

		c, err := repo.Latest(context.Background(), projectID)
		assert.Nil(t, c)
		assert.True(t, errors.Is(err, repository.ErrNotFound))
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})
}

func TestUsageRepository(t *testing.T) {
	t.Run("Should store event", func(t *testing.T) {
		mockPool := newMock(t)
		repo := repository.NewUsageRepository(mockPool, zaptest.NewLogger(t))

		mockPool.ExpectExec("INSERT INTO usage_events").
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		require.NoError(t, repo.Create(context.Background(), &models.UsageEvent{ID: uuid.New(), Operation: "preprocess"}))
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("Should sum usage per operation", func(t *testing.T) {
		mockPool := newMock(t)
		repo := repository.NewUsageRepository(mockPool, zaptest.NewLogger(t))
		userID := uuid.New()
		since := time.Now().Add(-24 * time.Hour)

		rows := mockPool.NewRows([]string{"operation", "count", "documents", "original", "processed", "prompt", "completion"}).
			AddRow("compare", 2, 6, 9000, 3000, 3200, 800).
			AddRow("preprocess", 1, 3, 4000, 1000, 0, 0)
		mockPool.ExpectQuery("SELECT operation, (.+) FROM usage_events WHERE (.+) GROUP BY operation ORDER BY operation").
			WithArgs(userID, since).
			WillReturnRows(rows)

		totals, err := repo.TotalsByUser(context.Background(), userID, since)
		require.NoError(t, err)
		require.Len(t, totals, 2)
		assert.Equal(t, "compare", totals[0].Operation)
		assert.Equal(t, 3200, totals[0].PromptTokens)
		assert.Equal(t, 1000, totals[1].ProcessedTokens)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})
}
