package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopcore/shopcore/application/port/outbound"
	"github.com/shopcore/shopcore/domain/entity"
)

func newUserMock(t *testing.T) (outbound.UserRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewUserRepository(db), mock, db
}

func userRows(u *entity.User) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "username", "email", "password", "role", "created_at", "updated_at"}).
		AddRow(u.ID, u.Username, u.Email, u.Password, u.Role, u.CreatedAt, u.UpdatedAt)
}

func TestUserRepository_FindByEmail(t *testing.T) {
	repo, mock, _ := newUserMock(t)
	user := entity.NewUser("id-1", "alice", "alice@example.com", "hash", entity.RoleCustomer)

	mock.ExpectQuery("SELECT id, username, email, password, role, created_at, updated_at").
		WithArgs("alice@example.com").
		WillReturnRows(userRows(user))

	got, err := repo.FindByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)
	assert.Equal(t, entity.RoleCustomer, got.Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindByEmail_NotFound(t *testing.T) {
	repo, mock, _ := newUserMock(t)

	mock.ExpectQuery("SELECT id, username, email, password, role, created_at, updated_at").
		WithArgs("ghost@example.com").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByEmail(context.Background(), "ghost@example.com")
	assert.ErrorIs(t, err, outbound.ErrUserNotFound)
}

func TestUserRepository_Create(t *testing.T) {
	repo, mock, _ := newUserMock(t)
	user := entity.NewUser("id-1", "alice", "alice@example.com", "hash", entity.RoleCustomer)

	mock.ExpectExec("INSERT INTO users").
		WithArgs(user.ID, user.Username, user.Email, user.Password, user.Role, user.CreatedAt, user.UpdatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Create(context.Background(), user))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_ExistsByEmail(t *testing.T) {
	repo, mock, _ := newUserMock(t)

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("alice@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.ExistsByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestUserRepository_Update_NotFound(t *testing.T) {
	repo, mock, _ := newUserMock(t)
	user := entity.NewUser("missing", "bob", "bob@example.com", "hash", entity.RoleCustomer)
	user.UpdatedAt = time.Now().UTC()

	mock.ExpectExec("UPDATE users").
		WithArgs(user.ID, user.Username, user.Email, user.Password, user.Role, user.UpdatedAt).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), user)
	assert.ErrorIs(t, err, outbound.ErrUserNotFound)
}

func TestUserRepository_Delete(t *testing.T) {
	repo, mock, _ := newUserMock(t)

	mock.ExpectExec("DELETE FROM users").
		WithArgs("id-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), "id-1"))

	mock.ExpectExec("DELETE FROM users").
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.Delete(context.Background(), "missing"), outbound.ErrUserNotFound)
}

func TestUserRepository_FindAll(t *testing.T) {
	repo, mock, _ := newUserMock(t)
	a := entity.NewUser("id-1", "alice", "alice@example.com", "hash", entity.RoleAdmin)
	b := entity.NewUser("id-2", "bob", "bob@example.com", "hash", entity.RoleCustomer)

	rows := userRows(a).AddRow(b.ID, b.Username, b.Email, b.Password, b.Role, b.CreatedAt, b.UpdatedAt)
	mock.ExpectQuery("SELECT id, username, email, password, role, created_at, updated_at").
		WillReturnRows(rows)

	users, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "alice", users[0].Username)
	assert.Equal(t, "bob", users[1].Username)
}
