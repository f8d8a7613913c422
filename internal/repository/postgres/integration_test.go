//go:build integration

package postgres_test

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/rosterlab/memberd/internal/model"
	repo "github.com/rosterlab/memberd/internal/repository/postgres"
)

var dsn string

func TestMain(m *testing.M) {
	ctx := context.Background()
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:15-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "password",
				"POSTGRES_DB":       "memberd_test",
			},
			WaitingFor: wait.ForListeningPort("5432/tcp").WithStartupTimeout(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		panic(err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		panic(err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		panic(err)
	}
	dsn = fmt.Sprintf("postgres://postgres:password@%s:%s/memberd_test?sslmode=disable", host, port.Port())

	code := m.Run()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

func newMember(email string) model.Member {
	return model.Member{
		FirstName:    "First",
		LastName:     "Last",
		Email:        email,
		PasswordHash: "$2a$10$fakehashfakehashfakehashfakehashfakehashfakehashfake",
	}
}

func TestMemberRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConnection(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	mr := repo.NewMemberRepository(conn)

	saved, err := mr.Create(ctx, newMember("crud@example.com"))
	require.NoError(t, err)
	require.NotZero(t, saved.ID)
	require.Equal(t, "crud@example.com", saved.Email)
	require.False(t, saved.CreatedAt.IsZero())

	byEmail, err := mr.GetByEmail(ctx, "crud@example.com")
	require.NoError(t, err)
	require.Equal(t, saved.ID, byEmail.ID)

	byID, err := mr.GetByID(ctx, saved.ID)
	require.NoError(t, err)
	require.Equal(t, saved.Email, byID.Email)

	_, err = mr.GetByID(ctx, saved.ID+1000)
	require.ErrorIs(t, err, model.ErrNotFound)

	_, err = mr.GetByEmail(ctx, "absent@example.com")
	require.ErrorIs(t, err, model.ErrNotFound)

	updated, err := mr.UpdateProfile(ctx, saved.ID, "Updated", "Name")
	require.NoError(t, err)
	require.Equal(t, "Updated", updated.FirstName)
	require.Equal(t, "Name", updated.LastName)
	require.Equal(t, saved.Email, updated.Email)
	require.True(t, updated.UpdatedAt.After(saved.UpdatedAt) || updated.UpdatedAt.Equal(saved.UpdatedAt))

	_, err = mr.UpdateProfile(ctx, saved.ID+1000, "x", "y")
	require.ErrorIs(t, err, model.ErrNotFound)
}

func TestMemberRepository_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConnection(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	mr := repo.NewMemberRepository(conn)

	_, err = mr.Create(ctx, newMember("dup@example.com"))
	require.NoError(t, err)

	_, err = mr.Create(ctx, newMember("dup@example.com"))
	require.ErrorIs(t, err, model.ErrDuplicateEmail)
}

// TestMemberRepository_ConcurrentCreate races two inserts on the same email.
// Exactly one row must win; the loser observes the unique constraint, not a
// second row.
func TestMemberRepository_ConcurrentCreate(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConnection(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	mr := repo.NewMemberRepository(conn)

	const racers = 8
	errs := make([]error, racers)
	var wg sync.WaitGroup
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = mr.Create(ctx, newMember("race@example.com"))
		}(i)
	}
	wg.Wait()

	var created, duplicates int
	for _, err := range errs {
		switch {
		case err == nil:
			created++
		default:
			require.ErrorIs(t, err, model.ErrDuplicateEmail)
			duplicates++
		}
	}
	require.Equal(t, 1, created)
	require.Equal(t, racers-1, duplicates)

	members, err := mr.List(ctx, model.AccessScope{})
	require.NoError(t, err)
	var raceRows int
	for _, m := range members {
		if m.Email == "race@example.com" {
			raceRows++
		}
	}
	require.Equal(t, 1, raceRows)
}

func TestMemberRepository_ListScoping(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConnection(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	mr := repo.NewMemberRepository(conn)

	first, err := mr.Create(ctx, newMember("scope-one@example.com"))
	require.NoError(t, err)
	second, err := mr.Create(ctx, newMember("scope-two@example.com"))
	require.NoError(t, err)

	// Unbounded scope sees every row.
	all, err := mr.List(ctx, model.AccessScope{})
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(all), 2)

	// A member-bound scope sees exactly its own row.
	scoped, err := mr.List(ctx, model.AccessScope{MemberID: &first.ID})
	require.NoError(t, err)
	require.Len(t, scoped, 1)
	require.Equal(t, first.ID, scoped[0].ID)
	for _, m := range scoped {
		require.NotEqual(t, second.ID, m.ID)
	}
}
