//go:build integration

package postgres_test

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/OpenLabsEx/API/internal/model"
	repo "github.com/OpenLabsEx/API/internal/repository/postgres"
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
				"POSTGRES_DB":       "openlabs_test",
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
	dsn = fmt.Sprintf("postgres://postgres:password@%s:%s/openlabs_test?sslmode=disable", host, port.Port())

	code := m.Run()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

func newUser(email string) model.User {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return model.User{
		ID:             uuid.New(),
		Name:           "Test User",
		Email:          email,
		HashedPassword: "digest",
		CreatedAt:      now,
		LastActive:     now,
	}
}

func TestRepositories_CRUD(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConnection(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	users := repo.NewUserRepository(conn)
	secrets := repo.NewSecretRepository(conn)
	templates := repo.NewTemplateRepository(conn)
	ranges := repo.NewRangeRepository(conn)

	t.Run("user_repository", func(t *testing.T) {
		u := newUser("user@example.com")

		saved, err := users.Create(ctx, u)
		require.NoError(t, err)
		require.Equal(t, u.ID, saved.ID)

		byEmail, err := users.GetByEmail(ctx, u.Email)
		require.NoError(t, err)
		require.Equal(t, u.ID, byEmail.ID)

		byID, err := users.GetByID(ctx, u.ID)
		require.NoError(t, err)
		require.Equal(t, u.Email, byID.Email)

		// creation also provisions the empty secrets row
		secret, err := secrets.GetByUserID(ctx, u.ID)
		require.NoError(t, err)
		assert.False(t, secret.HasAWS())
		assert.False(t, secret.HasAzure())

		// duplicate email hits the unique constraint
		dup := newUser(u.Email)
		_, err = users.Create(ctx, dup)
		require.ErrorIs(t, err, model.ErrConflict)

		at := time.Now().UTC().Truncate(time.Microsecond)
		require.NoError(t, users.TouchLastActive(ctx, u.ID, at))
		touched, err := users.GetByID(ctx, u.ID)
		require.NoError(t, err)
		assert.WithinDuration(t, at, touched.LastActive, time.Millisecond)

		require.NoError(t, users.UpdatePassword(ctx, u.ID, "new-digest"))
		updated, err := users.GetByID(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, "new-digest", updated.HashedPassword)

		_, err = users.GetByEmail(ctx, "ghost@example.com")
		require.ErrorIs(t, err, model.ErrNotFound)

		require.ErrorIs(t, users.TouchLastActive(ctx, uuid.New(), at), model.ErrNotFound)
	})

	t.Run("secret_repository", func(t *testing.T) {
		u := newUser("secrets@example.com")
		_, err := users.Create(ctx, u)
		require.NoError(t, err)

		at := time.Now().UTC().Truncate(time.Microsecond)
		require.NoError(t, secrets.UpdateAWS(ctx, u.ID, "AKIA", "shh", at))

		secret, err := secrets.GetByUserID(ctx, u.ID)
		require.NoError(t, err)
		assert.True(t, secret.HasAWS())
		assert.False(t, secret.HasAzure())
		require.NotNil(t, secret.AWSCreatedAt)

		require.NoError(t, secrets.UpdateAzure(ctx, u.ID, "client", "shh", at))
		secret, err = secrets.GetByUserID(ctx, u.ID)
		require.NoError(t, err)
		assert.True(t, secret.HasAzure())

		require.ErrorIs(t, secrets.UpdateAWS(ctx, uuid.New(), "a", "b", at), model.ErrNotFound)
	})

	t.Run("template_repository", func(t *testing.T) {
		owner := newUser("templates@example.com")
		_, err := users.Create(ctx, owner)
		require.NoError(t, err)

		other := newUser("other@example.com")
		_, err = users.Create(ctx, other)
		require.NoError(t, err)

		tpl := model.Template{
			ID:        uuid.New(),
			UserID:    owner.ID,
			Kind:      model.TemplateHost,
			Name:      "web-01",
			Doc:       json.RawMessage(`{"hostname":"web-01","size":8}`),
			CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
		}
		saved, err := templates.Create(ctx, tpl)
		require.NoError(t, err)
		require.Equal(t, tpl.ID, saved.ID)

		got, err := templates.Get(ctx, model.TemplateHost, tpl.ID, &owner.ID)
		require.NoError(t, err)
		assert.JSONEq(t, string(tpl.Doc), string(got.Doc))

		// ownership filter hides foreign rows
		_, err = templates.Get(ctx, model.TemplateHost, tpl.ID, &other.ID)
		require.ErrorIs(t, err, model.ErrNotFound)

		// nil owner bypasses the filter
		_, err = templates.Get(ctx, model.TemplateHost, tpl.ID, nil)
		require.NoError(t, err)

		// kind must match
		_, err = templates.Get(ctx, model.TemplateRange, tpl.ID, &owner.ID)
		require.ErrorIs(t, err, model.ErrNotFound)

		headers, err := templates.Headers(ctx, model.TemplateHost, owner.ID)
		require.NoError(t, err)
		require.Len(t, headers, 1)
		assert.Equal(t, "web-01", headers[0].Name)

		headers, err = templates.Headers(ctx, model.TemplateHost, other.ID)
		require.NoError(t, err)
		assert.Empty(t, headers)
	})

	t.Run("range_repository", func(t *testing.T) {
		owner := newUser("ranges@example.com")
		_, err := users.Create(ctx, owner)
		require.NoError(t, err)

		deployed := model.DeployedRange{
			ID:         uuid.New(),
			UserID:     owner.ID,
			TemplateID: uuid.New(),
			Name:       "demo-range",
			Provider:   "aws",
			State:      model.RangeStateOn,
			Template:   json.RawMessage(`{"name":"demo-range"}`),
			StateKey:   "ranges/x/terraform.tfstate",
			DeployedAt: time.Now().UTC().Truncate(time.Microsecond),
		}
		saved, err := ranges.Create(ctx, deployed)
		require.NoError(t, err)
		require.Equal(t, deployed.ID, saved.ID)

		list, err := ranges.ListByUser(ctx, owner.ID)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "demo-range", list[0].Name)

		list, err = ranges.ListByUser(ctx, uuid.New())
		require.NoError(t, err)
		assert.Empty(t, list)
	})
}
