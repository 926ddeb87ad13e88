// Package mocks provides testify mock implementations of the model
// interfaces for use in unit tests.
package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/OpenLabsEx/API/internal/model"
)

// UserStore is a mock implementation of model.UserStore.
type UserStore struct {
	mock.Mock
}

func (m *UserStore) GetByEmail(ctx context.Context, email string) (model.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *UserStore) GetByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *UserStore) Create(ctx context.Context, user model.User) (model.User, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *UserStore) TouchLastActive(ctx context.Context, id uuid.UUID, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

func (m *UserStore) UpdatePassword(ctx context.Context, id uuid.UUID, hashedPassword string) error {
	args := m.Called(ctx, id, hashedPassword)
	return args.Error(0)
}

func (m *UserStore) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

// SecretStore is a mock implementation of model.SecretStore.
type SecretStore struct {
	mock.Mock
}

func (m *SecretStore) GetByUserID(ctx context.Context, userID uuid.UUID) (model.Secret, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(model.Secret), args.Error(1)
}

func (m *SecretStore) UpdateAWS(ctx context.Context, userID uuid.UUID, accessKey, secretKey string, at time.Time) error {
	args := m.Called(ctx, userID, accessKey, secretKey, at)
	return args.Error(0)
}

func (m *SecretStore) UpdateAzure(ctx context.Context, userID uuid.UUID, clientID, clientSecret string, at time.Time) error {
	args := m.Called(ctx, userID, clientID, clientSecret, at)
	return args.Error(0)
}

// TemplateStore is a mock implementation of model.TemplateStore.
type TemplateStore struct {
	mock.Mock
}

func (m *TemplateStore) Create(ctx context.Context, template model.Template) (model.Template, error) {
	args := m.Called(ctx, template)
	return args.Get(0).(model.Template), args.Error(1)
}

func (m *TemplateStore) Get(ctx context.Context, kind model.TemplateKind, id uuid.UUID, ownerID *uuid.UUID) (model.Template, error) {
	args := m.Called(ctx, kind, id, ownerID)
	return args.Get(0).(model.Template), args.Error(1)
}

func (m *TemplateStore) Headers(ctx context.Context, kind model.TemplateKind, ownerID uuid.UUID) ([]model.TemplateHeader, error) {
	args := m.Called(ctx, kind, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.TemplateHeader), args.Error(1)
}

// RangeStore is a mock implementation of model.RangeStore.
type RangeStore struct {
	mock.Mock
}

func (m *RangeStore) Create(ctx context.Context, deployed model.DeployedRange) (model.DeployedRange, error) {
	args := m.Called(ctx, deployed)
	return args.Get(0).(model.DeployedRange), args.Error(1)
}

func (m *RangeStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.DeployedRange, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.DeployedRange), args.Error(1)
}
