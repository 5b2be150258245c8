package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"svgapi/internal/model"
	"svgapi/internal/repository"
)

type MockAssetRepository struct {
	mock.Mock
}

func (m *MockAssetRepository) Create(ctx context.Context, asset *model.SVGAsset) (*model.SVGAsset, error) {
	args := m.Called(ctx, asset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SVGAsset), args.Error(1)
}

func (m *MockAssetRepository) FindByID(ctx context.Context, id string) (*model.SVGAsset, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SVGAsset), args.Error(1)
}

func (m *MockAssetRepository) FindAll(ctx context.Context) ([]model.SVGAsset, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.SVGAsset), args.Error(1)
}

func (m *MockAssetRepository) Update(ctx context.Context, id string, fields repository.UpdateFields) (*model.SVGAsset, error) {
	args := m.Called(ctx, id, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SVGAsset), args.Error(1)
}

func (m *MockAssetRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAssetRepository) Search(ctx context.Context, query string) ([]model.SVGAsset, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.SVGAsset), args.Error(1)
}
