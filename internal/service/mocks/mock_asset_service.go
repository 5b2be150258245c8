package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"svgapi/internal/model"
	"svgapi/internal/service"
)

type MockAssetService struct {
	mock.Mock
}

func (m *MockAssetService) Create(ctx context.Context, in service.CreateInput) (*model.SVGAsset, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SVGAsset), args.Error(1)
}

func (m *MockAssetService) Get(ctx context.Context, id string) (*model.SVGAsset, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SVGAsset), args.Error(1)
}

func (m *MockAssetService) List(ctx context.Context) ([]model.SVGAsset, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.SVGAsset), args.Error(1)
}

func (m *MockAssetService) Update(ctx context.Context, id string, in service.UpdateInput) (*model.SVGAsset, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SVGAsset), args.Error(1)
}

func (m *MockAssetService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAssetService) Search(ctx context.Context, query string) ([]model.SVGAsset, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.SVGAsset), args.Error(1)
}

func (m *MockAssetService) DownloadURL(ctx context.Context, id string) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}
