// Package mocks provides mock implementations for testing the catalog service.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for our repository interfaces.
// The generated files are committed so tests build without running codegen.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	defer ctrl.Finish()
//	mockRepo := mocks.NewMockCategoryRepository(ctrl)
//	mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(category, nil)
package mocks

// Generate mock for UserRepository interface from internal/core package.
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=user_repository_mock.go github.com/sportsbazar/catalog-api/internal/core UserRepository

// Generate mock for CategoryRepository interface from internal/core package.
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=category_repository_mock.go github.com/sportsbazar/catalog-api/internal/core CategoryRepository

// Generate mock for ItemRepository interface from internal/core package.
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=item_repository_mock.go github.com/sportsbazar/catalog-api/internal/core ItemRepository
