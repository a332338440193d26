package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/inkpad-app/inkpad-backend/internal/core/services"
	"github.com/inkpad-app/inkpad-backend/internal/metrics"
	"github.com/inkpad-app/inkpad-backend/internal/platform/storage"
)

type MockBlobStore struct {
	mock.Mock
}

func (m *MockBlobStore) Put(ctx context.Context, content []byte, filename, contentType, folder string) (string, error) {
	args := m.Called(ctx, content, filename, contentType, folder)
	return args.String(0), args.Error(1)
}

func (m *MockBlobStore) ResolveURL(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockBlobStore) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockBlobStore) Healthy(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

var _ storage.BlobStore = (*MockBlobStore)(nil)

type MonitoringServiceTestSuite struct {
	suite.Suite
	collector    *metrics.Collector
	mockUserRepo *MockUserRepository
	mockBlobs    *MockBlobStore
	pingErr      error
	service      *services.MonitoringService
}

func (suite *MonitoringServiceTestSuite) SetupTest() {
	suite.collector = metrics.NewCollector()
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockBlobs = new(MockBlobStore)
	suite.pingErr = nil
	suite.service = services.NewMonitoringService(suite.collector, suite.mockUserRepo, func(ctx context.Context) error {
		return suite.pingErr
	}, suite.mockBlobs)
}

func (suite *MonitoringServiceTestSuite) TestSummary_ReflectsRecordedTraffic() {
	ctx := context.Background()
	suite.collector.Record("GET", "/api/v1/stories", 200, 5*time.Millisecond, "user-1")
	suite.collector.Record("GET", "/api/v1/stories", 500, 5*time.Millisecond, "")
	suite.mockUserRepo.On("CountUsers", ctx).Return(int64(7), nil).Once()

	overview, err := suite.service.Summary(ctx)

	suite.Require().NoError(err)
	suite.Equal(2, overview.TotalRequests)
	suite.Equal(1, overview.TotalErrors)
	suite.Equal(int64(7), overview.TotalRegisteredUsers)
}

func (suite *MonitoringServiceTestSuite) TestRecentErrors_ClampsLimit() {
	ctx := context.Background()
	for i := 0; i < 30; i++ {
		suite.collector.Record("GET", "/a", 500, time.Millisecond, "")
	}

	suite.Len(suite.service.RecentErrors(ctx, 0), 20)
	suite.Len(suite.service.RecentErrors(ctx, 500), 20)
	suite.Len(suite.service.RecentErrors(ctx, 5), 5)
}

func (suite *MonitoringServiceTestSuite) TestResetMetrics() {
	ctx := context.Background()
	suite.collector.Record("GET", "/a", 200, time.Millisecond, "user-1")
	suite.mockUserRepo.On("CountUsers", ctx).Return(int64(1), nil).Once()

	suite.service.ResetMetrics(ctx)

	overview, err := suite.service.Summary(ctx)
	suite.Require().NoError(err)
	suite.Zero(overview.TotalRequests)
}

func (suite *MonitoringServiceTestSuite) TestHealth_AllComponentsOK() {
	ctx := context.Background()
	suite.mockBlobs.On("Healthy", ctx).Return(nil).Once()

	report, healthy := suite.service.Health(ctx)

	suite.True(healthy)
	suite.Equal("ok", report["database"])
	suite.Equal("ok", report["storage"])
}

func (suite *MonitoringServiceTestSuite) TestHealth_ReportsFailingComponents() {
	ctx := context.Background()
	suite.pingErr = errors.New("connection refused")
	suite.mockBlobs.On("Healthy", ctx).Return(errors.New("bucket unreachable")).Once()

	report, healthy := suite.service.Health(ctx)

	suite.False(healthy)
	suite.Equal("connection refused", report["database"])
	suite.Equal("bucket unreachable", report["storage"])
}

func TestMonitoringService(t *testing.T) {
	suite.Run(t, new(MonitoringServiceTestSuite))
}
