package contract

import (
	"context"

	"github.com/huangsam/cruxaudit/schema"
	"github.com/stretchr/testify/mock"
)

// MockMetricsSource is a mock implementation of MetricsSource for testing.
type MockMetricsSource struct {
	mock.Mock
}

var _ MetricsSource = &MockMetricsSource{} // Compile-time check

// GetSnapshot implements the MetricsSource interface.
func (m *MockMetricsSource) GetSnapshot(ctx context.Context, origin string, ff schema.FormFactor) (*schema.RawDeviceSnapshot, error) {
	ret := m.Called(ctx, origin, ff)
	snap, _ := ret.Get(0).(*schema.RawDeviceSnapshot)
	return snap, ret.Error(1)
}

// GetHistory implements the MetricsSource interface.
func (m *MockMetricsSource) GetHistory(ctx context.Context, origin string, ff schema.FormFactor) (*schema.RawDeviceHistory, error) {
	ret := m.Called(ctx, origin, ff)
	hist, _ := ret.Get(0).(*schema.RawDeviceHistory)
	return hist, ret.Error(1)
}

// MockTextGenerator is a mock implementation of TextGenerator for testing.
type MockTextGenerator struct {
	mock.Mock
}

var _ TextGenerator = &MockTextGenerator{} // Compile-time check

// Generate implements the TextGenerator interface.
func (m *MockTextGenerator) Generate(ctx context.Context, prompt string, temperature float64) (string, error) {
	ret := m.Called(ctx, prompt, temperature)
	return ret.String(0), ret.Error(1)
}
