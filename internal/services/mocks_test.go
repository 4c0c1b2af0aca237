package services_test

import (
	"context"

	"github.com/rishisameer/portfolio-contact-api/internal/models"
	"github.com/rishisameer/portfolio-contact-api/pkg/resend"
	"github.com/stretchr/testify/mock"
)

// MockDispatcher is a mock implementation of services.Dispatcher
type MockDispatcher struct {
	mock.Mock
}

func (m *MockDispatcher) Dispatch(ctx context.Context, req *models.ContactRequest, clientKey string) (bool, error) {
	args := m.Called(ctx, req, clientKey)
	return args.Bool(0), args.Error(1)
}

// MockEmailClient is a mock implementation of services.EmailClient
type MockEmailClient struct {
	mock.Mock
}

func (m *MockEmailClient) Send(ctx context.Context, req *resend.SendRequest) (*resend.SendResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*resend.SendResponse), args.Error(1)
}
