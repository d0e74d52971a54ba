package courier

import (
	"context"
	"testing"

	"github.com/GriffinCanCode/courier/transport"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/mock"
)

// MockTransport is a testify mock of transport.Transport.
type MockTransport struct {
	mock.Mock
}

// Execute mocks the Execute method.
func (m *MockTransport) Execute(ctx context.Context, req *transport.Request) (*transport.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*transport.Response), args.Error(1)
}

// reply returns a transport that answers every request with head and body
// and remembers the last request it saw.
func reply(head, body string, seen **transport.Request) transport.Func {
	return func(_ context.Context, req *transport.Request) (*transport.Response, error) {
		if seen != nil {
			*seen = req
		}
		return &transport.Response{HeaderBlock: head, Body: []byte(body)}, nil
	}
}

func newTestClient(t *testing.T, tr transport.Transport, opts ...Option) *Client {
	t.Helper()
	base := []Option{
		WithTransport(tr),
		WithRegistry(installedRegistry()),
		WithRegisterer(prometheus.NewRegistry()),
	}
	return New(append(base, opts...)...)
}

const jsonHead = "HTTP/1.1 200 OK\r\nContent-Type: application/json\r\n\r\n"
