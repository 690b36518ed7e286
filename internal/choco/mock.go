package choco

import (
	"context"

	"github.com/cristianoliveira/choco-tui/internal/notify"
	"github.com/stretchr/testify/mock"
)

// MockClient is a testify mock implementation of Client. OnOutput and
// OnFinished are real registrations: Stream notifies them the way
// DefaultClient does.
//
// Example usage:
//
//	client := new(MockClient)
//	client.On("Outdated", mock.Anything).Return([]Package{{Name: "git", Version: "2.40.0", Available: "2.41.0"}}, nil)
type MockClient struct {
	mock.Mock

	output   notify.Registry[string]
	finished notify.Registry[error]
}

func (m *MockClient) OnOutput(fn func(line string)) (remove func()) {
	return m.output.Add(fn)
}

func (m *MockClient) OnFinished(fn func(err error)) (remove func()) {
	return m.finished.Add(fn)
}

// Run returns mocked stdout, stderr and error. Arguments are matched as a slice:
//
//	client.On("Run", mock.Anything, []string{"-?"}).Return("usage", "", nil)
func (m *MockClient) Run(ctx context.Context, args ...string) (string, string, error) {
	callArgs := m.Called(ctx, args)
	return callArgs.String(0), callArgs.String(1), callArgs.Error(2)
}

// Stream feeds the mocked lines (first return value, []string) to the
// OnOutput handlers and onLine, then reports the mocked error to OnFinished.
func (m *MockClient) Stream(ctx context.Context, onLine func(string), args ...string) error {
	callArgs := m.Called(ctx, args)
	if lines, ok := callArgs.Get(0).([]string); ok {
		for _, line := range lines {
			m.output.Notify(line)
			if onLine != nil {
				onLine(line)
			}
		}
	}
	err := callArgs.Error(1)
	m.finished.Notify(err)
	return err
}

func (m *MockClient) ListInstalled(ctx context.Context) ([]Package, error) {
	args := m.Called(ctx)
	pkgs, _ := args.Get(0).([]Package)
	return pkgs, args.Error(1)
}

func (m *MockClient) Outdated(ctx context.Context) ([]Package, error) {
	args := m.Called(ctx)
	pkgs, _ := args.Get(0).([]Package)
	return pkgs, args.Error(1)
}

func (m *MockClient) LatestVersion(ctx context.Context, name string) (string, error) {
	args := m.Called(ctx, name)
	return args.String(0), args.Error(1)
}

func (m *MockClient) Help(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}
