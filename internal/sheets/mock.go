package sheets

import (
	"context"
	"sync"
)

// MockWriter records the reports it is given instead of sending them.
type MockWriter struct {
	// WriteFunc, when set, decides the result of each Write.
	WriteFunc func(ctx context.Context, r Report) error

	reports []Report
	errs    []error
	mu      sync.Mutex
}

var _ ReportWriter = (*MockWriter)(nil)

// NewMockWriter creates a mock writer that accepts every report.
func NewMockWriter() *MockWriter {
	return &MockWriter{}
}

// Write remembers r and returns WriteFunc's verdict.
func (m *MockWriter) Write(ctx context.Context, r Report) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var err error
	if m.WriteFunc != nil {
		err = m.WriteFunc(ctx, r)
	}
	m.reports = append(m.reports, r)
	m.errs = append(m.errs, err)
	return err
}

// Reports returns every report written so far, failed writes included.
func (m *MockWriter) Reports() []Report {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Report(nil), m.reports...)
}

// LastReport returns the most recent report, if any.
func (m *MockWriter) LastReport() (Report, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.reports) == 0 {
		return Report{}, false
	}
	return m.reports[len(m.reports)-1], true
}

// Errors returns the result of each write in order.
func (m *MockWriter) Errors() []error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]error(nil), m.errs...)
}

// FailWith makes every later Write return err.
func (m *MockWriter) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.WriteFunc = func(context.Context, Report) error { return err }
}
