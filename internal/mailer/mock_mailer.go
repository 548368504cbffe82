package mailer

import "sync"

// Email captures the arguments of a single Send call.
type Email struct {
	Recipient    string
	TemplateFile string
	Data         any
}

// MockMailer records outgoing mail instead of delivering it.
type MockMailer struct {
	mu   sync.RWMutex
	sent []Email
}

func NewMockMailer() *MockMailer {
	return &MockMailer{}
}

func (m *MockMailer) Send(recipient, templateFile string, data any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sent = append(m.sent, Email{
		Recipient:    recipient,
		TemplateFile: templateFile,
		Data:         data,
	})

	return nil
}

// GetSentEmails returns a copy of everything recorded so far.
func (m *MockMailer) GetSentEmails() []Email {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Email, len(m.sent))
	copy(out, m.sent)
	return out
}

// Reset discards the recorded mail.
func (m *MockMailer) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sent = nil
}
