package mailer

import "sync"

type MockMailer struct {
	mu    sync.Mutex
	Sends []MockSend
}

type MockSend struct {
	Recipient    string
	TemplateFile string
	Data         any
}

func NewMockMailer() *MockMailer {
	return &MockMailer{}
}

func (m *MockMailer) SentMessages() []MockSend {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]MockSend(nil), m.Sends...)
}

func (m *MockMailer) Send(recipient, templateFile string, data any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Sends = append(m.Sends, MockSend{
		Recipient:    recipient,
		TemplateFile: templateFile,
		Data:         data,
	})

	return nil
}
