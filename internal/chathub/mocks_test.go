package chathub_test

import (
	"sync"

	"github.com/stretchr/testify/mock"

	"studyzen/backend/internal/chathub"
	"studyzen/backend/internal/models"
)

// MockStorage is a testify mock of the storage.Storage interface.
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) SaveRoom(room *models.ChatRoom) error {
	args := m.Called(room)
	return args.Error(0)
}

func (m *MockStorage) CloseRoom(roomID string) error {
	args := m.Called(roomID)
	return args.Error(0)
}

func (m *MockStorage) GetRoomByID(roomID string) (*models.ChatRoom, error) {
	args := m.Called(roomID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ChatRoom), args.Error(1)
}

func (m *MockStorage) GetActiveRoomIDs() ([]string, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockStorage) SaveMessage(msg *models.ChatHistory) error {
	args := m.Called(msg)
	return args.Error(0)
}

func (m *MockStorage) GetChatHistory(roomID string) ([]models.ChatHistory, error) {
	args := m.Called(roomID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ChatHistory), args.Error(1)
}

func (m *MockStorage) PublishEvent(roomID string, ev models.ChatEvent) error {
	args := m.Called(roomID, ev)
	return args.Error(0)
}

func (m *MockStorage) SaveReport(report *models.Report) error {
	args := m.Called(report)
	return args.Error(0)
}

func (m *MockStorage) GetPendingReports() ([]models.Report, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Report), args.Error(1)
}

func (m *MockStorage) ResolveReport(id uint, status string) error {
	args := m.Called(id, status)
	return args.Error(0)
}

func (m *MockStorage) AddOnlineUser(anonID string) error {
	args := m.Called(anonID)
	return args.Error(0)
}

func (m *MockStorage) RemoveOnlineUser(anonID string) error {
	args := m.Called(anonID)
	return args.Error(0)
}

func (m *MockStorage) GetOnlineCount() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

// newMockStorage returns a mock that accepts the calls the hub makes as a
// side effect of normal operation. Tests that care about a specific call
// assert on it explicitly.
func newMockStorage() *MockStorage {
	s := new(MockStorage)
	s.On("SaveRoom", mock.Anything).Return(nil)
	s.On("CloseRoom", mock.Anything).Return(nil)
	s.On("SaveMessage", mock.Anything).Return(nil)
	s.On("PublishEvent", mock.Anything, mock.Anything).Return(nil)
	s.On("AddOnlineUser", mock.Anything).Return(nil)
	s.On("RemoveOnlineUser", mock.Anything).Return(nil)
	return s
}

// fakeClient is a plain in-memory Client with a buffered send channel, so
// tests can inspect what each connection received.
type fakeClient struct {
	anonID string

	mu     sync.Mutex
	roomID string
	closed bool

	send chan models.ChatEvent
}

func newFakeClient(id string) *fakeClient {
	return &fakeClient{
		anonID: id,
		send:   make(chan models.ChatEvent, 32),
	}
}

func (c *fakeClient) GetAnonID() string { return c.anonID }

func (c *fakeClient) GetRoomID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.roomID
}

func (c *fakeClient) SetRoomID(id string) {
	c.mu.Lock()
	c.roomID = id
	c.mu.Unlock()
}

func (c *fakeClient) GetSendChannel() chan<- models.ChatEvent { return c.send }

func (c *fakeClient) Run() {}

func (c *fakeClient) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

// drain empties the client's channel and returns everything received so far.
func (c *fakeClient) drain() []models.ChatEvent {
	var events []models.ChatEvent
	for {
		select {
		case ev, ok := <-c.send:
			if !ok {
				return events
			}
			events = append(events, ev)
		default:
			return events
		}
	}
}

// newTestHub builds a hub over the mock storage without starting Run; the
// registry, matcher and relay can be driven directly.
func newTestHub(s *MockStorage) *chathub.Hub {
	return chathub.NewHub(s, chathub.DefaultMessages())
}

// connect registers a fresh fake client directly in the registry.
func connect(hub *chathub.Hub, id string) *fakeClient {
	c := newFakeClient(id)
	hub.Registry.Register(c)
	return c
}
