package business

import (
	"context"
	"sync"

	channelentities "github.com/thecurioussailor/telegramAPI/internal/domain/channel/entities"
	channelerrors "github.com/thecurioussailor/telegramAPI/internal/domain/channel/errors"
	"github.com/thecurioussailor/telegramAPI/internal/domain/telegram/deps"
	"github.com/thecurioussailor/telegramAPI/internal/domain/telegram/entities"
	telegramerrors "github.com/thecurioussailor/telegramAPI/internal/domain/telegram/errors"
	userentities "github.com/thecurioussailor/telegramAPI/internal/domain/user/entities"
	usererrors "github.com/thecurioussailor/telegramAPI/internal/domain/user/errors"
)

// mockUserRepository keeps users in memory
type mockUserRepository struct {
	mu    sync.Mutex
	users map[string]*userentities.User
}

func newMockUserRepository(users ...*userentities.User) *mockUserRepository {
	m := &mockUserRepository{users: make(map[string]*userentities.User)}
	for _, u := range users {
		m.users[u.ID] = u
	}
	return m
}

func (m *mockUserRepository) Create(_ context.Context, user *userentities.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepository) GetByID(_ context.Context, id string) (*userentities.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, usererrors.ErrUserNotFound
}

func (m *mockUserRepository) GetByUsername(_ context.Context, username string) (*userentities.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, usererrors.ErrUserNotFound
}

func (m *mockUserRepository) SaveOTPRequest(_ context.Context, id string, session []byte, phoneNumber, phoneCodeHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return usererrors.ErrUserNotFound
	}
	u.Session = session
	u.PhoneNumber = phoneNumber
	u.PhoneCodeHash = phoneCodeHash
	return nil
}

func (m *mockUserRepository) MarkAuthenticated(_ context.Context, id string, session []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return usererrors.ErrUserNotFound
	}
	u.Session = session
	u.Authenticated = true
	return nil
}

func (m *mockUserRepository) get(id string) *userentities.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.users[id]
}

// mockChannelRepository keeps channels in memory
type mockChannelRepository struct {
	mu       sync.Mutex
	channels map[string]*channelentities.Channel
}

func newMockChannelRepository(channels ...*channelentities.Channel) *mockChannelRepository {
	m := &mockChannelRepository{channels: make(map[string]*channelentities.Channel)}
	for _, c := range channels {
		m.channels[c.ID] = c
	}
	return m
}

func (m *mockChannelRepository) Create(_ context.Context, channel *channelentities.Channel) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *channel
	m.channels[channel.ID] = &copied
	return nil
}

func (m *mockChannelRepository) GetOwned(_ context.Context, id, ownerID string) (*channelentities.Channel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.channels[id]
	if !ok || c.OwnerID != ownerID {
		return nil, channelerrors.ErrChannelNotFound
	}
	copied := *c
	return &copied, nil
}

func (m *mockChannelRepository) ListByOwner(_ context.Context, ownerID string) ([]channelentities.Channel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []channelentities.Channel
	for _, c := range m.channels {
		if c.OwnerID == ownerID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (m *mockChannelRepository) MarkBotAdded(_ context.Context, id, botUsername string) (*channelentities.Channel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.channels[id]
	if !ok {
		return nil, channelerrors.ErrChannelNotFound
	}
	c.HasBot = true
	c.BotUsername = &botUsername
	copied := *c
	return &copied, nil
}

// mockRunner runs fn against a single mockSession
type mockRunner struct {
	session      *mockSession
	returned     []byte
	runs         int
	lastSession  []byte
	connectError error
}

func (r *mockRunner) Run(
	ctx context.Context,
	session []byte,
	fn func(ctx context.Context, s deps.RemoteSession) error,
) ([]byte, error) {
	r.runs++
	r.lastSession = session
	if r.connectError != nil {
		return nil, r.connectError
	}
	if err := fn(ctx, r.session); err != nil {
		return nil, err
	}
	if r.returned != nil {
		return r.returned, nil
	}
	return session, nil
}

// mockSession returns canned results and records calls
type mockSession struct {
	codeHash    string
	sendCodeErr error
	signInErr   error
	passwordErr error

	unauthorized bool

	created    *entities.CreatedChannel
	createErr  error
	users      map[string]*entities.RemoteUser
	channel    *entities.RemoteChannel
	promoteErr error
	inviteErr  error
	kickErr    error
	banErr     error
	unbanErr   error

	resolved  []string
	foundIDs  []string
	rank      string
	invited   int
	kicked    int
	banned    int
	unbanned  int
	promoted  int
	signedIn  int
	passwords int
}

func (s *mockSession) SendCode(context.Context, string) (string, error) {
	return s.codeHash, s.sendCodeErr
}

func (s *mockSession) SignIn(context.Context, string, string, string) error {
	s.signedIn++
	return s.signInErr
}

func (s *mockSession) CheckPassword(context.Context, string) error {
	s.passwords++
	return s.passwordErr
}

func (s *mockSession) IsAuthorized(context.Context) (bool, error) {
	return !s.unauthorized, nil
}

func (s *mockSession) CreateChannel(context.Context, string, string) (*entities.CreatedChannel, error) {
	return s.created, s.createErr
}

func (s *mockSession) ResolveUser(_ context.Context, username string) (*entities.RemoteUser, error) {
	s.resolved = append(s.resolved, username)
	if u, ok := s.users[username]; ok {
		return u, nil
	}
	return nil, telegramerrors.ErrRemoteUserNotFound
}

func (s *mockSession) FindChannel(_ context.Context, storedID string) (*entities.RemoteChannel, error) {
	s.foundIDs = append(s.foundIDs, storedID)
	if s.channel == nil {
		return nil, telegramerrors.ErrRemoteChannelNotFound
	}
	return s.channel, nil
}

func (s *mockSession) PromoteBot(_ context.Context, _ *entities.RemoteChannel, _ *entities.RemoteUser, rank string) error {
	s.promoted++
	s.rank = rank
	return s.promoteErr
}

func (s *mockSession) InviteUser(context.Context, *entities.RemoteChannel, *entities.RemoteUser) error {
	s.invited++
	return s.inviteErr
}

func (s *mockSession) KickUser(context.Context, *entities.RemoteChannel, *entities.RemoteUser) error {
	s.kicked++
	return s.kickErr
}

func (s *mockSession) BanUser(context.Context, *entities.RemoteChannel, *entities.RemoteUser) error {
	s.banned++
	return s.banErr
}

func (s *mockSession) UnbanUser(context.Context, *entities.RemoteChannel, *entities.RemoteUser) error {
	s.unbanned++
	return s.unbanErr
}

// mockModerator stands in for the Bot API
type mockModerator struct {
	ok      bool
	err     error
	calls   int
	chatIDs []string
}

func (m *mockModerator) BanChatMember(_ context.Context, chatID string, _ int64) (bool, error) {
	m.calls++
	m.chatIDs = append(m.chatIDs, chatID)
	return m.ok, m.err
}

func (m *mockModerator) UnbanChatMember(_ context.Context, chatID string, _ int64) (bool, error) {
	m.calls++
	m.chatIDs = append(m.chatIDs, chatID)
	return m.ok, m.err
}

// mockPublisher records published events
type mockPublisher struct {
	events []entities.ChannelEvent
	err    error
}

func (p *mockPublisher) Publish(_ context.Context, event entities.ChannelEvent) error {
	p.events = append(p.events, event)
	return p.err
}
