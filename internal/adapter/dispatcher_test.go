package adapter_test

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/arianlotfi/crypto-locker/internal/adapter"
	"github.com/arianlotfi/crypto-locker/internal/crypto"
	"github.com/arianlotfi/crypto-locker/internal/logger"
	"github.com/arianlotfi/crypto-locker/internal/mock"
	"github.com/arianlotfi/crypto-locker/internal/service"
	"github.com/arianlotfi/crypto-locker/internal/session"
)

const operatorID int64 = 1001

type dispatcherFixture struct {
	api        *mock.MockBotAPI
	users      *mock.MockUserRepository
	creds      *mock.MockCredentialRepository
	responder  *mock.MockResponder
	controller *service.Controller
	dispatch   *adapter.Dispatcher
}

func newDispatcherFixture(t *testing.T, ctrl *gomock.Controller) *dispatcherFixture {
	t.Helper()

	key, err := crypto.DeriveKey("dispatcher-test", []byte("0123456789abcdef"), 1000)
	require.NoError(t, err)
	cipher, err := crypto.NewCipher(key)
	require.NoError(t, err)

	f := &dispatcherFixture{
		api:       mock.NewMockBotAPI(ctrl),
		users:     mock.NewMockUserRepository(ctrl),
		creds:     mock.NewMockCredentialRepository(ctrl),
		responder: mock.NewMockResponder(ctrl),
	}

	f.controller = service.NewController(
		f.users, f.creds, cipher,
		session.NewTable(session.DefaultTTL),
		f.responder, operatorID, logger.Nop(),
	)
	f.dispatch = adapter.NewDispatcher(f.api, f.controller, time.Second, logger.Nop())
	return f
}

// blockUntilCancelled arms the next GetUpdates call to park until the test
// context is cancelled, mimicking an idle long poll.
func (f *dispatcherFixture) blockUntilCancelled() {
	f.api.EXPECT().
		GetUpdates(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ int64, _ time.Duration) ([]adapter.Update, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		}).
		AnyTimes()
}

func TestDispatcher_RoutesStartCommand(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newDispatcherFixture(t, ctrl)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	update := adapter.Update{
		UpdateID: 10,
		Message: &adapter.ChatMessage{
			MessageID: 1,
			From:      &adapter.User{ID: operatorID},
			Chat:      adapter.Chat{ID: operatorID},
			Text:      "/start",
		},
	}

	handled := make(chan struct{})
	f.users.EXPECT().EnsureUser(gomock.Any(), operatorID).Return(nil)
	f.users.EXPECT().GetLang(gomock.Any(), operatorID).Return("en", nil)
	f.responder.EXPECT().
		SendMessage(gomock.Any(), operatorID, gomock.Any()).
		DoAndReturn(func(context.Context, int64, service.Message) error {
			close(handled)
			return nil
		})

	f.api.EXPECT().
		GetUpdates(gomock.Any(), int64(0), gomock.Any()).
		Return([]adapter.Update{update}, nil)
	f.blockUntilCancelled()

	done := make(chan error, 1)
	go func() { done <- f.dispatch.Run(ctx) }()

	select {
	case <-handled:
	case <-time.After(2 * time.Second):
		t.Fatal("update was not handled in time")
	}

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestDispatcher_AdvancesOffset(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newDispatcherFixture(t, ctrl)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// an unsupported update kind is skipped, but its id still advances the
	// offset so it is never fetched again
	first := f.api.EXPECT().
		GetUpdates(gomock.Any(), int64(0), gomock.Any()).
		Return([]adapter.Update{{UpdateID: 41}}, nil)

	polled := make(chan struct{})
	f.api.EXPECT().
		GetUpdates(gomock.Any(), int64(42), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ int64, _ time.Duration) ([]adapter.Update, error) {
			close(polled)
			<-ctx.Done()
			return nil, ctx.Err()
		}).
		After(first)

	done := make(chan error, 1)
	go func() { done <- f.dispatch.Run(ctx) }()

	select {
	case <-polled:
	case <-time.After(2 * time.Second):
		t.Fatal("dispatcher did not poll with advanced offset")
	}

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

// syncBuffer collects log output from the handler goroutine.
type syncBuffer struct {
	mu sync.Mutex
	b  bytes.Buffer
}

func (s *syncBuffer) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.Write(p)
}

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.String()
}

func TestDispatcher_LogsSenderID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newDispatcherFixture(t, ctrl)
	var buf syncBuffer
	f.dispatch = adapter.NewDispatcher(
		f.api, f.controller, time.Second,
		&logger.Logger{Logger: zerolog.New(&buf)},
	)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	update := adapter.Update{
		UpdateID: 60,
		Message: &adapter.ChatMessage{
			MessageID: 2,
			From:      &adapter.User{ID: operatorID},
			Chat:      adapter.Chat{ID: operatorID},
			Text:      "/menu",
		},
	}

	f.users.EXPECT().EnsureUser(gomock.Any(), operatorID).Return(nil)
	f.users.EXPECT().GetLang(gomock.Any(), operatorID).Return("en", nil)
	f.responder.EXPECT().
		SendMessage(gomock.Any(), operatorID, gomock.Any()).
		Return(nil)

	f.api.EXPECT().
		GetUpdates(gomock.Any(), int64(0), gomock.Any()).
		Return([]adapter.Update{update}, nil)
	f.blockUntilCancelled()

	done := make(chan error, 1)
	go func() { done <- f.dispatch.Run(ctx) }()

	assert.Eventually(t, func() bool {
		line := buf.String()
		return strings.Contains(line, `"user_id":1001`) &&
			strings.Contains(line, `"update_id":60`) &&
			strings.Contains(line, `"trace_id"`)
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestDispatcher_AnswersCallbackQueries(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newDispatcherFixture(t, ctrl)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	update := adapter.Update{
		UpdateID: 50,
		CallbackQuery: &adapter.CallbackQuery{
			ID:      "cb123",
			From:    adapter.User{ID: operatorID},
			Message: &adapter.ChatMessage{MessageID: 9, Chat: adapter.Chat{ID: operatorID}},
			Data:    "cancel",
		},
	}

	handled := make(chan struct{})
	f.users.EXPECT().GetLang(gomock.Any(), operatorID).Return("en", nil)
	f.api.EXPECT().AnswerCallbackQuery(gomock.Any(), "cb123").Return(nil)
	f.responder.EXPECT().
		EditMessage(gomock.Any(), operatorID, int64(9), gomock.Any()).
		DoAndReturn(func(context.Context, int64, int64, service.Message) error {
			close(handled)
			return nil
		})

	f.api.EXPECT().
		GetUpdates(gomock.Any(), int64(0), gomock.Any()).
		Return([]adapter.Update{update}, nil)
	f.blockUntilCancelled()

	done := make(chan error, 1)
	go func() { done <- f.dispatch.Run(ctx) }()

	select {
	case <-handled:
	case <-time.After(2 * time.Second):
		t.Fatal("callback was not handled in time")
	}

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}
