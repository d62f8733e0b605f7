package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/m04kA/SMC-BotCore/internal/domain"
	"github.com/m04kA/SMC-BotCore/internal/infra/storage/cursor"
	"github.com/m04kA/SMC-BotCore/internal/integrations/botapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fetchResult struct {
	updates []domain.Update
	err     error
}

// fakeClient отдаёт заранее заданные ответы, после них блокируется до отмены контекста
type fakeClient struct {
	mu          sync.Mutex
	results     []fetchResult
	requests    []botapi.UpdatesRequest
	readTimeout time.Duration
}

func (f *fakeClient) GetUpdates(ctx context.Context, req botapi.UpdatesRequest) ([]domain.Update, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	if len(f.results) > 0 {
		res := f.results[0]
		f.results = f.results[1:]
		f.mu.Unlock()
		return res.updates, res.err
	}
	f.mu.Unlock()

	<-ctx.Done()
	return nil, ctx.Err()
}

func (f *fakeClient) EnsureReadTimeout(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.readTimeout = d
}

func (f *fakeClient) request(i int) botapi.UpdatesRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests[i]
}

func (f *fakeClient) requestCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

type handlerFunc func(ctx context.Context, update domain.Update) error

func (h handlerFunc) HandleUpdate(ctx context.Context, update domain.Update) error {
	return h(ctx, update)
}

type failingStore struct{}

func (failingStore) Load(context.Context) (int, bool, error) {
	return 0, false, errors.New("connection refused")
}

func (failingStore) Save(context.Context, int, string) error {
	return errors.New("connection refused")
}

func updates(ids ...int) []domain.Update {
	result := make([]domain.Update, 0, len(ids))
	for _, id := range ids {
		result = append(result, domain.Update{Update: tgbotapi.Update{UpdateID: id}})
	}
	return result
}

func noopHandler() UpdateHandler {
	return handlerFunc(func(context.Context, domain.Update) error { return nil })
}

func TestPoller_InitDiscardsBacklog(t *testing.T) {
	client := &fakeClient{results: []fetchResult{{updates: updates(41)}}}
	poller := NewPoller(client, noopHandler(), nil, nil, PollerConfig{
		Timeout:        30 * time.Second,
		AllowedUpdates: []string{"message"},
	})

	require.NoError(t, poller.Init(context.Background()))

	assert.Equal(t, 42, poller.Cursor())
	assert.Equal(t, botapi.UpdatesRequest{
		Offset:         -1,
		Limit:          1,
		Timeout:        0,
		AllowedUpdates: []string{"message"},
	}, client.request(0))
	assert.Equal(t, 35*time.Second, client.readTimeout)
}

func TestPoller_InitWithoutBacklog(t *testing.T) {
	client := &fakeClient{results: []fetchResult{{}}}
	poller := NewPoller(client, noopHandler(), nil, nil, PollerConfig{})

	require.NoError(t, poller.Init(context.Background()))

	assert.Equal(t, 0, poller.Cursor())
}

func TestPoller_InitFetchError(t *testing.T) {
	client := &fakeClient{results: []fetchResult{{err: errors.New("network down")}}}
	poller := NewPoller(client, noopHandler(), nil, nil, PollerConfig{})

	err := poller.Init(context.Background())

	assert.ErrorIs(t, err, ErrFetch)
}

func TestPoller_PollOnceUsesConfig(t *testing.T) {
	client := &fakeClient{results: []fetchResult{{updates: updates(10)}, {}}}
	poller := NewPoller(client, noopHandler(), nil, nil, PollerConfig{Limit: 50, Timeout: 20 * time.Second})

	require.NoError(t, poller.Init(context.Background()))
	require.NoError(t, poller.PollOnce(context.Background()))

	req := client.request(1)
	assert.Equal(t, 11, req.Offset)
	assert.Equal(t, 50, req.Limit)
	assert.Equal(t, 20*time.Second, req.Timeout)
}

func TestPoller_DispatchFailureAbortsBatch(t *testing.T) {
	client := &fakeClient{results: []fetchResult{
		{updates: updates(41)},
		{updates: updates(42, 43, 44)},
		{updates: updates(44)},
	}}

	var handled []int
	handler := handlerFunc(func(_ context.Context, update domain.Update) error {
		handled = append(handled, update.UpdateID)
		if update.UpdateID == 43 && len(handled) == 2 {
			return errors.New("listener failed")
		}
		return nil
	})

	poller := NewPoller(client, handler, nil, nil, PollerConfig{})
	require.NoError(t, poller.Init(context.Background()))

	err := poller.PollOnce(context.Background())

	require.ErrorIs(t, err, ErrDispatch)
	assert.Equal(t, []int{42, 43}, handled)
	assert.Equal(t, 44, poller.Cursor())

	require.NoError(t, poller.PollOnce(context.Background()))
	assert.Equal(t, 44, client.request(2).Offset)
	assert.Equal(t, []int{42, 43, 44}, handled)
	assert.Equal(t, 45, poller.Cursor())
}

func TestPoller_CursorAdvancesBeforeDispatch(t *testing.T) {
	client := &fakeClient{results: []fetchResult{{}, {updates: updates(7, 8)}}}

	var seen []int
	var poller *Poller
	handler := handlerFunc(func(_ context.Context, update domain.Update) error {
		seen = append(seen, poller.Cursor())
		return nil
	})
	poller = NewPoller(client, handler, nil, nil, PollerConfig{})

	require.NoError(t, poller.Init(context.Background()))
	require.NoError(t, poller.PollOnce(context.Background()))

	assert.Equal(t, []int{8, 9}, seen)
}

func TestPoller_ResumeFromStore(t *testing.T) {
	store := cursor.NewMemoryStore()
	require.NoError(t, store.Save(context.Background(), 100, "previous"))

	client := &fakeClient{}
	poller := NewPoller(client, noopHandler(), store, nil, PollerConfig{StartupMode: StartupResume})

	require.NoError(t, poller.Init(context.Background()))

	assert.Equal(t, 100, poller.Cursor())
	assert.Equal(t, 0, client.requestCount())
}

func TestPoller_ResumeWithoutStoredCursorDiscards(t *testing.T) {
	client := &fakeClient{results: []fetchResult{{updates: updates(5)}}}
	poller := NewPoller(client, noopHandler(), cursor.NewMemoryStore(), nil, PollerConfig{StartupMode: StartupResume})

	require.NoError(t, poller.Init(context.Background()))

	assert.Equal(t, 6, poller.Cursor())
	assert.Equal(t, -1, client.request(0).Offset)
}

func TestPoller_RunReturnsInitErrorOnStoreFailure(t *testing.T) {
	poller := NewPoller(&fakeClient{}, noopHandler(), failingStore{}, nil, PollerConfig{StartupMode: StartupResume})

	err := poller.Run(context.Background())

	assert.ErrorIs(t, err, ErrInit)
}

func TestPoller_RunRetriesFetchErrors(t *testing.T) {
	client := &fakeClient{results: []fetchResult{
		{err: errors.New("init timeout")},
		{updates: updates(1)},
		{err: errors.New("bad gateway")},
		{err: errors.New("bad gateway")},
		{updates: updates(2, 3)},
	}}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var handled []int
	handler := handlerFunc(func(_ context.Context, update domain.Update) error {
		handled = append(handled, update.UpdateID)
		if update.UpdateID == 3 {
			cancel()
		}
		return nil
	})

	poller := NewPoller(client, handler, nil, nil, PollerConfig{RetryBackoff: time.Millisecond})

	done := make(chan error, 1)
	go func() { done <- poller.Run(ctx) }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("poller did not stop after context cancellation")
	}

	assert.Equal(t, []int{2, 3}, handled)
	assert.Equal(t, 4, poller.Cursor())
	assert.Equal(t, 2, client.request(4).Offset)
}

func TestPoller_RunStopsOnCancel(t *testing.T) {
	client := &fakeClient{results: []fetchResult{{}}}
	poller := NewPoller(client, noopHandler(), nil, nil, PollerConfig{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- poller.Run(ctx) }()

	require.Eventually(t, func() bool { return client.requestCount() == 2 }, time.Second, time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("poller did not stop after context cancellation")
	}
}

func TestPoller_Backoff(t *testing.T) {
	poller := NewPoller(&fakeClient{}, noopHandler(), nil, nil, PollerConfig{
		RetryBackoff:    100 * time.Millisecond,
		MaxRetryBackoff: time.Second,
	})

	tests := []struct {
		failures int
		want     time.Duration
	}{
		{failures: 0, want: 0},
		{failures: 1, want: 100 * time.Millisecond},
		{failures: 2, want: 200 * time.Millisecond},
		{failures: 4, want: 800 * time.Millisecond},
		{failures: 5, want: time.Second},
		{failures: 1000, want: time.Second},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, poller.backoff(tt.failures), "failures=%d", tt.failures)
	}

	noBackoff := NewPoller(&fakeClient{}, noopHandler(), nil, nil, PollerConfig{})
	assert.Equal(t, time.Duration(0), noBackoff.backoff(10))
}
