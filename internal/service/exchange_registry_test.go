package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/haierkeys/portfolio-dash/internal/domain"
	"github.com/haierkeys/portfolio-dash/pkg/code"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func link(id, label string) *domain.ExchangeLink {
	return &domain.ExchangeLink{ID: domain.ID(id), ExchangeKind: domain.ExchangeBinance, Label: label, Status: domain.LinkConnected}
}

func filledForm(t *testing.T, label string) *CredentialForm {
	t.Helper()
	f := NewCredentialForm()
	f.Open()
	require.NoError(t, f.Update(FieldExchange, "BINANCE"))
	require.NoError(t, f.Update(FieldLabel, label))
	require.NoError(t, f.Update(FieldAPIKey, "k"))
	require.NoError(t, f.Update(FieldAPISecret, "s"))
	return f
}

func TestConnect_SuccessResyncsAndResetsForm(t *testing.T) {
	api := newFakeExchangeAPI()
	reg := NewExchangeRegistry(api, nil, nil)
	ctx := context.Background()
	reg.FetchAll(ctx)

	form := filledForm(t, "Main")
	created, err := reg.Connect(ctx, form)
	require.NoError(t, err)
	require.NotNil(t, created)

	links := reg.Links()
	require.Len(t, links, 1)
	assert.Equal(t, "Main", links[0].Label)
	assert.Equal(t, domain.ExchangeBinance, links[0].ExchangeKind)
	assert.Equal(t, domain.LinkConnected, links[0].Status)
	assert.True(t, links[0].NeverSynced())

	assert.False(t, form.IsOpen())
	assert.Equal(t, domain.DefaultDraft(), form.Draft())
	assert.Equal(t, []string{"list", "create", "list"}, api.Calls())
}

func TestConnect_NetworkFailureKeepsDraftAndRegistry(t *testing.T) {
	api := newFakeExchangeAPI(link("1", "Old"))
	api.failOn["create"] = errNetwork
	alerts := &recordingAlerter{}
	reg := NewExchangeRegistry(api, alerts, nil)
	ctx := context.Background()
	before := reg.FetchAll(ctx)

	form := filledForm(t, "Main")
	draft := form.Draft()

	_, err := reg.Connect(ctx, form)
	require.Error(t, err)
	assert.True(t, errors.Is(err, code.ErrorExchangeConnectFailed))
	assert.True(t, errors.Is(err, errNetwork))

	assert.True(t, form.IsOpen())
	assert.Equal(t, draft, form.Draft())
	assert.Equal(t, before, reg.Links())
	assert.Equal(t, []string{"Failed to connect exchange"}, alerts.Messages())
	assert.Equal(t, []string{"list", "create"}, api.Calls(), "no resync after a failed mutation")
}

func TestConnect_InvalidDraftIsNotSent(t *testing.T) {
	api := newFakeExchangeAPI()
	reg := NewExchangeRegistry(api, nil, nil)

	cases := map[string]func(f *CredentialForm){
		"missing key":      func(f *CredentialForm) { _ = f.Update(FieldAPIKey, "") },
		"missing secret":   func(f *CredentialForm) { _ = f.Update(FieldAPISecret, "") },
		"unsupported kind": func(f *CredentialForm) { _ = f.Update(FieldExchange, "KRAKEN") },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			form := filledForm(t, "Main")
			mutate(form)
			_, err := reg.Connect(context.Background(), form)
			assert.True(t, errors.Is(err, code.ErrorCredentialInvalid))
			assert.True(t, form.IsOpen())
		})
	}
	assert.Empty(t, api.Calls())
}

func TestConnect_DoubleSubmitIsRejected(t *testing.T) {
	api := newFakeExchangeAPI()
	api.gate = make(chan struct{})
	reg := NewExchangeRegistry(api, nil, nil)
	ctx := context.Background()

	first := filledForm(t, "First")
	second := filledForm(t, "Second")

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := reg.Connect(ctx, first)
		assert.NoError(t, err)
	}()

	// 等待第一个请求占用
	require.Eventually(t, func() bool { return reg.guard.Busy("connect") }, time.Second, time.Millisecond)

	_, err := reg.Connect(ctx, second)
	assert.True(t, errors.Is(err, ErrBusy))
	assert.True(t, second.IsOpen())

	close(api.gate)
	wg.Wait()
	require.Len(t, reg.Links(), 1)
	assert.Equal(t, "First", reg.Links()[0].Label)
}

func TestSync_ChangesOnlyLastSyncedAtOfThatEntry(t *testing.T) {
	api := newFakeExchangeAPI(link("1", "A"), link("2", "B"), link("3", "C"))
	reg := NewExchangeRegistry(api, nil, nil)
	ctx := context.Background()
	before := reg.FetchAll(ctx)

	require.NoError(t, reg.Sync(ctx, "2"))
	after := reg.Links()
	require.Len(t, after, 3)

	assert.True(t, before[0].Equal(after[0]))
	assert.True(t, before[2].Equal(after[2]))

	require.NotNil(t, after[1].LastSyncedAt)
	expected := before[1].Clone()
	expected.LastSyncedAt = after[1].LastSyncedAt
	assert.True(t, expected.Equal(after[1]))
}

func TestSync_UnknownIDIsRejectedLocally(t *testing.T) {
	api := newFakeExchangeAPI(link("1", "A"))
	reg := NewExchangeRegistry(api, nil, nil)
	reg.FetchAll(context.Background())

	err := reg.Sync(context.Background(), "404")
	assert.True(t, errors.Is(err, ErrUnknownLink))
	assert.Equal(t, []string{"list"}, api.Calls())
}

func TestSync_FailureAlertsAndKeepsState(t *testing.T) {
	api := newFakeExchangeAPI(link("1", "A"))
	api.failOn["sync:1"] = errNetwork
	alerts := &recordingAlerter{}
	reg := NewExchangeRegistry(api, alerts, nil)
	ctx := context.Background()
	before := reg.FetchAll(ctx)

	err := reg.Sync(ctx, "1")
	assert.True(t, errors.Is(err, code.ErrorExchangeSyncFailed))
	assert.Equal(t, before, reg.Links())
	assert.Equal(t, []string{"Sync failed"}, alerts.Messages())
}

func TestDisconnect(t *testing.T) {
	ctx := context.Background()

	t.Run("confirmed success removes the entry", func(t *testing.T) {
		api := newFakeExchangeAPI(link("1", "A"), link("2", "B"))
		reg := NewExchangeRegistry(api, nil, nil)
		reg.FetchAll(ctx)

		var prompt string
		err := reg.Disconnect(ctx, "1", ConfirmFunc(func(_ context.Context, p string) bool {
			prompt = p
			return true
		}))
		require.NoError(t, err)
		assert.Equal(t, "Disconnect this exchange?", prompt)
		_, ok := reg.Get("1")
		assert.False(t, ok)
		assert.Len(t, reg.Links(), 1)
	})

	t.Run("declined sends nothing", func(t *testing.T) {
		api := newFakeExchangeAPI(link("1", "A"))
		reg := NewExchangeRegistry(api, nil, nil)
		reg.FetchAll(ctx)

		err := reg.Disconnect(ctx, "1", ConfirmFunc(func(context.Context, string) bool { return false }))
		assert.True(t, errors.Is(err, ErrNotConfirmed))
		assert.Equal(t, []string{"list"}, api.Calls())

		assert.True(t, errors.Is(reg.Disconnect(ctx, "1", nil), ErrNotConfirmed))
	})

	t.Run("failure keeps the entry", func(t *testing.T) {
		api := newFakeExchangeAPI(link("1", "A"))
		api.failOn["delete:1"] = errNetwork
		alerts := &recordingAlerter{}
		reg := NewExchangeRegistry(api, alerts, nil)
		reg.FetchAll(ctx)

		err := reg.Disconnect(ctx, "1", AlwaysConfirm)
		assert.True(t, errors.Is(err, code.ErrorExchangeDisconnectFailed))
		_, ok := reg.Get("1")
		assert.True(t, ok)
		assert.Equal(t, []string{"Failed to disconnect exchange"}, alerts.Messages())
	})
}

func TestFetchAll_DegradesToEmpty(t *testing.T) {
	api := newFakeExchangeAPI(link("1", "A"))
	reg := NewExchangeRegistry(api, nil, nil)
	ctx := context.Background()

	assert.False(t, reg.Loaded())
	require.Len(t, reg.FetchAll(ctx), 1)

	api.listErr = errNetwork
	links := reg.FetchAll(ctx)
	assert.NotNil(t, links)
	assert.Empty(t, links)
	assert.True(t, reg.Loaded())
	assert.ErrorIs(t, reg.LastFetchErr(), errNetwork)

	api.listErr = nil
	assert.Len(t, reg.FetchAll(ctx), 1)
	assert.NoError(t, reg.LastFetchErr())
}

func TestFetchAll_DeduplicatesIDs(t *testing.T) {
	api := newFakeExchangeAPI(link("1", "old"), link("2", "B"), link("1", "new"))
	reg := NewExchangeRegistry(api, nil, nil)

	links := reg.FetchAll(context.Background())
	require.Len(t, links, 2)
	assert.Equal(t, "new", links[0].Label)
}

// scriptedExchangeAPI answers each ListExchanges call from its own channel
type scriptedExchangeAPI struct {
	domain.ExchangeAPI
	mu      sync.Mutex
	replies []chan []*domain.ExchangeLink
	started chan int
}

func (s *scriptedExchangeAPI) ListExchanges(ctx context.Context) ([]*domain.ExchangeLink, error) {
	s.mu.Lock()
	i := len(s.replies)
	ch := make(chan []*domain.ExchangeLink)
	s.replies = append(s.replies, ch)
	s.mu.Unlock()
	s.started <- i
	return <-ch, nil
}

func (s *scriptedExchangeAPI) reply(i int, links ...*domain.ExchangeLink) {
	s.mu.Lock()
	ch := s.replies[i]
	s.mu.Unlock()
	ch <- links
}

func TestFetchAll_StaleResponseIsDropped(t *testing.T) {
	api := &scriptedExchangeAPI{started: make(chan int, 2)}
	reg := NewExchangeRegistry(api, nil, nil)
	ctx := context.Background()

	done := make(chan struct{}, 2)
	go func() { reg.FetchAll(ctx); done <- struct{}{} }()
	first := <-api.started
	go func() { reg.FetchAll(ctx); done <- struct{}{} }()
	second := <-api.started

	api.reply(second, link("2", "new"))
	<-done
	api.reply(first, link("1", "old"))
	<-done

	links := reg.Links()
	require.Len(t, links, 1)
	assert.Equal(t, domain.ID("2"), links[0].ID)
}

func TestClose_DiscardsLateResponses(t *testing.T) {
	api := &scriptedExchangeAPI{started: make(chan int, 1)}
	reg := NewExchangeRegistry(api, nil, nil)

	done := make(chan struct{})
	go func() { reg.FetchAll(context.Background()); close(done) }()
	i := <-api.started

	reg.Close()
	api.reply(i, link("1", "late"))
	<-done

	assert.Empty(t, reg.Links())
	assert.False(t, reg.Loaded())
	_, err := reg.Connect(context.Background(), filledForm(t, "x"))
	assert.True(t, errors.Is(err, ErrClosed))
}

func TestOpen_RemountLoadsAgainAndDropsEarlierFetch(t *testing.T) {
	api := &scriptedExchangeAPI{started: make(chan int, 2)}
	reg := NewExchangeRegistry(api, nil, nil)
	ctx := context.Background()

	done := make(chan struct{}, 2)
	go func() { reg.FetchAll(ctx); done <- struct{}{} }()
	first := <-api.started
	reg.Close()

	reg.Open()
	assert.False(t, reg.Loaded())
	go func() { reg.FetchAll(ctx); done <- struct{}{} }()
	second := <-api.started

	api.reply(second, link("2", "remount"))
	<-done
	api.reply(first, link("1", "previous mount"))
	<-done

	require.True(t, reg.Loaded())
	links := reg.Links()
	require.Len(t, links, 1)
	assert.Equal(t, domain.ID("2"), links[0].ID)
}

func TestOpen_ConnectWorksAfterRemount(t *testing.T) {
	reg := NewExchangeRegistry(newFakeExchangeAPI(), nil, nil)
	ctx := context.Background()
	reg.FetchAll(ctx)
	reg.Close()

	_, err := reg.Connect(ctx, filledForm(t, "a"))
	require.True(t, errors.Is(err, ErrClosed))

	reg.Open()
	_, err = reg.Connect(ctx, filledForm(t, "b"))
	require.NoError(t, err)
	require.Len(t, reg.Links(), 1)
}

func TestRefresh_SharesOneRequest(t *testing.T) {
	api := &scriptedExchangeAPI{started: make(chan int, 4)}
	reg := NewExchangeRegistry(api, nil, nil)
	ctx := context.Background()

	var wg sync.WaitGroup
	results := make([][]*domain.ExchangeLink, 3)
	wg.Add(1)
	go func() { defer wg.Done(); results[0] = reg.Refresh(ctx) }()
	i := <-api.started

	for k := 1; k < 3; k++ {
		wg.Add(1)
		go func(k int) { defer wg.Done(); results[k] = reg.Refresh(ctx) }(k)
	}
	// 让其余调用加入同一个请求
	time.Sleep(50 * time.Millisecond)
	api.reply(i, link("1", "A"))
	wg.Wait()

	api.mu.Lock()
	assert.Len(t, api.replies, 1)
	api.mu.Unlock()
	for _, r := range results {
		assert.Len(t, r, 1)
	}
}
