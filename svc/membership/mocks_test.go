package membership_test

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/dmitrymomot/premiumhub/svc/membership"
)

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) SendMessage(ctx context.Context, chatID, text string) error {
	args := m.Called(ctx, chatID, text)
	return args.Error(0)
}

type mockGateway struct {
	mock.Mock
}

func (m *mockGateway) CreatePaymentLink(ctx context.Context, req membership.PaymentLinkRequest) (*membership.PaymentLink, error) {
	args := m.Called(ctx, req)
	link, _ := args.Get(0).(*membership.PaymentLink)
	return link, args.Error(1)
}

type mockStore struct {
	mock.Mock
}

func (m *mockStore) Get(ctx context.Context, memberID string) (*membership.Record, error) {
	args := m.Called(ctx, memberID)
	rec, _ := args.Get(0).(*membership.Record)
	return rec, args.Error(1)
}

func (m *mockStore) Upsert(ctx context.Context, rec *membership.Record) error {
	return m.Called(ctx, rec).Error(0)
}

func (m *mockStore) All(ctx context.Context, fn func(membership.Record) error) error {
	args := m.Called(ctx, fn)
	if recs, ok := args.Get(0).([]membership.Record); ok {
		for _, r := range recs {
			if err := fn(r); err != nil {
				return err
			}
		}
	}
	return args.Error(1)
}

// sentMessage is one captured outbound message.
type sentMessage struct {
	ChatID string
	Text   string
}

// recordingNotifier captures messages; failFor makes sends to a chat fail.
type recordingNotifier struct {
	mu      sync.Mutex
	sent    []sentMessage
	failFor map[string]error
}

func (n *recordingNotifier) SendMessage(_ context.Context, chatID, text string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if err, ok := n.failFor[chatID]; ok {
		return err
	}
	n.sent = append(n.sent, sentMessage{ChatID: chatID, Text: text})
	return nil
}

func (n *recordingNotifier) To(chatID string) []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []string
	for _, m := range n.sent {
		if m.ChatID == chatID {
			out = append(out, m.Text)
		}
	}
	return out
}

func (n *recordingNotifier) Count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.sent)
}

// stubGateway returns a link per member and counts calls.
type stubGateway struct {
	mu       sync.Mutex
	requests []membership.PaymentLinkRequest
	failFor  map[string]error
	noURL    bool
}

func (g *stubGateway) CreatePaymentLink(_ context.Context, req membership.PaymentLinkRequest) (*membership.PaymentLink, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err, ok := g.failFor[req.MemberID]; ok {
		return nil, err
	}
	g.requests = append(g.requests, req)
	link := &membership.PaymentLink{ID: "plink_" + req.MemberID}
	if !g.noURL {
		link.ShortURL = "https://rzp.io/i/" + req.MemberID
	}
	return link, nil
}

func (g *stubGateway) Calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.requests)
}

// clock is a settable time source.
type clock struct {
	mu  sync.Mutex
	now time.Time
}

func newClock(t time.Time) *clock { return &clock{now: t} }

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Set(t time.Time) {
	c.mu.Lock()
	c.now = t
	c.mu.Unlock()
}

func at(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func date(s string) membership.Date {
	d, err := membership.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func testConfig() membership.Config {
	cfg := membership.DefaultConfig()
	cfg.GroupLink = "https://t.me/+group"
	cfg.AdminChatID = "admin"
	cfg.WebhookSecret = "whsec"
	return cfg
}
