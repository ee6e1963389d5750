package membership_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/premiumhub/pkg/razorpay"
	"github.com/dmitrymomot/premiumhub/svc/membership"
)

func TestRazorpayGateway(t *testing.T) {
	t.Parallel()

	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"id":"plink_9","short_url":"https://rzp.io/i/9"}`))
	}))
	t.Cleanup(srv.Close)

	client, err := razorpay.NewClient(razorpay.Config{KeyID: "k", KeySecret: "s", BaseURL: srv.URL})
	require.NoError(t, err)

	link, err := membership.NewRazorpayGateway(client).CreatePaymentLink(context.Background(), membership.PaymentLinkRequest{
		MemberID:    "9",
		AmountMinor: 5000,
		Currency:    "INR",
		ReferenceID: "tg91700000000",
		Notes:       map[string]string{"telegram_id": "9"},
	})
	require.NoError(t, err)
	assert.Equal(t, "plink_9", link.ID)
	assert.Equal(t, "https://rzp.io/i/9", link.ShortURL)
	assert.NotEmpty(t, link.Raw)

	assert.EqualValues(t, 5000, got["amount"])
	assert.Equal(t, "tg91700000000", got["reference_id"])
	assert.Equal(t, map[string]any{"telegram_id": "9"}, got["notes"])
}
