package membership

import (
	"context"

	"github.com/dmitrymomot/premiumhub/pkg/razorpay"
)

type paymentLinkCreator interface {
	CreatePaymentLink(ctx context.Context, req razorpay.PaymentLinkRequest) (*razorpay.PaymentLink, error)
}

// RazorpayGateway adapts the razorpay client to PaymentGateway.
type RazorpayGateway struct {
	client paymentLinkCreator
}

// NewRazorpayGateway wraps client, usually a *razorpay.Client.
func NewRazorpayGateway(client paymentLinkCreator) *RazorpayGateway {
	return &RazorpayGateway{client: client}
}

func (g *RazorpayGateway) CreatePaymentLink(ctx context.Context, req PaymentLinkRequest) (*PaymentLink, error) {
	link, err := g.client.CreatePaymentLink(ctx, razorpay.PaymentLinkRequest{
		Amount:      req.AmountMinor,
		Currency:    req.Currency,
		Description: req.Description,
		ReferenceID: req.ReferenceID,
		Notes:       req.Notes,
	})
	if err != nil {
		return nil, err
	}
	return &PaymentLink{ID: link.ID, ShortURL: link.ShortURL, Raw: link.Raw}, nil
}
