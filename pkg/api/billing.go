package api

import "context"

// Billing periods accepted by Checkout.
const (
	BillingMonthly = "monthly"
	BillingYearly  = "yearly"
)

// ListPlans fetches the purchasable subscription tiers.
func (c *Client) ListPlans(ctx context.Context) ([]BillingPlan, error) {
	var plans []BillingPlan
	if err := c.get(ctx, "/billing/plans", nil, &plans); err != nil {
		return nil, err
	}
	return plans, nil
}

// GetSubscription fetches the user's current subscription.
func (c *Client) GetSubscription(ctx context.Context) (*Subscription, error) {
	var sub Subscription
	if err := c.get(ctx, "/billing/subscription", nil, &sub); err != nil {
		return nil, err
	}
	return &sub, nil
}

// Checkout starts a hosted checkout for a plan price.
func (c *Client) Checkout(ctx context.Context, priceID, billingPeriod string) (*CheckoutSession, error) {
	body := map[string]string{
		"price_id":       priceID,
		"billing_period": billingPeriod,
	}

	var sess CheckoutSession
	if err := c.post(ctx, "/billing/checkout", body, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

// BillingPortal opens a hosted billing portal session.
func (c *Client) BillingPortal(ctx context.Context) (*PortalSession, error) {
	var sess PortalSession
	if err := c.post(ctx, "/billing/portal", nil, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}
