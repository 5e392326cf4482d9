package model

type CreateSubscriber struct {
	SubscriberID string `json:"subscriber_id"`
	PlanTier     string `json:"plan_tier"`
	Status       string `json:"status"`
}

// SequentialAssignment asks for a cursor-based top-up. A count of 0 requests
// the subscriber's full plan quota.
type SequentialAssignment struct {
	Count int `json:"count"`
}
