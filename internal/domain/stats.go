package domain

// Stats is the backend's read-only order aggregate. It is never stored on
// this side; the admin dashboard fetches a fresh snapshot on each load.
type Stats struct {
	TotalOrders     int            `json:"totalOrders"`
	PendingOrders   int            `json:"pendingOrders"`
	FulfilledOrders int            `json:"fulfilledOrders"`
	PlanBreakdown   map[string]int `json:"planBreakdown"`
}

// Consistent reports whether the snapshot satisfies the stats identities:
// pending plus fulfilled equals total, and the per-plan counts sum to total.
func (s Stats) Consistent() bool {
	if s.PendingOrders+s.FulfilledOrders != s.TotalOrders {
		return false
	}
	sum := 0
	for _, n := range s.PlanBreakdown {
		sum += n
	}
	return sum == s.TotalOrders
}
