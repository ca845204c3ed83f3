package shipping

// ThresholdQuoter charges a flat fee below a free-shipping threshold.
// Orders at or above the threshold ship free, as does an empty (zero
// total) order.
type ThresholdQuoter struct {
	freeThreshold int64
	fee           int64
}

// NewThresholdQuoter creates a flat-fee quoter with a free-shipping
// threshold.
func NewThresholdQuoter(freeThreshold, fee int64) *ThresholdQuoter {
	return &ThresholdQuoter{
		freeThreshold: freeThreshold,
		fee:           fee,
	}
}

// Quote returns 0 for zero-total orders and for totals at or above the
// threshold, otherwise the flat fee.
func (q *ThresholdQuoter) Quote(orderTotal int64) int64 {
	if orderTotal <= 0 || orderTotal >= q.freeThreshold {
		return 0
	}
	return q.fee
}
