package aggregate

import "github.com/Veraticus/finyo-console/internal/model"

// Distribution slots, in display order.
const (
	SlotApproved = iota
	SlotRejected
	SlotOffers
)

// DistributionLabels names each slot of DistributionData.Values.
var DistributionLabels = [3]string{"Approved", "Rejected", "Offers"}

// DistributionData is the decision breakdown of a summary.
type DistributionData struct {
	Values [3]int
	Total  int
}

// Distribution counts approved, rejected and offered decisions. Missing
// counts arrive as zero.
func Distribution(summary model.Summary) DistributionData {
	d := DistributionData{
		Values: [3]int{summary.Approved, summary.Rejected, summary.Offers},
	}
	d.Total = d.Values[SlotApproved] + d.Values[SlotRejected] + d.Values[SlotOffers]
	return d
}

// HasDecisions reports whether any decision has been made. A zero total
// means "no decisions yet" and is rendered as an empty state.
func (d DistributionData) HasDecisions() bool {
	return d.Total > 0
}

// Shares returns each slot's fraction of the total; all zero when there are
// no decisions.
func (d DistributionData) Shares() [3]float64 {
	var shares [3]float64
	if !d.HasDecisions() {
		return shares
	}
	for i, v := range d.Values {
		shares[i] = float64(v) / float64(d.Total)
	}
	return shares
}
