// Package viewmodel turns domain state into plain display structs. Nothing
// here renders; components style what these types describe.
package viewmodel

import "fmt"

// Tab identifies one of the console's top-level views.
type Tab int

const (
	// TabDashboard shows the portfolio aggregates.
	TabDashboard Tab = iota
	// TabSubmit files new applications.
	TabSubmit
	// TabReview overrides a decision on one application.
	TabReview
)

// Tabs lists the tabs in display order.
var Tabs = []Tab{TabDashboard, TabSubmit, TabReview}

// String returns the tab's title.
func (t Tab) String() string {
	switch t {
	case TabDashboard:
		return "Dashboard"
	case TabSubmit:
		return "Submit"
	case TabReview:
		return "Review"
	default:
		return fmt.Sprintf("Unknown(%d)", int(t))
	}
}

// Next returns the tab after t, wrapping around.
func (t Tab) Next() Tab {
	return Tab((int(t) + 1) % len(Tabs))
}

// Prev returns the tab before t, wrapping around.
func (t Tab) Prev() Tab {
	return Tab((int(t) + len(Tabs) - 1) % len(Tabs))
}

// Stat is one labelled value.
type Stat struct {
	Label string
	Value string
}

// Section is a titled block that either lists rows or shows a message.
type Section struct {
	Title   string
	Message string
	Failed  bool
}

// IsEmpty reports whether the section shows a message instead of data.
func (s Section) IsEmpty() bool {
	return s.Message != ""
}
