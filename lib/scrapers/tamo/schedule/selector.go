package schedule

import (
	"github.com/PuerkitoBio/goquery"
)

// DaySelector finds the per-day blocks inside the schedule container, in
// document order. The portal markup has changed over time, so both the
// class based and the table structure based heuristics are kept.
type DaySelector func(container *goquery.Selection) *goquery.Selection

const DefaultDayClass = "table.c_main_table.full_width.padless.borderless.wrap_text"

func ByClass(css string) DaySelector {
	return func(container *goquery.Selection) *goquery.Selection {
		return container.Find(css)
	}
}

// ByStructure treats every table that is not nested in another table of
// the container as a day.
func ByStructure() DaySelector {
	return func(container *goquery.Selection) *goquery.Selection {
		return container.Find("table").FilterFunction(func(_ int, table *goquery.Selection) bool {
			return table.ParentsUntilSelection(container).Filter("table").Length() == 0
		})
	}
}

// ParseDaySelector reads the day_selector config value: "" or "class"
// for the default class selector, "structure" for ByStructure and any
// other value as a css selector.
func ParseDaySelector(value string) DaySelector {
	switch value {
	case "", "class":
		return ByClass(DefaultDayClass)
	case "structure":
		return ByStructure()
	default:
		return ByClass(value)
	}
}
