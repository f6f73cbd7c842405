package core

// CategoryAmount represents an amount aggregated by category name.
type CategoryAmount struct {
	Name   string
	Amount Money
}

// Total sums the amounts of all records. An empty collection totals zero.
func Total(records []Expense) Money {
	var total Money
	for _, e := range records {
		total.Cents += e.Amount.Cents
	}
	return total
}

// TopCategory groups records by category and returns the group with the
// greatest summed amount. On a tie the category seen first in the collection
// wins. The boolean is false when records is empty.
func TopCategory(records []Expense) (CategoryAmount, bool) {
	if len(records) == 0 {
		return CategoryAmount{}, false
	}

	sums := make(map[string]int64, len(records))
	order := make([]string, 0, len(records))
	for _, e := range records {
		if _, seen := sums[e.Category]; !seen {
			order = append(order, e.Category)
		}
		sums[e.Category] += e.Amount.Cents
	}

	top := CategoryAmount{Name: order[0], Amount: Money{Cents: sums[order[0]]}}
	for _, name := range order[1:] {
		if sums[name] > top.Amount.Cents {
			top = CategoryAmount{Name: name, Amount: Money{Cents: sums[name]}}
		}
	}
	return top, true
}
