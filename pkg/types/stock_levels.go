package types

// StockLevels maps a size label to the count on hand. Stored as jsonb.
type StockLevels map[string]int

// Qty returns the count for the given size, zero when the size is absent.
func (s StockLevels) Qty(size string) int {
	if s == nil {
		return 0
	}
	return s[size]
}

// Total sums the counts across all sizes.
func (s StockLevels) Total() int {
	total := 0
	for _, qty := range s {
		total += qty
	}
	return total
}

// Clone returns an independent copy.
func (s StockLevels) Clone() StockLevels {
	if s == nil {
		return nil
	}
	out := make(StockLevels, len(s))
	for size, qty := range s {
		out[size] = qty
	}
	return out
}

// Decrement subtracts qty for the size, flooring at zero, and reports the
// shortfall (how much of the request could not be covered).
func (s StockLevels) Decrement(size string, qty int) int {
	if qty <= 0 {
		return 0
	}
	if s == nil {
		return qty
	}
	have := s[size]
	if have >= qty {
		s[size] = have - qty
		return 0
	}
	s[size] = 0
	return qty - have
}
