// Package aggregate implements the bucketing arithmetic shared by the
// budget, analytics and insight endpoints: group a slice of items by
// a key, sum a value per bucket, optionally pre-seed buckets with zero
// so that gaps appear as zero instead of being omitted.
package aggregate

import (
	"github.com/pennyflow/backend/internal/types"
	"github.com/shopspring/decimal"
)

// Sums groups items by the key selector and adds up the value selector
// per bucket. Only buckets with at least one item appear in the result.
func Sums[T any, K comparable](items []T, key func(T) K, value func(T) decimal.Decimal) map[K]decimal.Decimal {
	sums := make(map[K]decimal.Decimal)

	for _, item := range items {
		k := key(item)
		sums[k] = sums[k].Add(value(item))
	}

	return sums
}

// ZeroFill ensures that every key from keys is present in sums,
// inserting decimal.Zero for missing buckets. The map is modified in
// place and returned for convenience.
func ZeroFill[K comparable](sums map[K]decimal.Decimal, keys []K) map[K]decimal.Decimal {
	if sums == nil {
		sums = make(map[K]decimal.Decimal, len(keys))
	}

	for _, k := range keys {
		if _, ok := sums[k]; !ok {
			sums[k] = decimal.Zero
		}
	}

	return sums
}

// Months returns every month from first to last, inclusive.
// An empty slice is returned when last is before first.
func Months(first, last types.Month) []types.Month {
	var months []types.Month

	for m := first; !m.After(last); m = m.AddDate(0, 1) {
		months = append(months, m)
	}

	return months
}

// Total adds up all bucket sums.
func Total[K comparable](sums map[K]decimal.Decimal) decimal.Decimal {
	total := decimal.Zero

	for _, v := range sums {
		total = total.Add(v)
	}

	return total
}
