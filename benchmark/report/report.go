/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package report renders the end-of-run summary as a markdown table.
package report

import (
	"cmp"
	"fmt"
	"io"
	"slices"
	"strconv"
	"time"

	"chainguard.dev/noveltybench/benchmark/processor"
	"chainguard.dev/noveltybench/benchmark/scheduler"
)

// Write renders one row per item, ordered by item ID, followed by a total
// row. Results arrive in completion order, so sorting keeps the table
// stable across concurrent runs.
func Write(w io.Writer, s scheduler.Summary) error {
	results := slices.Clone(s.Results)
	slices.SortFunc(results, func(a, b processor.Result) int {
		return cmp.Compare(a.Item.ID, b.Item.ID)
	})

	table := createStandardTable([]string{"Item", "Kind", "Accepted", "Novelty", "Stop Reason", "Time"}, w)
	for _, r := range results {
		if err := table.Append([]string{
			r.Item.ID,
			string(r.Item.Kind),
			strconv.Itoa(r.Accepted),
			formatNovelty(r.Total),
			reasonLabel(r.Reason),
			r.Duration.Round(time.Millisecond).String(),
		}); err != nil {
			return fmt.Errorf("appending row for %s: %w", r.Item.ID, err)
		}
	}
	if err := table.Append([]string{
		"TOTAL",
		"",
		strconv.Itoa(s.Accepted()),
		formatNovelty(s.Total),
		"",
		s.Duration.Round(time.Millisecond).String(),
	}); err != nil {
		return fmt.Errorf("appending total row: %w", err)
	}
	return table.Render()
}

func formatNovelty(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}

func reasonLabel(r processor.StopReason) string {
	if r == processor.ReasonNone {
		return "-"
	}
	return string(r)
}
