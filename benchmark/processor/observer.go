/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package processor

import (
	"chainguard.dev/noveltybench/benchmark/catalog"
)

// Observer receives the progress of every item. Implementations must be
// safe for concurrent use because items run in parallel.
type Observer interface {
	// Started is called once before the first generation for an item.
	Started(item catalog.Item)
	// Accepted is called for every answer that passes both gates.
	Accepted(item catalog.Item, answer string, score int, novelty float64)
	// Rejected is called when an answer fails the quality or novelty gate.
	Rejected(item catalog.Item, answer string, reason StopReason)
	// Failed is called when an item stops on an error.
	Failed(item catalog.Item, reason StopReason, err error)
	// Finished is called once with the item's final result.
	Finished(result Result)
}

// Observers fans every event out to each observer in order.
type Observers []Observer

var _ Observer = Observers(nil)

// Started implements Observer
func (o Observers) Started(item catalog.Item) {
	for _, obs := range o {
		obs.Started(item)
	}
}

// Accepted implements Observer
func (o Observers) Accepted(item catalog.Item, answer string, score int, novelty float64) {
	for _, obs := range o {
		obs.Accepted(item, answer, score, novelty)
	}
}

// Rejected implements Observer
func (o Observers) Rejected(item catalog.Item, answer string, reason StopReason) {
	for _, obs := range o {
		obs.Rejected(item, answer, reason)
	}
}

// Failed implements Observer
func (o Observers) Failed(item catalog.Item, reason StopReason, err error) {
	for _, obs := range o {
		obs.Failed(item, reason, err)
	}
}

// Finished implements Observer
func (o Observers) Finished(result Result) {
	for _, obs := range o {
		obs.Finished(result)
	}
}
