// SPDX-License-Identifier: GPL-3.0-only

package recalls

import (
	"context"

	"recallguard-server/models"
)

// Entry is one recall as published by the upstream enforcement feed.
type Entry struct {
	EventID         string `json:"event_id"`
	ReasonForRecall string `json:"reason_for_recall"`
	ReportDate      string `json:"report_date"`
}

type feedResponse struct {
	Results []Entry `json:"results"`
}

// Fetcher retrieves recall entries for an inclusive report-date range
// (YYYYMMDD strings).
type Fetcher interface {
	FetchRange(ctx context.Context, from, to string) ([]Entry, error)
}

// Store persists recall records idempotently.
type Store interface {
	SaveRecord(record *models.RecallRecord) error
}

// Notifier sends the outcome of one ingestion tick.
type Notifier interface {
	SendDigest(entries []Entry) error
	SendNoRecalls() error
}
