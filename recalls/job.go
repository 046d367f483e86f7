// SPDX-License-Identifier: GPL-3.0-only

package recalls

import (
	"context"
	"recallguard-server/commons"
	"recallguard-server/db"
	"recallguard-server/models"
	"time"
)

// DateRange returns (yesterday, today) formatted YYYYMMDD in loc, the
// inclusive report-date window for one ingestion tick.
func DateRange(now time.Time, loc *time.Location) (string, string) {
	t := now.In(loc)
	return t.AddDate(0, 0, -1).Format("20060102"), t.Format("20060102")
}

// Job runs the recall ingestion pipeline: fetch the feed for the last
// 24 hours, persist what came back, and notify.
type Job struct {
	Fetcher  Fetcher
	Store    Store
	Notifier Notifier
	Location *time.Location
}

func NewJob(fetcher Fetcher, store Store, notifier Notifier, loc *time.Location) *Job {
	if loc == nil {
		loc = time.UTC
	}
	return &Job{
		Fetcher:  fetcher,
		Store:    store,
		Notifier: notifier,
		Location: loc,
	}
}

// NewDefaultJob wires the production collaborators: the openFDA feed
// client, the gorm-backed record store, and the email notifier.
func NewDefaultJob() (*Job, error) {
	client, err := NewFeedClient(FeedConfig{})
	if err != nil {
		return nil, err
	}
	loc, err := time.LoadLocation(commons.GetEnv("RECALL_TIMEZONE", "Africa/Kampala"))
	if err != nil {
		return nil, err
	}
	return NewJob(client, NewGormStore(db.Conn), NewEmailNotifier(db.Conn), loc), nil
}

// RunTick executes one ingestion tick. Upstream failures and empty
// result sets both collapse into the sentinel path: absence of data is
// not fatal to the schedule, and the next tick is the retry.
func (j *Job) RunTick(ctx context.Context, now time.Time) error {
	from, to := DateRange(now, j.Location)
	commons.Logger.Infof("Running recall ingestion tick for report_date:[%s TO %s]", from, to)

	entries, err := j.Fetcher.FetchRange(ctx, from, to)
	if err != nil {
		commons.Logger.Errorf("Recall feed fetch failed: %v", err)
		return j.recordNoRecalls()
	}

	if len(entries) == 0 {
		commons.Logger.Info("Recall feed returned no entries")
		return j.recordNoRecalls()
	}

	for _, entry := range entries {
		record := models.RecallRecord{
			ExternalID:    entry.EventID,
			Title:         entry.ReasonForRecall,
			SourceWebsite: models.SourceFDA,
			Date:          entry.ReportDate,
		}
		if err := j.Store.SaveRecord(&record); err != nil {
			commons.Logger.Errorf("Failed to save recall record %s: %v", entry.EventID, err)
			return err
		}
	}

	if err := j.Notifier.SendDigest(entries); err != nil {
		commons.Logger.Errorf("Failed to send recall digest: %v", err)
	}

	commons.Logger.Infof("Recall ingestion tick completed, %d entries persisted", len(entries))
	return nil
}

func (j *Job) recordNoRecalls() error {
	record := models.RecallRecord{
		ExternalID:    models.SentinelExternalID,
		Title:         models.SentinelTitle,
		SourceWebsite: models.SourceFDA,
		Date:          models.SentinelDate,
	}
	if err := j.Store.SaveRecord(&record); err != nil {
		commons.Logger.Errorf("Failed to save sentinel recall record: %v", err)
		return err
	}
	if err := j.Notifier.SendNoRecalls(); err != nil {
		commons.Logger.Errorf("Failed to send no-recalls notification: %v", err)
	}
	return nil
}
