package journal_test

import (
	"path/filepath"
	"testing"
	"time"

	"rebelcal/src-server/journal"
)

func TestRecentIsNewestFirst(t *testing.T) {
	j, err := journal.Open(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer j.Close()

	base := time.Date(2025, time.March, 17, 3, 0, 0, 0, time.UTC)
	for i, source := range []string{"academic", "involvement", "athletics"} {
		r := &journal.Run{
			Source:     source,
			StartedAt:  base.Add(time.Duration(i) * time.Minute),
			FinishedAt: base.Add(time.Duration(i)*time.Minute + time.Second),
			Inserted:   i,
		}
		if err := j.Record(r); err != nil {
			t.Fatal(err)
		}
		if r.ID == "" {
			t.Error("Record did not assign an id")
		}
	}

	runs, err := j.Recent(2)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 || runs[0].Source != "athletics" || runs[1].Source != "involvement" {
		t.Errorf("recent = %+v", runs)
	}

	all, err := j.Recent(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Errorf("all = %d runs", len(all))
	}
}

func TestJournalSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")
	j, err := journal.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := j.Record(&journal.Run{Source: "campus", StartedAt: time.Now(), Error: "status 503"}); err != nil {
		t.Fatal(err)
	}
	if err := j.Close(); err != nil {
		t.Fatal(err)
	}

	j, err = journal.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer j.Close()
	runs, err := j.Recent(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 || !runs[0].Failed() || runs[0].Source != "campus" {
		t.Errorf("after reopen = %+v", runs)
	}
}
