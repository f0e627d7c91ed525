// File-backed persistence sink: append-only CSV files for accepted jobs and
// outreach records. The sink owns the schemas; nothing else in the pipeline
// reads these files back.

package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"go.uber.org/zap"

	"go-jobscout-automation/internal/models"
)

var jobsHeader = []string{
	"Posting ID", "Title", "Company", "Location", "Job URL", "Seniority",
	"Remote", "Posted", "Applicants", "Fit Score", "Accepted At",
}

var outreachHeader = []string{
	"Date", "Name", "Title", "Profile URL", "Role Searched", "Role Matched",
	"Action", "Page",
}

// Store appends accepted jobs and outreach records to CSV files under one
// data directory. Appends are best-effort retried: an accepted match is the
// most expensive thing to lose, so a transient write failure is retried
// before surfacing.
type Store struct {
	jobsPath     string
	outreachPath string
	seenIDs      mapset.Set[string]
	log          *zap.SugaredLogger
}

func NewStore(dataDir string, log *zap.SugaredLogger) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("could not create data dir: %w", err)
	}

	s := &Store{
		jobsPath:     filepath.Join(dataDir, "jobs.csv"),
		outreachPath: filepath.Join(dataDir, "outreach.csv"),
		seenIDs:      mapset.NewSet[string](),
		log:          log,
	}
	if err := s.ensureHeader(s.jobsPath, jobsHeader); err != nil {
		return nil, err
	}
	if err := s.ensureHeader(s.outreachPath, outreachHeader); err != nil {
		return nil, err
	}
	s.loadSeenIDs()
	return s, nil
}

func (s *Store) ensureHeader(path string, header []string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("could not write header to %s: %w", path, err)
	}
	w.Flush()
	return w.Error()
}

// loadSeenIDs reads existing posting ids so duplicate appends can be logged.
func (s *Store) loadSeenIDs() {
	f, err := os.Open(s.jobsPath)
	if err != nil {
		return
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		s.log.Warnw("could not read existing jobs file", "error", err)
		return
	}
	for i, row := range rows {
		if i == 0 || len(row) == 0 {
			continue
		}
		s.seenIDs.Add(row[0])
	}
}

// AppendAcceptedJob records one accepted job. A duplicate posting id is
// logged and still appended.
func (s *Store) AppendAcceptedJob(job models.AcceptedJob) error {
	if !s.seenIDs.Add(job.Posting.PostingID) {
		s.log.Warnw("duplicate posting id appended",
			"posting_id", job.Posting.PostingID, "company", job.Posting.Company)
	}

	row := []string{
		job.Posting.PostingID,
		job.Posting.Title,
		job.Posting.Company,
		job.Posting.Location,
		job.Posting.CanonicalURL,
		job.Posting.Seniority,
		strconv.FormatBool(job.Posting.Remote),
		job.Posting.PostedTime,
		strconv.Itoa(job.Posting.ApplicantCount),
		fmt.Sprintf("%.1f", job.FitScore),
		job.AcceptedAt.Format(time.RFC3339),
	}
	return s.appendRows(s.jobsPath, [][]string{row})
}

// AppendOutreachRecords records the outreach performed for one posting.
func (s *Store) AppendOutreachRecords(records []models.OutreachRecord, role string) error {
	if len(records) == 0 {
		return nil
	}

	now := time.Now().Format(time.RFC3339)
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			now,
			r.PersonName,
			r.PersonTitle,
			r.ProfileURL,
			role,
			strconv.FormatBool(r.RoleMatched),
			string(r.Action),
			strconv.Itoa(r.PageNumber),
		})
	}
	return s.appendRows(s.outreachPath, rows)
}

func (s *Store) appendRows(path string, rows [][]string) error {
	var err error
	for attempt := 0; attempt < 3; attempt++ {
		if attempt > 0 {
			time.Sleep(500 * time.Millisecond)
			s.log.Warnw("retrying append after write failure",
				"path", path, "attempt", attempt, "error", err)
		}
		if err = s.writeRows(path, rows); err == nil {
			return nil
		}
	}
	return fmt.Errorf("could not append to %s: %w", path, err)
}

func (s *Store) writeRows(path string, rows [][]string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
