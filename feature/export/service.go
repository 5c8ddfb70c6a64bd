package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"guild-ledger/core/storage"
	"guild-ledger/feature/attendance"
	"guild-ledger/feature/dkp"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

const contentTypeCSV = "text/csv"

// Service renders ledger snapshots to CSV and uploads them.
type Service struct {
	client      storage.Client
	bucket      string
	standings   *dkp.Service
	attendances *attendance.Service
	logger      *zap.Logger
}

// NewService creates a new export service.
func NewService(client storage.Client, bucket string, standings *dkp.Service, attendances *attendance.Service, logger *zap.Logger) *Service {
	return &Service{
		client:      client,
		bucket:      bucket,
		standings:   standings,
		attendances: attendances,
		logger:      logger,
	}
}

// EnsureBucket creates the export bucket when it does not exist yet.
func (s *Service) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %s: %w", s.bucket, err)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", s.bucket, err)
	}
	return nil
}

// ExportStandings uploads the guild's current DKP standings and returns
// the object name.
func (s *Service) ExportStandings(ctx context.Context, guildID string) (string, error) {
	standings, err := s.standings.Standings(ctx, guildID)
	if err != nil {
		return "", err
	}

	records := [][]string{{"character", "main", "score"}}
	for _, standing := range standings {
		records = append(records, []string{
			standing.CharacterName,
			strconv.FormatBool(standing.Main),
			strconv.Itoa(standing.Score),
		})
	}

	name := objectName(guildID, "standings")
	if err := s.upload(ctx, name, records); err != nil {
		return "", err
	}
	return name, nil
}

// ExportAttendance uploads the attendance report over the given range
// and returns the object name.
func (s *Service) ExportAttendance(ctx context.Context, guildID string, from, to time.Time) (string, error) {
	rows, err := s.attendances.Report(ctx, guildID, from, to)
	if err != nil {
		return "", err
	}

	records := [][]string{{"character", "count"}}
	for _, row := range rows {
		records = append(records, []string{row.CharacterName, strconv.Itoa(row.Count)})
	}

	name := objectName(guildID, "attendance")
	if err := s.upload(ctx, name, records); err != nil {
		return "", err
	}
	return name, nil
}

func (s *Service) upload(ctx context.Context, name string, records [][]string) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(records); err != nil {
		return fmt.Errorf("failed to render %s: %w", name, err)
	}

	_, err := s.client.PutObject(ctx, s.bucket, name, &buf, int64(buf.Len()), minio.PutObjectOptions{
		ContentType: contentTypeCSV,
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", name, err)
	}

	s.logger.Info("Snapshot exported",
		zap.String("bucket", s.bucket),
		zap.String("object", name),
		zap.Int("rows", len(records)-1),
	)
	return nil
}

func objectName(guildID, kind string) string {
	return fmt.Sprintf("%s/%s-%s.csv", guildID, kind, time.Now().UTC().Format("2006-01-02"))
}
