package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/banshee-data/scancloud/internal/lidar"
	"github.com/banshee-data/scancloud/internal/lidar/convert"
	"github.com/banshee-data/scancloud/internal/lidar/frame"
	"github.com/banshee-data/scancloud/internal/lidar/imu"
)

// Recorder persists conversion output for one or more sessions.
// Safe for concurrent use; sqlite serialises the writes.
type Recorder struct {
	db *sql.DB
}

// NewRecorder wraps an open database whose schema has been migrated.
func NewRecorder(db *sql.DB) *Recorder {
	return &Recorder{db: db}
}

// StartSession registers a new conversion session and returns its
// generated UUID.
func (r *Recorder) StartSession(sensorID string, rows, columns int) (*ConversionSession, error) {
	session := &ConversionSession{
		SessionID:        uuid.NewString(),
		SensorID:         sensorID,
		StartedUnixNanos: time.Now().UnixNano(),
		Rows:             rows,
		Columns:          columns,
	}
	_, err := r.db.Exec(`
		INSERT INTO conversion_sessions (session_id, sensor_id, started_unix_nanos, rows, columns)
		VALUES (?, ?, ?, ?, ?)`,
		session.SessionID, session.SensorID, session.StartedUnixNanos, session.Rows, session.Columns)
	if err != nil {
		return nil, fmt.Errorf("failed to insert session: %w", err)
	}
	return session, nil
}

// GetSession loads a session by ID.
func (r *Recorder) GetSession(sessionID string) (*ConversionSession, error) {
	var s ConversionSession
	err := r.db.QueryRow(`
		SELECT session_id, sensor_id, started_unix_nanos, rows, columns
		FROM conversion_sessions WHERE session_id = ?`, sessionID).
		Scan(&s.SessionID, &s.SensorID, &s.StartedUnixNanos, &s.Rows, &s.Columns)
	if err != nil {
		return nil, fmt.Errorf("failed to load session %s: %w", sessionID, err)
	}
	return &s, nil
}

// RecordCloud summarises a converted frame. The summary counts returns
// rather than storing points; clouds are too large to persist per frame.
func (r *Recorder) RecordCloud(sessionID string, ri *frame.RangeImage, cloud *lidar.Cloud,
	returnIndex int, destaggered bool, findings []convert.Violation) (*CloudSummary, error) {

	returnCount := 0
	for i := range cloud.Points {
		if cloud.Points[i].Range != 0 {
			returnCount++
		}
	}

	summary := &CloudSummary{
		SessionID:          sessionID,
		FrameStartNanos:    int64(ri.FrameStart),
		FrameDurationNanos: int64(ri.Duration()),
		ReturnIndex:        returnIndex,
		PointCount:         cloud.Len(),
		ReturnCount:        returnCount,
		Destaggered:        destaggered,
		ValidatorFindings:  len(findings),
		RecordedUnixNanos:  time.Now().UnixNano(),
	}

	res, err := r.db.Exec(`
		INSERT INTO cloud_summaries (
			session_id, frame_start_nanos, frame_duration_nanos, return_index,
			point_count, return_count, destaggered, validator_findings, recorded_unix_nanos
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		summary.SessionID, summary.FrameStartNanos, summary.FrameDurationNanos, summary.ReturnIndex,
		summary.PointCount, summary.ReturnCount, boolToInt(summary.Destaggered),
		summary.ValidatorFindings, summary.RecordedUnixNanos)
	if err != nil {
		return nil, fmt.Errorf("failed to insert cloud summary: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read summary id: %w", err)
	}
	summary.SummaryID = &id
	return summary, nil
}

// ListCloudSummaries returns a session's summaries ordered by frame
// start time.
func (r *Recorder) ListCloudSummaries(sessionID string) ([]CloudSummary, error) {
	rows, err := r.db.Query(`
		SELECT summary_id, session_id, frame_start_nanos, frame_duration_nanos, return_index,
			point_count, return_count, destaggered, validator_findings, recorded_unix_nanos
		FROM cloud_summaries WHERE session_id = ? ORDER BY frame_start_nanos`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query cloud summaries: %w", err)
	}
	defer rows.Close()

	var out []CloudSummary
	for rows.Next() {
		var s CloudSummary
		var id int64
		var destaggered int
		if err := rows.Scan(&id, &s.SessionID, &s.FrameStartNanos, &s.FrameDurationNanos,
			&s.ReturnIndex, &s.PointCount, &s.ReturnCount, &destaggered,
			&s.ValidatorFindings, &s.RecordedUnixNanos); err != nil {
			return nil, fmt.Errorf("failed to scan cloud summary: %w", err)
		}
		s.SummaryID = &id
		s.Destaggered = destaggered != 0
		out = append(out, s)
	}
	return out, rows.Err()
}

// RecordImu persists one calibrated inertial sample.
func (r *Recorder) RecordImu(sessionID string, sample imu.Sample) (*ImuRecord, error) {
	rec := &ImuRecord{
		SessionID:      sessionID,
		TimestampNanos: int64(sample.TimestampNS),
		LaX:            sample.LinearAccel[0],
		LaY:            sample.LinearAccel[1],
		LaZ:            sample.LinearAccel[2],
		AvX:            sample.AngularVel[0],
		AvY:            sample.AngularVel[1],
		AvZ:            sample.AngularVel[2],
	}
	res, err := r.db.Exec(`
		INSERT INTO imu_samples (session_id, timestamp_nanos, la_x, la_y, la_z, av_x, av_y, av_z)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.SessionID, rec.TimestampNanos, rec.LaX, rec.LaY, rec.LaZ, rec.AvX, rec.AvY, rec.AvZ)
	if err != nil {
		return nil, fmt.Errorf("failed to insert imu sample: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read sample id: %w", err)
	}
	rec.SampleID = &id
	return rec, nil
}

// CountImuSamples returns the number of stored samples for a session.
func (r *Recorder) CountImuSamples(sessionID string) (int, error) {
	var n int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM imu_samples WHERE session_id = ?`, sessionID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count imu samples: %w", err)
	}
	return n, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
