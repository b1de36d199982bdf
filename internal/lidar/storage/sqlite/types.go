package sqlite

// ConversionSession records one sensor session: a calibration loaded
// once and the stream of frames converted under it.
type ConversionSession struct {
	SessionID        string // UUID
	SensorID         string
	StartedUnixNanos int64
	Rows             int
	Columns          int
}

// CloudSummary records one converted frame. The cloud itself is handed
// to the presentation layer; what we keep is enough to account for the
// conversion and spot regressions.
type CloudSummary struct {
	SummaryID          *int64 // set by database after insert
	SessionID          string
	FrameStartNanos    int64
	FrameDurationNanos int64
	ReturnIndex        int
	PointCount         int // always rows*columns
	ReturnCount        int // points with a non-zero range
	Destaggered        bool
	ValidatorFindings  int
	RecordedUnixNanos  int64
}

// ImuRecord is one calibrated inertial sample row.
type ImuRecord struct {
	SampleID       *int64 // set by database after insert
	SessionID      string
	TimestampNanos int64
	LaX, LaY, LaZ  float64 // m/s²
	AvX, AvY, AvZ  float64 // rad/s
}
