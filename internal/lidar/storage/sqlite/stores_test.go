package sqlite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/scancloud/internal/lidar/convert"
	"github.com/banshee-data/scancloud/internal/lidar/imu"
	"github.com/banshee-data/scancloud/internal/testutil"
)

func TestStartAndGetSession(t *testing.T) {
	r := newTestRecorder(t)

	session, err := r.StartSession("sensor-a", 64, 1024)
	require.NoError(t, err)
	require.NotEmpty(t, session.SessionID)

	loaded, err := r.GetSession(session.SessionID)
	require.NoError(t, err)
	assert.Equal(t, "sensor-a", loaded.SensorID)
	assert.Equal(t, 64, loaded.Rows)
	assert.Equal(t, 1024, loaded.Columns)
}

func TestRecordCloudSummary(t *testing.T) {
	r := newTestRecorder(t)

	session, err := r.StartSession("sensor-a", 4, 16)
	require.NoError(t, err)

	const h, w = 4, 16
	ri := testutil.SyntheticFrame(t, h, w, testutil.FrameOptions{})
	conv, err := convert.NewConverter(convert.ConverterConfig{LUT: testutil.XAxisLUT(t, h, w)})
	require.NoError(t, err)
	cloud, err := conv.Convert(ri, 0)
	require.NoError(t, err)

	summary, err := r.RecordCloud(session.SessionID, ri, cloud, 0, true, nil)
	require.NoError(t, err)
	require.NotNil(t, summary.SummaryID)
	assert.Equal(t, h*w, summary.PointCount)
	assert.Equal(t, h*w, summary.ReturnCount) // synthetic frame has no zero ranges
	assert.True(t, summary.Destaggered)
	assert.Equal(t, 0, summary.ValidatorFindings)

	listed, err := r.ListCloudSummaries(session.SessionID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, summary.PointCount, listed[0].PointCount)
	assert.Equal(t, int64(ri.FrameStart), listed[0].FrameStartNanos)
}

func TestRecordImuSamples(t *testing.T) {
	r := newTestRecorder(t)

	session, err := r.StartSession("sensor-a", 4, 16)
	require.NoError(t, err)

	sample := imu.Convert(imu.RawSample{GyroTS: 42, LaZ: 1, AvX: 90})
	rec, err := r.RecordImu(session.SessionID, sample)
	require.NoError(t, err)
	require.NotNil(t, rec.SampleID)
	assert.InDelta(t, 9.80665, rec.LaZ, 1e-12)

	n, err := r.CountImuSamples(session.SessionID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestListCloudSummariesEmptySession(t *testing.T) {
	r := newTestRecorder(t)

	session, err := r.StartSession("sensor-a", 2, 4)
	require.NoError(t, err)

	listed, err := r.ListCloudSummaries(session.SessionID)
	require.NoError(t, err)
	assert.Empty(t, listed)
}
