// Command scancloud runs the scan-to-cloud conversion pipeline on a
// synthetic frame source: field extraction, LUT projection, optional
// destaggering and validation, with recording and a monitoring surface.
//
// Packet capture and decoding live upstream; this binary starts at the
// assembled range image.
package main

import (
	"context"
	"flag"
	"log"
	"math"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/banshee-data/scancloud/db"
	"github.com/banshee-data/scancloud/internal/config"
	"github.com/banshee-data/scancloud/internal/lidar/calib"
	"github.com/banshee-data/scancloud/internal/lidar/convert"
	"github.com/banshee-data/scancloud/internal/lidar/frame"
	"github.com/banshee-data/scancloud/internal/lidar/imu"
	"github.com/banshee-data/scancloud/internal/lidar/monitor"
	sqlite "github.com/banshee-data/scancloud/internal/lidar/storage/sqlite"
)

var (
	listen         = flag.String("listen", "", "HTTP listen address (overrides config)")
	configFile     = flag.String("config", "", "Path to tuning config JSON (optional)")
	intrinsicsFile = flag.String("intrinsics", "", "Path to sensor metadata JSON (default: embedded synthetic sensor)")
	dbFile         = flag.String("db", "", "Path to the SQLite database file (overrides config)")
	migrationsDir  = flag.String("migrations", "db/migrations", "Path to the schema migrations directory")
	sensorID       = flag.String("sensor-id", "synthetic-0", "Sensor identifier recorded with each session")
	frameLimit     = flag.Int("frames", 0, "Stop after this many frames (0 = run until interrupted)")
	frameInterval  = flag.Duration("frame-interval", 100*time.Millisecond, "Synthetic frame period")
)

// syntheticIntrinsics stands in for a sensor metadata file: 16 beams
// fanned over +/-15 degrees with small alternating azimuth offsets, the
// shift table derived from those offsets the way the sensor reports it.
func syntheticIntrinsics() *calib.Intrinsics {
	const rows, cols = 16, 1024
	in := &calib.Intrinsics{
		ColumnsPerFrame:     cols,
		BeamAltitudeDeg:     make([]float64, rows),
		BeamAzimuthDeg:      make([]float64, rows),
		BeamToLidarOriginMM: 15.806,
		PixelShiftByRow:     make([]int, rows),
	}
	for u := 0; u < rows; u++ {
		in.BeamAltitudeDeg[u] = 15.0 - 30.0*float64(u)/float64(rows-1)
		az := 1.0
		if u%2 == 1 {
			az = -1.0
		}
		in.BeamAzimuthDeg[u] = az * 4.2
		in.PixelShiftByRow[u] = int(math.Round(in.BeamAzimuthDeg[u] / 360.0 * cols))
	}
	return in
}

// syntheticFrame builds one rotation's range image: a flat circular
// wall with a slow bulge that drifts one column per frame, so the
// monitor's charts visibly change over time.
func syntheticFrame(h, w, idx int) (*frame.RangeImage, error) {
	start := uint64(time.Now().UnixNano())
	end := start + uint64(frameInterval.Nanoseconds())
	colTS := make([]uint64, w)
	step := (end - start) / uint64(w)
	for v := range colTS {
		colTS[v] = start + uint64(v)*step
	}

	ri, err := frame.NewRangeImage(h, w, start, end, colTS)
	if err != nil {
		return nil, err
	}

	n := h * w
	rangeMM := make([]uint32, n)
	signal := make([]uint32, n)
	refl := make([]uint16, n)
	nearIR := make([]uint16, n)
	for u := 0; u < h; u++ {
		for v := 0; v < w; v++ {
			phase := 2 * math.Pi * float64((v+idx)%w) / float64(w)
			r := 5000.0 + 1500.0*math.Sin(phase)
			i := u*w + v
			rangeMM[i] = uint32(r)
			signal[i] = uint32(200 + 100*math.Cos(phase))
			refl[i] = uint16(50 + u*10)
			nearIR[i] = uint16(800 + v%64)
		}
	}

	if err := ri.SetField(frame.ChanRange, frame.U32Field(rangeMM)); err != nil {
		return nil, err
	}
	if err := ri.SetField(frame.ChanSignal, frame.U32Field(signal)); err != nil {
		return nil, err
	}
	if err := ri.SetField(frame.ChanReflectivity, frame.U16Field(refl)); err != nil {
		return nil, err
	}
	if err := ri.SetField(frame.ChanNearIR, frame.U16Field(nearIR)); err != nil {
		return nil, err
	}
	return ri, nil
}

// syntheticImu fabricates one raw inertial sample per frame: gravity on
// Z plus a small wobble, angular rates near zero.
func syntheticImu(idx int) imu.RawSample {
	t := float64(idx) * frameInterval.Seconds()
	return imu.RawSample{
		GyroTS: uint64(time.Now().UnixNano()),
		LaX:    0.01 * math.Sin(t),
		LaY:    0.01 * math.Cos(t),
		LaZ:    1.0,
		AvX:    0.2 * math.Sin(t/2),
		AvY:    0,
		AvZ:    0.1,
	}
}

func main() {
	flag.Parse()

	cfg := config.EmptyTuningConfig()
	if *configFile != "" {
		loaded, err := config.LoadTuningConfig(*configFile)
		if err != nil {
			log.Fatalf("Failed to load tuning config: %v", err)
		}
		cfg = loaded
	}

	listenAddr := cfg.GetMonitorListen()
	if *listen != "" {
		listenAddr = *listen
	}
	dbPath := cfg.GetDatabasePath()
	if *dbFile != "" {
		dbPath = *dbFile
	}

	// Sensor geometry
	var intr *calib.Intrinsics
	if *intrinsicsFile != "" {
		loaded, err := calib.LoadIntrinsics(*intrinsicsFile)
		if err != nil {
			log.Fatalf("Failed to load sensor intrinsics: %v", err)
		}
		intr = loaded
		log.Printf("Loaded intrinsics from %s (%d beams, %d columns)", *intrinsicsFile, intr.Rows(), intr.ColumnsPerFrame)
	} else {
		intr = syntheticIntrinsics()
		log.Printf("Using embedded synthetic sensor (%d beams, %d columns)", intr.Rows(), intr.ColumnsPerFrame)
	}

	lut, err := calib.BuildLUT(intr)
	if err != nil {
		log.Fatalf("Failed to build projection LUT: %v", err)
	}

	conv, err := convert.NewConverter(convert.ConverterConfig{
		LUT:     lut,
		Shifts:  intr.ShiftTable(),
		Workers: cfg.GetWorkers(),
	})
	if err != nil {
		log.Fatalf("Failed to create converter: %v", err)
	}

	// Recorder (optional)
	var (
		database  *db.DB
		recorder  *sqlite.Recorder
		sessionID string
	)
	if cfg.GetRecorderEnabled() {
		database, err = db.NewDB(dbPath)
		if err != nil {
			log.Fatalf("Failed to open recorder database: %v", err)
		}
		defer database.Close()

		if err := database.MigrateUp(*migrationsDir); err != nil {
			log.Fatalf("Failed to migrate recorder database: %v", err)
		}

		recorder = sqlite.NewRecorder(database.DB)
		session, err := recorder.StartSession(*sensorID, intr.Rows(), intr.ColumnsPerFrame)
		if err != nil {
			log.Fatalf("Failed to start recording session: %v", err)
		}
		sessionID = session.SessionID
		log.Printf("Recording to %s, session %s", dbPath, sessionID)
	} else {
		log.Println("Recorder disabled (enable via recorder_enabled in the tuning config)")
	}

	webServer := monitor.NewWebServer(monitor.WebServerConfig{
		Address:   listenAddr,
		DB:        database,
		DBPath:    dbPath,
		Recorder:  recorder,
		SensorID:  *sensorID,
		SessionID: sessionID,
	})

	var wg sync.WaitGroup
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := webServer.Start(ctx); err != nil {
			log.Printf("Web server error: %v", err)
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		runPipeline(ctx, cfg, conv, intr.Rows(), intr.ColumnsPerFrame, recorder, sessionID, webServer)
		log.Print("Conversion pipeline terminated")
		stop()
	}()

	wg.Wait()
}

// runPipeline drives synthetic frames through conversion until the
// context is cancelled or the frame limit is reached.
func runPipeline(ctx context.Context, cfg *config.TuningConfig, conv *convert.Converter,
	rows, cols int, recorder *sqlite.Recorder, sessionID string, webServer *monitor.WebServer) {

	ticker := time.NewTicker(*frameInterval)
	defer ticker.Stop()

	returnIndex := cfg.GetReturnIndex()

	for idx := 0; ; idx++ {
		if *frameLimit > 0 && idx >= *frameLimit {
			return
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		ri, err := syntheticFrame(rows, cols, idx)
		if err != nil {
			log.Printf("Failed to build frame %d: %v", idx, err)
			continue
		}

		cloud, err := conv.Convert(ri, returnIndex)
		if err != nil {
			log.Printf("Failed to convert frame %d: %v", idx, err)
			continue
		}

		var findings []convert.Violation
		if cfg.GetDestagger() {
			destaggered, err := convert.Destagger(cloud, conv.Shifts())
			if err != nil {
				log.Printf("Failed to destagger frame %d: %v", idx, err)
				continue
			}
			cloud = destaggered
			if cfg.GetValidate() {
				findings = convert.CheckDestaggered(cloud)
				if len(findings) > 0 {
					log.Printf("Frame %d: %d alignment findings", idx, len(findings))
				}
			}
		}

		webServer.Publish(ri, cloud)

		if recorder != nil {
			if _, err := recorder.RecordCloud(sessionID, ri, cloud, returnIndex, cfg.GetDestagger(), findings); err != nil {
				log.Printf("Failed to record frame %d: %v", idx, err)
			}
			sample := imu.Convert(syntheticImu(idx))
			if _, err := recorder.RecordImu(sessionID, sample); err != nil {
				log.Printf("Failed to record imu sample %d: %v", idx, err)
			}
		}
	}
}
