package monitor

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/banshee-data/scancloud/db"
	"github.com/banshee-data/scancloud/internal/lidar"
	"github.com/banshee-data/scancloud/internal/lidar/frame"
	sqlite "github.com/banshee-data/scancloud/internal/lidar/storage/sqlite"
)

// WebServer handles the HTTP interface for monitoring the conversion
// pipeline. It provides endpoints for health checks, recorded frame
// summaries, and debug visualisations of the latest converted cloud.
type WebServer struct {
	address   string
	db        *db.DB
	dbPath    string
	recorder  *sqlite.Recorder
	sensorID  string
	sessionID string
	server    *http.Server

	mu          sync.Mutex
	latestFrame *frame.RangeImage
	latestCloud *lidar.Cloud
	frameCount  int
}

// WebServerConfig contains configuration options for the web server
type WebServerConfig struct {
	Address   string
	DB        *db.DB
	DBPath    string
	Recorder  *sqlite.Recorder
	SensorID  string
	SessionID string
}

// NewWebServer creates a new web server with the provided configuration
func NewWebServer(config WebServerConfig) *WebServer {
	ws := &WebServer{
		address:   config.Address,
		db:        config.DB,
		dbPath:    config.DBPath,
		recorder:  config.Recorder,
		sensorID:  config.SensorID,
		sessionID: config.SessionID,
	}

	ws.server = &http.Server{
		Addr:    ws.address,
		Handler: ws.setupRoutes(),
	}

	return ws
}

// Publish replaces the frame and cloud served by the debug endpoints.
// Callers hand over ownership; the previous pair is dropped.
func (ws *WebServer) Publish(ri *frame.RangeImage, cloud *lidar.Cloud) {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	ws.latestFrame = ri
	ws.latestCloud = cloud
	ws.frameCount++
}

func (ws *WebServer) latest() (*frame.RangeImage, *lidar.Cloud) {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	return ws.latestFrame, ws.latestCloud
}

func (ws *WebServer) writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// Start begins the HTTP server in a goroutine and handles graceful shutdown
func (ws *WebServer) Start(ctx context.Context) error {
	go func() {
		log.Printf("Starting HTTP server on %s", ws.address)
		if err := ws.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down HTTP server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	if err := ws.server.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
		if err := ws.server.Close(); err != nil {
			log.Printf("HTTP server force close error: %v", err)
		}
	}

	log.Printf("HTTP server routine stopped")
	return nil
}

// setupRoutes configures the HTTP routes and handlers
func (ws *WebServer) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", ws.handleHealth)
	mux.HandleFunc("/api/session", ws.handleSession)
	mux.HandleFunc("/api/summaries", ws.handleSummaries)
	mux.HandleFunc("/debug/charts/cloud", ws.handleCloudScatter)
	mux.HandleFunc("/debug/charts/rangeimage.png", ws.handleRangeHeatmap)

	if ws.db != nil {
		if err := ws.db.AttachDebugHandlers(mux, ws.dbPath); err != nil {
			log.Printf("failed to attach debug handlers: %v", err)
		}
	}

	return mux
}

func (ws *WebServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	ws.mu.Lock()
	frames := ws.frameCount
	ws.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":    "ok",
		"sensor_id": ws.sensorID,
		"frames":    frames,
	})
}

func (ws *WebServer) handleSession(w http.ResponseWriter, r *http.Request) {
	if ws.recorder == nil || ws.sessionID == "" {
		ws.writeJSONError(w, http.StatusNotFound, "no recording session")
		return
	}
	session, err := ws.recorder.GetSession(ws.sessionID)
	if err != nil {
		ws.writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(session)
}

func (ws *WebServer) handleSummaries(w http.ResponseWriter, r *http.Request) {
	if ws.recorder == nil || ws.sessionID == "" {
		ws.writeJSONError(w, http.StatusNotFound, "no recording session")
		return
	}
	summaries, err := ws.recorder.ListCloudSummaries(ws.sessionID)
	if err != nil {
		ws.writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(summaries)
}
