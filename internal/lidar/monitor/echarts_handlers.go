package monitor

import (
	"bytes"
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

const echartsAssetsPrefix = "https://go-echarts.github.io/go-echarts-assets/assets/"

// handleCloudScatter renders a top-down XY plot (HTML) of the latest
// converted cloud using go-echarts. This is a debugging-only endpoint
// (no auth) to eyeball the projection without external tooling.
// Query params:
//   - max_points (optional; default 8000) to reduce payload size
func (ws *WebServer) handleCloudScatter(w http.ResponseWriter, r *http.Request) {
	_, cloud := ws.latest()
	if cloud == nil {
		ws.writeJSONError(w, http.StatusNotFound, "no cloud published yet")
		return
	}

	maxPoints := 8000
	if mp := r.URL.Query().Get("max_points"); mp != "" {
		if v, err := strconv.Atoi(mp); err == nil && v > 100 && v <= 50000 {
			maxPoints = v
		}
	}

	// Downsample by stride to stay within maxPoints
	stride := 1
	if cloud.Len() > maxPoints {
		stride = int(math.Ceil(float64(cloud.Len()) / float64(maxPoints)))
	}

	data := make([]opts.ScatterData, 0, cloud.Len()/stride+1)
	maxAbs := 0.0
	maxSignal := float64(0)
	for i := 0; i < len(cloud.Points); i += stride {
		p := cloud.Points[i]
		if p.Range == 0 {
			continue
		}
		x := float64(p.X)
		y := float64(p.Y)
		if math.Abs(x) > maxAbs {
			maxAbs = math.Abs(x)
		}
		if math.Abs(y) > maxAbs {
			maxAbs = math.Abs(y)
		}

		sig := float64(p.Signal)
		if sig > maxSignal {
			maxSignal = sig
		}

		data = append(data, opts.ScatterData{Value: []interface{}{x, y, sig}})
	}

	// Add a small padding so points at the edges are visible
	pad := maxAbs * 1.05
	if pad == 0 {
		pad = 1.0
	}

	if maxSignal == 0 {
		maxSignal = 1
	}

	// Force a square plot by using equal width/height and symmetric axis ranges
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Converted Cloud (XY)", Theme: "dark", Width: "900px", Height: "900px", AssetsHost: echartsAssetsPrefix}),
		charts.WithTitleOpts(opts.Title{Title: "Converted Cloud", Subtitle: fmt.Sprintf("sensor=%s points=%d stride=%d", ws.sensorID, len(data), stride)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Min: -pad, Max: pad, Name: "X (m)", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Min: -pad, Max: pad, Name: "Y (m)", NameLocation: "middle", NameGap: 30}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Show:       opts.Bool(true),
			Calculable: opts.Bool(true),
			Min:        0,
			Max:        float32(maxSignal),
			Dimension:  "2",
			InRange:    &opts.VisualMapInRange{Color: []string{"#440154", "#482777", "#3e4989", "#31688e", "#26828e", "#1f9e89", "#35b779", "#6ece58", "#b5de2b", "#fde725"}},
		}),
	)

	scatter.AddSeries("cloud", data, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 3}))

	var buf bytes.Buffer
	if err := scatter.Render(&buf); err != nil {
		ws.writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("failed to render chart: %v", err))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}
