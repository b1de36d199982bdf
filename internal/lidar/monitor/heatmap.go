package monitor

import (
	"fmt"
	"net/http"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/scancloud/internal/lidar/frame"
)

// rangeGrid adapts a range image channel to plotter.GridXYZ. Row 0 is
// the top beam, so Y is flipped to keep the rendered image upright.
type rangeGrid struct {
	h, w int
	vals []uint32
}

func (g rangeGrid) Dims() (int, int)   { return g.w, g.h }
func (g rangeGrid) X(c int) float64    { return float64(c) }
func (g rangeGrid) Y(r int) float64    { return float64(r) }
func (g rangeGrid) Z(c, r int) float64 { return float64(g.vals[(g.h-1-r)*g.w+c]) }

// handleRangeHeatmap renders the latest frame's range channel as a PNG
// heatmap. Handy for spotting staggered columns and dropped returns at
// a glance.
func (ws *WebServer) handleRangeHeatmap(w http.ResponseWriter, r *http.Request) {
	ri, _ := ws.latest()
	if ri == nil {
		ws.writeJSONError(w, http.StatusNotFound, "no frame published yet")
		return
	}

	vals, err := ri.FieldU32(frame.ChanRange)
	if err != nil {
		ws.writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("failed to read range channel: %v", err))
		return
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Range Image (%dx%d)", ri.H, ri.W)
	p.X.Label.Text = "Column"
	p.Y.Label.Text = "Beam"

	pal := moreland.SmoothBlueRed().Palette(255)
	hm := plotter.NewHeatMap(rangeGrid{h: ri.H, w: ri.W, vals: vals}, pal)
	p.Add(hm)

	wt, err := p.WriterTo(10*vg.Inch, 4*vg.Inch, "png")
	if err != nil {
		ws.writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("failed to render heatmap: %v", err))
		return
	}

	w.Header().Set("Content-Type", "image/png")
	if _, err := wt.WriteTo(w); err != nil {
		ws.writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("failed to write png: %v", err))
	}
}
