package convert

import (
	"github.com/banshee-data/scancloud/internal/lidar"
)

// Violation is one advisory ordering anomaly found by CheckDestaggered.
type Violation struct {
	Kind     string // "azimuth" or "elevation"
	Row, Col int    // pixel where the ordering broke
	Prev     float64
	Curr     float64
}

// CheckDestaggered sanity-checks a destaggered cloud: within each row
// the azimuth angle atan2(y,x) should be non-increasing across columns,
// and down column 0 the elevation atan2(z, range) should be
// non-increasing across rows. Degenerate (0,0) samples are skipped.
//
// Findings are advisory only. A noisy scene or partial rotation can
// trip the check on a perfectly good cloud, so violations are reported
// to the caller and logged in debug mode, never treated as fatal.
func CheckDestaggered(cloud *lidar.Cloud) []Violation {
	var violations []Violation

	for u := 0; u < cloud.H; u++ {
		prev := 0.0
		havePrev := false
		for v := 0; v < cloud.W; v++ {
			p := cloud.At(u, v)
			if p.X == 0 && p.Y == 0 {
				continue
			}
			theta := lidar.AzimuthOf(p)
			if havePrev && theta > prev {
				violations = append(violations, Violation{
					Kind: "azimuth", Row: u, Col: v, Prev: prev, Curr: theta,
				})
			}
			prev = theta
			havePrev = true
		}
	}

	prev := 0.0
	havePrev := false
	for u := 0; u < cloud.H; u++ {
		p := cloud.At(u, 0)
		if p.Range == 0 {
			continue
		}
		phi := lidar.ElevationOf(p)
		if havePrev && phi > prev {
			violations = append(violations, Violation{
				Kind: "elevation", Row: u, Col: 0, Prev: prev, Curr: phi,
			})
		}
		prev = phi
		havePrev = true
	}

	if len(violations) > 0 {
		lidar.Debugf("[Validator] %d alignment violations in %dx%d cloud (first: %+v)",
			len(violations), cloud.H, cloud.W, violations[0])
	}
	return violations
}
