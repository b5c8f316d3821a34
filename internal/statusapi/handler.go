// Package statusapi implements the tiny HTTP status endpoint (spec.md
// §6): a single JSON object describing the currently playing and
// next-up tracks, regenerated at most once per second with the elapsed
// counter refreshed on every request. Grounded on the teacher's
// internal/radio/handler package (gin handlers, sanitiseTrack-style
// manual field building) and internal/radio/server.go's raw net/http
// routing for the supplemented /healthz route.
package statusapi

import (
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/arung-agamani/wavecast/internal/engine"
)

// Handler serves the /api/status (and legacy /status) status endpoint.
type Handler struct {
	eng *engine.Engine

	mu       sync.Mutex
	cachedAt time.Time
	cached   *engine.Snapshot
}

// NewHandler creates a Handler backed by eng.
func NewHandler(eng *engine.Engine) *Handler {
	return &Handler{eng: eng}
}

// Register wires this handler's routes onto r.
func (h *Handler) Register(r gin.IRouter) {
	r.GET("/api/status", h.Status)
	r.GET("/status", h.Status)
	r.GET("/healthz", h.Healthz)
}

// Healthz is the supplemented liveness endpoint (SPEC_FULL.md §4: not
// part of spec.md's core contract, added as the minimal operability
// surface every long-running service in the retrieval pack exposes).
func (h *Handler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Status implements spec.md §6's status endpoint: a single JSON object
// with current_song/next_song, regenerated at most once per second, with
// Elapsed refreshed on every request.
func (h *Handler) Status(c *gin.Context) {
	body := h.render()
	c.Header("Connection", "close")
	c.Data(http.StatusOK, "application/json", []byte(body))
}

func (h *Handler) render() string {
	now := time.Now()

	h.mu.Lock()
	if h.cached == nil || now.Sub(h.cachedAt) >= time.Second {
		h.cached = h.eng.Snapshot()
		h.cachedAt = now
	}
	snap := h.cached
	h.mu.Unlock()

	var elapsed uint64
	if snap.Current != nil && !snap.CurrentStartedAt.IsZero() {
		elapsed = uint64(now.Sub(snap.CurrentStartedAt).Seconds())
		if elapsed > snap.Current.DurationSecs {
			elapsed = snap.Current.DurationSecs
		}
	}

	return buildStatusJSON(snap, fmt.Sprintf("%d", elapsed))
}

// buildStatusJSON renders the exact wire shape of spec.md §6. It is
// assembled by hand rather than via encoding/json because the spec's
// escaping rules (substitution, not backslash-escaping, for non-path
// fields) differ from what the standard encoder produces.
func buildStatusJSON(snap *engine.Snapshot, elapsedSecs string) string {
	var b strings.Builder
	b.WriteString(`{"current_song":`)
	writeSong(&b, snap.Current, elapsedSecs)
	b.WriteString(`,"next_song":`)
	writeSong(&b, snap.Next, "")
	b.WriteString("}")
	return b.String()
}

func writeSong(b *strings.Builder, ti *engine.TrackInfo, elapsedSecs string) {
	if ti == nil {
		b.WriteString("null")
		return
	}
	b.WriteString("{")
	b.WriteString(`"Artist":"` + escapeField(ti.Artist) + `",`)
	b.WriteString(`"Album":"` + escapeField(ti.Album) + `",`)
	b.WriteString(`"Title":"` + escapeField(ti.Title) + `",`)
	b.WriteString(`"Path":"` + escapePath(ti.Path) + `",`)
	b.WriteString(`"Duration":"` + fmt.Sprintf("%d", ti.DurationSecs) + `",`)
	if elapsedSecs != "" {
		b.WriteString(`"Elapsed":"` + elapsedSecs + `",`)
	}
	b.WriteString(`"Zone":"` + escapeField(ti.Zone) + `",`)
	b.WriteString(`"MusicBrainz Album Id":"` + escapeField(ti.AlbumID) + `",`)
	b.WriteString(`"MusicBrainz Release Track Id":"` + escapeField(ti.ReleaseTrackID) + `"`)
	b.WriteString("}")
}
