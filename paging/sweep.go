package paging

import (
	"encoding/binary"
	"fmt"
	"log/slog"

	"github.com/cespare/xxhash/v2"
	"github.com/dgraph-io/ristretto/v2"
)

// SweepPoint is the fault count of one policy at one frame size
type SweepPoint struct {
	FrameSize int
	Faults    int
	Cached    bool // Served from the result cache
}

// Sweeper runs a policy across a range of frame sizes, caching fault counts
// so repeated sweeps over the same reference string skip finished runs
type Sweeper struct {
	sim   *Simulator
	cache *ristretto.Cache[string, int] // nil when caching is disabled
}

// NewSweeper creates a sweeper; the cache is sized by Config.ResultCacheSize
func NewSweeper(sim *Simulator) (*Sweeper, error) {
	sw := &Sweeper{sim: sim}

	size := sim.config.ResultCacheSize
	if size <= 0 {
		return sw, nil
	}

	cache, err := ristretto.NewCache(&ristretto.Config[string, int]{
		NumCounters: size * 10,
		MaxCost:     size,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create result cache: %w", err)
	}
	sw.cache = cache

	return sw, nil
}

// Close releases the result cache
func (sw *Sweeper) Close() {
	if sw.cache != nil {
		sw.cache.Close()
	}
}

// Sweep returns the fault count of kind for every frame size in [minFrames, maxFrames]
func (sw *Sweeper) Sweep(kind PolicyKind, refs []PageID, minFrames, maxFrames int) ([]SweepPoint, error) {
	if minFrames < 1 || maxFrames < minFrames {
		return nil, ErrInvalidConfig("Sweep", "invalid frame range [%d, %d]", minFrames, maxFrames)
	}

	digest := referenceDigest(refs)
	points := make([]SweepPoint, 0, maxFrames-minFrames+1)

	for frames := minFrames; frames <= maxFrames; frames++ {
		key := fmt.Sprintf("%s/%d/%d/%016x", kind, frames, len(refs), digest)

		if sw.cache != nil {
			if faults, ok := sw.cache.Get(key); ok {
				points = append(points, SweepPoint{FrameSize: frames, Faults: faults, Cached: true})
				continue
			}
		}

		result, err := sw.sim.Run(kind, frames, refs)
		if err != nil {
			return nil, err
		}
		points = append(points, SweepPoint{FrameSize: frames, Faults: result.Faults})

		if sw.cache != nil {
			sw.cache.Set(key, result.Faults, 1)
		}
	}

	if sw.cache != nil {
		sw.cache.Wait()
	}

	if anomalies := BeladyAnomalies(points); len(anomalies) > 0 {
		sw.sim.logger.Info("belady anomaly detected",
			slog.String("policy", kind.String()),
			slog.Any("frame_sizes", anomalies),
		)
	}

	return points, nil
}

// BeladyAnomalies returns the frame sizes at which adding a frame increased
// the fault count. points must be ordered by consecutive frame size.
func BeladyAnomalies(points []SweepPoint) []int {
	var anomalies []int
	for i := 1; i < len(points); i++ {
		if points[i].Faults > points[i-1].Faults {
			anomalies = append(anomalies, points[i].FrameSize)
		}
	}
	return anomalies
}

func referenceDigest(refs []PageID) uint64 {
	h := xxhash.New()
	var buf [4]byte
	for _, p := range refs {
		binary.LittleEndian.PutUint32(buf[:], uint32(p))
		h.Write(buf[:])
	}
	return h.Sum64()
}
