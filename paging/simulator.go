package paging

import (
	"io"
	"log/slog"
	"time"
)

// StepRecord is the outcome of one reference
type StepRecord struct {
	Index      int      // Position in the reference string
	Page       PageID   // Page referenced
	Fault      bool     // True if the page was not resident
	Slot       int      // Frame holding the page after the access
	Evicted    PageID   // Page overwritten by this fault
	HasEvicted bool     // True if the fault replaced a resident page
	Frames     []PageID // Occupied frames after the access, in slot order
}

// SimulationResult holds the full trace of a run
type SimulationResult struct {
	Policy    PolicyKind
	FrameSize int
	Steps     []StepRecord
	Faults    int
}

// Hits returns the number of references that did not fault
func (r *SimulationResult) Hits() int {
	return len(r.Steps) - r.Faults
}

// Evictions returns the number of faults that replaced a resident page
func (r *SimulationResult) Evictions() int {
	n := 0
	for _, s := range r.Steps {
		if s.HasEvicted {
			n++
		}
	}
	return n
}

// FaultRate returns faults per reference, 0 for an empty trace
func (r *SimulationResult) FaultRate() float64 {
	if len(r.Steps) == 0 {
		return 0
	}
	return float64(r.Faults) / float64(len(r.Steps))
}

// Simulator drives replacement policies over reference strings.
// Every run gets its own frame table and policy state, so a Simulator
// may be used from several goroutines at once.
type Simulator struct {
	config  *Config
	logger  *slog.Logger
	metrics *Metrics
}

// Option configures a Simulator
type Option func(*Simulator)

// WithLogger sets the structured logger used for run events
func WithLogger(logger *slog.Logger) Option {
	return func(s *Simulator) {
		s.logger = logger
	}
}

// WithMetrics records every run into m
func WithMetrics(m *Metrics) Option {
	return func(s *Simulator) {
		s.metrics = m
	}
}

// NewSimulator creates a simulator; a nil config means DefaultConfig.
// Unset (zero or negative) bounds fall back to the defaults.
func NewSimulator(config *Config, opts ...Option) *Simulator {
	if config == nil {
		config = DefaultConfig()
	} else if config.MaxFrames < 1 || config.MaxReferences < 1 {
		config = config.Clone()
		if config.MaxFrames < 1 {
			config.MaxFrames = DefaultMaxFrames
		}
		if config.MaxReferences < 1 {
			config.MaxReferences = DefaultMaxReferences
		}
	}

	s := &Simulator{
		config: config,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.metrics == nil && config.EnableMetrics {
		s.metrics = NewMetrics()
	}

	return s
}

// Metrics returns the simulator's metrics, or nil if disabled
func (s *Simulator) Metrics() *Metrics {
	return s.metrics
}

// Config returns the simulator's configuration
func (s *Simulator) Config() *Config {
	return s.config
}

// RunNamed resolves a policy name and runs it
func (s *Simulator) RunNamed(policy string, frameSize int, refs []PageID) (*SimulationResult, error) {
	kind, err := ParsePolicyKind(policy)
	if err != nil {
		s.reject(err)
		return nil, err
	}
	return s.Run(kind, frameSize, refs)
}

// Run simulates kind over refs with frameSize frames.
// Nothing is returned on error; a run either completes or leaves no trace.
func (s *Simulator) Run(kind PolicyKind, frameSize int, refs []PageID) (*SimulationResult, error) {
	if len(refs) > s.config.MaxReferences {
		err := ErrInvalidConfig("Run", "reference string has %d entries, maximum is %d", len(refs), s.config.MaxReferences)
		s.reject(err)
		return nil, err
	}

	table, err := NewFrameTable(frameSize, s.config.MaxFrames)
	if err != nil {
		s.reject(err)
		return nil, err
	}

	policy, err := NewPolicy(kind, frameSize, refs)
	if err != nil {
		s.reject(err)
		return nil, err
	}

	start := time.Now()
	result := &SimulationResult{
		Policy:    kind,
		FrameSize: frameSize,
		Steps:     make([]StepRecord, 0, len(refs)),
	}

	for i, page := range refs {
		access, err := policy.OnAccess(i, page, table)
		if err != nil {
			return nil, NewSimError(ErrCodeInternal, "Run", "policy failed", err)
		}

		if access.Fault {
			result.Faults++
			s.logger.Debug("page fault",
				slog.String("policy", kind.String()),
				slog.Int("index", i),
				slog.Uint64("page", uint64(page)),
				slog.Int("slot", access.Slot),
				slog.Bool("evicted", access.HasEvicted),
			)
		}

		result.Steps = append(result.Steps, StepRecord{
			Index:      i,
			Page:       page,
			Fault:      access.Fault,
			Slot:       access.Slot,
			Evicted:    access.Evicted,
			HasEvicted: access.HasEvicted,
			Frames:     table.Occupied(),
		})
	}

	elapsed := time.Since(start)
	if s.metrics != nil {
		s.metrics.RecordRun(result, elapsed)
	}

	s.logger.Info("simulation complete",
		slog.String("policy", kind.String()),
		slog.Int("frames", frameSize),
		slog.Int("references", len(refs)),
		slog.Int("faults", result.Faults),
		slog.Duration("elapsed", elapsed),
	)

	return result, nil
}

func (s *Simulator) reject(err error) {
	if s.metrics != nil {
		s.metrics.RecordRejected()
	}
	s.logger.Warn("simulation rejected", slog.String("error", err.Error()))
}

// Run simulates kind over refs using the default configuration
func Run(kind PolicyKind, frameSize int, refs []PageID) (*SimulationResult, error) {
	return NewSimulator(DefaultConfig()).Run(kind, frameSize, refs)
}
