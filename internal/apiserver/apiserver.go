// Package apiserver exposes the algorithm engines over HTTP: submit a run
// against a centres.Instance, poll it while it executes in the background,
// cancel it, or fetch its result once it finishes. Job bookkeeping is a
// status map guarded by a mutex, with cancellation via context.CancelFunc,
// dispatching across the four engines this module builds.
package apiserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"metaheuristics/internal/brkga"
	"metaheuristics/internal/centres"
	"metaheuristics/internal/ga"
	"metaheuristics/internal/grasp"
	"metaheuristics/internal/localsearch"
	"metaheuristics/internal/logging"
	"metaheuristics/internal/metrics"
	"metaheuristics/internal/mh"
	"metaheuristics/internal/opt"
	"metaheuristics/internal/rkga"
	"metaheuristics/internal/rng"
)

// Algorithm names accepted in a run request.
const (
	AlgoLocalSearch = "local_search"
	AlgoGRASP       = "grasp"
	AlgoRKGA        = "rkga"
	AlgoBRKGA       = "brkga"
)

// Run status values.
const (
	StatusPending   = "pending"
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
	StatusCancelled = "cancelled"
)

// job tracks one submitted run.
type job struct {
	ID        string
	Algorithm string
	Status    string
	StartTime time.Time
	EndTime   *time.Time
	Result    *opt.Result
	Solution  []int
	ErrMsg    string
	Cancel    context.CancelFunc
}

// Server holds the run registry and the shared metrics registry runs
// report to.
type Server struct {
	logger      *zap.Logger
	metrics     *metrics.Registry
	defaultSeed int64
	defaultAlgo string

	mu   sync.RWMutex
	jobs map[string]*job
	next int
}

// New returns a Server. logger and metricsReg may be nil: a nil logger is
// replaced by zap.L(), and a nil metricsReg means no metrics are recorded.
// defaultAlgo is the engine used when a run request omits Algorithm.
func New(logger *zap.Logger, metricsReg *metrics.Registry, defaultSeed int64, defaultAlgo string) *Server {
	if logger == nil {
		logger = zap.L()
	}
	return &Server{
		logger:      logger,
		metrics:     metricsReg,
		defaultSeed: defaultSeed,
		defaultAlgo: defaultAlgo,
		jobs:        make(map[string]*job),
	}
}

// RegisterRoutes wires the run endpoints under /api/v1 onto r.
func (s *Server) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/runs", func(r chi.Router) {
		r.Post("/", s.handleCreate)
		r.Get("/{id}", s.handleGet)
		r.Delete("/{id}", s.handleCancel)
	})
}

// instanceDTO is the wire shape of a centres.Instance.
type instanceDTO struct {
	Demand      []int        `json:"demand"`
	Dist        [][]float64  `json:"dist"`
	CentreTypes []centreDTO  `json:"centre_types"`
}

type centreDTO struct {
	Capacity    int     `json:"capacity"`
	InstallCost float64 `json:"install_cost"`
}

// overridesDTO carries the knobs a caller may tune away from an
// algorithm's DefaultConfig.
type overridesDTO struct {
	Seed          *int64   `json:"seed"`
	Iterations    *int     `json:"iterations"`
	Alpha         *float64 `json:"alpha"`
	PopSize       *int     `json:"pop_size"`
	NGenerations  *int     `json:"n_generations"`
	NMutant       *int     `json:"n_mutant"`
	NElite        *int     `json:"n_elite"`
	InheritProb   *float64 `json:"inherit_prob"`
	MaxIterations *int     `json:"max_iterations"`
}

type createRunRequest struct {
	Algorithm string       `json:"algorithm"`
	Instance  instanceDTO  `json:"instance"`
	Overrides overridesDTO `json:"overrides"`
}

type runResponse struct {
	ID          string   `json:"id"`
	Algorithm   string   `json:"algorithm"`
	Status      string   `json:"status"`
	StartTime   string   `json:"start_time"`
	EndTime     string   `json:"end_time,omitempty"`
	Error       string   `json:"error,omitempty"`
	BestFitness *float64 `json:"best_fitness,omitempty"`
	Evaluations *int     `json:"evaluations,omitempty"`
	Iterations  *int     `json:"iterations,omitempty"`
	DurationMs  *int64   `json:"duration_ms,omitempty"`
	Solution    []int    `json:"solution,omitempty"`
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	log := logging.FromContext(r.Context())

	var req createRunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "невозможно разобрать тело запроса: "+err.Error())
		return
	}

	inst, err := toInstance(req.Instance)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	solver, err := centres.NewSolver(inst)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	algo := req.Algorithm
	if algo == "" {
		algo = s.defaultAlgo
	}

	optimizer, seed, err := s.buildOptimizer(algo, req.Overrides, solver)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithCancel(context.Background())

	s.mu.Lock()
	s.next++
	id := jobID(s.next)
	j := &job{
		ID:        id,
		Algorithm: algo,
		Status:    StatusPending,
		StartTime: time.Now(),
		Cancel:    cancel,
	}
	s.jobs[id] = j
	created := runResponse{
		ID:        j.ID,
		Algorithm: j.Algorithm,
		Status:    j.Status,
		StartTime: j.StartTime.Format(time.RFC3339),
	}
	s.mu.Unlock()

	if s.metrics != nil {
		s.metrics.RunsStarted.WithLabelValues(algo).Inc()
	}

	s.logger.Debug("run submitted", zap.String("job_id", created.ID), zap.String("algorithm", created.Algorithm))
	go s.runJob(ctx, j, optimizer, solver, seed, log)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	_ = json.NewEncoder(w).Encode(created)
}

func (s *Server) runJob(ctx context.Context, j *job, optimizer opt.Optimizer, p mh.Problem, seed int64, log *zap.Logger) {
	s.mu.Lock()
	j.Status = StatusRunning
	s.mu.Unlock()

	if seeded, ok := optimizer.(seedable); ok {
		seeded.seed(seed)
	}

	res, err := optimizer.Solve(ctx, p)

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	j.EndTime = &now

	switch {
	case err != nil && errors.Is(ctx.Err(), context.Canceled):
		j.Status = StatusCancelled
		j.ErrMsg = err.Error()
		if s.metrics != nil {
			s.metrics.RunsFailed.WithLabelValues(j.Algorithm, "cancelled").Inc()
		}
	case err != nil:
		j.Status = StatusFailed
		j.ErrMsg = err.Error()
		log.Warn("run failed", zap.String("job_id", j.ID), zap.Error(err))
		if s.metrics != nil {
			s.metrics.RunsFailed.WithLabelValues(j.Algorithm, "error").Inc()
		}
	default:
		j.Status = StatusCompleted
		j.Result = &res
		if withAssignments, ok := p.(interface{ Assignments() []int }); ok {
			j.Solution = append([]int(nil), withAssignments.Assignments()...)
		}
		if s.metrics != nil {
			s.metrics.RunsCompleted.WithLabelValues(j.Algorithm).Inc()
			s.metrics.RunDuration.WithLabelValues(j.Algorithm).Observe(res.Duration.Seconds())
			if n, ok := res.Meta["neighbours_explored"].(int); ok {
				s.metrics.NeighboursExplored.WithLabelValues(j.Algorithm).Observe(float64(n))
			}
		}
	}
}

// seedable lets buildOptimizer hand a run's own rng.Generator to an
// optimizer that needs one, without opt.Optimizer itself growing a Seed
// method.
type seedable interface {
	seed(int64)
}

type graspOptimizerSeed struct{ opt.GraspOptimizer }

func (g graspOptimizerSeed) seed(s int64) { g.Rng.Seed(s) }

func (s *Server) buildOptimizer(algo string, ov overridesDTO, p mh.Problem) (opt.Optimizer, int64, error) {
	seed := s.defaultSeed
	if ov.Seed != nil {
		seed = *ov.Seed
	}
	chromSize := p.ChromosomeSize()

	switch algo {
	case AlgoLocalSearch:
		cfg := localsearch.DefaultConfig()
		if ov.MaxIterations != nil {
			cfg.MaxIterations = *ov.MaxIterations
		}
		if err := cfg.Validate(); err != nil {
			return nil, 0, err
		}
		eng, err := localsearch.New(cfg)
		if err != nil {
			return nil, 0, err
		}
		return opt.LocalSearchOptimizer{Engine: eng}, seed, nil

	case AlgoGRASP:
		cfg := grasp.DefaultConfig()
		if ov.Iterations != nil {
			cfg.Iterations = *ov.Iterations
		}
		if ov.Alpha != nil {
			cfg.Alpha = *ov.Alpha
		}
		if ov.MaxIterations != nil {
			cfg.LocalSearch.MaxIterations = *ov.MaxIterations
		}
		if err := cfg.Validate(); err != nil {
			return nil, 0, err
		}
		eng, err := grasp.New(cfg)
		if err != nil {
			return nil, 0, err
		}
		g := rng.NewComputer(seed)
		return graspOptimizerSeed{opt.GraspOptimizer{Engine: eng, Rng: g}}, seed, nil

	case AlgoRKGA:
		cfg := rkga.DefaultConfig()
		cfg.ChromSize = chromSize
		applyGAOverrides(&cfg, ov)
		if err := cfg.Validate(); err != nil {
			return nil, 0, err
		}
		g := rng.NewComputer(seed)
		eng, err := rkga.New(cfg, g, p)
		if err != nil {
			return nil, 0, err
		}
		return opt.RKGAOptimizer{Engine: eng}, seed, nil

	case AlgoBRKGA:
		cfg := brkga.DefaultConfig()
		cfg.ChromSize = chromSize
		applyGAOverrides(&cfg.Config, ov)
		if ov.NElite != nil {
			cfg.NElite = *ov.NElite
		}
		if err := cfg.Validate(); err != nil {
			return nil, 0, err
		}
		g := rng.NewComputer(seed)
		eng, err := brkga.New(cfg, g, p)
		if err != nil {
			return nil, 0, err
		}
		return opt.BRKGAOptimizer{Engine: eng}, seed, nil

	default:
		return nil, 0, mh.ConfigErrorf("apiserver: неизвестный алгоритм %q", algo)
	}
}

func applyGAOverrides(cfg *ga.Config, ov overridesDTO) {
	if ov.PopSize != nil {
		cfg.PopSize = *ov.PopSize
	}
	if ov.NGenerations != nil {
		cfg.NGenerations = *ov.NGenerations
	}
	if ov.NMutant != nil {
		cfg.NMutant = *ov.NMutant
	}
	if ov.InheritProb != nil {
		cfg.InheritProb = *ov.InheritProb
	}
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.mu.RLock()
	defer s.mu.RUnlock()
	j, ok := s.jobs[id]
	if !ok {
		writeError(w, http.StatusNotFound, "run не найден: "+id)
		return
	}

	resp := runResponse{
		ID:        j.ID,
		Algorithm: j.Algorithm,
		Status:    j.Status,
		StartTime: j.StartTime.Format(time.RFC3339),
		Error:     j.ErrMsg,
		Solution:  j.Solution,
	}
	if j.EndTime != nil {
		resp.EndTime = j.EndTime.Format(time.RFC3339)
	}
	if j.Result != nil {
		fit := j.Result.BestFitness
		ev := j.Result.Evaluations
		it := j.Result.Iterations
		ms := j.Result.Duration.Milliseconds()
		resp.BestFitness = &fit
		resp.Evaluations = &ev
		resp.Iterations = &it
		resp.DurationMs = &ms
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

func (s *Server) handleCancel(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.mu.Lock()
	defer s.mu.Unlock()

	j, ok := s.jobs[id]
	if !ok {
		writeError(w, http.StatusNotFound, "run не найден: "+id)
		return
	}
	switch j.Status {
	case StatusCompleted, StatusFailed, StatusCancelled:
		writeError(w, http.StatusConflict, "run уже завершён со статусом "+j.Status)
		return
	}
	if j.Cancel != nil {
		j.Cancel()
	}
	w.WriteHeader(http.StatusAccepted)
}

func toInstance(dto instanceDTO) (*centres.Instance, error) {
	types := make([]centres.CentreType, len(dto.CentreTypes))
	for i, c := range dto.CentreTypes {
		types[i] = centres.CentreType{Capacity: c.Capacity, InstallCost: c.InstallCost}
	}
	return centres.NewInstance(dto.Demand, dto.Dist, types)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func jobID(n int) string {
	return "run_" + strconv.Itoa(n)
}
