// Command centres benchmarks the four algorithm engines (local search,
// GRASP, RKGA, BRKGA) against randomly generated instances of the centre
// location problem, and writes the aggregated results to a CSV file. Its
// flag surface is laid out as one block of run-policy flags, then one flag
// block per algorithm.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"metaheuristics/internal/bench"
	"metaheuristics/internal/brkga"
	"metaheuristics/internal/centres"
	"metaheuristics/internal/ga"
	"metaheuristics/internal/grasp"
	"metaheuristics/internal/localsearch"
	"metaheuristics/internal/mh"
	"metaheuristics/internal/opt"
	"metaheuristics/internal/rkga"
	"metaheuristics/internal/rng"
)

func newLocalSearchFactory(cfg localsearch.Config) func(seed int64) opt.Optimizer {
	return func(seed int64) opt.Optimizer {
		eng, _ := localsearch.New(cfg)
		return opt.LocalSearchOptimizer{Engine: eng}
	}
}

func newGraspFactory(cfg grasp.Config) func(seed int64) opt.Optimizer {
	return func(seed int64) opt.Optimizer {
		eng, _ := grasp.New(cfg)
		return opt.GraspOptimizer{Engine: eng, Rng: rng.NewComputer(seed)}
	}
}

// rkgaSolveOptimizer defers rkga.New until it knows the chromosome size of
// the instance it is about to solve, since Case only reveals that when
// NewProblem runs, which happens after Algorithm.Factory does for the
// teacher's bench.Runner. It wraps Solve to build the real engine lazily.
type rkgaSolveOptimizer struct {
	cfg  ga.Config
	seed int64
}

func (o rkgaSolveOptimizer) Solve(ctx context.Context, p mh.Problem) (opt.Result, error) {
	cfg := o.cfg
	cfg.ChromSize = p.ChromosomeSize()
	eng, err := rkga.New(cfg, rng.NewComputer(o.seed), p)
	if err != nil {
		return opt.Result{}, err
	}
	return opt.RKGAOptimizer{Engine: eng}.Solve(ctx, p)
}

func newRKGAFactory(cfg ga.Config) func(seed int64) opt.Optimizer {
	return func(seed int64) opt.Optimizer {
		return rkgaSolveOptimizer{cfg: cfg, seed: seed}
	}
}

type brkgaSolveOptimizer struct {
	cfg  brkga.Config
	seed int64
}

func (o brkgaSolveOptimizer) Solve(ctx context.Context, p mh.Problem) (opt.Result, error) {
	cfg := o.cfg
	cfg.ChromSize = p.ChromosomeSize()
	eng, err := brkga.New(cfg, rng.NewComputer(o.seed), p)
	if err != nil {
		return opt.Result{}, err
	}
	return opt.BRKGAOptimizer{Engine: eng}.Solve(ctx, p)
}

func newBRKGAFactory(cfg brkga.Config) func(seed int64) opt.Optimizer {
	return func(seed int64) opt.Optimizer {
		return brkgaSolveOptimizer{cfg: cfg, seed: seed}
	}
}

func main() {
	var (
		out          = flag.String("out", "artifacts/centres_results.csv", "путь к выходному CSV-файлу")
		pairs        = flag.String("pairs", "20x4,50x8,100x12", "конфигурации: количество городов X количество площадок (через запятую)")
		algos        = flag.String("algos", "LS,GRASP,RKGA,BRKGA", "список алгоритмов: LS, GRASP, RKGA, BRKGA (через запятую)")
		runs         = flag.Int("runs", 20, "количество запусков каждого алгоритма (с разными сидами)")
		baseSeed     = flag.Int64("seed", 1000, "базовый сид для запусков алгоритмов")
		instanceSeed = flag.Int64("instance_seed", 777, "базовый сид для генерации экземпляров задачи (фиксирован для конфигурации)")
		perRunTO     = flag.Duration("per_run_timeout", 0, "таймаут одного запуска; 0, без ограничения")

		lsMaxIter = flag.Int("ls_max_iter", 0, "предел итераций локального поиска (0, без ограничения)")
		lsPolicy  = flag.String("ls_policy", "best", "политика улучшения: first | best")

		graspIter    = flag.Int("grasp_iter", 100, "количество итераций GRASP")
		graspAlpha   = flag.Float64("grasp_alpha", 0.3, "коэффициент жадности RCL (0=жадно, 1=случайно)")
		graspLSIter  = flag.Int("grasp_ls_max_iter", 0, "предел итераций локального поиска внутри GRASP")
		graspLSPolic = flag.String("grasp_ls_policy", "best", "политика улучшения внутри GRASP: first | best")

		gaPop     = flag.Int("ga_pop", 100, "размер популяции (RKGA/BRKGA)")
		gaGen     = flag.Int("ga_gen", 200, "количество поколений (RKGA/BRKGA)")
		gaMutant  = flag.Int("ga_mutant", 15, "количество мутантов за поколение (RKGA/BRKGA)")
		gaInherit = flag.Float64("ga_inherit", 0.7, "вероятность наследования гена от первого родителя (RKGA/BRKGA)")

		brkgaElite = flag.Int("brkga_elite", 20, "размер элиты (BRKGA)")
	)
	flag.Parse()

	ctx := context.Background()

	cases, err := parsePairs(*pairs, *instanceSeed)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Конфликт:", err)
		os.Exit(2)
	}

	lsCfg := localsearch.Config{MaxIterations: *lsMaxIter, Policy: parsePolicy(*lsPolicy)}
	if err := lsCfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "Конфликт в конфигурации локального поиска:", err)
		os.Exit(2)
	}

	graspCfg := grasp.Config{
		Iterations: *graspIter,
		Alpha:      *graspAlpha,
		LocalSearch: localsearch.Config{
			MaxIterations: *graspLSIter,
			Policy:        parsePolicy(*graspLSPolic),
		},
	}
	if err := graspCfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "Конфликт в конфигурации GRASP:", err)
		os.Exit(2)
	}

	gaCfg := ga.Config{
		PopSize:      *gaPop,
		ChromSize:    1, // patched per-case by the RKGA/BRKGA factories
		NGenerations: *gaGen,
		NMutant:      *gaMutant,
		InheritProb:  *gaInherit,
	}

	brkgaCfg := brkga.Config{Config: gaCfg, NElite: *brkgaElite}

	available := map[string]bench.Algorithm{
		"LS":    {Name: "LS", Factory: newLocalSearchFactory(lsCfg)},
		"GRASP": {Name: "GRASP", Factory: newGraspFactory(graspCfg)},
		"RKGA":  {Name: "RKGA", Factory: newRKGAFactory(gaCfg)},
		"BRKGA": {Name: "BRKGA", Factory: newBRKGAFactory(brkgaCfg)},
	}

	var selected []bench.Algorithm
	for _, a := range splitCSV(*algos) {
		al, ok := available[a]
		if !ok {
			fmt.Fprintf(os.Stderr, "Алгоритм не предоставлен в программе %q; доступные: %v\n", a, keys(available))
			os.Exit(2)
		}
		selected = append(selected, al)
	}

	runner := bench.Runner{
		Runs:          *runs,
		BaseSeed:      *baseSeed,
		PerRunTimeout: *perRunTO,
	}

	var records []bench.Record
	for _, c := range cases {
		for _, a := range selected {
			fmt.Printf("Запущен алгоритм %s; случай %s (общее кол-во запусков=%d)...\n", a.Name, c.Name, runner.Runs)

			rec, err := runner.RunCase(ctx, c, a)
			if err != nil {
				fmt.Fprintln(os.Stderr, "Ошибка:", err)
				os.Exit(1)
			}
			records = append(records, rec)

			fmt.Printf("  Целевая функция: лучшая=%.2f средняя=%.2f стандартное отклонение=%.2f | Время: среднее=%.2fms стандартное отклонение=%.2fms\n",
				rec.FitnessBest, rec.FitnessMean, rec.FitnessStd,
				rec.TimeMeanMs, rec.TimeStdMs,
			)
		}
	}

	if err := bench.WriteCSV(*out, records); err != nil {
		fmt.Fprintln(os.Stderr, "Ошибка при записи в CSV:", err)
		os.Exit(1)
	}
	fmt.Println("Saved:", *out)
}

func parsePolicy(s string) mh.LocalSearchPolicy {
	if s == "first" {
		return mh.FirstImprovement
	}
	return mh.BestImprovement
}

// parsePairs turns "20x4,50x8" into bench.Cases, generating a fresh random
// centres.Instance for each case from a seed derived from baseInstanceSeed.
func parsePairs(s string, baseInstanceSeed int64) ([]bench.Case, error) {
	parts := splitCSV(s)
	cases := make([]bench.Case, 0, len(parts))

	for i, p := range parts {
		cl := strings.Split(p, "x")
		if len(cl) != 2 {
			return nil, fmt.Errorf("пара %q невалидной схемы, пример: 50x10", p)
		}
		nCities, err := atoiStrict(cl[0])
		if err != nil {
			return nil, fmt.Errorf("пара %q: ошибка парсинга количества городов: %w", p, err)
		}
		nLocations, err := atoiStrict(cl[1])
		if err != nil {
			return nil, fmt.Errorf("пара %q: ошибка парсинга количества площадок: %w", p, err)
		}
		if nCities <= 0 || nLocations <= 0 {
			return nil, fmt.Errorf("пара %q: количество городов и площадок должно быть > 0", p)
		}

		seed := baseInstanceSeed + int64(i)*10_000 + int64(nCities)*100 + int64(nLocations)
		name := p

		cases = append(cases, bench.Case{
			Name: name,
			NewProblem: func() mh.Problem {
				inst, err := genInstance(seed, nCities, nLocations)
				if err != nil {
					panic(fmt.Sprintf("centres: failed to generate instance %s: %v", name, err))
				}
				solver, err := centres.NewSolver(inst)
				if err != nil {
					panic(fmt.Sprintf("centres: failed to build solver for %s: %v", name, err))
				}
				return solver
			},
		})
	}

	return cases, nil
}

// genInstance builds a random centres.Instance: cities with demand in
// [1,20], a symmetric-ish random distance matrix in [1,100], and three
// centre types whose combined capacity comfortably covers total demand.
func genInstance(seed int64, nCities, nLocations int) (*centres.Instance, error) {
	g := rng.NewComputer(seed)

	demand := make([]int, nCities)
	totalDemand := 0
	for i := range demand {
		demand[i] = g.NextInt(1, 20)
		totalDemand += demand[i]
	}

	dist := make([][]float64, nCities)
	for c := range dist {
		row := make([]float64, nLocations)
		for l := range row {
			row[l] = float64(g.NextInt(1, 100))
		}
		dist[c] = row
	}

	maxCap := totalDemand/2 + 10
	types := []centres.CentreType{
		{Capacity: maxCap / 4, InstallCost: float64(maxCap) * 3},
		{Capacity: maxCap / 2, InstallCost: float64(maxCap) * 5},
		{Capacity: maxCap, InstallCost: float64(maxCap) * 8},
	}

	return centres.NewInstance(demand, dist, types)
}

func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func atoiStrict(s string) (int, error) {
	s = strings.TrimSpace(s)
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	return v, nil
}

func keys(m map[string]bench.Algorithm) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
