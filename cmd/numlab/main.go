package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/dfranco-uni/numlab/internal/config"
	"github.com/dfranco-uni/numlab/internal/diff"
	"github.com/dfranco-uni/numlab/internal/expr"
	"github.com/dfranco-uni/numlab/internal/interp"
	"github.com/dfranco-uni/numlab/internal/montecarlo"
	"github.com/dfranco-uni/numlab/internal/ode"
	"github.com/dfranco-uni/numlab/internal/quad"
	"github.com/dfranco-uni/numlab/internal/roots"
	"github.com/dfranco-uni/numlab/internal/storage"
	"github.com/dfranco-uni/numlab/internal/tui"
)

var (
	dataDir    string
	configFile string
	saveRun    bool
	plot       bool

	method  string
	a       float64
	b       float64
	x0      float64
	x1      float64
	tol     float64
	maxIter int
	derivIn string
	damping float64

	nSub   int
	simple bool

	t0       float64
	tf       float64
	y0       float64
	odeTol   float64
	h0       float64
	hMin     float64
	hMax     float64
	maxSteps int

	xAt        float64
	step       float64
	order      int
	richardson bool

	dims     int
	samples  int
	seed     int64
	maxError float64
	xMin     float64
	xMax     float64
	yMin     float64
	yMax     float64

	pointsSpec string
	evalAt     float64
	varNames   string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "numlab",
		Short: "classical numerical methods lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".numlab", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")

	solveCmd := &cobra.Command{
		Use:   "root [expr]",
		Short: "find a root of f(x) = 0",
		Args:  cobra.ExactArgs(1),
		RunE:  runRoot,
	}
	solveCmd.Flags().StringVar(&method, "method", "bisect", "bisect|newton|secant|fixedpoint|aitken")
	solveCmd.Flags().Float64Var(&a, "a", 0, "bracket left end (bisect)")
	solveCmd.Flags().Float64Var(&b, "b", 1, "bracket right end (bisect)")
	solveCmd.Flags().Float64Var(&x0, "x0", 0, "initial guess")
	solveCmd.Flags().Float64Var(&x1, "x1", 1, "second guess (secant)")
	solveCmd.Flags().Float64Var(&tol, "tol", config.DefaultTolerance, "convergence tolerance")
	solveCmd.Flags().IntVar(&maxIter, "max-iter", config.DefaultMaxIter, "iteration cap")
	solveCmd.Flags().StringVar(&derivIn, "deriv", "", "analytic derivative f'(x) (newton)")
	solveCmd.Flags().Float64Var(&damping, "damping", 0.1, "damping c for g(x) = x + c*f(x) (fixedpoint, aitken)")
	solveCmd.Flags().BoolVar(&saveRun, "save", false, "persist the run")

	integrateCmd := &cobra.Command{
		Use:   "integrate [expr]",
		Short: "integrate f(x) over [a, b] with a Newton-Cotes rule",
		Args:  cobra.ExactArgs(1),
		RunE:  runIntegrate,
	}
	integrateCmd.Flags().StringVar(&method, "method", "simpson13", "rectangle|trapezoid|simpson13|simpson38")
	integrateCmd.Flags().Float64Var(&a, "a", 0, "lower limit")
	integrateCmd.Flags().Float64Var(&b, "b", 1, "upper limit")
	integrateCmd.Flags().IntVar(&nSub, "n", 100, "sub-intervals (composite)")
	integrateCmd.Flags().BoolVar(&simple, "simple", false, "single-panel rule instead of composite")
	integrateCmd.Flags().BoolVar(&saveRun, "save", false, "persist the run")

	odeCmd := &cobra.Command{
		Use:   "ode [expr]",
		Short: "integrate dy/dt = f(t, y)",
		Args:  cobra.ExactArgs(1),
		RunE:  runODE,
	}
	odeCmd.Flags().StringVar(&method, "method", "rk4", "euler|heun|rk2|rk4|rk45")
	odeCmd.Flags().Float64Var(&t0, "t0", 0, "initial time")
	odeCmd.Flags().Float64Var(&tf, "tf", 1, "final time")
	odeCmd.Flags().Float64Var(&y0, "y0", 1, "initial value")
	odeCmd.Flags().IntVar(&nSub, "n", config.DefaultODENodes, "nodes (fixed-step methods)")
	odeCmd.Flags().Float64Var(&odeTol, "tol", config.DefaultODETol, "local error tolerance (rk45)")
	odeCmd.Flags().Float64Var(&h0, "h0", 0, "initial step (rk45, 0 = auto)")
	odeCmd.Flags().Float64Var(&hMin, "hmin", config.DefaultODEHMin, "minimum step (rk45)")
	odeCmd.Flags().Float64Var(&hMax, "hmax", 0, "maximum step (rk45, 0 = auto)")
	odeCmd.Flags().IntVar(&maxSteps, "max-steps", 0, "step cap (rk45, 0 = auto)")
	odeCmd.Flags().BoolVar(&plot, "plot", false, "plot y(t)")
	odeCmd.Flags().BoolVar(&saveRun, "save", false, "persist the run")

	diffCmd := &cobra.Command{
		Use:   "diff [expr]",
		Short: "approximate a derivative of f(x)",
		Args:  cobra.ExactArgs(1),
		RunE:  runDiff,
	}
	diffCmd.Flags().StringVar(&method, "method", "central", "forward|backward|central|five_point")
	diffCmd.Flags().Float64Var(&xAt, "x", 0, "evaluation point")
	diffCmd.Flags().Float64Var(&step, "h", config.DefaultDiffStep, "step size")
	diffCmd.Flags().IntVar(&order, "order", 1, "derivative order")
	diffCmd.Flags().BoolVar(&richardson, "richardson", false, "apply Richardson extrapolation")
	diffCmd.Flags().BoolVar(&saveRun, "save", false, "persist the run")

	mcCmd := &cobra.Command{
		Use:   "mc [expr]",
		Short: "Monte Carlo integration in 1 or 2 dimensions",
		Args:  cobra.ExactArgs(1),
		RunE:  runMonteCarlo,
	}
	mcCmd.Flags().IntVar(&dims, "dim", 1, "dimensions (1 or 2)")
	mcCmd.Flags().IntVar(&samples, "samples", config.DefaultSamples, "sample count")
	mcCmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	mcCmd.Flags().Float64Var(&maxError, "max-error", config.DefaultMaxError, "confidence-level parameter in (0, 1)")
	mcCmd.Flags().Float64Var(&xMin, "xmin", 0, "x lower bound")
	mcCmd.Flags().Float64Var(&xMax, "xmax", 1, "x upper bound")
	mcCmd.Flags().Float64Var(&yMin, "ymin", 0, "y lower bound (2d)")
	mcCmd.Flags().Float64Var(&yMax, "ymax", 1, "y upper bound (2d)")
	mcCmd.Flags().BoolVar(&plot, "plot", false, "plot convergence")
	mcCmd.Flags().BoolVar(&saveRun, "save", false, "persist the run")

	interpCmd := &cobra.Command{
		Use:   "interp",
		Short: "Lagrange interpolation through given points",
		RunE:  runInterp,
	}
	interpCmd.Flags().StringVar(&pointsSpec, "points", "", "nodes as x:y,x:y,...")
	interpCmd.Flags().Float64Var(&evalAt, "at", 0, "evaluation point")

	checkCmd := &cobra.Command{
		Use:   "check [expr]",
		Short: "validate an expression without evaluating it",
		Args:  cobra.ExactArgs(1),
		RunE:  runCheck,
	}
	checkCmd.Flags().StringVar(&varNames, "vars", "x", "comma-separated variable names")

	liveCmd := &cobra.Command{
		Use:   "live [expr]",
		Short: "watch dy/dt = f(t, y) integrate step by step",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}
	liveCmd.Flags().Float64Var(&t0, "t0", 0, "initial time")
	liveCmd.Flags().Float64Var(&tf, "tf", 10, "final time")
	liveCmd.Flags().Float64Var(&y0, "y0", 1, "initial value")
	liveCmd.Flags().Float64Var(&step, "h", 0.01, "step size")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "show a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a saved run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a saved run's trace",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	rootCmd.AddCommand(solveCmd, integrateCmd, odeCmd, diffCmd, mcCmd,
		interpCmd, checkCmd, liveCmd, listCmd, showCmd, exportCmd, plotCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig applies config-file defaults to flags the user did not set.
func loadConfig(cmd *cobra.Command) error {
	if configFile == "" {
		return nil
	}
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	set := func(name string, apply func()) {
		if f := cmd.Flags().Lookup(name); f != nil && !f.Changed {
			apply()
		}
	}
	set("tol", func() { tol = cfg.Roots.Tolerance; odeTol = cfg.ODE.Tolerance })
	set("max-iter", func() { maxIter = cfg.Roots.MaxIter })
	set("n", func() {
		if cmd.Name() == "ode" {
			nSub = cfg.ODE.Nodes
		} else {
			nSub = cfg.Quadrature.Subdivisions
		}
	})
	set("h", func() { step = cfg.Diff.Step })
	set("hmin", func() { hMin = cfg.ODE.HMin })
	set("hmax", func() { hMax = cfg.ODE.HMax })
	set("samples", func() { samples = cfg.MonteCarlo.Samples })
	set("max-error", func() { maxError = cfg.MonteCarlo.MaxError })
	set("seed", func() {
		if cfg.MonteCarlo.Seed != 0 {
			seed = cfg.MonteCarlo.Seed
		}
	})
	return nil
}

func compile1(src string) (func(float64) (float64, error), error) {
	f, err := expr.Parse(src, "x")
	if err != nil {
		return nil, err
	}
	return f.Func1(), nil
}

func runRoot(cmd *cobra.Command, args []string) error {
	if err := loadConfig(cmd); err != nil {
		return err
	}
	f, err := compile1(args[0])
	if err != nil {
		return err
	}

	opts := roots.Options{Tol: tol, MaxIter: maxIter}
	var res *roots.Result
	switch method {
	case "bisect":
		res, err = roots.Bisect(f, a, b, opts)
	case "newton":
		var df roots.Func
		if derivIn != "" {
			df, err = compile1(derivIn)
			if err != nil {
				return fmt.Errorf("derivative: %w", err)
			}
		}
		res, err = roots.NewtonRaphson(f, df, x0, opts)
	case "secant":
		res, err = roots.Secant(f, x0, x1, opts)
	case "fixedpoint":
		res, err = roots.FixedPoint(roots.FixedPointForm(f, damping), x0, opts)
	case "aitken":
		res, err = roots.Aitken(roots.FixedPointForm(f, damping), x0, opts)
	default:
		return fmt.Errorf("unknown method: %s", method)
	}
	if err != nil {
		return err
	}

	status := tui.Good.Render("converged")
	if !res.Converged {
		status = tui.Warn.Render("did not converge within " + strconv.Itoa(maxIter) + " iterations")
	}
	fmt.Printf("%s  %s  %s\n\n", tui.Title.Render("f(x) = "+args[0]), tui.Subtle.Render(res.Method), status)
	fmt.Printf("  %s %s\n", tui.Label.Render("root       "), tui.Value.Render(fmt.Sprintf("%.10g", res.Root)))
	fmt.Printf("  %s %s\n", tui.Label.Render("f(root)    "), tui.Value.Render(fmt.Sprintf("%.3e", res.FuncValue)))
	fmt.Printf("  %s %s\n", tui.Label.Render("iterations "), tui.Value.Render(strconv.Itoa(res.Iterations)))
	fmt.Println()

	printIterations(res)

	if saveRun {
		trace := &storage.Trace{Columns: []string{"iter", "x", "f(x)", "err"}}
		for _, it := range res.Trace {
			trace.Rows = append(trace.Rows, []float64{float64(it.Index), it.X, it.FX, it.Err})
		}
		return persist("root", res.Method, args[0],
			map[string]float64{"tol": tol, "max_iter": float64(maxIter)},
			map[string]float64{"root": res.Root, "f_root": res.FuncValue, "iterations": float64(res.Iterations)},
			trace)
	}
	return nil
}

func printIterations(res *roots.Result) {
	if len(res.Trace) == 0 {
		return
	}
	rows := res.Trace
	if len(rows) > config.DefaultTraceRows {
		rows = rows[len(rows)-config.DefaultTraceRows:]
		fmt.Println(tui.Subtle.Render(fmt.Sprintf("  (last %d of %d iterations)", len(rows), len(res.Trace))))
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  ITER\tX\tF(X)\tERR")
	for _, it := range rows {
		fmt.Fprintf(w, "  %d\t%.10g\t%.3e\t%.3e\n", it.Index, it.X, it.FX, it.Err)
	}
	w.Flush()
}

func runIntegrate(cmd *cobra.Command, args []string) error {
	if err := loadConfig(cmd); err != nil {
		return err
	}
	f, err := compile1(args[0])
	if err != nil {
		return err
	}

	type rule struct {
		simple    func(quad.Func, float64, float64) (*quad.Result, error)
		composite func(quad.Func, float64, float64, int) (*quad.Result, error)
	}
	rules := map[string]rule{
		"rectangle": {quad.RectangleSimple, quad.Rectangle},
		"trapezoid": {quad.TrapezoidSimple, quad.Trapezoid},
		"simpson13": {quad.Simpson13Simple, quad.Simpson13},
		"simpson38": {quad.Simpson38Simple, quad.Simpson38},
	}
	r, ok := rules[method]
	if !ok {
		return fmt.Errorf("unknown method: %s", method)
	}

	var res *quad.Result
	if simple {
		res, err = r.simple(f, a, b)
	} else {
		res, err = r.composite(f, a, b, nSub)
	}
	if err != nil {
		return err
	}

	fmt.Printf("%s  %s\n\n", tui.Title.Render("∫ "+args[0]+" dx"), tui.Subtle.Render(res.Method))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  value\t%s\n", tui.Value.Render(fmt.Sprintf("%.10g", res.Value)))
	fmt.Fprintf(w, "  interval\t[%g, %g]\n", res.A, res.B)
	fmt.Fprintf(w, "  sub-intervals\t%d\n", res.N)
	fmt.Fprintf(w, "  step\t%g\n", res.H)
	fmt.Fprintf(w, "  evaluations\t%d\n", res.Evaluations)
	fmt.Fprintf(w, "  error order\t%s\n", res.ErrorOrder)
	w.Flush()

	if saveRun {
		trace := &storage.Trace{Columns: []string{"x", "f(x)"}}
		for _, node := range res.Nodes {
			trace.Rows = append(trace.Rows, []float64{node.X, node.F})
		}
		return persist("integral", res.Method, args[0],
			map[string]float64{"a": res.A, "b": res.B, "n": float64(res.N)},
			map[string]float64{"value": res.Value, "evaluations": float64(res.Evaluations)},
			trace)
	}
	return nil
}

func runODE(cmd *cobra.Command, args []string) error {
	if err := loadConfig(cmd); err != nil {
		return err
	}
	parsed, err := expr.Parse(args[0], "t", "y")
	if err != nil {
		return err
	}
	f := parsed.Func2()

	var res *ode.Result
	switch method {
	case "euler":
		res, err = ode.Euler(f, t0, tf, y0, nSub)
	case "heun":
		res, err = ode.Heun(f, t0, tf, y0, nSub)
	case "rk2":
		res, err = ode.RK2(f, t0, tf, y0, nSub)
	case "rk4":
		res, err = ode.RK4(f, t0, tf, y0, nSub)
	case "rk45":
		res, err = ode.RK45(f, t0, tf, y0, ode.AdaptiveOptions{
			Tol: odeTol, H0: h0, HMin: hMin, HMax: hMax, MaxSteps: maxSteps,
		})
	default:
		return fmt.Errorf("unknown method: %s", method)
	}
	if err != nil {
		return err
	}

	fmt.Printf("%s  %s\n\n", tui.Title.Render("dy/dt = "+args[0]), tui.Subtle.Render(res.Method))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  y(%g)\t%s\n", tf, tui.Value.Render(fmt.Sprintf("%.10g", res.Y[len(res.Y)-1])))
	fmt.Fprintf(w, "  span\t[%g, %g]\n", t0, tf)
	fmt.Fprintf(w, "  steps\t%d\n", res.Steps)
	if method == "rk45" {
		fmt.Fprintf(w, "  rejected\t%d\n", res.Rejected)
		fmt.Fprintf(w, "  last step\t%g\n", res.H)
		fmt.Fprintf(w, "  max err estimate\t%.3e\n", res.MaxErrEstimate)
	} else {
		fmt.Fprintf(w, "  step\t%g\n", res.H)
	}
	w.Flush()

	if plot && len(res.Y) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(res.Y,
			asciigraph.Height(config.DefaultPlotHeight),
			asciigraph.Width(72),
			asciigraph.Caption(fmt.Sprintf("y(t), t ∈ [%g, %g]", t0, tf))))
	}

	if saveRun {
		trace := &storage.Trace{Columns: []string{"t", "y"}}
		for i := range res.T {
			trace.Rows = append(trace.Rows, []float64{res.T[i], res.Y[i]})
		}
		return persist("ode", res.Method, args[0],
			map[string]float64{"t0": t0, "tf": tf, "y0": y0},
			map[string]float64{"y_final": res.Y[len(res.Y)-1], "steps": float64(res.Steps), "rejected": float64(res.Rejected)},
			trace)
	}
	return nil
}

func runDiff(cmd *cobra.Command, args []string) error {
	if err := loadConfig(cmd); err != nil {
		return err
	}
	f, err := compile1(args[0])
	if err != nil {
		return err
	}

	m := diff.Method(method)
	var res *diff.Result
	if richardson {
		res, err = diff.Richardson(m, f, xAt, step, order)
	} else {
		res, err = diff.Derivative(m, f, xAt, step, order)
	}
	if err != nil {
		return err
	}

	prime := strings.Repeat("'", res.Order)
	fmt.Printf("%s  %s\n\n", tui.Title.Render("f"+prime+"("+strconv.FormatFloat(xAt, 'g', -1, 64)+"), f(x) = "+args[0]),
		tui.Subtle.Render(string(res.Method)))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  value\t%s\n", tui.Value.Render(fmt.Sprintf("%.10g", res.Value)))
	fmt.Fprintf(w, "  step\t%g\n", res.Step)
	fmt.Fprintf(w, "  error order\t%s\n", res.ErrorOrder)
	if res.Richardson {
		fmt.Fprintf(w, "  richardson\tyes\n")
	}
	w.Flush()

	if saveRun {
		trace := &storage.Trace{Columns: []string{"x", "f(x)"}}
		for _, s := range res.Samples {
			trace.Rows = append(trace.Rows, []float64{s.X, s.F})
		}
		return persist("diff", string(res.Method), args[0],
			map[string]float64{"x": xAt, "h": step, "order": float64(order)},
			map[string]float64{"derivative": res.Value},
			trace)
	}
	return nil
}

func runMonteCarlo(cmd *cobra.Command, args []string) error {
	if err := loadConfig(cmd); err != nil {
		return err
	}
	vars := []string{"x"}
	if dims == 2 {
		vars = []string{"x", "y"}
	}
	parsed, err := expr.Parse(args[0], vars...)
	if err != nil {
		return err
	}

	res, err := montecarlo.Simulate(parsed.Eval, montecarlo.Params{
		Samples:    samples,
		Seed:       seed,
		MaxError:   maxError,
		Dimensions: dims,
		XRange:     [2]float64{xMin, xMax},
		YRange:     [2]float64{yMin, yMax},
	})
	if err != nil {
		return err
	}

	fmt.Printf("%s  %s\n\n", tui.Title.Render("∫ "+args[0]),
		tui.Subtle.Render(fmt.Sprintf("monte carlo, %dd, seed %d", dims, seed)))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  estimate\t%s\n", tui.Value.Render(fmt.Sprintf("%.10g", res.Estimate)))
	fmt.Fprintf(w, "  confidence interval\t[%.6g, %.6g]\n", res.CI[0], res.CI[1])
	fmt.Fprintf(w, "  z\t%.5f\n", res.Z)
	fmt.Fprintf(w, "  std dev\t%.6g\n", res.StdDev)
	fmt.Fprintf(w, "  std err\t%.6g\n", res.StdErr)
	fmt.Fprintf(w, "  samples\t%d included, %d excluded\n", res.Included, res.Excluded)
	w.Flush()

	if plot && len(res.Convergence) > 1 {
		estimates := make([]float64, len(res.Convergence))
		for i, tp := range res.Convergence {
			estimates[i] = tp.Estimate
		}
		fmt.Println()
		fmt.Println(asciigraph.Plot(estimates,
			asciigraph.Height(config.DefaultPlotHeight),
			asciigraph.Width(72),
			asciigraph.Caption("running estimate (log-spaced sample counts)")))
	}

	if saveRun {
		trace := &storage.Trace{Columns: []string{"n", "estimate"}}
		for _, tp := range res.Convergence {
			trace.Rows = append(trace.Rows, []float64{float64(tp.N), tp.Estimate})
		}
		return persist("montecarlo", "uniform", args[0],
			map[string]float64{"samples": float64(samples), "seed": float64(seed), "max_error": maxError},
			map[string]float64{"estimate": res.Estimate, "ci_lo": res.CI[0], "ci_hi": res.CI[1]},
			trace)
	}
	return nil
}

func runInterp(cmd *cobra.Command, args []string) error {
	points, err := parsePoints(pointsSpec)
	if err != nil {
		return err
	}
	poly, err := interp.Lagrange(points)
	if err != nil {
		return err
	}

	fmt.Printf("%s  %s\n\n", tui.Title.Render(fmt.Sprintf("P(%g)", evalAt)),
		tui.Subtle.Render(fmt.Sprintf("lagrange, degree %d", poly.Degree())))
	fmt.Printf("  %s %s\n\n", tui.Label.Render("value"), tui.Value.Render(fmt.Sprintf("%.10g", poly.Eval(evalAt))))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  NODE\tX\tY\tY·L(X)")
	for j, term := range poly.Terms(evalAt) {
		fmt.Fprintf(w, "  %d\t%g\t%g\t%.6g\n", j, points[j].X, points[j].Y, term)
	}
	return w.Flush()
}

func parsePoints(spec string) ([]interp.Point, error) {
	if spec == "" {
		return nil, fmt.Errorf("no points given; use --points x:y,x:y,...")
	}
	var points []interp.Point
	for _, pair := range strings.Split(spec, ",") {
		xy := strings.SplitN(pair, ":", 2)
		if len(xy) != 2 {
			return nil, fmt.Errorf("malformed point %q, want x:y", pair)
		}
		x, err := strconv.ParseFloat(strings.TrimSpace(xy[0]), 64)
		if err != nil {
			return nil, fmt.Errorf("bad abscissa in %q: %w", pair, err)
		}
		y, err := strconv.ParseFloat(strings.TrimSpace(xy[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("bad ordinate in %q: %w", pair, err)
		}
		points = append(points, interp.Point{X: x, Y: y})
	}
	return points, nil
}

func runCheck(cmd *cobra.Command, args []string) error {
	vars := strings.Split(varNames, ",")
	for i := range vars {
		vars[i] = strings.TrimSpace(vars[i])
	}
	ok, msg := expr.Validate(args[0], vars...)
	if !ok {
		fmt.Printf("%s %s\n", tui.Bad.Render("✗"), msg)
		return fmt.Errorf("invalid expression")
	}
	fmt.Printf("%s valid with variables %s\n", tui.Good.Render("✓"), strings.Join(vars, ", "))
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	parsed, err := expr.Parse(args[0], "t", "y")
	if err != nil {
		return err
	}
	if step <= 0 {
		return fmt.Errorf("step must be positive, got %g", step)
	}
	return tui.RunLive(args[0], parsed.Func2(), t0, tf, y0, step)
}

func persist(kind, method, expression string, params, results map[string]float64, trace *storage.Trace) error {
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(kind, method, expression, params, results, trace)
	if err != nil {
		return err
	}
	fmt.Printf("\nsaved run: %s\n", runID)
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tKIND\tMETHOD\tEXPRESSION\tTIME")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			run.ID, run.Kind, run.Method, run.Expression,
			run.Timestamp.Format("2006-01-02 15:04:05"))
	}
	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("%s  %s\n\n", tui.Title.Render(meta.Expression), tui.Subtle.Render(meta.Kind+", "+meta.Method))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for name, val := range meta.Params {
		fmt.Fprintf(w, "  param %s\t%g\n", name, val)
	}
	for name, val := range meta.Results {
		fmt.Fprintf(w, "  result %s\t%s\n", name, tui.Value.Render(fmt.Sprintf("%.10g", val)))
	}
	return w.Flush()
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	trace, err := st.LoadTrace(args[0])
	if err != nil {
		// metadata-only runs have no trace file
		trace = nil
	}
	return storage.ExportJSONStdout(meta, trace)
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	trace, err := st.LoadTrace(args[0])
	if err != nil {
		return fmt.Errorf("run has no trace: %w", err)
	}
	if len(trace.Rows) < 2 || len(trace.Columns) < 2 {
		return fmt.Errorf("trace too small to plot")
	}

	fmt.Printf("%s  %s\n\n", tui.Title.Render(meta.Expression), tui.Subtle.Render(meta.Kind+", "+meta.Method))
	col := len(trace.Columns) - 1
	// last column is the dependent quantity by convention
	if meta.Kind == "root" || meta.Kind == "diff" {
		col = 1
	}
	data := make([]float64, 0, len(trace.Rows))
	for _, row := range trace.Rows {
		if col < len(row) {
			data = append(data, row[col])
		}
	}
	fmt.Println(asciigraph.Plot(data,
		asciigraph.Height(config.DefaultPlotHeight),
		asciigraph.Width(72),
		asciigraph.Caption(trace.Columns[col])))
	return nil
}
