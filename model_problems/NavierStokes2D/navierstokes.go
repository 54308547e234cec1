package NavierStokes2D

import (
	"fmt"
	"io"
	"math"
	"os"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/notargets/gomacflow/utils"
)

/*
	Incompressible viscous flow in a closed 2D room, projection method on a
	staggered grid. One time step is the fixed stage sequence:

		EnforceBoundary -> AdvectX -> AdvectY -> Diffuse ->
		ComputeDivergence -> SOR -> Correct -> EnforceBoundary

	AdvectY consumes the Ux produced by AdvectX in the same step (first order
	operator splitting). Pressure is carried between steps as the initial guess
	of the next SOR solve.
*/

// Config is the immutable description of a run.
type Config struct {
	Nx, Ny         int     // Cells in x and y
	DelX, DelY     float64 // Cell size
	DelT           float64 // Time step
	Rho, Mu        float64 // Density and dynamic viscosity
	Inlet          [][2]int
	V0             float64 // Inlet (fan) speed
	Eps, Omega     float64 // SOR tolerance and relaxation factor
	MaxIterations  int     // SOR sweep cap per step
	FinalTime      float64
	Gravity        float64 // Acceleration added to Uy each step, 0 disables
	ParallelDegree int     // Goroutines for advection/diffusion sweeps, <= 1 is sequential
}

// DefaultConfig is a 4.2m x 2.4m room with a two cell fan in the left wall.
func DefaultConfig() Config {
	return Config{
		Nx:            42,
		Ny:            24,
		DelX:          0.1,
		DelY:          0.1,
		DelT:          0.01,
		Rho:           1.2,
		Mu:            1.82e-5,
		Inlet:         [][2]int{{1, 3}, {1, 4}},
		V0:            5.0,
		Eps:           1e-8,
		Omega:         1.7,
		MaxIterations: 10000,
		FinalTime:     0.5,
	}
}

func (c Config) Validate() (err error) {
	switch {
	case c.Nx < minCells || c.Ny < minCells:
		err = fmt.Errorf("grid must have at least %d cells per side, have %d x %d", minCells, c.Nx, c.Ny)
	case !(c.DelX > 0) || !(c.DelY > 0):
		err = fmt.Errorf("cell size must be positive, have DelX = %v, DelY = %v", c.DelX, c.DelY)
	case !(c.DelT > 0):
		err = fmt.Errorf("time step must be positive, have %v", c.DelT)
	case !(c.Rho > 0):
		err = fmt.Errorf("density must be positive, have %v", c.Rho)
	case c.Mu < 0 || math.IsNaN(c.Mu):
		err = fmt.Errorf("viscosity must be non-negative, have %v", c.Mu)
	case !(c.Eps > 0):
		err = fmt.Errorf("SOR tolerance must be positive, have %v", c.Eps)
	case !(c.Omega > 0 && c.Omega < 2):
		err = fmt.Errorf("SOR relaxation factor must be in (0, 2), have %v", c.Omega)
	case c.MaxIterations < 1:
		err = fmt.Errorf("SOR iteration cap must be at least 1, have %d", c.MaxIterations)
	case c.FinalTime < 0 || math.IsNaN(c.FinalTime):
		err = fmt.Errorf("final time must be non-negative, have %v", c.FinalTime)
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	_, err = NewBoundaryEnforcer(c.Nx, c.Ny, c.Inlet, c.V0)
	return
}

func (c Config) Domain() (Lx, Ly float64) {
	return float64(c.Nx) * c.DelX, float64(c.Ny) * c.DelY
}

func (c Config) DiffusionNumber() float64 {
	return DiffusionNumber(c.DelT, c.DelX, c.DelY, c.Mu, c.Rho)
}

type StepReport struct {
	Step            int
	Time            float64
	SOR             SORResult
	MaxDivergence   float64 // max |div u| over interior pressure cells after correction
	PoissonResidual float64 // max |Laplacian(P) - Div| after the SOR solve
}

type NavierStokes struct {
	cfg        Config
	Grid       *GridState
	Boundary   *BoundaryEnforcer
	Advection  *AdvectionSolver
	Diffusion  *DiffusionSolver
	Pressure   *PressureSolver
	Poisson    *PoissonOperator
	Projection *ProjectionCorrector
	Logger     log.FieldLogger
	Out        io.Writer // Progress table destination
	steps      int
}

func NewNavierStokes(cfg Config) (ns *NavierStokes, err error) {
	if err = cfg.Validate(); err != nil {
		return
	}
	cfg.Inlet = append([][2]int(nil), cfg.Inlet...)
	ns = &NavierStokes{
		cfg:    cfg,
		Logger: log.StandardLogger(),
		Out:    os.Stdout,
	}
	if ns.Grid, err = NewGridState(cfg.Nx, cfg.Ny); err != nil {
		return nil, err
	}
	if ns.Boundary, err = NewBoundaryEnforcer(cfg.Nx, cfg.Ny, cfg.Inlet, cfg.V0); err != nil {
		return nil, err
	}
	ns.Advection = NewAdvectionSolver(cfg.Nx, cfg.Ny, cfg.DelT, cfg.DelX, cfg.DelY, cfg.ParallelDegree)
	ns.Diffusion = NewDiffusionSolver(cfg.Nx, cfg.Ny, cfg.DelT, cfg.DelX, cfg.DelY, cfg.Mu, cfg.Rho, cfg.ParallelDegree)
	ns.Pressure = NewPressureSolver(cfg.DelT, cfg.DelX, cfg.DelY, cfg.Eps, cfg.Omega, cfg.MaxIterations)
	nxp, nyp := ns.Grid.P.Dims()
	ns.Poisson = NewPoissonOperator(nxp, nyp, cfg.DelX, cfg.DelY)
	ns.Projection = NewProjectionCorrector(cfg.DelT, cfg.DelX, cfg.DelY)
	ns.Reset()
	return
}

func (ns *NavierStokes) Config() Config {
	cfg := ns.cfg
	cfg.Inlet = append([][2]int(nil), ns.cfg.Inlet...)
	return cfg
}

// Reset zeroes every field, applies the inlet and rewinds time.
func (ns *NavierStokes) Reset() {
	ns.Grid.Zero()
	ns.Boundary.Enforce(ns.Grid.Ux, ns.Grid.Uy)
	ns.steps = 0
}

// Step advances the fields by one time step in place. Non-finite values are
// not trapped here.
func (ns *NavierStokes) Step() (rep StepReport) {
	var (
		g = ns.Grid
	)
	g.CheckShapes()
	ns.Boundary.ApplyBodyForce(g.Uy, ns.cfg.Gravity, ns.cfg.DelT)
	ns.Boundary.Enforce(g.Ux, g.Uy)

	ux := ns.Advection.AdvectX(g.Ux, g.Uy)
	uy := ns.Advection.AdvectY(ux, g.Uy)
	ux, uy = ns.Diffusion.Diffuse(ux, uy)
	g.Ux.CopyFrom(ux)
	g.Uy.CopyFrom(uy)

	rep.SOR = ns.Pressure.Solve(g.Ux, g.Uy, g.Div, g.P)
	rep.PoissonResidual = ns.Poisson.Residual(g.P, g.Div)

	ns.Projection.Correct(g.Ux, g.Uy, g.P)
	ns.Boundary.Enforce(g.Ux, g.Uy)

	ns.steps++
	rep.Step = ns.steps
	rep.Time = ns.Time()
	rep.MaxDivergence = ns.MaxDivergence()
	if !rep.SOR.Converged {
		ns.Logger.WithFields(log.Fields{
			"step":       rep.Step,
			"time":       rep.Time,
			"iterations": rep.SOR.Iterations,
			"error":      rep.SOR.Error,
			"eps":        ns.cfg.Eps,
		}).Warn("pressure solve reached the iteration cap before converging")
	}
	return
}

type SolveMeta struct {
	Verbose          bool
	StepsBeforePrint int
	OnStep           func(rep StepReport) error // Called after every step; an error stops the run
}

// Solve steps until FinalTime. It stops early with ErrNonFinite when the
// fields blow up, or with the error returned by OnStep.
func (ns *NavierStokes) Solve(sm *SolveMeta) (err error) {
	var (
		finished bool
		rep      StepReport
		elapsed  time.Duration
	)
	if sm == nil {
		sm = &SolveMeta{}
	}
	if sm.StepsBeforePrint < 1 {
		sm.StepsBeforePrint = 1
	}
	if sm.Verbose {
		ns.PrintInitialization()
	}
	ns.Logger.WithFields(log.Fields{
		"nx":        ns.cfg.Nx,
		"ny":        ns.cfg.Ny,
		"delt":      ns.cfg.DelT,
		"finalTime": ns.cfg.FinalTime,
	}).Info("starting incompressible flow solve")
	finished = ns.CheckIfFinished()
	for !finished {
		start := time.Now()
		rep = ns.Step()
		elapsed += time.Since(start)
		finished = ns.CheckIfFinished()
		if sm.Verbose && (finished || rep.Step%sm.StepsBeforePrint == 0 || rep.Step == 1) {
			ns.PrintUpdate(rep)
		}
		if !utils.IsFinite([]utils.Matrix{ns.Grid.Ux, ns.Grid.Uy, ns.Grid.P}) {
			ns.Logger.WithFields(log.Fields{
				"step": rep.Step,
				"time": rep.Time,
			}).Error("velocity or pressure field is no longer finite")
			return fmt.Errorf("%w: step %d, time %8.5f", ErrNonFinite, rep.Step, rep.Time)
		}
		if sm.OnStep != nil {
			if err = sm.OnStep(rep); err != nil {
				return
			}
		}
	}
	if sm.Verbose {
		ns.PrintFinal(elapsed)
	}
	ns.Logger.WithFields(log.Fields{
		"steps": ns.steps,
		"time":  ns.Time(),
	}).Info("finished incompressible flow solve")
	return
}

func (ns *NavierStokes) CheckIfFinished() (finished bool) {
	// Compare in step counts to avoid accumulated round off in the elapsed time
	return float64(ns.steps) >= ns.cfg.FinalTime/ns.cfg.DelT-1e-9
}

func (ns *NavierStokes) Time() float64 { return float64(ns.steps) * ns.cfg.DelT }
func (ns *NavierStokes) Steps() int    { return ns.steps }

// Ux, Uy, P and Div return read only copies of the current fields.
func (ns *NavierStokes) Ux() utils.Matrix  { return readOnlyCopy(ns.Grid.Ux, "Ux") }
func (ns *NavierStokes) Uy() utils.Matrix  { return readOnlyCopy(ns.Grid.Uy, "Uy") }
func (ns *NavierStokes) P() utils.Matrix   { return readOnlyCopy(ns.Grid.P, "P") }
func (ns *NavierStokes) Div() utils.Matrix { return readOnlyCopy(ns.Grid.Div, "Div") }

func readOnlyCopy(m utils.Matrix, name string) (R utils.Matrix) {
	R = m.Copy()
	R.SetReadOnly(name)
	return
}

// MaxDivergence is max |div u| of the current velocity over the interior
// pressure cells, the cells whose four faces are all corrected by the
// projection.
func (ns *NavierStokes) MaxDivergence() (maxDiv float64) {
	var (
		g      = ns.Grid
		D      = utils.NewMatrix(g.Div.Dims())
		nr, nc = D.Dims()
	)
	ns.Pressure.ComputeDivergence(g.Ux, g.Uy, D)
	for x := 1; x < nr-1; x++ {
		for y := 1; y < nc-1; y++ {
			maxDiv = math.Max(maxDiv, math.Abs(D.DataP[x*nc+y]*ns.cfg.DelT))
		}
	}
	return
}

func (ns *NavierStokes) PrintInitialization() {
	Lx, Ly := ns.cfg.Domain()
	fmt.Fprintf(ns.Out, "Incompressible Navier-Stokes in 2 Dimensions, projection method on a staggered grid\n")
	fmt.Fprintf(ns.Out, "Room %8.4f x %8.4f, cells %d x %d, dx = %8.5f, dy = %8.5f\n",
		Lx, Ly, ns.cfg.Nx, ns.cfg.Ny, ns.cfg.DelX, ns.cfg.DelY)
	fmt.Fprintf(ns.Out, "rho = %8.5f, mu = %10.3e, inlet speed = %8.4f at %v\n",
		ns.cfg.Rho, ns.cfg.Mu, ns.cfg.V0, ns.cfg.Inlet)
	fmt.Fprintf(ns.Out, "SOR eps = %8.2e, omega = %5.3f, max iterations = %d\n",
		ns.cfg.Eps, ns.cfg.Omega, ns.cfg.MaxIterations)
	fmt.Fprintf(ns.Out, "Solving until finaltime = %8.5f\n", ns.cfg.FinalTime)
	fmt.Fprintf(ns.Out, "    iter    time   SOR-it     SOR-err    Residual     max|div|\n")
}

func (ns *NavierStokes) PrintUpdate(rep StepReport) {
	format := "%12.4e"
	fmt.Fprintf(ns.Out, "%8d%8.4f%9d", rep.Step, rep.Time, rep.SOR.Iterations)
	fmt.Fprintf(ns.Out, format, rep.SOR.Error)
	fmt.Fprintf(ns.Out, format, rep.PoissonResidual)
	fmt.Fprintf(ns.Out, format, rep.MaxDivergence)
	fmt.Fprintf(ns.Out, "\n")
}

func (ns *NavierStokes) PrintFinal(elapsed time.Duration) {
	var (
		cells = ns.cfg.Nx * ns.cfg.Ny
		steps = ns.steps
	)
	if steps == 0 {
		return
	}
	rate := float64(elapsed.Microseconds()) / float64(cells*steps)
	fmt.Fprintf(ns.Out, "\nRate of execution = %8.5f us/(cell*iteration) over %d iterations\n", rate, steps)
	fmt.Fprintf(ns.Out, "%s\n", utils.GetMemUsage())
}
