package InputParameters

import (
	"fmt"
	"sort"

	"github.com/ghodss/yaml"

	"github.com/notargets/gomacflow/model_problems/NavierStokes2D"
	"github.com/notargets/gomacflow/types"
	"github.com/notargets/gomacflow/utils"
)

// Parameters obtained from the YAML input file
type InputParametersNS2D struct {
	Title          string              `json:"Title"`
	Lx             float64             `json:"Lx"` // Room size
	Ly             float64             `json:"Ly"`
	Dell           float64             `json:"Dell"` // Cell size in both directions, overridden by DelX/DelY
	DelX           float64             `json:"DelX"`
	DelY           float64             `json:"DelY"`
	Rho            float64             `json:"Rho"`
	Mu             float64             `json:"Mu"`
	DelT           float64             `json:"DelT"`
	FinalTime      float64             `json:"FinalTime"`
	Inlet          [][2]int            `json:"Inlet"`
	BCs            map[string][][2]int `json:"BCs"` // Key is BC name, only inflow types carry samples
	V0             float64             `json:"V0"`
	Eps            float64             `json:"Eps"`
	Omega          float64             `json:"Omega"`
	MaxIterations  int                 `json:"MaxIterations"`
	ParallelDegree int                 `json:"ParallelDegree"`
	Gravity        float64             `json:"Gravity"`
	bcFlags        map[string]types.BCFLAG
}

// NewInputParametersNS2D returns parameters preloaded with the default room,
// so an input file only needs to name what it changes. The fan position is
// not defaulted.
func NewInputParametersNS2D() (ip *InputParametersNS2D) {
	def := NavierStokes2D.DefaultConfig()
	Lx, Ly := def.Domain()
	ip = &InputParametersNS2D{
		Title:         "Room Flow",
		Lx:            Lx,
		Ly:            Ly,
		Dell:          def.DelX,
		Rho:           def.Rho,
		Mu:            def.Mu,
		DelT:          def.DelT,
		FinalTime:     def.FinalTime,
		V0:            def.V0,
		Eps:           def.Eps,
		Omega:         def.Omega,
		MaxIterations: def.MaxIterations,
	}
	return
}

func (ip *InputParametersNS2D) Parse(data []byte) (err error) {
	if err = yaml.Unmarshal(data, ip); err != nil {
		return
	}
	ip.bcFlags = make(map[string]types.BCFLAG, len(ip.BCs))
	for name, samples := range ip.BCs {
		var bc types.BCFLAG
		if bc, err = types.NewBCFLAG(name); err != nil {
			return
		}
		if bc != types.BC_In && len(samples) != 0 {
			return fmt.Errorf("boundary condition \"%s\" (%s) is implied by the grid and takes no samples", name, bc)
		}
		ip.bcFlags[name] = bc
	}
	return
}

// Inlets merges the Inlet list with every inflow entry under BCs, in sorted
// key order.
func (ip *InputParametersNS2D) Inlets() (inlet [][2]int) {
	inlet = append(inlet, ip.Inlet...)
	for _, key := range ip.bcKeys() {
		if bc, ok := ip.bcFlags[key]; ok && bc == types.BC_In {
			inlet = append(inlet, ip.BCs[key]...)
		}
	}
	return
}

func (ip *InputParametersNS2D) bcKeys() (keys []string) {
	keys = make([]string, 0, len(ip.BCs))
	for k := range ip.BCs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return
}

func (ip *InputParametersNS2D) Spacing() (delx, dely float64) {
	delx, dely = ip.Dell, ip.Dell
	if ip.DelX != 0 {
		delx = ip.DelX
	}
	if ip.DelY != 0 {
		dely = ip.DelY
	}
	return
}

// GridCounts converts the room size into cell counts, rounding halves up.
func (ip *InputParametersNS2D) GridCounts() (nx, ny int, err error) {
	delx, dely := ip.Spacing()
	if !(delx > 0) || !(dely > 0) {
		err = fmt.Errorf("%w: cell size must be positive, have DelX = %v, DelY = %v",
			NavierStokes2D.ErrInvalidConfig, delx, dely)
		return
	}
	nx, ny = utils.RoundHalfUp(ip.Lx/delx), utils.RoundHalfUp(ip.Ly/dely)
	return
}

func (ip *InputParametersNS2D) ToConfig() (cfg NavierStokes2D.Config, err error) {
	var nx, ny int
	if nx, ny, err = ip.GridCounts(); err != nil {
		return
	}
	delx, dely := ip.Spacing()
	cfg = NavierStokes2D.Config{
		Nx:             nx,
		Ny:             ny,
		DelX:           delx,
		DelY:           dely,
		DelT:           ip.DelT,
		Rho:            ip.Rho,
		Mu:             ip.Mu,
		Inlet:          ip.Inlets(),
		V0:             ip.V0,
		Eps:            ip.Eps,
		Omega:          ip.Omega,
		MaxIterations:  ip.MaxIterations,
		FinalTime:      ip.FinalTime,
		Gravity:        ip.Gravity,
		ParallelDegree: ip.ParallelDegree,
	}
	err = cfg.Validate()
	return
}

func (ip *InputParametersNS2D) Print() {
	delx, dely := ip.Spacing()
	fmt.Printf("\"%s\"\t\t= Title\n", ip.Title)
	fmt.Printf("%8.5f x %8.5f\t= Room Size\n", ip.Lx, ip.Ly)
	fmt.Printf("%8.5f x %8.5f\t= Cell Size\n", delx, dely)
	fmt.Printf("%8.5f\t\t= DelT\n", ip.DelT)
	fmt.Printf("%8.5f\t\t= FinalTime\n", ip.FinalTime)
	fmt.Printf("%8.5f\t\t= Rho\n", ip.Rho)
	fmt.Printf("%10.3e\t\t= Mu\n", ip.Mu)
	fmt.Printf("%8.5f\t\t= V0\n", ip.V0)
	fmt.Printf("%v\t= Inlet\n", ip.Inlet)
	fmt.Printf("[%8.2e, %5.3f, %d]\t= SOR Eps, Omega, MaxIterations\n", ip.Eps, ip.Omega, ip.MaxIterations)
	if ip.Gravity != 0 {
		fmt.Printf("%8.5f\t\t= Gravity\n", ip.Gravity)
	}
	for _, key := range ip.bcKeys() {
		fmt.Printf("BCs[%s] = %v\n", key, ip.BCs[key])
	}
}
