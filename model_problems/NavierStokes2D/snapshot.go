package NavierStokes2D

import (
	"fmt"
	"io"
	"math"

	"github.com/ghodss/yaml"

	"github.com/notargets/gomacflow/utils"
)

// Snapshot is a self contained copy of the solution at one instant, suitable
// for YAML output and for streaming as JSON.
type Snapshot struct {
	Step  int         `json:"Step"`
	Time  float64     `json:"Time"`
	DelX  float64     `json:"DelX"`
	DelY  float64     `json:"DelY"`
	Ux    [][]float64 `json:"Ux"`
	Uy    [][]float64 `json:"Uy"`
	P     [][]float64 `json:"P"`
	Div   [][]float64 `json:"Div"`
	Speed [][]float64 `json:"Speed,omitempty"`
}

func (ns *NavierStokes) Snapshot() (s *Snapshot) {
	s = &Snapshot{
		Step:  ns.steps,
		Time:  ns.Time(),
		DelX:  ns.cfg.DelX,
		DelY:  ns.cfg.DelY,
		Ux:    ns.Grid.Ux.Rows(),
		Uy:    ns.Grid.Uy.Rows(),
		P:     ns.Grid.P.Rows(),
		Div:   ns.Grid.Div.Rows(),
		Speed: ns.Speed().Rows(),
	}
	return
}

// Speed is |u| sampled on the (Nx+1) x (Ny+1) lattice where Ux and Uy share
// indices, the lattice used for quiver style plots.
func (ns *NavierStokes) Speed() (S utils.Matrix) {
	var (
		nr, _  = ns.Grid.Uy.Dims()
		_, nc  = ns.Grid.Ux.Dims()
		ux, uy = ns.Grid.Ux, ns.Grid.Uy
	)
	S = utils.NewMatrix(nr, nc)
	for x := 0; x < nr; x++ {
		for y := 0; y < nc; y++ {
			S.Set(x, y, math.Hypot(ux.At(x, y), uy.At(x, y)))
		}
	}
	return
}

func (s *Snapshot) WriteYAML(w io.Writer) (err error) {
	var data []byte
	if data, err = yaml.Marshal(s); err != nil {
		return
	}
	_, err = w.Write(data)
	return
}

func ReadSnapshot(data []byte) (s *Snapshot, err error) {
	s = &Snapshot{}
	if err = yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("unable to parse snapshot: %w", err)
	}
	return
}
