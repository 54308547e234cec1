package cmd

import (
	"context"
	"io/ioutil"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/gomacflow/model_problems/NavierStokes2D"
)

var fileInput = []byte(`
Title: Test Case
Lx: 0.6
Ly: 0.4
Dell: 0.1
DelT: 0.001
FinalTime: 0.003
Rho: 1.
Mu: 1.82e-5
V0: 1.
Inlet: [[1, 2]]
Eps: 1.e-6
MaxIterations: 500
`)

func TestRun2D(t *testing.T) {
	dir := t.TempDir()
	icFile := filepath.Join(dir, "input.yaml")
	require.NoError(t, ioutil.WriteFile(icFile, fileInput, 0644))

	_, err := processInput("")
	assert.Error(t, err)
	_, err = processInput(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	ip, err := processInput(icFile)
	require.NoError(t, err)
	assert.Equal(t, "Test Case", ip.Title)
	assert.Equal(t, 0.003, ip.FinalTime)
	// Values not in the file come from the default room
	assert.Equal(t, 1.7, ip.Omega)
	ip.Print()

	m2d := &Model2D{
		ICFile:     icFile,
		OutputFile: filepath.Join(dir, "out.yaml"),
		PlotSteps:  1,
		Verbose:    false,
	}
	require.NoError(t, Run2D(m2d, ip))
	data, err := ioutil.ReadFile(m2d.OutputFile)
	require.NoError(t, err)
	snap, err := NavierStokes2D.ReadSnapshot(data)
	require.NoError(t, err)
	assert.Equal(t, 3, snap.Step)
	assert.InDelta(t, 0.003, snap.Time, 1e-12)
	assert.Equal(t, 8, len(snap.Ux))
	assert.Equal(t, 1., snap.Ux[1][2])
}

func TestRunServe(t *testing.T) {
	ip, err := processInput(writeInput(t))
	require.NoError(t, err)
	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()
	ms := &ModelServe{Addr: "127.0.0.1:0", FrameSteps: 2}
	assert.NoError(t, RunServe(ctx, ms, ip))
}

func TestRunServeInterrupted(t *testing.T) {
	ip, err := processInput(writeInput(t))
	require.NoError(t, err)
	ip.FinalTime = 10
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(200 * time.Millisecond)
		cancel()
	}()
	ms := &ModelServe{Addr: "127.0.0.1:0", FrameSteps: 1, Delay: 10 * time.Millisecond}
	start := time.Now()
	// An interrupt during the solve is a normal stop
	assert.NoError(t, RunServe(ctx, ms, ip))
	assert.Less(t, time.Since(start), 5*time.Second)
}

func writeInput(t *testing.T) (icFile string) {
	icFile = filepath.Join(t.TempDir(), "input.yaml")
	require.NoError(t, ioutil.WriteFile(icFile, fileInput, 0644))
	return
}
