package cmd

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/implicitfields/igp/SamplingParameters"
)

func TestProcessAndRun(t *testing.T) {
	var (
		dir = t.TempDir()
		out = filepath.Join(dir, "samples.txt")
	)
	paramYAML := `
Title: "Test Sphere"
NPoints: 32
Dim: 3
Field: sphere
FieldParams:
  Radius: 0.8
UseSurfPoints: true
ReturnWeight: true
Seed: 7
`
	paramFile := filepath.Join(dir, "params.yaml")
	require.NoError(t, ioutil.WriteFile(paramFile, []byte(paramYAML), 0644))

	sp := &SamplingParameters.SamplingParameters{}
	require.NoError(t, sp.Parse([]byte(paramYAML)))
	assert.Equal(t, 32, sp.NPoints)
	assert.Equal(t, "sphere", sp.Field)
	assert.Equal(t, 0.8, sp.FieldParams["Radius"])

	sr := &SampleRun{ParamFile: paramFile, OutFile: out}
	RunSample(sr, sp)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	assert.Equal(t, 32, len(lines))
	// Three coordinates plus the weight column
	assert.Equal(t, 4, len(strings.Fields(lines[0])))
}

func TestBuildField(t *testing.T) {
	sp := &SamplingParameters.SamplingParameters{Field: "torus", Dim: 3,
		FieldParams: map[string]float64{"RMaj": 0.5, "RMin": 0.2}}
	f := buildField(sp)
	assert.NotNil(t, f)

	sp.Field = "nosuch"
	assert.Panics(t, func() { buildField(sp) })
}
