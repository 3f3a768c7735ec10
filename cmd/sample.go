/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"io/ioutil"
	"os"
	"time"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/implicitfields/igp/SamplingParameters"
	"github.com/implicitfields/igp/field"
	"github.com/implicitfields/igp/geometry2D"
	"github.com/implicitfields/igp/losssample"
	"github.com/implicitfields/igp/utils"
)

type SampleRun struct {
	ParamFile string
	OutFile   string
	Graph     bool
	Profile   bool
	Delay     time.Duration
}

// SampleCmd represents the sample command
var SampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Sample a point cloud from an implicit field and write it with weights",
	Long: `Reads a YAML parameters file describing the field, the deformation and
the sampling domain, produces the point batch and importance weights, and
writes them one point per line.`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			err error
		)
		sr := &SampleRun{}
		if sr.ParamFile, err = cmd.Flags().GetString("paramFile"); err != nil {
			panic(err)
		}
		if sr.OutFile, err = cmd.Flags().GetString("outFile"); err != nil {
			panic(err)
		}
		sr.Graph, _ = cmd.Flags().GetBool("graph")
		sr.Profile, _ = cmd.Flags().GetBool("profile")
		dr, _ := cmd.Flags().GetInt("delay")
		sr.Delay = time.Duration(dr) * time.Millisecond
		sp := processInput(sr)
		RunSample(sr, sp)
	},
}

func processInput(sr *SampleRun) (sp *SamplingParameters.SamplingParameters) {
	var (
		err error
	)
	if len(sr.ParamFile) == 0 {
		err := fmt.Errorf("must supply a parameters file (-I, --paramFile) in YAML format")
		fmt.Printf("error: %s\n", err.Error())
		exampleFile := `
########################################
Title: "Sphere Surface"
NPoints: 1024
Dim: 3
Field: sphere
FieldParams:
  Radius: 1.0
Deform: radial
DeformParams:
  Amp: 0.1
UseSurfPoints: true
InvertSampling: true
ReturnWeight: true
Seed: 42
########################################
`
		fmt.Printf("Example File:%s\n", exampleFile)
		os.Exit(1)
	}
	var data []byte
	if data, err = ioutil.ReadFile(sr.ParamFile); err != nil {
		panic(err)
	}
	sp = &SamplingParameters.SamplingParameters{}
	if err = sp.Parse(data); err != nil {
		panic(err)
	}
	return
}

func init() {
	rootCmd.AddCommand(SampleCmd)
	SampleCmd.Flags().StringP("paramFile", "I", "", "YAML file for sampling parameters")
	SampleCmd.Flags().StringP("outFile", "o", "samples.txt", "output file, one point (and weight) per line")
	SampleCmd.Flags().BoolP("graph", "g", false, "display a scatter plot of 2D samples")
	SampleCmd.Flags().BoolP("profile", "p", false, "write a CPU profile for the run")
	SampleCmd.Flags().IntP("delay", "d", 0, "milliseconds to keep the plot up")
}

func RunSample(sr *SampleRun, sp *SamplingParameters.SamplingParameters) {
	if sr.Profile {
		defer profile.Start(profile.CPUProfile).Stop()
	}
	sp.Print()

	c := losssample.Collaborators{
		Differ: field.NewAnalyticDiffer(),
	}
	f := buildField(sp)
	c.Net = f
	c.Gtr = f
	if d := buildDeform(sp); d != nil {
		c.Deform = d
	}
	req := losssample.Request{
		NPoints:      sp.NPoints,
		Dim:          sp.Dim,
		Domain:       losssample.DomainFor(sp.UseSurfPoints, sp.InvertSampling),
		ReturnWeight: sp.ReturnWeight,
		UseRejection: sp.UseRejection,
		DetachWeight: true,
		Seed:         sp.Seed,
	}
	x, w, err := losssample.Sample(req, c)
	if err != nil {
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}
	if err = writeSamples(sr.OutFile, x, w); err != nil {
		panic(err)
	}
	fmt.Printf("wrote %d points to %s\n", sp.NPoints, sr.OutFile)

	if sp.Dim == 2 {
		tm := geometry2D.Delaunay(geometry2D.FromMatrix(x))
		fmt.Printf("sampled band: %d triangles, est. area %8.5f\n",
			len(tm.Triangles), tm.TotalArea())
		if sr.Graph {
			sc := utils.NewScatterChart(1024, 1024, -1.1, 1.1, -1.1, 1.1)
			sc.AddPoints("samples", x, 1, sr.Delay)
		}
	}
}

func buildField(sp *SamplingParameters.SamplingParameters) field.ScalarField {
	p := sp.FieldParams
	switch sp.Field {
	case "sphere", "":
		r := p["Radius"]
		if r == 0 {
			r = 1
		}
		return field.Sphere{R: r}
	case "plane":
		n := make([]float64, sp.Dim)
		n[sp.Dim-1] = 1
		return field.Plane{N: n, Offset: p["Offset"]}
	case "torus":
		return field.Torus{RMaj: p["RMaj"], RMin: p["RMin"]}
	}
	panic(fmt.Errorf("unknown field %q", sp.Field))
}

func buildDeform(sp *SamplingParameters.SamplingParameters) field.Deformation {
	p := sp.DeformParams
	switch sp.Deform {
	case "", "none":
		return nil
	case "identity":
		return field.IdentityDeform{}
	case "radial":
		return field.RadialDeform{Amp: p["Amp"]}
	case "affine":
		// Diagonal scaling read per axis: Scale0..ScaleN
		a := make([]float64, sp.Dim*sp.Dim)
		b := make([]float64, sp.Dim)
		for i := 0; i < sp.Dim; i++ {
			s := p[fmt.Sprintf("Scale%d", i)]
			if s == 0 {
				s = 1
			}
			a[i*sp.Dim+i] = s
		}
		return field.NewAffineDeform(sp.Dim, a, b)
	}
	panic(fmt.Errorf("unknown deformation %q", sp.Deform))
}

func writeSamples(path string, x utils.Matrix, w utils.Vector) (err error) {
	var (
		fh     *os.File
		nr, nc = x.Dims()
	)
	if fh, err = os.Create(path); err != nil {
		return
	}
	defer fh.Close()
	for i := 0; i < nr; i++ {
		for j := 0; j < nc; j++ {
			if _, err = fmt.Fprintf(fh, "%15.8e ", x.At(i, j)); err != nil {
				return
			}
		}
		if w.V != nil {
			if _, err = fmt.Fprintf(fh, "%15.8e", w.At(i)); err != nil {
				return
			}
		}
		if _, err = fmt.Fprintln(fh); err != nil {
			return
		}
	}
	return
}
