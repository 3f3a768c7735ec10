package SamplingParameters

import (
	"fmt"

	"github.com/ghodss/yaml"
)

// Parameters obtained from the YAML input file
type SamplingParameters struct {
	Title          string             `yaml:"Title"`
	NPoints        int                `yaml:"NPoints"`
	Dim            int                `yaml:"Dim"`
	Field          string             `yaml:"Field"`  // sphere, plane, torus
	Deform         string             `yaml:"Deform"` // none, identity, affine, radial
	FieldParams    map[string]float64 `yaml:"FieldParams"`
	DeformParams   map[string]float64 `yaml:"DeformParams"`
	UseSurfPoints  bool               `yaml:"UseSurfPoints"`
	InvertSampling bool               `yaml:"InvertSampling"`
	UseRejection   bool               `yaml:"UseRejection"`
	ReturnWeight   bool               `yaml:"ReturnWeight"`
	Seed           uint64             `yaml:"Seed"`
}

func (sp *SamplingParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, sp)
}

func (sp *SamplingParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", sp.Title)
	fmt.Printf("[%d]\t\t\t= NPoints\n", sp.NPoints)
	fmt.Printf("[%d]\t\t\t= Dim\n", sp.Dim)
	fmt.Printf("[%s]\t\t= Field\n", sp.Field)
	fmt.Printf("[%s]\t\t= Deform\n", sp.Deform)
	fmt.Printf("[%v]\t\t= UseSurfPoints\n", sp.UseSurfPoints)
	fmt.Printf("[%v]\t\t= InvertSampling\n", sp.InvertSampling)
	fmt.Printf("[%v]\t\t= UseRejection\n", sp.UseRejection)
	fmt.Printf("[%d]\t\t\t= Seed\n", sp.Seed)
}
