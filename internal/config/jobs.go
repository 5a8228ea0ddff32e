package config

import (
	"errors"
	"fmt"
	"os"

	"go-chi-simpson/internal/simpson"

	"gopkg.in/yaml.v3"
)

// Job is one integration in a batch file. Fields left out of a job keep the
// values from simpson.DefaultParams.
type Job struct {
	Name       string  `yaml:"name"`
	A          float64 `yaml:"a"`
	B          float64 `yaml:"b"`
	N          int     `yaml:"n"`
	Expression string  `yaml:"expression"`
}

type jobFile struct {
	Jobs []Job `yaml:"jobs"`
}

var ErrNoJobs = errors.New("no jobs defined")

func (j *Job) UnmarshalYAML(value *yaml.Node) error {
	type plain Job
	d := simpson.DefaultParams()
	p := plain{A: d.A, B: d.B, N: d.N, Expression: d.Expression}
	if err := value.Decode(&p); err != nil {
		return err
	}
	*j = Job(p)
	return nil
}

func (j Job) Params() simpson.Params {
	return simpson.Params{A: j.A, B: j.B, N: j.N, Expression: j.Expression}
}

// ParseJobs decodes a batch document of the form
//
//	jobs:
//	  - name: square
//	    a: 0
//	    b: 1
//	    n: 4
//	    expression: x^2
//
// Unnamed jobs are named after their 1-based position.
func ParseJobs(data []byte) ([]Job, error) {
	var f jobFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse jobs: %w", err)
	}
	if len(f.Jobs) == 0 {
		return nil, ErrNoJobs
	}
	for i := range f.Jobs {
		if f.Jobs[i].Name == "" {
			f.Jobs[i].Name = fmt.Sprintf("job %d", i+1)
		}
	}
	return f.Jobs, nil
}

func LoadJobs(path string) ([]Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseJobs(data)
}
