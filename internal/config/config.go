package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/numlab/internal/numeric"
)

const (
	DefaultPoints       = "0:1,1:2,2:0,3:3,4:1"
	DefaultSubdivisions = 8
	DefaultShape        = "heart"
	DefaultCircles      = 10
	DefaultSamples      = 10000
	DefaultRuns         = 1
	DefaultStep         = 0.1
	DefaultTol          = 1e-10
	DefaultMaxIter      = 100
	DefaultFPS          = 30
)

// Config selects a lab, a method within it, and the lab's parameters.
type Config struct {
	Lab        string           `yaml:"lab"`
	Method     string           `yaml:"method"`
	Seed       int64            `yaml:"seed"`
	Interp     InterpConfig     `yaml:"interp"`
	Integrate  IntegrateConfig  `yaml:"integrate"`
	Fourier    FourierConfig    `yaml:"fourier"`
	Matrix     MatrixConfig     `yaml:"matrix"`
	MonteCarlo MonteCarloConfig `yaml:"montecarlo"`
	ODE        ODEConfig        `yaml:"ode"`
	Roots      RootsConfig      `yaml:"roots"`
}

type InterpConfig struct {
	Points string  `yaml:"points"`
	X      float64 `yaml:"x"`
	Steps  int     `yaml:"steps"`
	// Basis also samples the Lagrange basis polynomials over the nodes.
	Basis bool `yaml:"basis"`
}

type IntegrateConfig struct {
	Func  string  `yaml:"func"`
	A     float64 `yaml:"a"`
	B     float64 `yaml:"b"`
	N     int     `yaml:"n"`
	Sweep []int   `yaml:"sweep"`
}

type FourierConfig struct {
	Shape    string `yaml:"shape"`
	Points   int    `yaml:"points"`
	Circles  int    `yaml:"circles"`
	Centered bool   `yaml:"centered"`
	FPS      int    `yaml:"fps"`
}

type MatrixConfig struct {
	Entries string `yaml:"entries"`
}

type MonteCarloConfig struct {
	Samples int `yaml:"samples"`
	Runs    int `yaml:"runs"`
}

type ODEConfig struct {
	Problem string  `yaml:"problem"`
	Step    float64 `yaml:"step"`
}

type RootsConfig struct {
	Problem string  `yaml:"problem"`
	Tol     float64 `yaml:"tol"`
	MaxIter int     `yaml:"max_iter"`
}

func DefaultConfig() *Config {
	return &Config{
		Lab:    "interpolation",
		Method: "newton",
		Seed:   42,
		Interp: InterpConfig{
			Points: DefaultPoints,
			X:      1.5,
			Steps:  60,
		},
		Integrate: IntegrateConfig{
			Func: "sin",
			A:    0,
			B:    3.141592653589793,
			N:    DefaultSubdivisions,
		},
		Fourier: FourierConfig{
			Shape:   DefaultShape,
			Circles: DefaultCircles,
			FPS:     DefaultFPS,
		},
		Matrix: MatrixConfig{
			Entries: "3,1;1,3",
		},
		MonteCarlo: MonteCarloConfig{
			Samples: DefaultSamples,
			Runs:    DefaultRuns,
		},
		ODE: ODEConfig{
			Problem: "gaussian",
			Step:    DefaultStep,
		},
		Roots: RootsConfig{
			Problem: "cubic",
			Tol:     DefaultTol,
			MaxIter: DefaultMaxIter,
		},
	}
}

// Load reads a YAML file over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// InterpPoints parses the configured sample points.
func (c *Config) InterpPoints() ([]numeric.Point, error) {
	return numeric.ParsePoints(c.Interp.Points)
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	cp := *c
	cp.Integrate.Sweep = append([]int(nil), c.Integrate.Sweep...)
	return &cp
}
