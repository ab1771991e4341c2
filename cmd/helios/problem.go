package main

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/mohamed3ma/helios/ace"
	"github.com/mohamed3ma/helios/environment"
	"github.com/mohamed3ma/helios/geometry"
	"github.com/mohamed3ma/helios/material"
	"github.com/mohamed3ma/helios/settings"
	"github.com/mohamed3ma/helios/source"
)

type surfaceSpec struct {
	ID         string
	Kind       string
	Axis       string
	Reflective bool
	Vacuum     bool
	Coeffs     []float64
}

type senseSpec struct {
	Surface string
	Sign    int
}

type cellSpec struct {
	ID       string
	Senses   []senseSpec
	Fill     string
	Material string
}

type universeSpec struct {
	ID    string
	Cells []string
}

type nuclideSpec struct {
	ID   string
	ZAID string
	NXS  [16]int
	JXS  [32]int
	XSS  []float64
}

type compositionSpec struct {
	Nuclide        string
	AtomicFraction float64
}

type materialSpec struct {
	ID          string
	Density     float64
	Composition []compositionSpec
}

type positionSpec struct {
	Type                      string
	X, Y, Z                   float64
	MinX, MinY, MinZ          float64
	MaxX, MaxY, MaxZ          float64
}

type directionSpec struct {
	Type    string
	X, Y, Z float64
}

type energySpec struct {
	Type    string
	Energy  float64
	Edges   []float64
	Weights []float64
}

type distributionSpec struct {
	ID        string
	Position  positionSpec
	Direction directionSpec
	Energy    energySpec
}

type entrySpec struct {
	Distribution string
	Weight       string
}

type sourceSpec struct {
	ID      string
	Entries []entrySpec
}

// problemFile is the TOML shape a Helios run is described in: the flat,
// McObject-style object stream the out-of-scope input grammar would
// otherwise produce, grouped by module for readability. Each section
// below maps directly onto one module's ObjectDefinition types.
type problemFile struct {
	// RunSource names the staged source the run command fires particles
	// from.
	RunSource string

	Settings map[string]interface{}

	Geometry struct {
		Surfaces  []surfaceSpec
		Cells     []cellSpec
		Universes []universeSpec
	}

	Materials struct {
		Nuclides  []nuclideSpec
		Materials []materialSpec
	}

	Source struct {
		Distributions []distributionSpec
		Sources       []sourceSpec
	}
}

// LoadProblem reads a TOML problem file and stages every object it
// describes onto env, in the shape the (out of scope) input parser would
// otherwise stage them one at a time. It returns the user id of the
// source the run command should fire particles from.
func LoadProblem(path string, env *environment.Environment) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("helios: problem file %q: %v", path, err)
	}

	var pf problemFile
	if _, err := toml.Decode(string(raw), &pf); err != nil {
		return "", fmt.Errorf("helios: parsing problem file %q: %v", path, err)
	}

	if len(pf.Settings) > 0 {
		env.PushObject(settings.Definition{ID: "run", Values: pf.Settings})
	}

	for _, n := range pf.Materials.Nuclides {
		table, err := ace.Parse(ace.Header{ZAID: n.ZAID}, n.NXS, n.JXS, n.XSS)
		if err != nil {
			return "", fmt.Errorf("helios: nuclide %q: %v", n.ID, err)
		}
		env.PushObject(material.NuclideDefinition{ID: n.ID, Table: table})
	}
	for _, m := range pf.Materials.Materials {
		comp := make([]material.Composition, len(m.Composition))
		for i, c := range m.Composition {
			comp[i] = material.Composition{NuclideUserID: c.Nuclide, AtomicFraction: c.AtomicFraction}
		}
		env.PushObject(material.MaterialDefinition{ID: m.ID, Density: m.Density, Composition: comp})
	}

	for _, d := range pf.Source.Distributions {
		dist, err := buildDistribution(d)
		if err != nil {
			return "", fmt.Errorf("helios: distribution %q: %v", d.ID, err)
		}
		env.PushObject(source.DistributionDefinition{ID: d.ID, Distribution: dist})
	}
	for _, s := range pf.Source.Sources {
		entries := make([]source.Entry, len(s.Entries))
		for i, e := range s.Entries {
			entries[i] = source.Entry{DistributionUserID: e.Distribution, WeightExpr: e.Weight}
		}
		env.PushObject(source.SourceDefinition{ID: s.ID, Entries: entries})
	}

	for _, s := range pf.Geometry.Surfaces {
		env.PushObject(geometry.SurfaceDefinition{
			ID:     s.ID,
			Kind:   s.Kind,
			Axis:   parseAxis(s.Axis),
			Flags:  geometry.Flags{Reflective: s.Reflective, Vacuum: s.Vacuum},
			Coeffs: s.Coeffs,
		})
	}
	for _, c := range pf.Geometry.Cells {
		senses := make([]geometry.SenseRef, len(c.Senses))
		for i, sr := range c.Senses {
			sign := geometry.Plus
			if sr.Sign < 0 {
				sign = geometry.Minus
			}
			senses[i] = geometry.SenseRef{SurfaceUserID: sr.Surface, Sign: sign}
		}
		env.PushObject(geometry.CellDefinition{
			ID:             c.ID,
			Senses:         senses,
			FillUserID:     c.Fill,
			MaterialUserID: c.Material,
		})
	}
	for _, u := range pf.Geometry.Universes {
		env.PushObject(geometry.UniverseDefinition{ID: u.ID, CellUserIDs: u.Cells})
	}

	return pf.RunSource, nil
}

func parseAxis(name string) geometry.Axis {
	switch name {
	case "y":
		return geometry.AxisY
	case "z":
		return geometry.AxisZ
	default:
		return geometry.AxisX
	}
}

func buildDistribution(d distributionSpec) (*source.Distribution, error) {
	dist := &source.Distribution{UserID: d.ID}

	switch d.Position.Type {
	case "box":
		dist.Position = source.BoxPosition{
			Min: geometry.Vec3{X: d.Position.MinX, Y: d.Position.MinY, Z: d.Position.MinZ},
			Max: geometry.Vec3{X: d.Position.MaxX, Y: d.Position.MaxY, Z: d.Position.MaxZ},
		}
	case "point", "":
		dist.Position = source.PointPosition{Point: geometry.Vec3{X: d.Position.X, Y: d.Position.Y, Z: d.Position.Z}}
	default:
		return nil, fmt.Errorf("unrecognized position distribution kind %q", d.Position.Type)
	}

	switch d.Direction.Type {
	case "isotropic", "":
		dist.Direction = source.IsotropicDirection{}
	case "mono":
		dist.Direction = source.MonoDirection{Direction: geometry.Vec3{X: d.Direction.X, Y: d.Direction.Y, Z: d.Direction.Z}}
	default:
		return nil, fmt.Errorf("unrecognized direction distribution kind %q", d.Direction.Type)
	}

	switch d.Energy.Type {
	case "mono", "":
		dist.Energy = source.MonoEnergy{Energy: d.Energy.Energy}
	case "histogram":
		dist.Energy = source.HistogramEnergy{Edges: d.Energy.Edges, Weights: d.Energy.Weights}
	default:
		return nil, fmt.Errorf("unrecognized energy distribution kind %q", d.Energy.Type)
	}

	return dist, nil
}
