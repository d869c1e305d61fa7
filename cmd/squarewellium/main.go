//Command squarewellium samples a periodic square-well fluid with VMMC,
//writing an xyz trajectory, a VMD visualisation script and an energy-trace
//plot. Parameters are read from a gcfg (INI) file; with no arguments the
//built-in defaults below are used.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gopkg.in/gcfg.v1"

	vmmc "github.com/rmera/govmmc"
	"github.com/rmera/govmmc/cell"
	"github.com/rmera/govmmc/histo"
	"github.com/rmera/govmmc/potential"
	"github.com/rmera/govmmc/traj"
	"github.com/rmera/govmmc/vec"
)

const exampleConfig = `[simulation]

# Dimension of the simulation box, 2 or 3.
Dimension = 3

# Number of particles.
Particles = 1000

# Particle number density (diameter units).
Density = 0.05

# Pair interaction energy scale, in units of kBT.
InteractionEnergy = 2.6

# Size of the interaction range, in units of the particle diameter.
InteractionRange = 1.1

# Maximum number of interactions per particle.
MaxInteractions = 15

# Monte Carlo sweeps (trial moves per particle) between samples, and samples.
SweepsPerSample = 1000
Samples = 100

# Seed for the random number generator.
Seed = 42

# Output files. A .zst suffix compresses the trajectory.
Trajectory = trajectory.xyz.zst
EnergyPlot = energy.png
`

const maxTrialTranslation = 0.15

type config struct {
	Simulation struct {
		Dimension         int
		Particles         int
		Density           float64
		InteractionEnergy float64
		InteractionRange  float64
		MaxInteractions   int
		SweepsPerSample   int
		Samples           int
		Seed              int
		Trajectory        string
		EnergyPlot        string
	}
}

func main() {
	cfgFile := flag.String("config", "", "gcfg configuration file (defaults used if empty)")
	flag.Parse()

	var cfg config
	if err := gcfg.ReadStringInto(&cfg, exampleConfig); err != nil {
		log.Fatal(err)
	}
	if *cfgFile != "" {
		if err := gcfg.ReadFileInto(&cfg, *cfgFile); err != nil {
			log.Fatal(err)
		}
	}
	sim := &cfg.Simulation

	//Work out the base length of the simulation box (diameter is one).
	var baseLength float64
	if sim.Dimension == 2 {
		baseLength = math.Pow(float64(sim.Particles)*math.Pi/(4*sim.Density), 1.0/2.0)
	} else {
		baseLength = math.Pow(float64(sim.Particles)*math.Pi/(6*sim.Density), 1.0/3.0)
	}
	boxSize := make([]float64, sim.Dimension)
	for i := range boxSize {
		boxSize[i] = baseLength
	}

	box, err := vec.NewBox(boxSize)
	if err != nil {
		log.Fatal(err)
	}
	//skin of the maximum trial translation keeps trial-state neighbour
	//queries exhaustive
	cells, err := cell.New(sim.Particles, boxSize, sim.InteractionRange+maxTrialTranslation)
	if err != nil {
		log.Fatal(err)
	}
	system := potential.NewSquareWell(sim.Particles, box, cells,
		sim.MaxInteractions, sim.InteractionEnergy, sim.InteractionRange)

	rng := rand.New(rand.NewSource(uint64(sim.Seed)))
	if err := potential.RandomConfig(system, rng); err != nil {
		log.Fatal(err)
	}

	//The square-well potential is isotropic.
	isIsotropic := make([]bool, sim.Particles)
	for i := range isIsotropic {
		isIsotropic[i] = true
	}

	v, err := vmmc.New(system, system.Positions(), system.Orientations(), isIsotropic, vmmc.Config{
		Dimension:           sim.Dimension,
		BoxSize:             boxSize,
		MaxTrialTranslation: maxTrialTranslation,
		MaxTrialRotation:    0.2,
		ProbTranslate:       0.5,
		ReferenceRadius:     0.5,
		MaxInteractions:     sim.MaxInteractions,
		Seed:                uint64(sim.Seed),
	})
	if err != nil {
		log.Fatal(err)
	}

	xyz, err := traj.NewWriter(sim.Trajectory, sim.Particles)
	if err != nil {
		log.Fatal(err)
	}
	defer xyz.Close()
	if err := traj.VMDScript(".", boxSize); err != nil {
		log.Fatal(err)
	}

	energies := make(plotter.XYs, 0, sim.Samples)
	for i := 0; i < sim.Samples; i++ {
		if err := v.Add(sim.SweepsPerSample * sim.Particles); err != nil {
			log.Fatal(err)
		}
		if err := xyz.WNext(sim.Dimension, system.Positions()); err != nil {
			log.Fatal(err)
		}
		sweeps := float64((i + 1) * sim.SweepsPerSample)
		perParticle := v.Energy() / float64(sim.Particles)
		energies = append(energies, plotter.XY{X: sweeps, Y: perParticle})
		fmt.Printf("sweeps = %9.4e, energy = %5.4f\n", sweeps, perParticle)
	}

	if err := plotEnergy(sim.EnergyPlot, energies); err != nil {
		log.Fatal(err)
	}

	fmt.Printf("\nacceptance = %.4f\n", float64(v.Accepts())/float64(v.Attempts()))
	fmt.Println("accepted translations per cluster size:")
	fmt.Println(histo.FromCounts(v.ClusterTranslations()))
	fmt.Println("\nComplete!")
}

func plotEnergy(name string, energies plotter.XYs) error {
	p := plot.New()
	p.Title.Text = "Square-well fluid"
	p.X.Label.Text = "sweeps"
	p.Y.Label.Text = "energy per particle (kBT)"
	line, err := plotter.NewLine(energies)
	if err != nil {
		return err
	}
	p.Add(line)
	return p.Save(6*vg.Inch, 4*vg.Inch, name)
}
