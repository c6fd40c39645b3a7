package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/beamsim/internal/analysis"
	"github.com/san-kum/beamsim/internal/beam"
	"github.com/san-kum/beamsim/internal/cloud"
	"github.com/san-kum/beamsim/internal/config"
	"github.com/san-kum/beamsim/internal/machine"
	"github.com/san-kum/beamsim/internal/metrics"
	"github.com/san-kum/beamsim/internal/physics"
	"github.com/san-kum/beamsim/internal/sequence"
	"github.com/san-kum/beamsim/internal/storage"
	"github.com/san-kum/beamsim/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	species    string
	particles  int
	energy     float64
	maxEnergy  float64
	radiusM    float64
	harmonic   int
	currentA   float64
	dt         float64
	duration   float64
	seed       int64
	frameRate  int
	configFile string
	preset     string
	seqFile    string
	// Ramp parameters
	rampTime  float64
	rampSteps int
	// Export target
	outFile string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "beamsim",
		Short: "synchrotron beam simulation lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".beamsim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run headless simulation and record the series",
		RunE:  runSimulation,
	}
	addMachineFlags(runCmd)
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration (species/scenario)")

	seqCmd := &cobra.Command{
		Use:   "seq [sequence.yaml]",
		Short: "execute an operation sequence against the machine",
		Args:  cobra.ExactArgs(1),
		RunE:  runSequence,
	}
	addMachineFlags(seqCmd)

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "interactive live view of the circulating beam",
		RunE:  runLive,
	}
	addMachineFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")
	liveCmd.Flags().StringVar(&seqFile, "seq", "", "operation sequence to run while viewing")
	liveCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	liveCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration (species/scenario)")

	rampCmd := &cobra.Command{
		Use:   "ramp [from_gev] [to_gev]",
		Short: "print an acceleration ramp profile",
		Args:  cobra.ExactArgs(2),
		RunE:  printRamp,
	}
	rampCmd.Flags().Float64Var(&rampTime, "time", 2.0, "ramp time in seconds")
	rampCmd.Flags().IntVar(&rampSteps, "steps", 20, "number of samples")

	physicsCmd := &cobra.Command{
		Use:   "physics",
		Short: "kinematics table for all species at the given energy",
		RunE:  printPhysics,
	}
	physicsCmd.Flags().Float64Var(&energy, "energy", 50.0, "kinetic energy in GeV")
	physicsCmd.Flags().Float64Var(&radiusM, "radius", 100.0, "bending radius in meters")
	physicsCmd.Flags().IntVar(&harmonic, "harmonic", 8, "RF harmonic number")
	physicsCmd.Flags().Float64Var(&currentA, "current", 0.5, "beam current in amperes")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a recorded run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of the mean beam position",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportMeta,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run series to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringVar(&outFile, "out", "", "output file (default <run_id>.csv)")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run metadata and series to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVar(&outFile, "out", "", "output file (default stdout)")

	presetsCmd := &cobra.Command{
		Use:   "presets [species]",
		Short: "list available presets for a species",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for species: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, seqCmd, liveCmd, rampCmd, physicsCmd, listCmd, plotCmd, analyzeCmd, exportCmd, exportCSVCmd, exportJSONCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addMachineFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&species, "species", "Proton", "beam species")
	cmd.Flags().IntVar(&particles, "particles", config.DefaultParticles, "number of particles")
	cmd.Flags().Float64Var(&energy, "energy", config.DefaultEnergy, "kinetic energy in GeV")
	cmd.Flags().Float64Var(&maxEnergy, "max-energy", config.DefaultMaxEnergy, "machine energy cap in GeV")
	cmd.Flags().Float64Var(&radiusM, "radius", config.DefaultRadiusM, "bending radius in meters")
	cmd.Flags().IntVar(&harmonic, "harmonic", config.DefaultHarmonic, "RF harmonic number")
	cmd.Flags().Float64Var(&currentA, "current", config.DefaultCurrentA, "beam current in amperes")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep in seconds")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration in seconds")
	cmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
}

// resolveConfig merges preset, config file and flags, with explicit flags
// taking precedence over both.
func resolveConfig(cmd *cobra.Command) error {
	var cfg *config.Config

	if preset != "" {
		cfg = config.GetPreset(species, preset)
		if cfg == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(species))
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cfg == nil {
		return nil
	}

	if !cmd.Flags().Changed("species") {
		species = cfg.Beam.Species
	}
	if !cmd.Flags().Changed("particles") {
		particles = cfg.Beam.Particles
	}
	if !cmd.Flags().Changed("energy") {
		energy = cfg.Beam.Energy
	}
	if !cmd.Flags().Changed("max-energy") {
		maxEnergy = cfg.Ring.MaxEnergy
	}
	if !cmd.Flags().Changed("radius") {
		radiusM = cfg.Ring.RadiusM
	}
	if !cmd.Flags().Changed("harmonic") {
		harmonic = cfg.Ring.Harmonic
	}
	if !cmd.Flags().Changed("current") {
		currentA = cfg.Ring.CurrentA
	}
	if !cmd.Flags().Changed("dt") {
		dt = cfg.Run.Dt
	}
	if !cmd.Flags().Changed("time") {
		duration = cfg.Run.Duration
	}
	if cfg.Run.FPS != 0 && !cmd.Flags().Changed("fps") {
		frameRate = cfg.Run.FPS
	}
	if cfg.Run.Seed != 0 && !cmd.Flags().Changed("seed") {
		seed = cfg.Run.Seed
	}

	return nil
}

func buildRing() *beam.Ring {
	ring := beam.NewRing(maxEnergy, seed)
	ring.SetEnergy(energy)
	ring.Inject(physics.ParseSpecies(species), particles)
	return ring
}

func runSimulation(cmd *cobra.Command, args []string) error {
	if err := resolveConfig(cmd); err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	ring := buildRing()
	sim := machine.New(ring)
	sim.AddMetric(metrics.NewMeanBeta())
	sim.AddMetric(metrics.NewSpread())
	sim.AddMetric(metrics.NewRadiatedPower(currentA, radiusM))

	fmt.Printf("running %s beam, %d particles, %.1f GeV...\n", species, particles, energy)
	start := time.Now()

	result, err := sim.Run(context.Background(), machine.Config{Dt: dt, Duration: duration, Seed: seed})
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	runID, err := st.Save(storage.RunMetadata{
		Species:   species,
		Seed:      seed,
		Dt:        dt,
		Duration:  duration,
		Energy:    energy,
		Particles: particles,
	}, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("samples: %d\n", len(result.Times))
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}

	return nil
}

func runSequence(cmd *cobra.Command, args []string) error {
	if err := resolveConfig(cmd); err != nil {
		return err
	}

	seq, err := sequence.Load(args[0])
	if err != nil {
		return fmt.Errorf("failed to load sequence: %w", err)
	}

	ring := buildRing()
	runner := sequence.NewRunner(ring, seq.Steps)
	runner.OnEvent = func(ev sequence.Event) {
		fmt.Printf("[%d/%d] %s\n", ev.StepIndex+1, len(seq.Steps), ev.Message)
	}

	name := seq.Name
	if name == "" {
		name = args[0]
	}
	fmt.Printf("executing sequence %s (%d steps)\n", name, len(seq.Steps))

	if err := runner.Run(context.Background()); err != nil {
		return err
	}

	fmt.Printf("\nfinal energy: %.2f GeV, particles: %d\n", ring.CurrentEnergy, ring.Count())
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	if err := resolveConfig(cmd); err != nil {
		return err
	}

	ring := buildRing()

	dust := cloud.New(particles, seed)
	dust.Energy = ring.CurrentEnergy
	dust.Charge = physics.Lookup(ring.BeamSpecies()).Charge
	dust.Magnets = []cloud.Magnet{
		{X: -5, Y: 0, Radius: 2.5, Strength: 0.3, Dir: 1},
		{X: 5, Y: 0, Radius: 2.5, Strength: 0.3, Dir: -1},
	}
	dust.Trails = cloud.NewRecorder([]int{0, 1, 2}, 2, 50)

	var runner *sequence.Runner
	seqName := ""
	if seqFile != "" {
		seq, err := sequence.Load(seqFile)
		if err != nil {
			return fmt.Errorf("failed to load sequence: %w", err)
		}
		runner = sequence.NewRunner(ring, seq.Steps)
		seqName = seq.Name
		if seqName == "" {
			seqName = seqFile
		}
	}

	model := viz.NewModel(ring, dust, runner, seqName, radiusM, harmonic, currentA, frameRate, dt, seed)
	p := tea.NewProgram(model)
	_, err := p.Run()
	return err
}

func printRamp(cmd *cobra.Command, args []string) error {
	from, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("bad start energy: %s", args[0])
	}
	to, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("bad target energy: %s", args[1])
	}

	samples := physics.GenerateRamp(from, to, rampTime, rampSteps)

	energies := make([]float64, len(samples))
	for i, s := range samples {
		energies[i] = s.Energy
	}

	graph := asciigraph.Plot(energies,
		asciigraph.Height(12),
		asciigraph.Width(70),
		asciigraph.Caption(fmt.Sprintf("ramp %.1f -> %.1f GeV over %.1fs", from, to, rampTime)),
	)
	fmt.Println(graph)
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tENERGY")
	for _, s := range samples {
		fmt.Fprintf(w, "%.3fs\t%.3f GeV\n", s.Time, s.Energy)
	}
	return w.Flush()
}

func printPhysics(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SPECIES\tMASS[GeV]\tCHARGE\tBETA\tGAMMA\tP[GeV/c]\tB[T]\tRF[MHz]\tP_SYNC[kW]")

	for _, sp := range physics.AllSpecies {
		props := physics.Lookup(sp)
		beta := physics.Beta(energy, props.MassGeV)
		p := physics.Momentum(energy, props.MassGeV)
		field := physics.FieldForRadius(p, radiusM, props.Charge)

		fmt.Fprintf(w, "%s\t%.6f\t%+g\t%.9f\t%.2f\t%.3f\t%.3f\t%.3f\t%.3g\n",
			sp,
			props.MassGeV,
			props.Charge,
			beta,
			physics.LorentzFactor(beta),
			p,
			field,
			physics.RFFrequencyMHz(beta, radiusM, harmonic),
			physics.SynchrotronPowerKW(energy, field, currentA, radiusM),
		)
	}

	return w.Flush()
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSPECIES\tTIME\tENERGY\tPARTICLES\tDURATION\tDT")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.1f GeV\t%d\t%.2fs\t%.4fs\n",
			run.ID,
			run.Species,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Energy,
			run.Particles,
			run.Duration,
			run.Dt,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	series, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}
	if len(series.Times) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("species: %s\n", meta.Species)
	fmt.Printf("samples: %d\n\n", len(series.Times))

	plots := []struct {
		data    []float64
		caption string
	}{
		{series.Energies, "energy [GeV]"},
		{series.MeanPos, "mean ring position"},
		{series.Spread, "position spread"},
	}

	for _, p := range plots {
		graph := asciigraph.Plot(p.data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(p.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	series, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}
	if len(series.MeanPos) == 0 {
		return fmt.Errorf("no data")
	}

	fmt.Printf("frequency analysis: %s\n", meta.ID)
	fmt.Printf("species: %s\n\n", meta.Species)

	ps := analysis.PowerSpectrum(series.MeanPos)
	plotData := ps
	if len(ps) > 4 {
		plotData = ps[:len(ps)/4]
	}

	graph := asciigraph.Plot(plotData,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("power spectrum (mean position)"),
	)
	fmt.Println(graph)
	fmt.Println()

	freq := analysis.DominantFrequency(series.MeanPos, meta.Dt)
	fmt.Printf("dominant frequency: %.3f hz\n", freq)
	if freq > 0 {
		fmt.Printf("period: %.3f s\n", 1.0/freq)
	}

	return nil
}

func exportMeta(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	runID := args[0]
	out := outFile
	if out == "" {
		out = runID + ".csv"
	}

	st := storage.New(dataDir)
	if err := st.ExportCSV(runID, out); err != nil {
		return err
	}

	fmt.Printf("exported to %s\n", out)
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	return st.ExportJSON(args[0], outFile)
}
