package viz

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/beamsim/internal/beam"
	"github.com/san-kum/beamsim/internal/cloud"
	"github.com/san-kum/beamsim/internal/physics"
	"github.com/san-kum/beamsim/internal/sequence"
)

const (
	canvasWidth     = 60
	canvasHeight    = 22
	historyCapacity = 600
	eventCapacity   = 6

	// Braille dots are taller than wide; flatten vertical extents so the
	// ring renders round in a terminal.
	dotAspect = 0.5

	energyStep = 5.0
	countStep  = 10
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(42)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	eventStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(2)
)

type TickMsg time.Time

type viewMode int

const (
	viewRing viewMode = iota
	viewCloud
)

// Model drives the live machine view: a circulating beam on a braille
// ring, a particle-cloud scatter, physics readouts, and an optional
// operation sequence advanced from the tick loop.
type Model struct {
	ring  *beam.Ring
	dust  *cloud.Cloud
	fps   int
	dt    float64
	t     float64
	seed  int64
	count int

	radiusM  float64
	harmonic int
	currentA float64

	canvas     *Canvas
	mode       viewMode
	running    bool
	showTrails bool
	jitter     *rand.Rand
	rotation   float64

	energyHistory []float64

	runner     *sequence.Runner
	seqName    string
	seqBudget  time.Duration
	seqDone    bool
	seqStarted bool
	events     *eventLog
}

// eventLog is shared by pointer so sequence events survive the value
// copies bubbletea makes of the model.
type eventLog struct {
	lines []string
}

func (l *eventLog) add(line string) {
	l.lines = append(l.lines, line)
	if len(l.lines) > eventCapacity {
		l.lines = l.lines[1:]
	}
}

// NewModel builds the live view around an injected ring. The sequence
// runner is optional; pass nil to drive the machine by hand.
func NewModel(ring *beam.Ring, dust *cloud.Cloud, runner *sequence.Runner, seqName string, radiusM float64, harmonic int, currentA float64, fps int, dt float64, seed int64) Model {
	if fps <= 0 {
		fps = 30
	}

	m := Model{
		ring:          ring,
		dust:          dust,
		fps:           fps,
		dt:            dt,
		seed:          seed,
		count:         ring.Count(),
		radiusM:       radiusM,
		harmonic:      harmonic,
		currentA:      currentA,
		canvas:        NewCanvas(canvasWidth, canvasHeight),
		running:       true,
		showTrails:    true,
		jitter:        rand.New(rand.NewSource(seed)),
		energyHistory: make([]float64, 0, historyCapacity),
		runner:        runner,
		seqName:       seqName,
		events:        &eventLog{},
	}
	if runner != nil {
		log := m.events
		runner.OnEvent = func(ev sequence.Event) { log.add(ev.Message) }
	}
	return m
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "v":
			if m.mode == viewRing {
				m.mode = viewCloud
			} else {
				m.mode = viewRing
			}
		case "t":
			m.showTrails = !m.showTrails
		case "e":
			m.ring.SetEnergy(m.ring.CurrentEnergy - energyStep)
			m.dust.Energy = m.ring.CurrentEnergy
		case "E":
			m.ring.SetEnergy(m.ring.CurrentEnergy + energyStep)
			m.dust.Energy = m.ring.CurrentEnergy
		case "p":
			if m.count > countStep {
				m.count -= countStep
				m.ring.Inject(m.ring.BeamSpecies(), m.count)
				m.dust.Resize(m.count)
			}
		case "P":
			m.count += countStep
			m.ring.Inject(m.ring.BeamSpecies(), m.count)
			m.dust.Resize(m.count)
		case "b":
			m.cycleSpecies()
		}
	case TickMsg:
		if m.running {
			m.step()
		}
		m.draw()
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) step() {
	frame := time.Second / time.Duration(m.fps)

	if m.runner != nil && !m.seqDone {
		m.seqBudget -= frame
		if !m.seqStarted || m.seqBudget <= 0 {
			m.seqStarted = true
			delay, done := m.runner.Advance()
			m.seqBudget = delay
			m.seqDone = done
		}
	}

	m.ring.Advance(m.dt)
	m.t += m.dt

	// Display-only circulation: real revolution frequencies are far above
	// any frame rate, so the ring view spins at a legible rate that still
	// grows with energy.
	m.rotation += 0.002 + m.ring.CurrentEnergy/1000

	m.dust.Energy = m.ring.CurrentEnergy
	m.dust.Charge = physics.Lookup(m.ring.BeamSpecies()).Charge
	m.dust.Step()

	m.energyHistory = append(m.energyHistory, m.ring.CurrentEnergy)
	if len(m.energyHistory) > historyCapacity {
		m.energyHistory = m.energyHistory[1:]
	}
}

func (m *Model) reset() {
	m.t = 0
	m.rotation = 0
	m.ring.Inject(m.ring.BeamSpecies(), m.count)
	m.dust.Resize(m.count)
	m.energyHistory = m.energyHistory[:0]
	m.jitter = rand.New(rand.NewSource(m.seed))
}

func (m *Model) cycleSpecies() {
	current := m.ring.BeamSpecies()
	for i, sp := range physics.AllSpecies {
		if sp == current {
			next := physics.AllSpecies[(i+1)%len(physics.AllSpecies)]
			m.ring.Inject(next, m.count)
			m.dust.Charge = physics.Lookup(next).Charge
			return
		}
	}
	m.ring.Inject(physics.Proton, m.count)
}

func (m *Model) draw() {
	m.canvas.Clear()
	switch m.mode {
	case viewCloud:
		m.drawCloud()
	default:
		m.drawRing()
	}
}

// drawRing places each particle on a circle by its azimuthal position,
// with a small radial jitter that tightens as the beam stiffens.
func (m *Model) drawRing() {
	cw, ch := m.canvas.DotWidth(), m.canvas.DotHeight()
	cx, cy := cw/2, ch/2

	radius := float64(cw) / 2 * 0.85
	if vertical := float64(ch) / 2 * 0.85 / dotAspect; vertical < radius {
		radius = vertical
	}

	m.canvas.DrawCircle(cx, cy, radius, dotAspect)

	for _, s := range beam.DefaultSections {
		a := 2 * math.Pi * s.Position
		sx := cx + int((radius+3)*math.Cos(a))
		sy := cy + int((radius+3)*dotAspect*math.Sin(a))
		m.canvas.DrawDot(sx, sy, 1)
	}

	// The beam tightens onto the orbit and the dots shrink as it stiffens.
	spread := math.Max(0.5, 5-m.ring.CurrentEnergy/20)
	halfWidth := 0
	if spread > 2 {
		halfWidth = 1
	}
	for _, pos := range m.ring.Positions() {
		a := 2*math.Pi*pos + m.rotation
		r := radius + m.jitter.NormFloat64()*spread
		px := cx + int(r*math.Cos(a))
		py := cy + int(r*dotAspect*math.Sin(a))
		m.canvas.DrawDot(px, py, halfWidth)
	}
}

// drawCloud projects the transverse cloud onto the canvas, with trails.
func (m *Model) drawCloud() {
	cw, ch := m.canvas.DotWidth(), m.canvas.DotHeight()
	b := m.dust.Bound

	toScreen := func(x, y float64) (int, int) {
		px := int((x + b) / (2 * b) * float64(cw-1))
		py := int((y + b) / (2 * b) * float64(ch-1))
		return px, py
	}

	if m.showTrails && m.dust.Trails != nil {
		for _, idx := range m.dust.Trails.Indices {
			for _, pt := range m.dust.Trails.Trail(idx) {
				px, py := toScreen(pt.X, pt.Y)
				m.canvas.Set(px, py)
			}
		}
	}

	for i := range m.dust.X {
		px, py := toScreen(m.dust.X[i], m.dust.Y[i])
		m.canvas.Set(px, py)
	}

	for _, mag := range m.dust.Magnets {
		px, py := toScreen(mag.X, mag.Y)
		m.canvas.DrawCircle(px, py, mag.Radius/(2*b)*float64(cw-1), dotAspect)
	}
}

func (m Model) View() string {
	canvasView := canvasStyle.Render(m.canvas.String())

	energy := m.ring.CurrentEnergy
	species := m.ring.BeamSpecies()
	props := physics.Lookup(species)
	momentum := physics.Momentum(energy, props.MassGeV)
	beta := physics.Beta(energy, props.MassGeV)

	var s strings.Builder
	s.WriteString(headerStyle.Render("BEAMSIM LIVE") + "\n")

	status := "RUNNING"
	if !m.running {
		status = "PAUSED"
	}
	if m.seqName != "" {
		if m.seqDone {
			status += "  seq " + m.seqName + " done"
		} else {
			status += "  seq " + m.seqName
		}
	}
	s.WriteString(status + "\n\n")

	if len(m.energyHistory) > 1 {
		chart := asciigraph.Plot(m.energyHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Energy [GeV]"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	row := func(label, value string) {
		s.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("Species", string(species))
	row("Particles", fmt.Sprintf("%d", m.ring.Count()))
	row("Energy", fmt.Sprintf("%.2f GeV", energy))
	row("Beta", fmt.Sprintf("%.9f", beta))
	row("Gamma", fmt.Sprintf("%.2f", physics.LorentzFactor(beta)))
	field := physics.FieldForRadius(momentum, m.radiusM, props.Charge)
	row("RF Freq", fmt.Sprintf("%.3f MHz", physics.RFFrequencyMHz(beta, m.radiusM, m.harmonic)))
	row("Bend Field", fmt.Sprintf("%.3f T", field))
	row("Synch Power", fmt.Sprintf("%.3g kW", physics.SynchrotronPowerKW(energy, field, m.currentA, m.radiusM)))
	row("Time", fmt.Sprintf("%.1fs", m.t))

	if len(m.events.lines) > 0 {
		s.WriteString("\nSEQUENCE\n")
		for _, ev := range m.events.lines {
			s.WriteString(eventStyle.Render("  "+ev) + "\n")
		}
	}

	s.WriteString(helpStyle.Render("\n─────────────────────\nSP:Pause R:Reinject V:View Q:Quit\nE/e:Energy± P/p:Count± B:Species T:Trails"))

	statsView := statsStyle.Render(s.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
}
