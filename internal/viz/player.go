package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/numlab/internal/numeric"
	"github.com/san-kum/numlab/internal/spectrum"
)

const (
	defaultFPS            = 30
	defaultStepsPerPeriod = 400
	statsWidth            = 44
)

type TickMsg time.Time

// PlayerOptions configures an epicycle Player. Zero values pick defaults.
type PlayerOptions struct {
	Circles        int
	FPS            int
	StepsPerPeriod int
	Width, Height  int
	Theme          string
}

// Player animates an epicycle chain drawing its curve, one period at a
// time. It implements tea.Model.
type Player struct {
	name           string
	coeffs         spectrum.Spectrum
	circles        int
	t, dt, speed   float64
	fps            int
	stepsPerPeriod int
	running        bool
	showCircles    bool
	showHelp       bool
	trail          []numeric.Point
	theme          int
	width, height  int
	canvas         *Canvas
	view           Viewport
}

// NewPlayer builds a running player over coeffs, which are expected in
// descending amplitude order.
func NewPlayer(name string, coeffs spectrum.Spectrum, opts PlayerOptions) Player {
	if opts.FPS <= 0 {
		opts.FPS = defaultFPS
	}
	if opts.StepsPerPeriod <= 0 {
		opts.StepsPerPeriod = defaultStepsPerPeriod
	}
	if opts.Width <= 0 {
		opts.Width = 60
	}
	if opts.Height <= 0 {
		opts.Height = 24
	}
	circles := opts.Circles
	if circles <= 0 || circles > len(coeffs) {
		circles = len(coeffs)
	}

	p := Player{
		name:           name,
		coeffs:         coeffs,
		circles:        circles,
		speed:          1,
		fps:            opts.FPS,
		stepsPerPeriod: opts.StepsPerPeriod,
		dt:             2 * math.Pi / float64(opts.StepsPerPeriod),
		running:        true,
		showCircles:    true,
		width:          opts.Width,
		height:         opts.Height,
		canvas:         NewCanvas(opts.Width, opts.Height),
		view:           chainViewport(coeffs),
	}
	for i, th := range Themes {
		if th.Name == opts.Theme {
			p.theme = i
		}
	}
	return p
}

// chainViewport encloses every circle of the full chain over one period.
func chainViewport(coeffs spectrum.Spectrum) Viewport {
	const samples = 64
	var extent []numeric.Point
	for j := 0; j < samples; j++ {
		t := 2 * math.Pi * float64(j) / samples
		for _, c := range spectrum.Epicycles(coeffs, len(coeffs), t) {
			extent = append(extent,
				numeric.Point{X: c.Center.X - c.Radius, Y: c.Center.Y - c.Radius},
				numeric.Point{X: c.Center.X + c.Radius, Y: c.Center.Y + c.Radius},
			)
		}
	}
	if len(extent) == 0 {
		extent = []numeric.Point{{X: -1, Y: -1}, {X: 1, Y: 1}}
	}
	return Fit(extent, 0.05, true)
}

func (p Player) Circles() int                { return p.circles }
func (p Player) Time() float64               { return p.t }
func (p Player) Running() bool               { return p.running }
func (p Player) Trail() []numeric.Point      { return p.trail }
func (p Player) Theme() Theme                { return Themes[p.theme] }
func (p Player) Spectrum() spectrum.Spectrum { return p.coeffs }

func (p Player) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(p.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (p Player) Init() tea.Cmd { return p.tick() }

// Update handles input events and advances the chain.
func (p Player) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return p, tea.Quit
		case " ":
			p.running = !p.running
		case "r":
			p.reset()
		case "+", "=", "up", "k":
			p.setCircles(p.circles + 1)
		case "-", "_", "down", "j":
			p.setCircles(p.circles - 1)
		case "]":
			p.speed = math.Min(p.speed*2, 16)
		case "[":
			p.speed = math.Max(p.speed/2, 1.0/16)
		case "c":
			p.showCircles = !p.showCircles
		case "t":
			p.theme = (p.theme + 1) % len(Themes)
		case "?":
			p.showHelp = !p.showHelp
		}
	case tea.WindowSizeMsg:
		w, h := msg.Width/2-statsWidth/2, msg.Height-4
		if w > 8 && h > 4 {
			p.width, p.height = w, h
			p.canvas = NewCanvas(w, h)
		}
	case TickMsg:
		if p.running {
			p.advance()
		}
		return p, p.tick()
	}
	return p, nil
}

// advance moves one step forward and records the tip. The trail holds at
// most one period.
func (p *Player) advance() {
	p.t += p.dt * p.speed
	if p.t >= 2*math.Pi {
		p.t -= 2 * math.Pi
	}
	p.trail = append(p.trail, spectrum.Reconstruct(p.coeffs, p.circles, p.t))
	if limit := int(float64(p.stepsPerPeriod) / p.speed); len(p.trail) > limit && limit > 0 {
		p.trail = p.trail[len(p.trail)-limit:]
	}
}

func (p *Player) reset() {
	p.t = 0
	p.trail = nil
}

func (p *Player) setCircles(k int) {
	if k < 1 || k > len(p.coeffs) || k == p.circles {
		return
	}
	p.circles = k
	p.trail = nil
}

// Render draws the current frame onto the player's canvas and returns it.
func (p Player) Render() *Canvas {
	p.canvas.Clear()
	if p.showCircles {
		for _, c := range spectrum.Epicycles(p.coeffs, p.circles, p.t) {
			if c.Freq == 0 {
				continue
			}
			p.canvas.Circle(p.view, c.Center, c.Radius)
			x0, y0 := p.view.Project(p.canvas, c.Center)
			x1, y1 := p.view.Project(p.canvas, c.Tip)
			p.canvas.DrawLine(x0, y0, x1, y1)
		}
	}
	p.canvas.Polyline(p.view, p.trail)
	return p.canvas
}

func (p Player) View() string {
	theme := Themes[p.theme]
	frame := lipgloss.NewStyle().Foreground(theme.Curve).Render(p.Render().String())
	canvasView := canvasStyle.Render(frame)

	var s strings.Builder
	s.WriteString(Title.Foreground(theme.Accent).Render(strings.ToUpper(p.name)) + "\n")
	if p.running {
		s.WriteString(StatusRunning.Render("RUNNING") + "\n\n")
	} else {
		s.WriteString(StatusPaused.Render("PAUSED") + "\n\n")
	}
	s.WriteString(KV("Circles", fmt.Sprintf("%d / %d", p.circles, len(p.coeffs))) + "\n")
	s.WriteString(KV("t", p.t) + "\n")
	s.WriteString(KV("Speed", fmt.Sprintf("%gx", p.speed)) + "\n")
	energy := p.coeffs.EnergyFraction(p.circles)
	s.WriteString(KV("Energy", fmt.Sprintf("%.1f%%", 100*energy)) + "\n")
	s.WriteString(ProgressBar(energy, 24) + "\n\n")

	if amps := p.amplitudes(); len(amps) > 1 {
		chart := asciigraph.Plot(amps, asciigraph.Height(5), asciigraph.Width(30), asciigraph.Caption("amplitude by rank"))
		s.WriteString(chart + "\n")
	}

	s.WriteString(KeyHint.Render("\nspace pause  r reset  q quit\n+/- circles  [/] speed\nc circles  t theme  ? help"))
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
	if p.showHelp {
		return Panel.Render(helpText) + "\n" + mainView
	}
	return mainView
}

const helpText = `space  pause or resume
r      restart the period
+/-    add or drop a circle
[ ]    halve or double the speed
c      toggle the circle chain
t      cycle color themes
q      quit`

func (p Player) amplitudes() []float64 {
	head := p.coeffs.Truncate(p.circles)
	amps := make([]float64, len(head))
	for i, c := range head {
		amps[i] = c.Amplitude
	}
	return amps
}

// RunPlayer takes over the terminal until the player quits.
func RunPlayer(p Player) error {
	_, err := tea.NewProgram(p, tea.WithAltScreen()).Run()
	return err
}
