package report

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/screwdof/mobility"
)

const (
	width = 70

	// hotRatio marks a spectral gap worth a second look.
	hotRatio = 50.0

	// ratioFloor matches the analyzer's gap denominator floor.
	ratioFloor = 1e-12

	// minRows is the minimum number of spectrum rows shown.
	minRows = 10
)

// Option configures Text.
type Option func(*options)

type options struct {
	velocities    bool
	velocityFloor float64
	maxRows       int
}

// WithVelocities appends the per-mode joint-velocity debugger.
func WithVelocities() Option {
	return func(o *options) { o.velocities = true }
}

// WithVelocityFloor hides debugger entries with |velocity| ≤ floor (default 1e-4).
func WithVelocityFloor(floor float64) Option {
	return func(o *options) {
		if floor >= 0 {
			o.velocityFloor = floor
		}
	}
}

// WithMaxRows caps the spectrum table; 0 shows max(10, dof+3) rows.
func WithMaxRows(n int) Option {
	return func(o *options) {
		if n >= 0 {
			o.maxRows = n
		}
	}
}

// styles holds the styles of one writer's renderer. Output that is not a
// terminal gets plain text.
type styles struct {
	title, good, warn, bad, muted lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		title: r.NewStyle().Bold(true),
		good:  r.NewStyle().Foreground(lipgloss.Color("#8BC34A")),
		warn:  r.NewStyle().Foreground(lipgloss.Color("#FFB300")),
		bad:   r.NewStyle().Foreground(lipgloss.Color("#e53935")),
		muted: r.NewStyle().Faint(true),
	}
}

// Text writes the human-readable report of res.
func Text(w io.Writer, name string, res *mobility.Result, opts ...Option) error {
	o := options{velocityFloor: 1e-4}
	for _, opt := range opts {
		opt(&o)
	}
	st := newStyles(w)
	b := &strings.Builder{}

	rule := strings.Repeat("=", width)
	fmt.Fprintln(b, rule)
	fmt.Fprintln(b, st.title.Render("📊 Mobility report: "+name))
	fmt.Fprintln(b, rule)

	if res.IDOFCount > 0 {
		fmt.Fprintln(b, st.warn.Render(fmt.Sprintf("⚠️  %d instantaneous freedom(s) detected and removed", res.IDOFCount)))
	} else {
		fmt.Fprintln(b, st.good.Render("✅ no instantaneous freedoms"))
	}

	fmt.Fprintln(b)
	writeSpectrum(b, st, res, o.maxRows)

	thin := strings.Repeat("-", width)
	fmt.Fprintln(b, thin)
	fmt.Fprintf(b, "🔗 Topology:     %s\n", res.Connectivity)
	fmt.Fprintf(b, "⚙️  DOF:          %d (SVD gap)\n", res.DOF)
	fmt.Fprintf(b, "🎯 EE rank:      %d\n", res.EERank)
	fmt.Fprintf(b, "📝 Motion type:  %s\n", res.MotionType)
	fmt.Fprintf(b, "🧭 Path:         %s\n", joinInts(res.Path, " → "))

	fmt.Fprintln(b, thin)
	fmt.Fprintln(b, "🌊 EE twist basis:")
	if len(res.EETwistBasis) == 0 {
		fmt.Fprintln(b, st.muted.Render("  (locked: no effective motion)"))
	}
	for i, t := range res.EETwistBasis {
		parts := make([]string, len(t))
		for k, x := range t {
			parts[k] = fmt.Sprintf("%8.4f", x)
		}
		fmt.Fprintf(b, "  Mode %d: [ %s ]\n", i+1, strings.Join(parts, ", "))
	}

	if o.velocities {
		writeVelocities(b, st, res, o.velocityFloor)
	}
	fmt.Fprintln(b, rule)
	fmt.Fprintln(b)

	_, err := io.WriteString(w, b.String())
	return err
}

// Spectrum writes only the spectrum table.
func Spectrum(w io.Writer, res *mobility.Result, opts ...Option) error {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	b := &strings.Builder{}
	writeSpectrum(b, newStyles(w), res, o.maxRows)
	_, err := io.WriteString(w, b.String())
	return err
}

// Failure writes a one-line report of a failed analysis.
func Failure(w io.Writer, name string, err error) error {
	_, werr := fmt.Fprintln(w, newStyles(w).bad.Render(fmt.Sprintf("❌ %s: analysis aborted: %v", name, err)))
	return werr
}

// writeSpectrum renders the non-gauge spectrum with gap ratios. The split
// between candidate freedoms and constraints carries the MAX GAP marker.
func writeSpectrum(b *strings.Builder, st styles, res *mobility.Result, maxRows int) {
	gauge := res.GaugeDOF
	fmt.Fprintf(b, "📉 Singular spectrum (%d gauge mode(s) removed):\n", gauge)
	if len(res.Spectrum) <= gauge {
		fmt.Fprintln(b, st.muted.Render("   (not enough data for a spectrum)"))
		return
	}

	valid := res.Spectrum[gauge:]
	split := res.DOF + res.IDOFCount
	rows := maxRows
	if rows == 0 {
		rows = max(minRows, split+3)
	}
	rows = min(rows, len(valid))

	cols := []int{6, 12, 24}
	fmt.Fprintf(b, "   %s | %s | %s | %s\n",
		pad("Index", cols[0]), pad("SingularVal", cols[1]), pad("Gap (next/curr)", cols[2]), "Type")
	fmt.Fprintln(b, strings.Repeat("-", width))

	for i := 0; i < rows; i++ {
		v := valid[i]
		ratio := "-"
		if i < len(valid)-1 {
			r := valid[i+1] / math.Max(v, ratioFloor)
			if r > hotRatio {
				ratio = fmt.Sprintf("%.1ex 🔥", r)
			} else {
				ratio = fmt.Sprintf("%.1fx", r)
			}
			if i == split-1 {
				ratio += " (MAX GAP)"
			}
		}

		var mark string
		switch {
		case i < res.DOF:
			mark = st.good.Render("✅ DOF")
		case i < split:
			mark = st.warn.Render("⚠️  IDOF")
		default:
			mark = st.muted.Render("⛔ Const")
		}

		val := fmt.Sprintf("%.4f", v)
		if v < 0.01 {
			val = fmt.Sprintf("%.2e", v)
		}
		fmt.Fprintf(b, "   %s | %s | %s | %s\n",
			pad(fmt.Sprint(i+1), cols[0]), pad(val, cols[1]), pad(ratio, cols[2]), mark)

		if i == split-1 {
			fmt.Fprintf(b, "   %s\n", strings.Repeat("-", width-4))
		}
	}
}

// writeVelocities lists, per finite mode, the loop steps whose joint moves
// noticeably, fastest first.
func writeVelocities(b *strings.Builder, st styles, res *mobility.Result, floor float64) {
	if len(res.DOFDetails) == 0 {
		return
	}
	rule := strings.Repeat("=", width)
	fmt.Fprintln(b)
	fmt.Fprintln(b, rule)
	fmt.Fprintln(b, st.title.Render("🔍 Joint velocity debugger"))
	fmt.Fprintf(b, "   entries with |velocity| > %g; every loop satisfies Σ S·vel = 0\n", floor)
	fmt.Fprintln(b, rule)

	for _, d := range res.DOFDetails {
		fmt.Fprintf(b, "\n[Mode %d] joint velocities (normalized):\n", d.Mode)
		fmt.Fprintf(b, "   %s | %s | %s\n", pad("Edge (from -> to)", 25), pad("Velocity", 12), "Bar")
		fmt.Fprintln(b, strings.Repeat("-", 65))

		vs := append([]mobility.EdgeVelocity(nil), d.Velocities...)
		sort.SliceStable(vs, func(i, j int) bool { return math.Abs(vs[i].Velocity) > math.Abs(vs[j].Velocity) })

		moving := false
		for _, ev := range vs {
			if math.Abs(ev.Velocity) <= floor {
				continue
			}
			moving = true
			bar := strings.Repeat("█", int(math.Abs(ev.Velocity)*20))
			fmt.Fprintf(b, "   %s | %s | %s\n",
				pad(fmt.Sprintf("%d -> %d", ev.From, ev.To), 25), pad(fmt.Sprintf("%.4f", ev.Velocity), 12), bar)
		}
		if !moving {
			fmt.Fprintln(b, st.muted.Render("   (every joint velocity is near zero; likely numerical noise)"))
		}
	}
}

// YAML writes res as a machine-readable document.
func YAML(w io.Writer, name string, res *mobility.Result) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	doc := struct {
		Name   string           `yaml:"name"`
		Result *mobility.Result `yaml:"result"`
	}{name, res}
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("report: %w", err)
	}
	return enc.Close()
}

// pad right-fills s to display width n; emoji count as wide cells.
func pad(s string, n int) string {
	if w := lipgloss.Width(s); w < n {
		return s + strings.Repeat(" ", n-w)
	}
	return s
}

func joinInts(xs []int, sep string) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = fmt.Sprint(x)
	}
	return strings.Join(parts, sep)
}
