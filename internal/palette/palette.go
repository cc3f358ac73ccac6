// Package palette generates accessible tonal palettes from a single base
// color. Each lighter and darker variation is paired with a text color that
// meets a target WCAG contrast ratio against it.
package palette

import (
	"errors"
	"fmt"

	"accessible-palette/internal/colormath"
)

const (
	// DefaultContrastRatio is WCAG AA for normal text.
	DefaultContrastRatio = 4.5
	DefaultVariations    = 5

	// SearchStep is how far every channel moves per search iteration.
	SearchStep = 5
	// MaxSearchSteps caps the text color search for one background.
	MaxSearchSteps = 100
)

// ErrValidation is returned when a Config fails validation.
var ErrValidation = errors.New("validation error")

// Config describes the palette to generate. A nil ContrastRatio or
// Variations selects the default; any value present must be at least 1.
type Config struct {
	BaseColor     string   `json:"baseColor" validate:"required"`
	ContrastRatio *float64 `json:"contrastRatio,omitempty" validate:"omitnil,gte=1"`
	Variations    *int     `json:"variations,omitempty" validate:"omitnil,gte=1"`
}

// Float64 returns a pointer to v, for Config.ContrastRatio.
func Float64(v float64) *float64 { return &v }

// Int returns a pointer to v, for Config.Variations.
func Int(v int) *int { return &v }

// Tone identifies which half of the palette a swatch belongs to.
type Tone string

const (
	Light Tone = "light"
	Dark  Tone = "dark"
)

// Accessible holds the text colors paired with each variation.
type Accessible struct {
	OnLight []string `json:"onLight"`
	OnDark  []string `json:"onDark"`
}

// Shortfall records a pair whose text search ended below the target ratio.
type Shortfall struct {
	Tone       Tone    `json:"tone"`
	Index      int     `json:"index"`
	Background string  `json:"background"`
	Text       string  `json:"text"`
	Ratio      float64 `json:"ratio"`
}

// Palette is the result of Generate. Light[i] pairs with Accessible.OnLight[i]
// and Dark[i] with Accessible.OnDark[i].
type Palette struct {
	Base       string      `json:"base"`
	Light      []string    `json:"light"`
	Dark       []string    `json:"dark"`
	Accessible Accessible  `json:"accessible"`
	Shortfalls []Shortfall `json:"shortfalls,omitempty"`

	// Target is the contrast ratio the palette was generated for.
	Target float64 `json:"-"`
}

// Pair is one background/text combination of a palette.
type Pair struct {
	Tone       Tone
	Index      int
	Background string
	Text       string
}

// Pairs returns every background/text pair, light tones first.
func (p *Palette) Pairs() []Pair {
	pairs := make([]Pair, 0, len(p.Light)+len(p.Dark))
	for i, bg := range p.Light {
		pairs = append(pairs, Pair{Tone: Light, Index: i, Background: bg, Text: p.Accessible.OnLight[i]})
	}
	for i, bg := range p.Dark {
		pairs = append(pairs, Pair{Tone: Dark, Index: i, Background: bg, Text: p.Accessible.OnDark[i]})
	}
	return pairs
}

// Compliant reports whether every pair reached the target ratio.
func (p *Palette) Compliant() bool {
	return len(p.Shortfalls) == 0
}

// Generate builds the palette described by cfg. Validation and base color
// parsing happen before any work; on failure no palette is returned.
func Generate(cfg Config) (*Palette, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("palette: %w", err)
	}
	target, n := cfg.resolve()

	base, err := colormath.HexToRGB(cfg.BaseColor)
	if err != nil {
		return nil, fmt.Errorf("palette: base color: %w", err)
	}

	p := &Palette{
		Base:   cfg.BaseColor,
		Light:  make([]string, 0, n),
		Dark:   make([]string, 0, n),
		Target: target,
		Accessible: Accessible{
			OnLight: make([]string, 0, n),
			OnDark:  make([]string, 0, n),
		},
	}

	for i := 1; i <= n; i++ {
		bg := colormath.Lighten(base, float64(i)/float64(n)).Round()
		text, ratio, ok := SearchText(bg, colormath.Black, colormath.White, target)
		p.Light = append(p.Light, bg.Hex())
		p.Accessible.OnLight = append(p.Accessible.OnLight, text.Hex())
		if !ok {
			p.addShortfall(Light, i-1, bg, text, ratio)
		}
	}

	for i := 1; i <= n; i++ {
		bg := colormath.Darken(base, float64(i)/float64(n)).Round()
		text, ratio, ok := SearchText(bg, colormath.White, colormath.Black, target)
		p.Dark = append(p.Dark, bg.Hex())
		p.Accessible.OnDark = append(p.Accessible.OnDark, text.Hex())
		if !ok {
			p.addShortfall(Dark, i-1, bg, text, ratio)
		}
	}

	return p, nil
}

func (p *Palette) addShortfall(tone Tone, index int, bg, text colormath.RGB, ratio float64) {
	p.Shortfalls = append(p.Shortfalls, Shortfall{
		Tone:       tone,
		Index:      index,
		Background: bg.Hex(),
		Text:       text.Hex(),
		Ratio:      ratio,
	})
}

// SearchText looks for a text color readable on bg, stepping every channel
// by SearchStep from from toward toward.
//
// When from meets target the search relaxes toward the background and stops
// before the ratio drops below target, so the result is the least extreme
// color that still satisfies it. When from falls short the search keeps
// walking, past the background, until the first candidate that meets target.
// Either way at most MaxSearchSteps steps are taken. If nothing satisfies
// target the candidate with the highest ratio is returned and ok is false.
func SearchText(bg, from, toward colormath.RGB, target float64) (text colormath.RGB, ratio float64, ok bool) {
	bgLum := bg.Luminance()
	contrast := func(c colormath.RGB) float64 {
		return colormath.ContrastRatio(bgLum, c.Luminance())
	}

	step := float64(SearchStep)
	if toward.R < from.R {
		step = -step
	}

	text = from.Clamp()
	ratio = contrast(text)
	if ratio >= target {
		for i := 0; i < MaxSearchSteps; i++ {
			next := text.Step(step)
			if next == text {
				break
			}
			r := contrast(next)
			if r < target {
				break
			}
			text, ratio = next, r
		}
		return text, ratio, true
	}

	best, bestRatio := text, ratio
	for i := 0; i < MaxSearchSteps; i++ {
		next := text.Step(step)
		if next == text {
			break
		}
		text, ratio = next, contrast(next)
		if ratio >= target {
			return text, ratio, true
		}
		if ratio > bestRatio {
			best, bestRatio = text, ratio
		}
	}
	return best, bestRatio, false
}
