// SPDX-License-Identifier: MIT

package ideal

import (
	"strconv"
	"strings"
)

// Summary is a plain report of a Basis for humans and logs. It is not a
// serialized model: coefficients are omitted.
type Summary struct {
	ID         string             `yaml:"id" json:"id"`
	Version    int                `yaml:"version" json:"version"`
	Vars       int                `yaml:"vars" json:"vars"`
	Samples    int                `yaml:"samples" json:"samples"`
	Degree     int                `yaml:"degree" json:"degree"`
	Saturated  bool               `yaml:"saturated" json:"saturated"`
	Spanned    bool               `yaml:"spanned" json:"spanned"`
	O          []string           `yaml:"o" json:"o"`
	Degrees    []DegreeSummary    `yaml:"degrees" json:"degrees"`
	Generators []GeneratorSummary `yaml:"generators" json:"generators"`
}

// DegreeSummary mirrors DegreeStats.
type DegreeSummary struct {
	Degree   int `yaml:"degree" json:"degree"`
	Raw      int `yaml:"raw" json:"raw"`
	Border   int `yaml:"border" json:"border"`
	Purged   int `yaml:"purged" json:"purged"`
	Admitted int `yaml:"admitted" json:"admitted"`
	Vanished int `yaml:"vanished" json:"vanished"`
}

// GeneratorSummary describes one generator.
type GeneratorSummary struct {
	Degree  int     `yaml:"degree" json:"degree"`
	Leading string  `yaml:"leading" json:"leading"`
	Support int     `yaml:"support" json:"support"` // non-zero coefficients
	Loss    float64 `yaml:"loss" json:"loss"`
}

// Summary reports b.
func (b *Basis) Summary() Summary {
	s := Summary{
		ID:        b.id.String(),
		Version:   b.version,
		Vars:      b.vars,
		Samples:   b.samples,
		Degree:    b.Degree(),
		Saturated: b.saturated,
		Spanned:   b.spanned,
		O:         make([]string, len(b.o)),
	}
	for i, t := range b.o {
		s.O[i] = t.String()
	}
	for _, st := range b.stats {
		s.Degrees = append(s.Degrees, DegreeSummary(st))
	}
	for _, p := range b.polys {
		support := 0
		for _, c := range p.Coefficients {
			if c != 0 {
				support++
			}
		}
		s.Generators = append(s.Generators, GeneratorSummary{
			Degree:  p.Degree,
			Leading: p.Leading.String(),
			Support: support,
			Loss:    p.Loss,
		})
	}

	return s
}

// Render writes p as "x0^2 - 1*x0", naming O-terms from o and listing
// non-zero coefficients only.
func (p Polynomial) Render(o []string) string {
	var sb strings.Builder
	sb.WriteString(p.Leading.String())
	for j, c := range p.Coefficients {
		if c == 0 {
			continue
		}
		name := "?"
		if j < len(o) {
			name = o[j]
		}
		if c > 0 {
			sb.WriteString(" - ")
		} else {
			sb.WriteString(" + ")
			c = -c
		}
		sb.WriteString(strconv.FormatFloat(c, 'g', 4, 64))
		sb.WriteByte('*')
		sb.WriteString(name)
	}

	return sb.String()
}
