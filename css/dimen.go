package css

import (
	"fmt"
	"strconv"

	"github.com/npillmayer/tyse/core/dimen"
	. "github.com/npillmayer/tyse/core/percent"
)

const (
	dimenNone uint32 = 0

	dimenAbsolute uint32 = 0x0001
	dimenAuto     uint32 = 0x0002
	dimenInherit  uint32 = 0x0003
	dimenInitial  uint32 = 0x0004
	kindMask      uint32 = 0x000f

	dimenPercent uint32 = 0x0900
	relativeMask uint32 = 0xff00
)

// DimenT is an option type for CSS dimensions. Clients may hand DimenT values
// to dynamic style rules; they are rendered to CSS text at resolution time.
type DimenT struct {
	d       dimen.DU
	percent Percent
	flags   uint32
}

/*
type DimenT
	= Auto
	| Inherit
	| Initial
	| JustDimen dimen
	| Percentage Percent
*/

func Auto() DimenT {
	return DimenT{flags: dimenAuto}
}

func Inherit() DimenT {
	return DimenT{flags: dimenInherit}
}

func Initial() DimenT {
	return DimenT{flags: dimenInitial}
}

// JustDimen creates a CSS dimension with a fixed value of x.
func JustDimen(x dimen.DU) DimenT {
	return DimenT{d: x, flags: dimenAbsolute}
}

// Percentage creates a CSS dimension with a %-relative value.
func Percentage(n Percent) DimenT {
	return DimenT{percent: n, flags: dimenPercent}
}

// IsNone is true for the zero value, which does not denote any dimension.
func (d DimenT) IsNone() bool {
	return d.flags == dimenNone
}

// String renders a dimension as CSS text. Fixed dimensions are rendered in
// CSS points (1/72 in), e.g. "10pt". The zero value renders as the empty
// string.
func (d DimenT) String() string {
	var du dimen.DU
	var p Percent
	switch m := d.Match(); m {
	case m.Percentage(&p):
		return fmt.Sprint(p)
	case m.Just(&du):
		pt := float64(du) / float64(dimen.BP)
		return strconv.FormatFloat(pt, 'f', -1, 64) + "pt"
	case m.IsKind(Auto()):
		return "auto"
	case m.IsKind(Inherit()):
		return "inherit"
	case m.IsKind(Initial()):
		return "initial"
	}
	return ""
}

// ---------------------------------------------------------------------------

func (d DimenT) Match() *Matcher {
	return &Matcher{dimen: d}
}

type Matcher struct {
	dimen DimenT
}

func (m *Matcher) IsKind(d DimenT) *Matcher {
	switch {
	case (m.dimen.flags&relativeMask > 0) || (d.flags&relativeMask > 0):
		if m.dimen.flags&relativeMask == d.flags&relativeMask {
			return m
		}
		return nil
	case (m.dimen.flags & kindMask) == (d.flags & kindMask):
		return m
	}
	return nil
}

func (m *Matcher) Just(du *dimen.DU) *Matcher {
	if m.dimen.flags&kindMask == dimenAbsolute {
		if du != nil {
			*du = m.dimen.d
		}
		return m
	}
	return nil
}

func (m *Matcher) Percentage(p *Percent) *Matcher {
	if m.dimen.flags&relativeMask == dimenPercent {
		if p != nil {
			*p = m.dimen.percent
		}
		return m
	}
	return nil
}
