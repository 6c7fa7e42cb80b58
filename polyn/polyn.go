// Package polyn is for arithmetic with univariate polynomials, as used for
// truncated power series and for single-unknown linear relations.
/*
BSD 3-Clause License

Copyright (c) 2017–21, Norbert Pillmayer.

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions are met:

1. Redistributions of source code must retain the above copyright notice, this
   list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright notice,
   this list of conditions and the following disclaimer in the documentation
   and/or other materials provided with the distribution.

3. Neither the name of the copyright holder nor the names of its
   contributors may be used to endorse or promote products derived from
   this software without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS"
AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE
IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE ARE
DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE LIABLE
FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR CONSEQUENTIAL
DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR
SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER
CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY,
OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.
*/
package polyn

import (
	"bytes"
	"errors"
	"fmt"
	"math"

	"github.com/emirpasic/gods/maps/treemap"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/transit"
)

// tracer writes to trace with key 'polyn'
func tracer() tracing.Trace {
	return tracing.Select("polyn")
}

var (
	// ErrNegativeExponent flags a term with an exponent below 0.
	ErrNegativeExponent = errors.New("term exponent must not be negative")
	// ErrNotLinear flags a root request for a polynomial of degree other than 1.
	ErrNotLinear = errors.New("polynomial is not linear")
)

// X is a helper for quick construction of polynomials.
// It denotes a term
//
//	C⋅x^I
//
// I ≥ 0
type X struct {
	I int     // exponent of x
	C float64 // coefficient
}

// New creates a polynomial, given the constant term and further terms.
//
// Use it as
//
//	polyn.New(8, polyn.X{2,5}, polyn.X{1,2/3} )
//
// to get
//
//	P(x) = 8 + 2/3x + 5x²
func New(c float64, tms ...X) (Polynomial, error) {
	p := NewConstantPolynomial(c)
	var err error
	for _, t := range tms {
		if t.I < 0 {
			err = fmt.Errorf("%w: skipping x^%d", ErrNegativeExponent, t.I)
		} else {
			p.SetTerm(t.I, p.GetCoeffForTerm(t.I)+t.C)
		}
	}
	return p, err
}

// Polynomial is a type for univariate polynomials
//
//	c + a.1 x + a.2 x² + ... a.n xⁿ .
//
// We store the coefficients only, keyed by exponent. Index 0 is the constant
// term. Coefficients live in a TreeMap (sorted map), so iteration runs in
// ascending exponent order. Polynomials are not mutated by arithmetic; after
// construction they may be evaluated concurrently.
type Polynomial struct {
	Terms *treemap.Map
}

// NewConstantPolynomial creates a Polynomial consisting of just a constant term.
func NewConstantPolynomial(c float64) Polynomial {
	p := Polynomial{}
	p.checkTerms()
	p.Terms.Put(0, c)
	return p
}

func (p *Polynomial) checkTerms() {
	if p.Terms == nil {
		p.Terms = treemap.NewWithIntComparator()
	}
}

// SetTerm sets the coefficient for term x^i within a Polynomial.
// For i=0, sets the constant term.
func (p Polynomial) SetTerm(i int, scale float64) Polynomial {
	p.checkTerms()
	p.Terms.Put(i, scale)
	return p
}

// GetCoeffForTerm gets the coefficient for term x^i.
//
// Example:
//
//	p = x + 3x²
//
// ⇒
//
//	coeff(2) = 3
func (p Polynomial) GetCoeffForTerm(i int) float64 {
	if p.Terms == nil {
		return 0.0
	}
	if sc, found := p.Terms.Get(i); found {
		return sc.(float64)
	}
	return 0.0
}

// Exponents returns the exponents of all stored terms, ascending.
func (p Polynomial) Exponents() []int {
	if p.Terms == nil {
		return nil
	}
	keys := p.Terms.Keys()
	exps := make([]int, len(keys))
	for i, k := range keys {
		exps[i] = k.(int)
	}
	return exps
}

// TermCount is the number of stored terms, including the constant term.
func (p Polynomial) TermCount() int {
	if p.Terms == nil {
		return 0
	}
	return p.Terms.Size()
}

// Degree is the highest exponent with a non-zero coefficient.
func (p Polynomial) Degree() int {
	exps := p.Exponents()
	for i := len(exps) - 1; i >= 0; i-- {
		if p.GetCoeffForTerm(exps[i]) != 0 {
			return exps[i]
		}
	}
	return 0
}

// CopyPolynomial makes a copy of a Polynomial.
func (p Polynomial) CopyPolynomial() Polynomial {
	p1 := NewConstantPolynomial(0.0)
	if p.Terms == nil {
		return p1
	}
	it := p.Terms.Iterator()
	for it.Next() {
		p1.SetTerm(it.Key().(int), it.Value().(float64))
	}
	return p1
}

// Internal method: add or subtract 2 polynomials. The high level methods
// are based on this one.
// Flag doAdd signals addition or subtraction.
func (p Polynomial) addOrSub(p2 Polynomial, doAdd bool) Polynomial {
	p1 := p.CopyPolynomial()
	if p2.Terms == nil {
		return p1
	}
	it2 := p2.Terms.Iterator()
	for it2.Next() {
		pos2 := it2.Key().(int)
		scale2 := it2.Value().(float64)
		scale1 := p1.GetCoeffForTerm(pos2)
		if doAdd {
			scale1 = scale1 + scale2
		} else {
			scale1 = scale1 - scale2
		}
		p1.SetTerm(pos2, scale1)
	}
	return p1
}

// Add adds two Polynomials. Returns a new Polynomial.
func (p Polynomial) Add(p2 Polynomial) Polynomial {
	return p.addOrSub(p2, true)
}

// Subtract subtracts two Polynomials. Returns a new Polynomial.
func (p Polynomial) Subtract(p2 Polynomial) Polynomial {
	return p.addOrSub(p2, false)
}

// Scale multiplies all coefficients by c. Returns a new Polynomial.
func (p Polynomial) Scale(c float64) Polynomial {
	p1 := NewConstantPolynomial(0.0)
	if p.Terms == nil {
		return p1
	}
	it := p.Terms.Iterator()
	for it.Next() {
		p1.SetTerm(it.Key().(int), it.Value().(float64)*c)
	}
	return p1
}

// Derivative returns the exact derivative d/dx of p.
func (p Polynomial) Derivative() Polynomial {
	d := NewConstantPolynomial(0.0)
	if p.Terms == nil {
		return d
	}
	it := p.Terms.Iterator()
	for it.Next() {
		i := it.Key().(int)
		if i == 0 {
			continue
		}
		d.SetTerm(i-1, float64(i)*it.Value().(float64))
	}
	return d
}

// Eval evaluates p at x. Powers of x are built up incrementally along the
// ascending exponents, so no call to math.Pow is needed.
func (p Polynomial) Eval(x float64) float64 {
	if p.Terms == nil {
		return 0.0
	}
	var sum float64
	pow, exp := 1.0, 0
	it := p.Terms.Iterator()
	for it.Next() {
		i := it.Key().(int)
		for ; exp < i; exp++ {
			pow *= x
		}
		sum += it.Value().(float64) * pow
	}
	return sum
}

// IsConstant checks wether
// a Polynomial is a constant, i.e. p = { c }? Returns the constant and a flag.
func (p Polynomial) IsConstant() (float64, bool) {
	return p.GetCoeffForTerm(0), p.Degree() == 0
}

// LinearRoot solves the equation
//
//	0 = c + a⋅x
//
// for x. Fails with ErrNotLinear if p has terms of higher degree or if a
// vanishes (within transit.Epsilon).
func (p Polynomial) LinearRoot() (float64, error) {
	if p.Degree() > 1 {
		return math.NaN(), fmt.Errorf("%w: degree %d", ErrNotLinear, p.Degree())
	}
	if c, constant := p.IsConstant(); constant {
		tracer().Debugf("no root for constant equation 0 = %g", c)
		return math.NaN(), fmt.Errorf("%w: constant %g", ErrNotLinear, c)
	}
	a := p.GetCoeffForTerm(1)
	if transit.Is0(a) {
		tracer().Debugf("no root for nearly constant equation 0 = %s", p)
		return math.NaN(), fmt.Errorf("%w: vanishing linear coefficient", ErrNotLinear)
	}
	return -p.GetCoeffForTerm(0) / a, nil
}

// String creates a readable string representation for a Polynomial, with
// the variable printed as 'x'.
func (p Polynomial) String() string {
	return p.TraceString("x")
}

// TraceString creates a string representation for a Polynomial, using
// variable name v. Zero terms are omitted, except for the zero polynomial.
func (p Polynomial) TraceString(v string) string {
	var buffer bytes.Buffer
	if p.Terms == nil {
		return "0"
	}
	it := p.Terms.Iterator()
	for it.Next() {
		pos := it.Key().(int)
		scale := it.Value().(float64)
		if scale == 0 {
			continue
		}
		if buffer.Len() > 0 {
			if scale < 0 {
				buffer.WriteString(" - ")
			} else {
				buffer.WriteString(" + ")
			}
			scale = math.Abs(scale)
		}
		switch pos {
		case 0:
			buffer.WriteString(fmt.Sprintf("%g", scale))
		case 1:
			buffer.WriteString(fmt.Sprintf("%g%s", scale, v))
		default:
			buffer.WriteString(fmt.Sprintf("%g%s^%d", scale, v, pos))
		}
	}
	if buffer.Len() == 0 {
		return "0"
	}
	return buffer.String()
}
