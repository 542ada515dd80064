package tax

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/bsujalnaik/GoogleHackathon/internal/domain"
)

// Slab is one contiguous income range taxed at a fixed rate. Upper is nil
// for the open top slab.
type Slab struct {
	Lower decimal.Decimal
	Upper *decimal.Decimal
	Rate  decimal.Decimal
}

// Engine computes slab-based liability for a fixed slab table and a set of
// per-section deduction caps. All arithmetic is decimal so breakdown
// amounts sum exactly to the payable tax.
type Engine struct {
	slabs []Slab
	caps  map[string]decimal.Decimal
}

// NewEngine validates that the slab table is ordered, non-overlapping and
// covers zero to infinity.
func NewEngine(slabs []Slab, caps map[string]decimal.Decimal) (*Engine, error) {
	if len(slabs) == 0 {
		return nil, fmt.Errorf("slab table must not be empty")
	}
	if !slabs[0].Lower.IsZero() {
		return nil, fmt.Errorf("first slab must start at 0, starts at %s", slabs[0].Lower)
	}
	for i, s := range slabs {
		if s.Rate.IsNegative() {
			return nil, fmt.Errorf("slab %d has negative rate %s", i, s.Rate)
		}
		last := i == len(slabs)-1
		if last {
			if s.Upper != nil {
				return nil, fmt.Errorf("last slab must be open-ended")
			}
			continue
		}
		if s.Upper == nil {
			return nil, fmt.Errorf("slab %d is open-ended but not last", i)
		}
		if !s.Upper.GreaterThan(s.Lower) {
			return nil, fmt.Errorf("slab %d has upper %s <= lower %s", i, s.Upper, s.Lower)
		}
		if !slabs[i+1].Lower.Equal(*s.Upper) {
			return nil, fmt.Errorf("slab %d upper %s does not meet next lower %s", i, s.Upper, slabs[i+1].Lower)
		}
	}
	return &Engine{slabs: slabs, caps: caps}, nil
}

// DefaultEngine carries the Indian old-regime slab table and the common
// Chapter VI-A deduction caps.
func DefaultEngine() *Engine {
	upper := func(v int64) *decimal.Decimal {
		d := decimal.NewFromInt(v)
		return &d
	}
	e, err := NewEngine(
		[]Slab{
			{Lower: decimal.Zero, Upper: upper(250000), Rate: decimal.Zero},
			{Lower: decimal.NewFromInt(250000), Upper: upper(500000), Rate: decimal.NewFromFloat(0.05)},
			{Lower: decimal.NewFromInt(500000), Upper: upper(1000000), Rate: decimal.NewFromFloat(0.20)},
			{Lower: decimal.NewFromInt(1000000), Rate: decimal.NewFromFloat(0.30)},
		},
		map[string]decimal.Decimal{
			"80C":       decimal.NewFromInt(150000),
			"80CCD(1B)": decimal.NewFromInt(50000),
			"80D":       decimal.NewFromInt(25000),
			"80TTA":     decimal.NewFromInt(10000),
		},
	)
	if err != nil {
		panic(err)
	}
	return e
}

// Calculate caps each investment section, derives taxable income (floored
// at zero) and applies the slab table. Slabs above the taxable income are
// omitted from the breakdown; the zero-rate slab is kept so the breakdown
// tells the whole story.
func (e *Engine) Calculate(profile domain.TaxProfile) (domain.TaxResult, error) {
	if err := validate(profile); err != nil {
		return domain.TaxResult{}, err
	}

	taxable := e.taxableIncome(profile)

	result := domain.TaxResult{TaxableIncome: f(taxable)}
	payable := decimal.Zero
	for _, s := range e.slabs {
		if !taxable.GreaterThan(s.Lower) {
			break
		}
		portion := taxable.Sub(s.Lower)
		if s.Upper != nil {
			width := s.Upper.Sub(s.Lower)
			if portion.GreaterThan(width) {
				portion = width
			}
		}
		amount := portion.Mul(s.Rate)
		payable = payable.Add(amount)

		line := domain.SlabAmount{
			From:   f(s.Lower),
			Rate:   f(s.Rate),
			Amount: f(amount),
		}
		if s.Upper != nil {
			line.To = f(*s.Upper)
		}
		result.Breakdown = append(result.Breakdown, line)
	}
	result.TaxPayable = f(payable)
	return result, nil
}

// SuggestSavings lists every deduction section with remaining headroom,
// valuing it at the taxpayer's marginal slab rate. Ordered by tax saved
// descending, ties broken by section code ascending.
func (e *Engine) SuggestSavings(profile domain.TaxProfile) ([]domain.TaxSuggestion, error) {
	if err := validate(profile); err != nil {
		return nil, err
	}

	marginal := e.marginalRate(e.taxableIncome(profile))

	sections := make([]string, 0, len(e.caps))
	for code := range e.caps {
		sections = append(sections, code)
	}
	sort.Strings(sections)

	suggestions := make([]domain.TaxSuggestion, 0, len(sections))
	for _, code := range sections {
		cap := e.caps[code]
		used := decimal.NewFromFloat(profile.Investments[code])
		if used.GreaterThanOrEqual(cap) {
			continue
		}
		headroom := cap.Sub(used)
		saved := headroom.Mul(marginal)
		suggestions = append(suggestions, domain.TaxSuggestion{
			Section:  code,
			Headroom: f(headroom),
			TaxSaved: f(saved),
			Rationale: fmt.Sprintf("invest %s more under section %s to save %s in tax",
				headroom.StringFixed(0), code, saved.StringFixed(0)),
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		if suggestions[i].TaxSaved != suggestions[j].TaxSaved {
			return suggestions[i].TaxSaved > suggestions[j].TaxSaved
		}
		return suggestions[i].Section < suggestions[j].Section
	})
	return suggestions, nil
}

// formRule maps an income-source composition to an ITR form variant.
// First match wins.
type formRule struct {
	matches func(domain.TaxProfile) bool
	form    domain.ITRForm
}

var itr1IncomeLimit = decimal.NewFromInt(5000000)

var formRules = []formRule{
	{matches: func(p domain.TaxProfile) bool { return p.HasBusiness }, form: domain.ITR3},
	{matches: func(p domain.TaxProfile) bool { return p.HasCapitalGains }, form: domain.ITR2},
	{
		matches: func(p domain.TaxProfile) bool {
			return p.HasSalary && decimal.NewFromFloat(p.GrossIncome).LessThanOrEqual(itr1IncomeLimit)
		},
		form: domain.ITR1,
	},
}

// RecommendForm picks the return form variant for the profile's income
// sources. Salaried filers above the ITR-1 income limit fall through to
// ITR-2.
func (e *Engine) RecommendForm(profile domain.TaxProfile) (domain.ITRForm, error) {
	if err := validate(profile); err != nil {
		return "", err
	}
	for _, r := range formRules {
		if r.matches(profile) {
			return r.form, nil
		}
	}
	return domain.ITR2, nil
}

func (e *Engine) taxableIncome(profile domain.TaxProfile) decimal.Decimal {
	deductions := decimal.NewFromFloat(profile.OtherDeductions)
	for code, amount := range profile.Investments {
		d := decimal.NewFromFloat(amount)
		// sections without a configured cap deduct in full
		if cap, ok := e.caps[code]; ok && d.GreaterThan(cap) {
			d = cap
		}
		deductions = deductions.Add(d)
	}

	taxable := decimal.NewFromFloat(profile.GrossIncome).Sub(deductions)
	if taxable.IsNegative() {
		return decimal.Zero
	}
	return taxable
}

// marginalRate is the rate charged on the next rupee of income.
func (e *Engine) marginalRate(taxable decimal.Decimal) decimal.Decimal {
	for _, s := range e.slabs {
		if s.Upper == nil || taxable.LessThan(*s.Upper) {
			return s.Rate
		}
	}
	return e.slabs[len(e.slabs)-1].Rate
}

func validate(profile domain.TaxProfile) error {
	if profile.GrossIncome < 0 {
		return domain.Validationf("income must not be negative")
	}
	if profile.OtherDeductions < 0 {
		return domain.Validationf("deductions must not be negative")
	}
	for code, amount := range profile.Investments {
		if amount < 0 {
			return domain.Validationf("investment under %s must not be negative", code)
		}
	}
	return nil
}

func f(d decimal.Decimal) float64 {
	v, _ := d.Float64()
	return v
}
