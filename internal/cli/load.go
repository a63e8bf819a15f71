package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/meenmo/rateslib/cashflows"
	"github.com/meenmo/rateslib/curves"
	"github.com/meenmo/rateslib/indices"
	"github.com/meenmo/rateslib/instruments"
	"github.com/meenmo/rateslib/market"
	"github.com/meenmo/rateslib/pricing"
	"github.com/meenmo/rateslib/rates"
	"github.com/meenmo/rateslib/utils"
)

// marketFile is the JSON snapshot layout: a reference date, curves with
// discount factor nodes and past fixings, fx quotes and the risk-free
// curve of each currency.
type marketFile struct {
	ReferenceDate  string            `json:"referenceDate"`
	LocalCurrency  string            `json:"localCurrency"`
	Curves         []curveSpec       `json:"curves"`
	Fx             []fxSpec          `json:"fx"`
	RiskFreeCurves map[string]string `json:"riskFreeCurves"`
}

type curveSpec struct {
	Name        string             `json:"name"`
	Kind        string             `json:"kind"` // ibor or overnight
	Tenor       string             `json:"tenor"`
	DayCount    string             `json:"dayCount"`
	Compounding string             `json:"compounding"`
	Frequency   int                `json:"frequency"`
	Nodes       []nodeSpec         `json:"nodes"`
	Fixings     map[string]float64 `json:"fixings"`
}

type nodeSpec struct {
	Date string  `json:"date"`
	Df   float64 `json:"df"`
}

type fxSpec struct {
	From string  `json:"from"`
	To   string  `json:"to"`
	Rate float64 `json:"rate"`
}

type positionSpec struct {
	Name          string  `json:"name"`
	Kind          string  `json:"kind"` // fixed or floating
	Structure     string  `json:"structure"`
	StartDate     string  `json:"startDate"`
	EndDate       string  `json:"endDate"`
	Frequency     int     `json:"frequency"`
	Rate          float64 `json:"rate"`
	Spread        float64 `json:"spread"`
	DayCount      string  `json:"dayCount"`
	Compounding   string  `json:"compounding"`
	Notional      float64 `json:"notional"`
	Currency      string  `json:"currency"`
	Side          string  `json:"side"`
	DiscountCurve string  `json:"discountCurve"`
	ForecastCurve string  `json:"forecastCurve"`
}

// loadStore reads a market snapshot file into a Store.
func loadStore(path string) (*market.Store, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loadStore: %w", err)
	}
	var mf marketFile
	if err := json.Unmarshal(raw, &mf); err != nil {
		return nil, fmt.Errorf("loadStore: %w", err)
	}

	refDate, err := utils.DateParser(mf.ReferenceDate)
	if err != nil {
		return nil, fmt.Errorf("loadStore: %w", err)
	}
	localCcy, err := market.CurrencyFromCode(mf.LocalCurrency)
	if err != nil {
		return nil, fmt.Errorf("loadStore: %w", err)
	}
	store := market.NewStore(refDate, localCcy)

	curveIDs := make(map[string]int, len(mf.Curves))
	for _, cs := range mf.Curves {
		idx, err := buildIndex(refDate, cs)
		if err != nil {
			return nil, fmt.Errorf("loadStore: curve %q: %w", cs.Name, err)
		}
		curveIDs[cs.Name] = store.AddIndex(idx)
	}
	for _, fx := range mf.Fx {
		from, err := market.CurrencyFromCode(fx.From)
		if err != nil {
			return nil, fmt.Errorf("loadStore: %w", err)
		}
		to, err := market.CurrencyFromCode(fx.To)
		if err != nil {
			return nil, fmt.Errorf("loadStore: %w", err)
		}
		if err := store.AddExchangeRate(from, to, fx.Rate); err != nil {
			return nil, fmt.Errorf("loadStore: %w", err)
		}
	}
	for code, curveName := range mf.RiskFreeCurves {
		ccy, err := market.CurrencyFromCode(code)
		if err != nil {
			return nil, fmt.Errorf("loadStore: %w", err)
		}
		id, ok := curveIDs[curveName]
		if !ok {
			return nil, fmt.Errorf("loadStore: risk-free curve %q not defined", curveName)
		}
		if err := store.SetRiskFreeCurve(ccy, id); err != nil {
			return nil, fmt.Errorf("loadStore: %w", err)
		}
	}
	return store, nil
}

func buildIndex(refDate time.Time, cs curveSpec) (indices.InterestRateIndex, error) {
	def, err := parseDefinition(cs.DayCount, cs.Compounding, cs.Frequency)
	if err != nil {
		return nil, err
	}
	nodes := make(map[time.Time]float64, len(cs.Nodes))
	for _, n := range cs.Nodes {
		d, err := utils.DateParser(n.Date)
		if err != nil {
			return nil, err
		}
		nodes[d] = n.Df
	}
	curve, err := curves.NewDiscountCurve(refDate, nodes, curves.LogLinearInterpolator{})
	if err != nil {
		return nil, err
	}

	switch cs.Kind {
	case "overnight":
		idx := indices.NewOvernightIndex(cs.Name, def).LinkTo(curve)
		if err := addFixings(cs.Fixings, idx.AddFixing); err != nil {
			return nil, err
		}
		return idx, nil
	case "ibor", "":
		tenor := utils.NewPeriod(6, utils.UnitMonths)
		if cs.Tenor != "" {
			if tenor, err = utils.ParsePeriod(cs.Tenor); err != nil {
				return nil, err
			}
		}
		idx := indices.NewIborIndex(cs.Name, tenor, def).LinkTo(curve)
		if err := addFixings(cs.Fixings, idx.AddFixing); err != nil {
			return nil, err
		}
		return idx, nil
	default:
		return nil, fmt.Errorf("unknown curve kind %q", cs.Kind)
	}
}

func addFixings[T any](fixings map[string]float64, add func(time.Time, float64) T) error {
	for ds, rate := range fixings {
		d, err := utils.DateParser(ds)
		if err != nil {
			return err
		}
		add(d, rate)
	}
	return nil
}

// loadPortfolio reads the positions file and builds instruments bound to
// the store's curves by name.
func loadPortfolio(path string, store *market.Store) ([]pricing.Position, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loadPortfolio: %w", err)
	}
	var specs []positionSpec
	if err := json.Unmarshal(raw, &specs); err != nil {
		return nil, fmt.Errorf("loadPortfolio: %w", err)
	}

	portfolio := make([]pricing.Position, 0, len(specs))
	for _, ps := range specs {
		inst, err := buildPosition(ps, store)
		if err != nil {
			return nil, fmt.Errorf("loadPortfolio: position %q: %w", ps.Name, err)
		}
		portfolio = append(portfolio, pricing.Position{Name: ps.Name, Instrument: inst})
	}
	return portfolio, nil
}

func buildPosition(ps positionSpec, store *market.Store) (instruments.Instrument, error) {
	start, err := utils.DateParser(ps.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := utils.DateParser(ps.EndDate)
	if err != nil {
		return nil, err
	}
	ccy, err := market.CurrencyFromCode(ps.Currency)
	if err != nil {
		return nil, err
	}
	side, err := parseSide(ps.Side)
	if err != nil {
		return nil, err
	}
	structure, err := parseStructure(ps.Structure)
	if err != nil {
		return nil, err
	}
	def, err := parseDefinition(ps.DayCount, ps.Compounding, ps.Frequency)
	if err != nil {
		return nil, err
	}
	discountID, err := store.IndexStore().IDByName(ps.DiscountCurve)
	if err != nil {
		return nil, err
	}

	switch ps.Kind {
	case "fixed", "":
		return instruments.NewMakeFixedRateInstrument().
			WithStartDate(start).
			WithEndDate(end).
			WithFrequency(def.Frequency).
			WithStructure(structure).
			WithRate(rates.New(ps.Rate, def)).
			WithNotional(ps.Notional).
			WithCurrency(ccy).
			WithSide(side).
			WithDiscountCurveID(discountID).
			Build()
	case "floating":
		forecastID, err := store.IndexStore().IDByName(ps.ForecastCurve)
		if err != nil {
			return nil, err
		}
		return instruments.NewMakeFloatingRateInstrument().
			WithStartDate(start).
			WithEndDate(end).
			WithStructure(structure).
			WithSpread(ps.Spread).
			WithRateDefinition(def).
			WithNotional(ps.Notional).
			WithCurrency(ccy).
			WithSide(side).
			WithDiscountCurveID(discountID).
			WithForecastCurveID(forecastID).
			Build()
	default:
		return nil, fmt.Errorf("unknown position kind %q", ps.Kind)
	}
}

func parseDefinition(dayCount, compounding string, frequency int) (rates.Definition, error) {
	def := rates.DefaultDefinition()
	if dayCount != "" {
		def.DayCounter = utils.NewDayCounter(utils.DayCountConvention(dayCount))
	}
	if compounding != "" {
		comp, err := parseCompounding(compounding)
		if err != nil {
			return rates.Definition{}, err
		}
		def.Compounding = comp
	}
	if frequency != 0 {
		def.Frequency = utils.Frequency(frequency)
	}
	return def, nil
}

func parseCompounding(s string) (rates.Compounding, error) {
	switch s {
	case "simple":
		return rates.Simple, nil
	case "compounded":
		return rates.Compounded, nil
	case "continuous":
		return rates.Continuous, nil
	case "simpleThenCompounded":
		return rates.SimpleThenCompounded, nil
	case "compoundedThenSimple":
		return rates.CompoundedThenSimple, nil
	default:
		return 0, fmt.Errorf("unknown compounding %q", s)
	}
}

func parseSide(s string) (cashflows.Side, error) {
	switch s {
	case "receive", "":
		return cashflows.Receive, nil
	case "pay":
		return cashflows.Pay, nil
	default:
		return 0, fmt.Errorf("unknown side %q", s)
	}
}

func parseStructure(s string) (instruments.Structure, error) {
	switch s {
	case "bullet", "":
		return instruments.Bullet, nil
	case "equalRedemptions":
		return instruments.EqualRedemptions, nil
	case "equalPayments":
		return instruments.EqualPayments, nil
	case "zero":
		return instruments.Zero, nil
	default:
		return "", fmt.Errorf("unknown structure %q", s)
	}
}
