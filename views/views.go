// Package views maps a dashboard selection to chart specifications. It is
// pure: no I/O and no rendering, only data shaped for a chart.
package views

import (
	"errors"
	"fmt"

	"saudicars/locale"
	"saudicars/models"
)

// ErrNoData is returned when a chart is requested for an empty filter result.
var ErrNoData = errors.New("no data for the selected filters")

// Page is one of the dashboard's menu entries.
type Page string

const (
	PageMain            Page = "main"
	PageOverview        Page = "overview"
	PageEDA             Page = "eda"
	PageRecommendations Page = "recommendations"
)

// Pages lists the menu in display order.
var Pages = []Page{PageMain, PageOverview, PageEDA, PageRecommendations}

// ParsePage validates a page identifier.
func ParsePage(s string) (Page, error) {
	for _, p := range Pages {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown page %q", s)
}

// Title returns the menu label of p.
func (p Page) Title(s *locale.Strings) string {
	switch p {
	case PageOverview:
		return s.MenuOverview
	case PageEDA:
		return s.MenuEDA
	case PageRecommendations:
		return s.MenuRecommendations
	default:
		return s.MenuMain
	}
}

// Tab is a section of the exploratory analysis page.
type Tab string

const (
	TabUnivariate   Tab = "univariate"
	TabBivariate    Tab = "bivariate"
	TabMultivariate Tab = "multivariate"
)

// Tabs lists the analysis tabs in display order.
var Tabs = []Tab{TabUnivariate, TabBivariate, TabMultivariate}

// ParseTab validates a tab identifier.
func ParseTab(s string) (Tab, error) {
	for _, t := range Tabs {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown tab %q", s)
}

// Title returns the tab label.
func (t Tab) Title(s *locale.Strings) string {
	switch t {
	case TabBivariate:
		return s.TabBivariate
	case TabMultivariate:
		return s.TabMultivariate
	default:
		return s.TabUnivariate
	}
}

// ChartKind identifies one of the fixed chart types.
type ChartKind string

const (
	KindHistogram      ChartKind = "histogram"
	KindBoxplot        ChartKind = "boxplot"
	KindCount          ChartKind = "count"
	KindTop            ChartKind = "top"
	KindScatter        ChartKind = "scatter"
	KindGroupedBoxplot ChartKind = "grouped-boxplot"
	KindCorrelation    ChartKind = "correlation"
)

// Kinds lists every chart kind.
var Kinds = []ChartKind{KindHistogram, KindBoxplot, KindCount, KindTop, KindScatter, KindGroupedBoxplot, KindCorrelation}

// ParseKind validates a chart kind identifier.
func ParseKind(s string) (ChartKind, error) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown chart kind %q", s)
}

// Variables offered on the scatter x axis and as boxplot categories.
var (
	XVars      = []string{models.ColMileage, models.ColYear, models.ColEngineSize}
	Categories = []string{models.ColGearType, models.ColOptions}
)

// Choice is everything the user picked that affects the charts.
type Choice struct {
	Selection models.Selection
	XVar      string
	Category  string
	TopN      int
}

// Normalize fills unset auxiliary choices with the first option of each
// selector and validates the rest.
func (c Choice) Normalize() (Choice, error) {
	if c.XVar == "" {
		c.XVar = XVars[0]
	}
	if c.Category == "" {
		c.Category = Categories[0]
	}
	if c.TopN <= 0 {
		c.TopN = 10
	}
	if !contains(XVars, c.XVar) {
		return c, fmt.Errorf("unknown x variable %q", c.XVar)
	}
	if !contains(Categories, c.Category) {
		return c, fmt.Errorf("unknown category %q", c.Category)
	}
	if c.Selection.Make == "" {
		c.Selection.Make = models.AllMakes
	}
	return c, nil
}

// View is a single chart request: a kind plus the choices it depends on.
type View struct {
	Kind     ChartKind `json:"kind"`
	Column   string    `json:"column,omitempty"`
	XVar     string    `json:"x,omitempty"`
	Category string    `json:"category,omitempty"`
	Make     string    `json:"make"`
	TopN     int       `json:"top_n,omitempty"`
}

// ViewFor builds the view of a single kind from a normalized choice.
func ViewFor(kind ChartKind, c Choice) View {
	v := View{Kind: kind, Make: c.Selection.MakeLabel()}
	switch kind {
	case KindHistogram, KindBoxplot:
		v.Column = models.ColPrice
	case KindCount:
		v.Category = models.ColGearType
	case KindTop:
		v.Category = models.ColMake
		v.TopN = c.TopN
	case KindScatter:
		v.XVar = c.XVar
		v.Column = models.ColPrice
	case KindGroupedBoxplot:
		v.Column = models.ColPrice
		v.Category = c.Category
	}
	return v
}

// Panel lists the charts of a tab along with any notices to show instead
// of hidden charts. The top-brands chart is only meaningful across makes.
func Panel(tab Tab, c Choice, s *locale.Strings) ([]View, []string) {
	switch tab {
	case TabUnivariate:
		views := []View{ViewFor(KindHistogram, c), ViewFor(KindBoxplot, c)}
		var notices []string
		if c.Selection.AnyMake() {
			views = append(views, ViewFor(KindTop, c))
		} else {
			notices = append(notices, s.TopHidden)
		}
		views = append(views, ViewFor(KindCount, c))
		return views, notices
	case TabBivariate:
		return []View{ViewFor(KindScatter, c), ViewFor(KindGroupedBoxplot, c)}, nil
	case TabMultivariate:
		return []View{ViewFor(KindCorrelation, c)}, nil
	}
	return nil, nil
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
