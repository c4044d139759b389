package server

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"gonum.org/v1/plot/vg"

	"saudicars/charts"
	"saudicars/config"
	"saudicars/dataset"
	"saudicars/locale"
	"saudicars/models"
	"saudicars/report"
	"saudicars/views"
)

// Source provides the raw dataset.
type Source interface {
	Load() (*models.Dataset, error)
}

// Handler serves the dashboard pages. Every request runs the whole
// pipeline: load (cached by the source), clean, filter, build charts.
type Handler struct {
	source   Source
	cleaner  *dataset.Cleaner
	cfg      *config.Config
	logger   *zap.Logger
	metrics  *Metrics
	validate *validator.Validate
}

// NewHandler wires a Handler.
func NewHandler(source Source, cleaner *dataset.Cleaner, cfg *config.Config, metrics *Metrics, logger *zap.Logger) *Handler {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if name := f.Tag.Get("query"); name != "" {
			return name
		}
		return f.Name
	})
	return &Handler{
		source:   source,
		cleaner:  cleaner,
		cfg:      cfg,
		logger:   logger.With(zap.String("component", "http")),
		metrics:  metrics,
		validate: v,
	}
}

// Routes returns the /api routes.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/pages/{page}", h.GetPage)
	r.Get("/overview", h.GetOverview)
	r.Get("/filters", h.GetFilters)
	r.Get("/eda", h.GetEDA)
	r.Get("/charts/{kind}.png", h.GetChart)
	r.Get("/export.xlsx", h.GetWorkbook)
	return r
}

func (h *Handler) strings(r *http.Request) *locale.Strings {
	lang := r.URL.Query().Get("lang")
	if !locale.Supported(lang) {
		lang = h.cfg.Language
	}
	return locale.Get(lang)
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	s := h.strings(r)
	apiErr := toAPIError(err, s)

	fields := []zap.Field{
		zap.String("request_id", middleware.GetReqID(r.Context())),
		zap.String("path", r.URL.Path),
		zap.Int("status", apiErr.StatusCode),
		zap.Error(err),
	}
	switch {
	case dataset.IsDataSourceError(err):
		h.metrics.loadFailures.Inc()
		h.logger.Error("dataset unavailable", fields...)
	case apiErr.StatusCode >= http.StatusInternalServerError:
		h.logger.Error("request failed", fields...)
	default:
		h.logger.Debug("request rejected", fields...)
	}

	if err := render.Render(w, r, apiErr); err != nil {
		h.logger.Error("render error response", zap.Error(err))
	}
}

// cleanedData loads and cleans the dataset for one request.
func (h *Handler) cleanedData() (raw, cleaned *models.Dataset, err error) {
	raw, err = h.source.Load()
	if err != nil {
		return nil, nil, err
	}
	return raw, h.cleaner.Clean(raw), nil
}

type pageResponse struct {
	Page  views.Page `json:"page"`
	Title string     `json:"title"`
	Menu  []menuItem `json:"menu"`

	Heading    string   `json:"heading,omitempty"`
	Subheading string   `json:"subheading,omitempty"`
	Body       []string `json:"body,omitempty"`
	ListHead   string   `json:"list_head,omitempty"`
	List       []string `json:"list,omitempty"`
	ExtraHead  string   `json:"extra_head,omitempty"`
	Extra      []string `json:"extra,omitempty"`
	DataURL    string   `json:"data_url,omitempty"`
	Footer     string   `json:"footer"`
}

type menuItem struct {
	Page  views.Page `json:"page"`
	Label string     `json:"label"`
}

// GetPage handles GET /api/pages/{page}: the static text of a menu entry.
func (h *Handler) GetPage(w http.ResponseWriter, r *http.Request) {
	page, err := views.ParsePage(chi.URLParam(r, "page"))
	if err != nil {
		h.fail(w, r, ErrNotFound("page"))
		return
	}
	s := h.strings(r)

	resp := pageResponse{Page: page, Title: s.AppTitle, Footer: s.Footer}
	for _, p := range views.Pages {
		resp.Menu = append(resp.Menu, menuItem{Page: p, Label: p.Title(s)})
	}

	switch page {
	case views.PageMain:
		resp.Heading = s.MainTitle
		resp.Subheading = s.ContextHead
		resp.Body = []string{s.Context, s.Goal}
		resp.List = s.Objectives
	case views.PageRecommendations:
		resp.Heading = s.RecommendationsTitle
		resp.Body = []string{s.RecommendationsIntro}
		resp.ListHead = s.InsightsHead
		resp.List = s.Insights
		resp.ExtraHead = s.FutureHead
		resp.Extra = s.FutureWork
	case views.PageOverview:
		resp.Heading = s.OverviewTitle
		resp.DataURL = "/api/overview"
	case views.PageEDA:
		resp.Heading = s.EDATitle
		resp.DataURL = "/api/eda"
	}
	render.JSON(w, r, resp)
}

type tableResponse struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

type overviewResponse struct {
	Title         string                 `json:"title"`
	Metrics       models.Metrics         `json:"metrics"`
	MetricLabels  map[string]string      `json:"metric_labels"`
	PreviewTitle  string                 `json:"preview_title"`
	Preview       tableResponse          `json:"preview"`
	DescribeTitle string                 `json:"describe_title"`
	Describe      []models.ColumnSummary `json:"describe"`
	TypesTitle    string                 `json:"types_title"`
	Types         []models.Column        `json:"types"`
}

// GetOverview handles GET /api/overview.
func (h *Handler) GetOverview(w http.ResponseWriter, r *http.Request) {
	raw, cleaned, err := h.cleanedData()
	if err != nil {
		h.fail(w, r, err)
		return
	}
	s := h.strings(r)

	render.JSON(w, r, overviewResponse{
		Title:   s.OverviewTitle,
		Metrics: dataset.Summarize(raw, cleaned),
		MetricLabels: map[string]string{
			"raw":     s.MetricRaw,
			"cleaned": s.MetricCleaned,
			"removed": s.MetricRemoved,
		},
		PreviewTitle:  s.PreviewTitle,
		Preview:       table(dataset.Head(cleaned, h.cfg.PreviewRows)),
		DescribeTitle: s.DescribeTitle,
		Describe:      dataset.Describe(cleaned),
		TypesTitle:    s.TypesTitle,
		Types:         dataset.ColumnTypes(cleaned),
	})
}

func table(ds *models.Dataset) tableResponse {
	t := tableResponse{Columns: make([]string, len(ds.Columns)), Rows: make([][]string, 0, ds.Len())}
	for i, c := range ds.Columns {
		t.Columns[i] = c.Name
	}
	for _, rec := range ds.Records {
		t.Rows = append(t.Rows, rec.Values)
	}
	return t
}

type filtersResponse struct {
	YearMin    int              `json:"year_min"`
	YearMax    int              `json:"year_max"`
	Default    models.Selection `json:"default"`
	Makes      []string         `json:"makes"`
	Tabs       []tabOption      `json:"tabs"`
	XVars      []string         `json:"x_vars"`
	Categories []string         `json:"categories"`
}

type tabOption struct {
	Tab   views.Tab `json:"tab"`
	Label string    `json:"label"`
}

// GetFilters handles GET /api/filters: the content of every selector.
func (h *Handler) GetFilters(w http.ResponseWriter, r *http.Request) {
	_, cleaned, err := h.cleanedData()
	if err != nil {
		h.fail(w, r, err)
		return
	}
	s := h.strings(r)

	ymin, ymax, _ := dataset.YearBounds(cleaned)
	resp := filtersResponse{
		YearMin:    ymin,
		YearMax:    ymax,
		Default:    dataset.DefaultSelection(cleaned, h.cfg.DefaultYearMin),
		Makes:      dataset.MakeOptions(cleaned),
		XVars:      views.XVars,
		Categories: views.Categories,
	}
	for _, t := range views.Tabs {
		resp.Tabs = append(resp.Tabs, tabOption{Tab: t, Label: t.Title(s)})
	}
	render.JSON(w, r, resp)
}

// edaQuery holds the EDA query parameters; the query tags name them in
// validation errors.
type edaQuery struct {
	Tab      string `query:"tab" validate:"omitempty,oneof=univariate bivariate multivariate"`
	YearMin  int    `query:"year_min" validate:"gte=0"`
	YearMax  int    `query:"year_max" validate:"gtefield=YearMin"`
	Make     string `query:"make" validate:"max=100"`
	XVar     string `query:"x" validate:"omitempty,oneof=Mileage Year Engine_Size"`
	Category string `query:"category" validate:"omitempty,oneof=Gear_Type Options"`
	TopN     int    `query:"top_n" validate:"gte=0,lte=100"`
}

// selection parses and validates the filter parameters against the
// cleaned dataset's year range.
func (h *Handler) selection(r *http.Request, cleaned *models.Dataset) (views.Choice, views.Tab, error) {
	def := dataset.DefaultSelection(cleaned, h.cfg.DefaultYearMin)
	q := edaQuery{
		Tab:     string(views.TabUnivariate),
		YearMin: def.YearMin,
		YearMax: def.YearMax,
		Make:    models.AllMakes,
		TopN:    h.cfg.TopN,
	}

	values := r.URL.Query()
	setString(values, "tab", &q.Tab)
	setString(values, "make", &q.Make)
	setString(values, "x", &q.XVar)
	setString(values, "category", &q.Category)
	for _, p := range []struct {
		name string
		dst  *int
	}{
		{"year_min", &q.YearMin},
		{"year_max", &q.YearMax},
		{"top_n", &q.TopN},
	} {
		if err := setInt(values, p.name, p.dst); err != nil {
			return views.Choice{}, "", err
		}
	}

	if err := h.validate.Struct(q); err != nil {
		return views.Choice{}, "", err
	}

	if ymin, ymax, ok := dataset.YearBounds(cleaned); ok {
		if q.YearMin < ymin || q.YearMin > ymax {
			return views.Choice{}, "", ErrValidation("year_min", fmt.Sprintf("must be within %d-%d", ymin, ymax))
		}
		if q.YearMax < ymin || q.YearMax > ymax {
			return views.Choice{}, "", ErrValidation("year_max", fmt.Sprintf("must be within %d-%d", ymin, ymax))
		}
	}

	tab, err := views.ParseTab(q.Tab)
	if err != nil {
		return views.Choice{}, "", ErrValidation("tab", err.Error())
	}
	choice, err := views.Choice{
		Selection: models.Selection{YearMin: q.YearMin, YearMax: q.YearMax, Make: q.Make},
		XVar:      q.XVar,
		Category:  q.Category,
		TopN:      q.TopN,
	}.Normalize()
	if err != nil {
		return views.Choice{}, "", ErrValidation("x", err.Error())
	}
	return choice, tab, nil
}

func setString(values url.Values, name string, dst *string) {
	if v := strings.TrimSpace(values.Get(name)); v != "" {
		*dst = v
	}
}

func setInt(values url.Values, name string, dst *int) error {
	v := strings.TrimSpace(values.Get(name))
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return ErrValidation(name, "must be an integer")
	}
	*dst = n
	return nil
}

type chartEntry struct {
	View   views.View       `json:"view"`
	Spec   *views.ChartSpec `json:"spec"`
	PNGURL string           `json:"png_url"`
}

type edaResponse struct {
	Title     string           `json:"title"`
	Tab       views.Tab        `json:"tab"`
	TabTitle  string           `json:"tab_title"`
	Caption   string           `json:"caption"`
	Selection models.Selection `json:"selection"`
	Total     int              `json:"total"`
	NoData    bool             `json:"no_data"`
	Message   string           `json:"message,omitempty"`
	Notices   []string         `json:"notices,omitempty"`
	Charts    []chartEntry     `json:"charts,omitempty"`
}

// GetEDA handles GET /api/eda: the caption and chart specs of one tab. An
// empty filter result is reported as no_data rather than as charts.
func (h *Handler) GetEDA(w http.ResponseWriter, r *http.Request) {
	_, cleaned, err := h.cleanedData()
	if err != nil {
		h.fail(w, r, err)
		return
	}
	choice, tab, err := h.selection(r, cleaned)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	s := h.strings(r)

	filtered := dataset.Filter(cleaned, choice.Selection)
	sel := choice.Selection
	resp := edaResponse{
		Title:     s.EDATitle,
		Tab:       tab,
		TabTitle:  tab.Title(s),
		Caption:   s.Caption(sel.YearMin, sel.YearMax, sel.MakeLabel(), filtered.Len()),
		Selection: sel,
		Total:     filtered.Len(),
	}

	if filtered.Empty() {
		h.metrics.emptyResults.Inc()
		resp.NoData = true
		resp.Message = s.NoData
		render.JSON(w, r, resp)
		return
	}

	list, notices := views.Panel(tab, choice, s)
	resp.Notices = notices
	for _, v := range list {
		spec, err := views.Build(v, filtered, s)
		if err != nil {
			if errors.Is(err, views.ErrNoData) {
				continue
			}
			h.fail(w, r, err)
			return
		}
		resp.Charts = append(resp.Charts, chartEntry{View: v, Spec: spec, PNGURL: chartURL(v, choice, r.URL.Query().Get("lang"))})
	}
	render.JSON(w, r, resp)
}

func chartURL(v views.View, c views.Choice, lang string) string {
	q := url.Values{}
	q.Set("year_min", strconv.Itoa(c.Selection.YearMin))
	q.Set("year_max", strconv.Itoa(c.Selection.YearMax))
	q.Set("make", c.Selection.MakeLabel())
	q.Set("x", c.XVar)
	q.Set("category", c.Category)
	q.Set("top_n", strconv.Itoa(c.TopN))
	if lang != "" {
		q.Set("lang", lang)
	}
	return "/api/charts/" + string(v.Kind) + ".png?" + q.Encode()
}

// GetChart handles GET /api/charts/{kind}.png.
func (h *Handler) GetChart(w http.ResponseWriter, r *http.Request) {
	kind, err := views.ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		h.fail(w, r, ErrNotFound("chart"))
		return
	}
	_, cleaned, err := h.cleanedData()
	if err != nil {
		h.fail(w, r, err)
		return
	}
	choice, _, err := h.selection(r, cleaned)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	s := h.strings(r)

	filtered := dataset.Filter(cleaned, choice.Selection)
	spec, err := views.Build(views.ViewFor(kind, choice), filtered, s)
	if err != nil {
		if errors.Is(err, views.ErrNoData) {
			h.metrics.emptyResults.Inc()
		}
		h.fail(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	width := vg.Length(h.cfg.ChartWidthIn) * vg.Inch
	height := vg.Length(h.cfg.ChartHeightIn) * vg.Inch
	if err := charts.WritePNG(spec, w, width, height); err != nil {
		h.logger.Error("render chart", zap.String("kind", string(kind)), zap.Error(err))
		return
	}
	h.metrics.charts.WithLabelValues(string(kind)).Inc()
}

// GetWorkbook handles GET /api/export.xlsx: the overview and the current
// filter result as an Excel workbook.
func (h *Handler) GetWorkbook(w http.ResponseWriter, r *http.Request) {
	raw, cleaned, err := h.cleanedData()
	if err != nil {
		h.fail(w, r, err)
		return
	}
	choice, _, err := h.selection(r, cleaned)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	ov := report.NewOverview(raw, cleaned, choice.Selection, h.cfg.PreviewRows, choice.TopN)
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="saudi_used_cars.xlsx"`)
	if err := report.WriteWorkbook(w, ov, h.strings(r)); err != nil {
		h.logger.Error("write workbook", zap.Error(err))
	}
}
