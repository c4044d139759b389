package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"go.uber.org/zap"
	"gonum.org/v1/plot/vg"

	"saudicars/charts"
	"saudicars/config"
	"saudicars/dataset"
	"saudicars/locale"
	"saudicars/report"
	"saudicars/server"
	"saudicars/utils"
	"saudicars/views"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [serve|export]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger, err := utils.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	loader := dataset.NewLoader(cfg.DataPath, logger)
	cleaner := dataset.NewCleaner(logger)
	logger.Info("starting", zap.String("data", loader.Path()), zap.String("lang", cfg.Language))

	cmd := flag.Arg(0)
	switch cmd {
	case "", "serve":
		err = serve(cfg, loader, cleaner, logger)
	case "export":
		err = export(cfg, loader, cleaner, logger)
	default:
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		logger.Fatal("command failed", zap.String("command", cmd), zap.Error(err))
	}
}

func serve(cfg *config.Config, loader *dataset.Loader, cleaner *dataset.Cleaner, logger *zap.Logger) error {
	// Warm the cache; a broken source is reported per request, not fatal.
	if _, err := loader.Load(); err != nil {
		logger.Warn("dataset not available at startup", zap.Error(err))
	}

	reg := server.NewRegistry()
	h := server.NewHandler(loader, cleaner, cfg, server.NewMetrics(reg), logger)
	s := server.New(cfg.HTTPAddr, server.NewRouter(h, reg), logger)

	errc := make(chan error, 1)
	go func() { errc <- s.Start() }()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGTERM, syscall.SIGINT)
	select {
	case err := <-errc:
		return err
	case <-stop:
	}

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.Shutdown(ctx)
}

// export runs the whole pipeline once for the default selection and writes
// every chart, the workbook and the insights report to the output directory.
func export(cfg *config.Config, loader *dataset.Loader, cleaner *dataset.Cleaner, logger *zap.Logger) error {
	s := locale.Get(cfg.Language)

	raw, err := loader.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, s.LoadError(err))
		return err
	}
	cleaned := cleaner.Clean(raw)
	sel := dataset.DefaultSelection(cleaned, cfg.DefaultYearMin)
	filtered := dataset.Filter(cleaned, sel)

	choice, err := views.Choice{Selection: sel, TopN: cfg.TopN}.Normalize()
	if err != nil {
		return err
	}

	var written []string
	width := vg.Length(cfg.ChartWidthIn) * vg.Inch
	height := vg.Length(cfg.ChartHeightIn) * vg.Inch
	for _, kind := range views.Kinds {
		spec, err := views.Build(views.ViewFor(kind, choice), filtered, s)
		if err != nil {
			logger.Warn("chart skipped", zap.String("kind", string(kind)), zap.Error(err))
			continue
		}
		path := filepath.Join(cfg.OutputDir, "chart_"+string(kind)+".png")
		if err := charts.SavePNG(spec, path, width, height); err != nil {
			return fmt.Errorf("chart %s: %w", kind, err)
		}
		written = append(written, path)
	}

	ov := report.NewOverview(raw, cleaned, sel, cfg.PreviewRows, cfg.TopN)
	workbook := filepath.Join(cfg.OutputDir, "saudi_used_cars.xlsx")
	if err := report.SaveWorkbook(workbook, ov, s); err != nil {
		return err
	}
	insights := filepath.Join(cfg.OutputDir, "insights_"+s.Lang+".md")
	if err := report.SaveInsights(insights, ov, s); err != nil {
		return err
	}
	written = append(written, workbook, insights)

	fmt.Println(s.Caption(sel.YearMin, sel.YearMax, sel.MakeLabel(), filtered.Len()))
	for _, p := range written {
		fmt.Println("   -", p)
	}
	logger.Info("export finished", zap.Int("files", len(written)), zap.String("dir", cfg.OutputDir))
	return nil
}
