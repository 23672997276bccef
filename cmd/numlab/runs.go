package main

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/numlab/internal/config"
	"github.com/san-kum/numlab/internal/lab"
	"github.com/san-kum/numlab/internal/numeric"
	"github.com/san-kum/numlab/internal/spectrum"
	"github.com/san-kum/numlab/internal/storage"
	"github.com/san-kum/numlab/internal/viz"
	"github.com/spf13/cobra"
)

const maxPlots = 4

func runEpicycles(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, lab.Fourier.String())
	if err != nil {
		return err
	}
	applyFourierFlags(cmd, args, cfg)
	if cmd.Flags().Changed("fps") {
		cfg.Fourier.FPS = frameRate
	}

	shape, ok := spectrum.LookupShape(cfg.Fourier.Shape)
	if !ok {
		return fmt.Errorf("unknown shape %q (available: %s)", cfg.Fourier.Shape, strings.Join(spectrum.ShapeNames(), ", "))
	}
	n := cfg.Fourier.Points
	if n <= 0 {
		n = shape.DefaultPoints
	}

	var s spectrum.Spectrum
	if cfg.Method == "centered" {
		s, err = spectrum.DecomposeCentered(shape.Sample(n), (n-1)/2)
	} else {
		s, err = spectrum.Decompose(shape.Sample(n))
	}
	if err != nil {
		return err
	}

	newLogger().Debug("starting player", "shape", shape.Name, "terms", len(s), "circles", cfg.Fourier.Circles)
	return viz.RunPlayer(viz.NewPlayer(shape.Name, s, viz.PlayerOptions{
		Circles: cfg.Fourier.Circles,
		FPS:     cfg.Fourier.FPS,
		Theme:   theme,
	}))
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tLAB\tMETHOD\tTIME\tSEED\tROWS")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\n",
			run.ID,
			run.Lab,
			run.Method,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Seed,
			run.Rows,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	table, err := st.LoadTable(runID)
	if err != nil {
		return err
	}
	if len(table.Rows) == 0 || len(table.Columns) < 2 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("lab: %s (%s)\n", meta.Lab, meta.Method)
	fmt.Printf("rows: %d\n", len(table.Rows))
	for _, name := range sortedKeys(meta.Metrics) {
		fmt.Println(viz.KV(name, meta.Metrics[name]))
	}

	// the first column is the abscissa
	plotted := 0
	for _, name := range table.Columns[1:] {
		if plotted == maxPlots {
			break
		}
		data := finite(table.Column(name))
		if len(data) < 2 {
			continue
		}
		fmt.Println()
		fmt.Println(asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(plotWidth),
			asciigraph.Caption(fmt.Sprintf("%s vs %s", name, table.Columns[0])),
		))
		plotted++
	}
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	table, err := st.LoadTable(args[0])
	if err != nil {
		return err
	}
	return storage.WriteCSV(os.Stdout, table)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	if jsonOut == "" {
		return st.WriteJSON(args[0], os.Stdout)
	}
	if err := st.ExportJSON(args[0], jsonOut); err != nil {
		return err
	}
	fmt.Printf("exported to %s\n", jsonOut)
	return nil
}

func listLabs(cmd *cobra.Command, args []string) error {
	registry := lab.NewRegistry()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "LAB\tMETHODS\tINPUTS")
	for _, k := range lab.Kinds() {
		inputs := strings.Join(registry.Catalog(k), ", ")
		if inputs == "" {
			inputs = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", k, strings.Join(registry.Methods(k), ", "), inputs)
	}
	return w.Flush()
}

func listPresets(cmd *cobra.Command, args []string) error {
	labs := config.Labs()
	if len(args) > 0 {
		labs = args[:1]
	}
	for _, name := range labs {
		presets := config.ListPresets(name)
		if len(presets) == 0 {
			fmt.Printf("no presets for lab: %s\n", name)
			continue
		}
		fmt.Printf("presets for %s:\n", name)
		for _, p := range presets {
			fmt.Printf("  %s\n", p)
		}
	}
	return nil
}

func finite(values []float64) []float64 {
	out := values[:0:0]
	for _, v := range values {
		if numeric.IsFinite(v) {
			out = append(out, v)
		}
	}
	return out
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
