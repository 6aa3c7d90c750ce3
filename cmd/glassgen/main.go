// Command glassgen generates the liquid glass displacement map and filter
// graph, installs them into an HTML page and picks the nav contrast class.
//
// Usage:
//
//	glassgen -png map.png -svg filter.svg
//	glassgen -html index.html -layout layout.json -html-out out.html
//	glassgen -preview-src photo.jpg -preview-out preview.png
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gogpu/glass"
	"github.com/gogpu/glass/contrast"
	"github.com/gogpu/glass/export"
	"github.com/gogpu/glass/frame"
	"github.com/gogpu/glass/internal/filter"
	"github.com/gogpu/glass/internal/imgio"
	"github.com/gogpu/glass/page"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "glassgen:", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	cfg, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	glass.SetLogger(log)
	defer glass.SetLogger(nil)

	opts, err := cfg.Options()
	if err != nil {
		return err
	}
	eff, err := glass.NewEffect(opts...)
	if errors.Is(err, glass.ErrDegenerateField) {
		log.Warn("displacement field is degenerate, effect not installed",
			"radius", cfg.Radius, "n_out", cfg.IndexOutside, "n_in", cfg.IndexInside)
		return nil
	}
	if err != nil {
		return err
	}
	log.Info("generated displacement map",
		"size", fmt.Sprintf("%dx%d", eff.Image.Width(), eff.Image.Height()),
		"samples", eff.Field.Len(),
		"max_displacement", eff.Field.MaxDisplacement,
		"scale", eff.Filter.Scale)

	if err := writeArtifacts(cfg, eff, log); err != nil {
		return err
	}
	if cfg.HTML != "" {
		if err := renderPage(cfg, eff, stdout, log); err != nil {
			return err
		}
	}
	if cfg.PreviewSrc != "" {
		if err := renderPreview(cfg, eff, log); err != nil {
			return err
		}
	}
	return nil
}

// parseFlags builds the configuration: defaults, then the -config file,
// then explicit flags.
func parseFlags(args []string, stderr io.Writer) (*Config, error) {
	cfg := NewDefault()
	if path := configPath(args); path != "" {
		loaded, err := Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	fs := flag.NewFlagSet("glassgen", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.String("config", "", "JSON configuration file")
	fs.Float64Var(&cfg.Radius, "radius", cfg.Radius, "bezel radius in pixels")
	fs.Float64Var(&cfg.IndexOutside, "n-out", cfg.IndexOutside, "refractive index outside the glass")
	fs.Float64Var(&cfg.IndexInside, "n-in", cfg.IndexInside, "refractive index inside the glass")
	fs.Float64Var(&cfg.SampleDelta, "delta", cfg.SampleDelta, "finite difference step")
	fs.IntVar(&cfg.Width, "width", cfg.Width, "displacement map width")
	fs.IntVar(&cfg.Height, "height", cfg.Height, "displacement map height")
	fs.StringVar(&cfg.Center, "center", cfg.Center, "effect center as x,y (default image center)")
	fs.Float64Var(&cfg.ScaleFactor, "scale-factor", cfg.ScaleFactor, "filter scale multiplier")
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "rasterization workers (0 = GOMAXPROCS)")
	fs.StringVar(&cfg.PNG, "png", cfg.PNG, "write the displacement map PNG")
	fs.StringVar(&cfg.SVG, "svg", cfg.SVG, "write the SVG filter graph")
	fs.StringVar(&cfg.Table, "table", cfg.Table, "export the radial table (.xlsx or .csv)")
	fs.StringVar(&cfg.HTML, "html", cfg.HTML, "HTML page to install the filter into")
	fs.StringVar(&cfg.HTMLOut, "html-out", cfg.HTMLOut, "output HTML path (default stdout)")
	fs.StringVar(&cfg.Nav, "nav", cfg.Nav, "navigation bar selector")
	fs.StringVar(&cfg.Layout, "layout", cfg.Layout, "JSON layout with element boxes and scroll offset")
	fs.StringVar(&cfg.PreviewSrc, "preview-src", cfg.PreviewSrc, "source image to preview the effect on")
	fs.StringVar(&cfg.PreviewOut, "preview-out", cfg.PreviewOut, "preview output PNG")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "debug logging")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	return cfg, nil
}

// configPath finds the -config value ahead of the full parse so that the
// file can supply flag defaults.
func configPath(args []string) string {
	for i, a := range args {
		if a == "--" {
			break
		}
		name := strings.TrimLeft(a, "-")
		if name == a {
			continue
		}
		if v, ok := strings.CutPrefix(name, "config="); ok {
			return v
		}
		if name == "config" && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

func writeArtifacts(cfg *Config, eff *glass.Effect, log *slog.Logger) error {
	if cfg.PNG != "" {
		data, err := eff.Image.PNG()
		if err != nil {
			return err
		}
		if err := os.WriteFile(filepath.Clean(cfg.PNG), data, 0o644); err != nil { //nolint:gosec // output image
			return fmt.Errorf("write map: %w", err)
		}
		log.Info("wrote displacement map", "path", cfg.PNG, "bytes", len(data))
	}

	if cfg.SVG != "" {
		f, err := os.Create(filepath.Clean(cfg.SVG))
		if err != nil {
			return fmt.Errorf("create svg: %w", err)
		}
		if err := eff.Filter.WriteSVG(f); err != nil {
			_ = f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		log.Info("wrote filter graph", "path", cfg.SVG, "filter", eff.Filter.CSSValue())
	}

	if cfg.Table != "" {
		if err := export.WriteFile(cfg.Table, eff.Field); err != nil {
			return err
		}
		log.Info("exported radial table", "path", cfg.Table, "rows", eff.Field.Len())
	}
	return nil
}

func renderPage(cfg *Config, eff *glass.Effect, stdout io.Writer, log *slog.Logger) error {
	doc, err := page.Load(cfg.HTML, cfg.Nav)
	if err != nil {
		return err
	}
	if err := eff.Install(doc); err != nil {
		return err
	}

	if cfg.Layout != "" {
		layout, err := page.LoadLayout(cfg.Layout)
		if err != nil {
			return err
		}
		sel := contrast.NewSelector(page.NewGeometry(layout, doc), contrast.WithNav(cfg.Nav))

		// Initialization runs one pass directly; the layout's scroll
		// position is then delivered as a signal, as a browser would.
		loop := frame.NewLoop()
		w := contrast.NewWatcher(sel, doc, loop)
		if _, err := w.RecolorNow(); err != nil {
			log.Warn("initial recolor incomplete", "err", err)
		}
		w.Notify()
		loop.Flush()
		log.Info("applied contrast", "class", string(w.Last()), "scroll_y", layout.ScrollY, "passes", w.Passes())
	}

	out := stdout
	if cfg.HTMLOut != "" {
		f, err := os.Create(filepath.Clean(cfg.HTMLOut))
		if err != nil {
			return fmt.Errorf("create html: %w", err)
		}
		defer func() { _ = f.Close() }()
		out = f
	}
	if _, err := doc.WriteTo(out); err != nil {
		return err
	}
	if cfg.HTMLOut != "" {
		log.Info("wrote page", "path", cfg.HTMLOut)
	}
	return nil
}

func renderPreview(cfg *Config, eff *glass.Effect, log *slog.Logger) error {
	src, err := imgio.Load(cfg.PreviewSrc)
	if err != nil {
		return err
	}
	scaled, err := imgio.ScaleTo(src, eff.Image.Width(), eff.Image.Height())
	if err != nil {
		return err
	}

	dst := imgio.ToNRGBA(scaled)
	filter.NewDisplacementFilter(eff).Apply(scaled, dst, dst.Bounds())

	if err := imgio.SavePNG(cfg.PreviewOut, dst); err != nil {
		return err
	}
	log.Info("wrote preview", "path", cfg.PreviewOut)
	return nil
}
