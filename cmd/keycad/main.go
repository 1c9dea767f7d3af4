// Command keycad builds the solid model of a mechanical keyboard from a
// key catalog and writes it as an STL file.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alexflint/go-arg"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/soypat/keycad/assemble"
	"github.com/soypat/keycad/config"
	"github.com/soypat/keycad/key"
	"github.com/soypat/keycad/layout"
	"github.com/soypat/keycad/render"
	"gonum.org/v1/plot/vg"
)

type args struct {
	Matrix   string               `arg:"-m,--matrix" default:"iso" help:"key catalog to build"`
	Size     *config.KeyboardSize `arg:"-k,--keyboard-size" help:"one of S100, S80, S75, S65, S60, S40 [default: S100]"`
	List     bool                 `arg:"-l,--list" help:"list key catalogs and offset strategies, then exit"`
	Export   bool                 `arg:"-e,--export" help:"write the model to a file, otherwise only build it"`
	Filename string               `arg:"-f,--filename" help:"output file name [default: keycad-<size>.stl]"`
	Path     string               `arg:"-p,--path" default:"." help:"output directory"`
	Config   string               `arg:"-c,--config" help:"JSON5 configuration file"`
	Strategy string               `arg:"-s,--strategy" help:"offset strategy, overrides the configuration"`
	Preview  bool                 `arg:"--preview" help:"write a colored PNG preview"`
	Plan     bool                 `arg:"--plan" help:"write a top view plan of the key footprints"`
	Verbose  bool                 `arg:"-v,--verbose" help:"log every placed key"`
}

func (args) Description() string {
	return "Generates a parametric mechanical keyboard case as a solid model."
}

func main() {
	var a args
	arg.MustParse(&a)
	console := zerolog.ConsoleWriter{Out: os.Stderr}
	log.Logger = log.Output(console)
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if a.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	if a.List {
		list(os.Stdout)
		return
	}
	defer func() {
		if r := recover(); r != nil {
			log.Fatal().Interface("panic", r).Msg("model generation failed")
		}
	}()
	if err := run(a, a.Path, console); err != nil {
		log.Fatal().Err(err).Msg("model generation failed")
	}
}

func list(w io.Writer) {
	fmt.Fprintln(w, "catalogs:")
	for _, name := range layout.Catalogs() {
		fmt.Fprintln(w, "  "+name)
	}
	fmt.Fprintln(w, "strategies:")
	for _, name := range layout.Strategies() {
		st, _ := layout.LookupStrategy(name)
		fmt.Fprintf(w, "  %-10s %s\n", name, st.Description)
	}
}

// run builds the model selected by a and writes its files to dir. Log
// events go to w.
func run(a args, dir string, w io.Writer) error {
	start := time.Now()
	logger := zerolog.New(w).With().Timestamp().Logger()
	cfg := config.Default()
	if a.Config != "" {
		var err error
		cfg, err = config.Load(a.Config)
		if err != nil {
			return err
		}
		logger.Info().Str("path", a.Config).Msg("configuration loaded")
	}
	if a.Size != nil {
		cfg.Layout.Size = *a.Size
	}
	if a.Strategy != "" {
		cfg.Layout.Strategy = a.Strategy
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	cat, err := layout.Lookup(a.Matrix)
	if err != nil {
		return err
	}
	st, err := layout.LookupStrategy(cfg.Layout.Strategy)
	if err != nil {
		return err
	}

	logger.Info().Str("catalog", a.Matrix).Stringer("size", cfg.Layout.Size).Str("strategy", st.Name).Msg("building")
	b := layout.Builder{Config: &cfg, Catalog: cat, Strategy: st, Log: logger}
	m, err := b.Build()
	if err != nil {
		return err
	}
	unify := cfg.Debug.UnifyPreview
	if a.Export {
		unify = cfg.Debug.UnifyExport
	}
	asm, err := (&assemble.Assembler{Debug: cfg.Debug, Log: logger}).Assemble(m, unify)
	if err != nil {
		return err
	}

	base := "keycad-" + strings.ToLower(m.Size.String())
	if a.Plan {
		path := filepath.Join(dir, base+"-plan.png")
		if err := render.Plan(path, m, cfg.Debug.RenderName(), 40*vg.Centimeter); err != nil {
			return err
		}
		logger.Info().Str("path", path).Msg("plan written")
	}
	if a.Preview {
		parts := asm.Parts
		if asm.Union != nil {
			parts = []assemble.Part{{Object: key.Object{Name: "union", Category: key.CategorySlot, Solid: asm.Union}, Color: assemble.ColorLeft}}
		}
		path := filepath.Join(dir, base+"-preview.png")
		if err := render.Preview(path, parts, cfg.Export.PreviewWidth, cfg.Export.PreviewHeight, render.DefaultView); err != nil {
			return err
		}
		logger.Info().Str("path", path).Msg("preview written")
	}
	if !a.Export {
		logger.Info().Int("keys", m.Len()).Dur("elapsed", time.Since(start)).Msg("dry run finished, nothing exported")
		return nil
	}
	filename := a.Filename
	if filename == "" {
		filename = base + ".stl"
	}
	path := filepath.Join(dir, filename)
	exportStart := time.Now()
	if asm.Union != nil {
		n, err := render.ExportUnion(asm.Union.SDF(), cfg.Export.Cells, path)
		if err != nil {
			return err
		}
		logger.Info().Str("path", path).Int("triangles", n).Int("cells", cfg.Export.Cells).
			Dur("elapsed", time.Since(exportStart)).Msg("unified model exported")
	} else {
		if err := render.CreateSTL(path, render.NewMeshRenderer(asm.Solids()...)); err != nil {
			return err
		}
		logger.Info().Str("path", path).Int("parts", len(asm.Parts)).
			Dur("elapsed", time.Since(exportStart)).Msg("grouped model exported")
	}
	logger.Info().Dur("elapsed", time.Since(start)).Msg("done")
	return nil
}
