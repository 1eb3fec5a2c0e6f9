// mappingmerge merges mapping layer files into a single layer file.
//
//	mappingmerge -config layers.star -output_file merged.yaml [extra.yaml...]
//
// Layers from the configuration are merged first, in configuration order,
// followed by positional layer files. Later layers win.
package main

import (
	"errors"
	"flag"
	"io"
	"log"
	"os"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/stackb/layered-mappings/pkg/layerconfig"
	"github.com/stackb/layered-mappings/pkg/layerio"
	"github.com/stackb/layered-mappings/pkg/logger"
	"github.com/stackb/layered-mappings/pkg/mapping"
	"github.com/stackb/layered-mappings/pkg/merge"
	"github.com/stackb/layered-mappings/pkg/procutil"
)

type config struct {
	configFile     string
	outputFile     string
	outputName     string
	logLevel       string
	overrideDetail bool
	layerFiles     []string
}

func main() {
	log.SetPrefix("mappingmerge: ")
	log.SetFlags(0) // don't print timestamps

	conf, err := parseFlags(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}
	if err := run(conf, os.Stderr); err != nil {
		log.Fatal(err)
	}
}

func parseFlags(args []string) (*config, error) {
	conf := &config{}
	fs := flag.NewFlagSet("mappingmerge", flag.ContinueOnError)
	fs.StringVar(&conf.configFile, "config", "", "starlark file that lists the layers in priority order")
	fs.StringVar(&conf.outputFile, "output_file", "", "the merged layer file to write (.yaml, .yml or .json)")
	fs.StringVar(&conf.outputName, "output_name", "merged", "the name of the merged layer")
	fs.StringVar(&conf.logLevel, "log_level", procutil.LookupStringEnv(procutil.LogLevelEnv, "info"), "log level (debug, info, warn, error)")
	fs.BoolVar(&conf.overrideDetail, "override_detail", procutil.LookupBoolEnv(procutil.OverrideDetailEnv, false), "log every name a later layer overrides")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	conf.layerFiles = fs.Args()

	if conf.outputFile == "" {
		return nil, errors.New("-output_file is required")
	}
	if conf.configFile == "" && len(conf.layerFiles) == 0 {
		return nil, errors.New("either -config or positional layer files are required")
	}
	return conf, nil
}

func run(conf *config, stderr io.Writer) error {
	zlog, err := logger.New(stderr, conf.logLevel)
	if err != nil {
		return err
	}

	specs, err := layerSpecs(conf, zlog)
	if err != nil {
		return err
	}

	layers, err := loadLayers(specs, zlog)
	if err != nil {
		return err
	}

	merger := merge.New(
		merge.WithLogger(zlog),
		merge.WithWarn(logger.Warnf(zlog)),
		merge.WithOverrideDetail(conf.overrideDetail),
	)
	tree, diag, err := merger.Merge(layers...)
	logDiagnostics(zlog, diag)
	if err != nil {
		return err
	}

	if err := layerio.WriteTreeFile(conf.outputFile, conf.outputName, tree); err != nil {
		return err
	}
	zlog.Info().
		Str("output_file", conf.outputFile).
		Int("records", tree.Len()).
		Stringer("namespaces", tree.Namespaces()).
		Msg("wrote merged mappings")
	return nil
}

// layerSpecs lists the configured layers followed by one layer per
// positional file.
func layerSpecs(conf *config, zlog zerolog.Logger) ([]layerconfig.LayerSpec, error) {
	var specs []layerconfig.LayerSpec
	if conf.configFile != "" {
		configured, err := layerconfig.Load(conf.configFile, layerconfig.WithWarn(logger.Warnf(zlog)))
		if err != nil {
			return nil, err
		}
		specs = append(specs, configured...)
	}
	for _, filename := range conf.layerFiles {
		specs = append(specs, layerconfig.LayerSpec{Name: filename, Srcs: []string{filename}})
	}
	return specs, nil
}

// loadLayers reads the layers concurrently and returns them in configuration order.
func loadLayers(specs []layerconfig.LayerSpec, zlog zerolog.Logger) ([]*mapping.Layer, error) {
	layers := make([]*mapping.Layer, len(specs))
	var g errgroup.Group
	for i, spec := range specs {
		g.Go(func() error {
			layer, err := spec.Load(layerio.WithWarn(logger.Warnf(zlog)))
			if err != nil {
				return err
			}
			zlog.Debug().
				Str("layer", layer.Name()).
				Int("records", layer.Len()).
				Stringer("namespaces", layer.CoveredNamespaces()).
				Msg("loaded layer")
			layers[i] = layer
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return layers, nil
}

func logDiagnostics(zlog zerolog.Logger, diag *merge.Diagnostics) {
	if diag == nil {
		return
	}
	for _, stats := range diag.Layers {
		zlog.Info().
			Str("layer", stats.Name).
			Int("records", stats.Records).
			Int("created", stats.Created).
			Int("overrides", stats.Overrides).
			Msg("merged layer")
	}
	for _, o := range diag.Details {
		zlog.Info().
			Str("layer", o.Layer).
			Stringer("symbol", o.ID).
			Stringer("namespace", o.Namespace).
			Str("old", o.Old).
			Str("new", o.New).
			Msg("override")
	}
	zlog.Info().Stringer("summary", diag).Msg("merge complete")
}
