package cli

import (
	"strings"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/npillmayer/fplot"
	"github.com/npillmayer/fplot/sampler"
	"github.com/npillmayer/fplot/session"
	"github.com/npillmayer/schuko/schukonf/koanfadapter"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/spf13/pflag"
)

// defaults are the configuration values in effect if neither a config file
// nor a command line flag sets them.
var defaults = map[string]interface{}{
	"graph.samples":   sampler.DefaultSamples,
	"graph.depth":     sampler.DefaultDepth,
	"viewport.width":  800,
	"viewport.height": 600,
	"markers.refine":  session.DefaultRefine,
	"locale":          "en",
}

// flagKeys maps command line flags to configuration keys.
var flagKeys = map[string]string{
	"samples": "graph.samples",
	"depth":   "graph.depth",
	"width":   "viewport.width",
	"height":  "viewport.height",
	"refine":  "markers.refine",
}

// loadConfig is a callback function used by cobra's initialization mechanism.
// Unfortunately we're not allowed a return value.
func loadConfig() {
	k := koanf.New(".") // '.' is hierarchy delimiter
	// We locate fplot configuration with an application-key of 'FPLOT' and
	// use NestedText-format (nt) for config-files
	konf := koanfadapter.New(k, "FPLOT", []string{"nt"})
	konf.InitDefaults()
	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		tracing.Errorf(err.Error())
		fplot.Exit(1)
	}
	if err := mergeFlags(konf); err != nil {
		tracing.Errorf(err.Error())
		fplot.Exit(1)
	}
	if err := configureTracing(konf); err != nil {
		tracing.Errorf(err.Error())
		fplot.Exit(1)
	}
	fplot.Configuration = k // push the configuration to app-global scope
}

func mergeFlags(konf *koanfadapter.KConf) error {
	flags := rootCmd.PersistentFlags()
	if err := konf.Koanf().Load(posflag.Provider(flags, ".", konf.Koanf()), nil); err != nil {
		return err
	}
	mapFlags(flags, konf)
	if w := konf.GetString("window"); w != "" {
		bounds, err := parseWindow(strings.Split(w, ","))
		if err != nil {
			return err
		}
		konf.Set("viewport.xmin", bounds[0])
		konf.Set("viewport.xmax", bounds[1])
		konf.Set("viewport.ymin", bounds[2])
		konf.Set("viewport.ymax", bounds[3])
	}
	if logname := konf.GetString("logfile"); logname != "" && logname != "stderr" {
		if strings.Contains(logname, ":/") {
			konf.Set("tracing.destination", logname)
		} else {
			konf.Set("tracing.destination", "file://"+logname)
		}
	}
	return nil
}

// mapFlags copies the values of changed flags to their configuration keys.
func mapFlags(flags *pflag.FlagSet, konf *koanfadapter.KConf) {
	flags.Visit(func(f *pflag.Flag) {
		if key, ok := flagKeys[f.Name]; ok {
			konf.Set(key, konf.Koanf().Int(f.Name))
		}
	})
}

func configureTracing(konf *koanfadapter.KConf) error {
	if a := konf.GetString("tracing.adapter"); a != "" && a != "go" {
		tracing.Errorf("tracing adapter type '%s' currently not supported", a)
	}
	konf.Set("tracing.adapter", "go") // use Go builtin logging facilities
	if dest := konf.GetString("tracing.destination"); dest != "" && !strings.Contains(dest, ":") {
		if dir := locatePaths().LogDir(); dir != "" {
			konf.Set("tracing.destination", "file://"+dir+"/"+dest)
		}
	}
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	if err := trace2go.ConfigureRoot(konf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		return err
	}
	tracing.SetTraceSelector(trace2go.Selector())
	tracing.Infof(rootCmd.Long)
	return nil
}

func locatePaths() AppPaths {
	paths, err := DefaultAppPaths("FPLOT")
	if err != nil {
		tracing.Errorf("cannot configure paths: %v", err)
	}
	return paths
}
