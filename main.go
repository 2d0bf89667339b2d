package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap/zapcore"
	"k8s.io/apimachinery/pkg/util/json"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"

	"github.com/l7mp/xunits/internal/buildinfo"
	"github.com/l7mp/xunits/internal/config"
	"github.com/l7mp/xunits/pkg/array"
	"github.com/l7mp/xunits/pkg/expression"
	"github.com/l7mp/xunits/pkg/quantity"
	"github.com/l7mp/xunits/pkg/units"
	"github.com/l7mp/xunits/pkg/visualize"
)

var (
	version    = "dev"
	commitHash = "n/a"
	buildDate  = "<unknown>"
)

func main() {
	var docFile, configFile, format, diagram string
	var concurrency int
	var showVersion bool

	flag.StringVar(&docFile, "f", "-", "The expression document to evaluate, YAML or JSON. \"-\" reads stdin.")
	flag.StringVar(&configFile, "config", "", "Config file. Settings can also be given in XUNITS_* env vars.")
	flag.StringVar(&format, "format", "", "Unit format of the result, overrides the config.")
	flag.IntVar(&concurrency, "concurrency", 0, "Number of blocks processed in parallel, overrides the config.")
	flag.StringVar(&diagram, "visualize", "", "Print the expression as a \"dot\" or \"mermaid\" diagram instead of evaluating it.")
	flag.BoolVar(&showVersion, "version", false, "Print the version and exit.")

	opts := zap.Options{
		Development:     true,
		DestWriter:      os.Stderr,
		StacktraceLevel: zapcore.Level(3),
		TimeEncoder:     zapcore.RFC3339NanoTimeEncoder,
	}
	opts.BindFlags(flag.CommandLine)
	flag.Parse()

	buildInfo := buildinfo.BuildInfo{Version: version, CommitHash: commitHash, BuildDate: buildDate}
	if showVersion {
		fmt.Println(buildInfo.String())
		return
	}

	cfg, err := config.Load(configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "unable to load config: %s\n", err)
		os.Exit(1)
	}
	if format != "" {
		cfg.Format = format
	}
	if concurrency != 0 {
		cfg.Concurrency = concurrency
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %s\n", err)
		os.Exit(1)
	}

	if opts.Level == nil {
		opts.Level = zapcore.Level(-cfg.Verbosity)
	}
	logger := zap.New(zap.UseFlagOptions(&opts))
	ctrl.SetLogger(logger.WithName("xunits"))
	setupLog := logger.WithName("setup")

	setupLog.V(1).Info(fmt.Sprintf("starting %s", buildInfo.String()))

	d, err := cfg.Dispatcher(logger.WithName("dispatcher"))
	if err != nil {
		setupLog.Error(err, "unable to set up the dispatcher")
		os.Exit(1)
	}

	data, err := readInput(docFile)
	if err != nil {
		setupLog.Error(err, "unable to read document", "file", docFile)
		os.Exit(1)
	}

	doc, err := expression.LoadDocument(data)
	if err != nil {
		setupLog.Error(err, "unable to load document", "file", docFile)
		os.Exit(1)
	}

	if diagram != "" {
		gen, err := visualize.NewGenerator(diagram)
		if err != nil {
			setupLog.Error(err, "unable to visualize document")
			os.Exit(1)
		}
		fmt.Print(gen.Generate(visualize.BuildGraph(docFile, &doc.Expression)))
		return
	}

	ctx := ctrl.SetupSignalHandler()

	res, err := doc.Evaluate(ctx, d, logger.WithName("expression"))
	if err != nil {
		setupLog.Error(err, "evaluation failed")
		os.Exit(1)
	}

	// results with units are rendered in the configured format
	if da, ok := res.(*array.DataArray); ok && cfg.Format != units.FormatGeneric {
		if _, hasUnits := da.Attr(quantity.UnitsAttr); hasUnits {
			if res, err = d.Format(da, cfg.Format); err != nil {
				setupLog.Error(err, "unable to format result")
				os.Exit(1)
			}
		}
	}

	out, err := json.Marshal(res)
	if err != nil {
		setupLog.Error(err, "unable to marshal result")
		os.Exit(1)
	}

	fmt.Println(string(out))
}

func readInput(file string) ([]byte, error) {
	if file == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(file)
}
