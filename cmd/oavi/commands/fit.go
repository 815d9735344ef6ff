package commands

import (
	"fmt"
	"io"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/katalvlaran/oavi/ideal"
	"github.com/katalvlaran/oavi/internal/config"
	"github.com/katalvlaran/oavi/internal/dataset"
	"github.com/katalvlaran/oavi/internal/logging"
	"github.com/katalvlaran/oavi/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Summary formats accepted by --summary.
const (
	summaryTable = "table"
	summaryYAML  = "yaml"
	summaryNone  = "none"
)

// ErrUnknownSummary indicates a --summary value outside table, yaml, none.
var ErrUnknownSummary = errors.New("oavi: unknown summary format")

type fitFlags struct {
	train      string
	test       string
	out        string
	configFile string
	summary    string
	metricsOut string
}

// NewFitCmd builds the fit command.
func NewFitCmd() *cobra.Command {
	var ff fitFlags
	cmd := &cobra.Command{
		Use:   "fit",
		Short: "Fit training points and write |G(X)|",
		Long: `Fit reads training points (one point per CSV row), computes the order
ideal O and the generators G, and writes |G| evaluated on the test points
(or on the training points when --test is not given).

Options come from defaults, --config, OAVI_* environment variables and
flags, in increasing precedence.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFit(cmd, &ff)
		},
	}
	fs := cmd.Flags()
	fs.StringVar(&ff.train, "train", "", "training CSV (required)")
	fs.StringVar(&ff.test, "test", "", "CSV to transform (default: training set)")
	fs.StringVarP(&ff.out, "out", "o", "-", "feature CSV destination, - for stdout")
	fs.StringVar(&ff.configFile, "config", "", "YAML or TOML configuration file")
	fs.StringVar(&ff.summary, "summary", summaryTable, "fit summary on stderr: table, yaml or none")
	fs.StringVar(&ff.metricsOut, "metrics-out", "", "write Prometheus text metrics to this file")
	config.RegisterFlags(fs)
	_ = cmd.MarkFlagRequired("train")

	return cmd
}

func runFit(cmd *cobra.Command, ff *fitFlags) error {
	switch ff.summary {
	case summaryTable, summaryYAML, summaryNone:
	default:
		return errors.WithHint(errors.Wrapf(ErrUnknownSummary, "%q", ff.summary),
			"use one of: table, yaml, none")
	}

	v := config.New()
	if err := config.BindFlags(v, cmd.Flags()); err != nil {
		return err
	}
	cfg, err := config.Load(v, ff.configFile)
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.Log.Level, cfg.Log.JSON)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	reg := prometheus.NewRegistry()
	collector, err := metrics.New(reg)
	if err != nil {
		return err
	}
	opts, err := cfg.Options(ideal.WithLogger(logger), ideal.WithObserver(collector))
	if err != nil {
		return err
	}

	train, err := dataset.ReadFile(ff.train)
	if err != nil {
		return err
	}
	fitter := ideal.New(opts...)
	feats, basis, err := fitter.FitTransform(train)
	if err != nil {
		return err
	}
	if ff.test != "" {
		test, err := dataset.ReadFile(ff.test)
		if err != nil {
			return err
		}
		if feats, err = fitter.Transform(test); err != nil {
			return err
		}
	}

	header := make([]string, basis.Len())
	for i, t := range basis.LeadingTerms() {
		header[i] = "g" + strconv.Itoa(i) + "_" + t.String()
	}
	if ff.out == "-" || ff.out == "" {
		err = dataset.Write(cmd.OutOrStdout(), feats, header)
	} else {
		err = dataset.WriteFile(ff.out, feats, header)
	}
	if err != nil {
		return err
	}
	logger.Info("features written", zap.String("out", ff.out), zap.Int("columns", basis.Len()))

	if ff.metricsOut != "" {
		if err = prometheus.WriteToTextfile(ff.metricsOut, reg); err != nil {
			return errors.Wrapf(err, "oavi: write metrics %s", ff.metricsOut)
		}
	}

	return printSummary(cmd.ErrOrStderr(), ff.summary, basis)
}

func printSummary(w io.Writer, format string, b *ideal.Basis) error {
	s := b.Summary()
	switch format {
	case summaryYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(s); err != nil {
			return errors.Wrap(err, "oavi: summary")
		}
		return enc.Close()
	case summaryTable:
		data := pterm.TableData{{"Degree", "Raw", "Border", "Purged", "Admitted", "Vanished"}}
		for _, d := range s.Degrees {
			data = append(data, []string{
				strconv.Itoa(d.Degree), strconv.Itoa(d.Raw), strconv.Itoa(d.Border),
				strconv.Itoa(d.Purged), strconv.Itoa(d.Admitted), strconv.Itoa(d.Vanished),
			})
		}
		table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
		if err != nil {
			return errors.Wrap(err, "oavi: summary")
		}
		fmt.Fprintf(w, "basis %s: |O|=%d |G|=%d degree=%d saturated=%v\n",
			s.ID, len(s.O), len(s.Generators), s.Degree, s.Saturated)
		fmt.Fprintln(w, table)
		o := s.O
		for _, p := range b.Polynomials() {
			fmt.Fprintf(w, "  %s  (loss %.3g)\n", p.Render(o), p.Loss)
		}
	}

	return nil
}
