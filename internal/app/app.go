// internal/app/app.go
package app

import (
	"bufio"
	"context"
	"io"

	"tapscore-core/metrics"
	"tapscore-core/tap"

	"tapscore/internal/appcore"
	"tapscore/internal/cli"
	"tapscore/internal/logging"
	"tapscore/internal/report"
	"tapscore/internal/writers"
	"tapscore/pkg/api"
)

const name = "tap"

func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	fs := cli.NewFlagSet(name)
	fs.SetOutput(io.Discard)

	if len(argv) == 0 {
		argv = []string{"-h"}
	}
	opts, err := cli.ParseArgs(fs, argv)
	if err != nil {
		return appcore.ParseFailure(fs, err, stdout, stderr)
	}
	if opts.Version {
		return appcore.PrintVersion(name, stdout, stderr)
	}

	env, code := appcore.Setup(opts.Common, stderr)
	if code != appcore.ExitOK {
		return code
	}
	calcs := env.Config.Calculators()

	if opts.ListMetrics {
		return listMetrics(stdout, opts, calcs, env)
	}
	if code := env.ResolveRunner(); code != appcore.ExitOK {
		return code
	}

	score := func(ctx context.Context, path string) ([]api.ModelReportV1, error) {
		rep, err := tap.Score(ctx, path, tap.Options{
			Annotation:  env.Config.AnnotationConfig(),
			Runner:      env.Runner,
			Calculators: calcs,
			Observer:    env.Telemetry,
			Log:         env.Log,
		})
		if err != nil {
			return nil, err
		}
		for _, r := range rep.Results {
			logging.Metric(env.Log, rep.Structure.Name, r)
		}
		env.Telemetry.ModelScored(rep.Results)
		return []api.ModelReportV1{report.FromScore(env.RunID, rep)}, nil
	}
	failure := func(path string, err error) []api.ModelReportV1 {
		return []api.ModelReportV1{report.Failure(env.RunID, path, err)}
	}
	start := func(out io.Writer, bufSize int) (chan<- api.ModelReportV1, <-chan error) {
		return writers.StartReportWriter(out, opts.Output, opts.Sort, opts.Header, bufSize)
	}
	return appcore.Run[api.ModelReportV1](parent, stdout, stderr, opts.Common, env, score, failure, start)
}

func listMetrics(stdout io.Writer, opts cli.Options, calcs []metrics.Calculator, env *appcore.Env) int {
	dst, closeOut, err := appcore.OpenOutput(opts.Out, stdout)
	if err != nil {
		env.Log.WithError(err).Error("output")
		return appcore.ExitIO
	}
	defer func() { _ = closeOut() }()
	outw := bufio.NewWriter(dst)
	if err := writers.WriteCatalog(outw, opts.Output, tap.Catalog(calcs)); err != nil && !writers.IsBrokenPipe(err) {
		env.Log.WithError(err).Error("list metrics")
		return appcore.ExitIO
	}
	if err := outw.Flush(); err != nil && !writers.IsBrokenPipe(err) {
		env.Log.WithError(err).Error("list metrics")
		return appcore.ExitIO
	}
	return appcore.ExitOK
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}
