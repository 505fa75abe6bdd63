package annotateapp

import (
	"context"
	"io"

	"tapscore/internal/annotatecli"
	"tapscore/internal/appcore"
	"tapscore/internal/report"
	"tapscore/internal/writers"
	"tapscore/pkg/api"
)

const name = "tap-annotate"

func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	fs := annotatecli.NewFlagSet(name)
	fs.SetOutput(io.Discard)

	if len(argv) == 0 {
		argv = []string{"-h"}
	}
	opts, err := annotatecli.ParseArgs(fs, argv)
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
	if code := env.ResolveRunner(); code != appcore.ExitOK {
		return code
	}

	keep := map[string]bool{}
	for _, c := range opts.Chains {
		keep[c] = true
	}
	annotateModel := func(ctx context.Context, path string) ([]api.ResidueV1, error) {
		s, err := env.Annotator().LoadAndAnnotate(ctx, path)
		if err != nil {
			return nil, err
		}
		env.Telemetry.ModelScored(nil)
		rows := report.Residues(env.RunID, s)
		if len(keep) == 0 {
			return rows, nil
		}
		out := rows[:0]
		for _, r := range rows {
			if keep[r.Chain] {
				out = append(out, r)
			}
		}
		return out, nil
	}
	start := func(out io.Writer, bufSize int) (chan<- api.ResidueV1, <-chan error) {
		return writers.StartResidueWriter(out, opts.Output, opts.Sort, opts.Header, bufSize)
	}
	return appcore.Run[api.ResidueV1](parent, stdout, stderr, opts.Common, env, annotateModel, nil, start)
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}
