package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/bitquill/optistream/pkg/buffer"
	"github.com/bitquill/optistream/pkg/cli"
	"github.com/bitquill/optistream/pkg/record"
	"github.com/bitquill/optistream/pkg/session"
	"github.com/bitquill/optistream/pkg/wire"
)

// streamSession runs the reconstruction engine over a raw stream, printing
// stage lines to stderr as records complete. Progress events go through a
// queue so a slow terminal never stalls the read loop. The session result is
// returned even when the stream aborted; err says why it stopped.
func streamSession(ctx context.Context, r io.Reader) (*session.Result, error) {
	styles := cli.NewStyles(cli.DefaultTheme)

	progress := buffer.New[*wire.Event](64)
	printerDone := make(chan struct{})
	go func() {
		defer close(printerDone)
		for {
			ev, err := progress.Next()
			if err != nil {
				return
			}
			if verbose {
				flag := "final"
				if ev.Partial {
					flag = "partial"
				}
				printf("%s\n", styles.Dim.Render(fmt.Sprintf("· %s %s +%d", ev.Producer, flag, len(ev.Text))))
			}
		}
	}()

	sess := session.New(session.Callbacks{
		OnStageComplete: func(producer string, rec record.Record) {
			printf("%s %s %s %s\n",
				styles.Stage.Render("✔"),
				styles.Producer.Render(producer),
				rec.Kind().String(),
				styles.Dim.Render(stageSummary(rec)))
		},
		OnProgress: func(ev *wire.Event) {
			progress.Add(ev)
		},
	})

	err := sess.Consume(ctx, r)
	res := sess.Finish()
	progress.CloseWrite()
	<-printerDone

	for _, producer := range res.Incomplete {
		printf("%s\n", styles.Warn.Render("⚠ stage incomplete: "+producer))
	}
	if res.DecodeWarnings > 0 {
		printf("%s\n", styles.Warn.Render(fmt.Sprintf("⚠ %d lines skipped during decode", res.DecodeWarnings)))
	}
	return res, err
}

// stageSummary is the one-line human summary behind each completed stage.
func stageSummary(rec record.Record) string {
	switch r := rec.(type) {
	case *record.Metadata:
		return fmt.Sprintf("%d tables, %s, %s rows",
			r.TablesFound, cli.FormatGB(r.TotalSizeGB), cli.FormatRows(r.TotalRowCount))
	case *record.RuleReport:
		return fmt.Sprintf("%d rules checked, %d violations", r.RulesChecked, r.ViolationsFound)
	case *record.OptimizationReport:
		return fmt.Sprintf("%d optimization steps", r.TotalOptimizations)
	case *record.FinalReport:
		if r.ExecutiveSummary.CostReduction != "" {
			return "cost reduction " + r.ExecutiveSummary.CostReduction
		}
		return "report ready"
	}
	return ""
}
