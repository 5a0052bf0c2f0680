package commands

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/kaliagent/kaliagent/pkg/output"
	"github.com/kaliagent/kaliagent/pkg/output/subscribers"
)

// setupOutputPipeline builds the event stream for a command invocation:
// human or JSON formatting on stdout, diagnostics on stderr gated by -v.
func setupOutputPipeline(cmd *cobra.Command) output.Output {
	stream := output.NewOutputEventStream()

	jsonMode, _ := cmd.Flags().GetBool("json")
	if jsonMode {
		stream.Subscribe(subscribers.NewJSONFormatter(cmd.OutOrStdout()))
	} else {
		colorEnabled := isatty.IsTerminal(os.Stdout.Fd())
		stream.Subscribe(subscribers.NewHumanFormatter(cmd.OutOrStdout(), cmd.ErrOrStderr(), colorEnabled))
	}

	verbosityCount, _ := cmd.Flags().GetCount("verbosity")
	if verbosityCount > 0 {
		stream.Subscribe(subscribers.NewDiagnosticSubscriber(output.OutputLevel(verbosityCount), cmd.ErrOrStderr()))
	}

	return output.NewDefaultOutput(stream)
}
