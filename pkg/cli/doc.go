// Package cli provides helpers shared by the pidginpal commands: typed
// command errors, text and JSON result formatting, and signal handling.
//
// Output Formatting:
//
// Commands that print results accept --output text|json:
//
//	format, err := cli.ParseOutputFormat(flagValue)
//	if err != nil {
//	    return err
//	}
//	return cli.NewFormatter(format).FormatTo(cmd.OutOrStdout(), result)
//
// A result that implements TextLines controls its own text rendering.
//
// Exit Codes:
//
// ExitCode maps a command error to the process status: 2 for a
// *ConfigError anywhere in the chain, 1 for any other failure.
//
// Signals:
//
//	ctx, stop := cli.SetupSignalHandler(context.Background())
//	defer stop()
//	return srv.Start(ctx)
package cli
