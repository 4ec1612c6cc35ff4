package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"pidginpal-hq/relay/pkg/cli"
	"pidginpal-hq/relay/pkg/config"
	"pidginpal-hq/relay/pkg/proxy"
	"pidginpal-hq/relay/pkg/proxy/types"
	"pidginpal-hq/relay/pkg/telemetry/logging"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var askFlags struct {
	output string
}

var askCmd = &cobra.Command{
	Use:   "ask [message]",
	Short: "Send one message through the relay and print the reply",
	Long: `Send one message to the provider exactly as the server would, with the
same persona, sampling parameters, and fallback handling, and print
choices[0].message.content.

The message is taken from the arguments, or from stdin when no arguments are
given. Logs go to stderr.

Examples:
  # Ask a question
  pidginpal ask "How far?"

  # Read the message from stdin
  echo "Wetin dey happen?" | pidginpal ask

  # Show status and outcome as JSON
  pidginpal ask --output json "How far?"`,
	RunE: askMessage,
}

func init() {
	rootCmd.AddCommand(askCmd)

	askCmd.Flags().StringVarP(&askFlags.output, "output", "o", "text", "output format: text, json")
}

// askResult is what the ask command prints.
type askResult struct {
	Status  int    `json:"status"`
	Outcome string `json:"outcome"`
	Reply   string `json:"reply"`
}

// Lines implements cli.TextLines. Text output is the reply alone.
func (r askResult) Lines() []string {
	return []string{r.Reply}
}

func askMessage(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseOutputFormat(askFlags.output)
	if err != nil {
		return err
	}

	message := strings.Join(args, " ")
	if len(args) == 0 {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return cli.NewCommandError("ask", fmt.Errorf("failed to read stdin: %w", err))
		}
		message = strings.TrimRight(string(data), "\r\n")
	}
	if message == "" {
		return cli.NewConfigError("message", "message must not be empty")
	}

	cfg, err := loadConfigFor(cmd)
	if err != nil {
		return err
	}

	result, err := ask(cmd.Context(), cfg, message)
	if err != nil {
		return cli.NewCommandError("ask", err)
	}
	return cli.NewFormatter(format).FormatTo(cmd.OutOrStdout(), result)
}

// ask relays message once and extracts the reply. A provider error status
// other than 402 and 429 is returned as an error with the provider's body.
func ask(ctx context.Context, cfg *config.Config, message string) (*askResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	stack, err := newRelayStack(cfg, stackOptions{logWriter: os.Stderr})
	if err != nil {
		return nil, err
	}
	defer stack.Close(context.Background())

	ctx = logging.WithRequestID(ctx, uuid.NewString())
	res, err := stack.relay.Handle(ctx, message)
	if err != nil {
		status, errResp := proxy.HandleError(err)
		return nil, fmt.Errorf("%d %s: %s", status, errResp.Error, errResp.Details)
	}

	out := &askResult{Status: res.StatusCode, Outcome: res.Outcome}
	if res.Fallback != nil {
		out.Reply = res.Fallback.Content()
		return out, nil
	}
	if res.StatusCode >= http.StatusBadRequest {
		return nil, fmt.Errorf("provider answered %d: %s", res.StatusCode, strings.TrimSpace(string(res.Body)))
	}

	var completion types.ChatCompletion
	if err := json.Unmarshal(res.Body, &completion); err != nil {
		return nil, fmt.Errorf("provider answer is not a chat completion: %w", err)
	}
	out.Reply = completion.Content()
	return out, nil
}
