package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/IBM-i2/analyze-connect/internal/core"
	"github.com/IBM-i2/analyze-connect/internal/core/model"
)

func NewQueryCommand(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	var payloadPath string
	com := &cobra.Command{
		Use:       "query <all|search|find-like-this|expand>",
		Short:     "Run one acquire against Socrata and print the result",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"all", "search", "find-like-this", "expand"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags.configPath)
			if err != nil {
				return err
			}
			data, err := newDataService(cfg, newLogger(stderr))
			if err != nil {
				return err
			}

			payload := stdin
			if payloadPath != "" && payloadPath != "-" {
				f, err := os.Open(payloadPath)
				if err != nil {
					return err
				}
				defer f.Close()
				payload = f
			}
			return runQuery(cmd.Context(), data, args[0], payload, stdout)
		},
	}
	com.Flags().StringVar(&payloadPath, "payload", "-", "JSON request body, - for stdin")
	return com
}

func init() {
	subcommandFns["query"] = NewQueryCommand
}

// runQuery decodes a connector request from payload (unless op takes none),
// runs op and writes the response as indented JSON.
func runQuery(ctx context.Context, data *core.ExternalDataService, op string, payload io.Reader, out io.Writer) error {
	var req model.ConnectorRequest
	if op != "all" {
		if err := json.NewDecoder(payload).Decode(&req); err != nil {
			return fmt.Errorf("reading payload: %w", err)
		}
	}

	var (
		resp *model.ConnectorResponse
		err  error
	)
	switch op {
	case "all":
		resp, err = data.All(ctx)
	case "search":
		resp, err = data.Search(ctx, req.Payload.Conditions)
	case "find-like-this":
		resp, err = data.FindLikeThis(ctx, req.Payload.Seeds)
	case "expand":
		resp, err = data.Expand(ctx, req.Payload.Seeds)
	default:
		return fmt.Errorf("unknown operation %q", op)
	}
	if err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}
