package cli

import (
	"context"
	"fmt"

	"github.com/vburojevic/hfx/internal/config"
	"github.com/vburojevic/hfx/internal/output"
	"github.com/vburojevic/hfx/internal/provider"
)

// SplitsCmd lists configs and splits available for a dataset
type SplitsCmd struct {
	Dataset string `short:"d" help:"Dataset name on the Hugging Face Hub"`
}

// Run executes the splits command
func (c *SplitsCmd) Run(globals *Globals) error {
	maybeNoStyle(globals)

	cfg := globals.Config
	if cfg == nil {
		cfg = config.Default()
	}
	if c.Dataset == "" {
		c.Dataset = cfg.Defaults.Dataset
	}
	if c.Dataset == "" {
		return c.outputError(globals, "INVALID_FLAGS", "no dataset given and none configured; pass --dataset")
	}

	ctx := context.Background()
	hub := provider.NewHub(provider.HubOptions{Endpoint: cfg.Endpoint})
	infos, err := hub.Splits(ctx, c.Dataset)
	if err != nil {
		return c.outputError(globals, "PROVIDER_ERROR", err.Error(), hintForProvider(err))
	}

	if globals.Format == "ndjson" {
		w := output.NewNDJSONWriter(globals.Stdout)
		for _, info := range infos {
			if err := w.WriteSplit(info); err != nil {
				return err
			}
		}
		return nil
	}

	if len(infos) == 0 {
		fmt.Fprintf(globals.Stdout, "No splits found for %s\n", c.Dataset)
		return nil
	}
	output.RenderSplitsTable(globals.Stdout, infos)
	fmt.Fprintf(globals.Stdout, "\n%d split(s)\n", len(infos))
	return nil
}

func (c *SplitsCmd) outputError(globals *Globals, code, message string, hint ...string) error {
	return outputErrorCommon(globals, code, message, hint...)
}
