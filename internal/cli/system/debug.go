package system

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/julianstephens/pausa/internal/cli"
	"github.com/julianstephens/pausa/internal/constants"
)

type DebugCmd struct {
	DBPath *DebugDBPathCmd `cmd:"" help:"Show database and settings paths."`
	Dump   *DebugDumpCmd   `cmd:"" help:"Dump the raw stored check-in collection as JSON."`
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(ctx *cli.Context) error {
	output := map[string]string{
		"path":     ctx.Store.GetConfigPath(),
		"settings": ctx.SettingsPath,
		"key":      constants.StorageKey,
	}

	jsonBytes, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	ctx.Println(string(jsonBytes))
	return nil
}

type DebugDumpCmd struct{}

func (cmd *DebugDumpCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}
	defer ctx.Store.Close()

	raw, ok, err := ctx.Store.Get(constants.StorageKey)
	if err != nil {
		return fmt.Errorf("failed to read check-ins: %w", err)
	}
	if !ok {
		ctx.Println("[]")
		return nil
	}

	var out bytes.Buffer
	if err := json.Indent(&out, []byte(raw), "", "  "); err != nil {
		// Not valid JSON; print as stored so the corruption can be inspected
		ctx.Println(raw)
		return nil
	}
	ctx.Println(out.String())
	return nil
}
