package cmd

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/sahib/config"
	"github.com/sahib/desfile/defaults"
	"github.com/urfave/cli"
)

func saveConfig(ctx *cli.Context, cfg *config.Config) error {
	path, err := guessConfigPath(ctx)
	if err != nil {
		return ExitCode{UnknownError, err.Error()}
	}

	if err := defaults.SaveConfig(cfg, path); err != nil {
		return ExitCode{UnknownError, err.Error()}
	}

	return nil
}

func checkConfigKey(cfg *config.Config, key string) error {
	if !cfg.IsValidKey(key) {
		return ExitCode{BadArgs, fmt.Sprintf("no such config key: %s", key)}
	}

	return nil
}

func printConfigDocEntry(cfg *config.Config, key string) {
	entry := cfg.GetDefault(key)
	val := cfg.Uncast(key)
	defaultVal := fmt.Sprintf("%v", entry.Default)

	printVal := val
	if printVal == "" {
		printVal = color.YellowString("(empty)")
	}

	defaultMarker := ""
	if val == defaultVal {
		defaultMarker = color.CyanString("(default)")
	}

	fmt.Printf("%s: %v %s\n", color.GreenString(key), printVal, defaultMarker)

	if defaultVal == "" {
		defaultVal = color.YellowString("(empty)")
	}

	fmt.Printf("  Default:       %v\n", defaultVal)
	fmt.Printf("  Documentation: %v\n", strings.TrimSpace(entry.Docs))
	fmt.Printf("  Needs restart: %v\n", yesify(entry.NeedsRestart))
}

func handleConfigList(ctx *cli.Context, cfg *config.Config) error {
	for _, key := range cfg.Keys() {
		printConfigDocEntry(cfg, key)
	}

	return nil
}

func handleConfigGet(ctx *cli.Context, cfg *config.Config) error {
	key := ctx.Args().Get(0)
	if err := checkConfigKey(cfg, key); err != nil {
		return err
	}

	fmt.Println(cfg.Uncast(key))
	return nil
}

func handleConfigSet(ctx *cli.Context, cfg *config.Config) error {
	key := ctx.Args().Get(0)
	if err := checkConfigKey(cfg, key); err != nil {
		return err
	}

	val, err := cfg.Cast(key, ctx.Args().Get(1))
	if err != nil {
		return ExitCode{BadArgs, fmt.Sprintf("config set: %v", err)}
	}

	if err := cfg.Set(key, val); err != nil {
		return ExitCode{BadArgs, fmt.Sprintf("config set: %v", err)}
	}

	return saveConfig(ctx, cfg)
}

func handleConfigDoc(ctx *cli.Context, cfg *config.Config) error {
	key := ctx.Args().Get(0)
	if err := checkConfigKey(cfg, key); err != nil {
		return err
	}

	printConfigDocEntry(cfg, key)
	return nil
}
