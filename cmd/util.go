package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/fatih/color"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/sahib/config"
	"github.com/sahib/desfile/des"
	"github.com/sahib/desfile/ecb"
	"github.com/sahib/desfile/keyfile"
	"github.com/sahib/desfile/util"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli"
)

const (
	defaultConfigPath = "~/.config/desfile/config.yml"
	configMetadataKey = "config"
	maxWorkers        = 1024
)

// ExitCode is an error that maps the error interface to a specific error
// message and a unix exit code
type ExitCode struct {
	Code    int
	Message string
}

func (err ExitCode) Error() string {
	return err.Message
}

func yesify(val bool) string {
	if val {
		return color.GreenString("yes")
	}

	return color.RedString("no")
}

// guessConfigPath returns the path of the config file,
// either from --config (or $DESFILE_CONFIG) or the default location.
func guessConfigPath(ctx *cli.Context) (string, error) {
	path := ctx.GlobalString("config")
	if path == "" {
		path = defaultConfigPath
	}

	expanded, err := homedir.Expand(path)
	if err != nil {
		return "", errors.Wrap(err, "failed to expand home dir")
	}

	return filepath.Abs(expanded)
}

type cmdHandlerWithConfig func(ctx *cli.Context, cfg *config.Config) error

// withConfig passes the config that was loaded before any command ran.
func withConfig(handler cmdHandlerWithConfig) cli.ActionFunc {
	return func(ctx *cli.Context) error {
		cfg, ok := ctx.App.Metadata[configMetadataKey].(*config.Config)
		if !ok {
			return ExitCode{UnknownError, "config was not loaded"}
		}

		return handler(ctx, cfg)
	}
}

type checkFunc func(ctx *cli.Context) int

func withArgCheck(checker checkFunc, handler cli.ActionFunc) cli.ActionFunc {
	return func(ctx *cli.Context) error {
		if code := checker(ctx); code != Success {
			return ExitCode{code, fmt.Sprintf("bad arguments for `%s`", ctx.Command.Name)}
		}

		return handler(ctx)
	}
}

func needAtLeast(min int) checkFunc {
	return func(ctx *cli.Context) int {
		if ctx.NArg() < min {
			if min == 1 {
				log.Warningf("Need at least %d argument.", min)
			} else {
				log.Warningf("Need at least %d arguments.", min)
			}

			if err := cli.ShowCommandHelp(ctx, ctx.Command.Name); err != nil {
				log.Warningf("Failed to display --help: %v", err)
			}

			return BadArgs
		}

		return Success
	}
}

// cipherOptions merges the options given on the command line with the config.
// Flags win over config values.
func cipherOptions(ctx *cli.Context, cfg *config.Config) (ecb.Options, error) {
	formatName := cfg.String("cipher.format")
	if ctx.IsSet("format") {
		formatName = ctx.String("format")
	}

	format, err := ecb.ParseFormat(formatName)
	if err != nil {
		return ecb.Options{}, ExitCode{BadArgs, err.Error()}
	}

	workers, err := resolveWorkers(ctx, cfg)
	if err != nil {
		return ecb.Options{}, err
	}

	return ecb.Options{
		Format:      format,
		Workers:     workers,
		ChunkBlocks: int(cfg.Int("cipher.chunk_blocks")),
	}, nil
}

// resolveWorkers returns the number of go routines to use.
// Zero (the default) means one per CPU.
func resolveWorkers(ctx *cli.Context, cfg *config.Config) (int, error) {
	workers := int(cfg.Int("cipher.workers"))
	if ctx.IsSet("workers") {
		workers = ctx.Int("workers")
	}

	if workers < 0 {
		return 0, ExitCode{BadArgs, "workers may not be negative"}
	}

	if workers == 0 {
		workers = runtime.NumCPU()
	}

	return util.Clamp(workers, 1, maxWorkers), nil
}

// loadKey reads the key file given by --key or, if missing, by the
// files.key_path config key.
func loadKey(ctx *cli.Context, cfg *config.Config) (des.Key, error) {
	keyPath := ctx.String("key")
	if keyPath == "" {
		keyPath = cfg.String("files.key_path")
	}

	if keyPath == "" {
		return des.Key{}, ExitCode{
			BadArgs,
			"no key given; use --key or set files.key_path in the config",
		}
	}

	keyPath, err := homedir.Expand(keyPath)
	if err != nil {
		return des.Key{}, ExitCode{BadArgs, err.Error()}
	}

	key, err := keyfile.Load(keyPath)
	if err != nil {
		return des.Key{}, ExitCode{BadInput, fmt.Sprintf("key %s: %v", keyPath, err)}
	}

	if !key.HasOddParity() {
		log.Debugf("key in %s does not have odd parity; parity bits are ignored", keyPath)
	}

	return key, nil
}

func isSamePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return false
	}

	return absA == absB
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
