package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sahib/desfile/defaults"
	"github.com/sahib/desfile/util"
	logutil "github.com/sahib/desfile/util/log"
	"github.com/sahib/desfile/version"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli"
)

func init() {
	log.SetOutput(os.Stderr)
	log.SetLevel(log.InfoLevel)
	log.SetFormatter(&logutil.FancyLogFormatter{
		UseColors: logutil.IsTerminal(os.Stderr),
	})
}

func formatGroup(category string) string {
	return strings.ToUpper(category) + " COMMANDS"
}

// logOutput opens the log destination. The returned closer
// must be called once logging is done; it switches logging back to stderr.
func logOutput(path string) (io.Writer, func(), error) {
	switch path {
	case "stdout":
		return os.Stdout, func() {}, nil
	case "stderr", "":
		return os.Stderr, func() {}, nil
	default:
		fd, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, nil, err
		}

		return fd, func() {
			log.SetOutput(os.Stderr)
			util.Closer(fd)
		}, nil
	}
}

func cipherFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:  "key,k",
			Usage: "Path to the key file (default: files.key_path from the config)",
		},
		cli.StringFlag{
			Name:  "output,o",
			Usage: "Where to write the result; '-' is stdout (default: input path with suffix)",
		},
		cli.StringFlag{
			Name:  "format,f",
			Usage: "Encrypted format: 'text' or 'binary' (default: cipher.format from the config)",
		},
		cli.IntFlag{
			Name:  "workers,w",
			Usage: "Number of parallel workers; 0 is one per CPU (default: cipher.workers from the config)",
		},
		cli.BoolFlag{
			Name:  "force",
			Usage: "Overwrite the output file if it exists",
		},
	}
}

// RunCmdline starts a desfile commandline tool and returns the exit code.
func RunCmdline(args []string) int {
	app := cli.NewApp()
	app.Name = "desfile"
	app.Usage = "Encrypt and decrypt files with DES in ECB mode"
	app.EnableBashCompletion = true
	app.Version = fmt.Sprintf(
		"%s [buildtime: %s]",
		version.String(),
		version.BuildTime,
	)
	app.CommandNotFound = commandNotFound
	app.Metadata = make(map[string]interface{})

	// Groups:
	cphrGroup := formatGroup("cipher")
	cnfgGroup := formatGroup("config")
	miscGroup := formatGroup("misc")

	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:   "config,c",
			Usage:  "Path of the config file",
			Value:  defaultConfigPath,
			EnvVar: "DESFILE_CONFIG",
		},
		cli.StringFlag{
			Name:   "log-path,l",
			Usage:  "Where to output the log. May be 'stderr' (default), 'stdout' or a file",
			Value:  "stderr",
			EnvVar: "DESFILE_LOG",
		},
		cli.BoolFlag{
			Name:  "verbose",
			Usage: "Show debug log messages",
		},
	}

	app.Commands = []cli.Command{
		{
			Name:        "encrypt",
			Aliases:     []string{"e"},
			Category:    cphrGroup,
			Usage:       "Encrypt a file",
			ArgsUsage:   "<file|->",
			Description: "Encrypts <file> with the key and writes it next to it with the encrypt suffix.\n   The input is zero padded to a multiple of 8 bytes.",
			Flags:       cipherFlags(),
			Action:      withArgCheck(needAtLeast(1), withConfig(handleEncrypt)),
		},
		{
			Name:        "decrypt",
			Aliases:     []string{"d"},
			Category:    cphrGroup,
			Usage:       "Decrypt a file",
			ArgsUsage:   "<file|->",
			Description: "Decrypts <file> with the key and writes it next to it with the decrypt suffix.\n   All zero bytes of the decrypted data are dropped.",
			Flags:       cipherFlags(),
			Action:      withArgCheck(needAtLeast(1), withConfig(handleDecrypt)),
		},
		{
			Name:        "keygen",
			Category:    cphrGroup,
			Usage:       "Generate a random key",
			Description: "Prints a random key with odd parity or writes it to --output.",
			Action:      withConfig(handleKeygen),
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "output,o",
					Usage: "Write the key to this file instead of stdout",
				},
				cli.BoolFlag{
					Name:  "force",
					Usage: "Overwrite an existing key file",
				},
				cli.BoolFlag{
					Name:  "set-default,s",
					Usage: "Remember the written key file as files.key_path in the config",
				},
			},
		},
		{
			Name:     "config",
			Aliases:  []string{"cfg"},
			Category: cnfgGroup,
			Usage:    "Access, list and modify configuration values",
			Subcommands: []cli.Command{
				{
					Name:        "list",
					Aliases:     []string{"ls"},
					Usage:       "Show all config keys",
					Description: "Show all config keys with their current value and documentation",
					Action:      withConfig(handleConfigList),
				},
				{
					Name:        "get",
					Usage:       "Get a specific config key",
					Description: "Show the current value of a key",
					ArgsUsage:   "<configkey>",
					Action:      withArgCheck(needAtLeast(1), withConfig(handleConfigGet)),
				},
				{
					Name:        "doc",
					Usage:       "Show the docs of a specific key",
					Description: "Show the documentation of a key",
					ArgsUsage:   "<configkey>",
					Action:      withArgCheck(needAtLeast(1), withConfig(handleConfigDoc)),
				},
				{
					Name:        "set",
					Usage:       "Set a specific config value",
					Description: "Set a given config option to the given value and save the config",
					ArgsUsage:   "<configkey> <value>",
					Action:      withArgCheck(needAtLeast(2), withConfig(handleConfigSet)),
				},
			},
			Action: withConfig(handleConfigList),
		},
		{
			Name:        "bench",
			Category:    miscGroup,
			Usage:       "Measure the speed of the cipher on this machine",
			Description: "Runs benchmarks of the form <bench>:<input> and prints their throughput.",
			Action:      withConfig(handleIOBench),
			Flags: []cli.Flag{
				cli.StringSliceFlag{
					Name:  "bench,b",
					Usage: "What benchmarks to run (default: all; see --list)",
				},
				cli.StringFlag{
					Name:  "size,s",
					Usage: "Size of the input data",
					Value: "8M",
				},
				cli.StringFlag{
					Name:  "format,f",
					Usage: "Format to benchmark: 'text', 'binary' or '*' for both",
					Value: "*",
				},
				cli.IntFlag{
					Name:  "workers,w",
					Usage: "Number of parallel workers; 0 is one per CPU",
				},
				cli.BoolFlag{
					Name:  "json",
					Usage: "Print the results as JSON",
				},
				cli.BoolFlag{
					Name:  "list",
					Usage: "List all available benchmarks",
				},
			},
		},
		{
			Name:        "bug",
			Category:    miscGroup,
			Usage:       "Print a bug report or open the issue tracker",
			Description: "Collects version and system details and opens a new issue with them.",
			Action:      handleBugReport,
			Flags: []cli.Flag{
				cli.BoolFlag{
					Name:  "stdout,s",
					Usage: "Print the report to stdout instead of opening a browser",
				},
			},
		},
		{
			Name:     "version",
			Category: miscGroup,
			Usage:    "Show the version of desfile",
			Action: func(ctx *cli.Context) error {
				fmt.Println(app.Version)
				return nil
			},
		},
	}

	closeLog := func() {}
	app.Before = func(ctx *cli.Context) error {
		configPath, err := guessConfigPath(ctx)
		if err != nil {
			return ExitCode{BadArgs, err.Error()}
		}

		cfg, err := defaults.OpenConfig(configPath)
		if err != nil {
			return ExitCode{BadInput, fmt.Sprintf("config %s: %v", configPath, err)}
		}

		app.Metadata[configMetadataKey] = cfg

		logDest, closer, err := logOutput(ctx.GlobalString("log-path"))
		if err != nil {
			return ExitCode{BadArgs, fmt.Sprintf("log path: %v", err)}
		}

		closeLog = closer

		level := cfg.String("log.level")
		if ctx.GlobalBool("verbose") {
			level = "debug"
		}

		if err := logutil.Setup(logDest, level, cfg.Bool("log.colors")); err != nil {
			return ExitCode{BadArgs, fmt.Sprintf("log level: %v", err)}
		}

		return nil
	}

	err := app.Run(args)
	defer closeLog()

	if err == nil {
		return Success
	}

	if exitCode, ok := err.(ExitCode); ok {
		log.Error(exitCode.Message)
		return exitCode.Code
	}

	log.Error(err.Error())
	return UnknownError
}
