package cmd

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	humanize "github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/sahib/config"
	"github.com/sahib/desfile/des"
	"github.com/sahib/desfile/ecb"
	"github.com/sahib/desfile/keyfile"
	"github.com/sahib/desfile/util"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli"
)

const stdioPath = "-"

type streamFunc func(ctx context.Context, key des.Key, src io.Reader, dst io.Writer, opts ecb.Options) (int64, error)

// cancelOnInterrupt returns a context that is cancelled on SIGINT.
func cancelOnInterrupt() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt)

	go func() {
		select {
		case <-signals:
			log.Warningf("interrupted; stopping after the current chunk")
			cancel()
		case <-ctx.Done():
		}

		signal.Stop(signals)
	}()

	return ctx, cancel
}

type nopWriteCloser struct {
	io.Writer
}

func (nwc nopWriteCloser) Close() error { return nil }

func openInput(path string) (io.ReadCloser, error) {
	if path == stdioPath {
		return ioutil.NopCloser(os.Stdin), nil
	}

	fd, err := os.Open(path) // #nosec
	if err != nil {
		return nil, ExitCode{BadInput, fmt.Sprintf("failed to open input: %v", err)}
	}

	return fd, nil
}

func openOutput(path string, force bool) (io.WriteCloser, error) {
	if path == stdioPath {
		return nopWriteCloser{os.Stdout}, nil
	}

	if !force && fileExists(path) {
		return nil, ExitCode{
			BadArgs,
			fmt.Sprintf("output %s exists already; use --force to overwrite", path),
		}
	}

	fd, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0600)
	if err != nil {
		return nil, ExitCode{UnknownError, fmt.Sprintf("failed to create output: %v", err)}
	}

	return fd, nil
}

// outputPath figures out where the result of processing `inPath` goes.
func outputPath(ctx *cli.Context, inPath, suffix string) string {
	if out := ctx.String("output"); out != "" {
		return out
	}

	if inPath == stdioPath {
		return stdioPath
	}

	return util.SuffixPath(inPath, suffix)
}

func runCipher(ctx *cli.Context, cfg *config.Config, suffixKey, what string, fn streamFunc) error {
	key, err := loadKey(ctx, cfg)
	if err != nil {
		return err
	}

	opts, err := cipherOptions(ctx, cfg)
	if err != nil {
		return err
	}

	inPath := ctx.Args().First()
	outPath := outputPath(ctx, inPath, cfg.String(suffixKey))
	if inPath != stdioPath && isSamePath(inPath, outPath) {
		return ExitCode{BadArgs, "input and output may not be the same file"}
	}

	src, err := openInput(inPath)
	if err != nil {
		return err
	}

	defer util.Closer(src)

	dst, err := openOutput(outPath, ctx.Bool("force"))
	if err != nil {
		return err
	}

	cancelCtx, cancel := cancelOnInterrupt()
	defer cancel()

	log.WithFields(log.Fields{
		"input":   inPath,
		"output":  outPath,
		"format":  opts.Format,
		"workers": opts.Workers,
	}).Debugf("starting to %s", what)

	start := time.Now()
	n, err := fn(cancelCtx, key, src, dst, opts)
	if closeErr := dst.Close(); err == nil && closeErr != nil {
		err = closeErr
	}

	if err != nil {
		if des.IsFormatError(err) {
			log.Warningf("%s contains %s of data before the error", outPath, humanize.Bytes(uint64(n)))
			return ExitCode{BadInput, fmt.Sprintf("%s: %v", what, err)}
		}

		if err == context.Canceled {
			return ExitCode{UnknownError, fmt.Sprintf("%s: interrupted", what)}
		}

		return ExitCode{UnknownError, fmt.Sprintf("%s: %v", what, err)}
	}

	if outPath != stdioPath {
		fmt.Printf(
			"%s %s (%s of plaintext in %v)\n",
			color.GreenString("Wrote"),
			outPath,
			humanize.Bytes(uint64(n)),
			time.Since(start).Round(time.Millisecond),
		)
	}

	return nil
}

func handleEncrypt(ctx *cli.Context, cfg *config.Config) error {
	return runCipher(ctx, cfg, "files.encrypt_suffix", "encrypt", ecb.EncryptStream)
}

func handleDecrypt(ctx *cli.Context, cfg *config.Config) error {
	return runCipher(ctx, cfg, "files.decrypt_suffix", "decrypt", ecb.DecryptStream)
}

func handleKeygen(ctx *cli.Context, cfg *config.Config) error {
	key, err := keyfile.Generate(rand.Reader)
	if err != nil {
		return ExitCode{UnknownError, err.Error()}
	}

	outPath := ctx.String("output")
	if outPath == "" {
		fmt.Println(key.String())
		return nil
	}

	if !ctx.Bool("force") && fileExists(outPath) {
		return ExitCode{
			BadArgs,
			fmt.Sprintf("key file %s exists already; use --force to overwrite", outPath),
		}
	}

	if err := keyfile.Save(outPath, key); err != nil {
		return ExitCode{UnknownError, err.Error()}
	}

	fmt.Printf("%s %s\n", color.GreenString("Wrote key to"), outPath)

	if !ctx.Bool("set-default") {
		return nil
	}

	absPath, err := filepath.Abs(outPath)
	if err != nil {
		return ExitCode{UnknownError, err.Error()}
	}

	if err := cfg.Set("files.key_path", absPath); err != nil {
		return ExitCode{UnknownError, fmt.Sprintf("config set: %v", err)}
	}

	return saveConfig(ctx, cfg)
}
