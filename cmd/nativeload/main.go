package main

import (
	"fmt"
	"os"

	"github.com/bagtoad/nativeload/internal/onnxlib"
	"github.com/bagtoad/nativeload/internal/platform"
	"github.com/bagtoad/nativeload/internal/report"
	"github.com/bagtoad/nativeload/internal/routes"
	"github.com/bagtoad/nativeload/internal/scanner"
	"github.com/bagtoad/nativeload/nativelib"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type options struct {
	bundle    string
	routes    []string
	prefix    string
	tempDir   string
	osName    string
	osArch    string
	osVersion string
	verbose   bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "nativeload",
		Short: "Resolve, extract and load platform-specific native libraries from a bundle",
		Long: `nativeload picks the native library variant that matches the current
platform from a bundle directory, extracts it to the temp directory and
loads it into the process.

Routes map OS name, architecture and OS version patterns to bundle
directories; the first matching route wins. They come from --route,
from ~/.nativeload/routes.txt, or from the built-in <goos>-<goarch> layout.`,
		SilenceUsage: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.bundle, "bundle", ".", "Directory holding the library bundle")
	flags.StringArrayVar(&opts.routes, "route", nil, `Route as "OS_PATTERN ARCH_PATTERN VERSION_PATTERN DIR" (repeatable, first match wins)`)
	flags.StringVar(&opts.prefix, "prefix", "", "Prefix for extracted file names (default derived from the binary's module)")
	flags.StringVar(&opts.tempDir, "temp-dir", platform.TempDir(), "Directory libraries are extracted to")
	flags.StringVar(&opts.osName, "os-name", platform.OSName(), "OS name to resolve for")
	flags.StringVar(&opts.osArch, "os-arch", platform.OSArch(), "Architecture to resolve for")
	flags.StringVar(&opts.osVersion, "os-version", platform.OSVersion(), "OS version to resolve for")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(
		newResolveCmd(opts),
		newListCmd(opts),
		newExtractCmd(opts),
		newLoadCmd(opts),
		newOnnxCmd(opts),
	)
	return rootCmd
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// newLoader builds a loader from the command line.
func newLoader(opts *options, log *zap.Logger) (*nativelib.Loader, error) {
	info, err := os.Stat(opts.bundle)
	if err != nil {
		return nil, fmt.Errorf("cannot access bundle: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", opts.bundle)
	}

	desc := nativelib.Descriptor{
		OSName:    opts.osName,
		OSArch:    opts.osArch,
		OSVersion: opts.osVersion,
		TempDir:   opts.tempDir,
	}
	l := nativelib.New(desc, nativelib.WithResourceRoot(os.DirFS(opts.bundle)))
	if opts.prefix != "" {
		if err := l.SetPrefix(opts.prefix); err != nil {
			return nil, err
		}
	}

	rules, err := routes.Resolve(opts.routes)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve routes: %w", err)
	}
	if err := routes.Apply(l, rules); err != nil {
		return nil, err
	}

	log.Debug("loader configured",
		zap.String("bundle", opts.bundle),
		zap.String("os_name", desc.OSName),
		zap.String("os_arch", desc.OSArch),
		zap.String("os_version", desc.OSVersion),
		zap.String("temp_dir", desc.TempDir),
		zap.String("prefix", l.Prefix()),
		zap.Int("routes", l.Routes().Len()))
	return l, nil
}

// withLogger runs fn with a logger configured from the flags.
func withLogger(opts *options, fn func(log *zap.Logger) error) error {
	log, err := newLogger(opts.verbose)
	if err != nil {
		return fmt.Errorf("cannot create logger: %w", err)
	}
	defer log.Sync() //nolint:errcheck
	return fn(log)
}

func newResolveCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve",
		Short: "Print the bundle directory the current platform routes to",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withLogger(opts, func(log *zap.Logger) error {
				l, err := newLoader(opts, log)
				if err != nil {
					return err
				}
				dir, err := l.Resolve()
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), dir)
				return nil
			})
		},
	}
}

func newListCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the native libraries in the bundle",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := scanner.Scan(os.DirFS(opts.bundle))
			if err != nil {
				return err
			}
			report.PrintScan(cmd.OutOrStdout(), result)
			return nil
		},
	}
}

func newExtractCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "extract <library>",
		Short: "Extract a library for the current platform without loading it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withLogger(opts, func(log *zap.Logger) error {
				l, err := newLoader(opts, log)
				if err != nil {
					return err
				}
				ex, err := l.Extract(args[0])
				if err != nil {
					return err
				}
				log.Debug("extracted",
					zap.String("resource", ex.ResourcePath),
					zap.String("cache", ex.CachePath),
					zap.Bool("written", ex.Written))
				report.Print(cmd.OutOrStdout(), ex, false)
				return nil
			})
		},
	}
}

func newLoadCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "load <library>",
		Short: "Extract a library and load it into this process",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withLogger(opts, func(log *zap.Logger) error {
				l, err := newLoader(opts, log)
				if err != nil {
					return err
				}
				ex, err := l.LoadExtraction(args[0])
				if err != nil {
					log.Error("load failed", zap.String("library", args[0]), zap.Error(err))
					return err
				}
				report.Print(cmd.OutOrStdout(), ex, true)
				return nil
			})
		},
	}
}

func newOnnxCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "onnx",
		Short: "Extract and initialize the embedded ONNX Runtime",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withLogger(opts, func(log *zap.Logger) error {
				onnxlib.SetLogger(log)
				if err := onnxlib.Load(); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "ONNX Runtime initialized")
				return nil
			})
		},
	}
}
