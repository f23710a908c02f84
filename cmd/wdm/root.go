package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ZebulonRouseFrantzich/webdriver-manager/internal/binary"
	"github.com/ZebulonRouseFrantzich/webdriver-manager/internal/browser"
	"github.com/ZebulonRouseFrantzich/webdriver-manager/internal/config"
	"github.com/ZebulonRouseFrantzich/webdriver-manager/internal/driver"
	"github.com/ZebulonRouseFrantzich/webdriver-manager/internal/errdefs"
	"github.com/ZebulonRouseFrantzich/webdriver-manager/internal/logging"
	"github.com/ZebulonRouseFrantzich/webdriver-manager/internal/platform"
)

// app holds global flag values and the process's output streams.
type app struct {
	configPath  string
	installDir  string
	manifestURL string
	verbose     bool

	stdout io.Writer
	stderr io.Writer

	// detector is replaced in tests
	detector platform.Detector
	// getenv is replaced in tests; nil means os.Getenv
	getenv func(string) string
}

func newApp(stdout, stderr io.Writer) *app {
	return &app{
		stdout:   stdout,
		stderr:   stderr,
		detector: platform.NewDetector(),
	}
}

// run executes the command line and returns the process exit code.
func run(ctx context.Context, args []string, a *app) int {
	root := newRootCmd(a)
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		printError(a.stderr, err, a.verbose)
		return 1
	}
	return 0
}

// printError writes err as "Error: <message>"; verbose adds its kind.
func printError(w io.Writer, err error, verbose bool) {
	msg := err.Error()
	var parseErr *config.ParseError
	if errors.As(err, &parseErr) {
		msg = strings.Replace(msg, parseErr.Error(), config.FormatError(parseErr, verbose), 1)
	}
	fmt.Fprintf(w, "Error: %s\n", msg)
	if verbose {
		if kind := errdefs.KindOf(err); kind != errdefs.KindUnknown {
			fmt.Fprintf(w, "Kind: %s\n", kind)
		}
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "wdm",
		Short: "wdm - WebDriver manager",
		Long: `wdm finds the locally installed browser, picks the matching
driver release from the chrome-for-testing manifest, downloads and
extracts it, and verifies that the installed driver runs.

Configuration is read from --config, $WDM_CONFIG or
<config dir>/wdm/wdm.lua when present.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "config file (default is $WDM_CONFIG or <config dir>/wdm/wdm.lua)")
	flags.StringVar(&a.installDir, "install-dir", "", "directory that receives drivers (default is <cache dir>/wdm/drivers)")
	flags.StringVar(&a.manifestURL, "manifest-url", "", "chrome-for-testing manifest URL")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "verbose output")

	root.AddCommand(
		newInstallCmd(a),
		newBrowserVersionCmd(a),
		newDriverVersionCmd(a),
		newDownloadURLCmd(a),
		newVerifyCmd(a),
		newPlatformCmd(a),
		newConfigCmd(a),
		newVersionCmd(a),
	)

	return root
}

// session is what one command needs from flags, config and the host.
type session struct {
	cfg      *config.Config
	source   string
	logger   logging.Logger
	platform *platform.Info
	locator  browser.Locator // nil searches for the browser on platform
}

// logger returns the stderr logger for this invocation.
func (a *app) logger() logging.Logger {
	return logging.NewSlog(logging.SlogConfig{Writer: a.stderr, Debug: a.verbose})
}

// open detects the platform and loads the effective configuration.
func (a *app) open(ctx context.Context, detector platform.Detector) (*session, error) {
	logger := a.logger()

	info, err := detector.Detect(ctx)
	if err != nil {
		return nil, fmt.Errorf("detect platform: %w", err)
	}

	cfg, source, err := config.Load(ctx, config.LoadOptions{
		Path:     a.configPath,
		Detector: detector,
		Getenv:   a.getenv,
		Overrides: config.Overrides{
			InstallDir:  a.installDir,
			ManifestURL: a.manifestURL,
		},
	})
	if err != nil {
		return nil, err
	}
	if source != "" {
		logger.Debug("loaded config", "path", source)
	}

	return &session{cfg: cfg, source: source, logger: logger, platform: info}, nil
}

// chromeDriver builds the chromedriver manager for s.
func (s *session) chromeDriver() (*driver.ChromeDriver, error) {
	return driver.NewChromeDriver(driver.ChromeDriverConfig{
		Platform:    s.platform,
		Locator:     s.locator,
		ManifestURL: s.cfg.ManifestURL,
		UserAgent:   s.cfg.UserAgent,
		Pool:        binary.NewPool(s.cfg.ExtractWorkers),
		Logger:      s.logger,
	})
}
