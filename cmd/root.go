package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"acadsave/internal/config"
	"acadsave/internal/crawler"
	"acadsave/internal/logger"
	"acadsave/internal/markdown"
	"acadsave/internal/scraper"
	"acadsave/internal/version"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "acadsave",
	Short: "Acadsave archives an online course module as Markdown files.",
	Long: `Acadsave crawls a course module's index page, follows the chapter links
listed in its table of contents and saves each chapter as a numbered
Markdown file under the results directory.`,
	Version: version.Short(),
	Run: func(cmd *cobra.Command, args []string) {
		run()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().StringVar(&cfgFile, "config", config.DefaultPath, "config file")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
}

func run() {
	log, logClose, err := logger.New(logger.FileName)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error setting up logging:", err)
		os.Exit(1)
	}
	defer logClose.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if code := crawl(ctx, log, cfgFile); code != 0 {
		os.Exit(code)
	}
}

// crawl wires the collaborators together and executes one crawl, returning
// the process exit code: 0 on success and on user interruption, 1 on invalid
// configuration or an unhandled error. Configuration failures are reported
// before any network activity.
func crawl(ctx context.Context, log *log.Logger, cfgPath string) int {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Error("invalid configuration, check your config file", "err", err)
		return 1
	}
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration, check your config file", "err", err)
		return 1
	}

	s, err := scraper.New(cfg.URL, cfg.Cookies, nil, log)
	if err != nil {
		log.Error("invalid configuration, check your config file", "err", err)
		return 1
	}

	crawlCfg := crawler.DefaultConfig()
	crawlCfg.LinksFile = cfg.File

	c := crawler.New(s, markdown.New(log), crawlCfg, log)
	c.Verbose = verbose

	if err := c.Run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			log.Info("scraper stopped by user")
			return 0
		}
		log.Error("unhandled error", "err", err)
		return 1
	}
	return 0
}
