// Command quotes scrapes quote listing pages into a CSV file.
//
// Without flags it crawls the first 10 pages of quotes.toscrape.com,
// writes quotes.csv and logs to the console and parser.log.
package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/apex/log"
	"github.com/tj/kingpin"
	"github.com/yields/quotes"
	"github.com/yields/quotes/internal/logging"
)

// Config is the command configuration.
type config struct {
	Output      string
	BaseURL     string
	Pages       int
	LogFile     string
	LogLevel    string
	Concurrency int
	Timeout     time.Duration
	Robots      bool
	UserAgent   string
}

func main() {
	var c config
	var app = kingpin.New("quotes", "Scrape quote listing pages into a CSV file.")

	app.Flag("output", "CSV file to write.").Short('o').Default("quotes.csv").StringVar(&c.Output)
	app.Flag("url", "URL of the first listing page.").Default(quotes.BaseURL).StringVar(&c.BaseURL)
	app.Flag("pages", "Number of listing pages to crawl.").Short('n').Default("10").IntVar(&c.Pages)
	app.Flag("log-file", "Log file, appended to.").Default("parser.log").StringVar(&c.LogFile)
	app.Flag("log-level", "Log level.").Default("info").StringVar(&c.LogLevel)
	app.Flag("concurrency", "Pages to fetch at once.").Default("1").IntVar(&c.Concurrency)
	app.Flag("timeout", "Request timeout, 0 waits forever.").Default("0s").DurationVar(&c.Timeout)
	app.Flag("robots", "Honor robots.txt.").BoolVar(&c.Robots)
	app.Flag("user-agent", "User-Agent header, empty uses the client default.").StringVar(&c.UserAgent)

	if _, err := app.Parse(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "quotes: %s\n", err)
		os.Exit(2)
	}

	logger, closer, err := logging.New(logging.Config{
		Level: c.LogLevel,
		File:  c.LogFile,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "quotes: %s\n", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)

	err = run(ctx, c, logger, os.Stdout)
	cancel()

	if err != nil {
		logger.WithError(err).Error("scrape failed")
		closer.Close()
		os.Exit(1)
	}

	closer.Close()
}

// Run crawls, then writes the CSV file and prints
// a confirmation to stdout.
func run(ctx context.Context, c config, logger log.Interface, stdout io.Writer) error {
	var fetcher = &quotes.Fetcher{
		Client: client(c.Timeout),
	}

	if c.UserAgent != "" {
		fetcher.UserAgent = quotes.StaticAgent(c.UserAgent)
	}

	crawler, err := quotes.NewCrawler(quotes.CrawlerConfig{
		BaseURL:     c.BaseURL,
		Pages:       c.Pages,
		Fetcher:     fetcher,
		Concurrency: c.Concurrency,
		Robots:      c.Robots,
		Logger:      logger,
	})
	if err != nil {
		return err
	}

	all, err := crawler.Run(ctx)
	if err != nil {
		return err
	}

	if err := quotes.WriteFile(c.Output, all); err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Wrote %d quotes to %s\n", len(all), c.Output)
	return nil
}

// Client returns the HTTP client to use.
func client(timeout time.Duration) quotes.Client {
	if timeout <= 0 {
		return quotes.DefaultClient
	}
	return &http.Client{
		Transport: quotes.DefaultClient.Transport,
		Timeout:   timeout,
	}
}
