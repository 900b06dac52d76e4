// Command filegather reads text files concurrently with a fixed-size
// worker pool, uppercases every line, and prints a processing report.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"

	"github.com/filegather/filegather/collect"
	"github.com/filegather/filegather/report"
)

var defaultFiles = []string{
	"data1.txt", "data2.txt", "data3.txt", "data4.txt", "data5.txt",
	"data6.txt", "data7.txt", "data8.txt", "data9.txt", "data10.txt",
}

func main() {
	workers := flag.Int("workers", 5, "number of concurrent workers")
	dir := flag.String("dir", "", "directory file names resolve against (default: working directory)")
	timeout := flag.Duration("timeout", collect.DefaultWaitTimeout, "bound on waiting for all files")
	first := flag.Int("first", report.DefaultFirstLines, "how many collected lines to preview")
	perSec := flag.Float64("rate", 0, "max file tasks started per second (0 = unlimited)")
	flag.Parse()

	files := flag.Args()
	if len(files) == 0 {
		files = defaultFiles
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	bar := makeProgressBar(len(files))

	opts := []collect.Option{
		collect.WithWorkers(*workers),
		collect.WithWaitTimeout(*timeout),
		collect.WithOnFileDone(func(string, collect.FileStatus) {
			_ = bar.Add(1)
		}),
	}
	if *perSec > 0 {
		opts = append(opts, collect.WithRateLimit(*perSec, *workers))
	}

	c := collect.New(collect.DirSource{Root: *dir}, opts...)
	res, err := c.Process(ctx, files)

	_ = bar.Finish()
	fmt.Println()

	if err != nil {
		// Non-fatal: the report below covers whatever completed.
		_, _ = color.New(color.FgRed).Printf("wait ended early: %v\n", err)
	}

	if rerr := report.Write(os.Stdout, res, *first); rerr != nil {
		_, _ = color.New(color.FgRed).Printf("render report: %v\n", rerr)
		os.Exit(1)
	}
}

func makeProgressBar(total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetDescription("Processing files"),
		progressbar.OptionSetWidth(50),
		progressbar.OptionShowCount(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerHead:    "█",
			SaucerPadding: "░",
			BarStart:      "│",
			BarEnd:        "│",
		}),
	)
}
