package main

import (
	. "fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/p7r0x7/lfsrhash"
	"github.com/p7r0x7/lfsrhash/internal/selfcheck"
	"github.com/p7r0x7/vainpath"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

const n = "\n"
const success, failure, invalid = 0, 1, 2
const benchSize, benchRuns = 64 << 20, 9

func main() { os.Exit(program(afero.NewOsFs(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr)) }

// help prints the usage menu to w. To render correctly in most terminal windows, its content
// should be no wider than 80 columns.
func help(w io.Writer, flags *pflag.FlagSet, c palette) {
	origin, err := os.Executable()
	if err != nil {
		origin = "lfsr128sum" /* Default binary name */
	} else {
		origin = filepath.Base(origin)
	}
	name := vainpath.Trim(origin, "…", 12)
	spaces := strings.Repeat(" ", utf8.RuneCountInString(name)+3)
	Fprint(w, c.yell, "128-bit checksums from a pair of linear feedback shift registers.", c.zero, n+n+
		"Usage:"+n+
		"  ", name, " [-h]"+n,
		spaces, "[-v] [-s chain|fold] [-w <int>] [--no-codes] -|PATH..."+n+n+
			"Options:"+n)
	Fprint(w, flags.FlagUsages())
	Fprint(w, n+"Each PATH prints as `<digest>\\t<PATH>`. `-` reads STDIN to its end. Flags may"+n+
		"also be set through LFSR128SUM_<FLAG> environment variables."+n)
}

// This program is a command-line interface for lfsrhash: it hashes every PATH argument in order,
// reporting inaccessible ones on stderr without stopping.
func program(fs afero.Fs, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, flags, err := configure(args, stderr)
	c := colors(cfg == nil || cfg.GetBool("no-codes"))
	switch {
	case errors.Is(err, pflag.ErrHelp):
		help(stdout, flags, c)
		return success
	case err != nil:
		Fprint(stderr, err, n)
		return invalid
	}
	closer := startLogging(stderr, cfg.GetBool("verbose"), cfg.GetBool("no-codes"), cfg.GetString("log-file"))
	defer closer.Close()

	opts, err := options(cfg)
	if err != nil {
		Fprint(stderr, err, n)
		return invalid
	}

	if cfg.GetBool("bench") {
		Fprint(stdout, selfcheck.Throughput(benchSize, benchRuns), n)
		if flags.NArg() == 0 {
			return success
		}
	}
	if flags.NArg() == 0 {
		help(stdout, flags, c)
		return invalid
	}

	status := success
	for _, path := range flags.Args() {
		start := time.Now()
		var fd lfsrhash.FileDigest
		if path == "-" {
			fd, err = lfsrhash.SumStream(stdin, path, opts...)
		} else {
			fd, err = lfsrhash.SumFile(fs, path, opts...)
		}
		if err != nil {
			report(stderr, path, err)
			status = failure
			continue
		}
		log.Debugf("%s: %d bytes via %s in %s", path, fd.Size, cfg.GetString("strategy"),
			time.Since(start).Truncate(time.Microsecond))
		Fprint(stdout, fd, n)
	}
	return status
}

func options(cfg *viper.Viper) ([]lfsrhash.Option, error) {
	strategy, err := lfsrhash.ParseStrategy(cfg.GetString("strategy"))
	if err != nil {
		return nil, err
	}
	workers := cfg.GetInt("workers")
	if workers < 1 {
		return nil, errors.Errorf("workers must be at least 1, got %d", workers)
	}
	return []lfsrhash.Option{lfsrhash.WithStrategy(strategy), lfsrhash.WithWorkers(workers)}, nil
}

func report(stderr io.Writer, path string, err error) {
	var oe *lfsrhash.OpenError
	switch {
	case errors.As(err, &oe):
		Fprint(stderr, "Error opening file: ", path, n)
	case errors.Is(err, lfsrhash.ErrEmptyInput):
		Fprint(stderr, "Nothing to hash: ", path, n)
	default:
		Fprint(stderr, "Error reading file: ", path, n)
	}
	log.Warningf("%v", err)
}
