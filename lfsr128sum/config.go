package main

import (
	"io"
	"runtime"
	"strings"

	"github.com/p7r0x7/lfsrhash"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

var noCodesDefault = false

type palette struct{ yell, purp, und, zero string }

func colors(noCodes bool) palette {
	if noCodes {
		return palette{}
	}
	return palette{"\033[33m", "\033[35m", "\033[4m", "\033[0m"}
}

/*
configure parses args into a viper instance. Precedence, highest first: flags, LFSR128SUM_*
environment variables, defaults. The help text is colored unless --no-codes appears in args
or the console cannot render escape codes.
*/
func configure(args []string, stderr io.Writer) (*viper.Viper, *pflag.FlagSet, error) {
	noCodes := noCodesDefault
	for _, arg := range args {
		switch arg {
		case "--no-codes", "--no-codes=true":
			noCodes = true
		case "--no-codes=false":
			noCodes = false
		}
	}
	c := colors(noCodes)

	flags := pflag.NewFlagSet("lfsr128sum", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.Usage = func() {} /* help() owns the usage text */

	flags.BoolP("help", "h", false,
		c.purp+"print this help menu"+c.zero+n)

	flags.Bool("bench", false, "")
	_ = flags.MarkHidden("bench")

	flags.String("log-file", "",
		c.purp+"also keep a rolling debug log at this path"+c.zero)

	flags.Bool("no-codes", noCodesDefault,
		c.purp+"print to console w/o formatting codes"+c.zero)

	flags.StringP("strategy", "s", lfsrhash.Chained.String(),
		c.purp+"block layout: chain (sequential, 256-byte blocks) or"+c.zero+
			n+c.purp+"fold (parallel, 16 KiB blocks); digests differ between them"+c.zero)

	flags.BoolP("verbose", "v", false,
		c.purp+"log the strategy, size, and time taken for each file"+c.zero)

	flags.IntP("workers", "w", runtime.NumCPU(),
		c.purp+"blocks hashed concurrently by the fold strategy"+c.zero)

	/* Order flags alphabetically except for help, which is hoisted to the top. */
	flags.SortFlags = false

	cfg := viper.New()
	if err := cfg.BindPFlags(flags); err != nil {
		return nil, flags, err
	}
	cfg.SetEnvPrefix("LFSR128SUM")
	cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	cfg.AutomaticEnv()

	if err := flags.Parse(args); err != nil {
		return cfg, flags, err
	}
	if help, _ := flags.GetBool("help"); help {
		return cfg, flags, pflag.ErrHelp
	}
	return cfg, flags, nil
}
