// Package launcher wires the fstr commands: small debugging helpers for
// inspecting lexicographic successors, key-range bounds, and compact
// integer encodings produced by this module.
package launcher

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/sirupsen/logrus"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/rony4d/go-faststring/cser"
	"github.com/rony4d/go-faststring/flags"
	"github.com/rony4d/go-faststring/fstring"
	"github.com/rony4d/go-faststring/keys"
)

var app = flags.NewApp()

func init() {
	app.Flags = flags.LogFlags()
	app.Before = setupLogging
	app.Commands = []cli.Command{
		{
			Name:      "succ",
			Usage:     "Print the lexicographic successor of a hex byte string",
			ArgsUsage: "<hex>",
			Action:    succAction,
		},
		{
			Name:      "bound",
			Usage:     "Print the exclusive upper bound for iterating keys with the given hex prefix",
			ArgsUsage: "<hex>",
			Action:    boundAction,
		},
		{
			Name:      "u64",
			Usage:     "Print the compact encoding of an unsigned integer",
			ArgsUsage: "<number>",
			Action:    u64Action,
		},
	}
}

// Launch parses the arguments and runs the selected command.
func Launch(args []string) error {
	return app.Run(args)
}

// setupLogging configures logrus from the global flags before any command
// runs.
func setupLogging(ctx *cli.Context) error {
	verbosity := ctx.GlobalInt("log.verbosity")
	if verbosity < 0 || verbosity > 5 {
		return fmt.Errorf("invalid log.verbosity: %d", verbosity)
	}
	logrus.SetLevel(logrus.Level(verbosity))

	switch format := ctx.GlobalString("log.format"); format {
	case "text":
		logrus.SetFormatter(&logrus.TextFormatter{})
	case "json":
		logrus.SetFormatter(&logrus.JSONFormatter{})
	default:
		return fmt.Errorf("unknown log.format: %q", format)
	}
	return nil
}

// parseHex decodes a hex argument, with or without the 0x prefix.
func parseHex(s string) ([]byte, error) {
	if s == "" {
		return nil, errors.New("empty hex argument")
	}
	raw, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid hex argument: %v", err)
	}
	return raw, nil
}

func succAction(ctx *cli.Context) error {
	raw, err := parseHex(ctx.Args().First())
	if err != nil {
		return err
	}

	buf := fstring.New()
	buf.AssignCopy(raw)
	if !buf.AdvanceToSuccessor() {
		return errors.New("no successor: input consists entirely of 0xff bytes")
	}

	logrus.WithFields(logrus.Fields{
		"in":  len(raw),
		"out": buf.Len(),
	}).Debug("computed successor")

	fmt.Fprintln(ctx.App.Writer, "0x"+common.Bytes2Hex(buf.Bytes()))
	return nil
}

func boundAction(ctx *cli.Context) error {
	raw, err := parseHex(ctx.Args().First())
	if err != nil {
		return err
	}

	end := keys.PrefixEnd(raw)
	if end == nil {
		// Iteration over this prefix has no finite upper bound.
		fmt.Fprintln(ctx.App.Writer, "unbounded")
		return nil
	}

	fmt.Fprintln(ctx.App.Writer, "0x"+common.Bytes2Hex(end))
	return nil
}

func u64Action(ctx *cli.Context) error {
	v, err := strconv.ParseUint(ctx.Args().First(), 0, 64)
	if err != nil {
		return fmt.Errorf("invalid number: %v", err)
	}

	blob, err := cser.MarshalBinaryAdapter(func(w *cser.Writer) error {
		w.U64(v)
		return nil
	})
	if err != nil {
		return err
	}

	logrus.WithField("bytes", len(blob)).Debug("encoded integer")

	fmt.Fprintln(ctx.App.Writer, "0x"+common.Bytes2Hex(blob))
	return nil
}
