// Package cli implements the admin command-line interface used for
// maintenance of the scoring database.
package cli

import (
	goflags "github.com/jessevdk/go-flags"
)

// commands holds references to all subcommand structs for inspection/testing.
type commands struct {
	ClearEmpty *ClearEmptyCommand
	ClearOld   *ClearOldCommand
}

// buildParser constructs the go-flags parser with all subcommands registered.
func buildParser() (*goflags.Parser, *GlobalFlags, *commands) {
	var globals GlobalFlags

	parser := goflags.NewParser(&globals, goflags.Default)
	parser.Name = "newstrustctl"
	parser.LongDescription = "Maintenance commands for the NewsTrust scoring database."

	cmds := &commands{
		ClearEmpty: &ClearEmptyCommand{globals: &globals},
		ClearOld:   &ClearOldCommand{globals: &globals},
	}

	parser.AddCommand("clear-empty", "Delete pages with an empty content score",
		"Delete pages whose content score is still null, typically left by crashed runs.", cmds.ClearEmpty)
	parser.AddCommand("clear-old", "Delete pages scored with an old policy version",
		"Delete pages whose scores version is older than the previous policy version.", cmds.ClearOld)

	return parser, &globals, cmds
}

// Run parses the given args (or os.Args if nil) and executes the matched
// subcommand.
func Run(args []string) error {
	parser, _, _ := buildParser()

	var err error
	if args != nil {
		_, err = parser.ParseArgs(args)
	} else {
		_, err = parser.Parse()
	}

	if err != nil {
		var flagsErr *goflags.Error
		if ok := asFlagsError(err, &flagsErr); ok && flagsErr.Type == goflags.ErrHelp {
			return nil
		}
		return err
	}
	return nil
}

func asFlagsError(err error, target **goflags.Error) bool {
	fe, ok := err.(*goflags.Error)
	if ok {
		*target = fe
	}
	return ok
}
