package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/urfave/cli"
	"github.com/xrash/smetrics"
)

const (
	minSimilarity   = 0.8
	jaroBoostThresh = 0.7
	jaroPrefixSize  = 4
)

// Names used by other crypto tools that map to one of our commands.
var commandSynonyms = map[string]string{
	"enc":      "encrypt",
	"dec":      "decrypt",
	"genkey":   "keygen",
	"gen":      "keygen",
	"settings": "config",
	"speed":    "bench",
}

type suggestion struct {
	name  string
	score float64
}

func similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}

	return smetrics.JaroWinkler(
		strings.ToLower(a),
		strings.ToLower(b),
		jaroBoostThresh,
		jaroPrefixSize,
	)
}

// resolveCommandPath walks the arguments of the root context along the
// command tree. It returns the names that matched and the commands that are
// valid after them.
func resolveCommandPath(ctx *cli.Context) ([]string, []cli.Command) {
	for ctx.Parent() != nil {
		ctx = ctx.Parent()
	}

	cmds := ctx.App.Commands
	args := ctx.Args()
	if len(args) < 2 {
		return nil, cmds
	}

	path := []string{}

	// The last argument is the one that did not match.
	for _, arg := range args[:len(args)-1] {
		var next *cli.Command
		for idx := range cmds {
			if cmds[idx].HasName(arg) {
				next = &cmds[idx]
				break
			}
		}

		if next == nil {
			break
		}

		path = append(path, next.Name)
		cmds = next.Subcommands
	}

	if len(path) == 0 {
		return nil, ctx.App.Commands
	}

	return path, cmds
}

// rankCommands returns the commands similar to `name`, best match first.
// Every command shows up at most once.
func rankCommands(name string, cmds []cli.Command) []suggestion {
	best := make(map[string]float64)

	for _, cmd := range cmds {
		for _, candidate := range append([]string{cmd.Name}, cmd.Aliases...) {
			if score := similarity(name, candidate); score >= minSimilarity && score > best[cmd.Name] {
				best[cmd.Name] = score
			}
		}

		if synonym, ok := commandSynonyms[name]; ok && synonym == cmd.Name {
			if _, ok := best[cmd.Name]; !ok {
				best[cmd.Name] = 0
			}
		}
	}

	ranked := make([]suggestion, 0, len(best))
	for cmdName, score := range best {
		ranked = append(ranked, suggestion{name: cmdName, score: score})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}

		return ranked[i].name < ranked[j].name
	})

	return ranked
}

func commandNotFound(ctx *cli.Context, cmdName string) {
	path, cmds := resolveCommandPath(ctx)

	badCmd := color.RedString(cmdName)
	if path == nil {
		fmt.Printf("`%s` is not a valid command.", badCmd)
	} else {
		parent := color.YellowString(strings.Join(path, " "))
		fmt.Printf("`%s` is not a valid subcommand of `%s`.", badCmd, parent)
	}

	ranked := rankCommands(cmdName, cmds)
	if len(ranked) == 0 {
		fmt.Println()
		return
	}

	names := make([]string, 0, len(ranked))
	for _, s := range ranked {
		names = append(names, color.GreenString(s.name))
	}

	fmt.Printf(" Did you mean %s?\n", strings.Join(names, " or "))
}
