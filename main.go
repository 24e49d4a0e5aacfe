package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "minic",
		Usage: "source-to-TAC compiler and interpreter",
		Commands: []*cli.Command{
			{
				Name:      "init",
				Usage:     "write a project file for the current directory",
				ArgsUsage: "<name>",
				Action: func(c *cli.Context) error {
					name := c.Args().First()
					if name == "" {
						return cli.Exit("no project name provided", 1)
					}
					if err := writeProject(projectConfig{Package: name}); err != nil {
						return cli.Exit(fmt.Sprintf("error creating %s: %s", projectFile, err), 1)
					}
					return nil
				},
			},
			{
				Name:      "run",
				Usage:     "compile and interpret a source file",
				ArgsUsage: "<file>",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "tokens",
						Usage: "print the token list",
					},
					&cli.BoolFlag{
						Name:  "ast",
						Usage: "print the parsed tree",
					},
					&cli.BoolFlag{
						Name:  "noopt",
						Usage: "disable optimization",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "write the TAC dump to `FILE`",
					},
				},
				Action: runAction,
			},
		},
	}
	app.Run(os.Args)
}
