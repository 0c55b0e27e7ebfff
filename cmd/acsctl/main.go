package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/StormyDevil/azure-communication-services-solution/internal/azcli"
	"github.com/StormyDevil/azure-communication-services-solution/internal/deploy"
	"github.com/StormyDevil/azure-communication-services-solution/internal/models"
	"github.com/StormyDevil/azure-communication-services-solution/internal/prompts"
	"github.com/StormyDevil/azure-communication-services-solution/internal/teardown"
)

func main() {
	app := &cli.App{
		Name:  "acsctl",
		Usage: "Deploy and tear down the Azure Communication Services solution",
		Commands: []*cli.Command{
			{
				Name:  "deploy",
				Usage: "Validate, preview and apply the solution templates",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "environment",
						Aliases: []string{"e"},
						Usage:   "Target environment (dev, staging, prod)",
						Value:   string(models.DefaultEnvironment),
					},
					&cli.StringFlag{
						Name:    "location",
						Aliases: []string{"l"},
						Usage:   "Azure region code; omit for an interactive menu",
					},
					&cli.StringFlag{
						Name:    "resource-group",
						Aliases: []string{"g"},
						Usage:   "Resource group name (defaults from the environment)",
					},
					&cli.BoolFlag{
						Name:  "what-if",
						Usage: "Preview only; apply nothing",
					},
				},
				Action: runDeploy,
			},
			{
				Name:  "teardown",
				Usage: "Discover and delete the solution's resource groups",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "environment",
						Aliases: []string{"e"},
						Usage:   "Target the environment's default resource group",
					},
					&cli.StringFlag{
						Name:    "resource-group",
						Aliases: []string{"g"},
						Usage:   "Explicit resource group to delete",
					},
					&cli.BoolFlag{
						Name:  "all",
						Usage: "Delete every discovered project resource group",
					},
					&cli.BoolFlag{
						Name:  "force",
						Usage: "Skip the typed confirmation",
					},
					&cli.BoolFlag{
						Name:  "dry-run",
						Usage: "Report targets; delete nothing",
					},
				},
				Action: runTeardown,
			},
		},
		Action: func(c *cli.Context) error {
			return cli.ShowAppHelp(c)
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func runDeploy(c *cli.Context) error {
	env, err := models.ParseEnvironment(c.String("environment"))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	pipeline := deploy.New(azcli.New(), prompts.Console{}, os.Stdout)
	err = pipeline.Run(deploy.Options{
		Environment:   env,
		Location:      c.String("location"),
		ResourceGroup: c.String("resource-group"),
		WhatIfOnly:    c.Bool("what-if"),
	})
	if errors.Is(err, models.ErrCancelled) {
		return nil
	}
	if err != nil {
		return cli.Exit(fmt.Sprintf("❌ %v", err), models.ExitCode(err))
	}
	return nil
}

func runTeardown(c *cli.Context) error {
	env := c.String("environment")
	if env != "" {
		if _, err := models.ParseEnvironment(env); err != nil {
			return cli.Exit(err.Error(), 1)
		}
	}

	pipeline := teardown.New(azcli.New(), prompts.Console{}, os.Stdout)
	summary, err := pipeline.Run(teardown.Options{
		Environment:   env,
		ResourceGroup: c.String("resource-group"),
		All:           c.Bool("all"),
		Force:         c.Bool("force"),
		DryRun:        c.Bool("dry-run"),
	})
	if errors.Is(err, models.ErrCancelled) {
		return nil
	}
	if err != nil {
		return cli.Exit(fmt.Sprintf("❌ %v", err), models.ExitCode(err))
	}
	if summary.Failed() > 0 {
		return cli.Exit(fmt.Sprintf("teardown finished with %d failed delete request(s)", summary.Failed()), models.ExitPartial)
	}
	return nil
}
