package config

import (
	"github.com/scrysheet/scrysheet/pkg/infra/scryfall"
	"github.com/urfave/cli/v3"
)

// Scryfall holds card search API configuration
type Scryfall struct {
	BaseURL string
}

// Flags returns CLI flags for the card search API
func (c *Scryfall) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "api-url",
			Usage:       "Card search API base URL",
			Value:       scryfall.DefaultBaseURL,
			Destination: &c.BaseURL,
			Sources:     cli.EnvVars("SCRYSHEET_API_URL"),
		},
	}
}
