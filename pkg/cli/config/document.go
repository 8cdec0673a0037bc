package config

import "github.com/urfave/cli/v3"

// Document identifies the spreadsheet document and its property store.
type Document struct {
	Workbook string
	Store    string
}

// Flags returns CLI flags for document configuration
func (c *Document) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "workbook",
			Aliases:     []string{"w"},
			Usage:       "Path to the XLSX workbook",
			Required:    true,
			Destination: &c.Workbook,
			Sources:     cli.EnvVars("SCRYSHEET_WORKBOOK"),
		},
		&cli.StringFlag{
			Name:        "store",
			Usage:       "Path to the property store database",
			Value:       "scrysheet.db",
			Destination: &c.Store,
			Sources:     cli.EnvVars("SCRYSHEET_STORE"),
		},
	}
}
