package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/scrysheet/scrysheet/pkg/cli/config"
	"github.com/scrysheet/scrysheet/pkg/domain/model"
	"github.com/scrysheet/scrysheet/pkg/infra/scryfall"
	"github.com/scrysheet/scrysheet/pkg/infra/sheet"
	"github.com/scrysheet/scrysheet/pkg/usecase"
	"github.com/urfave/cli/v3"
	"github.com/xuri/excelize/v2"
)

func cmdSearch() *cli.Command {
	var (
		apiCfg    config.Scryfall
		fields    string
		num       int
		order     string
		direction string
		unique    string
		out       string
		sheetName string
		cell      string
	)

	flags := append(apiCfg.Flags(),
		&cli.StringFlag{
			Name:        "fields",
			Aliases:     []string{"f"},
			Usage:       "Space or comma separated field names",
			Value:       model.DefaultFields,
			Destination: &fields,
		},
		&cli.IntFlag{
			Name:        "num",
			Aliases:     []string{"n"},
			Usage:       "Maximum number of result rows",
			Value:       model.DefaultLimit,
			Destination: &num,
		},
		&cli.StringFlag{
			Name:        "order",
			Usage:       "Sort order",
			Value:       model.DefaultOrder,
			Destination: &order,
		},
		&cli.StringFlag{
			Name:        "direction",
			Usage:       "Sort direction (auto, asc, desc)",
			Value:       model.DefaultDirection,
			Destination: &direction,
		},
		&cli.StringFlag{
			Name:        "unique",
			Usage:       "Duplicate collapsing mode (cards, art, prints)",
			Value:       model.DefaultUnique,
			Destination: &unique,
		},
		&cli.StringFlag{
			Name:        "out",
			Aliases:     []string{"o"},
			Usage:       "Workbook to write results into (prints TSV when omitted)",
			Destination: &out,
		},
		&cli.StringFlag{
			Name:        "sheet",
			Usage:       "Destination sheet name",
			Value:       "results",
			Destination: &sheetName,
		},
		&cli.StringFlag{
			Name:        "cell",
			Usage:       "Top-left cell of the output table",
			Value:       "A1",
			Destination: &cell,
		},
	)

	return &cli.Command{
		Name:      "search",
		Usage:     "Query the card search API and emit a result table",
		ArgsUsage: "<query>",
		Flags:     flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			searchUC := usecase.NewSearch(scryfall.New(scryfall.WithBaseURL(apiCfg.BaseURL)))

			table, err := searchUC.Search(ctx, &model.SearchQuery{
				Query:     c.Args().First(),
				Fields:    fields,
				Limit:     num,
				Order:     order,
				Direction: direction,
				Unique:    unique,
			})
			if err != nil {
				return err
			}

			if out == "" {
				printTable(table)
				return nil
			}

			col, row, err := excelize.CellNameToCoordinates(cell)
			if err != nil {
				return goerr.Wrap(err, "invalid cell reference", goerr.V("cell", cell))
			}

			workbook, err := sheet.OpenOrCreate(out)
			if err != nil {
				return err
			}
			defer workbook.Close()

			if err := workbook.WriteTable(sheetName, row, col, table); err != nil {
				return err
			}
			if err := workbook.Save(); err != nil {
				return err
			}

			logger.Info("wrote result table",
				"workbook", out,
				"sheet", sheetName,
				"rows", len(table.Rows),
			)
			return nil
		},
	}
}

func printTable(table *model.ResultTable) {
	fmt.Println(strings.Join(table.Columns, "\t"))
	for _, row := range table.Rows {
		fmt.Println(strings.Join(row, "\t"))
	}
}
