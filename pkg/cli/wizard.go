package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/scrysheet/scrysheet/pkg/domain/model"
)

// wizard runs the interactive configuration prompts. Each prompt defaults
// to the previously stored value; invalid input re-prompts, EOF cancels the
// whole wizard so nothing is partially saved.
type wizard struct {
	in  *bufio.Reader
	out io.Writer
}

func newWizard(in io.Reader, out io.Writer) *wizard {
	return &wizard{in: bufio.NewReader(in), out: out}
}

// Run collects all five settings. current may be nil on first run.
func (w *wizard) Run(current *model.Settings) (*model.Settings, error) {
	if current == nil {
		current = model.DefaultSettings()
	}

	watchedSheet, err := w.askString("Watched sheet name", current.WatchedSheet)
	if err != nil {
		return nil, err
	}

	urlColumn, err := w.askInt("URL column (1 = A)", current.URLColumn, 1, model.MaxColumn)
	if err != nil {
		return nil, err
	}

	folderID, err := w.askString("Destination folder (gs://bucket/prefix or a directory)", current.FolderID)
	if err != nil {
		return nil, err
	}

	headerRows, err := w.askInt("Header rows to protect", current.HeaderRows, 0, model.MaxHeaderRows)
	if err != nil {
		return nil, err
	}

	nameColumn, err := w.askInt("Filename source column (0 to disable)", current.NameColumn, 0, model.MaxColumn)
	if err != nil {
		return nil, err
	}

	settings := &model.Settings{
		WatchedSheet: watchedSheet,
		URLColumn:    urlColumn,
		FolderID:     folderID,
		HeaderRows:   headerRows,
		NameColumn:   nameColumn,
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}

func (w *wizard) askString(label, defaultValue string) (string, error) {
	for {
		input, err := w.prompt(label, defaultValue)
		if err != nil {
			return "", err
		}
		if input == "" {
			input = defaultValue
		}
		if strings.TrimSpace(input) == "" {
			fmt.Fprintln(w.out, "A value is required.")
			continue
		}
		return input, nil
	}
}

func (w *wizard) askInt(label string, defaultValue, min, max int) (int, error) {
	for {
		input, err := w.prompt(label, strconv.Itoa(defaultValue))
		if err != nil {
			return 0, err
		}
		if input == "" {
			return defaultValue, nil
		}
		value, err := strconv.Atoi(input)
		if err != nil {
			fmt.Fprintln(w.out, "Please enter a number.")
			continue
		}
		if value < min || value > max {
			fmt.Fprintf(w.out, "Please enter a number between %d and %d.\n", min, max)
			continue
		}
		return value, nil
	}
}

func (w *wizard) prompt(label, defaultValue string) (string, error) {
	if defaultValue != "" {
		fmt.Fprintf(w.out, "%s [%s]: ", label, defaultValue)
	} else {
		fmt.Fprintf(w.out, "%s: ", label)
	}

	line, err := w.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", goerr.New("setup cancelled")
	}
	return strings.TrimSpace(line), nil
}
