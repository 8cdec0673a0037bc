package model

import (
	"strconv"
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// Property keys in the document-scoped store. Settings are written
// wholesale under these fixed names on every save.
const (
	KeyWatchedSheet     = "watched_sheet"
	KeyURLColumn        = "url_column"
	KeyFolderID         = "folder_id"
	KeyHeaderRows       = "header_rows"
	KeyNameColumn       = "name_column"
	KeyTriggerInstalled = "trigger_installed"
)

// Bounds for integer settings, matching XLSX sheet limits
const (
	MaxColumn     = 16384
	MaxHeaderRows = 1048575
)

// Settings is the per-document configuration read on every edit event.
type Settings struct {
	// WatchedSheet is the sheet name the edit trigger reacts to.
	WatchedSheet string
	// URLColumn is the 1-based column watched for pasted URLs.
	URLColumn int
	// FolderID identifies the destination folder for downloaded images,
	// either "gs://bucket/prefix" or a local directory path.
	FolderID string
	// HeaderRows is the header boundary: rows at or above it are ignored.
	HeaderRows int
	// NameColumn is the 1-based column used as the filename source.
	// 0 disables it and filenames derive from the URL instead.
	NameColumn int
}

// DefaultSettings returns the first-run wizard defaults.
func DefaultSettings() *Settings {
	return &Settings{
		WatchedSheet: "Cards",
		URLColumn:    4,
		HeaderRows:   1,
	}
}

// Validate checks field ranges. FolderID and WatchedSheet must be non-empty.
func (s *Settings) Validate() error {
	if strings.TrimSpace(s.WatchedSheet) == "" {
		return goerr.New("watched sheet name must not be empty")
	}
	if s.URLColumn < 1 || s.URLColumn > MaxColumn {
		return goerr.New("URL column out of range", goerr.V("column", s.URLColumn))
	}
	if strings.TrimSpace(s.FolderID) == "" {
		return goerr.New("folder identifier must not be empty")
	}
	if s.HeaderRows < 0 || s.HeaderRows > MaxHeaderRows {
		return goerr.New("header row count out of range", goerr.V("rows", s.HeaderRows))
	}
	if s.NameColumn < 0 || s.NameColumn > MaxColumn {
		return goerr.New("name column out of range", goerr.V("column", s.NameColumn))
	}
	return nil
}

// Properties encodes the settings as the flat string map persisted to the
// property store.
func (s *Settings) Properties() map[string]string {
	return map[string]string{
		KeyWatchedSheet: s.WatchedSheet,
		KeyURLColumn:    strconv.Itoa(s.URLColumn),
		KeyFolderID:     s.FolderID,
		KeyHeaderRows:   strconv.Itoa(s.HeaderRows),
		KeyNameColumn:   strconv.Itoa(s.NameColumn),
	}
}

// SettingsFromProperties decodes stored properties. When required keys are
// absent the error names exactly which ones, so unattended trigger logs are
// actionable.
func SettingsFromProperties(props map[string]string) (*Settings, error) {
	var missing []string
	for _, key := range []string{KeyWatchedSheet, KeyURLColumn, KeyFolderID, KeyHeaderRows} {
		if strings.TrimSpace(props[key]) == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return nil, goerr.New("configuration is incomplete: missing " + strings.Join(missing, ", "))
	}

	urlCol, err := strconv.Atoi(props[KeyURLColumn])
	if err != nil {
		return nil, goerr.Wrap(err, "invalid url_column property", goerr.V("value", props[KeyURLColumn]))
	}
	headerRows, err := strconv.Atoi(props[KeyHeaderRows])
	if err != nil {
		return nil, goerr.Wrap(err, "invalid header_rows property", goerr.V("value", props[KeyHeaderRows]))
	}

	nameCol := 0
	if v := strings.TrimSpace(props[KeyNameColumn]); v != "" {
		nameCol, err = strconv.Atoi(v)
		if err != nil {
			return nil, goerr.Wrap(err, "invalid name_column property", goerr.V("value", v))
		}
	}

	settings := &Settings{
		WatchedSheet: props[KeyWatchedSheet],
		URLColumn:    urlCol,
		FolderID:     props[KeyFolderID],
		HeaderRows:   headerRows,
		NameColumn:   nameCol,
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}
