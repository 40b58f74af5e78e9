package ime

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"banglawriter/internal/config"
)

const (
	componentDescription = "BanglaWriter - Bangla Input Method"
	componentLicense     = "SIL Open Font License 1.1"
	componentAuthor      = "BanglaWriter developers"
)

type component struct {
	XMLName     xml.Name          `xml:"component"`
	Name        string            `xml:"name"`
	Description string            `xml:"description"`
	Exec        string            `xml:"exec"`
	Version     string            `xml:"version"`
	Author      string            `xml:"author"`
	License     string            `xml:"license"`
	TextDomain  string            `xml:"textdomain"`
	Engines     []componentEngine `xml:"engines>engine"`
}

type componentEngine struct {
	Name        string `xml:"name"`
	Language    string `xml:"language"`
	License     string `xml:"license"`
	Author      string `xml:"author"`
	Layout      string `xml:"layout"`
	LongName    string `xml:"longname"`
	Description string `xml:"description"`
	Rank        int    `xml:"rank"`
	Symbol      string `xml:"symbol"`
}

// ComponentXML renders the IBus component descriptor for cfg.
func ComponentXML(cfg config.IBusConfig, version string) ([]byte, error) {
	c := component{
		Name:        cfg.BusName,
		Description: componentDescription,
		Exec:        cfg.Exec,
		Version:     version,
		Author:      componentAuthor,
		License:     componentLicense,
		TextDomain:  cfg.EngineName,
		Engines: []componentEngine{{
			Name:        cfg.EngineName,
			Language:    "bn",
			License:     componentLicense,
			Author:      componentAuthor,
			Layout:      "us",
			LongName:    "BanglaWriter",
			Description: "Phonetic Bangla transliteration input method",
			Rank:        50,
			Symbol:      "বা",
		}},
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(c); err != nil {
		return nil, fmt.Errorf("encode component: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// ComponentPath returns where the descriptor for cfg is installed.
func ComponentPath(cfg config.IBusConfig) string {
	return filepath.Join(cfg.ComponentDir, cfg.EngineName+".xml")
}

// InstallComponent writes the descriptor and returns its path.
func InstallComponent(cfg config.IBusConfig, version string) (string, error) {
	data, err := ComponentXML(cfg, version)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(cfg.ComponentDir, 0755); err != nil {
		return "", fmt.Errorf("create component dir: %w", err)
	}
	path := ComponentPath(cfg)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write component: %w", err)
	}
	return path, nil
}

// UninstallComponent removes the descriptor. A missing file is not an error.
func UninstallComponent(cfg config.IBusConfig) (string, error) {
	path := ComponentPath(cfg)
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("remove component: %w", err)
	}
	return path, nil
}
