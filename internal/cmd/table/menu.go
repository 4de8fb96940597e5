// Package table provides common table formatting utilities for CLI commands.
package table

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/agentstation/menumap/internal/profile"
	"github.com/agentstation/menumap/pkg/menu"
)

// Align represents column alignment in tables.
type Align int

const (
	// AlignDefault uses the default alignment (skip).
	AlignDefault Align = iota
	// AlignLeft aligns content to the left.
	AlignLeft
	// AlignCenter centers content.
	AlignCenter
	// AlignRight aligns content to the right.
	AlignRight
)

// Data represents table formatting data to avoid import cycles.
type Data struct {
	Headers         []string
	Rows            [][]string
	ColumnAlignment []Align // Optional: column alignment
}

// maxDescription is the description width in the default table.
const maxDescription = 60

// MenuToTableData converts menu items to table format. The wide form adds
// the full description and the resolved image URL.
func MenuToTableData(items []menu.Item, wide bool, imageBase string) Data {
	headers := []string{"ID", "Name", "Price", "Description"}
	align := []Align{AlignRight, AlignLeft, AlignRight, AlignLeft}
	if wide {
		headers = append(headers, "Image")
		align = append(align, AlignLeft)
	}

	rows := make([][]string, 0, len(items))
	for _, item := range items {
		desc := item.Description
		if !wide {
			desc = Truncate(desc, maxDescription)
		}
		row := []string{
			strconv.FormatInt(item.ID, 10),
			item.Name,
			"$" + item.FormatPrice(),
			orDash(desc),
		}
		if wide {
			image := "-"
			if item.Image != "" {
				if u, err := menu.ImageURL(imageBase, item.Image); err == nil {
					image = u
				}
			}
			row = append(row, image)
		}
		rows = append(rows, row)
	}

	return Data{Headers: headers, Rows: rows, ColumnAlignment: align}
}

// ProfileToTableData converts a profile to a key-value table.
func ProfileToTableData(p profile.Profile) Data {
	return Data{
		Headers: []string{"Property", "Value"},
		Rows: [][]string{
			{"First Name", orDash(p.FirstName)},
			{"Email", orDash(p.Email)},
			{"Onboarding Completed", strconv.FormatBool(p.IsOnboardingCompleted)},
		},
	}
}

// Truncate shortens s to at most n runes, marking the cut with "...".
func Truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	if n <= 3 {
		return string([]rune(s)[:n])
	}
	return string([]rune(s)[:n-3]) + "..."
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
