// SPDX-License-Identifier: Unlicense OR MIT

package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"pdxmap.dev/core/hashtable"
)

// locationRow is one parsed CSV row: rgb_key,primary,secondary,owner,flags
// (spec §6). Empty secondary/owner default to primary.
type locationRow struct {
	Color, Primary, Secondary, Owner hashtable.GpuColor
	Flags                            hashtable.LocationFlags
}

// parseLocationCSV reads the rgb_key,primary,secondary,owner,flags format,
// skipping blank lines and lines beginning with '#'. Every error is
// line-number-qualified, matching the CLI's error-reporting contract (spec
// §7: "CLI errors print a line-qualified diagnostic").
func parseLocationCSV(r io.Reader) ([]locationRow, error) {
	scanner := bufio.NewScanner(r)
	var rows []locationRow
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Split(line, ",")
		if len(fields) != 5 {
			return nil, fmt.Errorf("line %d: expected 5 columns, got %d", lineNo, len(fields))
		}

		rgbKey, primaryStr, secondaryStr, ownerStr, flagsStr := fields[0], fields[1], fields[2], fields[3], fields[4]

		color, err := parseHexColor(rgbKey)
		if err != nil {
			return nil, fmt.Errorf("line %d: rgb_key: %w", lineNo, err)
		}
		primary, err := parseHexColor(primaryStr)
		if err != nil {
			return nil, fmt.Errorf("line %d: primary: %w", lineNo, err)
		}

		secondary := primary
		if strings.TrimSpace(secondaryStr) != "" {
			secondary, err = parseHexColor(secondaryStr)
			if err != nil {
				return nil, fmt.Errorf("line %d: secondary: %w", lineNo, err)
			}
		}

		owner := primary
		if strings.TrimSpace(ownerStr) != "" {
			owner, err = parseHexColor(ownerStr)
			if err != nil {
				return nil, fmt.Errorf("line %d: owner: %w", lineNo, err)
			}
		}

		flagsVal, err := strconv.ParseUint(strings.TrimSpace(flagsStr), 10, 32)
		if err != nil {
			return nil, fmt.Errorf("line %d: flags: %w", lineNo, err)
		}

		rows = append(rows, locationRow{
			Color:     color,
			Primary:   primary,
			Secondary: secondary,
			Owner:     owner,
			Flags:     hashtable.LocationFlags(flagsVal),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading CSV: %w", err)
	}
	return rows, nil
}

// parseHexColor decodes a 6-hex-character color into its GpuColor key.
func parseHexColor(s string) (hashtable.GpuColor, error) {
	s = strings.TrimSpace(s)
	if len(s) != 6 {
		return 0, fmt.Errorf("%q is not 6 hex characters", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("%q is not valid hex: %w", s, err)
	}
	return hashtable.GpuColor(v), nil
}

// buildLocationArrays constructs a LocationArrays from parsed rows, each
// row becoming one location keyed by its rgb_key color and identified by
// its row position (spec's CSV format carries no separate numeric id
// column, so row order is the canonical LocationId assignment).
func buildLocationArrays(rows []locationRow) *hashtable.LocationArrays {
	entries := make([]hashtable.ColorEntry, len(rows))
	for i, row := range rows {
		entries[i] = hashtable.ColorEntry{ID: hashtable.LocationId(i), Color: row.Color}
	}
	locations := hashtable.BuildLocationArrays(entries)
	index := locations.BuildLocationIndex()
	for i, row := range rows {
		state := locations.GetMut(index[hashtable.LocationId(i)])
		state.SetPrimaryColor(row.Primary)
		state.SetSecondaryColor(row.Secondary)
		state.SetOwnerColor(row.Owner)
		state.SetFlags(row.Flags)
	}
	return locations
}
