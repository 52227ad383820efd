package player

import (
	"strconv"
	"strings"
)

// RawSeason is one per-season row from the collector's careerStats sequence.
// Numeric fields arrive as strings, possibly with thousands separators.
type RawSeason struct {
	Season      string `json:"season"`
	Appearances string `json:"appearances"`
	Goals       string `json:"goals"`
	Assists     string `json:"assists"`
	Minutes     string `json:"minutes"`
	YellowCards string `json:"yellow_cards"`
	RedCards    string `json:"red_cards"`
}

// RawRecord is the loosely-typed player payload produced by the scraping
// collector or read back from its cache. Every field is optional.
type RawRecord struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	FullName     string      `json:"full_name"`
	BirthDateAge string      `json:"date_of_birth_age"`
	Position     string      `json:"position"`
	MarketValue  string      `json:"market_value"`
	CurrentValue string      `json:"current_value"`
	PeakValue    string      `json:"peak_value"`
	SquadSize    int         `json:"squad_size"`
	CareerStats  []RawSeason `json:"career_stats"`
}

// Normalize converts a raw record into a canonical Profile. It is a pure
// function: malformed fields default to zero values and never fail.
func Normalize(raw RawRecord) Profile {
	name := strings.TrimSpace(raw.FullName)
	if name == "" {
		name = strings.TrimSpace(raw.Name)
	}

	age := ParseAge(raw.BirthDateAge)
	marketValue := ParseMarketValue(raw.MarketValue)

	currentValue := ParseMarketValue(raw.CurrentValue)
	if currentValue == 0 {
		currentValue = marketValue
	}
	peakValue := ParseMarketValue(raw.PeakValue)

	profile := Profile{
		ID:           strings.TrimSpace(raw.ID),
		Name:         name,
		Age:          age,
		Position:     strings.TrimSpace(raw.Position),
		MarketValue:  marketValue,
		CurrentValue: currentValue,
		PeakValue:    peakValue,
		SquadSize:    raw.SquadSize,
		Phase:        PhaseForAge(age),
	}

	for _, season := range raw.CareerStats {
		appearances, ok := parseSeasonInt(season.Appearances)
		if !ok {
			continue
		}
		goals, ok := parseSeasonInt(season.Goals)
		if !ok {
			continue
		}
		assists, ok := parseSeasonInt(season.Assists)
		if !ok {
			continue
		}
		minutes, ok := parseSeasonInt(season.Minutes)
		if !ok {
			continue
		}
		yellows, ok := parseSeasonInt(season.YellowCards)
		if !ok {
			continue
		}
		reds, ok := parseSeasonInt(season.RedCards)
		if !ok {
			continue
		}

		profile.Appearances += appearances
		profile.Goals += goals
		profile.Assists += assists
		profile.MinutesPlayed += minutes
		profile.YellowCards += yellows
		profile.RedCards += reds
	}

	return profile
}

// ParseAge extracts an age from a birth-date string of the form
// "<date> (<age>)" or from a plain numeric string. Unparseable input
// returns 0, the unknown-age sentinel.
func ParseAge(value string) int {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0
	}

	if open := strings.Index(value, "("); open >= 0 {
		rest := value[open+1:]
		close := strings.Index(rest, ")")
		if close < 0 {
			return 0
		}
		age, err := strconv.Atoi(strings.TrimSpace(rest[:close]))
		if err != nil || age < 0 {
			return 0
		}
		return age
	}

	age, err := strconv.Atoi(value)
	if err != nil || age < 0 {
		return 0
	}

	return age
}

// ParseMarketValue converts a currency string like "€180.00m" or "950k" to a
// plain float. A value with neither suffix is parsed as-is; unparseable
// input returns 0.
func ParseMarketValue(value string) float64 {
	value = strings.ToLower(strings.TrimSpace(value))
	value = strings.TrimPrefix(value, "€")
	value = strings.TrimSpace(value)
	if value == "" {
		return 0
	}

	multiplier := 1.0
	switch {
	case strings.HasSuffix(value, "m"):
		multiplier = 1_000_000
		value = strings.TrimSuffix(value, "m")
	case strings.HasSuffix(value, "k"):
		multiplier = 1_000
		value = strings.TrimSuffix(value, "k")
	}

	parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || parsed < 0 {
		return 0
	}

	return parsed * multiplier
}

// parseSeasonInt parses a per-season stat field, stripping thousands
// separators. An empty field counts as 0; a non-empty field that fails to
// parse reports false so the caller can skip the season.
func parseSeasonInt(value string) (int, bool) {
	value = strings.TrimSpace(strings.ReplaceAll(value, ",", ""))
	if value == "" || value == "-" {
		return 0, true
	}

	parsed, err := strconv.Atoi(value)
	if err != nil || parsed < 0 {
		return 0, false
	}

	return parsed, true
}
