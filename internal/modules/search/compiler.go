package search

import (
	"strconv"
	"strings"
	"time"
)

const dateFormat = "2006-01-02"

// City values meaning "no city constraint". The second one is the literal
// the legacy mobile client sent for that choice.
var anyCitySentinels = map[string]struct{}{
	"any":            {},
	"any city":       {},
	"dowolne miasto": {},
}

// Compile turns raw filter input into validated Criteria. It is a pure
// function: no I/O, and compiling the same form twice yields equal results.
func Compile(form RawFilterForm) (Criteria, error) {
	var c Criteria

	checkInStr := strings.TrimSpace(form.CheckIn)
	checkOutStr := strings.TrimSpace(form.CheckOut)
	guestsStr := strings.TrimSpace(form.Guests)

	if checkInStr == "" {
		return Criteria{}, &ValidationError{Kind: KindMissingRequired, Field: "check_in"}
	}
	if checkOutStr == "" {
		return Criteria{}, &ValidationError{Kind: KindMissingRequired, Field: "check_out"}
	}
	if guestsStr == "" {
		return Criteria{}, &ValidationError{Kind: KindMissingRequired, Field: "guests"}
	}

	checkIn, err := time.Parse(dateFormat, checkInStr)
	if err != nil {
		return Criteria{}, &ValidationError{Kind: KindNotANumber, Field: "check_in"}
	}
	checkOut, err := time.Parse(dateFormat, checkOutStr)
	if err != nil {
		return Criteria{}, &ValidationError{Kind: KindNotANumber, Field: "check_out"}
	}
	if !checkIn.Before(checkOut) {
		return Criteria{}, &ValidationError{Kind: KindInvertedRange, Field: "check_out"}
	}
	c.CheckIn = checkIn
	c.CheckOut = checkOut

	guests, err := strconv.Atoi(guestsStr)
	if err != nil {
		return Criteria{}, &ValidationError{Kind: KindNotANumber, Field: "guests"}
	}
	if guests <= 0 {
		return Criteria{}, &ValidationError{Kind: KindOutOfRange, Field: "guests"}
	}
	c.Guests = guests

	c.MinPrice, err = parsePrice(form.MinPrice, "min_price")
	if err != nil {
		return Criteria{}, err
	}
	c.MaxPrice, err = parsePrice(form.MaxPrice, "max_price")
	if err != nil {
		return Criteria{}, err
	}
	if c.MinPrice != nil && c.MaxPrice != nil && *c.MinPrice > *c.MaxPrice {
		return Criteria{}, &ValidationError{Kind: KindInvertedRange, Field: "min_price"}
	}

	c.MinStars, err = parseStars(form.MinStars, "min_stars")
	if err != nil {
		return Criteria{}, err
	}
	c.MaxStars, err = parseStars(form.MaxStars, "max_stars")
	if err != nil {
		return Criteria{}, err
	}
	if c.MinStars != nil && c.MaxStars != nil && *c.MinStars > *c.MaxStars {
		return Criteria{}, &ValidationError{Kind: KindInvertedRange, Field: "min_stars"}
	}

	c.Country = strings.TrimSpace(form.Country)
	c.City = normalizeCity(form.City)

	c.RoomFacilities = cleanList(form.RoomFacilities)
	c.HotelFacilities = cleanList(form.HotelFacilities)

	sortBy := strings.TrimSpace(form.SortBy)
	if sortBy != "" && sortBy != "price" && sortBy != "stars" {
		return Criteria{}, &ValidationError{Kind: KindOutOfRange, Field: "sort_by"}
	}
	c.SortBy = sortBy

	sortOrder := strings.TrimSpace(form.SortOrder)
	if sortOrder != "" && sortOrder != "asc" && sortOrder != "desc" {
		return Criteria{}, &ValidationError{Kind: KindOutOfRange, Field: "sort_order"}
	}
	c.SortOrder = sortOrder

	return c, nil
}

func parsePrice(raw, field string) (*float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, &ValidationError{Kind: KindNotANumber, Field: field}
	}
	if v < 0 {
		return nil, &ValidationError{Kind: KindOutOfRange, Field: field}
	}
	return &v, nil
}

func parseStars(raw, field string) (*int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, &ValidationError{Kind: KindNotANumber, Field: field}
	}
	if v < 1 || v > 5 {
		return nil, &ValidationError{Kind: KindOutOfRange, Field: field}
	}
	return &v, nil
}

func normalizeCity(raw string) string {
	city := strings.TrimSpace(raw)
	if _, any := anyCitySentinels[strings.ToLower(city)]; any {
		return ""
	}
	return city
}

func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
