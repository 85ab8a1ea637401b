package domain

import (
	"fmt"
	"slices"
	"strings"
)

const (
	BrandAll       = "All"
	BrandRAW       = "RAW"
	BrandSmackDown = "SmackDown"
	BrandNXT       = "NXT"
)

const (
	GenderMale   = "Male"
	GenderFemale = "Female"
)

const (
	AlignmentFace = "Face"
	AlignmentHeel = "Heel"
	AlignmentBoth = "Both"
)

const (
	TitleSingles = "Singles"
	TitleTag     = "Tag"
)

var (
	Brands     = []string{BrandRAW, BrandSmackDown, BrandNXT, BrandAll}
	Genders    = []string{GenderMale, GenderFemale}
	Alignments = []string{AlignmentFace, AlignmentHeel, AlignmentBoth}
	TitleTypes = []string{TitleSingles, TitleTag}
)

// BrandAccepts reports whether a brand filter admits a wrestler of the given brand.
func BrandAccepts(filter, brand string) bool {
	return filter == BrandAll || filter == brand
}

// Required trims value and fails with ErrMissingField when nothing is left.
func Required(field, value string) (string, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return "", fmt.Errorf("%w: %s", ErrMissingField, field)
	}
	return v, nil
}

// OneOf trims value, requires it, and checks it against allowed.
func OneOf(field, value string, allowed []string) (string, error) {
	v, err := Required(field, value)
	if err != nil {
		return "", err
	}
	if !slices.Contains(allowed, v) {
		return "", fmt.Errorf("%w: %s %q (want one of %s)", ErrInvalidValue, field, v, strings.Join(allowed, ", "))
	}
	return v, nil
}
