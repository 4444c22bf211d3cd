package cssconsolidate

import "strings"

// PropertyCategory groups related CSS properties in reports
type PropertyCategory string

// Property categories in report order
const (
	CategoryLayout     PropertyCategory = "Layout"
	CategoryVisual     PropertyCategory = "Visual"
	CategoryTypography PropertyCategory = "Typography"
	CategoryEffects    PropertyCategory = "Effects"
	CategoryCustom     PropertyCategory = "Custom properties"
	CategoryVendor     PropertyCategory = "Vendor"
)

var categoryOrder = []PropertyCategory{
	CategoryLayout,
	CategoryVisual,
	CategoryTypography,
	CategoryEffects,
	CategoryCustom,
	CategoryVendor,
}

// propertyCategories maps CSS property names to categories
var propertyCategories = map[string]PropertyCategory{
	// Visual
	"background":          CategoryVisual,
	"background-color":    CategoryVisual,
	"background-image":    CategoryVisual,
	"background-size":     CategoryVisual,
	"background-position": CategoryVisual,
	"background-repeat":   CategoryVisual,
	"color":               CategoryVisual,
	"border":              CategoryVisual,
	"border-color":        CategoryVisual,
	"border-radius":       CategoryVisual,
	"border-width":        CategoryVisual,
	"border-style":        CategoryVisual,
	"border-top":          CategoryVisual,
	"border-right":        CategoryVisual,
	"border-bottom":       CategoryVisual,
	"border-left":         CategoryVisual,
	"border-inline":       CategoryVisual,
	"border-block":        CategoryVisual,
	"box-shadow":          CategoryVisual,
	"opacity":             CategoryVisual,
	"outline":             CategoryVisual,
	"outline-color":       CategoryVisual,
	"outline-width":       CategoryVisual,
	"outline-style":       CategoryVisual,
	"fill":                CategoryVisual,
	"stroke":              CategoryVisual,
	"cursor":              CategoryVisual,
	"visibility":          CategoryVisual,
	"text-shadow":         CategoryVisual,
	"accent-color":        CategoryVisual,
	"caret-color":         CategoryVisual,
	"outline-offset":      CategoryVisual,

	// Layout
	"display":               CategoryLayout,
	"flex":                  CategoryLayout,
	"flex-direction":        CategoryLayout,
	"flex-wrap":             CategoryLayout,
	"flex-grow":             CategoryLayout,
	"flex-shrink":           CategoryLayout,
	"flex-basis":            CategoryLayout,
	"justify-content":       CategoryLayout,
	"align-items":           CategoryLayout,
	"align-self":            CategoryLayout,
	"align-content":         CategoryLayout,
	"gap":                   CategoryLayout,
	"row-gap":               CategoryLayout,
	"column-gap":            CategoryLayout,
	"grid":                  CategoryLayout,
	"grid-template-columns": CategoryLayout,
	"grid-template-rows":    CategoryLayout,
	"grid-template-areas":   CategoryLayout,
	"grid-column":           CategoryLayout,
	"grid-row":              CategoryLayout,
	"position":              CategoryLayout,
	"inset":                 CategoryLayout,
	"inset-block":           CategoryLayout,
	"inset-block-start":     CategoryLayout,
	"inset-block-end":       CategoryLayout,
	"inset-inline":          CategoryLayout,
	"inset-inline-start":    CategoryLayout,
	"inset-inline-end":      CategoryLayout,
	"top":                   CategoryLayout,
	"right":                 CategoryLayout,
	"bottom":                CategoryLayout,
	"left":                  CategoryLayout,
	"width":                 CategoryLayout,
	"height":                CategoryLayout,
	"inline-size":           CategoryLayout,
	"block-size":            CategoryLayout,
	"min-width":             CategoryLayout,
	"min-height":            CategoryLayout,
	"min-inline-size":       CategoryLayout,
	"min-block-size":        CategoryLayout,
	"max-width":             CategoryLayout,
	"max-height":            CategoryLayout,
	"max-inline-size":       CategoryLayout,
	"max-block-size":        CategoryLayout,
	"padding":               CategoryLayout,
	"padding-top":           CategoryLayout,
	"padding-right":         CategoryLayout,
	"padding-bottom":        CategoryLayout,
	"padding-left":          CategoryLayout,
	"padding-inline":        CategoryLayout,
	"padding-inline-start":  CategoryLayout,
	"padding-inline-end":    CategoryLayout,
	"padding-block":         CategoryLayout,
	"padding-block-start":   CategoryLayout,
	"padding-block-end":     CategoryLayout,
	"margin":                CategoryLayout,
	"margin-top":            CategoryLayout,
	"margin-right":          CategoryLayout,
	"margin-bottom":         CategoryLayout,
	"margin-left":           CategoryLayout,
	"margin-inline":         CategoryLayout,
	"margin-inline-start":   CategoryLayout,
	"margin-inline-end":     CategoryLayout,
	"margin-block":          CategoryLayout,
	"margin-block-start":    CategoryLayout,
	"margin-block-end":      CategoryLayout,
	"overflow":              CategoryLayout,
	"overflow-x":            CategoryLayout,
	"overflow-y":            CategoryLayout,
	"z-index":               CategoryLayout,
	"aspect-ratio":          CategoryLayout,
	"object-fit":            CategoryLayout,
	"object-position":       CategoryLayout,
	"box-sizing":            CategoryLayout,
	"float":                 CategoryLayout,
	"clear":                 CategoryLayout,
	"order":                 CategoryLayout,
	"place-items":           CategoryLayout,
	"place-content":         CategoryLayout,
	"place-self":            CategoryLayout,
	"justify-items":         CategoryLayout,
	"vertical-align":        CategoryLayout,
	"list-style":            CategoryLayout,
	"content":               CategoryLayout,

	// Typography
	"font-family":           CategoryTypography,
	"font-size":             CategoryTypography,
	"font-weight":           CategoryTypography,
	"font-style":            CategoryTypography,
	"font-variant":          CategoryTypography,
	"font-variant-numeric":  CategoryTypography,
	"line-height":           CategoryTypography,
	"letter-spacing":        CategoryTypography,
	"text-align":            CategoryTypography,
	"text-decoration":       CategoryTypography,
	"text-transform":        CategoryTypography,
	"text-overflow":         CategoryTypography,
	"white-space":           CategoryTypography,
	"word-break":            CategoryTypography,
	"word-wrap":             CategoryTypography,
	"hyphens":               CategoryTypography,
	"font":                  CategoryTypography,
	"text-indent":           CategoryTypography,
	"text-wrap":             CategoryTypography,
	"overflow-wrap":         CategoryTypography,
	"font-feature-settings": CategoryTypography,
	"text-underline-offset": CategoryTypography,

	// Effects
	"transition":                 CategoryEffects,
	"transition-property":        CategoryEffects,
	"transition-duration":        CategoryEffects,
	"transition-timing-function": CategoryEffects,
	"transition-delay":           CategoryEffects,
	"transform":                  CategoryEffects,
	"transform-origin":           CategoryEffects,
	"animation":                  CategoryEffects,
	"animation-name":             CategoryEffects,
	"animation-duration":         CategoryEffects,
	"animation-timing-function":  CategoryEffects,
	"animation-delay":            CategoryEffects,
	"animation-iteration-count":  CategoryEffects,
	"animation-direction":        CategoryEffects,
	"filter":                     CategoryEffects,
	"backdrop-filter":            CategoryEffects,
	"mix-blend-mode":             CategoryEffects,
	"clip-path":                  CategoryEffects,
	"mask":                       CategoryEffects,
	"pointer-events":             CategoryEffects,
	"user-select":                CategoryEffects,
	"will-change":                CategoryEffects,
	"scroll-behavior":            CategoryEffects,
}

// categorizeProperty determines the category of a CSS property
func categorizeProperty(name string) PropertyCategory {
	if cat, exists := propertyCategories[name]; exists {
		return cat
	}

	switch {
	case strings.HasPrefix(name, "--"):
		return CategoryCustom
	case strings.HasPrefix(name, "-webkit-"),
		strings.HasPrefix(name, "-moz-"),
		strings.HasPrefix(name, "-ms-"),
		strings.HasPrefix(name, "-o-"):
		return CategoryVendor
	case strings.HasPrefix(name, "border-"), strings.HasPrefix(name, "background-"):
		return CategoryVisual
	case strings.HasPrefix(name, "font-"), strings.HasPrefix(name, "text-"):
		return CategoryTypography
	case strings.HasPrefix(name, "transition-"), strings.HasPrefix(name, "animation-"):
		return CategoryEffects
	}

	// Flex, grid, box model and unknown properties
	return CategoryLayout
}

// propertySection is one category of a group's properties
type propertySection struct {
	Category   PropertyCategory
	Properties []Property
}

// categorizeProperties splits props into sections in report order, keeping
// the input order within each section.
func categorizeProperties(props []Property) []propertySection {
	byCategory := make(map[PropertyCategory][]Property)
	for _, p := range props {
		cat := categorizeProperty(p.Name)
		byCategory[cat] = append(byCategory[cat], p)
	}

	var sections []propertySection
	for _, cat := range categoryOrder {
		if len(byCategory[cat]) > 0 {
			sections = append(sections, propertySection{Category: cat, Properties: byCategory[cat]})
		}
	}
	return sections
}
