package library

import (
	"errors"
	"fmt"
)

// ErrArticleNotFound indicates an unknown article identifier.
var ErrArticleNotFound = errors.New("article not found")

// Category groups articles into tabs.
type Category string

const (
	CategoryTraining Category = "training"
	CategoryHealth   Category = "health"
)

// Label returns the tab title for the category.
func (category Category) Label() string {
	switch category {
	case CategoryTraining:
		return "Eye Training"
	case CategoryHealth:
		return "Eye Health"
	default:
		return string(category)
	}
}

// Entry describes one article in the catalog.
type Entry struct {
	ID       string
	Title    string
	Summary  string
	Category Category
	File     string
}

// Article is a catalog entry with its markdown body.
type Article struct {
	Entry
	Body string
}

// BodyLoader reads an article body by file name.
type BodyLoader func(fileName string) (string, error)

// Library resolves article identifiers to content.
type Library struct {
	entries []Entry
	load    BodyLoader
}

// DefaultEntries returns the built-in catalog.
func DefaultEntries() []Entry {
	return []Entry{
		{
			ID:       "1",
			Title:    "The Science Behind Eye Movement",
			Summary:  "Why the muscles around your eyes need exercise too.",
			Category: CategoryTraining,
			File:     "eye-movement-science.md",
		},
		{
			ID:       "2",
			Title:    "Digital Eye Strain Solutions",
			Summary:  "What hours of screen time do to your eyes and how to push back.",
			Category: CategoryHealth,
			File:     "digital-eye-strain.md",
		},
		{
			ID:       "3",
			Title:    "The 20-20-20 Rule",
			Summary:  "A simple habit recommended by eye care professionals.",
			Category: CategoryHealth,
			File:     "rule-20-20-20.md",
		},
	}
}

// New creates a library over the given catalog.
func New(entries []Entry, load BodyLoader) *Library {
	return &Library{
		entries: append([]Entry(nil), entries...),
		load:    load,
	}
}

// Entries returns the catalog in display order.
func (library *Library) Entries() []Entry {
	return append([]Entry(nil), library.entries...)
}

// Categories returns the categories in first-seen order.
func (library *Library) Categories() []Category {
	seen := make(map[Category]bool)
	var categories []Category
	for _, entry := range library.entries {
		if seen[entry.Category] {
			continue
		}
		seen[entry.Category] = true
		categories = append(categories, entry.Category)
	}
	return categories
}

// InCategory returns the entries of one category.
func (library *Library) InCategory(category Category) []Entry {
	var entries []Entry
	for _, entry := range library.entries {
		if entry.Category == category {
			entries = append(entries, entry)
		}
	}
	return entries
}

// Lookup returns the article with the given identifier.
func (library *Library) Lookup(id string) (Article, error) {
	for _, entry := range library.entries {
		if entry.ID != id {
			continue
		}
		body, err := library.load(entry.File)
		if err != nil {
			return Article{}, fmt.Errorf("load article %s: %w", id, err)
		}
		return Article{Entry: entry, Body: body}, nil
	}
	return Article{}, fmt.Errorf("lookup %q: %w", id, ErrArticleNotFound)
}
