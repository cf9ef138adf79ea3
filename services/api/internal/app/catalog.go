package app

import (
	"fmt"

	"wayfare/pkg/domain"
)

// ListCities returns the city catalog ordered by name.
func (a *App) ListCities() ([]domain.City, error) {
	cities, err := a.store.ListCities()
	if err != nil {
		return nil, fmt.Errorf("list cities: %w", err)
	}
	return cities, nil
}

// ListTopics returns the topic catalog ordered by name.
func (a *App) ListTopics() ([]domain.Topic, error) {
	topics, err := a.store.ListTopics()
	if err != nil {
		return nil, fmt.Errorf("list topics: %w", err)
	}
	return topics, nil
}
