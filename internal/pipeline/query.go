package pipeline

import (
	"go-jobscout-automation/internal/config"
	"go-jobscout-automation/internal/models"
)

// BuildQueries maps the enabled role configurations to immutable search
// queries, one per role, in configuration order.
func BuildQueries(roles []config.Role) []models.SearchQuery {
	queries := make([]models.SearchQuery, 0, len(roles))
	for _, role := range roles {
		queries = append(queries, models.SearchQuery{
			Role:                role.Title,
			Location:            role.Location,
			DateWindow:          role.DatePosted,
			ExperienceLevels:    role.ExperienceLevels,
			Remote:              role.Remote,
			RequiresSponsorship: role.RequiresSponsorship,
			SkipHRCheck:         role.SkipHRCheck,
		})
	}
	return queries
}
