package usecase

import (
	"context"
	"strings"

	"github.com/samber/lo"
	"github.com/trebuchet-org/rt-deploy/internal/domain/models"
)

// ListBlueprintsParams contains parameters for listing blueprints
type ListBlueprintsParams struct {
	// Substring filter on the fully qualified name, case-insensitive
	Filter string
}

// ListBlueprintsResult contains the deployable blueprints
type ListBlueprintsResult struct {
	Blueprints []*models.Blueprint
}

// ListBlueprints lists compiled contracts available for deployment
type ListBlueprints struct {
	blueprints BlueprintRepository
}

// NewListBlueprints creates a new ListBlueprints use case
func NewListBlueprints(blueprints BlueprintRepository) *ListBlueprints {
	return &ListBlueprints{blueprints: blueprints}
}

// Run executes the use case
func (uc *ListBlueprints) Run(ctx context.Context, params ListBlueprintsParams) (*ListBlueprintsResult, error) {
	all, err := uc.blueprints.ListBlueprints(ctx)
	if err != nil {
		return nil, err
	}

	filter := strings.ToLower(strings.TrimSpace(params.Filter))
	if filter == "" {
		return &ListBlueprintsResult{Blueprints: all}, nil
	}

	return &ListBlueprintsResult{
		Blueprints: lo.Filter(all, func(bp *models.Blueprint, _ int) bool {
			return strings.Contains(strings.ToLower(bp.FullyQualifiedName()), filter)
		}),
	}, nil
}
