// Package bundled provides the static fallback content packaged with the
// binary. Every collection is seeded from here before any network call.
package bundled

import (
	"embed"
	"encoding/json"
	"fmt"

	"github.com/petalhealth/content-service/internal/models"
)

//go:embed data/*.json
var dataFS embed.FS

// Content holds one seeded batch per resource.
type Content struct {
	Topics          []models.Topic
	Questions       []models.Question
	PathwaySteps    []models.PathwayStep
	InfertilityInfo []models.InfertilityInfo
	Resources       []models.SupportResource
}

// Load decodes the embedded seed data. Records failing validation are dropped
// under the same rule as remote batches.
func Load() (*Content, error) {
	content := &Content{}
	var err error

	if content.Topics, err = decode[models.Topic](models.ResourceTopics); err != nil {
		return nil, err
	}
	if content.Questions, err = decode[models.Question](models.ResourceQuestions); err != nil {
		return nil, err
	}
	if content.PathwaySteps, err = decode[models.PathwayStep](models.ResourcePathways); err != nil {
		return nil, err
	}
	if content.InfertilityInfo, err = decode[models.InfertilityInfo](models.ResourceInfertility); err != nil {
		return nil, err
	}
	if content.Resources, err = decode[models.SupportResource](models.ResourceResources); err != nil {
		return nil, err
	}
	return content, nil
}

func decode[T models.Record](res models.Resource) ([]T, error) {
	data, err := dataFS.ReadFile(fmt.Sprintf("data/%s.json", res))
	if err != nil {
		return nil, fmt.Errorf("read bundled %s: %w", res, err)
	}

	var all []T
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, fmt.Errorf("decode bundled %s: %w", res, err)
	}

	valid := make([]T, 0, len(all))
	for _, record := range all {
		if record.Validate() == nil {
			valid = append(valid, record)
		}
	}
	return valid, nil
}
