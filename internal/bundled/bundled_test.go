package bundled_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petalhealth/content-service/internal/bundled"
)

func TestLoad(t *testing.T) {
	content, err := bundled.Load()
	require.NoError(t, err)

	assert.NotEmpty(t, content.Topics, "bundled topics must not be empty")
	assert.NotEmpty(t, content.Questions, "bundled questions must not be empty")
	assert.NotEmpty(t, content.PathwaySteps, "bundled pathway steps must not be empty")
	assert.NotEmpty(t, content.InfertilityInfo, "bundled infertility info must not be empty")
	assert.NotEmpty(t, content.Resources, "bundled resources must not be empty")
}

func TestLoad_AllRecordsValid(t *testing.T) {
	content, err := bundled.Load()
	require.NoError(t, err)

	for _, topic := range content.Topics {
		assert.NoError(t, topic.Validate(), "bundled topic %s", topic.ID)
	}
	for _, question := range content.Questions {
		assert.NoError(t, question.Validate(), "bundled question %s", question.ID)
	}
	for _, step := range content.PathwaySteps {
		assert.NoError(t, step.Validate(), "bundled pathway step %s", step.ID)
	}
	for _, info := range content.InfertilityInfo {
		assert.NoError(t, info.Validate(), "bundled infertility info %s", info.ID)
	}
	for _, resource := range content.Resources {
		assert.NoError(t, resource.Validate(), "bundled resource %s", resource.ID)
	}
}
