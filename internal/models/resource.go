package models

import "fmt"

// Resource identifies one of the fixed remote content collections.
type Resource string

const (
	ResourceTopics      Resource = "topics"
	ResourceQuestions   Resource = "questions"
	ResourcePathways    Resource = "pathways"
	ResourceInfertility Resource = "infertility"
	ResourceResources   Resource = "resources"
)

// AllResources returns every known resource kind in a stable order.
func AllResources() []Resource {
	return []Resource{
		ResourceTopics,
		ResourceQuestions,
		ResourcePathways,
		ResourceInfertility,
		ResourceResources,
	}
}

// ParseResource converts a string into a Resource.
func ParseResource(s string) (Resource, error) {
	switch Resource(s) {
	case ResourceTopics, ResourceQuestions, ResourcePathways, ResourceInfertility, ResourceResources:
		return Resource(s), nil
	}
	return "", fmt.Errorf("unknown resource %q", s)
}

func (r Resource) String() string {
	return string(r)
}
