package store

import (
	"context"

	"github.com/petalhealth/content-service/internal/fetcher"
	"github.com/petalhealth/content-service/internal/models"
)

// RemoteSource supplies one fetched batch per resource kind. Implementations
// must be safe for concurrent calls across resources.
type RemoteSource interface {
	FetchTopics(ctx context.Context) ([]models.Topic, error)
	FetchQuestions(ctx context.Context) ([]models.Question, error)
	FetchPathways(ctx context.Context) ([]models.PathwayStep, error)
	FetchInfertility(ctx context.Context) ([]models.InfertilityInfo, error)
	FetchResources(ctx context.Context) ([]models.SupportResource, error)
}

// remoteSource adapts a fetcher.Client to the RemoteSource interface.
type remoteSource struct {
	client *fetcher.Client
}

// NewRemoteSource wraps a fetcher client as a RemoteSource.
func NewRemoteSource(client *fetcher.Client) RemoteSource {
	return &remoteSource{client: client}
}

func (r *remoteSource) FetchTopics(ctx context.Context) ([]models.Topic, error) {
	return fetcher.Records[models.Topic](ctx, r.client, models.ResourceTopics)
}

func (r *remoteSource) FetchQuestions(ctx context.Context) ([]models.Question, error) {
	return fetcher.Records[models.Question](ctx, r.client, models.ResourceQuestions)
}

func (r *remoteSource) FetchPathways(ctx context.Context) ([]models.PathwayStep, error) {
	return fetcher.Records[models.PathwayStep](ctx, r.client, models.ResourcePathways)
}

func (r *remoteSource) FetchInfertility(ctx context.Context) ([]models.InfertilityInfo, error) {
	return fetcher.Records[models.InfertilityInfo](ctx, r.client, models.ResourceInfertility)
}

func (r *remoteSource) FetchResources(ctx context.Context) ([]models.SupportResource, error) {
	return fetcher.Records[models.SupportResource](ctx, r.client, models.ResourceResources)
}
