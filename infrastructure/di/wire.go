//go:build wireinject
// +build wireinject

package di

import (
	"context"

	"github.com/google/wire"
	"go.uber.org/zap"

	commandbus "ideagraph-backend/application/commands/bus"
	"ideagraph-backend/application/ports"
	querybus "ideagraph-backend/application/queries/bus"
	"ideagraph-backend/infrastructure/config"
	"ideagraph-backend/pkg/auth"
	"ideagraph-backend/pkg/observability"
)

// Container holds all application dependencies
type Container struct {
	Config          *config.Config
	Logger          *zap.Logger
	ProjectRepo     ports.ProjectRepository
	PitchRepo       ports.PitchRepository
	EventBus        ports.EventBus
	ChatModel       ports.ChatModel
	Embedder        ports.Embedder
	VectorStore     ports.VectorStore
	Extractor       ports.DocumentExtractor
	CommandBus      *commandbus.CommandBus
	QueryBus        *querybus.QueryBus
	JWTValidator    *auth.JWTValidator
	IPRateLimiter   *auth.IPRateLimiter
	UserRateLimiter *auth.UserRateLimiter
	Tracer          *observability.Tracer
}

// SuperSet is the main provider set containing all providers
var SuperSet = wire.NewSet(
	ProvideLogger,
	ProvideAWSConfig,
	ProvideDynamoDBClient,
	ProvideEventBridgeClient,
	ProvideProjectRepository,
	ProvidePitchRepository,
	ProvideEventBus,
	ProvideGeminiClient,
	ProvideChatModel,
	ProvideEmbedder,
	ProvidePineconeClient,
	ProvideVectorStore,
	ProvideDocumentExtractor,
	ProvideJWTValidator,
	ProvideIPRateLimiter,
	ProvideUserRateLimiter,
	ProvideTracer,
	ProvideCommandBus,
	ProvideQueryBus,
	wire.Struct(new(Container), "*"),
)

// InitializeContainer creates a fully wired container
func InitializeContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	wire.Build(SuperSet)
	return nil, nil // Wire will replace this
}
