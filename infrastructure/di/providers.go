package di

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awseventbridge "github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"go.uber.org/zap"

	"ideagraph-backend/application/commands"
	commandbus "ideagraph-backend/application/commands/bus"
	commands_handlers "ideagraph-backend/application/commands/handlers"
	"ideagraph-backend/application/ports"
	"ideagraph-backend/application/queries"
	querybus "ideagraph-backend/application/queries/bus"
	queries_handlers "ideagraph-backend/application/queries/handlers"
	"ideagraph-backend/infrastructure/ai/gemini"
	"ideagraph-backend/infrastructure/ai/pinecone"
	"ideagraph-backend/infrastructure/config"
	"ideagraph-backend/infrastructure/ingestion"
	"ideagraph-backend/infrastructure/messaging/eventbridge"
	"ideagraph-backend/infrastructure/persistence/dynamodb"
	"ideagraph-backend/pkg/auth"
	"ideagraph-backend/pkg/observability"
)

// devJWTSecret is only ever used in development when no secret is
// configured; Config.Validate rejects that combination in production.
const devJWTSecret = "ideagraph-dev-secret"

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	var logger *zap.Logger
	var err error

	if cfg.IsProduction() {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}

	if err != nil {
		return nil, err
	}

	return logger, nil
}

// ProvideAWSConfig creates AWS configuration
func ProvideAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	return awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
	)
}

// ProvideDynamoDBClient creates a DynamoDB client
func ProvideDynamoDBClient(awsCfg aws.Config) *awsdynamodb.Client {
	return awsdynamodb.NewFromConfig(awsCfg)
}

// ProvideEventBridgeClient creates an EventBridge client
func ProvideEventBridgeClient(awsCfg aws.Config) *awseventbridge.Client {
	return awseventbridge.NewFromConfig(awsCfg)
}

// ProvideProjectRepository creates a project repository
func ProvideProjectRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.ProjectRepository {
	return dynamodb.NewProjectRepository(client, cfg.DynamoDBTable, logger)
}

// ProvidePitchRepository creates a stealth pitch repository
func ProvidePitchRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.PitchRepository {
	return dynamodb.NewPitchRepository(client, cfg.DynamoDBTable, logger)
}

// ProvideEventBus creates an event bus
func ProvideEventBus(client *awseventbridge.Client, cfg *config.Config, logger *zap.Logger) ports.EventBus {
	return eventbridge.NewPublisher(client, cfg.EventBusName, logger)
}

// ProvideGeminiClient creates the Gemini API client
func ProvideGeminiClient(cfg *config.Config, logger *zap.Logger) (*gemini.Client, error) {
	return gemini.NewClient(gemini.Config{
		APIKey:     cfg.GeminiAPIKey,
		Model:      cfg.GeminiModel,
		EmbedModel: cfg.GeminiEmbedModel,
		Timeout:    cfg.GeminiTimeout,
		MaxRetries: cfg.GeminiMaxRetries,
	}, logger)
}

// ProvideChatModel exposes the Gemini client as a chat model
func ProvideChatModel(client *gemini.Client) ports.ChatModel {
	return client
}

// ProvideEmbedder exposes the Gemini client as an embedder
func ProvideEmbedder(client *gemini.Client) ports.Embedder {
	return client
}

// ProvidePineconeClient creates the Pinecone API client
func ProvidePineconeClient(cfg *config.Config, logger *zap.Logger) (pinecone.Client, error) {
	return pinecone.New(pinecone.Config{
		APIKey: cfg.PineconeAPIKey,
	}, logger)
}

// ProvideVectorStore creates the document vector store
func ProvideVectorStore(pc pinecone.Client, embedder ports.Embedder, cfg *config.Config, logger *zap.Logger) (ports.VectorStore, error) {
	return pinecone.NewVectorStore(pc, embedder, pinecone.StoreConfig{
		IndexName: cfg.PineconeIndexName,
		IndexHost: cfg.PineconeIndexHost,
		NSPrefix:  cfg.PineconeNSPrefix,
	}, logger)
}

// ProvideDocumentExtractor creates the PDF text extractor
func ProvideDocumentExtractor(logger *zap.Logger) ports.DocumentExtractor {
	return ingestion.NewPDFExtractor(logger)
}

// ProvideJWTValidator creates the JWT validator used by the auth middleware
func ProvideJWTValidator(cfg *config.Config, logger *zap.Logger) (*auth.JWTValidator, error) {
	secret := cfg.JWTSecret
	if secret == "" && cfg.JWTSigningMethod == "HS256" && cfg.IsDevelopment() {
		logger.Warn("JWT_SECRET not set; using development secret")
		secret = devJWTSecret
	}
	return auth.NewJWTValidator(auth.JWTConfig{
		SigningMethod: cfg.JWTSigningMethod,
		PublicKey:     cfg.JWTPublicKey,
		SecretKey:     secret,
		Issuer:        cfg.JWTIssuer,
	})
}

// ProvideIPRateLimiter creates the per-IP rate limiter
func ProvideIPRateLimiter(cfg *config.Config) *auth.IPRateLimiter {
	return auth.NewIPRateLimiter(cfg.IPRateLimit)
}

// ProvideUserRateLimiter creates the per-user rate limiter
func ProvideUserRateLimiter(cfg *config.Config) *auth.UserRateLimiter {
	return auth.NewUserRateLimiter(cfg.UserRateLimit)
}

// ProvideTracer creates the X-Ray tracer
func ProvideTracer(cfg *config.Config, logger *zap.Logger) *observability.Tracer {
	return observability.NewTracer("ideagraph-backend", cfg.TracingEnabled, logger)
}

// ProvideCommandBus creates a command bus with registered handlers
func ProvideCommandBus(
	projectRepo ports.ProjectRepository,
	pitchRepo ports.PitchRepository,
	chat ports.ChatModel,
	vectors ports.VectorStore,
	extractor ports.DocumentExtractor,
	eventBus ports.EventBus,
	logger *zap.Logger,
) *commandbus.CommandBus {
	b := commandbus.NewCommandBus()
	pipeline := commandbus.NewPipeline(
		commandbus.LoggingMiddleware(&zapLoggerAdapter{logger}),
	)
	register := func(cmd commandbus.Command, handler commandbus.CommandHandler) {
		b.Register(cmd, pipeline.Execute(handler))
	}

	register(commands.CreateProjectCommand{}, commands_handlers.NewCreateProjectHandler(projectRepo, chat, eventBus, logger))
	register(commands.ConverseCommand{}, commands_handlers.NewConverseHandler(projectRepo, chat, vectors, eventBus, logger))
	register(commands.RegenerateNodeCommand{}, commands_handlers.NewRegenerateNodeHandler(projectRepo, chat, logger))
	register(commands.DeleteNodeCommand{}, commands_handlers.NewDeleteNodeHandler(projectRepo, eventBus, logger))
	register(commands.UpdatePositionsCommand{}, commands_handlers.NewUpdatePositionsHandler(projectRepo, logger))
	register(commands.RateProjectCommand{}, commands_handlers.NewRateProjectHandler(projectRepo, chat, logger))

	register(commands.CreatePitchCommand{}, commands_handlers.NewCreatePitchHandler(pitchRepo, eventBus, logger))
	register(commands.VotePitchCommand{}, commands_handlers.NewVotePitchHandler(pitchRepo, eventBus, logger))
	register(commands.EditPitchCommand{}, commands_handlers.NewEditPitchHandler(pitchRepo, logger))
	register(commands.DeletePitchCommand{}, commands_handlers.NewDeletePitchHandler(pitchRepo, logger))
	register(commands.AddCommentCommand{}, commands_handlers.NewAddCommentHandler(pitchRepo, logger))
	register(commands.DeleteCommentCommand{}, commands_handlers.NewDeleteCommentHandler(pitchRepo, logger))

	register(commands.IndexDocumentCommand{}, commands_handlers.NewIndexDocumentHandler(extractor, vectors, logger))

	return b
}

// ProvideQueryBus creates a query bus with registered handlers
func ProvideQueryBus(
	projectRepo ports.ProjectRepository,
	pitchRepo ports.PitchRepository,
	chat ports.ChatModel,
	logger *zap.Logger,
) *querybus.QueryBus {
	b := querybus.NewQueryBus()
	logging := querybus.LoggingMiddleware(&zapLoggerAdapter{logger})
	register := func(q querybus.Query, handler querybus.QueryHandler) {
		b.Register(q, logging(handler))
	}

	register(queries.GetProjectQuery{}, queries_handlers.NewGetProjectHandler(projectRepo, logger))
	register(queries.ListProjectsQuery{}, queries_handlers.NewListProjectsHandler(projectRepo, logger))
	register(queries.SynthesizeProjectQuery{}, queries_handlers.NewSynthesizeProjectHandler(projectRepo, chat, logger))
	register(queries.GeneratePitchQuery{}, queries_handlers.NewGeneratePitchHandler(projectRepo, chat, logger))

	register(queries.AnalyzeIdeaQuery{}, queries_handlers.NewAnalyzeIdeaHandler(chat, logger))

	register(queries.ListPitchesQuery{}, queries_handlers.NewListPitchesHandler(pitchRepo, logger))
	register(queries.GetPitchQuery{}, queries_handlers.NewGetPitchHandler(pitchRepo, logger))

	return b
}

// zapLoggerAdapter adapts zap.Logger to the bus Logger interfaces
type zapLoggerAdapter struct {
	logger *zap.Logger
}

func (a *zapLoggerAdapter) Info(msg string, fields ...interface{}) {
	a.logger.Info(msg, a.fieldsToZap(fields...)...)
}

func (a *zapLoggerAdapter) Error(msg string, fields ...interface{}) {
	a.logger.Error(msg, a.fieldsToZap(fields...)...)
}

func (a *zapLoggerAdapter) fieldsToZap(fields ...interface{}) []zap.Field {
	var zapFields []zap.Field
	for i := 0; i < len(fields); i += 2 {
		if i+1 < len(fields) {
			key, _ := fields[i].(string)
			zapFields = append(zapFields, zap.Any(key, fields[i+1]))
		}
	}
	return zapFields
}
