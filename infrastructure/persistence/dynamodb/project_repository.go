// Package dynamodb implements the persistence ports on a single
// DynamoDB table. Projects and pitches are stored as whole documents;
// every update is conditional on the aggregate's version.
package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"

	"ideagraph-backend/domain/project"
	appErrors "ideagraph-backend/pkg/errors"
	"ideagraph-backend/pkg/utils"
)

// ProjectRepository implements ports.ProjectRepository using DynamoDB
type ProjectRepository struct {
	client    *dynamodb.Client
	tableName string
	logger    *zap.Logger
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(client *dynamodb.Client, tableName string, logger *zap.Logger) *ProjectRepository {
	return &ProjectRepository{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

// projectItem represents the DynamoDB item structure for a project
type projectItem struct {
	PK             string                  `dynamodbav:"PK"`
	SK             string                  `dynamodbav:"SK"`
	EntityType     string                  `dynamodbav:"EntityType"`
	ProjectID      string                  `dynamodbav:"ProjectID"`
	UserID         string                  `dynamodbav:"UserID"`
	Name           string                  `dynamodbav:"Name"`
	Nodes          []project.Node          `dynamodbav:"Nodes"`
	Edges          []project.Edge          `dynamodbav:"Edges"`
	Categorization *project.Categorization `dynamodbav:"Categorization,omitempty"`
	Rating         *project.Rating         `dynamodbav:"Rating,omitempty"`
	CreatedAt      string                  `dynamodbav:"CreatedAt"`
	UpdatedAt      string                  `dynamodbav:"UpdatedAt"`
	Version        int64                   `dynamodbav:"Version"`
}

func projectPK(userID string) string    { return fmt.Sprintf("USER#%s", userID) }
func projectSK(projectID string) string { return fmt.Sprintf("PROJECT#%s", projectID) }

// Save persists a project. New projects (version 0) must not already
// exist; updates require the stored version to match and bump it by one.
func (r *ProjectRepository) Save(ctx context.Context, p *project.Project) error {
	item := projectItem{
		PK:             projectPK(p.UserID),
		SK:             projectSK(p.ID),
		EntityType:     "PROJECT",
		ProjectID:      p.ID,
		UserID:         p.UserID,
		Name:           p.Name,
		Nodes:          p.Nodes,
		Edges:          p.Edges,
		Categorization: p.Categorization,
		Rating:         p.Rating,
		CreatedAt:      p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      p.UpdatedAt.Format(time.RFC3339),
		Version:        p.Version + 1,
	}

	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return appErrors.NewDatabaseError("marshal project", err)
	}

	input := &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	}

	if p.Version == 0 {
		input.ConditionExpression = aws.String("attribute_not_exists(PK)")
	} else {
		input.ConditionExpression = aws.String("Version = :expected")
		input.ExpressionAttributeValues = map[string]types.AttributeValue{
			":expected": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", p.Version)},
		}
	}

	if _, err := r.client.PutItem(ctx, input); err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return appErrors.NewConflictError("project was modified concurrently")
		}
		r.logger.Error("failed to save project",
			zap.Error(err),
			zap.String("project_id", p.ID))
		return appErrors.NewDatabaseError("save project", err)
	}

	p.Version = item.Version
	return nil
}

// FindByID retrieves a project owned by userID. The key schema scopes
// the lookup to the owner, so foreign projects come back as not found.
func (r *ProjectRepository) FindByID(ctx context.Context, userID, projectID string) (*project.Project, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: projectPK(userID)},
			"SK": &types.AttributeValueMemberS{Value: projectSK(projectID)},
		},
	})
	if err != nil {
		return nil, appErrors.NewDatabaseError("get project", err)
	}
	if out.Item == nil {
		return nil, appErrors.NewNotFoundError("project")
	}

	var item projectItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return nil, appErrors.NewDatabaseError("unmarshal project", err)
	}
	return itemToProject(item)
}

// FindByUser retrieves all projects owned by a user, newest first
func (r *ProjectRepository) FindByUser(ctx context.Context, userID string) ([]*project.Project, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		KeyConditionExpression: aws.String("PK = :pk AND begins_with(SK, :prefix)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk":     &types.AttributeValueMemberS{Value: projectPK(userID)},
			":prefix": &types.AttributeValueMemberS{Value: "PROJECT#"},
		},
	})
	if err != nil {
		return nil, appErrors.NewDatabaseError("query projects", err)
	}

	projects := make([]*project.Project, 0, len(out.Items))
	for _, raw := range out.Items {
		var item projectItem
		if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
			r.logger.Warn("skipping unreadable project item", zap.Error(err))
			continue
		}
		p, err := itemToProject(item)
		if err != nil {
			r.logger.Warn("skipping project with bad timestamps",
				zap.String("project_id", item.ProjectID),
				zap.Error(err))
			continue
		}
		projects = append(projects, p)
	}

	sort.Slice(projects, func(i, j int) bool {
		return projects[i].CreatedAt.After(projects[j].CreatedAt)
	})
	return projects, nil
}

func itemToProject(item projectItem) (*project.Project, error) {
	createdAt, err := utils.ParseRFC3339(item.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("bad CreatedAt: %w", err)
	}
	updatedAt, err := utils.ParseRFC3339(item.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("bad UpdatedAt: %w", err)
	}

	nodes := item.Nodes
	if nodes == nil {
		nodes = []project.Node{}
	}
	edges := item.Edges
	if edges == nil {
		edges = []project.Edge{}
	}

	return &project.Project{
		ID:             item.ProjectID,
		UserID:         item.UserID,
		Name:           item.Name,
		Nodes:          nodes,
		Edges:          edges,
		Categorization: item.Categorization,
		Rating:         item.Rating,
		CreatedAt:      createdAt,
		UpdatedAt:      updatedAt,
		Version:        item.Version,
	}, nil
}
