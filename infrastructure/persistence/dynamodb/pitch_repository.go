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

	"ideagraph-backend/domain/pitch"
	appErrors "ideagraph-backend/pkg/errors"
	"ideagraph-backend/pkg/utils"
)

// PitchRepository implements ports.PitchRepository using DynamoDB. The
// feed is global, so pitches live under their own partition key and the
// list operation scans by entity type.
type PitchRepository struct {
	client    *dynamodb.Client
	tableName string
	logger    *zap.Logger
}

// NewPitchRepository creates a new PitchRepository
func NewPitchRepository(client *dynamodb.Client, tableName string, logger *zap.Logger) *PitchRepository {
	return &PitchRepository{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

// pitchItem represents the DynamoDB item structure for a stealth pitch
type pitchItem struct {
	PK         string          `dynamodbav:"PK"`
	SK         string          `dynamodbav:"SK"`
	EntityType string          `dynamodbav:"EntityType"`
	PitchID    string          `dynamodbav:"PitchID"`
	UserID     string          `dynamodbav:"UserID"`
	Title      string          `dynamodbav:"Title"`
	Pitch      string          `dynamodbav:"Pitch"`
	Amount     float64         `dynamodbav:"Amount"`
	Likes      []string        `dynamodbav:"Likes"`
	Dislikes   []string        `dynamodbav:"Dislikes"`
	Approves   []string        `dynamodbav:"Approves"`
	Rejects    []string        `dynamodbav:"Rejects"`
	Comments   []pitchComment  `dynamodbav:"Comments"`
	CreatedAt  string          `dynamodbav:"CreatedAt"`
	UpdatedAt  string          `dynamodbav:"UpdatedAt"`
	Version    int64           `dynamodbav:"Version"`
}

type pitchComment struct {
	ID        string `dynamodbav:"ID"`
	UserID    string `dynamodbav:"UserID"`
	Text      string `dynamodbav:"Text"`
	CreatedAt string `dynamodbav:"CreatedAt"`
}

func pitchPK(pitchID string) string { return fmt.Sprintf("PITCH#%s", pitchID) }

const pitchSK = "METADATA"

// Save persists a pitch with the same conditional version scheme as
// projects.
func (r *PitchRepository) Save(ctx context.Context, p *pitch.StealthPitch) error {
	comments := make([]pitchComment, len(p.Comments))
	for i, c := range p.Comments {
		comments[i] = pitchComment{
			ID:        c.ID,
			UserID:    c.UserID,
			Text:      c.Text,
			CreatedAt: c.CreatedAt.Format(time.RFC3339),
		}
	}

	item := pitchItem{
		PK:         pitchPK(p.ID),
		SK:         pitchSK,
		EntityType: "PITCH",
		PitchID:    p.ID,
		UserID:     p.UserID,
		Title:      p.Title,
		Pitch:      p.Pitch,
		Amount:     p.Amount,
		Likes:      p.Likes,
		Dislikes:   p.Dislikes,
		Approves:   p.Approves,
		Rejects:    p.Rejects,
		Comments:   comments,
		CreatedAt:  p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  p.UpdatedAt.Format(time.RFC3339),
		Version:    p.Version + 1,
	}

	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return appErrors.NewDatabaseError("marshal pitch", err)
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
			return appErrors.NewConflictError("pitch was modified concurrently")
		}
		r.logger.Error("failed to save pitch",
			zap.Error(err),
			zap.String("pitch_id", p.ID))
		return appErrors.NewDatabaseError("save pitch", err)
	}

	p.Version = item.Version
	return nil
}

// FindByID retrieves a pitch regardless of owner
func (r *PitchRepository) FindByID(ctx context.Context, pitchID string) (*pitch.StealthPitch, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: pitchPK(pitchID)},
			"SK": &types.AttributeValueMemberS{Value: pitchSK},
		},
	})
	if err != nil {
		return nil, appErrors.NewDatabaseError("get pitch", err)
	}
	if out.Item == nil {
		return nil, appErrors.NewNotFoundError("pitch")
	}

	var item pitchItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return nil, appErrors.NewDatabaseError("unmarshal pitch", err)
	}
	return itemToPitch(item)
}

// FindAll retrieves every pitch in the feed, newest first. The feed is
// small enough for a filtered scan; revisit if it grows past that.
func (r *PitchRepository) FindAll(ctx context.Context) ([]*pitch.StealthPitch, error) {
	pitches := make([]*pitch.StealthPitch, 0)

	paginator := dynamodb.NewScanPaginator(r.client, &dynamodb.ScanInput{
		TableName:        aws.String(r.tableName),
		FilterExpression: aws.String("EntityType = :t"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":t": &types.AttributeValueMemberS{Value: "PITCH"},
		},
	})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, appErrors.NewDatabaseError("scan pitches", err)
		}
		for _, raw := range page.Items {
			var item pitchItem
			if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
				r.logger.Warn("skipping unreadable pitch item", zap.Error(err))
				continue
			}
			p, err := itemToPitch(item)
			if err != nil {
				r.logger.Warn("skipping pitch with bad timestamps",
					zap.String("pitch_id", item.PitchID),
					zap.Error(err))
				continue
			}
			pitches = append(pitches, p)
		}
	}

	sort.Slice(pitches, func(i, j int) bool {
		return pitches[i].CreatedAt.After(pitches[j].CreatedAt)
	})
	return pitches, nil
}

// Delete removes a pitch
func (r *PitchRepository) Delete(ctx context.Context, pitchID string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: pitchPK(pitchID)},
			"SK": &types.AttributeValueMemberS{Value: pitchSK},
		},
		ConditionExpression: aws.String("attribute_exists(PK)"),
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return appErrors.NewNotFoundError("pitch")
		}
		return appErrors.NewDatabaseError("delete pitch", err)
	}
	return nil
}

func itemToPitch(item pitchItem) (*pitch.StealthPitch, error) {
	createdAt, err := utils.ParseRFC3339(item.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("bad CreatedAt: %w", err)
	}
	updatedAt, err := utils.ParseRFC3339(item.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("bad UpdatedAt: %w", err)
	}

	comments := make([]pitch.Comment, 0, len(item.Comments))
	for _, c := range item.Comments {
		commentAt, err := utils.ParseRFC3339(c.CreatedAt)
		if err != nil {
			commentAt = createdAt
		}
		comments = append(comments, pitch.Comment{
			ID:        c.ID,
			UserID:    c.UserID,
			Text:      c.Text,
			CreatedAt: commentAt,
		})
	}

	return &pitch.StealthPitch{
		ID:        item.PitchID,
		UserID:    item.UserID,
		Title:     item.Title,
		Pitch:     item.Pitch,
		Amount:    item.Amount,
		Likes:     orEmpty(item.Likes),
		Dislikes:  orEmpty(item.Dislikes),
		Approves:  orEmpty(item.Approves),
		Rejects:   orEmpty(item.Rejects),
		Comments:  comments,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
		Version:   item.Version,
	}, nil
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
