package dynamodb

import (
	"context"
	"fmt"
	"sort"

	"reflections/application/ports"
	"reflections/domain/core/entities"
	"reflections/domain/core/valueobjects"
	pkgerrors "reflections/pkg/errors"
	"reflections/pkg/observability"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"go.uber.org/zap"
)

// CommentRepository implements ports.CommentRepository using DynamoDB.
// Comments live in their reflection's partition under COMMENT# sort keys.
type CommentRepository struct {
	client    Client
	tableName string
	tracer    *observability.Tracer
	logger    *zap.Logger
}

var _ ports.CommentRepository = (*CommentRepository)(nil)

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(client Client, tableName string, tracer *observability.Tracer, logger *zap.Logger) *CommentRepository {
	return &CommentRepository{
		client:    client,
		tableName: tableName,
		tracer:    tracer,
		logger:    logger,
	}
}

// Save persists a comment
func (r *CommentRepository) Save(ctx context.Context, comment *entities.Comment) error {
	return r.tracer.TraceFunction(ctx, "CommentRepository.Save", func(ctx context.Context) error {
		av, err := attributevalue.MarshalMap(toCommentItem(comment))
		if err != nil {
			return fmt.Errorf("failed to marshal comment: %w", err)
		}

		if _, err := r.client.PutItem(ctx, &dynamodb.PutItemInput{
			TableName: aws.String(r.tableName),
			Item:      av,
		}); err != nil {
			return pkgerrors.NewDatabaseError("save comment", err)
		}
		return nil
	})
}

// GetByReflectionID queries the comments of a reflection, oldest first
func (r *CommentRepository) GetByReflectionID(ctx context.Context, id valueobjects.ReflectionID) ([]*entities.Comment, error) {
	var comments []*entities.Comment
	err := r.tracer.TraceFunction(ctx, "CommentRepository.GetByReflectionID", func(ctx context.Context) error {
		keyCond := expression.Key("PK").Equal(expression.Value(reflectionPK(id.String()))).
			And(expression.Key("SK").BeginsWith(commentPrefix))
		expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
		if err != nil {
			return fmt.Errorf("failed to build expression: %w", err)
		}

		paginator := dynamodb.NewQueryPaginator(r.client, &dynamodb.QueryInput{
			TableName:                 aws.String(r.tableName),
			KeyConditionExpression:    expr.KeyCondition(),
			ExpressionAttributeNames:  expr.Names(),
			ExpressionAttributeValues: expr.Values(),
		})

		comments = make([]*entities.Comment, 0)
		for paginator.HasMorePages() {
			page, err := paginator.NextPage(ctx)
			if err != nil {
				return pkgerrors.NewDatabaseError("query comments", err)
			}

			for _, raw := range page.Items {
				var item commentItem
				if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
					r.logger.Warn("Failed to unmarshal comment item", zap.Error(err))
					continue
				}
				comment, err := item.toEntity()
				if err != nil {
					r.logger.Warn("Skipping malformed comment item",
						zap.String("reflectionID", id.String()),
						zap.Error(err),
					)
					continue
				}
				comments = append(comments, comment)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(comments, func(i, j int) bool {
		return comments[i].CreatedAt().Before(comments[j].CreatedAt())
	})
	return comments, nil
}
