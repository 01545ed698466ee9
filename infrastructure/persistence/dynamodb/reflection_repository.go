package dynamodb

import (
	"context"
	"errors"
	"fmt"

	"reflections/application/ports"
	"reflections/domain/core/entities"
	"reflections/domain/core/valueobjects"
	pkgerrors "reflections/pkg/errors"
	"reflections/pkg/observability"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

// ReflectionRepository implements ports.ReflectionRepository using DynamoDB
type ReflectionRepository struct {
	client    Client
	tableName string
	tracer    *observability.Tracer
	logger    *zap.Logger
}

var _ ports.ReflectionRepository = (*ReflectionRepository)(nil)

// NewReflectionRepository creates a new ReflectionRepository
func NewReflectionRepository(client Client, tableName string, tracer *observability.Tracer, logger *zap.Logger) *ReflectionRepository {
	return &ReflectionRepository{
		client:    client,
		tableName: tableName,
		tracer:    tracer,
		logger:    logger,
	}
}

func (r *ReflectionRepository) key(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"PK": &types.AttributeValueMemberS{Value: reflectionPK(id)},
		"SK": &types.AttributeValueMemberS{Value: metadataSK},
	}
}

// Save persists a reflection. Concurrent saves are last write wins.
func (r *ReflectionRepository) Save(ctx context.Context, reflection *entities.Reflection) error {
	return r.tracer.TraceFunction(ctx, "ReflectionRepository.Save", func(ctx context.Context) error {
		av, err := attributevalue.MarshalMap(toReflectionItem(reflection))
		if err != nil {
			return fmt.Errorf("failed to marshal reflection: %w", err)
		}

		if _, err := r.client.PutItem(ctx, &dynamodb.PutItemInput{
			TableName: aws.String(r.tableName),
			Item:      av,
		}); err != nil {
			r.logger.Error("Failed to save reflection to DynamoDB",
				zap.Error(err),
				zap.String("reflectionID", reflection.ID().String()),
			)
			return pkgerrors.NewDatabaseError("save reflection", err)
		}

		r.logger.Debug("Reflection saved",
			zap.String("reflectionID", reflection.ID().String()),
			zap.String("author", reflection.Author()),
		)
		return nil
	})
}

// GetByID retrieves a reflection by its ID
func (r *ReflectionRepository) GetByID(ctx context.Context, id valueobjects.ReflectionID) (*entities.Reflection, error) {
	var reflection *entities.Reflection
	err := r.tracer.TraceFunction(ctx, "ReflectionRepository.GetByID", func(ctx context.Context) error {
		result, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
			TableName:      aws.String(r.tableName),
			Key:            r.key(id.String()),
			ConsistentRead: aws.Bool(true),
		})
		if err != nil {
			return pkgerrors.NewDatabaseError("get reflection", err)
		}

		if len(result.Item) == 0 {
			return pkgerrors.NewNotFoundError("reflection")
		}

		var item reflectionItem
		if err := attributevalue.UnmarshalMap(result.Item, &item); err != nil {
			return fmt.Errorf("failed to unmarshal reflection: %w", err)
		}

		reflection, err = item.toEntity()
		return err
	})
	if err != nil {
		return nil, err
	}
	return reflection, nil
}

// List retrieves every reflection in the table
func (r *ReflectionRepository) List(ctx context.Context) ([]*entities.Reflection, error) {
	var reflections []*entities.Reflection
	err := r.tracer.TraceFunction(ctx, "ReflectionRepository.List", func(ctx context.Context) error {
		filter := expression.Name("EntityType").Equal(expression.Value(entityTypeReflection))
		expr, err := expression.NewBuilder().WithFilter(filter).Build()
		if err != nil {
			return fmt.Errorf("failed to build expression: %w", err)
		}

		paginator := dynamodb.NewScanPaginator(r.client, &dynamodb.ScanInput{
			TableName:                 aws.String(r.tableName),
			FilterExpression:          expr.Filter(),
			ExpressionAttributeNames:  expr.Names(),
			ExpressionAttributeValues: expr.Values(),
		})

		reflections = make([]*entities.Reflection, 0)
		for paginator.HasMorePages() {
			page, err := paginator.NextPage(ctx)
			if err != nil {
				return pkgerrors.NewDatabaseError("list reflections", err)
			}

			for _, raw := range page.Items {
				var item reflectionItem
				if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
					r.logger.Warn("Failed to unmarshal reflection item", zap.Error(err))
					continue
				}
				reflection, err := item.toEntity()
				if err != nil {
					r.logger.Warn("Skipping malformed reflection item",
						zap.String("reflectionID", item.ReflectionID),
						zap.Error(err),
					)
					continue
				}
				reflections = append(reflections, reflection)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return reflections, nil
}

// Delete removes the reflection item. Comment items under the same
// partition are left in place.
func (r *ReflectionRepository) Delete(ctx context.Context, id valueobjects.ReflectionID) error {
	return r.tracer.TraceFunction(ctx, "ReflectionRepository.Delete", func(ctx context.Context) error {
		cond := expression.Name("PK").AttributeExists()
		expr, err := expression.NewBuilder().WithCondition(cond).Build()
		if err != nil {
			return fmt.Errorf("failed to build expression: %w", err)
		}

		_, err = r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
			TableName:                 aws.String(r.tableName),
			Key:                       r.key(id.String()),
			ConditionExpression:       expr.Condition(),
			ExpressionAttributeNames:  expr.Names(),
			ExpressionAttributeValues: expr.Values(),
		})
		if err != nil {
			var ccf *types.ConditionalCheckFailedException
			if errors.As(err, &ccf) {
				return pkgerrors.NewNotFoundError("reflection")
			}
			return pkgerrors.NewDatabaseError("delete reflection", err)
		}

		r.logger.Debug("Reflection deleted", zap.String("reflectionID", id.String()))
		return nil
	})
}

// Ping checks that the table answers reads
func (r *ReflectionRepository) Ping(ctx context.Context) error {
	_, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       r.key("health-check"),
	})
	if err != nil {
		return pkgerrors.NewDatabaseError("ping", err)
	}
	return nil
}
