package dynamodb

import (
	"fmt"
	"strings"
	"time"

	"reflections/domain/core/entities"
	"reflections/domain/core/valueobjects"
)

const (
	entityTypeReflection = "REFLECTION"
	entityTypeComment    = "COMMENT"

	reflectionPrefix = "REFLECTION#"
	commentPrefix    = "COMMENT#"
	userPrefix       = "USER#"
	metadataSK       = "METADATA"
)

// reflectionItem represents the DynamoDB item structure for a reflection
type reflectionItem struct {
	PK           string `dynamodbav:"PK"`
	SK           string `dynamodbav:"SK"`
	GSI1PK       string `dynamodbav:"GSI1PK"` // USER#<author>
	GSI1SK       string `dynamodbav:"GSI1SK"` // REFLECTION#<modify_date>
	EntityType   string `dynamodbav:"EntityType"`
	ReflectionID string `dynamodbav:"ReflectionID"`
	Author       string `dynamodbav:"Author"`
	Memory       string `dynamodbav:"Memory"`
	Happiness    int    `dynamodbav:"Happiness"`
	Symbol       string `dynamodbav:"Symbol"`
	ModifyDate   string `dynamodbav:"ModifyDate"`
}

// commentItem represents the DynamoDB item structure for a comment
type commentItem struct {
	PK           string `dynamodbav:"PK"`
	SK           string `dynamodbav:"SK"`
	EntityType   string `dynamodbav:"EntityType"`
	CommentID    string `dynamodbav:"CommentID"`
	ReflectionID string `dynamodbav:"ReflectionID"`
	Author       string `dynamodbav:"Author"`
	Content      string `dynamodbav:"Content"`
	CreatedAt    string `dynamodbav:"CreatedAt"`
}

func reflectionPK(id string) string {
	return reflectionPrefix + id
}

func toReflectionItem(r *entities.Reflection) reflectionItem {
	content := r.Content()
	modifyDate := r.ModifyDate().UTC().Format(time.RFC3339Nano)
	return reflectionItem{
		PK:           reflectionPK(r.ID().String()),
		SK:           metadataSK,
		GSI1PK:       userPrefix + r.Author(),
		GSI1SK:       reflectionPrefix + modifyDate,
		EntityType:   entityTypeReflection,
		ReflectionID: r.ID().String(),
		Author:       r.Author(),
		Memory:       content.Memory(),
		Happiness:    content.Happiness().Int(),
		Symbol:       content.Symbol(),
		ModifyDate:   modifyDate,
	}
}

// toEntity rebuilds the entity without re-applying form limits, so records
// written under older limits still load.
func (i reflectionItem) toEntity() (*entities.Reflection, error) {
	id, err := valueobjects.NewReflectionIDFromString(i.ReflectionID)
	if err != nil {
		return nil, fmt.Errorf("invalid reflection ID %q: %w", i.ReflectionID, err)
	}

	happiness, err := valueobjects.NewHappiness(i.Happiness)
	if err != nil {
		return nil, fmt.Errorf("invalid happiness for reflection %s: %w", i.ReflectionID, err)
	}

	modifyDate, err := time.Parse(time.RFC3339Nano, i.ModifyDate)
	if err != nil {
		return nil, fmt.Errorf("invalid modify date for reflection %s: %w", i.ReflectionID, err)
	}

	content := valueobjects.ReconstructReflectionContent(i.Memory, happiness, i.Symbol)
	return entities.ReconstructReflection(id, i.Author, content, modifyDate)
}

func toCommentItem(c *entities.Comment) commentItem {
	return commentItem{
		PK:           reflectionPK(c.ReflectionID().String()),
		SK:           commentPrefix + c.ID(),
		EntityType:   entityTypeComment,
		CommentID:    c.ID(),
		ReflectionID: c.ReflectionID().String(),
		Author:       c.Author(),
		Content:      c.Content(),
		CreatedAt:    c.CreatedAt().UTC().Format(time.RFC3339Nano),
	}
}

func (i commentItem) toEntity() (*entities.Comment, error) {
	reflectionID, err := valueobjects.NewReflectionIDFromString(i.ReflectionID)
	if err != nil {
		return nil, fmt.Errorf("invalid reflection ID %q on comment %s: %w", i.ReflectionID, i.CommentID, err)
	}

	createdAt, err := time.Parse(time.RFC3339Nano, i.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("invalid created date for comment %s: %w", i.CommentID, err)
	}

	commentID := i.CommentID
	if commentID == "" {
		commentID = strings.TrimPrefix(i.SK, commentPrefix)
	}

	return entities.ReconstructComment(commentID, reflectionID, i.Author, i.Content, createdAt)
}
