package dynamo

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/alterera/academy-api/internal/domain"
)

// CourseRepo provides typed DynamoDB operations for the courses table.
type CourseRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewCourseRepo(client *dynamodb.Client, tableName string) *CourseRepo {
	return &CourseRepo{client: client, tableName: tableName}
}

func (r *CourseRepo) Put(ctx context.Context, c *domain.Course) error {
	item, err := attributevalue.MarshalMap(c)
	if err != nil {
		return fmt.Errorf("marshal course: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *CourseRepo) Get(ctx context.Context, courseID string) (*domain.Course, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("course_id", courseID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, domain.E(domain.CodeRequestNotFound, "course not found")
	}
	var c domain.Course
	if err := attributevalue.UnmarshalMap(out.Item, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// GetBySlug looks up a course via the slug-index GSI.
func (r *CourseRepo) GetBySlug(ctx context.Context, slug string) (*domain.Course, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String("slug-index"),
		KeyConditionExpression:    aws.String("#s = :s"),
		ExpressionAttributeNames:  map[string]string{"#s": "slug"},
		ExpressionAttributeValues: map[string]types.AttributeValue{":s": &types.AttributeValueMemberS{Value: slug}},
		Limit:                     aws.Int32(1),
	})
	if err != nil {
		return nil, err
	}
	if len(out.Items) == 0 {
		return nil, domain.E(domain.CodeRequestNotFound, "course not found")
	}
	var c domain.Course
	if err := attributevalue.UnmarshalMap(out.Items[0], &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// ListPublished scans for published courses. The catalog is small; callers
// sort by creation time.
func (r *CourseRepo) ListPublished(ctx context.Context) ([]domain.Course, error) {
	out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
		TableName:        aws.String(r.tableName),
		FilterExpression: aws.String("is_published = :t"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":t": &types.AttributeValueMemberBOOL{Value: true},
		},
	})
	if err != nil {
		return nil, err
	}
	var courses []domain.Course
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &courses); err != nil {
		return nil, err
	}
	return courses, nil
}

// ListByInstructor returns the courses authored by one instructor via the
// instructor_id-index GSI.
func (r *CourseRepo) ListByInstructor(ctx context.Context, instructorID string) ([]domain.Course, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String("instructor_id-index"),
		KeyConditionExpression: aws.String("instructor_id = :i"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":i": &types.AttributeValueMemberS{Value: instructorID},
		},
	})
	if err != nil {
		return nil, err
	}
	var courses []domain.Course
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &courses); err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *CourseRepo) Update(ctx context.Context, courseID string, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now().UTC().Format(time.RFC3339)
	ue, err := buildUpdateExpr(updates)
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("course_id", courseID),
		UpdateExpression:          aws.String(ue.Expr),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
	})
	return err
}

func (r *CourseRepo) Delete(ctx context.Context, courseID string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("course_id", courseID),
	})
	return err
}
