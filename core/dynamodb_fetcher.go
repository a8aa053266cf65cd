package core

import (
	"context"
	"fmt"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DynamoDBClient defines the interface needed for scanning.
type DynamoDBClient interface {
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

// DynamoDBDataFetcher implements DataFetcher using AWS DynamoDB.
// It maps tableName to a DynamoDB Table Name.
type DynamoDBDataFetcher struct {
	Client DynamoDBClient
}

// NewDynamoDBDataFetcher creates a new fetcher with the given AWS config.
func NewDynamoDBDataFetcher(cfg aws.Config) *DynamoDBDataFetcher {
	return &DynamoDBDataFetcher{
		Client: dynamodb.NewFromConfig(cfg),
	}
}

// Fetch scans the DynamoDB table specified by tableName.
// Filter values are compared as strings. Items are schemaless, so the
// column set is the union of attribute names across all items.
func (f *DynamoDBDataFetcher) Fetch(tableName string, filter map[string]string) (*Table, error) {
	var filterExpression *string
	var expressionAttributeNames map[string]string
	var expressionAttributeValues map[string]types.AttributeValue

	if len(filter) > 0 {
		keys := make([]string, 0, len(filter))
		for k := range filter {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		expr := ""
		expressionAttributeNames = make(map[string]string)
		expressionAttributeValues = make(map[string]types.AttributeValue)
		for idx, k := range keys {
			if idx > 0 {
				expr += " AND "
			}
			// Use #k for name, :v for value to avoid reserved words conflicts
			kName := fmt.Sprintf("#k%d", idx)
			vName := fmt.Sprintf(":v%d", idx)

			expr += fmt.Sprintf("%s = %s", kName, vName)
			expressionAttributeNames[kName] = k
			expressionAttributeValues[vName] = &types.AttributeValueMemberS{Value: filter[k]}
		}
		filterExpression = aws.String(expr)
	}

	input := &dynamodb.ScanInput{
		TableName:                 aws.String(tableName),
		FilterExpression:          filterExpression,
		ExpressionAttributeNames:  expressionAttributeNames,
		ExpressionAttributeValues: expressionAttributeValues,
	}

	paginator := dynamodb.NewScanPaginator(f.Client, input)
	result := &Table{}
	seen := make(map[string]struct{})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(context.TODO())
		if err != nil {
			return nil, fmt.Errorf("failed to scan table %s: %w", tableName, err)
		}

		var pageItems []map[string]interface{}
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &pageItems); err != nil {
			return nil, fmt.Errorf("failed to unmarshal items: %w", err)
		}
		for _, item := range pageItems {
			for k := range item {
				if _, exists := seen[k]; !exists {
					seen[k] = struct{}{}
					result.Columns = append(result.Columns, k)
				}
			}
		}
		result.Records = append(result.Records, pageItems...)
	}

	sort.Strings(result.Columns)
	return result, nil
}
