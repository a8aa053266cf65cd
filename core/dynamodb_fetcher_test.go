package core

import (
	"context"
	"reflect"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type MockDynamoDBClient struct {
	ScanFunc func(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

func (m *MockDynamoDBClient) Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	return m.ScanFunc(ctx, params, optFns...)
}

func TestDynamoDBDataFetcher_Fetch(t *testing.T) {
	mockClient := &MockDynamoDBClient{
		ScanFunc: func(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
			if *params.TableName != "ati_export" {
				t.Errorf("TableName = %v, want ati_export", *params.TableName)
			}
			if params.FilterExpression == nil || *params.FilterExpression != "#k0 = :v0" {
				t.Errorf("FilterExpression = %v", params.FilterExpression)
			}
			if params.ExpressionAttributeNames["#k0"] != "Module" {
				t.Errorf("ExpressionAttributeNames = %v", params.ExpressionAttributeNames)
			}

			return &dynamodb.ScanOutput{
				Items: []map[string]types.AttributeValue{
					{
						"Module":    &types.AttributeValueMemberS{Value: "Regular Life"},
						"TableName": &types.AttributeValueMemberS{Value: "T1"},
					},
					{
						"Module": &types.AttributeValueMemberS{Value: "Regular Life"},
						"Row":    &types.AttributeValueMemberN{Value: "2"},
					},
				},
				Count: 2,
			}, nil
		},
	}

	fetcher := &DynamoDBDataFetcher{Client: mockClient}
	table, err := fetcher.Fetch("ati_export", map[string]string{"Module": "Regular Life"})
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}

	if len(table.Records) != 2 {
		t.Fatalf("results count = %d, want 2", len(table.Records))
	}
	if !reflect.DeepEqual(table.Columns, []string{"Module", "Row", "TableName"}) {
		t.Errorf("columns = %v", table.Columns)
	}
	if table.Records[0]["TableName"] != "T1" {
		t.Errorf("TableName = %v, want T1", table.Records[0]["TableName"])
	}
	if got := stringify(table.Records[1]["Row"]); got != "2" {
		t.Errorf("Row = %q, want 2", got)
	}
}
