package services

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// fakeDynamo scripts the DynamoAPI surface for service tests. Behavior is
// set per operation through function fields; unset operations succeed with
// empty results. Writes are recorded for assertions.
type fakeDynamo struct {
	getItemFn    func(table string, key map[string]types.AttributeValue) (map[string]types.AttributeValue, error)
	queryFn      func(table, keyCondition string, values map[string]types.AttributeValue) ([]map[string]types.AttributeValue, error)
	queryIndexFn func(table, index, keyCondition string, values map[string]types.AttributeValue) ([]map[string]types.AttributeValue, error)
	scanFn       func(table string) ([]map[string]types.AttributeValue, error)
	updateErr    error

	puts    []fakePut
	deletes []map[string]types.AttributeValue
	updates []string
}

type fakePut struct {
	table string
	item  interface{}
}

func (f *fakeDynamo) GetItem(_ context.Context, table string, key map[string]types.AttributeValue) (map[string]types.AttributeValue, error) {
	if f.getItemFn == nil {
		return nil, nil
	}
	return f.getItemFn(table, key)
}

func (f *fakeDynamo) PutItem(_ context.Context, table string, item interface{}) error {
	f.puts = append(f.puts, fakePut{table: table, item: item})
	return nil
}

func (f *fakeDynamo) DeleteItem(_ context.Context, _ string, key map[string]types.AttributeValue) error {
	f.deletes = append(f.deletes, key)
	return nil
}

func (f *fakeDynamo) QueryItems(_ context.Context, table, keyCondition string, values map[string]types.AttributeValue, _ int32) ([]map[string]types.AttributeValue, error) {
	if f.queryFn == nil {
		return nil, nil
	}
	return f.queryFn(table, keyCondition, values)
}

func (f *fakeDynamo) QueryItemsWithIndex(_ context.Context, table, index, keyCondition string, values map[string]types.AttributeValue, _ int32) ([]map[string]types.AttributeValue, error) {
	if f.queryIndexFn == nil {
		return nil, nil
	}
	return f.queryIndexFn(table, index, keyCondition, values)
}

func (f *fakeDynamo) UpdateItem(_ context.Context, table, _, _ string, _, _ map[string]types.AttributeValue) (map[string]types.AttributeValue, error) {
	f.updates = append(f.updates, table)
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return map[string]types.AttributeValue{}, nil
}

func (f *fakeDynamo) ScanItems(_ context.Context, table string) ([]map[string]types.AttributeValue, error) {
	if f.scanFn == nil {
		return nil, nil
	}
	return f.scanFn(table)
}

// mustMarshal turns a model into a DynamoDB item for fake query results.
func mustMarshal(item interface{}) map[string]types.AttributeValue {
	out, err := attributevalue.MarshalMap(item)
	if err != nil {
		panic(err)
	}
	return out
}

// fakeNotifier records realtime broadcasts.
type fakeNotifier struct {
	profileChanges []string
	matches        []string
}

func (n *fakeNotifier) ProfileChanged(userID string) {
	n.profileChanges = append(n.profileChanges, userID)
}

func (n *fakeNotifier) MatchCreated(_, _, matchID string) {
	n.matches = append(n.matches, matchID)
}
