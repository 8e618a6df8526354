// Package events provides the central data-change event mechanism for CRUD
// operations. Services never override individual methods, the base Mongo
// service emits events automatically; reaction logic (audit trail, cache
// invalidation, ...) registers through OnDataChanged.
package events

import (
	"context"
	"reflect"
	"sync"
)

// CRUD operation kinds.
const (
	OpInsert = "insert"
	OpUpdate = "update"
	OpUpsert = "upsert"
	OpDelete = "delete"
)

// DataChangeEvent describes one data change. Document is the record after
// the change (the deleted record for OpDelete).
type DataChangeEvent struct {
	CollectionName string
	Operation      string
	Document       interface{}
}

// DataChangeHandler reacts to a data change event.
type DataChangeHandler func(ctx context.Context, e DataChangeEvent)

var (
	handlers   []DataChangeHandler
	handlersMu sync.RWMutex
)

// OnDataChanged registers a handler. Call during init.
func OnDataChanged(h DataChangeHandler) {
	handlersMu.Lock()
	defer handlersMu.Unlock()
	handlers = append(handlers, h)
}

// EmitDataChanged fires an event to every registered handler. Each handler
// runs in its own goroutine with a recover so one panicking handler never
// affects the others.
func EmitDataChanged(ctx context.Context, e DataChangeEvent) {
	handlersMu.RLock()
	list := make([]DataChangeHandler, len(handlers))
	copy(list, handlers)
	handlersMu.RUnlock()

	for _, h := range list {
		go func(fn DataChangeHandler) {
			defer func() {
				if r := recover(); r != nil {
					// The logger may not be initialized this early
					_ = r
				}
			}()
			fn(ctx, e)
		}(h)
	}
}

// GetStringField reads a string field from a document by name through
// reflection, for handlers that only know the document shape loosely.
// Returns "" when the field is missing or not a string.
func GetStringField(doc interface{}, fieldName string) string {
	if doc == nil {
		return ""
	}
	val := reflect.ValueOf(doc)
	if val.Kind() == reflect.Ptr {
		if val.IsNil() {
			return ""
		}
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		return ""
	}
	f := val.FieldByName(fieldName)
	if !f.IsValid() || !f.CanInterface() {
		return ""
	}
	if f.Kind() != reflect.String {
		return ""
	}
	return f.String()
}
