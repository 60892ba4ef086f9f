package intent

import (
	"context"
	"sync"
)

var _ classifier = &classifierMock{}

type classifierMock struct {
	ClassifyFunc func(ctx context.Context, system, message string) (string, error)

	calls struct {
		Classify []struct {
			System  string
			Message string
		}
	}
	lockClassify sync.RWMutex
}

func (mock *classifierMock) Classify(ctx context.Context, system, message string) (string, error) {
	if mock.ClassifyFunc == nil {
		panic("classifierMock.ClassifyFunc: method is nil but classifier.Classify was just called")
	}
	callInfo := struct {
		System  string
		Message string
	}{System: system, Message: message}
	mock.lockClassify.Lock()
	mock.calls.Classify = append(mock.calls.Classify, callInfo)
	mock.lockClassify.Unlock()
	return mock.ClassifyFunc(ctx, system, message)
}

func (mock *classifierMock) ClassifyCalls() []struct {
	System  string
	Message string
} {
	mock.lockClassify.RLock()
	calls := mock.calls.Classify
	mock.lockClassify.RUnlock()
	return calls
}
