package replay

import (
	"context"
	"sync"

	"github.com/klappy/unfoldingtheword/internal/adapter/provider/translationhelps"
	"github.com/klappy/unfoldingtheword/internal/domain"
)

var _ contentFetcher = &contentFetcherMock{}

type contentFetcherMock struct {
	FetchScriptureFunc func(ctx context.Context, req translationhelps.ScriptureRequest) (*domain.ScripturePassage, []domain.ScriptureMatch, error)
	FetchNotesFunc     func(ctx context.Context, req translationhelps.ResourceRequest) ([]domain.Resource, error)
	FetchQuestionsFunc func(ctx context.Context, req translationhelps.ResourceRequest) ([]domain.Resource, error)
	FetchWordLinksFunc func(ctx context.Context, req translationhelps.ResourceRequest) ([]domain.Resource, error)
	FetchWordFunc      func(ctx context.Context, req translationhelps.ResourceRequest) ([]domain.Resource, error)
	FetchAcademyFunc   func(ctx context.Context, req translationhelps.ResourceRequest) ([]domain.Resource, error)
	SearchFunc         func(ctx context.Context, req translationhelps.SearchRequest) (*domain.SearchResults, error)

	calls struct {
		FetchScripture []translationhelps.ScriptureRequest
		FetchNotes     []translationhelps.ResourceRequest
		FetchQuestions []translationhelps.ResourceRequest
		FetchWordLinks []translationhelps.ResourceRequest
		FetchWord      []translationhelps.ResourceRequest
		FetchAcademy   []translationhelps.ResourceRequest
		Search         []translationhelps.SearchRequest
	}
	lock sync.RWMutex
}

func (mock *contentFetcherMock) FetchScripture(ctx context.Context, req translationhelps.ScriptureRequest) (*domain.ScripturePassage, []domain.ScriptureMatch, error) {
	if mock.FetchScriptureFunc == nil {
		panic("contentFetcherMock.FetchScriptureFunc: method is nil but was just called")
	}
	mock.lock.Lock()
	mock.calls.FetchScripture = append(mock.calls.FetchScripture, req)
	mock.lock.Unlock()
	return mock.FetchScriptureFunc(ctx, req)
}

func (mock *contentFetcherMock) FetchScriptureCalls() []translationhelps.ScriptureRequest {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.FetchScripture
}

func (mock *contentFetcherMock) FetchNotes(ctx context.Context, req translationhelps.ResourceRequest) ([]domain.Resource, error) {
	if mock.FetchNotesFunc == nil {
		panic("contentFetcherMock.FetchNotesFunc: method is nil but was just called")
	}
	mock.lock.Lock()
	mock.calls.FetchNotes = append(mock.calls.FetchNotes, req)
	mock.lock.Unlock()
	return mock.FetchNotesFunc(ctx, req)
}

func (mock *contentFetcherMock) FetchNotesCalls() []translationhelps.ResourceRequest {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.FetchNotes
}

func (mock *contentFetcherMock) FetchQuestions(ctx context.Context, req translationhelps.ResourceRequest) ([]domain.Resource, error) {
	if mock.FetchQuestionsFunc == nil {
		panic("contentFetcherMock.FetchQuestionsFunc: method is nil but was just called")
	}
	mock.lock.Lock()
	mock.calls.FetchQuestions = append(mock.calls.FetchQuestions, req)
	mock.lock.Unlock()
	return mock.FetchQuestionsFunc(ctx, req)
}

func (mock *contentFetcherMock) FetchWordLinks(ctx context.Context, req translationhelps.ResourceRequest) ([]domain.Resource, error) {
	if mock.FetchWordLinksFunc == nil {
		panic("contentFetcherMock.FetchWordLinksFunc: method is nil but was just called")
	}
	mock.lock.Lock()
	mock.calls.FetchWordLinks = append(mock.calls.FetchWordLinks, req)
	mock.lock.Unlock()
	return mock.FetchWordLinksFunc(ctx, req)
}

func (mock *contentFetcherMock) FetchWord(ctx context.Context, req translationhelps.ResourceRequest) ([]domain.Resource, error) {
	if mock.FetchWordFunc == nil {
		panic("contentFetcherMock.FetchWordFunc: method is nil but was just called")
	}
	mock.lock.Lock()
	mock.calls.FetchWord = append(mock.calls.FetchWord, req)
	mock.lock.Unlock()
	return mock.FetchWordFunc(ctx, req)
}

func (mock *contentFetcherMock) FetchWordCalls() []translationhelps.ResourceRequest {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.FetchWord
}

func (mock *contentFetcherMock) FetchAcademy(ctx context.Context, req translationhelps.ResourceRequest) ([]domain.Resource, error) {
	if mock.FetchAcademyFunc == nil {
		panic("contentFetcherMock.FetchAcademyFunc: method is nil but was just called")
	}
	mock.lock.Lock()
	mock.calls.FetchAcademy = append(mock.calls.FetchAcademy, req)
	mock.lock.Unlock()
	return mock.FetchAcademyFunc(ctx, req)
}

func (mock *contentFetcherMock) Search(ctx context.Context, req translationhelps.SearchRequest) (*domain.SearchResults, error) {
	if mock.SearchFunc == nil {
		panic("contentFetcherMock.SearchFunc: method is nil but was just called")
	}
	mock.lock.Lock()
	mock.calls.Search = append(mock.calls.Search, req)
	mock.lock.Unlock()
	return mock.SearchFunc(ctx, req)
}

func (mock *contentFetcherMock) SearchCalls() []translationhelps.SearchRequest {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.Search
}

var _ noteLister = &noteListerMock{}

type noteListerMock struct {
	ListFunc func(ctx context.Context, deviceID string, reference *string, limit, offset int) ([]*domain.Note, int, error)
}

func (mock *noteListerMock) List(ctx context.Context, deviceID string, reference *string, limit, offset int) ([]*domain.Note, int, error) {
	if mock.ListFunc == nil {
		panic("noteListerMock.ListFunc: method is nil but was just called")
	}
	return mock.ListFunc(ctx, deviceID, reference, limit, offset)
}
