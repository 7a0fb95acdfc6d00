package api

import (
	"sync"

	"github.com/andypymont/inception/pkg/domain"
)

// MockRepository provides an in-memory implementation of domain.Repository
// for testing the handlers without a real database.
type MockRepository struct {
	mu        sync.RWMutex
	docs      map[int64]domain.Document
	nextID    int64
	saveCalls int
	failWith  error
}

// NewMockRepository creates a new mock repository
func NewMockRepository() *MockRepository {
	return &MockRepository{
		docs:   make(map[int64]domain.Document),
		nextID: 1,
	}
}

// FailWith makes every subsequent call return the given error
func (m *MockRepository) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failWith = err
}

// Init resets the mock to empty
func (m *MockRepository) Init() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return m.failWith
	}
	m.docs = make(map[int64]domain.Document)
	m.nextID = 1
	return nil
}

// Get returns matching documents, scoped to a collection unless empty
func (m *MockRepository) Get(collection string, query domain.Query) ([]domain.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.failWith != nil {
		return nil, m.failWith
	}

	var results []domain.Document
	for _, doc := range m.docs {
		if collection != "" {
			if own, _ := doc.Collection(); own != collection {
				continue
			}
		}
		if query != nil && !query.Matches(doc) {
			continue
		}
		results = append(results, doc)
	}
	return results, nil
}

// GetByID returns the document with the given id, or nil
func (m *MockRepository) GetByID(id int64) (domain.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	doc, exists := m.docs[id]
	if !exists {
		return nil, nil
	}
	return doc, nil
}

// Save stores one document, assigning an id if it lacks one
func (m *MockRepository) Save(doc domain.Document, collection string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.save(doc, collection)
}

// SaveAll stores all documents
func (m *MockRepository) SaveAll(docs []domain.Document, collection string) ([]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ids := make([]int64, 0, len(docs))
	for _, doc := range docs {
		id, err := m.save(doc, collection)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (m *MockRepository) save(doc domain.Document, collection string) (int64, error) {
	m.saveCalls++
	if m.failWith != nil {
		return 0, m.failWith
	}

	if own, ok := doc.Collection(); ok && own != "" {
		collection = own
	}

	id, ok := doc.ID()
	if !ok {
		id = m.nextID
		m.nextID++
	} else if id >= m.nextID {
		m.nextID = id + 1
	}

	stored := domain.Document{}
	for k, v := range doc {
		stored[k] = v
	}
	stored[domain.IDKey] = id
	stored[domain.CollectionKey] = collection
	m.docs[id] = stored
	return id, nil
}

// Delete removes the document by its _id, if present
func (m *MockRepository) Delete(doc domain.Document) error {
	id, ok := doc.ID()
	if !ok {
		return nil
	}
	return m.DeleteByID(id)
}

// DeleteByID removes the document with the given id
func (m *MockRepository) DeleteByID(id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return m.failWith
	}
	delete(m.docs, id)
	return nil
}

// GetSaveCalls returns the number of save calls made
func (m *MockRepository) GetSaveCalls() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.saveCalls
}

// GetDocumentCount returns how many documents the mock holds
func (m *MockRepository) GetDocumentCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.docs)
}
