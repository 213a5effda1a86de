// Package mocks provides testify mocks for the adapter interfaces.
package mocks

import (
	"os"

	"github.com/stretchr/testify/mock"

	"github.com/mouse-blink/mistype/internal/adapter"
	m "github.com/mouse-blink/mistype/internal/model"
)

type cleanupT interface {
	mock.TestingT
	Cleanup(func())
}

// MockSourceFSAdapter is a mock implementation of adapter.SourceFSAdapter.
type MockSourceFSAdapter struct {
	mock.Mock
}

// NewMockSourceFSAdapter creates a MockSourceFSAdapter that asserts its
// expectations on test cleanup.
func NewMockSourceFSAdapter(t cleanupT) *MockSourceFSAdapter {
	mk := &MockSourceFSAdapter{}
	mk.Mock.Test(t)

	t.Cleanup(func() { mk.AssertExpectations(t) })

	return mk
}

// Get mocks adapter.SourceFSAdapter.Get.
func (mk *MockSourceFSAdapter) Get(roots []m.Path) ([]m.Source, error) {
	ret := mk.Called(roots)

	var sources []m.Source
	if ret.Get(0) != nil {
		sources = ret.Get(0).([]m.Source)
	}

	return sources, ret.Error(1)
}

// Walk mocks adapter.SourceFSAdapter.Walk.
func (mk *MockSourceFSAdapter) Walk(root m.Path, recursive bool, fn adapter.FilepathWalkFunc) error {
	ret := mk.Called(root, recursive, fn)

	return ret.Error(0)
}

// ReadFile mocks adapter.SourceFSAdapter.ReadFile.
func (mk *MockSourceFSAdapter) ReadFile(path m.Path) ([]byte, error) {
	ret := mk.Called(path)

	var content []byte
	if ret.Get(0) != nil {
		content = ret.Get(0).([]byte)
	}

	return content, ret.Error(1)
}

// HashFile mocks adapter.SourceFSAdapter.HashFile.
func (mk *MockSourceFSAdapter) HashFile(path m.Path) (string, error) {
	ret := mk.Called(path)

	return ret.String(0), ret.Error(1)
}

// FileInfo mocks adapter.SourceFSAdapter.FileInfo.
func (mk *MockSourceFSAdapter) FileInfo(path m.Path) (os.FileInfo, error) {
	ret := mk.Called(path)

	var info os.FileInfo
	if ret.Get(0) != nil {
		info = ret.Get(0).(os.FileInfo)
	}

	return info, ret.Error(1)
}

// WriteFile mocks adapter.SourceFSAdapter.WriteFile.
func (mk *MockSourceFSAdapter) WriteFile(path m.Path, content []byte, perm os.FileMode) error {
	ret := mk.Called(path, content, perm)

	return ret.Error(0)
}

// MkdirAll mocks adapter.SourceFSAdapter.MkdirAll.
func (mk *MockSourceFSAdapter) MkdirAll(path m.Path, perm os.FileMode) error {
	ret := mk.Called(path, perm)

	return ret.Error(0)
}

// RelPath mocks adapter.SourceFSAdapter.RelPath.
func (mk *MockSourceFSAdapter) RelPath(base, target m.Path) (m.Path, error) {
	ret := mk.Called(base, target)

	return ret.Get(0).(m.Path), ret.Error(1)
}

// JoinPath mocks adapter.SourceFSAdapter.JoinPath.
func (mk *MockSourceFSAdapter) JoinPath(elem ...string) m.Path {
	args := make([]interface{}, len(elem))
	for i, e := range elem {
		args[i] = e
	}

	ret := mk.Called(args...)

	return ret.Get(0).(m.Path)
}

var _ adapter.SourceFSAdapter = (*MockSourceFSAdapter)(nil)

// MockPythonFileAdapter is a mock implementation of
// adapter.PythonFileAdapter.
type MockPythonFileAdapter struct {
	mock.Mock
}

// NewMockPythonFileAdapter creates a MockPythonFileAdapter that asserts
// its expectations on test cleanup.
func NewMockPythonFileAdapter(t cleanupT) *MockPythonFileAdapter {
	mk := &MockPythonFileAdapter{}
	mk.Mock.Test(t)

	t.Cleanup(func() { mk.AssertExpectations(t) })

	return mk
}

// AnnotationSites mocks adapter.PythonFileAdapter.AnnotationSites.
func (mk *MockPythonFileAdapter) AnnotationSites(content []byte, filter adapter.EntityFilter) ([]m.AnnotationSite, error) {
	ret := mk.Called(content, filter)

	var sites []m.AnnotationSite
	if ret.Get(0) != nil {
		sites = ret.Get(0).([]m.AnnotationSite)
	}

	return sites, ret.Error(1)
}

var _ adapter.PythonFileAdapter = (*MockPythonFileAdapter)(nil)

// MockRecordStore is a mock implementation of adapter.RecordStore.
type MockRecordStore struct {
	mock.Mock
}

// NewMockRecordStore creates a MockRecordStore that asserts its
// expectations on test cleanup.
func NewMockRecordStore(t cleanupT) *MockRecordStore {
	mk := &MockRecordStore{}
	mk.Mock.Test(t)

	t.Cleanup(func() { mk.AssertExpectations(t) })

	return mk
}

// SaveRun mocks adapter.RecordStore.SaveRun.
func (mk *MockRecordStore) SaveRun(out m.Path, run m.FileRun) (m.Path, error) {
	ret := mk.Called(out, run)

	return ret.Get(0).(m.Path), ret.Error(1)
}

// LoadRuns mocks adapter.RecordStore.LoadRuns.
func (mk *MockRecordStore) LoadRuns(out m.Path) ([]m.FileRun, error) {
	ret := mk.Called(out)

	var runs []m.FileRun
	if ret.Get(0) != nil {
		runs = ret.Get(0).([]m.FileRun)
	}

	return runs, ret.Error(1)
}

var _ adapter.RecordStore = (*MockRecordStore)(nil)
