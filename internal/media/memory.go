package media

import (
	"context"
	"io"
	"sync"

	"vidtube/internal/common"
)

var errStoreUnavailable = common.ErrDependencyUnavailable

// MemoryStore lưu asset trong bộ nhớ, dùng cho test và môi trường dev
// khi chưa cấu hình S3.
type MemoryStore struct {
	mu      sync.RWMutex
	objects map[string][]byte

	// FailUpload/FailDelete cho phép test giả lập lỗi storage
	FailUpload bool
	FailDelete bool
}

// NewMemoryStore tạo một MemoryStore rỗng.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		objects: make(map[string][]byte),
	}
}

// Upload đọc toàn bộ nội dung vào bộ nhớ và trả về URL giả dạng memory://<key>.
func (m *MemoryStore) Upload(ctx context.Context, key string, r io.Reader, contentType string) (string, error) {
	if m.FailUpload {
		return "", errStoreUnavailable
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}

	m.mu.Lock()
	m.objects[key] = data
	m.mu.Unlock()

	return "memory://" + key, nil
}

// Delete xóa asset khỏi bộ nhớ. Key không tồn tại không coi là lỗi.
func (m *MemoryStore) Delete(ctx context.Context, key string) error {
	if m.FailDelete {
		return errStoreUnavailable
	}

	m.mu.Lock()
	delete(m.objects, key)
	m.mu.Unlock()

	return nil
}

// Has kiểm tra asset có tồn tại trong store hay không.
func (m *MemoryStore) Has(key string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.objects[key]
	return ok
}

// Len trả về số asset đang được lưu.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.objects)
}
