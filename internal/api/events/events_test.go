// Package events - Test phát sự kiện thay đổi dữ liệu và trích ObjectID từ document.
package events

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// lockedBuffer là buffer an toàn cho goroutine để bắt output của logrus.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestEmitDataChanged_GoiHandler(t *testing.T) {
	var wg sync.WaitGroup
	wg.Add(1)

	var received DataChangeEvent
	OnDataChanged(func(ctx context.Context, e DataChangeEvent) {
		if e.CollectionName != "videos" {
			return
		}
		received = e
		wg.Done()
	})

	EmitDataChanged(context.Background(), DataChangeEvent{
		CollectionName: "videos",
		Operation:      OpInsert,
		Document:       nil,
	})

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Handler không được gọi sau khi phát sự kiện")
	}

	if received.Operation != OpInsert {
		t.Errorf("Operation = %q, muốn %q", received.Operation, OpInsert)
	}
}

func TestEmitDataChanged_HandlerPanicKhongLanRa(t *testing.T) {
	OnDataChanged(func(ctx context.Context, e DataChangeEvent) {
		if e.CollectionName == "panic_test" {
			panic("nổ trong handler")
		}
	})

	// Panic trong handler phải được recover và để lại dấu vết trong log
	prev := logrus.StandardLogger().Out
	out := &lockedBuffer{}
	logrus.SetOutput(out)
	defer logrus.SetOutput(prev)

	EmitDataChanged(context.Background(), DataChangeEvent{
		CollectionName: "panic_test",
		Operation:      OpDelete,
	})

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if strings.Contains(out.String(), "handler panic") {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("Panic trong handler phải được ghi log, không được nuốt lặng lẽ")
}

type docWithOwner struct {
	Owner   primitive.ObjectID
	Channel *primitive.ObjectID
	Name    string
}

func TestGetObjectIDField(t *testing.T) {
	owner := primitive.NewObjectID()
	channel := primitive.NewObjectID()
	doc := docWithOwner{Owner: owner, Channel: &channel}

	if got := GetObjectIDField(doc, "Owner"); got != owner {
		t.Errorf("GetObjectIDField(Owner) = %v, muốn %v", got, owner)
	}
	if got := GetObjectIDField(&doc, "Owner"); got != owner {
		t.Errorf("GetObjectIDField qua con trỏ = %v, muốn %v", got, owner)
	}
	if got := GetObjectIDField(doc, "Channel"); got != channel {
		t.Errorf("GetObjectIDField(Channel) qua *ObjectID = %v, muốn %v", got, channel)
	}
}

func TestGetObjectIDField_TruongHopRong(t *testing.T) {
	if got := GetObjectIDField(nil, "Owner"); !got.IsZero() {
		t.Errorf("Document nil phải trả về NilObjectID, nhận %v", got)
	}
	if got := GetObjectIDField(docWithOwner{}, "KhongCo"); !got.IsZero() {
		t.Errorf("Field không tồn tại phải trả về NilObjectID, nhận %v", got)
	}
	if got := GetObjectIDField(docWithOwner{}, "Name"); !got.IsZero() {
		t.Errorf("Field không phải ObjectID phải trả về NilObjectID, nhận %v", got)
	}
	var ptr *docWithOwner
	if got := GetObjectIDField(ptr, "Owner"); !got.IsZero() {
		t.Errorf("Con trỏ nil phải trả về NilObjectID, nhận %v", got)
	}
}
