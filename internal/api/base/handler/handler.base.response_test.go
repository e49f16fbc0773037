// Package basehdl - Test chuẩn hóa response lỗi trả về cho client.
package basehdl

import (
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v3"

	"vidtube/internal/common"
)

func respondBody(t *testing.T, err error) (int, string) {
	t.Helper()
	app := fiber.New()
	app.Get("/t", func(c fiber.Ctx) error {
		Respond(c, nil, err)
		return nil
	})
	resp, reqErr := app.Test(httptest.NewRequest("GET", "/t", nil))
	if reqErr != nil {
		t.Fatalf("app.Test lỗi: %v", reqErr)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(body)
}

func TestRespond_LoiDinhDangChuan(t *testing.T) {
	status, body := respondBody(t, common.ErrNotFound)
	if status != common.StatusNotFound {
		t.Errorf("Status = %d, muốn %d", status, common.StatusNotFound)
	}
	if !strings.Contains(body, common.ErrNotFound.Error()) {
		t.Errorf("Body phải chứa message của lỗi, nhận: %s", body)
	}
}

func TestRespond_LoiNgoaiDinhDangKhongLoChiTiet(t *testing.T) {
	// Lỗi thô từ driver không được lọt ra ngoài response
	status, body := respondBody(t, errors.New("connection refused: mongodb://10.0.0.5:27017"))
	if status != common.StatusInternalServerError {
		t.Errorf("Status = %d, muốn %d", status, common.StatusInternalServerError)
	}
	if strings.Contains(body, "mongodb://") {
		t.Errorf("Body để lộ chi tiết lỗi nội bộ: %s", body)
	}
	if !strings.Contains(body, common.MsgInternalError) {
		t.Errorf("Body phải chứa thông báo chung %q, nhận: %s", common.MsgInternalError, body)
	}
}
