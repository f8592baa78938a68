package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"formvault/internal/form"
)

func TestSubmitTemplateRecord(t *testing.T) {
	templates, records := newTestStores(t)
	h := NewRecordHandler(templates, records)

	template := seedTemplate(t, templates, "แบบฟอร์มสมัครงาน", []form.FieldSchema{
		{ID: "f1", Label: "ชื่อ-นามสกุล", Type: form.FieldName, Required: true},
		{ID: "f2", Label: "อีเมล", Type: form.FieldEmail},
	})

	c, w := newJSONContext(t, http.MethodPost, "/v1/records/template/"+template.ID, submitRequest{
		Data: map[string]string{"f1": "สมชาย ใจดี", "f2": "somchai@example.com"},
	})
	c.Params = gin.Params{{Key: "id", Value: template.ID}}
	h.SubmitTemplate(c)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d body=%s", w.Code, w.Body.String())
	}

	var record form.Record
	decodeBody(t, w, &record)
	if record.ID == "" {
		t.Fatal("expected assigned record id")
	}
	if record.Type != form.RecordTypeTemplate {
		t.Fatalf("expected template record type got %q", record.Type)
	}
	if record.TypeName != template.Name {
		t.Fatalf("expected type name %q got %q", template.Name, record.TypeName)
	}
	if record.TemplateID != template.ID {
		t.Fatalf("expected template id %q got %q", template.ID, record.TemplateID)
	}
	if record.FullName != "สมชาย ใจดี" {
		t.Fatalf("expected display name from first field got %q", record.FullName)
	}
	if record.SavedDate == "" || record.SavedTime == "" {
		t.Fatalf("expected saved date/time got %q %q", record.SavedDate, record.SavedTime)
	}
}

func TestSubmitTemplateRecordFailFast(t *testing.T) {
	templates, records := newTestStores(t)
	h := NewRecordHandler(templates, records)

	template := seedTemplate(t, templates, "ฟอร์ม", []form.FieldSchema{
		{ID: "f1", Label: "ชื่อ", Type: form.FieldText, Required: true},
		{ID: "f2", Label: "อีเมล", Type: form.FieldEmail},
	})

	// 两个字段都无效，但只报第一个。
	c, w := newJSONContext(t, http.MethodPost, "/v1/records/template/"+template.ID, submitRequest{
		Data: map[string]string{"f1": "   ", "f2": "not-an-email"},
	})
	c.Params = gin.Params{{Key: "id", Value: template.ID}}
	h.SubmitTemplate(c)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d body=%s", w.Code, w.Body.String())
	}
	var resp map[string]string
	decodeBody(t, w, &resp)
	if resp["error"] != "ชื่อ เป็นข้อมูลที่จำเป็น" {
		t.Fatalf("expected first failure message got %q", resp["error"])
	}
	if got := len(records.List(context.Background())); got != 0 {
		t.Fatalf("expected no record persisted got %d", got)
	}
}

func TestSubmitTemplateRecordUnknownTemplate(t *testing.T) {
	templates, records := newTestStores(t)
	h := NewRecordHandler(templates, records)

	c, w := newJSONContext(t, http.MethodPost, "/v1/records/template/missing", submitRequest{
		Data: map[string]string{"f1": "x"},
	})
	c.Params = gin.Params{{Key: "id", Value: "missing"}}
	h.SubmitTemplate(c)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d body=%s", w.Code, w.Body.String())
	}
}

func TestSubmitTemplateRecordPlaceholderName(t *testing.T) {
	templates, records := newTestStores(t)
	h := NewRecordHandler(templates, records)

	template := seedTemplate(t, templates, "ฟอร์ม", []form.FieldSchema{
		{ID: "f1", Label: "หมายเหตุ", Type: form.FieldText},
	})

	c, w := newJSONContext(t, http.MethodPost, "/v1/records/template/"+template.ID, submitRequest{
		Data: map[string]string{},
	})
	c.Params = gin.Params{{Key: "id", Value: template.ID}}
	h.SubmitTemplate(c)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d body=%s", w.Code, w.Body.String())
	}
	var record form.Record
	decodeBody(t, w, &record)
	if record.FullName != unnamedRecord {
		t.Fatalf("expected placeholder name got %q", record.FullName)
	}
}

func TestSubmitPersonaRecord(t *testing.T) {
	templates, records := newTestStores(t)
	h := NewRecordHandler(templates, records)

	c, w := newJSONContext(t, http.MethodPost, "/v1/records/persona/student", submitRequest{
		Data: map[string]string{
			"fullName":  "สมหญิง เรียนดี",
			"birthDate": "2008-05-12",
			"gender":    "หญิง",
			"email":     "somying@example.com",
		},
	})
	c.Params = gin.Params{{Key: "persona", Value: "student"}}
	h.SubmitPersona(c)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d body=%s", w.Code, w.Body.String())
	}
	var record form.Record
	decodeBody(t, w, &record)
	if record.Type != "student" {
		t.Fatalf("expected student record got %q", record.Type)
	}
	if record.TypeName != "นักเรียน" {
		t.Fatalf("expected thai type name got %q", record.TypeName)
	}
	if record.FullName != "สมหญิง เรียนดี" {
		t.Fatalf("unexpected display name %q", record.FullName)
	}
	if record.TemplateID != "" {
		t.Fatalf("persona record must not reference a template, got %q", record.TemplateID)
	}
}

func TestSubmitPersonaRecordMissingRequired(t *testing.T) {
	templates, records := newTestStores(t)
	h := NewRecordHandler(templates, records)

	c, w := newJSONContext(t, http.MethodPost, "/v1/records/persona/general", submitRequest{
		Data: map[string]string{"fullName": "สมชาย"},
	})
	c.Params = gin.Params{{Key: "persona", Value: "general"}}
	h.SubmitPersona(c)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d body=%s", w.Code, w.Body.String())
	}
	var resp map[string]string
	decodeBody(t, w, &resp)
	if resp["error"] != "มีข้อมูลที่จำเป็นยังไม่ได้กรอก" {
		t.Fatalf("unexpected message %q", resp["error"])
	}
}

func TestSubmitPersonaRecordUnknownPersona(t *testing.T) {
	templates, records := newTestStores(t)
	h := NewRecordHandler(templates, records)

	c, w := newJSONContext(t, http.MethodPost, "/v1/records/persona/alien", submitRequest{
		Data: map[string]string{"fullName": "x"},
	})
	c.Params = gin.Params{{Key: "persona", Value: "alien"}}
	h.SubmitPersona(c)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d body=%s", w.Code, w.Body.String())
	}
}

func TestUpdateRecordKeepsIdentity(t *testing.T) {
	templates, records := newTestStores(t)
	h := NewRecordHandler(templates, records)

	saved, err := records.Save(context.Background(), form.Record{
		Type:     "general",
		TypeName: "บุคคลทั่วไป",
		FullName: "สมชาย",
		Data:     map[string]string{"fullName": "สมชาย", "nationalId": "1234567890123", "birthDate": "1990-01-01"},
	})
	if err != nil {
		t.Fatalf("seed record: %v", err)
	}

	c, w := newJSONContext(t, http.MethodPut, "/v1/records/"+saved.ID, submitRequest{
		Data: map[string]string{"fullName": "สมชาย", "nationalId": "9876543210987", "birthDate": "1990-01-01"},
	})
	c.Params = gin.Params{{Key: "id", Value: saved.ID}}
	h.UpdateRecord(c)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}
	var updated form.Record
	decodeBody(t, w, &updated)
	if updated.ID != saved.ID {
		t.Fatalf("expected id %q got %q", saved.ID, updated.ID)
	}
	if updated.Type != saved.Type || updated.TypeName != saved.TypeName || updated.FullName != saved.FullName {
		t.Fatalf("identity fields changed: %+v", updated)
	}
	if updated.Data["nationalId"] != "9876543210987" {
		t.Fatalf("expected replaced data got %q", updated.Data["nationalId"])
	}
}

func TestUpdateRecordRevalidatesAgainstTemplate(t *testing.T) {
	templates, records := newTestStores(t)
	h := NewRecordHandler(templates, records)

	template := seedTemplate(t, templates, "ฟอร์ม", []form.FieldSchema{
		{ID: "f1", Label: "อีเมล", Type: form.FieldEmail, Required: true},
	})
	saved, err := records.Save(context.Background(), form.Record{
		Type:       form.RecordTypeTemplate,
		TypeName:   template.Name,
		TemplateID: template.ID,
		FullName:   "somchai@example.com",
		Data:       map[string]string{"f1": "somchai@example.com"},
	})
	if err != nil {
		t.Fatalf("seed record: %v", err)
	}

	c, w := newJSONContext(t, http.MethodPut, "/v1/records/"+saved.ID, submitRequest{
		Data: map[string]string{"f1": "not-an-email"},
	})
	c.Params = gin.Params{{Key: "id", Value: saved.ID}}
	h.UpdateRecord(c)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d body=%s", w.Code, w.Body.String())
	}

	// 模板删除后旧记录仍可更新（弱引用）。
	if err := templates.Delete(context.Background(), template.ID); err != nil {
		t.Fatalf("delete template: %v", err)
	}
	c, w = newJSONContext(t, http.MethodPut, "/v1/records/"+saved.ID, submitRequest{
		Data: map[string]string{"f1": "not-an-email"},
	})
	c.Params = gin.Params{{Key: "id", Value: saved.ID}}
	h.UpdateRecord(c)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 after template removal got %d body=%s", w.Code, w.Body.String())
	}
}

func TestUpdateRecordNotFound(t *testing.T) {
	templates, records := newTestStores(t)
	h := NewRecordHandler(templates, records)

	c, w := newJSONContext(t, http.MethodPut, "/v1/records/missing", submitRequest{
		Data: map[string]string{"f1": "x"},
	})
	c.Params = gin.Params{{Key: "id", Value: "missing"}}
	h.UpdateRecord(c)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d body=%s", w.Code, w.Body.String())
	}
}

func TestDeleteRecordIdempotent(t *testing.T) {
	templates, records := newTestStores(t)
	h := NewRecordHandler(templates, records)

	saved, err := records.Save(context.Background(), form.Record{
		Type:     "general",
		TypeName: "บุคคลทั่วไป",
		FullName: "สมชาย",
		Data:     map[string]string{"fullName": "สมชาย"},
	})
	if err != nil {
		t.Fatalf("seed record: %v", err)
	}

	for i := 0; i < 2; i++ {
		c, w := newJSONContext(t, http.MethodDelete, "/v1/records/"+saved.ID, nil)
		c.Params = gin.Params{{Key: "id", Value: saved.ID}}
		h.DeleteRecord(c)
		c.Writer.WriteHeaderNow()

		if w.Code != http.StatusNoContent {
			t.Fatalf("attempt %d: expected 204 got %d", i, w.Code)
		}
	}
	if got := len(records.List(context.Background())); got != 0 {
		t.Fatalf("expected empty history got %d records", got)
	}
}
